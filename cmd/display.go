package cmd

import (
	"os"
	"strings"

	colorize "github.com/fatih/color"
	"golang.org/x/term"

	"github.com/arcanaland/algodb/internal/card"
)

// terminalWidth returns the width of stdout, or 80 when it is not a terminal
func terminalWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 {
		return 80
	}
	return width
}

// factionColor picks a display color for a faction name
func factionColor(faction string) *colorize.Color {
	switch strings.ToLower(faction) {
	case "earth":
		return colorize.New(colorize.FgGreen)
	case "fire":
		return colorize.New(colorize.FgRed)
	case "water":
		return colorize.New(colorize.FgBlue)
	case "wood":
		return colorize.New(colorize.FgHiGreen)
	case "metal":
		return colorize.New(colorize.FgHiWhite)
	case card.Hybrid:
		return colorize.New(colorize.FgMagenta)
	default:
		return colorize.New(colorize.FgYellow)
	}
}

// formatFactions renders a faction list with per-faction colors
func formatFactions(factions []string) string {
	parts := make([]string, 0, len(factions))
	for _, f := range factions {
		parts = append(parts, factionColor(f).Sprint(f))
	}
	return strings.Join(parts, " · ")
}

// wrapText wraps text to a specified width
func wrapText(text string, width int) []string {
	if width < 10 {
		width = 40
	}

	var result []string
	var currentLine string
	words := strings.Fields(text)

	if len(words) == 0 {
		return []string{""}
	}

	for _, word := range words {
		if len(currentLine) == 0 {
			currentLine = word
		} else if len(currentLine)+1+len(word) <= width {
			currentLine += " " + word
		} else {
			result = append(result, currentLine)
			currentLine = word
		}
	}

	if currentLine != "" {
		result = append(result, currentLine)
	}

	return result
}
