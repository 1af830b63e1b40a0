package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	colorize "github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/arcanaland/algodb/internal/artwork"
	"github.com/arcanaland/algodb/internal/card"
	"github.com/arcanaland/algodb/internal/config"
)

var showCmd = &cobra.Command{
	Use:   "show [key|name]",
	Short: "Display a card, with ANSI art when its image is available",
	Long: `Show displays every field of a card from a built card database.
Cards are looked up by key (e.g. 1042) or by name.

When the card's image exists in the configured image directory (see
'algodb images'), it is rendered as ANSI terminal art next to the text.

Examples:
  algodb show 1001
  algodb show "Ephemeral Wisp"
  algodb show --no-art 1042`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		dbPath, _ := cmd.Flags().GetString("db")
		noArt, _ := cmd.Flags().GetBool("no-art")

		doc, err := loadDatabase(dbPath)
		if err != nil {
			return err
		}

		c, err := doc.Lookup(args[0])
		if err != nil {
			return fmt.Errorf("error getting card: %w", err)
		}

		var ansiArt string
		if !noArt {
			imagePath, err := artwork.ImagePath(cfg.ImageDir, c.ImageName)
			if err != nil {
				logger.Warn("not rendering card art", "card", c.Name, "error", err)
			} else if _, err := os.Stat(imagePath); err == nil {
				ansiArt, err = artwork.CachedAnsi(imagePath, filepath.Join(config.GetCacheDir(), "ansi"))
				if err != nil {
					logger.Warn("could not render card art", "image", imagePath, "error", err)
				}
			} else {
				logger.Debug("no image for card", "image", imagePath)
			}
		}

		displayCard(c, ansiArt)
		return nil
	},
}

func init() {
	RootCmd.AddCommand(showCmd)

	showCmd.Flags().String("db", "", "Path to a built card database (default: XDG_DATA_HOME/algodb/cards_db.json)")
	showCmd.Flags().Bool("no-art", false, "Do not render card art")
}

// cardInfoLines builds the colored text block for a card
func cardInfoLines(c *card.Card, textWidth int) []string {
	label := func(name string) string {
		return colorize.CyanString("%-11s", name+":")
	}

	lines := []string{
		label("Card") + colorize.HiWhiteString("%s", c.Name),
		label("Key") + colorize.HiWhiteString("%d", c.Key),
		label("Type") + colorize.HiWhiteString("%s", c.Type),
	}
	if len(c.Factions) > 0 {
		lines = append(lines, label("Factions")+formatFactions(c.Factions))
	}
	lines = append(lines,
		label("Cost")+colorize.HiWhiteString("%s · %s", c.Cost, c.Affinity),
		label("Stats")+colorize.HiWhiteString("%s / %s", c.Power, c.Toughness),
	)
	if len(c.Attributes) > 0 {
		lines = append(lines, label("Attributes")+colorize.HiWhiteString("%s", strings.Join(c.Attributes, ", ")))
	}
	if c.Complexity != "" {
		lines = append(lines, label("Complexity")+colorize.HiWhiteString("%s", c.Complexity))
	}
	if c.Revision != "" {
		lines = append(lines, label("Revision")+colorize.HiWhiteString("%s", c.Revision))
	}

	if c.Text != "" {
		lines = append(lines, "", colorize.CyanString("Text:"))
		lines = append(lines, wrapText(c.Text, textWidth)...)
	}
	if c.Details != "" {
		lines = append(lines, "", colorize.CyanString("Details:"))
		lines = append(lines, wrapText(c.Details, textWidth)...)
	}
	if len(c.Rulings) > 0 {
		lines = append(lines, "", colorize.CyanString("Rulings:"))
		for _, r := range c.Rulings {
			for i, l := range wrapText(r, textWidth-2) {
				if i == 0 {
					lines = append(lines, "• "+l)
				} else {
					lines = append(lines, "  "+l)
				}
			}
		}
	}
	return lines
}

// displayCard displays the card information with ANSI art on the left
func displayCard(c *card.Card, ansiArt string) {
	var ansiLines []string
	maxAnsiWidth := 0
	if ansiArt != "" {
		ansiLines = strings.Split(strings.TrimRight(ansiArt, "\n"), "\n")
		for _, line := range ansiLines {
			// Visible width excludes ANSI escape sequences
			if w := len([]rune(artwork.StripAnsi(line))); w > maxAnsiWidth {
				maxAnsiWidth = w
			}
		}
	}

	spacing := 4
	infoStartCol := 0
	if maxAnsiWidth > 0 {
		infoStartCol = maxAnsiWidth + spacing
	}

	infoWidth := terminalWidth() - infoStartCol - 4
	if infoWidth < 20 {
		infoWidth = 20
	}
	infoLines := cardInfoLines(c, infoWidth)

	fmt.Println()

	maxLines := max(len(ansiLines), len(infoLines))
	for i := 0; i < maxLines; i++ {
		fmt.Print("  ")
		if i < len(ansiLines) {
			fmt.Print(ansiLines[i])
			visibleWidth := len([]rune(artwork.StripAnsi(ansiLines[i])))
			fmt.Print(strings.Repeat(" ", infoStartCol-visibleWidth))
		} else {
			fmt.Print(strings.Repeat(" ", infoStartCol))
		}

		if i < len(infoLines) {
			fmt.Print(infoLines[i])
		}

		fmt.Println()
	}

	fmt.Println()
}
