// Package artwork fetches card images and renders them as terminal art.
package artwork

import (
	"crypto/md5"
	"fmt"
	"image"
	"image/color"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"path/filepath"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/nfnt/resize"
)

// Art dimensions in character cells.
const (
	DefaultWidth  = 40
	DefaultHeight = 32
)

// CachedAnsi returns the ANSI rendering of imagePath, generating it into
// cacheDir on first use.
func CachedAnsi(imagePath, cacheDir string) (string, error) {
	if err := os.MkdirAll(cacheDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create ANSI cache directory: %w", err)
	}

	// Cache file name is derived from the image path
	cacheFilename := fmt.Sprintf("%x.ansi", md5.Sum([]byte(imagePath)))
	cachePath := filepath.Join(cacheDir, cacheFilename)

	if data, err := os.ReadFile(cachePath); err == nil {
		return string(data), nil
	}

	art, err := RenderFile(imagePath, DefaultWidth, DefaultHeight)
	if err != nil {
		return "", err
	}
	if err := os.WriteFile(cachePath, []byte(art), 0644); err != nil {
		return "", fmt.Errorf("failed to write ANSI art to file: %w", err)
	}
	return art, nil
}

// RenderFile decodes an image file and converts it to ANSI art.
func RenderFile(imagePath string, width, height int) (string, error) {
	file, err := os.Open(imagePath)
	if err != nil {
		return "", fmt.Errorf("failed to open image: %w", err)
	}
	defer file.Close()

	img, _, err := image.Decode(file)
	if err != nil {
		return "", fmt.Errorf("failed to decode image: %w", err)
	}

	return Render(img, width, height), nil
}

// Render converts an image to width x height cells of 24-bit ANSI art. Each
// cell is an upper half block: top pixels as foreground, bottom as background.
func Render(img image.Image, width, height int) string {
	// Doubled for half-block characters
	resized := resize.Resize(uint(width*2), uint(height*2), img, resize.Lanczos3)

	var buffer strings.Builder
	for y := 0; y < height*2; y += 2 {
		for x := 0; x < width*2; x += 2 {
			col1, _ := colorful.MakeColor(colorAt(resized, x, y))
			col2, _ := colorful.MakeColor(colorAt(resized, x+1, y))
			col3, _ := colorful.MakeColor(colorAt(resized, x, y+1))
			col4, _ := colorful.MakeColor(colorAt(resized, x+1, y+1))

			fg := toRGBA(averageColor(col1, col2))
			bg := toRGBA(averageColor(col3, col4))

			fmt.Fprintf(&buffer, "\x1b[38;2;%d;%d;%dm\x1b[48;2;%d;%d;%dm%c\x1b[0m",
				fg.R, fg.G, fg.B, bg.R, bg.G, bg.B, '▀')
		}
		buffer.WriteString("\n")
	}
	return buffer.String()
}

// colorAt returns the color at a coordinate, black when out of bounds
func colorAt(img image.Image, x, y int) color.Color {
	bounds := img.Bounds()
	if x >= bounds.Min.X && x < bounds.Max.X && y >= bounds.Min.Y && y < bounds.Max.Y {
		return img.At(x, y)
	}
	return color.RGBA{0, 0, 0, 255}
}

func averageColor(colors ...colorful.Color) colorful.Color {
	var r, g, b float64
	for _, c := range colors {
		r += c.R
		g += c.G
		b += c.B
	}
	count := float64(len(colors))
	return colorful.Color{R: r / count, G: g / count, B: b / count}
}

func toRGBA(c colorful.Color) color.RGBA {
	r, g, b := c.Clamped().RGB255()
	return color.RGBA{R: r, G: g, B: b, A: 255}
}

// StripAnsi removes ANSI escape sequences from a string
func StripAnsi(s string) string {
	var result strings.Builder
	inEscape := false
	for _, c := range s {
		if inEscape {
			if c == 'm' {
				inEscape = false
			}
		} else if c == '\033' {
			inEscape = true
		} else {
			result.WriteRune(c)
		}
	}
	return result.String()
}
