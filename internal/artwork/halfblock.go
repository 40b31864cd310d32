package artwork

import (
	"fmt"
	"image"
	"image/color"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/image/draw"
)

const upperHalfBlock = "▀"

// Render draws img into width columns and height rows. Each row carries two
// pixel rows: the upper one as foreground, the lower one as background.
func Render(img image.Image, width, height int) []string {
	if img == nil || width <= 0 || height <= 0 {
		return nil
	}
	scaled := image.NewRGBA(image.Rect(0, 0, width, height*2))
	draw.ApproxBiLinear.Scale(scaled, scaled.Bounds(), img, img.Bounds(), draw.Src, nil)

	lines := make([]string, 0, height)
	for row := 0; row < height; row++ {
		var b strings.Builder
		for col := 0; col < width; col++ {
			top := scaled.RGBAAt(col, row*2)
			bottom := scaled.RGBAAt(col, row*2+1)
			style := lipgloss.NewStyle().
				Foreground(lipgloss.Color(hex(top))).
				Background(lipgloss.Color(hex(bottom)))
			b.WriteString(style.Render(upperHalfBlock))
		}
		lines = append(lines, b.String())
	}
	return lines
}

func hex(c color.RGBA) string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}
