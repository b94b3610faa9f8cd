package ui

import (
	"image"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/lucasb-eyer/go-colorful"
)

// upperHalf paints the top pixel with the foreground and the bottom pixel
// with the background, giving two vertical pixels per cell.
const upperHalf = "▀"

// cellPair is the colour of the top and bottom pixel of one cell.
type cellPair struct {
	top    string
	bottom string
}

// RenderHalfBlocks converts an image into terminal lines, one line per two
// pixel rows. Adjacent cells with identical colours share one styled run.
func RenderHalfBlocks(img *image.RGBA) []string {
	if img == nil {
		return nil
	}
	b := img.Bounds()
	width, height := b.Dx(), b.Dy()
	if width == 0 || height == 0 {
		return nil
	}

	rows := (height + 1) / 2
	lines := make([]string, 0, rows)
	for row := 0; row < rows; row++ {
		y := b.Min.Y + row*2

		var line strings.Builder
		var run cellPair
		n := 0
		flush := func() {
			if n == 0 {
				return
			}
			style := lipgloss.NewStyle().
				Foreground(lipgloss.Color(run.top)).
				Background(lipgloss.Color(run.bottom))
			line.WriteString(style.Render(strings.Repeat(upperHalf, n)))
			n = 0
		}

		for x := b.Min.X; x < b.Max.X; x++ {
			cell := cellPair{top: hexAt(img, x, y), bottom: "#000000"}
			if y+1 < b.Max.Y {
				cell.bottom = hexAt(img, x, y+1)
			}
			if n > 0 && cell != run {
				flush()
			}
			run = cell
			n++
		}
		flush()
		lines = append(lines, line.String())
	}
	return lines
}

func hexAt(img *image.RGBA, x, y int) string {
	c, _ := colorful.MakeColor(img.RGBAAt(x, y))
	return c.Hex()
}
