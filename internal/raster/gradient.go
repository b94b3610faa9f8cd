package raster

import (
	"image/color"
	"math"

	"github.com/fogleman/gg"

	"github.com/litescript/ls-nebula/internal/sky"
)

// gg samples patterns in device space, so gradient geometry is scaled here
// while paths go through the context transform.

func (c *Canvas) linear(g sky.LinearGradient) gg.Gradient {
	s := c.scale
	grad := gg.NewLinearGradient(g.X0*s, g.Y0*s, g.X1*s, g.Y1*s)
	addStops(grad, g.Stops, 1)
	return grad
}

func (c *Canvas) radial(g sky.RadialGradient, alpha float64) gg.Gradient {
	s := c.scale
	grad := gg.NewRadialGradient(g.X*s, g.Y*s, 0, g.X*s, g.Y*s, g.R*s)
	addStops(grad, g.Stops, alpha)
	return grad
}

func addStops(grad gg.Gradient, stops []sky.ColorStop, alpha float64) {
	for _, st := range stops {
		grad.AddColorStop(st.Offset, stopColor(st, alpha))
	}
}

// stopColor converts a stop to a non-premultiplied colour with alpha scaled
// by the global alpha. gg interpolates premultiplied values, so a transparent
// stop fades without tinting its neighbour.
func stopColor(st sky.ColorStop, alpha float64) color.NRGBA {
	r, g, b := st.Color.Clamped().RGB255()
	a := math.Max(0, math.Min(1, st.Alpha*alpha))
	return color.NRGBA{R: r, G: g, B: b, A: uint8(math.Round(a * 255))}
}
