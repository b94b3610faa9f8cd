// Package raster implements the sky drawing context on top of gg, rendering
// into an RGBA image that every host can present.
package raster

import (
	"errors"
	"fmt"
	"image"
	"io"
	"math"

	"github.com/fogleman/gg"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/litescript/ls-nebula/internal/sky"
)

// ErrEmpty is returned when encoding a canvas with no pixels.
var ErrEmpty = errors.New("raster: empty canvas")

// Canvas is a sky.Surface and sky.Context backed by an *image.RGBA.
// Engine coordinates are multiplied by Scale to get device pixels.
type Canvas struct {
	img   *image.RGBA
	dc    *gg.Context // nil while the canvas has no pixels
	scale float64

	// engine-space size last requested through Resize
	width, height int
}

// New creates an empty canvas. Non-positive scales fall back to 1.
func New(scale float64) *Canvas {
	if scale <= 0 || math.IsNaN(scale) || math.IsInf(scale, 0) {
		scale = 1
	}
	return &Canvas{
		img:   image.NewRGBA(image.Rect(0, 0, 0, 0)),
		scale: scale,
	}
}

// Scale returns device pixels per engine pixel.
func (c *Canvas) Scale() float64 {
	return c.scale
}

// Resize sets the engine-space size; the backing image is reallocated only
// when the device size changes.
func (c *Canvas) Resize(width, height int) {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	c.width, c.height = width, height

	dw := int(math.Ceil(float64(width) * c.scale))
	dh := int(math.Ceil(float64(height) * c.scale))
	b := c.img.Bounds()
	if b.Dx() == dw && b.Dy() == dh {
		return
	}
	c.img = image.NewRGBA(image.Rect(0, 0, dw, dh))
	c.dc = nil
	if dw > 0 && dh > 0 {
		c.dc = gg.NewContextForRGBA(c.img)
		c.dc.Scale(c.scale, c.scale)
	}
}

// Context implements sky.Surface.
func (c *Canvas) Context() (sky.Context, error) {
	return c, nil
}

// Image returns the backing image. It is reused between frames.
func (c *Canvas) Image() *image.RGBA {
	return c.img
}

// DeviceSize returns the backing image size in device pixels.
func (c *Canvas) DeviceSize() (int, int) {
	b := c.img.Bounds()
	return b.Dx(), b.Dy()
}

// At returns the device pixel at (x, y) as a colorful color.
func (c *Canvas) At(x, y int) colorful.Color {
	if !(image.Point{X: x, Y: y}.In(c.img.Bounds())) {
		return colorful.Color{}
	}
	p := c.img.RGBAAt(x, y)
	return colorful.Color{R: float64(p.R) / 255, G: float64(p.G) / 255, B: float64(p.B) / 255}
}

// WritePNG encodes the current frame.
func (c *Canvas) WritePNG(w io.Writer) error {
	if c.dc == nil {
		dw, dh := c.DeviceSize()
		return fmt.Errorf("encode png: %w (%dx%d)", ErrEmpty, dw, dh)
	}
	if err := c.dc.EncodePNG(w); err != nil {
		return fmt.Errorf("encode png: %w", err)
	}
	return nil
}

// FillRect implements sky.Context.
func (c *Canvas) FillRect(x, y, w, h float64, g sky.LinearGradient) {
	if c.dc == nil || w <= 0 || h <= 0 {
		return
	}
	c.dc.DrawRectangle(x, y, w, h)
	c.dc.SetFillStyle(c.linear(g))
	c.dc.Fill()
}

// FillCircle implements sky.Context. The global alpha is folded into the
// stops; discs smaller than a device pixel come out dimmed by antialiasing.
func (c *Canvas) FillCircle(x, y, r float64, g sky.RadialGradient, alpha float64) {
	if c.dc == nil || r <= 0 || alpha <= 0 {
		return
	}
	c.dc.DrawCircle(x, y, r)
	c.dc.SetFillStyle(c.radial(g, alpha))
	c.dc.Fill()
}

// StrokeLine implements sky.Context with butt caps. gg does not transform
// line widths, so the width is converted to device pixels here.
func (c *Canvas) StrokeLine(x0, y0, x1, y1, width float64, g sky.LinearGradient) {
	if c.dc == nil || width <= 0 {
		return
	}
	c.dc.SetLineCapButt()
	c.dc.SetLineWidth(width * c.scale)
	c.dc.SetStrokeStyle(c.linear(g))
	c.dc.DrawLine(x0, y0, x1, y1)
	c.dc.Stroke()
}
