package sky

import (
	"errors"
	"time"

	"github.com/lucasb-eyer/go-colorful"
)

// ErrNoContext is returned by a Surface that cannot provide a drawing context.
var ErrNoContext = errors.New("sky: drawing context unavailable")

// ColorStop is a single gradient stop. Alpha is in [0,1].
type ColorStop struct {
	Offset float64
	Color  colorful.Color
	Alpha  float64
}

// Transparent is fully transparent black, the stop used for gradient tails.
var Transparent = colorful.Color{}

// LinearGradient runs from (X0,Y0) at offset 0 to (X1,Y1) at offset 1.
type LinearGradient struct {
	X0, Y0 float64
	X1, Y1 float64
	Stops  []ColorStop
}

// RadialGradient runs from the center (X,Y) at offset 0 to radius R at offset 1.
type RadialGradient struct {
	X, Y  float64
	R     float64
	Stops []ColorStop
}

// Context is the minimal 2D drawing API the engine paints with.
// Coordinates are in engine pixels.
type Context interface {
	// FillRect fills the rectangle with an opaque or translucent linear gradient.
	FillRect(x, y, w, h float64, g LinearGradient)
	// FillCircle fills a disc of radius r, modulated by a global alpha.
	FillCircle(x, y, r float64, g RadialGradient, alpha float64)
	// StrokeLine draws a segment of the given width painted with g.
	StrokeLine(x0, y0, x1, y1, width float64, g LinearGradient)
}

// Surface is the drawable region the engine is bound to.
type Surface interface {
	Resize(width, height int)
	Context() (Context, error)
}

// Viewport reports the host's current viewport size.
type Viewport interface {
	Size() (width, height int)
}

// FrameFunc is invoked once per display refresh.
type FrameFunc func(now time.Time)

// Frames schedules a callback on the host's next display refresh.
type Frames interface {
	RequestFrame(fn FrameFunc) (cancel func())
}

// ResizeSource delivers viewport resize notifications.
type ResizeSource interface {
	OnResize(fn func()) (unsubscribe func())
}

// Host bundles everything a host page provides when mounting the engine.
type Host struct {
	Viewport Viewport
	Surface  Surface
	Frames   Frames
	Resize   ResizeSource
}
