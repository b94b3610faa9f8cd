package sky

import (
	"math"
	"math/rand"

	"github.com/lucasb-eyer/go-colorful"
)

const (
	// Population sizes
	NumStars        = 1000
	NumGalaxyPoints = 200

	// Star attributes (upper bounds of uniform rolls)
	starMaxRadius = 2.0
	starMaxSpeed  = 0.9

	// Galaxy point attributes
	galaxyMinRadius   = 20.0
	galaxyRadiusRange = 50.0
	galaxyMaxOpacity  = 0.3
	galaxyMaxSpeed    = 0.5

	// Band geometry, as fractions of surface height
	bandCenterFrac = 0.5
	bandWidthFrac  = 0.4
)

// Galaxy hues
var (
	hueIndigo = colorful.Color{R: 0x4B / 255.0, G: 0, B: 0x82 / 255.0}
	huePurple = colorful.Color{R: 0x80 / 255.0, G: 0, B: 0x80 / 255.0}
)

// Star is an ambient starfield point.
type Star struct {
	X, Y    float64
	Radius  float64
	Opacity float64
	Speed   float64 // px per frame, leftwards
}

// GalaxyPoint is a soft glow confined to the galaxy band.
type GalaxyPoint struct {
	X, Y    float64
	Radius  float64
	Opacity float64
	Hue     colorful.Color
	Speed   float64
}

// Band is the horizontal strip galaxy points live in.
type Band struct {
	Center float64
	Width  float64
}

// HalfWidth returns half the band width.
func (b Band) HalfWidth() float64 {
	return b.Width / 2
}

// Contains reports whether y lies within center ± half width.
func (b Band) Contains(y float64) bool {
	return y >= b.Center-b.HalfWidth() && y <= b.Center+b.HalfWidth()
}

// bandFor derives band geometry from the surface height. Negative heights
// collapse to an empty band at 0.
func bandFor(height float64) Band {
	if height < 0 || math.IsNaN(height) {
		height = 0
	}
	return Band{
		Center: height * bandCenterFrac,
		Width:  height * bandWidthFrac,
	}
}

// rollInBand returns a uniformly distributed y within the band.
func rollInBand(rng *rand.Rand, b Band) float64 {
	return b.Center + (rng.Float64()-0.5)*b.Width
}

func newStars(rng *rand.Rand, width, height float64) []Star {
	stars := make([]Star, NumStars)
	for i := range stars {
		stars[i] = Star{
			X:       rng.Float64() * width,
			Y:       rng.Float64() * height,
			Radius:  rng.Float64() * starMaxRadius,
			Opacity: rng.Float64(),
			Speed:   rng.Float64() * starMaxSpeed,
		}
	}
	return stars
}

func newGalaxyPoints(rng *rand.Rand, width float64, band Band) []GalaxyPoint {
	points := make([]GalaxyPoint, NumGalaxyPoints)
	for i := range points {
		x := rng.Float64() * width
		y := rollInBand(rng, band)
		hue := huePurple
		if rng.Float64() > 0.5 {
			hue = hueIndigo
		}
		points[i] = GalaxyPoint{
			X:       x,
			Y:       y,
			Radius:  rng.Float64()*galaxyRadiusRange + galaxyMinRadius,
			Opacity: rng.Float64() * galaxyMaxOpacity,
			Hue:     hue,
			Speed:   rng.Float64() * galaxyMaxSpeed,
		}
	}
	return points
}

// updateStars drifts every star left and recycles those past the left edge.
func updateStars(stars []Star, rng *rand.Rand, width, height float64) {
	for i := range stars {
		s := &stars[i]
		s.X -= s.Speed
		if s.X < 0 {
			s.X = width
			s.Y = rng.Float64() * height
		}
	}
}

// updateGalaxy drifts galaxy points and re-rolls y within the current band on wrap.
func updateGalaxy(points []GalaxyPoint, rng *rand.Rand, width float64, band Band) {
	for i := range points {
		p := &points[i]
		p.X -= p.Speed
		if p.X < -p.Radius {
			p.X = width + p.Radius
			p.Y = rollInBand(rng, band)
		}
	}
}
