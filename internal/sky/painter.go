package sky

import (
	"github.com/lucasb-eyer/go-colorful"
)

// Background gradient stops
var (
	bgEdge = colorful.Color{}
	bgMid  = colorful.Color{R: 0x09 / 255.0, G: 0x02 / 255.0, B: 0x27 / 255.0}

	white      = colorful.Color{R: 1, G: 1, B: 1}
	streakTint = colorful.Color{R: 180 / 255.0, G: 180 / 255.0, B: 1}
)

// paintBackground covers the whole surface corner to corner; it is opaque so
// it doubles as the clear step.
func paintBackground(ctx Context, width, height float64) {
	ctx.FillRect(0, 0, width, height, LinearGradient{
		X0: 0, Y0: 0,
		X1: width, Y1: height,
		Stops: []ColorStop{
			{Offset: 0, Color: bgEdge, Alpha: 1},
			{Offset: 0.5, Color: bgMid, Alpha: 1},
			{Offset: 1, Color: bgEdge, Alpha: 1},
		},
	})
}

func paintGalaxyPoint(ctx Context, p *GalaxyPoint) {
	ctx.FillCircle(p.X, p.Y, p.Radius, RadialGradient{
		X: p.X, Y: p.Y, R: p.Radius,
		Stops: []ColorStop{
			{Offset: 0, Color: p.Hue, Alpha: 1},
			{Offset: 1, Color: Transparent, Alpha: 0},
		},
	}, p.Opacity)
}

// paintStar fills the star's disc with a glow that would fade out at twice its radius.
func paintStar(ctx Context, s *Star) {
	ctx.FillCircle(s.X, s.Y, s.Radius, RadialGradient{
		X: s.X, Y: s.Y, R: s.Radius * 2,
		Stops: []ColorStop{
			{Offset: 0, Color: white, Alpha: s.Opacity},
			{Offset: 1, Color: Transparent, Alpha: 0},
		},
	}, 1)
}

// paintStreak draws the trail behind the head, opposite to the velocity.
func paintStreak(ctx Context, s *ShootingStar) {
	tailX := s.X - s.VX*streakTrailLength
	tailY := s.Y - s.VY*streakTrailLength
	ctx.StrokeLine(s.X, s.Y, tailX, tailY, s.Radius, LinearGradient{
		X0: s.X, Y0: s.Y,
		X1: tailX, Y1: tailY,
		Stops: []ColorStop{
			{Offset: 0, Color: white, Alpha: s.Opacity},
			{Offset: 0.2, Color: streakTint, Alpha: s.Opacity * 0.6},
			{Offset: 1, Color: Transparent, Alpha: 0},
		},
	})
}
