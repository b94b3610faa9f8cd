package sky

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPainter_FirstFrameCircles(t *testing.T) {
	th := newTestHost(800, 600)
	e := newTestEngine(t, th)
	rec := th.surface.rec
	require.Len(t, rec.circles, NumGalaxyPoints+NumStars)
	require.Len(t, rec.alphas, len(rec.circles))

	galaxy := e.galaxy[0]
	star := e.stars[0]

	tests := []struct {
		name      string
		index     int
		wantAlpha float64
		wantStop0 ColorStop
		wantR     float64
	}{
		{
			name:      "galaxy point carries opacity as global alpha",
			index:     0,
			wantAlpha: galaxy.Opacity,
			wantStop0: ColorStop{Offset: 0, Color: galaxy.Hue, Alpha: 1},
			wantR:     galaxy.Radius,
		},
		{
			name:      "star carries opacity in its white stop",
			index:     NumGalaxyPoints,
			wantAlpha: 1,
			wantStop0: ColorStop{Offset: 0, Color: white, Alpha: star.Opacity},
			wantR:     star.Radius * 2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := rec.circles[tt.index]
			assert.Equal(t, tt.wantAlpha, rec.alphas[tt.index])
			assert.Equal(t, tt.wantR, g.R)
			require.Len(t, g.Stops, 2)
			assert.Equal(t, tt.wantStop0, g.Stops[0])
			assert.Equal(t, ColorStop{Offset: 1, Color: Transparent, Alpha: 0}, g.Stops[1])
		})
	}
}

func TestPainter_BackgroundCornerToCorner(t *testing.T) {
	th := newTestHost(800, 600)
	newTestEngine(t, th)
	rec := th.surface.rec
	require.Len(t, rec.rects, 1)

	bg := rec.rects[0]
	assert.Equal(t, rectCall{
		X: 0, Y: 0, W: 800, H: 600,
		Gradient: LinearGradient{
			X0: 0, Y0: 0, X1: 800, Y1: 600,
			Stops: []ColorStop{
				{Offset: 0, Color: bgEdge, Alpha: 1},
				{Offset: 0.5, Color: bgMid, Alpha: 1},
				{Offset: 1, Color: bgEdge, Alpha: 1},
			},
		},
	}, bg)

	tests := []struct {
		index int
		hex   string
	}{
		{0, "#000000"},
		{1, "#090227"},
		{2, "#000000"},
	}
	for _, tt := range tests {
		if got := bg.Gradient.Stops[tt.index].Color.Hex(); got != tt.hex {
			t.Errorf("stop %d = %s, want %s", tt.index, got, tt.hex)
		}
	}
}
