package window

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/litescript/ls-nebula/internal/config"
	"github.com/litescript/ls-nebula/internal/sky"
)

var epoch = time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

func newTestGame(t *testing.T, scale float64) *Game {
	t.Helper()
	cfg := config.DefaultConfig()
	cfg.Window.Scale = scale
	e := sky.New(sky.WithSeed(3), sky.WithClock(func() time.Time { return epoch }))
	t.Cleanup(e.Stop)
	return NewGame(context.Background(), e, cfg, nil)
}

func TestLayout_ScalesScreen(t *testing.T) {
	tests := []struct {
		scale        float64
		w, h         int
		wantW, wantH int
	}{
		{1, 640, 480, 640, 480},
		{0.5, 640, 480, 320, 240},
		{0.5, 641, 481, 321, 241},
		{2, 100, 50, 200, 100},
	}

	for _, tt := range tests {
		g := newTestGame(t, tt.scale)
		gotW, gotH := g.layout(tt.w, tt.h)
		if gotW != tt.wantW || gotH != tt.wantH {
			t.Errorf("scale %v layout(%d, %d) = %dx%d, want %dx%d",
				tt.scale, tt.w, tt.h, gotW, gotH, tt.wantW, tt.wantH)
		}
	}
}

func TestAdvance_BeforeStart(t *testing.T) {
	g := newTestGame(t, 1)
	g.layout(320, 200)
	assert.Nil(t, g.advance(epoch))
	assert.False(t, g.engine.Active())
}

func TestStart_UsesLayoutSize(t *testing.T) {
	g := newTestGame(t, 0.5)
	sw, sh := g.layout(320, 200)
	g.start()

	require.True(t, g.engine.Active())
	w, h := g.engine.Size()
	assert.Equal(t, 320, w)
	assert.Equal(t, 200, h)

	img := g.advance(epoch.Add(time.Second / 60))
	require.NotNil(t, img)
	assert.Equal(t, sw, img.Bounds().Dx())
	assert.Equal(t, sh, img.Bounds().Dy())
	assert.Equal(t, uint64(2), g.engine.Stats().Frames)

	// Starting again is a no-op.
	g.start()
	assert.Equal(t, uint64(2), g.engine.Stats().Frames)
}

func TestLayout_ResizesRunningEngine(t *testing.T) {
	g := newTestGame(t, 1)
	g.layout(320, 200)
	g.start()

	sw, sh := g.layout(400, 300)
	w, h := g.engine.Size()
	assert.Equal(t, 400, w)
	assert.Equal(t, 300, h)

	img := g.advance(epoch.Add(time.Second / 60))
	assert.Equal(t, sw, img.Bounds().Dx())
	assert.Equal(t, sh, img.Bounds().Dy())
	assert.Equal(t, 150.0, g.engine.Band().Center)
}

func TestAdvance_AfterStopKeepsLastImage(t *testing.T) {
	g := newTestGame(t, 1)
	g.layout(64, 64)
	g.start()
	g.engine.Stop()

	frames := g.engine.Stats().Frames
	img := g.advance(epoch.Add(time.Second))
	assert.NotNil(t, img)
	assert.Equal(t, frames, g.engine.Stats().Frames)
}
