// Package window hosts the sky engine in a desktop window using ebiten.
//
// ebiten's Layout reports the window size and drives engine resizes; Draw is
// the display refresh and fires the pending engine frame before uploading the
// software raster to the screen.
package window

import (
	"context"
	"fmt"
	"image"
	"math"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/litescript/ls-nebula/internal/config"
	"github.com/litescript/ls-nebula/internal/logging"
	"github.com/litescript/ls-nebula/internal/raster"
	"github.com/litescript/ls-nebula/internal/sky"
)

// Game implements ebiten.Game around a sky engine.
type Game struct {
	ctx    context.Context
	engine *sky.Engine
	canvas *raster.Canvas
	frames *sky.FrameQueue
	resize *sky.ResizeHub
	vp     *sky.StaticViewport
	log    *logging.Logger
	clock  func() time.Time

	started bool
}

// NewGame creates a window host for engine. The engine starts on the first
// Update after ebiten has reported a layout.
func NewGame(ctx context.Context, engine *sky.Engine, cfg *config.Config, log *logging.Logger) *Game {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	if log == nil {
		log = logging.Discard()
	}
	return &Game{
		ctx:    ctx,
		engine: engine,
		canvas: raster.New(cfg.Window.Scale),
		frames: &sky.FrameQueue{},
		resize: &sky.ResizeHub{},
		vp:     &sky.StaticViewport{},
		log:    log,
		clock:  time.Now,
	}
}

// Run opens the window and blocks until it is closed, ESC or q is pressed,
// or ctx is cancelled.
func Run(ctx context.Context, engine *sky.Engine, cfg *config.Config, log *logging.Logger) error {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	ebiten.SetWindowSize(cfg.Window.Width, cfg.Window.Height)
	ebiten.SetWindowTitle(cfg.Window.Title)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowClosingHandled(true)
	ebiten.SetTPS(cfg.FPS)

	g := NewGame(ctx, engine, cfg, log)
	if err := ebiten.RunGame(g); err != nil {
		return fmt.Errorf("run window: %w", err)
	}
	return nil
}

// Update implements ebiten.Game.
func (g *Game) Update() error {
	if g.quitRequested() {
		g.engine.Stop()
		g.log.Info("window: closing after %d frames", g.engine.Stats().Frames)
		return ebiten.Termination
	}
	g.start()
	return nil
}

func (g *Game) quitRequested() bool {
	if g.ctx != nil && g.ctx.Err() != nil {
		return true
	}
	if ebiten.IsWindowBeingClosed() {
		return true
	}
	return inpututil.IsKeyJustPressed(ebiten.KeyEscape) || inpututil.IsKeyJustPressed(ebiten.KeyQ)
}

// Draw implements ebiten.Game.
func (g *Game) Draw(screen *ebiten.Image) {
	img := g.advance(g.clock())
	if img == nil || img.Bounds().Size() != screen.Bounds().Size() {
		return
	}
	screen.WritePixels(img.Pix)
}

// Layout implements ebiten.Game. The outside size is the engine viewport;
// the screen is that size times the render scale.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.layout(outsideWidth, outsideHeight)
}

func (g *Game) layout(w, h int) (int, int) {
	if w != g.vp.Width || h != g.vp.Height {
		g.vp.Width, g.vp.Height = w, h
		if g.started {
			g.resize.Notify()
		}
	}
	scale := g.canvas.Scale()
	return int(math.Ceil(float64(w) * scale)), int(math.Ceil(float64(h) * scale))
}

func (g *Game) start() {
	if g.started {
		return
	}
	g.started = true
	g.engine.Start(sky.Host{
		Viewport: g.vp,
		Surface:  g.canvas,
		Frames:   g.frames,
		Resize:   g.resize,
	})
	g.log.Debug("window: started engine at %dx%d", g.vp.Width, g.vp.Height)
}

// advance fires the pending engine frame and returns the raster.
func (g *Game) advance(now time.Time) *image.RGBA {
	if !g.started {
		return nil
	}
	g.frames.Fire(now)
	return g.canvas.Image()
}
