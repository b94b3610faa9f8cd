// Package sky implements the animated night-sky background: a drifting
// starfield, a soft galaxy band and scripted shooting-star bursts.
//
// An Engine is bound to a host through Start and released through Stop. The
// host supplies a drawing surface, a viewport measurement, a per-refresh frame
// callback and resize notifications; the engine never spawns goroutines and
// must only be driven from the host's loop.
package sky

import (
	"math/rand"
	"time"

	"github.com/litescript/ls-nebula/internal/logging"
)

// Stats is a point-in-time summary of engine state.
type Stats struct {
	Active      bool
	Frames      uint64
	Width       int
	Height      int
	LiveStreaks int
	Spawned     int
	Sequence    SequenceState
}

// Engine owns the particle populations and the drawing context while active.
type Engine struct {
	rng   *rand.Rand
	log   *logging.Logger
	clock func() time.Time

	host        Host
	ctx         Context
	active      bool
	cancelFrame func()
	unsubscribe func()

	width  int
	height int
	band   Band

	stars  []Star
	galaxy []GalaxyPoint
	seq    *Sequencer

	frames uint64
}

// Option configures an Engine.
type Option func(*Engine)

// WithSeed makes the engine deterministic.
func WithSeed(seed int64) Option {
	return func(e *Engine) {
		e.rng = rand.New(rand.NewSource(seed))
	}
}

// WithLogger sets the engine logger.
func WithLogger(l *logging.Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.log = l
		}
	}
}

// WithClock overrides the time source used for the first frame after Start.
func WithClock(clock func() time.Time) Option {
	return func(e *Engine) {
		if clock != nil {
			e.clock = clock
		}
	}
}

// New creates an inactive engine.
func New(opts ...Option) *Engine {
	e := &Engine{
		log:   logging.Discard(),
		clock: time.Now,
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.rng == nil {
		e.rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return e
}

// Start binds the engine to the host and begins animating immediately.
// A host without a usable drawing context leaves the engine inactive.
func (e *Engine) Start(h Host) {
	if e.active {
		return
	}
	if h.Surface == nil {
		e.log.Debug("sky: no surface, staying idle")
		return
	}

	e.host = h
	e.measure()

	ctx, err := h.Surface.Context()
	if err != nil || ctx == nil {
		e.log.Debug("sky: no drawing context (%v), staying idle", err)
		e.host = Host{}
		return
	}
	e.ctx = ctx

	w, ht := float64(e.width), float64(e.height)
	e.band = bandFor(ht)
	e.stars = newStars(e.rng, w, ht)
	e.galaxy = newGalaxyPoints(e.rng, w, e.band)
	e.seq = NewSequencer(defaultPaths(w))
	e.frames = 0
	e.active = true

	if h.Resize != nil {
		e.unsubscribe = h.Resize.OnResize(e.handleResize)
	}

	e.log.Debug("sky: started at %dx%d", e.width, e.height)
	e.frame(e.clock())
}

// Stop unsubscribes from resize, cancels the pending frame and drops all state.
func (e *Engine) Stop() {
	if !e.active {
		return
	}
	e.active = false

	if e.unsubscribe != nil {
		e.unsubscribe()
		e.unsubscribe = nil
	}
	if e.cancelFrame != nil {
		e.cancelFrame()
		e.cancelFrame = nil
	}

	e.stars = nil
	e.galaxy = nil
	e.seq = nil
	e.ctx = nil
	e.host = Host{}

	e.log.Debug("sky: stopped after %d frames", e.frames)
}

// Active reports whether the engine is animating.
func (e *Engine) Active() bool {
	return e.active
}

// Size returns the current surface size.
func (e *Engine) Size() (width, height int) {
	return e.width, e.height
}

// Band returns the band geometry used by the most recent frame.
func (e *Engine) Band() Band {
	return e.band
}

// Stats returns a summary for status displays.
func (e *Engine) Stats() Stats {
	st := Stats{
		Active: e.active,
		Frames: e.frames,
		Width:  e.width,
		Height: e.height,
	}
	if e.seq != nil {
		st.LiveStreaks = len(e.seq.Live())
		st.Spawned = e.seq.Spawned()
		st.Sequence = e.seq.State()
	}
	return st
}

// measure reads the viewport and sizes the surface to match.
func (e *Engine) measure() {
	var w, h int
	if e.host.Viewport != nil {
		w, h = e.host.Viewport.Size()
	}
	if w < 0 {
		w = 0
	}
	if h < 0 {
		h = 0
	}
	e.width, e.height = w, h
	e.host.Surface.Resize(w, h)
}

func (e *Engine) handleResize() {
	if !e.active {
		return
	}
	e.measure()
	e.log.Debug("sky: resized to %dx%d", e.width, e.height)
}

// frame runs one update and render pass, then asks for the next one.
func (e *Engine) frame(now time.Time) {
	if !e.active {
		return
	}
	e.cancelFrame = nil

	w, h := float64(e.width), float64(e.height)
	e.band = bandFor(h)

	paintBackground(e.ctx, w, h)

	updateGalaxy(e.galaxy, e.rng, w, e.band)
	for i := range e.galaxy {
		paintGalaxyPoint(e.ctx, &e.galaxy[i])
	}

	updateStars(e.stars, e.rng, w, h)
	for i := range e.stars {
		paintStar(e.ctx, &e.stars[i])
	}

	e.seq.Tick(now)
	e.seq.Advance(func(s *ShootingStar) {
		paintStreak(e.ctx, s)
	})

	e.frames++

	if e.host.Frames != nil {
		e.cancelFrame = e.host.Frames.RequestFrame(e.frame)
	}
}
