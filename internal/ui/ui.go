// Package ui provides the terminal host for the sky engine using Bubble Tea.
package ui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/litescript/ls-nebula/internal/config"
	"github.com/litescript/ls-nebula/internal/logging"
	"github.com/litescript/ls-nebula/internal/raster"
	"github.com/litescript/ls-nebula/internal/sky"
	"github.com/litescript/ls-nebula/internal/version"
)

// FrameMsg is the display refresh tick. Each one fires the pending engine
// frame, if any.
type FrameMsg time.Time

// Model is the root Bubble Tea model. The engine, canvas and queues are
// shared by pointer so value copies made by Bubble Tea stay in sync.
type Model struct {
	engine   *sky.Engine
	canvas   *raster.Canvas
	frames   *sky.FrameQueue
	resize   *sky.ResizeHub
	viewport *sky.StaticViewport
	meter    *fpsMeter
	log      *logging.Logger

	interval  time.Duration
	pixelSize int

	width     int
	height    int
	ready     bool
	showStats bool
}

// New creates the terminal host for engine. The engine is started on the
// first window size message and stopped on quit.
func New(engine *sky.Engine, cfg *config.Config, log *logging.Logger) Model {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	if log == nil {
		log = logging.Discard()
	}
	px := cfg.Terminal.PixelSize
	if px <= 0 {
		px = config.DefaultConfig().Terminal.PixelSize
	}

	return Model{
		engine:    engine,
		canvas:    raster.New(1 / float64(px)),
		frames:    &sky.FrameQueue{},
		resize:    &sky.ResizeHub{},
		viewport:  &sky.StaticViewport{},
		meter:     &fpsMeter{},
		log:       log,
		interval:  cfg.FrameInterval(),
		pixelSize: px,
	}
}

// Init implements tea.Model. Nothing runs until the terminal size is known.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			m.engine.Stop()
			return m, tea.Quit
		case "i":
			m.showStats = !m.showStats
		}
		return m, nil

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.viewport.Width = msg.Width * m.pixelSize
		m.viewport.Height = msg.Height * 2 * m.pixelSize

		if !m.ready {
			m.ready = true
			m.engine.Start(m.host())
			m.log.Debug("ui: started engine at %dx%d cells", msg.Width, msg.Height)
			return m, m.nextFrame()
		}
		// A tick is already in flight; the next frame picks up the new size.
		m.resize.Notify()
		return m, nil

	case FrameMsg:
		now := time.Time(msg)
		if m.frames.Fire(now) {
			m.meter.observe(now)
		}
		return m, m.nextFrame()
	}

	return m, nil
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Initializing..."
	}

	lines := RenderHalfBlocks(m.canvas.Image())
	if m.showStats && len(lines) > 0 {
		lines[len(lines)-1] = m.renderStats()
	}
	return strings.Join(lines, "\n")
}

// Engine returns the engine driven by this model.
func (m Model) Engine() *sky.Engine {
	return m.engine
}

func (m Model) host() sky.Host {
	return sky.Host{
		Viewport: m.viewport,
		Surface:  m.canvas,
		Frames:   m.frames,
		Resize:   m.resize,
	}
}

// nextFrame schedules a refresh only while the engine wants one, so a
// stopped or idle engine lets the program go quiet. The terminal has no
// vsync; this one pending tick plays the part of an animation frame request.
func (m Model) nextFrame() tea.Cmd {
	if !m.frames.Pending() {
		return nil
	}
	return tea.Tick(m.interval, func(t time.Time) tea.Msg {
		return FrameMsg(t)
	})
}

func (m Model) renderStats() string {
	dimStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("60"))
	accentStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#9D4EDD"))

	st := m.engine.Stats()
	sep := dimStyle.Render(" · ")

	var b strings.Builder
	b.WriteString(" ")
	b.WriteString(renderTitle(version.String()))
	b.WriteString(sep)
	b.WriteString(accentStyle.Render(fmt.Sprintf("%.1f fps", m.meter.fps)))
	b.WriteString(sep)
	b.WriteString(dimStyle.Render(fmt.Sprintf("streaks %d", st.LiveStreaks)))
	b.WriteString(sep)
	b.WriteString(dimStyle.Render(st.Sequence.String()))
	b.WriteString(sep)
	b.WriteString(dimStyle.Render(fmt.Sprintf("%dx%d", st.Width, st.Height)))

	return lipgloss.NewStyle().
		Width(m.width).
		MaxWidth(m.width).
		MaxHeight(1).
		Background(lipgloss.Color("#000000")).
		Render(b.String())
}

// titleStops runs blue -> purple -> magenta -> pink.
var titleStops = []colorful.Color{
	mustHex("#3B82F6"),
	mustHex("#8B5CF6"),
	mustHex("#D946EF"),
	mustHex("#EC4899"),
}

// renderTitle colours text with a horizontal nebula gradient.
func renderTitle(text string) string {
	runes := []rune(text)
	var b strings.Builder
	for i, r := range runes {
		c := gradientColor(i, len(runes))
		style := lipgloss.NewStyle().Foreground(lipgloss.Color(c.Hex())).Bold(true)
		b.WriteString(style.Render(string(r)))
	}
	return b.String()
}

// gradientColor returns the title colour at position col of width.
func gradientColor(col, width int) colorful.Color {
	if width <= 1 {
		return titleStops[0]
	}
	t := float64(col) / float64(width-1)
	span := t * float64(len(titleStops)-1)
	i := int(span)
	if i >= len(titleStops)-1 {
		return titleStops[len(titleStops)-1]
	}
	return titleStops[i].BlendRgb(titleStops[i+1], span-float64(i)).Clamped()
}

func mustHex(s string) colorful.Color {
	c, err := colorful.Hex(s)
	if err != nil {
		panic(err)
	}
	return c
}

// fpsMeter smooths the observed frame rate.
type fpsMeter struct {
	last time.Time
	fps  float64
}

func (f *fpsMeter) observe(now time.Time) {
	if !f.last.IsZero() {
		if dt := now.Sub(f.last).Seconds(); dt > 0 {
			inst := 1 / dt
			if f.fps == 0 {
				f.fps = inst
			} else {
				f.fps = f.fps*0.9 + inst*0.1
			}
		}
	}
	f.last = now
}
