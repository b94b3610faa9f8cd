package sky

import (
	"math"
	"time"
)

const (
	streakSpeed       = 8.0
	streakRadius      = 2.0
	streakDecay       = 0.005
	streakTrailLength = 150.0

	// SecondStreakDelay spaces the two streaks of one sequence.
	SecondStreakDelay = time.Second
)

// Path is a scripted shooting-star trajectory.
type Path struct {
	StartX, StartY float64
	EndX, EndY     float64
}

// Length returns the straight-line length of the path.
func (p Path) Length() float64 {
	return math.Hypot(p.EndX-p.StartX, p.EndY-p.StartY)
}

// defaultPaths returns the scripted paths; every path starts at the right edge.
func defaultPaths(width float64) []Path {
	return []Path{
		{StartX: width, StartY: 200, EndX: 200, EndY: 500},
		{StartX: width, StartY: 100, EndX: 400, EndY: 400},
		{StartX: width, StartY: 300, EndX: 600, EndY: 600},
		{StartX: width, StartY: 50, EndX: 300, EndY: 450},
		{StartX: width, StartY: 400, EndX: 100, EndY: 700},
	}
}

// ShootingStar is a live streak.
type ShootingStar struct {
	X, Y      float64
	Radius    float64
	Opacity   float64
	VX, VY    float64
	Traveled  float64
	MaxTravel float64
}

// newShootingStar launches a streak along p at constant speed.
func newShootingStar(p Path) ShootingStar {
	dx := p.EndX - p.StartX
	dy := p.EndY - p.StartY
	dist := math.Hypot(dx, dy)

	var vx, vy float64
	if dist > 0 {
		vx = dx / dist * streakSpeed
		vy = dy / dist * streakSpeed
	}

	return ShootingStar{
		X:         p.StartX,
		Y:         p.StartY,
		Radius:    streakRadius,
		Opacity:   1,
		VX:        vx,
		VY:        vy,
		MaxTravel: dist,
	}
}

// step advances the streak one frame and reports whether it is still alive.
// A streak on a zero-length path dies on its first step.
func (s *ShootingStar) step() bool {
	s.X += s.VX
	s.Y += s.VY
	s.Traveled += math.Hypot(s.VX, s.VY)
	s.Opacity -= streakDecay
	return s.Opacity > 0 && s.MaxTravel > 0 && s.Traveled <= s.MaxTravel
}

// SequenceState tracks one burst of two streaks.
type SequenceState int

const (
	SequenceIdle         SequenceState = iota // ready for a new burst
	SequenceFirstSpawned                      // waiting for the delayed second streak
	SequenceComplete                          // both spawned, waiting for them to fade
)

func (s SequenceState) String() string {
	switch s {
	case SequenceIdle:
		return "idle"
	case SequenceFirstSpawned:
		return "first"
	case SequenceComplete:
		return "complete"
	default:
		return "unknown"
	}
}

// Sequencer spawns shooting-star bursts without overlapping them.
type Sequencer struct {
	paths     []Path
	next      int
	state     SequenceState
	secondDue time.Time
	delay     time.Duration
	live      []ShootingStar
	spawned   int
}

// NewSequencer creates a sequencer cycling through paths.
func NewSequencer(paths []Path) *Sequencer {
	return &Sequencer{
		paths: paths,
		delay: SecondStreakDelay,
	}
}

// State returns the current sequence state.
func (q *Sequencer) State() SequenceState {
	return q.state
}

// Live returns the streaks currently alive. The slice is owned by the sequencer.
func (q *Sequencer) Live() []ShootingStar {
	return q.live
}

// Spawned returns the total number of streaks spawned so far.
func (q *Sequencer) Spawned() int {
	return q.spawned
}

// spawn consumes the next path, wrapping past the end of the list.
func (q *Sequencer) spawn() {
	if len(q.paths) == 0 {
		return
	}
	if q.next >= len(q.paths) || q.next < 0 {
		q.next = 0
	}
	p := q.paths[q.next]
	q.next = (q.next + 1) % len(q.paths)
	q.live = append(q.live, newShootingStar(p))
	q.spawned++
}

// Tick runs the spawn policy for the frame at now. It must run before Advance.
func (q *Sequencer) Tick(now time.Time) {
	if q.state == SequenceFirstSpawned && !now.Before(q.secondDue) {
		q.spawn()
		q.state = SequenceComplete
	}

	if q.state == SequenceIdle && len(q.live) == 0 {
		q.spawn()
		q.state = SequenceFirstSpawned
		q.secondDue = now.Add(q.delay)
	}

	if q.state == SequenceComplete && len(q.live) == 0 {
		q.state = SequenceIdle
	}
}

// Advance steps every live streak, newest first, removing the dead ones.
// visit is called for each surviving streak after it moved.
func (q *Sequencer) Advance(visit func(*ShootingStar)) {
	for i := len(q.live) - 1; i >= 0; i-- {
		if !q.live[i].step() {
			q.live = append(q.live[:i], q.live[i+1:]...)
			continue
		}
		if visit != nil {
			visit(&q.live[i])
		}
	}
}
