package sky

import "time"

// FrameQueue is a Frames implementation for hosts that own their refresh
// loop. It holds at most one pending callback; the host calls Fire once per
// display refresh.
type FrameQueue struct {
	pending FrameFunc
	gen     uint64
}

// RequestFrame schedules fn for the next Fire, replacing any earlier request.
// The returned cancel only clears this request.
func (q *FrameQueue) RequestFrame(fn FrameFunc) func() {
	q.gen++
	gen := q.gen
	q.pending = fn
	return func() {
		if q.gen == gen {
			q.pending = nil
		}
	}
}

// Pending reports whether a callback is waiting for the next refresh.
func (q *FrameQueue) Pending() bool {
	return q.pending != nil
}

// Fire runs the pending callback, if any. Callbacks may request the next frame.
func (q *FrameQueue) Fire(now time.Time) bool {
	fn := q.pending
	if fn == nil {
		return false
	}
	q.pending = nil
	fn(now)
	return true
}

// ResizeHub fans resize notifications out to subscribers.
type ResizeHub struct {
	subs   map[int]func()
	nextID int
}

// OnResize registers fn and returns a function that removes it.
func (r *ResizeHub) OnResize(fn func()) func() {
	if r.subs == nil {
		r.subs = make(map[int]func())
	}
	id := r.nextID
	r.nextID++
	r.subs[id] = fn
	return func() {
		delete(r.subs, id)
	}
}

// Subscribers returns the number of registered listeners.
func (r *ResizeHub) Subscribers() int {
	return len(r.subs)
}

// Notify calls every subscriber.
func (r *ResizeHub) Notify() {
	for _, fn := range r.subs {
		fn()
	}
}

// StaticViewport is a Viewport with a settable size.
type StaticViewport struct {
	Width, Height int
}

// Size implements Viewport.
func (v *StaticViewport) Size() (int, int) {
	return v.Width, v.Height
}
