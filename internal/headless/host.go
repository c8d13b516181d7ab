// Package headless provides an in-memory field.Host with a manual clock.
// Frames fire only when Step is called, which makes runs reproducible.
package headless

import (
	"sort"
	"time"

	"github.com/iburimskiy/ambient-field/internal/field"
)

// Host is a deterministic window stand-in.
type Host struct {
	width, height float64
	ratio         float64
	now           float64

	containerID string
	surface     field.Surface

	listeners map[field.EventKind]map[int]func(field.Event)
	nextSub   int
	frames    map[field.FrameID]func(float64)
	nextFrame field.FrameID
}

// Option configures a Host.
type Option func(*Host)

// WithViewport sets the initial logical size and device pixel ratio.
func WithViewport(width, height, ratio float64) Option {
	return func(h *Host) {
		h.width, h.height, h.ratio = width, height, ratio
	}
}

// WithSurface mounts s under id.
func WithSurface(id string, s field.Surface) Option {
	return func(h *Host) {
		h.containerID, h.surface = id, s
	}
}

// New creates a host. Without WithSurface it has no container.
func New(opts ...Option) *Host {
	h := &Host{
		width:     1280,
		height:    720,
		ratio:     1,
		listeners: map[field.EventKind]map[int]func(field.Event){},
		frames:    map[field.FrameID]func(float64){},
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

func (h *Host) Viewport() (float64, float64) { return h.width, h.height }
func (h *Host) DevicePixelRatio() float64    { return h.ratio }
func (h *Host) Now() float64                 { return h.now }

func (h *Host) Container(id string) (field.Surface, bool) {
	if h.surface == nil || id != h.containerID {
		return nil, false
	}
	return h.surface, true
}

type subscription struct {
	host *Host
	kind field.EventKind
	id   int
}

func (s subscription) Unsubscribe() {
	delete(s.host.listeners[s.kind], s.id)
}

func (h *Host) Subscribe(kind field.EventKind, fn func(field.Event)) field.Subscription {
	if h.listeners[kind] == nil {
		h.listeners[kind] = map[int]func(field.Event){}
	}
	h.nextSub++
	h.listeners[kind][h.nextSub] = fn
	return subscription{host: h, kind: kind, id: h.nextSub}
}

// Listeners is the number of attached event handlers.
func (h *Host) Listeners() int {
	n := 0
	for _, m := range h.listeners {
		n += len(m)
	}
	return n
}

func (h *Host) RequestFrame(fn func(float64)) field.FrameID {
	h.nextFrame++
	h.frames[h.nextFrame] = fn
	return h.nextFrame
}

func (h *Host) CancelFrame(id field.FrameID) {
	delete(h.frames, id)
}

// Pending is the number of queued frame callbacks.
func (h *Host) Pending() int { return len(h.frames) }

func (h *Host) dispatch(e field.Event) {
	ids := make([]int, 0, len(h.listeners[e.Kind]))
	for id := range h.listeners[e.Kind] {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	for _, id := range ids {
		if fn, ok := h.listeners[e.Kind][id]; ok {
			fn(e)
		}
	}
}

// Resize changes the viewport and fires a resize event.
func (h *Host) Resize(width, height, ratio float64) {
	h.width, h.height, h.ratio = width, height, ratio
	h.dispatch(field.Event{Kind: field.EventResize})
}

// MovePointer fires a pointer-move event at (x,y).
func (h *Host) MovePointer(x, y float64) {
	h.dispatch(field.Event{Kind: field.EventPointerMove, X: x, Y: y})
}

// LeavePointer fires a pointer-leave event.
func (h *Host) LeavePointer() {
	h.dispatch(field.Event{Kind: field.EventPointerLeave})
}

// Advance moves the clock without firing frames.
func (h *Host) Advance(d time.Duration) {
	h.now += float64(d) / float64(time.Millisecond)
}

// Step advances the clock by d and fires every callback that was queued
// before the step, in request order. It returns how many fired.
func (h *Host) Step(d time.Duration) int {
	h.Advance(d)
	ids := make([]field.FrameID, 0, len(h.frames))
	for id := range h.frames {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	due := make([]func(float64), 0, len(ids))
	for _, id := range ids {
		due = append(due, h.frames[id])
		delete(h.frames, id)
	}
	for _, fn := range due {
		fn(h.now)
	}
	return len(due)
}

// Run steps n frames at a fixed interval.
func (h *Host) Run(n int, interval time.Duration) {
	for i := 0; i < n; i++ {
		h.Step(interval)
	}
}
