package field

import (
	"sort"

	"github.com/iburimskiy/ambient-field/internal/palette"
)

// fakeHost is a scripted host: frames fire only when the test calls step.
type fakeHost struct {
	width, height float64
	ratio         float64
	now           float64

	surface   Surface
	container string

	subs      map[EventKind]map[int]func(Event)
	nextSub   int
	frames    map[FrameID]func(float64)
	nextFrame FrameID
}

func newFakeHost(w, h, ratio float64, s Surface) *fakeHost {
	return &fakeHost{
		width:     w,
		height:    h,
		ratio:     ratio,
		surface:   s,
		container: "ambient-field",
		subs:      map[EventKind]map[int]func(Event){},
		frames:    map[FrameID]func(float64){},
	}
}

func (h *fakeHost) Viewport() (float64, float64) { return h.width, h.height }
func (h *fakeHost) DevicePixelRatio() float64    { return h.ratio }
func (h *fakeHost) Now() float64                 { return h.now }

func (h *fakeHost) Container(id string) (Surface, bool) {
	if h.surface == nil || id != h.container {
		return nil, false
	}
	return h.surface, true
}

type fakeSub struct {
	host *fakeHost
	kind EventKind
	id   int
}

func (s fakeSub) Unsubscribe() { delete(s.host.subs[s.kind], s.id) }

func (h *fakeHost) Subscribe(kind EventKind, fn func(Event)) Subscription {
	if h.subs[kind] == nil {
		h.subs[kind] = map[int]func(Event){}
	}
	h.nextSub++
	h.subs[kind][h.nextSub] = fn
	return fakeSub{host: h, kind: kind, id: h.nextSub}
}

func (h *fakeHost) listeners() int {
	n := 0
	for _, m := range h.subs {
		n += len(m)
	}
	return n
}

func (h *fakeHost) RequestFrame(fn func(float64)) FrameID {
	h.nextFrame++
	h.frames[h.nextFrame] = fn
	return h.nextFrame
}

func (h *fakeHost) CancelFrame(id FrameID) { delete(h.frames, id) }

func (h *fakeHost) emit(e Event) {
	for _, fn := range h.subs[e.Kind] {
		fn(e)
	}
}

func (h *fakeHost) resize(w, hgt float64) {
	h.width, h.height = w, hgt
	h.emit(Event{Kind: EventResize})
}

func (h *fakeHost) move(x, y float64) {
	h.emit(Event{Kind: EventPointerMove, X: x, Y: y})
}

// pending returns the queued callbacks in request order.
func (h *fakeHost) pending() []func(float64) {
	ids := make([]FrameID, 0, len(h.frames))
	for id := range h.frames {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	out := make([]func(float64), 0, len(ids))
	for _, id := range ids {
		out = append(out, h.frames[id])
	}
	return out
}

// step advances the clock by dt milliseconds and fires every queued frame.
func (h *fakeHost) step(dt float64) int {
	h.now += dt
	due := h.pending()
	h.frames = map[FrameID]func(float64){}
	for _, fn := range due {
		fn(h.now)
	}
	return len(due)
}

type op struct {
	kind  string
	args  []float64
	color palette.RGBA
	grad  palette.Gradient
}

// recordingSurface keeps every draw command it receives.
type recordingSurface struct {
	width, height int
	scale         float64
	ops           []op
	panicOn       string
	panics        int
}

func (s *recordingSurface) Resize(w, h int)     { s.width, s.height = w, h }
func (s *recordingSurface) Size() (int, int)    { return s.width, s.height }
func (s *recordingSurface) SetScale(sc float64) { s.scale = sc }

func (s *recordingSurface) record(o op) {
	if s.panicOn == o.kind && s.panics > 0 {
		s.panics--
		panic("surface lost: " + o.kind)
	}
	s.ops = append(s.ops, o)
}

func (s *recordingSurface) FillLinear(r Rect, x0, y0, x1, y1 float64, g palette.Gradient) {
	s.record(op{kind: "linear", args: []float64{r.X, r.Y, r.W, r.H, x0, y0, x1, y1}, grad: g})
}

func (s *recordingSurface) FillRadial(cx, cy, radius float64, g palette.Gradient) {
	s.record(op{kind: "radial", args: []float64{cx, cy, radius}, grad: g})
}

func (s *recordingSurface) StrokeLine(x0, y0, x1, y1, width float64, c palette.RGBA) {
	s.record(op{kind: "line", args: []float64{x0, y0, x1, y1, width}, color: c})
}

func (s *recordingSurface) FillCircle(cx, cy, r float64, c palette.RGBA) {
	s.record(op{kind: "circle", args: []float64{cx, cy, r}, color: c})
}

func (s *recordingSurface) count(kind string) int {
	n := 0
	for _, o := range s.ops {
		if o.kind == kind {
			n++
		}
	}
	return n
}

func (s *recordingSurface) reset() { s.ops = nil }
