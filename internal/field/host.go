package field

import "github.com/iburimskiy/ambient-field/internal/palette"

// EventKind identifies a window-level input event.
type EventKind int

const (
	EventResize EventKind = iota
	EventPointerMove
	EventPointerLeave
)

func (k EventKind) String() string {
	switch k {
	case EventResize:
		return "resize"
	case EventPointerMove:
		return "pointer-move"
	case EventPointerLeave:
		return "pointer-leave"
	}
	return "unknown"
}

// Event is delivered to subscribers. X and Y are logical pixels and only
// meaningful for EventPointerMove.
type Event struct {
	Kind EventKind
	X, Y float64
}

// Subscription is a handle to an attached event listener.
type Subscription interface {
	Unsubscribe()
}

// FrameID identifies a pending frame callback.
type FrameID uint64

// Host is the window the renderer lives in. All callbacks are invoked on
// the single goroutine that drives the host.
type Host interface {
	// Viewport returns the logical size in pixels.
	Viewport() (width, height float64)
	DevicePixelRatio() float64
	// Now returns a monotonic timestamp in milliseconds.
	Now() float64
	// Container returns the surface mounted at id, if the host has one.
	Container(id string) (Surface, bool)
	Subscribe(kind EventKind, fn func(Event)) Subscription
	// RequestFrame queues fn for the next display refresh.
	RequestFrame(fn func(now float64)) FrameID
	// CancelFrame drops a queued callback. Unknown ids are ignored.
	CancelFrame(id FrameID)
}

// Rect is an axis-aligned rectangle in logical pixels.
type Rect struct {
	X, Y, W, H float64
}

// Surface is a 2D drawing target. Once SetScale is applied every command
// takes logical coordinates.
type Surface interface {
	// Resize sets the backing resolution in device pixels.
	Resize(width, height int)
	Size() (width, height int)
	SetScale(scale float64)
	// FillLinear fills r with g projected onto the line (x0,y0)→(x1,y1).
	FillLinear(r Rect, x0, y0, x1, y1 float64, g palette.Gradient)
	// FillRadial fills the disc's bounding square with g mapped over [0,radius].
	FillRadial(cx, cy, radius float64, g palette.Gradient)
	StrokeLine(x0, y0, x1, y1, width float64, c palette.RGBA)
	FillCircle(cx, cy, r float64, c palette.RGBA)
}
