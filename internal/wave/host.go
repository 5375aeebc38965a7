package wave

import "github.com/iburimskiy/bg-waves/internal/config"

// Point is a position in logical pixels.
type Point struct {
	X, Y float64
}

// EventKind identifies an event a Host can deliver.
type EventKind int

const (
	EventResize EventKind = iota
	EventPointerMove
	EventPointerLeave
	EventTouchStart
	EventTouchMove
	EventTouchEnd
	EventScroll
)

func (k EventKind) String() string {
	switch k {
	case EventResize:
		return "resize"
	case EventPointerMove:
		return "pointermove"
	case EventPointerLeave:
		return "pointerleave"
	case EventTouchStart:
		return "touchstart"
	case EventTouchMove:
		return "touchmove"
	case EventTouchEnd:
		return "touchend"
	case EventScroll:
		return "scroll"
	default:
		return "unknown"
	}
}

// Event carries the payload of a host event. Only the fields relevant to
// Kind are set.
type Event struct {
	Kind EventKind

	// Pointer position for EventPointerMove.
	X, Y float64

	// Active touch points, first one first.
	Touches []Point

	// Page scroll offset for EventScroll.
	ScrollY float64
}

// Host is the environment a Renderer runs in: a place to find the canvas,
// an event source, a per-frame scheduler and a theme.
//
// All callbacks must be delivered on one goroutine; the renderer does no
// locking of its own.
type Host interface {
	Canvas(id string) (Canvas, bool)
	Listen(kind EventKind, fn func(Event)) (remove func())

	// RequestFrame schedules fn for the next display frame with a monotonic
	// timestamp in milliseconds, and returns an id for CancelFrame.
	RequestFrame(fn func(ms float64)) int
	CancelFrame(id int)

	// Theme returns the value of a named theme variable, or "" if unset.
	Theme(name string) string
	PixelRatio() float64
	Bounds(fit config.Fit) (w, h float64)
}

// Scroller is implemented by hosts whose page can already be scrolled when
// the renderer mounts. Mount seeds the scroll layout from it.
type Scroller interface {
	ScrollY() float64
}

// Canvas is a 2D drawing target. Drawing coordinates are logical pixels;
// SetScale maps them onto the backing store.
type Canvas interface {
	SetBackingSize(w, h int)
	SetScale(s float64)
	Clear(w, h float64)
	SetGradient(g Gradient)
	StrokePath(pts []Point, alpha, width float64)
	ResetAlpha()
}
