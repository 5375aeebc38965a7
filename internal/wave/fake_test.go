package wave

import (
	"github.com/iburimskiy/bg-waves/internal/config"
)

type stroke struct {
	pts   []Point
	alpha float64
	width float64
}

type fakeCanvas struct {
	backingW, backingH int
	scale              float64
	clears             int
	gradient           Gradient
	strokes            []stroke
	resets             int
}

func (c *fakeCanvas) SetBackingSize(w, h int) { c.backingW, c.backingH = w, h }
func (c *fakeCanvas) SetScale(s float64)      { c.scale = s }
func (c *fakeCanvas) Clear(w, h float64) {
	c.clears++
	c.strokes = c.strokes[:0]
}
func (c *fakeCanvas) SetGradient(g Gradient) { c.gradient = g }
func (c *fakeCanvas) StrokePath(pts []Point, alpha, width float64) {
	c.strokes = append(c.strokes, stroke{pts: append([]Point(nil), pts...), alpha: alpha, width: width})
}
func (c *fakeCanvas) ResetAlpha() { c.resets++ }

type fakeHost struct {
	canvas *fakeCanvas // nil means no canvas element

	width, height float64
	ratio         float64
	theme         map[string]string

	listeners map[EventKind][]func(Event)
	listens   int
	removed   int

	nextID    int
	pending   map[int]func(float64)
	requests  int
	cancelled []int
}

func newFakeHost(w, h float64) *fakeHost {
	return &fakeHost{
		canvas:    &fakeCanvas{},
		width:     w,
		height:    h,
		ratio:     1,
		theme:     map[string]string{},
		listeners: map[EventKind][]func(Event){},
		pending:   map[int]func(float64){},
	}
}

func (h *fakeHost) Canvas(id string) (Canvas, bool) {
	if h.canvas == nil || id != config.CanvasID {
		return nil, false
	}
	return h.canvas, true
}

func (h *fakeHost) Listen(kind EventKind, fn func(Event)) func() {
	h.listens++
	h.listeners[kind] = append(h.listeners[kind], fn)
	idx := len(h.listeners[kind]) - 1
	return func() {
		h.removed++
		h.listeners[kind][idx] = nil
	}
}

func (h *fakeHost) emit(e Event) {
	for _, fn := range h.listeners[e.Kind] {
		if fn != nil {
			fn(e)
		}
	}
}

func (h *fakeHost) RequestFrame(fn func(float64)) int {
	h.requests++
	h.nextID++
	h.pending[h.nextID] = fn
	return h.nextID
}

func (h *fakeHost) CancelFrame(id int) {
	h.cancelled = append(h.cancelled, id)
	delete(h.pending, id)
}

// runFrame fires every pending callback once with timestamp ms.
func (h *fakeHost) runFrame(ms float64) {
	pending := h.pending
	h.pending = map[int]func(float64){}
	for _, fn := range pending {
		fn(ms)
	}
}

func (h *fakeHost) Theme(name string) string             { return h.theme[name] }
func (h *fakeHost) PixelRatio() float64                  { return h.ratio }
func (h *fakeHost) Bounds(config.Fit) (float64, float64) { return h.width, h.height }

// testConfig is the infinite preset without the fade-in, so alphas are stable.
func testConfig() config.Wave {
	cfg := config.Default()
	cfg.FadeIn = 0
	return cfg
}

// scrolledHost is a fakeHost whose page starts scrolled.
type scrolledHost struct {
	*fakeHost
	y float64
}

func (h scrolledHost) ScrollY() float64 { return h.y }
