//go:build js && wasm

package dom

import (
	"strings"
	"syscall/js"

	"github.com/iburimskiy/bg-waves/internal/config"
	"github.com/iburimskiy/bg-waves/internal/wave"
)

var (
	_ wave.Host     = (*Host)(nil)
	_ wave.Scroller = (*Host)(nil)
	_ wave.Canvas   = (*Canvas)(nil)
)

// Host implements wave.Host over the page's window and document.
type Host struct {
	window   js.Value
	document js.Value
	passive  js.Value

	canvas *Canvas
	fit    config.Fit

	nextFrame int
	frames    map[int]frame
}

type frame struct {
	raf js.Value // id returned by requestAnimationFrame
	fn  js.Func
}

// New returns a host bound to the global window.
func New() *Host {
	window := js.Global()
	return &Host{
		window:   window,
		document: window.Get("document"),
		passive:  js.ValueOf(map[string]any{"passive": true}),
		fit:      config.FitContainer,
		frames:   map[int]frame{},
	}
}

func (h *Host) Canvas(id string) (wave.Canvas, bool) {
	el := h.document.Call("getElementById", id)
	if el.IsNull() || el.IsUndefined() {
		return nil, false
	}
	ctx := el.Call("getContext", "2d", map[string]any{"alpha": true})
	if ctx.IsNull() || ctx.IsUndefined() {
		return nil, false
	}
	h.canvas = &Canvas{host: h, el: el, ctx: ctx}
	return h.canvas, true
}

func (h *Host) Listen(kind wave.EventKind, fn func(wave.Event)) func() {
	name := eventType(kind)
	if name == "" {
		return nil
	}
	cb := js.FuncOf(func(_ js.Value, args []js.Value) any {
		e := wave.Event{Kind: kind}
		var ev js.Value
		if len(args) > 0 {
			ev = args[0]
		}
		switch kind {
		case wave.EventPointerMove:
			e.X = ev.Get("clientX").Float()
			e.Y = ev.Get("clientY").Float()
		case wave.EventTouchStart, wave.EventTouchMove, wave.EventTouchEnd:
			e.Touches = touches(ev.Get("touches"))
		case wave.EventScroll:
			e.ScrollY = h.ScrollY()
		}
		fn(e)
		return nil
	})
	h.window.Call("addEventListener", name, cb, h.passive)
	return func() {
		h.window.Call("removeEventListener", name, cb, h.passive)
		cb.Release()
	}
}

func touches(list js.Value) []wave.Point {
	if list.IsUndefined() || list.IsNull() {
		return nil
	}
	n := list.Get("length").Int()
	pts := make([]wave.Point, n)
	for i := range pts {
		t := list.Index(i)
		pts[i] = wave.Point{X: t.Get("clientX").Float(), Y: t.Get("clientY").Float()}
	}
	return pts
}

func (h *Host) RequestFrame(fn func(ms float64)) int {
	h.nextFrame++
	id := h.nextFrame
	var cb js.Func
	cb = js.FuncOf(func(_ js.Value, args []js.Value) any {
		delete(h.frames, id)
		cb.Release()
		ms := 0.0
		if len(args) > 0 {
			ms = args[0].Float()
		}
		fn(ms)
		return nil
	})
	h.frames[id] = frame{raf: h.window.Call("requestAnimationFrame", cb), fn: cb}
	return id
}

func (h *Host) CancelFrame(id int) {
	f, ok := h.frames[id]
	if !ok {
		return
	}
	delete(h.frames, id)
	h.window.Call("cancelAnimationFrame", f.raf)
	f.fn.Release()
}

// Theme reads a CSS custom property from the root element.
func (h *Host) Theme(name string) string {
	style := h.window.Call("getComputedStyle", h.document.Get("documentElement"))
	return strings.TrimSpace(style.Call("getPropertyValue", name).String())
}

func (h *Host) PixelRatio() float64 {
	r := h.window.Get("devicePixelRatio")
	if r.Type() != js.TypeNumber {
		return 1
	}
	return r.Float()
}

// Bounds is the viewport size, or the canvas parent's box for the
// container fit.
func (h *Host) Bounds(fit config.Fit) (float64, float64) {
	h.fit = fit
	if fit == config.FitContainer && h.canvas != nil {
		if parent := h.canvas.el.Get("parentElement"); !parent.IsNull() && !parent.IsUndefined() {
			rect := parent.Call("getBoundingClientRect")
			return rect.Get("width").Float(), rect.Get("height").Float()
		}
	}
	return h.window.Get("innerWidth").Float(), h.window.Get("innerHeight").Float()
}

// ScrollY is the page's vertical scroll offset.
func (h *Host) ScrollY() float64 {
	y := h.window.Get("scrollY")
	if y.Type() != js.TypeNumber {
		return 0
	}
	return y.Float()
}
