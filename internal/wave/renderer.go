// Package wave draws the animated wave-line background.
//
// A Renderer is mounted on a Host, which supplies the canvas, input events,
// the frame scheduler and theme colours. Everything the renderer mutates
// (pointer, scroll offset, surface size) is owned by the Renderer value, so
// several renderers can run side by side and tests can drive one frame at a
// time with a fake host.
package wave

import (
	"io"
	"math"

	"github.com/charmbracelet/log"
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"

	"github.com/iburimskiy/bg-waves/internal/config"
)

// LevelSource supplies a loudness in [0,1] that scales the wave amplitude.
type LevelSource interface {
	Level() float64
}

// Option configures a Renderer at mount time.
type Option func(*Renderer)

// WithLogger sets the logger used for mount and resize diagnostics.
func WithLogger(l *log.Logger) Option {
	return func(r *Renderer) {
		if l != nil {
			r.log = l
		}
	}
}

// WithLevel makes the wave amplitude follow src.
func WithLevel(src LevelSource) Option {
	return func(r *Renderer) { r.level = src }
}

// Renderer draws the wave lines on a Canvas every scheduled frame.
type Renderer struct {
	cfg    config.Wave
	host   Host
	canvas Canvas
	log    *log.Logger
	level  LevelSource

	ratio   float64
	surface Surface
	pointer Pointer
	scrollY float64

	teal, blue string
	from, to   RGBA

	fade      *gween.Tween
	fadeAlpha float64

	running bool
	frameID int
	tickFn  func(float64)
	frames  int
	lastMS  float64

	removers []func()
	path     []Point
}

// Mount attaches a renderer to the canvas named by cfg.CanvasID. If the host
// has no such canvas it returns false without registering listeners or
// scheduling frames. The renderer does not draw until Start is called.
func Mount(h Host, cfg config.Wave, opts ...Option) (*Renderer, bool) {
	canvas, ok := h.Canvas(cfg.CanvasID)
	if !ok || canvas == nil {
		return nil, false
	}

	r := &Renderer{
		cfg:       cfg,
		host:      h,
		canvas:    canvas,
		log:       log.New(io.Discard),
		ratio:     ClampRatio(h.PixelRatio(), cfg.MaxPixelRatio),
		fadeAlpha: 1,
	}
	for _, opt := range opts {
		opt(r)
	}
	r.tickFn = r.tick

	r.teal = themeColor(h, cfg.Theme.TealVar, cfg.Theme.TealFallback)
	r.blue = themeColor(h, cfg.Theme.BlueVar, cfg.Theme.BlueFallback)
	r.from = ParseHex(r.teal, cfg.Opacity)
	r.to = ParseHex(r.blue, cfg.Opacity)

	if cfg.FadeIn > 0 {
		r.fade = gween.New(0, 1, float32(cfg.FadeIn), ease.OutQuad)
		r.fadeAlpha = 0
	}

	r.listen(EventResize, func(Event) { r.resize() })
	r.listen(EventPointerMove, func(e Event) { r.pointer.Move(e.X, e.Y) })
	r.listen(EventPointerLeave, func(Event) { r.pointer.Leave() })
	r.listen(EventTouchStart, r.onTouch)
	r.listen(EventTouchMove, r.onTouch)
	r.listen(EventTouchEnd, func(Event) { r.pointer.Leave() })
	if cfg.Layout == config.LayoutScroll {
		r.listen(EventScroll, func(e Event) { r.scrollY = e.ScrollY })
		if s, ok := h.(Scroller); ok {
			r.scrollY = s.ScrollY()
		}
	}

	r.resize()
	r.log.Debug("mounted", "canvas", cfg.CanvasID, "layout", cfg.Layout, "ratio", r.ratio,
		"teal", r.teal, "blue", r.blue)
	return r, true
}

func themeColor(h Host, name, fallback string) string {
	if name == "" {
		return fallback
	}
	if v := h.Theme(name); v != "" {
		return v
	}
	return fallback
}

func (r *Renderer) listen(kind EventKind, fn func(Event)) {
	if remove := r.host.Listen(kind, fn); remove != nil {
		r.removers = append(r.removers, remove)
	}
}

func (r *Renderer) onTouch(e Event) {
	if len(e.Touches) == 0 {
		return
	}
	r.pointer.Move(e.Touches[0].X, e.Touches[0].Y)
}

func (r *Renderer) resize() {
	w, h := r.host.Bounds(r.cfg.Fit)
	r.surface = NewSurface(w, h, r.ratio)
	r.canvas.SetBackingSize(r.surface.BackingWidth, r.surface.BackingHeight)
	r.canvas.SetScale(r.ratio)
	r.log.Debug("resize", "width", r.surface.Width, "height", r.surface.Height,
		"backing_width", r.surface.BackingWidth, "backing_height", r.surface.BackingHeight)
}

// Start begins the self-rescheduling frame loop. Calling Start on a running
// renderer does nothing.
func (r *Renderer) Start() {
	if r.running {
		return
	}
	r.running = true
	r.frameID = r.host.RequestFrame(r.tickFn)
}

// Stop cancels the pending frame. A frame callback that still arrives after
// Stop draws nothing.
func (r *Renderer) Stop() {
	if !r.running {
		return
	}
	r.running = false
	r.host.CancelFrame(r.frameID)
}

// Close stops the loop and removes every listener registered by Mount.
func (r *Renderer) Close() {
	r.Stop()
	for _, remove := range r.removers {
		remove()
	}
	r.removers = nil
}

// Running reports whether the frame loop is active.
func (r *Renderer) Running() bool { return r.running }

// Pointer returns a copy of the current pointer state.
func (r *Renderer) Pointer() Pointer { return r.pointer }

// Surface returns the current surface dimensions.
func (r *Renderer) Surface() Surface { return r.surface }

// ScrollY returns the last scroll offset received.
func (r *Renderer) ScrollY() float64 { return r.scrollY }

// Colors returns the resolved theme colours.
func (r *Renderer) Colors() (teal, blue string) { return r.teal, r.blue }

func (r *Renderer) tick(ms float64) {
	if !r.running {
		return
	}
	r.Frame(ms)
	if r.running {
		r.frameID = r.host.RequestFrame(r.tickFn)
	}
}

// Frame advances the animation to timestamp ms and draws one frame.
func (r *Renderer) Frame(ms float64) {
	t := ms * 0.001
	dt := 0.0
	if r.frames > 0 {
		dt = ms - r.lastMS
	}
	r.frames++
	r.lastMS = ms

	posF, strF := r.cfg.SmoothPosition, r.cfg.SmoothStrength
	if r.cfg.NormalizeSmoothing {
		posF, strF = ScaleFactor(posF, dt), ScaleFactor(strF, dt)
	}
	r.pointer.Step(posF, strF)
	r.stepFade(dt)

	w, h := r.surface.Width, r.surface.Height
	r.canvas.Clear(w, h)
	r.canvas.SetGradient(Gradient{Width: w, From: r.from, To: r.to})

	if r.cfg.StepX <= 0 {
		r.canvas.ResetAlpha()
		return
	}

	amp := r.amplitude()
	rows := Rows(r.cfg, h, r.scrollY)
	ripple := r.pointer.Strength > r.cfg.RippleThreshold
	for i, row := range rows {
		phase := Phase(r.cfg, t, row.World)
		r.path = r.path[:0]
		for x := 0.0; x <= w; x += r.cfg.StepX {
			y := row.Base + BaseOffset(r.cfg, amp, x, phase, t, row.World)
			if ripple {
				dist := math.Hypot(x-r.pointer.X, row.Base-r.pointer.Y)
				y += Ripple(dist, r.cfg.RippleRadius, r.cfg.RipplePower, r.pointer.Strength, t)
			}
			r.path = append(r.path, Point{X: x, Y: y})
		}
		alpha := LineAlpha(i, len(rows), r.cfg.AlphaBase, r.cfg.AlphaRange) * r.fadeAlpha
		r.canvas.StrokePath(r.path, alpha, r.cfg.LineWidth)
	}

	r.canvas.ResetAlpha()
}

func (r *Renderer) stepFade(dtMS float64) {
	if r.fade == nil {
		return
	}
	v, done := r.fade.Update(float32(dtMS / 1000))
	r.fadeAlpha = clamp01(float64(v))
	if done {
		r.fade = nil
		r.fadeAlpha = 1
	}
}

func (r *Renderer) amplitude() float64 {
	if r.level == nil {
		return r.cfg.Amplitude
	}
	return r.cfg.Amplitude * (1 + r.cfg.AudioGain*clamp01(r.level.Level()))
}
