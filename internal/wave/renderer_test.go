package wave

import (
	"bytes"
	"math"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/iburimskiy/bg-waves/internal/config"
)

func mustMount(t *testing.T, h *fakeHost, cfg config.Wave, opts ...Option) *Renderer {
	t.Helper()
	r, ok := Mount(h, cfg, opts...)
	if !ok {
		t.Fatal("Mount() = false, want true")
	}
	return r
}

func TestMountMissingCanvas(t *testing.T) {
	h := newFakeHost(800, 600)
	h.canvas = nil

	r, ok := Mount(h, testConfig())
	if ok || r != nil {
		t.Fatalf("Mount() = (%v, %v), want (nil, false)", r, ok)
	}
	if h.listens != 0 {
		t.Errorf("listeners registered = %d, want 0", h.listens)
	}
	if h.requests != 0 {
		t.Errorf("frames scheduled = %d, want 0", h.requests)
	}
}

func TestMountRegistersListeners(t *testing.T) {
	h := newFakeHost(800, 600)
	mustMount(t, h, testConfig())

	for _, k := range []EventKind{EventResize, EventPointerMove, EventPointerLeave,
		EventTouchStart, EventTouchMove, EventTouchEnd, EventScroll} {
		if len(h.listeners[k]) != 1 {
			t.Errorf("%s listeners = %d, want 1", k, len(h.listeners[k]))
		}
	}
	if h.requests != 0 {
		t.Errorf("Mount scheduled %d frames before Start", h.requests)
	}
}

func TestMountSkipsScrollOutsideScrollLayout(t *testing.T) {
	h := newFakeHost(800, 600)
	cfg, _ := config.Preset("fill")
	mustMount(t, h, cfg)
	if len(h.listeners[EventScroll]) != 0 {
		t.Error("fill layout must not listen for scroll")
	}
	if h.listens != 6 {
		t.Errorf("listens = %d, want 6", h.listens)
	}
}

func TestMountThemeColors(t *testing.T) {
	h := newFakeHost(800, 600)
	r := mustMount(t, h, testConfig())
	if teal, blue := r.Colors(); teal != "#78BAC2" || blue != "#4D9AB9" {
		t.Errorf("fallback colours = %q, %q", teal, blue)
	}

	h = newFakeHost(800, 600)
	h.theme["--teal"] = "#fff"
	r = mustMount(t, h, testConfig())
	if teal, blue := r.Colors(); teal != "#fff" || blue != "#4D9AB9" {
		t.Errorf("themed colours = %q, %q", teal, blue)
	}
}

func TestResizeBackingStore(t *testing.T) {
	tests := []struct {
		name          string
		w, h, ratio   float64
		wantRatio     float64
		wantBW, wantBH int
	}{
		{"ratio 1", 800, 600, 1, 1, 800, 600},
		{"fractional", 801.7, 333.3, 1.5, 1.5, 1202, 499},
		{"clamped high", 1000, 500, 3, 2, 2000, 1000},
		{"clamped low", 1000, 500, 0.5, 1, 1000, 500},
		{"nan ratio", 640, 480, math.NaN(), 1, 640, 480},
		{"zero size", 0, 0, 2, 2, 0, 0},
		{"negative size", -10, 20, 1, 1, 0, 20},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newFakeHost(tt.w, tt.h)
			h.ratio = tt.ratio
			r := mustMount(t, h, testConfig())

			s := r.Surface()
			if s.Ratio != tt.wantRatio {
				t.Errorf("ratio = %v, want %v", s.Ratio, tt.wantRatio)
			}
			if h.canvas.backingW != tt.wantBW || h.canvas.backingH != tt.wantBH {
				t.Errorf("backing = %dx%d, want %dx%d", h.canvas.backingW, h.canvas.backingH, tt.wantBW, tt.wantBH)
			}
			if s.BackingWidth != int(math.Floor(s.Width*s.Ratio)) || s.BackingHeight != int(math.Floor(s.Height*s.Ratio)) {
				t.Errorf("surface %+v breaks floor(logical*ratio)", s)
			}
			if h.canvas.scale != tt.wantRatio {
				t.Errorf("scale = %v, want %v", h.canvas.scale, tt.wantRatio)
			}
		})
	}
}

func TestResizeEvent(t *testing.T) {
	h := newFakeHost(800, 600)
	h.ratio = 2
	r := mustMount(t, h, testConfig())

	h.width, h.height = 1024.5, 700.25
	h.emit(Event{Kind: EventResize})

	if s := r.Surface(); s.Width != 1024.5 || s.Height != 700.25 {
		t.Errorf("surface = %+v", s)
	}
	if h.canvas.backingW != 2049 || h.canvas.backingH != 1400 {
		t.Errorf("backing = %dx%d, want 2049x1400", h.canvas.backingW, h.canvas.backingH)
	}
}

func TestStrengthDecaysWithoutInput(t *testing.T) {
	h := newFakeHost(800, 600)
	r := mustMount(t, h, testConfig())

	h.emit(Event{Kind: EventPointerMove, X: 100, Y: 100})
	for i := 0; i < 60; i++ {
		r.Frame(float64(i) * 16)
	}
	h.emit(Event{Kind: EventPointerLeave})

	prev := r.Pointer().Strength
	for i := 60; i < 600; i++ {
		r.Frame(float64(i) * 16)
		s := r.Pointer().Strength
		if s < 0 {
			t.Fatalf("frame %d: strength %v < 0", i, s)
		}
		if s > prev {
			t.Fatalf("frame %d: strength rose from %v to %v", i, prev, s)
		}
		prev = s
	}
	if prev > 1e-6 {
		t.Errorf("strength after decay = %v, want ~0", prev)
	}
}

func TestStrengthStaysZeroWithoutPointer(t *testing.T) {
	h := newFakeHost(800, 600)
	r := mustMount(t, h, testConfig())
	for i := 0; i < 100; i++ {
		r.Frame(float64(i) * 16)
		if s := r.Pointer().Strength; s != 0 {
			t.Fatalf("frame %d: strength = %v, want 0", i, s)
		}
	}
}

func TestPointerApproachesTarget(t *testing.T) {
	h := newFakeHost(800, 600)
	r := mustMount(t, h, testConfig())
	h.emit(Event{Kind: EventPointerMove, X: 400, Y: 300})

	// Strength is never set instantly.
	if s := r.Pointer().Strength; s != 0 {
		t.Fatalf("strength right after move = %v, want 0", s)
	}

	prevDist, prevStrength := math.Inf(1), 0.0
	for i := 0; i < 300; i++ {
		r.Frame(float64(i) * 16)
		p := r.Pointer()
		d := math.Hypot(400-p.X, 300-p.Y)
		if d > prevDist {
			t.Fatalf("frame %d: distance grew from %v to %v", i, prevDist, d)
		}
		if p.Strength < prevStrength || p.Strength > 1 {
			t.Fatalf("frame %d: strength %v after %v", i, p.Strength, prevStrength)
		}
		prevDist, prevStrength = d, p.Strength
	}
	if prevDist > 1e-3 {
		t.Errorf("distance to target = %v, want ~0", prevDist)
	}
	if prevStrength < 0.999 {
		t.Errorf("strength = %v, want ~1", prevStrength)
	}
}

func TestTouchFirstPointOnly(t *testing.T) {
	h := newFakeHost(800, 600)
	r := mustMount(t, h, testConfig())

	h.emit(Event{Kind: EventTouchStart})
	if p := r.Pointer(); p.Active {
		t.Fatal("touch without points must be a no-op")
	}

	h.emit(Event{Kind: EventTouchStart, Touches: []Point{{X: 10, Y: 20}, {X: 500, Y: 500}}})
	p := r.Pointer()
	if !p.Active || p.TX != 10 || p.TY != 20 {
		t.Errorf("pointer after touch = %+v", p)
	}

	h.emit(Event{Kind: EventTouchMove, Touches: []Point{{X: 30, Y: 40}}})
	if p := r.Pointer(); p.TX != 30 || p.TY != 40 {
		t.Errorf("pointer after touch move = %+v", p)
	}

	h.emit(Event{Kind: EventTouchEnd})
	if p := r.Pointer(); p.Active {
		t.Error("touch end must deactivate the pointer")
	}
}

func TestFrameWithoutPointerIsPureSineSum(t *testing.T) {
	h := newFakeHost(800, 600)
	cfg := testConfig()
	r := mustMount(t, h, cfg)

	const ms = 1234.0
	r.Frame(ms)
	tm := ms * 0.001

	rows := Rows(cfg, 600, 0)
	if len(h.canvas.strokes) != len(rows) {
		t.Fatalf("strokes = %d, want %d", len(h.canvas.strokes), len(rows))
	}
	for i, s := range h.canvas.strokes {
		row := rows[i]
		phase := tm*cfg.Speed + float64(row.World)*0.55
		if want := int(800/cfg.StepX) + 1; len(s.pts) != want {
			t.Fatalf("line %d: %d points, want %d", i, len(s.pts), want)
		}
		for _, p := range s.pts {
			nx := p.X * cfg.Frequency
			want := row.Base + math.Sin(nx+phase)*cfg.Amplitude + math.Sin(nx*0.6+phase)*cfg.Amplitude*0.4
			if math.Abs(p.Y-want) > eps {
				t.Fatalf("line %d x=%v: y = %v, want %v", i, p.X, p.Y, want)
			}
		}
		if s.width != cfg.LineWidth {
			t.Errorf("line %d width = %v", i, s.width)
		}
		if want := LineAlpha(i, len(rows), cfg.AlphaBase, cfg.AlphaRange); math.Abs(s.alpha-want) > eps {
			t.Errorf("line %d alpha = %v, want %v", i, s.alpha, want)
		}
	}
	if h.canvas.clears != 1 || h.canvas.resets != 1 {
		t.Errorf("clears = %d, resets = %d, want 1 each", h.canvas.clears, h.canvas.resets)
	}
}

func TestFrameGradient(t *testing.T) {
	h := newFakeHost(800, 600)
	r := mustMount(t, h, testConfig())
	r.Frame(0)

	g := h.canvas.gradient
	if g.Width != 800 {
		t.Errorf("gradient width = %v", g.Width)
	}
	if got := g.From.String(); got != "rgba(120,186,194,0.92)" {
		t.Errorf("from = %s", got)
	}
	if got := g.To.String(); got != "rgba(77,154,185,0.92)" {
		t.Errorf("to = %s", got)
	}
}

func TestFrameRippleBounded(t *testing.T) {
	h := newFakeHost(800, 600)
	cfg := testConfig()
	r := mustMount(t, h, cfg)

	h.emit(Event{Kind: EventPointerMove, X: 400, Y: 300})
	for i := 0; i < 120; i++ {
		r.Frame(float64(i) * 16)
	}
	ms := 119 * 16.0
	tm := ms * 0.001
	p := r.Pointer()

	rows := Rows(cfg, 600, 0)
	touched := false
	for i, s := range h.canvas.strokes {
		row := rows[i]
		phase := Phase(cfg, tm, row.World)
		for _, pt := range s.pts {
			base := row.Base + BaseOffset(cfg, cfg.Amplitude, pt.X, phase, tm, row.World)
			dist := math.Hypot(pt.X-p.X, row.Base-p.Y)
			if dist >= cfg.RippleRadius {
				if math.Abs(pt.Y-base) > eps {
					t.Fatalf("line %d x=%v outside radius displaced by %v", i, pt.X, pt.Y-base)
				}
				continue
			}
			if math.Abs(pt.Y-base) > eps {
				touched = true
			}
		}
	}
	if !touched {
		t.Error("expected some ripple displacement inside the radius")
	}
}

func TestScrollChangesPattern(t *testing.T) {
	h := newFakeHost(800, 600)
	cfg := testConfig()
	r := mustMount(t, h, cfg)

	h.emit(Event{Kind: EventScroll, ScrollY: 3 * cfg.Spacing})
	if r.ScrollY() != 3*cfg.Spacing {
		t.Fatalf("ScrollY = %v", r.ScrollY())
	}
	r.Frame(500)
	scrolled := append([]Point(nil), h.canvas.strokes[0].pts...)

	h.emit(Event{Kind: EventScroll, ScrollY: 0})
	r.Frame(500)
	// Row 0 after scrolling three rows shows the waveform of row 3 at rest.
	rest := h.canvas.strokes[3].pts
	for i := range scrolled {
		if math.Abs((scrolled[i].Y)-(rest[i].Y-3*cfg.Spacing)) > 1e-6 {
			t.Fatalf("x=%v: scrolled %v, rest %v", scrolled[i].X, scrolled[i].Y, rest[i].Y)
		}
	}
}

func TestMountSeedsScrollFromHost(t *testing.T) {
	h := scrolledHost{fakeHost: newFakeHost(800, 600), y: 1234}
	r, ok := Mount(h, testConfig())
	if !ok {
		t.Fatal("Mount() = false")
	}
	if r.ScrollY() != 1234 {
		t.Errorf("ScrollY = %v, want 1234", r.ScrollY())
	}

	cfg, _ := config.Preset("drift")
	r, _ = Mount(h, cfg)
	if r.ScrollY() != 0 {
		t.Errorf("fixed layout ScrollY = %v, want 0", r.ScrollY())
	}
}

func TestStartStop(t *testing.T) {
	h := newFakeHost(800, 600)
	r := mustMount(t, h, testConfig())

	r.Start()
	r.Start()
	if h.requests != 1 {
		t.Fatalf("requests after double Start = %d, want 1", h.requests)
	}

	h.runFrame(16)
	h.runFrame(32)
	if h.requests != 3 {
		t.Fatalf("requests after two frames = %d, want 3", h.requests)
	}
	if h.canvas.clears != 2 {
		t.Fatalf("frames drawn = %d, want 2", h.canvas.clears)
	}

	r.Stop()
	if r.Running() {
		t.Error("Running() after Stop")
	}
	if len(h.cancelled) != 1 || h.cancelled[0] != 3 {
		t.Errorf("cancelled = %v, want [3]", h.cancelled)
	}
	if len(h.pending) != 0 {
		t.Errorf("pending frames after Stop = %d", len(h.pending))
	}

	h.runFrame(48)
	if h.canvas.clears != 2 || h.requests != 3 {
		t.Errorf("loop continued after Stop: clears=%d requests=%d", h.canvas.clears, h.requests)
	}

	r.Start()
	h.runFrame(64)
	if h.canvas.clears != 3 {
		t.Errorf("restart did not draw: clears=%d", h.canvas.clears)
	}
}

func TestStaleCallbackAfterStop(t *testing.T) {
	h := newFakeHost(800, 600)
	r := mustMount(t, h, testConfig())
	r.Start()

	var stale func(float64)
	for _, fn := range h.pending {
		stale = fn
	}
	r.Stop()
	stale(16)
	if h.canvas.clears != 0 || h.requests != 1 {
		t.Errorf("stale callback drew or rescheduled: clears=%d requests=%d", h.canvas.clears, h.requests)
	}
}

func TestCloseRemovesListeners(t *testing.T) {
	h := newFakeHost(800, 600)
	r := mustMount(t, h, testConfig())
	r.Start()
	r.Close()

	if h.removed != h.listens {
		t.Errorf("removed %d of %d listeners", h.removed, h.listens)
	}
	h.emit(Event{Kind: EventPointerMove, X: 1, Y: 1})
	if r.Pointer().Active {
		t.Error("listener still active after Close")
	}
}

type fixedLevel float64

func (l fixedLevel) Level() float64 { return float64(l) }

func TestLevelScalesAmplitude(t *testing.T) {
	cfg := testConfig()
	cfg.Layout = config.LayoutFixed
	cfg.Lines = 1
	cfg.Margin = 100

	quiet := newFakeHost(800, 600)
	mustMount(t, quiet, cfg).Frame(700)
	loud := newFakeHost(800, 600)
	mustMount(t, loud, cfg, WithLevel(fixedLevel(1))).Frame(700)

	scale := 1 + cfg.AudioGain
	q, l := quiet.canvas.strokes[0].pts, loud.canvas.strokes[0].pts
	for i := range q {
		if want := 100 + (q[i].Y-100)*scale; math.Abs(l[i].Y-want) > 1e-9 {
			t.Fatalf("x=%v: y = %v, want %v", q[i].X, l[i].Y, want)
		}
	}
}

func TestFadeIn(t *testing.T) {
	h := newFakeHost(800, 600)
	cfg := testConfig()
	cfg.FadeIn = 0.5
	r := mustMount(t, h, cfg)

	r.Frame(0)
	if a := h.canvas.strokes[0].alpha; a != 0 {
		t.Errorf("first frame alpha = %v, want 0", a)
	}
	r.Frame(250)
	mid := h.canvas.strokes[0].alpha
	if mid <= 0 || mid >= cfg.AlphaBase {
		t.Errorf("mid-fade alpha = %v, want in (0, %v)", mid, cfg.AlphaBase)
	}
	r.Frame(600)
	if a := h.canvas.strokes[0].alpha; a != cfg.AlphaBase {
		t.Errorf("post-fade alpha = %v, want %v", a, cfg.AlphaBase)
	}
}

func TestNormalizedSmoothing(t *testing.T) {
	cfg := testConfig()
	cfg.NormalizeSmoothing = true

	// Two 60 Hz frames and one 30 Hz frame cover the same time and should
	// land on the same position.
	a := newFakeHost(800, 600)
	ra := mustMount(t, a, cfg)
	a.emit(Event{Kind: EventPointerMove, X: 100, Y: 0})
	ra.Frame(0)
	ra.Frame(frameMS)
	ra.Frame(3 * frameMS)

	b := newFakeHost(800, 600)
	rb := mustMount(t, b, cfg)
	b.emit(Event{Kind: EventPointerMove, X: 100, Y: 0})
	rb.Frame(0)
	rb.Frame(frameMS)
	rb.Frame(2 * frameMS)
	rb.Frame(3 * frameMS)

	if d := math.Abs(ra.Pointer().X - rb.Pointer().X); d > 1e-9 {
		t.Errorf("positions differ by %v (%v vs %v)", d, ra.Pointer().X, rb.Pointer().X)
	}
}

func TestScaleFactor(t *testing.T) {
	if got := ScaleFactor(0.12, 0); got != 0.12 {
		t.Errorf("dt=0: %v", got)
	}
	if got := ScaleFactor(0.12, frameMS); math.Abs(got-0.12) > eps {
		t.Errorf("dt=frame: %v", got)
	}
	if got := ScaleFactor(0.12, 2*frameMS); math.Abs(got-(1-0.88*0.88)) > eps {
		t.Errorf("dt=2 frames: %v", got)
	}
}

func TestMountLogsAtDebug(t *testing.T) {
	var buf bytes.Buffer
	l := log.NewWithOptions(&buf, log.Options{Level: log.DebugLevel})

	h := newFakeHost(800, 600)
	mustMount(t, h, testConfig(), WithLogger(l))
	if !strings.Contains(buf.String(), "mounted") {
		t.Errorf("log output %q missing mount line", buf.String())
	}
}

func TestFrameZeroSize(t *testing.T) {
	h := newFakeHost(0, 0)
	r := mustMount(t, h, testConfig())
	r.Frame(16)
	for _, s := range h.canvas.strokes {
		if len(s.pts) != 1 {
			t.Fatalf("zero-width line has %d points, want 1", len(s.pts))
		}
	}
}
