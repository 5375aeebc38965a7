// Package game hosts the wave renderer in an Ebiten window.
//
// The window plays the part of the browser: Layout reports resizes, Update
// polls cursor, touch and wheel input and turns it into wave events, and
// Draw runs the frame callback the renderer scheduled.
package game

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/pkg/errors"

	"github.com/iburimskiy/bg-waves/internal/config"
	"github.com/iburimskiy/bg-waves/internal/wave"
)

// Options configures a Game.
type Options struct {
	Config config.Wave

	// Theme maps theme variable names (e.g. "--teal") to hex colours.
	Theme map[string]string

	// Audio, if set, is played on start and drives the wave amplitude.
	Audio string

	Width, Height int
	Title         string
	Debug         bool
	Logger        *log.Logger
}

// Game implements ebiten.Game and wave.Host.
type Game struct {
	cfg    config.Wave
	theme  map[string]string
	log    *log.Logger
	width  int
	height int
	title  string

	start time.Time
	now   func() time.Time
	ratio func() float64

	outsideW, outsideH int
	canvas             canvas
	frames             frameQueue
	listeners          listenerSet
	renderer           *wave.Renderer

	input    inputState
	touchIDs []ebiten.TouchID
	events   []wave.Event

	audio   audioSource
	debug   bool
	lastErr error

	ctx context.Context
}

// New creates a game. The renderer mounts on the first Layout call, once the
// window size is known.
func New(opts Options) (*Game, error) {
	if err := opts.Config.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid wave config")
	}
	g := &Game{
		cfg:    opts.Config,
		theme:  opts.Theme,
		log:    opts.Logger,
		width:  opts.Width,
		height: opts.Height,
		title:  opts.Title,
		now:    time.Now,
		ratio:  func() float64 { return ebiten.Monitor().DeviceScaleFactor() },
		debug:  opts.Debug,
	}
	if g.log == nil {
		g.log = log.New(io.Discard)
	}
	if g.width <= 0 {
		g.width = config.WindowWidth
	}
	if g.height <= 0 {
		g.height = config.WindowHeight
	}
	if g.title == "" {
		g.title = "bg-waves"
	}
	g.start = g.now()

	if opts.Audio != "" {
		if err := g.audio.load(opts.Audio); err != nil {
			return nil, err
		}
		g.log.Info("playing audio", "file", opts.Audio)
	}
	return g, nil
}

// Run opens the window and blocks until it is closed or ctx is cancelled.
// A cancelled context is reported as ctx.Err().
func Run(ctx context.Context, g *Game) error {
	g.ctx = ctx
	ebiten.SetWindowSize(g.width, g.height)
	ebiten.SetWindowTitle(g.title)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	err := ebiten.RunGame(g)
	if g.renderer != nil {
		g.renderer.Close()
	}
	g.audio.closeCurrent()
	if err != nil && !errors.Is(err, ebiten.Termination) {
		return err
	}
	return ctx.Err()
}

func (g *Game) mount() {
	r, ok := wave.Mount(g, g.cfg, wave.WithLogger(g.log), wave.WithLevel(&g.audio))
	if !ok {
		return
	}
	g.renderer = r
	r.Start()
}

func (g *Game) Update() error {
	if g.ctx != nil && g.ctx.Err() != nil {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) || inpututil.IsKeyJustPressed(ebiten.KeyQ) {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyD) {
		g.debug = !g.debug
	}
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		g.audio.togglePause()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyO) {
		g.openAudio()
	}

	ratio := g.canvas.scale
	if ratio <= 0 {
		ratio = 1
	}
	var in inputSnapshot
	in, g.touchIDs = pollInput(float64(g.outsideW), float64(g.outsideH), ratio, g.touchIDs)
	g.dispatchInput(in)

	g.audio.update()
	return nil
}

func (g *Game) dispatchInput(in inputSnapshot) {
	g.events = g.input.diff(in, g.events[:0])
	for _, e := range g.events {
		g.listeners.emit(e)
	}
}

func (g *Game) openAudio() {
	path, err := PickAudioFile()
	if err != nil {
		g.lastErr = err
		g.log.Error("audio dialog failed", "err", err)
		return
	}
	if path == "" {
		return
	}
	if err := g.audio.load(path); err != nil {
		g.lastErr = err
		g.log.Error("audio load failed", "file", path, "err", err)
		return
	}
	g.lastErr = nil
	g.log.Info("playing audio", "file", path)
}

func (g *Game) Draw(screen *ebiten.Image) {
	g.canvas.target = screen
	g.frames.run(g.elapsedMS())
	g.canvas.target = nil

	if g.debug {
		g.drawDebug(screen)
	}
	if g.lastErr != nil {
		_, h := g.canvas.size()
		ebitenutil.DebugPrintAt(screen, "Error: "+g.lastErr.Error(), 12, h-24)
	}
}

func (g *Game) drawDebug(screen *ebiten.Image) {
	msg := fmt.Sprintf("FPS: %.1f  TPS: %.1f\nlayout %s  %dx%d @%.2fx\nuptime %s  %s",
		ebiten.ActualFPS(), ebiten.ActualTPS(),
		g.cfg.Layout, g.outsideW, g.outsideH, g.canvas.scale,
		formatDuration(g.now().Sub(g.start)), g.audio.status())
	if g.renderer != nil {
		p := g.renderer.Pointer()
		msg += fmt.Sprintf("\npointer %.0f,%.0f  strength %.2f  level %.2f  scroll %.0f",
			p.X, p.Y, p.Strength, g.audio.Level(), g.renderer.ScrollY())
	}
	ebitenutil.DebugPrintAt(screen, msg, 12, 12)
}

// Layout reports the backing-store size so drawing stays sharp on HiDPI
// displays; the renderer scales logical coordinates by the pixel ratio.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	changed := outsideWidth != g.outsideW || outsideHeight != g.outsideH
	g.outsideW, g.outsideH = outsideWidth, outsideHeight
	switch {
	case g.renderer == nil:
		g.mount()
	case changed:
		g.listeners.emit(wave.Event{Kind: wave.EventResize})
	}
	return g.canvas.size()
}

func (g *Game) elapsedMS() float64 {
	return float64(g.now().Sub(g.start).Microseconds()) / 1000
}

// Canvas returns the window surface. A desktop window always has one.
func (g *Game) Canvas(string) (wave.Canvas, bool) { return &g.canvas, true }

func (g *Game) Listen(kind wave.EventKind, fn func(wave.Event)) func() {
	return g.listeners.add(kind, fn)
}

func (g *Game) RequestFrame(fn func(ms float64)) int { return g.frames.request(fn) }

func (g *Game) CancelFrame(id int) { g.frames.cancel(id) }

func (g *Game) Theme(name string) string { return g.theme[name] }

func (g *Game) PixelRatio() float64 { return g.ratio() }

// Bounds is the window size; a desktop window has no separate container box.
func (g *Game) Bounds(config.Fit) (float64, float64) {
	return float64(g.outsideW), float64(g.outsideH)
}
