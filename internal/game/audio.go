package game

import (
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/faiface/beep"
	"github.com/faiface/beep/flac"
	"github.com/faiface/beep/mp3"
	"github.com/faiface/beep/speaker"
	"github.com/faiface/beep/wav"
	"github.com/pkg/errors"

	"github.com/iburimskiy/bg-waves/internal/config"
)

// audioSource plays one file at a time and meters its loudness so the wave
// amplitude can follow the music.
type audioSource struct {
	mu       sync.Mutex
	file     *os.File
	streamer beep.StreamSeekCloser
	format   beep.Format
	ctrl     *beep.Ctrl
	tap      *sampleTap
	duration time.Duration
	name     string

	initDone bool
	paused   bool

	window []float64
	level  float64
}

func decode(path string, f *os.File) (beep.StreamSeekCloser, beep.Format, error) {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".wav":
		return wav.Decode(f)
	case ".mp3":
		return mp3.Decode(f)
	case ".flac":
		return flac.Decode(f)
	default:
		return nil, beep.Format{}, errors.Errorf("unsupported file type %q", ext)
	}
}

// load stops any current playback and starts playing path.
func (a *audioSource) load(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return errors.Wrap(err, "open audio")
	}
	streamer, format, err := decode(path, f)
	if err != nil {
		_ = f.Close()
		return errors.Wrapf(err, "decode %s", filepath.Base(path))
	}

	tap := newSampleTap(streamer, config.AudioRingSize)
	ctrl := &beep.Ctrl{Streamer: tap}

	bufferSize := format.SampleRate.N(time.Second / 20)
	a.mu.Lock()
	needInit := !a.initDone || a.format.SampleRate != format.SampleRate
	a.mu.Unlock()

	speaker.Clear()
	if needInit {
		if err := speaker.Init(format.SampleRate, bufferSize); err != nil {
			_ = streamer.Close()
			_ = f.Close()
			return errors.Wrap(err, "init speaker")
		}
	}
	a.closeCurrent()

	a.mu.Lock()
	a.initDone = true
	a.file = f
	a.streamer = streamer
	a.format = format
	a.ctrl = ctrl
	a.tap = tap
	a.paused = false
	a.name = filepath.Base(path)
	a.duration = format.SampleRate.D(streamer.Len())
	a.mu.Unlock()

	speaker.Play(beep.Seq(ctrl, beep.Callback(func() {
		a.mu.Lock()
		if a.tap == tap {
			a.tap = nil
		}
		a.mu.Unlock()
		_ = streamer.Close()
		_ = f.Close()
	})))
	return nil
}

func (a *audioSource) closeCurrent() {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.streamer != nil {
		_ = a.streamer.Close()
		a.streamer = nil
	}
	if a.file != nil {
		_ = a.file.Close()
		a.file = nil
	}
	a.tap = nil
	a.ctrl = nil
}

func (a *audioSource) togglePause() {
	a.mu.Lock()
	ctrl := a.ctrl
	a.mu.Unlock()
	if ctrl == nil {
		return
	}
	speaker.Lock()
	ctrl.Paused = !ctrl.Paused
	paused := ctrl.Paused
	speaker.Unlock()

	a.mu.Lock()
	a.paused = paused
	a.mu.Unlock()
}

// update recomputes the smoothed level from the latest samples. It runs once
// per game tick.
func (a *audioSource) update() {
	a.mu.Lock()
	tap, paused := a.tap, a.paused
	a.mu.Unlock()

	target := 0.0
	if tap != nil && !paused {
		a.window = tap.recent(a.window[:0], config.LevelWindow)
		target = loudness(a.window)
	}
	a.level = config.LevelSmoothing*a.level + (1-config.LevelSmoothing)*target
}

// Level implements wave.LevelSource.
func (a *audioSource) Level() float64 {
	if a == nil {
		return 0
	}
	return a.level
}

func (a *audioSource) status() string {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.tap == nil {
		return "no audio"
	}
	state := "playing"
	if a.paused {
		state = "paused"
	}
	return state + " " + a.name + " (" + formatDuration(a.duration) + ")"
}
