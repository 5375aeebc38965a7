package config

import (
	"sort"

	"github.com/pkg/errors"
)

const (
	WindowWidth  = 1024
	WindowHeight = 640

	// Canvas and theme defaults shared by every preset.
	CanvasID     = "bg-waves"
	TealVar      = "--teal"
	BlueVar      = "--blue"
	TealFallback = "#78BAC2"
	BlueFallback = "#4D9AB9"

	DefaultPreset = "infinite"

	// Audio level metering
	AudioRingSize  = 8192
	LevelWindow    = 2048
	LevelSmoothing = 0.6

	// Pixels scrolled per mouse-wheel notch in the desktop window.
	WheelStep = 40
)

// Layout selects how line baselines are placed on the surface.
type Layout string

const (
	// LayoutScroll wraps lines every Spacing pixels and ties each row to a
	// scroll-derived world index, so the pattern never repeats while scrolling.
	LayoutScroll Layout = "scroll"
	// LayoutFixed places Lines lines Spacing apart starting at Margin.
	LayoutFixed Layout = "fixed"
	// LayoutFill spreads Lines lines evenly between Margin and height-Margin.
	LayoutFill Layout = "fill"
)

// Fit selects which box the surface is sized against.
type Fit string

const (
	FitViewport  Fit = "viewport"
	FitContainer Fit = "container"
)

// Theme names the two gradient colours and their fallbacks.
type Theme struct {
	TealVar      string `toml:"teal_var"`
	TealFallback string `toml:"teal"`
	BlueVar      string `toml:"blue_var"`
	BlueFallback string `toml:"blue"`
}

// Wave holds the per-instance parameters of the background. A renderer copies
// it once on mount and never mutates it.
type Wave struct {
	Layout Layout `toml:"layout"`
	Fit    Fit    `toml:"fit"`

	Lines   int     `toml:"lines"`
	Spacing float64 `toml:"spacing"`
	Margin  float64 `toml:"margin"`

	Amplitude float64 `toml:"amplitude"`
	Speed     float64 `toml:"speed"`
	Frequency float64 `toml:"frequency"`
	Noise     float64 `toml:"noise"`
	Drift     bool    `toml:"drift"`

	LineWidth float64 `toml:"line_width"`
	StepX     float64 `toml:"step_x"`

	RippleRadius    float64 `toml:"ripple_radius"`
	RipplePower     float64 `toml:"ripple_power"`
	RippleThreshold float64 `toml:"ripple_threshold"`

	// Opacity is applied to both gradient stops; AlphaBase and AlphaRange
	// give the per-line alpha ramp.
	Opacity    float64 `toml:"opacity"`
	AlphaBase  float64 `toml:"alpha_base"`
	AlphaRange float64 `toml:"alpha_range"`

	SmoothPosition     float64 `toml:"smooth_position"`
	SmoothStrength     float64 `toml:"smooth_strength"`
	NormalizeSmoothing bool    `toml:"normalize_smoothing"`

	MaxPixelRatio float64 `toml:"max_pixel_ratio"`
	FadeIn        float64 `toml:"fade_in"`
	AudioGain     float64 `toml:"audio_gain"`

	CanvasID string `toml:"canvas_id"`
	Theme    Theme  `toml:"-"`
}

func base() Wave {
	return Wave{
		Fit:             FitContainer,
		LineWidth:       0.9,
		StepX:           8,
		RippleThreshold: 0.01,
		AlphaBase:       0.15,
		AlphaRange:      0.08,
		SmoothPosition:  0.12,
		SmoothStrength:  0.06,
		MaxPixelRatio:   2,
		FadeIn:          0.8,
		AudioGain:       0.6,
		CanvasID:        CanvasID,
		Theme: Theme{
			TealVar:      TealVar,
			TealFallback: TealFallback,
			BlueVar:      BlueVar,
			BlueFallback: BlueFallback,
		},
	}
}

var presets = map[string]func() Wave{
	// Viewport-sized, infinite pattern that changes as the page scrolls.
	"infinite": func() Wave {
		w := base()
		w.Layout = LayoutScroll
		w.Fit = FitViewport
		w.Spacing = 34
		w.Amplitude = 16
		w.Speed = 0.45
		w.Frequency = 0.010
		w.Noise = 0.30
		w.RippleRadius = 220
		w.RipplePower = 26
		w.Opacity = 0.92
		return w
	},
	// A fixed stack of lines with an extra independent drift term.
	"drift": func() Wave {
		w := base()
		w.Layout = LayoutFixed
		w.Lines = 14
		w.Spacing = 30
		w.Margin = 40
		w.Amplitude = 12
		w.Speed = 0.35
		w.Frequency = 0.012
		w.Noise = 0.35
		w.Drift = true
		w.LineWidth = 1
		w.StepX = 6
		w.RippleRadius = 180
		w.RipplePower = 20
		w.RippleThreshold = 0.02
		w.Opacity = 0.75
		return w
	},
	// Lines stretched to fill the container top to bottom.
	"fill": func() Wave {
		w := base()
		w.Layout = LayoutFill
		w.Lines = 18
		w.Margin = 24
		w.Amplitude = 18
		w.Speed = 0.5
		w.Frequency = 0.009
		w.RippleRadius = 240
		w.RipplePower = 28
		w.Opacity = 0.90
		return w
	},
}

// Preset returns a copy of the named preset.
func Preset(name string) (Wave, error) {
	fn, ok := presets[name]
	if !ok {
		return Wave{}, errors.Errorf("unknown preset %q (have %v)", name, PresetNames())
	}
	return fn(), nil
}

// Default returns the infinite-scroll preset.
func Default() Wave {
	return presets[DefaultPreset]()
}

// PresetNames lists the preset names in sorted order.
func PresetNames() []string {
	names := make([]string, 0, len(presets))
	for name := range presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Validate reports the first parameter that would break layout or sampling.
func (w Wave) Validate() error {
	switch w.Layout {
	case LayoutScroll:
		if w.Spacing <= 0 {
			return errors.New("spacing must be positive in scroll layout")
		}
	case LayoutFixed:
		if w.Spacing <= 0 {
			return errors.New("spacing must be positive in fixed layout")
		}
		if w.Lines <= 0 {
			return errors.New("lines must be positive in fixed layout")
		}
	case LayoutFill:
		if w.Lines <= 0 {
			return errors.New("lines must be positive in fill layout")
		}
	default:
		return errors.Errorf("unknown layout %q", w.Layout)
	}
	switch w.Fit {
	case FitViewport, FitContainer:
	default:
		return errors.Errorf("unknown fit %q", w.Fit)
	}
	if w.StepX <= 0 {
		return errors.New("step_x must be positive")
	}
	if w.RippleRadius <= 0 {
		return errors.New("ripple_radius must be positive")
	}
	if w.LineWidth <= 0 {
		return errors.New("line_width must be positive")
	}
	if w.Opacity < 0 || w.Opacity > 1 {
		return errors.Errorf("opacity %v out of range [0,1]", w.Opacity)
	}
	if w.SmoothPosition <= 0 || w.SmoothPosition > 1 {
		return errors.Errorf("smooth_position %v out of range (0,1]", w.SmoothPosition)
	}
	if w.SmoothStrength <= 0 || w.SmoothStrength > 1 {
		return errors.Errorf("smooth_strength %v out of range (0,1]", w.SmoothStrength)
	}
	if w.MaxPixelRatio < 1 {
		return errors.Errorf("max_pixel_ratio %v must be at least 1", w.MaxPixelRatio)
	}
	if w.FadeIn < 0 {
		return errors.New("fade_in must not be negative")
	}
	if w.CanvasID == "" {
		return errors.New("canvas_id must not be empty")
	}
	return nil
}
