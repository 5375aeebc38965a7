package wave

import (
	"math"

	"github.com/iburimskiy/bg-waves/internal/config"
)

const (
	// Phase offset between consecutive world rows.
	rowPhase = 0.55

	// Second harmonic of the base waveform.
	harmonicFreq = 0.6
	harmonicAmp  = 0.4

	// Independent drift term, used when Drift is set.
	driftFreq  = 0.35
	driftSpeed = 1.6
	driftPhase = 0.9

	// Ripple wave number (per pixel) and angular speed (per second).
	rippleK     = 0.05
	rippleOmega = 3
)

// Row is one line on screen: its baseline and the world index that drives
// its phase.
type Row struct {
	Base  float64
	World int
}

// Rows lays out the lines for a surface of the given height.
func Rows(cfg config.Wave, height, scrollY float64) []Row {
	switch cfg.Layout {
	case config.LayoutScroll:
		return scrollRows(cfg.Spacing, height, scrollY)
	case config.LayoutFill:
		spacing := 0.0
		if cfg.Lines > 1 {
			spacing = (height - 2*cfg.Margin) / float64(cfg.Lines-1)
		}
		return fixedRows(cfg.Lines, cfg.Margin, spacing)
	default:
		return fixedRows(cfg.Lines, cfg.Margin, cfg.Spacing)
	}
}

func scrollRows(spacing, height, scrollY float64) []Row {
	if spacing <= 0 || height < 0 {
		return nil
	}
	count := int(math.Ceil((height + spacing*2) / spacing))
	offset := math.Mod(scrollY, spacing)
	if offset < 0 {
		offset += spacing
	}
	rows := make([]Row, count)
	for i := range rows {
		rows[i] = Row{
			Base:  float64(i)*spacing - offset,
			World: int(math.Floor((scrollY + float64(i)*spacing) / spacing)),
		}
	}
	return rows
}

func fixedRows(n int, margin, spacing float64) []Row {
	if n <= 0 {
		return nil
	}
	rows := make([]Row, n)
	for i := range rows {
		rows[i] = Row{Base: margin + float64(i)*spacing, World: i}
	}
	return rows
}

// LineAlpha ramps linearly from base at the first line to base+span at the last.
func LineAlpha(i, count int, base, span float64) float64 {
	last := count - 1
	if last < 1 {
		last = 1
	}
	return base + float64(i)/float64(last)*span
}

// Phase returns the phase of a line at time t (seconds).
func Phase(cfg config.Wave, t float64, world int) float64 {
	return t*cfg.Speed + float64(world)*rowPhase
}

// BaseOffset is the vertical displacement of the waveform at x, before any
// ripple: a two-term sine sum, plus the drift term when enabled.
func BaseOffset(cfg config.Wave, amp, x, phase, t float64, world int) float64 {
	nx := x * cfg.Frequency
	y := math.Sin(nx+phase)*amp + math.Sin(nx*harmonicFreq+phase)*amp*harmonicAmp
	if cfg.Drift {
		y += math.Sin(nx*driftFreq-t*cfg.Speed*driftSpeed+float64(world)*driftPhase) * amp * cfg.Noise
	}
	return y
}

// Falloff is 1 at the ripple centre and falls linearly to 0 at radius.
func Falloff(dist, radius float64) float64 {
	if radius <= 0 || dist >= radius {
		return 0
	}
	return 1 - dist/radius
}

// Ripple is the displacement at distance dist from the pointer. It is exactly
// zero at and beyond radius and scales with the square of the falloff.
func Ripple(dist, radius, power, strength, t float64) float64 {
	k := Falloff(dist, radius)
	if k == 0 {
		return 0
	}
	return math.Sin(dist*rippleK-t*rippleOmega) * power * strength * k * k
}
