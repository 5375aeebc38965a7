package wave

import "math"

// frameMS is the frame interval the per-frame smoothing factors were tuned at.
const frameMS = 1000.0 / 60.0

// Pointer tracks the smoothed ripple centre and its influence.
//
// Move and Leave only change the target; Step moves X, Y and Strength a
// fraction of the way towards it, so neither position nor strength ever jumps.
type Pointer struct {
	X, Y   float64
	TX, TY float64

	Active   bool
	Strength float64
}

// Move sets a new target and makes the pointer active.
func (p *Pointer) Move(x, y float64) {
	p.TX, p.TY = x, y
	p.Active = true
}

// Leave makes the pointer inactive; Strength decays on later steps.
func (p *Pointer) Leave() {
	p.Active = false
}

// Step applies one frame of exponential smoothing.
func (p *Pointer) Step(posFactor, strengthFactor float64) {
	p.X += (p.TX - p.X) * posFactor
	p.Y += (p.TY - p.Y) * posFactor

	target := 0.0
	if p.Active {
		target = 1
	}
	p.Strength += (target - p.Strength) * strengthFactor
	p.Strength = clamp01(p.Strength)
}

// ScaleFactor rescales a per-frame smoothing factor for a frame that took
// dtMS milliseconds, so motion speed no longer depends on refresh rate.
// A non-positive dt returns f unchanged.
func ScaleFactor(f, dtMS float64) float64 {
	if dtMS <= 0 || f <= 0 || f >= 1 {
		return f
	}
	return 1 - math.Pow(1-f, dtMS/frameMS)
}
