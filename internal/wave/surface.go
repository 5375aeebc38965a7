package wave

import "math"

// Surface is the drawing area in logical pixels plus the backing-store size
// derived from the pixel ratio.
type Surface struct {
	Width, Height float64
	Ratio         float64

	BackingWidth, BackingHeight int
}

// ClampRatio bounds a device pixel ratio to [1, max]. Non-finite or
// non-positive ratios count as 1.
func ClampRatio(r, max float64) float64 {
	if max < 1 {
		max = 1
	}
	if math.IsNaN(r) || math.IsInf(r, 0) || r < 1 {
		return 1
	}
	if r > max {
		return max
	}
	return r
}

// NewSurface sizes a surface for the given logical dimensions. Negative or
// non-finite dimensions collapse to zero.
func NewSurface(w, h, ratio float64) Surface {
	w, h = sanitizeSize(w), sanitizeSize(h)
	return Surface{
		Width:         w,
		Height:        h,
		Ratio:         ratio,
		BackingWidth:  int(math.Floor(w * ratio)),
		BackingHeight: int(math.Floor(h * ratio)),
	}
}

func sanitizeSize(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return 0
	}
	return v
}
