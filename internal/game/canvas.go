package game

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/iburimskiy/bg-waves/internal/wave"
)

// canvas draws onto the screen image handed to Draw. Vector strokes have no
// gradient paint, so each segment takes the gradient colour at its midpoint.
type canvas struct {
	target *ebiten.Image

	backingW, backingH int
	scale              float64
	gradient           wave.Gradient
}

func (c *canvas) SetBackingSize(w, h int) { c.backingW, c.backingH = w, h }

func (c *canvas) SetScale(s float64) { c.scale = s }

func (c *canvas) Clear(_, _ float64) {
	if c.target != nil {
		c.target.Clear()
	}
}

func (c *canvas) SetGradient(g wave.Gradient) { c.gradient = g }

func (c *canvas) StrokePath(pts []wave.Point, alpha, width float64) {
	if c.target == nil || alpha <= 0 {
		return
	}
	s := c.scale
	for i := 1; i < len(pts); i++ {
		a, b := pts[i-1], pts[i]
		clr := c.gradient.At((a.X + b.X) / 2).NRGBA(alpha)
		vector.StrokeLine(c.target,
			float32(a.X*s), float32(a.Y*s),
			float32(b.X*s), float32(b.Y*s),
			float32(width*s), clr, true)
	}
}

// ResetAlpha is a no-op: alpha is baked into each segment colour.
func (c *canvas) ResetAlpha() {}

// size returns the backing size for ebiten's Layout, never smaller than 1x1.
func (c *canvas) size() (int, int) {
	w, h := c.backingW, c.backingH
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}
	return w, h
}
