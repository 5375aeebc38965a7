package wave

import (
	"image/color"
	"strconv"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// RGBA is an 8-bit colour with a straight (non-premultiplied) alpha in [0,1].
type RGBA struct {
	R, G, B uint8
	A       float64
}

// String formats c as a CSS rgba() value, e.g. "rgba(255,255,255,0.5)".
func (c RGBA) String() string {
	var b strings.Builder
	b.WriteString("rgba(")
	b.WriteString(strconv.Itoa(int(c.R)))
	b.WriteByte(',')
	b.WriteString(strconv.Itoa(int(c.G)))
	b.WriteByte(',')
	b.WriteString(strconv.Itoa(int(c.B)))
	b.WriteByte(',')
	b.WriteString(strconv.FormatFloat(c.A, 'f', -1, 64))
	b.WriteByte(')')
	return b.String()
}

// NRGBA converts c for image/color consumers, scaling alpha by extra.
func (c RGBA) NRGBA(extra float64) color.NRGBA {
	return color.NRGBA{R: c.R, G: c.G, B: c.B, A: uint8(clamp01(c.A*extra)*255 + 0.5)}
}

func (c RGBA) colorful() colorful.Color {
	return colorful.Color{R: float64(c.R) / 255, G: float64(c.G) / 255, B: float64(c.B) / 255}
}

// ParseHex parses a 3- or 6-digit hex colour with or without a leading '#'.
// Input that does not parse yields black, so a bad theme value never stops
// the background from drawing.
func ParseHex(hex string, a float64) RGBA {
	h := strings.TrimPrefix(strings.TrimSpace(hex), "#")
	if len(h) == 3 {
		h = string([]byte{h[0], h[0], h[1], h[1], h[2], h[2]})
	}
	c, err := colorful.Hex("#" + h)
	if err != nil || len(h) != 6 {
		return RGBA{A: a}
	}
	r, g, b := c.RGB255()
	return RGBA{R: r, G: g, B: b, A: a}
}

// HexToRGBA returns hex as a CSS rgba() string with alpha a.
func HexToRGBA(hex string, a float64) string {
	return ParseHex(hex, a).String()
}

// Gradient is a horizontal two-stop linear gradient spanning [0, Width].
type Gradient struct {
	Width    float64
	From, To RGBA
}

// At returns the gradient colour at x, clamped to the end stops.
func (g Gradient) At(x float64) RGBA {
	t := 0.0
	if g.Width > 0 {
		t = clamp01(x / g.Width)
	}
	switch t {
	case 0:
		return g.From
	case 1:
		return g.To
	}
	c := g.From.colorful().BlendRgb(g.To.colorful(), t)
	r, gg, b := c.RGB255()
	return RGBA{R: r, G: gg, B: b, A: g.From.A + (g.To.A-g.From.A)*t}
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
