//go:build js && wasm

package dom

import (
	"syscall/js"

	"github.com/iburimskiy/bg-waves/internal/wave"
)

// Canvas draws on a <canvas> element's 2D context.
type Canvas struct {
	host *Host
	el   js.Value
	ctx  js.Value
}

func (c *Canvas) SetBackingSize(w, h int) {
	c.el.Set("width", w)
	c.el.Set("height", h)
	cw, ch := cssSize(c.host.fit)
	style := c.el.Get("style")
	style.Set("width", cw)
	style.Set("height", ch)
}

func (c *Canvas) SetScale(s float64) {
	c.ctx.Call("setTransform", s, 0, 0, s, 0, 0)
}

func (c *Canvas) Clear(w, h float64) {
	c.ctx.Call("clearRect", 0, 0, w, h)
}

func (c *Canvas) SetGradient(g wave.Gradient) {
	grad := c.ctx.Call("createLinearGradient", 0, 0, g.Width, 0)
	grad.Call("addColorStop", 0, g.From.String())
	grad.Call("addColorStop", 1, g.To.String())
	c.ctx.Set("strokeStyle", grad)
}

func (c *Canvas) StrokePath(pts []wave.Point, alpha, width float64) {
	if len(pts) == 0 {
		return
	}
	c.ctx.Set("globalAlpha", alpha)
	c.ctx.Set("lineWidth", width)
	c.ctx.Call("beginPath")
	c.ctx.Call("moveTo", pts[0].X, pts[0].Y)
	for _, p := range pts[1:] {
		c.ctx.Call("lineTo", p.X, p.Y)
	}
	c.ctx.Call("stroke")
}

func (c *Canvas) ResetAlpha() {
	c.ctx.Set("globalAlpha", 1)
}
