// Package dom hosts the wave renderer in a browser page through syscall/js.
//
// The host binds to a <canvas> element by id, listens for window events
// passively and schedules frames with requestAnimationFrame. Only the
// helpers in this file build outside js/wasm.
package dom

import (
	"github.com/iburimskiy/bg-waves/internal/config"
	"github.com/iburimskiy/bg-waves/internal/wave"
)

// eventType returns the window event that feeds kind, or "" if none does.
func eventType(kind wave.EventKind) string {
	switch kind {
	case wave.EventResize:
		return "resize"
	case wave.EventPointerMove:
		return "mousemove"
	case wave.EventPointerLeave:
		return "mouseleave"
	case wave.EventTouchStart:
		return "touchstart"
	case wave.EventTouchMove:
		return "touchmove"
	case wave.EventTouchEnd:
		return "touchend"
	case wave.EventScroll:
		return "scroll"
	}
	return ""
}

// cssSize is the CSS box given to the canvas so it matches what Bounds
// reports for fit.
func cssSize(fit config.Fit) (w, h string) {
	if fit == config.FitViewport {
		return "100vw", "100vh"
	}
	return "100%", "100%"
}
