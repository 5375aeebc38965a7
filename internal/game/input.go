package game

import (
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/iburimskiy/bg-waves/internal/config"
	"github.com/iburimskiy/bg-waves/internal/wave"
)

// inputSnapshot is one tick of raw input, already in logical pixels.
type inputSnapshot struct {
	CursorX, CursorY float64
	Focused          bool
	Width, Height    float64

	Touches       []wave.Point
	TouchPressed  bool
	TouchReleased bool

	WheelY float64
}

// inputState turns polled input into the edge-triggered events a browser
// would deliver: moves only on change, a single leave when the cursor exits.
type inputState struct {
	primed           bool
	cursorX, cursorY float64
	hovering         bool

	touchX, touchY float64
	touching       bool

	scrollY float64
}

func (s *inputState) diff(in inputSnapshot, dst []wave.Event) []wave.Event {
	inside := in.Focused &&
		in.CursorX >= 0 && in.CursorX < in.Width &&
		in.CursorY >= 0 && in.CursorY < in.Height
	moved := s.primed && (in.CursorX != s.cursorX || in.CursorY != s.cursorY)
	s.primed = true
	s.cursorX, s.cursorY = in.CursorX, in.CursorY

	switch {
	case inside && moved:
		s.hovering = true
		dst = append(dst, wave.Event{Kind: wave.EventPointerMove, X: in.CursorX, Y: in.CursorY})
	case !inside && s.hovering:
		s.hovering = false
		dst = append(dst, wave.Event{Kind: wave.EventPointerLeave})
	}

	if len(in.Touches) > 0 {
		first := in.Touches[0]
		switch {
		case in.TouchPressed || !s.touching:
			dst = append(dst, wave.Event{Kind: wave.EventTouchStart, Touches: in.Touches})
		case first.X != s.touchX || first.Y != s.touchY:
			dst = append(dst, wave.Event{Kind: wave.EventTouchMove, Touches: in.Touches})
		}
		s.touching = true
		s.touchX, s.touchY = first.X, first.Y
	}
	if in.TouchReleased {
		dst = append(dst, wave.Event{Kind: wave.EventTouchEnd, Touches: in.Touches})
		s.touching = len(in.Touches) > 0
	}

	if in.WheelY != 0 {
		s.scrollY = math.Max(0, s.scrollY-in.WheelY*config.WheelStep)
		dst = append(dst, wave.Event{Kind: wave.EventScroll, ScrollY: s.scrollY})
	}
	return dst
}

// pollInput reads ebiten's input state. Cursor and touch positions arrive in
// screen (backing) pixels and are divided by ratio.
func pollInput(width, height, ratio float64, touchIDs []ebiten.TouchID) (inputSnapshot, []ebiten.TouchID) {
	cx, cy := ebiten.CursorPosition()
	in := inputSnapshot{
		CursorX: float64(cx) / ratio,
		CursorY: float64(cy) / ratio,
		Focused: ebiten.IsFocused(),
		Width:   width,
		Height:  height,
	}

	touchIDs = ebiten.AppendTouchIDs(touchIDs[:0])
	for _, id := range touchIDs {
		tx, ty := ebiten.TouchPosition(id)
		in.Touches = append(in.Touches, wave.Point{X: float64(tx) / ratio, Y: float64(ty) / ratio})
	}
	in.TouchPressed = len(inpututil.AppendJustPressedTouchIDs(nil)) > 0
	in.TouchReleased = len(inpututil.AppendJustReleasedTouchIDs(nil)) > 0

	_, in.WheelY = ebiten.Wheel()
	return in, touchIDs
}
