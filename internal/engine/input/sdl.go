package input

import (
	"github.com/veandco/go-sdl2/sdl"
)

// ButtonsFromSDL converts an SDL button-state mask.
func ButtonsFromSDL(state uint32) Button {
	var b Button
	if state&sdl.Button(sdl.BUTTON_LEFT) != 0 {
		b |= ButtonPrimary
	}
	if state&sdl.Button(sdl.BUTTON_RIGHT) != 0 {
		b |= ButtonSecondary
	}
	if state&sdl.Button(sdl.BUTTON_MIDDLE) != 0 {
		b |= ButtonTertiary
	}
	return b
}

// ModifiersFromSDL converts an SDL modifier mask.
func ModifiersFromSDL(mod sdl.Keymod) Modifier {
	var m Modifier
	if uint32(mod)&uint32(sdl.KMOD_ALT) != 0 {
		m |= ModAlt
	}
	if uint32(mod)&uint32(sdl.KMOD_CTRL) != 0 {
		m |= ModCtrl
	}
	if uint32(mod)&uint32(sdl.KMOD_SHIFT) != 0 {
		m |= ModShift
	}
	return m
}

// FromSDLMotion builds a pointer event from an SDL motion event and the
// modifier state sampled with it.
func FromSDLMotion(e *sdl.MouseMotionEvent, mod sdl.Keymod) PointerEvent {
	return PointerEvent{
		X:         float32(e.X),
		Y:         float32(e.Y),
		Buttons:   ButtonsFromSDL(e.State),
		Modifiers: ModifiersFromSDL(mod),
	}
}

// FromSDLButton builds a pointer event from an SDL button press or release.
func FromSDLButton(e *sdl.MouseButtonEvent, mod sdl.Keymod) PointerEvent {
	ev := PointerEvent{
		X:         float32(e.X),
		Y:         float32(e.Y),
		Modifiers: ModifiersFromSDL(mod),
	}
	if e.Type == sdl.MOUSEBUTTONDOWN {
		ev.Buttons = ButtonsFromSDL(sdl.Button(uint32(e.Button)))
	}
	return ev
}

// KeyFromSDL maps a scancode to a viewer key.
func KeyFromSDL(code sdl.Scancode) Key {
	switch code {
	case sdl.SCANCODE_F:
		return KeyResetTarget
	case sdl.SCANCODE_ESCAPE:
		return KeyQuit
	case sdl.SCANCODE_F12:
		return KeyScreenshot
	default:
		return KeyNone
	}
}
