package input

import "github.com/veandco/go-sdl2/sdl"

// EventKind classifies a converted window event.
type EventKind int

const (
	EventNone EventKind = iota
	EventQuit
	EventResize
	EventPress
	EventRelease
	EventMove
	EventKey
)

// Event is a window event in viewer terms.
type Event struct {
	Kind    EventKind
	Pointer PointerEvent
	Key     Key
	Width   int32
	Height  int32
}

// Convert translates one SDL event. mod is the modifier state sampled with
// it. Events the viewer does not react to come back as EventNone.
func Convert(event sdl.Event, mod sdl.Keymod) Event {
	switch e := event.(type) {
	case *sdl.QuitEvent:
		return Event{Kind: EventQuit}

	case *sdl.WindowEvent:
		if e.Event == sdl.WINDOWEVENT_RESIZED || e.Event == sdl.WINDOWEVENT_SIZE_CHANGED {
			return Event{Kind: EventResize, Width: e.Data1, Height: e.Data2}
		}

	case *sdl.KeyboardEvent:
		if e.Type != sdl.KEYDOWN || e.Repeat != 0 {
			break
		}
		if k := KeyFromSDL(e.Keysym.Scancode); k != KeyNone {
			return Event{Kind: EventKey, Key: k}
		}

	case *sdl.MouseMotionEvent:
		return Event{Kind: EventMove, Pointer: FromSDLMotion(e, mod)}

	case *sdl.MouseButtonEvent:
		kind := EventRelease
		if e.Type == sdl.MOUSEBUTTONDOWN {
			kind = EventPress
		}
		return Event{Kind: kind, Pointer: FromSDLButton(e, mod)}
	}
	return Event{}
}

// Poll drains the SDL event queue into dst and returns it. It must be called
// on the thread that created the window.
func Poll(dst []Event) []Event {
	dst = dst[:0]
	for event := sdl.PollEvent(); event != nil; event = sdl.PollEvent() {
		if ev := Convert(event, sdl.GetModState()); ev.Kind != EventNone {
			dst = append(dst, ev)
		}
	}
	return dst
}
