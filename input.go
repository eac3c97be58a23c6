package billboard

import (
	"github.com/hajimehoshi/ebiten/v2"
)

// PointerContext carries pointer event data. Coordinates are in screen
// pixels relative to the surface.
type PointerContext struct {
	Type    EventType
	ScreenX float64
	ScreenY float64
	Button  MouseButton
}

// --- Per-pointer state ---

type pointerState struct {
	down   bool
	lastX  float64
	lastY  float64
	button MouseButton // button captured at press time
}

// --- Handler registry ---

type pointerHandler struct {
	id uint32
	fn func(PointerContext)
}

type resizeHandler struct {
	id uint32
	fn func(ResizeEvent)
}

type handlerRegistry struct {
	pointerDown []pointerHandler
	pointerUp   []pointerHandler
	resize      []resizeHandler
	nextID      uint32
}

// CallbackHandle allows removing a registered scene-level callback.
type CallbackHandle struct {
	id    uint32
	reg   *handlerRegistry
	event EventType
}

// Remove unregisters this callback so it no longer fires.
func (h CallbackHandle) Remove() {
	if h.reg == nil {
		return
	}
	switch h.event {
	case EventPointerDown:
		h.reg.pointerDown = removeHandler(h.reg.pointerDown, h.id)
	case EventPointerUp:
		h.reg.pointerUp = removeHandler(h.reg.pointerUp, h.id)
	case EventResize:
		h.reg.resize = removeResizeHandler(h.reg.resize, h.id)
	}
}

func removeHandler(s []pointerHandler, id uint32) []pointerHandler {
	for i := range s {
		if s[i].id == id {
			copy(s[i:], s[i+1:])
			s[len(s)-1] = pointerHandler{}
			return s[:len(s)-1]
		}
	}
	return s
}

func removeResizeHandler(s []resizeHandler, id uint32) []resizeHandler {
	for i := range s {
		if s[i].id == id {
			copy(s[i:], s[i+1:])
			s[len(s)-1] = resizeHandler{}
			return s[:len(s)-1]
		}
	}
	return s
}

// OnPointerDown registers a callback fired when a pointer button is pressed
// anywhere over the surface.
func (s *Scene) OnPointerDown(fn func(PointerContext)) CallbackHandle {
	s.handlers.nextID++
	id := s.handlers.nextID
	s.handlers.pointerDown = append(s.handlers.pointerDown, pointerHandler{id: id, fn: fn})
	return CallbackHandle{id: id, reg: &s.handlers, event: EventPointerDown}
}

// OnPointerUp registers a callback fired when a pointer button is released.
func (s *Scene) OnPointerUp(fn func(PointerContext)) CallbackHandle {
	s.handlers.nextID++
	id := s.handlers.nextID
	s.handlers.pointerUp = append(s.handlers.pointerUp, pointerHandler{id: id, fn: fn})
	return CallbackHandle{id: id, reg: &s.handlers, event: EventPointerUp}
}

// OnResize registers a callback fired after every Resize.
func (s *Scene) OnResize(fn func(ResizeEvent)) CallbackHandle {
	s.handlers.nextID++
	id := s.handlers.nextID
	s.handlers.resize = append(s.handlers.resize, resizeHandler{id: id, fn: fn})
	return CallbackHandle{id: id, reg: &s.handlers, event: EventResize}
}

// --- Input processing ---

// processInput is called from Scene.Update. Injected events take priority
// over the real mouse for the frame they are consumed in.
func (s *Scene) processInput() {
	if s.processInjectedInput() {
		return
	}

	mx, my := ebiten.CursorPosition()
	pressed, button := readMouseButtons()
	s.processPointer(float64(mx), float64(my), pressed, button)

	if s.camera != nil && s.camera.attached {
		if _, wy := ebiten.Wheel(); wy != 0 {
			s.camera.wheel(wy)
		}
	}
}

// readMouseButtons reports whether any button is held and which one,
// preferring left over right over middle.
func readMouseButtons() (bool, MouseButton) {
	switch {
	case ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft):
		return true, MouseButtonLeft
	case ebiten.IsMouseButtonPressed(ebiten.MouseButtonRight):
		return true, MouseButtonRight
	case ebiten.IsMouseButtonPressed(ebiten.MouseButtonMiddle):
		return true, MouseButtonMiddle
	}
	return false, MouseButtonLeft
}

// processPointer runs the pointer state machine: press fires pointer-down,
// held movement orbits an attached camera, release fires pointer-up.
func (s *Scene) processPointer(sx, sy float64, pressed bool, button MouseButton) {
	ps := &s.pointer

	switch {
	case pressed && !ps.down:
		ps.down = true
		ps.button = button
		ps.lastX = sx
		ps.lastY = sy
		s.firePointer(s.handlers.pointerDown, PointerContext{
			Type: EventPointerDown, ScreenX: sx, ScreenY: sy, Button: button,
		})
	case pressed && ps.down:
		if sx != ps.lastX || sy != ps.lastY {
			if s.camera != nil && s.camera.attached {
				s.camera.pointerDrag(sx-ps.lastX, sy-ps.lastY)
			}
		}
		ps.lastX = sx
		ps.lastY = sy
	case !pressed && ps.down:
		ps.down = false
		s.firePointer(s.handlers.pointerUp, PointerContext{
			Type: EventPointerUp, ScreenX: sx, ScreenY: sy, Button: ps.button,
		})
		ps.lastX = sx
		ps.lastY = sy
	default:
		ps.lastX = sx
		ps.lastY = sy
	}
}

// --- Event dispatch ---

func (s *Scene) firePointer(handlers []pointerHandler, ctx PointerContext) {
	for _, h := range handlers {
		h.fn(ctx)
	}
	if s.sink != nil {
		s.sink.EmitPointer(ctx)
	}
}

func (s *Scene) fireResize(evt ResizeEvent) {
	for _, h := range s.handlers.resize {
		h.fn(evt)
	}
	if s.sink != nil {
		s.sink.EmitResize(evt)
	}
}
