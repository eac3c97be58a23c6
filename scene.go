package billboard

import (
	"time"

	"github.com/hajimehoshi/ebiten/v2"
)

// EventSink receives every scene event with a typed payload. When set on a
// Scene, events are forwarded after the scene-level callbacks run.
type EventSink interface {
	EmitPointer(ctx PointerContext)
	EmitAnimationEnd(evt AnimationEndEvent)
	EmitResize(evt ResizeEvent)
}

// ResizeEvent carries the new surface size after a re-fit.
type ResizeEvent struct {
	Width, Height int
}

const defaultCommandCap = 1024

// Scene is the top-level object that owns the camera, lights, sprite
// managers, input state and render buffers.
type Scene struct {
	// ClearColor fills the target before sprites are drawn. A zero alpha
	// leaves the target untouched.
	ClearColor Color
	// ScreenshotDir is where Screenshot writes PNG files.
	ScreenshotDir string

	camera   *ArcRotateCamera
	lights   []*PointLight
	managers []*SpriteManager
	viewport Rect

	sink       EventSink
	debug      bool
	updateFunc func() error
	disposed   bool

	// Render state
	commands []renderCommand
	sortBuf  []renderCommand
	stats    frameStats

	// Input state
	handlers    handlerRegistry
	pointer     pointerState
	injectQueue []syntheticPointerEvent
	testRunner  *TestRunner

	screenshotQueue []string
}

// NewScene creates an empty scene. Add a camera with NewArcRotateCamera
// before drawing.
func NewScene() *Scene {
	return &Scene{
		ScreenshotDir: "screenshots",
		commands:      make([]renderCommand, 0, defaultCommandCap),
		sortBuf:       make([]renderCommand, 0, defaultCommandCap),
	}
}

// Camera returns the active camera, or nil.
func (s *Scene) Camera() *ArcRotateCamera {
	return s.camera
}

// SetCamera makes cam the active camera and fits it to the viewport.
func (s *Scene) SetCamera(cam *ArcRotateCamera) {
	s.camera = cam
	if cam != nil {
		cam.viewport = s.viewport
	}
}

// SpriteManagers returns the scene's managers in creation order. The
// returned slice MUST NOT be mutated.
func (s *Scene) SpriteManagers() []*SpriteManager {
	return s.managers
}

// Viewport returns the current surface rectangle.
func (s *Scene) Viewport() Rect {
	return s.viewport
}

// SetEventSink sets the optional event forwarder.
func (s *Scene) SetEventSink(sink EventSink) {
	s.sink = sink
}

// SetDebugMode enables per-frame render statistics at debug log level.
func (s *Scene) SetDebugMode(enabled bool) {
	s.debug = enabled
}

// SetUpdateFunc sets a callback run at the end of every Update. A non-nil
// error (such as ebiten.Termination) is returned from Update.
func (s *Scene) SetUpdateFunc(fn func() error) {
	s.updateFunc = fn
}

// Update processes input, advances the camera and sprite animations, and
// runs the update callback. Call once per tick.
func (s *Scene) Update() error {
	if s.disposed {
		return nil
	}
	tps := ebiten.TPS()
	if tps <= 0 {
		tps = ebiten.DefaultTPS
	}
	dt := time.Second / time.Duration(tps)

	if s.testRunner != nil {
		s.testRunner.step(s)
	}
	s.processInput()

	if s.camera != nil {
		s.camera.update(float32(dt.Seconds()))
	}
	for i := 0; i < len(s.managers); i++ {
		s.managers[i].animate(dt)
	}

	if s.updateFunc != nil {
		return s.updateFunc()
	}
	return nil
}

// Draw renders the current state into screen. It never mutates sprites.
func (s *Scene) Draw(screen *ebiten.Image) {
	if s.ClearColor.A > 0 {
		screen.Fill(s.ClearColor.toRGBA())
	}
	if s.disposed || s.camera == nil {
		return
	}

	var t0 time.Time
	if s.debug {
		t0 = time.Now()
	}

	s.emitCommands()
	s.mergeSort()

	if s.debug {
		s.stats.emitSortTime = time.Since(t0)
		t0 = time.Now()
	}

	s.submit(screen)

	if s.debug {
		s.stats.submitTime = time.Since(t0)
		s.debugLog()
	}

	s.flushScreenshots(screen)
}

// Resize re-fits the scene to a surface of the given size: the viewport and
// camera aspect are updated and resize callbacks fire. Sprites are not
// touched.
func (s *Scene) Resize(width, height int) {
	s.viewport = Rect{Width: float64(width), Height: float64(height)}
	if s.camera != nil {
		s.camera.viewport = s.viewport
	}
	s.fireResize(ResizeEvent{Width: width, Height: height})
}

// Dispose releases every manager and sheet, removes all callbacks, and makes
// Update and Draw no-ops. The scene must not be used afterwards.
func (s *Scene) Dispose() {
	if s.disposed {
		return
	}
	s.disposed = true
	for _, m := range s.managers {
		m.dispose()
	}
	s.managers = nil
	s.lights = nil
	s.camera = nil
	s.handlers = handlerRegistry{}
	s.injectQueue = nil
	s.testRunner = nil
	s.sink = nil
	s.updateFunc = nil
	s.commands = s.commands[:0]
	Logger().Info("scene disposed")
}

// IsDisposed reports whether Dispose has been called.
func (s *Scene) IsDisposed() bool {
	return s.disposed
}

func (s *Scene) removeManager(m *SpriteManager) {
	for i, c := range s.managers {
		if c == m {
			copy(s.managers[i:], s.managers[i+1:])
			s.managers[len(s.managers)-1] = nil
			s.managers = s.managers[:len(s.managers)-1]
			return
		}
	}
}

func (s *Scene) emitAnimationEnd(evt AnimationEndEvent) {
	Logger().Debug("animation end", "sprite", evt.Sprite.Name, "frame", evt.Frame)
	if s.sink != nil {
		s.sink.EmitAnimationEnd(evt)
	}
}
