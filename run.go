package billboard

import (
	"errors"
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
)

// RunConfig holds window settings for Run.
type RunConfig struct {
	Title     string
	Width     int
	Height    int
	Resizable bool
	ShowFPS   bool
}

// Game adapts a Scene to ebiten.Game. Layout tracks the outside size of the
// window and reports every change to the resize listener.
type Game struct {
	scene  *Scene
	cfg    RunConfig
	fps    *fpsOverlay
	width  int
	height int

	onResize func(width, height int)
}

// NewGame wraps scene. The resize listener defaults to scene.Resize.
func NewGame(scene *Scene, cfg RunConfig) *Game {
	if scene == nil {
		panic("billboard: NewGame called with nil scene")
	}
	g := &Game{scene: scene, cfg: cfg, onResize: scene.Resize}
	if cfg.ShowFPS {
		g.fps = newFPSOverlay()
	}
	return g
}

// Scene returns the wrapped scene.
func (g *Game) Scene() *Scene {
	return g.scene
}

// SetResizeListener replaces the function called when the surface size
// changes. A nil fn disables resize notification.
func (g *Game) SetResizeListener(fn func(width, height int)) {
	g.onResize = fn
}

// Update implements ebiten.Game.
func (g *Game) Update() error {
	if g.fps != nil {
		tps := ebiten.TPS()
		if tps <= 0 {
			tps = ebiten.DefaultTPS
		}
		g.fps.update(1 / float64(tps))
	}
	return g.scene.Update()
}

// Draw implements ebiten.Game.
func (g *Game) Draw(screen *ebiten.Image) {
	g.scene.Draw(screen)
	if g.fps != nil {
		g.fps.draw(screen)
	}
}

// Layout implements ebiten.Game. The logical screen always matches the
// window so the scene re-fits instead of being scaled.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	if outsideWidth != g.width || outsideHeight != g.height {
		g.width, g.height = outsideWidth, outsideHeight
		Logger().Debug("surface resized", "width", outsideWidth, "height", outsideHeight)
		if g.onResize != nil {
			g.onResize(outsideWidth, outsideHeight)
		}
	}
	return outsideWidth, outsideHeight
}

// Run opens the window and blocks until it closes or Update returns an
// error. ebiten.Termination is treated as a clean exit.
func (g *Game) Run() error {
	if g.cfg.Title != "" {
		ebiten.SetWindowTitle(g.cfg.Title)
	}
	if g.cfg.Width > 0 && g.cfg.Height > 0 {
		ebiten.SetWindowSize(g.cfg.Width, g.cfg.Height)
	}
	if g.cfg.Resizable {
		ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	}
	Logger().Info("run", "title", g.cfg.Title, "width", g.cfg.Width, "height", g.cfg.Height)
	if err := ebiten.RunGame(g); err != nil && !errors.Is(err, ebiten.Termination) {
		return fmt.Errorf("billboard: run: %w", err)
	}
	return nil
}

// Run is a convenience for NewGame(scene, cfg).Run().
func Run(scene *Scene, cfg RunConfig) error {
	return NewGame(scene, cfg).Run()
}
