package main

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"math"
	"math/rand/v2"
	"os"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/phanxgames/billboard"
	"github.com/phanxgames/billboard/ecs"
	"github.com/tanema/gween/ease"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
)

// canvasID is the only presentation surface: the Ebitengine window.
const canvasID = "renderCanvas"

const (
	treeCount     = 2000
	treeCellSize  = 800
	playerCap     = 2
	playerCellSz  = 64
	groveHalfSize = 50.0

	playerSize   = 0.3
	groundOffset = -0.3
	pickSpin     = 0.5

	cameraAlpha  = 1.0
	cameraBeta   = 0.8
	cameraRadius = 8.0
)

var (
	palmSheet = billboard.SpriteSheetConfig{
		Path:        "assets/palm.png",
		FrameWidth:  treeCellSize,
		FrameHeight: treeCellSize,
		FrameCount:  1,
	}
	playerSheet = billboard.SpriteSheetConfig{
		Path:        "assets/player.png",
		FrameWidth:  playerCellSz,
		FrameHeight: playerCellSz,
		FrameCount:  44,
	}
)

// ErrSurfaceNotFound is returned by Initialize for an unknown surface id.
var ErrSurfaceNotFound = errors.New("palmgrove: presentation surface not found")

var errNotInitialized = errors.New("palmgrove: Initialize must be called first")

// Config holds the demo's settings.
type Config struct {
	SurfaceID     string
	Width, Height int
	Seed          uint64
	Debug         bool
	ShowFPS       bool
	// ScriptPath names a JSON test script to replay. The demo exits when
	// the script finishes.
	ScriptPath    string
	ScreenshotDir string
}

// DefaultConfig returns the settings used when no flags are given.
func DefaultConfig() Config {
	return Config{
		SurfaceID:     canvasID,
		Width:         800,
		Height:        600,
		Seed:          1,
		ScreenshotDir: "screenshots",
	}
}

// App owns the scene, its window and the event world for the lifetime of
// the demo.
type App struct {
	cfg    Config
	assets fs.FS
	rng    *rand.Rand

	scene  *billboard.Scene
	game   *billboard.Game
	world  donburi.World
	runner *billboard.TestRunner

	camera  *billboard.ArcRotateCamera
	trees   *billboard.SpriteManager
	players *billboard.SpriteManager
	player  *billboard.Sprite
}

// NewApp creates an application reading sprite sheets from assets.
func NewApp(cfg Config, assets fs.FS) *App {
	return &App{
		cfg:    cfg,
		assets: assets,
		rng:    rand.New(rand.NewPCG(cfg.Seed, cfg.Seed^0x9e3779b97f4a7c15)),
	}
}

// Initialize binds the app to the named surface, creates the scene and the
// game wrapper, and registers the resize listener.
func (a *App) Initialize(surfaceID string) error {
	if surfaceID == "" || surfaceID != canvasID {
		return fmt.Errorf("%w: %q", ErrSurfaceNotFound, surfaceID)
	}

	a.scene = billboard.NewScene()
	a.scene.ClearColor = billboard.Color{R: 0.2, G: 0.2, B: 0.3, A: 1}
	if a.cfg.ScreenshotDir != "" {
		a.scene.ScreenshotDir = a.cfg.ScreenshotDir
	}
	a.scene.SetDebugMode(a.cfg.Debug)

	a.game = billboard.NewGame(a.scene, billboard.RunConfig{
		Title:     "Palm grove",
		Width:     a.cfg.Width,
		Height:    a.cfg.Height,
		Resizable: true,
		ShowFPS:   a.cfg.ShowFPS,
	})
	a.game.SetResizeListener(a.refit)

	a.world = donburi.NewWorld()
	a.scene.SetEventSink(ecs.NewDonburiSink(a.world))
	ecs.PointerEventType.Subscribe(a.world, logPointer)
	ecs.ResizeEventType.Subscribe(a.world, logResize)
	ecs.AnimationEndEventType.Subscribe(a.world, logAnimationEnd)

	if a.cfg.ScriptPath != "" {
		data, err := os.ReadFile(a.cfg.ScriptPath)
		if err != nil {
			return fmt.Errorf("palmgrove: read script: %w", err)
		}
		a.runner, err = billboard.LoadTestScript(data)
		if err != nil {
			return err
		}
		a.scene.SetTestRunner(a.runner)
	}

	a.scene.SetUpdateFunc(a.update)
	slog.Info("surface bound", "surface", surfaceID, "width", a.cfg.Width, "height", a.cfg.Height)
	return nil
}

// refit is the resize listener: the engine re-fits to the new surface size.
func (a *App) refit(width, height int) {
	a.scene.Resize(width, height)
}

// BuildScene populates the scene with the light, the camera, the palm trees
// and the two players, and registers the pick-to-rotate handler.
func (a *App) BuildScene() error {
	if a.scene == nil {
		return errNotInitialized
	}

	a.scene.NewPointLight("Point", billboard.Vec3{X: 5, Y: 10, Z: 5})

	a.camera = a.scene.NewArcRotateCamera("Camera", cameraAlpha, cameraBeta, cameraRadius, billboard.Vec3{})
	a.camera.AttachControl()

	if err := a.buildTrees(); err != nil {
		return err
	}
	if err := a.buildPlayers(); err != nil {
		return err
	}

	a.trees.IsPickable = true
	a.players.IsPickable = true

	a.scene.OnPointerDown(a.rotatePicked)

	slog.Info("scene built", "trees", a.trees.Len(), "players", a.players.Len())
	return nil
}

func (a *App) buildTrees() error {
	sheet, err := billboard.LoadSpriteSheet(a.assets, palmSheet)
	if err != nil {
		return err
	}
	a.trees, err = a.scene.NewSpriteManager("treesManager", sheet, treeCount, treeCellSize)
	if err != nil {
		return err
	}
	for range treeCount {
		tree, err := a.trees.NewSprite("tree")
		if err != nil {
			return err
		}
		tree.Position.X = a.rng.Float64()*2*groveHalfSize - groveHalfSize
		tree.Position.Z = a.rng.Float64()*2*groveHalfSize - groveHalfSize
		tree.IsPickable = true

		if fallen(a.rng.Float64()) {
			tree.Angle = math.Pi / 2
			tree.Position.Y = groundOffset
		}
	}
	return nil
}

// fallen reports whether a tree drawn with r in [0, 1) lies on the ground.
// Only r < 0.1 rounds to bucket zero.
func fallen(r float64) bool {
	return math.Round(r*5) == 0
}

func (a *App) buildPlayers() error {
	sheet, err := billboard.LoadSpriteSheet(a.assets, playerSheet)
	if err != nil {
		return err
	}
	a.players, err = a.scene.NewSpriteManager("playerManager", sheet, playerCap, playerCellSz)
	if err != nil {
		return err
	}

	a.player, err = a.players.NewSprite("player")
	if err != nil {
		return err
	}
	a.player.PlayAnimation(0, 40, true, 100*time.Millisecond, func(billboard.AnimationEndEvent) {})
	a.player.Position.Y = groundOffset
	a.player.SetSize(playerSize)
	a.player.IsPickable = true

	standing, err := a.players.NewSprite("player2")
	if err != nil {
		return err
	}
	standing.StopAnimation()
	standing.CellIndex = 2
	standing.Position.Y = groundOffset
	standing.Position.X = 1
	standing.SetSize(playerSize)
	standing.InvertU = true
	standing.IsPickable = true
	return nil
}

// rotatePicked spins whatever sprite is under the pointer.
func (a *App) rotatePicked(ctx billboard.PointerContext) {
	res := a.scene.PickSprite(ctx.ScreenX, ctx.ScreenY)
	if res.Hit {
		res.PickedSprite.Angle += pickSpin
	}
}

// update runs at the end of every scene tick.
func (a *App) update() error {
	events.ProcessAllEvents(a.world)

	if inpututil.IsKeyJustPressed(ebiten.KeyR) && a.camera != nil {
		a.camera.AnimateTo(cameraAlpha, cameraBeta, cameraRadius, 0.6, ease.OutCubic)
	}
	if a.runner != nil && a.runner.Done() {
		slog.Info("script finished")
		return ebiten.Termination
	}
	return nil
}

// Run starts the render loop and blocks until the window closes.
func (a *App) Run() error {
	if a.game == nil {
		return errNotInitialized
	}
	return a.game.Run()
}

// Close disposes the scene and every sprite sheet.
func (a *App) Close() {
	if a.scene != nil {
		a.scene.Dispose()
	}
}

// Scene returns the scene, or nil before Initialize.
func (a *App) Scene() *billboard.Scene { return a.scene }

// Game returns the Ebitengine game wrapper, or nil before Initialize.
func (a *App) Game() *billboard.Game { return a.game }

func logPointer(_ donburi.World, e billboard.PointerContext) {
	slog.Debug("pointer", "type", e.Type, "x", e.ScreenX, "y", e.ScreenY, "button", e.Button)
}

func logResize(_ donburi.World, e billboard.ResizeEvent) {
	slog.Debug("resize", "width", e.Width, "height", e.Height)
}

func logAnimationEnd(_ donburi.World, e billboard.AnimationEndEvent) {
	slog.Debug("animation end", "sprite", e.Sprite.Name, "frame", e.Frame)
}
