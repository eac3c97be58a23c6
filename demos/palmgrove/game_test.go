package main

import (
	"errors"
	"math"
	"testing"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/phanxgames/billboard"
)

const (
	testW = 800
	testH = 600
)

// newTestApp builds the grove and fits it to an 800x600 surface.
func newTestApp(t *testing.T, seed uint64) *App {
	t.Helper()
	cfg := DefaultConfig()
	cfg.Seed = seed
	app := NewApp(cfg, assets)
	if err := app.Initialize(canvasID); err != nil {
		t.Fatalf("Initialize: %v", err)
	}
	t.Cleanup(app.Close)
	if err := app.BuildScene(); err != nil {
		t.Fatalf("BuildScene: %v", err)
	}
	app.Game().Layout(testW, testH)
	return app
}

type spriteState struct {
	name      string
	pos       billboard.Vec3
	angle     float64
	w, h      float64
	cell      int
	invertU   bool
	visible   bool
	pickable  bool
	animating bool
}

func snapshot(s *billboard.Scene) map[*billboard.Sprite]spriteState {
	out := make(map[*billboard.Sprite]spriteState)
	for _, m := range s.SpriteManagers() {
		for _, sp := range m.Sprites() {
			out[sp] = spriteState{
				name: sp.Name, pos: sp.Position, angle: sp.Angle,
				w: sp.Width, h: sp.Height, cell: sp.CellIndex,
				invertU: sp.InvertU, visible: sp.IsVisible,
				pickable: sp.IsPickable, animating: sp.IsAnimating(),
			}
		}
	}
	return out
}

func TestInitialize_UnknownSurface(t *testing.T) {
	for _, id := range []string{"", "otherCanvas"} {
		app := NewApp(DefaultConfig(), assets)
		err := app.Initialize(id)
		if !errors.Is(err, ErrSurfaceNotFound) {
			t.Errorf("Initialize(%q) = %v, want ErrSurfaceNotFound", id, err)
		}
		if app.Scene() != nil {
			t.Errorf("Initialize(%q) created a scene", id)
		}
	}
}

func TestBuildScene_BeforeInitialize(t *testing.T) {
	app := NewApp(DefaultConfig(), assets)
	if err := app.BuildScene(); !errors.Is(err, errNotInitialized) {
		t.Errorf("BuildScene = %v, want errNotInitialized", err)
	}
}

func TestBuildScene_Trees(t *testing.T) {
	app := newTestApp(t, 42)

	if app.trees.Name != "treesManager" || app.trees.CellSize != treeCellSize || app.trees.Capacity != treeCount {
		t.Errorf("trees manager = %q cap %d cell %d", app.trees.Name, app.trees.Capacity, app.trees.CellSize)
	}
	if !app.trees.IsPickable {
		t.Error("trees manager not pickable")
	}
	trees := app.trees.Sprites()
	if len(trees) != treeCount {
		t.Fatalf("trees = %d, want %d", len(trees), treeCount)
	}
	fallenCount := 0
	for i, tr := range trees {
		if tr.Position.X < -50 || tr.Position.X >= 50 || tr.Position.Z < -50 || tr.Position.Z >= 50 {
			t.Errorf("tree %d at (%v, %v) outside [-50, 50)", i, tr.Position.X, tr.Position.Z)
		}
		if !tr.IsPickable {
			t.Errorf("tree %d not pickable", i)
		}
		switch {
		case tr.Angle == math.Pi/2 && tr.Position.Y == -0.3:
			fallenCount++
		case tr.Angle == 0 && tr.Position.Y == 0:
		default:
			t.Errorf("tree %d: angle %v y %v is neither standing nor fallen", i, tr.Angle, tr.Position.Y)
		}
	}
	// Bucket zero is hit with probability 0.1.
	if fallenCount < 100 || fallenCount > 320 {
		t.Errorf("fallen trees = %d, want roughly 200", fallenCount)
	}
}

func TestBuildScene_FallenMatchesBucket(t *testing.T) {
	// Replaying the generator reproduces each tree's draws: x, z, bucket.
	const seed = 7
	app := newTestApp(t, seed)
	replay := NewApp(Config{Seed: seed}, assets).rng

	for i, tr := range app.trees.Sprites() {
		x := replay.Float64()*100 - 50
		z := replay.Float64()*100 - 50
		bucket := math.Round(replay.Float64() * 5)
		if tr.Position.X != x || tr.Position.Z != z {
			t.Fatalf("tree %d at (%v, %v), replay (%v, %v)", i, tr.Position.X, tr.Position.Z, x, z)
		}
		isFallen := tr.Angle == math.Pi/2 && tr.Position.Y == -0.3
		if isFallen != (bucket == 0) {
			t.Errorf("tree %d: fallen=%v bucket=%v", i, isFallen, bucket)
		}
	}
}

func TestBuildScene_Reproducible(t *testing.T) {
	a := newTestApp(t, 99)
	b := newTestApp(t, 99)
	ta, tb := a.trees.Sprites(), b.trees.Sprites()
	for i := range ta {
		if ta[i].Position != tb[i].Position || ta[i].Angle != tb[i].Angle {
			t.Fatalf("tree %d differs between runs with the same seed", i)
		}
	}
}

func TestFallen(t *testing.T) {
	tests := []struct {
		r    float64
		want bool
	}{
		{0, true},
		{0.05, true},
		{0.0999, true},
		{0.1, false},
		{0.5, false},
		{0.9999, false},
	}
	for _, tt := range tests {
		if got := fallen(tt.r); got != tt.want {
			t.Errorf("fallen(%v) = %v, want %v", tt.r, got, tt.want)
		}
	}
}

func TestBuildScene_Players(t *testing.T) {
	app := newTestApp(t, 1)

	if app.players.Name != "playerManager" || app.players.Capacity != 2 || app.players.CellSize != 64 {
		t.Errorf("players manager = %q cap %d cell %d", app.players.Name, app.players.Capacity, app.players.CellSize)
	}
	if !app.players.IsPickable {
		t.Error("players manager not pickable")
	}
	ps := app.players.Sprites()
	if len(ps) != 2 {
		t.Fatalf("players = %d, want 2", len(ps))
	}

	a := ps[0]
	if a.Name != "player" || !a.IsAnimating() || a.CellIndex != 0 {
		t.Errorf("player: name %q animating %v cell %d", a.Name, a.IsAnimating(), a.CellIndex)
	}
	if a.Position != (billboard.Vec3{Y: -0.3}) || a.Size() != 0.3 || !a.IsPickable || a.InvertU {
		t.Errorf("player: pos %+v size %v pickable %v invertU %v", a.Position, a.Size(), a.IsPickable, a.InvertU)
	}

	b := ps[1]
	if b.Name != "player2" || b.IsAnimating() || b.CellIndex != 2 {
		t.Errorf("player2: name %q animating %v cell %d", b.Name, b.IsAnimating(), b.CellIndex)
	}
	if b.Position != (billboard.Vec3{X: 1, Y: -0.3}) || b.Size() != 0.3 || !b.IsPickable || !b.InvertU {
		t.Errorf("player2: pos %+v size %v pickable %v invertU %v", b.Position, b.Size(), b.IsPickable, b.InvertU)
	}

	if _, err := app.players.NewSprite("extra"); !errors.Is(err, billboard.ErrCapacityReached) {
		t.Errorf("third player: err = %v, want ErrCapacityReached", err)
	}
}

func TestBuildScene_CameraAndLight(t *testing.T) {
	app := newTestApp(t, 1)
	cam := app.Scene().Camera()
	if cam == nil || cam.Name != "Camera" {
		t.Fatal("camera missing")
	}
	if cam.Alpha != 1 || cam.Beta != 0.8 || cam.Radius != 8 || cam.Target != (billboard.Vec3{}) {
		t.Errorf("camera = alpha %v beta %v radius %v target %+v", cam.Alpha, cam.Beta, cam.Radius, cam.Target)
	}
	if !cam.IsAttached() {
		t.Error("camera not attached to input")
	}
	lights := app.Scene().Lights()
	if len(lights) != 1 || lights[0].Name != "Point" || lights[0].Position != (billboard.Vec3{X: 5, Y: 10, Z: 5}) {
		t.Errorf("lights = %+v", lights)
	}
}

func tick(t *testing.T, s *billboard.Scene, n int) {
	t.Helper()
	for range n {
		if err := s.Update(); err != nil {
			t.Fatalf("Update: %v", err)
		}
	}
}

func TestPointerDown_RotatesPickedSprite(t *testing.T) {
	app := newTestApp(t, 3)
	s := app.Scene()

	sx, sy, _, ok := s.Camera().Project(app.player.Position)
	if !ok {
		t.Fatal("player not in view")
	}
	res := s.PickSprite(sx, sy)
	if !res.Hit {
		t.Fatal("nothing under the player's center")
	}
	target := res.PickedSprite
	before := snapshot(s)

	s.InjectClick(sx, sy)
	tick(t, s, 2)

	after := snapshot(s)
	for sp, was := range before {
		now := after[sp]
		if sp == target {
			if now.angle != was.angle+0.5 {
				t.Errorf("picked %q angle = %v, want %v", sp.Name, now.angle, was.angle+0.5)
			}
			now.angle = was.angle
		}
		// Animation frames advance in Update; ignore them here.
		now.cell, was.cell = 0, 0
		if now != was {
			t.Errorf("sprite %q changed: %+v -> %+v", sp.Name, was, now)
		}
	}
}

func TestPointerDown_MissChangesNothing(t *testing.T) {
	app := newTestApp(t, 3)
	s := app.Scene()
	before := snapshot(s)

	s.InjectClick(-1e6, -1e6)
	tick(t, s, 2)

	after := snapshot(s)
	for sp, was := range before {
		now := after[sp]
		now.cell, was.cell = 0, 0
		if now != was {
			t.Errorf("sprite %q changed on a miss: %+v -> %+v", sp.Name, was, now)
		}
	}
}

func TestResize_RefitsOnce(t *testing.T) {
	app := newTestApp(t, 5)
	s := app.Scene()

	refits := 0
	s.OnResize(func(e billboard.ResizeEvent) {
		refits++
		if e.Width != 1024 || e.Height != 768 {
			t.Errorf("resize event = %+v", e)
		}
	})
	before := snapshot(s)

	app.Game().Layout(1024, 768)
	if refits != 1 {
		t.Fatalf("refits = %d, want 1", refits)
	}
	app.Game().Layout(1024, 768)
	if refits != 1 {
		t.Errorf("same size re-fitted again: refits = %d", refits)
	}
	if v := s.Viewport(); v.Width != 1024 || v.Height != 768 {
		t.Errorf("viewport = %+v", v)
	}
	if v := s.Camera().Viewport(); v.Width != 1024 || v.Height != 768 {
		t.Errorf("camera viewport = %+v", v)
	}

	after := snapshot(s)
	for sp, was := range before {
		if after[sp] != was {
			t.Errorf("sprite %q changed on resize", sp.Name)
		}
	}
}

func TestDraw_NeverMutatesSprites(t *testing.T) {
	app := newTestApp(t, 11)
	s := app.Scene()
	screen := ebiten.NewImage(testW, testH)
	before := snapshot(s)

	for range 3 {
		app.Game().Draw(screen)
	}
	if s.DrawnSprites() == 0 {
		t.Error("no sprites drawn")
	}

	after := snapshot(s)
	for sp, was := range before {
		if after[sp] != was {
			t.Errorf("sprite %q changed during Draw", sp.Name)
		}
	}
}

func TestClose_DisposesScene(t *testing.T) {
	app := newTestApp(t, 1)
	trees := app.trees
	app.Close()
	if !app.Scene().IsDisposed() {
		t.Error("scene not disposed")
	}
	if !trees.IsDisposed() || trees.Sheet.Image != nil {
		t.Error("trees manager or sheet not released")
	}
}
