// sprites10k spawns 10,000 billboard sprites in a cube around an orbiting
// camera. Each one spins and bobs every tick. A stress test for the
// billboard projection, sort and draw path.
package main

import (
	"flag"
	"image"
	"image/color"
	"log"
	"log/slog"
	"math"
	"math/rand/v2"
	"os"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/phanxgames/billboard"
)

const (
	screenW  = 1280
	screenH  = 720
	count    = 10_000
	cellSize = 32
	halfCube = 30.0
)

var cellColors = []color.RGBA{
	{R: 240, G: 90, B: 80, A: 255},
	{R: 90, G: 200, B: 120, A: 255},
	{R: 80, G: 140, B: 240, A: 255},
	{R: 240, G: 210, B: 90, A: 255},
}

type bobber struct {
	sprite   *billboard.Sprite
	baseY    float64
	rotSpeed float64
	bobSpeed float64
	phase    float64
}

// newColorSheet builds a one-row sheet with a solid cell per color.
func newColorSheet() (*billboard.SpriteSheet, error) {
	img := ebiten.NewImage(cellSize*len(cellColors), cellSize)
	for i, c := range cellColors {
		r := image.Rect(i*cellSize, 0, (i+1)*cellSize, cellSize)
		img.SubImage(r).(*ebiten.Image).Fill(c)
	}
	return billboard.NewSpriteSheet(img, billboard.SpriteSheetConfig{
		Path:        "colors",
		FrameWidth:  cellSize,
		FrameHeight: cellSize,
	})
}

func main() {
	thumbnail := flag.Bool("thumbnail", false, "write a screenshot after 30 frames and exit")
	debug := flag.Bool("debug", false, "log per-frame render stats")
	flag.Parse()

	if *debug {
		billboard.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug})))
	}

	scene := billboard.NewScene()
	scene.ClearColor = billboard.Color{R: 0.06, G: 0.06, B: 0.09, A: 1}
	scene.SetDebugMode(*debug)

	cam := scene.NewArcRotateCamera("orbit", 0, 1.2, 60, billboard.Vec3{})
	cam.AttachControl()

	sheet, err := newColorSheet()
	if err != nil {
		log.Fatal(err)
	}
	m, err := scene.NewSpriteManager("cubes", sheet, count, cellSize)
	if err != nil {
		log.Fatal(err)
	}

	rng := rand.New(rand.NewPCG(1, 2))
	bobbers := make([]bobber, count)
	for i := range bobbers {
		sp, err := m.NewSprite("cube")
		if err != nil {
			log.Fatal(err)
		}
		sp.Position = billboard.Vec3{
			X: (rng.Float64()*2 - 1) * halfCube,
			Y: (rng.Float64()*2 - 1) * halfCube,
			Z: (rng.Float64()*2 - 1) * halfCube,
		}
		sp.SetSize(0.5 + rng.Float64())
		sp.CellIndex = rng.IntN(len(cellColors))
		bobbers[i] = bobber{
			sprite:   sp,
			baseY:    sp.Position.Y,
			rotSpeed: (rng.Float64() - 0.5) * 0.08,
			bobSpeed: 1 + rng.Float64()*2,
			phase:    rng.Float64() * math.Pi * 2,
		}
	}

	var frame float64
	start := time.Now()
	scene.SetUpdateFunc(func() error {
		frame++
		t := frame / 60.0

		if *thumbnail {
			if frame == 30 {
				scene.ScreenshotDir = "docs/demos/sprites10k"
				scene.Screenshot("thumbnail")
			}
			if frame == 32 {
				return ebiten.Termination
			}
		}

		cam.Alpha += 0.002
		for i := range bobbers {
			b := &bobbers[i]
			b.sprite.Angle += b.rotSpeed
			b.sprite.Position.Y = b.baseY + 0.5*math.Sin(t*b.bobSpeed+b.phase)
		}
		return nil
	})

	err = billboard.Run(scene, billboard.RunConfig{
		Title:     "Billboard: 10k Sprites",
		Width:     screenW,
		Height:    screenH,
		Resizable: true,
		ShowFPS:   true,
	})
	scene.Dispose()
	if err != nil {
		log.Fatal(err)
	}
	slog.Info("done", "frames", frame, "elapsed", time.Since(start))
}
