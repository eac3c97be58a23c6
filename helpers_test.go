package billboard

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"math"
	"testing"

	"github.com/hajimehoshi/ebiten/v2"
)

const epsilon = 1e-6

func approxEqual(a, b, eps float64) bool {
	return math.Abs(a-b) < eps
}

// encodePNG returns a w×h PNG filled with c.
func encodePNG(t *testing.T, w, h int, c color.Color) []byte {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, c)
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("encode png: %v", err)
	}
	return buf.Bytes()
}

// newTestSheet builds a sheet of cols×rows cells of size cell.
func newTestSheet(t *testing.T, cell, cols, rows int) *SpriteSheet {
	t.Helper()
	img := ebiten.NewImage(cell*cols, cell*rows)
	img.Fill(color.White)
	sheet, err := NewSpriteSheet(img, SpriteSheetConfig{Path: "test.png", FrameWidth: cell, FrameHeight: cell})
	if err != nil {
		t.Fatalf("NewSpriteSheet: %v", err)
	}
	return sheet
}

// newTestScene returns an 800x600 scene with a camera looking at the origin
// from +Z (alpha π/2, beta π/2) at distance 10.
func newTestScene(t *testing.T) *Scene {
	t.Helper()
	s := NewScene()
	s.Resize(800, 600)
	cam := s.NewArcRotateCamera("cam", math.Pi/2, math.Pi/2, 10, Vec3{})
	cam.Inertia = 0
	t.Cleanup(s.Dispose)
	return s
}

// newTestManager adds a pickable manager with a 4×4 sheet of 16 px cells.
func newTestManager(t *testing.T, s *Scene, capacity int) *SpriteManager {
	t.Helper()
	m, err := s.NewSpriteManager("m", newTestSheet(t, 16, 4, 4), capacity, 16)
	if err != nil {
		t.Fatalf("NewSpriteManager: %v", err)
	}
	m.IsPickable = true
	return m
}

func mustSprite(t *testing.T, m *SpriteManager, name string) *Sprite {
	t.Helper()
	sp, err := m.NewSprite(name)
	if err != nil {
		t.Fatalf("NewSprite(%q): %v", name, err)
	}
	return sp
}
