package billboard

import (
	"math"
	"testing"
)

func TestPickSprite_Hit(t *testing.T) {
	s := newTestScene(t)
	m := newTestManager(t, s, 4)
	sp := mustSprite(t, m, "a")
	sp.IsPickable = true

	res := s.PickSprite(400, 300)
	if !res.Hit || res.PickedSprite != sp {
		t.Fatalf("PickSprite(center) = %+v", res)
	}
	if !approxEqual(res.Distance, 10, epsilon) {
		t.Errorf("Distance = %v, want 10", res.Distance)
	}
	if !approxEqual(res.U, 0.5, 1e-3) || !approxEqual(res.V, 0.5, 1e-3) {
		t.Errorf("UV = (%v, %v), want (0.5, 0.5)", res.U, res.V)
	}

	// The quad spans focal/10 ≈ 71 px, so 40 px off center misses.
	if res := s.PickSprite(440, 300); res.Hit {
		t.Errorf("PickSprite(440, 300) hit %q", res.PickedSprite.Name)
	}
	if res := s.PickSprite(-1e6, -1e6); res.Hit {
		t.Error("far-off point should miss")
	}
}

func TestPickSprite_Nearest(t *testing.T) {
	s := newTestScene(t)
	m := newTestManager(t, s, 4)
	far := mustSprite(t, m, "far")
	far.IsPickable = true
	near := mustSprite(t, m, "near")
	near.IsPickable = true
	near.Position.Z = 2
	farther := mustSprite(t, m, "farther")
	farther.IsPickable = true
	farther.Position.Z = -3

	res := s.PickSprite(400, 300)
	if res.PickedSprite != near {
		t.Errorf("picked %v, want near", res.PickedSprite)
	}
	if !approxEqual(res.Distance, 8, epsilon) {
		t.Errorf("Distance = %v, want 8", res.Distance)
	}
}

func TestPickSprite_Filters(t *testing.T) {
	tests := []struct {
		name  string
		setup func(m *SpriteManager, sp *Sprite)
	}{
		{"sprite not pickable", func(m *SpriteManager, sp *Sprite) { sp.IsPickable = false }},
		{"manager not pickable", func(m *SpriteManager, sp *Sprite) { m.IsPickable = false }},
		{"invisible", func(m *SpriteManager, sp *Sprite) { sp.IsVisible = false }},
		{"behind camera", func(m *SpriteManager, sp *Sprite) { sp.Position.Z = 20 }},
		{"disposed", func(m *SpriteManager, sp *Sprite) { sp.Dispose() }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestScene(t)
			m := newTestManager(t, s, 1)
			sp := mustSprite(t, m, "a")
			sp.IsPickable = true
			tt.setup(m, sp)
			if res := s.PickSprite(400, 300); res.Hit {
				t.Errorf("picked %q", res.PickedSprite.Name)
			}
		})
	}
}

func TestPickSprite_NoCamera(t *testing.T) {
	s := NewScene()
	s.Resize(800, 600)
	sp := mustSprite(t, newTestManager(t, s, 1), "a")
	sp.IsPickable = true
	if res := s.PickSprite(400, 300); res.Hit {
		t.Error("pick without a camera should miss")
	}
}

func TestPickSprite_Rotated(t *testing.T) {
	s := newTestScene(t)
	sp := mustSprite(t, newTestManager(t, s, 1), "a")
	sp.IsPickable = true

	// Unrotated, (433, 333) is inside the ~35.5 px half extent.
	if !s.PickSprite(433, 333).Hit {
		t.Fatal("corner region should hit before rotation")
	}
	sp.Angle = math.Pi / 4
	if s.PickSprite(433, 333).Hit {
		t.Error("corner region should miss after a 45° turn")
	}
	if !s.PickSprite(445, 300).Hit {
		t.Error("rotated diagonal should reach 45 px along x")
	}
}

func TestPickSprite_InvertU(t *testing.T) {
	s := newTestScene(t)
	sp := mustSprite(t, newTestManager(t, s, 1), "a")
	sp.IsPickable = true

	plain := s.PickSprite(380, 300)
	sp.InvertU = true
	flipped := s.PickSprite(380, 300)
	if !plain.Hit || !flipped.Hit {
		t.Fatal("expected hits")
	}
	if plain.U >= 0.5 || !approxEqual(flipped.U, 1-plain.U, 1e-9) {
		t.Errorf("U = %v, flipped U = %v", plain.U, flipped.U)
	}
}

func TestQuadTransform(t *testing.T) {
	m := quadTransform(100, 100, 10, 20, 0, false, false)
	x, y := transformPoint(m, 0, 0)
	if !approxEqual(x, 95, epsilon) || !approxEqual(y, 90, epsilon) {
		t.Errorf("top-left = (%v, %v), want (95, 90)", x, y)
	}
	x, y = transformPoint(m, 1, 1)
	if !approxEqual(x, 105, epsilon) || !approxEqual(y, 110, epsilon) {
		t.Errorf("bottom-right = (%v, %v), want (105, 110)", x, y)
	}

	// A quarter turn counter-clockwise puts the top-left corner bottom-left.
	m = quadTransform(0, 0, 10, 10, math.Pi/2, false, false)
	x, y = transformPoint(m, 0, 0)
	if !approxEqual(x, -5, epsilon) || !approxEqual(y, 5, epsilon) {
		t.Errorf("rotated top-left = (%v, %v), want (-5, 5)", x, y)
	}

	m = quadTransform(0, 0, 10, 10, 0, true, false)
	x, _ = transformPoint(m, 0, 0)
	if !approxEqual(x, 5, epsilon) {
		t.Errorf("mirrored top-left x = %v, want 5", x)
	}
}

func TestInvertAffine(t *testing.T) {
	m := quadTransform(320, 200, 64, 32, 0.7, true, false)
	inv := invertAffine(m)
	for _, p := range [][2]float64{{0, 0}, {1, 0}, {0.25, 0.75}} {
		sx, sy := transformPoint(m, p[0], p[1])
		u, v := transformPoint(inv, sx, sy)
		if !approxEqual(u, p[0], 1e-9) || !approxEqual(v, p[1], 1e-9) {
			t.Errorf("round trip %v -> (%v, %v)", p, u, v)
		}
	}
	if got := invertAffine([6]float64{0, 0, 0, 0, 5, 5}); got != [6]float64{1, 0, 0, 1, 0, 0} {
		t.Errorf("singular inverse = %v, want identity", got)
	}
}

func TestScreenAABB(t *testing.T) {
	r := screenAABB(quadTransform(50, 50, 10, 10, math.Pi/4, false, false))
	half := 5 * math.Sqrt2
	if !approxEqual(r.X, 50-half, 1e-9) || !approxEqual(r.Width, 2*half, 1e-9) {
		t.Errorf("AABB = %+v", r)
	}
}
