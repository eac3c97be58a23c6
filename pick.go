package billboard

import "math"

// PickResult describes the outcome of a sprite pick test.
type PickResult struct {
	Hit          bool
	PickedSprite *Sprite
	// Distance is the view depth of the picked sprite's center.
	Distance float64
	// U and V are the hit position within the sprite quad, in [0, 1]
	// from its top-left corner.
	U, V float64
}

// PickSprite returns the nearest pickable sprite whose on-screen quad
// contains the screen point (x, y). Only sprites with IsPickable set, in
// managers with IsPickable set, are considered.
func (s *Scene) PickSprite(x, y float64) PickResult {
	var res PickResult
	if s.camera == nil || s.disposed {
		return res
	}
	proj := s.camera.newProjector()
	for _, m := range s.managers {
		if !m.IsPickable {
			continue
		}
		for _, sp := range m.sprites {
			if !sp.IsPickable || !sp.IsVisible {
				continue
			}
			q, ok := spriteQuad(&proj, sp)
			if !ok {
				continue
			}
			if res.Hit && q.depth >= res.Distance {
				continue
			}
			u, v := transformPoint(invertAffine(q.transform), x, y)
			if u >= 0 && u <= 1 && v >= 0 && v <= 1 {
				res = PickResult{Hit: true, PickedSprite: sp, Distance: q.depth, U: u, V: v}
			}
		}
	}
	if res.Hit {
		Logger().Debug("sprite picked", "sprite", res.PickedSprite.Name,
			"x", x, "y", y, "distance", res.Distance)
	}
	return res
}

// quad is a sprite's screen placement for one frame.
type quad struct {
	// transform maps the unit square to screen pixels.
	transform [6]float64
	depth     float64
}

// spriteQuad projects a sprite to the screen. ok is false when the sprite is
// clipped by the near or far plane or has no area.
func spriteQuad(p *projector, sp *Sprite) (quad, bool) {
	cx, cy, depth, ok := p.project(sp.Position)
	if !ok {
		return quad{}, false
	}
	ppu := p.pixelsPerUnit(depth)
	w := sp.Width * ppu
	h := sp.Height * ppu
	if w == 0 || h == 0 {
		return quad{}, false
	}
	return quad{
		transform: quadTransform(cx, cy, w, h, sp.Angle, sp.InvertU, sp.InvertV),
		depth:     depth,
	}, true
}

// quadTransform computes the affine matrix placing the unit square centered
// on (cx, cy) with size (w, h), mirrored by flipX/flipY and rotated
// counter-clockwise on screen by angle. Returns [a, b, c, d, tx, ty].
//
// Composition order:
//
//	Translate(-0.5, -0.5) -> Scale(w, h) -> Rotate(-angle) -> Translate(cx, cy)
func quadTransform(cx, cy, w, h, angle float64, flipX, flipY bool) [6]float64 {
	sx, sy := w, h
	if flipX {
		sx = -sx
	}
	if flipY {
		sy = -sy
	}
	sin, cos := math.Sincos(-angle)
	px := -0.5 * sx
	py := -0.5 * sy
	return [6]float64{
		cos * sx, sin * sx,
		-sin * sy, cos * sy,
		cos*px - sin*py + cx,
		sin*px + cos*py + cy,
	}
}

// invertAffine computes the inverse of a 2D affine matrix.
// Returns the identity matrix if the matrix is singular (determinant ≈ 0).
func invertAffine(m [6]float64) [6]float64 {
	det := m[0]*m[3] - m[2]*m[1]
	if det > -1e-12 && det < 1e-12 {
		return [6]float64{1, 0, 0, 1, 0, 0}
	}
	invDet := 1.0 / det
	a := m[3] * invDet
	b := -m[1] * invDet
	c := -m[2] * invDet
	d := m[0] * invDet
	return [6]float64{
		a, b, c, d,
		-(a*m[4] + c*m[5]),
		-(b*m[4] + d*m[5]),
	}
}

// transformPoint applies an affine matrix to a point.
func transformPoint(m [6]float64, x, y float64) (float64, float64) {
	return m[0]*x + m[2]*y + m[4], m[1]*x + m[3]*y + m[5]
}

// screenAABB returns the screen-space bounding box of a quad.
func screenAABB(m [6]float64) Rect {
	x0, y0 := transformPoint(m, 0, 0)
	x1, y1 := transformPoint(m, 1, 0)
	x2, y2 := transformPoint(m, 1, 1)
	x3, y3 := transformPoint(m, 0, 1)

	minX := math.Min(math.Min(x0, x1), math.Min(x2, x3))
	minY := math.Min(math.Min(y0, y1), math.Min(y2, y3))
	maxX := math.Max(math.Max(x0, x1), math.Max(x2, x3))
	maxY := math.Max(math.Max(y0, y1), math.Max(y2, y3))

	return Rect{X: minX, Y: minY, Width: maxX - minX, Height: maxY - minY}
}
