package billboard

import (
	"github.com/hajimehoshi/ebiten/v2"
)

// renderCommand is a single sprite draw emitted for one frame.
type renderCommand struct {
	sprite    *Sprite
	frame     *ebiten.Image
	transform [6]float64
	depth     float64
	color     Color
	order     int // emission order for a stable sort
}

// emitCommands projects every visible sprite and appends a command for each
// one in front of the camera and inside the viewport.
func (s *Scene) emitCommands() {
	s.commands = s.commands[:0]
	s.stats.culled = 0

	proj := s.camera.newProjector()
	order := 0
	for _, m := range s.managers {
		for _, sp := range m.sprites {
			if !sp.IsVisible {
				continue
			}
			q, ok := spriteQuad(&proj, sp)
			if !ok || !screenAABB(q.transform).Intersects(s.viewport) {
				s.stats.culled++
				continue
			}
			c := sp.Color
			if m.Lit {
				l := s.lightAt(sp.Position)
				c.R *= l.R
				c.G *= l.G
				c.B *= l.B
			}
			order++
			s.commands = append(s.commands, renderCommand{
				sprite:    sp,
				frame:     m.Sheet.frameImage(sp.CellIndex),
				transform: q.transform,
				depth:     q.depth,
				color:     c,
				order:     order,
			})
		}
	}
}

// --- Merge sort ---

// commandLessOrEqual returns true if a should be drawn before or at the same
// position as b: farther sprites first, then emission order.
func commandLessOrEqual(a, b *renderCommand) bool {
	if a.depth != b.depth {
		return a.depth > b.depth
	}
	return a.order <= b.order
}

// mergeSort sorts s.commands back to front in place using s.sortBuf as
// scratch space. Bottom-up: no allocations once the buffer reaches its
// high-water mark.
func (s *Scene) mergeSort() {
	n := len(s.commands)
	if n <= 1 {
		return
	}
	if cap(s.sortBuf) < n {
		s.sortBuf = make([]renderCommand, n)
	}
	s.sortBuf = s.sortBuf[:n]

	a := s.commands
	b := s.sortBuf
	swapped := false

	for width := 1; width < n; width *= 2 {
		for i := 0; i < n; i += 2 * width {
			lo := i
			mid := min(lo+width, n)
			hi := min(lo+2*width, n)
			mergeRun(a, b, lo, mid, hi)
		}
		a, b = b, a
		swapped = !swapped
	}

	if swapped {
		copy(s.commands, s.sortBuf)
	}
}

// mergeRun merges two sorted runs [lo, mid) and [mid, hi) from src into dst.
func mergeRun(src, dst []renderCommand, lo, mid, hi int) {
	i, j, k := lo, mid, lo
	for i < mid && j < hi {
		if commandLessOrEqual(&src[i], &src[j]) {
			dst[k] = src[i]
			i++
		} else {
			dst[k] = src[j]
			j++
		}
		k++
	}
	for i < mid {
		dst[k] = src[i]
		i++
		k++
	}
	for j < hi {
		dst[k] = src[j]
		j++
		k++
	}
}

// submit draws the sorted commands into target.
func (s *Scene) submit(target *ebiten.Image) {
	var op ebiten.DrawImageOptions
	op.Filter = ebiten.FilterLinear

	for i := range s.commands {
		cmd := &s.commands[i]
		b := cmd.frame.Bounds()

		op.GeoM.Reset()
		op.GeoM.Scale(1/float64(b.Dx()), 1/float64(b.Dy()))
		op.GeoM.Concat(affineGeoM(cmd.transform))

		op.ColorScale.Reset()
		a := float32(cmd.color.A)
		op.ColorScale.Scale(float32(cmd.color.R)*a, float32(cmd.color.G)*a, float32(cmd.color.B)*a, a)

		target.DrawImage(cmd.frame, &op)
	}
	s.stats.drawn = len(s.commands)
}

// affineGeoM converts an [a, b, c, d, tx, ty] matrix to an ebiten.GeoM.
func affineGeoM(m [6]float64) ebiten.GeoM {
	var g ebiten.GeoM
	g.SetElement(0, 0, m[0])
	g.SetElement(1, 0, m[1])
	g.SetElement(0, 1, m[2])
	g.SetElement(1, 1, m[3])
	g.SetElement(0, 2, m[4])
	g.SetElement(1, 2, m[5])
	return g
}
