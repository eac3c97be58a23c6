package billboard

import "math"

// PointLight emits light in all directions from Position.
type PointLight struct {
	Name      string
	Position  Vec3
	Diffuse   Color
	Intensity float64
	// Range is the distance at which the light falls to zero. Zero means
	// unlimited.
	Range   float64
	Enabled bool
}

// NewPointLight creates a white light of intensity 1 and adds it to the
// scene.
func (s *Scene) NewPointLight(name string, position Vec3) *PointLight {
	l := &PointLight{
		Name:      name,
		Position:  position,
		Diffuse:   ColorWhite,
		Intensity: 1,
		Enabled:   true,
	}
	s.lights = append(s.lights, l)
	return l
}

// Lights returns the scene's lights. The returned slice MUST NOT be mutated.
func (s *Scene) Lights() []*PointLight {
	return s.lights
}

// attenuation returns the light's contribution factor at p.
func (l *PointLight) attenuation(p Vec3) float64 {
	if !l.Enabled {
		return 0
	}
	if l.Range <= 0 {
		return l.Intensity
	}
	dx, dy, dz := p.X-l.Position.X, p.Y-l.Position.Y, p.Z-l.Position.Z
	d := math.Sqrt(dx*dx + dy*dy + dz*dz)
	if d >= l.Range {
		return 0
	}
	return l.Intensity * (1 - d/l.Range)
}

// lightAt sums every light's diffuse contribution at p, clamped to [0, 1].
func (s *Scene) lightAt(p Vec3) Color {
	var c Color
	for _, l := range s.lights {
		f := l.attenuation(p)
		if f == 0 {
			continue
		}
		c.R += l.Diffuse.R * f
		c.G += l.Diffuse.G * f
		c.B += l.Diffuse.B * f
	}
	return Color{clamp01(c.R), clamp01(c.G), clamp01(c.B), 1}
}
