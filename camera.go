package billboard

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// Camera defaults.
const (
	defaultFOV                = 0.8
	defaultMinZ               = 1.0
	defaultMaxZ               = 10000.0
	defaultLowerBetaLimit     = 0.01
	defaultInertia            = 0.9
	defaultAngularSensibility = 1000.0
	defaultWheelPrecision     = 3.0
	inertiaEpsilon            = 0.001
)

// orbitAnim holds active AnimateTo tweens.
type orbitAnim struct {
	alpha, beta, radius *gween.Tween
	done                [3]bool
}

// ArcRotateCamera orbits a target point. Its position is given by Alpha
// (azimuth around the Y axis), Beta (angle from the +Y axis) and Radius.
// When attached, pointer drags orbit the camera and the wheel zooms it.
type ArcRotateCamera struct {
	Name string

	Alpha  float64
	Beta   float64
	Radius float64
	Target Vec3

	// FOV is the vertical field of view in radians.
	FOV float64
	// MinZ and MaxZ are the near and far clip distances.
	MinZ, MaxZ float64

	LowerBetaLimit, UpperBetaLimit float64
	// LowerRadiusLimit and UpperRadiusLimit clamp Radius when non-zero.
	LowerRadiusLimit, UpperRadiusLimit float64

	// Inertia is the per-tick decay of drag and wheel motion (0 = none).
	Inertia float64
	// AngularSensibility is the drag distance in pixels per radian of
	// inertial offset. Larger values orbit more slowly.
	AngularSensibility float64
	// WheelPrecision divides wheel motion. Larger values zoom more slowly.
	WheelPrecision float64

	inertialAlpha  float64
	inertialBeta   float64
	inertialRadius float64

	viewport Rect
	attached bool
	anim     *orbitAnim
}

// NewArcRotateCamera creates a camera orbiting target and makes it the
// scene's active camera.
func (s *Scene) NewArcRotateCamera(name string, alpha, beta, radius float64, target Vec3) *ArcRotateCamera {
	cam := &ArcRotateCamera{
		Name:               name,
		Alpha:              alpha,
		Beta:               beta,
		Radius:             radius,
		Target:             target,
		FOV:                defaultFOV,
		MinZ:               defaultMinZ,
		MaxZ:               defaultMaxZ,
		LowerBetaLimit:     defaultLowerBetaLimit,
		UpperBetaLimit:     math.Pi,
		Inertia:            defaultInertia,
		AngularSensibility: defaultAngularSensibility,
		WheelPrecision:     defaultWheelPrecision,
		viewport:           s.viewport,
	}
	s.camera = cam
	return cam
}

// AttachControl routes pointer drags and wheel input to the camera.
func (c *ArcRotateCamera) AttachControl() {
	c.attached = true
}

// DetachControl stops routing input to the camera.
func (c *ArcRotateCamera) DetachControl() {
	c.attached = false
	c.inertialAlpha, c.inertialBeta, c.inertialRadius = 0, 0, 0
}

// IsAttached reports whether the camera receives input.
func (c *ArcRotateCamera) IsAttached() bool {
	return c.attached
}

// Viewport returns the screen rectangle the camera projects into.
func (c *ArcRotateCamera) Viewport() Rect {
	return c.viewport
}

// Position returns the camera's world-space eye position.
func (c *ArcRotateCamera) Position() Vec3 {
	sinB := math.Sin(c.Beta)
	if sinB == 0 {
		sinB = 0.0001
	}
	sinA, cosA := math.Sincos(c.Alpha)
	offset := mgl64.Vec3{cosA * sinB, math.Cos(c.Beta), sinA * sinB}.Mul(c.Radius)
	return vec3(c.Target.mgl().Add(offset))
}

// ViewMatrix returns the world-to-view transform.
func (c *ArcRotateCamera) ViewMatrix() mgl64.Mat4 {
	return mgl64.LookAtV(c.Position().mgl(), c.Target.mgl(), mgl64.Vec3{0, 1, 0})
}

// ProjectionMatrix returns the perspective projection for the current
// viewport aspect ratio.
func (c *ArcRotateCamera) ProjectionMatrix() mgl64.Mat4 {
	aspect := 1.0
	if c.viewport.Height > 0 {
		aspect = c.viewport.Width / c.viewport.Height
	}
	return mgl64.Perspective(c.FOV, aspect, c.MinZ, c.MaxZ)
}

// Project maps a world point to screen coordinates. depth is the distance
// along the view direction. ok is false when the point lies outside the
// near and far planes.
func (c *ArcRotateCamera) Project(p Vec3) (sx, sy, depth float64, ok bool) {
	pr := c.newProjector()
	return pr.project(p)
}

// projector caches the matrices used to project many points in one frame.
type projector struct {
	view, viewProj mgl64.Mat4
	viewport       Rect
	focal          float64 // viewport pixels per world unit at depth 1
	minZ, maxZ     float64
}

func (c *ArcRotateCamera) newProjector() projector {
	view := c.ViewMatrix()
	return projector{
		view:     view,
		viewProj: c.ProjectionMatrix().Mul4(view),
		viewport: c.viewport,
		focal:    c.viewport.Height / (2 * math.Tan(c.FOV/2)),
		minZ:     c.MinZ,
		maxZ:     c.MaxZ,
	}
}

func (p *projector) project(pt Vec3) (sx, sy, depth float64, ok bool) {
	v := pt.mgl().Vec4(1)
	depth = -p.view.Mul4x1(v).Z()
	if depth < p.minZ || depth > p.maxZ {
		return 0, 0, depth, false
	}
	clip := p.viewProj.Mul4x1(v)
	nx := clip.X() / clip.W()
	ny := clip.Y() / clip.W()
	sx = p.viewport.X + (nx+1)/2*p.viewport.Width
	sy = p.viewport.Y + (1-ny)/2*p.viewport.Height
	return sx, sy, depth, true
}

// pixelsPerUnit returns how many screen pixels one world unit covers at the
// given view depth.
func (p *projector) pixelsPerUnit(depth float64) float64 {
	return p.focal / depth
}

// AnimateTo tweens Alpha, Beta and Radius to the given values over duration
// seconds. Pointer input cancels the animation.
func (c *ArcRotateCamera) AnimateTo(alpha, beta, radius float64, duration float32, easeFn ease.TweenFunc) {
	c.anim = &orbitAnim{
		alpha:  gween.New(float32(c.Alpha), float32(alpha), duration, easeFn),
		beta:   gween.New(float32(c.Beta), float32(beta), duration, easeFn),
		radius: gween.New(float32(c.Radius), float32(radius), duration, easeFn),
	}
}

// IsAnimating reports whether an AnimateTo tween is running.
func (c *ArcRotateCamera) IsAnimating() bool {
	return c.anim != nil
}

// update applies inertia, tweens and limits. Called from Scene.Update.
func (c *ArcRotateCamera) update(dt float32) {
	if c.inertialAlpha != 0 || c.inertialBeta != 0 || c.inertialRadius != 0 {
		c.Alpha += c.inertialAlpha
		c.Beta += c.inertialBeta
		c.Radius -= c.inertialRadius

		c.inertialAlpha = decay(c.inertialAlpha, c.Inertia)
		c.inertialBeta = decay(c.inertialBeta, c.Inertia)
		c.inertialRadius = decay(c.inertialRadius, c.Inertia)
	}

	if c.anim != nil {
		fields := [3]*float64{&c.Alpha, &c.Beta, &c.Radius}
		tweens := [3]*gween.Tween{c.anim.alpha, c.anim.beta, c.anim.radius}
		for i, tw := range tweens {
			if c.anim.done[i] {
				continue
			}
			val, done := tw.Update(dt)
			*fields[i] = float64(val)
			c.anim.done[i] = done
		}
		if c.anim.done[0] && c.anim.done[1] && c.anim.done[2] {
			c.anim = nil
		}
	}

	c.checkLimits()
}

func decay(v, inertia float64) float64 {
	v *= inertia
	if math.Abs(v) < inertiaEpsilon {
		return 0
	}
	return v
}

// checkLimits clamps Beta and Radius to their limits.
func (c *ArcRotateCamera) checkLimits() {
	if c.Beta < c.LowerBetaLimit {
		c.Beta = c.LowerBetaLimit
	}
	if c.Beta > c.UpperBetaLimit {
		c.Beta = c.UpperBetaLimit
	}
	if c.LowerRadiusLimit != 0 && c.Radius < c.LowerRadiusLimit {
		c.Radius = c.LowerRadiusLimit
	}
	if c.UpperRadiusLimit != 0 && c.Radius > c.UpperRadiusLimit {
		c.Radius = c.UpperRadiusLimit
	}
}

// pointerDrag feeds a pointer movement in pixels into the orbit inertia.
func (c *ArcRotateCamera) pointerDrag(dx, dy float64) {
	c.anim = nil
	c.inertialAlpha -= dx / c.AngularSensibility
	c.inertialBeta -= dy / c.AngularSensibility
	if c.Inertia == 0 {
		c.applyImmediate()
	}
}

// wheel feeds wheel notches into the zoom inertia. Positive values zoom in.
func (c *ArcRotateCamera) wheel(notches float64) {
	c.anim = nil
	c.inertialRadius += notches * 3 / c.WheelPrecision
	if c.Inertia == 0 {
		c.applyImmediate()
	}
}

func (c *ArcRotateCamera) applyImmediate() {
	c.Alpha += c.inertialAlpha
	c.Beta += c.inertialBeta
	c.Radius -= c.inertialRadius
	c.inertialAlpha, c.inertialBeta, c.inertialRadius = 0, 0, 0
	c.checkLimits()
}
