package model

import "github.com/udisondev/herdguard/internal/geom"

// Transform is the host-owned position/orientation handle of an entity.
// The simulation reads it every tick and asks it to move or turn; it never
// owns the entity's lifetime.
type Transform interface {
	Position() geom.Vec3
	// Yaw returns the facing angle in radians (0 faces +Z).
	Yaw() float64
	SetPosition(p geom.Vec3)
	// LookAt turns the entity on the ground plane to face p.
	LookAt(p geom.Vec3)
}

// BoundsProvider is implemented by transforms that know their exact
// bounding sphere (e.g. from a loaded mesh). Entities without one fall back
// to a hurt-radius distance check.
type BoundsProvider interface {
	BoundingSphere() (geom.Sphere, bool)
}

// Body is the reference Transform used by the headless host and tests.
type Body struct {
	pos geom.Vec3
	yaw float64

	// boundsRadius > 0 enables BoundingSphere; centered boundsHeight above pos.
	boundsRadius float64
	boundsHeight float64
}

// NewBody создаёт Body в указанной позиции, повёрнутое к +Z.
func NewBody(pos geom.Vec3) *Body {
	return &Body{pos: pos}
}

// WithBounds sets an exact bounding sphere for hit detection.
func (b *Body) WithBounds(radius, centerHeight float64) *Body {
	b.boundsRadius = radius
	b.boundsHeight = centerHeight
	return b
}

func (b *Body) Position() geom.Vec3 { return b.pos }

func (b *Body) Yaw() float64 { return b.yaw }

func (b *Body) SetPosition(p geom.Vec3) { b.pos = p }

// SetYaw sets the facing angle directly.
func (b *Body) SetYaw(yaw float64) { b.yaw = yaw }

// LookAt faces p; a p on top of the body keeps the current yaw.
func (b *Body) LookAt(p geom.Vec3) {
	if b.pos.GroundDistance(p) == 0 {
		return
	}
	b.yaw = b.pos.Heading(p)
}

// BoundingSphere returns the exact sphere if one was configured.
func (b *Body) BoundingSphere() (geom.Sphere, bool) {
	if b.boundsRadius <= 0 {
		return geom.Sphere{}, false
	}
	center := b.pos.Add(geom.V3(0, b.boundsHeight, 0))
	return geom.Sphere{Center: center, Radius: b.boundsRadius}, true
}
