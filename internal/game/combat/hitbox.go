package combat

import (
	"time"

	"github.com/udisondev/herdguard/internal/geom"
)

// HitboxSpec describes an attack's reach in the owner's local space.
type HitboxSpec struct {
	Damage float64
	// Range is the forward distance from the owner to the sphere center.
	Range  float64
	Radius float64
	// Duration is how long the hitbox stays active if it hits nothing.
	// Every hitbox is resolved at least once, so zero means a single tick.
	Duration     time.Duration
	OffsetHeight float64
	FriendlyFire bool
}

// Hitbox is a transient attack volume. Once consumed it never applies damage
// again; the resolver drops it at the end of the tick in which it was
// consumed or expired.
type Hitbox struct {
	id      uint64
	ownerID string
	spec    HitboxSpec

	sphere   geom.Sphere
	elapsed  time.Duration
	resolved bool
	consumed bool
	removed  bool
}

// ID returns the resolver-unique hitbox id.
func (h *Hitbox) ID() uint64 { return h.id }

// OwnerID returns the id of the attacking entity.
func (h *Hitbox) OwnerID() string { return h.ownerID }

// Damage returns damage per hit.
func (h *Hitbox) Damage() float64 { return h.spec.Damage }

// Sphere returns the world-space sphere computed on the last resolve.
func (h *Hitbox) Sphere() geom.Sphere { return h.sphere }

// Consumed reports whether the hitbox already landed.
func (h *Hitbox) Consumed() bool { return h.consumed }

// Active reports whether the hitbox can still land.
func (h *Hitbox) Active() bool {
	return !h.consumed && !h.removed && (!h.resolved || h.elapsed < h.spec.Duration)
}

// Elapsed returns how long the hitbox has been resolved for.
func (h *Hitbox) Elapsed() time.Duration { return h.elapsed }

// place recomputes the world sphere from the owner's current transform:
// Range ahead along the facing, OffsetHeight above the owner's origin.
func (h *Hitbox) place(owner *entity) {
	pos := owner.transform.Position()
	fwd := geom.Forward(owner.transform.Yaw())
	center := pos.Add(fwd.Scale(h.spec.Range)).Add(geom.V3(0, h.spec.OffsetHeight, 0))
	h.sphere = geom.Sphere{Center: center, Radius: h.spec.Radius}
}

// expired reports whether the hitbox should leave the active set.
func (h *Hitbox) expired() bool {
	return h.consumed || h.removed || (h.resolved && h.elapsed >= h.spec.Duration)
}
