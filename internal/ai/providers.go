package ai

import (
	"github.com/udisondev/herdguard/internal/game/combat"
	"github.com/udisondev/herdguard/internal/geom"
)

// Actor is a lookup-only handle to a potential target. Agents keep only the
// id and resolve the handle again every tick.
type Actor interface {
	ID() string
	Position() geom.Vec3
	Alive() bool
}

// PlayerProvider returns the player handle, if a player is present.
type PlayerProvider interface {
	Player() (Actor, bool)
}

// Protectable is an entity that dies after a fixed number of hits
// (livestock) instead of using a Vitality.
type Protectable interface {
	Actor
	// Hit decrements the remaining hit counter by n and reports whether the
	// entity died from it.
	Hit(n int) bool
}

// ProtectableProvider lists the protectable entities of the session.
type ProtectableProvider interface {
	Protectables() []Protectable
}

// Enclosure is a damageable boundary (pen walls). Each side has its own
// health pool.
type Enclosure interface {
	// Sides returns the ground-plane geometry of every side, indexed by side.
	Sides() []geom.Obstacle
	SideDestroyed(side int) bool
	// ApplyDamage damages one side and reports whether it is now destroyed.
	ApplyDamage(side int, amount float64) bool
}

// ObstacleProvider exposes the static world geometry used for steering.
type ObstacleProvider interface {
	// Obstacles returns rocks, buildings and other static blockers.
	Obstacles() []geom.Obstacle
	// Enclosure returns the damageable boundary, or nil.
	Enclosure() Enclosure
	// RallyPoint returns the last-resort target (e.g. the pen center).
	RallyPoint() (geom.Vec3, bool)
}

// HitboxSpawner is the part of the combat resolver agents attack through.
type HitboxSpawner interface {
	SpawnHitbox(ownerID string, spec combat.HitboxSpec) (*combat.Hitbox, error)
}
