package combat

import (
	"github.com/udisondev/herdguard/internal/geom"
	"github.com/udisondev/herdguard/internal/model"
)

// DeathFunc is invoked exactly once when an entity's health reaches zero.
// killerID is the owner of the hitbox (or the attacker passed to ApplyDamage).
type DeathFunc func(victimID, killerID string)

// DamageFunc is invoked after every accepted hit on the entity.
type DamageFunc func(hit Hit)

// EntityOption configures optional registration fields.
type EntityOption func(*entity)

// WithDamageFunc sets the damage callback.
func WithDamageFunc(fn DamageFunc) EntityOption {
	return func(e *entity) {
		e.onDamage = fn
	}
}

// entity is the registration record of one combat participant.
type entity struct {
	id         string
	transform  model.Transform
	vitality   *model.Vitality
	team       model.Team
	hurtRadius float64
	onDeath    DeathFunc
	onDamage   DamageFunc

	// dead is the first-caller-wins death guard.
	dead bool
	// removed is set by Unregister so in-flight sweeps skip the record.
	removed bool
}

// hurtSphere returns the exact bounding sphere when the transform knows it,
// otherwise a hurt-radius sphere at the entity position.
func (e *entity) hurtSphere() geom.Sphere {
	if bp, ok := e.transform.(model.BoundsProvider); ok {
		if s, ok := bp.BoundingSphere(); ok {
			return s
		}
	}
	return geom.Sphere{Center: e.transform.Position(), Radius: e.hurtRadius}
}

// EntityView is a read-only snapshot of a registered entity.
type EntityView struct {
	ID        string
	Team      model.Team
	Position  geom.Vec3
	Health    float64
	MaxHealth float64
	Dead      bool
	// InCombat is set while the entity is inside its combat stance window.
	InCombat bool
}

func (e *entity) view() EntityView {
	return EntityView{
		ID:        e.id,
		Team:      e.team,
		Position:  e.transform.Position(),
		Health:    e.vitality.Current(),
		MaxHealth: e.vitality.Maximum(),
		Dead:      e.dead,
	}
}
