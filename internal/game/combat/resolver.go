package combat

import (
	"fmt"
	"log/slog"
	"slices"
	"time"

	"github.com/udisondev/herdguard/internal/clock"
	"github.com/udisondev/herdguard/internal/model"
)

// Hit describes one accepted damage application.
type Hit struct {
	AttackerID string
	TargetID   string
	Damage     float64
	// Remaining is the target's health after the hit.
	Remaining float64
	Killed    bool
	// HitboxID is zero for direct ApplyDamage calls.
	HitboxID uint64
}

// DamageResult is returned by ApplyDamage.
type DamageResult struct {
	Applied bool
	Killed  bool
}

// Resolver is the authoritative damage and hit-detection service of one
// play session. It knows nothing about AI or spawning.
//
// Workflow per Update:
//  1. Recompute every active hitbox sphere from its owner's transform
//  2. Test it against every other living, hostile entity in registration order
//  3. Apply damage to all intersecting targets, then consume the hitbox
//  4. Drop consumed/expired hitboxes
//
// Not safe for concurrent use: owned by the single-threaded frame loop.
type Resolver struct {
	clock clock.Clock

	entities map[string]*entity
	order    []*entity // registration order
	hitboxes []*Hitbox

	nextHitboxID uint64
	stance       *StanceTracker

	// hitObserver: callback для наблюдения за попаданиями (nil в production).
	hitObserver func(Hit)
}

// NewResolver creates an empty resolver reading time from clk.
func NewResolver(clk clock.Clock) *Resolver {
	return &Resolver{
		clock:    clk,
		entities: make(map[string]*entity),
		stance:   NewStanceTracker(clk, DefaultStanceDuration),
	}
}

// SetHitObserver sets callback for observing accepted hits (tests, diagnostics).
func (r *Resolver) SetHitObserver(fn func(Hit)) {
	r.hitObserver = fn
}

// SetStanceDuration replaces the combat stance window.
func (r *Resolver) SetStanceDuration(d time.Duration) {
	r.stance = NewStanceTracker(r.clock, d)
}

// Stance returns the combat stance tracker.
func (r *Resolver) Stance() *StanceTracker {
	return r.stance
}

// Register adds a combat participant.
// Fails if id is empty or taken, or if vitality/transform are nil.
func (r *Resolver) Register(
	id string,
	transform model.Transform,
	vitality *model.Vitality,
	team model.Team,
	hurtRadius float64,
	onDeath DeathFunc,
	opts ...EntityOption,
) error {
	if err := r.validateRegistration(id, transform, vitality, hurtRadius); err != nil {
		return err
	}

	e := &entity{
		id:         id,
		transform:  transform,
		vitality:   vitality,
		team:       team,
		hurtRadius: hurtRadius,
		onDeath:    onDeath,
	}
	for _, opt := range opts {
		opt(e)
	}

	r.entities[id] = e
	r.order = append(r.order, e)

	slog.Debug("combat entity registered",
		"entity", id,
		"team", team,
		"health", vitality.Current())
	return nil
}

// Unregister removes the entity and every hitbox it owns.
// Idempotent: returns false if id was not registered.
func (r *Resolver) Unregister(id string) bool {
	e, ok := r.entities[id]
	if !ok {
		return false
	}

	e.removed = true
	delete(r.entities, id)
	r.order = slices.DeleteFunc(r.order, func(o *entity) bool { return o == e })

	for _, hb := range r.hitboxes {
		if hb.ownerID == id {
			hb.removed = true
		}
	}
	r.hitboxes = slices.DeleteFunc(r.hitboxes, func(hb *Hitbox) bool { return hb.removed })
	r.stance.Remove(id)

	slog.Debug("combat entity unregistered", "entity", id)
	return true
}

// SpawnHitbox activates an attack volume in the owner's forward local space.
// Fails with ErrUnknownEntity if the owner is not registered.
// The returned hitbox is a read-only handle (debug visualization, tests).
func (r *Resolver) SpawnHitbox(ownerID string, spec HitboxSpec) (*Hitbox, error) {
	owner, ok := r.entities[ownerID]
	if !ok {
		return nil, fmt.Errorf("spawning hitbox for %q: %w", ownerID, ErrUnknownEntity)
	}

	r.nextHitboxID++
	hb := &Hitbox{
		id:      r.nextHitboxID,
		ownerID: ownerID,
		spec:    spec,
	}
	hb.place(owner)
	r.hitboxes = append(r.hitboxes, hb)

	slog.Debug("hitbox spawned",
		"owner", ownerID,
		"hitbox", hb.id,
		"damage", spec.Damage,
		"radius", spec.Radius,
		"duration", spec.Duration)
	return hb, nil
}

// Update resolves every active hitbox once, then retires consumed/expired ones.
// Never panics: callback faults are logged per invocation.
func (r *Resolver) Update(dt time.Duration) {
	if len(r.hitboxes) > 0 {
		// Snapshot: hitboxes spawned by callbacks during this sweep wait for the next tick.
		active := slices.Clone(r.hitboxes)
		for _, hb := range active {
			if hb.expired() {
				continue
			}
			r.resolveHitbox(hb)
			hb.resolved = true
			hb.elapsed += dt
		}
		r.hitboxes = slices.DeleteFunc(r.hitboxes, func(hb *Hitbox) bool { return hb.expired() })
	}

	r.stance.cleanup()
}

// resolveHitbox runs one pass of hb over the full entity set. Every hostile
// entity caught in the pass is damaged in registration order; the hitbox is
// consumed after the pass if anything intersected.
func (r *Resolver) resolveHitbox(hb *Hitbox) {
	owner, ok := r.entities[hb.ownerID]
	if !ok {
		hb.removed = true
		return
	}
	// Мёртвый владелец не наносит урон.
	if owner.dead {
		hb.removed = true
		return
	}

	hb.place(owner)

	intersected := false
	for _, target := range slices.Clone(r.order) {
		if target == owner || target.removed || target.dead {
			continue
		}
		if !hb.spec.FriendlyFire && target.team == owner.team {
			continue
		}
		if !hb.sphere.Intersects(target.hurtSphere()) {
			continue
		}

		intersected = true
		r.applyDamage(target, owner.id, hb.spec.Damage, hb.id)
	}

	if intersected {
		hb.consumed = true
	}
}

// ApplyDamage applies damage directly (no hitbox), subject to the target's
// invulnerability window.
func (r *Resolver) ApplyDamage(targetID, attackerID string, amount float64) (DamageResult, error) {
	target, ok := r.entities[targetID]
	if !ok {
		return DamageResult{}, fmt.Errorf("applying damage to %q: %w", targetID, ErrUnknownEntity)
	}
	return r.applyDamage(target, attackerID, amount, 0), nil
}

func (r *Resolver) applyDamage(target *entity, attackerID string, amount float64, hitboxID uint64) DamageResult {
	if target.dead {
		return DamageResult{}
	}
	if !target.vitality.TakeDamage(amount, r.clock.Now()) {
		return DamageResult{}
	}

	r.stance.Mark(target.id)
	if _, ok := r.entities[attackerID]; ok {
		r.stance.Mark(attackerID)
	}

	hit := Hit{
		AttackerID: attackerID,
		TargetID:   target.id,
		Damage:     amount,
		Remaining:  target.vitality.Current(),
		HitboxID:   hitboxID,
	}
	killed := target.vitality.IsDead() && r.markDead(target)
	hit.Killed = killed

	slog.Debug("hit applied",
		"attacker", attackerID,
		"target", target.id,
		"damage", amount,
		"remaining", hit.Remaining,
		"hitbox", hitboxID)

	if r.hitObserver != nil {
		r.safeCall("observer", target.id, func() { r.hitObserver(hit) })
	}
	if target.onDamage != nil {
		r.safeCall("damage", target.id, func() { target.onDamage(hit) })
	}
	if killed {
		r.fireDeath(target, attackerID)
	}

	return DamageResult{Applied: true, Killed: killed}
}

// Kill forces the death path (e.g. host-side out-of-bounds removal).
// Returns true only for the call that actually performed the death.
func (r *Resolver) Kill(id, killerID string) (bool, error) {
	target, ok := r.entities[id]
	if !ok {
		return false, fmt.Errorf("killing %q: %w", id, ErrUnknownEntity)
	}
	if !r.markDead(target) {
		return false, nil
	}
	target.vitality.Deplete()
	r.fireDeath(target, killerID)
	return true, nil
}

// markDead returns true only for the first caller (death guard).
func (r *Resolver) markDead(e *entity) bool {
	if e.dead {
		return false
	}
	e.dead = true
	return true
}

func (r *Resolver) fireDeath(target *entity, killerID string) {
	slog.Info("combat entity died",
		"victim", target.id,
		"killer", killerID,
		"team", target.team)

	if target.onDeath != nil {
		r.safeCall("death", target.id, func() { target.onDeath(target.id, killerID) })
	}
}

// safeCall isolates host-supplied callbacks so one faulty callback cannot
// abort the sweep over other entities.
func (r *Resolver) safeCall(kind, entityID string, fn func()) {
	defer func() {
		if rec := recover(); rec != nil {
			slog.Error("combat callback panicked",
				"callback", kind,
				"entity", entityID,
				"panic", rec)
		}
	}()
	fn()
}

// Heal restores health clamped to maximum. Dead entities are not revived.
func (r *Resolver) Heal(id string, amount float64) error {
	e, ok := r.entities[id]
	if !ok {
		return fmt.Errorf("healing %q: %w", id, ErrUnknownEntity)
	}
	if e.dead {
		return nil
	}
	e.vitality.Heal(amount)
	return nil
}

// IsAlive reports whether id is registered and not dead.
func (r *Resolver) IsAlive(id string) bool {
	e, ok := r.entities[id]
	return ok && !e.dead
}

// Entity returns a read-only snapshot of a registered entity.
func (r *Resolver) Entity(id string) (EntityView, bool) {
	e, ok := r.entities[id]
	if !ok {
		return EntityView{}, false
	}
	view := e.view()
	view.InCombat = r.stance.InCombat(id)
	return view, true
}

// Count returns number of registered entities.
func (r *Resolver) Count() int {
	return len(r.order)
}

// ActiveHitboxes returns the hitboxes that will be resolved next tick.
func (r *Resolver) ActiveHitboxes() []*Hitbox {
	out := make([]*Hitbox, 0, len(r.hitboxes))
	for _, hb := range r.hitboxes {
		if !hb.expired() {
			out = append(out, hb)
		}
	}
	return out
}
