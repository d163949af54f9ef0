package ai

import (
	"log/slog"
	"time"

	"github.com/udisondev/herdguard/internal/geom"
)

// engage handles a target inside attack range: face it and swing once the
// cooldown allows.
func (a *Agent) engage(now time.Duration, tp geom.Vec3) {
	a.body.LookAt(tp)

	if a.target.Kind == TargetRally {
		// Nothing to hit at a rally point; wait for a real target.
		a.setState(StateIdle)
		a.cues.play(CueCombatIdle)
		return
	}

	a.setState(StateAttacking)
	if a.attackedOnce && now-a.lastAttackAt < a.cfg.AttackCooldown {
		a.cues.play(CueCombatIdle)
		return
	}
	a.startAttack(now)
}

// startAttack plays the swing and schedules the impact frame.
func (a *Agent) startAttack(now time.Duration) {
	a.attackedOnce = true
	a.lastAttackAt = now
	a.swinging = true
	a.attackEndsAt = now + a.cfg.AttackDuration
	a.swings++

	cue := CueAttackLeft
	if a.swings%2 == 0 {
		cue = CueAttackRight
	}
	a.cues.play(cue)

	target := a.target
	a.impact = a.tasks.After(a.cfg.impactDelay(), "impact", func() {
		a.applyImpact(target)
	})

	if IsDebugEnabled() {
		slog.Debug("agent attack started",
			"agent", a.id,
			"target", target.ID,
			"kind", target.Kind,
			"cue", cue,
			"impactIn", a.cfg.impactDelay())
	}
}

// applyImpact runs on the impact frame: it spawns the hitbox and, for
// protectable targets still within reach, takes one hit off their counter.
func (a *Agent) applyImpact(target TargetRef) {
	a.impact = 0
	if a.state == StateDead {
		return
	}

	if a.combat != nil {
		if _, err := a.combat.SpawnHitbox(a.id, a.cfg.hitboxSpec()); err != nil {
			slog.Warn("agent impact skipped",
				"agent", a.id,
				"error", err)
		}
	}

	if target.Kind != TargetProtectable {
		return
	}
	pr, ok := a.findProtectable(target.ID)
	if !ok || !pr.Alive() {
		return
	}
	reach := a.cfg.AttackRange + a.cfg.Hitbox.Radius
	if a.body.Position().GroundDistance(pr.Position()) > reach {
		return
	}
	if pr.Hit(1) {
		slog.Info("protectable killed",
			"agent", a.id,
			"target", target.ID)
	}
}
