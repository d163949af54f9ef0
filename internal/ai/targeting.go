package ai

import (
	"log/slog"

	"github.com/udisondev/herdguard/internal/geom"
)

// TargetKind tells what an agent is currently after.
type TargetKind int32

const (
	TargetNone TargetKind = iota
	TargetPlayer
	TargetProtectable
	// TargetRally is a static point (pen center) used as a last resort.
	TargetRally
)

// String returns human-readable target kind
func (k TargetKind) String() string {
	switch k {
	case TargetNone:
		return "NONE"
	case TargetPlayer:
		return "PLAYER"
	case TargetProtectable:
		return "PROTECTABLE"
	case TargetRally:
		return "RALLY"
	default:
		return "UNKNOWN"
	}
}

// TargetRef is a weak reference to a target: an id plus the position last
// seen. The agent resolves it against the providers every tick.
type TargetRef struct {
	Kind     TargetKind
	ID       string
	Position geom.Vec3
}

// Valid reports whether the reference points at anything.
func (t TargetRef) Valid() bool {
	return t.Kind != TargetNone
}

// livePlayer returns the player handle if present and alive.
func (a *Agent) livePlayer() (Actor, bool) {
	if a.players == nil {
		return nil, false
	}
	p, ok := a.players.Player()
	if !ok || p == nil || !p.Alive() {
		return nil, false
	}
	return p, true
}

func (a *Agent) findProtectable(id string) (Protectable, bool) {
	if a.herd == nil {
		return nil, false
	}
	for _, p := range a.herd.Protectables() {
		if p.ID() == id {
			return p, true
		}
	}
	return nil, false
}

// playerInAggro reports whether a live player stands within aggro radius of pos.
func (a *Agent) playerInAggro(pos geom.Vec3) bool {
	p, ok := a.livePlayer()
	return ok && pos.GroundDistance(p.Position()) <= a.cfg.AggroRadius
}

// revalidate resolves the current target again. A stale reference (dead,
// removed, out of detection range, preempted by the player) is reported as
// invalid. Rally points are provisional and never survive a tick.
func (a *Agent) revalidate(pos geom.Vec3) (geom.Vec3, bool) {
	switch a.target.Kind {
	case TargetPlayer:
		p, ok := a.livePlayer()
		if !ok || p.ID() != a.target.ID {
			return geom.Vec3{}, false
		}
		pp := p.Position()
		if pos.GroundDistance(pp) > a.cfg.DetectionRange {
			return geom.Vec3{}, false
		}
		return pp, true

	case TargetProtectable:
		if a.playerInAggro(pos) {
			return geom.Vec3{}, false
		}
		pr, ok := a.findProtectable(a.target.ID)
		if !ok || !pr.Alive() {
			return geom.Vec3{}, false
		}
		pp := pr.Position()
		if pos.GroundDistance(pp) > a.cfg.DetectionRange {
			return geom.Vec3{}, false
		}
		return pp, true

	default:
		return geom.Vec3{}, false
	}
}

// acquire picks a new target:
//  1. the player inside aggro radius
//  2. the nearest live protectable inside detection range
//  3. the player inside detection range
//  4. the rally point
func (a *Agent) acquire(pos geom.Vec3) TargetRef {
	player, hasPlayer := a.livePlayer()
	playerDist := 0.0
	if hasPlayer {
		playerDist = pos.GroundDistance(player.Position())
		if playerDist <= a.cfg.AggroRadius {
			return TargetRef{Kind: TargetPlayer, ID: player.ID(), Position: player.Position()}
		}
	}

	if a.herd != nil {
		var (
			best     Protectable
			bestDist float64
		)
		for _, p := range a.herd.Protectables() {
			if !p.Alive() {
				continue
			}
			d := pos.GroundDistance(p.Position())
			if d > a.cfg.DetectionRange {
				continue
			}
			if best == nil || d < bestDist {
				best, bestDist = p, d
			}
		}
		if best != nil {
			return TargetRef{Kind: TargetProtectable, ID: best.ID(), Position: best.Position()}
		}
	}

	if hasPlayer && playerDist <= a.cfg.DetectionRange {
		return TargetRef{Kind: TargetPlayer, ID: player.ID(), Position: player.Position()}
	}

	if a.world != nil {
		if rally, ok := a.world.RallyPoint(); ok {
			return TargetRef{Kind: TargetRally, Position: rally}
		}
	}
	return TargetRef{}
}

// updateTarget keeps the current target if still valid, otherwise acquires a
// new one. Returns the target position for this tick.
func (a *Agent) updateTarget(pos geom.Vec3) (geom.Vec3, bool) {
	if tp, ok := a.revalidate(pos); ok {
		a.target.Position = tp
		return tp, true
	}

	prev := a.target
	a.target = a.acquire(pos)
	if IsDebugEnabled() && (prev.Kind != a.target.Kind || prev.ID != a.target.ID) {
		slog.Debug("agent target changed",
			"agent", a.id,
			"from", prev.Kind,
			"fromID", prev.ID,
			"to", a.target.Kind,
			"toID", a.target.ID)
	}
	return a.target.Position, a.target.Valid()
}
