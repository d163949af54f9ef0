package main

import (
	"log/slog"
	"math"
	"time"

	"github.com/udisondev/herdguard/internal/encounter"
	"github.com/udisondev/herdguard/internal/game/combat"
	"github.com/udisondev/herdguard/internal/geom"
	"github.com/udisondev/herdguard/internal/world"
)

// pilot is the scripted player: it walks to the nearest live enemy and
// swings at it, and returns to its guard post when no enemy is around.
// Out of combat it regenerates health.
type pilot struct {
	session *encounter.Session
	player  *world.Player
	guard   geom.Vec3

	speed    float64
	reach    float64
	cooldown time.Duration
	swing    combat.HitboxSpec
	regen    float64 // health per second, out of combat only

	lastSwing time.Duration
	swung     bool
}

func newPilot(s *encounter.Session, p *world.Player) *pilot {
	return &pilot{
		session:  s,
		player:   p,
		guard:    p.Position(),
		speed:    4,
		reach:    1.5,
		cooldown: 600 * time.Millisecond,
		swing: combat.HitboxSpec{
			Range:        1.1,
			Radius:       0.8,
			OffsetHeight: 0.5,
			Damage:       35,
			Duration:     100 * time.Millisecond,
		},
		regen: 5,
	}
}

// step runs before the session update, like host input would.
func (p *pilot) step(dt time.Duration) {
	if !p.player.Alive() {
		return
	}
	p.recover(dt)

	pos := p.player.Position()
	target, ok := p.nearestEnemy(pos)
	if !ok {
		p.walk(pos, p.guard, dt)
		return
	}

	if pos.GroundDistance(target) > p.reach {
		p.walk(pos, target, dt)
		return
	}

	p.player.Body().LookAt(target)
	now := p.session.Now()
	if p.swung && now-p.lastSwing < p.cooldown {
		return
	}
	if _, err := p.session.Resolver().SpawnHitbox(p.player.ID(), p.swing); err != nil {
		slog.Warn("player swing failed", "error", err)
		return
	}
	p.swung = true
	p.lastSwing = now
}

func (p *pilot) recover(dt time.Duration) {
	view, ok := p.session.Resolver().Entity(p.player.ID())
	if !ok || view.InCombat || view.Health >= view.MaxHealth {
		return
	}
	if err := p.session.Resolver().Heal(p.player.ID(), p.regen*dt.Seconds()); err != nil {
		slog.Warn("player regen failed", "error", err)
	}
}

func (p *pilot) nearestEnemy(pos geom.Vec3) (geom.Vec3, bool) {
	best, found := math.Inf(1), false
	var at geom.Vec3
	for _, e := range p.session.Director().ActiveEnemies() {
		if d := pos.GroundDistance(e.Position); d < best {
			best, at, found = d, e.Position, true
		}
	}
	return at, found
}

func (p *pilot) walk(from, to geom.Vec3, dt time.Duration) {
	dist := from.GroundDistance(to)
	if dist < 1e-6 {
		return
	}
	stepLen := math.Min(p.speed*dt.Seconds(), dist)
	dir := to.Sub(from)
	dir.Y = 0
	next := from.Add(dir.Scale(stepLen / dist))

	p.player.Body().LookAt(to)
	p.player.Body().SetPosition(next)
}
