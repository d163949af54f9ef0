package world

import (
	"time"

	"github.com/udisondev/herdguard/internal/ai"
	"github.com/udisondev/herdguard/internal/geom"
	"github.com/udisondev/herdguard/internal/model"
)

// Player is the player character handle: a host-owned body and the
// vitality the combat resolver mutates.
type Player struct {
	id       string
	body     *model.Body
	vitality *model.Vitality
}

// NewPlayer creates a player at pos.
func NewPlayer(id string, pos geom.Vec3, health float64, invulnerability time.Duration) *Player {
	return &Player{
		id:       id,
		body:     model.NewBody(pos),
		vitality: model.NewVitality(health, invulnerability),
	}
}

func (p *Player) ID() string { return p.id }

func (p *Player) Position() geom.Vec3 { return p.body.Position() }

func (p *Player) Alive() bool { return !p.vitality.IsDead() }

// Body returns the player transform.
func (p *Player) Body() *model.Body { return p.body }

// Vitality returns the player health record.
func (p *Player) Vitality() *model.Vitality { return p.vitality }

// playerSlot implements ai.PlayerProvider for an optional player.
type playerSlot struct {
	player *Player
}

func (s *playerSlot) Player() (ai.Actor, bool) {
	if s.player == nil {
		return nil, false
	}
	return s.player, true
}
