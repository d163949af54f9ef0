package main

import (
	"log/slog"

	"github.com/udisondev/herdguard/internal/encounter"
)

// outcome tracks how the session is going. Hooks run on the frame loop.
type outcome struct {
	kills       int
	animalsLost int
	playerDead  bool
}

func (o *outcome) enemyKilled(enemyID, killerID string) {
	o.kills++
	slog.Debug("enemy killed", "enemy", enemyID, "killer", killerID)
}

func (o *outcome) playerKilled(killerID string) {
	o.playerDead = true
	slog.Warn("player down", "killer", killerID)
}

func (o *outcome) animalKilled(animalID string) {
	o.animalsLost++
	slog.Warn("animal lost", "animal", animalID)
}

// over reports whether the game is decided: the player fell or the herd
// is gone.
func (o *outcome) over(s *encounter.Session) bool {
	return o.playerDead || s.World().Herd().AliveCount() == 0
}

func (o *outcome) report(s *encounter.Session) {
	slog.Info("session finished",
		"time", s.Now(),
		"frames", s.Frames(),
		"wave", s.Director().Wave().Number,
		"kills", o.kills,
		"animalsLost", o.animalsLost,
		"herdLeft", s.World().Herd().AliveCount(),
		"playerAlive", !o.playerDead)
}
