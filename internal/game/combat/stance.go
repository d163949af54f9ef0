package combat

import (
	"log/slog"
	"time"

	"github.com/udisondev/herdguard/internal/clock"
)

// DefaultStanceDuration is how long an entity stays "in combat" after its
// last dealt or received hit.
const DefaultStanceDuration = 15 * time.Second

// StanceTracker tracks which entities are in combat.
// Entity enters combat when it hits or gets hit; exits after the stance
// duration without further hits. Hosts use it to gate out-of-combat
// regeneration.
type StanceTracker struct {
	clock    clock.Clock
	duration time.Duration
	stances  map[string]time.Duration // id → last hit timestamp
}

// NewStanceTracker creates a tracker. A non-positive duration uses
// DefaultStanceDuration.
func NewStanceTracker(clk clock.Clock, duration time.Duration) *StanceTracker {
	if duration <= 0 {
		duration = DefaultStanceDuration
	}
	return &StanceTracker{
		clock:    clk,
		duration: duration,
		stances:  make(map[string]time.Duration),
	}
}

// Mark puts the entity in combat (extends the window if already in).
func (s *StanceTracker) Mark(id string) {
	s.stances[id] = s.clock.Now()
}

// Remove drops the entity from combat immediately.
func (s *StanceTracker) Remove(id string) {
	delete(s.stances, id)
}

// InCombat reports whether id is inside its combat window.
func (s *StanceTracker) InCombat(id string) bool {
	last, ok := s.stances[id]
	if !ok {
		return false
	}
	return s.clock.Now()-last <= s.duration
}

// cleanup removes expired entries.
func (s *StanceTracker) cleanup() {
	now := s.clock.Now()
	for id, last := range s.stances {
		if now-last > s.duration {
			delete(s.stances, id)
			slog.Debug("combat stance expired",
				"entity", id,
				"duration", now-last)
		}
	}
}
