package testutil

import (
	"errors"
	"slices"
	"sync"

	"github.com/udisondev/herdguard/internal/ai"
)

// ErrCueMissing is returned by CueRecorder for cues marked as failing.
var ErrCueMissing = errors.New("cue not found")

// CueRecorder — in-memory ai.CueSink для unit тестов.
// Записывает каждый проигранный cue по агентам.
type CueRecorder struct {
	mu      sync.Mutex
	played  map[string][]ai.Cue
	stops   map[string]int
	failing map[ai.Cue]bool
}

// NewCueRecorder создаёт recorder; failing cues always fail to play.
func NewCueRecorder(failing ...ai.Cue) *CueRecorder {
	r := &CueRecorder{
		played:  make(map[string][]ai.Cue),
		stops:   make(map[string]int),
		failing: make(map[ai.Cue]bool),
	}
	for _, c := range failing {
		r.failing[c] = true
	}
	return r
}

func (r *CueRecorder) Play(agentID string, cue ai.Cue) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.failing[cue] {
		return ErrCueMissing
	}
	r.played[agentID] = append(r.played[agentID], cue)
	return nil
}

func (r *CueRecorder) StopLoop(agentID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.stops[agentID]++
}

// Played returns a copy of the cues played by agentID, in order.
func (r *CueRecorder) Played(agentID string) []ai.Cue {
	r.mu.Lock()
	defer r.mu.Unlock()
	return slices.Clone(r.played[agentID])
}

// Last returns the most recent cue of agentID.
func (r *CueRecorder) Last(agentID string) (ai.Cue, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p := r.played[agentID]
	if len(p) == 0 {
		return "", false
	}
	return p[len(p)-1], true
}

// Stops returns how many times StopLoop was called for agentID.
func (r *CueRecorder) Stops(agentID string) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.stops[agentID]
}
