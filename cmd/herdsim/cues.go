package main

import (
	"log/slog"

	"github.com/udisondev/herdguard/internal/ai"
)

// logCues is the headless cue sink: there are no clips to play, so cues
// are only logged.
type logCues struct{}

func (logCues) Play(agentID string, cue ai.Cue) error {
	if ai.IsDebugEnabled() {
		slog.Debug("cue", "agent", agentID, "cue", cue)
	}
	return nil
}

func (logCues) StopLoop(string) {}
