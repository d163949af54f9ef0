package ai

import (
	"log/slog"
	"maps"
)

// Cue is a named animation/audio request. The simulation does not care
// whether or how a cue renders.
type Cue string

const (
	CueIdle        Cue = "idle"
	CueCombatIdle  Cue = "combat-idle"
	CueSeek        Cue = "seek"
	CueAttack      Cue = "attack"
	CueAttackLeft  Cue = "attack-left"
	CueAttackRight Cue = "attack-right"
	CueDeath       Cue = "death"
)

// cueFallback maps a cue to the next-best cue when it fails to resolve.
var cueFallback = map[Cue]Cue{
	CueCombatIdle:  CueIdle,
	CueSeek:        CueIdle,
	CueAttackLeft:  CueAttack,
	CueAttackRight: CueAttack,
	CueAttack:      CueIdle,
}

// CueSink receives fire-and-forget cue requests.
type CueSink interface {
	// Play starts cue for the agent. An error means the cue could not be
	// resolved (missing clip, failed asset load).
	Play(agentID string, cue Cue) error
	// StopLoop stops continuous cues (movement loop, footsteps).
	StopLoop(agentID string)
}

// CueStatus is the per-cue load result reported in diagnostics.
type CueStatus struct {
	Loaded bool
	Err    string
}

// cuePlayer resolves cues through the fallback chain and remembers which
// cues failed so they are not retried every frame.
type cuePlayer struct {
	agentID string
	sink    CueSink
	current Cue
	status  map[Cue]CueStatus
}

func newCuePlayer(agentID string, sink CueSink) *cuePlayer {
	return &cuePlayer{
		agentID: agentID,
		sink:    sink,
		status:  make(map[Cue]CueStatus),
	}
}

// play requests cue unless it is already playing. Returns the cue that was
// actually played, or "" if the whole chain failed.
func (p *cuePlayer) play(cue Cue) Cue {
	if p.sink == nil {
		return ""
	}
	// Attack swings restart even when repeated.
	if cue == p.current && cue != CueAttackLeft && cue != CueAttackRight {
		return cue
	}

	for c := cue; c != ""; c = cueFallback[c] {
		if st, ok := p.status[c]; ok && !st.Loaded {
			continue
		}
		if err := p.sink.Play(p.agentID, c); err != nil {
			p.status[c] = CueStatus{Err: err.Error()}
			slog.Warn("agent cue failed, falling back",
				"agent", p.agentID,
				"cue", c,
				"fallback", cueFallback[c],
				"error", err)
			continue
		}
		p.status[c] = CueStatus{Loaded: true}
		p.current = cue
		return c
	}

	p.current = cue
	return ""
}

// stop stops looping cues.
func (p *cuePlayer) stop() {
	if p.sink == nil {
		return
	}
	p.sink.StopLoop(p.agentID)
	p.current = ""
}

func (p *cuePlayer) snapshot() map[Cue]CueStatus {
	return maps.Clone(p.status)
}
