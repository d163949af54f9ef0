package ai

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/udisondev/herdguard/internal/clock"
	"github.com/udisondev/herdguard/internal/model"
	"github.com/udisondev/herdguard/internal/schedule"
)

// Deps are the host collaborators an agent talks to. Any provider may be nil.
type Deps struct {
	Clock   clock.Clock
	Combat  HitboxSpawner
	Players PlayerProvider
	Herd    ProtectableProvider
	World   ObstacleProvider
	Cues    CueSink
}

// Agent implements the behaviour of one hostile enemy.
// State machine: IDLE → SEEKING → ATTACKING → RECOVERING → SEEKING/IDLE, DEAD terminal.
//
// Not safe for concurrent use: updated by the frame loop in spawn order.
type Agent struct {
	id   string
	cfg  Config
	body model.Transform

	clock   clock.Clock
	combat  HitboxSpawner
	players PlayerProvider
	herd    ProtectableProvider
	world   ObstacleProvider
	cues    *cuePlayer

	state  State
	target TargetRef

	// obstacles is built lazily on the first steering step.
	obstacles *obstacleSnapshot
	breaching bool

	// tasks holds the pending impact callback; cleared on death.
	tasks        *schedule.Queue
	impact       schedule.Token
	swinging     bool
	attackedOnce bool
	lastAttackAt time.Duration
	attackEndsAt time.Duration
	recoverUntil time.Duration
	swings       int

	faults int
}

// NewAgent creates an idle agent driving body.
func NewAgent(id string, body model.Transform, cfg Config, deps Deps) *Agent {
	clk := deps.Clock
	if clk == nil {
		clk = clock.NewManual()
	}
	return &Agent{
		id:      id,
		cfg:     cfg,
		body:    body,
		clock:   clk,
		combat:  deps.Combat,
		players: deps.Players,
		herd:    deps.Herd,
		world:   deps.World,
		cues:    newCuePlayer(id, deps.Cues),
		tasks:   schedule.NewQueue(clk),
		state:   StateIdle,
	}
}

// ID returns the combat entity id of the agent.
func (a *Agent) ID() string { return a.id }

// State returns current behaviour state.
func (a *Agent) State() State { return a.state }

// Target returns the current weak target reference.
func (a *Agent) Target() TargetRef { return a.target }

// Body returns the transform the agent drives.
func (a *Agent) Body() model.Transform { return a.body }

// Config returns agent tuning.
func (a *Agent) Config() Config { return a.cfg }

// Update runs perception, movement and attack for one frame.
// A panic inside the tick is logged and the agent keeps its last state.
func (a *Agent) Update(dt time.Duration) {
	if a.state == StateDead {
		return
	}

	defer func() {
		if r := recover(); r != nil {
			a.faults++
			slog.Error("agent tick panicked",
				"agent", a.id,
				"state", a.state,
				"panic", r)
		}
	}()

	a.tasks.Drain()
	if a.state == StateDead {
		return
	}

	now := a.clock.Now()
	if a.swinging {
		if now < a.attackEndsAt {
			return
		}
		a.swinging = false
		a.recoverUntil = now + a.cfg.RecoveryDuration
		a.setState(StateRecovering)
		a.cues.play(CueCombatIdle)
		return
	}
	if a.state == StateRecovering {
		if now < a.recoverUntil {
			return
		}
		// Re-evaluate targets from scratch after the lock-out.
		a.target = TargetRef{}
	}

	a.think(dt, now)
}

func (a *Agent) think(dt time.Duration, now time.Duration) {
	pos := a.body.Position()
	tp, ok := a.updateTarget(pos)
	if !ok {
		a.setState(StateIdle)
		a.cues.play(CueIdle)
		return
	}

	dist := pos.GroundDistance(tp)
	if dist <= a.cfg.AttackRange {
		a.engage(now, tp)
		return
	}

	a.setState(StateSeeking)
	a.breaching = false
	if a.steer(dt, pos, tp, dist) {
		a.cues.play(CueSeek)
		return
	}
	if a.breaching {
		a.cues.play(CueAttack)
		return
	}
	a.cues.play(CueCombatIdle)
}

func (a *Agent) setState(s State) {
	if a.state == s {
		return
	}
	prev := a.state
	a.state = s

	if IsDebugEnabled() {
		slog.Debug("agent state changed",
			"agent", a.id,
			"from", prev,
			"to", s,
			"target", a.target.ID)
	}
}

// NotifyDeath moves the agent to DEAD once, cancels the pending impact and
// stops looping cues. Later calls are ignored.
func (a *Agent) NotifyDeath(killerID string) {
	if a.state == StateDead {
		return
	}
	a.setState(StateDead)

	if a.impact != 0 {
		a.tasks.Cancel(a.impact)
		a.impact = 0
	}
	cancelled := a.tasks.Clear()
	a.swinging = false
	a.target = TargetRef{}

	a.cues.stop()
	a.cues.play(CueDeath)

	slog.Debug("agent died",
		"agent", a.id,
		"killer", killerID,
		"cancelledImpacts", cancelled)
}

// Diagnostics is a debugging snapshot of an agent.
type Diagnostics struct {
	ID             string
	State          State
	Target         TargetRef
	Cues           map[Cue]CueStatus
	PendingImpacts int
	Obstacles      int
	Faults         int
}

// Diagnostics returns the per-cue load results and internal counters.
func (a *Agent) Diagnostics() Diagnostics {
	d := Diagnostics{
		ID:             a.id,
		State:          a.state,
		Target:         a.target,
		Cues:           a.cues.snapshot(),
		PendingImpacts: a.tasks.Len(),
		Faults:         a.faults,
	}
	if a.obstacles != nil {
		d.Obstacles = len(a.obstacles.static) + len(a.obstacles.sides)
	}
	return d
}

func (a *Agent) String() string {
	return fmt.Sprintf("Agent{id=%s state=%s target=%s:%s}", a.id, a.state, a.target.Kind, a.target.ID)
}
