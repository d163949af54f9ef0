package wave

import (
	"errors"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"slices"
	"time"

	"github.com/udisondev/herdguard/internal/ai"
	"github.com/udisondev/herdguard/internal/clock"
	"github.com/udisondev/herdguard/internal/game/combat"
	"github.com/udisondev/herdguard/internal/geom"
	"github.com/udisondev/herdguard/internal/model"
	"github.com/udisondev/herdguard/internal/schedule"
)

// Combat is the part of the combat resolver the director registers enemies with.
type Combat interface {
	ai.HitboxSpawner
	Register(
		id string,
		transform model.Transform,
		vitality *model.Vitality,
		team model.Team,
		hurtRadius float64,
		onDeath combat.DeathFunc,
		opts ...combat.EntityOption,
	) error
	Unregister(id string) bool
}

// BodyFactory creates the host transform of a freshly spawned enemy.
type BodyFactory func(id string, pos geom.Vec3) model.Transform

// WaveFunc observes wave start/completion.
type WaveFunc func(wave int, rec Record)

// EnemyDeathFunc observes enemy deaths (host rewards).
type EnemyDeathFunc func(enemyID, killerID string)

// Deps are the collaborators of a director.
type Deps struct {
	Clock  clock.Clock
	Combat Combat
	// Agents carries the providers every spawned agent uses. Clock and
	// Combat are filled in by the director.
	Agents  ai.Deps
	Layout  Layout
	Rand    *rand.Rand
	NewBody BodyFactory
	// NewID issues enemy entity ids; defaults to "enemy-N".
	NewID func() string
}

// enemy is one spawned hostile.
type enemy struct {
	agent    *ai.Agent
	vitality *model.Vitality
	wave     int
	dead     bool
}

// EnemyView is the read-only view of an active enemy (minimap, HUD).
type EnemyView struct {
	ID        string
	Wave      int
	Position  geom.Vec3
	Health    float64
	MaxHealth float64
	State     ai.State
}

// Snapshot is a read-only view of the director state.
type Snapshot struct {
	State           State
	Wave            Record
	RemainingSpawns int
	Active          int
	Killed          int
	// Countdown is the time left before the next wave, zero when no
	// countdown runs.
	Countdown time.Duration
}

// Director orchestrates the wave lifecycle:
// IDLE → WAVE_ACTIVE → WAVE_COMPLETE → REST/NEXT_WAVE_COUNTDOWN → WAVE_ACTIVE.
//
// Not safe for concurrent use: owned by the frame loop.
type Director struct {
	cfg     Config
	pending *Config

	clock   clock.Clock
	combat  Combat
	agents  ai.Deps
	layout  Layout
	rng     *rand.Rand
	newBody BodyFactory
	newID   func() string
	placer  *Placer

	roster  *ai.Roster
	tasks   *schedule.Queue
	enemies map[string]*enemy
	active  []string // alive enemies in spawn order

	state       State
	record      Record
	remaining   int
	nextSpawnAt time.Duration
	countdown   schedule.Token

	enemyCounter uint64
	killed       int

	onWaveStart    WaveFunc
	onWaveComplete WaveFunc
	onEnemyDeath   EnemyDeathFunc
}

// NewDirector creates an idle director.
func NewDirector(cfg Config, deps Deps) (*Director, error) {
	if deps.Combat == nil {
		return nil, errors.New("creating wave director: combat resolver is required")
	}
	clk := deps.Clock
	if clk == nil {
		clk = clock.NewManual()
	}
	rng := deps.Rand
	if rng == nil {
		rng = rand.New(rand.NewPCG(uint64(time.Now().UnixNano()), 0x9e3779b97f4a7c15))
	}
	newBody := deps.NewBody
	if newBody == nil {
		newBody = func(_ string, pos geom.Vec3) model.Transform { return model.NewBody(pos) }
	}

	d := &Director{
		cfg:     cfg,
		clock:   clk,
		combat:  deps.Combat,
		layout:  deps.Layout,
		rng:     rng,
		newBody: newBody,
		newID:   deps.NewID,
		roster:  ai.NewRoster(),
		tasks:   schedule.NewQueue(clk),
		enemies: make(map[string]*enemy),
		state:   StateIdle,
	}
	if d.newID == nil {
		d.newID = func() string {
			d.enemyCounter++
			return fmt.Sprintf("enemy-%d", d.enemyCounter)
		}
	}

	placer, err := NewPlacer(deps.Layout, cfg.Placement, rng)
	if err != nil {
		return nil, fmt.Errorf("creating wave director: %w", err)
	}
	d.placer = placer

	d.agents = deps.Agents
	d.agents.Clock = clk
	d.agents.Combat = deps.Combat

	return d, nil
}

// OnWaveStart sets the callback fired when a wave becomes active.
func (d *Director) OnWaveStart(fn WaveFunc) { d.onWaveStart = fn }

// OnWaveComplete sets the callback fired when the last enemy of a wave died.
func (d *Director) OnWaveComplete(fn WaveFunc) { d.onWaveComplete = fn }

// SetOnEnemyDeath sets the host reward hook.
func (d *Director) SetOnEnemyDeath(fn EnemyDeathFunc) { d.onEnemyDeath = fn }

// ApplyConfig stores new tuning; it takes effect at the next wave start.
func (d *Director) ApplyConfig(cfg Config) {
	d.pending = &cfg
	slog.Info("wave config update queued", "applyAtWave", d.record.Number+1)
}

// Start begins the next wave (wave 1 on a fresh director).
func (d *Director) Start() error {
	if d.state != StateIdle {
		return fmt.Errorf("starting at wave %d in state %s: %w", d.record.Number, d.state, ErrAlreadyStarted)
	}
	d.beginNextWave()
	return nil
}

// Stop halts spawning and cancels any countdown. Active enemies keep being
// simulated until they die.
func (d *Director) Stop() {
	if d.state == StateIdle {
		return
	}
	if d.countdown != 0 {
		d.tasks.Cancel(d.countdown)
		d.countdown = 0
	}
	skipped := d.remaining
	d.remaining = 0
	d.state = StateIdle

	slog.Info("wave director stopped",
		"wave", d.record.Number,
		"skippedSpawns", skipped,
		"active", len(d.active))
}

// Update runs due timers, spawns at most one enemy and checks completion.
// Called after agents and combat in the frame.
func (d *Director) Update(_ time.Duration) {
	d.tasks.Drain()

	if d.state != StateWaveActive {
		return
	}

	now := d.clock.Now()
	if d.remaining > 0 && now >= d.nextSpawnAt {
		d.remaining--
		d.nextSpawnAt = now + d.cfg.SpawnInterval
		d.spawnEnemy()
	}

	if d.remaining == 0 && len(d.active) == 0 {
		d.completeWave()
	}
}

// UpdateAgents ticks every spawned agent in spawn order.
func (d *Director) UpdateAgents(dt time.Duration) {
	d.roster.Update(dt)
}

func (d *Director) beginNextWave() {
	d.countdown = 0
	if d.pending != nil {
		d.cfg = *d.pending
		d.pending = nil
		if placer, err := NewPlacer(d.layout, d.cfg.Placement, d.rng); err == nil {
			d.placer = placer
		} else {
			slog.Error("keeping previous spawn placement", "error", err)
		}
	}

	d.record = NewRecord(d.record.Number+1, d.cfg.Difficulty)
	d.remaining = d.record.EnemyCount
	d.nextSpawnAt = d.clock.Now()
	d.state = StateWaveActive

	slog.Info("wave started",
		"wave", d.record.Number,
		"enemies", d.record.EnemyCount,
		"tier", d.record.Tier,
		"healthMultiplier", d.record.HealthMultiplier,
		"damageMultiplier", d.record.DamageMultiplier)

	if d.onWaveStart != nil {
		rec := d.record
		d.safeCall("wave start", func() { d.onWaveStart(rec.Number, rec) })
	}
}

func (d *Director) completeWave() {
	d.state = StateWaveComplete
	rec := d.record

	slog.Info("wave complete", "wave", rec.Number, "killed", d.killed)
	if d.onWaveComplete != nil {
		d.safeCall("wave complete", func() { d.onWaveComplete(rec.Number, rec) })
	}
	// callbacks may have stopped the director
	if d.state != StateWaveComplete {
		return
	}
	d.scheduleNextWave()
}

// scheduleNextWave starts the rest or next-wave countdown. Idempotent: a
// running countdown is never scheduled twice.
func (d *Director) scheduleNextWave() {
	if d.countdown != 0 && d.tasks.Pending(d.countdown) {
		return
	}

	delay, name := d.cfg.NextWaveDelay, "next-wave"
	d.state = StateNextWaveCountdown
	if d.cfg.IsRestWave(d.record.Number) {
		delay, name = d.cfg.RestDuration, "rest"
		d.state = StateRestCountdown
	}
	d.countdown = d.tasks.After(delay, name, d.beginNextWave)

	slog.Info("wave countdown started",
		"wave", d.record.Number,
		"countdown", name,
		"delay", delay)
}

func (d *Director) spawnEnemy() {
	id := d.newID()
	place := d.placer.Place()
	body := d.newBody(id, place.Position)
	cfg := d.cfg.agentConfig(d.record)
	vitality := model.NewVitality(cfg.MaxHealth, cfg.Invulnerability)

	agent := ai.NewAgent(id, body, cfg, d.agents)
	if err := d.combat.Register(id, body, vitality, model.TeamEnemy, cfg.HurtRadius, d.handleDeath); err != nil {
		slog.Error("enemy spawn skipped", "enemy", id, "error", err)
		return
	}
	if err := d.roster.Register(agent); err != nil {
		d.combat.Unregister(id)
		slog.Error("enemy spawn skipped", "enemy", id, "error", err)
		return
	}

	d.enemies[id] = &enemy{agent: agent, vitality: vitality, wave: d.record.Number}
	d.active = append(d.active, id)

	slog.Info("enemy spawned",
		"enemy", id,
		"wave", d.record.Number,
		"maxHealth", cfg.MaxHealth,
		"damage", cfg.Damage,
		"x", place.Position.X,
		"z", place.Position.Z,
		"placement", place.Source)
}

// handleDeath is the combat death callback of every spawned enemy. It is
// the only path that removes an enemy from the active set.
func (d *Director) handleDeath(victimID, killerID string) {
	e, ok := d.enemies[victimID]
	if !ok || e.dead {
		return
	}
	e.dead = true
	d.active = slices.DeleteFunc(d.active, func(id string) bool { return id == victimID })
	d.killed++

	e.agent.NotifyDeath(killerID)

	slog.Info("enemy killed",
		"enemy", victimID,
		"killer", killerID,
		"wave", e.wave,
		"remainingActive", len(d.active))

	if d.onEnemyDeath != nil {
		d.safeCall("enemy death", func() { d.onEnemyDeath(victimID, killerID) })
	}

	d.tasks.After(d.cfg.CorpseLinger, "corpse", func() { d.removeCorpse(victimID) })
}

func (d *Director) removeCorpse(id string) {
	delete(d.enemies, id)
	d.combat.Unregister(id)
	d.roster.Unregister(id)
	slog.Debug("enemy corpse removed", "enemy", id)
}

func (d *Director) safeCall(kind string, fn func()) {
	defer func() {
		if r := recover(); r != nil {
			slog.Error("wave callback panicked",
				"callback", kind,
				"wave", d.record.Number,
				"panic", r)
		}
	}()
	fn()
}

// State returns the lifecycle state.
func (d *Director) State() State { return d.state }

// Wave returns the current wave record.
func (d *Director) Wave() Record { return d.record }

// Config returns the tuning currently in effect.
func (d *Director) Config() Config { return d.cfg }

// Placer returns the spawn placer.
func (d *Director) Placer() *Placer { return d.placer }

// Agent returns a spawned agent, alive or lingering.
func (d *Director) Agent(id string) (*ai.Agent, bool) {
	e, ok := d.enemies[id]
	if !ok {
		return nil, false
	}
	return e.agent, true
}

// ActiveEnemies returns the live enemies keyed by entity id.
func (d *Director) ActiveEnemies() map[string]EnemyView {
	out := make(map[string]EnemyView, len(d.active))
	for _, id := range d.active {
		e := d.enemies[id]
		out[id] = EnemyView{
			ID:        id,
			Wave:      e.wave,
			Position:  e.agent.Body().Position(),
			Health:    e.vitality.Current(),
			MaxHealth: e.vitality.Maximum(),
			State:     e.agent.State(),
		}
	}
	return out
}

// ActiveIDs returns live enemy ids in spawn order.
func (d *Director) ActiveIDs() []string {
	return slices.Clone(d.active)
}

// Snapshot returns a read-only view of the director state.
func (d *Director) Snapshot() Snapshot {
	s := Snapshot{
		State:           d.state,
		Wave:            d.record,
		RemainingSpawns: d.remaining,
		Active:          len(d.active),
		Killed:          d.killed,
	}
	if d.countdown != 0 {
		if left, ok := d.tasks.Remaining(d.countdown); ok {
			s.Countdown = left
		}
	}
	return s
}
