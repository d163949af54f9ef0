// Package encounter wires the combat resolver, the wave director and the
// reference world into one play session and runs its frames in order.
package encounter

import (
	"errors"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"time"

	"github.com/udisondev/herdguard/internal/ai"
	"github.com/udisondev/herdguard/internal/clock"
	"github.com/udisondev/herdguard/internal/config"
	"github.com/udisondev/herdguard/internal/game/combat"
	"github.com/udisondev/herdguard/internal/game/wave"
	"github.com/udisondev/herdguard/internal/model"
	"github.com/udisondev/herdguard/internal/world"
)

// ErrPlayerRegistered is returned by RegisterPlayer when a live player
// already takes part in the session.
var ErrPlayerRegistered = errors.New("player already registered")

// Hooks are the optional host observers of a session.
type Hooks struct {
	OnWaveStart    wave.WaveFunc
	OnWaveComplete wave.WaveFunc
	OnEnemyDeath   wave.EnemyDeathFunc
	OnPlayerDeath  func(killerID string)
	OnAnimalDeath  func(animalID string)
}

// Options configure collaborators that stay host-owned.
type Options struct {
	Cues    ai.CueSink
	NewBody wave.BodyFactory
	Hooks   Hooks
}

// Session is one play session. Frame order is fixed: agents think and
// spawn hitboxes, the resolver applies damage, then the director spawns
// and advances the wave lifecycle.
//
// Not safe for concurrent use: owned by the single frame loop.
type Session struct {
	cfg      config.Session
	clock    *clock.Manual
	resolver *combat.Resolver
	world    *world.World
	director *wave.Director
	hooks    Hooks

	player *world.Player
	frames uint64
}

// New builds a session from cfg. The wave director stays idle until Start.
func New(cfg config.Session, opts Options) (*Session, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("creating encounter: %w", err)
	}

	s := &Session{
		cfg:   cfg,
		clock: clock.NewManual(),
		hooks: opts.Hooks,
	}
	s.resolver = combat.NewResolver(s.clock)
	s.resolver.SetStanceDuration(cfg.Combat.StanceDuration)
	s.world = world.New(cfg.World)
	s.world.Herd().SetOnDeath(s.animalDied)

	seed := cfg.Seed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}

	director, err := wave.NewDirector(cfg.Wave, wave.Deps{
		Clock:  s.clock,
		Combat: s.resolver,
		Agents: ai.Deps{
			Players: s.world,
			Herd:    s.world,
			World:   s.world,
			Cues:    opts.Cues,
		},
		Layout:  s.world.Layout(),
		Rand:    rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
		NewBody: opts.NewBody,
		NewID:   s.world.IDs().NextEnemyID,
	})
	if err != nil {
		return nil, fmt.Errorf("creating encounter: %w", err)
	}
	s.director = director
	s.director.OnWaveStart(s.waveStarted)
	s.director.OnWaveComplete(s.waveCompleted)
	s.director.SetOnEnemyDeath(opts.Hooks.OnEnemyDeath)

	slog.Info("encounter created",
		"seed", seed,
		"frameStep", cfg.FrameStep(),
		"maxFrameDelta", cfg.Frame.MaxDelta)
	return s, nil
}

// RegisterPlayer spawns the player character and enters it into combat.
// A dead player may be replaced; a live one may not.
func (s *Session) RegisterPlayer() (*world.Player, error) {
	if s.player != nil && s.player.Alive() {
		return nil, fmt.Errorf("registering player: %w", ErrPlayerRegistered)
	}
	if s.player != nil {
		s.resolver.Unregister(s.player.ID())
	}

	p := s.world.SpawnPlayer()
	err := s.resolver.Register(
		p.ID(),
		p.Body(),
		p.Vitality(),
		model.TeamPlayer,
		s.cfg.World.Player.HurtRadius,
		s.playerDied,
	)
	if err != nil {
		s.world.RemovePlayer()
		return nil, fmt.Errorf("registering player: %w", err)
	}
	s.player = p

	slog.Info("player registered", "player", p.ID(), "health", p.Vitality().Current())
	return p, nil
}

// Start begins the first (or next) wave.
func (s *Session) Start() error {
	return s.director.Start()
}

// Stop halts the wave director.
func (s *Session) Stop() {
	s.director.Stop()
}

// ApplyConfig queues new wave tuning for the next wave. World layout and
// frame settings are fixed for the lifetime of a session.
func (s *Session) ApplyConfig(cfg config.Session) {
	s.director.ApplyConfig(cfg.Wave)
}

// Update advances the session by dt, clamped to the configured maximum so
// a stalled host does not teleport agents through walls.
func (s *Session) Update(dt time.Duration) {
	if dt <= 0 {
		return
	}
	if dt > s.cfg.Frame.MaxDelta {
		slog.Debug("frame delta clamped", "dt", dt, "max", s.cfg.Frame.MaxDelta)
		dt = s.cfg.Frame.MaxDelta
	}

	s.clock.Advance(dt)
	s.director.UpdateAgents(dt)
	s.resolver.Update(dt)
	s.director.Update(dt)
	s.frames++
}

func (s *Session) waveStarted(n int, rec wave.Record) {
	if s.hooks.OnWaveStart != nil {
		s.hooks.OnWaveStart(n, rec)
	}
}

// waveCompleted heals the player before a rest pause.
func (s *Session) waveCompleted(n int, rec wave.Record) {
	if s.player != nil && s.director.Config().IsRestWave(n) {
		full := s.player.Vitality().Maximum()
		if err := s.resolver.Heal(s.player.ID(), full); err != nil {
			slog.Warn("player rest heal failed", "player", s.player.ID(), "error", err)
		}
	}
	if s.hooks.OnWaveComplete != nil {
		s.hooks.OnWaveComplete(n, rec)
	}
}

func (s *Session) playerDied(_, killerID string) {
	slog.Info("player died", "player", s.player.ID(), "killer", killerID, "wave", s.director.Wave().Number)
	if s.hooks.OnPlayerDeath != nil {
		s.hooks.OnPlayerDeath(killerID)
	}
}

func (s *Session) animalDied(id string) {
	if s.hooks.OnAnimalDeath != nil {
		s.hooks.OnAnimalDeath(id)
	}
}

// Now returns the session time.
func (s *Session) Now() time.Duration { return s.clock.Now() }

// Frames returns the number of frames run.
func (s *Session) Frames() uint64 { return s.frames }

// Player returns the registered player, or nil.
func (s *Session) Player() *world.Player { return s.player }

// Resolver returns the combat resolver.
func (s *Session) Resolver() *combat.Resolver { return s.resolver }

// Director returns the wave director.
func (s *Session) Director() *wave.Director { return s.director }

// World returns the session world.
func (s *Session) World() *world.World { return s.world }

// Config returns the config the session was created with.
func (s *Session) Config() config.Session { return s.cfg }
