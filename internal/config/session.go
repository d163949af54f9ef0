package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/udisondev/herdguard/internal/game/wave"
	"github.com/udisondev/herdguard/internal/world"
)

// ErrInvalid is wrapped by every Validate failure.
var ErrInvalid = errors.New("invalid config")

// FrameConfig controls the host frame loop.
type FrameConfig struct {
	// Rate is the fixed number of simulation frames per second.
	Rate int `yaml:"rate"`
	// MaxDelta clamps a single frame step after a stall.
	MaxDelta time.Duration `yaml:"max_delta"`
}

// CombatConfig holds resolver tuning.
type CombatConfig struct {
	StanceDuration time.Duration `yaml:"stance_duration"`
}

// Session holds all configuration for one simulated play session.
type Session struct {
	// LogLevel is one of debug, info, warn, error.
	LogLevel string `yaml:"log_level"`
	// Seed drives spawn placement; zero picks a time-based seed.
	Seed uint64 `yaml:"seed"`

	Frame  FrameConfig  `yaml:"frame"`
	Combat CombatConfig `yaml:"combat"`
	Wave   wave.Config  `yaml:"wave"`
	World  world.Config `yaml:"world"`
}

// DefaultSession returns Session config with sensible defaults.
func DefaultSession() Session {
	return Session{
		LogLevel: "info",
		Frame: FrameConfig{
			Rate:     60,
			MaxDelta: 100 * time.Millisecond,
		},
		Combat: CombatConfig{
			StanceDuration: 15 * time.Second,
		},
		Wave:  wave.DefaultConfig(),
		World: world.DefaultConfig(),
	}
}

// LoadSession loads session config from a YAML file.
// If the file doesn't exist, returns defaults.
func LoadSession(path string) (Session, error) {
	cfg, err := ReadSession(path)
	if errors.Is(err, fs.ErrNotExist) {
		return DefaultSession(), nil
	}
	return cfg, err
}

// ReadSession is LoadSession without the missing-file fallback: a missing
// file is an error wrapping fs.ErrNotExist. Unset keys keep their defaults.
func ReadSession(path string) (Session, error) {
	cfg := DefaultSession()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("reading config %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("validating config %s: %w", path, err)
	}

	return cfg, nil
}

// FrameStep returns the fixed simulation step.
func (s Session) FrameStep() time.Duration {
	if s.Frame.Rate <= 0 {
		return time.Second / 60
	}
	return time.Second / time.Duration(s.Frame.Rate)
}

// Level parses LogLevel.
func (s Session) Level() (slog.Level, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(strings.ToUpper(s.LogLevel))); err != nil {
		return slog.LevelInfo, fmt.Errorf("%w: log_level %q", ErrInvalid, s.LogLevel)
	}
	return lvl, nil
}

// Validate rejects values the simulation cannot run with. All problems are
// reported at once.
func (s Session) Validate() error {
	var errs []error
	check := func(ok bool, format string, args ...any) {
		if !ok {
			errs = append(errs, fmt.Errorf("%w: "+format, append([]any{ErrInvalid}, args...)...))
		}
	}

	if _, err := s.Level(); err != nil {
		errs = append(errs, err)
	}
	check(s.Frame.Rate > 0, "frame.rate must be positive, got %d", s.Frame.Rate)
	check(s.Frame.MaxDelta > 0, "frame.max_delta must be positive, got %s", s.Frame.MaxDelta)
	check(s.Combat.StanceDuration >= 0, "combat.stance_duration must not be negative")

	w := s.Wave
	check(w.Difficulty.MaxPerWave > 0, "wave.difficulty.max_per_wave must be positive, got %d", w.Difficulty.MaxPerWave)
	check(w.Difficulty.BaseHealth > 0, "wave.difficulty.base_health must be positive")
	check(w.Difficulty.BaseDamage >= 0, "wave.difficulty.base_damage must not be negative")
	check(w.SpawnInterval >= 0, "wave.spawn_interval must not be negative")
	check(w.RestEvery >= 0, "wave.rest_every must not be negative")
	check(w.Placement.MaxRadius > 0, "wave.placement.max_radius must be positive")
	check(w.Placement.MaxAttempts >= 0, "wave.placement.max_attempts must not be negative")

	a := w.Agent
	check(a.MoveSpeed > 0, "wave.agent.move_speed must be positive")
	check(a.AttackRange > 0, "wave.agent.attack_range must be positive")
	check(a.AttackDuration > 0, "wave.agent.attack_duration must be positive")
	check(a.ImpactFraction >= 0 && a.ImpactFraction <= 1,
		"wave.agent.impact_fraction must be within [0, 1], got %g", a.ImpactFraction)
	check(a.BodyRadius > 0, "wave.agent.body_radius must be positive")
	check(a.HurtRadius > 0, "wave.agent.hurt_radius must be positive")
	check(a.Hitbox.Radius > 0, "wave.agent.hitbox.radius must be positive")
	check(a.Hitbox.Duration > 0, "wave.agent.hitbox.duration must be positive")

	wc := s.World
	check(wc.Pen.HalfWidth > 0 && wc.Pen.HalfDepth > 0, "world.pen extents must be positive")
	check(wc.HerdSize >= 0, "world.herd_size must not be negative")
	check(wc.HitsToKill > 0, "world.hits_to_kill must be positive")
	check(wc.Player.Health > 0, "world.player.health must be positive")
	check(wc.Player.HurtRadius > 0, "world.player.hurt_radius must be positive")

	return errors.Join(errs...)
}
