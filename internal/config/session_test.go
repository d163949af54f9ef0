package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/udisondev/herdguard/internal/geom"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestDefaultSession_Valid(t *testing.T) {
	cfg := DefaultSession()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, time.Second/60, cfg.FrameStep())

	lvl, err := cfg.Level()
	require.NoError(t, err)
	assert.Equal(t, slog.LevelInfo, lvl)
}

func TestLoadSession_MissingFileReturnsDefaults(t *testing.T) {
	cfg, err := LoadSession(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	assert.Equal(t, DefaultSession(), cfg)
}

func TestLoadSession_OverridesKeepDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "herdsim.yaml")
	writeFile(t, path, `
log_level: debug
seed: 42
frame:
  rate: 30
wave:
  spawn_interval: 1.5s
  difficulty:
    max_per_wave: 3
  agent:
    move_speed: 4.5
    attack_cooldown: 2s
  placement:
    fallbacks:
      - {x: 30, y: 0, z: 0}
world:
  herd_size: 2
`)

	cfg, err := LoadSession(path)
	require.NoError(t, err)

	lvl, err := cfg.Level()
	require.NoError(t, err)
	assert.Equal(t, slog.LevelDebug, lvl)
	assert.Equal(t, uint64(42), cfg.Seed)
	assert.Equal(t, time.Second/30, cfg.FrameStep())
	assert.Equal(t, 1500*time.Millisecond, cfg.Wave.SpawnInterval)
	assert.Equal(t, 3, cfg.Wave.Difficulty.MaxPerWave)
	assert.InDelta(t, 4.5, cfg.Wave.Agent.MoveSpeed, 1e-9)
	assert.Equal(t, 2*time.Second, cfg.Wave.Agent.AttackCooldown)
	assert.Equal(t, []geom.Vec3{geom.V3(30, 0, 0)}, cfg.Wave.Placement.Fallbacks)
	assert.Equal(t, 2, cfg.World.HerdSize)

	// Untouched fields keep their defaults.
	def := DefaultSession()
	assert.Equal(t, def.Frame.MaxDelta, cfg.Frame.MaxDelta)
	assert.Equal(t, def.Wave.Agent.AttackRange, cfg.Wave.Agent.AttackRange)
	assert.Equal(t, def.World.Pen, cfg.World.Pen)
}

func TestLoadSession_ParseError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.yaml")
	writeFile(t, path, "frame: [1, 2\n")

	_, err := LoadSession(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parsing config")
}

func TestLoadSession_ValidationError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	writeFile(t, path, "frame:\n  rate: 0\n")

	_, err := LoadSession(path)
	require.ErrorIs(t, err, ErrInvalid)
	assert.Contains(t, err.Error(), "frame.rate")
}

func TestSession_Validate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Session)
		field  string
	}{
		{"log level", func(s *Session) { s.LogLevel = "loud" }, "log_level"},
		{"max delta", func(s *Session) { s.Frame.MaxDelta = 0 }, "frame.max_delta"},
		{"max per wave", func(s *Session) { s.Wave.Difficulty.MaxPerWave = 0 }, "max_per_wave"},
		{"base health", func(s *Session) { s.Wave.Difficulty.BaseHealth = -1 }, "base_health"},
		{"max radius", func(s *Session) { s.Wave.Placement.MaxRadius = 0 }, "max_radius"},
		{"move speed", func(s *Session) { s.Wave.Agent.MoveSpeed = 0 }, "move_speed"},
		{"hitbox duration", func(s *Session) { s.Wave.Agent.Hitbox.Duration = 0 }, "hitbox.duration"},
		{"hitbox radius", func(s *Session) { s.Wave.Agent.Hitbox.Radius = -1 }, "hitbox.radius"},
		{"impact fraction", func(s *Session) { s.Wave.Agent.ImpactFraction = 1.5 }, "impact_fraction"},
		{"hits to kill", func(s *Session) { s.World.HitsToKill = 0 }, "hits_to_kill"},
		{"player health", func(s *Session) { s.World.Player.Health = 0 }, "world.player.health"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultSession()
			tt.mutate(&cfg)

			err := cfg.Validate()
			require.ErrorIs(t, err, ErrInvalid)
			assert.Contains(t, err.Error(), tt.field)
		})
	}
}

func TestSession_ValidateReportsAll(t *testing.T) {
	cfg := DefaultSession()
	cfg.Frame.Rate = 0
	cfg.World.HitsToKill = 0

	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "frame.rate")
	assert.Contains(t, err.Error(), "hits_to_kill")
}

func TestLoadSession_ShippedConfig(t *testing.T) {
	cfg, err := LoadSession(filepath.Join("..", "..", "config", "herdsim.yaml"))
	require.NoError(t, err)

	def := DefaultSession()
	assert.Equal(t, def.World, cfg.World)
	assert.Equal(t, def.Wave.Agent, cfg.Wave.Agent)
	assert.Equal(t, def.Wave.Difficulty, cfg.Wave.Difficulty)
	assert.Len(t, cfg.Wave.Placement.Fallbacks, 3)
}
