package wave

import (
	"time"

	"github.com/udisondev/herdguard/internal/ai"
)

// Config holds the wave lifecycle tuning.
type Config struct {
	Difficulty Difficulty `yaml:"difficulty"`

	// SpawnInterval separates spawns within a wave; the first spawns at once.
	SpawnInterval time.Duration `yaml:"spawn_interval"`
	// RestEvery inserts a RestDuration pause after every RestEvery-th wave.
	RestEvery     int           `yaml:"rest_every"`
	RestDuration  time.Duration `yaml:"rest_duration"`
	NextWaveDelay time.Duration `yaml:"next_wave_delay"`
	// CorpseLinger keeps dead enemies registered (death cue, loot) before
	// they are removed from combat and the roster.
	CorpseLinger time.Duration `yaml:"corpse_linger"`

	Agent     ai.Config       `yaml:"agent"`
	Placement PlacementConfig `yaml:"placement"`
}

// DefaultConfig returns the default wave tuning.
func DefaultConfig() Config {
	agent := ai.DefaultConfig()
	return Config{
		Difficulty: Difficulty{
			MaxPerWave:      5,
			BaseHealth:      agent.MaxHealth,
			BaseDamage:      agent.Damage,
			HealthIncrement: 0.5,
			DamageIncrement: 0.25,
		},
		SpawnInterval: 2 * time.Second,
		RestEvery:     5,
		RestDuration:  2 * time.Minute,
		NextWaveDelay: 10 * time.Second,
		CorpseLinger:  3 * time.Second,
		Agent:         agent,
		Placement: PlacementConfig{
			MinClearance:       6,
			MaxRadius:          35,
			ObstacleClearance:  1.5,
			StructureClearance: 4,
			MaxAttempts:        30,
		},
	}
}

// agentConfig scales the agent tuning by the wave's multipliers.
func (c Config) agentConfig(rec Record) ai.Config {
	cfg := c.Agent
	cfg.MaxHealth = rec.EnemyHealth(c.Difficulty)
	cfg.Damage = rec.EnemyDamage(c.Difficulty)
	return cfg
}

// IsRestWave reports whether a rest pause follows wave n.
func (c Config) IsRestWave(n int) bool {
	return c.RestEvery > 0 && n%c.RestEvery == 0
}
