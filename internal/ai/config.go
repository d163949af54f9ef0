package ai

import (
	"time"

	"github.com/udisondev/herdguard/internal/game/combat"
)

// HitboxConfig describes the attack volume spawned on the impact frame.
type HitboxConfig struct {
	Range    float64       `yaml:"range"`
	Radius   float64       `yaml:"radius"`
	Height   float64       `yaml:"height"`
	Duration time.Duration `yaml:"duration"`
}

// Config holds the tuning of one hostile agent. Damage and MaxHealth are
// already scaled by the wave's difficulty multipliers.
type Config struct {
	MoveSpeed      float64 `yaml:"move_speed"`
	AttackRange    float64 `yaml:"attack_range"`
	AggroRadius    float64 `yaml:"aggro_radius"`
	DetectionRange float64 `yaml:"detection_range"`

	AttackCooldown   time.Duration `yaml:"attack_cooldown"`
	AttackDuration   time.Duration `yaml:"attack_duration"`
	ImpactFraction   float64       `yaml:"impact_fraction"`
	RecoveryDuration time.Duration `yaml:"recovery_duration"`

	Damage float64      `yaml:"damage"`
	Hitbox HitboxConfig `yaml:"hitbox"`

	BodyRadius        float64 `yaml:"body_radius"`
	ObstacleClearance float64 `yaml:"obstacle_clearance"`
	// EnclosureDPS is the damage per second dealt to an enclosure side the
	// agent is pushing against.
	EnclosureDPS float64 `yaml:"enclosure_dps"`

	MaxHealth       float64       `yaml:"max_health"`
	HurtRadius      float64       `yaml:"hurt_radius"`
	Invulnerability time.Duration `yaml:"invulnerability"`
}

// DefaultConfig returns wolf-like defaults.
func DefaultConfig() Config {
	return Config{
		MoveSpeed:        3.0,
		AttackRange:      1.4,
		AggroRadius:      4.0,
		DetectionRange:   30.0,
		AttackCooldown:   1200 * time.Millisecond,
		AttackDuration:   800 * time.Millisecond,
		ImpactFraction:   0.45,
		RecoveryDuration: 300 * time.Millisecond,
		Damage:           10,
		Hitbox: HitboxConfig{
			Range:    1.0,
			Radius:   0.6,
			Height:   0.5,
			Duration: 150 * time.Millisecond,
		},
		BodyRadius:        0.4,
		ObstacleClearance: 0.3,
		EnclosureDPS:      5,
		MaxHealth:         100,
		HurtRadius:        0.5,
		Invulnerability:   200 * time.Millisecond,
	}
}

// impactDelay returns the delay from attack start to the impact frame.
func (c Config) impactDelay() time.Duration {
	return time.Duration(float64(c.AttackDuration) * c.ImpactFraction)
}

func (c Config) hitboxSpec() combat.HitboxSpec {
	return combat.HitboxSpec{
		Damage:       c.Damage,
		Range:        c.Hitbox.Range,
		Radius:       c.Hitbox.Radius,
		Duration:     c.Hitbox.Duration,
		OffsetHeight: c.Hitbox.Height,
	}
}
