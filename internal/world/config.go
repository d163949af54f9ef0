package world

import (
	"time"

	"github.com/udisondev/herdguard/internal/geom"
)

// PenConfig places the livestock enclosure.
type PenConfig struct {
	Center     geom.Vec3 `yaml:"center"`
	HalfWidth  float64   `yaml:"half_width"`
	HalfDepth  float64   `yaml:"half_depth"`
	Thickness  float64   `yaml:"thickness"`
	SideHealth float64   `yaml:"side_health"`
}

// RockConfig is a round static blocker.
type RockConfig struct {
	Position geom.Vec3 `yaml:"position"`
	Radius   float64   `yaml:"radius"`
}

// StructureConfig is a named building (market, house, ship).
type StructureConfig struct {
	Name      string    `yaml:"name"`
	Position  geom.Vec3 `yaml:"position"`
	HalfWidth float64   `yaml:"half_width"`
	HalfDepth float64   `yaml:"half_depth"`
}

// PlayerConfig describes the player character at spawn.
type PlayerConfig struct {
	Spawn           geom.Vec3     `yaml:"spawn"`
	Health          float64       `yaml:"health"`
	HurtRadius      float64       `yaml:"hurt_radius"`
	Invulnerability time.Duration `yaml:"invulnerability"`
}

// Config is the static layout of one session map.
type Config struct {
	Pen        PenConfig         `yaml:"pen"`
	Rocks      []RockConfig      `yaml:"rocks"`
	Structures []StructureConfig `yaml:"structures"`
	HerdSize   int               `yaml:"herd_size"`
	HitsToKill int               `yaml:"hits_to_kill"`
	Player     PlayerConfig      `yaml:"player"`
}

// DefaultConfig returns a small farm: a 6x4 pen at the origin, a few rocks
// and two buildings well outside the spawn ring's inner edge.
func DefaultConfig() Config {
	return Config{
		Pen: PenConfig{
			HalfWidth:  3,
			HalfDepth:  2,
			Thickness:  0.3,
			SideHealth: 40,
		},
		Rocks: []RockConfig{
			{Position: geom.V3(12, 0, 4), Radius: 1},
			{Position: geom.V3(-9, 0, -14), Radius: 1.5},
			{Position: geom.V3(4, 0, -20), Radius: 0.8},
		},
		Structures: []StructureConfig{
			{Name: "market", Position: geom.V3(-22, 0, 10), HalfWidth: 4, HalfDepth: 3},
			{Name: "house", Position: geom.V3(18, 0, -16), HalfWidth: 3, HalfDepth: 3},
		},
		HerdSize:   6,
		HitsToKill: 3,
		Player: PlayerConfig{
			Spawn:           geom.V3(0, 0, -5),
			Health:          200,
			HurtRadius:      0.5,
			Invulnerability: 500 * time.Millisecond,
		},
	}
}
