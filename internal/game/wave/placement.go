package wave

import (
	"fmt"
	"log/slog"
	"math"
	"math/rand/v2"

	"github.com/jakecoffman/cp"

	"github.com/udisondev/herdguard/internal/geom"
)

// Layout is the static geometry spawn placement works against.
type Layout struct {
	// Protect is the footprint of the structure enemies converge on (pen).
	Protect geom.Obstacle
	// Obstacles are static blockers (rocks, trees).
	Obstacles []geom.Obstacle
	// Structures are named buildings (market, house, ship) that get a
	// larger clearance than plain obstacles.
	Structures []geom.Obstacle
}

// PlacementConfig tunes the spawn ring and clearances.
type PlacementConfig struct {
	// MinClearance is added to the protect footprint radius to get the
	// inner ring radius.
	MinClearance float64 `yaml:"min_clearance"`
	// MaxRadius is the outer ring radius.
	MaxRadius          float64 `yaml:"max_radius"`
	ObstacleClearance  float64 `yaml:"obstacle_clearance"`
	StructureClearance float64 `yaml:"structure_clearance"`
	MaxAttempts        int     `yaml:"max_attempts"`
	// Fallbacks are predefined spawn points tried after the ring attempts.
	Fallbacks []geom.Vec3 `yaml:"fallbacks"`
}

// PlacementSource tells where an accepted spawn position came from.
type PlacementSource int32

const (
	SourceRing PlacementSource = iota
	SourceFallback
	// SourceForced is an arbitrary predefined point used when every
	// candidate failed; it may violate clearances.
	SourceForced
)

// String returns human-readable source name
func (s PlacementSource) String() string {
	switch s {
	case SourceRing:
		return "RING"
	case SourceFallback:
		return "FALLBACK"
	case SourceForced:
		return "FORCED"
	default:
		return "UNKNOWN"
	}
}

// Placement is one chosen spawn position.
type Placement struct {
	Position geom.Vec3
	Source   PlacementSource
	Attempts int
}

// Placer picks collision-free spawn positions on an annulus around the
// protected structure. Expanded obstacle bounds are computed once.
type Placer struct {
	cfg    PlacementConfig
	rng    *rand.Rand
	center cp.Vector
	inner  float64
	outer  float64

	protect    geom.Obstacle
	obstacles  []geom.Obstacle
	structures []geom.Obstacle
}

// NewPlacer creates a placer. It fails with ErrNoPlacement when there is no
// protect structure and no fallback point.
func NewPlacer(layout Layout, cfg PlacementConfig, rng *rand.Rand) (*Placer, error) {
	if layout.Protect == nil && len(cfg.Fallbacks) == 0 {
		return nil, fmt.Errorf("creating placer: %w", ErrNoPlacement)
	}
	if rng == nil {
		rng = rand.New(rand.NewPCG(1, 2))
	}

	p := &Placer{
		cfg:     cfg,
		rng:     rng,
		protect: layout.Protect,
	}
	if layout.Protect != nil {
		p.center = geom.Center(layout.Protect)
		p.inner = geom.BoundingRadius(layout.Protect) + cfg.MinClearance
		p.outer = math.Max(cfg.MaxRadius, p.inner)
	}
	for _, o := range layout.Obstacles {
		p.obstacles = append(p.obstacles, o.Expand(cfg.ObstacleClearance))
	}
	for _, s := range layout.Structures {
		p.structures = append(p.structures, s.Expand(cfg.StructureClearance))
	}
	return p, nil
}

// RingMin returns the inner ring radius.
func (p *Placer) RingMin() float64 { return p.inner }

// RingMax returns the outer ring radius.
func (p *Placer) RingMax() float64 { return p.outer }

// Center returns the ground-plane center of the ring.
func (p *Placer) Center() cp.Vector { return p.center }

// Place returns a spawn position. It never fails: after MaxAttempts ring
// samples it tries the predefined points in order, then forces one of them.
func (p *Placer) Place() Placement {
	attempts := 0
	if p.protect != nil {
		for attempts < max(p.cfg.MaxAttempts, 1) {
			attempts++
			c := p.sampleRing()
			if p.Acceptable(c) {
				return Placement{Position: geom.FromGround(c, 0), Source: SourceRing, Attempts: attempts}
			}
		}
	}

	for _, f := range p.cfg.Fallbacks {
		attempts++
		if p.Acceptable(f.Ground()) {
			slog.Debug("spawn placement fell back to predefined point",
				"x", f.X,
				"z", f.Z,
				"attempts", attempts)
			return Placement{Position: f, Source: SourceFallback, Attempts: attempts}
		}
	}

	forced := p.forcedPoint()
	slog.Warn("spawn placement starved, forcing predefined point",
		"x", forced.X,
		"z", forced.Z,
		"attempts", attempts)
	return Placement{Position: forced, Source: SourceForced, Attempts: attempts}
}

// Acceptable reports whether c clears the protect footprint, every
// expanded obstacle and every expanded structure, and lies no closer to
// the ring center than the inner radius.
func (p *Placer) Acceptable(c cp.Vector) bool {
	if p.protect != nil {
		if c.Distance(p.center) < p.inner || p.protect.ContainsPoint(c) {
			return false
		}
	}
	for _, o := range p.obstacles {
		if o.ContainsPoint(c) {
			return false
		}
	}
	for _, s := range p.structures {
		if s.ContainsPoint(c) {
			return false
		}
	}
	return true
}

func (p *Placer) sampleRing() cp.Vector {
	angle := p.rng.Float64() * 2 * math.Pi
	// sqrt keeps samples uniform over the ring area
	r2 := p.inner*p.inner + p.rng.Float64()*(p.outer*p.outer-p.inner*p.inner)
	r := math.Max(math.Sqrt(r2), p.inner)
	return p.center.Add(cp.ForAngle(angle).Mult(r))
}

func (p *Placer) forcedPoint() geom.Vec3 {
	if n := len(p.cfg.Fallbacks); n > 0 {
		return p.cfg.Fallbacks[p.rng.IntN(n)]
	}
	return geom.FromGround(p.center.Add(cp.Vector{X: p.inner}), 0)
}
