package world

import (
	"log/slog"

	"github.com/jakecoffman/cp"

	"github.com/udisondev/herdguard/internal/geom"
)

// Pen sides, indexed the way Sides returns them.
const (
	SideNorth = iota
	SideEast
	SideSouth
	SideWest
)

type penSide struct {
	wall      geom.Box
	health    float64
	destroyed bool
}

// Pen is the livestock enclosure: four wall boxes, each with its own
// health pool. It implements ai.Enclosure.
type Pen struct {
	center     cp.Vector
	halfWidth  float64
	halfDepth  float64
	sideHealth float64
	sides      [4]penSide
}

// NewPen creates a pen centered at (x, z). Walls of the given thickness run
// along the outside of the half-width/half-depth rectangle.
func NewPen(x, z, halfWidth, halfDepth, thickness, sideHealth float64) *Pen {
	p := &Pen{
		center:     cp.Vector{X: x, Y: z},
		halfWidth:  halfWidth,
		halfDepth:  halfDepth,
		sideHealth: sideHealth,
	}
	t := thickness / 2
	p.sides[SideNorth].wall = geom.NewBox(x, z+halfDepth+t, halfWidth+thickness, t)
	p.sides[SideSouth].wall = geom.NewBox(x, z-halfDepth-t, halfWidth+thickness, t)
	p.sides[SideEast].wall = geom.NewBox(x+halfWidth+t, z, t, halfDepth)
	p.sides[SideWest].wall = geom.NewBox(x-halfWidth-t, z, t, halfDepth)
	p.Repair()
	return p
}

// Sides returns the wall geometry, intact or not.
func (p *Pen) Sides() []geom.Obstacle {
	out := make([]geom.Obstacle, len(p.sides))
	for i := range p.sides {
		out[i] = p.sides[i].wall
	}
	return out
}

// SideDestroyed reports whether a side no longer blocks movement.
// Unknown sides count as destroyed.
func (p *Pen) SideDestroyed(side int) bool {
	if side < 0 || side >= len(p.sides) {
		return true
	}
	return p.sides[side].destroyed
}

// ApplyDamage damages one side and reports whether it is destroyed.
func (p *Pen) ApplyDamage(side int, amount float64) bool {
	if side < 0 || side >= len(p.sides) {
		return false
	}
	s := &p.sides[side]
	if s.destroyed || amount <= 0 {
		return s.destroyed
	}

	s.health = max(s.health-amount, 0)
	if s.health == 0 {
		s.destroyed = true
		slog.Info("pen side destroyed", "side", side)
	}
	return s.destroyed
}

// SideHealth returns current health of one side.
func (p *Pen) SideHealth(side int) float64 {
	if side < 0 || side >= len(p.sides) {
		return 0
	}
	return p.sides[side].health
}

// Repair restores every side to full health.
func (p *Pen) Repair() {
	for i := range p.sides {
		p.sides[i].health = p.sideHealth
		p.sides[i].destroyed = p.sideHealth <= 0
	}
}

// Breached reports whether at least one side is destroyed.
func (p *Pen) Breached() bool {
	for i := range p.sides {
		if p.sides[i].destroyed {
			return true
		}
	}
	return false
}

// Center returns the pen center (rally point) at ground level.
func (p *Pen) Center() geom.Vec3 {
	return geom.FromGround(p.center, 0)
}

// Footprint returns the box covering the pen including its walls.
func (p *Pen) Footprint() geom.Box {
	bb := p.sides[SideNorth].wall.Bounds().Merge(p.sides[SideSouth].wall.Bounds())
	return geom.Box{BB: bb}
}

// Inside reports whether p lies within the walls.
func (p *Pen) Inside(pos geom.Vec3) bool {
	bb := cp.NewBBForExtents(p.center, p.halfWidth, p.halfDepth)
	return bb.ContainsVect(pos.Ground())
}
