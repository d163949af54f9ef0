package geom

import (
	"math"

	"github.com/jakecoffman/cp"
)

// Obstacle is a static piece of world geometry abstracted to the ground plane.
// Providers map their native bounds (rocks, buildings, pen walls) into one of
// the two variants once per snapshot rebuild.
type Obstacle interface {
	// Bounds returns the axis-aligned ground-plane box enclosing the obstacle.
	Bounds() cp.BB
	// Expand returns a copy grown outward by margin on every side.
	Expand(margin float64) Obstacle
	// Intersects reports whether the obstacle overlaps bb.
	Intersects(bb cp.BB) bool
	// ContainsPoint reports whether p lies inside the obstacle.
	ContainsPoint(p cp.Vector) bool
}

// Circle is a round obstacle (rock, tree, well).
type Circle struct {
	Center cp.Vector
	Radius float64
}

// NewCircle creates a Circle obstacle.
func NewCircle(x, z, radius float64) Circle {
	return Circle{Center: cp.Vector{X: x, Y: z}, Radius: radius}
}

func (c Circle) Bounds() cp.BB {
	return cp.NewBBForCircle(c.Center, c.Radius)
}

func (c Circle) Expand(margin float64) Obstacle {
	return Circle{Center: c.Center, Radius: math.Max(0, c.Radius+margin)}
}

// Intersects uses the closest point of bb to the circle center.
func (c Circle) Intersects(bb cp.BB) bool {
	closest := clampToBB(bb, c.Center)
	return closest.DistanceSq(c.Center) <= c.Radius*c.Radius
}

func (c Circle) ContainsPoint(p cp.Vector) bool {
	return p.DistanceSq(c.Center) <= c.Radius*c.Radius
}

// Box is an axis-aligned rectangular obstacle (building, wall segment).
type Box struct {
	BB cp.BB
}

// NewBox creates a Box from its center and half extents.
func NewBox(x, z, halfWidth, halfDepth float64) Box {
	return Box{BB: cp.NewBBForExtents(cp.Vector{X: x, Y: z}, halfWidth, halfDepth)}
}

func (b Box) Bounds() cp.BB {
	return b.BB
}

func (b Box) Expand(margin float64) Obstacle {
	return Box{BB: ExpandBB(b.BB, margin)}
}

func (b Box) Intersects(bb cp.BB) bool {
	return b.BB.Intersects(bb)
}

func (b Box) ContainsPoint(p cp.Vector) bool {
	return b.BB.ContainsVect(p)
}

// ExpandBB grows bb by margin on every side. Negative margins shrink it but
// never past its center.
func ExpandBB(bb cp.BB, margin float64) cp.BB {
	c := bb.Center()
	l := math.Min(bb.L-margin, c.X)
	r := math.Max(bb.R+margin, c.X)
	b := math.Min(bb.B-margin, c.Y)
	t := math.Max(bb.T+margin, c.Y)
	return cp.BB{L: l, B: b, R: r, T: t}
}

// BoundingRadius returns the radius of the smallest circle centered on the
// obstacle bounds center that contains the whole obstacle.
func BoundingRadius(o Obstacle) float64 {
	switch v := o.(type) {
	case Circle:
		return v.Radius
	default:
		bb := o.Bounds()
		hw := (bb.R - bb.L) / 2
		hh := (bb.T - bb.B) / 2
		return math.Hypot(hw, hh)
	}
}

// Center returns the ground-plane center of the obstacle bounds.
func Center(o Obstacle) cp.Vector {
	if c, ok := o.(Circle); ok {
		return c.Center
	}
	return o.Bounds().Center()
}

func clampToBB(bb cp.BB, p cp.Vector) cp.Vector {
	return cp.Vector{
		X: math.Min(math.Max(p.X, bb.L), bb.R),
		Y: math.Min(math.Max(p.Y, bb.B), bb.T),
	}
}
