// Package geom holds the spatial primitives shared by combat, steering and
// spawn placement: 3D positions with a Y-up axis and the XZ ground plane
// projected onto chipmunk vectors and bounding boxes.
package geom

import (
	"math"

	"github.com/jakecoffman/cp"
)

// Vec3 is a world-space position. Y is up; X/Z span the ground plane.
type Vec3 struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
	Z float64 `yaml:"z"`
}

// V3 creates a Vec3.
func V3(x, y, z float64) Vec3 {
	return Vec3{X: x, Y: y, Z: z}
}

// Add returns v + o.
func (v Vec3) Add(o Vec3) Vec3 {
	return Vec3{X: v.X + o.X, Y: v.Y + o.Y, Z: v.Z + o.Z}
}

// Sub returns v - o.
func (v Vec3) Sub(o Vec3) Vec3 {
	return Vec3{X: v.X - o.X, Y: v.Y - o.Y, Z: v.Z - o.Z}
}

// Scale returns v * s.
func (v Vec3) Scale(s float64) Vec3 {
	return Vec3{X: v.X * s, Y: v.Y * s, Z: v.Z * s}
}

// Length returns the euclidean length.
func (v Vec3) Length() float64 {
	return math.Sqrt(v.X*v.X + v.Y*v.Y + v.Z*v.Z)
}

// DistanceSquared returns squared 3D distance (no sqrt).
func (v Vec3) DistanceSquared(o Vec3) float64 {
	dx := v.X - o.X
	dy := v.Y - o.Y
	dz := v.Z - o.Z
	return dx*dx + dy*dy + dz*dz
}

// Distance returns 3D distance.
func (v Vec3) Distance(o Vec3) float64 {
	return math.Sqrt(v.DistanceSquared(o))
}

// Ground projects v onto the ground plane.
func (v Vec3) Ground() cp.Vector {
	return cp.Vector{X: v.X, Y: v.Z}
}

// GroundDistance returns the distance between v and o ignoring height.
func (v Vec3) GroundDistance(o Vec3) float64 {
	return v.Ground().Distance(o.Ground())
}

// FromGround lifts a ground-plane point back into world space at height y.
func FromGround(p cp.Vector, y float64) Vec3 {
	return Vec3{X: p.X, Y: y, Z: p.Y}
}

// Heading returns the yaw (radians) that faces from v towards o on the ground plane.
// Yaw 0 faces +Z.
func (v Vec3) Heading(o Vec3) float64 {
	return math.Atan2(o.X-v.X, o.Z-v.Z)
}

// Forward returns the unit ground-plane direction for a yaw.
func Forward(yaw float64) Vec3 {
	return Vec3{X: math.Sin(yaw), Z: math.Cos(yaw)}
}

// Sphere is a bounding sphere.
type Sphere struct {
	Center Vec3
	Radius float64
}

// Intersects reports whether two spheres overlap (touching counts).
func (s Sphere) Intersects(o Sphere) bool {
	r := s.Radius + o.Radius
	return s.Center.DistanceSquared(o.Center) <= r*r
}

// Footprint returns the ground-plane box around a body of the given radius at p.
func Footprint(p cp.Vector, radius float64) cp.BB {
	return cp.NewBBForCircle(p, radius)
}
