package testutil

import (
	"math/rand/v2"
	"time"

	"github.com/udisondev/herdguard/internal/geom"
)

// Frame is the fixed simulation step used by package tests (60 fps rounded
// down to whole milliseconds).
const Frame = 16 * time.Millisecond

// NewRand returns a deterministic generator for seed.
func NewRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0xda3e39cb94b95bdb))
}

// RandomObstacles scatters n round obstacles over a square of the given
// half extent, skipping the area within keepOut of the origin.
func RandomObstacles(rng *rand.Rand, n int, halfExtent, keepOut float64) []geom.Obstacle {
	out := make([]geom.Obstacle, 0, n)
	for len(out) < n {
		x := (rng.Float64()*2 - 1) * halfExtent
		z := (rng.Float64()*2 - 1) * halfExtent
		if x*x+z*z < keepOut*keepOut {
			continue
		}
		out = append(out, geom.NewCircle(x, z, 0.5+rng.Float64()))
	}
	return out
}
