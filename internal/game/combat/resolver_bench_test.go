package combat

import (
	"fmt"
	"math"
	"testing"
	"time"

	"github.com/udisondev/herdguard/internal/clock"
	"github.com/udisondev/herdguard/internal/geom"
	"github.com/udisondev/herdguard/internal/model"
)

// --- helpers ---

// benchArena registers n enemies on a circle around a single player and
// returns the resolver with its clock.
func benchArena(b *testing.B, n int) (*Resolver, *clock.Manual) {
	b.Helper()
	clk := clock.NewManual()
	r := NewResolver(clk)

	player := model.NewBody(geom.V3(0, 0, 0))
	if err := r.Register("player-1", player, model.NewVitality(math.MaxFloat64, 0), model.TeamPlayer, 0.5, nil); err != nil {
		b.Fatal(err)
	}

	for i := range n {
		angle := 2 * math.Pi * float64(i) / float64(n)
		body := model.NewBody(geom.V3(10*math.Sin(angle), 0, 10*math.Cos(angle)))
		body.LookAt(geom.V3(0, 0, 0))
		id := fmt.Sprintf("enemy-%d", i+1)
		if err := r.Register(id, body, model.NewVitality(100, 0), model.TeamEnemy, 0.5, nil); err != nil {
			b.Fatal(err)
		}
	}
	return r, clk
}

var benchSpec = HitboxSpec{
	Damage:   1,
	Range:    1,
	Radius:   0.6,
	Duration: 150 * time.Millisecond,
}

// BenchmarkResolver_UpdateIdle measures a tick with no active hitboxes.
// Expected: stance cleanup only.
func BenchmarkResolver_UpdateIdle(b *testing.B) {
	r, clk := benchArena(b, 50)

	b.ReportAllocs()
	b.ResetTimer()
	for range b.N {
		clk.Advance(16 * time.Millisecond)
		r.Update(16 * time.Millisecond)
	}
}

// BenchmarkResolver_UpdateMissingHitboxes measures the sweep cost when every
// enemy swings at nothing (worst case: no hitbox is consumed early).
func BenchmarkResolver_UpdateMissingHitboxes(b *testing.B) {
	for _, n := range []int{10, 50, 200} {
		b.Run(fmt.Sprintf("enemies=%d", n), func(b *testing.B) {
			r, clk := benchArena(b, n)

			b.ReportAllocs()
			b.ResetTimer()
			for range b.N {
				b.StopTimer()
				for i := range n {
					_, _ = r.SpawnHitbox(fmt.Sprintf("enemy-%d", i+1), benchSpec)
				}
				b.StartTimer()

				clk.Advance(16 * time.Millisecond)
				r.Update(16 * time.Millisecond)
			}
		})
	}
}

// BenchmarkResolver_ApplyDamage measures the direct damage path.
func BenchmarkResolver_ApplyDamage(b *testing.B) {
	r, _ := benchArena(b, 1)

	b.ReportAllocs()
	b.ResetTimer()
	for range b.N {
		_, _ = r.ApplyDamage("player-1", "enemy-1", 1)
	}
}

// BenchmarkSphereIntersects measures the hit test itself.
// Expected: ~2-5ns (no allocations).
func BenchmarkSphereIntersects(b *testing.B) {
	a := geom.Sphere{Center: geom.V3(0, 0, 0), Radius: 0.6}
	c := geom.Sphere{Center: geom.V3(0.5, 0.3, 0.9), Radius: 0.5}

	b.ReportAllocs()
	for range b.N {
		_ = a.Intersects(c)
	}
}
