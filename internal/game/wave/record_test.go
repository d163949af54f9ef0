package wave

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRecord_WaveCycle(t *testing.T) {
	d := Difficulty{MaxPerWave: 5, BaseHealth: 100, HealthIncrement: 0.5, DamageIncrement: 0.25}

	var counts, tiers []int
	for n := 1; n <= 12; n++ {
		rec := NewRecord(n, d)
		counts = append(counts, rec.EnemyCount)
		tiers = append(tiers, rec.Tier)
	}

	assert.Equal(t, []int{1, 2, 3, 4, 5, 1, 2, 3, 4, 5, 1, 2}, counts)
	assert.Equal(t, []int{0, 0, 0, 0, 0, 1, 1, 1, 1, 1, 2, 2}, tiers)
}

func TestNewRecord_Multipliers(t *testing.T) {
	tests := []struct {
		name       string
		wave       int
		wantHealth float64
		wantDamage float64
	}{
		{"first tier", 3, 1, 1},
		{"second tier", 4, 1.5, 1.25},
		{"third tier", 7, 2, 1.5},
	}

	d := Difficulty{MaxPerWave: 3, BaseHealth: 100, BaseDamage: 8, HealthIncrement: 0.5, DamageIncrement: 0.25}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := NewRecord(tt.wave, d)
			assert.InDelta(t, tt.wantHealth, rec.HealthMultiplier, 1e-9)
			assert.InDelta(t, tt.wantDamage, rec.DamageMultiplier, 1e-9)
			assert.InDelta(t, 100*tt.wantHealth, rec.EnemyHealth(d), 1e-9)
			assert.InDelta(t, 8*tt.wantDamage, rec.EnemyDamage(d), 1e-9)
		})
	}
}

func TestNewRecord_MonotonicDifficulty(t *testing.T) {
	rng := rand.New(rand.NewPCG(42, 1024))

	for range 100 {
		d := Difficulty{
			MaxPerWave:      1 + rng.IntN(10),
			HealthIncrement: rng.Float64()*2 - 0.5, // negative increments clamp to 0
			DamageIncrement: rng.Float64()*2 - 0.5,
		}

		prev := NewRecord(1, d)
		for n := 2; n <= 200; n++ {
			rec := NewRecord(n, d)
			require.GreaterOrEqual(t, rec.HealthMultiplier, prev.HealthMultiplier, "difficulty %+v wave %d", d, n)
			require.GreaterOrEqual(t, rec.DamageMultiplier, prev.DamageMultiplier, "difficulty %+v wave %d", d, n)
			require.GreaterOrEqual(t, rec.Tier, prev.Tier)
			prev = rec
		}
	}
}

func TestNewRecord_DegenerateInput(t *testing.T) {
	rec := NewRecord(0, Difficulty{})

	assert.Equal(t, 1, rec.Number)
	assert.Equal(t, 1, rec.EnemyCount)
	assert.Zero(t, rec.Tier)
	assert.InDelta(t, 1, rec.HealthMultiplier, 1e-9)
}
