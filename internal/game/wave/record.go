package wave

// Difficulty controls wave sizes and per-tier scaling.
type Difficulty struct {
	// MaxPerWave is the cycle length: wave sizes run 1..MaxPerWave.
	MaxPerWave      int     `yaml:"max_per_wave"`
	BaseHealth      float64 `yaml:"base_health"`
	BaseDamage      float64 `yaml:"base_damage"`
	HealthIncrement float64 `yaml:"health_increment"`
	DamageIncrement float64 `yaml:"damage_increment"`
}

// Record describes one wave. Multipliers are computed once per wave and
// applied to every enemy spawned in it.
type Record struct {
	Number           int
	EnemyCount       int
	Tier             int
	HealthMultiplier float64
	DamageMultiplier float64
}

// NewRecord computes the record of wave n (1-based).
func NewRecord(n int, d Difficulty) Record {
	maxPer := max(d.MaxPerWave, 1)
	n = max(n, 1)
	tier := (n - 1) / maxPer

	return Record{
		Number:           n,
		EnemyCount:       (n-1)%maxPer + 1,
		Tier:             tier,
		HealthMultiplier: 1 + float64(tier)*max(d.HealthIncrement, 0),
		DamageMultiplier: 1 + float64(tier)*max(d.DamageIncrement, 0),
	}
}

// EnemyHealth returns the scaled max health of one enemy.
func (r Record) EnemyHealth(d Difficulty) float64 {
	return d.BaseHealth * r.HealthMultiplier
}

// EnemyDamage returns the scaled per-hit damage of one enemy.
func (r Record) EnemyDamage(d Difficulty) float64 {
	return d.BaseDamage * r.DamageMultiplier
}
