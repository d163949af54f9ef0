package model

import "time"

// Vitality: запись здоровья боевой сущности.
// Текущее HP никогда не бывает отрицательным и не превышает максимум.
// Мутируется только через боевой API (combat.Resolver).
//
// Not safe for concurrent use: owned by the single-threaded simulation.
type Vitality struct {
	current float64
	maximum float64

	// invulnerability: окно неуязвимости после успешного попадания.
	invulnerability time.Duration
	lastHit         time.Duration
	wasHit          bool
}

// NewVitality создаёт Vitality с полным здоровьем.
func NewVitality(maximum float64, invulnerability time.Duration) *Vitality {
	if maximum < 0 {
		maximum = 0
	}
	return &Vitality{
		current:         maximum,
		maximum:         maximum,
		invulnerability: max(invulnerability, 0),
	}
}

// Current возвращает текущее HP.
func (v *Vitality) Current() float64 {
	return v.current
}

// Maximum возвращает максимальное HP.
func (v *Vitality) Maximum() float64 {
	return v.maximum
}

// InvulnerabilityWindow returns the post-hit immunity window.
func (v *Vitality) InvulnerabilityWindow() time.Duration {
	return v.invulnerability
}

// LastHit returns the session time of the last accepted hit.
// ok is false if the entity was never hit.
func (v *Vitality) LastHit() (at time.Duration, ok bool) {
	return v.lastHit, v.wasHit
}

// IsDead возвращает true если HP == 0.
func (v *Vitality) IsDead() bool {
	return v.current <= 0
}

// Percentage returns current/maximum in [0, 1].
func (v *Vitality) Percentage() float64 {
	if v.maximum <= 0 {
		return 0
	}
	return v.current / v.maximum
}

// IsInvulnerable reports whether a hit arriving at now would be rejected by
// the invulnerability window.
func (v *Vitality) IsInvulnerable(now time.Duration) bool {
	return v.wasHit && now-v.lastHit < v.invulnerability
}

// TakeDamage уменьшает HP (clamp до 0) и запоминает время попадания.
// Returns false (no state change) if the entity is already dead, the amount
// is not positive, or the hit lands inside the invulnerability window.
func (v *Vitality) TakeDamage(amount float64, now time.Duration) bool {
	if amount <= 0 || v.IsDead() || v.IsInvulnerable(now) {
		return false
	}

	v.current -= amount
	if v.current < 0 {
		v.current = 0
	}
	v.lastHit = now
	v.wasHit = true
	return true
}

// Heal восстанавливает HP, не превышая максимум. Dead entities stay dead.
func (v *Vitality) Heal(amount float64) {
	if amount <= 0 || v.IsDead() {
		return
	}
	v.current = min(v.current+amount, v.maximum)
}

// SetMaximum устанавливает максимальное HP и обрезает текущее если нужно.
func (v *Vitality) SetMaximum(maximum float64) {
	v.maximum = max(maximum, 0)
	if v.current > v.maximum {
		v.current = v.maximum
	}
}

// Deplete drops HP to zero regardless of the invulnerability window.
func (v *Vitality) Deplete() {
	v.current = 0
}
