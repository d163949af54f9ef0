package combat

import (
	"fmt"

	"github.com/udisondev/herdguard/internal/model"
)

// validateRegistration checks registration arguments before the entity is
// added. Returns error if registration should not proceed.
//
// Checks:
//   - id is not empty
//   - id is not already registered
//   - transform and vitality are present
//   - hurt radius is not negative
func (r *Resolver) validateRegistration(id string, transform model.Transform, vitality *model.Vitality, hurtRadius float64) error {
	if id == "" {
		return ErrEmptyID
	}
	if _, exists := r.entities[id]; exists {
		return fmt.Errorf("registering %q: %w", id, ErrDuplicateID)
	}
	if vitality == nil {
		return fmt.Errorf("registering %q: %w", id, ErrNilVitality)
	}
	if transform == nil {
		return fmt.Errorf("registering %q: %w", id, ErrNilTransform)
	}
	if hurtRadius < 0 {
		return fmt.Errorf("registering %q: negative hurt radius %v", id, hurtRadius)
	}
	return nil
}
