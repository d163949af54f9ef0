package ai

import "time"

// Controller represents a per-enemy behaviour controller driven by the frame loop.
type Controller interface {
	// ID returns the combat entity id the controller drives
	ID() string

	// State returns current behaviour state
	State() State

	// Update advances the controller by one frame
	Update(dt time.Duration)

	// NotifyDeath switches the controller to its terminal state
	NotifyDeath(killerID string)
}
