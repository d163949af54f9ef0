package ai

// State is the behaviour state of a hostile agent.
type State int32

const (
	// StateIdle - no valid target, standing still
	StateIdle State = iota
	// StateSeeking - moving towards the current target
	StateSeeking
	// StateAttacking - target within attack range (swinging or waiting for cooldown)
	StateAttacking
	// StateRecovering - timed lock-out after an attack animation completes
	StateRecovering
	// StateDead - terminal, entered once on death notification
	StateDead
)

// String returns human-readable state name
func (s State) String() string {
	switch s {
	case StateIdle:
		return "IDLE"
	case StateSeeking:
		return "SEEKING"
	case StateAttacking:
		return "ATTACKING"
	case StateRecovering:
		return "RECOVERING"
	case StateDead:
		return "DEAD"
	default:
		return "UNKNOWN"
	}
}
