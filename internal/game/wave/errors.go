package wave

import "errors"

var (
	// ErrAlreadyStarted is returned by Start when the director is not idle.
	ErrAlreadyStarted = errors.New("wave director already started")
	// ErrNoPlacement is returned when neither the ring nor fallbacks are configured.
	ErrNoPlacement = errors.New("no spawn placement configured")
)
