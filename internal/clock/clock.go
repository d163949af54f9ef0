// Package clock provides the session time base. Every component of one play
// session reads the same clock; only the host frame loop advances it.
package clock

import "time"

// Clock reports elapsed session time.
type Clock interface {
	Now() time.Duration
}

// Manual is a Clock advanced explicitly once per frame.
// Not safe for concurrent use: the simulation is single-threaded.
type Manual struct {
	now time.Duration
}

// NewManual creates a Manual clock starting at zero.
func NewManual() *Manual {
	return &Manual{}
}

// Now returns elapsed session time.
func (c *Manual) Now() time.Duration {
	return c.now
}

// Advance moves the clock forward. Negative deltas are ignored.
func (c *Manual) Advance(dt time.Duration) {
	if dt > 0 {
		c.now += dt
	}
}

