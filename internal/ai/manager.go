package ai

import (
	"fmt"
	"log/slog"
	"slices"
	"time"
)

// Roster updates registered controllers in registration (spawn) order.
// Not safe for concurrent use.
type Roster struct {
	controllers map[string]Controller
	order       []Controller
}

// NewRoster creates an empty roster.
func NewRoster() *Roster {
	return &Roster{
		controllers: make(map[string]Controller),
	}
}

// Register adds a controller. Fails if its id is already registered.
func (r *Roster) Register(c Controller) error {
	if _, ok := r.controllers[c.ID()]; ok {
		return fmt.Errorf("registering controller %q: already registered", c.ID())
	}
	r.controllers[c.ID()] = c
	r.order = append(r.order, c)

	slog.Debug("AI controller registered",
		"agent", c.ID(),
		"state", c.State())
	return nil
}

// Unregister removes the controller. Returns false if it was not registered.
func (r *Roster) Unregister(id string) bool {
	c, ok := r.controllers[id]
	if !ok {
		return false
	}
	delete(r.controllers, id)
	r.order = slices.DeleteFunc(r.order, func(o Controller) bool { return o == c })

	slog.Debug("AI controller unregistered", "agent", id)
	return true
}

// Update ticks every controller once, in registration order. Controllers
// registered during the sweep are ticked from the next frame.
func (r *Roster) Update(dt time.Duration) {
	for _, c := range slices.Clone(r.order) {
		if _, ok := r.controllers[c.ID()]; !ok {
			continue
		}
		c.Update(dt)
	}

	if len(r.order) > 0 && IsDebugEnabled() {
		slog.Debug("AI tick completed", "controllers", len(r.order))
	}
}

// Count returns number of registered controllers.
func (r *Roster) Count() int {
	return len(r.order)
}

// Get returns the controller registered under id.
func (r *Roster) Get(id string) (Controller, error) {
	c, ok := r.controllers[id]
	if !ok {
		return nil, fmt.Errorf("controller not found for agent %q", id)
	}
	return c, nil
}

// All returns controllers in registration order.
func (r *Roster) All() []Controller {
	return slices.Clone(r.order)
}
