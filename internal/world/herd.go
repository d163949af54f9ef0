package world

import (
	"log/slog"
	"math"

	"github.com/udisondev/herdguard/internal/ai"
	"github.com/udisondev/herdguard/internal/geom"
)

// Animal is protectable livestock. It dies after a fixed number of hits
// instead of tracking health.
type Animal struct {
	id      string
	pos     geom.Vec3
	hits    int
	maxHits int
}

// NewAnimal creates a live animal that survives hitsToKill-1 hits.
func NewAnimal(id string, pos geom.Vec3, hitsToKill int) *Animal {
	hitsToKill = max(hitsToKill, 1)
	return &Animal{id: id, pos: pos, hits: hitsToKill, maxHits: hitsToKill}
}

func (a *Animal) ID() string { return a.id }

func (a *Animal) Position() geom.Vec3 { return a.pos }

func (a *Animal) Alive() bool { return a.hits > 0 }

// HitsLeft returns how many hits the animal still survives plus one.
func (a *Animal) HitsLeft() int { return a.hits }

// SetPosition moves the animal (wandering is host-driven).
func (a *Animal) SetPosition(p geom.Vec3) { a.pos = p }

// Hit takes n hits off the counter and reports whether the animal died.
func (a *Animal) Hit(n int) bool {
	if a.hits <= 0 || n <= 0 {
		return false
	}
	a.hits = max(a.hits-n, 0)
	return a.hits == 0
}

// Herd is the set of animals of one session. It implements
// ai.ProtectableProvider.
type Herd struct {
	animals []*Animal
	onDeath func(animalID string)
}

// NewHerd places count animals on a grid inside the pen.
func NewHerd(pen *Pen, ids *IDGenerator, count, hitsToKill int) *Herd {
	h := &Herd{}
	if count <= 0 {
		return h
	}

	cols := int(math.Ceil(math.Sqrt(float64(count))))
	rows := (count + cols - 1) / cols
	c := pen.Center()
	dx := 2 * pen.halfWidth / float64(cols+1)
	dz := 2 * pen.halfDepth / float64(rows+1)

	for i := range count {
		col, row := i%cols, i/cols
		pos := geom.V3(
			c.X-pen.halfWidth+dx*float64(col+1),
			0,
			c.Z-pen.halfDepth+dz*float64(row+1),
		)
		h.animals = append(h.animals, NewAnimal(ids.NextAnimalID(), pos, hitsToKill))
	}
	return h
}

// SetOnDeath sets the callback fired when an animal dies.
func (h *Herd) SetOnDeath(fn func(animalID string)) {
	h.onDeath = fn
}

// Protectables returns every animal, alive or not.
func (h *Herd) Protectables() []ai.Protectable {
	out := make([]ai.Protectable, 0, len(h.animals))
	for _, a := range h.animals {
		out = append(out, &trackedAnimal{Animal: a, herd: h})
	}
	return out
}

// Animals returns the underlying animals.
func (h *Herd) Animals() []*Animal {
	return h.animals
}

// AliveCount returns number of live animals.
func (h *Herd) AliveCount() int {
	n := 0
	for _, a := range h.animals {
		if a.Alive() {
			n++
		}
	}
	return n
}

// trackedAnimal reports deaths back to the herd.
type trackedAnimal struct {
	*Animal
	herd *Herd
}

func (t *trackedAnimal) Hit(n int) bool {
	if !t.Animal.Hit(n) {
		return false
	}
	slog.Info("animal killed",
		"animal", t.id,
		"aliveLeft", t.herd.AliveCount())
	if t.herd.onDeath != nil {
		t.herd.onDeath(t.id)
	}
	return true
}
