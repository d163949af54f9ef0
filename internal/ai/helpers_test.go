package ai

import (
	"errors"
	"time"

	"github.com/udisondev/herdguard/internal/clock"
	"github.com/udisondev/herdguard/internal/game/combat"
	"github.com/udisondev/herdguard/internal/geom"
	"github.com/udisondev/herdguard/internal/model"
)

const frame = 16 * time.Millisecond

type fakeActor struct {
	id    string
	pos   geom.Vec3
	alive bool
	hits  int
}

func newFakeActor(id string, pos geom.Vec3) *fakeActor {
	return &fakeActor{id: id, pos: pos, alive: true, hits: 3}
}

func (f *fakeActor) ID() string          { return f.id }
func (f *fakeActor) Position() geom.Vec3 { return f.pos }
func (f *fakeActor) Alive() bool         { return f.alive }

func (f *fakeActor) Hit(n int) bool {
	if !f.alive {
		return false
	}
	f.hits -= n
	if f.hits <= 0 {
		f.alive = false
		return true
	}
	return false
}

type fakePlayers struct {
	player *fakeActor
}

func (f *fakePlayers) Player() (Actor, bool) {
	if f.player == nil {
		return nil, false
	}
	return f.player, true
}

type panicPlayers struct{}

func (panicPlayers) Player() (Actor, bool) { panic("player lookup exploded") }

type fakeHerd struct {
	animals []*fakeActor
}

func (f *fakeHerd) Protectables() []Protectable {
	out := make([]Protectable, 0, len(f.animals))
	for _, a := range f.animals {
		out = append(out, a)
	}
	return out
}

type fakeEnclosure struct {
	sides  []geom.Obstacle
	health []float64
}

func (f *fakeEnclosure) Sides() []geom.Obstacle      { return f.sides }
func (f *fakeEnclosure) SideDestroyed(side int) bool { return f.health[side] <= 0 }

func (f *fakeEnclosure) ApplyDamage(side int, amount float64) bool {
	f.health[side] -= amount
	return f.health[side] <= 0
}

type fakeWorld struct {
	obstacles []geom.Obstacle
	enclosure *fakeEnclosure
	rally     *geom.Vec3
}

func (f *fakeWorld) Obstacles() []geom.Obstacle { return f.obstacles }

func (f *fakeWorld) Enclosure() Enclosure {
	if f.enclosure == nil {
		return nil
	}
	return f.enclosure
}

func (f *fakeWorld) RallyPoint() (geom.Vec3, bool) {
	if f.rally == nil {
		return geom.Vec3{}, false
	}
	return *f.rally, true
}

type recordingCues struct {
	attempts []Cue
	played   []Cue
	failing  map[Cue]bool
	stops    int
}

func (r *recordingCues) Play(_ string, cue Cue) error {
	r.attempts = append(r.attempts, cue)
	if r.failing[cue] {
		return errors.New("clip not found")
	}
	r.played = append(r.played, cue)
	return nil
}

func (r *recordingCues) StopLoop(string) { r.stops++ }

type spySpawner struct {
	specs []combat.HitboxSpec
}

func (s *spySpawner) SpawnHitbox(_ string, spec combat.HitboxSpec) (*combat.Hitbox, error) {
	s.specs = append(s.specs, spec)
	return nil, nil
}

type harness struct {
	clk     *clock.Manual
	agent   *Agent
	body    *model.Body
	players *fakePlayers
	herd    *fakeHerd
	world   *fakeWorld
	cues    *recordingCues
	spawner *spySpawner
}

func newHarness(pos geom.Vec3, cfg Config) *harness {
	h := &harness{
		clk:     clock.NewManual(),
		body:    model.NewBody(pos),
		players: &fakePlayers{},
		herd:    &fakeHerd{},
		world:   &fakeWorld{},
		cues:    &recordingCues{failing: map[Cue]bool{}},
		spawner: &spySpawner{},
	}
	h.agent = NewAgent("wolf-1", h.body, cfg, Deps{
		Clock:   h.clk,
		Combat:  h.spawner,
		Players: h.players,
		Herd:    h.herd,
		World:   h.world,
		Cues:    h.cues,
	})
	return h
}

// tick advances the clock and updates the agent, the way the frame loop does.
func (h *harness) tick() {
	h.clk.Advance(frame)
	h.agent.Update(frame)
}

// runUntil ticks until session time reaches at.
func (h *harness) runUntil(at time.Duration) {
	for h.clk.Now() < at {
		h.tick()
	}
}
