package world

import (
	"log/slog"

	"github.com/udisondev/herdguard/internal/ai"
	"github.com/udisondev/herdguard/internal/game/wave"
	"github.com/udisondev/herdguard/internal/geom"
)

// Structure is a named building footprint.
type Structure struct {
	Name string
	Box  geom.Box
}

// World is the static map of one session: pen, herd, rocks and buildings,
// plus the optional player. It implements ai.ObstacleProvider,
// ai.PlayerProvider and ai.ProtectableProvider.
type World struct {
	ids        *IDGenerator
	pen        *Pen
	herd       *Herd
	rocks      []geom.Obstacle
	structures []Structure
	players    playerSlot
	cfg        Config
}

var (
	_ ai.ObstacleProvider    = (*World)(nil)
	_ ai.PlayerProvider      = (*World)(nil)
	_ ai.ProtectableProvider = (*World)(nil)
	_ ai.Enclosure           = (*Pen)(nil)
)

// New builds the world described by cfg. The player is not created until
// SpawnPlayer is called.
func New(cfg Config) *World {
	w := &World{
		ids: NewIDGenerator(),
		cfg: cfg,
	}

	pc := cfg.Pen
	w.pen = NewPen(pc.Center.X, pc.Center.Z, pc.HalfWidth, pc.HalfDepth, pc.Thickness, pc.SideHealth)
	w.herd = NewHerd(w.pen, w.ids, cfg.HerdSize, cfg.HitsToKill)

	for _, r := range cfg.Rocks {
		w.rocks = append(w.rocks, geom.NewCircle(r.Position.X, r.Position.Z, r.Radius))
	}
	for _, s := range cfg.Structures {
		w.structures = append(w.structures, Structure{
			Name: s.Name,
			Box:  geom.NewBox(s.Position.X, s.Position.Z, s.HalfWidth, s.HalfDepth),
		})
	}

	slog.Info("world built",
		"animals", len(w.herd.animals),
		"rocks", len(w.rocks),
		"structures", len(w.structures))
	return w
}

// SpawnPlayer creates the player at the configured spawn point, replacing
// any previous one.
func (w *World) SpawnPlayer() *Player {
	pc := w.cfg.Player
	p := NewPlayer(w.ids.NextPlayerID(), pc.Spawn, pc.Health, pc.Invulnerability)
	w.players.player = p
	return p
}

// RemovePlayer drops the player handle. Agents lose it as a target on
// their next update.
func (w *World) RemovePlayer() {
	w.players.player = nil
}

// Player implements ai.PlayerProvider.
func (w *World) Player() (ai.Actor, bool) {
	return w.players.Player()
}

// PlayerCharacter returns the concrete player, or nil.
func (w *World) PlayerCharacter() *Player {
	return w.players.player
}

// Protectables implements ai.ProtectableProvider.
func (w *World) Protectables() []ai.Protectable {
	return w.herd.Protectables()
}

// Obstacles returns rocks and building footprints. Pen walls are reported
// separately through Enclosure.
func (w *World) Obstacles() []geom.Obstacle {
	out := make([]geom.Obstacle, 0, len(w.rocks)+len(w.structures))
	out = append(out, w.rocks...)
	for _, s := range w.structures {
		out = append(out, s.Box)
	}
	return out
}

// Enclosure returns the pen.
func (w *World) Enclosure() ai.Enclosure {
	return w.pen
}

// RallyPoint returns the pen center.
func (w *World) RallyPoint() (geom.Vec3, bool) {
	return w.pen.Center(), true
}

// Layout returns the geometry spawn placement works against.
func (w *World) Layout() wave.Layout {
	l := wave.Layout{
		Protect:   w.pen.Footprint(),
		Obstacles: append([]geom.Obstacle(nil), w.rocks...),
	}
	for _, s := range w.structures {
		l.Structures = append(l.Structures, s.Box)
	}
	return l
}

// Pen returns the livestock enclosure.
func (w *World) Pen() *Pen { return w.pen }

// Herd returns the livestock.
func (w *World) Herd() *Herd { return w.herd }

// Structures returns the named buildings.
func (w *World) Structures() []Structure { return w.structures }

// IDs returns the session id generator.
func (w *World) IDs() *IDGenerator { return w.ids }

// Config returns the config the world was built from.
func (w *World) Config() Config { return w.cfg }
