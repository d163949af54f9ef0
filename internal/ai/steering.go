package ai

import (
	"log/slog"
	"math"
	"time"

	"github.com/jakecoffman/cp"

	"github.com/udisondev/herdguard/internal/geom"
)

const (
	// maxDeflections steering attempts per side: ±15°, ±30° … ±180°.
	maxDeflections = 12
	deflectionStep = math.Pi / 12
)

// obstacleSnapshot is the per-agent, read-only copy of world geometry,
// already grown by the agent's clearance. Enclosure side health is queried
// live; only the geometry is cached.
type obstacleSnapshot struct {
	static    []geom.Obstacle
	sides     []geom.Obstacle
	enclosure Enclosure
}

// snapshot builds the obstacle snapshot on first use.
func (a *Agent) snapshot() *obstacleSnapshot {
	if a.obstacles != nil {
		return a.obstacles
	}

	snap := &obstacleSnapshot{}
	if a.world != nil {
		for _, o := range a.world.Obstacles() {
			snap.static = append(snap.static, o.Expand(a.cfg.ObstacleClearance))
		}
		if enc := a.world.Enclosure(); enc != nil {
			snap.enclosure = enc
			for _, side := range enc.Sides() {
				snap.sides = append(snap.sides, side.Expand(a.cfg.ObstacleClearance))
			}
		}
	}
	a.obstacles = snap

	if IsDebugEnabled() {
		slog.Debug("agent obstacle snapshot built",
			"agent", a.id,
			"obstacles", len(snap.static),
			"enclosureSides", len(snap.sides))
	}
	return snap
}

// blockedBy tests a body of the given radius moving from -> to. It reports a
// static collision, or the first intact enclosure side hit (-1 if none).
// A blocker the body already overlaps at from only stops steps that move
// closer to its center, so a body pushed into an obstacle can walk out
// but never deeper in.
func (s *obstacleSnapshot) blockedBy(from, to cp.Vector, radius float64) (static bool, side int) {
	cur := geom.Footprint(from, radius)
	next := geom.Footprint(to, radius)

	for _, o := range s.static {
		if stops(o, cur, next, from, to) {
			return true, -1
		}
	}
	for i, o := range s.sides {
		if s.enclosure.SideDestroyed(i) {
			continue
		}
		if stops(o, cur, next, from, to) {
			return false, i
		}
	}
	return false, -1
}

func stops(o geom.Obstacle, cur, next cp.BB, from, to cp.Vector) bool {
	if !o.Intersects(next) {
		return false
	}
	if !o.Intersects(cur) {
		return true
	}
	c := geom.Center(o)
	return c.Distance(to) < c.Distance(from)
}

// steer moves the agent one step towards goal. The step is clamped to the
// remaining distance. A blocked direct step is deflected in 15° increments,
// positive side first; an intact enclosure side in the way is damaged
// instead. Returns false when the agent had to hold position.
func (a *Agent) steer(dt time.Duration, pos, goal geom.Vec3, dist float64) bool {
	step := math.Min(a.cfg.MoveSpeed*dt.Seconds(), dist)
	if step <= 0 {
		return false
	}

	from := pos.Ground()
	dir := goal.Ground().Sub(from).Normalize()
	snap := a.snapshot()

	static, side := snap.blockedBy(from, from.Add(dir.Mult(step)), a.cfg.BodyRadius)
	switch {
	case !static && side < 0:
		a.moveTo(pos, from.Add(dir.Mult(step)))
		return true
	case !static:
		a.breach(snap, side, dt, goal)
		return false
	}

	for i := 1; i <= maxDeflections; i++ {
		for _, sign := range [2]float64{1, -1} {
			d := dir.Rotate(cp.ForAngle(sign * float64(i) * deflectionStep))
			to := from.Add(d.Mult(step))
			if st, sd := snap.blockedBy(from, to, a.cfg.BodyRadius); !st && sd < 0 {
				a.moveTo(pos, to)
				return true
			}
		}
	}

	if IsDebugEnabled() {
		slog.Debug("agent boxed in, holding position",
			"agent", a.id,
			"x", pos.X,
			"z", pos.Z)
	}
	return false
}

func (a *Agent) moveTo(pos geom.Vec3, to cp.Vector) {
	next := geom.FromGround(to, pos.Y)
	a.body.LookAt(next)
	a.body.SetPosition(next)
}

// breach holds position against an intact enclosure side and damages it
// proportionally to elapsed time.
func (a *Agent) breach(snap *obstacleSnapshot, side int, dt time.Duration, goal geom.Vec3) {
	a.body.LookAt(goal)
	if a.cfg.EnclosureDPS <= 0 {
		return
	}
	if snap.enclosure.ApplyDamage(side, a.cfg.EnclosureDPS*dt.Seconds()) {
		slog.Info("enclosure side destroyed",
			"agent", a.id,
			"side", side)
	}
	a.breaching = true
}
