package main

import (
	"context"
	"log/slog"
	"time"

	"github.com/udisondev/herdguard/internal/config"
	"github.com/udisondev/herdguard/internal/encounter"
)

const statusEvery = 10 * time.Second

// frameLoop drives one session. Reloaded configs arrive on reloads and are
// applied between frames so the simulation stays single-threaded.
type frameLoop struct {
	session  *encounter.Session
	pilot    *pilot
	outcome  *outcome
	step     time.Duration
	duration time.Duration
	reloads  <-chan config.Session

	nextStatus time.Duration
}

// runRealtime paces frames with a ticker and feeds the measured delta.
func (l *frameLoop) runRealtime(ctx context.Context) error {
	ticker := time.NewTicker(l.step)
	defer ticker.Stop()

	last := time.Now()
	for {
		select {
		case <-ctx.Done():
			return nil
		case cfg := <-l.reloads:
			l.session.ApplyConfig(cfg)
		case now := <-ticker.C:
			dt := now.Sub(last)
			last = now
			if l.frame(dt) {
				return nil
			}
		}
	}
}

// runFast runs fixed steps back to back.
func (l *frameLoop) runFast(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return nil
		case cfg := <-l.reloads:
			l.session.ApplyConfig(cfg)
		default:
		}
		if l.frame(l.step) {
			return nil
		}
	}
}

// frame runs host input then the session, and reports whether the game
// is over.
func (l *frameLoop) frame(dt time.Duration) bool {
	l.pilot.step(dt)
	l.session.Update(dt)

	now := l.session.Now()
	if now >= l.nextStatus {
		l.nextStatus = now + statusEvery
		snap := l.session.Director().Snapshot()
		slog.Info("status",
			"time", now.Truncate(time.Second),
			"state", snap.State,
			"wave", snap.Wave.Number,
			"active", snap.Active,
			"killed", snap.Killed,
			"herd", l.session.World().Herd().AliveCount(),
			"playerHealth", l.session.Player().Vitality().Current())
	}

	if l.outcome.over(l.session) {
		return true
	}
	return l.duration > 0 && now >= l.duration
}
