package ai

import (
	"io"
	"log/slog"
	"testing"

	"github.com/udisondev/herdguard/internal/geom"
)

// BenchmarkAgentUpdate_DebugDisabled measures one steering tick with the
// debug guard off (production).
func BenchmarkAgentUpdate_DebugDisabled(b *testing.B) {
	slog.SetDefault(slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})))
	EnableDebugLogging(false)

	benchmarkAgentUpdate(b)
}

// BenchmarkAgentUpdate_DebugEnabled measures the same tick with debug logs
// formatted and discarded.
func BenchmarkAgentUpdate_DebugEnabled(b *testing.B) {
	slog.SetDefault(slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	})))
	EnableDebugLogging(true)
	defer EnableDebugLogging(false)

	benchmarkAgentUpdate(b)
}

func benchmarkAgentUpdate(b *testing.B) {
	h := newHarness(geom.V3(0, 0, -5), DefaultConfig())
	h.players.player = newFakeActor("player", geom.V3(0, 0, 25))
	for i := range 20 {
		h.world.obstacles = append(h.world.obstacles, geom.NewCircle(float64(i*3-30), 10, 1))
	}

	b.ResetTimer()
	for range b.N {
		// keep the agent away from the target so every tick steers
		h.body.SetPosition(geom.V3(0, 0, -5))
		h.tick()
	}
}

// BenchmarkIsDebugEnabled measures raw performance of IsDebugEnabled() check.
func BenchmarkIsDebugEnabled(b *testing.B) {
	EnableDebugLogging(false)

	b.ResetTimer()
	for range b.N {
		_ = IsDebugEnabled()
	}
}
