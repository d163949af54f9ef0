package world

import (
	"testing"
)

// BenchmarkWorld_Obstacles measures the per-snapshot obstacle list build.
// Agents rebuild it lazily once per steering pass.
func BenchmarkWorld_Obstacles(b *testing.B) {
	w := New(DefaultConfig())

	b.ReportAllocs()
	for range b.N {
		_ = w.Obstacles()
	}
}

// BenchmarkWorld_Protectables measures the herd handle list agents scan
// during target acquisition.
func BenchmarkWorld_Protectables(b *testing.B) {
	cfg := DefaultConfig()
	cfg.HerdSize = 24
	w := New(cfg)

	b.ReportAllocs()
	for range b.N {
		_ = w.Protectables()
	}
}
