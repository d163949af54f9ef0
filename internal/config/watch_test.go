package config

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type reloadSink struct {
	mu      sync.Mutex
	configs []Session
}

func (r *reloadSink) add(cfg Session) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.configs = append(r.configs, cfg)
}

func (r *reloadSink) last() (Session, int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.configs) == 0 {
		return Session{}, 0
	}
	return r.configs[len(r.configs)-1], len(r.configs)
}

func startWatcher(t *testing.T, path string) *reloadSink {
	t.Helper()

	w, err := NewWatcher(path)
	require.NoError(t, err)
	w.SetDebounce(20 * time.Millisecond)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	sink := &reloadSink{}
	go func() { done <- w.Run(ctx, sink.add) }()

	t.Cleanup(func() {
		cancel()
		select {
		case err := <-done:
			assert.NoError(t, err)
		case <-time.After(2 * time.Second):
			t.Error("watcher did not stop")
		}
	})
	return sink
}

func TestWatcher_ReloadsOnWrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "herdsim.yaml")
	writeFile(t, path, "seed: 1\n")

	sink := startWatcher(t, path)

	writeFile(t, path, "seed: 7\n")

	require.Eventually(t, func() bool {
		cfg, n := sink.last()
		return n > 0 && cfg.Seed == 7
	}, 3*time.Second, 10*time.Millisecond)
}

func TestWatcher_SkipsInvalidConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "herdsim.yaml")
	writeFile(t, path, "seed: 1\n")

	sink := startWatcher(t, path)

	writeFile(t, path, "frame:\n  rate: -5\n")
	time.Sleep(200 * time.Millisecond)
	_, n := sink.last()
	assert.Zero(t, n, "invalid config must not be delivered")

	writeFile(t, path, "seed: 9\n")
	require.Eventually(t, func() bool {
		cfg, n := sink.last()
		return n > 0 && cfg.Seed == 9
	}, 3*time.Second, 10*time.Millisecond)
}

func TestWatcher_KeepsConfigWhenFileMovedAway(t *testing.T) {
	path := filepath.Join(t.TempDir(), "herdsim.yaml")
	writeFile(t, path, "seed: 5\n")

	sink := startWatcher(t, path)

	require.NoError(t, os.Rename(path, path+".bak"))
	time.Sleep(200 * time.Millisecond)
	_, n := sink.last()
	assert.Zero(t, n, "a missing file must not reload defaults")

	writeFile(t, path, "seed: 11\n")
	require.Eventually(t, func() bool {
		cfg, n := sink.last()
		return n > 0 && cfg.Seed == 11
	}, 3*time.Second, 10*time.Millisecond)
}

func TestWatcher_IgnoresOtherFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "herdsim.yaml")
	writeFile(t, path, "seed: 1\n")

	sink := startWatcher(t, path)

	writeFile(t, filepath.Join(dir, "other.yaml"), "seed: 3\n")
	time.Sleep(200 * time.Millisecond)

	_, n := sink.last()
	assert.Zero(t, n)
}

func TestWatcher_CloseIdempotent(t *testing.T) {
	w, err := NewWatcher(filepath.Join(t.TempDir(), "herdsim.yaml"))
	require.NoError(t, err)
	require.NoError(t, w.Close())
	assert.NoError(t, w.Close())
}
