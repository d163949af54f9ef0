package ai

import "sync/atomic"

// debugLoggingEnabled guards hot-path debug logs of agents and the roster.
// Checking an atomic is cheaper than building slog attributes every frame.
var debugLoggingEnabled atomic.Bool

// EnableDebugLogging switches per-frame agent debug logs on or off.
// The host calls it once after loading config (log level "debug").
func EnableDebugLogging(enabled bool) {
	debugLoggingEnabled.Store(enabled)
}

// IsDebugEnabled reports whether per-frame debug logs are on:
//
//	if ai.IsDebugEnabled() {
//	    slog.Debug("agent state changed", "agent", id, "to", state)
//	}
func IsDebugEnabled() bool {
	return debugLoggingEnabled.Load()
}
