package ai

import "sync/atomic"

// debugLoggingEnabled controls debug logging for the agent subsystem.
// Package-level flag so hot per-tick paths skip log-level checks.
// Set via EnableDebugLogging() during initialization from config.LogLevel.
var debugLoggingEnabled atomic.Bool

// EnableDebugLogging enables or disables debug logging for agents.
// Call once during initialization (e.g., from main after parsing config).
func EnableDebugLogging(enabled bool) {
	debugLoggingEnabled.Store(enabled)
}

// IsDebugEnabled returns true if debug logging is enabled.
// Use this to guard expensive debug log calls:
//
//	if ai.IsDebugEnabled() {
//	    slog.Debug("agent replanned", "path", len(path))
//	}
func IsDebugEnabled() bool {
	return debugLoggingEnabled.Load()
}
