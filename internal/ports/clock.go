package ports

import "time"

// Clock is the time source for the orchestrator loop. Inject a custom
// implementation for deterministic tests without real timers.
type Clock interface {
	Now() time.Time

	// NewTicker returns a tick channel and its stop function.
	NewTicker(d time.Duration) (tick <-chan time.Time, stop func())

	// NewTimer returns a channel that fires once after d and its stop function.
	NewTimer(d time.Duration) (fire <-chan time.Time, stop func())
}
