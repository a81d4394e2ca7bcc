package ports

import "github.com/bft-labs/savekeeper/internal/domain"

// EventSink receives display updates from the orchestrator. Calls are made
// from the orchestrator goroutine and must not block.
type EventSink interface {
	// OnStatus is called whenever the status record is replaced.
	OnStatus(rec domain.StatusRecord)

	// OnAttention is called once when an error is first reported.
	OnAttention(message string)

	// OnCountdown is called with the formatted time to the next autosave.
	// An empty string clears the countdown display.
	OnCountdown(text string)

	// OnArchiveChanged is called with the refreshed entry list.
	OnArchiveChanged(names []string)

	// OnDebug is called for each debug log entry while the debug view is open.
	OnDebug(entry string)
}
