package domain

import "time"

// ReadyMessage is the idle status line.
const ReadyMessage = "Ready"

// ResolutionCheck reports whether the condition behind an error has cleared.
type ResolutionCheck func() (bool, error)

// StatusRecord is the single user-facing status line. Replacing it discards
// the previous record.
type StatusRecord struct {
	Message   string
	IsError   bool
	Category  Category
	CreatedAt time.Time

	// Resolution, when set, clears the error once it returns true.
	Resolution ResolutionCheck `json:"-"`
}

// Ready returns the idle status record.
func Ready(now time.Time) StatusRecord {
	return StatusRecord{Message: ReadyMessage, CreatedAt: now}
}

// IsReady reports whether r is the idle record.
func (r StatusRecord) IsReady() bool {
	return !r.IsError && r.Message == ReadyMessage
}
