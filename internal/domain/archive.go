package domain

import "time"

// ArchiveExt is the extension shared by live saves and archive entries.
const ArchiveExt = "jkr"

// MaxProfile is the highest profile slot the external application uses.
const MaxProfile = 10

// EntryInfo describes an archive entry on disk. Entries are immutable
// snapshots; the filename encodes the profile, the save's modification time,
// the deck name and the round.
type EntryInfo struct {
	Name       string
	Size       int64
	CreatedAt  time.Time
	ModifiedAt time.Time
}

// AddResult is the non-error outcome of adding an archive entry.
type AddResult int

const (
	AddCreated AddResult = iota
	AddAlreadyExists
)

// String returns a human-readable representation of the result.
func (r AddResult) String() string {
	switch r {
	case AddCreated:
		return "Created"
	case AddAlreadyExists:
		return "AlreadyExists"
	default:
		return "Unknown"
	}
}

// ValidProfile reports whether n is an existing profile slot.
func ValidProfile(n int) bool {
	return n >= 1 && n <= MaxProfile
}
