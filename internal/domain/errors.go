package domain

import "errors"

// Domain errors represent error conditions in the savekeeper domain.
// These errors are returned by the public API and can be checked with errors.Is.
var (
	// ErrAlreadyStarted is returned when Start() is called on a running orchestrator.
	ErrAlreadyStarted = errors.New("savekeeper: already started")

	// ErrNotStarted is returned when an operation needs a running orchestrator.
	ErrNotStarted = errors.New("savekeeper: not started")

	// ErrShutdownTimeout is returned when graceful shutdown times out.
	ErrShutdownTimeout = errors.New("savekeeper: shutdown timeout")

	// ErrInvalidConfig is returned when configuration validation fails.
	ErrInvalidConfig = errors.New("savekeeper: invalid configuration")

	// ErrProcessNotRunning gates autosave while the external application is closed.
	ErrProcessNotRunning = errors.New("external application is not running")

	// ErrSourceMissing is returned when the live save file does not exist.
	ErrSourceMissing = errors.New("save file not found")

	// ErrMalformedSave is returned when the save blob lacks an expected marker.
	ErrMalformedSave = errors.New("malformed save")

	// ErrSelection is returned when an operation needs exactly one selected item.
	ErrSelection = errors.New("invalid selection")

	// ErrNotFound is returned when an archive entry does not exist.
	ErrNotFound = errors.New("archive entry not found")

	// ErrInvalidInterval is returned for a non-positive autosave interval.
	ErrInvalidInterval = errors.New("invalid interval")

	// ErrInvalidProfile is returned for a profile number outside 1..MaxProfile.
	ErrInvalidProfile = errors.New("invalid profile")

	// ErrInvalidRetention is returned for a retention value outside the fixed set.
	ErrInvalidRetention = errors.New("invalid retention policy")

	// ErrFileLocked is returned when a file is held by another process.
	ErrFileLocked = errors.New("file is locked by another process")
)

// Category classifies a status record so that resolution logic can be
// exhaustive instead of matching on message text.
type Category int

const (
	CategoryNone Category = iota
	CategoryNotRunning
	CategorySourceMissing
	CategoryMalformedSave
	CategoryAlreadyExists
	CategorySelection
	CategoryIOFailure
	CategoryInvalidInterval
	CategoryInvalidProfile
)

// String returns a human-readable representation of the category.
func (c Category) String() string {
	switch c {
	case CategoryNone:
		return "None"
	case CategoryNotRunning:
		return "NotRunning"
	case CategorySourceMissing:
		return "SourceMissing"
	case CategoryMalformedSave:
		return "MalformedSave"
	case CategoryAlreadyExists:
		return "AlreadyExists"
	case CategorySelection:
		return "Selection"
	case CategoryIOFailure:
		return "IOFailure"
	case CategoryInvalidInterval:
		return "InvalidInterval"
	case CategoryInvalidProfile:
		return "InvalidProfile"
	default:
		return "Unknown"
	}
}

// CategoryOf maps err onto the taxonomy. Unclassified errors are IOFailure.
func CategoryOf(err error) Category {
	switch {
	case err == nil:
		return CategoryNone
	case errors.Is(err, ErrProcessNotRunning):
		return CategoryNotRunning
	case errors.Is(err, ErrSourceMissing):
		return CategorySourceMissing
	case errors.Is(err, ErrMalformedSave):
		return CategoryMalformedSave
	case errors.Is(err, ErrSelection):
		return CategorySelection
	case errors.Is(err, ErrInvalidInterval):
		return CategoryInvalidInterval
	case errors.Is(err, ErrInvalidProfile):
		return CategoryInvalidProfile
	default:
		return CategoryIOFailure
	}
}
