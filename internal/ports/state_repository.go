package ports

import (
	"context"

	"github.com/bft-labs/savekeeper/internal/domain"
)

// PreferencesRepository persists the user's last choices between runs.
// Implementations persist to disk (or other storage) atomically.
type PreferencesRepository interface {
	// Load retrieves the last saved preferences.
	// Returns empty preferences and nil error if none exist.
	// Returns an error only for actual read failures.
	Load(ctx context.Context) (domain.Preferences, error)

	// Save persists the preferences atomically.
	// The implementation should use atomic writes (e.g., write to temp file, then rename)
	// to prevent corruption on crash.
	Save(ctx context.Context, prefs domain.Preferences) error
}
