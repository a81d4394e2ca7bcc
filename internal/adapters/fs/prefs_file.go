package fs

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"

	"github.com/bft-labs/savekeeper/internal/domain"
	"github.com/bft-labs/savekeeper/internal/ports"
)

const prefsFileName = "prefs.json"

// PrefsFileRepository implements ports.PreferencesRepository using a JSON file.
type PrefsFileRepository struct {
	dir string
}

// NewPrefsFileRepository creates a new PrefsFileRepository for the given directory.
func NewPrefsFileRepository(dir string) *PrefsFileRepository {
	return &PrefsFileRepository{dir: dir}
}

// Load retrieves the last saved preferences from disk.
// Returns empty preferences and nil error if no file exists.
func (r *PrefsFileRepository) Load(ctx context.Context) (domain.Preferences, error) {
	data, err := os.ReadFile(r.Path())
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return domain.Preferences{}, nil
		}
		return domain.Preferences{}, err
	}

	var prefs domain.Preferences
	if err := json.Unmarshal(data, &prefs); err != nil {
		return domain.Preferences{}, err
	}
	return prefs, nil
}

// Save persists the preferences atomically (temp file, then rename).
func (r *PrefsFileRepository) Save(ctx context.Context, prefs domain.Preferences) error {
	if err := os.MkdirAll(r.dir, 0o700); err != nil {
		return err
	}

	data, err := json.MarshalIndent(prefs, "", "  ")
	if err != nil {
		return err
	}

	path := r.Path()
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}

// Path returns the full path to the preferences file.
func (r *PrefsFileRepository) Path() string {
	return filepath.Join(r.dir, prefsFileName)
}

var _ ports.PreferencesRepository = (*PrefsFileRepository)(nil)
