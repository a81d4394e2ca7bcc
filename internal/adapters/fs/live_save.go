package fs

import (
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/bft-labs/savekeeper/internal/domain"
	"github.com/bft-labs/savekeeper/internal/ports"
)

// maxSaveBytes bounds the live save read.
const maxSaveBytes = 32 << 20

// LiveSave implements ports.SaveSource over the local filesystem.
type LiveSave struct{}

// NewLiveSave creates a LiveSave.
func NewLiveSave() *LiveSave {
	return &LiveSave{}
}

// Read returns the file contents and modification time. The file is read
// under a shared non-blocking lock.
func (LiveSave) Read(path string) ([]byte, time.Time, error) {
	f, err := openShared(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, time.Time{}, fmt.Errorf("%w: %s", domain.ErrSourceMissing, path)
		}
		return nil, time.Time{}, err
	}
	defer closeShared(f)

	fi, err := f.Stat()
	if err != nil {
		return nil, time.Time{}, fmt.Errorf("stat save: %w", err)
	}
	data, err := io.ReadAll(io.LimitReader(f, maxSaveBytes))
	if err != nil {
		return nil, time.Time{}, fmt.Errorf("read save: %w", err)
	}
	return data, fi.ModTime(), nil
}

// Exists reports whether path is present.
func (LiveSave) Exists(path string) (bool, error) {
	_, err := os.Stat(path)
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, os.ErrNotExist):
		return false, nil
	default:
		return false, err
	}
}

var _ ports.SaveSource = LiveSave{}
