package ports

import (
	"context"
	"time"
)

// SaveSource reads the external application's live save file.
type SaveSource interface {
	// Read returns the file contents and its modification time. A missing
	// file yields domain.ErrSourceMissing; a held lock yields domain.ErrFileLocked.
	Read(path string) ([]byte, time.Time, error)

	// Exists reports whether path is present.
	Exists(path string) (bool, error)
}

// Watcher observes the archive directory for out-of-band changes.
type Watcher interface {
	Start(ctx context.Context) error
	Stop()
}
