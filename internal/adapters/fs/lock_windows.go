//go:build windows

package fs

import (
	"errors"
	"fmt"
	"os"

	"golang.org/x/sys/windows"

	"github.com/bft-labs/savekeeper/internal/domain"
)

// openShared opens path for reading under a shared, non-blocking lock.
// A sharing violation on open means the game holds the file exclusively.
func openShared(path string) (*os.File, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, windows.ERROR_SHARING_VIOLATION) {
			return nil, fmt.Errorf("%w: %s", domain.ErrFileLocked, path)
		}
		return nil, err
	}

	ol := new(windows.Overlapped)
	err = windows.LockFileEx(windows.Handle(f.Fd()), windows.LOCKFILE_FAIL_IMMEDIATELY, 0, 1, 0, ol)
	if err != nil {
		f.Close()
		if errors.Is(err, windows.ERROR_LOCK_VIOLATION) {
			return nil, fmt.Errorf("%w: %s", domain.ErrFileLocked, path)
		}
		return nil, fmt.Errorf("lock %s: %w", path, err)
	}
	return f, nil
}

func closeShared(f *os.File) error {
	ol := new(windows.Overlapped)
	windows.UnlockFileEx(windows.Handle(f.Fd()), 0, 1, 0, ol)
	return f.Close()
}
