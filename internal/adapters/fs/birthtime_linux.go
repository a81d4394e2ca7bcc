//go:build linux

package fs

import (
	"os"
	"time"

	"golang.org/x/sys/unix"
)

// birthTime returns the file creation time when the filesystem records it.
func birthTime(path string, fi os.FileInfo) time.Time {
	var stx unix.Statx_t
	err := unix.Statx(unix.AT_FDCWD, path, unix.AT_STATX_SYNC_AS_STAT, unix.STATX_BTIME, &stx)
	if err == nil && stx.Mask&unix.STATX_BTIME != 0 {
		return time.Unix(stx.Btime.Sec, int64(stx.Btime.Nsec))
	}
	return fi.ModTime()
}
