//go:build !(linux || darwin || windows)

package fs

import (
	"os"
	"time"
)

func birthTime(_ string, fi os.FileInfo) time.Time {
	return fi.ModTime()
}
