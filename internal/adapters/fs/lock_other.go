//go:build !(linux || darwin || freebsd || netbsd || openbsd || dragonfly || windows)

package fs

import "os"

func openShared(path string) (*os.File, error) {
	return os.Open(path)
}

func closeShared(f *os.File) error {
	return f.Close()
}
