package ports

import "context"

// ProcessQuery asks the OS process table about running processes.
// It is a boundary call, kept behind an interface so tests can stub it.
type ProcessQuery interface {
	// Running reports whether a process matching name is running. Matching
	// is case-insensitive and ignores the executable extension.
	Running(ctx context.Context, name string) (bool, error)
}
