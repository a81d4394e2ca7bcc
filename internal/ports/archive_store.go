package ports

import "github.com/bft-labs/savekeeper/internal/domain"

// ArchiveStore is the collection of immutable save snapshots.
type ArchiveStore interface {
	// List returns entry names sorted descending lexicographically.
	List() ([]string, error)

	// Entries returns on-disk details for every entry.
	Entries() ([]domain.EntryInfo, error)

	// Add copies sourcePath into the store as destName. It never overwrites:
	// an existing destName yields AddAlreadyExists and a nil error.
	Add(sourcePath, destName string) (domain.AddResult, error)

	// Remove deletes the named entry. Returns domain.ErrNotFound if absent.
	Remove(name string) error

	// Restore copies the named entry over destPath, replacing it.
	Restore(name, destPath string) error

	// Exists reports whether the named entry is present.
	Exists(name string) bool

	// Dir returns the directory backing the store.
	Dir() string
}
