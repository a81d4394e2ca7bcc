package fs

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/google/uuid"

	"github.com/bft-labs/savekeeper/internal/domain"
	"github.com/bft-labs/savekeeper/internal/ports"
)

// ArchiveStore implements ports.ArchiveStore over a single directory of
// .jkr files. Entries are never modified after creation.
type ArchiveStore struct {
	dir    string
	logger ports.Logger
}

// NewArchiveStore creates an ArchiveStore rooted at dir. The directory is
// created lazily on the first Add.
func NewArchiveStore(dir string, logger ports.Logger) *ArchiveStore {
	return &ArchiveStore{dir: dir, logger: logger}
}

// Dir returns the directory backing the store.
func (s *ArchiveStore) Dir() string {
	return s.dir
}

// List returns entry names sorted descending. A missing directory is an
// empty store.
func (s *ArchiveStore) List() ([]string, error) {
	dirents, err := os.ReadDir(s.dir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("read archive dir: %w", err)
	}

	suffix := "." + domain.ArchiveExt
	names := make([]string, 0, len(dirents))
	for _, de := range dirents {
		if !de.Type().IsRegular() || !strings.HasSuffix(de.Name(), suffix) {
			continue
		}
		names = append(names, de.Name())
	}
	sort.Sort(sort.Reverse(sort.StringSlice(names)))
	return names, nil
}

// Entries returns size and timestamps for every entry, in List order.
// Entries that vanish between listing and stat are skipped.
func (s *ArchiveStore) Entries() ([]domain.EntryInfo, error) {
	names, err := s.List()
	if err != nil {
		return nil, err
	}

	infos := make([]domain.EntryInfo, 0, len(names))
	for _, name := range names {
		path := filepath.Join(s.dir, name)
		fi, err := os.Stat(path)
		if err != nil {
			if errors.Is(err, os.ErrNotExist) {
				continue
			}
			return nil, fmt.Errorf("stat %s: %w", name, err)
		}
		infos = append(infos, domain.EntryInfo{
			Name:       name,
			Size:       fi.Size(),
			CreatedAt:  birthTime(path, fi),
			ModifiedAt: fi.ModTime(),
		})
	}
	return infos, nil
}

// Add copies sourcePath into the store as destName. The copy keeps the
// source modification time. An existing destName is left untouched.
func (s *ArchiveStore) Add(sourcePath, destName string) (domain.AddResult, error) {
	if err := validName(destName); err != nil {
		return domain.AddCreated, err
	}

	src, err := openShared(sourcePath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return domain.AddCreated, fmt.Errorf("%w: %s", domain.ErrSourceMissing, sourcePath)
		}
		return domain.AddCreated, err
	}
	defer closeShared(src)

	srcInfo, err := src.Stat()
	if err != nil {
		return domain.AddCreated, fmt.Errorf("stat source: %w", err)
	}

	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return domain.AddCreated, fmt.Errorf("create archive dir: %w", err)
	}

	destPath := filepath.Join(s.dir, destName)
	dst, err := os.OpenFile(destPath, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		if errors.Is(err, os.ErrExist) {
			return domain.AddAlreadyExists, nil
		}
		return domain.AddCreated, fmt.Errorf("create entry: %w", err)
	}

	if _, err := io.Copy(dst, src); err != nil {
		dst.Close()
		os.Remove(destPath)
		return domain.AddCreated, fmt.Errorf("copy entry: %w", err)
	}
	if err := dst.Close(); err != nil {
		os.Remove(destPath)
		return domain.AddCreated, fmt.Errorf("close entry: %w", err)
	}

	mtime := srcInfo.ModTime()
	if err := os.Chtimes(destPath, mtime, mtime); err != nil {
		s.logger.Warn("failed to preserve entry mtime",
			ports.String("entry", destName),
			ports.Err(err),
		)
	}

	return domain.AddCreated, nil
}

// Remove deletes the named entry.
func (s *ArchiveStore) Remove(name string) error {
	if err := validName(name); err != nil {
		return err
	}
	if err := os.Remove(filepath.Join(s.dir, name)); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("%w: %s", domain.ErrNotFound, name)
		}
		return err
	}
	return nil
}

// Restore replaces destPath with a copy of the named entry. The copy is
// written beside destPath and renamed into place.
func (s *ArchiveStore) Restore(name, destPath string) (err error) {
	if err := validName(name); err != nil {
		return err
	}

	src, err := openShared(filepath.Join(s.dir, name))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("%w: %s", domain.ErrNotFound, name)
		}
		return err
	}
	defer closeShared(src)

	if err := os.MkdirAll(filepath.Dir(destPath), 0o755); err != nil {
		return fmt.Errorf("create save dir: %w", err)
	}

	tmp := destPath + "." + uuid.NewString() + ".tmp"
	dst, err := os.OpenFile(tmp, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	defer func() {
		if err != nil {
			os.Remove(tmp)
		}
	}()

	if _, err = io.Copy(dst, src); err != nil {
		dst.Close()
		return fmt.Errorf("copy entry: %w", err)
	}
	if err = dst.Sync(); err != nil {
		dst.Close()
		return fmt.Errorf("sync temp file: %w", err)
	}
	if err = dst.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}
	if err = os.Rename(tmp, destPath); err != nil {
		return fmt.Errorf("replace save: %w", err)
	}
	return nil
}

// Exists reports whether the named entry is present.
func (s *ArchiveStore) Exists(name string) bool {
	if validName(name) != nil {
		return false
	}
	_, err := os.Stat(filepath.Join(s.dir, name))
	return err == nil
}

// validName rejects names that would escape the archive directory.
func validName(name string) error {
	if name == "" || name == "." || name == ".." ||
		strings.ContainsAny(name, `/\`) || filepath.Base(name) != name {
		return fmt.Errorf("invalid entry name %q", name)
	}
	return nil
}

var _ ports.ArchiveStore = (*ArchiveStore)(nil)
