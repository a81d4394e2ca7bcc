package fs

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	logadapter "github.com/bft-labs/savekeeper/internal/adapters/log"
	"github.com/bft-labs/savekeeper/internal/domain"
)

func newTestStore(t *testing.T) (*ArchiveStore, string) {
	t.Helper()
	root := t.TempDir()
	return NewArchiveStore(filepath.Join(root, "archive"), logadapter.NoopLogger{}), root
}

func writeSource(t *testing.T, dir, content string, mtime time.Time) string {
	t.Helper()
	path := filepath.Join(dir, "save.jkr")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	require.NoError(t, os.Chtimes(path, mtime, mtime))
	return path
}

func TestArchiveStore_ListMissingDir(t *testing.T) {
	store, _ := newTestStore(t)

	names, err := store.List()
	require.NoError(t, err)
	assert.Empty(t, names)
}

func TestArchiveStore_AddPreservesMtime(t *testing.T) {
	store, root := newTestStore(t)
	mtime := time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC)
	src := writeSource(t, root, "first", mtime)

	res, err := store.Add(src, "P1 2024-01-01 10-00-00 Red Deck Round 1.jkr")
	require.NoError(t, err)
	assert.Equal(t, domain.AddCreated, res)

	fi, err := os.Stat(filepath.Join(store.Dir(), "P1 2024-01-01 10-00-00 Red Deck Round 1.jkr"))
	require.NoError(t, err)
	assert.True(t, fi.ModTime().Equal(mtime), "mtime %v", fi.ModTime())
}

func TestArchiveStore_AddIsIdempotent(t *testing.T) {
	store, root := newTestStore(t)
	src := writeSource(t, root, "original", time.Now())
	name := "P1 2024-01-01 10-00-00 Red Deck Round 1.jkr"

	_, err := store.Add(src, name)
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(src, []byte("changed"), 0o644))
	res, err := store.Add(src, name)
	require.NoError(t, err)
	assert.Equal(t, domain.AddAlreadyExists, res)

	data, err := os.ReadFile(filepath.Join(store.Dir(), name))
	require.NoError(t, err)
	assert.Equal(t, "original", string(data))
}

func TestArchiveStore_AddMissingSource(t *testing.T) {
	store, root := newTestStore(t)

	_, err := store.Add(filepath.Join(root, "nope.jkr"), "x.jkr")
	require.ErrorIs(t, err, domain.ErrSourceMissing)
	assert.False(t, store.Exists("x.jkr"))
}

func TestArchiveStore_RejectsPathNames(t *testing.T) {
	store, root := newTestStore(t)
	src := writeSource(t, root, "data", time.Now())

	for _, name := range []string{"", "..", "../escape.jkr", `a\b.jkr`, "sub/x.jkr"} {
		_, err := store.Add(src, name)
		assert.Error(t, err, "name %q", name)
		assert.Error(t, store.Remove(name), "name %q", name)
	}
}

func TestArchiveStore_ListSortedDescending(t *testing.T) {
	store, root := newTestStore(t)
	src := writeSource(t, root, "data", time.Now())

	names := []string{
		"P1 2024-01-01 10-00-00 Red Deck Round 1.jkr",
		"P1 2024-03-01 10-00-00 Red Deck Round 3.jkr",
		"P1 2024-02-01 10-00-00 Red Deck Round 2.jkr",
	}
	for _, n := range names {
		_, err := store.Add(src, n)
		require.NoError(t, err)
	}
	require.NoError(t, os.WriteFile(filepath.Join(store.Dir(), "notes.txt"), nil, 0o644))

	got, err := store.List()
	require.NoError(t, err)
	assert.Equal(t, []string{names[1], names[2], names[0]}, got)
}

func TestArchiveStore_RemoveExactlySelected(t *testing.T) {
	store, root := newTestStore(t)
	src := writeSource(t, root, "data", time.Now())
	for _, n := range []string{"a.jkr", "b.jkr", "c.jkr", "d.jkr"} {
		_, err := store.Add(src, n)
		require.NoError(t, err)
	}

	for _, n := range []string{"b.jkr", "d.jkr"} {
		require.NoError(t, store.Remove(n))
	}

	got, err := store.List()
	require.NoError(t, err)
	assert.Equal(t, []string{"c.jkr", "a.jkr"}, got)
}

func TestArchiveStore_RemoveNotFound(t *testing.T) {
	store, _ := newTestStore(t)

	err := store.Remove("missing.jkr")
	require.ErrorIs(t, err, domain.ErrNotFound)
}

func TestArchiveStore_Restore(t *testing.T) {
	store, root := newTestStore(t)
	src := writeSource(t, root, "snapshot", time.Now())
	_, err := store.Add(src, "snap.jkr")
	require.NoError(t, err)

	live := filepath.Join(root, "Balatro", "1", "save.jkr")
	require.NoError(t, os.MkdirAll(filepath.Dir(live), 0o755))
	require.NoError(t, os.WriteFile(live, []byte("current"), 0o644))

	require.NoError(t, store.Restore("snap.jkr", live))

	data, err := os.ReadFile(live)
	require.NoError(t, err)
	assert.Equal(t, "snapshot", string(data))

	leftovers, err := filepath.Glob(filepath.Join(filepath.Dir(live), "*.tmp"))
	require.NoError(t, err)
	assert.Empty(t, leftovers)
}

func TestArchiveStore_RestoreNotFound(t *testing.T) {
	store, root := newTestStore(t)

	err := store.Restore("missing.jkr", filepath.Join(root, "save.jkr"))
	require.ErrorIs(t, err, domain.ErrNotFound)
}

func TestArchiveStore_Entries(t *testing.T) {
	store, root := newTestStore(t)
	src := writeSource(t, root, "12345", time.Now())
	_, err := store.Add(src, "a.jkr")
	require.NoError(t, err)

	infos, err := store.Entries()
	require.NoError(t, err)
	require.Len(t, infos, 1)
	assert.Equal(t, "a.jkr", infos[0].Name)
	assert.Equal(t, int64(5), infos[0].Size)
	assert.False(t, infos[0].CreatedAt.IsZero())
}
