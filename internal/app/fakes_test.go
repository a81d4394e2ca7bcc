package app

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/klauspost/compress/flate"
	"github.com/stretchr/testify/require"

	"github.com/bft-labs/savekeeper/internal/domain"
	"github.com/bft-labs/savekeeper/internal/ports"
)

// mockLogger implements ports.Logger for testing.
type mockLogger struct{}

func (mockLogger) Debug(msg string, fields ...ports.Field) {}
func (mockLogger) Info(msg string, fields ...ports.Field)  {}
func (mockLogger) Warn(msg string, fields ...ports.Field)  {}
func (mockLogger) Error(msg string, fields ...ports.Field) {}

// fakeClock is a manually advanced clock. Advance delivers a tick on every
// timer and ticker whose deadline has passed.
type fakeClock struct {
	mu     sync.Mutex
	now    time.Time
	timers []*fakeTimer
}

type fakeTimer struct {
	d        time.Duration
	at       time.Time
	periodic bool
	stopped  bool
	fired    bool
	c        chan time.Time
}

func newFakeClock(now time.Time) *fakeClock {
	return &fakeClock{now: now}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

// Advance moves the clock forward and returns the timers that ticked. A
// ticker that missed several periods ticks once, like time.Ticker.
func (c *fakeClock) Advance(d time.Duration) []*fakeTimer {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)

	var ticked []*fakeTimer
	for _, t := range c.timers {
		if t.stopped || t.fired || t.at.After(c.now) {
			continue
		}
		select {
		case t.c <- c.now:
		default:
		}
		ticked = append(ticked, t)
		if !t.periodic {
			t.fired = true
			continue
		}
		for !t.at.After(c.now) {
			t.at = t.at.Add(t.d)
		}
	}
	return ticked
}

// drained reports whether every ticked timer was received or stopped.
func (c *fakeClock) drained(ticked []*fakeTimer) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, t := range ticked {
		if !t.stopped && len(t.c) > 0 {
			return false
		}
	}
	return true
}

func (c *fakeClock) NewTicker(d time.Duration) (<-chan time.Time, func()) {
	return c.add(d, true)
}

func (c *fakeClock) NewTimer(d time.Duration) (<-chan time.Time, func()) {
	return c.add(d, false)
}

func (c *fakeClock) add(d time.Duration, periodic bool) (<-chan time.Time, func()) {
	c.mu.Lock()
	defer c.mu.Unlock()
	t := &fakeTimer{d: d, at: c.now.Add(d), periodic: periodic, c: make(chan time.Time, 1)}
	c.timers = append(c.timers, t)
	return t.c, func() {
		c.mu.Lock()
		defer c.mu.Unlock()
		t.stopped = true
	}
}

// lastTimer returns the most recently created one-shot timer.
func (c *fakeClock) lastTimer() *fakeTimer {
	c.mu.Lock()
	defer c.mu.Unlock()
	for i := len(c.timers) - 1; i >= 0; i-- {
		if !c.timers[i].periodic {
			return c.timers[i]
		}
	}
	return nil
}

type fakeProcess struct {
	mu      sync.Mutex
	running bool
	err     error
}

func (p *fakeProcess) Running(ctx context.Context, name string) (bool, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.running, p.err
}

func (p *fakeProcess) set(running bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.running = running
}

type sourceFile struct {
	data  []byte
	mtime time.Time
}

type fakeSource struct {
	mu    sync.Mutex
	files map[string]sourceFile
}

func newFakeSource() *fakeSource {
	return &fakeSource{files: make(map[string]sourceFile)}
}

func (s *fakeSource) put(path string, data []byte, mtime time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.files[path] = sourceFile{data: data, mtime: mtime}
}

func (s *fakeSource) get(path string) (sourceFile, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	f, ok := s.files[path]
	return f, ok
}

func (s *fakeSource) Read(path string) ([]byte, time.Time, error) {
	f, ok := s.get(path)
	if !ok {
		return nil, time.Time{}, fmt.Errorf("%w: %s", domain.ErrSourceMissing, path)
	}
	return f.data, f.mtime, nil
}

func (s *fakeSource) Exists(path string) (bool, error) {
	_, ok := s.get(path)
	return ok, nil
}

type storeEntry struct {
	data    []byte
	created time.Time
}

// fakeStore is an in-memory archive that copies from a fakeSource.
type fakeStore struct {
	mu        sync.Mutex
	src       *fakeSource
	clock     *fakeClock
	entries   map[string]storeEntry
	removeErr error
}

func newFakeStore(src *fakeSource, clock *fakeClock) *fakeStore {
	return &fakeStore{src: src, clock: clock, entries: make(map[string]storeEntry)}
}

func (s *fakeStore) List() ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	names := make([]string, 0, len(s.entries))
	for n := range s.entries {
		names = append(names, n)
	}
	sort.Sort(sort.Reverse(sort.StringSlice(names)))
	return names, nil
}

func (s *fakeStore) Entries() ([]domain.EntryInfo, error) {
	names, _ := s.List()
	s.mu.Lock()
	defer s.mu.Unlock()
	infos := make([]domain.EntryInfo, 0, len(names))
	for _, n := range names {
		e := s.entries[n]
		infos = append(infos, domain.EntryInfo{Name: n, Size: int64(len(e.data)), CreatedAt: e.created, ModifiedAt: e.created})
	}
	return infos, nil
}

func (s *fakeStore) Add(sourcePath, destName string) (domain.AddResult, error) {
	f, ok := s.src.get(sourcePath)
	if !ok {
		return domain.AddCreated, domain.ErrSourceMissing
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.entries[destName]; exists {
		return domain.AddAlreadyExists, nil
	}
	s.entries[destName] = storeEntry{data: append([]byte(nil), f.data...), created: s.clock.Now()}
	return domain.AddCreated, nil
}

func (s *fakeStore) put(name string, data []byte, created time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[name] = storeEntry{data: data, created: created}
}

func (s *fakeStore) Remove(name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.removeErr != nil {
		return s.removeErr
	}
	if _, ok := s.entries[name]; !ok {
		return fmt.Errorf("%w: %s", domain.ErrNotFound, name)
	}
	delete(s.entries, name)
	return nil
}

func (s *fakeStore) Restore(name, destPath string) error {
	s.mu.Lock()
	e, ok := s.entries[name]
	s.mu.Unlock()
	if !ok {
		return domain.ErrNotFound
	}
	s.src.put(destPath, append([]byte(nil), e.data...), s.clock.Now())
	return nil
}

func (s *fakeStore) Exists(name string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.entries[name]
	return ok
}

func (s *fakeStore) Dir() string { return "/archive" }

type fakeSink struct {
	mu        sync.Mutex
	statuses  []domain.StatusRecord
	attention []string
	countdown []string
	lists     [][]string
	debug     []string
}

func (s *fakeSink) OnStatus(rec domain.StatusRecord) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.statuses = append(s.statuses, rec)
}

func (s *fakeSink) OnAttention(msg string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.attention = append(s.attention, msg)
}

func (s *fakeSink) OnCountdown(text string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.countdown = append(s.countdown, text)
}

func (s *fakeSink) OnArchiveChanged(names []string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lists = append(s.lists, names)
}

func (s *fakeSink) OnDebug(entry string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.debug = append(s.debug, entry)
}

func (s *fakeSink) lastCountdown() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.countdown) == 0 {
		return ""
	}
	return s.countdown[len(s.countdown)-1]
}

func (s *fakeSink) attentionCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.attention)
}

type fakePrefs struct {
	mu    sync.Mutex
	saved []domain.Preferences
	err   error
}

func (p *fakePrefs) Load(ctx context.Context) (domain.Preferences, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if len(p.saved) == 0 {
		return domain.Preferences{}, nil
	}
	return p.saved[len(p.saved)-1], nil
}

func (p *fakePrefs) Save(ctx context.Context, prefs domain.Preferences) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.err != nil {
		return p.err
	}
	p.saved = append(p.saved, prefs)
	return nil
}

var errDisk = errors.New("disk on fire")

// saveBlob builds a compressed save containing the deck and round markers.
func saveBlob(t *testing.T, deck string, round int) []byte {
	t.Helper()
	text := fmt.Sprintf(`return {["GAME"]={["round"]=%d,},["BACK"]={["name"]="%s",},}`, round, deck)
	var buf bytes.Buffer
	w, err := flate.NewWriter(&buf, flate.BestSpeed)
	require.NoError(t, err)
	_, err = w.Write([]byte(text))
	require.NoError(t, err)
	require.NoError(t, w.Close())
	return buf.Bytes()
}

var (
	_ ports.Clock                 = (*fakeClock)(nil)
	_ ports.ProcessQuery          = (*fakeProcess)(nil)
	_ ports.SaveSource            = (*fakeSource)(nil)
	_ ports.ArchiveStore          = (*fakeStore)(nil)
	_ ports.EventSink             = (*fakeSink)(nil)
	_ ports.PreferencesRepository = (*fakePrefs)(nil)
)

func (s *fakeSink) debugLines() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.debug...)
}
