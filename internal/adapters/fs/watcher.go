package fs

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/bft-labs/savekeeper/internal/domain"
	"github.com/bft-labs/savekeeper/internal/ports"
)

// DefaultDebounce coalesces bursts of events (a copy is create+write+chmod).
const DefaultDebounce = 200 * time.Millisecond

// DirWatcher reports changes to archive entries in a directory. Bursts of
// events are collapsed into one callback after a quiet period.
type DirWatcher struct {
	dir      string
	debounce time.Duration
	onChange func()
	logger   ports.Logger

	mu     sync.Mutex
	timer  *time.Timer
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewDirWatcher creates a watcher for dir. onChange runs on a timer
// goroutine and must not block.
func NewDirWatcher(dir string, debounce time.Duration, onChange func(), logger ports.Logger) *DirWatcher {
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	return &DirWatcher{
		dir:      dir,
		debounce: debounce,
		onChange: onChange,
		logger:   logger,
	}
}

// Start begins watching. The directory is created if missing.
func (w *DirWatcher) Start(ctx context.Context) error {
	if err := os.MkdirAll(w.dir, 0o755); err != nil {
		return err
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	if err := watcher.Add(w.dir); err != nil {
		watcher.Close()
		return err
	}

	watchCtx, cancel := context.WithCancel(ctx)
	w.mu.Lock()
	w.cancel = cancel
	w.mu.Unlock()

	w.wg.Add(1)
	go w.loop(watchCtx, watcher)
	return nil
}

// Stop ends the watch loop and drops any pending callback.
func (w *DirWatcher) Stop() {
	w.mu.Lock()
	if w.cancel != nil {
		w.cancel()
		w.cancel = nil
	}
	w.mu.Unlock()

	w.wg.Wait()

	w.mu.Lock()
	if w.timer != nil {
		w.timer.Stop()
		w.timer = nil
	}
	w.mu.Unlock()
}

func (w *DirWatcher) loop(ctx context.Context, watcher *fsnotify.Watcher) {
	defer w.wg.Done()
	defer watcher.Close()

	suffix := "." + domain.ArchiveExt
	for {
		select {
		case <-ctx.Done():
			return

		case event, ok := <-watcher.Events:
			if !ok {
				return
			}
			if !strings.HasSuffix(filepath.Base(event.Name), suffix) {
				continue
			}
			if event.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Remove|fsnotify.Rename) == 0 {
				continue
			}
			w.schedule(ctx)

		case err, ok := <-watcher.Errors:
			if !ok {
				return
			}
			w.logger.Warn("archive watcher error", ports.Err(err))
		}
	}
}

func (w *DirWatcher) schedule(ctx context.Context) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.timer != nil {
		w.timer.Stop()
	}
	w.timer = time.AfterFunc(w.debounce, func() {
		if ctx.Err() != nil {
			return
		}
		w.onChange()
	})
}

var _ ports.Watcher = (*DirWatcher)(nil)
