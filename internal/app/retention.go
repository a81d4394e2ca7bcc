package app

import (
	"errors"
	"regexp"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/bft-labs/savekeeper/internal/domain"
	"github.com/bft-labs/savekeeper/internal/ports"
)

// autosaveName matches names produced by codec.RenderFilename.
var autosaveName = regexp.MustCompile(`^P\d+ \d{4}-\d{2}-\d{2} \d{2}-\d{2}-\d{2} .+ Round \d+\.jkr$`)

// IsAutosaveName reports whether name follows the archive naming convention.
// Only such entries are subject to retention.
func IsAutosaveName(name string) bool {
	return autosaveName.MatchString(name)
}

// SweepResult summarises one retention pass.
type SweepResult struct {
	Deleted []string
	Freed   int64
}

// RetentionEngine prunes archive entries older than a policy allows.
// Failures are logged and never returned.
type RetentionEngine struct {
	store  ports.ArchiveStore
	logger ports.Logger
}

// NewRetentionEngine creates an engine over store.
func NewRetentionEngine(store ports.ArchiveStore, logger ports.Logger) *RetentionEngine {
	return &RetentionEngine{store: store, logger: logger}
}

// Sweep deletes every conventionally named entry whose creation time is more
// than policy.MaxAge() before now.
func (e *RetentionEngine) Sweep(policy domain.RetentionPolicy, now time.Time) SweepResult {
	var res SweepResult

	entries, err := e.store.Entries()
	if err != nil {
		e.logger.Error("retention: list entries failed", ports.Err(err))
		return res
	}

	maxAge := policy.MaxAge()
	for _, ent := range entries {
		if !IsAutosaveName(ent.Name) {
			continue
		}
		if now.Sub(ent.CreatedAt) <= maxAge {
			continue
		}
		if err := e.store.Remove(ent.Name); err != nil {
			if !errors.Is(err, domain.ErrNotFound) {
				e.logger.Error("retention: remove failed",
					ports.String("entry", ent.Name),
					ports.Err(err),
				)
			}
			continue
		}
		res.Deleted = append(res.Deleted, ent.Name)
		res.Freed += ent.Size
	}

	if len(res.Deleted) > 0 {
		e.logger.Info("retention sweep completed",
			ports.Int("deleted", len(res.Deleted)),
			ports.String("freed", humanize.Bytes(uint64(res.Freed))),
			ports.String("policy", policy.String()),
		)
	}
	return res
}
