// Package process answers whether a named process is running, using gopsutil.
package process

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/shirou/gopsutil/v4/process"

	"github.com/bft-labs/savekeeper/internal/ports"
)

// Query implements ports.ProcessQuery against the host process table.
type Query struct {
	logger ports.Logger
}

// NewQuery creates a Query. Per-process errors (exited, access denied) are
// logged at debug level and skipped.
func NewQuery(logger ports.Logger) *Query {
	return &Query{logger: logger}
}

// Running reports whether any process's name matches name, ignoring case and
// an executable extension.
func (q *Query) Running(ctx context.Context, name string) (bool, error) {
	procs, err := process.ProcessesWithContext(ctx)
	if err != nil {
		return false, fmt.Errorf("list processes: %w", err)
	}

	want := NormalizeName(name)
	for _, p := range procs {
		if err := ctx.Err(); err != nil {
			return false, err
		}
		pname, err := p.NameWithContext(ctx)
		if err != nil {
			q.logger.Debug("skip process", ports.Int("pid", int(p.Pid)), ports.Err(err))
			continue
		}
		if NormalizeName(pname) == want {
			return true, nil
		}
	}
	return false, nil
}

// NormalizeName lowercases name and strips a trailing executable extension.
func NormalizeName(name string) string {
	name = strings.ToLower(strings.TrimSpace(name))
	switch filepath.Ext(name) {
	case ".exe", ".app":
		name = strings.TrimSuffix(name, filepath.Ext(name))
	}
	return name
}

var _ ports.ProcessQuery = (*Query)(nil)
