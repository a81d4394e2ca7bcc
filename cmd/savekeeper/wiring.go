package main

import (
	"github.com/bft-labs/savekeeper/internal/adapters/fs"
	logAdapter "github.com/bft-labs/savekeeper/internal/adapters/log"
	"github.com/bft-labs/savekeeper/internal/adapters/process"
	"github.com/bft-labs/savekeeper/internal/app"
	"github.com/bft-labs/savekeeper/internal/ports"
)

// build wires the orchestrator from the loaded config. sink may be nil.
func (c *cli) build(sink ports.EventSink, watch bool) (*app.Orchestrator, *fs.ArchiveStore, error) {
	logger := logAdapter.NewZerologAdapterWithLogger(c.log)
	store := fs.NewArchiveStore(c.cfg.ArchiveDir, logger)

	opts := app.Options{
		ProcessName: c.cfg.ProcessName,
		SavePath:    c.cfg.SavePath,
		Store:       store,
		Source:      fs.NewLiveSave(),
		Process:     process.NewQuery(logger),
		Prefs:       fs.NewPrefsFileRepository(c.cfg.StateDir),
		Sink:        sink,
		Logger:      logger,
		Observer:    stateLogger{logger: logger},
		Intervals: app.Intervals{
			Liveness:      c.cfg.LivenessInterval,
			Countdown:     c.cfg.CountdownInterval,
			StatusTimeout: c.cfg.StatusTimeout,
			Resolve:       c.cfg.ResolveInterval,
			Retention:     c.cfg.RetentionInterval,
			Debug:         c.cfg.DebugInterval,
		},
		Initial: c.cfg.Preferences(),
	}
	if watch {
		opts.NewWatcher = func(onChange func()) ports.Watcher {
			return fs.NewDirWatcher(c.cfg.ArchiveDir, fs.DefaultDebounce, onChange, logger)
		}
	}

	o, err := app.NewOrchestrator(opts)
	if err != nil {
		return nil, nil, err
	}
	return o, store, nil
}

type stateLogger struct {
	logger ports.Logger
}

func (s stateLogger) OnStateChange(previous, current app.State, reason string) {
	s.logger.Debug("orchestrator state",
		ports.String("from", previous.String()),
		ports.String("to", current.String()),
		ports.String("reason", reason),
	)
}
