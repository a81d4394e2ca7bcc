package app

import (
	"context"
	"time"

	"github.com/bft-labs/savekeeper/internal/domain"
	"github.com/bft-labs/savekeeper/internal/ports"
)

// Monitor tracks whether the external process is running. Query failures
// count as not running.
type Monitor struct {
	query  ports.ProcessQuery
	name   string
	logger ports.Logger

	prev  bool
	state domain.LivenessState
}

// NewMonitor creates a Monitor for the process called name. The initial
// state is not running, so the first successful poll is a rising edge.
func NewMonitor(query ports.ProcessQuery, name string, logger ports.Logger) *Monitor {
	return &Monitor{query: query, name: name, logger: logger}
}

// Poll queries the process table and returns the resulting edge.
func (m *Monitor) Poll(ctx context.Context, now time.Time) domain.Transition {
	running, err := m.query.Running(ctx, m.name)
	if err != nil {
		m.logger.Debug("process query failed", ports.String("process", m.name), ports.Err(err))
		running = false
	}
	return m.observe(running, now)
}

func (m *Monitor) observe(running bool, now time.Time) domain.Transition {
	m.prev = m.state.Running
	m.state = domain.LivenessState{Running: running, ObservedAt: now}

	switch {
	case running && !m.prev:
		return domain.TransitionRising
	case !running && m.prev:
		return domain.TransitionFalling
	default:
		return domain.TransitionNone
	}
}

// Running returns the last observation.
func (m *Monitor) Running() bool {
	return m.state.Running
}

// Previous returns the observation before the last one.
func (m *Monitor) Previous() bool {
	return m.prev
}

// State returns the last liveness observation.
func (m *Monitor) State() domain.LivenessState {
	return m.state
}

// Name returns the watched process name.
func (m *Monitor) Name() string {
	return m.name
}
