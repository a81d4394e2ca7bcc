package app

import (
	"time"

	"github.com/bft-labs/savekeeper/internal/domain"
	"github.com/bft-labs/savekeeper/internal/ports"
)

// RealClock implements ports.Clock with the time package.
type RealClock struct{}

func (RealClock) Now() time.Time { return time.Now() }

func (RealClock) NewTicker(d time.Duration) (<-chan time.Time, func()) {
	t := time.NewTicker(d)
	return t.C, t.Stop
}

func (RealClock) NewTimer(d time.Duration) (<-chan time.Time, func()) {
	t := time.NewTimer(d)
	return t.C, func() { t.Stop() }
}

type nopLogger struct{}

func (nopLogger) Debug(string, ...ports.Field) {}
func (nopLogger) Info(string, ...ports.Field)  {}
func (nopLogger) Warn(string, ...ports.Field)  {}
func (nopLogger) Error(string, ...ports.Field) {}

type nopSink struct{}

func (nopSink) OnStatus(domain.StatusRecord) {}
func (nopSink) OnAttention(string)           {}
func (nopSink) OnCountdown(string)           {}
func (nopSink) OnArchiveChanged([]string)    {}
func (nopSink) OnDebug(string)               {}

var (
	_ ports.Clock     = RealClock{}
	_ ports.Logger    = nopLogger{}
	_ ports.EventSink = nopSink{}
)
