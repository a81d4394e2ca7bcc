package app

import (
	"fmt"
	"math"
	"time"

	"github.com/bft-labs/savekeeper/internal/domain"
)

// Scheduler is the autosave state machine. It is Disabled or Enabled, and
// while Enabled it only fires when the external process is live. Pausing
// keeps Enabled so a rising edge resumes it.
type Scheduler struct {
	state domain.ScheduleState
	live  bool
}

// NewScheduler creates a disabled scheduler with the given interval.
func NewScheduler(intervalMinutes float64) *Scheduler {
	return &Scheduler{state: domain.ScheduleState{IntervalMinutes: intervalMinutes}}
}

// State returns a copy of the schedule.
func (s *Scheduler) State() domain.ScheduleState {
	return s.state
}

// Firing reports whether the periodic timer should be running.
func (s *Scheduler) Firing() bool {
	return s.state.Enabled && s.live
}

// SetInterval changes the interval. A firing schedule restarts from now.
func (s *Scheduler) SetInterval(minutes float64, now time.Time) error {
	if !validMinutes(minutes) {
		return fmt.Errorf("%w: %v", domain.ErrInvalidInterval, minutes)
	}
	s.state.IntervalMinutes = minutes
	if s.Firing() {
		s.state.NextFireAt = now.Add(s.state.Interval())
	}
	return nil
}

// Enable turns autosave on. It starts firing immediately if live.
func (s *Scheduler) Enable(now time.Time) error {
	if !validMinutes(s.state.IntervalMinutes) {
		return fmt.Errorf("%w: %v", domain.ErrInvalidInterval, s.state.IntervalMinutes)
	}
	s.state.Enabled = true
	if s.live {
		s.state.NextFireAt = now.Add(s.state.Interval())
	}
	return nil
}

// Disable turns autosave off.
func (s *Scheduler) Disable() {
	s.state.Enabled = false
	s.state.NextFireAt = time.Time{}
}

// SetLive applies a liveness observation. A rising edge while enabled
// schedules the next fire from now; a falling edge pauses.
func (s *Scheduler) SetLive(live bool, now time.Time) {
	wasLive := s.live
	s.live = live
	switch {
	case live && !wasLive && s.state.Enabled:
		s.state.NextFireAt = now.Add(s.state.Interval())
	case !live:
		s.state.NextFireAt = time.Time{}
	}
}

// Due reports whether a fire is owed at now.
func (s *Scheduler) Due(now time.Time) bool {
	return s.Firing() && !now.Before(s.state.NextFireAt)
}

// OnFire recomputes the next fire from the fire instant.
func (s *Scheduler) OnFire(now time.Time) {
	if s.Firing() {
		s.state.NextFireAt = now.Add(s.state.Interval())
	}
}

// Reset restarts the countdown after a manual save.
func (s *Scheduler) Reset(now time.Time) {
	s.OnFire(now)
}

// Until returns the time left before the next fire.
func (s *Scheduler) Until(now time.Time) time.Duration {
	if !s.Firing() {
		return 0
	}
	if d := s.state.NextFireAt.Sub(now); d > 0 {
		return d
	}
	return 0
}

// Countdown returns the formatted time to the next fire, or "" when not firing.
func (s *Scheduler) Countdown(now time.Time) string {
	if !s.Firing() {
		return ""
	}
	return FormatCountdown(s.state.NextFireAt.Sub(now))
}

// FormatCountdown renders d with decreasing unit granularity.
func FormatCountdown(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	secs := int64(d / time.Second)
	h, m, sec := secs/3600, secs%3600/60, secs%60
	switch {
	case h > 0:
		return fmt.Sprintf("%dh %dm %ds", h, m, sec)
	case m > 0:
		return fmt.Sprintf("%dm %ds", m, sec)
	default:
		return fmt.Sprintf("%ds", sec)
	}
}

func validMinutes(m float64) bool {
	return m > 0 && !math.IsInf(m, 0) && !math.IsNaN(m)
}
