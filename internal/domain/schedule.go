package domain

import "time"

// ScheduleState is the autosave schedule. NextFireAt is only meaningful while
// the schedule is enabled and the external process is running.
type ScheduleState struct {
	IntervalMinutes float64
	NextFireAt      time.Time
	Enabled         bool
}

// Interval returns IntervalMinutes as a duration.
func (s ScheduleState) Interval() time.Duration {
	return time.Duration(s.IntervalMinutes * float64(time.Minute))
}
