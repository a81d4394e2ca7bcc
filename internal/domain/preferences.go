package domain

// Preferences are the user's last UI choices, restored on the next start.
type Preferences struct {
	Profile         int     `json:"profile"`
	IntervalMinutes float64 `json:"interval_minutes"`
	RetentionDays   int     `json:"retention_days"`
	Autosave        bool    `json:"autosave"`
	AutoClean       bool    `json:"auto_clean"`
}

// IsEmpty returns true if no preference has been recorded.
func (p Preferences) IsEmpty() bool {
	return p == Preferences{}
}
