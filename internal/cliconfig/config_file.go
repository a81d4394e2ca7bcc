package cliconfig

import (
	"os"
	"path/filepath"
	"time"

	toml "github.com/pelletier/go-toml/v2"
)

// FileConfig mirrors Config but uses strings for durations to make TOML friendly.
type FileConfig struct {
	AppDataRoot       string  `toml:"app_data_root"`
	ExternalApp       string  `toml:"external_app"`
	ProcessName       string  `toml:"process_name"`
	ArchiveDir        string  `toml:"archive_dir"`
	StateDir          string  `toml:"state_dir"`
	Profile           int     `toml:"profile"`
	IntervalMinutes   float64 `toml:"interval_minutes"`
	Autosave          *bool   `toml:"autosave"`
	AutoClean         *bool   `toml:"auto_clean"`
	RetentionDays     int     `toml:"retention_days"`
	LivenessInterval  string  `toml:"liveness_interval"`
	CountdownInterval string  `toml:"countdown_interval"`
	StatusTimeout     string  `toml:"status_timeout"`
	ResolveInterval   string  `toml:"resolve_interval"`
	RetentionInterval string  `toml:"retention_interval"`
	DebugInterval     string  `toml:"debug_interval"`
	LogLevel          string  `toml:"log_level"`
}

// LoadFileConfig reads and parses a TOML config file from the given path.
func LoadFileConfig(path string) (FileConfig, error) {
	var fc FileConfig
	b, err := os.ReadFile(path)
	if err != nil {
		return fc, err
	}
	if err := toml.Unmarshal(b, &fc); err != nil {
		return fc, err
	}
	return fc, nil
}

// DefaultConfigPath returns ~/.savekeeper/config.toml, or "" without a home directory.
func DefaultConfigPath() string {
	if h, err := os.UserHomeDir(); err == nil {
		return filepath.Join(h, ".savekeeper", "config.toml")
	}
	return ""
}

// ApplyFileConfig applies configuration from a file to the Config struct.
// It respects flags that have been explicitly set (changed map).
func ApplyFileConfig(cfg *Config, fc FileConfig, changed map[string]bool) error {
	s := newConfigSetter(changed)

	s.setString("app-data-root", fc.AppDataRoot, &cfg.AppDataRoot)
	s.setString("external-app", fc.ExternalApp, &cfg.ExternalApp)
	s.setString("process-name", fc.ProcessName, &cfg.ProcessName)
	s.setString("archive-dir", fc.ArchiveDir, &cfg.ArchiveDir)
	s.setString("state-dir", fc.StateDir, &cfg.StateDir)
	s.setString("log-level", fc.LogLevel, &cfg.LogLevel)

	s.setInt("profile", fc.Profile, &cfg.Profile)
	s.setInt("retention", fc.RetentionDays, &cfg.RetentionDays)
	s.setFloat("interval", fc.IntervalMinutes, &cfg.IntervalMinutes)

	s.setBool("autosave", fc.Autosave, &cfg.Autosave)
	s.setBool("auto-clean", fc.AutoClean, &cfg.AutoClean)

	for _, d := range []struct {
		flag  string
		value string
		dst   *time.Duration
	}{
		{"liveness-interval", fc.LivenessInterval, &cfg.LivenessInterval},
		{"countdown-interval", fc.CountdownInterval, &cfg.CountdownInterval},
		{"status-timeout", fc.StatusTimeout, &cfg.StatusTimeout},
		{"resolve-interval", fc.ResolveInterval, &cfg.ResolveInterval},
		{"retention-interval", fc.RetentionInterval, &cfg.RetentionInterval},
		{"debug-interval", fc.DebugInterval, &cfg.DebugInterval},
	} {
		if err := s.setDuration(d.flag, d.value, d.dst); err != nil {
			return err
		}
	}

	return nil
}

// FileExists checks if a file exists at the given path.
func FileExists(p string) bool {
	_, err := os.Stat(p)
	return err == nil
}
