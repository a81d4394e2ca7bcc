package cliconfig

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/rs/zerolog"

	"github.com/bft-labs/savekeeper/internal/domain"
)

const (
	// DefaultExternalApp is the directory under the app data root that holds
	// the game's profile folders.
	DefaultExternalApp = "Balatro"

	// DefaultProcessName is the game's process name.
	DefaultProcessName = "Balatro"

	// ArchiveDirName is the archive directory created under the app data root.
	ArchiveDirName = "savekeeper"

	// SaveFileName is the live save inside a profile folder.
	SaveFileName = "save.jkr"
)

// Config holds CLI configuration for savekeeper.
type Config struct {
	AppDataRoot string
	ExternalApp string
	ProcessName string
	ArchiveDir  string
	StateDir    string

	Profile         int
	IntervalMinutes float64
	Autosave        bool
	AutoClean       bool
	RetentionDays   int

	LivenessInterval  time.Duration
	CountdownInterval time.Duration
	StatusTimeout     time.Duration
	ResolveInterval   time.Duration
	RetentionInterval time.Duration
	DebugInterval     time.Duration

	LogLevel string
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() Config {
	return Config{
		ExternalApp:       DefaultExternalApp,
		ProcessName:       DefaultProcessName,
		Profile:           1,
		IntervalMinutes:   1,
		RetentionDays:     int(domain.DefaultRetention),
		LivenessInterval:  2 * time.Second,
		CountdownInterval: time.Second,
		StatusTimeout:     5 * time.Second,
		ResolveInterval:   2 * time.Second,
		RetentionInterval: time.Hour,
		DebugInterval:     time.Second,
		LogLevel:          "info",
	}
}

// Validate checks the configuration for errors and sets derived defaults.
func (c *Config) Validate() error {
	if c.AppDataRoot == "" {
		root, err := os.UserConfigDir()
		if err != nil {
			return fmt.Errorf("%w: app-data-root is required: %v", domain.ErrInvalidConfig, err)
		}
		c.AppDataRoot = root
	}
	if c.ExternalApp == "" {
		c.ExternalApp = DefaultExternalApp
	}
	if c.ProcessName == "" {
		c.ProcessName = DefaultProcessName
	}
	if c.ArchiveDir == "" {
		c.ArchiveDir = filepath.Join(c.AppDataRoot, ArchiveDirName)
	}
	if c.StateDir == "" {
		c.StateDir = c.ArchiveDir
	}

	if !domain.ValidProfile(c.Profile) {
		return fmt.Errorf("%w: profile must be 1..%d, got %d", domain.ErrInvalidConfig, domain.MaxProfile, c.Profile)
	}
	if c.IntervalMinutes <= 0 {
		return fmt.Errorf("%w: interval must be positive", domain.ErrInvalidConfig)
	}
	if !domain.RetentionPolicy(c.RetentionDays).Valid() {
		return fmt.Errorf("%w: retention must be one of %v days, got %d",
			domain.ErrInvalidConfig, domain.RetentionPolicies, c.RetentionDays)
	}

	for name, d := range map[string]time.Duration{
		"liveness-interval":  c.LivenessInterval,
		"countdown-interval": c.CountdownInterval,
		"status-timeout":     c.StatusTimeout,
		"resolve-interval":   c.ResolveInterval,
		"retention-interval": c.RetentionInterval,
		"debug-interval":     c.DebugInterval,
	} {
		if d <= 0 {
			return fmt.Errorf("%w: %s must be positive", domain.ErrInvalidConfig, name)
		}
	}

	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
	if _, err := zerolog.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("%w: log-level: %v", domain.ErrInvalidConfig, err)
	}
	return nil
}

// SavePath returns the live save location for profile.
func (c *Config) SavePath(profile int) string {
	return filepath.Join(c.AppDataRoot, c.ExternalApp, strconv.Itoa(profile), SaveFileName)
}

// Level returns the parsed log level, defaulting to info.
func (c *Config) Level() zerolog.Level {
	lvl, err := zerolog.ParseLevel(c.LogLevel)
	if err != nil || c.LogLevel == "" {
		return zerolog.InfoLevel
	}
	return lvl
}

// configSetter helps apply configuration values while respecting flag precedence.
// It only applies values if the corresponding flag hasn't been explicitly set.
type configSetter struct {
	changed map[string]bool
}

func newConfigSetter(changed map[string]bool) *configSetter {
	return &configSetter{changed: changed}
}

func (s *configSetter) setString(flag, value string, dst *string) {
	if value == "" || s.changed[flag] {
		return
	}
	*dst = value
}

func (s *configSetter) setInt(flag string, value int, dst *int) {
	if value <= 0 || s.changed[flag] {
		return
	}
	*dst = value
}

func (s *configSetter) setFloat(flag string, value float64, dst *float64) {
	if value <= 0 || s.changed[flag] {
		return
	}
	*dst = value
}

func (s *configSetter) setDuration(flag, value string, dst *time.Duration) error {
	if value == "" || s.changed[flag] {
		return nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return fmt.Errorf("parse %s: %w", flag, err)
	}
	*dst = d
	return nil
}

func (s *configSetter) setBool(flag string, value *bool, dst *bool) {
	if value == nil || s.changed[flag] {
		return
	}
	*dst = *value
}

// setIntFromString parses an environment value. Non-positive values are ignored.
func (s *configSetter) setIntFromString(flag, value string, dst *int) error {
	if value == "" || s.changed[flag] {
		return nil
	}
	i, err := strconv.Atoi(value)
	if err != nil {
		return fmt.Errorf("parse %s: %w", flag, err)
	}
	if i <= 0 {
		return nil
	}
	*dst = i
	return nil
}

func (s *configSetter) setFloatFromString(flag, value string, dst *float64) error {
	if value == "" || s.changed[flag] {
		return nil
	}
	f, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return fmt.Errorf("parse %s: %w", flag, err)
	}
	if f <= 0 {
		return nil
	}
	*dst = f
	return nil
}

// setBoolFromString accepts "true" and "1" as true, anything else as false.
func (s *configSetter) setBoolFromString(flag, value string, dst *bool) {
	if value == "" || s.changed[flag] {
		return
	}
	*dst = value == "true" || value == "1"
}
