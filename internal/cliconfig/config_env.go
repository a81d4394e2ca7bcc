package cliconfig

import "os"

// EnvPrefix is prepended to every environment variable name.
const EnvPrefix = "SAVEKEEPER_"

func getenv(key string) string {
	return os.Getenv(EnvPrefix + key)
}

// ApplyEnvConfig applies SAVEKEEPER_* environment variables to cfg.
// It respects flags that have been explicitly set (changed map).
func ApplyEnvConfig(cfg *Config, changed map[string]bool) error {
	s := newConfigSetter(changed)

	s.setString("app-data-root", getenv("APP_DATA_ROOT"), &cfg.AppDataRoot)
	s.setString("external-app", getenv("EXTERNAL_APP"), &cfg.ExternalApp)
	s.setString("process-name", getenv("PROCESS_NAME"), &cfg.ProcessName)
	s.setString("archive-dir", getenv("ARCHIVE_DIR"), &cfg.ArchiveDir)
	s.setString("state-dir", getenv("STATE_DIR"), &cfg.StateDir)
	s.setString("log-level", getenv("LOG_LEVEL"), &cfg.LogLevel)

	if err := s.setIntFromString("profile", getenv("PROFILE"), &cfg.Profile); err != nil {
		return err
	}
	if err := s.setIntFromString("retention", getenv("RETENTION_DAYS"), &cfg.RetentionDays); err != nil {
		return err
	}
	if err := s.setFloatFromString("interval", getenv("INTERVAL_MINUTES"), &cfg.IntervalMinutes); err != nil {
		return err
	}

	s.setBoolFromString("autosave", getenv("AUTOSAVE"), &cfg.Autosave)
	s.setBoolFromString("auto-clean", getenv("AUTO_CLEAN"), &cfg.AutoClean)

	if err := s.setDuration("liveness-interval", getenv("LIVENESS_INTERVAL"), &cfg.LivenessInterval); err != nil {
		return err
	}
	if err := s.setDuration("countdown-interval", getenv("COUNTDOWN_INTERVAL"), &cfg.CountdownInterval); err != nil {
		return err
	}
	if err := s.setDuration("status-timeout", getenv("STATUS_TIMEOUT"), &cfg.StatusTimeout); err != nil {
		return err
	}
	if err := s.setDuration("resolve-interval", getenv("RESOLVE_INTERVAL"), &cfg.ResolveInterval); err != nil {
		return err
	}
	if err := s.setDuration("retention-interval", getenv("RETENTION_INTERVAL"), &cfg.RetentionInterval); err != nil {
		return err
	}
	if err := s.setDuration("debug-interval", getenv("DEBUG_INTERVAL"), &cfg.DebugInterval); err != nil {
		return err
	}

	return nil
}
