package cliconfig

import "github.com/bft-labs/savekeeper/internal/domain"

// ApplyPreferences overlays the persisted UI choices. Explicit flags win.
func ApplyPreferences(cfg *Config, p domain.Preferences, changed map[string]bool) {
	if p.IsEmpty() {
		return
	}
	s := newConfigSetter(changed)

	s.setInt("profile", p.Profile, &cfg.Profile)
	s.setFloat("interval", p.IntervalMinutes, &cfg.IntervalMinutes)
	if domain.RetentionPolicy(p.RetentionDays).Valid() {
		s.setInt("retention", p.RetentionDays, &cfg.RetentionDays)
	}
	s.setBool("autosave", &p.Autosave, &cfg.Autosave)
	s.setBool("auto-clean", &p.AutoClean, &cfg.AutoClean)
}

// Preferences returns the UI choices held in cfg.
func (c *Config) Preferences() domain.Preferences {
	return domain.Preferences{
		Profile:         c.Profile,
		IntervalMinutes: c.IntervalMinutes,
		RetentionDays:   c.RetentionDays,
		Autosave:        c.Autosave,
		AutoClean:       c.AutoClean,
	}
}
