package main

import (
	"context"
	"fmt"
	"os"
	"runtime"
	"runtime/debug"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	pflag "github.com/spf13/pflag"

	fsadapter "github.com/bft-labs/savekeeper/internal/adapters/fs"
	logAdapter "github.com/bft-labs/savekeeper/internal/adapters/log"
	"github.com/bft-labs/savekeeper/internal/cliconfig"
)

const helpDescription = `
Keep timestamped snapshots of your Balatro run and roll back to any of them.

Highlights:
  - Auto-saves on an interval while the game is running and pauses when it closes.
  - Names every snapshot by profile, time, deck and round.
  - Optionally prunes old auto-saves after 1, 3, 7, 14 or 30 days.
  - Configure via file ($HOME/.savekeeper/config.toml), SAVEKEEPER_* env, or flags.
`

var exampleUsage = strings.TrimSpace(`
  savekeeper run --autosave --interval 2
  savekeeper save --profile 2
  savekeeper list
  savekeeper load 1
  savekeeper delete 3 4 5
  savekeeper clean --retention 7
`)

func getVersion() string {
	if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" {
		return info.Main.Version
	}
	return "dev"
}

// cli holds state shared by every subcommand.
type cli struct {
	cfg     cliconfig.Config
	cfgPath string
	log     zerolog.Logger
}

func main() {
	c := &cli{cfg: cliconfig.DefaultConfig()}
	c.log = logAdapter.NewConsoleLogger(os.Stderr, zerolog.InfoLevel)

	root := &cobra.Command{
		Use:           "savekeeper",
		Short:         "Archive and restore Balatro save files",
		Long:          strings.TrimSpace(helpDescription),
		Example:       exampleUsage,
		Version:       fmt.Sprintf("%s %s/%s", getVersion(), runtime.GOOS, runtime.GOARCH),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return c.loadConfig(cmd)
		},
	}

	f := root.PersistentFlags()
	f.StringVar(&c.cfgPath, "config", "", "path to config file (default: $HOME/.savekeeper/config.toml)")
	f.StringVar(&c.cfg.AppDataRoot, "app-data-root", "", "per-user app data root (default: OS config dir)")
	f.StringVar(&c.cfg.ExternalApp, "external-app", c.cfg.ExternalApp, "game directory under the app data root")
	f.StringVar(&c.cfg.ProcessName, "process-name", c.cfg.ProcessName, "game process name")
	f.StringVar(&c.cfg.ArchiveDir, "archive-dir", "", "snapshot directory (default: <app-data-root>/savekeeper)")
	f.StringVar(&c.cfg.StateDir, "state-dir", "", "directory for prefs.json (defaults to archive-dir)")
	f.IntVar(&c.cfg.Profile, "profile", c.cfg.Profile, "game profile 1-10")
	f.Float64Var(&c.cfg.IntervalMinutes, "interval", c.cfg.IntervalMinutes, "auto-save interval in minutes")
	f.BoolVar(&c.cfg.Autosave, "autosave", c.cfg.Autosave, "enable auto-save")
	f.BoolVar(&c.cfg.AutoClean, "auto-clean", c.cfg.AutoClean, "enable hourly pruning of old auto-saves")
	f.IntVar(&c.cfg.RetentionDays, "retention", c.cfg.RetentionDays, "auto-save retention in days (1, 3, 7, 14, 30)")
	f.DurationVar(&c.cfg.LivenessInterval, "liveness-interval", c.cfg.LivenessInterval, "game process poll interval")
	f.DurationVar(&c.cfg.CountdownInterval, "countdown-interval", c.cfg.CountdownInterval, "countdown refresh interval")
	f.DurationVar(&c.cfg.StatusTimeout, "status-timeout", c.cfg.StatusTimeout, "how long status messages stay up")
	f.DurationVar(&c.cfg.ResolveInterval, "resolve-interval", c.cfg.ResolveInterval, "error re-check interval")
	f.DurationVar(&c.cfg.RetentionInterval, "retention-interval", c.cfg.RetentionInterval, "retention sweep interval")
	f.DurationVar(&c.cfg.DebugInterval, "debug-interval", c.cfg.DebugInterval, "debug snapshot interval")
	f.StringVar(&c.cfg.LogLevel, "log-level", c.cfg.LogLevel, "log level (debug, info, warn, error)")
	for _, name := range []string{"liveness-interval", "countdown-interval", "status-timeout", "resolve-interval", "debug-interval"} {
		if err := f.MarkHidden(name); err != nil {
			c.log.Info().Err(err).Str("flag", name).Msg("failed to hide flag")
		}
	}

	root.AddCommand(
		c.runCmd(),
		c.saveCmd(),
		c.loadCmd(),
		c.listCmd(),
		c.deleteCmd(),
		c.cleanCmd(),
	)

	if err := root.Execute(); err != nil {
		c.log.Error().Err(err).Msg("savekeeper")
		os.Exit(1)
	}
}

// loadConfig applies defaults < file < env < persisted prefs < flags.
func (c *cli) loadConfig(cmd *cobra.Command) error {
	cfgFile := c.cfgPath
	if cfgFile == "" {
		cfgFile = cliconfig.DefaultConfigPath()
	}

	changed := map[string]bool{}
	cmd.Flags().Visit(func(f *pflag.Flag) { changed[f.Name] = true })

	if cfgFile != "" && cliconfig.FileExists(cfgFile) {
		fc, err := cliconfig.LoadFileConfig(cfgFile)
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		if err := cliconfig.ApplyFileConfig(&c.cfg, fc, changed); err != nil {
			return err
		}
	}

	if err := cliconfig.ApplyEnvConfig(&c.cfg, changed); err != nil {
		return err
	}

	// Dirs must be derived before prefs.json can be found.
	if err := c.cfg.Validate(); err != nil {
		return err
	}
	prefs, err := fsadapter.NewPrefsFileRepository(c.cfg.StateDir).Load(context.Background())
	if err != nil {
		c.log.Warn().Err(err).Msg("ignoring unreadable preferences")
	}
	cliconfig.ApplyPreferences(&c.cfg, prefs, changed)
	if err := c.cfg.Validate(); err != nil {
		return err
	}

	c.log = c.log.Level(c.cfg.Level())
	c.log.Debug().Interface("config", c.cfg).Msg("configuration")
	return nil
}
