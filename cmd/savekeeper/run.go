package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/bft-labs/savekeeper/internal/adapters/fs"
	"github.com/bft-labs/savekeeper/internal/app"
	"github.com/bft-labs/savekeeper/internal/domain"
)

const consoleHelp = `commands:
  save                      archive the live save now
  load <index|name>         restore a snapshot
  delete <index|name>...    delete snapshots
  select <index|name>...    set the selection used by load/delete with no args
  list                      list snapshots
  status                    show status, liveness and countdown
  profile <1-10>            switch profile
  interval <minutes>        set the auto-save interval
  autosave on|off           toggle auto-save
  retention <days>          set retention (1, 3, 7, 14, 30)
  autoclean on|off          toggle hourly pruning
  clean                     prune old auto-saves now
  debug on|off              toggle the debug view
  help                      show this help
  quit                      exit`

func (c *cli) runCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "run",
		Short: "Run the auto-save daemon with an interactive console",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p := newPrinter(os.Stdout)
			o, store, err := c.build(newTerminalSink(p), true)
			if err != nil {
				return err
			}

			ctx, cancel := context.WithCancel(context.Background())
			defer cancel()

			sigCh := make(chan os.Signal, 1)
			signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
			defer signal.Stop(sigCh)

			if err := o.Start(ctx); err != nil {
				return fmt.Errorf("start savekeeper: %w", err)
			}
			c.log.Info().
				Str("archive_dir", c.cfg.ArchiveDir).
				Str("save", c.cfg.SavePath(c.cfg.Profile)).
				Msg("savekeeper running; type 'help' for commands")

			con := &console{o: o, store: store, p: p}
			c.serve(ctx, con, os.Stdin, sigCh)

			if err := o.Stop(); err != nil {
				return fmt.Errorf("stop savekeeper: %w", err)
			}
			return nil
		},
	}
}

// serve blocks until a signal arrives, ctx is done or the console reads
// quit. A closed or broken input only ends the console, so the daemon keeps
// running under a service manager or with stdin redirected.
func (c *cli) serve(ctx context.Context, con *console, in io.Reader, sigCh <-chan os.Signal) {
	done := make(chan error, 1)
	go func() { done <- con.loop(ctx, in) }()

	var consoleCh <-chan error = done

	for {
		select {
		case <-sigCh:
			c.log.Info().Msg("received signal, stopping...")
			return
		case <-ctx.Done():
			return
		case err := <-consoleCh:
			consoleCh = nil
			switch {
			case err == nil:
				return
			case errors.Is(err, io.EOF):
				c.log.Info().Msg("console input closed; running until signalled")
			default:
				c.log.Error().Err(err).Msg("console closed; running until signalled")
			}
		}
	}
}

// console reads line commands and forwards them to the orchestrator.
type console struct {
	o     *app.Orchestrator
	store *fs.ArchiveStore
	p     *printer
	sel   domain.Selection
}

var errQuit = errors.New("quit")

func (c *console) loop(ctx context.Context, in io.Reader) error {
	sc := bufio.NewScanner(in)
	for sc.Scan() {
		fields := strings.Fields(sc.Text())
		if len(fields) == 0 {
			continue
		}
		err := c.exec(ctx, fields[0], fields[1:])
		switch {
		case errors.Is(err, errQuit):
			return nil
		case err != nil:
			c.p.colored(c.p.bad, "%v\n", err)
		}
	}
	if err := sc.Err(); err != nil {
		return err
	}
	return io.EOF
}

func (c *console) exec(ctx context.Context, name string, args []string) error {
	var (
		rec domain.StatusRecord
		err error
	)

	switch strings.ToLower(name) {
	case "save":
		rec, err = c.o.Save(ctx)
	case "load":
		sel, serr := c.selection(args)
		if serr != nil {
			return serr
		}
		rec, err = c.o.Load(ctx, sel)
	case "delete", "rm":
		sel, serr := c.selection(args)
		if serr != nil {
			return serr
		}
		rec, err = c.o.Delete(ctx, sel)
		c.sel = nil
	case "select":
		sel, serr := resolveSelection(c.store, args)
		if serr != nil {
			return serr
		}
		c.sel = sel
		rec, err = c.o.SelectionChanged(ctx, sel)
	case "list", "ls":
		return printEntries(c.store, c.p)
	case "status":
		return c.status(ctx)
	case "profile":
		n, perr := intArg(args)
		if perr != nil {
			return perr
		}
		rec, err = c.o.SetProfile(ctx, n)
	case "interval":
		rec, err = c.o.SetInterval(ctx, strings.Join(args, " "))
	case "autosave":
		on, berr := onOff(args)
		if berr != nil {
			return berr
		}
		rec, err = c.o.SetAutosave(ctx, on)
	case "retention":
		if len(args) == 0 {
			return fmt.Errorf("usage: retention <days>")
		}
		p, perr := domain.ParseRetentionPolicy(strings.Join(args, " "))
		if perr != nil {
			return perr
		}
		rec, err = c.o.SetRetention(ctx, p)
	case "autoclean":
		on, berr := onOff(args)
		if berr != nil {
			return berr
		}
		rec, err = c.o.SetAutoClean(ctx, on)
	case "clean":
		rec, err = c.o.Sweep(ctx)
	case "debug":
		on, berr := onOff(args)
		if berr != nil {
			return berr
		}
		_, err = c.o.SetDebugView(ctx, on)
		return err
	case "help", "?":
		c.p.printf("%s\n", consoleHelp)
		return nil
	case "quit", "exit", "q":
		return errQuit
	default:
		return fmt.Errorf("unknown command %q (type 'help')", name)
	}

	if err != nil {
		return err
	}
	// The sink already printed status changes; a record that left the slot
	// untouched is printed here so the command has visible output.
	if rec.IsReady() {
		c.p.status(rec)
	}
	return nil
}

// selection resolves args, or falls back to the last select command.
func (c *console) selection(args []string) (domain.Selection, error) {
	if len(args) == 0 {
		return c.sel, nil
	}
	return resolveSelection(c.store, args)
}

func (c *console) status(ctx context.Context) error {
	v, err := c.o.Snapshot(ctx)
	if err != nil {
		return err
	}
	c.p.status(v.Status)
	running := "not running"
	if v.Liveness.Running {
		running = "running"
	}
	autosave := "off"
	if v.Schedule.Enabled {
		autosave = fmt.Sprintf("every %s min", app.FormatMinutes(v.Schedule.IntervalMinutes))
	}
	autoclean := "off"
	if v.AutoClean {
		autoclean = "on"
	}
	c.p.printf("profile %d | game %s | auto-save %s | next %s | retention %s (auto-clean %s) | %d save(s)\n",
		v.Profile, running, autosave, orDash(v.Countdown), v.Retention, autoclean, len(v.Entries))
	return nil
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

func intArg(args []string) (int, error) {
	if len(args) != 1 {
		return 0, fmt.Errorf("expected one number")
	}
	return strconv.Atoi(args[0])
}

func onOff(args []string) (bool, error) {
	if len(args) == 1 {
		switch strings.ToLower(args[0]) {
		case "on", "true", "1", "yes":
			return true, nil
		case "off", "false", "0", "no":
			return false, nil
		}
	}
	return false, fmt.Errorf("expected on or off")
}
