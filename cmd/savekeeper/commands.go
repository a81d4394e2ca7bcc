package main

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"text/tabwriter"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/bft-labs/savekeeper/internal/adapters/fs"
	logAdapter "github.com/bft-labs/savekeeper/internal/adapters/log"
	"github.com/bft-labs/savekeeper/internal/app"
	"github.com/bft-labs/savekeeper/internal/domain"
)

// oneShot starts an orchestrator, runs fn against it and stops it. A status
// error becomes the command's exit error.
func (c *cli) oneShot(fn func(ctx context.Context, o *app.Orchestrator, store *fs.ArchiveStore) (domain.StatusRecord, error)) error {
	o, store, err := c.build(nil, false)
	if err != nil {
		return err
	}
	ctx := context.Background()
	if err := o.Start(ctx); err != nil {
		return err
	}
	defer o.Stop()

	rec, err := fn(ctx, o, store)
	if err != nil {
		return err
	}
	newPrinter(os.Stdout).status(rec)
	if rec.IsError {
		return fmt.Errorf("%s", rec.Message)
	}
	return nil
}

func (c *cli) saveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "save",
		Short: "Archive the current save of the selected profile",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.oneShot(func(ctx context.Context, o *app.Orchestrator, _ *fs.ArchiveStore) (domain.StatusRecord, error) {
				return o.Save(ctx)
			})
		},
	}
}

func (c *cli) loadCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "load <index|name>",
		Short: "Restore a snapshot over the live save of the selected profile",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.oneShot(func(ctx context.Context, o *app.Orchestrator, store *fs.ArchiveStore) (domain.StatusRecord, error) {
				sel, err := resolveSelection(store, args)
				if err != nil {
					return domain.StatusRecord{}, err
				}
				return o.Load(ctx, sel)
			})
		},
	}
}

func (c *cli) deleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <index|name>...",
		Short: "Delete snapshots",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.oneShot(func(ctx context.Context, o *app.Orchestrator, store *fs.ArchiveStore) (domain.StatusRecord, error) {
				sel, err := resolveSelection(store, args)
				if err != nil {
					return domain.StatusRecord{}, err
				}
				return o.Delete(ctx, sel)
			})
		},
	}
}

func (c *cli) cleanCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "clean",
		Short: "Delete auto-saves older than the retention policy",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.oneShot(func(ctx context.Context, o *app.Orchestrator, _ *fs.ArchiveStore) (domain.StatusRecord, error) {
				rec, err := o.Sweep(ctx)
				if err == nil && rec.IsReady() {
					rec.Message = "Nothing to clean"
				}
				return rec, err
			})
		},
	}
}

func (c *cli) listCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List snapshots, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store := fs.NewArchiveStore(c.cfg.ArchiveDir, logAdapter.NewNoopLogger())
			return printEntries(store, newPrinter(os.Stdout))
		},
	}
}

func printEntries(store *fs.ArchiveStore, p *printer) error {
	entries, err := store.Entries()
	if err != nil {
		return err
	}
	if len(entries) == 0 {
		p.colored(p.faint, "no saves in %s\n", store.Dir())
		return nil
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	w := tabwriter.NewWriter(p.out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "#\tNAME\tSIZE\tCREATED\tKIND")
	for i, e := range entries {
		kind := "manual"
		if app.IsAutosaveName(e.Name) {
			kind = "auto"
		}
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\n",
			i+1, e.Name, humanize.Bytes(uint64(e.Size)), humanize.Time(e.CreatedAt), kind)
	}
	return w.Flush()
}

// resolveSelection maps 1-based list indexes or literal names to entry names.
func resolveSelection(store *fs.ArchiveStore, args []string) (domain.Selection, error) {
	names, err := store.List()
	if err != nil {
		return nil, err
	}
	sel := make(domain.Selection, 0, len(args))
	for _, a := range args {
		i, err := strconv.Atoi(a)
		if err != nil {
			sel = append(sel, a)
			continue
		}
		if i < 1 || i > len(names) {
			return nil, fmt.Errorf("%w: index %d out of range 1..%d", domain.ErrSelection, i, len(names))
		}
		sel = append(sel, names[i-1])
	}
	return sel, nil
}
