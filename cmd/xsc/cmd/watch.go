package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/spf13/cobra"

	"github.com/xs-lang/xs/internal/frontend"
	"github.com/xs-lang/xs/internal/vfs"
)

func (a *app) watchCommand() *cobra.Command {
	var poll time.Duration

	cmd := &cobra.Command{
		Use:   "watch <file|dir>...",
		Short: "Re-parse sources whenever they change",
		Long: `Parse the given files, and the source files under the given
directories, then parse each again whenever it is written. Unchanged
content is not parsed twice.

By default the operating system's file notifications are used; --poll
checks the files at a fixed interval instead.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer stop()
			return a.watch(ctx, args, poll)
		},
	}
	cmd.Flags().DurationVar(&poll, "poll", 0, "poll interval, 0 for file notifications")
	return cmd
}

func (a *app) watch(ctx context.Context, targets []string, poll time.Duration) error {
	cache, err := frontend.NewCache(0, a.options())
	if err != nil {
		return err
	}

	var files, dirs []string
	for _, t := range targets {
		info, err := a.fsys.Stat(t)
		if err != nil {
			a.log.Error("%v", err)
			return errReported
		}
		if !info.IsDir() {
			files = append(files, t)
			continue
		}
		dirs = append(dirs, t)
		found, err := frontend.Discover(a.fsys, t, a.config.Source.Extension)
		if err != nil {
			a.log.Error("%v", err)
			return errReported
		}
		files = append(files, found...)
	}

	w, err := a.newWatcher(ctx, files, dirs, poll)
	if err != nil {
		a.log.Error("cannot watch: %v", err)
		return errReported
	}
	defer w.Close()

	for _, f := range files {
		a.printOutcome(frontend.ParseCached(a.fsys, cache, f))
	}
	a.log.Info("watching %d files", len(files))

	return frontend.Watch(ctx, w, a.fsys, cache, a.config.Source.Extension, a.printOutcome)
}

func (a *app) newWatcher(ctx context.Context, files, dirs []string, poll time.Duration) (vfs.Watcher, error) {
	if poll > 0 {
		w := vfs.NewSimpleWatcher(a.fsys)
		for _, f := range files {
			if err := w.Add(f); err != nil {
				return nil, err
			}
		}
		return w, w.StartPolling(ctx, poll)
	}

	w, err := vfs.NewFSWatcher()
	if err != nil {
		return nil, err
	}
	for _, d := range dirs {
		if err := w.AddTree(d); err != nil {
			w.Close()
			return nil, err
		}
	}
	for _, f := range files {
		if err := w.Add(f); err != nil {
			w.Close()
			return nil, err
		}
	}
	return w, nil
}

func (a *app) printOutcome(o frontend.Outcome) {
	if o.Err != nil {
		a.report(o.Session, o.Err)
		return
	}
	fmt.Fprintf(a.stdout, "ok %s %s\n", o.Path, o.Session.Digest.String()[:12])
}
