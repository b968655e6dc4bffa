package cmd

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	werrors "github.com/Aman-CERP/wordrank/internal/errors"
	"github.com/Aman-CERP/wordrank/internal/source"
	"github.com/Aman-CERP/wordrank/internal/watcher"
)

func newWatchCmd(a *app) *cobra.Command {
	var flags countFlags

	cmd := &cobra.Command{
		Use:   "watch FILE...",
		Short: "Recount whenever a file changes",
		Long: `Count the given files once, then recount and print a fresh report
every time one of them is written, created or replaced.

Bursts of changes are merged over watch.debounce (default 200ms). A run
that fails, for example because a file was briefly missing, is reported
and watching continues. Press Ctrl+C to stop.`,
		Example: `  wordrank watch draft.md
  wordrank watch --top 15 --format table chapter1.txt chapter2.txt`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWatch(cmd, a, &flags, args)
		},
	}

	addCountFlags(cmd, &flags)
	return cmd
}

func runWatch(cmd *cobra.Command, a *app, flags *countFlags, paths []string) error {
	for _, p := range paths {
		if p == source.StdinName {
			return werrors.ValidationError("cannot watch stdin", nil).
				WithSuggestion("Pass files: wordrank watch FILE...")
		}
	}

	r, err := newRunner(cmd, a, flags)
	if err != nil {
		return err
	}

	debounce, err := r.cfg.WatchDebounce()
	if err != nil {
		return werrors.ConfigError("watch.debounce: "+err.Error(), err)
	}
	opts := watcher.DefaultOptions()
	if debounce > 0 {
		opts.DebounceWindow = debounce
	}

	w, err := watcher.New(paths, opts)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if _, err := r.run(ctx, paths); err != nil {
		_ = w.Stop()
		return err
	}

	started := make(chan error, 1)
	go func() { started <- w.Start(ctx) }()

	r.status.Statusf("👀", "Watching %d file(s) using %s. Press Ctrl+C to stop.", len(w.Files()), w.WatcherType())
	slog.Info("watch_started",
		slog.Int("files", len(w.Files())),
		slog.String("watcher", w.WatcherType()),
		slog.Duration("debounce", opts.DebounceWindow))

	events := w.Events()
	errs := w.Errors()
	for {
		select {
		case batch, ok := <-events:
			if !ok {
				return watchStopped(<-started)
			}
			if len(batch) == 0 {
				continue
			}
			for _, ev := range batch {
				slog.Debug("file_changed",
					slog.String("path", ev.Path),
					slog.String("op", ev.Operation.String()))
			}
			r.status.Statusf("🔄", "%s changed, recounting", batch[0].Path)
			if _, err := r.run(ctx, paths); err != nil {
				r.status.Warning(werrors.FormatForCLI(err))
				slog.Warn("watch_run_failed", werrors.LogArgs(err)...)
			}

		case err, ok := <-errs:
			if !ok {
				errs = nil
				continue
			}
			r.status.Warning(err.Error())
			slog.Warn("watch_error", slog.String("error", err.Error()))

		case err := <-started:
			_ = w.Stop()
			return watchStopped(err)

		case <-ctx.Done():
			_ = w.Stop()
			return watchStopped(<-started)
		}
	}
}

// watchStopped turns the watcher's exit into the command result. Ctrl+C is a
// normal way to leave.
func watchStopped(err error) error {
	if err == nil || errors.Is(err, context.Canceled) {
		slog.Info("watch_stopped")
		return nil
	}
	return err
}
