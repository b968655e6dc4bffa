package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"regexp"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/Aman-CERP/wordrank/internal/logging"
	"github.com/Aman-CERP/wordrank/internal/output"
)

type logsOptions struct {
	follow  bool
	lines   int
	level   string
	filter  string
	noColor bool
	file    string
}

func newLogsCmd(a *app) *cobra.Command {
	var opts logsOptions

	cmd := &cobra.Command{
		Use:   "logs",
		Short: "View wordrank debug and server logs",
		Long: `Show the last lines of the wordrank log file written by --debug and
'wordrank serve'. Use -f to follow new entries as they are written.

The log file is ~/.wordrank/logs/wordrank.log unless logging.file or --file
names another one.`,
		Example: `  wordrank logs
  wordrank logs -n 200 --level warn
  wordrank logs -f --filter rank_words`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if opts.file == "" {
				if cfg, err := a.loadConfig(); err == nil {
					opts.file = cfg.Logging.File
				}
			}
			return runLogs(cmd, opts)
		},
	}

	cmd.Flags().BoolVarP(&opts.follow, "follow", "f", false, "Follow log output (like tail -f)")
	cmd.Flags().IntVarP(&opts.lines, "lines", "n", 50, "Number of lines to show")
	cmd.Flags().StringVar(&opts.level, "level", "", "Minimum level: debug, info, warn, error")
	cmd.Flags().StringVar(&opts.filter, "filter", "", "Keep only lines matching this regex")
	cmd.Flags().BoolVar(&opts.noColor, "no-color", false, "Disable colored output")
	cmd.Flags().StringVar(&opts.file, "file", "", "Log file to read")

	return cmd
}

func runLogs(cmd *cobra.Command, opts logsOptions) error {
	path, err := logging.FindLogFile(opts.file)
	if err != nil {
		return err
	}

	var pattern *regexp.Regexp
	if opts.filter != "" {
		pattern, err = regexp.Compile(opts.filter)
		if err != nil {
			return fmt.Errorf("invalid filter pattern: %w", err)
		}
	}

	out := cmd.OutOrStdout()
	useColor := !opts.noColor && output.UseColor(output.ColorAuto, out)
	viewer := logging.NewViewer(logging.ViewerConfig{
		Level:   opts.level,
		Pattern: pattern,
		Styles:  output.GetStyles(!useColor),
	}, out)

	fmt.Fprintf(cmd.ErrOrStderr(), "Log file: %s\n", path)

	entries, err := viewer.Tail(path, opts.lines)
	if err != nil {
		return err
	}
	viewer.Print(entries)

	if !opts.follow {
		return nil
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return followLogs(ctx, viewer, path)
}

func followLogs(ctx context.Context, viewer *logging.Viewer, path string) error {
	ch := make(chan logging.LogEntry, 64)
	done := make(chan error, 1)
	go func() { done <- viewer.Follow(ctx, path, ch) }()

	for {
		select {
		case entry := <-ch:
			viewer.Print([]logging.LogEntry{entry})
		case err := <-done:
			return err
		}
	}
}
