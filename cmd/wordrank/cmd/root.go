// Package cmd provides the CLI commands for wordrank.
package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/Aman-CERP/wordrank/internal/config"
	werrors "github.com/Aman-CERP/wordrank/internal/errors"
	"github.com/Aman-CERP/wordrank/internal/logging"
	"github.com/Aman-CERP/wordrank/internal/profiling"
	"github.com/Aman-CERP/wordrank/pkg/version"
)

// app carries the persistent flags and per-invocation state shared by every
// command of one root.
type app struct {
	configPath string
	debug      bool
	profile    profiling.Options

	cfg            *config.Config
	profiler       *profiling.Session
	loggingCleanup func()
}

// loadConfig loads the configuration once per invocation.
func (a *app) loadConfig() (*config.Config, error) {
	if a.cfg != nil {
		return a.cfg, nil
	}

	dir, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("failed to get working directory: %w", err)
	}

	cfg, err := config.Load(dir, a.configPath)
	if err != nil {
		return nil, err
	}
	a.cfg = cfg
	return cfg, nil
}

// NewRootCmd creates the root command for the wordrank CLI.
func NewRootCmd() *cobra.Command {
	return newRootCmd(&app{})
}

func newRootCmd(a *app) *cobra.Command {
	var flags countFlags

	cmd := &cobra.Command{
		Use:   "wordrank [files...]",
		Short: "Count words and rank them from most to least frequent",
		Long: `wordrank reads text from files or stdin, counts every word
case-insensitively and prints the words from most to least frequent.

With no command it behaves like 'wordrank count'. Use '-' to read stdin
alongside files.`,
		Example: `  # Rank the words piped on stdin
  echo "I like cookies. Mmm... Cookies." | wordrank

  # Ten most frequent words of two books, as a table
  wordrank count --top 10 --format table moby.txt emma.txt`,
		Version:       version.Version,
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCount(cmd, a, &flags, args)
		},
	}

	cmd.SetVersionTemplate("wordrank version {{.Version}}\n")

	addCountFlags(cmd, &flags)

	cmd.PersistentFlags().StringVar(&a.configPath, "config", "", "Config file to use instead of ./.wordrank.yaml")
	cmd.PersistentFlags().BoolVar(&a.debug, "debug", false, "Enable debug logging to ~/.wordrank/logs/")
	cmd.PersistentFlags().StringVar(&a.profile.CPU, "profile-cpu", "", "Write CPU profile to file")
	cmd.PersistentFlags().StringVar(&a.profile.Heap, "profile-mem", "", "Write heap profile to file")

	cmd.PersistentPreRunE = a.before
	cmd.PersistentPostRunE = func(_ *cobra.Command, _ []string) error {
		return a.finish()
	}

	cmd.AddCommand(newCountCmd(a))
	cmd.AddCommand(newWatchCmd(a))
	cmd.AddCommand(newServeCmd(a))
	cmd.AddCommand(newHistoryCmd(a))
	cmd.AddCommand(newConfigCmd(a))
	cmd.AddCommand(newLogsCmd(a))
	cmd.AddCommand(newVersionCmd())

	return cmd
}

// before starts profiling and logging. serve sets up its own file-only
// logging because stdout and stderr may belong to the MCP client.
func (a *app) before(cmd *cobra.Command, _ []string) error {
	if a.profile.Enabled() {
		session, err := profiling.Start(a.profile)
		if err != nil {
			return err
		}
		a.profiler = session
	}

	if cmd.Name() == "serve" {
		return nil
	}

	// A broken config is reported by the command itself.
	cfg, cfgErr := a.loadConfig()

	logCfg := logging.DefaultConfig()
	if cfgErr == nil {
		logCfg.Level = cfg.Logging.Level
	}
	if a.debug {
		logCfg = logging.DebugConfig()
		if cfgErr == nil {
			if cfg.Logging.File != "" {
				logCfg.FilePath = cfg.Logging.File
			}
			logCfg.MaxSizeMB = cfg.Logging.MaxSizeMB
			logCfg.MaxFiles = cfg.Logging.MaxFiles
		}
	}
	logCfg.Stderr = cmd.ErrOrStderr()

	cleanup, err := logging.SetupDefault(logCfg)
	if err != nil {
		return fmt.Errorf("failed to setup logging: %w", err)
	}
	a.loggingCleanup = cleanup

	if a.debug {
		slog.Info("debug_logging_enabled",
			slog.String("log_file", logCfg.FilePath),
			slog.String("command", cmd.CommandPath()),
			slog.String("version", version.Version))
	}
	return nil
}

// finish stops profiling and closes the log file. It runs after every
// command, including failed ones, and is safe to call twice.
func (a *app) finish() error {
	var err error
	if a.profiler != nil {
		err = a.profiler.Stop()
		a.profiler = nil
	}
	if a.loggingCleanup != nil {
		a.loggingCleanup()
		a.loggingCleanup = nil
	}
	return err
}

// Execute runs the root command and prints any error to stderr.
func Execute() error {
	a := &app{}
	root := newRootCmd(a)

	err := root.Execute()
	if finishErr := a.finish(); err == nil {
		err = finishErr
	}
	if err != nil {
		_, _ = fmt.Fprintln(root.ErrOrStderr(), werrors.FormatForCLI(err))
	}
	return err
}
