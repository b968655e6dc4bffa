package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/Aman-CERP/wordrank/internal/logging"
	"github.com/Aman-CERP/wordrank/internal/mcp"
	"github.com/Aman-CERP/wordrank/internal/metrics"
)

func newServeCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the MCP server on stdio",
		Long: `Start a Model Context Protocol server on stdin/stdout exposing the
rank_words tool.

stdout carries JSON-RPC only, so logs are written to
~/.wordrank/logs/wordrank.log (or logging.file). Use 'wordrank logs -f' to
follow them.`,
		Example: `  # Register with an MCP client
  {"command": "wordrank", "args": ["serve"]}`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(cmd.Context(), a)
		},
	}
}

func runServe(ctx context.Context, a *app) error {
	cfg, err := a.loadConfig()
	if err != nil {
		return err
	}

	logCfg := logging.Config{
		Level:     cfg.Logging.Level,
		FilePath:  cfg.Logging.File,
		MaxSizeMB: cfg.Logging.MaxSizeMB,
		MaxFiles:  cfg.Logging.MaxFiles,
	}
	if a.debug {
		logCfg.Level = "debug"
	}
	cleanup, err := logging.SetupServeMode(logCfg)
	if err != nil {
		return fmt.Errorf("failed to setup logging: %w", err)
	}
	defer cleanup()

	srv, err := mcp.NewServer(cfg, metrics.New())
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	return srv.Serve(ctx)
}
