package cmd

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/Aman-CERP/wordrank/internal/analysis"
	"github.com/Aman-CERP/wordrank/internal/config"
	"github.com/Aman-CERP/wordrank/internal/history"
	"github.com/Aman-CERP/wordrank/internal/metrics"
	"github.com/Aman-CERP/wordrank/internal/output"
	"github.com/Aman-CERP/wordrank/internal/report"
	"github.com/Aman-CERP/wordrank/internal/source"
)

// countFlags are the flags shared by the root, count and watch commands.
// Each one overrides its config key only when given.
type countFlags struct {
	format      string
	top         int
	minLength   int
	tokenizer   string
	strategy    string
	lookup      string
	noColor     bool
	save        bool
	metricsFile string
}

func addCountFlags(cmd *cobra.Command, f *countFlags) {
	fl := cmd.Flags()
	fl.StringVarP(&f.format, "format", "o", "", "Output format: plain, table, json, yaml")
	fl.IntVarP(&f.top, "top", "n", 0, "Show only the N most frequent words (0 shows all)")
	fl.IntVar(&f.minLength, "min-length", 0, "Skip words shorter than N characters")
	fl.StringVar(&f.tokenizer, "tokenizer", "", "Tokenizer: alnum, unicode")
	fl.StringVar(&f.strategy, "strategy", "", "Sort strategy: recursive, stack")
	fl.StringVar(&f.lookup, "lookup", "", "Index lookup: scan, hash")
	fl.BoolVar(&f.noColor, "no-color", false, "Disable colored output")
	fl.BoolVar(&f.save, "save", false, "Record the run in history")
	fl.StringVar(&f.metricsFile, "metrics-file", "", "Write Prometheus metrics to this file after each run")
}

func (f *countFlags) apply(cmd *cobra.Command, cfg *config.Config) {
	fl := cmd.Flags()
	if fl.Changed("format") {
		cfg.Output.Format = f.format
	}
	if fl.Changed("top") {
		cfg.Output.Top = f.top
	}
	if fl.Changed("min-length") {
		cfg.Output.MinLength = f.minLength
	}
	if fl.Changed("tokenizer") {
		cfg.Tokenizer.Mode = f.tokenizer
	}
	if fl.Changed("strategy") {
		cfg.Sort.Strategy = f.strategy
	}
	if fl.Changed("lookup") {
		cfg.Index.Lookup = f.lookup
	}
	if f.noColor {
		cfg.Output.Color = string(output.ColorNever)
	}
	if f.save {
		cfg.History.Enabled = true
	}
}

func newCountCmd(a *app) *cobra.Command {
	var flags countFlags

	cmd := &cobra.Command{
		Use:   "count [files...]",
		Short: "Count and rank the words of files or stdin",
		Long: `Count every word of the given files, or of stdin when no file is
given, and print them from most to least frequent.

Words are compared case-insensitively and reported in lower case. Words
with the same count are printed in the order the ranking sort leaves them,
which is the same on every run over the same input.`,
		Example: `  wordrank count book.txt
  cat *.md | wordrank count --top 20 --min-length 4
  wordrank count --format json --save notes.txt -`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCount(cmd, a, &flags, args)
		},
	}

	addCountFlags(cmd, &flags)
	return cmd
}

func runCount(cmd *cobra.Command, a *app, flags *countFlags, args []string) error {
	r, err := newRunner(cmd, a, flags)
	if err != nil {
		return err
	}
	_, err = r.run(cmd.Context(), args)
	return err
}

// runner performs count runs with one resolved configuration. watch reuses
// it for every rerun so metrics accumulate across runs.
type runner struct {
	cmd         *cobra.Command
	cfg         *config.Config
	opts        analysis.Options
	format      report.Format
	styles      output.Styles
	status      *output.Writer
	metrics     *metrics.Metrics
	metricsFile string
}

func newRunner(cmd *cobra.Command, a *app, flags *countFlags) (*runner, error) {
	cfg, err := a.loadConfig()
	if err != nil {
		return nil, err
	}
	flags.apply(cmd, cfg)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	opts, err := analysis.ParseOptions(cfg.Tokenizer.Mode, cfg.Index.Lookup, cfg.Sort.Strategy, cfg.Index.FoldCacheSize)
	if err != nil {
		return nil, err
	}
	format, err := report.ParseFormat(cfg.Output.Format)
	if err != nil {
		return nil, err
	}

	mode := output.ColorMode(cfg.Output.Color)
	r := &runner{
		cmd:    cmd,
		cfg:    cfg,
		opts:   opts,
		format: format,
		styles: output.GetStyles(!output.UseColor(mode, cmd.OutOrStdout())),
		status: output.New(cmd.ErrOrStderr(), output.UseColor(mode, cmd.ErrOrStderr())),
	}

	if flags.metricsFile != "" {
		r.metrics = metrics.New()
		r.metricsFile = flags.metricsFile
		r.opts.Observer = r.metrics
	}

	return r, nil
}

// run loads paths, counts, prints the report and records the run.
func (r *runner) run(ctx context.Context, paths []string) (*analysis.Result, error) {
	docs, err := source.Load(ctx, paths, r.cmd.InOrStdin(), source.Options{
		MaxBytes: r.cfg.Input.MaxBytes,
		Workers:  r.cfg.Input.Workers,
	})
	if err != nil {
		return nil, err
	}

	res, err := analysis.Analyze(ctx, docs, r.opts)
	if err != nil {
		return nil, err
	}

	rep := report.Build(res.Entries, res.Tokens, res.Distinct, res.Sources, report.Filter{
		Top:       r.cfg.Output.Top,
		MinLength: r.cfg.Output.MinLength,
	})
	if err := report.Write(r.cmd.OutOrStdout(), rep, r.format, r.styles); err != nil {
		return nil, fmt.Errorf("failed to write report: %w", err)
	}

	if r.cfg.History.Enabled {
		if err := r.save(ctx, res); err != nil {
			return nil, err
		}
	}

	if r.metrics != nil {
		if err := r.metrics.WriteTextfile(r.metricsFile); err != nil {
			return nil, err
		}
		slog.Debug("metrics_written", slog.String("path", r.metricsFile))
	}

	return res, nil
}

func (r *runner) save(ctx context.Context, res *analysis.Result) error {
	store, err := history.Open(r.cfg.History.Path)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	id, err := store.Save(ctx, history.FromResult(res, r.cfg.History.KeepWords))
	if err != nil {
		return err
	}

	r.status.Successf("Saved run #%d", id)
	slog.Info("run_saved",
		slog.Int64("id", id),
		slog.String("path", store.Path()),
		slog.Int64("tokens", res.Tokens))
	return nil
}
