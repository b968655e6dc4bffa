package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	werrors "github.com/Aman-CERP/wordrank/internal/errors"
	"github.com/Aman-CERP/wordrank/internal/history"
	"github.com/Aman-CERP/wordrank/internal/output"
	"github.com/Aman-CERP/wordrank/internal/report"
)

const historyTimeLayout = "2006-01-02 15:04:05"

func newHistoryCmd(a *app) *cobra.Command {
	var (
		limit  int
		format string
	)

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Inspect saved runs",
		Long: `Inspect runs recorded with --save or history.enabled.

Runs are stored in an SQLite database at history.path
(default ~/.wordrank/history.db). With no subcommand, lists the most
recent runs.`,
		Example: `  wordrank history
  wordrank history show 3
  wordrank history show 3 --format json
  wordrank history clear`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runHistoryList(cmd, a, limit, format)
		},
	}
	addHistoryListFlags(cmd, &limit, &format)

	cmd.AddCommand(newHistoryListCmd(a))
	cmd.AddCommand(newHistoryShowCmd(a))
	cmd.AddCommand(newHistoryClearCmd(a))

	return cmd
}

func addHistoryListFlags(cmd *cobra.Command, limit *int, format *string) {
	cmd.Flags().IntVar(limit, "limit", 20, "Number of runs to list (0 lists all)")
	cmd.Flags().StringVarP(format, "format", "o", "table", "Output format: table, json, yaml")
}

func newHistoryListCmd(a *app) *cobra.Command {
	var (
		limit  int
		format string
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List saved runs, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runHistoryList(cmd, a, limit, format)
		},
	}
	addHistoryListFlags(cmd, &limit, &format)
	return cmd
}

func newHistoryShowCmd(a *app) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "show ID",
		Short: "Show one saved run with its top words",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runHistoryShow(cmd, a, args[0], format)
		},
	}
	cmd.Flags().StringVarP(&format, "format", "o", "table", "Output format: plain, table, json, yaml")
	return cmd
}

func newHistoryClearCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Delete every saved run",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runHistoryClear(cmd, a)
		},
	}
}

func openHistory(a *app) (*history.Store, error) {
	cfg, err := a.loadConfig()
	if err != nil {
		return nil, err
	}
	return history.Open(cfg.History.Path)
}

func historyStyles(cmd *cobra.Command, a *app) output.Styles {
	mode := output.ColorAuto
	if a.cfg != nil {
		mode = output.ColorMode(a.cfg.Output.Color)
	}
	return output.GetStyles(!output.UseColor(mode, cmd.OutOrStdout()))
}

func runHistoryList(cmd *cobra.Command, a *app, limit int, format string) error {
	if limit < 0 {
		return werrors.ValidationError(fmt.Sprintf("--limit must be non-negative, got %d", limit), nil)
	}

	store, err := openHistory(a)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	runs, err := store.List(cmd.Context(), limit)
	if err != nil {
		return err
	}
	if runs == nil {
		runs = []history.Run{}
	}

	out := cmd.OutOrStdout()
	switch format {
	case "json":
		return encodeJSON(out, runs)
	case "yaml":
		return encodeYAML(out, runs)
	case "table", "":
		if len(runs) == 0 {
			w := output.New(out, false)
			w.Status("📭", "No saved runs. Use --save or set history.enabled to record runs.")
			return nil
		}
		return writeRunTable(out, runs, historyStyles(cmd, a))
	default:
		return unknownFormat(format, "table, json, yaml")
	}
}

func writeRunTable(w io.Writer, runs []history.Run, st output.Styles) error {
	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(st.Border).
		Headers("ID", "WHEN", "SOURCES", "TOKENS", "DISTINCT", "STRATEGY").
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return st.Header.Padding(0, 1)
			}
			return lipgloss.NewStyle().Padding(0, 1)
		})

	for _, r := range runs {
		t.Row(
			strconv.FormatInt(r.ID, 10),
			r.CreatedAt.Local().Format(historyTimeLayout),
			strings.Join(r.Sources, ", "),
			strconv.FormatInt(r.Tokens, 10),
			strconv.Itoa(r.Distinct),
			r.Strategy,
		)
	}

	_, err := fmt.Fprintln(w, t.String())
	return err
}

func runHistoryShow(cmd *cobra.Command, a *app, rawID, format string) error {
	id, err := strconv.ParseInt(rawID, 10, 64)
	if err != nil || id <= 0 {
		return werrors.ValidationError(fmt.Sprintf("invalid run id %q", rawID), err).
			WithSuggestion("Run 'wordrank history' to see saved run ids")
	}

	store, err := openHistory(a)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	run, err := store.Show(cmd.Context(), id)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	rep := report.Report{
		Sources:  run.Sources,
		Tokens:   run.Tokens,
		Distinct: run.Distinct,
		Words:    run.Words,
	}

	switch format {
	case "json":
		return encodeJSON(out, run)
	case "yaml":
		return encodeYAML(out, run)
	case "plain":
		return report.Write(out, rep, report.FormatPlain, output.NoColorStyles())
	case "table", "":
		st := historyStyles(cmd, a)
		fmt.Fprintf(out, "%s  %s\n", st.Header.Render(fmt.Sprintf("Run #%d", run.ID)), st.Dim.Render(run.CreatedAt.Local().Format(historyTimeLayout)))
		fmt.Fprintf(out, "Sources:   %s\n", strings.Join(run.Sources, ", "))
		fmt.Fprintf(out, "Settings:  %s tokenizer, %s lookup, %s sort\n", run.Tokenizer, run.Lookup, run.Strategy)
		fmt.Fprintf(out, "Elapsed:   %s\n\n", run.Elapsed)
		return report.Write(out, rep, report.FormatTable, st)
	default:
		return unknownFormat(format, "plain, table, json, yaml")
	}
}

func runHistoryClear(cmd *cobra.Command, a *app) error {
	store, err := openHistory(a)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	n, err := store.Clear(cmd.Context())
	if err != nil {
		return err
	}

	w := output.New(cmd.OutOrStdout(), false)
	w.Successf("Removed %d saved run(s)", n)
	return nil
}

func encodeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func encodeYAML(w io.Writer, v any) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return err
	}
	return enc.Close()
}

func unknownFormat(format, allowed string) error {
	return werrors.New(werrors.ErrCodeUnknownFormat, fmt.Sprintf("unknown output format %q", format), nil).
		WithSuggestion("Use one of: " + allowed)
}
