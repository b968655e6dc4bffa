// Package metrics defines the Prometheus collectors for wordrank runs and
// writes them in the node_exporter textfile format.
package metrics

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/Aman-CERP/wordrank/internal/analysis"
)

// Tool call outcomes.
const (
	StatusOK    = "ok"
	StatusError = "error"
)

// Metrics holds the collectors and the registry they are registered with.
type Metrics struct {
	registry *prometheus.Registry

	RunsTotal      *prometheus.CounterVec
	RunDuration    *prometheus.HistogramVec
	TokensTotal    prometheus.Counter
	SourcesTotal   prometheus.Counter
	DistinctWords  prometheus.Gauge
	ToolCallsTotal *prometheus.CounterVec
}

var _ analysis.Observer = (*Metrics)(nil)

// New creates the collectors on a fresh registry.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		RunsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "wordrank_runs_total",
				Help: "Completed analysis runs by tokenizer and sort strategy.",
			},
			[]string{"tokenizer", "strategy"},
		),
		RunDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "wordrank_run_duration_seconds",
				Help:    "Time to count and rank one run, in seconds.",
				Buckets: []float64{0.0001, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 5},
			},
			[]string{"strategy"},
		),
		TokensTotal: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "wordrank_tokens_total",
				Help: "Total tokens counted.",
			},
		),
		SourcesTotal: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "wordrank_sources_total",
				Help: "Total documents read.",
			},
		),
		DistinctWords: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "wordrank_distinct_words",
				Help: "Distinct words in the most recent run.",
			},
		),
		ToolCallsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "wordrank_tool_calls_total",
				Help: "MCP tool calls by tool and status (ok, error).",
			},
			[]string{"tool", "status"},
		),
	}

	m.registry.MustRegister(
		m.RunsTotal,
		m.RunDuration,
		m.TokensTotal,
		m.SourcesTotal,
		m.DistinctWords,
		m.ToolCallsTotal,
	)

	return m
}

// ObserveRun records a completed analysis.
func (m *Metrics) ObserveRun(res *analysis.Result) {
	strategy := string(res.Strategy)
	m.RunsTotal.WithLabelValues(res.Tokenizer, strategy).Inc()
	m.RunDuration.WithLabelValues(strategy).Observe(res.Elapsed.Seconds())
	m.TokensTotal.Add(float64(res.Tokens))
	m.SourcesTotal.Add(float64(len(res.Sources)))
	m.DistinctWords.Set(float64(res.Distinct))
}

// ObserveToolCall records one MCP tool call.
func (m *Metrics) ObserveToolCall(tool string, err error) {
	status := StatusOK
	if err != nil {
		status = StatusError
	}
	m.ToolCallsTotal.WithLabelValues(tool, status).Inc()
}

// Registry returns the registry holding the collectors.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// WriteTextfile writes every collector to path in the text exposition
// format, replacing the file atomically.
func (m *Metrics) WriteTextfile(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create metrics directory: %w", err)
	}
	if err := prometheus.WriteToTextfile(path, m.registry); err != nil {
		return fmt.Errorf("write metrics: %w", err)
	}
	return nil
}
