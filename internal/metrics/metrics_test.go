package metrics

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Aman-CERP/wordrank/internal/analysis"
	"github.com/Aman-CERP/wordrank/pkg/ranksort"
)

func sampleResult() *analysis.Result {
	return &analysis.Result{
		Tokens:    5,
		Distinct:  4,
		Sources:   []string{"a.txt", "b.txt"},
		Tokenizer: "alnum",
		Strategy:  ranksort.StrategyStack,
		Elapsed:   3 * time.Millisecond,
	}
}

func TestObserveRun(t *testing.T) {
	// Given: fresh collectors
	m := New()

	// When: two runs are observed
	m.ObserveRun(sampleResult())
	second := sampleResult()
	second.Distinct = 9
	m.ObserveRun(second)

	// Then: counters accumulate and the gauge holds the latest run
	assert.Equal(t, float64(2), testutil.ToFloat64(m.RunsTotal.WithLabelValues("alnum", "stack")))
	assert.Equal(t, float64(10), testutil.ToFloat64(m.TokensTotal))
	assert.Equal(t, float64(4), testutil.ToFloat64(m.SourcesTotal))
	assert.Equal(t, float64(9), testutil.ToFloat64(m.DistinctWords))
	assert.Equal(t, 1, testutil.CollectAndCount(m.RunDuration))
}

func TestObserveToolCall(t *testing.T) {
	m := New()

	m.ObserveToolCall("rank_words", nil)
	m.ObserveToolCall("rank_words", nil)
	m.ObserveToolCall("rank_words", errors.New("boom"))

	assert.Equal(t, float64(2), testutil.ToFloat64(m.ToolCallsTotal.WithLabelValues("rank_words", StatusOK)))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.ToolCallsTotal.WithLabelValues("rank_words", StatusError)))
}

func TestNew_IndependentRegistries(t *testing.T) {
	a, b := New(), New()
	a.ObserveRun(sampleResult())

	assert.Equal(t, float64(0), testutil.ToFloat64(b.TokensTotal))
	assert.NotSame(t, a.Registry(), b.Registry())
}

func TestWriteTextfile(t *testing.T) {
	// Given: one observed run
	m := New()
	m.ObserveRun(sampleResult())
	path := filepath.Join(t.TempDir(), "textfile", "wordrank.prom")

	// When: writing the textfile
	require.NoError(t, m.WriteTextfile(path))

	// Then: it holds the exposition text
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	text := string(data)
	assert.Contains(t, text, "# TYPE wordrank_tokens_total counter")
	assert.Contains(t, text, "wordrank_tokens_total 5")
	assert.Contains(t, text, `wordrank_runs_total{strategy="stack",tokenizer="alnum"} 1`)
	assert.Contains(t, text, "wordrank_distinct_words 4")
}
