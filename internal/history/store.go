// Package history records ranked runs in a local SQLite database so they can
// be listed and compared later.
package history

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver (no CGO)

	"github.com/Aman-CERP/wordrank/internal/analysis"
	werrors "github.com/Aman-CERP/wordrank/internal/errors"
	"github.com/Aman-CERP/wordrank/internal/report"
)

// DefaultKeepWords is how many top words a run keeps when none is set.
const DefaultKeepWords = 50

// Run is one saved analysis. Words is only filled by Show.
type Run struct {
	ID        int64         `json:"id" yaml:"id"`
	CreatedAt time.Time     `json:"created_at" yaml:"created_at"`
	Sources   []string      `json:"sources" yaml:"sources"`
	Tokens    int64         `json:"tokens" yaml:"tokens"`
	Distinct  int           `json:"distinct" yaml:"distinct"`
	Tokenizer string        `json:"tokenizer" yaml:"tokenizer"`
	Strategy  string        `json:"strategy" yaml:"strategy"`
	Lookup    string        `json:"lookup" yaml:"lookup"`
	Elapsed   time.Duration `json:"elapsed" yaml:"elapsed"`
	Words     []report.Word `json:"words,omitempty" yaml:"words,omitempty"`
}

// FromResult converts an analysis result into a run holding its top keep
// words. keep <= 0 keeps every word.
func FromResult(res *analysis.Result, keep int) Run {
	entries := res.Entries
	if keep > 0 && len(entries) > keep {
		entries = entries[:keep]
	}

	words := make([]report.Word, len(entries))
	for i, e := range entries {
		words[i] = report.Word{Rank: i + 1, Word: e.Word, Count: e.Appeared}
	}

	return Run{
		Sources:   res.Sources,
		Tokens:    res.Tokens,
		Distinct:  res.Distinct,
		Tokenizer: res.Tokenizer,
		Strategy:  string(res.Strategy),
		Lookup:    string(res.Lookup),
		Elapsed:   res.Elapsed,
		Words:     words,
	}
}

// Option configures a Store.
type Option func(*Store)

// WithRetry overrides the backoff used while waiting for the write lock.
func WithRetry(cfg werrors.RetryConfig) Option {
	return func(s *Store) { s.retry = cfg }
}

// WithClock overrides time.Now for run timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// Store is the SQLite-backed run history.
type Store struct {
	db    *sql.DB
	path  string
	lock  *FileLock
	retry werrors.RetryConfig
	now   func() time.Time
}

// Open opens (or creates) the history database at path.
func Open(path string, opts ...Option) (*Store, error) {
	if path == "" {
		return nil, werrors.New(werrors.ErrCodeHistoryFailed, "history path is empty", nil).
			WithSuggestion("Set history.path in the config file")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, historyError("create history directory", err).WithDetail("path", path)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, historyError("open history database", err).WithDetail("path", path)
	}
	// One connection keeps the per-connection pragmas in effect.
	db.SetMaxOpenConns(1)

	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA busy_timeout = 5000",
		"PRAGMA synchronous = NORMAL",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			_ = db.Close()
			return nil, historyError("configure history database", err).WithDetail("path", path)
		}
	}

	if err := InitSchema(db); err != nil {
		_ = db.Close()
		return nil, historyError("initialise history database", err).WithDetail("path", path)
	}

	s := &Store{
		db:    db,
		path:  path,
		lock:  NewFileLock(path + ".lock"),
		retry: werrors.DefaultRetryConfig(),
		now:   time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}

	return s, nil
}

// Path returns the database path.
func (s *Store) Path() string {
	return s.path
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Save records run and returns its id. Words must already be in rank order.
func (s *Store) Save(ctx context.Context, run Run) (int64, error) {
	unlock, err := s.acquire(ctx)
	if err != nil {
		return 0, err
	}
	defer unlock()

	sources, err := json.Marshal(run.Sources)
	if err != nil {
		return 0, historyError("encode sources", err)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, historyError("begin transaction", err)
	}
	defer func() { _ = tx.Rollback() }()

	res, err := tx.ExecContext(ctx, `
		INSERT INTO runs (created_at, sources, tokens, distinct_words, tokenizer, strategy, lookup, elapsed_us)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`, s.now().UnixNano(), string(sources), run.Tokens, run.Distinct,
		run.Tokenizer, run.Strategy, run.Lookup, run.Elapsed.Microseconds())
	if err != nil {
		return 0, historyError("insert run", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, historyError("read run id", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO run_words (run_id, rank, word, count)
		VALUES (?, ?, ?, ?)
	`)
	if err != nil {
		return 0, historyError("prepare statement", err)
	}
	defer stmt.Close()

	for i, w := range run.Words {
		if _, err := stmt.ExecContext(ctx, id, i+1, w.Word, w.Count); err != nil {
			return 0, historyError("insert run word", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, historyError("commit transaction", err)
	}

	slog.Debug("history_saved",
		slog.Int64("run_id", id),
		slog.Int("words", len(run.Words)),
		slog.String("path", s.path))

	return id, nil
}

// List returns saved runs newest first, without their words. limit <= 0
// returns all of them.
func (s *Store) List(ctx context.Context, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = -1
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, created_at, sources, tokens, distinct_words, tokenizer, strategy, lookup, elapsed_us
		FROM runs
		ORDER BY id DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, historyError("query runs", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, run)
	}
	if err := rows.Err(); err != nil {
		return nil, historyError("query runs", err)
	}
	return runs, nil
}

// Show returns the run with id together with its saved words.
func (s *Store) Show(ctx context.Context, id int64) (Run, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, created_at, sources, tokens, distinct_words, tokenizer, strategy, lookup, elapsed_us
		FROM runs
		WHERE id = ?
	`, id)
	run, err := scanRun(row)
	if err == sql.ErrNoRows {
		return Run{}, werrors.New(werrors.ErrCodeInvalidInput, fmt.Sprintf("no saved run with id %d", id), nil).
			WithSuggestion("Run 'wordrank history list' to see saved runs")
	}
	if err != nil {
		return Run{}, err
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT rank, word, count
		FROM run_words
		WHERE run_id = ?
		ORDER BY rank
	`, id)
	if err != nil {
		return Run{}, historyError("query run words", err)
	}
	defer rows.Close()

	run.Words = []report.Word{}
	for rows.Next() {
		var w report.Word
		if err := rows.Scan(&w.Rank, &w.Word, &w.Count); err != nil {
			return Run{}, historyError("scan run word", err)
		}
		run.Words = append(run.Words, w)
	}
	if err := rows.Err(); err != nil {
		return Run{}, historyError("query run words", err)
	}
	return run, nil
}

// Clear deletes every saved run and returns how many were removed.
func (s *Store) Clear(ctx context.Context) (int64, error) {
	unlock, err := s.acquire(ctx)
	if err != nil {
		return 0, err
	}
	defer unlock()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, historyError("begin transaction", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `DELETE FROM run_words`); err != nil {
		return 0, historyError("delete run words", err)
	}
	res, err := tx.ExecContext(ctx, `DELETE FROM runs`)
	if err != nil {
		return 0, historyError("delete runs", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, historyError("count deleted runs", err)
	}

	if err := tx.Commit(); err != nil {
		return 0, historyError("commit transaction", err)
	}
	return n, nil
}

// acquire takes the write lock, backing off while another process holds it.
func (s *Store) acquire(ctx context.Context) (func(), error) {
	err := werrors.Retry(ctx, s.retry, func() error {
		ok, err := s.lock.TryLock()
		if err != nil {
			return historyError("lock history", err)
		}
		if !ok {
			return werrors.New(werrors.ErrCodeHistoryLocked, "history is being written by another wordrank process", nil).
				WithDetail("lock", s.lock.Path()).
				WithSuggestion("Wait for the other run to finish and try again")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return func() {
		if err := s.lock.Unlock(); err != nil {
			slog.Warn("history_unlock_failed", slog.String("error", err.Error()))
		}
	}, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRun(row rowScanner) (Run, error) {
	var (
		run       Run
		createdAt int64
		sources   string
		elapsedUS int64
	)
	err := row.Scan(&run.ID, &createdAt, &sources, &run.Tokens, &run.Distinct,
		&run.Tokenizer, &run.Strategy, &run.Lookup, &elapsedUS)
	if err == sql.ErrNoRows {
		return Run{}, err
	}
	if err != nil {
		return Run{}, historyError("scan run", err)
	}

	if err := json.Unmarshal([]byte(sources), &run.Sources); err != nil {
		return Run{}, historyError("decode sources", err)
	}
	run.CreatedAt = time.Unix(0, createdAt)
	run.Elapsed = time.Duration(elapsedUS) * time.Microsecond
	return run, nil
}

func historyError(op string, err error) *werrors.CodedError {
	return werrors.New(werrors.ErrCodeHistoryFailed, op+" failed", err)
}
