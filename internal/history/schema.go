package history

import (
	"database/sql"
	"fmt"
)

// InitSchema creates the history tables if they don't exist.
func InitSchema(db *sql.DB) error {
	schema := `
	CREATE TABLE IF NOT EXISTS runs (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		created_at INTEGER NOT NULL,
		sources TEXT NOT NULL,
		tokens INTEGER NOT NULL,
		distinct_words INTEGER NOT NULL,
		tokenizer TEXT NOT NULL,
		strategy TEXT NOT NULL,
		lookup TEXT NOT NULL,
		elapsed_us INTEGER NOT NULL DEFAULT 0
	);

	-- Top words of each run, rank 1 first
	CREATE TABLE IF NOT EXISTS run_words (
		run_id INTEGER NOT NULL REFERENCES runs(id),
		rank INTEGER NOT NULL,
		word TEXT NOT NULL,
		count INTEGER NOT NULL,
		PRIMARY KEY (run_id, rank)
	);
	`

	if _, err := db.Exec(schema); err != nil {
		return fmt.Errorf("create history schema: %w", err)
	}
	return nil
}
