package logging

import (
	"log/slog"
)

// SetupServeMode installs logging for `wordrank serve`. Records go to the
// log file only: any byte written to stdout or stderr before or during the
// session can corrupt the JSON-RPC stream a client is reading.
func SetupServeMode(cfg Config) (func(), error) {
	cfg.WriteToStderr = false
	cfg.JSON = true
	if cfg.FilePath == "" {
		cfg.FilePath = DefaultLogPath()
	}

	cleanup, err := SetupDefault(cfg)
	if err != nil {
		return nil, err
	}

	slog.Info("serve_logging_initialized",
		slog.String("log_file", cfg.FilePath),
		slog.String("level", cfg.Level))

	return cleanup, nil
}
