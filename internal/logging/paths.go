package logging

import (
	"fmt"
	"os"
	"path/filepath"
)

// DefaultLogDir returns ~/.wordrank/logs, or a directory under the temp dir
// when the home directory is unavailable.
func DefaultLogDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(os.TempDir(), ".wordrank", "logs")
	}
	return filepath.Join(home, ".wordrank", "logs")
}

// DefaultLogPath returns the default log file path.
func DefaultLogPath() string {
	return filepath.Join(DefaultLogDir(), "wordrank.log")
}

// FindLogFile resolves the log file to view: the explicit path when given,
// otherwise the default one. It fails when the file does not exist.
func FindLogFile(explicit string) (string, error) {
	if explicit != "" {
		if _, err := os.Stat(explicit); err == nil {
			return explicit, nil
		}
		return "", fmt.Errorf("log file not found: %s", explicit)
	}

	path := DefaultLogPath()
	if _, err := os.Stat(path); err == nil {
		return path, nil
	}

	return "", fmt.Errorf("no log file found at %s; run a command with --debug first", path)
}

// RotatedFiles returns path followed by its existing rotated siblings
// (path.1, path.2, ...), oldest last.
func RotatedFiles(path string) []string {
	files := []string{path}
	for i := 1; ; i++ {
		p := fmt.Sprintf("%s.%d", path, i)
		if _, err := os.Stat(p); err != nil {
			return files
		}
		files = append(files, p)
	}
}
