// Package config loads wordrank settings from defaults, YAML files and the
// environment.
package config

import (
	"bytes"
	stderrors "errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	werrors "github.com/Aman-CERP/wordrank/internal/errors"
	"github.com/Aman-CERP/wordrank/internal/output"
	"github.com/Aman-CERP/wordrank/internal/report"
	"github.com/Aman-CERP/wordrank/internal/tokenize"
	"github.com/Aman-CERP/wordrank/internal/wordindex"
	"github.com/Aman-CERP/wordrank/pkg/ranksort"
)

// AppName names the config and data directories.
const AppName = "wordrank"

// ProjectConfigNames are looked up in the working directory, in order.
var ProjectConfigNames = []string{".wordrank.yaml", ".wordrank.yml"}

// Config represents the complete wordrank configuration.
type Config struct {
	Version   int             `yaml:"version" json:"version"`
	Tokenizer TokenizerConfig `yaml:"tokenizer" json:"tokenizer"`
	Index     IndexConfig     `yaml:"index" json:"index"`
	Sort      SortConfig      `yaml:"sort" json:"sort"`
	Output    OutputConfig    `yaml:"output" json:"output"`
	Input     InputConfig     `yaml:"input" json:"input"`
	History   HistoryConfig   `yaml:"history" json:"history"`
	Watch     WatchConfig     `yaml:"watch" json:"watch"`
	Logging   LoggingConfig   `yaml:"logging" json:"logging"`
}

// TokenizerConfig selects how text is split into words.
type TokenizerConfig struct {
	// Mode is "alnum" (letters and digits) or "unicode" (UAX #29 words).
	Mode string `yaml:"mode" json:"mode"`
}

// IndexConfig tunes the frequency index.
type IndexConfig struct {
	// Lookup is "scan" (linear) or "hash" (position map). Output is identical.
	Lookup string `yaml:"lookup" json:"lookup"`
	// FoldCacheSize caches this many lower-cased forms. 0 disables the cache.
	FoldCacheSize int `yaml:"fold_cache_size" json:"fold_cache_size"`
}

// SortConfig tunes the ranking sort.
type SortConfig struct {
	// Strategy is "recursive" or "stack". Output is identical.
	Strategy string `yaml:"strategy" json:"strategy"`
}

// OutputConfig controls report rendering.
type OutputConfig struct {
	Format    string `yaml:"format" json:"format"`
	Top       int    `yaml:"top" json:"top"`
	MinLength int    `yaml:"min_length" json:"min_length"`
	Color     string `yaml:"color" json:"color"`
}

// InputConfig bounds input acquisition.
type InputConfig struct {
	MaxBytes int64 `yaml:"max_bytes" json:"max_bytes"`
	Workers  int   `yaml:"workers" json:"workers"`
}

// HistoryConfig configures the run history database.
type HistoryConfig struct {
	Enabled bool   `yaml:"enabled" json:"enabled"`
	Path    string `yaml:"path" json:"path"`
	// KeepWords is how many top words are stored per run.
	KeepWords int `yaml:"keep_words" json:"keep_words"`
}

// WatchConfig configures `wordrank watch`.
type WatchConfig struct {
	Debounce string `yaml:"debounce" json:"debounce"`
}

// LoggingConfig configures slog output.
type LoggingConfig struct {
	Level string `yaml:"level" json:"level"`
	// File overrides the default log file used with --debug.
	File      string `yaml:"file" json:"file"`
	MaxSizeMB int    `yaml:"max_size_mb" json:"max_size_mb"`
	MaxFiles  int    `yaml:"max_files" json:"max_files"`
}

// NewConfig creates a new Config with defaults.
func NewConfig() *Config {
	return &Config{
		Version:   1,
		Tokenizer: TokenizerConfig{Mode: string(tokenize.ModeAlnum)},
		Index: IndexConfig{
			Lookup:        string(wordindex.LookupScan),
			FoldCacheSize: 0,
		},
		Sort: SortConfig{Strategy: string(ranksort.StrategyRecursive)},
		Output: OutputConfig{
			Format: string(report.FormatPlain),
			Color:  string(output.ColorAuto),
		},
		Input: InputConfig{
			MaxBytes: 64 << 20,
			Workers:  runtime.NumCPU(),
		},
		History: HistoryConfig{
			Enabled:   false,
			Path:      filepath.Join(DataDir(), "history.db"),
			KeepWords: 50,
		},
		Watch: WatchConfig{Debounce: "200ms"},
		Logging: LoggingConfig{
			Level:     "warn",
			MaxSizeMB: 10,
			MaxFiles:  5,
		},
	}
}

// DataDir returns ~/.wordrank, where history and logs live.
func DataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(os.TempDir(), "."+AppName)
	}
	return filepath.Join(home, "."+AppName)
}

// GetUserConfigPath returns the path to the user configuration file:
//   - $XDG_CONFIG_HOME/wordrank/config.yaml (if XDG_CONFIG_HOME is set)
//   - ~/.config/wordrank/config.yaml (default)
func GetUserConfigPath() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, AppName, "config.yaml")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(os.TempDir(), ".config", AppName, "config.yaml")
	}
	return filepath.Join(home, ".config", AppName, "config.yaml")
}

// GetUserConfigDir returns the directory containing the user configuration.
func GetUserConfigDir() string {
	return filepath.Dir(GetUserConfigPath())
}

// UserConfigExists returns true if the user configuration file exists.
func UserConfigExists() bool {
	return fileExists(GetUserConfigPath())
}

// FindProjectConfig returns the project config in dir, or "" if none exists.
func FindProjectConfig(dir string) string {
	for _, name := range ProjectConfigNames {
		if p := filepath.Join(dir, name); fileExists(p) {
			return p
		}
	}
	return ""
}

// Load builds the configuration in order of increasing precedence:
//  1. Hardcoded defaults
//  2. User config (~/.config/wordrank/config.yaml)
//  3. explicit if set, which must exist; otherwise .wordrank.yaml in dir
//  4. Environment variables (WORDRANK_*)
//
// Command-line flags are applied by the caller on top of the result.
func Load(dir, explicit string) (*Config, error) {
	cfg := NewConfig()

	if UserConfigExists() {
		if err := cfg.loadYAML(GetUserConfigPath()); err != nil {
			return nil, err
		}
	}

	switch {
	case explicit != "":
		if !fileExists(explicit) {
			return nil, werrors.New(werrors.ErrCodeConfigNotFound, fmt.Sprintf("config file not found: %s", explicit), nil).
				WithDetail("path", explicit).
				WithSuggestion("Create one with 'wordrank config init'")
		}
		if err := cfg.loadYAML(explicit); err != nil {
			return nil, err
		}
	default:
		if p := FindProjectConfig(dir); p != "" {
			if err := cfg.loadYAML(p); err != nil {
				return nil, err
			}
		}
	}

	cfg.applyEnvOverrides()
	cfg.History.Path = ExpandHome(cfg.History.Path)
	cfg.Logging.File = ExpandHome(cfg.Logging.File)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// ExpandHome replaces a leading "~/" in path with the home directory.
func ExpandHome(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~"))
}

// loadYAML decodes path over the current values, so keys absent from the
// file keep their earlier value. Unknown keys are rejected.
func (c *Config) loadYAML(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return werrors.New(werrors.ErrCodeConfigInvalid, fmt.Sprintf("failed to read config file %s", path), err).
			WithDetail("path", path)
	}

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(c); err != nil && !stderrors.Is(err, io.EOF) {
		return werrors.New(werrors.ErrCodeConfigInvalid, fmt.Sprintf("failed to parse config file %s", path), err).
			WithDetail("path", path).
			WithSuggestion("Compare with the output of 'wordrank config show'")
	}
	return nil
}

// applyEnvOverrides applies WORDRANK_* environment variable overrides.
// Unparseable numbers and booleans are ignored.
func (c *Config) applyEnvOverrides() {
	if v := os.Getenv("WORDRANK_FORMAT"); v != "" {
		c.Output.Format = v
	}
	if v := os.Getenv("WORDRANK_TOP"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			c.Output.Top = n
		}
	}
	if v := os.Getenv("WORDRANK_TOKENIZER"); v != "" {
		c.Tokenizer.Mode = v
	}
	if v := os.Getenv("WORDRANK_SORT_STRATEGY"); v != "" {
		c.Sort.Strategy = v
	}
	if v := os.Getenv("WORDRANK_LOOKUP"); v != "" {
		c.Index.Lookup = v
	}
	if v := os.Getenv("WORDRANK_LOG_LEVEL"); v != "" {
		c.Logging.Level = v
	}
	if v := os.Getenv("WORDRANK_HISTORY_PATH"); v != "" {
		c.History.Path = v
	}
	if v := os.Getenv("WORDRANK_HISTORY_ENABLED"); v != "" {
		if b, err := strconv.ParseBool(strings.TrimSpace(v)); err == nil {
			c.History.Enabled = b
		}
	}
}

// Validate validates the configuration and returns a coded error if invalid.
func (c *Config) Validate() error {
	invalid := func(format string, args ...any) error {
		return werrors.ConfigError(fmt.Sprintf(format, args...), nil)
	}

	if _, err := tokenize.New(c.Tokenizer.Mode); err != nil {
		return werrors.ConfigError("tokenizer.mode: "+err.Error(), err)
	}
	if _, err := wordindex.ParseLookup(c.Index.Lookup); err != nil {
		return werrors.ConfigError("index.lookup: "+err.Error(), err)
	}
	if _, err := ranksort.ParseStrategy(c.Sort.Strategy); err != nil {
		return werrors.ConfigError("sort.strategy: "+err.Error(), err)
	}
	if _, err := report.ParseFormat(c.Output.Format); err != nil {
		return werrors.ConfigError(fmt.Sprintf("output.format: unknown format %q", c.Output.Format), err)
	}
	if _, err := output.ParseColorMode(c.Output.Color); err != nil {
		return werrors.ConfigError("output.color: "+err.Error(), err)
	}

	if c.Index.FoldCacheSize < 0 {
		return invalid("index.fold_cache_size must be non-negative, got %d", c.Index.FoldCacheSize)
	}
	if c.Output.Top < 0 {
		return invalid("output.top must be non-negative, got %d", c.Output.Top)
	}
	if c.Output.MinLength < 0 {
		return invalid("output.min_length must be non-negative, got %d", c.Output.MinLength)
	}
	if c.Input.MaxBytes < 0 {
		return invalid("input.max_bytes must be non-negative, got %d", c.Input.MaxBytes)
	}
	if c.Input.Workers < 0 {
		return invalid("input.workers must be non-negative, got %d", c.Input.Workers)
	}
	if c.History.KeepWords < 0 {
		return invalid("history.keep_words must be non-negative, got %d", c.History.KeepWords)
	}
	if c.Logging.MaxSizeMB < 0 || c.Logging.MaxFiles < 0 {
		return invalid("logging.max_size_mb and logging.max_files must be non-negative")
	}

	if _, err := c.WatchDebounce(); err != nil {
		return werrors.ConfigError("watch.debounce: "+err.Error(), err)
	}

	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[strings.ToLower(c.Logging.Level)] {
		return invalid("logging.level must be 'debug', 'info', 'warn', or 'error', got %s", c.Logging.Level)
	}

	return nil
}

// WatchDebounce parses watch.debounce.
func (c *Config) WatchDebounce() (time.Duration, error) {
	d, err := time.ParseDuration(c.Watch.Debounce)
	if err != nil {
		return 0, err
	}
	if d < 0 {
		return 0, fmt.Errorf("must be non-negative, got %s", d)
	}
	return d, nil
}

// Marshal returns the configuration as YAML.
func (c *Config) Marshal() ([]byte, error) {
	data, err := yaml.Marshal(c)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal config: %w", err)
	}
	return data, nil
}

// WriteYAML writes the configuration to a YAML file.
func (c *Config) WriteYAML(path string) error {
	data, err := c.Marshal()
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
