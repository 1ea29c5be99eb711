// Package config provides configuration types and defaults for photoalbum.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/zjrosen/photoalbum/internal/domain/album"
	"github.com/zjrosen/photoalbum/internal/flags"
	"github.com/zjrosen/photoalbum/internal/log"
	"github.com/zjrosen/photoalbum/internal/presentation"
	"github.com/zjrosen/photoalbum/internal/tracing"
)

// Config holds all configuration options for photoalbum.
type Config struct {
	View     ViewConfig      `mapstructure:"view"`
	Snapshot SnapshotConfig  `mapstructure:"snapshot"`
	Serve    ServeConfig     `mapstructure:"serve"`
	Watch    WatchConfig     `mapstructure:"watch"`
	Cache    CacheConfig     `mapstructure:"cache"`
	Log      LogConfig       `mapstructure:"log"`
	Tracing  tracing.Config  `mapstructure:"tracing"`
	Flags    map[string]bool `mapstructure:"flags"`
}

// ViewConfig sizes the drawing area of the web view.
type ViewConfig struct {
	Width  int `mapstructure:"width"`
	Height int `mapstructure:"height"`
}

// SnapshotConfig controls snapshot identifiers and timestamps.
type SnapshotConfig struct {
	IDFormat        string `mapstructure:"id_format"`        // "timestamp" (default) or "uuidv7"
	TimestampLayout string `mapstructure:"timestamp_layout"` // Go time layout for display timestamps
}

// ServeConfig holds HTTP server settings.
type ServeConfig struct {
	Addr string `mapstructure:"addr"`
}

// WatchConfig holds command file watching settings.
type WatchConfig struct {
	Debounce time.Duration `mapstructure:"debounce"`
}

// CacheConfig controls the rendered SVG cache.
type CacheConfig struct {
	Enabled bool          `mapstructure:"enabled"`
	TTL     time.Duration `mapstructure:"ttl"`
}

// LogConfig controls the debug log.
type LogConfig struct {
	File  string `mapstructure:"file"`
	Level string `mapstructure:"level"`
}

// Defaults returns a Config with sensible default values.
func Defaults() Config {
	return Config{
		View: ViewConfig{
			Width:  presentation.DefaultCanvasSize,
			Height: presentation.DefaultCanvasSize,
		},
		Snapshot: SnapshotConfig{
			IDFormat:        "timestamp",
			TimestampLayout: album.DefaultTimestampLayout,
		},
		Serve: ServeConfig{
			Addr: "127.0.0.1:8080",
		},
		Watch: WatchConfig{
			Debounce: 250 * time.Millisecond,
		},
		Cache: CacheConfig{
			Enabled: true,
			TTL:     10 * time.Minute,
		},
		Log: LogConfig{
			File:  "photoalbum.log",
			Level: "debug",
		},
		Tracing: tracing.DefaultConfig(),
		Flags: map[string]bool{
			flags.FlagSilentMissingShape:        false,
			flags.FlagLegacySnapshotDescription: false,
			flags.FlagLenientArity:              false,
		},
	}
}

// Validate checks every section and reports all problems at once.
func (c Config) Validate() error {
	return errors.Join(
		ValidateView(c.View),
		ValidateSnapshot(c.Snapshot),
		ValidateWatch(c.Watch),
		ValidateCache(c.Cache),
		ValidateLog(c.Log),
		c.Tracing.Validate(),
	)
}

// ValidateView checks that the canvas is positive.
func ValidateView(v ViewConfig) error {
	if v.Width <= 0 || v.Height <= 0 {
		return fmt.Errorf("view.width and view.height must be positive, got %dx%d", v.Width, v.Height)
	}
	return nil
}

// ValidateSnapshot checks the identifier format.
func ValidateSnapshot(s SnapshotConfig) error {
	if _, ok := album.IDGeneratorFor(s.IDFormat); !ok {
		return fmt.Errorf("snapshot.id_format must be \"timestamp\" or \"uuidv7\", got %q", s.IDFormat)
	}
	return nil
}

// ValidateWatch checks the debounce interval.
func ValidateWatch(w WatchConfig) error {
	if w.Debounce < 0 {
		return fmt.Errorf("watch.debounce must not be negative, got %s", w.Debounce)
	}
	return nil
}

// ValidateCache checks the cache ttl.
func ValidateCache(c CacheConfig) error {
	if c.TTL < 0 {
		return fmt.Errorf("cache.ttl must not be negative, got %s", c.TTL)
	}
	return nil
}

// ValidateLog checks the log level name.
func ValidateLog(l LogConfig) error {
	if l.Level == "" {
		return nil
	}
	if _, ok := log.ParseLevel(l.Level); !ok {
		return fmt.Errorf("log.level must be debug, info, warn or error, got %q", l.Level)
	}
	return nil
}

// Canvas returns the configured web view canvas.
func (c Config) Canvas() presentation.Canvas {
	return presentation.Canvas{Width: c.View.Width, Height: c.View.Height}
}

// AlbumOptions translates the snapshot settings into album options.
func (c Config) AlbumOptions() []album.Option {
	var opts []album.Option
	if gen, ok := album.IDGeneratorFor(c.Snapshot.IDFormat); ok {
		opts = append(opts, album.WithIDGenerator(gen))
	}
	if c.Snapshot.TimestampLayout != "" {
		opts = append(opts, album.WithTimestampLayout(c.Snapshot.TimestampLayout))
	}
	return opts
}

// DefaultTracesFilePath returns ~/.config/photoalbum/traces/traces.jsonl,
// or an empty string if the home directory is unavailable.
func DefaultTracesFilePath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "photoalbum", "traces", "traces.jsonl")
}

// DefaultConfigTemplate returns the default config as a YAML string with comments.
func DefaultConfigTemplate() string {
	return `# Photo album configuration

# Web view canvas, overridden by the positional xmax/ymax arguments of "run"
view:
  width: 1000
  height: 1000

snapshot:
  id_format: timestamp                    # "timestamp" or "uuidv7"
  timestamp_layout: "02-01-2006 15:04:05" # Go time layout, local time

serve:
  addr: 127.0.0.1:8080

# Quiet period after the command file changes before it is re-read
watch:
  debounce: 250ms

# Rendered snapshot images are cached by snapshot id
cache:
  enabled: true
  ttl: 10m

# Debug log, written when --debug or PHOTOALBUM_DEBUG is set
log:
  file: photoalbum.log
  level: debug

tracing:
  enabled: false
  exporter: file          # "none", "file", "stdout" or "otlp"
  # file_path: ~/.config/photoalbum/traces/traces.jsonl
  otlp_endpoint: localhost:4317
  sample_rate: 1.0
  service_name: photoalbum

# Compatibility switches for older command files
flags:
  silent-missing-shape: false         # move/color on an unknown shape is ignored
  legacy-snapshot-description: false  # keep only the first and last description word
  lenient-arity: false                # ignore extra tokens after the last argument
`
}

// WriteDefaultConfig creates a config file at the given path with default settings and comments.
// Creates the parent directory if it doesn't exist.
func WriteDefaultConfig(configPath string) error {
	log.Debug(log.CatConfig, "Writing default config", "path", configPath)

	dir := filepath.Dir(configPath)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		log.ErrorErr(log.CatConfig, "Failed to create config directory", err, "dir", dir)
		return fmt.Errorf("creating config directory: %w", err)
	}

	if err := os.WriteFile(configPath, []byte(DefaultConfigTemplate()), 0o600); err != nil {
		log.ErrorErr(log.CatConfig, "Failed to write config file", err, "path", configPath)
		return fmt.Errorf("writing config file: %w", err)
	}

	log.Info(log.CatConfig, "Created default config", "path", configPath)
	return nil
}
