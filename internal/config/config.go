// Package config loads the debugbar configuration from a TOML file,
// merging explicitly present keys over built-in defaults and validating
// the result. Unknown keys are reported as warnings, not errors.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

type Config struct {
	Capture CaptureConfig
	Log     LogConfig
	Archive ArchiveConfig
	Panel   PanelConfig
}

type CaptureConfig struct {
	// BufferSize bounds each category bucket within one request.
	BufferSize int `toml:"buffer_size"`
}

// Log sink names accepted by LogConfig.Sink.
const (
	SinkStderr = "stderr"
	SinkFile   = "file"
	SinkSQLite = "sqlite"
	SinkNone   = "none"
)

type LogConfig struct {
	// Sink selects the log destination: stderr, file, sqlite, or none.
	Sink string `toml:"sink"`
	// Path is the log file path; required when sink = "file".
	Path string `toml:"path"`
}

type ArchiveConfig struct {
	DBPath        string `toml:"db_path"`
	RetentionDays int    `toml:"retention_days"`
}

type PanelConfig struct {
	Enabled   bool   `toml:"enabled"`
	DumpStyle string `toml:"dump_style"`
}

type LoadResult struct {
	Config   Config
	Warnings []string
}

func DefaultConfig() Config {
	return Config{
		Capture: CaptureConfig{BufferSize: 500},
		Log:     LogConfig{Sink: SinkStderr},
		Archive: ArchiveConfig{
			DBPath:        defaultDBPath(),
			RetentionDays: 7,
		},
		Panel: PanelConfig{
			Enabled:   true,
			DumpStyle: "verbose",
		},
	}
}

func defaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "debugbar", "config.toml")
}

func defaultDBPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "debugbar.db"
	}
	return filepath.Join(home, ".local", "share", "debugbar", "archive.db")
}

// Load reads the config from its default path. A missing file yields the
// defaults with no warnings.
func Load() (*LoadResult, error) {
	return LoadFrom(defaultConfigPath())
}

// LoadFrom reads the config from path.
func LoadFrom(path string) (*LoadResult, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			cfg := DefaultConfig()
			return &LoadResult{Config: cfg}, nil
		}
		return nil, fmt.Errorf("reading config file: %w", err)
	}
	return LoadFromString(string(data))
}

type tomlFile struct {
	Capture *CaptureConfig `toml:"capture"`
	Log     *LogConfig     `toml:"log"`
	Archive *ArchiveConfig `toml:"archive"`
	Panel   *PanelConfig   `toml:"panel"`
}

// LoadFromString parses the given TOML document.
func LoadFromString(data string) (*LoadResult, error) {
	cfg := DefaultConfig()
	result := &LoadResult{Config: cfg}

	if data == "" {
		return result, nil
	}

	var raw map[string]any
	if _, err := toml.Decode(data, &raw); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	knownTopLevel := map[string]bool{
		"capture": true,
		"log":     true,
		"archive": true,
		"panel":   true,
	}
	for key := range raw {
		if !knownTopLevel[key] {
			result.Warnings = append(result.Warnings, fmt.Sprintf("unknown config key: %q", key))
		}
	}

	var tf tomlFile
	if _, err := toml.Decode(data, &tf); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	mergeFromRaw(&result.Config, &tf, raw)

	if err := validate(&result.Config); err != nil {
		return nil, err
	}

	return result, nil
}

// mergeFromRaw overwrites defaults only with keys the file actually
// contains, so a zero value in the file is honored while an absent key is
// not.
func mergeFromRaw(cfg *Config, tf *tomlFile, raw map[string]any) {
	if tf.Capture != nil {
		if section, ok := rawSection(raw, "capture"); ok {
			if _, exists := section["buffer_size"]; exists {
				cfg.Capture.BufferSize = tf.Capture.BufferSize
			}
		}
	}
	if tf.Log != nil {
		if section, ok := rawSection(raw, "log"); ok {
			if _, exists := section["sink"]; exists {
				cfg.Log.Sink = tf.Log.Sink
			}
			if _, exists := section["path"]; exists {
				cfg.Log.Path = tf.Log.Path
			}
		}
	}
	if tf.Archive != nil {
		if section, ok := rawSection(raw, "archive"); ok {
			if _, exists := section["db_path"]; exists {
				cfg.Archive.DBPath = tf.Archive.DBPath
			}
			if _, exists := section["retention_days"]; exists {
				cfg.Archive.RetentionDays = tf.Archive.RetentionDays
			}
		}
	}
	if tf.Panel != nil {
		if section, ok := rawSection(raw, "panel"); ok {
			if _, exists := section["enabled"]; exists {
				cfg.Panel.Enabled = tf.Panel.Enabled
			}
			if _, exists := section["dump_style"]; exists {
				cfg.Panel.DumpStyle = tf.Panel.DumpStyle
			}
		}
	}
}

func rawSection(raw map[string]any, key string) (map[string]any, bool) {
	v, ok := raw[key]
	if !ok {
		return nil, false
	}
	m, ok := v.(map[string]any)
	return m, ok
}

func validate(cfg *Config) error {
	var errs []string

	if cfg.Capture.BufferSize < 1 {
		errs = append(errs, fmt.Sprintf("capture buffer_size must be positive, got %d", cfg.Capture.BufferSize))
	}

	switch cfg.Log.Sink {
	case SinkStderr, SinkSQLite, SinkNone:
	case SinkFile:
		if cfg.Log.Path == "" {
			errs = append(errs, "log path is required when sink = \"file\"")
		}
	default:
		errs = append(errs, fmt.Sprintf("log sink must be one of stderr|file|sqlite|none, got %q", cfg.Log.Sink))
	}

	if cfg.Archive.RetentionDays < 1 {
		errs = append(errs, fmt.Sprintf("archive retention_days must be positive, got %d", cfg.Archive.RetentionDays))
	}

	switch cfg.Panel.DumpStyle {
	case "verbose", "readable", "reconstructable":
	default:
		errs = append(errs, fmt.Sprintf("panel dump_style must be one of verbose|readable|reconstructable, got %q", cfg.Panel.DumpStyle))
	}

	if len(errs) > 0 {
		return fmt.Errorf("config validation error: %s", strings.Join(errs, "; "))
	}
	return nil
}
