package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/pelletier/go-toml/v2"

	"github.com/dshills/bytestorm/internal/engine/codec"
)

// EnvPrefix is the prefix for environment variable overrides.
const EnvPrefix = "BYTESTORM_"

// ErrInvalidSetting is returned when a config value fails validation.
var ErrInvalidSetting = errors.New("invalid setting")

// Config holds the tool settings.
type Config struct {
	// Encoding is the default text encoding for pattern text and character
	// decoding: utf-8, utf-16le, utf-16be, shift_jis, or euc-jp.
	Encoding string `toml:"encoding"`

	// MaxUndoEntries bounds the undo history per document.
	MaxUndoEntries int `toml:"max_undo_entries"`

	// ClipboardLimit bounds the encoded clipboard payload size in bytes.
	ClipboardLimit int `toml:"clipboard_limit"`

	// DumpWidth is the number of bytes per hex dump line.
	DumpWidth int `toml:"dump_width"`

	// LogLevel is the minimum level emitted: debug, info, warn, or error.
	LogLevel string `toml:"log_level"`
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		Encoding:       codec.UTF8.String(),
		MaxUndoEntries: 1000,
		ClipboardLimit: 100_000,
		DumpWidth:      16,
		LogLevel:       "info",
	}
}

// Load reads settings from path, applies environment overrides, and
// validates the result. An empty path uses the default location; a missing
// file leaves the defaults in place.
func Load(path string) (Config, error) {
	c := Default()

	if path == "" {
		path = DefaultPath()
	}
	if err := c.loadFile(path); err != nil {
		return Config{}, err
	}
	c.applyEnv(os.LookupEnv)

	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

// DefaultPath returns the default config file location,
// $XDG_CONFIG_HOME/bytestorm/config.toml or the os.UserConfigDir
// equivalent. Empty when no config directory can be determined.
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "bytestorm", "config.toml")
}

func (c *Config) loadFile(path string) error {
	if path == "" {
		return nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("reading config file %s: %w", path, err)
	}
	if err := toml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("parsing config file %s: %w", path, err)
	}
	return nil
}

// applyEnv overlays BYTESTORM_* variables. lookup is os.LookupEnv in
// production and injectable for tests.
func (c *Config) applyEnv(lookup func(string) (string, bool)) {
	if v, ok := lookup(EnvPrefix + "ENCODING"); ok {
		c.Encoding = v
	}
	if v, ok := lookup(EnvPrefix + "MAX_UNDO_ENTRIES"); ok {
		if n, err := strconv.Atoi(v); err == nil {
			c.MaxUndoEntries = n
		}
	}
	if v, ok := lookup(EnvPrefix + "CLIPBOARD_LIMIT"); ok {
		if n, err := strconv.Atoi(v); err == nil {
			c.ClipboardLimit = n
		}
	}
	if v, ok := lookup(EnvPrefix + "DUMP_WIDTH"); ok {
		if n, err := strconv.Atoi(v); err == nil {
			c.DumpWidth = n
		}
	}
	if v, ok := lookup(EnvPrefix + "LOG_LEVEL"); ok {
		c.LogLevel = v
	}
}

// Validate checks every setting and reports the first problem.
func (c *Config) Validate() error {
	if _, ok := codec.Parse(c.Encoding); !ok {
		return fmt.Errorf("encoding %q: %w", c.Encoding, ErrInvalidSetting)
	}
	if c.MaxUndoEntries <= 0 {
		return fmt.Errorf("max_undo_entries %d: %w", c.MaxUndoEntries, ErrInvalidSetting)
	}
	if c.ClipboardLimit <= 0 {
		return fmt.Errorf("clipboard_limit %d: %w", c.ClipboardLimit, ErrInvalidSetting)
	}
	if c.DumpWidth <= 0 {
		return fmt.Errorf("dump_width %d: %w", c.DumpWidth, ErrInvalidSetting)
	}
	switch strings.ToLower(c.LogLevel) {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("log_level %q: %w", c.LogLevel, ErrInvalidSetting)
	}
	return nil
}

// DefaultEncoding returns the configured encoding. Call Validate first;
// an unparseable name falls back to UTF-8.
func (c *Config) DefaultEncoding() codec.Encoding {
	if e, ok := codec.Parse(c.Encoding); ok {
		return e
	}
	return codec.UTF8
}
