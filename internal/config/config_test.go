package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/dshills/bytestorm/internal/engine/codec"
)

func TestDefaultValid(t *testing.T) {
	c := Default()
	if err := c.Validate(); err != nil {
		t.Fatalf("defaults invalid: %v", err)
	}
	if c.DefaultEncoding() != codec.UTF8 {
		t.Errorf("default encoding = %v", c.DefaultEncoding())
	}
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	content := `
encoding = "shift_jis"
max_undo_entries = 50
dump_width = 8
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	c, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if c.DefaultEncoding() != codec.ShiftJIS {
		t.Errorf("encoding = %v", c.DefaultEncoding())
	}
	if c.MaxUndoEntries != 50 || c.DumpWidth != 8 {
		t.Errorf("config = %+v", c)
	}
	// Unset keys keep their defaults.
	if c.ClipboardLimit != Default().ClipboardLimit {
		t.Errorf("clipboard limit = %d", c.ClipboardLimit)
	}
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	c, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	if err != nil {
		t.Fatal(err)
	}
	if c != Default() {
		t.Errorf("config = %+v, want defaults", c)
	}
}

func TestLoadParseError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("encoding = [broken"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Error("malformed TOML did not error")
	}
}

func TestEnvOverrides(t *testing.T) {
	env := map[string]string{
		"BYTESTORM_ENCODING":   "euc-jp",
		"BYTESTORM_DUMP_WIDTH": "32",
		"BYTESTORM_LOG_LEVEL":  "debug",
	}
	c := Default()
	c.applyEnv(func(key string) (string, bool) {
		v, ok := env[key]
		return v, ok
	})

	if err := c.Validate(); err != nil {
		t.Fatal(err)
	}
	if c.DefaultEncoding() != codec.EUCJP {
		t.Errorf("encoding = %v", c.DefaultEncoding())
	}
	if c.DumpWidth != 32 || c.LogLevel != "debug" {
		t.Errorf("config = %+v", c)
	}
	// Untouched settings keep their values.
	if c.MaxUndoEntries != Default().MaxUndoEntries {
		t.Errorf("max undo = %d", c.MaxUndoEntries)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"bad encoding", func(c *Config) { c.Encoding = "KOI8-R" }},
		{"zero undo", func(c *Config) { c.MaxUndoEntries = 0 }},
		{"negative limit", func(c *Config) { c.ClipboardLimit = -1 }},
		{"zero width", func(c *Config) { c.DumpWidth = 0 }},
		{"bad level", func(c *Config) { c.LogLevel = "loud" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := Default()
			tt.mutate(&c)
			if err := c.Validate(); !errors.Is(err, ErrInvalidSetting) {
				t.Errorf("err = %v, want ErrInvalidSetting", err)
			}
		})
	}
}
