// Package config loads tool settings from a TOML file with environment
// variable overrides. A missing config file is not an error; every setting
// has a default. BYTESTORM_* variables override file values, which lets
// scripts adjust behavior without touching the user's config.
package config
