// Package config loads process-level settings for the CLI and REPL
// directly from environment variables with os.Getenv, rather than
// through a configuration framework.
package config

import (
	"os"
	"path/filepath"
	"strconv"
)

// Config holds the settings a single match call's Flags can't carry:
// where persisted patterns live, how big the matcher's history stack
// starts, and whether trace output should avoid ANSI color.
type Config struct {
	// CachePath is the sqlite file internal/store opens for named
	// pattern persistence.
	CachePath string

	// StackSize is the initial capacity of the matcher's history
	// stack; configurable here for benchmarking a pattern that is
	// known to need deep backtracking up front, avoiding repeated
	// reallocation.
	StackSize int

	// NoColor disables ANSI coloring in internal/trace output even
	// when stderr is a terminal.
	NoColor bool
}

const (
	envCache     = "PATMAT_CACHE"
	envStackSize = "PATMAT_STACK_SIZE"
	envNoColor   = "PATMAT_NO_COLOR"

	defaultStackSize = 64
)

// defaultCachePath returns ~/.patmat/patterns.db, falling back to a
// relative path if the home directory can't be resolved.
func defaultCachePath() string {
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return "patmat-patterns.db"
	}
	return filepath.Join(home, ".patmat", "patterns.db")
}

// Load reads Config from the environment, applying defaults for any
// variable that is unset or unparsable.
func Load() Config {
	cfg := Config{
		CachePath: defaultCachePath(),
		StackSize: defaultStackSize,
	}

	if v := os.Getenv(envCache); v != "" {
		cfg.CachePath = v
	}

	if v := os.Getenv(envStackSize); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.StackSize = n
		}
	}

	if v := os.Getenv(envNoColor); v != "" {
		cfg.NoColor, _ = strconv.ParseBool(v)
	}

	return cfg
}
