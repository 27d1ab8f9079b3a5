package config_test

import (
	"os"
	"strings"
	"testing"

	"github.com/hgweller/gopatmat/internal/config"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{"PATMAT_CACHE", "PATMAT_STACK_SIZE", "PATMAT_NO_COLOR"} {
		old, had := os.LookupEnv(k)
		os.Unsetenv(k)
		t.Cleanup(func() {
			if had {
				os.Setenv(k, old)
			}
		})
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)
	cfg := config.Load()
	if cfg.StackSize <= 0 {
		t.Fatalf("default StackSize = %d, want > 0", cfg.StackSize)
	}
	if cfg.CachePath == "" {
		t.Fatalf("default CachePath is empty")
	}
	if cfg.NoColor {
		t.Fatalf("default NoColor should be false")
	}
}

func TestLoadOverridesFromEnv(t *testing.T) {
	clearEnv(t)
	os.Setenv("PATMAT_CACHE", "/tmp/mine.db")
	os.Setenv("PATMAT_STACK_SIZE", "128")
	os.Setenv("PATMAT_NO_COLOR", "true")

	cfg := config.Load()
	if cfg.CachePath != "/tmp/mine.db" {
		t.Fatalf("CachePath = %q, want /tmp/mine.db", cfg.CachePath)
	}
	if cfg.StackSize != 128 {
		t.Fatalf("StackSize = %d, want 128", cfg.StackSize)
	}
	if !cfg.NoColor {
		t.Fatalf("NoColor = false, want true")
	}
}

func TestLoadIgnoresUnparsableStackSize(t *testing.T) {
	clearEnv(t)
	os.Setenv("PATMAT_STACK_SIZE", "not-a-number")

	cfg := config.Load()
	if cfg.StackSize <= 0 {
		t.Fatalf("StackSize = %d, want the positive default on parse failure", cfg.StackSize)
	}
}

func TestDefaultCachePathUnderHome(t *testing.T) {
	clearEnv(t)
	cfg := config.Load()
	home, err := os.UserHomeDir()
	if err == nil && home != "" {
		if !strings.HasPrefix(cfg.CachePath, home) {
			t.Fatalf("CachePath %q should live under home %q", cfg.CachePath, home)
		}
	}
}
