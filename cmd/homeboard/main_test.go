package main

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"
)

// TestRun_InvalidConfig verifies run fails with an invalid config path.
func TestRun_InvalidConfig(t *testing.T) {
	t.Setenv("HOMEBOARD_CONFIG", "/nonexistent/path/config.yaml")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := run(ctx); err == nil {
		t.Fatal("run() should fail with invalid config path")
	}
}

// TestRun_ValidationFailure verifies run fails when the config is invalid.
func TestRun_ValidationFailure(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.yaml")
	content := `
gateway:
  base_url: ""
refresh:
  interval: 30
`
	if err := os.WriteFile(configPath, []byte(content), 0600); err != nil {
		t.Fatalf("writing config: %v", err)
	}
	t.Setenv("HOMEBOARD_CONFIG", configPath)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := run(ctx); err == nil {
		t.Fatal("run() should fail validation for empty gateway url")
	}
}

func TestGetConfigPath(t *testing.T) {
	t.Setenv("HOMEBOARD_CONFIG", "")
	if got := getConfigPath(); got != defaultConfigPath {
		t.Errorf("getConfigPath() = %q, want %q", got, defaultConfigPath)
	}

	t.Setenv("HOMEBOARD_CONFIG", "/etc/homeboard/config.yaml")
	if got := getConfigPath(); got != "/etc/homeboard/config.yaml" {
		t.Errorf("getConfigPath() = %q, want override", got)
	}
}
