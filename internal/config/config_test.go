// Where: cli/internal/config/config_test.go
// What: Tests for config loading and schema validation.
package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "azsnap.yml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadMissingDefaultFileUsesDefaults(t *testing.T) {
	oldWD, err := os.Getwd()
	if err != nil {
		t.Fatalf("getwd: %v", err)
	}
	if err := os.Chdir(t.TempDir()); err != nil {
		t.Fatalf("chdir: %v", err)
	}
	t.Cleanup(func() {
		if err := os.Chdir(oldWD); err != nil {
			t.Fatalf("restore wd: %v", err)
		}
	})

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Concurrency.Search != 8 || cfg.Concurrency.Delete != 4 {
		t.Errorf("concurrency = %+v, want defaults", cfg.Concurrency)
	}
	if cfg.Retry.MaxAttempts != 3 {
		t.Errorf("maxAttempts = %d, want 3", cfg.Retry.MaxAttempts)
	}
	if cfg.LargeBatchThreshold != 100 {
		t.Errorf("largeBatchThreshold = %d, want 100", cfg.LargeBatchThreshold)
	}
}

func TestLoadExplicitMissingFileFails(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yml")); err == nil {
		t.Fatal("expected error for explicit missing config")
	}
}

func TestLoadMergesOverDefaults(t *testing.T) {
	path := writeConfig(t, "concurrency:\n  search: 16\nretry:\n  maxAttempts: 5\n")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Concurrency.Search != 16 {
		t.Errorf("search concurrency = %d, want 16", cfg.Concurrency.Search)
	}
	if cfg.Concurrency.Delete != 4 {
		t.Errorf("delete concurrency = %d, want default 4", cfg.Concurrency.Delete)
	}
	if cfg.Retry.MaxAttempts != 5 {
		t.Errorf("maxAttempts = %d, want 5", cfg.Retry.MaxAttempts)
	}
}

func TestLoadRejectsSchemaViolations(t *testing.T) {
	cases := []struct {
		name    string
		content string
	}{
		{"unknown key", "concurency:\n  search: 8\n"},
		{"zero concurrency", "concurrency:\n  search: 0\n"},
		{"wrong type", "retry:\n  maxAttempts: lots\n"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			path := writeConfig(t, tc.content)
			if _, err := Load(path); err == nil {
				t.Errorf("Load accepted invalid config:\n%s", tc.content)
			}
		})
	}
}
