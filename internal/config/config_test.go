package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.API.BaseURL == "" {
		t.Error("default base URL is empty")
	}
	if !strings.HasPrefix(cfg.API.BaseURL, "https://") {
		t.Errorf("default base URL is not https: %s", cfg.API.BaseURL)
	}
	if cfg.Defaults.PageSize != DefaultPageSize {
		t.Errorf("PageSize = %d, want %d", cfg.Defaults.PageSize, DefaultPageSize)
	}
	if cfg.Defaults.ReadingSpeedWPM <= 0 {
		t.Errorf("ReadingSpeedWPM = %d, want positive", cfg.Defaults.ReadingSpeedWPM)
	}
}

func TestNewManager(t *testing.T) {
	t.Run("missing config file uses defaults", func(t *testing.T) {
		cm, err := NewManager("")
		if err != nil {
			t.Fatalf("NewManager() error = %v", err)
		}

		cfg := cm.Get()
		if cfg.API.BaseURL != DefaultBaseURL {
			t.Errorf("BaseURL = %s, want %s", cfg.API.BaseURL, DefaultBaseURL)
		}
	})

	t.Run("explicit config file overrides defaults", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.yaml")
		content := "api:\n  base_url: http://localhost:9000/api/v1\n  timeout_seconds: 5\n"
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}

		cm, err := NewManager(path)
		if err != nil {
			t.Fatalf("NewManager() error = %v", err)
		}

		cfg := cm.Get()
		if cfg.API.BaseURL != "http://localhost:9000/api/v1" {
			t.Errorf("BaseURL = %s, want override", cfg.API.BaseURL)
		}
		if cfg.API.TimeoutSeconds != 5 {
			t.Errorf("TimeoutSeconds = %d, want 5", cfg.API.TimeoutSeconds)
		}
		// Unset keys keep their defaults.
		if cfg.Defaults.PageSize != DefaultPageSize {
			t.Errorf("PageSize = %d, want default %d", cfg.Defaults.PageSize, DefaultPageSize)
		}
	})
}

func TestWriteDefault(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")

	if err := WriteDefault(path); err != nil {
		t.Fatalf("WriteDefault() error = %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read written config: %v", err)
	}

	if !strings.HasPrefix(string(data), "# Aithor configuration") {
		t.Error("written config missing header comment")
	}
	if !strings.Contains(string(data), "base_url") {
		t.Error("written config missing base_url key")
	}
}
