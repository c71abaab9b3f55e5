package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/conorfennell/smartlearner/internal/schedule"
)

func loadWith(t *testing.T, args ...string) (*Config, error) {
	t.Helper()
	flags := Flags()
	if err := flags.Parse(args); err != nil {
		t.Fatalf("Failed to parse flags: %v", err)
	}
	return Load(flags)
}

func TestLoadDefaults(t *testing.T) {
	data := t.TempDir()
	t.Setenv("XDG_DATA_HOME", data)

	cfg, err := loadWith(t)
	if err != nil {
		t.Fatalf("Load() returned an unexpected error: %v", err)
	}

	folder := filepath.Join(data, "smartlearner")
	if cfg.Folder != folder {
		t.Errorf("Expected folder %s, but got %s", folder, cfg.Folder)
	}
	if cfg.DB != filepath.Join(folder, "smartlearner.db") {
		t.Errorf("Expected db inside the folder, but got %s", cfg.DB)
	}
	if cfg.LogLevel != "info" {
		t.Errorf("Expected log level info, but got %s", cfg.LogLevel)
	}
	if len(cfg.Intervals) != len(schedule.DefaultIntervals()) {
		t.Errorf("Expected default intervals, but got %v", cfg.Intervals)
	}
	if _, err := cfg.Scheduler(); err != nil {
		t.Errorf("Scheduler() returned an unexpected error: %v", err)
	}
}

func TestLoadPrecedence(t *testing.T) {
	t.Setenv("XDG_DATA_HOME", t.TempDir())
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := "folder: /from/file\nloglevel: warn\nintervals: [0, 2, 5, 10]\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("Failed to write config file: %v", err)
	}

	t.Run("file", func(t *testing.T) {
		cfg, err := loadWith(t, "--config", path)
		if err != nil {
			t.Fatalf("Load() returned an unexpected error: %v", err)
		}
		if cfg.Folder != "/from/file" || cfg.LogLevel != "warn" {
			t.Errorf("Expected file values, but got %s / %s", cfg.Folder, cfg.LogLevel)
		}
		if len(cfg.Intervals) != 4 || cfg.Intervals[3] != 10 {
			t.Errorf("Expected intervals from file, but got %v", cfg.Intervals)
		}
	})

	t.Run("environment over file", func(t *testing.T) {
		t.Setenv("SMARTLEARNER_LOGLEVEL", "debug")
		cfg, err := loadWith(t, "--config", path)
		if err != nil {
			t.Fatalf("Load() returned an unexpected error: %v", err)
		}
		if cfg.LogLevel != "debug" {
			t.Errorf("Expected debug from environment, but got %s", cfg.LogLevel)
		}
	})

	t.Run("flags over environment", func(t *testing.T) {
		t.Setenv("SMARTLEARNER_FOLDER", "/from/env")
		cfg, err := loadWith(t, "--config", path, "--folder", "/from/flag", "--db", "/tmp/x.db")
		if err != nil {
			t.Fatalf("Load() returned an unexpected error: %v", err)
		}
		if cfg.Folder != "/from/flag" || cfg.DB != "/tmp/x.db" {
			t.Errorf("Expected flag values, but got %s / %s", cfg.Folder, cfg.DB)
		}
	})
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	t.Setenv("XDG_DATA_HOME", t.TempDir())

	if _, err := loadWith(t, "--loglevel", "loud"); err == nil {
		t.Error("Expected an unknown log level to be rejected")
	}

	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("intervals: [0, 7, 3]\n"), 0o644); err != nil {
		t.Fatalf("Failed to write config file: %v", err)
	}
	_, err := loadWith(t, "--config", path)
	if !errors.Is(err, schedule.ErrInvalidIntervals) {
		t.Errorf("Expected ErrInvalidIntervals, but got %v", err)
	}

	if _, err := loadWith(t, "--config", filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("Expected a missing config file to be an error")
	}
}
