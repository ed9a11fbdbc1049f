package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadOrCreateWritesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), DefaultConfigFileName)
	cfg, err := LoadOrCreate(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.DBPath != DefaultDBName || cfg.UndoSeconds != 5 || cfg.TrashMaxAgeDays != 7 {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("config file not written: %v", err)
	}
}

func TestLoadOrCreateReadsExistingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), DefaultConfigFileName)
	content := "db_path = \"custom.db\"\nundo_seconds = 10\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	cfg, err := LoadOrCreate(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.DBPath != "custom.db" || cfg.UndoSeconds != 10 {
		t.Fatalf("unexpected config: %+v", cfg)
	}
	if cfg.TrashMaxAgeDays != 7 {
		t.Fatalf("missing field not defaulted: %+v", cfg)
	}
}

func TestEnvOverridesConfigFile(t *testing.T) {
	t.Setenv("DAYLIST_DB_PATH", "/tmp/env.db")
	t.Setenv("DAYLIST_UNDO_SECONDS", "3")
	path := filepath.Join(t.TempDir(), DefaultConfigFileName)
	cfg, err := LoadOrCreate(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.DBPath != "/tmp/env.db" || cfg.UndoSeconds != 3 {
		t.Fatalf("env overrides not applied: %+v", cfg)
	}
}

func TestBadEnvIntIgnored(t *testing.T) {
	t.Setenv("DAYLIST_UNDO_SECONDS", "not-a-number")
	path := filepath.Join(t.TempDir(), DefaultConfigFileName)
	cfg, err := LoadOrCreate(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.UndoSeconds != 5 {
		t.Fatalf("bad env value leaked: %+v", cfg)
	}
}
