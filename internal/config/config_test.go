package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.View.Depth != 3 {
		t.Errorf("expected depth 3, got %d", cfg.View.Depth)
	}
	if cfg.View.Width != 500 || cfg.View.Height != 500 {
		t.Errorf("expected 500x500 canvas, got %gx%g", cfg.View.Width, cfg.View.Height)
	}
	if cfg.View.Suggestions != 5 {
		t.Errorf("expected 5 suggestions, got %d", cfg.View.Suggestions)
	}
	if !cfg.UI.Color {
		t.Error("default color should be true")
	}
	if cfg.Random.Seed != 0 {
		t.Error("default seed should be 0 (clock)")
	}
	if cfg.Data.Dir != "data" {
		t.Errorf("expected data dir 'data', got %q", cfg.Data.Dir)
	}
}

func TestConfigDir(t *testing.T) {
	// Test with XDG_CONFIG_HOME set
	t.Setenv("XDG_CONFIG_HOME", "/tmp/test-xdg")
	dir := ConfigDir()
	if dir != "/tmp/test-xdg/cxgraph" {
		t.Errorf("expected /tmp/test-xdg/cxgraph, got %q", dir)
	}

	// Test without XDG_CONFIG_HOME
	t.Setenv("XDG_CONFIG_HOME", "")
	dir = ConfigDir()
	home, _ := os.UserHomeDir()
	expected := filepath.Join(home, ".config", "cxgraph")
	if dir != expected {
		t.Errorf("expected %q, got %q", expected, dir)
	}
}

func TestSaveAndLoad(t *testing.T) {
	tmpDir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", tmpDir)

	cfg := Default()
	cfg.View.Depth = 2
	cfg.Random.Seed = 99
	cfg.Data.Relations = "/srv/rel.yaml"

	if err := Save(cfg); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	loaded := Load()
	if loaded.View.Depth != 2 {
		t.Errorf("expected depth 2, got %d", loaded.View.Depth)
	}
	if loaded.Random.Seed != 99 {
		t.Errorf("expected seed 99, got %d", loaded.Random.Seed)
	}
	if loaded.Data.Relations != "/srv/rel.yaml" {
		t.Errorf("expected relations override, got %q", loaded.Data.Relations)
	}
}

func TestLoadPartialFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("[view]\ndepth = 1\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile failed: %v", err)
	}
	if cfg.View.Depth != 1 {
		t.Errorf("expected depth 1, got %d", cfg.View.Depth)
	}
	if cfg.View.Width != 500 {
		t.Errorf("unset keys should keep defaults, got width %g", cfg.View.Width)
	}
}

func TestLoadFileInvalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("[view\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFile(path)
	if err == nil {
		t.Fatal("expected parse error")
	}
	if cfg.View.Depth != 3 {
		t.Error("expected defaults on parse error")
	}
}

func TestEnsureExists(t *testing.T) {
	tmpDir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", tmpDir)

	if err := EnsureExists(); err != nil {
		t.Fatalf("EnsureExists failed: %v", err)
	}

	path := filepath.Join(tmpDir, "cxgraph", "config.toml")
	if _, err := os.Stat(path); err != nil {
		t.Errorf("config file not created: %v", err)
	}

	// Second call should be no-op
	if err := EnsureExists(); err != nil {
		t.Fatalf("EnsureExists second call failed: %v", err)
	}
}
