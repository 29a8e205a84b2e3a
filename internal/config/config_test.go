package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestParseDefaultConfig(t *testing.T) {
	cfg, err := parse(DefaultConfigYAML)
	if err != nil {
		t.Fatalf("failed to parse default config: %v", err)
	}

	if cfg.Dataset != "data/papers.json" {
		t.Errorf("expected dataset 'data/papers.json', got %q", cfg.Dataset)
	}
	if cfg.Assets.ImageDir != "images_web" {
		t.Errorf("expected image_dir 'images_web', got %q", cfg.Assets.ImageDir)
	}
	if cfg.Assets.FallbackDir != "images" {
		t.Errorf("expected fallback_dir 'images', got %q", cfg.Assets.FallbackDir)
	}
	if cfg.Server.Port != 8000 {
		t.Errorf("expected port 8000, got %d", cfg.Server.Port)
	}
	if cfg.Private {
		t.Error("expected private mode off by default")
	}
}

func TestParseMinimalConfig(t *testing.T) {
	data := []byte(`
dataset: /srv/papers.db
private: true
server:
  port: 9000
`)
	cfg, err := parse(data)
	if err != nil {
		t.Fatalf("failed to parse minimal config: %v", err)
	}

	if cfg.Dataset != "/srv/papers.db" {
		t.Errorf("expected dataset '/srv/papers.db', got %q", cfg.Dataset)
	}
	if !cfg.Private {
		t.Error("expected private mode on")
	}
	if cfg.Server.Port != 9000 {
		t.Errorf("expected port 9000, got %d", cfg.Server.Port)
	}
	// Defaults should still be set for unspecified fields
	if cfg.Assets.ProbeSample != "2.1/fig_1.png" {
		t.Errorf("expected default probe_sample, got %q", cfg.Assets.ProbeSample)
	}
}

func TestLoadConfigFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, DefaultConfigYAML, 0o644); err != nil {
		t.Fatalf("failed to write temp config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}
	if cfg.Assets.Base != "." {
		t.Errorf("expected asset base '.', got %q", cfg.Assets.Base)
	}
}

func TestResolveConfigPathExplicitMissing(t *testing.T) {
	if _, err := ResolveConfigPath(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("expected error for missing explicit config path")
	}
}
