package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadMissingFile(t *testing.T) {
	t.Setenv("PORT", "")

	cfg, err := Load(filepath.Join(t.TempDir(), "settings.json"))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Port != "8000" {
		t.Errorf("Port = %q, want %q", cfg.Port, "8000")
	}
	if cfg.TemplatesDir != "templates" {
		t.Errorf("TemplatesDir = %q, want %q", cfg.TemplatesDir, "templates")
	}
	if cfg.PostsFile != "posts.json" {
		t.Errorf("PostsFile = %q, want %q", cfg.PostsFile, "posts.json")
	}
	if cfg.EmptyMessage == "" {
		t.Error("EmptyMessage should have a default")
	}
}

func TestLoadPortFromEnv(t *testing.T) {
	t.Setenv("PORT", "9090")

	cfg, err := Load(filepath.Join(t.TempDir(), "settings.json"))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Port != "9090" {
		t.Errorf("Port = %q, want %q", cfg.Port, "9090")
	}
}

func TestLoadOverlayKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.json")
	if err := os.WriteFile(path, []byte(`{"title": "Sitio de prueba", "port": "8080"}`), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Title != "Sitio de prueba" {
		t.Errorf("Title = %q, want overlay value", cfg.Title)
	}
	if cfg.Port != "8080" {
		t.Errorf("Port = %q, want overlay value", cfg.Port)
	}
	if cfg.TemplatesDir != "templates" {
		t.Errorf("TemplatesDir = %q, want default preserved", cfg.TemplatesDir)
	}
}

func TestLoadMalformedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.json")
	if err := os.WriteFile(path, []byte("{broken"), 0644); err != nil {
		t.Fatal(err)
	}

	if _, err := Load(path); err == nil {
		t.Error("Expected error for malformed settings file")
	}
}
