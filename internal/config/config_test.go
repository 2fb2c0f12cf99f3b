package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yml")
	body := `
database:
  path: /tmp/decks.db
generate:
  provider: openai
  model: gpt-4o-mini
  questions: 8
update:
  disabled: true
`
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Database.Path != "/tmp/decks.db" {
		t.Errorf("database.path = %q", cfg.Database.Path)
	}
	if cfg.Generate.Provider != "openai" || cfg.Generate.Model != "gpt-4o-mini" {
		t.Errorf("generate = %+v", cfg.Generate)
	}
	if cfg.Generate.Questions != 8 {
		t.Errorf("generate.questions = %d, want 8", cfg.Generate.Questions)
	}
	if !cfg.Update.Disabled {
		t.Error("update.disabled = false, want true")
	}
}

func TestLoadRejectsBadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yml")
	if err := os.WriteFile(path, []byte("database: ["), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if _, err := Load(path); err == nil {
		t.Fatal("expected parse error")
	}
}

func TestLoadDefaultMissingFile(t *testing.T) {
	t.Setenv("QUIZDECK_CONFIG", filepath.Join(t.TempDir(), "absent.yml"))
	cfg, err := LoadDefault()
	if err != nil {
		t.Fatalf("missing file should not error: %v", err)
	}
	if cfg != (Config{}) {
		t.Fatalf("cfg = %+v, want zero value", cfg)
	}
}

func TestDefaultPathPrecedence(t *testing.T) {
	t.Setenv("QUIZDECK_CONFIG", "/explicit/config.yml")
	got, err := DefaultPath()
	if err != nil {
		t.Fatalf("DefaultPath: %v", err)
	}
	if got != "/explicit/config.yml" {
		t.Errorf("path = %q, want env override", got)
	}

	t.Setenv("QUIZDECK_CONFIG", "")
	t.Setenv("XDG_CONFIG_HOME", "/xdg")
	got, err = DefaultPath()
	if err != nil {
		t.Fatalf("DefaultPath: %v", err)
	}
	if got != filepath.Join("/xdg", "quizdeck", "config.yml") {
		t.Errorf("path = %q, want XDG location", got)
	}
}
