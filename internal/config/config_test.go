package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Notify.Backend != "desktop" {
		t.Errorf("notify backend = %s, want desktop", cfg.Notify.Backend)
	}
	if !cfg.Notify.Enabled {
		t.Error("notifications disabled by default")
	}
	if cfg.AI.Model != "deepseek-chat" {
		t.Errorf("ai model = %s, want deepseek-chat", cfg.AI.Model)
	}
	if cfg.Backup.MaxBackups != 5 {
		t.Errorf("max backups = %d, want 5", cfg.Backup.MaxBackups)
	}
	if cfg.Timezone != "America/Sao_Paulo" {
		t.Errorf("timezone = %s, want America/Sao_Paulo", cfg.Timezone)
	}
	if cfg.Debug {
		t.Error("debug enabled by default")
	}

	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate() on defaults = %v", err)
	}
}

func TestLoadFileOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `
notify:
  backend: console
backup:
  max_backups: 9
debug: true
`
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatalf("failed to write config file: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Notify.Backend != "console" {
		t.Errorf("notify backend = %s, want console", cfg.Notify.Backend)
	}
	if cfg.Backup.MaxBackups != 9 {
		t.Errorf("max backups = %d, want 9", cfg.Backup.MaxBackups)
	}
	if !cfg.Debug {
		t.Error("debug not picked up from file")
	}
	// untouched keys keep their defaults
	if cfg.AI.Model != "deepseek-chat" {
		t.Errorf("ai model = %s, want default", cfg.AI.Model)
	}
}

func TestLoadMissingFileIsFine(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err != nil {
		t.Errorf("Load() with missing file error = %v", err)
	}
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("COMPROMISSOS_NOTIFY_BACKEND", "console")
	t.Setenv("DEEPSEEK_API_KEY", "sk-test")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Notify.Backend != "console" {
		t.Errorf("notify backend = %s, want console from env", cfg.Notify.Backend)
	}
	if cfg.AI.APIKey != "sk-test" {
		t.Errorf("api key = %s, want sk-test from env", cfg.AI.APIKey)
	}
}

func TestValidateRejectsBadValues(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	cfg.Notify.Backend = "carrier-pigeon"
	if err := cfg.Validate(); err == nil {
		t.Error("Validate() accepted unknown notify backend")
	}

	cfg, _ = Load("")
	cfg.AI.Timeout = 0
	if err := cfg.Validate(); err == nil {
		t.Error("Validate() accepted zero ai timeout")
	}

	cfg, _ = Load("")
	cfg.Backup.MaxBackups = 0
	if err := cfg.Validate(); err == nil {
		t.Error("Validate() accepted zero max_backups")
	}
}
