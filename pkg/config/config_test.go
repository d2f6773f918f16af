package config

import (
	"os"
	"path/filepath"
	"testing"
)

const fileConfigYAML = `api_keys:
  openai: file-key
  anthropic: file-anthropic-key
project_dir: /tmp/from-file
`

// writeHomeConfig points HOME at a temp dir containing .mads/config.yaml
// and returns that home dir.
func writeHomeConfig(t *testing.T, content string) string {
	t.Helper()
	home := t.TempDir()
	configDir := filepath.Join(home, ".mads")
	if err := os.MkdirAll(configDir, 0755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(filepath.Join(configDir, "config.yaml"), []byte(content), 0644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return home
}

func TestLoadEnvPrecedence(t *testing.T) {
	t.Setenv("HOME", writeHomeConfig(t, fileConfigYAML))
	t.Setenv("OPENAI_API_KEY", "env-key")
	t.Setenv("MADS_PROJECT_DIR", "/tmp/target")
	t.Setenv("ANTHROPIC_API_KEY", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.OpenAIAPIKey != "env-key" {
		t.Fatalf("env key should win over file, got %q", cfg.OpenAIAPIKey)
	}
	if cfg.ProjectDir != "/tmp/target" {
		t.Fatalf("env project dir should win over file, got %q", cfg.ProjectDir)
	}
	if cfg.AnthropicAPIKey != "file-anthropic-key" {
		t.Fatalf("file should fill unset env vars, got %q", cfg.AnthropicAPIKey)
	}
}

func TestLoadFileValues(t *testing.T) {
	t.Setenv("HOME", writeHomeConfig(t, fileConfigYAML))
	t.Setenv("OPENAI_API_KEY", "")
	t.Setenv("MADS_PROJECT_DIR", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.OpenAIAPIKey != "file-key" {
		t.Fatalf("unexpected openai key %q", cfg.OpenAIAPIKey)
	}
	if cfg.ProjectDir != "/tmp/from-file" {
		t.Fatalf("unexpected project dir %q", cfg.ProjectDir)
	}
}

func TestLoadFromExplicitPath(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv("OPENAI_API_KEY", "")
	t.Setenv("MADS_PROJECT_DIR", "")

	path := filepath.Join(t.TempDir(), "custom.yaml")
	if err := os.WriteFile(path, []byte(fileConfigYAML), 0644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.OpenAIAPIKey != "file-key" {
		t.Fatalf("unexpected openai key %q", cfg.OpenAIAPIKey)
	}

	if _, err := LoadFrom(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Fatalf("expected error for missing explicit config file")
	}
}

func TestLoadDefaultProjectDir(t *testing.T) {
	t.Setenv("MADS_PROJECT_DIR", "")
	t.Setenv("HOME", t.TempDir())

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.ProjectDir != DefaultProjectDir {
		t.Fatalf("unexpected project dir %q", cfg.ProjectDir)
	}
}

func TestHasAdapter(t *testing.T) {
	cfg := &Config{AnthropicAPIKey: "k"}
	if !cfg.HasAdapter("anthropic") {
		t.Fatalf("expected anthropic adapter")
	}
	if cfg.HasAdapter("openai") || cfg.HasAdapter("bogus") {
		t.Fatalf("unexpected adapter availability")
	}
}
