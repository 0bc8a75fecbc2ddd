package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.Manifest != "codex.json" {
		t.Errorf("expected default manifest %q, got %q", "codex.json", cfg.Manifest)
	}
	if cfg.OutputDir != "site" {
		t.Errorf("expected default output_dir %q, got %q", "site", cfg.OutputDir)
	}
	if !cfg.Thumbnails.Enabled || cfg.Thumbnails.Width != 480 {
		t.Errorf("unexpected thumbnail defaults: %+v", cfg.Thumbnails)
	}
	if cfg.Serve.Port != 8080 {
		t.Errorf("expected default serve.port 8080, got %d", cfg.Serve.Port)
	}
}

func TestSaveAndLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "test.codex.yml")

	original := DefaultConfig()
	original.Manifest = "data/codex.json"
	original.OutputDir = "public"
	original.Title = "Codex of the XIII"
	original.BaseURL = "https://codex.example"
	original.MarkdownNotes = true
	original.Assets = []string{"plates/**/*.jpg", "*.css"}
	original.Serve.Port = 9000

	if err := original.Save(path); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if loaded.Manifest != original.Manifest {
		t.Errorf("manifest: got %q, want %q", loaded.Manifest, original.Manifest)
	}
	if loaded.OutputDir != original.OutputDir {
		t.Errorf("output_dir: got %q, want %q", loaded.OutputDir, original.OutputDir)
	}
	if loaded.Title != original.Title {
		t.Errorf("title: got %q, want %q", loaded.Title, original.Title)
	}
	if loaded.BaseURL != original.BaseURL {
		t.Errorf("base_url: got %q, want %q", loaded.BaseURL, original.BaseURL)
	}
	if !loaded.MarkdownNotes {
		t.Error("markdown_notes: got false, want true")
	}
	if loaded.Serve.Port != 9000 {
		t.Errorf("serve.port: got %d, want 9000", loaded.Serve.Port)
	}
	if len(loaded.Assets) != len(original.Assets) {
		t.Fatalf("assets length: got %d, want %d", len(loaded.Assets), len(original.Assets))
	}
	for i, v := range loaded.Assets {
		if v != original.Assets[i] {
			t.Errorf("assets[%d]: got %q, want %q", i, v, original.Assets[i])
		}
	}
}

func TestLoadMissingFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nonexistent.yml")

	// Loading a missing file should return defaults, not an error.
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load should not fail for missing file: %v", err)
	}
	if cfg.Manifest != "codex.json" {
		t.Errorf("expected default manifest, got %q", cfg.Manifest)
	}
}

func TestLoadEnvOverride(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "test.yml")

	cfg := DefaultConfig()
	if err := cfg.Save(path); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	t.Setenv("CODEX_OUTPUT_DIR", "dist")
	t.Setenv("CODEX_SERVE__PORT", "9090")

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if loaded.OutputDir != "dist" {
		t.Errorf("env override failed: got %q, want %q", loaded.OutputDir, "dist")
	}
	if loaded.Serve.Port != 9090 {
		t.Errorf("nested env override failed: got %d, want 9090", loaded.Serve.Port)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"defaults", func(*Config) {}, false},
		{"empty manifest", func(c *Config) { c.Manifest = "" }, true},
		{"empty output", func(c *Config) { c.OutputDir = "" }, true},
		{"bad log level", func(c *Config) { c.LogLevel = "loud" }, true},
		{"zero thumb width", func(c *Config) { c.Thumbnails.Width = 0 }, true},
		{"zero thumb width disabled", func(c *Config) { c.Thumbnails.Enabled = false; c.Thumbnails.Width = 0 }, false},
		{"port out of range", func(c *Config) { c.Serve.Port = 70000 }, true},
		{"bad base url", func(c *Config) { c.BaseURL = "codex.example" }, true},
		{"good base url", func(c *Config) { c.BaseURL = "https://codex.example" }, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestSlogLevel(t *testing.T) {
	tests := []struct {
		level string
		want  slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"INFO", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"error", slog.LevelError},
		{"", slog.LevelInfo},
	}
	for _, tt := range tests {
		cfg := &Config{LogLevel: tt.level}
		if got := cfg.SlogLevel(); got != tt.want {
			t.Errorf("SlogLevel(%q) = %v, want %v", tt.level, got, tt.want)
		}
	}
}

func TestSplitAndTrim(t *testing.T) {
	tests := []struct {
		input string
		want  []string
	}{
		{"a,b,c", []string{"a", "b", "c"}},
		{" a , b , c ", []string{"a", "b", "c"}},
		{"images/**", []string{"images/**"}},
		{"", nil},
		{"  ,  , ", nil},
	}
	for _, tt := range tests {
		got := splitAndTrim(tt.input)
		if len(got) != len(tt.want) {
			t.Errorf("splitAndTrim(%q) len = %d, want %d", tt.input, len(got), len(tt.want))
			continue
		}
		for i, v := range got {
			if v != tt.want[i] {
				t.Errorf("splitAndTrim(%q)[%d] = %q, want %q", tt.input, i, v, tt.want[i])
			}
		}
	}
}

func TestLoadLeavesDefaultsIntact(t *testing.T) {
	path := filepath.Join(t.TempDir(), "codex.yml")
	if err := os.WriteFile(path, []byte("assets: [\"plates/**\"]\nexclude: [\"*.tmp\"]\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	wantAssets := slices.Clone(DefaultAssets)
	wantExcludes := slices.Clone(DefaultExcludes)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if len(cfg.Assets) == 0 || cfg.Assets[0] != "plates/**" {
		t.Errorf("assets = %q, want plates/** first", cfg.Assets)
	}
	if !slices.Equal(DefaultAssets, wantAssets) {
		t.Errorf("DefaultAssets changed by Load: %q", DefaultAssets)
	}
	if !slices.Equal(DefaultExcludes, wantExcludes) {
		t.Errorf("DefaultExcludes changed by Load: %q", DefaultExcludes)
	}
	if !slices.Equal(DefaultConfig().Assets, wantAssets) {
		t.Errorf("DefaultConfig().Assets = %q", DefaultConfig().Assets)
	}
}
