package config_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/pelletier/go-toml/v2"

	"mediashrink/internal/config"
)

func TestLoadDefaultConfigResolvesAssetRootNextToExecutable(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv(config.EnvAssetRoot, "")
	t.Setenv(config.EnvTool, "")
	t.Chdir(t.TempDir())

	cfg, resolved, exists, err := config.Load("")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if resolved == "" {
		t.Fatal("expected resolved path")
	}
	if exists {
		t.Fatal("expected config file to be absent in temp HOME")
	}

	want, err := config.DefaultAssetRoot()
	if err != nil {
		t.Fatalf("DefaultAssetRoot: %v", err)
	}
	if cfg.Paths.AssetRoot != want {
		t.Fatalf("unexpected asset root: got %q want %q", cfg.Paths.AssetRoot, want)
	}
	if filepath.Base(cfg.Paths.AssetRoot) != "assets" {
		t.Fatalf("expected asset root to end in assets, got %q", cfg.Paths.AssetRoot)
	}
	if cfg.Encoder.Binary != "ffmpeg" {
		t.Fatalf("unexpected encoder binary: %q", cfg.Encoder.Binary)
	}
	if cfg.Encoder.Workers != 1 {
		t.Fatalf("expected sequential default, got %d workers", cfg.Encoder.Workers)
	}
	if cfg.EncoderTimeout() != 0 {
		t.Fatalf("expected timeout disabled by default, got %s", cfg.EncoderTimeout())
	}
	if cfg.Logging.Format != "console" || cfg.Logging.Level != "info" {
		t.Fatalf("unexpected logging defaults: %+v", cfg.Logging)
	}
}

func TestLoadCustomPath(t *testing.T) {
	t.Setenv(config.EnvAssetRoot, "")
	t.Setenv(config.EnvTool, "")
	tempDir := t.TempDir()
	configPath := filepath.Join(tempDir, "mediashrink.toml")

	custom := config.Default()
	custom.Paths.AssetRoot = filepath.Join(tempDir, "site", "assets")
	custom.Paths.ScratchDir = filepath.Join(tempDir, "scratch")
	custom.Encoder.Binary = "/opt/ffmpeg/bin/ffmpeg"
	custom.Encoder.TimeoutSeconds = 90
	custom.Encoder.Workers = 4
	custom.Logging.Format = "JSON"
	custom.Logging.Level = "Debug"

	data, err := toml.Marshal(custom)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if err := os.WriteFile(configPath, data, 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, resolved, exists, err := config.Load(configPath)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if !exists || resolved != configPath {
		t.Fatalf("expected config at %q to be used, got %q (exists=%v)", configPath, resolved, exists)
	}
	if cfg.Paths.AssetRoot != custom.Paths.AssetRoot {
		t.Fatalf("unexpected asset root: %q", cfg.Paths.AssetRoot)
	}
	if cfg.Encoder.Binary != "/opt/ffmpeg/bin/ffmpeg" {
		t.Fatalf("unexpected encoder binary: %q", cfg.Encoder.Binary)
	}
	if cfg.EncoderTimeout() != 90*time.Second {
		t.Fatalf("unexpected timeout: %s", cfg.EncoderTimeout())
	}
	if cfg.Encoder.Workers != 4 {
		t.Fatalf("unexpected workers: %d", cfg.Encoder.Workers)
	}
	if cfg.Logging.Format != "json" || cfg.Logging.Level != "debug" {
		t.Fatalf("expected normalized logging values, got %+v", cfg.Logging)
	}

	if err := cfg.EnsureDirectories(); err != nil {
		t.Fatalf("EnsureDirectories: %v", err)
	}
	if info, err := os.Stat(cfg.Paths.ScratchDir); err != nil || !info.IsDir() {
		t.Fatalf("expected scratch dir to exist: %v", err)
	}
	if _, err := os.Stat(cfg.Paths.AssetRoot); !os.IsNotExist(err) {
		t.Fatalf("asset root must not be created, stat err = %v", err)
	}
}

func TestEnvironmentOverridesFile(t *testing.T) {
	tempDir := t.TempDir()
	configPath := filepath.Join(tempDir, "mediashrink.toml")
	body := "[paths]\nasset_root = \"" + filepath.ToSlash(filepath.Join(tempDir, "from-file")) + "\"\n\n[encoder]\nbinary = \"file-ffmpeg\"\n"
	if err := os.WriteFile(configPath, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	envRoot := filepath.Join(tempDir, "from-env")
	t.Setenv(config.EnvAssetRoot, envRoot)
	t.Setenv(config.EnvTool, "env-ffmpeg")

	cfg, _, _, err := config.Load(configPath)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Paths.AssetRoot != envRoot {
		t.Fatalf("expected env asset root %q, got %q", envRoot, cfg.Paths.AssetRoot)
	}
	if cfg.Encoder.Binary != "env-ffmpeg" {
		t.Fatalf("expected env tool, got %q", cfg.Encoder.Binary)
	}
}

func TestLoadRejectsUnknownKeys(t *testing.T) {
	t.Setenv(config.EnvAssetRoot, "")
	configPath := filepath.Join(t.TempDir(), "mediashrink.toml")
	if err := os.WriteFile(configPath, []byte("[encoder]\nqualty = 3\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if _, _, _, err := config.Load(configPath); err == nil {
		t.Fatal("expected unknown key to fail parsing")
	}
}

func TestLoadLeavesValidationToCaller(t *testing.T) {
	t.Setenv(config.EnvAssetRoot, "")
	t.Setenv(config.EnvTool, "")
	configPath := filepath.Join(t.TempDir(), "mediashrink.toml")
	if err := os.WriteFile(configPath, []byte("[encoder]\nworkers = 100\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, _, _, err := config.Load(configPath)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if err := cfg.Validate(); err == nil || !strings.Contains(err.Error(), "encoder.workers") {
		t.Fatalf("expected workers validation error, got %v", err)
	}
	cfg.Encoder.Workers = 2
	if err := cfg.Validate(); err != nil {
		t.Fatalf("override should make config valid: %v", err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*config.Config)
		wantErr string
	}{
		{"defaults with root", func(*config.Config) {}, ""},
		{"missing root", func(c *config.Config) { c.Paths.AssetRoot = "" }, "paths.asset_root"},
		{"missing binary", func(c *config.Config) { c.Encoder.Binary = " " }, "encoder.binary"},
		{"negative timeout", func(c *config.Config) { c.Encoder.TimeoutSeconds = -1 }, "timeout_seconds"},
		{"zero workers", func(c *config.Config) { c.Encoder.Workers = 0 }, "encoder.workers"},
		{"too many workers", func(c *config.Config) { c.Encoder.Workers = 65 }, "encoder.workers"},
		{"bad format", func(c *config.Config) { c.Logging.Format = "xml" }, "logging.format"},
		{"bad level", func(c *config.Config) { c.Logging.Level = "trace" }, "logging.level"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.Default()
			cfg.Paths.AssetRoot = "/srv/assets"
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Fatalf("expected error containing %q, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestCreateSampleIsLoadable(t *testing.T) {
	t.Setenv(config.EnvAssetRoot, "")
	t.Setenv(config.EnvTool, "")
	path := filepath.Join(t.TempDir(), "nested", "config.toml")
	if err := config.CreateSample(path); err != nil {
		t.Fatalf("CreateSample: %v", err)
	}
	cfg, _, exists, err := config.Load(path)
	if err != nil {
		t.Fatalf("sample config should load: %v", err)
	}
	if !exists {
		t.Fatal("expected sample config to exist")
	}
	if cfg.Encoder.Binary != "ffmpeg" {
		t.Fatalf("unexpected sample binary %q", cfg.Encoder.Binary)
	}
}

func TestExpandPathTilde(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	got, err := config.ExpandPath("~/media/assets")
	if err != nil {
		t.Fatalf("ExpandPath: %v", err)
	}
	if got != filepath.Join(home, "media", "assets") {
		t.Fatalf("unexpected expansion: %q", got)
	}
}
