package config_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pelletier/go-toml/v2"

	"framediff/internal/config"
)

func TestLoadDefaultConfigExpandsPaths(t *testing.T) {
	tempHome := t.TempDir()
	t.Setenv("HOME", tempHome)
	t.Setenv("FRAMEDIFF_ARCHIVE_ROOT", "")
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

	wantLogs := filepath.Join(tempHome, ".local", "share", "framediff", "logs")
	if cfg.Paths.LogDir != wantLogs {
		t.Fatalf("unexpected log dir: got %q want %q", cfg.Paths.LogDir, wantLogs)
	}
	if !filepath.IsAbs(cfg.Paths.ArchiveRoot) {
		t.Fatalf("expected absolute archive root, got %q", cfg.Paths.ArchiveRoot)
	}
	if filepath.Base(cfg.Paths.ArchiveRoot) != "pic" {
		t.Fatalf("unexpected archive root: %q", cfg.Paths.ArchiveRoot)
	}
	if cfg.Paths.APIBind != "127.0.0.1:5001" {
		t.Fatalf("unexpected api bind: %q", cfg.Paths.APIBind)
	}
	if cfg.Archive.MovieSplit != config.SplitFirst {
		t.Fatalf("expected first-hyphen split by default, got %q", cfg.Archive.MovieSplit)
	}
	if len(cfg.Archive.Extensions) != 1 || cfg.Archive.Extensions[0] != ".png" {
		t.Fatalf("unexpected default extensions: %v", cfg.Archive.Extensions)
	}
	if cfg.Diff.Encoding != config.EncodingPNG {
		t.Fatalf("expected png encoding, got %q", cfg.Diff.Encoding)
	}
	if cfg.Diff.Workers != config.Default().Diff.Workers {
		t.Fatalf("unexpected diff workers: %d", cfg.Diff.Workers)
	}
	if cfg.Logging.Format != "console" || cfg.Logging.Level != "info" {
		t.Fatalf("unexpected logging defaults: %+v", cfg.Logging)
	}

	if err := cfg.EnsureDirectories(); err != nil {
		t.Fatalf("EnsureDirectories returned error: %v", err)
	}
	info, err := os.Stat(cfg.Paths.LogDir)
	if err != nil {
		t.Fatalf("expected log directory %q to exist: %v", cfg.Paths.LogDir, err)
	}
	if !info.IsDir() {
		t.Fatalf("expected %q to be directory", cfg.Paths.LogDir)
	}
	if _, err := os.Stat(cfg.Paths.ArchiveRoot); !os.IsNotExist(err) {
		t.Fatalf("archive root must not be created, stat err=%v", err)
	}
}

func TestLoadCustomPath(t *testing.T) {
	tempDir := t.TempDir()
	configPath := filepath.Join(tempDir, "framediff.toml")
	archiveRoot := filepath.Join(tempDir, "shots")

	type payload struct {
		Paths struct {
			ArchiveRoot string `toml:"archive_root"`
		} `toml:"paths"`
		Archive struct {
			MovieSplit string   `toml:"movie_split"`
			Extensions []string `toml:"extensions"`
		} `toml:"archive"`
		Diff struct {
			Workers  int    `toml:"workers"`
			Encoding string `toml:"encoding"`
		} `toml:"diff"`
	}
	custom := payload{}
	custom.Paths.ArchiveRoot = archiveRoot
	custom.Archive.MovieSplit = " LAST "
	custom.Archive.Extensions = []string{"PNG", ".png", " .webp "}
	custom.Diff.Workers = 8
	custom.Diff.Encoding = "WebP"
	data, err := toml.Marshal(custom)
	if err != nil {
		t.Fatalf("marshal custom config: %v", err)
	}
	if err := os.WriteFile(configPath, data, 0o644); err != nil {
		t.Fatalf("write custom config: %v", err)
	}
	t.Setenv("FRAMEDIFF_ARCHIVE_ROOT", "")

	cfg, resolved, exists, err := config.Load(configPath)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if !exists {
		t.Fatal("expected exists to be true")
	}
	if resolved != configPath {
		t.Fatalf("unexpected resolved path: got %q want %q", resolved, configPath)
	}
	if cfg.Paths.ArchiveRoot != archiveRoot {
		t.Fatalf("unexpected archive root: got %q want %q", cfg.Paths.ArchiveRoot, archiveRoot)
	}
	if cfg.Archive.MovieSplit != config.SplitLast {
		t.Fatalf("expected last split, got %q", cfg.Archive.MovieSplit)
	}
	want := []string{".png", ".webp"}
	if strings.Join(cfg.Archive.Extensions, ",") != strings.Join(want, ",") {
		t.Fatalf("unexpected extensions: got %v want %v", cfg.Archive.Extensions, want)
	}
	if cfg.Diff.Workers != 8 {
		t.Fatalf("expected 8 workers, got %d", cfg.Diff.Workers)
	}
	if cfg.Diff.Encoding != config.EncodingWebP {
		t.Fatalf("expected webp encoding, got %q", cfg.Diff.Encoding)
	}
}

func TestEnvVarOverridesArchiveRoot(t *testing.T) {
	tempDir := t.TempDir()
	configPath := filepath.Join(tempDir, "framediff.toml")
	if err := os.WriteFile(configPath, []byte("[paths]\narchive_root = \"/from/file\"\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	envRoot := filepath.Join(tempDir, "from-env")
	t.Setenv("FRAMEDIFF_ARCHIVE_ROOT", envRoot)

	cfg, _, _, err := config.Load(configPath)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Paths.ArchiveRoot != envRoot {
		t.Errorf("expected archive root from env, got %q", cfg.Paths.ArchiveRoot)
	}
}

func TestLoadRejectsMalformedFile(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "framediff.toml")
	if err := os.WriteFile(configPath, []byte("[paths\narchive_root = "), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if _, _, _, err := config.Load(configPath); err == nil || !strings.Contains(err.Error(), "parse config") {
		t.Fatalf("expected parse error, got %v", err)
	}
}

func TestCreateSample(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sample.toml")
	if err := config.CreateSample(path); err != nil {
		t.Fatalf("CreateSample failed: %v", err)
	}

	contents, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read sample: %v", err)
	}

	var cfg config.Config
	if err := toml.Unmarshal(contents, &cfg); err != nil {
		t.Fatalf("unmarshal sample: %v", err)
	}
	if !strings.Contains(cfg.Paths.ArchiveRoot, "framediff") {
		t.Fatalf("expected archive root to contain framediff, got %q", cfg.Paths.ArchiveRoot)
	}
	if cfg.Archive.MovieSplit != config.SplitFirst {
		t.Fatalf("sample should document the first-hyphen default, got %q", cfg.Archive.MovieSplit)
	}
}

func TestValidateDetectsInvalidValues(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*config.Config)
	}{
		{"split", func(c *config.Config) { c.Archive.MovieSplit = "middle" }},
		{"extensions", func(c *config.Config) { c.Archive.Extensions = nil }},
		{"workers", func(c *config.Config) { c.Diff.Workers = 0 }},
		{"encoding", func(c *config.Config) { c.Diff.Encoding = "gif" }},
		{"read timeout", func(c *config.Config) { c.Server.ReadTimeout = 0 }},
		{"archive root", func(c *config.Config) { c.Paths.ArchiveRoot = " " }},
		{"level", func(c *config.Config) { c.Logging.Level = "verbose" }},
		{"origin", func(c *config.Config) { c.Server.AllowedOrigins = []string{"localhost:3000"} }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := config.Default()
			tc.mutate(&cfg)
			if err := cfg.Validate(); err == nil {
				t.Fatalf("expected validation error for %s", tc.name)
			}
		})
	}

	cfg := config.Default()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("defaults should validate: %v", err)
	}
}
