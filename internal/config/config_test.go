package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoadConfigMissingFile(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "config.toml"))
	if err != nil {
		t.Fatalf("expected missing file to be fine, got %v", err)
	}
	if cfg.Data.Dir != nil || cfg.View.Year != nil {
		t.Fatalf("expected empty config, got %+v", cfg)
	}
}

func TestLoadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	body := `[data]
dir = "/srv/unicode"
cache = false
retries = 5

[view]
sort = "frequency"
version = 13.0
year = 2001
min-chars = 500
`
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.Data.Dir == nil || *cfg.Data.Dir != "/srv/unicode" {
		t.Fatalf("unexpected data dir: %v", cfg.Data.Dir)
	}
	if cfg.Data.Cache == nil || *cfg.Data.Cache || cfg.Data.Retries == nil || *cfg.Data.Retries != 5 {
		t.Fatalf("unexpected data section: %+v", cfg.Data)
	}
	if cfg.View.Sort == nil || *cfg.View.Sort != "frequency" || *cfg.View.Version != 13 || *cfg.View.Year != 2001 || *cfg.View.MinChars != 500 {
		t.Fatalf("unexpected view section: %+v", cfg.View)
	}
	if cfg.View.Region != nil {
		t.Fatalf("expected unset region to stay nil")
	}
}

func TestLoadConfigUnknownKey(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("[view]\ncolour = \"red\"\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if _, err := LoadConfig(path); err == nil || !strings.Contains(err.Error(), "view.colour") {
		t.Fatalf("expected unknown key error, got %v", err)
	}
}

func TestDefaultPaths(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/tmp/cfg")
	t.Setenv("XDG_CACHE_HOME", "/tmp/cache")
	if got := DefaultConfigPath(); got != filepath.Join("/tmp/cfg", "glyphscope", "config.toml") {
		t.Fatalf("unexpected config path %q", got)
	}
	if got := DefaultCachePath(); got != filepath.Join("/tmp/cache", "glyphscope", "assets.db") {
		t.Fatalf("unexpected cache path %q", got)
	}
}
