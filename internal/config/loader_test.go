package config_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gyaneshwarpardhi/wirelab/internal/config"
)

const minimal = `
version: v1
levels:
  - id: basic
    source: { hot: power-hot, neutral: power-neutral }
    load: { input: light-in, output: light-out }
    terminals:
      - { id: power-hot }
      - { id: power-neutral }
`

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "levels.yaml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestNewLoader_AppliesDefaults(t *testing.T) {
	l, err := config.NewLoader(writeConfig(t, minimal))
	if err != nil {
		t.Fatalf("NewLoader: %v", err)
	}
	cfg := l.Config()
	if cfg.Engine.Shards != 8 || cfg.Engine.QueueDepth != 256 {
		t.Errorf("unexpected defaults: %+v", cfg.Engine)
	}
	if cfg.Engine.EventTimeoutMs != 2000 || cfg.Engine.MaxSessions != 1000 || cfg.Engine.SessionTTLSeconds != 1800 {
		t.Errorf("unexpected defaults: %+v", cfg.Engine)
	}
	if err := config.Validate(cfg); err != nil {
		t.Errorf("minimal config should validate: %v", err)
	}
}

func TestNewLoader_Errors(t *testing.T) {
	if _, err := config.NewLoader(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
	if _, err := config.NewLoader(writeConfig(t, "levels: [")); err == nil {
		t.Error("expected error for malformed YAML")
	}
}

func TestReload_NotifiesCallbacks(t *testing.T) {
	path := writeConfig(t, minimal)
	l, err := config.NewLoader(path)
	if err != nil {
		t.Fatalf("NewLoader: %v", err)
	}
	var got *config.LabConfig
	l.OnChange(func(c *config.LabConfig) { got = c })

	updated := strings.Replace(minimal, "id: basic", "id: renamed", 1)
	if err := os.WriteFile(path, []byte(updated), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, err := l.Reload()
	if err != nil {
		t.Fatalf("Reload: %v", err)
	}
	if got != cfg || cfg.Levels[0].ID != "renamed" {
		t.Errorf("callback not invoked with new config: %+v", got)
	}
	if l.Config() != cfg {
		t.Error("Config() should return the reloaded config")
	}
}

func TestWatch_HotReload(t *testing.T) {
	path := writeConfig(t, minimal)
	l, err := config.NewLoader(path)
	if err != nil {
		t.Fatalf("NewLoader: %v", err)
	}
	changed := make(chan *config.LabConfig, 4)
	l.OnChange(func(c *config.LabConfig) { changed <- c })

	stop, err := l.Watch()
	if err != nil {
		t.Skipf("fsnotify unavailable: %v", err)
	}
	defer stop()

	updated := strings.Replace(minimal, "id: basic", "id: watched", 1)
	if err := os.WriteFile(path, []byte(updated), 0o644); err != nil {
		t.Fatal(err)
	}

	deadline := time.After(5 * time.Second)
	for {
		select {
		case c := <-changed:
			if len(c.Levels) == 1 && c.Levels[0].ID == "watched" {
				return
			}
		case <-deadline:
			t.Fatal("watcher did not pick up the change")
		}
	}
}

func TestShippedCatalogValidates(t *testing.T) {
	l, err := config.NewLoader(filepath.Join("..", "..", "configs", "levels.yaml"))
	if err != nil {
		t.Fatalf("NewLoader: %v", err)
	}
	if err := config.Validate(l.Config()); err != nil {
		t.Fatalf("shipped catalog invalid: %v", err)
	}
	if n := len(l.Config().Levels); n != 3 {
		t.Errorf("expected 3 levels, got %d", n)
	}
}
