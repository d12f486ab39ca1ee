package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

// isolate points the user config dir at an empty temp dir and runs the
// test from another temp dir so no real tada.toml is picked up.
func isolate(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(home, ".config"))
	t.Setenv("TADA_ENDPOINT", "")
	t.Setenv("TADA_TIMEOUT", "")
	t.Setenv("TADA_THEME", "")
	t.Setenv("TADA_LIVE", "")
	t.Setenv("TADA_LOG_LEVEL", "")
	t.Setenv("TADA_LOG_FILE", "")
	work := t.TempDir()
	t.Chdir(work)
	return work
}

func TestLoad_Defaults(t *testing.T) {
	isolate(t)
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Endpoint != DefaultEndpoint || cfg.Timeout != 30*time.Second || cfg.Serve.Backend != "json" {
		t.Errorf("defaults = %+v", cfg)
	}
}

func TestLoad_FileThenEnv(t *testing.T) {
	work := isolate(t)
	doc := `
endpoint = "http://example.test:4000/todos"
timeout = "5s"
theme = "neon"

[log]
level = "debug"

[serve]
backend = "sqlite"
db = "todos.sqlite"
`
	if err := os.WriteFile(filepath.Join(work, ProjectFileName), []byte(doc), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("TADA_THEME", "mono")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Endpoint != "http://example.test:4000/todos" {
		t.Errorf("Endpoint = %q", cfg.Endpoint)
	}
	if cfg.Timeout != 5*time.Second {
		t.Errorf("Timeout = %s", cfg.Timeout)
	}
	if cfg.Theme != "mono" {
		t.Errorf("Theme = %q, want env override mono", cfg.Theme)
	}
	if cfg.Log.Level != "debug" || cfg.Serve.Backend != "sqlite" || cfg.Serve.DB != "todos.sqlite" {
		t.Errorf("cfg = %+v", cfg)
	}
	if cfg.Serve.Addr != "localhost:3000" {
		t.Errorf("unset keys must keep defaults, Serve.Addr = %q", cfg.Serve.Addr)
	}
}

func TestLoad_Errors(t *testing.T) {
	work := isolate(t)

	if _, err := Load(filepath.Join(work, "missing.toml")); err == nil {
		t.Error("explicit missing file must fail")
	}

	bad := filepath.Join(work, "bad.toml")
	if err := os.WriteFile(bad, []byte(`endpont = "typo"`), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(bad); err == nil || !strings.Contains(err.Error(), "unknown keys") {
		t.Errorf("err = %v, want unknown keys", err)
	}

	t.Setenv("TADA_ENDPOINT", "localhost:3000")
	if _, err := Load(""); err == nil {
		t.Error("endpoint without scheme must fail validation")
	}
}
