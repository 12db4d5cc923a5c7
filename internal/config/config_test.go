package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, dir, env, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Join(dir, "config"), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	path := filepath.Join(dir, "config", env+".yaml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
}

func chdir(t *testing.T, dir string) {
	t.Helper()
	old, err := os.Getwd()
	if err != nil {
		t.Fatalf("getwd: %v", err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("chdir: %v", err)
	}
	t.Cleanup(func() { _ = os.Chdir(old) })
}

func TestLoadAppliesDefaults(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, "test", `
http:
  port: 9000
elasticsearch:
  addrs:
    - http://localhost:9200
`)
	chdir(t, dir)

	cfg, err := Load("test")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.HTTP.Port != 9000 {
		t.Errorf("port = %d, want 9000", cfg.HTTP.Port)
	}
	if cfg.Store.Index != "hotel_reviews" {
		t.Errorf("index = %q, want hotel_reviews", cfg.Store.Index)
	}
	if cfg.Embedding.Model != "text-embedding-3-small" {
		t.Errorf("model = %q", cfg.Embedding.Model)
	}
	if cfg.Embedding.Dimensions != 384 {
		t.Errorf("dimensions = %d, want 384", cfg.Embedding.Dimensions)
	}
	if cfg.Ingest.BatchSize != 500 {
		t.Errorf("batch size = %d, want 500", cfg.Ingest.BatchSize)
	}
	if cfg.HTTP.ShutdownSec != 10 {
		t.Errorf("shutdown = %d, want 10", cfg.HTTP.ShutdownSec)
	}
}

func TestLoadExpandsEnvVars(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, "test", `
http:
  port: 8080
elasticsearch:
  addrs:
    - ${TEST_ES_ADDR}
  username: ${TEST_MISSING_USER:-fallback}
`)
	chdir(t, dir)
	t.Setenv("TEST_ES_ADDR", "http://es.internal:9200")

	cfg, err := Load("test")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Store.Addrs[0] != "http://es.internal:9200" {
		t.Errorf("addr = %q", cfg.Store.Addrs[0])
	}
	if cfg.Store.Username != "fallback" {
		t.Errorf("username = %q, want the ${VAR:-default} fallback", cfg.Store.Username)
	}
}

func TestLoadRejectsMissingAddrs(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, "test", `
http:
  port: 8080
`)
	chdir(t, dir)

	if _, err := Load("test"); err == nil {
		t.Fatal("want error for missing elasticsearch.addrs")
	}
}

func TestLoadRejectsBadPort(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, "test", `
http:
  port: 70000
elasticsearch:
  addrs:
    - http://localhost:9200
`)
	chdir(t, dir)

	if _, err := Load("test"); err == nil {
		t.Fatal("want error for out-of-range port")
	}
}

func TestGetEnvDefault(t *testing.T) {
	t.Setenv("ENV", "")
	if env := GetEnv(); env != "local" {
		t.Errorf("GetEnv = %q, want local", env)
	}
	t.Setenv("ENV", "prod")
	if env := GetEnv(); env != "prod" {
		t.Errorf("GetEnv = %q, want prod", env)
	}
}
