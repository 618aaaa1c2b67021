package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return dir
}

func TestLoadConfig_YAMLAndDefaults(t *testing.T) {
	dir := writeConfig(t, `
server:
  port: 9090
postgres:
  dsn: postgres://u:p@db:5432/cricket
redis:
  addr: cache:6379
  max_active: 7
`)
	cfg, err := LoadConfig(dir)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Server.Port != 9090 {
		t.Errorf("unexpected port: %d", cfg.Server.Port)
	}
	if cfg.Server.Mode != "release" {
		t.Errorf("unexpected default mode: %q", cfg.Server.Mode)
	}
	if cfg.Postgres.DSN != "postgres://u:p@db:5432/cricket" {
		t.Errorf("unexpected dsn: %q", cfg.Postgres.DSN)
	}
	if cfg.Redis.Addr != "cache:6379" || cfg.Redis.MaxActive != 7 {
		t.Errorf("unexpected redis config: %+v", cfg.Redis)
	}
	if cfg.Redis.DialTimeout != 3*time.Second {
		t.Errorf("unexpected default dial timeout: %v", cfg.Redis.DialTimeout)
	}
	if cfg.Log.Level != "info" {
		t.Errorf("unexpected default log level: %q", cfg.Log.Level)
	}
}

func TestLoadConfig_EnvOverridesSecrets(t *testing.T) {
	dir := writeConfig(t, `
postgres:
  dsn: postgres://yaml
redis:
  addr: yaml:6379
`)
	t.Setenv("POSTGRES_DSN", "postgres://env")
	t.Setenv("REDIS_ADDR", "env:6379")
	t.Setenv("REDIS_PASSWORD", "secret")

	cfg, err := LoadConfig(dir)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Postgres.DSN != "postgres://env" {
		t.Errorf("dsn not overridden: %q", cfg.Postgres.DSN)
	}
	if cfg.Redis.Addr != "env:6379" || cfg.Redis.Password != "secret" {
		t.Errorf("redis not overridden: %+v", cfg.Redis)
	}
}

func TestLoadConfig_MissingFile(t *testing.T) {
	if _, err := LoadConfig(t.TempDir()); err == nil {
		t.Fatal("expected error for missing config.yaml")
	}
}
