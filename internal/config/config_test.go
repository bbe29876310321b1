package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	yaml := `
app:
  env: dev
postgres:
  dsn: postgres://localhost/test
backend:
  base_url: http://backend:3000
  timeout: 3s
receiving:
  sink: http
`
	if err := os.WriteFile(path, []byte(yaml), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Setenv("APP_TELEGRAM_ADMIN_CHAT_ID", "42")

	c, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if c.App.Env != "dev" || c.Postgres.DSN != "postgres://localhost/test" {
		t.Fatalf("cfg = %+v", c)
	}
	if c.Backend.BaseURL != "http://backend:3000" || c.Backend.Timeout != 3*time.Second {
		t.Fatalf("backend = %+v", c.Backend)
	}
	if c.Receiving.Sink != "http" || c.Receiving.LotPolicy != "both" {
		t.Fatalf("receiving = %+v", c.Receiving)
	}
	if c.HTTP.Addr != ":8080" || c.Postgres.Migrations != "migrations" {
		t.Fatalf("defaults not applied: %+v %+v", c.HTTP, c.Postgres)
	}
	if c.Telegram.AdminChatID != 42 {
		t.Fatalf("env override not applied: %+v", c.Telegram)
	}
}

func TestLoad_MissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Fatal("expected error for missing file")
	}
}
