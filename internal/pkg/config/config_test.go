package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func validConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Port: 8080, ReadTimeout: 10, WriteTimeout: 10,
			HandlerTimeout: 15 * time.Second, RateLimit: 120,
		},
		Database: DatabaseConfig{Driver: DriverSQLite, Path: "mashup.db"},
		News: NewsConfig{
			FeedURL: "https://news.example/geo/%s",
			Timeout: 5 * time.Second,
		},
	}
}

func TestValidate_OK(t *testing.T) {
	if err := validConfig().Validate(); err != nil {
		t.Fatalf("expected valid config, got %v", err)
	}
}

func TestValidate_CollectsAllErrors(t *testing.T) {
	cfg := validConfig()
	cfg.Server.Port = 0
	cfg.Database.Driver = "mysql"
	cfg.News.FeedURL = "https://news.example/rss"

	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected error")
	}
	for _, want := range []string{"server.port", "database.driver", "news.feed_url"} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("error %q does not mention %s", err, want)
		}
	}
}

func TestValidate_Postgres(t *testing.T) {
	cfg := validConfig()
	cfg.Database = DatabaseConfig{Driver: DriverPostgres, Host: "db", Port: 5432, User: "u", DBName: "mashup", MaxConns: 4}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("expected valid postgres config, got %v", err)
	}

	cfg.Database.Host = ""
	cfg.Database.MaxConns = 0
	err := cfg.Validate()
	if err == nil || !strings.Contains(err.Error(), "database.host") || !strings.Contains(err.Error(), "database.max_conns") {
		t.Errorf("expected host and max_conns errors, got %v", err)
	}
}

func TestValidate_SQLiteNeedsPath(t *testing.T) {
	cfg := validConfig()
	cfg.Database.Path = ""
	if err := cfg.Validate(); err == nil || !strings.Contains(err.Error(), "database.path") {
		t.Errorf("expected database.path error, got %v", err)
	}
}

func TestValidate_EmptyAPIKeyAllowed(t *testing.T) {
	cfg := validConfig()
	cfg.Maps.APIKey = ""
	if err := cfg.Validate(); err != nil {
		t.Errorf("empty api key should not fail validation: %v", err)
	}
}

func TestDSN(t *testing.T) {
	d := DatabaseConfig{Host: "db", Port: 5433, User: "mashup", Password: "p@ss", DBName: "places", SSLMode: "require"}
	want := "postgres://mashup:p%40ss@db:5433/places?sslmode=require"
	if got := d.DSN(); got != want {
		t.Errorf("DSN() = %q, want %q", got, want)
	}
}

func TestLoad_Defaults(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg, err := Load("mashup-test")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Server.Port != 8080 {
		t.Errorf("port = %d, want 8080", cfg.Server.Port)
	}
	if cfg.Database.Driver != DriverSQLite || cfg.Database.Path != "mashup.db" {
		t.Errorf("unexpected database defaults: %+v", cfg.Database)
	}
	if cfg.Server.HandlerTimeout != 15*time.Second {
		t.Errorf("handler_timeout = %v, want 15s", cfg.Server.HandlerTimeout)
	}
	if cfg.News.Timeout != 5*time.Second {
		t.Errorf("news.timeout = %v, want 5s", cfg.News.Timeout)
	}
	if cfg.Telemetry.ServiceName != "mashup-test" {
		t.Errorf("service_name = %q", cfg.Telemetry.ServiceName)
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("MASHUP_SERVER_PORT", "9090")
	t.Setenv("MASHUP_DATABASE_DRIVER", "postgres")
	t.Setenv("MASHUP_NEWS_TIMEOUT", "2s")
	t.Setenv("API_KEY", "plain-key")

	cfg, err := Load("mashup")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Server.Port != 9090 {
		t.Errorf("port = %d, want 9090", cfg.Server.Port)
	}
	if cfg.Database.Driver != DriverPostgres {
		t.Errorf("driver = %q, want postgres", cfg.Database.Driver)
	}
	if cfg.News.Timeout != 2*time.Second {
		t.Errorf("news.timeout = %v, want 2s", cfg.News.Timeout)
	}
	if cfg.Maps.APIKey != "plain-key" {
		t.Errorf("api key = %q, want plain-key", cfg.Maps.APIKey)
	}
}

func TestLoad_PrefixedKeyWins(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("API_KEY", "plain-key")
	t.Setenv("MASHUP_MAPS_API_KEY", "prefixed-key")

	cfg, err := Load("mashup")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Maps.APIKey != "prefixed-key" {
		t.Errorf("api key = %q, want prefixed-key", cfg.Maps.APIKey)
	}
}

func TestLoad_DotEnv(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	if err := os.WriteFile(filepath.Join(dir, ".env"), []byte("MASHUP_SERVER_PORT=7070\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { os.Unsetenv("MASHUP_SERVER_PORT") })

	cfg, err := Load("mashup")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Server.Port != 7070 {
		t.Errorf("port = %d, want 7070 from .env", cfg.Server.Port)
	}
}

func TestLoad_YAMLFile(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	yaml := "server:\n  port: 6060\ndatabase:\n  path: /data/places.db\n"
	if err := os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(yaml), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load("mashup")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Server.Port != 6060 || cfg.Database.Path != "/data/places.db" {
		t.Errorf("yaml not applied: port=%d path=%q", cfg.Server.Port, cfg.Database.Path)
	}
}

func TestLoad_Invalid(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("MASHUP_DATABASE_DRIVER", "oracle")

	if _, err := Load("mashup"); err == nil {
		t.Fatal("expected validation error")
	}
}
