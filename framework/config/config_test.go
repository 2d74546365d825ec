package config_test

import (
	"testing"

	"github.com/km-arc/go-symfony/framework/config"
	"github.com/km-arc/go-symfony/framework/container"
)

// ── Load ─────────────────────────────────────────────────────────────────────

func TestLoad_Defaults(t *testing.T) {
	// No env set → verify all defaults
	cfg := config.Load("testdata/empty.env")

	tests := []struct {
		name string
		got  string
		want string
	}{
		{"App.Name", cfg.App.Name, "GoSymfony"},
		{"App.Env", cfg.App.Env, "local"},
		{"App.Port", cfg.App.Port, "8000"},
		{"DB.Driver", cfg.DB.Driver, "postgres"},
		{"DB.Host", cfg.DB.Host, "127.0.0.1"},
		{"DB.Port", cfg.DB.Port, "5432"},
		{"DB.Username", cfg.DB.Username, "root"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got != tt.want {
				t.Errorf("got %q, want %q", tt.got, tt.want)
			}
		})
	}
}

func TestLoad_EnvOverridesDefaults(t *testing.T) {
	t.Setenv("APP_NAME", "Intranet")
	t.Setenv("APP_ENV", "production")
	t.Setenv("APP_PORT", "9000")
	t.Setenv("DB_DATABASE", "intranet")

	cfg := config.Load("testdata/empty.env")

	if cfg.App.Name != "Intranet" {
		t.Errorf("App.Name: got %q want %q", cfg.App.Name, "Intranet")
	}
	if cfg.App.Env != "production" {
		t.Errorf("App.Env: got %q want %q", cfg.App.Env, "production")
	}
	if cfg.App.Port != "9000" {
		t.Errorf("App.Port: got %q want %q", cfg.App.Port, "9000")
	}
	if cfg.DB.Database != "intranet" {
		t.Errorf("DB.Database: got %q want %q", cfg.DB.Database, "intranet")
	}
}

func TestLoad_AppDebug(t *testing.T) {
	t.Setenv("APP_DEBUG", "false")
	cfg := config.Load("testdata/empty.env")
	if cfg.App.Debug {
		t.Error("expected App.Debug to be false")
	}

	t.Setenv("APP_DEBUG", "true")
	cfg = config.Load("testdata/empty.env")
	if !cfg.App.Debug {
		t.Error("expected App.Debug to be true")
	}
}

// ── Seed ─────────────────────────────────────────────────────────────────────

func TestSeed_PopulatesParameterBag(t *testing.T) {
	t.Setenv("APP_NAME", "Intranet")
	t.Setenv("DB_HOST", "db.internal")

	b := container.NewContainerBuilder(nil)
	config.Load("testdata/empty.env").Seed(b)

	name, err := b.GetParameter("app.name")
	if err != nil {
		t.Fatalf("app.name: %v", err)
	}
	if name != "Intranet" {
		t.Errorf("app.name: got %v want %q", name, "Intranet")
	}

	host, err := b.GetParameter("db.host")
	if err != nil {
		t.Fatalf("db.host: %v", err)
	}
	if host != "db.internal" {
		t.Errorf("db.host: got %v want %q", host, "db.internal")
	}

	if !b.HasParameter("app.debug") {
		t.Error("expected app.debug to be seeded")
	}
	if !b.HasParameter("db.password") {
		t.Error("expected db.password to be seeded")
	}
}
