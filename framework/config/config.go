package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"

	"github.com/km-arc/go-symfony/framework/container"
)

// Config is the typed view of the environment, loaded once at bootstrap and
// seeded into the container's parameter bag so definitions can consume
// "%app.name%", "%db.host%" and friends.
type Config struct {
	App AppConfig
	DB  DBConfig
}

type AppConfig struct {
	Name  string
	Env   string // local | production | testing
	Debug bool
	Port  string
}

type DBConfig struct {
	Driver   string
	Host     string
	Port     string
	Database string
	Username string
	Password string
}

// Load reads .env (if present) and populates a Config from environment
// variables. Call once at bootstrap: cfg := config.Load()
func Load(envFiles ...string) *Config {
	files := envFiles
	if len(files) == 0 {
		files = []string{".env"}
	}
	// Non-fatal: .env may not exist in production
	_ = godotenv.Load(files...)

	return &Config{
		App: AppConfig{
			Name:  env("APP_NAME", "GoSymfony"),
			Env:   env("APP_ENV", "local"),
			Debug: envBool("APP_DEBUG", true),
			Port:  env("APP_PORT", "8000"),
		},
		DB: DBConfig{
			Driver:   env("DB_DRIVER", "postgres"),
			Host:     env("DB_HOST", "127.0.0.1"),
			Port:     env("DB_PORT", "5432"),
			Database: env("DB_DATABASE", ""),
			Username: env("DB_USERNAME", "root"),
			Password: env("DB_PASSWORD", ""),
		},
	}
}

// Seed writes every configuration value into the builder's parameter bag.
//
//	// Symfony: parameters defined in config/services.yaml
//	config.Load().Seed(b)
//	b.Register("db", "db.Conn").AddArgument("%db.host%")
func (c *Config) Seed(b *container.ContainerBuilder) {
	b.SetParameter("app.name", c.App.Name)
	b.SetParameter("app.env", c.App.Env)
	b.SetParameter("app.debug", c.App.Debug)
	b.SetParameter("app.port", c.App.Port)

	b.SetParameter("db.driver", c.DB.Driver)
	b.SetParameter("db.host", c.DB.Host)
	b.SetParameter("db.port", c.DB.Port)
	b.SetParameter("db.database", c.DB.Database)
	b.SetParameter("db.username", c.DB.Username)
	b.SetParameter("db.password", c.DB.Password)
}

// Get returns a raw env value, falling back to defaultVal.
func Get(key, defaultVal string) string {
	return env(key, defaultVal)
}

// GetBool returns a bool env value.
func GetBool(key string, defaultVal bool) bool {
	return envBool(key, defaultVal)
}

// ── helpers ─────────────────────────────────────────────────────────────────

func env(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envBool(key string, fallback bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return b
}
