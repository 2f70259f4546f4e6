package config

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"time"

	"github.com/caarlos0/env/v6"
	"github.com/joho/godotenv"
)

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"

	defaultDatabaseDSN = "file:scribz.db?_pragma=busy_timeout(5000)"
	defaultAuthSecret  = "dev-secret-key"
	defaultTokenTTL    = 7 * 24 * time.Hour
	defaultBaseURL     = "localhost:5000"
)

type Config struct {
	// Server-side settings
	DatabaseDSN string        `env:"DATABASE_URI"`
	AuthSecret  string        `env:"AUTH_SECRET"`
	TokenTTL    time.Duration `env:"TOKEN_TTL"`
	AppEnv      string        `env:"APP_ENV"`

	// Shared settings
	BaseURL     string `env:"BASE_URL"`
	EnableHTTPS bool   `env:"ENABLE_HTTPS"`

	// Client-side settings
	ServerURL string `env:"-"`
	TokenFile string `env:"TOKEN_FILE"`
	Version   bool   `env:"-"` // show client version and exit (flag only)
}

// NewConfig собирает конфигурацию из .env, окружения и флагов.
// Некорректное значение переменной окружения (например TOKEN_TTL=7d) возвращается ошибкой.
func NewConfig() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse environment: %w", err)
	}

	// флаги по умолчанию берут значения из env, поэтому явный флаг перекрывает переменную
	// Server flags
	flag.StringVar(&cfg.DatabaseDSN, "d", cfg.DatabaseDSN, "database DSN: postgres://..., mongodb://... or a SQLite file")
	flag.StringVar(&cfg.AuthSecret, "auth-secret", cfg.AuthSecret, "secret used to sign session tokens")
	flag.DurationVar(&cfg.TokenTTL, "token-ttl", cfg.TokenTTL, "session token lifetime")
	flag.StringVar(&cfg.AppEnv, "env", cfg.AppEnv, "runtime environment: development|production")
	// Shared/client flags
	flag.StringVar(&cfg.BaseURL, "base-url", cfg.BaseURL, "address of the Scribz server (host:port)")
	flag.BoolVar(&cfg.EnableHTTPS, "https", cfg.EnableHTTPS, "use https scheme for the server URL (client)")
	// Client flags
	flag.StringVar(&cfg.TokenFile, "token-file", cfg.TokenFile, "path to auth token file (client)")
	flag.BoolVar(&cfg.Version, "version", cfg.Version, "Show client version and exit")

	flag.Parse()

	cfg.applyDefaults()

	return cfg, nil
}

func (cfg *Config) applyDefaults() {
	if cfg.DatabaseDSN == "" {
		cfg.DatabaseDSN = defaultDatabaseDSN
	}
	if cfg.AuthSecret == "" {
		cfg.AuthSecret = defaultAuthSecret
	}
	if cfg.TokenTTL <= 0 {
		cfg.TokenTTL = defaultTokenTTL
	}
	if cfg.AppEnv != EnvProduction {
		cfg.AppEnv = EnvDevelopment
	}

	// BaseURL must be "address:port" (no scheme, no path). Otherwise use default.
	hostPortRe := regexp.MustCompile(`^[A-Za-z0-9\.\-]*:\d{1,5}$`)
	if !hostPortRe.MatchString(cfg.BaseURL) {
		cfg.BaseURL = defaultBaseURL
	}

	if cfg.EnableHTTPS {
		cfg.ServerURL = "https://" + cfg.BaseURL
	} else {
		cfg.ServerURL = "http://" + cfg.BaseURL
	}

	if cfg.TokenFile == "" {
		home, _ := os.UserHomeDir()
		cfg.TokenFile = filepath.Join(home, ".scribz_token")
	}
}

// IsProduction reports whether the server runs with production logging.
func (cfg *Config) IsProduction() bool {
	return cfg.AppEnv == EnvProduction
}

// UsesDefaultSecret reports whether tokens are signed with the built-in development key.
func (cfg *Config) UsesDefaultSecret() bool {
	return cfg.AuthSecret == defaultAuthSecret
}
