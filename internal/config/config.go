package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

const (
	DriverDocument = "document"
	DriverPostgres = "postgres"
)

type Config struct {
	Port         string   `mapstructure:"PORT"`
	Env          string   `mapstructure:"ENV"`
	StoreDriver  string   `mapstructure:"STORE_DRIVER"`
	DocumentPath string   `mapstructure:"DOCUMENT_PATH"`
	DatabaseURL  string   `mapstructure:"DATABASE_URL"`
	DBMaxConns   int32    `mapstructure:"DB_MAX_CONNS"`
	DBMinConns   int32    `mapstructure:"DB_MIN_CONNS"`
	CORSOrigins  []string `mapstructure:"CORS_ORIGINS"`
	AuthMode     string   `mapstructure:"AUTH_MODE"`
	AuthSecret   string   `mapstructure:"AUTH_SECRET"`
}

func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigFile(".env")
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("PORT", "8000")
	v.SetDefault("ENV", "development")
	v.SetDefault("STORE_DRIVER", DriverDocument)
	v.SetDefault("DOCUMENT_PATH", "./data/clinic-db.json")
	v.SetDefault("DB_MAX_CONNS", 10)
	v.SetDefault("DB_MIN_CONNS", 2)
	v.SetDefault("CORS_ORIGINS", "http://localhost:3000")
	v.SetDefault("AUTH_MODE", "dev")

	// Bind env vars explicitly so Unmarshal picks them up
	v.BindEnv("PORT")
	v.BindEnv("ENV")
	v.BindEnv("STORE_DRIVER")
	v.BindEnv("DOCUMENT_PATH")
	v.BindEnv("DATABASE_URL")
	v.BindEnv("DB_MAX_CONNS")
	v.BindEnv("DB_MIN_CONNS")
	v.BindEnv("CORS_ORIGINS")
	v.BindEnv("AUTH_MODE")
	v.BindEnv("AUTH_SECRET")

	// Try reading .env, but don't fail if missing
	_ = v.ReadInConfig()

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if cfg.CORSOrigins == nil {
		origins := v.GetString("CORS_ORIGINS")
		if origins != "" {
			cfg.CORSOrigins = strings.Split(origins, ",")
		}
	}

	return cfg, nil
}

func (c *Config) IsDev() bool {
	return c.Env == "development"
}

// Validate checks that the configuration is safe to run with: a known
// store driver, a database URL when the relational backend is chosen,
// and a signing secret whenever real authentication is in force.
func (c *Config) Validate() error {
	switch c.StoreDriver {
	case DriverDocument:
		if c.DocumentPath == "" {
			return fmt.Errorf("DOCUMENT_PATH is required with STORE_DRIVER=document")
		}
	case DriverPostgres:
		if c.DatabaseURL == "" {
			return fmt.Errorf("DATABASE_URL is required with STORE_DRIVER=postgres")
		}
	default:
		return fmt.Errorf("STORE_DRIVER must be %q or %q, got %q",
			DriverDocument, DriverPostgres, c.StoreDriver)
	}

	switch c.AuthMode {
	case "dev":
		if !c.IsDev() {
			return fmt.Errorf("AUTH_MODE=dev is not allowed outside development")
		}
	case "jwt":
		if c.AuthSecret == "" {
			return fmt.Errorf("AUTH_SECRET is required with AUTH_MODE=jwt")
		}
	default:
		return fmt.Errorf("AUTH_MODE must be %q or %q, got %q", "dev", "jwt", c.AuthMode)
	}
	return nil
}
