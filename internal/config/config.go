package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
	"github.com/rs/zerolog/log"
)

const anchorLayout = "2006-01-02"

// Config holds the configuration for the workhours service.
// Environment variables are parsed from the WORKHOURS_ prefix, for example
// WORKHOURS_HTTP_PORT or WORKHOURS_POSTGRES_DSN.
type Config struct {
	// BuildTarget selects the deployment shape: local runs on sqlite,
	// cloud runs on postgres.
	BuildTarget string `envconfig:"BUILD_TARGET" default:"local"`

	// DBDriver overrides the driver derived from BuildTarget when set.
	DBDriver string `envconfig:"DB_DRIVER" default:"auto"`

	HTTPPort int `envconfig:"HTTP_PORT" default:"8080"`

	SQLitePath  string `envconfig:"SQLITE_PATH" default:"workhours.db"`
	PostgresDSN string `envconfig:"POSTGRES_DSN" default:""`

	// PayPeriodAnchor is the Saturday that starts pay period zero,
	// in YYYY-MM-DD form.
	PayPeriodAnchor string `envconfig:"PAY_PERIOD_ANCHOR" default:"2023-01-07"`

	// DevMode enables the mock authorizer that accepts sk_dev_<userId>
	// tokens. Never enable outside local development.
	DevMode bool `envconfig:"DEV_MODE" default:"true"`
}

// ResolveDefaults validates BuildTarget and derives DBDriver when it is
// "auto" or empty.
func (c *Config) ResolveDefaults() error {
	var defaultDB string
	switch c.BuildTarget {
	case "local":
		defaultDB = "sqlite"
	case "cloud":
		defaultDB = "postgres"
	default:
		return fmt.Errorf("unsupported BUILD_TARGET: %s", c.BuildTarget)
	}

	if c.DBDriver == "" || c.DBDriver == "auto" {
		c.DBDriver = defaultDB
	}
	switch c.DBDriver {
	case "sqlite":
	case "postgres":
		if c.PostgresDSN == "" {
			return fmt.Errorf("WORKHOURS_POSTGRES_DSN is required for DB_DRIVER=postgres")
		}
	default:
		return fmt.Errorf("unsupported DB_DRIVER: %s", c.DBDriver)
	}

	if _, err := time.Parse(anchorLayout, c.PayPeriodAnchor); err != nil {
		return fmt.Errorf("invalid PAY_PERIOD_ANCHOR %q: expected YYYY-MM-DD", c.PayPeriodAnchor)
	}
	return nil
}

// Anchor returns the pay-period anchor as a UTC midnight timestamp.
// ResolveDefaults must have validated the config first.
func (c *Config) Anchor() time.Time {
	t, _ := time.Parse(anchorLayout, c.PayPeriodAnchor)
	return t
}

// New parses the environment into a validated Config.
func New() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("WORKHOURS", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process environment variables: %w", err)
	}
	if err := cfg.ResolveDefaults(); err != nil {
		return nil, err
	}

	log.Info().
		Str("build_target", cfg.BuildTarget).
		Str("db_driver", cfg.DBDriver).
		Int("port", cfg.HTTPPort).
		Str("pay_period_anchor", cfg.PayPeriodAnchor).
		Bool("dev_mode", cfg.DevMode).
		Msg("configuration loaded")

	return &cfg, nil
}
