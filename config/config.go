package config

import (
	"errors"
	"fmt"

	"github.com/caarlos0/env/v6"
)

// ErrMissingAPIKey is returned when the paginated HUD API variant is used
// without credentials.
var ErrMissingAPIKey = errors.New("HUD_API_KEY is not set (register at https://www.huduser.gov/portal/dataset/fmr-api.html)")

type Config struct {
	// HUD API configuration (paginated variant only).
	HUD struct {
		APIKey  string `env:"HUD_API_KEY"`
		BaseURL string `env:"HUD_API_BASE_URL" envDefault:"https://www.huduser.gov/hudapi/public/fmr"`

		// Per-call timeout in seconds. The bulk spreadsheet download
		// deliberately has no timeout; only the API calls use this.
		Timeout int `env:"HUD_API_TIMEOUT" envDefault:"30"`
	}

	// Database connection settings. URL wins when set; otherwise the DSN is
	// composed from the individual fields.
	Database struct {
		URL      string `env:"DATABASE_URL"`
		User     string `env:"DB_USER" envDefault:"postgres"`
		Password string `env:"DB_PASSWORD" envDefault:"postgres"`
		Host     string `env:"DB_HOST" envDefault:"localhost"`
		Port     int    `env:"DB_PORT" envDefault:"5432"`
		Name     string `env:"DB_NAME" envDefault:"fmr_data"`
	}
}

// LoadConfig reads configuration from the environment once at startup. The
// result is passed around explicitly; there is no package-level state.
func LoadConfig() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// ValidateHUD checks that the API variant has everything it needs.
func (c *Config) ValidateHUD() error {
	if c.HUD.APIKey == "" {
		return ErrMissingAPIKey
	}
	return nil
}

// DatabaseDSN returns the PostgreSQL connection string.
func (c *Config) DatabaseDSN() string {
	if c.Database.URL != "" {
		return c.Database.URL
	}
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s",
		c.Database.User, c.Database.Password, c.Database.Host, c.Database.Port, c.Database.Name)
}
