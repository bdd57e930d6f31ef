package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// DatabaseConfig holds database connection settings
type DatabaseConfig struct {
	// URL wins over the individual fields when set
	URL      string `env:"DATABASE_URL"`
	Host     string `env:"DB_HOST" envDefault:"localhost"`
	Port     int    `env:"DB_PORT" envDefault:"5432"`
	User     string `env:"DB_USER" envDefault:"directory_admin"`
	Password string `env:"DB_PASSWORD"`
	Name     string `env:"DB_NAME" envDefault:"directory_db"`
	SSLMode  string `env:"DB_SSLMODE" envDefault:"prefer"`
	PoolSize int    `env:"DB_POOL_SIZE" envDefault:"10"`
}

// ConnString builds a keyword/value connection string from the individual fields
func (d DatabaseConfig) ConnString() string {
	if d.Password == "" {
		return fmt.Sprintf(
			"host=%s port=%d user=%s dbname=%s sslmode=%s",
			d.Host, d.Port, d.User, d.Name, d.SSLMode,
		)
	}
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.Name, d.SSLMode,
	)
}

// APIConfig holds the API version allow-list
type APIConfig struct {
	Versions []string `env:"API_VERSIONS" envDefault:"v1,v2" envSeparator:","`
	Current  string   `env:"API_CURRENT_VERSION" envDefault:"v2"`
}

// Config is the full service configuration, read from the environment
type Config struct {
	Port string `env:"PORT" envDefault:"8080"`
	DB   DatabaseConfig
	API  APIConfig
}

// Load parses configuration from environment variables
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse environment: %w", err)
	}
	if cfg.DB.PoolSize < 1 {
		return nil, fmt.Errorf("DB_POOL_SIZE must be positive, got %d", cfg.DB.PoolSize)
	}
	if len(cfg.API.Versions) == 0 {
		return nil, fmt.Errorf("API_VERSIONS must list at least one version")
	}
	return cfg, nil
}

// VersionAvailable reports whether the given version token is served
func (c *Config) VersionAvailable(version string) bool {
	for _, v := range c.API.Versions {
		if v == version {
			return true
		}
	}
	return false
}
