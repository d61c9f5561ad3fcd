package config

import (
	"fmt"

	"github.com/spf13/viper"
)

// Config holds the service configuration, loaded from the environment with
// an optional .env file for local development.
type Config struct {
	// Server
	Port string `mapstructure:"PORT"`
	Env  string `mapstructure:"ENV"`

	// Logging
	LogLevel string `mapstructure:"LOG_LEVEL"`

	// Redis (empty disables the result cache)
	RedisURL string `mapstructure:"REDIS_URL"`

	// Result cache
	CacheTTLMinutes int `mapstructure:"CACHE_TTL_MINUTES"`
}

// LoadConfig reads configuration from a .env file (when present) and the
// process environment, applying defaults for everything unset.
func LoadConfig() (*Config, error) {
	viper.SetConfigName(".env")
	viper.SetConfigType("env")
	viper.AddConfigPath(".")
	viper.AddConfigPath("..")

	viper.SetDefault("PORT", "8080")
	viper.SetDefault("ENV", "development")
	viper.SetDefault("LOG_LEVEL", "")
	viper.SetDefault("REDIS_URL", "")
	viper.SetDefault("CACHE_TTL_MINUTES", 60)

	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		// A missing .env file is fine; anything else is a real problem.
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &cfg, nil
}

// IsDevelopment reports whether the service runs in development mode.
func (c *Config) IsDevelopment() bool {
	return c.Env == "development"
}
