package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// EnvPrefix is prepended to every environment variable, e.g. SCRY_SERVER_PORT.
const EnvPrefix = "SCRY"

// Default values applied before any file or environment source.
const (
	DefaultPort                   = 8080
	DefaultLogLevel               = "info"
	DefaultShutdownTimeoutSeconds = 10
	DefaultMaxOpenConns           = 25
	DefaultMaxIdleConns           = 5
	DefaultUsername               = "AnkiStudent"
)

// Load configuration from environment variables and optionally a config.yaml
// in the working directory. Environment variables take precedence over values
// from the config file. Returns a populated Config struct or an error if
// loading/validation fails.
func Load() (*Config, error) {
	return LoadFile("")
}

// LoadFile is Load with an explicit config file path. An empty path looks
// for an optional config.yaml in the working directory; a non-empty path
// must exist.
func LoadFile(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Keys without a default are invisible to Unmarshal unless bound.
	if err := v.BindEnv("database.url"); err != nil {
		return nil, fmt.Errorf("error binding environment: %w", err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshalling config: %w", err)
	}

	if err := Validate(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks cfg against its struct tags.
func Validate(cfg *Config) error {
	if err := validator.New().Struct(cfg); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}
	return nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", DefaultPort)
	v.SetDefault("server.log_level", DefaultLogLevel)
	v.SetDefault("server.shutdown_timeout_seconds", DefaultShutdownTimeoutSeconds)
	v.SetDefault("database.max_open_conns", DefaultMaxOpenConns)
	v.SetDefault("database.max_idle_conns", DefaultMaxIdleConns)
	v.SetDefault("review.seed", 0)
	for _, d := range []string{"hard", "challenging", "normal", "easy", "unreported"} {
		v.SetDefault("review.weights."+d, 0)
	}
	v.SetDefault("users.default_username", DefaultUsername)
}
