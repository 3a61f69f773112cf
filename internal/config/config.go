package config

// Config holds all application configuration.
// It organizes settings into logical groups for better maintainability.
type Config struct {
	Server   ServerConfig   `mapstructure:"server" validate:"required"`
	Database DatabaseConfig `mapstructure:"database" validate:"required"`
	Review   ReviewConfig   `mapstructure:"review"`
	Users    UsersConfig    `mapstructure:"users" validate:"required"`
}

// ServerConfig contains all server-related configuration settings.
type ServerConfig struct {
	Port                   int    `mapstructure:"port" validate:"required,gt=0,lt=65536"`
	LogLevel               string `mapstructure:"log_level" validate:"required,oneof=debug info warn error"`
	ShutdownTimeoutSeconds int    `mapstructure:"shutdown_timeout_seconds" validate:"gte=1,lte=300"`
}

// DatabaseConfig contains all database-related configuration settings.
type DatabaseConfig struct {
	URL          string `mapstructure:"url" validate:"required,url"`
	MaxOpenConns int    `mapstructure:"max_open_conns" validate:"gte=1"`
	MaxIdleConns int    `mapstructure:"max_idle_conns" validate:"gte=0,ltefield=MaxOpenConns"`
}

// ReviewConfig configures card selection.
type ReviewConfig struct {
	// Seed makes card selection reproducible when non-zero. Zero seeds from
	// the runtime's random source.
	Seed uint64 `mapstructure:"seed"`

	// Weights overrides entries of the default weight table. Zero keeps the
	// default for that difficulty.
	Weights WeightsConfig `mapstructure:"weights"`
}

// WeightsConfig holds per-difficulty weight overrides.
type WeightsConfig struct {
	Hard        int `mapstructure:"hard" validate:"gte=0"`
	Challenging int `mapstructure:"challenging" validate:"gte=0"`
	Normal      int `mapstructure:"normal" validate:"gte=0"`
	Easy        int `mapstructure:"easy" validate:"gte=0"`
	Unreported  int `mapstructure:"unreported" validate:"gte=0"`
}

// UsersConfig configures user identification. Every request is served as the
// default user.
type UsersConfig struct {
	DefaultUsername string `mapstructure:"default_username" validate:"required,min=1,max=100"`
}
