package config

import "time"

// Config holds all application configuration.
// It organizes settings into logical groups for better maintainability.
type Config struct {
	Server   ServerConfig   `mapstructure:"server" validate:"required"`
	Database DatabaseConfig `mapstructure:"database" validate:"required"`
	Auth     AuthConfig     `mapstructure:"auth"`
	Credits  CreditsConfig  `mapstructure:"credits"`
	Catalog  CatalogConfig  `mapstructure:"catalog"`
}

// ServerConfig contains all server-related configuration settings.
type ServerConfig struct {
	Port            int           `mapstructure:"port" validate:"required,gt=0,lt=65536"`
	LogLevel        string        `mapstructure:"log_level" validate:"required,oneof=debug info warn error"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout" validate:"gt=0"`
}

// DatabaseConfig contains all database-related configuration settings.
type DatabaseConfig struct {
	URL             string        `mapstructure:"url" validate:"required,url"`
	MaxOpenConns    int           `mapstructure:"max_open_conns" validate:"gte=1"`
	MaxIdleConns    int           `mapstructure:"max_idle_conns" validate:"gte=0,ltefield=MaxOpenConns"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime" validate:"gte=0"`
}

// AuthConfig contains password hashing settings.
type AuthConfig struct {
	BCryptCost int `mapstructure:"bcrypt_cost" validate:"gte=4,lte=31"`
}

// CreditsConfig sets the credit economy.
type CreditsConfig struct {
	// InitialBalance is granted to every newly registered user.
	InitialBalance int `mapstructure:"initial_balance" validate:"gte=0"`
	// SimulationCost is deducted when a custom simulation is created.
	SimulationCost int `mapstructure:"simulation_cost" validate:"gte=0"`
	// SessionCost is the default deduction for a practice session.
	SessionCost int `mapstructure:"session_cost" validate:"gte=1"`
}

// CatalogConfig locates the predefined project catalog.
type CatalogConfig struct {
	// Path overrides the embedded catalog with a YAML file on disk.
	Path string `mapstructure:"path" validate:"omitempty,file"`
}
