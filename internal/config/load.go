package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// EnvPrefix is prepended to every environment variable, e.g.
// APP_SERVER_PORT sets server.port.
const EnvPrefix = "APP"

type loadOptions struct {
	envFiles    []string
	configPaths []string
}

// Load configuration from defaults, an optional config.yaml in the working
// directory, an optional .env file and environment variables, in increasing
// order of precedence. Returns a populated Config or an error if loading or
// validation fails.
func Load() (*Config, error) {
	return load(loadOptions{
		envFiles:    []string{".env"},
		configPaths: []string{"."},
	})
}

func load(opts loadOptions) (*Config, error) {
	// .env never overrides variables already set in the environment.
	for _, f := range opts.envFiles {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("failed to load %s: %w", f, err)
		}
	}

	v := viper.New()
	setDefaults(v)

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	for _, p := range opts.configPaths {
		v.AddConfigPath(p)
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := validator.New().Struct(&cfg); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &cfg, nil
}

// setDefaults registers every key so AutomaticEnv can resolve it during
// Unmarshal.
func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.log_level", "info")
	v.SetDefault("server.shutdown_timeout", "15s")

	v.SetDefault("database.url", "")
	v.SetDefault("database.max_open_conns", 25)
	v.SetDefault("database.max_idle_conns", 5)
	v.SetDefault("database.conn_max_lifetime", "30m")

	v.SetDefault("auth.bcrypt_cost", 10)

	v.SetDefault("credits.initial_balance", 0)
	v.SetDefault("credits.simulation_cost", 1)
	v.SetDefault("credits.session_cost", 3)

	v.SetDefault("catalog.path", "")
}
