// Package config provides Viper-based hierarchical configuration management
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment override, e.g. LEDGER_STORE_DRIVER.
const EnvPrefix = "LEDGER"

// Config represents the complete application configuration
type Config struct {
	Log struct {
		Level  string `mapstructure:"level" yaml:"level"`
		Format string `mapstructure:"format" yaml:"format"`
	} `mapstructure:"log" yaml:"log"`

	Store struct {
		Driver      string `mapstructure:"driver" yaml:"driver"`
		SQLitePath  string `mapstructure:"sqlite_path" yaml:"sqlite_path"`
		PostgresDSN string `mapstructure:"postgres_dsn" yaml:"-"` // may carry credentials
	} `mapstructure:"store" yaml:"store"`

	Report struct {
		Title string `mapstructure:"title" yaml:"title"`
	} `mapstructure:"report" yaml:"report"`

	Chart struct {
		Title  string `mapstructure:"title" yaml:"title"`
		Width  int    `mapstructure:"width" yaml:"width"`
		Height int    `mapstructure:"height" yaml:"height"`
	} `mapstructure:"chart" yaml:"chart"`

	CSV struct {
		Delimiter string `mapstructure:"delimiter" yaml:"delimiter"`
	} `mapstructure:"csv" yaml:"csv"`

	Server struct {
		Addr         string   `mapstructure:"addr" yaml:"addr"`
		AllowOrigins []string `mapstructure:"allow_origins" yaml:"allow_origins"`
	} `mapstructure:"server" yaml:"server"`
}

// InitializeConfig loads configuration from defaults, the first config.yaml
// found in the search paths and LEDGER_* environment variables.
func InitializeConfig() (*Config, error) {
	return InitializeConfigFromFile("")
}

// InitializeConfigFromFile is InitializeConfig with an explicit config file.
// An empty path falls back to the search paths. An explicit file must exist.
func InitializeConfigFromFile(path string) (*Config, error) {
	v := viper.New()

	// 1. Set defaults
	setDefaults(v)

	// 2. Config file locations
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath("$HOME/.expense-ledger")
		v.AddConfigPath(".expense-ledger")
		v.AddConfigPath(".")
	}

	// 3. Environment variables
	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// 4. Read config file (optional unless explicit)
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	// 5. The conventional DATABASE_URL also selects the PostgreSQL DSN
	if err := v.BindEnv("store.postgres_dsn", EnvPrefix+"_STORE_POSTGRES_DSN", "DATABASE_URL"); err != nil {
		return nil, fmt.Errorf("failed to bind DATABASE_URL: %w", err)
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	// 6. Validate configuration
	if err := validateConfig(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")

	v.SetDefault("store.driver", "sqlite")
	v.SetDefault("store.sqlite_path", "ledger.db")
	v.SetDefault("store.postgres_dsn", "")

	v.SetDefault("report.title", "Financial Report")

	v.SetDefault("chart.title", "Monthly Expenses")
	v.SetDefault("chart.width", 800)
	v.SetDefault("chart.height", 480)

	v.SetDefault("csv.delimiter", ",")

	v.SetDefault("server.addr", ":8080")
	v.SetDefault("server.allow_origins", []string{"*"})
}

// validateConfig validates the configuration values
func validateConfig(config *Config) error {
	if _, err := logrus.ParseLevel(config.Log.Level); err != nil {
		return fmt.Errorf("invalid log level: %s", config.Log.Level)
	}

	if config.Log.Format != "text" && config.Log.Format != "json" {
		return fmt.Errorf("invalid log format: %s (must be 'text' or 'json')", config.Log.Format)
	}

	switch config.Store.Driver {
	case "sqlite":
		if config.Store.SQLitePath == "" {
			return errors.New("store.sqlite_path is required for the sqlite driver")
		}
	case "postgres":
		if config.Store.PostgresDSN == "" {
			return errors.New("store.postgres_dsn or DATABASE_URL is required for the postgres driver")
		}
	default:
		return fmt.Errorf("invalid store driver: %s (must be 'sqlite' or 'postgres')", config.Store.Driver)
	}

	if len([]rune(config.CSV.Delimiter)) != 1 {
		return fmt.Errorf("CSV delimiter must be a single character, got: %s", config.CSV.Delimiter)
	}

	if config.Chart.Width < 100 || config.Chart.Width > 10000 {
		return fmt.Errorf("chart.width must be between 100 and 10000, got: %d", config.Chart.Width)
	}
	if config.Chart.Height < 100 || config.Chart.Height > 10000 {
		return fmt.Errorf("chart.height must be between 100 and 10000, got: %d", config.Chart.Height)
	}

	if config.Server.Addr == "" {
		return errors.New("server.addr must not be empty")
	}

	return nil
}

// DelimiterRune returns the configured CSV delimiter.
func (c *Config) DelimiterRune() rune {
	return []rune(c.CSV.Delimiter)[0]
}
