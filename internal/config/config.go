// Package config provides Viper-based hierarchical configuration for the
// ingestion pipeline: defaults, then an optional config file, then
// LEDGERSYNC_* environment variables.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

var envOnce sync.Once

// Config is the complete application configuration.
type Config struct {
	Log struct {
		Level  string `mapstructure:"level" yaml:"level"`
		Format string `mapstructure:"format" yaml:"format"`
	} `mapstructure:"log" yaml:"log"`

	Source struct {
		// URL of the published spreadsheet CSV export. Takes precedence
		// over File when both are set.
		URL  string `mapstructure:"url" yaml:"url"`
		File string `mapstructure:"file" yaml:"file"`
		// Demo marks fetched snapshots as seeded demo data: they persist
		// normally but never wake downstream consumers.
		Demo           bool `mapstructure:"demo" yaml:"demo"`
		TimeoutSeconds int  `mapstructure:"timeout_seconds" yaml:"timeout_seconds"`
	} `mapstructure:"source" yaml:"source"`

	Data struct {
		// Directory holding per-user transaction YAML files plus the
		// budget-category and rule configuration.
		Directory      string `mapstructure:"directory" yaml:"directory"`
		BudgetsFile    string `mapstructure:"budgets_file" yaml:"budgets_file"`
		RulesFile      string `mapstructure:"rules_file" yaml:"rules_file"`
		CategoriesFile string `mapstructure:"categories_file" yaml:"categories_file"`
	} `mapstructure:"data" yaml:"data"`

	Sync struct {
		DefaultUser string `mapstructure:"default_user" yaml:"default_user"`
	} `mapstructure:"sync" yaml:"sync"`

	Signal struct {
		Enabled        bool   `mapstructure:"enabled" yaml:"enabled"`
		URL            string `mapstructure:"url" yaml:"url"`
		TimeoutSeconds int    `mapstructure:"timeout_seconds" yaml:"timeout_seconds"`
	} `mapstructure:"signal" yaml:"signal"`
}

// Load initializes Viper configuration with hierarchical loading.
func Load() (*Config, error) {
	v := viper.New()

	setDefaults(v)

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("$HOME/.ledger-sync")
	v.AddConfigPath(".ledger-sync")
	v.AddConfigPath(".")

	v.SetEnvPrefix("LEDGERSYNC")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			// Continue with defaults and env vars on a broken file.
			fmt.Printf("Warning: error reading config file %s: %v\n", v.ConfigFileUsed(), err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := validate(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")

	v.SetDefault("source.url", "")
	v.SetDefault("source.file", "")
	v.SetDefault("source.demo", false)
	v.SetDefault("source.timeout_seconds", 5)

	v.SetDefault("data.directory", "data")
	v.SetDefault("data.budgets_file", "budgets.yaml")
	v.SetDefault("data.rules_file", "rules.yaml")
	v.SetDefault("data.categories_file", "categories.yaml")

	v.SetDefault("sync.default_user", "default")

	v.SetDefault("signal.enabled", false)
	v.SetDefault("signal.url", "")
	v.SetDefault("signal.timeout_seconds", 5)
}

func validate(config *Config) error {
	if _, err := logrus.ParseLevel(config.Log.Level); err != nil {
		return fmt.Errorf("invalid log level: %s", config.Log.Level)
	}

	if config.Log.Format != "text" && config.Log.Format != "json" {
		return fmt.Errorf("invalid log format: %s (must be 'text' or 'json')", config.Log.Format)
	}

	if config.Source.TimeoutSeconds < 1 || config.Source.TimeoutSeconds > 60 {
		return fmt.Errorf("source.timeout_seconds must be between 1 and 60, got: %d", config.Source.TimeoutSeconds)
	}

	if config.Signal.Enabled && config.Signal.URL == "" {
		return fmt.Errorf("signal.url required when signal emission is enabled")
	}

	return nil
}

// LoadEnv loads environment variables from a .env file if one exists in the
// current or parent directory. Safe to call more than once.
func LoadEnv() {
	envOnce.Do(func() {
		envFile := ".env"
		if _, err := os.Stat(envFile); os.IsNotExist(err) {
			envFile = filepath.Join("..", ".env")
			if _, err := os.Stat(envFile); os.IsNotExist(err) {
				return
			}
		}

		if err := godotenv.Load(envFile); err != nil {
			fmt.Printf("Warning: error loading %s: %v\n", envFile, err)
		}
	})
}
