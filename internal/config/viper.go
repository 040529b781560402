// Package config provides Viper-based hierarchical configuration management
package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Config represents the complete application configuration
type Config struct {
	Log struct {
		Level  string `mapstructure:"level" yaml:"level"`
		Format string `mapstructure:"format" yaml:"format"`
	} `mapstructure:"log" yaml:"log"`

	Currency struct {
		Base      string `mapstructure:"base" yaml:"base"`
		RatesFile string `mapstructure:"rates_file" yaml:"rates_file"`
	} `mapstructure:"currency" yaml:"currency"`

	Analysis struct {
		AnomalyMultiplier float64 `mapstructure:"anomaly_multiplier" yaml:"anomaly_multiplier"`
		MonthsAhead       int     `mapstructure:"months_ahead" yaml:"months_ahead"`
	} `mapstructure:"analysis" yaml:"analysis"`

	Categories struct {
		KeywordsFile     string `mapstructure:"keywords_file" yaml:"keywords_file"`
		FallbackCategory string `mapstructure:"fallback_category" yaml:"fallback_category"`
	} `mapstructure:"categories" yaml:"categories"`
}

// InitializeConfig initializes Viper configuration with hierarchical loading:
// defaults, then an optional config file, then SPLITSENSE_* environment
// variables.
func InitializeConfig() (*Config, error) {
	v := viper.New()

	setDefaults(v)

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("$HOME/.splitsense")
	v.AddConfigPath(".splitsense")
	v.AddConfigPath(".")

	v.SetEnvPrefix("SPLITSENSE")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			// Continue with defaults and env vars; a broken file should not
			// take the CLI down.
			Logger.Warnf("error reading config file %s: %v", v.ConfigFileUsed(), err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := validateConfig(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")

	v.SetDefault("currency.base", "USD")
	v.SetDefault("currency.rates_file", "")

	v.SetDefault("analysis.anomaly_multiplier", 3.0)
	v.SetDefault("analysis.months_ahead", 1)

	v.SetDefault("categories.keywords_file", "")
	v.SetDefault("categories.fallback_category", "Uncategorized")
}

// validateConfig validates the loaded configuration
func validateConfig(config *Config) error {
	switch strings.ToLower(config.Log.Level) {
	case "debug", "info", "warn", "warning", "error", "fatal":
	default:
		return fmt.Errorf("invalid log level: %s", config.Log.Level)
	}

	switch strings.ToLower(config.Log.Format) {
	case "text", "json":
	default:
		return fmt.Errorf("invalid log format: %s", config.Log.Format)
	}

	if len(config.Currency.Base) != 3 {
		return fmt.Errorf("invalid base currency: %s", config.Currency.Base)
	}

	if config.Analysis.AnomalyMultiplier <= 0 {
		return fmt.Errorf("anomaly multiplier must be positive, got %g", config.Analysis.AnomalyMultiplier)
	}
	if config.Analysis.MonthsAhead < 1 {
		return fmt.Errorf("months ahead must be at least 1, got %d", config.Analysis.MonthsAhead)
	}

	return nil
}
