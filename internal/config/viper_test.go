package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitializeConfig_Defaults(t *testing.T) {
	clearTestEnvVars(t)

	config, err := InitializeConfig()
	require.NoError(t, err)

	assert.Equal(t, "info", config.Log.Level)
	assert.Equal(t, "text", config.Log.Format)
	assert.Equal(t, "USD", config.Currency.Base)
	assert.Equal(t, "", config.Currency.RatesFile)
	assert.Equal(t, 3.0, config.Analysis.AnomalyMultiplier)
	assert.Equal(t, 1, config.Analysis.MonthsAhead)
	assert.Equal(t, "", config.Categories.KeywordsFile)
	assert.Equal(t, "Uncategorized", config.Categories.FallbackCategory)
}

func TestInitializeConfig_EnvironmentVariables(t *testing.T) {
	clearTestEnvVars(t)

	testEnvVars := map[string]string{
		"SPLITSENSE_LOG_LEVEL":     "debug",
		"SPLITSENSE_LOG_FORMAT":    "json",
		"SPLITSENSE_CURRENCY_BASE": "EUR",
	}
	for key, value := range testEnvVars {
		t.Setenv(key, value)
	}

	config, err := InitializeConfig()
	require.NoError(t, err)

	assert.Equal(t, "debug", config.Log.Level)
	assert.Equal(t, "json", config.Log.Format)
	assert.Equal(t, "EUR", config.Currency.Base)
}

func TestInitializeConfig_ConfigFile(t *testing.T) {
	clearTestEnvVars(t)

	tempDir := t.TempDir()
	configFile := filepath.Join(tempDir, "config.yaml")

	configContent := `
log:
  level: "warn"
currency:
  base: "GBP"
analysis:
  anomaly_multiplier: 2.5
  months_ahead: 3
`
	require.NoError(t, os.WriteFile(configFile, []byte(configContent), 0644))

	// Change to temp directory so config file is found
	originalDir, err := os.Getwd()
	require.NoError(t, err)
	defer func() {
		require.NoError(t, os.Chdir(originalDir))
	}()
	require.NoError(t, os.Chdir(tempDir))

	config, err := InitializeConfig()
	require.NoError(t, err)

	assert.Equal(t, "warn", config.Log.Level)
	assert.Equal(t, "GBP", config.Currency.Base)
	assert.Equal(t, 2.5, config.Analysis.AnomalyMultiplier)
	assert.Equal(t, 3, config.Analysis.MonthsAhead)
}

func TestInitializeConfig_HierarchicalPrecedence(t *testing.T) {
	clearTestEnvVars(t)

	tempDir := t.TempDir()
	configFile := filepath.Join(tempDir, "config.yaml")

	configContent := `
log:
  level: "warn"
currency:
  base: "GBP"
`
	require.NoError(t, os.WriteFile(configFile, []byte(configContent), 0644))

	// Env vars should override the config file
	t.Setenv("SPLITSENSE_LOG_LEVEL", "error")

	originalDir, err := os.Getwd()
	require.NoError(t, err)
	defer func() {
		require.NoError(t, os.Chdir(originalDir))
	}()
	require.NoError(t, os.Chdir(tempDir))

	config, err := InitializeConfig()
	require.NoError(t, err)

	assert.Equal(t, "error", config.Log.Level) // env var wins
	assert.Equal(t, "GBP", config.Currency.Base)
}

func TestValidateConfig_InvalidValues(t *testing.T) {
	valid := func() *Config {
		c := &Config{}
		c.Log.Level = "info"
		c.Log.Format = "text"
		c.Currency.Base = "USD"
		c.Analysis.AnomalyMultiplier = 3.0
		c.Analysis.MonthsAhead = 1
		return c
	}

	tests := []struct {
		name         string
		modifyConfig func(*Config)
		expectError  string
	}{
		{
			name:         "invalid log level",
			modifyConfig: func(c *Config) { c.Log.Level = "loud" },
			expectError:  "invalid log level",
		},
		{
			name:         "invalid log format",
			modifyConfig: func(c *Config) { c.Log.Format = "xml" },
			expectError:  "invalid log format",
		},
		{
			name:         "invalid base currency",
			modifyConfig: func(c *Config) { c.Currency.Base = "DOLLARS" },
			expectError:  "invalid base currency",
		},
		{
			name:         "non-positive anomaly multiplier",
			modifyConfig: func(c *Config) { c.Analysis.AnomalyMultiplier = 0 },
			expectError:  "anomaly multiplier",
		},
		{
			name:         "months ahead below one",
			modifyConfig: func(c *Config) { c.Analysis.MonthsAhead = 0 },
			expectError:  "months ahead",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := valid()
			tt.modifyConfig(c)
			err := validateConfig(c)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.expectError)
		})
	}
}

// clearTestEnvVars unsets every SPLITSENSE_* variable a test might set.
func clearTestEnvVars(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"SPLITSENSE_LOG_LEVEL",
		"SPLITSENSE_LOG_FORMAT",
		"SPLITSENSE_CURRENCY_BASE",
		"SPLITSENSE_CURRENCY_RATES_FILE",
		"SPLITSENSE_ANALYSIS_ANOMALY_MULTIPLIER",
		"SPLITSENSE_ANALYSIS_MONTHS_AHEAD",
		"SPLITSENSE_CATEGORIES_KEYWORDS_FILE",
		"SPLITSENSE_CATEGORIES_FALLBACK_CATEGORY",
	} {
		os.Unsetenv(key)
	}
}
