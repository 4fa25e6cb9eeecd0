package config

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupEnv sets up environment variables for testing
func setupEnv(t *testing.T, envVars map[string]string) func() {
	// Save current environment values
	originalValues := make(map[string]string)
	for name := range envVars {
		originalValues[name] = os.Getenv(name)
	}

	// Set new environment variables
	for name, value := range envVars {
		err := os.Setenv(name, value)
		require.NoError(t, err, "Failed to set environment variable %s", name)
	}

	// Return cleanup function
	return func() {
		// Restore original environment
		for name, value := range originalValues {
			if value == "" {
				os.Unsetenv(name)
			} else {
				os.Setenv(name, value)
			}
		}
	}
}

// TestLoadDefaults verifies that the Load function sets the expected default
// values when no environment variables are set.
func TestLoadDefaults(t *testing.T) {
	cleanup := setupEnv(t, map[string]string{
		"GEOQUIZ_GAME_MODE":        "",
		"GEOQUIZ_GAME_REGION":      "",
		"GEOQUIZ_GAME_LANGUAGE":    "",
		"GEOQUIZ_STORAGE_DB_PATH":  "",
		"GEOQUIZ_AUDIO_VOLUME":     "",
		"GEOQUIZ_LOGGING_LEVEL":    "",
		"GEOQUIZ_STORAGE_DATA_DIR": "",
	})
	defer cleanup()

	cfg, err := Load()

	require.NoError(t, err, "Load() should not return an error with default values")
	require.NotNil(t, cfg, "Load() should return a non-nil config")
	assert.Equal(t, "flag_to_name", cfg.Game.Mode, "Default mode should be flag_to_name")
	assert.Equal(t, "all", cfg.Game.Region, "Default region should be 'all'")
	assert.Equal(t, "es", cfg.Game.Language, "Default language should be Spanish")
	assert.Equal(t, "geoquiz.db", cfg.Storage.DBPath)
	assert.Equal(t, "assets/flags", cfg.Storage.FlagsDir)
	assert.True(t, cfg.Audio.Enabled, "Audio should be enabled by default")
	assert.Equal(t, 0.5, cfg.Audio.Volume)
	assert.Equal(t, "info", cfg.Logging.Level, "Default log level should be 'info'")
}

// TestLoadFromEnv verifies that the Load function correctly reads values from environment variables.
func TestLoadFromEnv(t *testing.T) {
	cleanup := setupEnv(t, map[string]string{
		"GEOQUIZ_GAME_MODE":         "name_to_capital",
		"GEOQUIZ_GAME_REGION":       "Europe",
		"GEOQUIZ_GAME_LANGUAGE":     "en",
		"GEOQUIZ_STORAGE_DB_PATH":   "/tmp/quiz-saves.db",
		"GEOQUIZ_STORAGE_FLAGS_DIR": "/tmp/flags",
		"GEOQUIZ_AUDIO_VOLUME":      "0.8",
		"GEOQUIZ_LOGGING_LEVEL":     "debug",
	})
	defer cleanup()

	cfg, err := Load()

	require.NoError(t, err, "Load() should not return an error with valid environment variables")
	require.NotNil(t, cfg, "Load() should return a non-nil config")
	assert.Equal(t, "name_to_capital", cfg.Game.Mode)
	assert.Equal(t, "Europe", cfg.Game.Region)
	assert.Equal(t, "en", cfg.Game.Language)
	assert.Equal(t, "/tmp/quiz-saves.db", cfg.Storage.DBPath)
	assert.Equal(t, "/tmp/flags", cfg.Storage.FlagsDir)
	assert.Equal(t, 0.8, cfg.Audio.Volume)
	assert.Equal(t, "debug", cfg.Logging.Level)
}

// TestLoadValidationErrors verifies that the Load function correctly validates the configuration.
func TestLoadValidationErrors(t *testing.T) {
	testCases := []struct {
		name           string
		envVars        map[string]string
		errorSubstring string
	}{
		{
			name: "Invalid mode",
			envVars: map[string]string{
				"GEOQUIZ_GAME_MODE": "reverse_flags",
			},
			errorSubstring: "validation failed",
		},
		{
			name: "Invalid language tag",
			envVars: map[string]string{
				"GEOQUIZ_GAME_LANGUAGE": "!!not-a-tag!!",
			},
			errorSubstring: "validation failed",
		},
		{
			name: "Volume out of range",
			envVars: map[string]string{
				"GEOQUIZ_AUDIO_VOLUME": "1.5",
			},
			errorSubstring: "validation failed",
		},
		{
			name: "Invalid log level",
			envVars: map[string]string{
				"GEOQUIZ_LOGGING_LEVEL": "loud",
			},
			errorSubstring: "validation failed",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			cleanup := setupEnv(t, tc.envVars)
			defer cleanup()

			cfg, err := Load()

			assert.Error(t, err, "Load() should return an error with invalid configuration")
			if err != nil {
				assert.Contains(t, err.Error(), tc.errorSubstring, "Error message should contain expected substring")
			}
			assert.Nil(t, cfg, "Config should be nil when an error occurs")
		})
	}
}
