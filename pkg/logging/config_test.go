package logging_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pairsync/pairsync/pkg/logging"
)

func TestConfigFunctions(t *testing.T) {
	// Save and restore the original logger and level
	originalLogger := *logging.Default()
	originalLevel := zerolog.GlobalLevel()
	defer func() {
		logging.SetDefault(originalLogger)
		zerolog.SetGlobalLevel(originalLevel)
	}()

	t.Run("DefaultConfig returns sensible defaults", func(t *testing.T) {
		cfg := logging.DefaultConfig()
		assert.NotNil(t, cfg)
		assert.Equal(t, "info", cfg.Level)
		assert.Equal(t, "auto", cfg.Format)
		assert.Equal(t, "stderr", cfg.Output)
		assert.False(t, cfg.AddCaller)
	})

	t.Run("NewLoggerFromConfig writes to the configured file", func(t *testing.T) {
		logfile := filepath.Join(t.TempDir(), "pairsync.log")

		cfg := &logging.Config{
			Level:  "info",
			Format: "json",
			Output: logfile,
		}

		logger := logging.NewLoggerFromConfig(cfg)
		logger.Info().Str("pair", "my_pair").Msg("sync started")

		content, err := os.ReadFile(logfile)
		require.NoError(t, err)
		assert.Contains(t, string(content), "sync started")
		assert.Contains(t, string(content), "my_pair")
	})

	t.Run("Configure applies the level to the default logger", func(t *testing.T) {
		logfile := filepath.Join(t.TempDir(), "pairsync.log")

		logging.Configure(&logging.Config{
			Level:  "warn",
			Format: "json",
			Output: logfile,
		})

		logging.Debug().Msg("debug message")
		logging.Info().Msg("info message")
		logging.Warn().Msg("warn message")

		content, err := os.ReadFile(logfile)
		require.NoError(t, err)
		output := string(content)
		assert.NotContains(t, output, "debug message")
		assert.NotContains(t, output, "info message")
		assert.Contains(t, output, "warn message")
	})

	t.Run("nil config falls back to defaults", func(t *testing.T) {
		logger := logging.NewLoggerFromConfig(nil)
		assert.Equal(t, zerolog.InfoLevel, logger.GetLevel())
	})
}
