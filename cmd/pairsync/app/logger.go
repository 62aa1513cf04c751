package app

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"

	"github.com/pairsync/pairsync/pkg/logging"
)

// NewLogger creates a configured logger from the global flags.
// Log level precedence (highest to lowest):
//  1. --log-level flag (explicit always wins)
//  2. -v/--verbose flag (shortcut for debug)
//  3. -q/--quiet flag (shortcut for warn)
//  4. LOG_LEVEL environment variable (via DefaultFlags)
//  5. Default (info)
func NewLogger(flags *Flags) zerolog.Logger {
	level := determineLogLevel(flags)

	logConfig := &logging.Config{
		Level:     level,
		Format:    "auto",
		Output:    "stderr",
		NoColor:   flags.NoColor,
		AddCaller: level == "debug" || level == "trace",
	}

	logger := logging.NewLoggerFromConfig(logConfig)
	logging.SetDefault(logger)
	return logger
}

// determineLogLevel applies the precedence rules above.
func determineLogLevel(flags *Flags) string {
	if flags.LogLevel != "" {
		if _, err := zerolog.ParseLevel(flags.LogLevel); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: invalid log level %q, using \"info\"\n", flags.LogLevel)
			return "info"
		}
		return flags.LogLevel
	}

	if flags.Verbose && flags.Quiet {
		fmt.Fprintln(os.Stderr, "Warning: both --verbose and --quiet specified, using --quiet")
		return "warn"
	}
	if flags.Verbose {
		return "debug"
	}
	if flags.Quiet {
		return "warn"
	}

	return "info"
}
