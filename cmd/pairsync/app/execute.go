package app

import (
	"context"
	"os"

	"github.com/spf13/cobra"
)

// Execute runs the pairsync CLI application with the given arguments.
// This is the main entry point called from main.go.
func (a *App) Execute(ctx context.Context, args []string) error {
	rootCmd := a.createRootCommand()
	rootCmd.SetArgs(args)
	return rootCmd.ExecuteContext(ctx)
}

// createRootCommand creates the root cobra command with all subcommands.
func (a *App) createRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:     "pairsync",
		Short:   "Synchronize metadata between storage pairs",
		Version: a.version,
		Long: `Pairsync keeps pairs of storages in agreement by three-way
reconciliation: each side's current value is compared against the last
value both sides agreed on, so changes propagate in the right direction
and conflicting edits are surfaced instead of silently overwritten.

Pairs and storages are declared in a configuration file
(default is $HOME/.pairsync.yaml).`,
		PersistentPreRunE: a.setupCommand,
		SilenceUsage:      true,
		SilenceErrors:     true,
	}

	// Global flags
	rootCmd.PersistentFlags().StringVar(&a.flags.ConfigFile, "config", "", "config file (default is $HOME/.pairsync.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&a.flags.Verbose, "verbose", "v", false, "verbose output (shortcut for --log-level=debug)")
	rootCmd.PersistentFlags().BoolVarP(&a.flags.Quiet, "quiet", "q", false, "minimal output (shortcut for --log-level=warn)")
	rootCmd.PersistentFlags().BoolVar(&a.flags.NoColor, "no-color", false, "disable colored output")
	rootCmd.PersistentFlags().StringVar(&a.flags.LogLevel, "log-level", a.flags.LogLevel, "log level: trace, debug, info, warn, error (overrides -v/-q)")
	rootCmd.PersistentFlags().IntVar(&a.flags.MaxWorkers, "max-workers", 0, "maximum concurrent jobs (0 = one worker per job)")

	rootCmd.SetVersionTemplate("pairsync {{.Version}}\n")

	a.registerCommands(rootCmd)

	return rootCmd
}

// setupCommand is called before any command runs. Flags are bound
// directly to a.flags, so all that is left is reinitializing the logger
// with the parsed values.
func (a *App) setupCommand(_ *cobra.Command, _ []string) error {
	logger := NewLogger(a.flags)
	a.logger = &logger
	return nil
}

// registerCommands registers all subcommands with the root command.
func (a *App) registerCommands(rootCmd *cobra.Command) {
	rootCmd.AddCommand(a.NewMetasyncCommand())
	rootCmd.AddCommand(a.NewStatusCommand())
	rootCmd.AddCommand(a.NewVersionCommand())
}

// ExitOnError is a helper that prints an error and exits with status 1.
// This is meant to be used in main.go for top-level error handling.
func ExitOnError(err error) {
	if err != nil {
		_, _ = os.Stderr.WriteString(err.Error() + "\n")
		os.Exit(1)
	}
}
