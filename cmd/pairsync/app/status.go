package app

import (
	"sort"

	"github.com/spf13/cobra"

	"github.com/pairsync/pairsync/internal/config"
	"github.com/pairsync/pairsync/pkg/errors"
)

// NewStatusCommand creates the status command.
func (a *App) NewStatusCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "status [pairs...]",
		Short: "Show the stored baseline for each pair",
		Long: `Status prints the last agreed value for every key in each pair's
baseline. Keys absent from the baseline were absent on both sides at the
end of the last sync.`,
		RunE: a.runStatus,
	}
}

func (a *App) runStatus(cmd *cobra.Command, args []string) error {
	cfg, err := a.Config()
	if err != nil {
		return err
	}

	pairs, err := config.ParsePairArgs(args, cfg.Pairs)
	if err != nil {
		return err
	}
	if len(pairs) == 0 {
		return errors.NewCommandError("no pairs configured", "add a pairs section to "+cfg.File)
	}

	store, err := a.openStatusStore(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	for _, pair := range pairs {
		st, err := store.Load(cmd.Context(), pair.Name)
		if err != nil {
			return err
		}

		a.console.Printf("%s:\n", pair.Name)
		if len(st) == 0 {
			a.console.Print("  (no baseline)")
			continue
		}

		keys := make([]string, 0, len(st))
		for key := range st {
			keys = append(keys, key)
		}
		sort.Strings(keys)

		for _, key := range keys {
			a.console.Printf("  %s: %s\n", key, st[key])
		}
	}
	return nil
}
