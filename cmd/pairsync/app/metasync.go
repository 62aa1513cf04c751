package app

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/pairsync/pairsync/internal/cmd/output"
	"github.com/pairsync/pairsync/internal/config"
	"github.com/pairsync/pairsync/pkg/errors"
	"github.com/pairsync/pairsync/pkg/metasync"
	"github.com/pairsync/pairsync/pkg/status"
	"github.com/pairsync/pairsync/pkg/storage"
	"github.com/pairsync/pairsync/pkg/worker"
)

// NewMetasyncCommand creates the metasync command.
func (a *App) NewMetasyncCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "metasync [pairs...]",
		Short: "Reconcile metadata between the two sides of each pair",
		Long: `Metasync reconciles the configured metadata keys between the two
storages of each pair. With no arguments every configured pair is synced;
otherwise only the named pairs are.

Each pair runs as an independent job. A conflict or storage failure in one
pair never stops the others.`,
		RunE: a.runMetasync,
	}
}

func (a *App) runMetasync(cmd *cobra.Command, args []string) error {
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

	reports, failed := a.syncPairs(cmd.Context(), cfg, store, pairs)

	a.console.Page(output.RenderSummary(reports))

	if failed > 0 {
		return errors.NewCommandError(fmt.Sprintf("%d of %d pairs failed", failed, len(pairs)))
	}
	return nil
}

// syncPairs runs one job per pair and returns a report for each, in pair
// order, plus the failed-job count. Every report starts out failed and is
// replaced when its job completes, so a job that dies mid-flight still shows
// up as a failure in the summary.
func (a *App) syncPairs(ctx context.Context, cfg *config.Config, store status.Store, pairs []config.Pair) ([]output.PairReport, int) {
	queue := worker.NewQueue(
		worker.ResolveMaxWorkers(a.flags.MaxWorkers, a.DebugLogging()),
		worker.WithErrorHandler(a.reportJobError),
	)

	// Jobs go on the queue before their worker is spawned; workers exit as
	// soon as the queue runs dry.
	reports := make([]output.PairReport, len(pairs))
	for i, pair := range pairs {
		reports[i] = output.PairReport{Pair: pair.Name, Err: errors.New("job aborted")}
		queue.Put(worker.Job{
			Name: pair.Name,
			Run: func(ctx context.Context) error {
				reports[i] = a.syncPair(ctx, cfg, store, pair)
				return reports[i].Err
			},
		})
		queue.SpawnWorker(ctx)
	}
	queue.Join()

	return reports, queue.Failed()
}

// syncPair reconciles one pair end to end: load the baseline, build both
// sides, reconcile every configured key, persist the baseline. The baseline
// is saved even when a conflict is reported, because keys reconciled before
// the conflict have already been written through to the storages.
func (a *App) syncPair(ctx context.Context, cfg *config.Config, store status.Store, pair config.Pair) output.PairReport {
	start := time.Now()
	report := output.PairReport{Pair: pair.Name, Keys: len(pair.Metadata)}

	fail := func(err error) output.PairReport {
		report.Duration = time.Since(start)
		report.Err = err
		return report
	}

	policy, err := pair.Policy()
	if err != nil {
		return fail(err)
	}

	sideA, err := storage.New(cfg.Storages[pair.A])
	if err != nil {
		return fail(err)
	}
	sideB, err := storage.New(cfg.Storages[pair.B])
	if err != nil {
		return fail(err)
	}

	st, err := store.Load(ctx, pair.Name)
	if err != nil {
		return fail(err)
	}

	syncErr := metasync.Reconcile(ctx, sideA, sideB, st, pair.Metadata, policy)

	if err := store.Save(ctx, pair.Name, st); err != nil {
		return fail(err)
	}
	return fail(syncErr)
}

// reportJobError is the queue's error handler. Each failure is rendered as
// one console call so concurrent jobs cannot interleave their output.
func (a *App) reportJobError(jobName string, err error) {
	var conflict *errors.ConflictError
	if errors.As(err, &conflict) {
		a.console.Page(output.RenderConflict(jobName, conflict))
		return
	}

	var cmdErr *errors.CommandError
	if errors.As(err, &cmdErr) {
		a.console.Page(cmdErr.Format())
		return
	}

	a.console.Printf("error in %s: %v\n", jobName, err)
}

// openStatusStore builds the baseline store selected by the configuration.
func (a *App) openStatusStore(cfg *config.Config) (status.Store, error) {
	switch cfg.General.StatusBackend {
	case config.StatusBackendSQLite:
		return status.NewSQLiteStore(filepath.Join(cfg.General.StatusPath, "status.db"))
	default:
		return status.NewFileStore(cfg.General.StatusPath), nil
	}
}
