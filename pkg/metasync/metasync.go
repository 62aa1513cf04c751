package metasync

import (
	"context"

	"github.com/pairsync/pairsync/pkg/errors"
	"github.com/pairsync/pairsync/pkg/logging"
)

// Reconcile converges the metadata of both sides of a pair for the given
// keys, using status as the record of what both sides agreed on last time.
//
// For each key, in the order supplied:
//   - If both sides already hold the same value, the baseline is updated and
//     nothing is written. Two sides independently arriving at the same value
//     is never a conflict, even when both differ from the baseline.
//   - If exactly one side changed since the last run, its value is copied to
//     the other side and recorded in the baseline.
//   - If both sides changed to different values, the policy picks a winner;
//     with no policy the key is reported as conflicting and neither the
//     stores nor the baseline are touched for that key.
//
// Baseline entries for keys outside the given key set are removed: once a
// key stops being reconciled it has no agreed value anymore, and a stale
// entry would misreport "who changed" if the key ever returns.
//
// Keys are independent: a conflict on one key does not stop the remaining
// keys from being processed. When any key conflicted without a resolving
// policy, Reconcile returns a *errors.ConflictError naming every such key
// with both observed values; all other keys have already been durably
// reconciled by then.
//
// Storage errors abort the call immediately and propagate unchanged. The
// write for a key always completes before its baseline entry is updated, so
// an interrupted run never records an agreement that did not happen.
func Reconcile(ctx context.Context, sideA, sideB MetaStore, status Status, keys []string, policy Policy) error {
	log := logging.Ctx(ctx)
	var conflicts []errors.KeyConflict

	for _, key := range keys {
		a, err := sideA.GetMeta(ctx, key)
		if err != nil {
			return errors.NewStorageError(sideA.Name(), "get", key, err)
		}
		b, err := sideB.GetMeta(ctx, key)
		if err != nil {
			return errors.NewStorageError(sideB.Name(), "get", key, err)
		}
		prev := status.Get(key)

		switch {
		case a.Equal(b):
			// Both sides agree already. Just remember the value.
			status.put(key, a)

		case b.Equal(prev):
			// Side A changed, side B did not.
			log.Debug().
				Str("key", key).
				Str("from", sideA.Name()).
				Str("to", sideB.Name()).
				Msg("Propagating metadata")
			if err := sideB.SetMeta(ctx, key, a); err != nil {
				return errors.NewStorageError(sideB.Name(), "set", key, err)
			}
			status.put(key, a)

		case a.Equal(prev):
			// Side B changed, side A did not.
			log.Debug().
				Str("key", key).
				Str("from", sideB.Name()).
				Str("to", sideA.Name()).
				Msg("Propagating metadata")
			if err := sideA.SetMeta(ctx, key, b); err != nil {
				return errors.NewStorageError(sideA.Name(), "set", key, err)
			}
			status.put(key, b)

		default:
			// Both sides changed independently to different values.
			winner, resolved := policy.resolve(a, b)
			if !resolved {
				log.Warn().
					Str("key", key).
					Str(sideA.Name(), a.Display()).
					Str(sideB.Name(), b.Display()).
					Msg("Metadata changed on both sides")
				conflicts = append(conflicts, errors.KeyConflict{
					Key:   key,
					SideA: a.Display(),
					SideB: b.Display(),
				})
				continue
			}

			log.Debug().
				Str("key", key).
				Str("policy", string(policy)).
				Msg("Resolving metadata conflict by policy")
			loser := sideB
			if winner.Equal(b) {
				loser = sideA
			}
			if err := loser.SetMeta(ctx, key, winner); err != nil {
				return errors.NewStorageError(loser.Name(), "set", key, err)
			}
			status.put(key, winner)
		}
	}

	// Keys dropped from the reconciled set no longer have an agreed value;
	// sweep their baseline entries so they do not linger forever.
	if len(status) > 0 {
		keep := make(map[string]struct{}, len(keys))
		for _, key := range keys {
			keep[key] = struct{}{}
		}
		for key := range status {
			if _, ok := keep[key]; !ok {
				delete(status, key)
			}
		}
	}

	if len(conflicts) > 0 {
		return errors.NewConflictError("", conflicts)
	}
	return nil
}
