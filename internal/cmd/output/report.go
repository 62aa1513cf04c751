// Package output renders sync run reports for the terminal.
package output

import (
	"fmt"
	"strings"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/pairsync/pairsync/pkg/errors"
)

// PairReport records the outcome of one pair's job.
type PairReport struct {
	Pair     string
	Keys     int
	Duration time.Duration
	Err      error
}

// Succeeded reports whether the pair reconciled cleanly.
func (r PairReport) Succeeded() bool {
	return r.Err == nil
}

var titleCaser = cases.Title(language.English)

// RenderSummary formats a run summary for all pairs. The result ends with a
// newline and is meant to go through a single console call so concurrent
// output cannot split it.
func RenderSummary(reports []PairReport) string {
	var b strings.Builder

	failed := 0
	for _, r := range reports {
		line := fmt.Sprintf("%s: %d keys in %v", titleCaser.String(r.Pair), r.Keys, r.Duration.Round(time.Millisecond))
		if r.Err != nil {
			failed++
			line = fmt.Sprintf("%s: FAILED (%v)", titleCaser.String(r.Pair), r.Err)
		}
		b.WriteString(line)
		b.WriteString("\n")
	}

	if failed > 0 {
		fmt.Fprintf(&b, "\n%d of %d pairs failed\n", failed, len(reports))
	} else {
		fmt.Fprintf(&b, "\nAll %d pairs synchronized\n", len(reports))
	}
	return b.String()
}

// RenderConflict formats the advice message for an unresolved conflict,
// naming each key and both observed values.
func RenderConflict(pair string, conflict *errors.ConflictError) string {
	var b strings.Builder

	fmt.Fprintf(&b, "%s: metadata changed on both sides. Resolve these conflicts manually,\n", pair)
	fmt.Fprintf(&b, "or set the conflict_resolution parameter for this pair in your config file.\n")
	for _, c := range conflict.Conflicts {
		fmt.Fprintf(&b, "  %s: side A %q, side B %q\n", c.Key, c.SideA, c.SideB)
	}
	return b.String()
}
