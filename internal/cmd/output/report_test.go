package output_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/pairsync/pairsync/internal/cmd/output"
	"github.com/pairsync/pairsync/pkg/errors"
)

func TestRenderSummaryAllSucceeded(t *testing.T) {
	got := output.RenderSummary([]output.PairReport{
		{Pair: "work_calendar", Keys: 2, Duration: 12 * time.Millisecond},
		{Pair: "home", Keys: 1, Duration: 3 * time.Millisecond},
	})

	assert.Contains(t, got, "Work_Calendar: 2 keys in 12ms")
	assert.Contains(t, got, "Home: 1 keys in 3ms")
	assert.Contains(t, got, "All 2 pairs synchronized")
	assert.NotContains(t, got, "FAILED")
}

func TestRenderSummaryWithFailures(t *testing.T) {
	got := output.RenderSummary([]output.PairReport{
		{Pair: "work", Keys: 2, Duration: time.Millisecond},
		{Pair: "home", Err: errors.New("boom")},
	})

	assert.Contains(t, got, "Home: FAILED (boom)")
	assert.Contains(t, got, "1 of 2 pairs failed")
}

func TestRenderConflict(t *testing.T) {
	conflict := errors.NewConflictError("my_pair", []errors.KeyConflict{
		{Key: "displayname", SideA: "abc", SideB: "xyz"},
		{Key: "color", SideA: "#ff0000", SideB: "<absent>"},
	})

	got := output.RenderConflict("my_pair", conflict)

	assert.Contains(t, got, "my_pair: metadata changed on both sides")
	assert.Contains(t, got, "conflict_resolution")
	assert.Contains(t, got, `displayname: side A "abc", side B "xyz"`)
	assert.Contains(t, got, `color: side A "#ff0000", side B "<absent>"`)
}

func TestPairReportSucceeded(t *testing.T) {
	assert.True(t, output.PairReport{Pair: "p"}.Succeeded())
	assert.False(t, output.PairReport{Pair: "p", Err: errors.New("x")}.Succeeded())
}
