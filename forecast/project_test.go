package forecast_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/warp/forecast-engine/forecast"
)

func newProjectSnapshot(t *testing.T, projects []forecast.Project) *forecast.Snapshot {
	t.Helper()
	snap, err := forecast.NewSnapshot(forecast.SnapshotInput{
		RefYear: 2026,
		Workers: []forecast.Worker{
			{ID: 1, Name: "Ann Claes", Category: forecast.CategoryInternal},
		},
		Projects:    projects,
		ParamValues: testParamValues(),
	}, quietLogger())
	require.NoError(t, err)
	return snap
}

// =============================================================================
// ACTIVE PROJECT RESOLUTION
// =============================================================================

func TestActiveProject_SingleOverlap(t *testing.T) {
	snap := newProjectSnapshot(t, []forecast.Project{
		{
			ID: 10, WorkerID: 1, Client: "acme",
			Start: date(2026, time.January, 1), End: date(2026, time.June, 30),
			HourlyRate: dec("62.5"), MSPFee: dec("0.02"), FTE: dec("1"),
		},
	})
	resolver := forecast.NewProjectResolver(snap, quietLogger())

	assignment, ok := resolver.ActiveProject(1, forecast.RefMonth{Year: 2026, Month: time.March})

	require.True(t, ok)
	assert.Equal(t, forecast.ProjectID(10), assignment.ProjectID)
	assert.Equal(t, date(2026, time.January, 1), assignment.Window.Start)
	assert.Equal(t, date(2026, time.June, 30), assignment.Window.End)
}

func TestActiveProject_LatestStartWins(t *testing.T) {
	// GIVEN two overlapping assignments: the older one hands over mid-year
	snap := newProjectSnapshot(t, []forecast.Project{
		{
			ID: 10, WorkerID: 1, Client: "acme",
			Start: date(2026, time.January, 1), End: date(2026, time.June, 30),
			HourlyRate: dec("62.5"), FTE: dec("1"),
		},
		{
			ID: 11, WorkerID: 1, Client: "globex",
			Start: date(2026, time.March, 1), End: date(2026, time.December, 31),
			HourlyRate: dec("70"), FTE: dec("1"),
		},
	})
	resolver := forecast.NewProjectResolver(snap, quietLogger())

	// WHEN both overlap the month
	assignment, ok := resolver.ActiveProject(1, forecast.RefMonth{Year: 2026, Month: time.March})

	// THEN the most recently started assignment is the billing reality
	require.True(t, ok)
	assert.Equal(t, forecast.ProjectID(11), assignment.ProjectID)

	// AND before the handover the older one still wins
	assignment, ok = resolver.ActiveProject(1, forecast.RefMonth{Year: 2026, Month: time.February})
	require.True(t, ok)
	assert.Equal(t, forecast.ProjectID(10), assignment.ProjectID)
}

func TestActiveProject_StartTieBreaksOnHigherID(t *testing.T) {
	snap := newProjectSnapshot(t, []forecast.Project{
		{ID: 5, WorkerID: 1, Start: date(2026, time.January, 1), End: date(2026, time.December, 31), FTE: dec("1")},
		{ID: 9, WorkerID: 1, Start: date(2026, time.January, 1), End: date(2026, time.December, 31), FTE: dec("1")},
	})
	resolver := forecast.NewProjectResolver(snap, quietLogger())

	assignment, ok := resolver.ActiveProject(1, forecast.RefMonth{Year: 2026, Month: time.May})

	require.True(t, ok)
	assert.Equal(t, forecast.ProjectID(9), assignment.ProjectID)
}

func TestActiveProject_BenchIsNotAnError(t *testing.T) {
	snap := newProjectSnapshot(t, []forecast.Project{
		{ID: 10, WorkerID: 1, Start: date(2026, time.January, 1), End: date(2026, time.March, 31), FTE: dec("1")},
	})
	resolver := forecast.NewProjectResolver(snap, quietLogger())

	_, ok := resolver.ActiveProject(1, forecast.RefMonth{Year: 2026, Month: time.July})

	assert.False(t, ok)
}

// =============================================================================
// BILLING TERMS
// =============================================================================

func TestRate(t *testing.T) {
	snap := newProjectSnapshot(t, []forecast.Project{
		{ID: 10, WorkerID: 1, HourlyRate: dec("62.5"), MSPFee: dec("0.02"), FTE: dec("0.8"),
			Start: date(2026, time.January, 1), End: date(2026, time.December, 31)},
	})
	resolver := forecast.NewProjectResolver(snap, quietLogger())

	t.Run("day rate is eight times the hourly rate", func(t *testing.T) {
		dayRate, mspFee := resolver.Rate(10)
		assert.True(t, dec("500").Equal(dayRate), "got %s", dayRate)
		assert.True(t, dec("0.02").Equal(mspFee), "got %s", mspFee)
	})

	t.Run("unknown project falls back to zero", func(t *testing.T) {
		dayRate, mspFee := resolver.Rate(99)
		assert.True(t, dayRate.IsZero())
		assert.True(t, mspFee.IsZero())
	})
}

func TestFTE(t *testing.T) {
	snap := newProjectSnapshot(t, []forecast.Project{
		{ID: 10, WorkerID: 1, FTE: dec("0.8"),
			Start: date(2026, time.January, 1), End: date(2026, time.December, 31)},
	})
	resolver := forecast.NewProjectResolver(snap, quietLogger())

	t.Run("known project", func(t *testing.T) {
		assert.True(t, dec("0.8").Equal(resolver.FTE(10)))
	})

	t.Run("unknown project defaults to full time", func(t *testing.T) {
		assert.True(t, dec("1").Equal(resolver.FTE(99)))
	})
}
