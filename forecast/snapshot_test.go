package forecast_test

import (
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/warp/forecast-engine/forecast"
)

// =============================================================================
// SNAPSHOT CONSTRUCTION
// =============================================================================

func TestNewSnapshot_ClampsNegativeSaldi(t *testing.T) {
	snap := newTestSnapshot(t, []forecast.Saldi{
		{WorkerID: 1, Vacation: -960, Training: 2400, Sickness: -1},
	})

	saldi := snap.Saldi[1]
	assert.Equal(t, forecast.Minutes(0), saldi.Vacation)
	assert.Equal(t, forecast.Minutes(2400), saldi.Training)
	assert.Equal(t, forecast.Minutes(0), saldi.Sickness)
}

func TestNewSnapshot_MissingParameterFailsLoad(t *testing.T) {
	values := testParamValues()
	delete(values, forecast.CodePayrollAdminYearly)

	_, err := forecast.NewSnapshot(forecast.SnapshotInput{
		RefYear:     2026,
		ParamValues: values,
	}, quietLogger())

	require.Error(t, err)
	assert.True(t, errors.Is(err, forecast.ErrParameterMissing))
}

func TestCalendar_RangeIsClosedAndSorted(t *testing.T) {
	// GIVEN day records inserted out of order
	cal := forecast.NewCalendar([]forecast.CalendarDay{
		{WorkerID: 1, Date: date(2026, time.June, 3), Scheduled: 480},
		{WorkerID: 1, Date: date(2026, time.June, 1), Scheduled: 480},
		{WorkerID: 1, Date: date(2026, time.June, 2), Scheduled: 480},
		{WorkerID: 1, Date: date(2026, time.June, 4), Scheduled: 480},
	})

	// WHEN ranging over a closed window
	rows := cal.Range(1, forecast.Period{
		Start: date(2026, time.June, 2),
		End:   date(2026, time.June, 3),
	})

	// THEN both boundary days are included, in date order
	require.Len(t, rows, 2)
	assert.Equal(t, date(2026, time.June, 2), rows[0].Date)
	assert.Equal(t, date(2026, time.June, 3), rows[1].Date)

	assert.True(t, cal.Has(1))
	assert.False(t, cal.Has(2))
}

// =============================================================================
// CONTRACT LOOKUPS
// =============================================================================

func contractSnapshot(t *testing.T, contracts []forecast.Contract, fcs []forecast.FreelanceContract) *forecast.Snapshot {
	t.Helper()
	snap, err := forecast.NewSnapshot(forecast.SnapshotInput{
		RefYear: 2026,
		Workers: []forecast.Worker{
			{ID: 1, Name: "Ann Claes", Category: forecast.CategoryInternal},
			{ID: 7, Name: "Finn Peeters", Category: forecast.CategoryFreelance},
		},
		Contracts:          contracts,
		FreelanceContracts: fcs,
		ParamValues:        testParamValues(),
	}, quietLogger())
	require.NoError(t, err)
	return snap
}

func TestActiveContract(t *testing.T) {
	open := forecast.Contract{
		ID: 100, WorkerID: 1, FunctionCategory: "EXP01",
		Start:         date(2025, time.March, 1),
		MonthlySalary: decimal.NewFromInt(4000),
		FTE:           decimal.NewFromInt(1),
	}
	ref := forecast.RefMonth{Year: 2026, Month: time.June}

	t.Run("open-ended contract covers any later month", func(t *testing.T) {
		snap := contractSnapshot(t, []forecast.Contract{open}, nil)
		c, err := snap.ActiveContract(1, ref)
		require.NoError(t, err)
		assert.Equal(t, forecast.ContractID(100), c.ID)
	})

	t.Run("no contract is fatal", func(t *testing.T) {
		snap := contractSnapshot(t, nil, nil)
		_, err := snap.ActiveContract(1, ref)
		require.Error(t, err)
		assert.True(t, errors.Is(err, forecast.ErrNoActiveContract))
		assert.True(t, forecast.IsFatal(err))
	})

	t.Run("overlapping contracts are fatal", func(t *testing.T) {
		second := open
		second.ID = 101
		snap := contractSnapshot(t, []forecast.Contract{open, second}, nil)

		_, err := snap.ActiveContract(1, ref)
		require.Error(t, err)
		assert.True(t, errors.Is(err, forecast.ErrMultipleContracts))

		var cerr *forecast.ContractError
		require.True(t, errors.As(err, &cerr))
		assert.Equal(t, 2, cerr.Count)
	})

	t.Run("ended contract does not cover later months", func(t *testing.T) {
		ended := open
		ended.End = date(2026, time.May, 31)
		snap := contractSnapshot(t, []forecast.Contract{ended}, nil)

		_, err := snap.ActiveContract(1, ref)
		require.Error(t, err)
		assert.True(t, errors.Is(err, forecast.ErrNoActiveContract))
	})
}

func TestContractsForMonth_SortedByID(t *testing.T) {
	a := forecast.Contract{ID: 102, WorkerID: 1, Start: date(2025, time.January, 1)}
	b := forecast.Contract{ID: 100, WorkerID: 7, Start: date(2025, time.January, 1)}
	snap := contractSnapshot(t, []forecast.Contract{a, b}, nil)

	got := snap.ContractsForMonth(forecast.RefMonth{Year: 2026, Month: time.June})

	require.Len(t, got, 2)
	assert.Equal(t, forecast.ContractID(100), got[0].ID)
	assert.Equal(t, forecast.ContractID(102), got[1].ID)
}

func TestFreelanceContract(t *testing.T) {
	t.Run("single contract resolves", func(t *testing.T) {
		snap := contractSnapshot(t, nil, []forecast.FreelanceContract{
			{WorkerID: 7, HourlyRate: dec("50")},
		})
		fc, err := snap.FreelanceContract(7)
		require.NoError(t, err)
		assert.True(t, dec("50").Equal(fc.HourlyRate))
	})

	t.Run("none is fatal", func(t *testing.T) {
		snap := contractSnapshot(t, nil, nil)
		_, err := snap.FreelanceContract(7)
		require.Error(t, err)
		assert.True(t, errors.Is(err, forecast.ErrNoFreelanceContract))
	})

	t.Run("several are fatal", func(t *testing.T) {
		snap := contractSnapshot(t, nil, []forecast.FreelanceContract{
			{WorkerID: 7, HourlyRate: dec("50")},
			{WorkerID: 7, HourlyRate: dec("55")},
		})
		_, err := snap.FreelanceContract(7)
		require.Error(t, err)
		assert.True(t, errors.Is(err, forecast.ErrMultipleFreelanceContracts))
	})
}

func TestWorkersByCategory_SortedByName(t *testing.T) {
	snap, err := forecast.NewSnapshot(forecast.SnapshotInput{
		RefYear: 2026,
		Workers: []forecast.Worker{
			{ID: 3, Name: "Zoe Willems", Category: forecast.CategoryInternal},
			{ID: 1, Name: "Ann Claes", Category: forecast.CategoryInternal},
			{ID: 7, Name: "Finn Peeters", Category: forecast.CategoryFreelance},
		},
		ParamValues: testParamValues(),
	}, quietLogger())
	require.NoError(t, err)

	internal := snap.WorkersByCategory(forecast.CategoryInternal)
	require.Len(t, internal, 2)
	assert.Equal(t, "Ann Claes", internal[0].Name)
	assert.Equal(t, "Zoe Willems", internal[1].Name)

	freelance := snap.WorkersByCategory(forecast.CategoryFreelance)
	require.Len(t, freelance, 1)
	assert.Equal(t, forecast.WorkerID(7), freelance[0].ID)
}
