package forecast_test

import (
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/warp/forecast-engine/forecast"
)

// =============================================================================
// TEST FIXTURES
// =============================================================================

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func date(year int, month time.Month, day int) forecast.Date {
	return forecast.NewDate(year, month, day)
}

// testParamValues returns a complete HR parameter table.
func testParamValues() map[string]decimal.Decimal {
	return map[string]decimal.Decimal{
		forecast.CodeMealVoucherValue:         dec("8"),
		forecast.CodeEcoChequeValue:           dec("10"),
		forecast.CodeMealVoucherEmployerShare: dec("0.75"),
		forecast.CodeEcoChequeCount:           dec("8"),
		forecast.CodeBonusJunior:              dec("500"),
		forecast.CodeBonusExperienced:         dec("750"),
		forecast.CodeBonusSenior:              dec("1000"),
		forecast.CodeSectorPremium:            dec("275"),
		forecast.CodeAllowanceCar:             dec("150"),
		forecast.CodeAllowanceOther:           dec("100"),
		forecast.CodeHospitalizationPremium:   dec("120"),
		forecast.CodePayrollAdminYearly:       dec("3600"),
		forecast.CodeOccupationalHealthYearly: dec("240"),
		forecast.CodeLiabilityInsuranceRate:   dec("0.01"),
		forecast.CodeAccidentInsuranceYearly:  dec("360"),
		forecast.CodeGroupInsuranceYearly:     dec("1200"),
		forecast.CodeTrainingYearly:           dec("1800"),
		forecast.CodePreventionYearly:         dec("120"),
		forecast.CodeAttentionsYearly:         dec("240"),
		forecast.CodeActivitiesYearly:         dec("360"),
		forecast.CodeICTWorkstationYearly:     dec("600"),
		forecast.CodeICTLicensesYearly:        dec("480"),
		forecast.CodeICTHostingYearly:         dec("240"),
		forecast.CodeICTTelecomYearly:         dec("360"),
		forecast.CodeEmployerSocialRate:       dec("0.25"),
		forecast.CodeManagementYearly:         dec("120000"),
		forecast.CodeAdministrationYearly:     dec("60000"),
		forecast.CodeGeneralYearly:            dec("36000"),
	}
}

// weekdayCalendar materializes one row per weekday in the closed window,
// each fully scheduled and without absence.
func weekdayCalendar(worker forecast.WorkerID, from, to forecast.Date) []forecast.CalendarDay {
	var days []forecast.CalendarDay
	for d := from; d.BeforeOrEqual(to); d = d.AddDays(1) {
		if d.IsWeekend() {
			continue
		}
		days = append(days, forecast.CalendarDay{
			WorkerID:  worker,
			Date:      d,
			Scheduled: forecast.StandardDayMinutes,
		})
	}
	return days
}

// newTestSnapshot builds a 2026 snapshot for worker 1 (internal, fully
// scheduled all year and the preceding year) with the given saldi.
func newTestSnapshot(t *testing.T, saldi []forecast.Saldi) *forecast.Snapshot {
	t.Helper()

	yearly := weekdayCalendar(1, date(2026, time.January, 1), date(2026, time.December, 31))
	multiyear := weekdayCalendar(1, date(2025, time.January, 1), date(2026, time.December, 31))

	snap, err := forecast.NewSnapshot(forecast.SnapshotInput{
		RefYear: 2026,
		Workers: []forecast.Worker{
			{ID: 1, Name: "Ann Claes", Category: forecast.CategoryInternal, Team: "delivery"},
		},
		CalendarDays:  yearly,
		MultiyearDays: multiyear,
		Saldi:         saldi,
		ParamValues:   testParamValues(),
	}, quietLogger())
	require.NoError(t, err)
	return snap
}
