package employee_test

import (
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/warp/forecast-engine/employee"
	"github.com/warp/forecast-engine/forecast"
)

// =============================================================================
// TEST FIXTURE
//
// Worker 1 "Ann Claes": full-time, fully scheduled every weekday of 2025
// and 2026, salary 4000, company car, billed at 62.50/h with a 2% MSP fee
// on a project covering all of 2026. The resolver clock sits at the end of
// June 2026; remaining saldi are present but zero, so forward amortization
// never changes the numbers.
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

func testContract() forecast.Contract {
	return forecast.Contract{
		ID:               100,
		WorkerID:         1,
		FunctionCategory: "EXP01",
		Start:            date(2024, time.September, 1),
		MonthlySalary:    dec("4000"),
		MobilityType:     "car",
		MonthlyMobility:  dec("600"),
		FTE:              dec("1"),
	}
}

func newCalculator(t *testing.T) *employee.Calculator {
	t.Helper()

	snap, err := forecast.NewSnapshot(forecast.SnapshotInput{
		RefYear: 2026,
		Workers: []forecast.Worker{
			{ID: 1, Name: "Ann Claes", Category: forecast.CategoryInternal, Team: "delivery"},
		},
		CalendarDays:  weekdayCalendar(1, date(2026, time.January, 1), date(2026, time.December, 31)),
		MultiyearDays: weekdayCalendar(1, date(2025, time.January, 1), date(2026, time.December, 31)),
		Saldi:         []forecast.Saldi{{WorkerID: 1}},
		Contracts:     []forecast.Contract{testContract()},
		Projects: []forecast.Project{
			{
				ID: 10, WorkerID: 1, Client: "acme",
				Start: date(2026, time.January, 1), End: date(2026, time.December, 31),
				HourlyRate: dec("62.5"), MSPFee: dec("0.02"), FTE: dec("1"),
			},
		},
		ParamValues: testParamValues(),
	}, quietLogger())
	require.NoError(t, err)

	calendar := forecast.NewCalendarResolver(snap, quietLogger())
	calendar.Now = date(2026, time.June, 30)
	projects := forecast.NewProjectResolver(snap, quietLogger())

	return employee.New(snap, calendar, projects, employee.Config{
		Reference:      forecast.RefMonth{Year: 2026, Month: time.June},
		Inflator:       dec("1"),
		YearlyWorkdays: 220,
	}, quietLogger())
}

func assertDec(t *testing.T, want string, got decimal.Decimal, item string) {
	t.Helper()
	assert.True(t, dec(want).Equal(got), "%s: want %s, got %s", item, want, got)
}

// =============================================================================
// MONTHLY COST
// =============================================================================

func TestMonthlyCost_JuneBreakdown(t *testing.T) {
	calc := newCalculator(t)

	// WHEN costing June 2026 (22 weekdays) with 11000 gross revenue
	cost, err := calc.MonthlyCost(testContract(), forecast.RefMonth{Year: 2026, Month: time.June}, dec("11000"))
	require.NoError(t, err)

	assert.Equal(t, "Ann Claes", cost.Name)
	assertDec(t, "4000", cost.Remuneration, "remuneration")
	assertDec(t, "728", cost.VacationPayProvision, "vacation pay provision")
	assertDec(t, "416.67", cost.YearEndProvision, "year-end provision")
	assertDec(t, "1000", cost.SocialSecurity, "social security")
	assertDec(t, "275", cost.SectorPremium, "sector premium")
	assertDec(t, "0", cost.Bonus, "bonus")
	assertDec(t, "150", cost.NetAllowance, "net allowance")
	assertDec(t, "132", cost.MealVouchers, "meal vouchers")
	assertDec(t, "0", cost.EcoCheques, "eco cheques")
	assertDec(t, "12.5", cost.Hospitalization, "hospitalization")
	assertDec(t, "100", cost.GroupInsurance, "group insurance")
	assertDec(t, "300", cost.PayrollAdmin, "payroll admin")
	assertDec(t, "110", cost.LiabilityInsurance, "liability insurance")
	assertDec(t, "30", cost.AccidentInsurance, "accident insurance")
	assertDec(t, "600", cost.MobilityCost, "mobility")
	assertDec(t, "150", cost.Training, "training")
	assertDec(t, "50", cost.TeamEvents, "team events")
	assertDec(t, "30", cost.Prevention, "prevention")
	assertDec(t, "140", cost.ICT, "ict")

	assertDec(t, "8224.17", cost.Total(), "total")
}

func TestMonthlyCost_BenefitsGatedByMonth(t *testing.T) {
	calc := newCalculator(t)
	contract := testContract()

	t.Run("regular month has no benefit lines", func(t *testing.T) {
		cost, err := calc.MonthlyCost(contract, forecast.RefMonth{Year: 2026, Month: time.March}, decimal.Zero)
		require.NoError(t, err)
		assert.True(t, cost.EcoCheques.IsZero())
		assert.True(t, cost.SectorPremium.IsZero())
		assert.True(t, cost.Bonus.IsZero())
	})

	t.Run("eco-cheques land in May", func(t *testing.T) {
		cost, err := calc.MonthlyCost(contract, forecast.RefMonth{Year: 2026, Month: time.May}, decimal.Zero)
		require.NoError(t, err)
		// 10 * 8 cheques at a full company-paid ratio
		assertDec(t, "80", cost.EcoCheques, "eco cheques")
		assert.True(t, cost.SectorPremium.IsZero())
		assert.True(t, cost.Bonus.IsZero())
	})

	t.Run("year-end bonus lands in December, tiered by band", func(t *testing.T) {
		cost, err := calc.MonthlyCost(contract, forecast.RefMonth{Year: 2026, Month: time.December}, decimal.Zero)
		require.NoError(t, err)
		// EXP band at a full ratio over Dec 2025 - Nov 2026
		assertDec(t, "750", cost.Bonus, "bonus")
		// December 2026 has 23 weekdays
		assertDec(t, "138", cost.MealVouchers, "meal vouchers")
	})

	t.Run("unknown band gets no bonus", func(t *testing.T) {
		other := contract
		other.FunctionCategory = "XYZ99"
		cost, err := calc.MonthlyCost(other, forecast.RefMonth{Year: 2026, Month: time.December}, decimal.Zero)
		require.NoError(t, err)
		assert.True(t, cost.Bonus.IsZero())
	})
}

func TestMonthlyCost_VacationTimeShiftsToProvision(t *testing.T) {
	// GIVEN a worker who took a quarter of June as legal vacation
	days := weekdayCalendar(1, date(2026, time.January, 1), date(2026, time.December, 31))
	for i := range days {
		d := days[i].Date
		if d.Month() == time.June && d.Day() <= 7 {
			days[i].Vacation = 480
			days[i].PaidLeaveTotal = 480
		}
	}

	snap, err := forecast.NewSnapshot(forecast.SnapshotInput{
		RefYear: 2026,
		Workers: []forecast.Worker{
			{ID: 1, Name: "Ann Claes", Category: forecast.CategoryInternal},
		},
		CalendarDays:  days,
		MultiyearDays: days,
		Saldi:         []forecast.Saldi{{WorkerID: 1}},
		ParamValues:   testParamValues(),
	}, quietLogger())
	require.NoError(t, err)

	calendar := forecast.NewCalendarResolver(snap, quietLogger())
	calendar.Now = date(2026, time.June, 30)
	calc := employee.New(snap, calendar, forecast.NewProjectResolver(snap, quietLogger()), employee.Config{
		Reference: forecast.RefMonth{Year: 2026, Month: time.June},
		Inflator:  dec("1"),
	}, quietLogger())

	cost, err := calc.MonthlyCost(testContract(), forecast.RefMonth{Year: 2026, Month: time.June}, decimal.Zero)
	require.NoError(t, err)

	// 5 vacation days out of 22 scheduled: vacation-time ratio 0.23, so
	// remuneration drops to 4000 * (1 - 0.23) while social security stays
	// on the full gross
	assertDec(t, "3080", cost.Remuneration, "remuneration")
	assertDec(t, "1000", cost.SocialSecurity, "social security")
}

func TestMonthlyCost_InflatorRaisesSalaryLines(t *testing.T) {
	calc := newCalculator(t)

	snap, err := forecast.NewSnapshot(forecast.SnapshotInput{
		RefYear: 2026,
		Workers: []forecast.Worker{
			{ID: 1, Name: "Ann Claes", Category: forecast.CategoryInternal},
		},
		CalendarDays:  weekdayCalendar(1, date(2026, time.January, 1), date(2026, time.December, 31)),
		MultiyearDays: weekdayCalendar(1, date(2025, time.January, 1), date(2026, time.December, 31)),
		Saldi:         []forecast.Saldi{{WorkerID: 1}},
		ParamValues:   testParamValues(),
	}, quietLogger())
	require.NoError(t, err)

	calendar := forecast.NewCalendarResolver(snap, quietLogger())
	calendar.Now = date(2026, time.June, 30)
	inflated := employee.New(snap, calendar, forecast.NewProjectResolver(snap, quietLogger()), employee.Config{
		Reference: forecast.RefMonth{Year: 2026, Month: time.June},
		Inflator:  dec("1.05"),
	}, quietLogger())

	base, err := calc.MonthlyCost(testContract(), forecast.RefMonth{Year: 2026, Month: time.March}, decimal.Zero)
	require.NoError(t, err)
	raised, err := inflated.MonthlyCost(testContract(), forecast.RefMonth{Year: 2026, Month: time.March}, decimal.Zero)
	require.NoError(t, err)

	assertDec(t, "4200", raised.Remuneration, "inflated remuneration")
	assertDec(t, "1050", raised.SocialSecurity, "inflated social security")
	// flat lines do not move with the inflator
	assert.True(t, base.PayrollAdmin.Equal(raised.PayrollAdmin))
	assert.True(t, base.MealVouchers.Equal(raised.MealVouchers))
}

// =============================================================================
// MONTHLY REVENUE
// =============================================================================

func TestMonthlyRevenue(t *testing.T) {
	calc := newCalculator(t)

	t.Run("full project month", func(t *testing.T) {
		// March 2026 has 22 weekdays: 176 billable hours at 62.50
		gross, afterFee, err := calc.MonthlyRevenue(1, forecast.RefMonth{Year: 2026, Month: time.March})
		require.NoError(t, err)
		assertDec(t, "11000", gross, "gross")
		assertDec(t, "10780", afterFee, "after fee")
	})

	t.Run("bench month yields zero", func(t *testing.T) {
		snap, err := forecast.NewSnapshot(forecast.SnapshotInput{
			RefYear: 2026,
			Workers: []forecast.Worker{
				{ID: 1, Name: "Ann Claes", Category: forecast.CategoryInternal},
			},
			CalendarDays: weekdayCalendar(1, date(2026, time.January, 1), date(2026, time.December, 31)),
			Saldi:        []forecast.Saldi{{WorkerID: 1}},
			ParamValues:  testParamValues(),
		}, quietLogger())
		require.NoError(t, err)

		calendar := forecast.NewCalendarResolver(snap, quietLogger())
		calendar.Now = date(2026, time.June, 30)
		benched := employee.New(snap, calendar, forecast.NewProjectResolver(snap, quietLogger()), employee.Config{
			Reference: forecast.RefMonth{Year: 2026, Month: time.June},
			Inflator:  dec("1"),
		}, quietLogger())

		gross, afterFee, err := benched.MonthlyRevenue(1, forecast.RefMonth{Year: 2026, Month: time.March})
		require.NoError(t, err)
		assert.True(t, gross.IsZero())
		assert.True(t, afterFee.IsZero())
	})

	t.Run("project starting mid-month is pro-rated", func(t *testing.T) {
		snap, err := forecast.NewSnapshot(forecast.SnapshotInput{
			RefYear: 2026,
			Workers: []forecast.Worker{
				{ID: 1, Name: "Ann Claes", Category: forecast.CategoryInternal},
			},
			CalendarDays: weekdayCalendar(1, date(2026, time.January, 1), date(2026, time.December, 31)),
			Saldi:        []forecast.Saldi{{WorkerID: 1}},
			Projects: []forecast.Project{
				{
					ID: 10, WorkerID: 1, Client: "acme",
					// June 15 2026 is a Monday: 12 weekdays remain in June
					Start: date(2026, time.June, 15), End: date(2026, time.December, 31),
					HourlyRate: dec("62.5"), MSPFee: dec("0.02"), FTE: dec("1"),
				},
			},
			ParamValues: testParamValues(),
		}, quietLogger())
		require.NoError(t, err)

		calendar := forecast.NewCalendarResolver(snap, quietLogger())
		calendar.Now = date(2026, time.June, 30)
		calc := employee.New(snap, calendar, forecast.NewProjectResolver(snap, quietLogger()), employee.Config{
			Reference: forecast.RefMonth{Year: 2026, Month: time.June},
			Inflator:  dec("1"),
		}, quietLogger())

		gross, afterFee, err := calc.MonthlyRevenue(1, forecast.RefMonth{Year: 2026, Month: time.June})
		require.NoError(t, err)
		// 12 weekdays * 8h * 62.50
		assertDec(t, "6000", gross, "gross")
		assertDec(t, "5880", afterFee, "after fee")
	})
}

// =============================================================================
// MONTHLY SUMMARY
// =============================================================================

func TestMonthlySummary(t *testing.T) {
	calc := newCalculator(t)

	results, err := calc.MonthlySummary(forecast.RefMonth{Year: 2026, Month: time.June})
	require.NoError(t, err)

	require.Len(t, results, 1)
	r := results[0]
	assert.Equal(t, forecast.WorkerID(1), r.WorkerID)
	assert.Equal(t, "Ann Claes", r.Name)
	assertDec(t, "10780", r.Revenue, "revenue after fee")
}

func TestMonthlySummary_LiabilityRatedOnGrossRevenue(t *testing.T) {
	// GIVEN a month of 22 weekdays billed at 62.50/h with a 2% MSP fee:
	// gross 11000, after fee 10780
	calc := newCalculator(t)

	// WHEN summarizing the month
	results, err := calc.MonthlySummary(forecast.RefMonth{Year: 2026, Month: time.June})
	require.NoError(t, err)
	require.Len(t, results, 1)

	// THEN the liability insurance line is rated on the gross figure,
	// while the revenue column carries the after-fee figure
	assertDec(t, "110", results[0].Cost.LiabilityInsurance, "liability insurance on gross")
	assertDec(t, "10780", results[0].Revenue, "revenue after fee")
}
