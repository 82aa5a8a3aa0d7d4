/*
Package seed populates the database with a realistic demo company.

PURPOSE:

	Provides a pre-built dataset for demos and local development: a small
	Belgian consultancy with internal employees across seniority bands, a
	freelance contractor, client projects, a full HR parameter table and
	materialized calendars for the reference year and the year before it.

WHAT GETS SEEDED:
 1. Reset database (clear all data)
 2. HR parameter table (voucher values, insurance, overhead budgets)
 3. Workers: four internal employees + one freelancer
 4. Contracts (one open-ended, one part-time, one starting mid-year)
 5. Client projects with day rates and MSP fees
 6. Calendar days: standard weekday schedules with sprinkled absences
 7. Leave saldi per internal employee

USAGE:

	seed from the command line (see cmd/seed), then start the server
	against the same database file.

NOTE:

	Seeding resets the database. Only use in development/demo environments.

SEE ALSO:
  - cmd/seed/main.go: command-line entry point
  - store/sqlite/sqlite.go: the persistence layer being populated
*/
package seed

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/shopspring/decimal"

	"github.com/warp/forecast-engine/forecast"
	"github.com/warp/forecast-engine/store/sqlite"
)

// =============================================================================
// PARAMETER TABLE
// =============================================================================

type paramRow struct {
	code        string
	value       string
	description string
}

// Demo values follow PC200 orders of magnitude; descriptions are kept in
// Dutch, matching the payroll source system.
var paramTable = []paramRow{
	{forecast.CodeMealVoucherValue, "8", "maaltijdcheque nominale waarde"},
	{forecast.CodeEcoChequeValue, "10", "ecocheque nominale waarde"},
	{forecast.CodeMealVoucherEmployerShare, "0.75", "maaltijdcheque werkgeversaandeel"},
	{forecast.CodeEcoChequeCount, "25", "ecocheques per jaar voltijds"},
	{forecast.CodeBonusJunior, "500", "eindejaarsbonus junior"},
	{forecast.CodeBonusExperienced, "750", "eindejaarsbonus experienced"},
	{forecast.CodeBonusSenior, "1000", "eindejaarsbonus senior"},
	{forecast.CodeSectorPremium, "275", "sectorpremie PC200 juni"},
	{forecast.CodeAllowanceCar, "150", "netto onkostenvergoeding bedrijfswagen"},
	{forecast.CodeAllowanceOther, "100", "netto onkostenvergoeding overige"},
	{forecast.CodeHospitalizationPremium, "120", "hospitalisatieverzekering premie per jaar"},
	{forecast.CodePayrollAdminYearly, "3600", "sociaal secretariaat per jaar"},
	{forecast.CodeOccupationalHealthYearly, "240", "arbeidsgeneeskunde per jaar"},
	{forecast.CodeLiabilityInsuranceRate, "0.01", "BA-verzekering fractie van omzet"},
	{forecast.CodeAccidentInsuranceYearly, "360", "arbeidsongevallenverzekering per jaar"},
	{forecast.CodeGroupInsuranceYearly, "1200", "groepsverzekering per VTE per jaar"},
	{forecast.CodeTrainingYearly, "1800", "opleidingsbudget per jaar"},
	{forecast.CodePreventionYearly, "120", "preventiedienst per jaar"},
	{forecast.CodeAttentionsYearly, "240", "attenties per jaar"},
	{forecast.CodeActivitiesYearly, "360", "teamactiviteiten per jaar"},
	{forecast.CodeICTWorkstationYearly, "600", "ICT werkpost per jaar"},
	{forecast.CodeICTLicensesYearly, "480", "ICT licenties per jaar"},
	{forecast.CodeICTHostingYearly, "240", "ICT hosting per jaar"},
	{forecast.CodeICTTelecomYearly, "360", "ICT telecom per jaar"},
	{forecast.CodeEmployerSocialRate, "0.25", "werkgeversbijdrage RSZ"},
	{forecast.CodeManagementYearly, "120000", "overhead management per jaar"},
	{forecast.CodeAdministrationYearly, "60000", "overhead administratie per jaar"},
	{forecast.CodeGeneralYearly, "36000", "overhead algemene kosten per jaar"},
}

// =============================================================================
// DEMO COMPANY
// =============================================================================

// LoadDemoCompany resets the store and seeds the demo consultancy for the
// given reference year.
func LoadDemoCompany(ctx context.Context, st *sqlite.Store, year int, logger *slog.Logger) error {
	if err := st.Reset(ctx); err != nil {
		return fmt.Errorf("reset: %w", err)
	}

	for _, row := range paramTable {
		value, err := decimal.NewFromString(row.value)
		if err != nil {
			return fmt.Errorf("parameter %s: %w", row.code, err)
		}
		if err := st.SaveParamValue(ctx, row.code, value, row.description); err != nil {
			return fmt.Errorf("save parameter %s: %w", row.code, err)
		}
	}

	workers := []forecast.Worker{
		{ID: 1, Name: "An Peeters", Category: forecast.CategoryInternal, Team: "data"},
		{ID: 2, Name: "Bram Claes", Category: forecast.CategoryInternal, Team: "data"},
		{ID: 3, Name: "Charlotte Maes", Category: forecast.CategoryInternal, Team: "analytics"},
		{ID: 4, Name: "Dries Willems", Category: forecast.CategoryInternal, Team: "analytics"},
		{ID: 7, Name: "Filip Jacobs", Category: forecast.CategoryFreelance, Team: "data"},
	}
	for _, w := range workers {
		if err := st.SaveWorker(ctx, w); err != nil {
			return fmt.Errorf("save worker %d: %w", w.ID, err)
		}
	}

	contracts := []forecast.Contract{
		{
			ID: 100, WorkerID: 1, FunctionCategory: "SEN01",
			Start:         forecast.NewDate(year-4, time.September, 1),
			MonthlySalary: dec("5200"), MobilityType: "car", MonthlyMobility: dec("750"),
			FTE: dec("1"),
		},
		{
			ID: 101, WorkerID: 2, FunctionCategory: "JUN01",
			Start:         forecast.NewDate(year-1, time.February, 1),
			MonthlySalary: dec("3100"), MobilityType: "bike", MonthlyMobility: dec("150"),
			FTE: dec("1"),
		},
		{
			// Part-time, four days a week.
			ID: 102, WorkerID: 3, FunctionCategory: "EXP02",
			Start:         forecast.NewDate(year-2, time.June, 1),
			MonthlySalary: dec("3520"), MobilityType: "car", MonthlyMobility: dec("650"),
			FTE: dec("0.8"),
		},
		{
			// Hired mid reference year.
			ID: 103, WorkerID: 4, FunctionCategory: "EXP01",
			Start:         forecast.NewDate(year, time.April, 1),
			MonthlySalary: dec("4000"), MobilityType: "car", MonthlyMobility: dec("600"),
			FTE: dec("1"),
		},
	}
	for _, c := range contracts {
		if err := st.SaveContract(ctx, c); err != nil {
			return fmt.Errorf("save contract %d: %w", c.ID, err)
		}
	}

	freelance := forecast.FreelanceContract{WorkerID: 7, HourlyRate: dec("55")}
	if err := st.SaveFreelanceContract(ctx, freelance); err != nil {
		return fmt.Errorf("save freelance contract: %w", err)
	}

	projects := []forecast.Project{
		{
			ID: 10, WorkerID: 1, Client: "Argenta",
			Start: forecast.NewDate(year, time.January, 1), End: forecast.NewDate(year, time.December, 31),
			HourlyRate: dec("81.25"), MSPFee: dec("0.02"), FTE: dec("1"),
		},
		{
			// Bench until March, then staffed.
			ID: 11, WorkerID: 2, Client: "Colruyt",
			Start: forecast.NewDate(year, time.March, 1), End: forecast.NewDate(year, time.December, 31),
			HourlyRate: dec("56.25"), MSPFee: dec("0"), FTE: dec("1"),
		},
		{
			ID: 12, WorkerID: 3, Client: "Proximus",
			Start: forecast.NewDate(year, time.January, 1), End: forecast.NewDate(year, time.September, 30),
			HourlyRate: dec("68.75"), MSPFee: dec("0.025"), FTE: dec("0.8"),
		},
		{
			// Renewal at a better rate, starts the day after the old one ends.
			ID: 13, WorkerID: 3, Client: "Proximus",
			Start: forecast.NewDate(year, time.October, 1), End: forecast.NewDate(year, time.December, 31),
			HourlyRate: dec("71.25"), MSPFee: dec("0.025"), FTE: dec("0.8"),
		},
		{
			ID: 14, WorkerID: 4, Client: "Elia",
			Start: forecast.NewDate(year, time.May, 1), End: forecast.NewDate(year, time.December, 31),
			HourlyRate: dec("62.5"), MSPFee: dec("0.02"), FTE: dec("1"),
		},
		{
			ID: 20, WorkerID: 7, Client: "Argenta",
			Start: forecast.NewDate(year, time.January, 1), End: forecast.NewDate(year, time.December, 31),
			HourlyRate: dec("68.75"), MSPFee: dec("0.02"), FTE: dec("1"),
		},
	}
	for _, p := range projects {
		if err := st.SaveProject(ctx, p); err != nil {
			return fmt.Errorf("save project %d: %w", p.ID, err)
		}
	}

	if err := seedCalendars(ctx, st, year, contracts, workers); err != nil {
		return err
	}

	saldi := []forecast.Saldi{
		{WorkerID: 1, Vacation: 10 * 480, ADV: 2 * 480, Training: 3 * 480},
		{WorkerID: 2, Vacation: 12 * 480, Training: 5 * 480},
		{WorkerID: 3, Vacation: 8 * 384, ExtralegalVacation: 2 * 384},
		{WorkerID: 4, Vacation: 6 * 480, Training: 2 * 480},
	}
	for _, sa := range saldi {
		if err := st.SaveSaldi(ctx, sa); err != nil {
			return fmt.Errorf("save saldi worker %d: %w", sa.WorkerID, err)
		}
	}

	logger.Info("demo company seeded",
		"year", year,
		"workers", len(workers),
		"contracts", len(contracts),
		"projects", len(projects))
	return nil
}

// seedCalendars materializes weekday schedules for [year-1, year]. Internal
// employees get their contractual daily minutes from the contract start
// onward; the freelancer gets a full-time schedule. A few vacation and sick
// days are sprinkled into the reference year so past months show realistic
// absence reductions.
func seedCalendars(ctx context.Context, st *sqlite.Store, year int, contracts []forecast.Contract, workers []forecast.Worker) error {
	window := forecast.Period{
		Start: forecast.NewDate(year-1, time.January, 1),
		End:   forecast.NewDate(year, time.December, 31),
	}

	starts := make(map[forecast.WorkerID]forecast.Date)
	daily := make(map[forecast.WorkerID]forecast.Minutes)
	for _, c := range contracts {
		starts[c.WorkerID] = c.Start
		minutes := decimal.NewFromInt(int64(forecast.StandardDayMinutes)).Mul(c.FTE)
		daily[c.WorkerID] = forecast.Minutes(minutes.IntPart())
	}

	absences := demoAbsences(year)

	for _, w := range workers {
		from, ok := starts[w.ID]
		if !ok {
			// Freelancer: full-time schedule over the whole window.
			from = window.Start
			daily[w.ID] = forecast.StandardDayMinutes
		}
		if from.Before(window.Start) {
			from = window.Start
		}

		var days []forecast.CalendarDay
		for d := from; d.BeforeOrEqual(window.End); d = d.AddDays(1) {
			if d.IsWeekend() {
				continue
			}
			day := forecast.CalendarDay{WorkerID: w.ID, Date: d, Scheduled: daily[w.ID]}
			if apply, found := absences[absenceKey{w.ID, d}]; found {
				apply(&day)
			}
			days = append(days, day)
		}
		if err := st.SaveCalendarDays(ctx, days); err != nil {
			return fmt.Errorf("save calendar worker %d: %w", w.ID, err)
		}
	}
	return nil
}

type absenceKey struct {
	worker forecast.WorkerID
	date   forecast.Date
}

// demoAbsences returns the hand-picked absence days of the reference year.
func demoAbsences(year int) map[absenceKey]func(*forecast.CalendarDay) {
	vacation := func(d *forecast.CalendarDay) {
		d.Vacation = d.Scheduled
		d.PaidLeaveTotal = d.Scheduled
	}
	sick := func(d *forecast.CalendarDay) {
		d.PaidSick = d.Scheduled
		d.SickTotal = d.Scheduled
	}
	training := func(d *forecast.CalendarDay) {
		d.Training = d.Scheduled
	}

	out := make(map[absenceKey]func(*forecast.CalendarDay))
	add := func(worker forecast.WorkerID, month time.Month, day int, apply func(*forecast.CalendarDay)) {
		d := forecast.NewDate(year, month, day)
		if !d.IsWeekend() {
			out[absenceKey{worker, d}] = apply
		}
	}

	// An: a week of spring vacation plus two training days.
	for day := 13; day <= 17; day++ {
		add(1, time.April, day, vacation)
	}
	add(1, time.February, 5, training)
	add(1, time.February, 6, training)

	// Bram: a short sick spell in January.
	add(2, time.January, 19, sick)
	add(2, time.January, 20, sick)
	add(2, time.January, 21, sick)

	// Charlotte: scattered vacation days.
	add(3, time.March, 2, vacation)
	add(3, time.May, 15, vacation)
	add(3, time.July, 6, vacation)

	return out
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}
