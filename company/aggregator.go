/*
Package company aggregates the per-worker calculators into company-level
forecast tables.

PURPOSE:
  Answers the top-level question: "what will the company earn and cost
  through the rest of the year?". Employee and freelance populations are
  summarized independently per month, then combined with the fixed
  management, administration and general overhead budgets into the yearly
  overview. The aggregator only reads calculator outputs; it never touches
  the calendar or project resolvers directly.

IGNORE LIST:
  Worker ids on the configured ignore list are dropped from the employee
  tables (typically working students or statute exceptions the forecast
  model does not fit). Ids that match nothing are logged, not fatal.
*/
package company

import (
	"log/slog"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/warp/forecast-engine/employee"
	"github.com/warp/forecast-engine/forecast"
	"github.com/warp/forecast-engine/freelance"
)

var (
	twelve  = decimal.NewFromInt(12)
	hundred = decimal.NewFromInt(100)
)

// SummaryRow is one worker's month in a population summary: total cost,
// revenue after MSP fee, and gross margin.
type SummaryRow struct {
	WorkerID forecast.WorkerID
	Name     string
	Cost     decimal.Decimal
	Revenue  decimal.Decimal
	Margin   decimal.Decimal
}

// MonthRow is one month of the company year forecast, rounded to whole
// euros. Overhead is split in the three fixed budgets.
type MonthRow struct {
	Month              string // Dutch month name; "Totaal" on the totals row
	EmployeeCost       decimal.Decimal
	FreelanceCost      decimal.Decimal
	ManagementCost     decimal.Decimal
	AdministrationCost decimal.Decimal
	GeneralCost        decimal.Decimal
	TotalCost          decimal.Decimal
	EmployeeRevenue    decimal.Decimal
	FreelanceRevenue   decimal.Decimal
	TotalRevenue       decimal.Decimal
	GrossMargin        decimal.Decimal
}

func (m MonthRow) add(o MonthRow) MonthRow {
	return MonthRow{
		Month:              m.Month,
		EmployeeCost:       m.EmployeeCost.Add(o.EmployeeCost),
		FreelanceCost:      m.FreelanceCost.Add(o.FreelanceCost),
		ManagementCost:     m.ManagementCost.Add(o.ManagementCost),
		AdministrationCost: m.AdministrationCost.Add(o.AdministrationCost),
		GeneralCost:        m.GeneralCost.Add(o.GeneralCost),
		TotalCost:          m.TotalCost.Add(o.TotalCost),
		EmployeeRevenue:    m.EmployeeRevenue.Add(o.EmployeeRevenue),
		FreelanceRevenue:   m.FreelanceRevenue.Add(o.FreelanceRevenue),
		TotalRevenue:       m.TotalRevenue.Add(o.TotalRevenue),
		GrossMargin:        m.GrossMargin.Add(o.GrossMargin),
	}
}

// YearForecast is the full company forecast: one row per month from the
// reference month through December, a totals row, and the underlying
// per-population monthly tables.
type YearForecast struct {
	Months          []MonthRow
	Total           MonthRow
	EmployeeMonths  map[time.Month][]SummaryRow
	FreelanceMonths map[time.Month][]SummaryRow
}

// Aggregator combines employee and freelance calculators into company
// tables.
type Aggregator struct {
	snap        *forecast.Snapshot
	employees   *employee.Calculator
	freelancers *freelance.Calculator
	reference   forecast.RefMonth
	ignore      []forecast.WorkerID
	logger      *slog.Logger
}

func New(snap *forecast.Snapshot, employees *employee.Calculator, freelancers *freelance.Calculator, reference forecast.RefMonth, ignore []forecast.WorkerID, logger *slog.Logger) *Aggregator {
	if logger == nil {
		logger = slog.Default()
	}
	return &Aggregator{
		snap:        snap,
		employees:   employees,
		freelancers: freelancers,
		reference:   reference,
		ignore:      ignore,
		logger:      logger,
	}
}

// =============================================================================
// MONTHLY POPULATION SUMMARIES
// =============================================================================

// EmployeeMonthlySummary returns one row per internal employee active in
// the month, ignore list applied, sorted by name.
func (a *Aggregator) EmployeeMonthlySummary(ref forecast.RefMonth) ([]SummaryRow, error) {
	results, err := a.employees.MonthlySummary(ref)
	if err != nil {
		return nil, err
	}
	rows := make([]SummaryRow, 0, len(results))
	for _, r := range results {
		cost := r.Cost.Total().Round(2)
		rows = append(rows, SummaryRow{
			WorkerID: r.WorkerID,
			Name:     r.Name,
			Cost:     cost,
			Revenue:  r.Revenue,
			Margin:   r.Revenue.Sub(cost).Round(2),
		})
	}
	rows = a.dropIgnored(rows)
	sortRows(rows)
	return rows, nil
}

// FreelanceMonthlySummary returns one row per freelance worker with an
// active project in the month.
func (a *Aggregator) FreelanceMonthlySummary(ref forecast.RefMonth) ([]SummaryRow, error) {
	results, err := a.freelancers.MonthlySummary(ref)
	if err != nil {
		return nil, err
	}
	rows := make([]SummaryRow, 0, len(results))
	for _, r := range results {
		rows = append(rows, SummaryRow(r))
	}
	sortRows(rows)
	return rows, nil
}

// YearOfMonthlySummaries evaluates a population summary for every month
// from the reference month through December.
func (a *Aggregator) YearOfMonthlySummaries(summary func(forecast.RefMonth) ([]SummaryRow, error)) (map[time.Month][]SummaryRow, error) {
	months := make(map[time.Month][]SummaryRow)
	for month := a.reference.Month; month <= time.December; month++ {
		rows, err := summary(forecast.RefMonth{Year: a.reference.Year, Month: month})
		if err != nil {
			return nil, err
		}
		months[month] = rows
	}
	return months, nil
}

// =============================================================================
// COMPANY YEAR FORECAST
// =============================================================================

// CompanyYearForecast builds the month-by-month company overview from the
// reference month through December, with the fixed overhead budgets
// allocated at a twelfth per month and a final totals row. Month cells
// are rounded to whole euros; the totals row sums the rounded cells.
func (a *Aggregator) CompanyYearForecast() (*YearForecast, error) {
	employeeMonths, err := a.YearOfMonthlySummaries(a.EmployeeMonthlySummary)
	if err != nil {
		return nil, err
	}
	freelanceMonths, err := a.YearOfMonthlySummaries(a.FreelanceMonthlySummary)
	if err != nil {
		return nil, err
	}

	params := a.snap.Params
	management := params.ManagementYearly.Div(twelve)
	administration := params.AdministrationYearly.Div(twelve)
	general := params.GeneralYearly.Div(twelve)

	year := &YearForecast{
		EmployeeMonths:  employeeMonths,
		FreelanceMonths: freelanceMonths,
		Total:           MonthRow{Month: "Totaal"},
	}
	for month := a.reference.Month; month <= time.December; month++ {
		employeeCost, employeeRevenue, _ := Totals(employeeMonths[month])
		freelanceCost, freelanceRevenue, _ := Totals(freelanceMonths[month])

		totalCost := employeeCost.Add(freelanceCost).Add(management).Add(administration).Add(general)
		totalRevenue := employeeRevenue.Add(freelanceRevenue)

		row := MonthRow{
			Month:              forecast.MonthName(month),
			EmployeeCost:       employeeCost.Round(0),
			FreelanceCost:      freelanceCost.Round(0),
			ManagementCost:     management.Round(0),
			AdministrationCost: administration.Round(0),
			GeneralCost:        general.Round(0),
			TotalCost:          totalCost.Round(0),
			EmployeeRevenue:    employeeRevenue.Round(0),
			FreelanceRevenue:   freelanceRevenue.Round(0),
			TotalRevenue:       totalRevenue.Round(0),
			GrossMargin:        totalRevenue.Sub(totalCost).Round(0),
		}
		year.Months = append(year.Months, row)
		year.Total = year.Total.add(row)
	}
	return year, nil
}

// Totals sums cost, revenue and margin over a population summary.
func Totals(rows []SummaryRow) (cost, revenue, margin decimal.Decimal) {
	for _, r := range rows {
		cost = cost.Add(r.Cost)
		revenue = revenue.Add(r.Revenue)
		margin = margin.Add(r.Margin)
	}
	return cost, revenue, margin
}

// =============================================================================
// HELPERS
// =============================================================================

func (a *Aggregator) dropIgnored(rows []SummaryRow) []SummaryRow {
	if len(a.ignore) == 0 {
		return rows
	}
	ignored := make(map[forecast.WorkerID]bool, len(a.ignore))
	for _, id := range a.ignore {
		ignored[id] = false
	}
	kept := rows[:0]
	for _, r := range rows {
		if _, ok := ignored[r.WorkerID]; ok {
			ignored[r.WorkerID] = true
			continue
		}
		kept = append(kept, r)
	}
	for _, id := range a.ignore {
		if !ignored[id] {
			a.logger.Warn("ignore list entry not found in employee cost overview",
				"worker", int(id))
		}
	}
	return kept
}

func sortRows(rows []SummaryRow) {
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].Name != rows[j].Name {
			return rows[i].Name < rows[j].Name
		}
		return rows[i].WorkerID < rows[j].WorkerID
	})
}
