// Package freelance implements the day-rate cost-and-revenue calculator
// for freelance contractors. The model is simpler than the employee one:
// a freelancer costs their hourly rate for the days worked plus an
// operational overhead fraction of the revenue they generate, and has no
// payroll benefit lines.
package freelance

import (
	"log/slog"

	"github.com/shopspring/decimal"

	"github.com/warp/forecast-engine/forecast"
)

var (
	eight  = decimal.NewFromInt(8)
	twelve = decimal.NewFromInt(12)
	one    = decimal.NewFromInt(1)
)

// SummaryRow is one freelance worker-month: cost, revenue after MSP fee
// and gross margin, all rounded to 2 decimals.
type SummaryRow struct {
	WorkerID forecast.WorkerID
	Name     string
	Cost     decimal.Decimal
	Revenue  decimal.Decimal
	Margin   decimal.Decimal
}

// Calculator computes freelance monthly cost, revenue and margin.
type Calculator struct {
	snap     *forecast.Snapshot
	projects *forecast.ProjectResolver
	// yearlyWorkdays is the configured average billable days in a
	// full-time year; a freelance month counts projectFTE * yearly / 12
	// workdays.
	yearlyWorkdays decimal.Decimal
	logger         *slog.Logger
}

func New(snap *forecast.Snapshot, projects *forecast.ProjectResolver, yearlyWorkdays int, logger *slog.Logger) *Calculator {
	if logger == nil {
		logger = slog.Default()
	}
	return &Calculator{
		snap:           snap,
		projects:       projects,
		yearlyWorkdays: decimal.NewFromInt(int64(yearlyWorkdays)),
		logger:         logger,
	}
}

// MonthlyProjectRevenue computes expected project billing for a number of
// workdays, before and after the MSP fee.
func (c *Calculator) MonthlyProjectRevenue(project forecast.ProjectID, workdays decimal.Decimal) (gross, afterFee decimal.Decimal) {
	dayRate, mspFee := c.projects.Rate(project)
	gross = dayRate.Mul(workdays)
	return gross, gross.Mul(one.Sub(mspFee))
}

// MonthlyCost computes the expected monthly cost of a freelancer: the
// hourly rate for the workdays plus an operational overhead fraction of
// monthly revenue (the yearly rate divided over 12 months). Exactly one
// freelance contract per worker is required.
func (c *Calculator) MonthlyCost(worker forecast.WorkerID, monthlyRevenue, workdays decimal.Decimal) (decimal.Decimal, error) {
	contract, err := c.snap.FreelanceContract(worker)
	if err != nil {
		return decimal.Zero, err
	}
	dayRateCost := contract.HourlyRate.Mul(eight).Mul(workdays)
	operationalCost := monthlyRevenue.Mul(c.snap.Params.LiabilityInsuranceRate).Div(twelve).Round(2)
	return dayRateCost.Add(operationalCost), nil
}

// MonthlySummary returns one row per freelance worker with an active
// project in the month. Workers without one are skipped, not zero-filled:
// an idle freelancer is neither cost nor revenue. Rows are sorted by
// worker name (the snapshot orders its freelance population).
func (c *Calculator) MonthlySummary(ref forecast.RefMonth) ([]SummaryRow, error) {
	var rows []SummaryRow
	for _, worker := range c.snap.WorkersByCategory(forecast.CategoryFreelance) {
		assignment, ok := c.projects.ActiveProject(worker.ID, ref)
		if !ok {
			continue
		}
		workdays := c.projects.FTE(assignment.ProjectID).Mul(c.yearlyWorkdays).Div(twelve)
		// The operational overhead is charged on gross billing, before the
		// MSP fee comes off.
		gross, afterFee := c.MonthlyProjectRevenue(assignment.ProjectID, workdays)
		cost, err := c.MonthlyCost(worker.ID, gross, workdays)
		if err != nil {
			return nil, err
		}
		rows = append(rows, SummaryRow{
			WorkerID: worker.ID,
			Name:     worker.Name,
			Cost:     cost.Round(2),
			Revenue:  afterFee.Round(2),
			Margin:   afterFee.Sub(cost).Round(2),
		})
	}
	return rows, nil
}
