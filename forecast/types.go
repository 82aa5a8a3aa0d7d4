/*
Package forecast provides the core cost-and-revenue forecasting engine.

PURPOSE:
  Domain types and resolvers shared by the employee, freelance and company
  calculators: the reference-data snapshot, the workday calendar, the
  per-employee calendar/absence resolver and the project assignment
  resolver.

KEY CONCEPTS IN THIS FILE (types.go):
  - Worker: an internal employee or freelance contractor
  - Contract / FreelanceContract: remuneration terms per worker
  - Project: a client assignment with day rate and MSP fee
  - CalendarDay: per-worker, per-date scheduled and absence minutes
  - Saldi: per-worker remaining leave-balance minutes per category

DESIGN PRINCIPLES:
  1. Immutability: reference data is loaded once and never mutated by
     calculations; every forecast re-derives its results from the snapshot.
  2. Precision: euro amounts, rates and ratios use decimal.Decimal.
  3. Type safety: distinct id types for workers, contracts and projects.

SEE ALSO:
  - snapshot.go: the reference-data bundle passed into every calculator
  - calendar.go: work-hour and FTE-ratio resolution
  - project.go: project assignment resolution
*/
package forecast

import (
	"github.com/shopspring/decimal"
)

// =============================================================================
// IDENTIFIERS
// =============================================================================

type WorkerID int
type ContractID int
type ProjectID int

// =============================================================================
// WORKER
// =============================================================================

// WorkerCategory distinguishes internal employees from freelance contractors.
type WorkerCategory string

const (
	CategoryInternal  WorkerCategory = "internal"
	CategoryFreelance WorkerCategory = "freelance"
)

// Worker is an immutable reference entity supplied by the HR system.
type Worker struct {
	ID       WorkerID
	Name     string
	Category WorkerCategory
	Team     string
}

// =============================================================================
// CONTRACTS
// =============================================================================

// Contract holds the employment terms of an internal worker. An open-ended
// contract has a zero End date and is treated as valid indefinitely.
type Contract struct {
	ID               ContractID
	WorkerID         WorkerID
	FunctionCategory string // seniority band, e.g. "JUN01", "EXP02", "SEN01", "BUS01"
	Start            Date
	End              Date // zero = open-ended
	MonthlySalary    decimal.Decimal
	MobilityType     string // "car" or an allowance type
	MonthlyMobility  decimal.Decimal
	FTE              decimal.Decimal // contractual fraction, 0-1
}

// CoversMonth reports whether the contract is valid at any point in the
// given month: it must start no later than the month's last day and must
// not end before the month's first day.
func (c Contract) CoversMonth(ref RefMonth) bool {
	w := ref.Window()
	if c.Start.After(w.End) {
		return false
	}
	return c.End.IsZero() || c.End.After(w.Start)
}

// BoundaryInPeriod reports whether the contract starts or ends strictly
// inside the window, excluding the first and last day. A contract running
// the full window does not count as a boundary; FTE ratios for boundary
// months must be computed against the generic company workday calendar.
func (c Contract) BoundaryInPeriod(p Period) bool {
	inner := Period{Start: p.Start.AddDays(1), End: p.End.AddDays(-1)}
	if inner.Contains(c.Start) {
		return true
	}
	return !c.End.IsZero() && inner.Contains(c.End)
}

// FreelanceContract holds the rate of a freelance worker. Exactly one per
// freelance worker is required.
type FreelanceContract struct {
	WorkerID   WorkerID
	HourlyRate decimal.Decimal
}

// =============================================================================
// PROJECT
// =============================================================================

// Project is a client assignment of a single consultant.
type Project struct {
	ID       ProjectID
	WorkerID WorkerID
	Client   string
	Start    Date
	End      Date
	// HourlyRate is the billing rate; the day rate is HourlyRate * 8.
	HourlyRate decimal.Decimal
	// MSPFee is the fraction withheld by the managed-service provider
	// before billing counts as revenue.
	MSPFee decimal.Decimal
	// FTE is the fraction of a full-time schedule the project occupies.
	FTE decimal.Decimal
}

// Window returns the project's validity period.
func (p Project) Window() Period { return Period{Start: p.Start, End: p.End} }

// =============================================================================
// CALENDAR DAY - Materialized schedule and absence minutes
// =============================================================================

// Minutes is a non-negative minute total as recorded in the HR calendar.
type Minutes int64

// Hours converts a minute total to hours as a decimal.
func (m Minutes) Hours() decimal.Decimal {
	return decimal.NewFromInt(int64(m)).Div(decimal.NewFromInt(60))
}

// CalendarDay is one worker-day of the HR calendar. Invariant: one record
// per (worker, date); all minute fields are non-negative.
type CalendarDay struct {
	WorkerID WorkerID
	Date     Date

	Scheduled Minutes

	// Absence category breakdown. The *Total fields are subtotals already
	// summed by the HR system; the named categories overlap with them.
	Training           Minutes
	Vacation           Minutes
	Holiday            Minutes // public-holiday substitute day
	ADV                Minutes // compensatory rest
	ExtralegalVacation Minutes
	PaidLeaveTotal     Minutes
	UnpaidLeaveTotal   Minutes
	PaidSick           Minutes
	UnpaidSick         Minutes
	SickTotal          Minutes
}

// =============================================================================
// SALDI - Remaining leave balances
// =============================================================================

// Saldi holds the remaining leave-balance minutes of one worker for the
// reference year, per absence category. Values are clamped to >= 0 at load
// time.
type Saldi struct {
	WorkerID           WorkerID
	Training           Minutes
	Vacation           Minutes
	Holiday            Minutes
	ADV                Minutes
	ExtralegalVacation Minutes
	Sickness           Minutes
}

// RemainingAbsence sums the categories amortized when forecasting work
// hours. Training time only counts when the forecast is for billable hours,
// since billable hours exclude training.
func (s Saldi) RemainingAbsence(includeTraining bool) Minutes {
	total := s.Vacation + s.Holiday + s.ADV + s.ExtralegalVacation + s.Sickness
	if includeTraining {
		total += s.Training
	}
	return total
}
