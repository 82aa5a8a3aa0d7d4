/*
calendar.go - Employee calendar and absence resolution

PURPOSE:
  Answers "how many hours will this worker work in this window" and "which
  fraction of this worker's time is paid / consumed by vacation". Past days
  are read straight from the materialized HR calendar; future days have no
  calendar data yet, so the remaining leave balances (saldi) are amortized
  evenly across the months left in the year.

FORWARD AMORTIZATION:
  One shared routine (forwardAbsence) does the month counting for both the
  work-hour and the ratio calculation. The monthly share is the worker's
  remaining balance divided by the months left in the year; a window gets
  one share per covered month from max(current, window start) through the
  window end. Windows ending in the current month (unless December) get
  nothing - the current month is assumed fully reflected in the calendar.
  Amortizing into a later year is fatal: balances are per-year.

CLOCK:
  The resolver carries its own "now" so the future/past boundary is
  explicit and testable. A zero Now means today.
*/
package forecast

import (
	"fmt"
	"log/slog"
	"math"

	"github.com/shopspring/decimal"
)

var sixty = decimal.NewFromInt(60)

// CalendarResolver resolves work hours and FTE correction ratios from the
// snapshot calendar and saldi.
type CalendarResolver struct {
	Snapshot *Snapshot
	Now      Date // boundary between actual and forecasted days; zero = today
	Logger   *slog.Logger
}

func NewCalendarResolver(snap *Snapshot, logger *slog.Logger) *CalendarResolver {
	if logger == nil {
		logger = slog.Default()
	}
	return &CalendarResolver{Snapshot: snap, Logger: logger}
}

func (r *CalendarResolver) now() Date {
	if r.Now.IsZero() {
		return Today()
	}
	return r.Now
}

// WorkHours sums scheduled minus absence minutes for one worker over the
// closed window, returned as hours rounded to 2 decimals. With billable
// set, training time counts as absence too (training is not billed to a
// client). Windows reaching past the resolver clock add the amortized
// share of the worker's remaining leave balances.
func (r *CalendarResolver) WorkHours(worker WorkerID, p Period, billable bool) (decimal.Decimal, error) {
	if !p.IsValid() {
		return decimal.Zero, fmt.Errorf("%w: %s", ErrInvalidPeriod, p)
	}
	if !r.Snapshot.Calendar.Has(worker) {
		return decimal.Zero, newCalendarMissing(worker, p)
	}

	var scheduled, leave Minutes
	for _, day := range r.Snapshot.Calendar.Range(worker, p) {
		scheduled += day.Scheduled
		leave += day.PaidLeaveTotal + day.UnpaidLeaveTotal + day.SickTotal
		if billable {
			leave += day.Training
		}
	}

	var forecast Minutes
	if p.End.After(r.now()) {
		saldi, ok := r.Snapshot.Saldi[worker]
		if !ok {
			return decimal.Zero, newSaldiMissing(worker, p)
		}
		var err error
		forecast, err = r.forwardAbsence(p, saldi.RemainingAbsence(billable))
		if err != nil {
			return decimal.Zero, err
		}
	}

	minutes := scheduled - leave - forecast
	return decimal.NewFromInt(int64(minutes)).Div(sixty).Round(2), nil
}

// FTERatios returns the company-paid ratio and the vacation-time ratio for
// one worker over a window, both rounded to 2 decimals.
//
// Company-paid ratio is paid time (scheduled minus unpaid leave and unpaid
// sick) over scheduled time. With useCompanyWorkdays set the denominator
// is the generic company workday calendar instead, which corrects for
// contracts starting or ending inside the window and for windows spanning
// two years. A part-time contract is already reflected in scheduled time,
// so the ratio stays 1.0 for a worker on, say, an 80% contract without
// unpaid leave.
//
// Vacation-time ratio is legal vacation time (actual plus forward
// amortized, vacation balance only) over paid time.
//
// A zero denominator yields ratio 0 rather than an error.
func (r *CalendarResolver) FTERatios(worker WorkerID, p Period, useCompanyWorkdays bool) (companyPaid, vacationTime decimal.Decimal, err error) {
	if !p.IsValid() {
		return decimal.Zero, decimal.Zero, fmt.Errorf("%w: %s", ErrInvalidPeriod, p)
	}
	if !r.Snapshot.Multiyear.Has(worker) {
		return decimal.Zero, decimal.Zero, newCalendarMissing(worker, p)
	}

	var scheduled, unpaid, vacation Minutes
	for _, day := range r.Snapshot.Multiyear.Range(worker, p) {
		scheduled += day.Scheduled
		unpaid += day.UnpaidLeaveTotal + day.UnpaidSick
		vacation += day.Vacation
	}

	if p.End.After(r.now()) {
		saldi, ok := r.Snapshot.Saldi[worker]
		if !ok {
			return decimal.Zero, decimal.Zero, newSaldiMissing(worker, p)
		}
		forecast, ferr := r.forwardAbsence(p, saldi.Vacation)
		if ferr != nil {
			return decimal.Zero, decimal.Zero, ferr
		}
		vacation += forecast
	}

	paid := scheduled - unpaid
	denominator := scheduled
	if useCompanyWorkdays {
		denominator = r.Snapshot.Workdays.WorkMinutes(p)
	}

	companyPaid = ratio(paid, denominator)
	vacationTime = ratio(vacation, paid)
	return companyPaid, vacationTime, nil
}

func ratio(numerator, denominator Minutes) decimal.Decimal {
	if denominator == 0 {
		return decimal.Zero
	}
	return decimal.NewFromInt(int64(numerator)).
		Div(decimal.NewFromInt(int64(denominator))).Round(2)
}

// forwardAbsence is the single amortization routine shared by WorkHours
// and FTERatios. It spreads the remaining balance evenly over the months
// left in the year and returns the share for the months the window covers.
func (r *CalendarResolver) forwardAbsence(p Period, remaining Minutes) (Minutes, error) {
	now := r.now()
	if p.End.Year() > now.Year() {
		return 0, fmt.Errorf("%w: window %s, year %d", ErrCrossYearForecast, p, now.Year())
	}

	monthsLeft := 12 - int(now.Month())
	if monthsLeft == 0 {
		monthsLeft = 1
	}
	monthlyShare := Minutes(math.Round(float64(remaining) / float64(monthsLeft)))

	// A window ending in the current month needs no forward share: the
	// current month is already in the actual calendar. December is the
	// exception since the year's remaining balance must land somewhere.
	if p.End.Month() == now.Month() && p.End.Month() != 12 {
		return 0, nil
	}

	firstMonth := int(now.Month())
	if int(p.Start.Month()) > firstMonth {
		firstMonth = int(p.Start.Month())
	}
	months := int(p.End.Month()) - firstMonth + 1
	if months < 1 {
		return 0, nil
	}
	return Minutes(months) * monthlyShare, nil
}

// FirstWorkday returns the first date with non-zero scheduled time in the
// worker's calendar for the given year.
func (r *CalendarResolver) FirstWorkday(worker WorkerID, year int) (Date, error) {
	window := YearWindow(year)
	if !r.Snapshot.Multiyear.Has(worker) {
		return Date{}, newCalendarMissing(worker, window)
	}
	for _, day := range r.Snapshot.Multiyear.Range(worker, window) {
		if day.Scheduled != 0 {
			return day.Date, nil
		}
	}
	return Date{}, newCalendarMissing(worker, window)
}

// WorkdayMinutes sums the generic company workday minutes over a window.
func (r *CalendarResolver) WorkdayMinutes(p Period) Minutes {
	return r.Snapshot.Workdays.WorkMinutes(p)
}
