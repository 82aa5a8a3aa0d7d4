package forecast

import (
	"fmt"
	"time"
)

// =============================================================================
// DATE - Calendar date abstraction (all core math is day-granular)
// =============================================================================

// Date is a calendar date in UTC. The engine never works at sub-day
// granularity: scheduled and absence time are materialized as minute
// totals per day.
type Date struct {
	t time.Time
}

func NewDate(year int, month time.Month, day int) Date {
	return Date{t: time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// DateOf truncates a time.Time to its calendar date.
func DateOf(t time.Time) Date {
	return NewDate(t.Year(), t.Month(), t.Day())
}

func Today() Date {
	return DateOf(time.Now())
}

// ParseDate parses a YYYY-MM-DD string.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return Date{}, err
	}
	return DateOf(t), nil
}

// Comparison
func (d Date) Before(other Date) bool        { return d.t.Before(other.t) }
func (d Date) After(other Date) bool         { return d.t.After(other.t) }
func (d Date) Equal(other Date) bool         { return d.t.Equal(other.t) }
func (d Date) BeforeOrEqual(other Date) bool { return !d.After(other) }
func (d Date) AfterOrEqual(other Date) bool  { return !d.Before(other) }

// Arithmetic
func (d Date) AddDays(n int) Date   { return Date{t: d.t.AddDate(0, 0, n)} }
func (d Date) AddMonths(n int) Date { return Date{t: d.t.AddDate(0, n, 0)} }
func (d Date) AddYears(n int) Date  { return Date{t: d.t.AddDate(n, 0, 0)} }

// Properties
func (d Date) Year() int             { return d.t.Year() }
func (d Date) Month() time.Month     { return d.t.Month() }
func (d Date) Day() int              { return d.t.Day() }
func (d Date) Weekday() time.Weekday { return d.t.Weekday() }
func (d Date) IsZero() bool          { return d.t.IsZero() }
func (d Date) Time() time.Time       { return d.t }

func (d Date) IsWeekend() bool {
	wd := d.Weekday()
	return wd == time.Saturday || wd == time.Sunday
}

func (d Date) String() string { return d.t.Format("2006-01-02") }

// Min returns the earlier of two dates, Max the later.
func (d Date) Min(other Date) Date {
	if d.Before(other) {
		return d
	}
	return other
}

func (d Date) Max(other Date) Date {
	if d.After(other) {
		return d
	}
	return other
}

// =============================================================================
// PERIOD - Closed date window [Start, End]
// =============================================================================

// Period is a closed date window. All resolver operations sum over
// [Start, End] inclusive.
type Period struct {
	Start Date
	End   Date
}

func (p Period) Contains(d Date) bool {
	return d.AfterOrEqual(p.Start) && d.BeforeOrEqual(p.End)
}

func (p Period) IsValid() bool {
	return !p.Start.IsZero() && !p.End.IsZero() && p.Start.BeforeOrEqual(p.End)
}

func (p Period) String() string {
	return fmt.Sprintf("[%s, %s]", p.Start, p.End)
}

// MonthWindow returns the period covering a full calendar month.
func MonthWindow(year int, month time.Month) Period {
	start := NewDate(year, month, 1)
	return Period{Start: start, End: start.AddMonths(1).AddDays(-1)}
}

// YearWindow returns the period covering a full calendar year.
func YearWindow(year int) Period {
	return Period{Start: NewDate(year, time.January, 1), End: NewDate(year, time.December, 31)}
}

// =============================================================================
// REFERENCE MONTH
// =============================================================================

// RefMonth identifies the month a forecast is anchored on.
type RefMonth struct {
	Year  int
	Month time.Month
}

func (r RefMonth) Window() Period { return MonthWindow(r.Year, r.Month) }
func (r RefMonth) First() Date    { return NewDate(r.Year, r.Month, 1) }

func (r RefMonth) String() string {
	return fmt.Sprintf("%04d-%02d", r.Year, r.Month)
}

// Reporting uses Dutch month names, matching the payroll source data.
var monthNames = [12]string{
	"januari", "februari", "maart", "april", "mei", "juni",
	"juli", "augustus", "september", "oktober", "november", "december",
}

// MonthName returns the Dutch name of a month.
func MonthName(month time.Month) string {
	return monthNames[month-1]
}
