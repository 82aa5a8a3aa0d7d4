package forecast

// =============================================================================
// WORKDAY CALENDAR - Generic company workday reference
// =============================================================================

// StandardDayMinutes is the standard full-time workday length.
const StandardDayMinutes Minutes = 480

// WorkdayCalendar maps every date in [year-1, year] to a standard
// work-minute value: 480 on weekdays, 0 on weekends. It is a pure function
// of the calendar, independent of any worker, and is used when a
// calculation must compare actual paid time against a generic company
// calendar (contracts starting or ending mid-period, benefit reference
// windows spanning two years).
//
// Known limitation: public holidays are NOT excluded, so the calendar
// slightly overstates workable minutes in months containing one.
type WorkdayCalendar struct {
	window  Period
	minutes map[Date]Minutes
}

// BuildWorkdayCalendar builds the workday reference for the target year
// and the preceding year.
func BuildWorkdayCalendar(year int) *WorkdayCalendar {
	window := Period{
		Start: YearWindow(year - 1).Start,
		End:   YearWindow(year).End,
	}
	minutes := make(map[Date]Minutes)
	for d := window.Start; d.BeforeOrEqual(window.End); d = d.AddDays(1) {
		if d.IsWeekend() {
			minutes[d] = 0
		} else {
			minutes[d] = StandardDayMinutes
		}
	}
	return &WorkdayCalendar{window: window, minutes: minutes}
}

// Window returns the covered date range.
func (wc *WorkdayCalendar) Window() Period { return wc.window }

// WorkMinutes sums the standard work minutes over the closed window
// [start, end]. Dates outside the built range contribute zero.
func (wc *WorkdayCalendar) WorkMinutes(p Period) Minutes {
	var total Minutes
	for d := p.Start; d.BeforeOrEqual(p.End); d = d.AddDays(1) {
		total += wc.minutes[d]
	}
	return total
}
