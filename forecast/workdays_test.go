package forecast_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/warp/forecast-engine/forecast"
)

// =============================================================================
// WORKDAY CALENDAR
// =============================================================================

func TestWorkdayCalendar_CoversTwoYears(t *testing.T) {
	// GIVEN a workday calendar built for 2026
	wc := forecast.BuildWorkdayCalendar(2026)

	// THEN the window spans the preceding year through the target year
	window := wc.Window()
	assert.Equal(t, date(2025, time.January, 1), window.Start)
	assert.Equal(t, date(2026, time.December, 31), window.End)
}

func TestWorkdayCalendar_WorkMinutes(t *testing.T) {
	wc := forecast.BuildWorkdayCalendar(2026)

	t.Run("full month counts weekdays at standard length", func(t *testing.T) {
		// June 2026 has 22 weekdays
		got := wc.WorkMinutes(forecast.MonthWindow(2026, time.June))
		require.Equal(t, forecast.Minutes(22*480), got)
	})

	t.Run("weekend-only window counts zero", func(t *testing.T) {
		// Jan 3-4 2026 is a Saturday and a Sunday
		got := wc.WorkMinutes(forecast.Period{
			Start: date(2026, time.January, 3),
			End:   date(2026, time.January, 4),
		})
		require.Equal(t, forecast.Minutes(0), got)
	})

	t.Run("full year", func(t *testing.T) {
		// 2026 has 261 weekdays
		got := wc.WorkMinutes(forecast.YearWindow(2026))
		require.Equal(t, forecast.Minutes(261*480), got)
	})

	t.Run("dates outside the built range contribute zero", func(t *testing.T) {
		got := wc.WorkMinutes(forecast.Period{
			Start: date(2024, time.December, 30),
			End:   date(2024, time.December, 31),
		})
		require.Equal(t, forecast.Minutes(0), got)
	})
}
