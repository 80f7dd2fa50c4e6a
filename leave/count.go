package leave

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/gestionsiteccsa/conges-engine/calendar"
)

// =============================================================================
// HALF-DAY PERIOD COUNTER
// =============================================================================

var halfDay = decimal.RequireFromString("0.5")

// CountPeriod counts the days in [start, end] inclusive under the given
// counting mode, with half-day precision:
//
//  1. Count whole days satisfying the mode's weekday predicate (and not an
//     excluded holiday of the given year).
//  2. If the start date itself was counted and the period starts in the
//     afternoon, subtract 0.5.
//  3. If the end date itself was counted and the period ends in the morning,
//     subtract 0.5.
//  4. Clamp at zero.
//
// A start/end date that is a weekend or holiday contributed nothing in step 1,
// so no half-day adjustment applies to it. A single counted day yields 1.0
// for morning->afternoon and 0.5 for either same-half combination.
func CountPeriod(cal *calendar.Calendar, start, end time.Time, mode CountingMode, excludeHolidays bool, year int, startHalf, endHalf HalfDay) decimal.Decimal {
	workable := mode == CountWorkableDays

	var full int
	if workable {
		full = cal.CountWorkableDays(start, end, excludeHolidays, year)
	} else {
		full = cal.CountWorkdays(start, end, excludeHolidays, year)
	}

	total := decimal.NewFromInt(int64(full))

	if startHalf == Afternoon && cal.IsCountedDay(start, workable, excludeHolidays, year) {
		total = total.Sub(halfDay)
	}
	if endHalf == Morning && cal.IsCountedDay(end, workable, excludeHolidays, year) {
		total = total.Sub(halfDay)
	}

	if total.IsNegative() {
		return decimal.Zero
	}
	return total
}
