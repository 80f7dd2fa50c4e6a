package calendar

import "time"

// =============================================================================
// WEEKDAY PREDICATES
// =============================================================================

// IsWorkday reports whether d is a "jour ouvré": Monday through Friday.
func IsWorkday(d time.Time) bool {
	wd := d.Weekday()
	return wd >= time.Monday && wd <= time.Friday
}

// IsWorkableDay reports whether d is a "jour ouvrable": Monday through
// Saturday. Only Sunday is excluded under the 6-day convention.
func IsWorkableDay(d time.Time) bool {
	return d.Weekday() != time.Sunday
}

// =============================================================================
// MAIN LEAVE PERIOD (May 1 - October 31)
// =============================================================================

// IsInMainPeriod reports whether d falls in the main leave period,
// May 1 through October 31 inclusive. November through April is the
// fractionation window.
func IsInMainPeriod(d time.Time) bool {
	m := d.Month()
	return m >= time.May && m <= time.October
}

// IsOutsideMainPeriod is the complement of IsInMainPeriod.
func IsOutsideMainPeriod(d time.Time) bool {
	return !IsInMainPeriod(d)
}

// =============================================================================
// RANGE COUNTERS
// =============================================================================

// CountWorkdays counts Mon-Fri days in [start, end] inclusive. When
// excludeHolidays is set, public holidays of the given year are skipped.
//
// The holiday year is explicit rather than derived per-day: a range that
// crosses a year boundary only excludes one year's holidays, matching the
// stored-period semantics where a leave period belongs to a single civil
// year. Callers slicing multi-year ranges must count per year.
func (c *Calendar) CountWorkdays(start, end time.Time, excludeHolidays bool, year int) int {
	return c.countDays(start, end, excludeHolidays, year, IsWorkday)
}

// CountWorkableDays counts Mon-Sat days in [start, end] inclusive, with the
// same holiday-exclusion semantics as CountWorkdays.
func (c *Calendar) CountWorkableDays(start, end time.Time, excludeHolidays bool, year int) int {
	return c.countDays(start, end, excludeHolidays, year, IsWorkableDay)
}

func (c *Calendar) countDays(start, end time.Time, excludeHolidays bool, year int, counted func(time.Time) bool) int {
	var holidays HolidaySet
	if excludeHolidays {
		holidays = c.HolidaySet(year)
	}

	n := 0
	for d := Midnight(start); !d.After(Midnight(end)); d = d.AddDate(0, 0, 1) {
		if counted(d) && !holidays.Contains(d) {
			n++
		}
	}
	return n
}

// IsCountedDay reports whether a single day would be counted by the
// corresponding counter: a working day under the 5-day convention that is
// not an excluded holiday.
func (c *Calendar) IsCountedDay(d time.Time, workable bool, excludeHolidays bool, year int) bool {
	if workable {
		if !IsWorkableDay(d) {
			return false
		}
	} else if !IsWorkday(d) {
		return false
	}
	if excludeHolidays && c.HolidaySet(year).Contains(d) {
		return false
	}
	return true
}
