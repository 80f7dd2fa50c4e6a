package calendar_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gestionsiteccsa/conges-engine/calendar"
)

// =============================================================================
// EASTER TESTS
// =============================================================================

func TestEasterDate_KnownYears(t *testing.T) {
	// GIVEN: Years with well-known Easter Sunday dates
	// WHEN: Computing Easter
	// THEN: The exact dates come out

	cases := map[int]time.Time{
		2020: calendar.Date(2020, time.April, 12),
		2024: calendar.Date(2024, time.March, 31),
		2025: calendar.Date(2025, time.April, 20),
		2026: calendar.Date(2026, time.April, 5),
		2038: calendar.Date(2038, time.April, 25),
	}

	for year, want := range cases {
		assert.Equal(t, want, calendar.EasterDate(year), "Easter %d", year)
	}
}

func TestEasterDate_AlwaysSunday(t *testing.T) {
	for year := 2020; year <= 2100; year++ {
		assert.Equal(t, time.Sunday, calendar.EasterDate(year).Weekday(), "year %d", year)
	}
}

// =============================================================================
// PUBLIC HOLIDAY TESTS
// =============================================================================

func TestPublicHolidays_TwelvePerYear(t *testing.T) {
	// GIVEN: Any year in the supported range
	// WHEN: Listing public holidays
	// THEN: Exactly 12, all in that year, sorted, starting with January 1

	for _, year := range []int{2020, 2024, 2025, 2100} {
		holidays := calendar.PublicHolidays(year)
		require.Len(t, holidays, 12, "year %d", year)

		assert.Equal(t, calendar.Date(year, time.January, 1), holidays[0].Date)
		assert.Equal(t, "Jour de l'an", holidays[0].Name)

		for i, h := range holidays {
			assert.Equal(t, year, h.Date.Year(), "holiday %s", h.Name)
			if i > 0 {
				assert.True(t, holidays[i-1].Date.Before(h.Date), "sorted at %d", i)
			}
		}
	}
}

func TestPublicHolidays_EasterRelative2024(t *testing.T) {
	// Easter 2024 is March 31: Easter Monday Apr 1, Ascension May 9,
	// Whit Monday May 20. Good Friday is absent.
	set := calendar.NewHolidaySet(2024)

	assert.True(t, set.Contains(calendar.Date(2024, time.April, 1)))
	assert.True(t, set.Contains(calendar.Date(2024, time.May, 9)))
	assert.True(t, set.Contains(calendar.Date(2024, time.May, 20)))
	assert.False(t, set.Contains(calendar.Date(2024, time.March, 29)), "Good Friday is not a holiday")
}

func TestCalendar_Holidays_CachedAndIdentical(t *testing.T) {
	// GIVEN: A calendar with a TTL cache
	// WHEN: Asking for the same year twice
	// THEN: Both answers are identical to the uncached computation

	cal := calendar.New(calendar.NewTTLCache())

	first := cal.Holidays(2025)
	second := cal.Holidays(2025)

	assert.Equal(t, calendar.PublicHolidays(2025), first)
	assert.Equal(t, first, second)
}

func TestCalendar_NilCache_StillWorks(t *testing.T) {
	cal := calendar.New(nil)
	assert.Len(t, cal.Holidays(2024), 12)
	assert.True(t, cal.HolidaySet(2024).Contains(calendar.Date(2024, time.December, 25)))
}

// =============================================================================
// WEEKDAY PREDICATE TESTS
// =============================================================================

func TestWeekdayPredicates(t *testing.T) {
	monday := calendar.Date(2024, time.January, 1)
	saturday := calendar.Date(2024, time.January, 6)
	sunday := calendar.Date(2024, time.January, 7)

	assert.True(t, calendar.IsWorkday(monday))
	assert.False(t, calendar.IsWorkday(saturday))
	assert.False(t, calendar.IsWorkday(sunday))

	assert.True(t, calendar.IsWorkableDay(monday))
	assert.True(t, calendar.IsWorkableDay(saturday))
	assert.False(t, calendar.IsWorkableDay(sunday))
}

func TestMainPeriod(t *testing.T) {
	assert.True(t, calendar.IsInMainPeriod(calendar.Date(2024, time.May, 1)))
	assert.True(t, calendar.IsInMainPeriod(calendar.Date(2024, time.July, 15)))
	assert.True(t, calendar.IsInMainPeriod(calendar.Date(2024, time.October, 31)))

	assert.True(t, calendar.IsOutsideMainPeriod(calendar.Date(2024, time.November, 1)))
	assert.True(t, calendar.IsOutsideMainPeriod(calendar.Date(2024, time.April, 30)))
	assert.True(t, calendar.IsOutsideMainPeriod(calendar.Date(2024, time.December, 15)))
}

// =============================================================================
// RANGE COUNTER TESTS
// =============================================================================

func TestCountWorkdays_NovemberWeek2024(t *testing.T) {
	// GIVEN: Nov 4-8 2024, Monday through Friday, no holidays inside
	// WHEN: Counting workdays
	// THEN: 5

	cal := calendar.New(nil)
	n := cal.CountWorkdays(
		calendar.Date(2024, time.November, 4),
		calendar.Date(2024, time.November, 8),
		true, 2024)
	assert.Equal(t, 5, n)
}

func TestCountWorkdays_HolidayExcluded(t *testing.T) {
	// GIVEN: Nov 11 2024 (Armistice) is a Monday
	// WHEN: Counting Nov 11-15 with and without holiday exclusion
	// THEN: 4 with exclusion, 5 without

	cal := calendar.New(nil)
	start := calendar.Date(2024, time.November, 11)
	end := calendar.Date(2024, time.November, 15)

	assert.Equal(t, 4, cal.CountWorkdays(start, end, true, 2024))
	assert.Equal(t, 5, cal.CountWorkdays(start, end, false, 2024))
}

func TestCountWorkableDays_IncludesSaturday(t *testing.T) {
	// GIVEN: Dec 2-7 2024, Monday through Saturday
	// WHEN: Counting under both conventions
	// THEN: 5 workdays, 6 workable days

	cal := calendar.New(nil)
	start := calendar.Date(2024, time.December, 2)
	end := calendar.Date(2024, time.December, 7)

	assert.Equal(t, 5, cal.CountWorkdays(start, end, true, 2024))
	assert.Equal(t, 6, cal.CountWorkableDays(start, end, true, 2024))
}

func TestCountWorkdays_SingleDay(t *testing.T) {
	cal := calendar.New(nil)

	monday := calendar.Date(2024, time.November, 4)
	sunday := calendar.Date(2024, time.November, 3)

	assert.Equal(t, 1, cal.CountWorkdays(monday, monday, true, 2024))
	assert.Equal(t, 0, cal.CountWorkdays(sunday, sunday, true, 2024))
}

func TestIsCountedDay(t *testing.T) {
	cal := calendar.New(nil)

	armistice := calendar.Date(2024, time.November, 11)
	saturday := calendar.Date(2024, time.November, 9)

	assert.False(t, cal.IsCountedDay(armistice, false, true, 2024), "holiday not counted")
	assert.True(t, cal.IsCountedDay(armistice, false, false, 2024), "counted when holidays not excluded")
	assert.False(t, cal.IsCountedDay(saturday, false, true, 2024), "Saturday not a workday")
	assert.True(t, cal.IsCountedDay(saturday, true, true, 2024), "Saturday is workable")
}
