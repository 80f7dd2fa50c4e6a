/*
Package calendar provides French civil-calendar derivations.

PURPOSE:
  Deterministic, cacheable computation of the dates the leave engine needs:
  public holidays (fixed + Easter-relative), working-day predicates for the
  5-day ("ouvré") and 6-day ("ouvrable") week conventions, the May-October
  main leave period, and inclusive day counters over date ranges.

KEY CONCEPTS IN THIS FILE (calendar.go):
  - EasterDate: Gregorian Easter Sunday via the Gauss congruence algorithm
  - Holiday: a named public holiday
  - Calendar: holiday lookup with an injectable per-year cache

DESIGN PRINCIPLES:
  1. Purity: every derivation is a pure function of the year
  2. Integer arithmetic only for Easter (no floating point)
  3. Caching is an optimization, never a source of truth: recomputation
     must always produce the identical set

USAGE:
  cal := calendar.New(calendar.NewTTLCache())
  for _, h := range cal.Holidays(2024) {
      fmt.Println(h.Date, h.Name)
  }

SEE ALSO:
  - workdays.go: weekday predicates and range counters
  - cache.go: cache abstraction and implementations
  - schoolbreaks.go: school vacation data source
*/
package calendar

import (
	"sort"
	"strconv"
	"time"
)

// Date builds a UTC midnight date. All calendar math in this package
// operates on dates normalized this way.
func Date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// Midnight normalizes an arbitrary time to its UTC calendar day.
func Midnight(t time.Time) time.Time {
	return Date(t.Year(), t.Month(), t.Day())
}

// =============================================================================
// EASTER - Gauss congruence algorithm
// =============================================================================

// EasterDate returns Gregorian Easter Sunday for the given year.
func EasterDate(year int) time.Time {
	a := year % 19
	b := year / 100
	c := year % 100
	d := b / 4
	e := b % 4
	f := (b + 8) / 25
	g := (b - f + 1) / 3
	h := (19*a + b - d - g + 15) % 30
	i := c / 4
	k := c % 4
	l := (32 + 2*e + 2*i - h - k) % 7
	m := (a + 11*h + 22*l) / 451

	month := (h + l - 7*m + 114) / 31
	day := (h+l-7*m+114)%31 + 1

	return Date(year, time.Month(month), day)
}

// =============================================================================
// PUBLIC HOLIDAYS
// =============================================================================

// Holiday is a named public holiday.
type Holiday struct {
	Date time.Time
	Name string
}

// FixedHolidays returns the 8 fixed French public holidays for a year.
func FixedHolidays(year int) []Holiday {
	return []Holiday{
		{Date(year, time.January, 1), "Jour de l'an"},
		{Date(year, time.May, 1), "Fête du Travail"},
		{Date(year, time.May, 8), "Victoire en Europe"},
		{Date(year, time.July, 14), "Fête nationale"},
		{Date(year, time.August, 15), "Assomption"},
		{Date(year, time.November, 1), "Toussaint"},
		{Date(year, time.November, 11), "Armistice"},
		{Date(year, time.December, 25), "Noël"},
	}
}

// EasterHolidays returns the 4 Easter-relative public holidays for a year.
// Good Friday is not a public holiday in metropolitan France and is excluded.
func EasterHolidays(year int) []Holiday {
	easter := EasterDate(year)
	return []Holiday{
		{easter, "Pâques"},
		{easter.AddDate(0, 0, 1), "Lundi de Pâques"},
		{easter.AddDate(0, 0, 39), "Ascension"},
		{easter.AddDate(0, 0, 50), "Lundi de Pentecôte"},
	}
}

// PublicHolidays returns all 12 public holidays for a year, sorted by date.
// This is the uncached computation; prefer Calendar.Holidays for hot paths.
func PublicHolidays(year int) []Holiday {
	holidays := append(FixedHolidays(year), EasterHolidays(year)...)
	sort.Slice(holidays, func(i, j int) bool {
		return holidays[i].Date.Before(holidays[j].Date)
	})
	return holidays
}

// HolidaySet is a date-keyed lookup of public holidays.
type HolidaySet map[time.Time]struct{}

// Contains reports whether the given day is in the set.
func (s HolidaySet) Contains(d time.Time) bool {
	_, ok := s[Midnight(d)]
	return ok
}

// NewHolidaySet builds the holiday lookup for a year.
func NewHolidaySet(year int) HolidaySet {
	set := make(HolidaySet, 12)
	for _, h := range PublicHolidays(year) {
		set[h.Date] = struct{}{}
	}
	return set
}

// =============================================================================
// CALENDAR - Holiday lookup with injectable cache
// =============================================================================

// Calendar serves per-year holiday data, memoized through a Cache.
// The zero value is not usable; use New.
type Calendar struct {
	cache Cache
}

// New creates a Calendar backed by the given cache.
// Pass NopCache{} to disable caching (every call recomputes).
func New(cache Cache) *Calendar {
	if cache == nil {
		cache = NopCache{}
	}
	return &Calendar{cache: cache}
}

// Holidays returns the 12 public holidays of a year, sorted by date.
func (c *Calendar) Holidays(year int) []Holiday {
	if v, ok := c.cache.Get(holidayListKey(year)); ok {
		if holidays, ok := v.([]Holiday); ok {
			return holidays
		}
	}
	holidays := PublicHolidays(year)
	c.cache.Set(holidayListKey(year), holidays, YearTTL)
	return holidays
}

// HolidaySet returns the date-keyed holiday lookup for a year.
// Concurrent computation for the same year is harmless: every computation
// produces the identical set, and last-write-wins on the cache.
func (c *Calendar) HolidaySet(year int) HolidaySet {
	if v, ok := c.cache.Get(holidaySetKey(year)); ok {
		if set, ok := v.(HolidaySet); ok {
			return set
		}
	}
	set := NewHolidaySet(year)
	c.cache.Set(holidaySetKey(year), set, YearTTL)
	return set
}

func holidayListKey(year int) string { return "holidays/" + strconv.Itoa(year) }
func holidaySetKey(year int) string  { return "holidayset/" + strconv.Itoa(year) }
