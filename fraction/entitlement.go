/*
entitlement.go - Annual entitlement derivation

PURPOSE:
  Derives the two entitlement figures attached to a weekly cycle: the RTT
  day count compensating hours worked above the legal annual duration, and
  the paid-leave day quota prorated by work quota. Both are pure functions
  of the cycle's contractual fields.

KEY FORMULAS:
  RTT   = round((hours*52 - 1607) / hours * quota), 0 when hours <= 35
  Paid  = 25.00 * quota, rounded to 2 decimal places

SEE ALSO:
  - calculator.go: the fractionation side of the engine
  - ../leave/types.go: WeeklyCycle carrying the derived fields
*/
package fraction

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/gestionsiteccsa/conges-engine/calendar"
	"github.com/gestionsiteccsa/conges-engine/leave"
)

// =============================================================================
// CONSTANTS
// =============================================================================

// LegalAnnualHours is the French statutory annual working duration.
const LegalAnnualHours = 1607

// WeeksPerYear is the annualization factor for weekly hours.
const WeeksPerYear = 52

// BasePaidLeaveDays is the full-time annual paid-leave quota in workdays.
var BasePaidLeaveDays = decimal.RequireFromString("25.00")

// =============================================================================
// ENTITLEMENT FORMULAS
// =============================================================================

// AnnualRTT derives the yearly RTT day count for a weekly cycle. Agents at or
// below 35 hours accrue none. Above that, the annual excess over the legal
// duration is converted to days at the cycle's own daily rate and prorated by
// the work quota, rounded to the nearest whole day. A 39-hour full-time cycle
// yields 11 days.
func AnnualRTT(hoursPerWeek, workQuota decimal.Decimal) int {
	if hoursPerWeek.LessThanOrEqual(decimal.NewFromInt(35)) {
		return 0
	}

	annual := hoursPerWeek.Mul(decimal.NewFromInt(WeeksPerYear))
	excess := annual.Sub(decimal.NewFromInt(LegalAnnualHours))
	if excess.LessThanOrEqual(decimal.Zero) {
		return 0
	}

	days := excess.Div(hoursPerWeek).Mul(workQuota)
	return int(days.Round(0).IntPart())
}

// AnnualPaidLeaveDays derives the yearly paid-leave quota: the full-time base
// prorated by work quota, to 2 decimal places. The counting mode does not
// change the figure today; it is part of the signature because the quota is
// conventionally expressed in the cycle's own weekday convention.
func AnnualPaidLeaveDays(workQuota decimal.Decimal, mode leave.CountingMode) decimal.Decimal {
	_ = mode
	return BasePaidLeaveDays.Mul(workQuota).Round(2)
}

// DeriveEntitlements fills a cycle's derived fields from its contractual ones.
func DeriveEntitlements(c *leave.WeeklyCycle) {
	c.AnnualRTT = AnnualRTT(c.HoursPerWeek, c.WorkQuota)
	c.AnnualPaidLeave = AnnualPaidLeaveDays(c.WorkQuota, c.Mode)
}

// =============================================================================
// YEAR-TO-DATE COUNTER
// =============================================================================

// WorkedDaysSinceJanuary counts the counted days from January 1 of ref's year
// through ref inclusive, under the given mode and excluding public holidays.
// It backs the year-to-date counter shown alongside entitlements.
func WorkedDaysSinceJanuary(cal *calendar.Calendar, ref time.Time, mode leave.CountingMode) int {
	start := calendar.Date(ref.Year(), time.January, 1)
	if mode == leave.CountWorkableDays {
		return cal.CountWorkableDays(start, calendar.Midnight(ref), true, ref.Year())
	}
	return cal.CountWorkdays(start, calendar.Midnight(ref), true, ref.Year())
}
