package fraction_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/gestionsiteccsa/conges-engine/calendar"
	"github.com/gestionsiteccsa/conges-engine/fraction"
	"github.com/gestionsiteccsa/conges-engine/leave"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

// =============================================================================
// RTT DERIVATION TESTS
// =============================================================================

func TestAnnualRTT_KnownValues(t *testing.T) {
	// GIVEN: Cycles at each contractual hour step, full time
	// WHEN: Deriving RTT
	// THEN: 35h earns none, 39h earns 11

	assert.Equal(t, 0, fraction.AnnualRTT(d("35"), d("1.0")))
	// 36*52=1872, excess 265, 265/36 = 7.36 -> 7
	assert.Equal(t, 7, fraction.AnnualRTT(d("36"), d("1.0")))
	// 39*52=2028, excess 421, 421/39 = 10.79 -> 11
	assert.Equal(t, 11, fraction.AnnualRTT(d("39"), d("1.0")))
	assert.Equal(t, 5, fraction.AnnualRTT(d("39"), d("0.5")))
}

func TestAnnualRTT_MonotonicInHours(t *testing.T) {
	// More weekly hours never yields fewer RTT days.
	prev := 0
	for hours := 35; hours <= 39; hours++ {
		rtt := fraction.AnnualRTT(decimal.NewFromInt(int64(hours)), d("1.0"))
		assert.GreaterOrEqual(t, rtt, prev, "at %dh", hours)
		prev = rtt
	}
}

// =============================================================================
// PAID-LEAVE PRORATION TESTS
// =============================================================================

func TestAnnualPaidLeaveDays_Proration(t *testing.T) {
	assert.Equal(t, "25.00", fraction.AnnualPaidLeaveDays(d("1.0"), leave.CountWorkdays).StringFixed(2))
	assert.Equal(t, "12.50", fraction.AnnualPaidLeaveDays(d("0.5"), leave.CountWorkdays).StringFixed(2))
	assert.Equal(t, "20.00", fraction.AnnualPaidLeaveDays(d("0.8"), leave.CountWorkableDays).StringFixed(2))
}

func TestDeriveEntitlements(t *testing.T) {
	c := leave.WeeklyCycle{
		HoursPerWeek: d("39"),
		WorkQuota:    d("1.0"),
		Mode:         leave.CountWorkdays,
	}
	fraction.DeriveEntitlements(&c)

	assert.Equal(t, 11, c.AnnualRTT)
	assert.Equal(t, "25.00", c.AnnualPaidLeave.StringFixed(2))
}

// =============================================================================
// YEAR-TO-DATE COUNTER TESTS
// =============================================================================

func TestWorkedDaysSinceJanuary(t *testing.T) {
	// GIVEN: January 31 2024 as the reference day
	// WHEN: Counting since January 1 (a Monday holiday)
	// THEN: 22 workdays, 26 workable days

	cal := calendar.New(nil)
	ref := calendar.Date(2024, time.January, 31)

	// Jan 2024: 23 weekdays, minus New Year's Day (Mon Jan 1).
	assert.Equal(t, 22, fraction.WorkedDaysSinceJanuary(cal, ref, leave.CountWorkdays))
	// 27 Mon-Sat days, minus the holiday.
	assert.Equal(t, 26, fraction.WorkedDaysSinceJanuary(cal, ref, leave.CountWorkableDays))
}
