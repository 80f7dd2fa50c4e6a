package leave_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/gestionsiteccsa/conges-engine/calendar"
	"github.com/gestionsiteccsa/conges-engine/leave"
)

func count(t *testing.T, start, end time.Time, mode leave.CountingMode, startHalf, endHalf leave.HalfDay) string {
	t.Helper()
	cal := calendar.New(nil)
	return leave.CountPeriod(cal, start, end, mode, true, start.Year(), startHalf, endHalf).String()
}

// =============================================================================
// HALF-DAY COUNTING TESTS
// =============================================================================

func TestCountPeriod_SingleDay_HalfDayCombinations(t *testing.T) {
	// GIVEN: A single counted Monday
	// WHEN: Counting under each half-day combination
	// THEN: morning->afternoon is a full day, the same-half cases are 0.5

	monday := calendar.Date(2024, time.November, 4)

	assert.Equal(t, "1", count(t, monday, monday, leave.CountWorkdays, leave.Morning, leave.Afternoon))
	assert.Equal(t, "0.5", count(t, monday, monday, leave.CountWorkdays, leave.Morning, leave.Morning))
	assert.Equal(t, "0.5", count(t, monday, monday, leave.CountWorkdays, leave.Afternoon, leave.Afternoon))
	assert.Equal(t, "0", count(t, monday, monday, leave.CountWorkdays, leave.Afternoon, leave.Morning))
}

func TestCountPeriod_TwoDays_AfternoonToMorning(t *testing.T) {
	// GIVEN: Monday afternoon through Tuesday morning
	// WHEN: Counting
	// THEN: Half of each day, 1.0 total

	monday := calendar.Date(2024, time.November, 4)
	tuesday := calendar.Date(2024, time.November, 5)

	assert.Equal(t, "1", count(t, monday, tuesday, leave.CountWorkdays, leave.Afternoon, leave.Morning))
}

func TestCountPeriod_HalfDayOnUncountedBoundary_NoAdjustment(t *testing.T) {
	// GIVEN: A period starting Saturday afternoon and ending the next Friday
	// WHEN: Counting workdays
	// THEN: The Saturday contributed nothing, so no half is subtracted

	saturday := calendar.Date(2024, time.November, 2)
	friday := calendar.Date(2024, time.November, 8)

	assert.Equal(t, "5", count(t, saturday, friday, leave.CountWorkdays, leave.Afternoon, leave.Afternoon))
}

func TestCountPeriod_HolidayBoundary_NoAdjustment(t *testing.T) {
	// GIVEN: A period ending on Armistice Monday (Nov 11 2024) in the morning
	// WHEN: Counting with holidays excluded
	// THEN: The holiday was never counted, so the morning end subtracts nothing

	thursday := calendar.Date(2024, time.November, 7)
	armistice := calendar.Date(2024, time.November, 11)

	// Thursday + Friday, Nov 11 excluded.
	assert.Equal(t, "2", count(t, thursday, armistice, leave.CountWorkdays, leave.Morning, leave.Morning))
}

func TestCountPeriod_WorkableWeek(t *testing.T) {
	// GIVEN: A Monday-Saturday week under the 6-day convention
	// WHEN: Ending Saturday morning
	// THEN: 5.5 days

	monday := calendar.Date(2024, time.December, 2)
	saturday := calendar.Date(2024, time.December, 7)

	assert.Equal(t, "5.5", count(t, monday, saturday, leave.CountWorkableDays, leave.Morning, leave.Morning))
}

func TestCountPeriod_NeverNegative(t *testing.T) {
	// A weekend-only range with adverse half-days clamps at zero.
	saturday := calendar.Date(2024, time.November, 2)
	sunday := calendar.Date(2024, time.November, 3)

	assert.Equal(t, "0", count(t, saturday, sunday, leave.CountWorkdays, leave.Afternoon, leave.Morning))
}

// =============================================================================
// VALIDATION TESTS
// =============================================================================

func TestLeavePeriod_Validate(t *testing.T) {
	valid := leave.LeavePeriod{
		Start:     calendar.Date(2024, time.November, 4),
		StartHalf: leave.Morning,
		End:       calendar.Date(2024, time.November, 8),
		EndHalf:   leave.Afternoon,
		Type:      leave.LeaveAnnual,
	}
	assert.NoError(t, valid.Validate())

	reversed := valid
	reversed.Start, reversed.End = reversed.End, reversed.Start
	assert.ErrorIs(t, reversed.Validate(), leave.ErrInvalidPeriod)

	badHalf := valid
	badHalf.StartHalf = "noon"
	assert.ErrorIs(t, badHalf.Validate(), leave.ErrInvalidHalfDay)

	badType := valid
	badType.Type = "sabbatical"
	assert.ErrorIs(t, badType.Validate(), leave.ErrInvalidLeaveType)
}

func TestWeeklyCycle_Validate(t *testing.T) {
	valid := leave.WeeklyCycle{
		HoursPerWeek: decimal.NewFromInt(39),
		WorkQuota:    decimal.RequireFromString("1.0"),
		Mode:         leave.CountWorkdays,
	}
	assert.NoError(t, valid.Validate())

	tooMany := valid
	tooMany.HoursPerWeek = decimal.NewFromInt(40)
	err := tooMany.Validate()
	assert.True(t, leave.IsClientError(err))

	var cycleErr *leave.InvalidCycleError
	assert.ErrorAs(t, err, &cycleErr)
	assert.Equal(t, "hours_per_week", cycleErr.Field)

	lowQuota := valid
	lowQuota.WorkQuota = decimal.RequireFromString("0.25")
	assert.Error(t, lowQuota.Validate())

	badMode := valid
	badMode.Mode = "lunar"
	assert.Error(t, badMode.Validate())
}

func TestLeavePeriod_Derive(t *testing.T) {
	// GIVEN: A November workweek
	// WHEN: Deriving
	// THEN: CivilYear follows the start date and DayCount is 5

	p := leave.LeavePeriod{
		Start:     calendar.Date(2024, time.November, 4),
		StartHalf: leave.Morning,
		End:       calendar.Date(2024, time.November, 8),
		EndHalf:   leave.Afternoon,
		Type:      leave.LeaveAnnual,
	}
	p.Derive(calendar.New(nil), leave.CountWorkdays)

	assert.Equal(t, 2024, p.CivilYear)
	assert.Equal(t, "5", p.DayCount.String())
}
