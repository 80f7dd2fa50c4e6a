/*
Package leave defines the leave-accounting domain model.

PURPOSE:
  This package contains the value types shared by the whole engine: weekly
  work cycles, per-year counting parameters, leave periods with half-day
  boundaries, and the half-day-precise day counter over date ranges.

KEY CONCEPTS IN THIS FILE (types.go):
  - HalfDay: morning/afternoon boundary of a leave period
  - CountingMode: 5-day ("ouvré") vs 6-day ("ouvrable") week convention
  - WeeklyCycle: an agent's contractual hours and work quota for a year
  - YearParameters: per-year counting-convention override
  - LeavePeriod: a date range of leave with half-day start/end precision

DESIGN PRINCIPLES:
  1. Value semantics: all types are plain data, persisted elsewhere
  2. Precision: decimal.Decimal for day counts, quotas and hours
  3. Derived fields (CivilYear, DayCount) are recomputed on save, never
     trusted from input

SEE ALSO:
  - count.go: half-day period counter
  - split.go: main-period straddle splitter
  - store.go: persistence interfaces
  - errors.go: error taxonomy
*/
package leave

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/gestionsiteccsa/conges-engine/calendar"
)

// =============================================================================
// ENUMS
// =============================================================================

// HalfDay marks which half of a day a period starts or ends on.
type HalfDay string

const (
	Morning   HalfDay = "morning"
	Afternoon HalfDay = "afternoon"
)

// Valid reports whether h is a known half-day value.
func (h HalfDay) Valid() bool { return h == Morning || h == Afternoon }

// CountingMode selects the weekday convention used when counting days.
type CountingMode string

const (
	// CountWorkdays counts Monday-Friday ("jours ouvrés").
	CountWorkdays CountingMode = "workdays"
	// CountWorkableDays counts Monday-Saturday ("jours ouvrables").
	CountWorkableDays CountingMode = "workable_days"
)

// Valid reports whether m is a known counting mode.
func (m CountingMode) Valid() bool {
	return m == CountWorkdays || m == CountWorkableDays
}

// LeaveType classifies a leave period. Only annual leave counts toward
// fractionation.
type LeaveType string

const (
	LeaveAnnual  LeaveType = "annual"
	LeaveRTT     LeaveType = "rtt"
	LeaveSpecial LeaveType = "special" // ASA, autorisation spéciale d'absence
	LeaveSick    LeaveType = "sick"
	LeaveOther   LeaveType = "other"
)

// Valid reports whether t is a known leave type.
func (t LeaveType) Valid() bool {
	switch t {
	case LeaveAnnual, LeaveRTT, LeaveSpecial, LeaveSick, LeaveOther:
		return true
	}
	return false
}

// =============================================================================
// WEEKLY CYCLE
// =============================================================================

// Contractual bounds for a weekly cycle.
var (
	MinWeeklyHours = decimal.NewFromInt(35)
	MaxWeeklyHours = decimal.NewFromInt(39)
	MinWorkQuota   = decimal.RequireFromString("0.5")
	MaxWorkQuota   = decimal.RequireFromString("1.0")
)

// WeeklyCycle is an agent's work cycle for one civil year. At most one cycle
// exists per (agent, year); the store enforces uniqueness.
type WeeklyCycle struct {
	ID           int64
	UserID       string
	Year         int
	HoursPerWeek decimal.Decimal
	WorkQuota    decimal.Decimal
	Mode         CountingMode

	// Derived on save from HoursPerWeek/WorkQuota.
	AnnualRTT       int
	AnnualPaidLeave decimal.Decimal

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Validate checks the contractual bounds.
func (c WeeklyCycle) Validate() error {
	if c.HoursPerWeek.LessThan(MinWeeklyHours) || c.HoursPerWeek.GreaterThan(MaxWeeklyHours) {
		return &InvalidCycleError{Field: "hours_per_week", Value: c.HoursPerWeek.String()}
	}
	if c.WorkQuota.LessThan(MinWorkQuota) || c.WorkQuota.GreaterThan(MaxWorkQuota) {
		return &InvalidCycleError{Field: "work_quota", Value: c.WorkQuota.String()}
	}
	if !c.Mode.Valid() {
		return &InvalidCycleError{Field: "counting_mode", Value: string(c.Mode)}
	}
	return nil
}

// =============================================================================
// YEAR PARAMETERS
// =============================================================================

// YearParameters overrides the counting convention for one civil year.
// When present it takes precedence over the cycle's convention.
type YearParameters struct {
	ID     int64
	UserID string
	Year   int
	Mode   CountingMode

	CreatedAt time.Time
	UpdatedAt time.Time
}

// =============================================================================
// LEAVE PERIOD
// =============================================================================

// LeavePeriod is one logged leave request: an inclusive [Start, End] date
// range with half-day boundary precision. CivilYear and DayCount are derived
// and recomputed on every save.
type LeavePeriod struct {
	ID        int64
	UserID    string
	Start     time.Time
	StartHalf HalfDay
	End       time.Time
	EndHalf   HalfDay
	Type      LeaveType

	CivilYear int
	DayCount  decimal.Decimal

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Validate checks the period's structural invariants.
func (p LeavePeriod) Validate() error {
	if p.End.Before(p.Start) {
		return ErrInvalidPeriod
	}
	if !p.StartHalf.Valid() || !p.EndHalf.Valid() {
		return ErrInvalidHalfDay
	}
	if !p.Type.Valid() {
		return ErrInvalidLeaveType
	}
	return nil
}

// Derive recomputes CivilYear and DayCount. The counting convention is the
// caller-resolved one for the period's user and year.
func (p *LeavePeriod) Derive(cal *calendar.Calendar, mode CountingMode) {
	p.CivilYear = p.Start.Year()
	p.DayCount = CountPeriod(cal, p.Start, p.End, mode, true, p.CivilYear, p.StartHalf, p.EndHalf)
}

// =============================================================================
// AGENT
// =============================================================================

// Agent is the user owning cycles, parameters and leave periods. The engine
// only needs an identifier; name and email exist for display.
type Agent struct {
	ID        string
	Name      string
	Email     string
	CreatedAt time.Time
}
