/*
Package fraction implements the jours-de-fractionnement calculation.

PURPOSE:
  French labor rules grant extra leave days ("jours de fractionnement") to
  agents who take part of their annual leave outside the main May-October
  period. This package counts, per agent and civil year, the annual-leave
  days falling in the November-April window and maps that count to an award
  of 0, 1 or 2 days.

KEY CONCEPTS IN THIS FILE (calculator.go):
  - Bounds: the configured valid-year policy window
  - Calculator: orchestrates the record store, the calendar and the
    half-day counter
  - FractionationDays: the threshold rule (<5 -> 0, 5-7 -> 1, >=8 -> 2)

COUNTING-MODE RESOLUTION:
  The weekday convention is resolved from an explicit fallback chain before
  any counting happens: YearParameters -> WeeklyCycle -> workdays default.
  Missing records are a permissive default, never an error.

PARTIAL-FAILURE POLICY:
  A malformed period (end before start, slipped past upstream validation)
  is logged with its full context and skipped; the remaining periods still
  contribute. A single bad record must not block a whole year's calculation.
  Store failures and invalid years propagate to the caller.

SEE ALSO:
  - entitlement.go: RTT and paid-leave-quota derivation
  - ../leave/count.go: the half-day counter
  - ../leave/split.go: the straddle splitter
*/
package fraction

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/gestionsiteccsa/conges-engine/calendar"
	"github.com/gestionsiteccsa/conges-engine/leave"
)

// =============================================================================
// YEAR BOUNDS
// =============================================================================

// Bounds is the configured window of years the engine accepts. The window is
// an external policy, not intrinsic to the algorithm.
type Bounds struct {
	MinYear int
	MaxYear int
}

// DefaultBounds matches the surrounding system's configuration.
var DefaultBounds = Bounds{MinYear: 2020, MaxYear: 2100}

// Check returns an InvalidYearError when year is outside the bounds.
func (b Bounds) Check(year int) error {
	if year < b.MinYear || year > b.MaxYear {
		return &leave.InvalidYearError{Year: year, Min: b.MinYear, Max: b.MaxYear}
	}
	return nil
}

// =============================================================================
// THRESHOLD RULE
// =============================================================================

// FractionationDays maps a count of annual-leave days taken outside the main
// period to the awarded fractionation days:
//
//	< 5 days  -> 0
//	5-7 days  -> 1
//	>= 8 days -> 2
func FractionationDays(daysOutside int) int {
	switch {
	case daysOutside < 5:
		return 0
	case daysOutside <= 7:
		return 1
	default:
		return 2
	}
}

// =============================================================================
// CALCULATOR
// =============================================================================

// Result is the outcome of a fractionation computation. It is always derived
// on demand from the stored leave periods, never authoritative state.
type Result struct {
	Year                  int `json:"year"`
	DaysOutsideMainPeriod int `json:"days_outside_main_period"`
	FractionationDays     int `json:"fractionation_days"`
}

// Calculator computes fractionation results from stored records. It is
// stateless and safe for concurrent use across (agent, year) pairs.
type Calculator struct {
	records leave.Records
	cal     *calendar.Calendar
	bounds  Bounds
	log     *logrus.Logger
}

// NewCalculator wires a calculator. A nil logger falls back to the logrus
// standard logger.
func NewCalculator(records leave.Records, cal *calendar.Calendar, bounds Bounds, log *logrus.Logger) *Calculator {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Calculator{records: records, cal: cal, bounds: bounds, log: log}
}

// Bounds returns the calculator's year policy window.
func (c *Calculator) Bounds() Bounds { return c.bounds }

// CountingMode resolves the weekday convention for an agent and year:
// the year's parameter record wins, then the year's cycle, then the
// workdays default.
func (c *Calculator) CountingMode(ctx context.Context, userID string, year int) (leave.CountingMode, error) {
	params, err := c.records.GetParameters(ctx, userID, year)
	if err != nil {
		return "", fmt.Errorf("failed to get year parameters: %w", err)
	}
	if params != nil && params.Mode.Valid() {
		return params.Mode, nil
	}

	cycle, err := c.records.GetCycle(ctx, userID, year)
	if err != nil {
		return "", fmt.Errorf("failed to get cycle: %w", err)
	}
	if cycle != nil && cycle.Mode.Valid() {
		return cycle.Mode, nil
	}

	return leave.CountWorkdays, nil
}

// DaysOutsideMainPeriod counts the agent's annual-leave days falling outside
// the May-October main period of the given civil year. Half-day fractions
// below a whole day are dropped: the award rule operates on whole-day
// thresholds, so 4.5 days do not count as 5.
func (c *Calculator) DaysOutsideMainPeriod(ctx context.Context, userID string, year int) (int, error) {
	if err := c.bounds.Check(year); err != nil {
		return 0, err
	}

	mode, err := c.CountingMode(ctx, userID, year)
	if err != nil {
		return 0, err
	}

	periods, err := c.records.ListPeriodsByType(ctx, userID, year, leave.LeaveAnnual)
	if err != nil {
		return 0, fmt.Errorf("failed to list annual leave periods: %w", err)
	}

	total := decimal.Zero
	for _, p := range periods {
		if err := p.Validate(); err != nil {
			c.log.WithFields(logrus.Fields{
				"user":   userID,
				"year":   year,
				"period": p.ID,
				"start":  p.Start.Format("2006-01-02"),
				"end":    p.End.Format("2006-01-02"),
			}).WithError(err).Warn("skipping malformed leave period")
			continue
		}

		for _, sub := range leave.SplitOutsideMainPeriod(p, year) {
			total = total.Add(leave.CountPeriod(
				c.cal, sub.Start, sub.End, mode, true, year, sub.StartHalf, sub.EndHalf))
		}
	}

	return int(total.IntPart()), nil
}

// Compute derives the full fractionation result for an agent and year.
func (c *Calculator) Compute(ctx context.Context, userID string, year int) (Result, error) {
	daysOutside, err := c.DaysOutsideMainPeriod(ctx, userID, year)
	if err != nil {
		return Result{}, err
	}

	return Result{
		Year:                  year,
		DaysOutsideMainPeriod: daysOutside,
		FractionationDays:     FractionationDays(daysOutside),
	}, nil
}
