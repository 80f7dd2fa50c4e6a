package leave

import (
	"time"

	"github.com/gestionsiteccsa/conges-engine/calendar"
)

// =============================================================================
// MAIN-PERIOD STRADDLE SPLITTER
// =============================================================================

// SubPeriod is a slice of a leave period falling outside the main period
// (November 1 - April 30). Half-day boundaries are synthetic full-day
// boundaries at the cut points and the period's real boundaries elsewhere.
type SubPeriod struct {
	Start     time.Time
	StartHalf HalfDay
	End       time.Time
	EndHalf   HalfDay
}

// SplitOutsideMainPeriod returns the 0-2 sub-periods of p that fall outside
// the main leave period of the given civil year.
//
// Classification by start/end month:
//   - entirely outside (Nov-Dec only, Jan-Apr only, or Nov->Apr across the
//     year boundary): one sub-period covering the whole range;
//   - entirely inside (start and end both in May-Oct): no sub-periods;
//   - straddling: a Jan-Apr head truncated at April 30 and/or a Nov-Dec tail
//     starting at November 1. A truncated cut is a full-day boundary: the
//     head ends in the afternoon and the tail starts in the morning, unless
//     the cut coincides with the period's real boundary.
func SplitOutsideMainPeriod(p LeavePeriod, year int) []SubPeriod {
	sm, em := p.Start.Month(), p.End.Month()

	entirelyOutside := ((sm >= time.November && em >= time.November) ||
		(sm <= time.April && em <= time.April) ||
		(sm >= time.November && em <= time.April)) &&
		!(sm >= time.May && sm <= time.October)

	if entirelyOutside {
		return []SubPeriod{{Start: p.Start, StartHalf: p.StartHalf, End: p.End, EndHalf: p.EndHalf}}
	}

	if sm >= time.May && em <= time.October {
		return nil
	}

	var subs []SubPeriod

	// Head: start through April 30.
	if sm <= time.April {
		endOfApril := calendar.Date(year, time.April, 30)
		subEnd := p.End
		subEndHalf := p.EndHalf
		if endOfApril.Before(subEnd) {
			subEnd = endOfApril
			subEndHalf = Afternoon
		}
		subs = append(subs, SubPeriod{Start: p.Start, StartHalf: p.StartHalf, End: subEnd, EndHalf: subEndHalf})
	}

	// Tail: November 1 through end.
	if em >= time.November {
		startOfNovember := calendar.Date(year, time.November, 1)
		subStart := p.Start
		subStartHalf := p.StartHalf
		if subStart.Before(startOfNovember) {
			subStart = startOfNovember
			subStartHalf = Morning
		}
		subs = append(subs, SubPeriod{Start: subStart, StartHalf: subStartHalf, End: p.End, EndHalf: p.EndHalf})
	}

	return subs
}
