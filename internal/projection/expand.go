package projection

import (
	"time"

	"cashplan/internal/models"
)

// MaxOccurrencesPerRule caps how many occurrences a single rule may yield in
// one expansion. This guarantees termination for unbounded daily rules over
// very long spans; hitting the cap truncates the sequence and surfaces a
// RECURRENCE_TRUNCATED warning.
const MaxOccurrencesPerRule = 500

// occurrenceStep is one dated recurrence step of a rule.
type occurrenceStep struct {
	n    int
	date time.Time
}

// Expand produces the ordered occurrence steps of a recurring root rule
// within [windowStart, windowEnd], both bounds inclusive. The rule's
// RepeatUntil, when set, is an inclusive upper bound that further narrows the
// window. Rules anchored before windowStart are fast-forwarded without
// iterating over every elapsed period.
//
// Month-based intervals use calendar arithmetic with day-of-month clamping: a
// monthly rule anchored on Jan 31 occurs on Feb 29 in a leap year (Feb 28
// otherwise), Mar 31, Apr 30, and so on. The anchor's day of month is
// preserved whenever the target month is long enough.
func Expand(rule models.Transaction, windowStart, windowEnd time.Time) (steps []occurrenceStep, truncated bool) {
	if !rule.Recurs() {
		return nil, false
	}

	anchor := civil(rule.Date)
	bound := civil(windowEnd)
	if rule.RepeatUntil != nil {
		if until := civil(*rule.RepeatUntil); until.Before(bound) {
			bound = until
		}
	}
	if anchor.After(bound) {
		return nil, false
	}

	start := civil(windowStart)
	n := fastForward(anchor, rule.RepeatInterval, start)
	for {
		d := stepDate(anchor, rule.RepeatInterval, n)
		if d.After(bound) {
			break
		}
		if !d.Before(start) {
			steps = append(steps, occurrenceStep{n: n, date: d})
			if len(steps) == MaxOccurrencesPerRule {
				truncated = !stepDate(anchor, rule.RepeatInterval, n+1).After(bound)
				break
			}
		}
		n++
	}
	return steps, truncated
}

// fastForward returns a step index that is guaranteed not to overshoot the
// first occurrence at or after start. Daily and weekly intervals are computed
// arithmetically; month-based intervals use the whole-month distance, backed
// off by one step to stay on the safe side of day clamping.
func fastForward(anchor time.Time, interval models.RepeatInterval, start time.Time) int {
	if !anchor.Before(start) {
		return 0
	}

	days := int(start.Sub(anchor).Hours() / 24)
	var n int
	switch interval {
	case models.RepeatDaily:
		n = days
	case models.RepeatWeekly:
		n = days / 7
	case models.RepeatMonthly, models.RepeatQuarterly, models.RepeatYearly:
		months := monthIndex(start) - monthIndex(anchor)
		n = months/monthsPerStep(interval) - 1
	}
	if n < 0 {
		n = 0
	}
	return n
}

// stepDate returns the date of the n-th occurrence for an anchor date and
// repeat interval.
func stepDate(anchor time.Time, interval models.RepeatInterval, n int) time.Time {
	switch interval {
	case models.RepeatDaily:
		return anchor.AddDate(0, 0, n)
	case models.RepeatWeekly:
		return anchor.AddDate(0, 0, 7*n)
	case models.RepeatMonthly:
		return addMonthsClamped(anchor, n)
	case models.RepeatQuarterly:
		return addMonthsClamped(anchor, 3*n)
	case models.RepeatYearly:
		return addMonthsClamped(anchor, 12*n)
	}
	return anchor
}

// addMonthsClamped adds n calendar months to a date, preserving the anchor's
// day of month and clamping to the last valid day of shorter target months.
// time.Time.AddDate is deliberately not used here: it normalizes Jan 31 + 1
// month to Mar 2/3 instead of the last day of February.
func addMonthsClamped(anchor time.Time, n int) time.Time {
	y, m, d := anchor.Date()
	idx := y*12 + int(m) - 1 + n
	ty, tm := idx/12, time.Month(idx%12+1)
	if last := daysIn(ty, tm); d > last {
		d = last
	}
	return time.Date(ty, tm, d, 0, 0, 0, 0, time.UTC)
}

func monthsPerStep(interval models.RepeatInterval) int {
	switch interval {
	case models.RepeatQuarterly:
		return 3
	case models.RepeatYearly:
		return 12
	default:
		return 1
	}
}

func monthIndex(t time.Time) int {
	return t.Year()*12 + int(t.Month()) - 1
}

func daysIn(year int, month time.Month) int {
	// Day zero of the following month is the last day of this one.
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// civil truncates a timestamp to its calendar date at midnight UTC. All
// projection math works on civil dates; time-of-day on stored transactions
// is ignored.
func civil(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
