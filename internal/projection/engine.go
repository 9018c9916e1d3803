package projection

import (
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"cashplan/internal/models"
)

// Breakdown splits an upcoming total into its recurring and non-recurring
// parts. Entries derived from recurring rules, including the split children
// of a recurring parent, count as recurring.
type Breakdown struct {
	Recurring    decimal.Decimal `json:"recurring"`
	NonRecurring decimal.Decimal `json:"non_recurring"`
}

func (b *Breakdown) add(amount decimal.Decimal, recurring bool) {
	if recurring {
		b.Recurring = b.Recurring.Add(amount)
	} else {
		b.NonRecurring = b.NonRecurring.Add(amount)
	}
}

// Day is one day of the projected timeline.
type Day struct {
	Date    time.Time       `json:"date"`
	Income  decimal.Decimal `json:"income"`
	Expense decimal.Decimal `json:"expense"`
	Balance decimal.Decimal `json:"balance"`
}

// Result is the complete output of one projection run. The aggregator views
// (BuildTimeline, BuildStats) reshape it without recomputing any sums.
type Result struct {
	WindowStart time.Time `json:"window_start"`
	WindowDays  int       `json:"window_days"`

	// CurrentBalance is the initial balance plus every authoritative entry
	// dated strictly before WindowStart, across all time.
	CurrentBalance decimal.Decimal `json:"current_balance"`

	// Days has exactly WindowDays elements, one per day of the window.
	Days []Day `json:"days"`

	// Entries are the window's occurrences in ascending date order.
	Entries []Occurrence `json:"entries"`

	UpcomingIncome   decimal.Decimal `json:"upcoming_income"`
	UpcomingExpenses decimal.Decimal `json:"upcoming_expenses"`
	IncomeBreakdown  Breakdown       `json:"income_breakdown"`
	ExpenseBreakdown Breakdown       `json:"expense_breakdown"`
	ProjectedBalance decimal.Decimal `json:"projected_balance"`

	Warnings []Warning `json:"warnings,omitempty"`
}

// Project folds a snapshot of transactions into a balance timeline over a
// window of windowDays days starting at windowStart. The window covers
// [windowStart, windowStart+windowDays-1], both days inclusive.
//
// Occurrences dated before windowStart (literal past transactions and
// historical occurrences of recurring rules) are folded into CurrentBalance;
// occurrences from windowStart onward make up the timeline. The split
// authoritativeness rule is applied uniformly to both.
func Project(rules []models.Transaction, initialBalance decimal.Decimal, windowStart time.Time, windowDays int) Result {
	if windowDays < 1 {
		windowDays = 1
	}
	start := civil(windowStart)
	end := start.AddDate(0, 0, windowDays-1)

	childrenByParent := make(map[string][]models.Transaction)
	for _, r := range rules {
		if r.ParentID != nil {
			childrenByParent[*r.ParentID] = append(childrenByParent[*r.ParentID], r)
		}
	}

	var all []Occurrence
	var warnings []Warning

	for _, root := range rules {
		if !root.IsRoot() {
			continue
		}

		res := ResolveSplit(root, childrenByParent[root.ID])
		warnings = append(warnings, res.Warnings...)

		if !root.Recurs() {
			for _, e := range res.Entries {
				d := civil(e.Date)
				if d.After(end) {
					continue
				}
				all = append(all, newOccurrence(e, d, 0, false))
			}
			continue
		}

		if root.RepeatUntil != nil && civil(*root.RepeatUntil).Before(civil(root.Date)) {
			warnings = append(warnings, Warning{
				Code:   WarnRepeatUntilBeforeStart,
				RuleID: root.ID,
				Message: fmt.Sprintf("recurring transaction %q ends (%s) before it starts (%s)",
					root.Description, root.RepeatUntil.Format("2006-01-02"), root.Date.Format("2006-01-02")),
			})
			continue
		}

		// Expand from the rule's own anchor so that historical occurrences
		// count toward the current balance.
		steps, truncated := Expand(root, civil(root.Date), end)
		if truncated {
			warnings = append(warnings, Warning{
				Code:    WarnRecurrenceTruncated,
				RuleID:  root.ID,
				Message: fmt.Sprintf("recurring transaction %q truncated after %d occurrences", root.Description, MaxOccurrencesPerRule),
			})
		}

		// Splits of recurring transactions recur as a group: every
		// occurrence step shifts each child by the same interval count.
		for _, s := range steps {
			for _, e := range res.Entries {
				d := stepDate(civil(e.Date), root.RepeatInterval, s.n)
				if d.After(end) {
					continue
				}
				all = append(all, newOccurrence(e, d, s.n, true))
			}
		}
	}

	current := initialBalance
	window := make([]Occurrence, 0, len(all))
	for _, o := range all {
		if o.Date.Before(start) {
			current = current.Add(o.signed())
		} else {
			window = append(window, o)
		}
	}

	// Same-day entries are unordered for balance purposes; sort by date and
	// fall back to rule identity so identical inputs give identical output.
	sort.SliceStable(window, func(i, j int) bool {
		if !window[i].Date.Equal(window[j].Date) {
			return window[i].Date.Before(window[j].Date)
		}
		if window[i].RuleID != window[j].RuleID {
			return window[i].RuleID < window[j].RuleID
		}
		return window[i].Step < window[j].Step
	})

	incomeByDay := make([]decimal.Decimal, windowDays)
	expenseByDay := make([]decimal.Decimal, windowDays)
	for _, o := range window {
		i := daysBetween(start, o.Date)
		if o.Direction == models.DirectionIncoming {
			incomeByDay[i] = incomeByDay[i].Add(o.Amount)
		} else {
			expenseByDay[i] = expenseByDay[i].Add(o.Amount)
		}
	}

	days := make([]Day, windowDays)
	balance := current
	for i := range days {
		balance = balance.Add(incomeByDay[i]).Sub(expenseByDay[i])
		days[i] = Day{
			Date:    start.AddDate(0, 0, i),
			Income:  incomeByDay[i],
			Expense: expenseByDay[i],
			Balance: balance,
		}
	}

	r := Result{
		WindowStart:    start,
		WindowDays:     windowDays,
		CurrentBalance: current,
		Days:           days,
		Entries:        window,
		Warnings:       warnings,
	}
	for _, o := range window {
		if o.Direction == models.DirectionIncoming {
			r.UpcomingIncome = r.UpcomingIncome.Add(o.Amount)
			r.IncomeBreakdown.add(o.Amount, o.Recurring)
		} else {
			r.UpcomingExpenses = r.UpcomingExpenses.Add(o.Amount)
			r.ExpenseBreakdown.add(o.Amount, o.Recurring)
		}
	}
	r.ProjectedBalance = current.Add(r.UpcomingIncome).Sub(r.UpcomingExpenses)
	return r
}

func newOccurrence(entry models.Transaction, date time.Time, step int, recurring bool) Occurrence {
	return Occurrence{
		RuleID:      entry.ID,
		ParentID:    entry.ParentID,
		Direction:   entry.Direction,
		Amount:      entry.Amount,
		Date:        date,
		Description: entry.Description,
		CategoryID:  entry.CategoryID,
		Recurring:   recurring,
		Step:        step,
	}
}

// daysBetween returns the number of whole days from a to b. Both arguments
// must already be civil dates.
func daysBetween(a, b time.Time) int {
	return int(b.Sub(a).Hours() / 24)
}
