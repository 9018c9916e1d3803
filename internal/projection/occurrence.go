// Package projection is the cash-flow projection core: it expands recurring
// rules into dated occurrences, resolves split transactions into their
// authoritative line items, folds everything into a day-by-day balance
// timeline, and shapes the chart and stats views consumed by the dashboard.
//
// Every function in the package is a pure function of its inputs. The caller
// supplies a snapshot of transactions and a window; nothing here touches the
// database, the clock, or any shared state.
package projection

import (
	"time"

	"github.com/shopspring/decimal"

	"cashplan/internal/models"
)

// Occurrence is one concrete dated cash-flow event derived from a
// transaction: the transaction itself for one-time entries, or one entry per
// recurrence step (and per split child) for recurring rules.
type Occurrence struct {
	RuleID      string          `json:"rule_id"`
	ParentID    *string         `json:"parent_id,omitempty"`
	Direction   models.Direction `json:"direction"`
	Amount      decimal.Decimal `json:"amount"`
	Date        time.Time       `json:"date"`
	Description string          `json:"description"`
	CategoryID  *string         `json:"category_id,omitempty"`
	Recurring   bool            `json:"recurring"`

	// Step is the zero-based recurrence index that produced this occurrence;
	// always 0 for non-recurring entries.
	Step int `json:"-"`
}

// signed returns the occurrence amount with outgoing flows negated.
func (o Occurrence) signed() decimal.Decimal {
	if o.Direction == models.DirectionOutgoing {
		return o.Amount.Neg()
	}
	return o.Amount
}

// Warning codes for non-fatal data findings. Warnings ride along with the
// projection result; computation always proceeds.
const (
	WarnSplitEmpty             = "SPLIT_EMPTY"
	WarnSplitSumMismatch       = "SPLIT_SUM_MISMATCH"
	WarnRepeatUntilBeforeStart = "REPEAT_UNTIL_BEFORE_START"
	WarnRecurrenceTruncated    = "RECURRENCE_TRUNCATED"
)

// Warning is a non-fatal diagnostic about a single rule.
type Warning struct {
	Code    string `json:"code"`
	RuleID  string `json:"rule_id"`
	Message string `json:"message"`
}
