package projection

import (
	"fmt"

	"github.com/shopspring/decimal"

	"cashplan/internal/models"
)

// SplitResolution names the rows whose amounts count toward aggregation for
// one root transaction.
type SplitResolution struct {
	// ChildrenAuthoritative is true when the children, not the parent row,
	// carry the amounts. The parent's own amount must then never be added,
	// or every split would be counted twice.
	ChildrenAuthoritative bool
	Entries               []models.Transaction
	Warnings              []Warning
}

// ResolveSplit determines the authoritative entries for a root transaction.
//
// A non-split root is its own sole entry. For a split root the children are
// authoritative; a mismatch between the parent amount and the children's sum
// is reported as a warning and the children win. A split root with no
// children contributes nothing (plus a warning) rather than failing.
func ResolveSplit(rule models.Transaction, children []models.Transaction) SplitResolution {
	if !rule.IsSplit {
		return SplitResolution{Entries: []models.Transaction{rule}}
	}

	if len(children) == 0 {
		return SplitResolution{
			ChildrenAuthoritative: true,
			Warnings: []Warning{{
				Code:    WarnSplitEmpty,
				RuleID:  rule.ID,
				Message: fmt.Sprintf("split transaction %q has no children; it contributes nothing", rule.Description),
			}},
		}
	}

	res := SplitResolution{
		ChildrenAuthoritative: true,
		Entries:               children,
	}

	sum := decimal.Zero
	for _, c := range children {
		sum = sum.Add(c.Amount)
	}
	if !sum.Equal(rule.Amount) {
		res.Warnings = append(res.Warnings, Warning{
			Code:   WarnSplitSumMismatch,
			RuleID: rule.ID,
			Message: fmt.Sprintf("split transaction %q records %s but its children sum to %s; using the children",
				rule.Description, rule.Amount.StringFixed(2), sum.StringFixed(2)),
		})
	}
	return res
}
