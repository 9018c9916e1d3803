package projection

import "github.com/shopspring/decimal"

// Timeline is the chart-ready view of a projection: one label and one value
// per series per day. Expenses are negated so the chart draws them below the
// axis.
type Timeline struct {
	Labels      []string  `json:"labels"`
	IncomeData  []float64 `json:"income_data"`
	ExpenseData []float64 `json:"expense_data"`
	BalanceData []float64 `json:"balance_data"`
	Warnings    []Warning `json:"warnings,omitempty"`
}

// BuildTimeline reshapes a projection result into chart series. It performs
// no summation of its own; every figure comes straight from the engine.
func BuildTimeline(r Result) Timeline {
	t := Timeline{
		Labels:      make([]string, len(r.Days)),
		IncomeData:  make([]float64, len(r.Days)),
		ExpenseData: make([]float64, len(r.Days)),
		BalanceData: make([]float64, len(r.Days)),
		Warnings:    r.Warnings,
	}
	for i, d := range r.Days {
		t.Labels[i] = d.Date.Format("2006-01-02")
		t.IncomeData[i] = d.Income.InexactFloat64()
		t.ExpenseData[i] = d.Expense.Neg().InexactFloat64()
		t.BalanceData[i] = d.Balance.InexactFloat64()
	}
	return t
}

// StatsBreakdown is the JSON shape of a recurring/non-recurring split.
type StatsBreakdown struct {
	Recurring    float64 `json:"recurring"`
	NonRecurring float64 `json:"non_recurring"`
}

// Stats is the dashboard's scalar summary view.
type Stats struct {
	CurrentBalance         float64        `json:"current_balance"`
	UpcomingIncome         float64        `json:"upcoming_income"`
	UpcomingIncomeDetails  StatsBreakdown `json:"upcoming_income_details"`
	UpcomingExpenses       float64        `json:"upcoming_expenses"`
	UpcomingExpenseDetails StatsBreakdown `json:"upcoming_expense_details"`
	ProjectedBalance       float64        `json:"projected_balance"`
	TotalDebt              float64        `json:"total_debt"`
	Warnings               []Warning      `json:"warnings,omitempty"`
}

// BuildStats reshapes a projection result plus the total outstanding debt
// into the dashboard's summary scalars, reusing the engine's figures.
func BuildStats(r Result, totalDebt decimal.Decimal) Stats {
	return Stats{
		CurrentBalance: r.CurrentBalance.InexactFloat64(),
		UpcomingIncome: r.UpcomingIncome.InexactFloat64(),
		UpcomingIncomeDetails: StatsBreakdown{
			Recurring:    r.IncomeBreakdown.Recurring.InexactFloat64(),
			NonRecurring: r.IncomeBreakdown.NonRecurring.InexactFloat64(),
		},
		UpcomingExpenses: r.UpcomingExpenses.InexactFloat64(),
		UpcomingExpenseDetails: StatsBreakdown{
			Recurring:    r.ExpenseBreakdown.Recurring.InexactFloat64(),
			NonRecurring: r.ExpenseBreakdown.NonRecurring.InexactFloat64(),
		},
		ProjectedBalance: r.ProjectedBalance.InexactFloat64(),
		TotalDebt:        totalDebt.InexactFloat64(),
		Warnings:         r.Warnings,
	}
}
