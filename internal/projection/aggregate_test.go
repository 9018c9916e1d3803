package projection

import (
	"testing"

	"github.com/shopspring/decimal"

	"cashplan/internal/models"
)

func TestBuildTimeline(t *testing.T) {
	start := date(2025, 7, 1)
	rules := []models.Transaction{
		oneTime("pay", models.DirectionIncoming, 500, start.AddDate(0, 0, 1)),
		oneTime("rent", models.DirectionOutgoing, 200, start.AddDate(0, 0, 1)),
	}
	r := Project(rules, decimal.NewFromInt(100), start, 3)

	tl := BuildTimeline(r)

	if len(tl.Labels) != 3 || len(tl.IncomeData) != 3 || len(tl.ExpenseData) != 3 || len(tl.BalanceData) != 3 {
		t.Fatalf("expected 3 elements per series, got %d/%d/%d/%d",
			len(tl.Labels), len(tl.IncomeData), len(tl.ExpenseData), len(tl.BalanceData))
	}
	if tl.Labels[0] != "2025-07-01" || tl.Labels[2] != "2025-07-03" {
		t.Errorf("unexpected labels: %v", tl.Labels)
	}
	if tl.IncomeData[1] != 500 {
		t.Errorf("expected income 500 on day 1, got %v", tl.IncomeData[1])
	}
	// Expenses are negated for charting.
	if tl.ExpenseData[1] != -200 {
		t.Errorf("expected expense -200 on day 1, got %v", tl.ExpenseData[1])
	}
	if tl.BalanceData[0] != 100 || tl.BalanceData[1] != 400 || tl.BalanceData[2] != 400 {
		t.Errorf("unexpected balance series: %v", tl.BalanceData)
	}
}

func TestBuildStats(t *testing.T) {
	start := date(2025, 7, 1)
	rules := []models.Transaction{
		oneTime("pay", models.DirectionIncoming, 500, start.AddDate(0, 0, 5)),
		weekly("gym", models.DirectionOutgoing, 100, start),
	}
	r := Project(rules, decimal.NewFromInt(1000), start, 14)

	stats := BuildStats(r, decimal.NewFromInt(2500))

	if stats.CurrentBalance != 1000 {
		t.Errorf("expected current balance 1000, got %v", stats.CurrentBalance)
	}
	if stats.UpcomingIncome != 500 || stats.UpcomingIncomeDetails.NonRecurring != 500 || stats.UpcomingIncomeDetails.Recurring != 0 {
		t.Errorf("unexpected income figures: %+v", stats)
	}
	if stats.UpcomingExpenses != 200 || stats.UpcomingExpenseDetails.Recurring != 200 {
		t.Errorf("unexpected expense figures: %+v", stats)
	}
	if stats.ProjectedBalance != 1300 {
		t.Errorf("expected projected balance 1300, got %v", stats.ProjectedBalance)
	}
	if stats.TotalDebt != 2500 {
		t.Errorf("expected total debt 2500, got %v", stats.TotalDebt)
	}
}

func TestBuildStatsCarriesWarnings(t *testing.T) {
	start := date(2025, 7, 1)
	parent := splitParent("lonely", 100)
	parent.Date = start
	r := Project([]models.Transaction{parent}, decimal.Zero, start, 7)

	stats := BuildStats(r, decimal.Zero)
	if len(stats.Warnings) != 1 || stats.Warnings[0].Code != WarnSplitEmpty {
		t.Fatalf("expected the projection warning to ride along, got %v", stats.Warnings)
	}

	tl := BuildTimeline(r)
	if len(tl.Warnings) != 1 {
		t.Errorf("expected the timeline to carry warnings too, got %v", tl.Warnings)
	}
}
