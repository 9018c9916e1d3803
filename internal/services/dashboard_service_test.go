package services

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"cashplan/internal/models"
	"cashplan/internal/testutil"
)

// newTestDashboard wires a dashboard service over an in-memory database with
// a fixed clock so window math is deterministic.
func newTestDashboard(t *testing.T, today time.Time) (DashboardServicer, TransactionServicer, DebtServicer, SettingsServicer, func()) {
	t.Helper()
	db := testutil.SetupTestDB(t)
	tx := NewTransactionService(db)
	settings := NewSettingsService(db)
	debts := NewDebtService(db)

	svc := NewDashboardService(tx, settings, debts).(*dashboardService)
	svc.now = func() time.Time { return today }

	return svc, tx, debts, settings, func() { testutil.TeardownTestDB(t, db) }
}

func TestDashboardStats(t *testing.T) {
	today := day(2025, 7, 1)
	svc, tx, debts, settings, teardown := newTestDashboard(t, today)
	defer teardown()

	testutil.AssertNoError(t, settings.SetInitialBalance(decimal.NewFromInt(1000)))

	_, err := tx.CreateTransaction(TransactionInput{
		Direction:   models.DirectionIncoming,
		Description: "Bonus",
		Amount:      decimal.NewFromInt(500),
		Date:        today.AddDate(0, 0, 5),
	})
	testutil.AssertNoError(t, err)

	_, err = tx.CreateTransaction(TransactionInput{
		Direction:      models.DirectionOutgoing,
		Description:    "Gym",
		Amount:         decimal.NewFromInt(100),
		Date:           today,
		IsFixed:        true,
		RepeatInterval: models.RepeatWeekly,
	})
	testutil.AssertNoError(t, err)

	_, err = debts.CreateDebt(DebtInput{
		Description: "Loan",
		TotalAmount: decimal.NewFromInt(2500),
		StartDate:   today.AddDate(-1, 0, 0),
	})
	testutil.AssertNoError(t, err)

	stats, err := svc.Stats(14)
	testutil.AssertNoError(t, err)

	if stats.CurrentBalance != 1000 {
		t.Errorf("expected current balance 1000, got %v", stats.CurrentBalance)
	}
	if stats.UpcomingIncome != 500 || stats.UpcomingExpenses != 200 {
		t.Errorf("unexpected upcoming figures: %+v", stats)
	}
	if stats.ProjectedBalance != 1300 {
		t.Errorf("expected projected balance 1300, got %v", stats.ProjectedBalance)
	}
	if stats.TotalDebt != 2500 {
		t.Errorf("expected total debt 2500, got %v", stats.TotalDebt)
	}
}

func TestDashboardTimeline(t *testing.T) {
	today := day(2025, 7, 1)
	svc, tx, _, settings, teardown := newTestDashboard(t, today)
	defer teardown()

	testutil.AssertNoError(t, settings.SetInitialBalance(decimal.NewFromInt(100)))
	_, err := tx.CreateTransaction(TransactionInput{
		Direction:   models.DirectionOutgoing,
		Description: "Dinner",
		Amount:      decimal.NewFromInt(40),
		Date:        today.AddDate(0, 0, 1),
	})
	testutil.AssertNoError(t, err)

	timeline, err := svc.Timeline(7)
	testutil.AssertNoError(t, err)

	if len(timeline.Labels) != 7 {
		t.Fatalf("expected 7 labels, got %d", len(timeline.Labels))
	}
	if timeline.Labels[0] != "2025-07-01" {
		t.Errorf("unexpected first label %q", timeline.Labels[0])
	}
	if timeline.ExpenseData[1] != -40 {
		t.Errorf("expected negated expense -40 on day 1, got %v", timeline.ExpenseData[1])
	}
	if timeline.BalanceData[6] != 60 {
		t.Errorf("expected final balance 60, got %v", timeline.BalanceData[6])
	}
}

func TestDashboardUpcomingTransactions(t *testing.T) {
	today := day(2025, 7, 1)
	svc, tx, _, _, teardown := newTestDashboard(t, today)
	defer teardown()

	// A split parent whose recorded amount disagrees with its children: the
	// detail view lists the children and carries the diagnostic.
	parent, err := tx.CreateTransaction(TransactionInput{
		Direction:   models.DirectionOutgoing,
		Description: "Shopping",
		Date:        today.AddDate(0, 0, 2),
		Splits: []SplitInput{
			{Description: "Food", Amount: decimal.NewFromInt(180)},
			{Description: "Household", Amount: decimal.NewFromInt(100)},
		},
	})
	testutil.AssertNoError(t, err)

	// Corrupt the parent amount behind the service's back to simulate
	// legacy data that was never recomputed.
	if err := tx.(*transactionService).db.Model(&models.Transaction{}).
		Where("id = ?", parent.ID).Update("amount", decimal.NewFromInt(300)).Error; err != nil {
		t.Fatalf("failed to corrupt parent amount: %v", err)
	}

	upcoming, err := svc.UpcomingTransactions(7)
	testutil.AssertNoError(t, err)

	if len(upcoming.Entries) != 2 {
		t.Fatalf("expected the 2 children as entries, got %d", len(upcoming.Entries))
	}
	sum := decimal.Zero
	for _, e := range upcoming.Entries {
		sum = sum.Add(e.Amount)
	}
	testutil.AssertDecimalEqual(t, sum, decimal.NewFromInt(280))

	if len(upcoming.Warnings) != 1 || upcoming.Warnings[0].Code != "SPLIT_SUM_MISMATCH" {
		t.Fatalf("expected a SPLIT_SUM_MISMATCH diagnostic, got %v", upcoming.Warnings)
	}
}

func TestDashboardViewsAgree(t *testing.T) {
	today := day(2025, 7, 1)
	svc, tx, _, settings, teardown := newTestDashboard(t, today)
	defer teardown()

	testutil.AssertNoError(t, settings.SetInitialBalance(decimal.NewFromInt(250)))
	_, err := tx.CreateTransaction(TransactionInput{
		Direction:      models.DirectionIncoming,
		Description:    "Salary",
		Amount:         decimal.NewFromInt(2000),
		Date:           today.AddDate(0, 0, -60),
		IsFixed:        true,
		RepeatInterval: models.RepeatMonthly,
	})
	testutil.AssertNoError(t, err)

	stats, err := svc.Stats(30)
	testutil.AssertNoError(t, err)
	timeline, err := svc.Timeline(30)
	testutil.AssertNoError(t, err)

	// The chart's last balance and the stats' projected balance come from
	// the same engine run shape and must agree.
	if timeline.BalanceData[len(timeline.BalanceData)-1] != stats.ProjectedBalance {
		t.Errorf("timeline final balance %v disagrees with projected balance %v",
			timeline.BalanceData[len(timeline.BalanceData)-1], stats.ProjectedBalance)
	}
}
