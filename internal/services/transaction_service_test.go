package services

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"cashplan/internal/models"
	"cashplan/internal/pagination"
	"cashplan/internal/testutil"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestCreateTransaction(t *testing.T) {
	t.Run("one_time", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewTransactionService(db)

		tx, err := svc.CreateTransaction(TransactionInput{
			Direction:   models.DirectionIncoming,
			Description: "Salary",
			Amount:      decimal.NewFromInt(2500),
			Date:        day(2025, 8, 1),
		})
		testutil.AssertNoError(t, err)

		if tx.ID == "" {
			t.Fatal("expected a generated ID")
		}
		if tx.IsSplit || tx.IsFixed {
			t.Errorf("expected a plain one-time transaction, got %+v", tx)
		}
		testutil.AssertDecimalEqual(t, tx.Amount, decimal.NewFromInt(2500))
	})

	t.Run("recurring", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewTransactionService(db)

		until := day(2026, 8, 1)
		tx, err := svc.CreateTransaction(TransactionInput{
			Direction:      models.DirectionOutgoing,
			Description:    "Rent",
			Amount:         decimal.NewFromInt(900),
			Date:           day(2025, 8, 1),
			IsFixed:        true,
			RepeatInterval: models.RepeatMonthly,
			RepeatUntil:    &until,
		})
		testutil.AssertNoError(t, err)

		if !tx.Recurs() {
			t.Error("expected a recurring rule")
		}
		if tx.RepeatUntil == nil || !tx.RepeatUntil.Equal(until) {
			t.Errorf("expected repeat_until %s, got %v", until, tx.RepeatUntil)
		}
	})

	t.Run("with_splits_sums_children", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewTransactionService(db)

		tx, err := svc.CreateTransaction(TransactionInput{
			Direction:   models.DirectionOutgoing,
			Description: "Groceries",
			Amount:      decimal.NewFromInt(999), // ignored: children win
			Date:        day(2025, 8, 2),
			Splits: []SplitInput{
				{Description: "Food", Amount: decimal.NewFromInt(180)},
				{Description: "Household", Amount: decimal.NewFromInt(120)},
			},
		})
		testutil.AssertNoError(t, err)

		if !tx.IsSplit {
			t.Error("expected a split parent")
		}
		testutil.AssertDecimalEqual(t, tx.Amount, decimal.NewFromInt(300))
		if len(tx.Children) != 2 {
			t.Fatalf("expected 2 children, got %d", len(tx.Children))
		}
		for _, c := range tx.Children {
			if c.Direction != models.DirectionOutgoing {
				t.Errorf("child should inherit the parent direction, got %s", c.Direction)
			}
			if c.ParentID == nil || *c.ParentID != tx.ID {
				t.Error("child should reference the parent")
			}
		}
	})

	t.Run("rejects_non_positive_amount", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewTransactionService(db)

		_, err := svc.CreateTransaction(TransactionInput{
			Direction: models.DirectionIncoming,
			Amount:    decimal.Zero,
			Date:      day(2025, 8, 1),
		})
		testutil.AssertAppError(t, err, "INVALID_INPUT")
	})

	t.Run("rejects_bad_direction", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewTransactionService(db)

		_, err := svc.CreateTransaction(TransactionInput{
			Direction: "sideways",
			Amount:    decimal.NewFromInt(10),
			Date:      day(2025, 8, 1),
		})
		testutil.AssertAppError(t, err, "INVALID_DIRECTION")
	})
}

func TestSplitLifecycle(t *testing.T) {
	t.Run("add_split_converts_and_recomputes", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewTransactionService(db)

		root, err := svc.CreateTransaction(TransactionInput{
			Direction:   models.DirectionOutgoing,
			Description: "Shopping",
			Amount:      decimal.NewFromInt(100),
			Date:        day(2025, 8, 3),
		})
		testutil.AssertNoError(t, err)

		parent, err := svc.AddSplit(root.ID, SplitInput{Description: "Part A", Amount: decimal.NewFromInt(60)})
		testutil.AssertNoError(t, err)
		if !parent.IsSplit {
			t.Error("expected the root to become a split parent")
		}
		testutil.AssertDecimalEqual(t, parent.Amount, decimal.NewFromInt(60))

		parent, err = svc.AddSplit(root.ID, SplitInput{Description: "Part B", Amount: decimal.NewFromInt(25)})
		testutil.AssertNoError(t, err)
		testutil.AssertDecimalEqual(t, parent.Amount, decimal.NewFromInt(85))
		if len(parent.Children) != 2 {
			t.Fatalf("expected 2 children, got %d", len(parent.Children))
		}
	})

	t.Run("update_split_recomputes_parent", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewTransactionService(db)

		root, err := svc.CreateTransaction(TransactionInput{
			Direction:   models.DirectionOutgoing,
			Description: "Utilities",
			Date:        day(2025, 8, 3),
			Splits: []SplitInput{
				{Description: "Power", Amount: decimal.NewFromInt(70)},
				{Description: "Water", Amount: decimal.NewFromInt(50)},
			},
		})
		testutil.AssertNoError(t, err)

		child := root.Children[0]
		parent, err := svc.UpdateSplit(child.ID, SplitInput{
			Description: child.Description,
			Amount:      decimal.NewFromInt(100),
		})
		testutil.AssertNoError(t, err)
		testutil.AssertDecimalEqual(t, parent.Amount, decimal.NewFromInt(150))
	})

	t.Run("delete_child_recomputes_and_clears_flag", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewTransactionService(db)

		root, err := svc.CreateTransaction(TransactionInput{
			Direction:   models.DirectionOutgoing,
			Description: "Utilities",
			Date:        day(2025, 8, 3),
			Splits: []SplitInput{
				{Description: "Power", Amount: decimal.NewFromInt(70)},
				{Description: "Water", Amount: decimal.NewFromInt(50)},
			},
		})
		testutil.AssertNoError(t, err)

		testutil.AssertNoError(t, svc.DeleteTransaction(root.Children[0].ID))
		parent, err := svc.GetTransactionByID(root.ID)
		testutil.AssertNoError(t, err)
		if !parent.IsSplit {
			t.Error("parent should stay split while a child remains")
		}
		testutil.AssertDecimalEqual(t, parent.Amount, decimal.NewFromInt(50))

		testutil.AssertNoError(t, svc.DeleteTransaction(parent.Children[0].ID))
		parent, err = svc.GetTransactionByID(root.ID)
		testutil.AssertNoError(t, err)
		if parent.IsSplit {
			t.Error("parent should revert to a plain transaction with no children left")
		}
	})

	t.Run("delete_root_cascades", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewTransactionService(db)

		root, err := svc.CreateTransaction(TransactionInput{
			Direction:   models.DirectionOutgoing,
			Description: "Utilities",
			Date:        day(2025, 8, 3),
			Splits: []SplitInput{
				{Description: "Power", Amount: decimal.NewFromInt(70)},
				{Description: "Water", Amount: decimal.NewFromInt(50)},
			},
		})
		testutil.AssertNoError(t, err)

		testutil.AssertNoError(t, svc.DeleteTransaction(root.ID))

		_, err = svc.GetTransactionByID(root.ID)
		testutil.AssertAppError(t, err, "TRANSACTION_NOT_FOUND")
		for _, c := range root.Children {
			_, err = svc.GetTransactionByID(c.ID)
			testutil.AssertAppError(t, err, "TRANSACTION_NOT_FOUND")
		}
	})

	t.Run("cannot_split_a_child", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewTransactionService(db)

		root, err := svc.CreateTransaction(TransactionInput{
			Direction:   models.DirectionOutgoing,
			Description: "Shopping",
			Date:        day(2025, 8, 3),
			Splits:      []SplitInput{{Description: "A", Amount: decimal.NewFromInt(10)}},
		})
		testutil.AssertNoError(t, err)

		_, err = svc.AddSplit(root.Children[0].ID, SplitInput{Description: "Nested", Amount: decimal.NewFromInt(5)})
		testutil.AssertAppError(t, err, "CHILD_CANNOT_SPLIT")
	})

	t.Run("child_cannot_become_recurring", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewTransactionService(db)

		root, err := svc.CreateTransaction(TransactionInput{
			Direction:   models.DirectionOutgoing,
			Description: "Shopping",
			Date:        day(2025, 8, 3),
			Splits:      []SplitInput{{Description: "A", Amount: decimal.NewFromInt(10)}},
		})
		testutil.AssertNoError(t, err)

		_, err = svc.UpdateTransaction(root.Children[0].ID, TransactionInput{
			Description:    "A",
			Amount:         decimal.NewFromInt(10),
			IsFixed:        true,
			RepeatInterval: models.RepeatWeekly,
		})
		testutil.AssertAppError(t, err, "CHILD_CANNOT_RECUR")
	})
}

func TestListTransactions(t *testing.T) {
	t.Run("roots_only_with_children_preloaded", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewTransactionService(db)

		_, err := svc.CreateTransaction(TransactionInput{
			Direction:   models.DirectionOutgoing,
			Description: "Split",
			Date:        day(2025, 8, 3),
			Splits: []SplitInput{
				{Description: "A", Amount: decimal.NewFromInt(10)},
				{Description: "B", Amount: decimal.NewFromInt(20)},
			},
		})
		testutil.AssertNoError(t, err)
		testutil.CreateTestTransaction(t, db, models.DirectionIncoming, 100, day(2025, 8, 5))

		page := pagination.PageRequest{Page: 1, PageSize: 20}
		result, err := svc.ListTransactions(page, TransactionFilter{})
		testutil.AssertNoError(t, err)

		if result.TotalItems != 2 {
			t.Fatalf("expected 2 roots, got %d", result.TotalItems)
		}
		for _, tx := range result.Data {
			if tx.IsSplit && len(tx.Children) != 2 {
				t.Errorf("expected split children preloaded, got %d", len(tx.Children))
			}
		}
	})

	t.Run("filter_by_direction_and_recurring", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewTransactionService(db)

		testutil.CreateTestTransaction(t, db, models.DirectionIncoming, 100, day(2025, 8, 5))
		testutil.CreateTestTransaction(t, db, models.DirectionOutgoing, 50, day(2025, 8, 6))
		testutil.CreateTestRecurringTransaction(t, db, models.DirectionOutgoing, 25, day(2025, 8, 1), models.RepeatWeekly)

		page := pagination.PageRequest{Page: 1, PageSize: 20}
		outgoing := models.DirectionOutgoing
		recurring := true

		result, err := svc.ListTransactions(page, TransactionFilter{Direction: &outgoing})
		testutil.AssertNoError(t, err)
		if result.TotalItems != 2 {
			t.Errorf("expected 2 outgoing roots, got %d", result.TotalItems)
		}

		result, err = svc.ListTransactions(page, TransactionFilter{Recurring: &recurring})
		testutil.AssertNoError(t, err)
		if result.TotalItems != 1 {
			t.Errorf("expected 1 recurring root, got %d", result.TotalItems)
		}
	})
}

func TestFetchAllCashFlowRules(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	svc := NewTransactionService(db)

	_, err := svc.CreateTransaction(TransactionInput{
		Direction:   models.DirectionOutgoing,
		Description: "Split",
		Date:        day(2025, 8, 3),
		Splits: []SplitInput{
			{Description: "A", Amount: decimal.NewFromInt(10)},
			{Description: "B", Amount: decimal.NewFromInt(20)},
		},
	})
	testutil.AssertNoError(t, err)
	testutil.CreateTestTransaction(t, db, models.DirectionIncoming, 100, day(2025, 8, 5))

	rules, err := svc.FetchAllCashFlowRules()
	testutil.AssertNoError(t, err)

	// The snapshot contains roots and children alike.
	if len(rules) != 4 {
		t.Fatalf("expected 4 rows in the snapshot, got %d", len(rules))
	}
}
