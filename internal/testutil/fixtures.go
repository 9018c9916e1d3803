package testutil

import (
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"cashplan/internal/models"
)

// counter provides unique values across fixtures within a test run.
var counter atomic.Int64

func nextID() int64 {
	return counter.Add(1)
}

// CreateTestCategory creates a category of the given type.
func CreateTestCategory(t *testing.T, db *gorm.DB, categoryType models.CategoryType) *models.Category {
	t.Helper()

	category := &models.Category{
		Name: fmt.Sprintf("Test Category %d", nextID()),
		Type: categoryType,
	}
	if err := db.Create(category).Error; err != nil {
		t.Fatalf("failed to create test category: %v", err)
	}
	return category
}

// CreateTestTransaction creates a one-time transaction with the given
// direction and amount.
func CreateTestTransaction(t *testing.T, db *gorm.DB, direction models.Direction, amount int64, date time.Time) *models.Transaction {
	t.Helper()

	tx := &models.Transaction{
		Direction:      direction,
		Description:    fmt.Sprintf("Test Transaction %d", nextID()),
		Amount:         decimal.NewFromInt(amount),
		Date:           date,
		RepeatInterval: models.RepeatNone,
	}
	if err := db.Create(tx).Error; err != nil {
		t.Fatalf("failed to create test transaction: %v", err)
	}
	return tx
}

// CreateTestRecurringTransaction creates a recurring rule with the given
// interval, anchored on date.
func CreateTestRecurringTransaction(t *testing.T, db *gorm.DB, direction models.Direction, amount int64, date time.Time, interval models.RepeatInterval) *models.Transaction {
	t.Helper()

	tx := &models.Transaction{
		Direction:      direction,
		Description:    fmt.Sprintf("Test Recurring %d", nextID()),
		Amount:         decimal.NewFromInt(amount),
		Date:           date,
		IsFixed:        true,
		RepeatInterval: interval,
	}
	if err := db.Create(tx).Error; err != nil {
		t.Fatalf("failed to create test recurring transaction: %v", err)
	}
	return tx
}

// CreateTestDebt creates a debt with the given total, fully outstanding.
func CreateTestDebt(t *testing.T, db *gorm.DB, total int64) *models.Debt {
	t.Helper()

	amount := decimal.NewFromInt(total)
	debt := &models.Debt{
		Description:     fmt.Sprintf("Test Debt %d", nextID()),
		TotalAmount:     amount,
		RemainingAmount: amount,
		InterestRate:    decimal.Zero,
		StartDate:       time.Now().Truncate(24 * time.Hour),
	}
	if err := db.Create(debt).Error; err != nil {
		t.Fatalf("failed to create test debt: %v", err)
	}
	return debt
}

// SetTestInitialBalance stores the initial balance setting.
func SetTestInitialBalance(t *testing.T, db *gorm.DB, balance int64) {
	t.Helper()

	setting := &models.Setting{
		Key:   models.SettingInitialBalance,
		Value: decimal.NewFromInt(balance).StringFixed(2),
	}
	if err := db.Save(setting).Error; err != nil {
		t.Fatalf("failed to set test initial balance: %v", err)
	}
}
