package services

import (
	"time"

	"github.com/shopspring/decimal"

	"cashplan/internal/models"
	"cashplan/internal/pagination"
	"cashplan/internal/projection"
)

// SplitInput is one child line item supplied when creating or splitting a
// transaction.
type SplitInput struct {
	Description string
	Amount      decimal.Decimal
	Date        time.Time
	CategoryID  *string
}

// TransactionInput carries the user-editable fields of a root transaction.
// When Splits is non-empty the transaction is created as a split parent and
// its amount is the sum of the splits.
type TransactionInput struct {
	Direction      models.Direction
	Description    string
	Amount         decimal.Decimal
	Date           time.Time
	CategoryID     *string
	IsFixed        bool
	RepeatInterval models.RepeatInterval
	RepeatUntil    *time.Time
	Splits         []SplitInput
}

// TransactionFilter holds optional filter parameters for listing transactions.
type TransactionFilter struct {
	Direction  *models.Direction
	FromDate   *time.Time
	ToDate     *time.Time
	CategoryID *string
	Recurring  *bool
}

// TransactionServicer defines the contract for the cash-flow ledger.
type TransactionServicer interface {
	CreateTransaction(in TransactionInput) (*models.Transaction, error)
	GetTransactionByID(id string) (*models.Transaction, error)
	ListTransactions(page pagination.PageRequest, filter TransactionFilter) (*pagination.PageResponse[models.Transaction], error)
	UpdateTransaction(id string, in TransactionInput) (*models.Transaction, error)
	DeleteTransaction(id string) error
	AddSplit(parentID string, in SplitInput) (*models.Transaction, error)
	UpdateSplit(childID string, in SplitInput) (*models.Transaction, error)

	// FetchAllCashFlowRules returns the full snapshot (roots and split
	// children, both directions) the projection core consumes.
	FetchAllCashFlowRules() ([]models.Transaction, error)
}

// SettingsServicer defines the contract for scalar settings.
type SettingsServicer interface {
	InitialBalance() (decimal.Decimal, error)
	SetInitialBalance(balance decimal.Decimal) error
}

// DebtInput carries the user-editable fields of a debt.
type DebtInput struct {
	Description  string
	TotalAmount  decimal.Decimal
	InterestRate decimal.Decimal
	StartDate    time.Time
	EndDate      *time.Time
	CategoryID   *string
}

// DebtServicer defines the contract for debts and their payments.
type DebtServicer interface {
	CreateDebt(in DebtInput) (*models.Debt, error)
	GetDebtByID(id string) (*models.Debt, error)
	ListDebts(page pagination.PageRequest) (*pagination.PageResponse[models.Debt], error)
	UpdateDebt(id string, in DebtInput) (*models.Debt, error)
	DeleteDebt(id string) error

	// RecordPayment books an outgoing transaction against a debt and
	// decrements its remaining amount, clamped at zero.
	RecordPayment(debtID string, amount decimal.Decimal, date time.Time, description string) (*models.DebtPayment, error)
	TotalRemainingDebt() (decimal.Decimal, error)
}

// UpcomingTransactions is the per-occurrence detail view of a projection
// window.
type UpcomingTransactions struct {
	WindowStart time.Time               `json:"window_start"`
	WindowDays  int                     `json:"window_days"`
	Entries     []projection.Occurrence `json:"entries"`
	Warnings    []projection.Warning    `json:"warnings,omitempty"`
}

// DashboardServicer projects the ledger over a window. All three views run
// the same projection engine over one snapshot per call.
type DashboardServicer interface {
	Timeline(windowDays int) (*projection.Timeline, error)
	Stats(windowDays int) (*projection.Stats, error)
	UpcomingTransactions(windowDays int) (*UpcomingTransactions, error)
}
