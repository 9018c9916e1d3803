package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Debt represents an outstanding liability. RemainingAmount is only mutated
// as a side effect of recorded payments and stays within [0, TotalAmount].
type Debt struct {
	Base
	Description     string          `gorm:"not null" json:"description"`
	TotalAmount     decimal.Decimal `gorm:"type:numeric(14,2);not null" json:"total_amount"`
	RemainingAmount decimal.Decimal `gorm:"type:numeric(14,2);not null" json:"remaining_amount"`
	InterestRate    decimal.Decimal `gorm:"type:numeric(6,3);not null;default:0" json:"interest_rate"`
	StartDate       time.Time       `gorm:"not null" json:"start_date"`
	EndDate         *time.Time      `json:"end_date,omitempty"`
	CategoryID      *string         `gorm:"type:uuid" json:"category_id,omitempty"`

	// Relationships
	Category *Category     `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
	Payments []DebtPayment `gorm:"foreignKey:DebtID" json:"payments,omitempty"`
}

// DebtPayment links a debt to the outgoing transaction that paid it down.
type DebtPayment struct {
	Base
	DebtID        string          `gorm:"type:uuid;not null" json:"debt_id"`
	TransactionID string          `gorm:"type:uuid;not null" json:"transaction_id"`
	Amount        decimal.Decimal `gorm:"type:numeric(14,2);not null" json:"amount"`
	Date          time.Time       `gorm:"not null" json:"date"`

	// Relationships
	Debt        *Debt        `gorm:"foreignKey:DebtID" json:"-"`
	Transaction *Transaction `gorm:"foreignKey:TransactionID" json:"transaction,omitempty"`
}
