package models

// CategoryType represents the type of category
type CategoryType string

const (
	CategoryTypeIncome  CategoryType = "income"
	CategoryTypeExpense CategoryType = "expense"
)

// Category labels transactions and debts. Categories are reference data:
// the API reads them when shaping the upcoming-transactions view but does
// not expose CRUD endpoints for them.
type Category struct {
	Base
	Name  string       `gorm:"not null" json:"name"`
	Type  CategoryType `gorm:"not null" json:"type"`
	Color string       `json:"color"`
	Icon  string       `json:"icon"`

	// Relationships
	Transactions []Transaction `gorm:"foreignKey:CategoryID" json:"transactions,omitempty"`
	Debts        []Debt        `gorm:"foreignKey:CategoryID" json:"debts,omitempty"`
}
