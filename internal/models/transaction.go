package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Direction represents the direction of a cash flow.
type Direction string

const (
	DirectionIncoming Direction = "incoming"
	DirectionOutgoing Direction = "outgoing"
)

// RepeatInterval represents how often a recurring transaction repeats.
type RepeatInterval string

const (
	RepeatNone      RepeatInterval = "none"
	RepeatDaily     RepeatInterval = "daily"
	RepeatWeekly    RepeatInterval = "weekly"
	RepeatMonthly   RepeatInterval = "monthly"
	RepeatQuarterly RepeatInterval = "quarterly"
	RepeatYearly    RepeatInterval = "yearly"
)

// Transaction represents a cash-flow entry: a one-time payment, a recurring
// rule, a split parent, or a split child line item.
//
// A transaction with a non-nil ParentID is a split child: it carries its own
// amount and date but never a recurrence of its own. Recurrence (IsFixed plus
// RepeatInterval) is only meaningful on root transactions. The amount of a
// split parent is kept equal to the sum of its children on every write; on
// read the children are authoritative.
type Transaction struct {
	Base
	Direction      Direction       `gorm:"not null" json:"direction"`
	Description    string          `gorm:"not null" json:"description"`
	Amount         decimal.Decimal `gorm:"type:numeric(14,2);not null" json:"amount"`
	Date           time.Time       `gorm:"not null" json:"date"`
	CategoryID     *string         `gorm:"type:uuid" json:"category_id,omitempty"`
	IsFixed        bool            `gorm:"not null;default:false" json:"is_fixed"`
	RepeatInterval RepeatInterval  `gorm:"not null;default:'none'" json:"repeat_interval"`
	RepeatUntil    *time.Time      `json:"repeat_until,omitempty"`
	IsSplit        bool            `gorm:"not null;default:false" json:"is_split"`
	ParentID       *string         `gorm:"type:uuid" json:"parent_id,omitempty"`

	// Relationships
	Parent   *Transaction  `gorm:"foreignKey:ParentID" json:"-"`
	Children []Transaction `gorm:"foreignKey:ParentID" json:"children,omitempty"`
	Category *Category     `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
}

// IsRoot reports whether the transaction has no split parent.
func (t *Transaction) IsRoot() bool {
	return t.ParentID == nil
}

// Recurs reports whether the transaction is a recurring rule that expands
// into multiple occurrences.
func (t *Transaction) Recurs() bool {
	return t.IsFixed && t.RepeatInterval != RepeatNone && t.RepeatInterval != ""
}
