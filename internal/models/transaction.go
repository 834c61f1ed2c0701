package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionKind is the direction of a transaction as entered by the user.
// The stored amount carries the sign: income is positive, expense negative.
type TransactionKind string

const (
	TransactionKindIncome  TransactionKind = "income"
	TransactionKindExpense TransactionKind = "expense"
)

// Transaction represents a single income or expense entry. Transactions are
// immutable once recorded.
type Transaction struct {
	Base
	WorkspaceID string          `gorm:"type:uuid;not null;index" json:"workspace_id"`
	CategoryID  string          `gorm:"type:uuid;not null;index" json:"category_id"`
	Amount      decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"amount"`
	Description string          `gorm:"not null" json:"description"`
	Date        time.Time       `gorm:"not null;index" json:"date"`
	IsEssential bool            `gorm:"not null" json:"is_essential"`

	// Relationships
	Category *Category `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
}

// Kind derives the transaction kind from the sign of the amount.
func (t *Transaction) Kind() TransactionKind {
	if t.Amount.IsNegative() {
		return TransactionKindExpense
	}
	return TransactionKindIncome
}

// SignedAmount applies the sign implied by kind to a positive magnitude.
func SignedAmount(kind TransactionKind, magnitude decimal.Decimal) decimal.Decimal {
	if kind == TransactionKindExpense {
		return magnitude.Abs().Neg()
	}
	return magnitude.Abs()
}
