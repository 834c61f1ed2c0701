package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// FinancialGoal is a savings target. CurrentAmount is maintained by hand and
// is not derived from transactions.
type FinancialGoal struct {
	Base
	WorkspaceID   string          `gorm:"type:uuid;not null;index" json:"workspace_id"`
	Name          string          `gorm:"not null" json:"name"`
	TargetAmount  decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"target_amount"`
	CurrentAmount decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"current_amount"`
	Deadline      *time.Time      `json:"deadline,omitempty"`
}
