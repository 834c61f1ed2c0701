package models

import "github.com/shopspring/decimal"

// Category represents a transaction category. A category may hang under a
// parent in the same workspace, forming a hierarchy.
type Category struct {
	Base
	WorkspaceID   string           `gorm:"type:uuid;not null;index" json:"workspace_id"`
	ParentID      *string          `gorm:"type:uuid;index" json:"parent_id,omitempty"`
	Name          string           `gorm:"not null" json:"name"`
	MonthlyBudget *decimal.Decimal `gorm:"type:numeric(12,2)" json:"monthly_budget,omitempty"`
	IsProject     bool             `gorm:"not null" json:"is_project"`
}

// Budget returns the monthly budget, or zero when none is set.
func (c *Category) Budget() decimal.Decimal {
	if c.MonthlyBudget == nil {
		return decimal.Zero
	}
	return *c.MonthlyBudget
}
