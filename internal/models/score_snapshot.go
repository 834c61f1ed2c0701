package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ScoreSnapshot is a point-in-time record of a workspace's Apex Score and
// cash position. There is one row per workspace and instant; recording the
// same instant again overwrites the figures in place. It has no UpdatedAt,
// so it does not embed Base.
type ScoreSnapshot struct {
	ID          string          `gorm:"type:uuid;primaryKey" json:"id"`
	WorkspaceID string          `gorm:"type:uuid;not null;uniqueIndex:uq_score_snapshots_workspace_time" json:"workspace_id"`
	RecordedAt  time.Time       `gorm:"not null;uniqueIndex:uq_score_snapshots_workspace_time" json:"recorded_at"`
	Score       int             `gorm:"not null" json:"score"`
	Income      decimal.Decimal `gorm:"type:numeric(14,2);not null" json:"income"`
	Expense     decimal.Decimal `gorm:"type:numeric(14,2);not null" json:"expense"`
	Balance     decimal.Decimal `gorm:"type:numeric(14,2);not null" json:"balance"`
}

// BeforeCreate hook generates a UUIDv7 for new records
func (s *ScoreSnapshot) BeforeCreate(tx *gorm.DB) error {
	if s.ID == "" {
		s.ID = NewID()
	}
	return nil
}
