package services

import (
	"time"

	"gorm.io/gorm"

	apperrors "apexfinance/internal/errors"
	"apexfinance/internal/logger"
	"apexfinance/internal/models"
	"apexfinance/internal/pagination"
	"apexfinance/internal/reports"
	"apexfinance/internal/scoring"
)

// scoreSnapshotService handles score snapshot operations.
type scoreSnapshotService struct {
	db *gorm.DB
}

// NewScoreSnapshotService creates a new ScoreSnapshotServicer.
func NewScoreSnapshotService(db *gorm.DB) ScoreSnapshotServicer {
	return &scoreSnapshotService{db: db}
}

// RecordAllSnapshots stores a snapshot for every workspace. A failing
// workspace is logged and skipped; the count covers successful ones.
func (s *scoreSnapshotService) RecordAllSnapshots(recordedAt time.Time) (int, error) {
	var workspaceIDs []string
	if err := s.db.Model(&models.Workspace{}).Order("created_at, id").Pluck("id", &workspaceIDs).Error; err != nil {
		return 0, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	count := 0
	for _, workspaceID := range workspaceIDs {
		if _, err := s.RecordSnapshot(workspaceID, recordedAt); err != nil {
			logger.Get().Errorw("failed to record score snapshot", "workspace_id", workspaceID, "error", err)
			continue
		}
		count++
	}
	return count, nil
}

// RecordSnapshot computes and stores a workspace's score at recordedAt,
// replacing any snapshot already recorded for that instant.
func (s *scoreSnapshotService) RecordSnapshot(workspaceID string, recordedAt time.Time) (*models.ScoreSnapshot, error) {
	data, err := loadWorkspaceData(s.db, workspaceID)
	if err != nil {
		return nil, err
	}

	recordedAt = recordedAt.UTC()
	summary := reports.Summarize(data.transactions, recordedAt)
	snapshot := &models.ScoreSnapshot{
		WorkspaceID: workspaceID,
		RecordedAt:  recordedAt,
		Score:       scoring.ForWorkspace(data.workspace, data.transactions),
		Income:      summary.TotalIncome,
		Expense:     summary.TotalExpense,
		Balance:     summary.Balance,
	}

	var existing models.ScoreSnapshot
	result := s.db.Where("workspace_id = ? AND recorded_at = ?", workspaceID, recordedAt).Limit(1).Find(&existing)
	if result.Error != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, result.Error)
	}
	if result.RowsAffected > 0 {
		if err := s.db.Model(&existing).Updates(map[string]interface{}{
			"score":   snapshot.Score,
			"income":  snapshot.Income,
			"expense": snapshot.Expense,
			"balance": snapshot.Balance,
		}).Error; err != nil {
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		snapshot.ID = existing.ID
		return snapshot, nil
	}

	if err := s.db.Create(snapshot).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return snapshot, nil
}

// GetSnapshots returns paginated snapshots for a workspace within a date range.
func (s *scoreSnapshotService) GetSnapshots(
	workspaceID string,
	from, to time.Time,
	page pagination.PageRequest,
) (*pagination.PageResponse[models.ScoreSnapshot], error) {
	page.Defaults()

	if _, err := findWorkspace(s.db, workspaceID); err != nil {
		return nil, err
	}

	var totalItems int64
	base := s.db.Model(&models.ScoreSnapshot{}).
		Where("workspace_id = ? AND recorded_at >= ? AND recorded_at <= ?", workspaceID, from.UTC(), to.UTC())
	if err := base.Count(&totalItems).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var snapshots []models.ScoreSnapshot
	if err := base.Order("recorded_at DESC").Scopes(pagination.Paginate(page)).Find(&snapshots).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	result := pagination.NewPageResponse(snapshots, page.Page, page.PageSize, totalItems)
	return &result, nil
}
