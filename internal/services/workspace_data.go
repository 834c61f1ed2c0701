package services

import (
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"

	apperrors "apexfinance/internal/errors"
	"apexfinance/internal/hierarchy"
	"apexfinance/internal/logger"
	"apexfinance/internal/models"
)

// workspaceData is an immutable snapshot of everything the derived views of
// a workspace are computed from.
type workspaceData struct {
	workspace    *models.Workspace
	categories   []models.Category
	transactions []models.Transaction
}

// loadWorkspaceData fetches the workspace, its categories and its
// transactions concurrently. Categories come back in creation order and
// transactions newest first.
func loadWorkspaceData(db *gorm.DB, workspaceID string) (*workspaceData, error) {
	data := &workspaceData{}

	var g errgroup.Group
	g.Go(func() error {
		ws, err := findWorkspace(db, workspaceID)
		if err != nil {
			return err
		}
		data.workspace = ws
		return nil
	})
	g.Go(func() error {
		if err := db.Where("workspace_id = ?", workspaceID).
			Order("created_at, id").
			Find(&data.categories).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		return nil
	})
	g.Go(func() error {
		if err := db.Where("workspace_id = ?", workspaceID).
			Order("date DESC, id DESC").
			Find(&data.transactions).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return data, nil
}

// buildForest arranges the categories and logs any structural problem. The
// forest is always usable.
func buildForest(workspaceID string, categories []models.Category, opts ...hierarchy.BuildOption) *hierarchy.Forest {
	forest := hierarchy.Build(categories, opts...)
	if err := forest.Err(); err != nil {
		logger.Get().Warnw("category hierarchy is inconsistent",
			"workspace_id", workspaceID,
			"error", err,
			"promoted", forest.Cycles,
		)
	}
	return forest
}
