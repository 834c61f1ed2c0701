package services

import (
	"errors"
	"strings"

	"gorm.io/gorm"

	apperrors "apexfinance/internal/errors"
	"apexfinance/internal/models"
	"apexfinance/internal/pagination"
)

const defaultCurrency = "USD"

// workspaceService handles workspace-related business logic.
type workspaceService struct {
	db *gorm.DB
}

// NewWorkspaceService creates a new WorkspaceServicer.
func NewWorkspaceService(db *gorm.DB) WorkspaceServicer {
	return &workspaceService{db: db}
}

// CreateWorkspace creates a new workspace
func (s *workspaceService) CreateWorkspace(name string, isProfessional bool, currency string) (*models.Workspace, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "workspace name is required")
	}
	if currency == "" {
		currency = defaultCurrency
	}

	workspace := &models.Workspace{
		Name:           name,
		IsProfessional: isProfessional,
		Currency:       strings.ToUpper(currency),
	}
	if err := s.db.Create(workspace).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return workspace, nil
}

// GetWorkspaces retrieves a paginated list of workspaces, newest first.
func (s *workspaceService) GetWorkspaces(page pagination.PageRequest) (*pagination.PageResponse[models.Workspace], error) {
	page.Defaults()

	var totalItems int64
	base := s.db.Model(&models.Workspace{})
	if err := base.Count(&totalItems).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var workspaces []models.Workspace
	if err := base.Order("created_at DESC, id DESC").Scopes(pagination.Paginate(page)).Find(&workspaces).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	result := pagination.NewPageResponse(workspaces, page.Page, page.PageSize, totalItems)
	return &result, nil
}

// GetAllWorkspaces returns every workspace. Used by batch jobs.
func (s *workspaceService) GetAllWorkspaces() ([]models.Workspace, error) {
	var workspaces []models.Workspace
	if err := s.db.Order("created_at, id").Find(&workspaces).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return workspaces, nil
}

// GetWorkspaceByID retrieves a workspace by ID
func (s *workspaceService) GetWorkspaceByID(workspaceID string) (*models.Workspace, error) {
	return findWorkspace(s.db, workspaceID)
}

func findWorkspace(db *gorm.DB, workspaceID string) (*models.Workspace, error) {
	var workspace models.Workspace
	if err := db.Where("id = ?", workspaceID).First(&workspace).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrWorkspaceNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &workspace, nil
}
