package services

import (
	"errors"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	apperrors "apexfinance/internal/errors"
	"apexfinance/internal/models"
	"apexfinance/internal/pagination"
	"apexfinance/internal/reports"
)

// goalService handles financial goal business logic.
type goalService struct {
	db *gorm.DB
}

// NewGoalService creates a new GoalServicer.
func NewGoalService(db *gorm.DB) GoalServicer {
	return &goalService{db: db}
}

func withProgress(goal models.FinancialGoal) GoalWithProgress {
	return GoalWithProgress{FinancialGoal: goal, Progress: reports.ForGoal(&goal)}
}

// CreateGoal creates a savings goal.
func (s *goalService) CreateGoal(
	workspaceID string,
	name string,
	targetAmount decimal.Decimal,
	currentAmount decimal.Decimal,
	deadline *time.Time,
) (*GoalWithProgress, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "goal name is required")
	}
	if !targetAmount.IsPositive() {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "target amount must be greater than zero")
	}
	if currentAmount.IsNegative() {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "current amount cannot be negative")
	}

	if _, err := findWorkspace(s.db, workspaceID); err != nil {
		return nil, err
	}

	goal := models.FinancialGoal{
		WorkspaceID:   workspaceID,
		Name:          name,
		TargetAmount:  targetAmount,
		CurrentAmount: currentAmount,
		Deadline:      deadline,
	}
	if err := s.db.Create(&goal).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	result := withProgress(goal)
	return &result, nil
}

// GetWorkspaceGoals lists goals by nearest deadline; goals without a deadline come last.
func (s *goalService) GetWorkspaceGoals(workspaceID string, page pagination.PageRequest) (*pagination.PageResponse[GoalWithProgress], error) {
	page.Defaults()

	if _, err := findWorkspace(s.db, workspaceID); err != nil {
		return nil, err
	}

	var totalItems int64
	base := s.db.Model(&models.FinancialGoal{}).Where("workspace_id = ?", workspaceID)
	if err := base.Count(&totalItems).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var goals []models.FinancialGoal
	if err := base.Order("deadline IS NULL, deadline, created_at").
		Scopes(pagination.Paginate(page)).
		Find(&goals).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	result := pagination.MapPage(
		pagination.NewPageResponse(goals, page.Page, page.PageSize, totalItems),
		withProgress,
	)
	return &result, nil
}

// GetGoalByID retrieves a goal by ID within a workspace
func (s *goalService) GetGoalByID(workspaceID, goalID string) (*GoalWithProgress, error) {
	goal, err := s.findGoal(workspaceID, goalID)
	if err != nil {
		return nil, err
	}
	result := withProgress(*goal)
	return &result, nil
}

// UpdateGoalProgress sets the amount saved so far.
func (s *goalService) UpdateGoalProgress(workspaceID, goalID string, currentAmount decimal.Decimal) (*GoalWithProgress, error) {
	if currentAmount.IsNegative() {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "current amount cannot be negative")
	}

	goal, err := s.findGoal(workspaceID, goalID)
	if err != nil {
		return nil, err
	}

	if err := s.db.Model(goal).Update("current_amount", currentAmount).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	goal.CurrentAmount = currentAmount

	result := withProgress(*goal)
	return &result, nil
}

func (s *goalService) findGoal(workspaceID, goalID string) (*models.FinancialGoal, error) {
	var goal models.FinancialGoal
	if err := s.db.Where("id = ? AND workspace_id = ?", goalID, workspaceID).First(&goal).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrGoalNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &goal, nil
}
