package services

import (
	"time"

	"gorm.io/gorm"

	apperrors "apexfinance/internal/errors"
	"apexfinance/internal/models"
	"apexfinance/internal/reports"
	"apexfinance/internal/scoring"
)

// dashboardService computes the derived views of a workspace from a fresh
// snapshot of its data on every call.
type dashboardService struct {
	db           *gorm.DB
	cashFlowDays int
	nowFunc      func() time.Time
}

// NewDashboardService creates a new DashboardServicer. cashFlowDays is the
// window used when a caller does not ask for one.
func NewDashboardService(db *gorm.DB, cashFlowDays int) DashboardServicer {
	if cashFlowDays <= 0 {
		cashFlowDays = reports.DefaultCashFlowDays
	}
	return &dashboardService{db: db, cashFlowDays: cashFlowDays, nowFunc: time.Now}
}

// GetScore returns the Apex Score with its band and insights.
func (s *dashboardService) GetScore(workspaceID string) (*ScoreReport, error) {
	data, err := loadWorkspaceData(s.db, workspaceID)
	if err != nil {
		return nil, err
	}
	return scoreReport(data.workspace, data.transactions), nil
}

func scoreReport(ws *models.Workspace, txs []models.Transaction) *ScoreReport {
	mode := ws.Mode()
	totals := scoring.Sum(txs)
	score := scoring.ForWorkspace(ws, txs)
	return &ScoreReport{
		WorkspaceID: ws.ID,
		Mode:        mode,
		Score:       score,
		Band:        scoring.BandFor(score),
		Penalty:     totals.Penalty(mode).Round(2),
		Totals:      totals,
		Insights:    scoring.Insights(mode, score),
	}
}

// GetSummary returns the KPI cards.
func (s *dashboardService) GetSummary(workspaceID string) (*DashboardSummary, error) {
	data, err := loadWorkspaceData(s.db, workspaceID)
	if err != nil {
		return nil, err
	}

	var goalCount int64
	if err := s.db.Model(&models.FinancialGoal{}).Where("workspace_id = ?", workspaceID).Count(&goalCount).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	score := scoring.ForWorkspace(data.workspace, data.transactions)
	return &DashboardSummary{
		Summary:        reports.Summarize(data.transactions, s.nowFunc()),
		Score:          score,
		Band:           scoring.BandFor(score),
		EssentialRatio: reports.EssentialRatio(data.transactions),
		GoalCount:      goalCount,
	}, nil
}

// GetCashFlow returns the daily cash flow. days <= 0 uses the configured window.
func (s *dashboardService) GetCashFlow(workspaceID string, days int) ([]reports.CashFlowPoint, error) {
	if days <= 0 {
		days = s.cashFlowDays
	}
	if days > 366 {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "days cannot exceed 366")
	}

	data, err := loadWorkspaceData(s.db, workspaceID)
	if err != nil {
		return nil, err
	}
	return reports.CashFlow(data.transactions, s.nowFunc(), days), nil
}

// GetMonthlyReport returns income and expenses per month.
func (s *dashboardService) GetMonthlyReport(workspaceID string) (*MonthlyReport, error) {
	data, err := loadWorkspaceData(s.db, workspaceID)
	if err != nil {
		return nil, err
	}
	return &MonthlyReport{
		Months:         reports.Monthly(data.transactions),
		EssentialRatio: reports.EssentialRatio(data.transactions),
	}, nil
}

// GetExpenseDistribution returns the largest expense categories.
func (s *dashboardService) GetExpenseDistribution(workspaceID string, limit int) ([]reports.DistributionSlice, error) {
	data, err := loadWorkspaceData(s.db, workspaceID)
	if err != nil {
		return nil, err
	}
	return reports.ExpenseDistribution(data.transactions, data.categories, limit), nil
}
