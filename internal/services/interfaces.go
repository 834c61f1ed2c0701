package services

import (
	"time"

	"github.com/shopspring/decimal"

	"apexfinance/internal/hierarchy"
	"apexfinance/internal/importer"
	"apexfinance/internal/models"
	"apexfinance/internal/pagination"
	"apexfinance/internal/reports"
	"apexfinance/internal/scoring"
)

// WorkspaceServicer defines the contract for workspace-related business logic.
type WorkspaceServicer interface {
	CreateWorkspace(name string, isProfessional bool, currency string) (*models.Workspace, error)
	GetWorkspaces(page pagination.PageRequest) (*pagination.PageResponse[models.Workspace], error)
	GetAllWorkspaces() ([]models.Workspace, error)
	GetWorkspaceByID(workspaceID string) (*models.Workspace, error)
}

// CategoryUpdate holds the optional changes accepted by UpdateCategory.
// ParentID set to an empty string moves the category to the root.
type CategoryUpdate struct {
	Name          *string
	ParentID      *string
	MonthlyBudget *decimal.Decimal
	ClearBudget   bool
	IsProject     *bool
}

// CategoryTreeNode is a category with its position in the hierarchy and
// the amounts rolled up from its subtree.
type CategoryTreeNode struct {
	ID            string              `json:"id"`
	ParentID      *string             `json:"parent_id,omitempty"`
	Name          string              `json:"name"`
	FullPath      string              `json:"full_path"`
	Level         int                 `json:"level"`
	IsProject     bool                `json:"is_project"`
	MonthlyBudget *decimal.Decimal    `json:"monthly_budget,omitempty"`
	Total         decimal.Decimal     `json:"total"`
	BudgetUsage   decimal.Decimal     `json:"budget_usage"`
	Children      []*CategoryTreeNode `json:"children"`
}

// CategoryTree is the rendered hierarchy of a workspace.
type CategoryTree struct {
	Roots  []*CategoryTreeNode `json:"roots"`
	Stats  hierarchy.Stats     `json:"stats"`
	Cycles []string            `json:"cycles,omitempty"`
}

// CategoryServicer defines the contract for category-related business logic.
type CategoryServicer interface {
	CreateCategory(workspaceID, name string, parentID *string, monthlyBudget *decimal.Decimal, isProject bool) (*models.Category, error)
	GetWorkspaceCategories(workspaceID string, page pagination.PageRequest) (*pagination.PageResponse[models.Category], error)
	GetCategoryByID(workspaceID, categoryID string) (*models.Category, error)
	UpdateCategory(workspaceID, categoryID string, update CategoryUpdate) (*models.Category, error)
	GetCategoryTree(workspaceID string, canonical bool) (*CategoryTree, error)
}

// TransactionFilter holds optional filter parameters for listing transactions.
// Amount bounds apply to the magnitude of the amount.
type TransactionFilter struct {
	FromDate           *time.Time
	ToDate             *time.Time
	Kind               *models.TransactionKind
	CategoryID         *string
	IncludeDescendants bool
	MinAmount          *decimal.Decimal
	MaxAmount          *decimal.Decimal
	IsEssential        *bool
}

// TransactionServicer defines the contract for transaction-related business logic.
type TransactionServicer interface {
	CreateTransaction(workspaceID, categoryID string, kind models.TransactionKind, amount decimal.Decimal, description string, date time.Time, isEssential *bool) (*models.Transaction, error)
	GetWorkspaceTransactions(workspaceID string, page pagination.PageRequest, filter TransactionFilter) (*pagination.PageResponse[models.Transaction], error)
	GetTransactionByID(workspaceID, transactionID string) (*models.Transaction, error)
	ImportTransactions(workspaceID string, records []importer.Record) (int, error)
}

// GoalWithProgress is a goal together with its completion.
type GoalWithProgress struct {
	models.FinancialGoal
	Progress reports.GoalProgress `json:"progress"`
}

// GoalServicer defines the contract for financial goal business logic.
type GoalServicer interface {
	CreateGoal(workspaceID, name string, targetAmount, currentAmount decimal.Decimal, deadline *time.Time) (*GoalWithProgress, error)
	GetWorkspaceGoals(workspaceID string, page pagination.PageRequest) (*pagination.PageResponse[GoalWithProgress], error)
	GetGoalByID(workspaceID, goalID string) (*GoalWithProgress, error)
	UpdateGoalProgress(workspaceID, goalID string, currentAmount decimal.Decimal) (*GoalWithProgress, error)
}

// ScoreReport is the Apex Score of a workspace with its explanation.
type ScoreReport struct {
	WorkspaceID string               `json:"workspace_id"`
	Mode        models.WorkspaceMode `json:"mode"`
	Score       int                  `json:"score"`
	Band        scoring.Band         `json:"band"`
	Penalty     decimal.Decimal      `json:"penalty"`
	Totals      scoring.Totals       `json:"totals"`
	Insights    []scoring.Insight    `json:"insights"`
}

// DashboardSummary holds the KPI cards of a workspace.
type DashboardSummary struct {
	reports.Summary
	Score          int          `json:"score"`
	Band           scoring.Band `json:"band"`
	EssentialRatio int          `json:"essential_ratio"`
	GoalCount      int64        `json:"goal_count"`
}

// MonthlyReport holds the monthly income/expense comparison.
type MonthlyReport struct {
	Months         []reports.MonthlyPoint `json:"months"`
	EssentialRatio int                    `json:"essential_ratio"`
}

// DashboardServicer defines the contract for the derived, read-only views
// of a workspace.
type DashboardServicer interface {
	GetScore(workspaceID string) (*ScoreReport, error)
	GetSummary(workspaceID string) (*DashboardSummary, error)
	GetCashFlow(workspaceID string, days int) ([]reports.CashFlowPoint, error)
	GetMonthlyReport(workspaceID string) (*MonthlyReport, error)
	GetExpenseDistribution(workspaceID string, limit int) ([]reports.DistributionSlice, error)
}

// ScoreSnapshotServicer defines the contract for score snapshot operations.
type ScoreSnapshotServicer interface {
	RecordSnapshot(workspaceID string, recordedAt time.Time) (*models.ScoreSnapshot, error)
	RecordAllSnapshots(recordedAt time.Time) (int, error)
	GetSnapshots(workspaceID string, from, to time.Time, page pagination.PageRequest) (*pagination.PageResponse[models.ScoreSnapshot], error)
}

// AuditServicer defines the contract for audit logging.
type AuditServicer interface {
	Log(workspaceID, action, resourceType, resourceID, ipAddress string, changes map[string]interface{})
}
