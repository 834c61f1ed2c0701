package testutil

import (
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"apexfinance/internal/models"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// counter provides unique values across fixtures within a test run.
var counter atomic.Int64

func nextID() int64 {
	return counter.Add(1)
}

// CreateTestWorkspace creates a personal workspace with a unique name.
func CreateTestWorkspace(t *testing.T, db *gorm.DB) *models.Workspace {
	t.Helper()
	return createWorkspace(t, db, false)
}

// CreateTestProfessionalWorkspace creates a professional workspace.
func CreateTestProfessionalWorkspace(t *testing.T, db *gorm.DB) *models.Workspace {
	t.Helper()
	return createWorkspace(t, db, true)
}

func createWorkspace(t *testing.T, db *gorm.DB, professional bool) *models.Workspace {
	t.Helper()

	ws := &models.Workspace{
		Name:           fmt.Sprintf("Workspace %d", nextID()),
		IsProfessional: professional,
		Currency:       "USD",
	}
	if err := db.Create(ws).Error; err != nil {
		t.Fatalf("failed to create test workspace: %v", err)
	}
	return ws
}

// CreateTestCategory creates a root category with a unique name.
func CreateTestCategory(t *testing.T, db *gorm.DB, workspaceID string) *models.Category {
	t.Helper()
	return CreateTestCategoryWithParent(t, db, workspaceID, fmt.Sprintf("Category %d", nextID()), nil)
}

// CreateTestCategoryWithParent creates a category with the given name under parentID.
func CreateTestCategoryWithParent(t *testing.T, db *gorm.DB, workspaceID, name string, parentID *string) *models.Category {
	t.Helper()

	category := &models.Category{
		WorkspaceID: workspaceID,
		Name:        name,
		ParentID:    parentID,
	}
	if err := db.Create(category).Error; err != nil {
		t.Fatalf("failed to create test category: %v", err)
	}
	return category
}

// CreateTestTransaction records a signed amount against a category, dated now.
func CreateTestTransaction(t *testing.T, db *gorm.DB, workspaceID, categoryID, amount string, essential bool) *models.Transaction {
	t.Helper()
	return CreateTestTransactionAt(t, db, workspaceID, categoryID, amount, essential, time.Now().UTC())
}

// CreateTestTransactionAt records a signed amount against a category at date.
func CreateTestTransactionAt(t *testing.T, db *gorm.DB, workspaceID, categoryID, amount string, essential bool, date time.Time) *models.Transaction {
	t.Helper()

	tx := &models.Transaction{
		WorkspaceID: workspaceID,
		CategoryID:  categoryID,
		Amount:      decimal.RequireFromString(amount),
		Description: fmt.Sprintf("Transaction %d", nextID()),
		Date:        date,
		IsEssential: essential,
	}
	if err := db.Create(tx).Error; err != nil {
		t.Fatalf("failed to create test transaction: %v", err)
	}
	return tx
}

// CreateTestGoal creates a goal with the given target and current amounts.
func CreateTestGoal(t *testing.T, db *gorm.DB, workspaceID, target, current string) *models.FinancialGoal {
	t.Helper()

	goal := &models.FinancialGoal{
		WorkspaceID:   workspaceID,
		Name:          fmt.Sprintf("Goal %d", nextID()),
		TargetAmount:  decimal.RequireFromString(target),
		CurrentAmount: decimal.RequireFromString(current),
	}
	if err := db.Create(goal).Error; err != nil {
		t.Fatalf("failed to create test goal: %v", err)
	}
	return goal
}
