package testutil_test

import (
	"testing"

	"apexfinance/internal/errors"
	"apexfinance/internal/testutil"
)

func TestSetupTestDB(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)

	var count int64
	for _, table := range []string{"workspaces", "categories", "transactions", "financial_goals", "score_snapshots", "audit_logs"} {
		if err := db.Table(table).Count(&count).Error; err != nil {
			t.Errorf("table %q should exist after migration: %v", table, err)
		}
	}
}

func TestSetupTestDB_Isolated(t *testing.T) {
	db1 := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db1)
	db2 := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db2)

	testutil.CreateTestWorkspace(t, db1)

	var count int64
	if err := db2.Table("workspaces").Count(&count).Error; err != nil {
		t.Fatalf("count failed: %v", err)
	}
	if count != 0 {
		t.Errorf("expected second database to be empty, got %d workspaces", count)
	}
}

func TestFixtures(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)

	ws := testutil.CreateTestWorkspace(t, db)
	if ws.ID == "" {
		t.Fatal("workspace should have an ID")
	}
	if ws.IsProfessional {
		t.Error("expected personal workspace")
	}

	parent := testutil.CreateTestCategory(t, db, ws.ID)
	child := testutil.CreateTestCategoryWithParent(t, db, ws.ID, "Child", &parent.ID)
	if child.ParentID == nil || *child.ParentID != parent.ID {
		t.Errorf("expected parent %s, got %v", parent.ID, child.ParentID)
	}

	tx := testutil.CreateTestTransaction(t, db, ws.ID, child.ID, "-12.50", false)
	if tx.Amount.String() != "-12.5" {
		t.Errorf("expected amount -12.5, got %s", tx.Amount)
	}

	goal := testutil.CreateTestGoal(t, db, ws.ID, "1000", "250")
	if goal.ID == "" {
		t.Fatal("goal should have an ID")
	}
}

func TestAssertAppError(t *testing.T) {
	testutil.AssertAppError(t, errors.ErrWorkspaceNotFound, "WORKSPACE_NOT_FOUND")
	testutil.AssertAppError(t, errors.Wrap(errors.ErrInternalServer, nil), "INTERNAL_ERROR")
}
