package services

import (
	"testing"

	"apexfinance/internal/pagination"
	"apexfinance/internal/testutil"
)

func TestCreateWorkspace(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewWorkspaceService(db)

		ws, err := svc.CreateWorkspace("Startup", true, "eur")
		testutil.AssertNoError(t, err)

		if ws.ID == "" {
			t.Fatal("expected workspace ID to be set")
		}
		if !ws.IsProfessional {
			t.Error("expected professional workspace")
		}
		if ws.Currency != "EUR" {
			t.Errorf("expected currency EUR, got %s", ws.Currency)
		}
	})

	t.Run("default_currency", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewWorkspaceService(db)

		ws, err := svc.CreateWorkspace("Home", false, "")
		testutil.AssertNoError(t, err)

		if ws.Currency != "USD" {
			t.Errorf("expected currency USD, got %s", ws.Currency)
		}
	})

	t.Run("empty_name", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewWorkspaceService(db)

		_, err := svc.CreateWorkspace("   ", false, "USD")
		testutil.AssertAppError(t, err, "INVALID_INPUT")
	})
}

func TestGetWorkspaces(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	svc := NewWorkspaceService(db)

	testutil.CreateTestWorkspace(t, db)
	testutil.CreateTestProfessionalWorkspace(t, db)
	testutil.CreateTestWorkspace(t, db)

	result, err := svc.GetWorkspaces(pagination.PageRequest{Page: 1, PageSize: 2})
	testutil.AssertNoError(t, err)

	if result.TotalItems != 3 {
		t.Errorf("expected 3 total items, got %d", result.TotalItems)
	}
	if len(result.Data) != 2 {
		t.Errorf("expected 2 items on page, got %d", len(result.Data))
	}
	if result.TotalPages != 2 {
		t.Errorf("expected 2 pages, got %d", result.TotalPages)
	}

	all, err := svc.GetAllWorkspaces()
	testutil.AssertNoError(t, err)
	if len(all) != 3 {
		t.Errorf("expected 3 workspaces, got %d", len(all))
	}
}

func TestGetWorkspaceByID(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	svc := NewWorkspaceService(db)
	ws := testutil.CreateTestWorkspace(t, db)

	t.Run("found", func(t *testing.T) {
		got, err := svc.GetWorkspaceByID(ws.ID)
		testutil.AssertNoError(t, err)
		if got.Name != ws.Name {
			t.Errorf("expected name %s, got %s", ws.Name, got.Name)
		}
	})

	t.Run("not_found", func(t *testing.T) {
		_, err := svc.GetWorkspaceByID("00000000-0000-0000-0000-000000000000")
		testutil.AssertAppError(t, err, "WORKSPACE_NOT_FOUND")
	})
}
