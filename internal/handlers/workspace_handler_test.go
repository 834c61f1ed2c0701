package handlers

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"

	apperrors "apexfinance/internal/errors"
	"apexfinance/internal/models"
	"apexfinance/internal/pagination"
	"apexfinance/internal/services"
)

// --- mock workspace service ---

type mockWorkspaceService struct {
	createWorkspaceFn  func(name string, isProfessional bool, currency string) (*models.Workspace, error)
	getWorkspacesFn    func(page pagination.PageRequest) (*pagination.PageResponse[models.Workspace], error)
	getWorkspaceByIDFn func(id string) (*models.Workspace, error)
}

var _ services.WorkspaceServicer = (*mockWorkspaceService)(nil)

func (m *mockWorkspaceService) CreateWorkspace(name string, isProfessional bool, currency string) (*models.Workspace, error) {
	if m.createWorkspaceFn != nil {
		return m.createWorkspaceFn(name, isProfessional, currency)
	}
	return &models.Workspace{Base: models.Base{ID: testWorkspaceID}, Name: name}, nil
}

func (m *mockWorkspaceService) GetWorkspaces(page pagination.PageRequest) (*pagination.PageResponse[models.Workspace], error) {
	if m.getWorkspacesFn != nil {
		return m.getWorkspacesFn(page)
	}
	resp := pagination.NewPageResponse([]models.Workspace{}, 1, 20, 0)
	return &resp, nil
}

func (m *mockWorkspaceService) GetAllWorkspaces() ([]models.Workspace, error) {
	return nil, nil
}

func (m *mockWorkspaceService) GetWorkspaceByID(id string) (*models.Workspace, error) {
	if m.getWorkspaceByIDFn != nil {
		return m.getWorkspaceByIDFn(id)
	}
	return nil, apperrors.ErrWorkspaceNotFound
}

// --- router setup ---

func setupWorkspaceRouter(handler *WorkspaceHandler) *gin.Engine {
	r := gin.New()
	r.POST("/workspaces", handler.CreateWorkspace)
	r.GET("/workspaces", handler.GetWorkspaces)
	scoped := r.Group("/workspaces/:id", injectWorkspaceID(testWorkspaceID))
	scoped.GET("", handler.GetWorkspace)
	return r
}

// --- tests ---

func TestWorkspaceHandler_CreateWorkspace(t *testing.T) {
	t.Run("returns 201 on success", func(t *testing.T) {
		var gotProfessional bool
		var gotCurrency string
		svc := &mockWorkspaceService{
			createWorkspaceFn: func(name string, isProfessional bool, currency string) (*models.Workspace, error) {
				gotProfessional, gotCurrency = isProfessional, currency
				return &models.Workspace{
					Base:           models.Base{ID: testWorkspaceID},
					Name:           name,
					IsProfessional: isProfessional,
					Currency:       currency,
				}, nil
			},
		}
		audit := &mockAuditService{}
		r := setupWorkspaceRouter(NewWorkspaceHandler(svc, audit))

		rec := doRequest(r, "POST", "/workspaces", `{"name":"Studio","is_professional":true,"currency":"EUR"}`)

		if rec.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
		}
		if !gotProfessional || gotCurrency != "EUR" {
			t.Errorf("unexpected service args: professional=%v currency=%q", gotProfessional, gotCurrency)
		}
		ws := parseJSON(t, rec)["workspace"].(map[string]interface{})
		if ws["name"] != "Studio" {
			t.Errorf("expected Studio, got %v", ws["name"])
		}
		if len(audit.calls) != 1 || audit.calls[0].action != "CREATE_WORKSPACE" {
			t.Errorf("expected one CREATE_WORKSPACE audit entry, got %+v", audit.calls)
		}
	})

	t.Run("returns 400 on missing name", func(t *testing.T) {
		r := setupWorkspaceRouter(NewWorkspaceHandler(&mockWorkspaceService{}, &mockAuditService{}))

		rec := doRequest(r, "POST", "/workspaces", `{"is_professional":false}`)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
		assertErrorCode(t, parseJSON(t, rec), "INVALID_INPUT")
	})

	t.Run("returns 400 on unknown currency", func(t *testing.T) {
		r := setupWorkspaceRouter(NewWorkspaceHandler(&mockWorkspaceService{}, &mockAuditService{}))

		rec := doRequest(r, "POST", "/workspaces", `{"name":"Home","currency":"XXX"}`)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})
}

func TestWorkspaceHandler_GetWorkspaces(t *testing.T) {
	svc := &mockWorkspaceService{
		getWorkspacesFn: func(_ pagination.PageRequest) (*pagination.PageResponse[models.Workspace], error) {
			resp := pagination.NewPageResponse([]models.Workspace{
				{Base: models.Base{ID: testWorkspaceID}, Name: "Personal"},
				{Base: models.Base{ID: testRecordID}, Name: "Studio", IsProfessional: true},
			}, 1, 20, 2)
			return &resp, nil
		},
	}
	r := setupWorkspaceRouter(NewWorkspaceHandler(svc, &mockAuditService{}))

	rec := doRequest(r, "GET", "/workspaces", "")

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	data := parseJSON(t, rec)["data"].([]interface{})
	if len(data) != 2 {
		t.Errorf("expected 2 workspaces, got %d", len(data))
	}
}

func TestWorkspaceHandler_GetWorkspace(t *testing.T) {
	t.Run("returns 200", func(t *testing.T) {
		svc := &mockWorkspaceService{
			getWorkspaceByIDFn: func(id string) (*models.Workspace, error) {
				return &models.Workspace{Base: models.Base{ID: id}, Name: "Personal"}, nil
			},
		}
		r := setupWorkspaceRouter(NewWorkspaceHandler(svc, &mockAuditService{}))

		rec := doRequest(r, "GET", "/workspaces/"+testWorkspaceID, "")

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		ws := parseJSON(t, rec)["workspace"].(map[string]interface{})
		if ws["id"] != testWorkspaceID {
			t.Errorf("expected id %s, got %v", testWorkspaceID, ws["id"])
		}
	})

	t.Run("returns 404 when missing", func(t *testing.T) {
		r := setupWorkspaceRouter(NewWorkspaceHandler(&mockWorkspaceService{}, &mockAuditService{}))

		rec := doRequest(r, "GET", "/workspaces/"+testWorkspaceID, "")

		if rec.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", rec.Code)
		}
		assertErrorCode(t, parseJSON(t, rec), "WORKSPACE_NOT_FOUND")
	})
}
