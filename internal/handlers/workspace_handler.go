package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "apexfinance/internal/errors"
	"apexfinance/internal/pagination"
	"apexfinance/internal/services"
)

// WorkspaceHandler handles workspace-related requests.
type WorkspaceHandler struct {
	workspaceService services.WorkspaceServicer
	auditService     services.AuditServicer
}

// NewWorkspaceHandler creates a new WorkspaceHandler.
func NewWorkspaceHandler(workspaceService services.WorkspaceServicer, auditService services.AuditServicer) *WorkspaceHandler {
	return &WorkspaceHandler{workspaceService: workspaceService, auditService: auditService}
}

// CreateWorkspaceRequest represents the request payload for creating a workspace.
type CreateWorkspaceRequest struct {
	Name           string `json:"name" binding:"required,min=1,max=100"`
	IsProfessional bool   `json:"is_professional"`
	Currency       string `json:"currency" binding:"omitempty,iso4217"`
}

// CreateWorkspace handles the creation of a new workspace.
// @Summary     Create a workspace
// @Description Create a personal or professional workspace
// @Tags        workspaces
// @Accept      json
// @Produce     json
// @Param       request body CreateWorkspaceRequest true "Workspace details"
// @Success     201 {object} models.Workspace "Workspace created"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /workspaces [post]
func (h *WorkspaceHandler) CreateWorkspace(c *gin.Context) {
	var req CreateWorkspaceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	workspace, err := h.workspaceService.CreateWorkspace(req.Name, req.IsProfessional, req.Currency)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(workspace.ID, "CREATE_WORKSPACE", "workspace", workspace.ID, c.ClientIP(),
		map[string]interface{}{"name": workspace.Name, "is_professional": workspace.IsProfessional})

	c.JSON(http.StatusCreated, gin.H{"workspace": workspace})
}

// GetWorkspaces handles listing workspaces.
// @Summary     Get workspaces
// @Description Get a paginated list of workspaces
// @Tags        workspaces
// @Accept      json
// @Produce     json
// @Param       page      query int false "Page number (default 1)"
// @Param       page_size query int false "Items per page (default 20, max 100)"
// @Success     200 {object} pagination.PageResponse[models.Workspace] "Paginated workspaces"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /workspaces [get]
func (h *WorkspaceHandler) GetWorkspaces(c *gin.Context) {
	var page pagination.PageRequest
	if err := c.ShouldBindQuery(&page); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	result, err := h.workspaceService.GetWorkspaces(page)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// GetWorkspace handles retrieving a specific workspace.
// @Summary     Get workspace by ID
// @Description Get a specific workspace by ID
// @Tags        workspaces
// @Accept      json
// @Produce     json
// @Param       id path string true "Workspace ID"
// @Success     200 {object} models.Workspace "Workspace details"
// @Failure     400 {object} ErrorResponse "Invalid workspace ID"
// @Failure     404 {object} ErrorResponse "Workspace not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /workspaces/{id} [get]
func (h *WorkspaceHandler) GetWorkspace(c *gin.Context) {
	workspaceID, err := getWorkspaceID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	workspace, err := h.workspaceService.GetWorkspaceByID(workspaceID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"workspace": workspace})
}
