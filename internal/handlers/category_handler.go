package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	apperrors "apexfinance/internal/errors"
	"apexfinance/internal/pagination"
	"apexfinance/internal/services"
)

// Sibling orderings accepted by GetCategoryTree.
const (
	treeOrderInput = "input"
	treeOrderPath  = "path"
)

// CategoryHandler handles category-related requests.
type CategoryHandler struct {
	categoryService services.CategoryServicer
	auditService    services.AuditServicer
}

// NewCategoryHandler creates a new CategoryHandler.
func NewCategoryHandler(categoryService services.CategoryServicer, auditService services.AuditServicer) *CategoryHandler {
	return &CategoryHandler{categoryService: categoryService, auditService: auditService}
}

// CreateCategoryRequest represents the request payload for creating a category.
type CreateCategoryRequest struct {
	Name          string           `json:"name" binding:"required,min=1,max=100"`
	ParentID      *string          `json:"parent_id"`
	MonthlyBudget *decimal.Decimal `json:"monthly_budget" binding:"omitempty,decimal_gte0"`
	IsProject     bool             `json:"is_project"`
}

// UpdateCategoryRequest represents the request payload for updating a category.
// An empty parent_id moves the category to the root; clear_budget removes the
// monthly budget.
type UpdateCategoryRequest struct {
	Name          *string          `json:"name" binding:"omitempty,min=1,max=100"`
	ParentID      *string          `json:"parent_id"`
	MonthlyBudget *decimal.Decimal `json:"monthly_budget" binding:"omitempty,decimal_gte0"`
	ClearBudget   bool             `json:"clear_budget"`
	IsProject     *bool            `json:"is_project"`
}

// CreateCategory handles the creation of a new category.
// @Summary     Create a category
// @Description Create a category, optionally under a parent in the same workspace
// @Tags        categories
// @Accept      json
// @Produce     json
// @Param       id      path string                true "Workspace ID"
// @Param       request body CreateCategoryRequest true "Category details"
// @Success     201 {object} models.Category "Category created"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     404 {object} ErrorResponse "Workspace or parent not found"
// @Failure     409 {object} ErrorResponse "Duplicate category"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /workspaces/{id}/categories [post]
func (h *CategoryHandler) CreateCategory(c *gin.Context) {
	workspaceID, err := getWorkspaceID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req CreateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	parentID, err := parseOptionalID(req.ParentID, "parent_id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	category, err := h.categoryService.CreateCategory(workspaceID, req.Name, parentID, req.MonthlyBudget, req.IsProject)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(workspaceID, "CREATE_CATEGORY", "category", category.ID, c.ClientIP(),
		map[string]interface{}{"name": category.Name, "parent_id": category.ParentID})

	c.JSON(http.StatusCreated, gin.H{"category": category})
}

// GetCategories handles listing the flat categories of a workspace.
// @Summary     Get categories
// @Description Get a paginated flat list of the categories of a workspace
// @Tags        categories
// @Accept      json
// @Produce     json
// @Param       id        path  string true  "Workspace ID"
// @Param       page      query int    false "Page number (default 1)"
// @Param       page_size query int    false "Items per page (default 20, max 100)"
// @Success     200 {object} pagination.PageResponse[models.Category] "Paginated categories"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     404 {object} ErrorResponse "Workspace not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /workspaces/{id}/categories [get]
func (h *CategoryHandler) GetCategories(c *gin.Context) {
	workspaceID, err := getWorkspaceID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var page pagination.PageRequest
	if err := c.ShouldBindQuery(&page); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	result, err := h.categoryService.GetWorkspaceCategories(workspaceID, page)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// GetCategoryTree handles rendering the category hierarchy.
// @Summary     Get category tree
// @Description Get the category forest with full paths, levels, subtree totals and budget usage
// @Tags        categories
// @Accept      json
// @Produce     json
// @Param       id    path  string true  "Workspace ID"
// @Param       order query string false "Sibling order: input (default) or path"
// @Success     200 {object} services.CategoryTree "Category tree"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     404 {object} ErrorResponse "Workspace not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /workspaces/{id}/categories/tree [get]
func (h *CategoryHandler) GetCategoryTree(c *gin.Context) {
	workspaceID, err := getWorkspaceID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var canonical bool
	switch c.DefaultQuery("order", treeOrderInput) {
	case treeOrderInput:
	case treeOrderPath:
		canonical = true
	default:
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, "order must be 'input' or 'path'"))
		return
	}

	tree, err := h.categoryService.GetCategoryTree(workspaceID, canonical)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"tree": tree})
}

// GetCategoryByID handles retrieving a specific category.
// @Summary     Get category by ID
// @Description Get a specific category by ID
// @Tags        categories
// @Accept      json
// @Produce     json
// @Param       id         path string true "Workspace ID"
// @Param       categoryId path string true "Category ID"
// @Success     200 {object} models.Category "Category details"
// @Failure     400 {object} ErrorResponse "Invalid category ID"
// @Failure     404 {object} ErrorResponse "Category not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /workspaces/{id}/categories/{categoryId} [get]
func (h *CategoryHandler) GetCategoryByID(c *gin.Context) {
	workspaceID, err := getWorkspaceID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	categoryID, err := parsePathID(c, "categoryId")
	if err != nil {
		respondWithError(c, err)
		return
	}

	category, err := h.categoryService.GetCategoryByID(workspaceID, categoryID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"category": category})
}

// UpdateCategory handles renaming, re-budgeting and moving a category.
// @Summary     Update category
// @Description Update a category. Moving a category under itself or one of its descendants is rejected.
// @Tags        categories
// @Accept      json
// @Produce     json
// @Param       id         path string                true "Workspace ID"
// @Param       categoryId path string                true "Category ID"
// @Param       request    body UpdateCategoryRequest true "Category changes"
// @Success     200 {object} models.Category "Updated category"
// @Failure     400 {object} ErrorResponse "Invalid input or cyclic move"
// @Failure     404 {object} ErrorResponse "Category not found"
// @Failure     409 {object} ErrorResponse "Duplicate category"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /workspaces/{id}/categories/{categoryId} [put]
func (h *CategoryHandler) UpdateCategory(c *gin.Context) {
	workspaceID, err := getWorkspaceID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	categoryID, err := parsePathID(c, "categoryId")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req UpdateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	parentID, err := parseOptionalID(req.ParentID, "parent_id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	category, err := h.categoryService.UpdateCategory(workspaceID, categoryID, services.CategoryUpdate{
		Name:          req.Name,
		ParentID:      parentID,
		MonthlyBudget: req.MonthlyBudget,
		ClearBudget:   req.ClearBudget,
		IsProject:     req.IsProject,
	})
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(workspaceID, "UPDATE_CATEGORY", "category", categoryID, c.ClientIP(),
		map[string]interface{}{"name": category.Name, "parent_id": category.ParentID})

	c.JSON(http.StatusOK, gin.H{"category": category})
}
