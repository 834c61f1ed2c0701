package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	apperrors "apexfinance/internal/errors"
	"apexfinance/internal/pagination"
	"apexfinance/internal/services"
)

// GoalHandler handles financial goal requests.
type GoalHandler struct {
	goalService  services.GoalServicer
	auditService services.AuditServicer
}

// NewGoalHandler creates a new GoalHandler.
func NewGoalHandler(goalService services.GoalServicer, auditService services.AuditServicer) *GoalHandler {
	return &GoalHandler{goalService: goalService, auditService: auditService}
}

// CreateGoalRequest represents the request payload for creating a goal.
type CreateGoalRequest struct {
	Name          string          `json:"name" binding:"required,min=1,max=100"`
	TargetAmount  decimal.Decimal `json:"target_amount" binding:"decimal_gt0"`
	CurrentAmount decimal.Decimal `json:"current_amount" binding:"decimal_gte0"`
	Deadline      *string         `json:"deadline"`
}

// UpdateGoalProgressRequest represents the request payload for setting the
// saved amount of a goal.
type UpdateGoalProgressRequest struct {
	CurrentAmount decimal.Decimal `json:"current_amount" binding:"decimal_gte0"`
}

// CreateGoal handles the creation of a new goal.
// @Summary     Create a goal
// @Description Create a savings goal with an optional deadline
// @Tags        goals
// @Accept      json
// @Produce     json
// @Param       id      path string            true "Workspace ID"
// @Param       request body CreateGoalRequest true "Goal details"
// @Success     201 {object} services.GoalWithProgress "Goal created"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     404 {object} ErrorResponse "Workspace not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /workspaces/{id}/goals [post]
func (h *GoalHandler) CreateGoal(c *gin.Context) {
	workspaceID, err := getWorkspaceID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req CreateGoalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	var deadline *time.Time
	if req.Deadline != nil && *req.Deadline != "" {
		t, err := parseFlexibleTime(*req.Deadline)
		if err != nil {
			respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, "invalid deadline format, use RFC3339 or YYYY-MM-DD"))
			return
		}
		deadline = &t
	}

	goal, err := h.goalService.CreateGoal(workspaceID, req.Name, req.TargetAmount, req.CurrentAmount, deadline)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(workspaceID, "CREATE_GOAL", "goal", goal.ID, c.ClientIP(),
		map[string]interface{}{"name": goal.Name, "target_amount": goal.TargetAmount.String()})

	c.JSON(http.StatusCreated, gin.H{"goal": goal})
}

// GetGoals handles listing goals.
// @Summary     Get goals
// @Description Get a paginated list of goals with their progress, nearest deadline first
// @Tags        goals
// @Accept      json
// @Produce     json
// @Param       id        path  string true  "Workspace ID"
// @Param       page      query int    false "Page number (default 1)"
// @Param       page_size query int    false "Items per page (default 20, max 100)"
// @Success     200 {object} pagination.PageResponse[services.GoalWithProgress] "Paginated goals"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     404 {object} ErrorResponse "Workspace not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /workspaces/{id}/goals [get]
func (h *GoalHandler) GetGoals(c *gin.Context) {
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

	result, err := h.goalService.GetWorkspaceGoals(workspaceID, page)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// GetGoal handles retrieving a specific goal.
// @Summary     Get goal by ID
// @Description Get a specific goal with its progress
// @Tags        goals
// @Accept      json
// @Produce     json
// @Param       id     path string true "Workspace ID"
// @Param       goalId path string true "Goal ID"
// @Success     200 {object} services.GoalWithProgress "Goal details"
// @Failure     400 {object} ErrorResponse "Invalid goal ID"
// @Failure     404 {object} ErrorResponse "Goal not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /workspaces/{id}/goals/{goalId} [get]
func (h *GoalHandler) GetGoal(c *gin.Context) {
	workspaceID, err := getWorkspaceID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	goalID, err := parsePathID(c, "goalId")
	if err != nil {
		respondWithError(c, err)
		return
	}

	goal, err := h.goalService.GetGoalByID(workspaceID, goalID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"goal": goal})
}

// UpdateGoalProgress handles setting the saved amount of a goal.
// @Summary     Update goal progress
// @Description Set the current amount of a goal. Progress is never derived from transactions.
// @Tags        goals
// @Accept      json
// @Produce     json
// @Param       id      path string                    true "Workspace ID"
// @Param       goalId  path string                    true "Goal ID"
// @Param       request body UpdateGoalProgressRequest true "New current amount"
// @Success     200 {object} services.GoalWithProgress "Updated goal"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     404 {object} ErrorResponse "Goal not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /workspaces/{id}/goals/{goalId}/progress [patch]
func (h *GoalHandler) UpdateGoalProgress(c *gin.Context) {
	workspaceID, err := getWorkspaceID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	goalID, err := parsePathID(c, "goalId")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req UpdateGoalProgressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	goal, err := h.goalService.UpdateGoalProgress(workspaceID, goalID, req.CurrentAmount)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(workspaceID, "UPDATE_GOAL_PROGRESS", "goal", goalID, c.ClientIP(),
		map[string]interface{}{"current_amount": req.CurrentAmount.String()})

	c.JSON(http.StatusOK, gin.H{"goal": goal})
}
