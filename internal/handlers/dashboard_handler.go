package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"apexfinance/internal/services"
)

// DashboardHandler serves the derived, read-only views of a workspace.
type DashboardHandler struct {
	dashboardService services.DashboardServicer
}

// NewDashboardHandler creates a new DashboardHandler.
func NewDashboardHandler(dashboardService services.DashboardServicer) *DashboardHandler {
	return &DashboardHandler{dashboardService: dashboardService}
}

// GetScore handles computing the Apex Score.
// @Summary     Get Apex Score
// @Description Get the 0-100 health score with its band, penalty and insights
// @Tags        dashboard
// @Produce     json
// @Param       id path string true "Workspace ID"
// @Success     200 {object} services.ScoreReport "Apex Score"
// @Failure     400 {object} ErrorResponse "Invalid workspace ID"
// @Failure     404 {object} ErrorResponse "Workspace not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /workspaces/{id}/score [get]
func (h *DashboardHandler) GetScore(c *gin.Context) {
	workspaceID, err := getWorkspaceID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	report, err := h.dashboardService.GetScore(workspaceID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"score": report})
}

// GetSummary handles the KPI cards.
// @Summary     Get dashboard summary
// @Description Get total income, total expense, balance, weekly expense and the Apex Score
// @Tags        dashboard
// @Produce     json
// @Param       id path string true "Workspace ID"
// @Success     200 {object} services.DashboardSummary "Dashboard summary"
// @Failure     404 {object} ErrorResponse "Workspace not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /workspaces/{id}/summary [get]
func (h *DashboardHandler) GetSummary(c *gin.Context) {
	workspaceID, err := getWorkspaceID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	summary, err := h.dashboardService.GetSummary(workspaceID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"summary": summary})
}

// GetCashFlow handles the daily cash flow chart.
// @Summary     Get cash flow
// @Description Get one point per day with income, expenses, net and accumulated balance
// @Tags        reports
// @Produce     json
// @Param       id   path  string true  "Workspace ID"
// @Param       days query int    false "Window size in days (default 30, max 366)"
// @Success     200 {array}  reports.CashFlowPoint "Cash flow"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     404 {object} ErrorResponse "Workspace not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /workspaces/{id}/reports/cashflow [get]
func (h *DashboardHandler) GetCashFlow(c *gin.Context) {
	workspaceID, err := getWorkspaceID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	days, err := parseOptionalInt(c, "days")
	if err != nil {
		respondWithError(c, err)
		return
	}

	points, err := h.dashboardService.GetCashFlow(workspaceID, days)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"cash_flow": points})
}

// GetMonthlyReport handles the monthly income/expense comparison.
// @Summary     Get monthly report
// @Description Get income and expenses per month with the essential spending ratio
// @Tags        reports
// @Produce     json
// @Param       id path string true "Workspace ID"
// @Success     200 {object} services.MonthlyReport "Monthly report"
// @Failure     404 {object} ErrorResponse "Workspace not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /workspaces/{id}/reports/monthly [get]
func (h *DashboardHandler) GetMonthlyReport(c *gin.Context) {
	workspaceID, err := getWorkspaceID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	report, err := h.dashboardService.GetMonthlyReport(workspaceID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"report": report})
}

// GetExpenseDistribution handles the expense breakdown by category.
// @Summary     Get expense distribution
// @Description Get the largest expense categories
// @Tags        reports
// @Produce     json
// @Param       id    path  string true  "Workspace ID"
// @Param       limit query int    false "Number of categories (default 5)"
// @Success     200 {array}  reports.DistributionSlice "Expense distribution"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     404 {object} ErrorResponse "Workspace not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /workspaces/{id}/reports/distribution [get]
func (h *DashboardHandler) GetExpenseDistribution(c *gin.Context) {
	workspaceID, err := getWorkspaceID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	limit, err := parseOptionalInt(c, "limit")
	if err != nil {
		respondWithError(c, err)
		return
	}

	slices, err := h.dashboardService.GetExpenseDistribution(workspaceID, limit)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"distribution": slices})
}
