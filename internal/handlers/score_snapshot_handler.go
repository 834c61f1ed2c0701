package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	apperrors "apexfinance/internal/errors"
	"apexfinance/internal/pagination"
	"apexfinance/internal/services"
)

// ScoreSnapshotHandler handles score snapshot requests.
type ScoreSnapshotHandler struct {
	snapshotService services.ScoreSnapshotServicer
}

// NewScoreSnapshotHandler creates a new ScoreSnapshotHandler.
func NewScoreSnapshotHandler(snapshotService services.ScoreSnapshotServicer) *ScoreSnapshotHandler {
	return &ScoreSnapshotHandler{snapshotService: snapshotService}
}

// RecordSnapshotsRequest represents the request payload for recording snapshots.
// A missing recorded_at uses the current time.
type RecordSnapshotsRequest struct {
	RecordedAt *time.Time `json:"recorded_at"`
}

// RecordSnapshots handles recording score snapshots for every workspace.
// @Summary     Record score snapshots
// @Description Compute and record the Apex Score of every workspace (pipeline endpoint)
// @Tags        pipeline
// @Security    PipelineKey
// @Accept      json
// @Produce     json
// @Param       X-API-Key header   string                 true  "Pipeline API key"
// @Param       request   body     RecordSnapshotsRequest false "Snapshot parameters"
// @Success     200       {object} map[string]int         "Snapshots recorded count"
// @Failure     400       {object} ErrorResponse          "Invalid input"
// @Failure     401       {object} ErrorResponse          "Invalid API key"
// @Failure     503       {object} ErrorResponse          "Pipeline not configured"
// @Router      /pipeline/snapshots [post]
func (h *ScoreSnapshotHandler) RecordSnapshots(c *gin.Context) {
	var req RecordSnapshotsRequest
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
			return
		}
	}

	recordedAt := time.Now().UTC().Truncate(time.Second)
	if req.RecordedAt != nil {
		recordedAt = req.RecordedAt.UTC()
	}

	count, err := h.snapshotService.RecordAllSnapshots(recordedAt)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"snapshots_recorded": count})
}

// GetSnapshots handles retrieving the score history of a workspace.
// @Summary     Get score snapshots
// @Description Get paginated score snapshots for a date range, newest first
// @Tags        dashboard
// @Accept      json
// @Produce     json
// @Param       id        path  string true  "Workspace ID"
// @Param       from_date query string true  "Start date (RFC3339 or YYYY-MM-DD)"
// @Param       to_date   query string true  "Inclusive end (RFC3339, or YYYY-MM-DD for the whole day)"
// @Param       page      query int    false "Page number (default 1)"
// @Param       page_size query int    false "Items per page (default 20, max 100)"
// @Success     200 {object} pagination.PageResponse[models.ScoreSnapshot] "Paginated snapshots"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     404 {object} ErrorResponse "Workspace not found"
// @Router      /workspaces/{id}/snapshots [get]
func (h *ScoreSnapshotHandler) GetSnapshots(c *gin.Context) {
	workspaceID, err := getWorkspaceID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	fromStr := c.Query("from_date")
	if fromStr == "" {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, "from_date is required"))
		return
	}
	from, err := parseFlexibleTime(fromStr)
	if err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	toStr := c.Query("to_date")
	if toStr == "" {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, "to_date is required"))
		return
	}
	to, err := parseRangeEnd(toStr)
	if err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}
	if to.Before(from) {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, "to_date cannot be before from_date"))
		return
	}

	var page pagination.PageRequest
	if err := c.ShouldBindQuery(&page); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	result, err := h.snapshotService.GetSnapshots(workspaceID, from, to, page)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}
