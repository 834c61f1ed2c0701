package handlers

import (
	"errors"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	apperrors "apexfinance/internal/errors"
	"apexfinance/internal/logger"
	"apexfinance/internal/middleware"
)

// dateLayout is the short date form accepted next to RFC3339.
const dateLayout = "2006-01-02"

// ErrorDetail represents the inner error object in an error response.
type ErrorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ErrorResponse represents an error response.
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// getWorkspaceID extracts the workspace ID resolved by middleware.WorkspaceScope.
// Returns ErrWorkspaceNotFound if not present.
func getWorkspaceID(c *gin.Context) (string, error) {
	workspaceID := c.GetString(middleware.WorkspaceIDKey)
	if workspaceID == "" {
		return "", apperrors.ErrWorkspaceNotFound
	}
	return workspaceID, nil
}

// parsePathID parses a UUID path parameter.
// Returns ErrInvalidInput if the parameter is not a valid UUID.
func parsePathID(c *gin.Context, param string) (string, error) {
	id, err := uuid.Parse(c.Param(param))
	if err != nil {
		return "", apperrors.WithMessage(apperrors.ErrInvalidInput, "Invalid "+param)
	}
	return id.String(), nil
}

// parseOptionalID validates an optional UUID from a request body. Nil and
// empty values are returned unchanged.
func parseOptionalID(v *string, field string) (*string, error) {
	if v == nil || *v == "" {
		return v, nil
	}
	id, err := uuid.Parse(*v)
	if err != nil {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "Invalid "+field)
	}
	normalized := id.String()
	return &normalized, nil
}

// parseFlexibleTime accepts either an RFC3339 timestamp or a YYYY-MM-DD date
// (interpreted as midnight UTC).
func parseFlexibleTime(v string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, v); err == nil {
		return t.UTC(), nil
	}
	t, err := time.Parse(dateLayout, v)
	if err != nil {
		return time.Time{}, errors.New("invalid date format, use RFC3339 or YYYY-MM-DD")
	}
	return t, nil
}

// parseRangeEnd parses an inclusive upper bound. A bare YYYY-MM-DD covers
// the whole day, up to the last microsecond the database can store.
func parseRangeEnd(v string) (time.Time, error) {
	if t, err := time.Parse(dateLayout, v); err == nil {
		return t.AddDate(0, 0, 1).Add(-time.Microsecond), nil
	}
	return parseFlexibleTime(v)
}

// parseOptionalBool parses a "true"/"false" query parameter.
func parseOptionalBool(c *gin.Context, name string) (*bool, error) {
	v := c.Query(name)
	switch v {
	case "":
		return nil, nil
	case "true":
		b := true
		return &b, nil
	case "false":
		b := false
		return &b, nil
	default:
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, name+" must be 'true' or 'false'")
	}
}

// parseOptionalInt parses a non-negative integer query parameter, returning
// zero when the parameter is absent.
func parseOptionalInt(c *gin.Context, name string) (int, error) {
	v := c.Query(name)
	if v == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 0 {
		return 0, apperrors.WithMessage(apperrors.ErrInvalidInput, "invalid "+name)
	}
	return n, nil
}

// respondWithError writes a consistent JSON error response. If the error is an
// *AppError it uses the error's status code, code, and message. Otherwise it
// logs the unexpected error and returns a generic internal server error.
func respondWithError(c *gin.Context, err error) {
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		if appErr.Internal != nil {
			logger.Get().Errorw("app error",
				"code", appErr.Code,
				"internal", appErr.Internal.Error(),
				"path", c.Request.URL.Path,
			)
		}
		c.JSON(appErr.StatusCode, ErrorResponse{Error: ErrorDetail{Code: appErr.Code, Message: appErr.Message}})
		return
	}

	logger.Get().Errorw("unexpected error",
		"error", err.Error(),
		"path", c.Request.URL.Path,
		"method", c.Request.Method,
	)
	c.JSON(apperrors.ErrInternalServer.StatusCode, ErrorResponse{Error: ErrorDetail{
		Code:    apperrors.ErrInternalServer.Code,
		Message: apperrors.ErrInternalServer.Message,
	}})
}
