package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	apperrors "apexfinance/internal/errors"
)

// WorkspaceIDKey is the context key holding the workspace of a scoped route.
const WorkspaceIDKey = "workspaceID"

// WorkspaceScope validates the workspace path parameter and stores the
// normalized workspace ID in the context. Requests with a malformed ID are
// aborted with INVALID_INPUT, which ErrorHandler renders.
func WorkspaceScope(param string) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := uuid.Parse(c.Param(param))
		if err != nil {
			_ = c.Error(apperrors.WithMessage(apperrors.ErrInvalidInput, "Invalid workspace ID"))
			c.Abort()
			return
		}

		c.Set(WorkspaceIDKey, id.String())
		c.Next()
	}
}
