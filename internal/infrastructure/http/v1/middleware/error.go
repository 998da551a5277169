package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"sbreport/internal/core/apperror"
	appctx "sbreport/internal/core/context"
	"sbreport/pkg/logger"
)

// ErrorHandler middleware renders the last registered error as JSON.
// Causes of AppErrors and unknown errors are logged, never returned.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}

		renderError(c, c.Errors.Last().Err)
	}
}

// renderError writes err as the JSON error body.
func renderError(c *gin.Context, err error) {
	if appErr, ok := apperror.AsAppError(err); ok {
		if appErr.Err != nil {
			logger.Error(c.Request.Context(), "request error",
				"code", appErr.Code,
				"cause", appErr.Err,
			)
		}

		c.JSON(appErr.HTTPStatus, gin.H{
			"code":    appErr.Code,
			"message": appErr.Message,
			"details": appErr.Details,
		})
		return
	}

	logger.Error(c.Request.Context(), "unhandled error", "error", err)

	c.JSON(http.StatusInternalServerError, gin.H{
		"code":    apperror.CodeInternal,
		"message": "Internal server error",
		"details": map[string]any{
			"request_id": appctx.GetRequestID(c.Request.Context()),
		},
	})
}
