// Package middleware provides HTTP middleware components.
package middleware

import (
	"fmt"
	"runtime/debug"

	"github.com/gin-gonic/gin"

	"sbreport/internal/core/apperror"
	appctx "sbreport/internal/core/context"
	"sbreport/pkg/logger"
)

// Recovery middleware turns panics into a 500 AppError.
// The stack trace is logged, never sent to the client.
func Recovery() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				logger.Error(c.Request.Context(), "panic recovered",
					"error", err,
					"stack", string(debug.Stack()),
				)

				appErr := apperror.NewInternal(fmt.Errorf("panic: %v", err)).
					WithDetail("request_id", appctx.GetRequestID(c.Request.Context()))
				_ = c.Error(appErr)
				c.Abort()
				if !c.Writer.Written() {
					renderError(c, appErr)
				}
			}
		}()
		c.Next()
	}
}
