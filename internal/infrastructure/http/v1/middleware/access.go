package middleware

import (
	"github.com/gin-gonic/gin"

	"sbreport/internal/core/apperror"
	appctx "sbreport/internal/core/context"
	"sbreport/internal/core/security"
	"sbreport/pkg/logger"
)

// RequireAccess evaluates policy for the authenticated caller. The company
// being reported on is read from the "company" query parameter.
// A nil policy allows every authenticated caller.
func RequireAccess(policy *security.AccessPolicy) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := appctx.GetUser(c.Request.Context())
		if user == nil {
			_ = c.Error(apperror.NewUnauthorized("authentication required"))
			c.Abort()
			return
		}
		if policy == nil {
			c.Next()
			return
		}

		req := security.AccessRequest{
			UserID:      user.UserID,
			Email:       user.Email,
			Roles:       user.Roles,
			Permissions: user.Permissions,
			OrgIDs:      user.OrgIDs,
			IsAdmin:     user.IsAdmin,
			Company:     c.Query("company"),
		}

		allowed, err := policy.Allow(req)
		if err != nil {
			logger.Error(c.Request.Context(), "access policy evaluation failed",
				"rule", policy.Expression(), "error", err)
			_ = c.Error(apperror.NewInternal(err))
			c.Abort()
			return
		}
		if !allowed {
			_ = c.Error(
				apperror.NewForbidden("access denied by policy").
					WithDetail("company", req.Company),
			)
			c.Abort()
			return
		}

		c.Next()
	}
}
