package middleware

import (
	"net/http"

	"go-leave/internal/rbac"
	"go-leave/internal/shared/response"

	"github.com/gin-gonic/gin"
)

// Authorize checks the caller's role against the policy for one resource and
// action. It runs after AuthMiddleware, which put the role in the context.
func Authorize(service rbac.Service, resource, action string) gin.HandlerFunc {
	return func(c *gin.Context) {
		role := c.GetString(ContextRole)
		if role == "" {
			response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Missing auth context", nil)
			c.Abort()
			return
		}

		allowed, err := service.CheckPermission(role, resource, action)
		if err != nil {
			response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Authorization check failed", nil)
			c.Abort()
			return
		}
		if !allowed {
			response.Error(c, http.StatusForbidden, "FORBIDDEN",
				"You do not have permission to access this resource",
				resource+":"+action)
			c.Abort()
			return
		}

		c.Next()
	}
}
