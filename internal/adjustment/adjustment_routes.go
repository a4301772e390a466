package adjustment

import (
	"go-leave/internal/middleware"
	"go-leave/internal/rbac"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(
	r *gin.RouterGroup,
	handler *Handler,
	rbacService rbac.Service,
	idempotency gin.HandlerFunc,
) {
	adjustments := r.Group("/adjustments")
	adjustments.Use(middleware.AuthMiddleware())
	{
		adjustments.GET("", middleware.Authorize(rbacService, "adjustment", "read"), handler.GetAll)
		adjustments.GET("/:id", middleware.Authorize(rbacService, "adjustment", "read"), handler.GetByID)
		adjustments.POST("",
			middleware.RateLimitByUser(3, 10),
			middleware.Authorize(rbacService, "adjustment", "manage"),
			idempotency,
			handler.Create,
		)
		adjustments.PUT("/:id/approve",
			middleware.RateLimitByUser(3, 10),
			middleware.Authorize(rbacService, "adjustment", "manage"),
			idempotency,
			handler.Approve,
		)
	}
}
