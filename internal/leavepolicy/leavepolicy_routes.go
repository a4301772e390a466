package leavepolicy

import (
	"go-leave/internal/middleware"
	"go-leave/internal/rbac"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(
	r *gin.RouterGroup,
	handler *Handler,
	rbacService rbac.Service,
) {
	policies := r.Group("/leave-policies")
	policies.Use(middleware.AuthMiddleware())
	{
		policies.GET("", middleware.Authorize(rbacService, "leave_policy", "read"), handler.GetAll)
		policies.GET("/:id", middleware.Authorize(rbacService, "leave_policy", "read"), handler.GetByID)
		policies.POST("", middleware.Authorize(rbacService, "leave_policy", "manage"), handler.Create)
		policies.PUT("/:id", middleware.Authorize(rbacService, "leave_policy", "manage"), handler.Update)
		policies.DELETE("/:id", middleware.Authorize(rbacService, "leave_policy", "manage"), handler.Remove)
	}
}
