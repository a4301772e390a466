package entitlement

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
	entitlements := r.Group("/entitlements")
	entitlements.Use(middleware.AuthMiddleware())
	{
		entitlements.GET("", middleware.Authorize(rbacService, "entitlement", "read"), handler.GetAll)
		entitlements.POST("", middleware.Authorize(rbacService, "entitlement", "manage"), handler.Create)
		entitlements.POST("/accrue", middleware.Authorize(rbacService, "entitlement", "manage"), handler.Accrue)
		entitlements.PUT("/employee/:employeeId", middleware.Authorize(rbacService, "entitlement", "manage"), handler.Update)
		entitlements.DELETE("/employee/:employeeId", middleware.Authorize(rbacService, "entitlement", "manage"), handler.RemoveByEmployee)
	}
}
