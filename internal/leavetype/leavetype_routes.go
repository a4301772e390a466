package leavetype

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
	leaveTypes := r.Group("/leave-types")
	leaveTypes.Use(middleware.AuthMiddleware())
	{
		leaveTypes.GET("", middleware.Authorize(rbacService, "leave_type", "read"), handler.GetAll)
		leaveTypes.GET("/:id", middleware.Authorize(rbacService, "leave_type", "read"), handler.GetByID)
		leaveTypes.POST("", middleware.Authorize(rbacService, "leave_type", "manage"), handler.Create)
		leaveTypes.PUT("/:id", middleware.Authorize(rbacService, "leave_type", "manage"), handler.Update)
		leaveTypes.DELETE("/:id", middleware.Authorize(rbacService, "leave_type", "manage"), handler.Remove)
	}
}
