package employee

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
	employees := r.Group("/employees")
	employees.Use(middleware.AuthMiddleware())
	{
		employees.GET("", middleware.Authorize(rbacService, "employee", "read"), handler.GetAll)
		employees.GET("/:id", middleware.Authorize(rbacService, "employee", "read"), handler.GetByID)
		employees.POST("", middleware.Authorize(rbacService, "employee", "manage"), handler.Create)
		employees.PUT("/:id", middleware.Authorize(rbacService, "employee", "manage"), handler.Update)
		employees.DELETE("/:id", middleware.Authorize(rbacService, "employee", "manage"), handler.Remove)
	}
}
