package position

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
	positions := r.Group("/positions")
	positions.Use(middleware.AuthMiddleware())
	{
		positions.GET("", middleware.Authorize(rbacService, "position", "read"), handler.GetAll)
		positions.GET("/:id", middleware.Authorize(rbacService, "position", "read"), handler.GetByID)
		positions.POST("", middleware.Authorize(rbacService, "position", "manage"), handler.Create)
		positions.PUT("/:id", middleware.Authorize(rbacService, "position", "manage"), handler.Update)
		positions.DELETE("/:id", middleware.Authorize(rbacService, "position", "manage"), handler.Remove)
	}
}
