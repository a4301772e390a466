package team

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
	manager := r.Group("/manager")
	manager.Use(middleware.AuthMiddleware())
	{
		manager.GET("/team-leaves", middleware.Authorize(rbacService, "team", "read"), handler.GetTeamLeaves)
	}
}
