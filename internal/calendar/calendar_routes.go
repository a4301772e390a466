package calendar

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
	calendars := r.Group("/calendars")
	calendars.Use(middleware.AuthMiddleware())
	{
		calendars.GET("", middleware.Authorize(rbacService, "calendar", "read"), handler.GetAll)
		calendars.GET("/:year", middleware.Authorize(rbacService, "calendar", "read"), handler.GetByYear)
		calendars.POST("", middleware.Authorize(rbacService, "calendar", "manage"), handler.Create)
		calendars.PUT("/:id", middleware.Authorize(rbacService, "calendar", "manage"), handler.Update)
		calendars.DELETE("/:id", middleware.Authorize(rbacService, "calendar", "manage"), handler.Remove)
		calendars.POST("/:id/blocked-periods", middleware.Authorize(rbacService, "calendar", "manage"), handler.AddBlockedPeriod)
		calendars.DELETE("/:id/blocked-periods/:index", middleware.Authorize(rbacService, "calendar", "manage"), handler.RemoveBlockedPeriod)
	}
}
