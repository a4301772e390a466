package leaverequest

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
	requests := r.Group("/leave-requests")
	requests.Use(middleware.AuthMiddleware())
	{
		requests.GET("", middleware.Authorize(rbacService, "leave_request", "read"), handler.GetAll)
		requests.GET("/history", middleware.Authorize(rbacService, "leave_request", "read"), handler.History)
		requests.GET("/:id", middleware.Authorize(rbacService, "leave_request", "read"), handler.GetByID)
		requests.POST("",
			middleware.RateLimitByUser(3, 10),
			middleware.Authorize(rbacService, "leave_request", "create"),
			idempotency,
			handler.Create,
		)
		requests.PUT("/bulk",
			middleware.RateLimitByUser(3, 10),
			middleware.Authorize(rbacService, "leave_request", "decide"),
			idempotency,
			handler.BulkProcess,
		)
		requests.PUT("/:id",
			middleware.RateLimitByUser(3, 10),
			middleware.Authorize(rbacService, "leave_request", "create"),
			handler.Update,
		)
		requests.PUT("/:id/approve/manager",
			middleware.RateLimitByUser(3, 10),
			middleware.Authorize(rbacService, "leave_request", "decide"),
			idempotency,
			handler.ManagerApprove,
		)
		requests.PUT("/:id/reject/manager",
			middleware.RateLimitByUser(3, 10),
			middleware.Authorize(rbacService, "leave_request", "decide"),
			idempotency,
			handler.ManagerReject,
		)
		requests.PUT("/:id/cancel",
			middleware.RateLimitByUser(3, 10),
			middleware.Authorize(rbacService, "leave_request", "create"),
			handler.Cancel,
		)
	}
}
