package app

import (
	"go-leave/internal/adjustment"
	"go-leave/internal/calendar"
	"go-leave/internal/employee"
	"go-leave/internal/entitlement"
	"go-leave/internal/leavepolicy"
	"go-leave/internal/leaverequest"
	"go-leave/internal/leavetype"
	"go-leave/internal/messaging/kafka"
	"go-leave/internal/middleware"
	"go-leave/internal/position"
	"go-leave/internal/rbac"
	"go-leave/internal/shared/counter"
	"go-leave/internal/team"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
	"gorm.io/gorm"
)

func registerModules(
	router *gin.Engine,
	db *gorm.DB,
	rdb *redis.Client,
) error {
	logger := zap.L()

	// --- Repositories ---
	counterRepo := counter.NewRepository(db)
	outboxRepo := kafka.NewOutboxRepository(db)
	employeeRepo := employee.NewRepository(db)
	positionRepo := position.NewRepository(db)
	entitlementRepo := entitlement.NewRepository(db)
	leaveRequestRepo := leaverequest.NewRepository(db)
	adjustmentRepo := adjustment.NewRepository(db)
	leaveTypeRepo := leavetype.NewRepository(db)
	leavePolicyRepo := leavepolicy.NewRepository(db)
	calendarRepo := calendar.NewRepository(db)

	// --- RBAC Core ---
	rbacService, err := rbac.NewService(logger)
	if err != nil {
		return err
	}

	// --- Services ---
	entitlementService := entitlement.NewService(db, entitlementRepo, logger)
	leaveRequestService := leaverequest.NewService(db, leaveRequestRepo, entitlementService, counterRepo, outboxRepo, logger)
	adjustmentService := adjustment.NewService(db, adjustmentRepo, entitlementService, logger)
	employeeService := employee.NewService(db, employeeRepo, outboxRepo, logger)
	positionService := position.NewService(positionRepo, logger)
	teamService := team.NewService(employeeRepo, entitlementService, leaveRequestService, logger)
	leaveTypeService := leavetype.NewService(leaveTypeRepo, logger)
	leavePolicyService := leavepolicy.NewService(db, leavePolicyRepo, entitlementService, logger)
	calendarService := calendar.NewService(calendarRepo, logger)

	// --- Handlers ---
	entitlementHandler := entitlement.NewHandler(entitlementService, logger)
	leaveRequestHandler := leaverequest.NewHandler(leaveRequestService, logger)
	adjustmentHandler := adjustment.NewHandler(adjustmentService, logger)
	employeeHandler := employee.NewHandler(employeeService, logger)
	positionHandler := position.NewHandler(positionService, logger)
	teamHandler := team.NewHandler(teamService, logger)
	leaveTypeHandler := leavetype.NewHandler(leaveTypeService, logger)
	leavePolicyHandler := leavepolicy.NewHandler(leavePolicyService, logger)
	calendarHandler := calendar.NewHandler(calendarService, logger)

	// --- Global middleware ---
	router.Use(middleware.RequestID())
	router.Use(middleware.ContextLogger(logger))
	router.Use(middleware.RateLimitByIP(rate.Limit(50), 100))

	idempotency := middleware.Idempotency(rdb)

	// --- Routes Registration ---
	api := router.Group("/api/v1")
	{
		entitlement.RegisterRoutes(api, entitlementHandler, rbacService)
		leaverequest.RegisterRoutes(api, leaveRequestHandler, rbacService, idempotency)
		adjustment.RegisterRoutes(api, adjustmentHandler, rbacService, idempotency)
		employee.RegisterRoutes(api, employeeHandler, rbacService)
		position.RegisterRoutes(api, positionHandler, rbacService)
		team.RegisterRoutes(api, teamHandler, rbacService)
		leavetype.RegisterRoutes(api, leaveTypeHandler, rbacService)
		leavepolicy.RegisterRoutes(api, leavePolicyHandler, rbacService)
		calendar.RegisterRoutes(api, calendarHandler, rbacService)
	}

	return nil
}
