package team

import (
	"net/http"

	"go-leave/internal/shared/apperror"
	"go-leave/internal/shared/contextutil"
	"go-leave/internal/shared/response"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Handler struct {
	service Service
	logger  *zap.Logger
}

func NewHandler(service Service, logger ...*zap.Logger) *Handler {
	l := zap.L().Named("team.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("team.handler")
	}
	return &Handler{service: service, logger: l}
}

// GetTeamLeaves serves the manager's own team; the manager identity comes
// from the authenticated user, with an employee_id query override for admin
// tooling.
func (h *Handler) GetTeamLeaves(c *gin.Context) {
	managerID := c.Query("employee_id")
	if managerID == "" {
		managerID = contextutil.GetUserID(c.Request.Context())
	}
	if managerID == "" {
		response.Error(c, http.StatusBadRequest, apperror.CodeInvalidInput, "manager employee id is required", nil)
		return
	}

	summaries, err := h.service.GetTeamLeaves(c.Request.Context(), managerID)
	if err != nil {
		httpErr := apperror.ToHTTP(err)
		h.logger.Warn("team leaves request failed",
			zap.String("manager_employee_id", managerID),
			zap.Int("status", httpErr.Status),
			zap.String("code", httpErr.Code),
		)
		response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
		return
	}

	response.Success(c, http.StatusOK, summaries, nil)
}
