package team

import (
	"context"
	"errors"
	"time"

	"go-leave/internal/employee"
	employeeerrors "go-leave/internal/employee/errors"
	"go-leave/internal/entitlement"
	"go-leave/internal/leaverequest"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

//go:generate mockgen -source=team_service.go -destination=mock/team_service_mock.go -package=mock
type Service interface {
	GetTeamLeaves(ctx context.Context, managerEmployeeID string) ([]TeamLeaveSummary, error)
}

type service struct {
	employees    employee.Repository
	entitlements entitlement.Service
	requests     leaverequest.Service
	logger       *zap.Logger
}

func NewService(
	employees employee.Repository,
	entitlements entitlement.Service,
	requests leaverequest.Service,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("team.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("team.service")
	}
	return &service{
		employees:    employees,
		entitlements: entitlements,
		requests:     requests,
		logger:       l,
	}
}

// GetTeamLeaves resolves the manager's direct reports through the position
// link and assembles balances and still-running approved leave per report.
func (s *service) GetTeamLeaves(ctx context.Context, managerEmployeeID string) ([]TeamLeaveSummary, error) {
	managerID, err := uuid.Parse(managerEmployeeID)
	if err != nil {
		return nil, employeeerrors.ErrInvalidEmployeeID
	}

	manager, err := s.employees.FindByID(ctx, managerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, employeeerrors.ErrManagerNotFound
		}
		return nil, err
	}
	if manager.PrimaryPositionID == nil {
		return nil, employeeerrors.ErrManagerHasNoPosition
	}

	reports, err := s.employees.FindBySupervisorPosition(ctx, *manager.PrimaryPositionID)
	if err != nil {
		return nil, err
	}

	today := time.Now().UTC().Truncate(24 * time.Hour)
	summaries := make([]TeamLeaveSummary, 0, len(reports))
	for _, report := range reports {
		ents, err := s.entitlements.GetByEmployee(ctx, report.ID.String())
		if err != nil {
			return nil, err
		}
		upcoming, err := s.requests.GetApprovedUpcoming(ctx, report.ID, today)
		if err != nil {
			return nil, err
		}

		summaries = append(summaries, TeamLeaveSummary{
			Employee: MemberSummary{
				EmployeeID: report.ID.String(),
				FirstName:  report.FirstName,
				LastName:   report.LastName,
				Email:      report.Email,
			},
			Entitlements:     ents,
			UpcomingRequests: upcoming,
		})
	}

	s.logger.Debug("team leaves assembled",
		zap.String("manager_employee_id", managerEmployeeID),
		zap.Int("reports", len(summaries)),
	)
	return summaries, nil
}
