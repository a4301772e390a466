package adjustment

import (
	"context"
	"errors"
	"time"

	adjustmenterrors "go-leave/internal/adjustment/errors"
	"go-leave/internal/entitlement"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

//go:generate mockgen -source=adjustment_service.go -destination=mock/adjustment_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, req CreateAdjustmentRequest) (AdjustmentResponse, error)
	GetAll(ctx context.Context) ([]AdjustmentResponse, error)
	GetByID(ctx context.Context, id string) (AdjustmentResponse, error)
	GetByEmployee(ctx context.Context, employeeID string) ([]AdjustmentResponse, error)
	Approve(ctx context.Context, id, approverID string) (AdjustmentResponse, error)
}

type service struct {
	db     *gorm.DB
	repo   Repository
	ledger entitlement.Service
	logger *zap.Logger
}

func NewService(db *gorm.DB, repo Repository, ledger entitlement.Service, logger ...*zap.Logger) Service {
	l := zap.L().Named("adjustment.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("adjustment.service")
	}
	return &service{db: db, repo: repo, ledger: ledger, logger: l}
}

// Create records the adjustment without touching any balance.
func (s *service) Create(ctx context.Context, req CreateAdjustmentRequest) (AdjustmentResponse, error) {
	employeeID, err := uuid.Parse(req.EmployeeID)
	if err != nil {
		return AdjustmentResponse{}, adjustmenterrors.ErrInvalidEmployeeID
	}
	leaveTypeID, err := uuid.Parse(req.LeaveTypeID)
	if err != nil {
		return AdjustmentResponse{}, adjustmenterrors.ErrInvalidLeaveTypeID
	}
	if req.DaysCount <= 0 {
		return AdjustmentResponse{}, adjustmenterrors.ErrInvalidDays
	}

	adj := &Adjustment{
		ID:          uuid.New(),
		EmployeeID:  employeeID,
		LeaveTypeID: leaveTypeID,
		Type:        req.Type,
		DaysCount:   req.DaysCount,
		Reason:      req.Reason,
		Status:      StatusCreated,
	}
	if err := s.repo.Create(ctx, adj); err != nil {
		s.logger.Error("create adjustment failed",
			zap.String("employee_id", req.EmployeeID),
			zap.Error(err),
		)
		return AdjustmentResponse{}, err
	}

	s.logger.Info("create adjustment success",
		zap.String("adjustment_id", adj.ID.String()),
		zap.String("type", adj.Type),
		zap.Int("days_count", adj.DaysCount),
	)
	return mapToResponse(*adj), nil
}

func (s *service) GetAll(ctx context.Context) ([]AdjustmentResponse, error) {
	adjs, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	return mapToListResponse(adjs), nil
}

func (s *service) GetByID(ctx context.Context, id string) (AdjustmentResponse, error) {
	adj, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return AdjustmentResponse{}, adjustmenterrors.ErrAdjustmentNotFound
		}
		return AdjustmentResponse{}, err
	}
	return mapToResponse(*adj), nil
}

func (s *service) GetByEmployee(ctx context.Context, employeeID string) ([]AdjustmentResponse, error) {
	id, err := uuid.Parse(employeeID)
	if err != nil {
		return nil, adjustmenterrors.ErrInvalidEmployeeID
	}
	adjs, err := s.repo.FindByEmployee(ctx, id)
	if err != nil {
		return nil, err
	}
	return mapToListResponse(adjs), nil
}

// Approve applies the adjustment to the ledger exactly once. The row lock
// plus the CREATED status check make a second approve fail instead of
// doubling the delta.
func (s *service) Approve(ctx context.Context, id, approverID string) (AdjustmentResponse, error) {
	approverUUID, err := uuid.Parse(approverID)
	if err != nil {
		return AdjustmentResponse{}, adjustmenterrors.ErrInvalidApproverID
	}

	var updated Adjustment
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		qtx := s.repo.WithTx(tx)

		adj, err := qtx.FindByIDForUpdate(ctx, id)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return adjustmenterrors.ErrAdjustmentNotFound
			}
			return err
		}
		if adj.Status != StatusCreated {
			return adjustmenterrors.ErrAdjustmentNotCreated
		}

		// ADD records extra consumed days and debits the balance; SUBTRACT
		// restores days. An ADD that would push remaining negative fails.
		delta := adj.DaysCount
		if adj.Type == TypeSubtract {
			delta = -adj.DaysCount
		}
		if err := s.ledger.WithTx(tx).AdjustBalance(ctx, adj.EmployeeID, adj.LeaveTypeID, delta); err != nil {
			return err
		}

		now := time.Now().UTC()
		adj.Status = StatusApproved
		adj.ApprovedBy = &approverUUID
		adj.ApprovedAt = &now

		if err := qtx.Update(ctx, adj); err != nil {
			return err
		}
		updated = *adj
		return nil
	})
	if err != nil {
		s.logger.Warn("approve adjustment failed",
			zap.String("adjustment_id", id),
			zap.String("approver_id", approverID),
			zap.Error(err),
		)
		return AdjustmentResponse{}, err
	}

	s.logger.Info("approve adjustment success",
		zap.String("adjustment_id", id),
		zap.String("approver_id", approverID),
	)
	return mapToResponse(updated), nil
}

func mapToResponse(adj Adjustment) AdjustmentResponse {
	resp := AdjustmentResponse{
		ID:          adj.ID.String(),
		EmployeeID:  adj.EmployeeID.String(),
		LeaveTypeID: adj.LeaveTypeID.String(),
		Type:        adj.Type,
		DaysCount:   adj.DaysCount,
		Reason:      adj.Reason,
		Status:      adj.Status,
		CreatedAt:   adj.CreatedAt.Format(time.RFC3339),
	}
	if adj.ApprovedBy != nil {
		v := adj.ApprovedBy.String()
		resp.ApprovedBy = &v
	}
	if adj.ApprovedAt != nil {
		v := adj.ApprovedAt.Format(time.RFC3339)
		resp.ApprovedAt = &v
	}
	return resp
}

func mapToListResponse(adjs []Adjustment) []AdjustmentResponse {
	resp := make([]AdjustmentResponse, len(adjs))
	for i, adj := range adjs {
		resp[i] = mapToResponse(adj)
	}
	return resp
}
