package leavepolicy

import (
	"context"
	"errors"
	"time"

	"go-leave/internal/entitlement"
	leavepolicyerrors "go-leave/internal/leavepolicy/errors"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

//go:generate mockgen -source=leavepolicy_service.go -destination=mock/leavepolicy_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, req CreateLeavePolicyRequest) (LeavePolicyResponse, error)
	GetAll(ctx context.Context) ([]LeavePolicyResponse, error)
	GetByID(ctx context.Context, id string) (LeavePolicyResponse, error)
	Update(ctx context.Context, id string, req UpdateLeavePolicyRequest) (LeavePolicyResponse, error)
	Remove(ctx context.Context, id string) error
	// ExpireDue sweeps policies whose carry-forward expiry has passed and
	// zeroes the carried-over days on the matching entitlements. Returns the
	// number of policies swept.
	ExpireDue(ctx context.Context, now time.Time) (int, error)
}

type service struct {
	db     *gorm.DB
	repo   Repository
	ledger entitlement.Service
	logger *zap.Logger
}

func NewService(db *gorm.DB, repo Repository, ledger entitlement.Service, logger ...*zap.Logger) Service {
	l := zap.L().Named("leavepolicy.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("leavepolicy.service")
	}
	return &service{db: db, repo: repo, ledger: ledger, logger: l}
}

func (s *service) Create(ctx context.Context, req CreateLeavePolicyRequest) (LeavePolicyResponse, error) {
	leaveTypeID, err := uuid.Parse(req.LeaveTypeID)
	if err != nil {
		return LeavePolicyResponse{}, leavepolicyerrors.ErrInvalidLeaveTypeID
	}
	expiry, err := time.Parse("2006-01-02", req.CarryForwardExpiry)
	if err != nil {
		return LeavePolicyResponse{}, leavepolicyerrors.ErrInvalidExpiryDate
	}

	exists, err := s.repo.Exists(ctx, leaveTypeID, req.Year)
	if err != nil {
		return LeavePolicyResponse{}, err
	}
	if exists {
		return LeavePolicyResponse{}, leavepolicyerrors.ErrPolicyExists
	}

	p := &LeavePolicy{
		ID:                  uuid.New(),
		LeaveTypeID:         leaveTypeID,
		Year:                req.Year,
		MaxCarryForwardDays: req.MaxCarryForwardDays,
		CarryForwardExpiry:  expiry,
	}
	if err := s.repo.Create(ctx, p); err != nil {
		s.logger.Error("create leave policy failed",
			zap.String("leave_type_id", req.LeaveTypeID),
			zap.Int("year", req.Year),
			zap.Error(err),
		)
		return LeavePolicyResponse{}, err
	}

	s.logger.Info("create leave policy success", zap.String("policy_id", p.ID.String()))
	return mapToResponse(*p), nil
}

func (s *service) GetAll(ctx context.Context) ([]LeavePolicyResponse, error) {
	policies, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	resp := make([]LeavePolicyResponse, len(policies))
	for i, p := range policies {
		resp[i] = mapToResponse(p)
	}
	return resp, nil
}

func (s *service) GetByID(ctx context.Context, id string) (LeavePolicyResponse, error) {
	pid, err := uuid.Parse(id)
	if err != nil {
		return LeavePolicyResponse{}, leavepolicyerrors.ErrInvalidPolicyID
	}
	p, err := s.repo.FindByID(ctx, pid)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return LeavePolicyResponse{}, leavepolicyerrors.ErrPolicyNotFound
		}
		return LeavePolicyResponse{}, err
	}
	return mapToResponse(*p), nil
}

func (s *service) Update(ctx context.Context, id string, req UpdateLeavePolicyRequest) (LeavePolicyResponse, error) {
	pid, err := uuid.Parse(id)
	if err != nil {
		return LeavePolicyResponse{}, leavepolicyerrors.ErrInvalidPolicyID
	}
	p, err := s.repo.FindByID(ctx, pid)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return LeavePolicyResponse{}, leavepolicyerrors.ErrPolicyNotFound
		}
		return LeavePolicyResponse{}, err
	}

	if req.MaxCarryForwardDays != nil {
		p.MaxCarryForwardDays = *req.MaxCarryForwardDays
	}
	if req.CarryForwardExpiry != "" {
		expiry, err := time.Parse("2006-01-02", req.CarryForwardExpiry)
		if err != nil {
			return LeavePolicyResponse{}, leavepolicyerrors.ErrInvalidExpiryDate
		}
		p.CarryForwardExpiry = expiry
	}

	if err := s.repo.Update(ctx, p); err != nil {
		return LeavePolicyResponse{}, err
	}

	s.logger.Info("update leave policy success", zap.String("policy_id", id))
	return mapToResponse(*p), nil
}

func (s *service) Remove(ctx context.Context, id string) error {
	pid, err := uuid.Parse(id)
	if err != nil {
		return leavepolicyerrors.ErrInvalidPolicyID
	}
	if _, err := s.repo.FindByID(ctx, pid); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return leavepolicyerrors.ErrPolicyNotFound
		}
		return err
	}
	return s.repo.Delete(ctx, pid)
}

func (s *service) ExpireDue(ctx context.Context, now time.Time) (int, error) {
	var swept int

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		qtx := s.repo.WithTx(tx)

		due, err := qtx.FindDueForUpdate(ctx, now)
		if err != nil {
			return err
		}

		ledger := s.ledger.WithTx(tx)
		for i := range due {
			p := &due[i]
			affected, err := ledger.ExpireCarryForward(ctx, p.LeaveTypeID, p.Year)
			if err != nil {
				return err
			}

			expiredAt := now
			p.ExpiredAt = &expiredAt
			if err := qtx.Update(ctx, p); err != nil {
				return err
			}

			s.logger.Info("leave policy swept",
				zap.String("policy_id", p.ID.String()),
				zap.String("leave_type_id", p.LeaveTypeID.String()),
				zap.Int("year", p.Year),
				zap.Int64("entitlements", affected),
			)
			swept++
		}
		return nil
	})
	if err != nil {
		s.logger.Error("expire due policies failed", zap.Error(err))
		return 0, err
	}
	return swept, nil
}

func mapToResponse(p LeavePolicy) LeavePolicyResponse {
	resp := LeavePolicyResponse{
		ID:                  p.ID.String(),
		LeaveTypeID:         p.LeaveTypeID.String(),
		Year:                p.Year,
		MaxCarryForwardDays: p.MaxCarryForwardDays,
		CarryForwardExpiry:  p.CarryForwardExpiry.Format("2006-01-02"),
		CreatedAt:           p.CreatedAt.Format(time.RFC3339),
	}
	if p.ExpiredAt != nil {
		v := p.ExpiredAt.Format(time.RFC3339)
		resp.ExpiredAt = &v
	}
	return resp
}
