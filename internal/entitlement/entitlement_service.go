package entitlement

import (
	"context"
	"errors"

	entitlementerrors "go-leave/internal/entitlement/errors"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Service is the entitlement ledger. The five balance operations
// (ReservePending, ReleasePending, ConsumePendingToTaken, RevertTaken,
// AdjustBalance) are the only writers of the balance fields; each one locks
// the entitlement row, validates, recomputes remaining and rejects the write
// if remaining would go negative.
//
//go:generate mockgen -source=entitlement_service.go -destination=mock/entitlement_service_mock.go -package=mock
type Service interface {
	// WithTx returns a Service whose operations run inside the caller's
	// transaction instead of opening their own. Used by the request state
	// machine and the adjustment processor so a ledger write and the
	// corresponding record write commit or roll back together.
	WithTx(tx *gorm.DB) Service

	Create(ctx context.Context, req CreateEntitlementRequest) (EntitlementResponse, error)
	GetAll(ctx context.Context) ([]EntitlementResponse, error)
	GetByEmployee(ctx context.Context, employeeID string) ([]EntitlementResponse, error)
	Update(ctx context.Context, employeeID string, req UpdateEntitlementRequest) (EntitlementResponse, error)
	RemoveByEmployee(ctx context.Context, employeeID string) error
	Accrue(ctx context.Context, req AccrueRequest) (int, error)
	ExpireCarryForward(ctx context.Context, leaveTypeID uuid.UUID, year int) (int64, error)

	ReservePending(ctx context.Context, employeeID, leaveTypeID uuid.UUID, days int) error
	ReleasePending(ctx context.Context, employeeID, leaveTypeID uuid.UUID, days int) error
	ConsumePendingToTaken(ctx context.Context, employeeID, leaveTypeID uuid.UUID, days int) error
	RevertTaken(ctx context.Context, employeeID, leaveTypeID uuid.UUID, days int) error
	AdjustBalance(ctx context.Context, employeeID, leaveTypeID uuid.UUID, deltaDays int) error
}

type service struct {
	db     *gorm.DB
	tx     *gorm.DB
	repo   Repository
	logger *zap.Logger
}

func NewService(db *gorm.DB, repo Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("entitlement.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("entitlement.service")
	}
	return &service{db: db, repo: repo, logger: l}
}

func (s *service) WithTx(tx *gorm.DB) Service {
	return &service{db: s.db, tx: tx, repo: s.repo.WithTx(tx), logger: s.logger}
}

// transact runs fn inside the caller's transaction when one was attached via
// WithTx, otherwise it opens its own.
func (s *service) transact(ctx context.Context, fn func(repo Repository) error) error {
	if s.tx != nil {
		return fn(s.repo)
	}
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(s.repo.WithTx(tx))
	})
}

func (s *service) lockedEntitlement(ctx context.Context, repo Repository, employeeID, leaveTypeID uuid.UUID) (*Entitlement, error) {
	ent, err := repo.FindByEmployeeAndTypeForUpdate(ctx, employeeID, leaveTypeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, entitlementerrors.ErrEntitlementNotFound
		}
		return nil, err
	}
	return ent, nil
}

// ============================================================
// Ledger operations
// ============================================================

func (s *service) ReservePending(ctx context.Context, employeeID, leaveTypeID uuid.UUID, days int) error {
	if days <= 0 {
		return entitlementerrors.ErrInvalidDays
	}
	return s.transact(ctx, func(repo Repository) error {
		ent, err := s.lockedEntitlement(ctx, repo, employeeID, leaveTypeID)
		if err != nil {
			return err
		}

		if ent.Remaining < days {
			s.logger.Warn("reserve pending refused",
				zap.String("employee_id", employeeID.String()),
				zap.String("leave_type_id", leaveTypeID.String()),
				zap.Int("days", days),
				zap.Int("remaining", ent.Remaining),
			)
			return entitlementerrors.ErrInsufficientBalance
		}

		ent.Pending += days
		ent.recomputeRemaining()
		if ent.Remaining < 0 {
			return entitlementerrors.ErrInsufficientBalance
		}

		return repo.Save(ctx, ent)
	})
}

func (s *service) ReleasePending(ctx context.Context, employeeID, leaveTypeID uuid.UUID, days int) error {
	if days <= 0 {
		return entitlementerrors.ErrInvalidDays
	}
	return s.transact(ctx, func(repo Repository) error {
		ent, err := s.lockedEntitlement(ctx, repo, employeeID, leaveTypeID)
		if err != nil {
			return err
		}

		if ent.Pending < days {
			s.logger.Error("pending balance underflow",
				zap.String("employee_id", employeeID.String()),
				zap.String("leave_type_id", leaveTypeID.String()),
				zap.Int("days", days),
				zap.Int("pending", ent.Pending),
			)
			return entitlementerrors.ErrPendingInconsistent
		}

		ent.Pending -= days
		ent.recomputeRemaining()
		if ent.Remaining < 0 {
			return entitlementerrors.ErrInsufficientBalance
		}

		return repo.Save(ctx, ent)
	})
}

func (s *service) ConsumePendingToTaken(ctx context.Context, employeeID, leaveTypeID uuid.UUID, days int) error {
	if days <= 0 {
		return entitlementerrors.ErrInvalidDays
	}
	return s.transact(ctx, func(repo Repository) error {
		ent, err := s.lockedEntitlement(ctx, repo, employeeID, leaveTypeID)
		if err != nil {
			return err
		}

		if ent.Pending < days {
			return entitlementerrors.ErrInsufficientPending
		}

		ent.Pending -= days
		ent.Taken += days
		ent.recomputeRemaining()
		// Cannot happen after a successful reservation, checked anyway.
		if ent.Remaining < 0 {
			return entitlementerrors.ErrInsufficientBalance
		}

		return repo.Save(ctx, ent)
	})
}

func (s *service) RevertTaken(ctx context.Context, employeeID, leaveTypeID uuid.UUID, days int) error {
	if days <= 0 {
		return entitlementerrors.ErrInvalidDays
	}
	return s.transact(ctx, func(repo Repository) error {
		ent, err := s.lockedEntitlement(ctx, repo, employeeID, leaveTypeID)
		if err != nil {
			return err
		}

		if ent.Taken < days {
			s.logger.Error("taken balance underflow",
				zap.String("employee_id", employeeID.String()),
				zap.String("leave_type_id", leaveTypeID.String()),
				zap.Int("days", days),
				zap.Int("taken", ent.Taken),
			)
			return entitlementerrors.ErrTakenInconsistent
		}

		ent.Taken -= days
		ent.recomputeRemaining()
		if ent.Remaining < 0 {
			return entitlementerrors.ErrInsufficientBalance
		}

		return repo.Save(ctx, ent)
	})
}

func (s *service) AdjustBalance(ctx context.Context, employeeID, leaveTypeID uuid.UUID, deltaDays int) error {
	return s.transact(ctx, func(repo Repository) error {
		ent, err := s.lockedEntitlement(ctx, repo, employeeID, leaveTypeID)
		if err != nil {
			return err
		}

		ent.Taken += deltaDays
		ent.recomputeRemaining()
		if ent.Remaining < 0 {
			return entitlementerrors.ErrInsufficientBalance
		}

		return repo.Save(ctx, ent)
	})
}

func (s *service) ExpireCarryForward(ctx context.Context, leaveTypeID uuid.UUID, year int) (int64, error) {
	var affected, deficits int64
	err := s.transact(ctx, func(repo Repository) error {
		n, err := repo.ExpireCarryForward(ctx, leaveTypeID, year)
		if err != nil {
			return err
		}
		affected = n
		if affected == 0 {
			return nil
		}
		deficits, err = repo.CountClampedDeficits(ctx, leaveTypeID, year)
		return err
	})
	if err != nil {
		return 0, err
	}
	if affected > 0 {
		s.logger.Info("carry forward expired",
			zap.String("leave_type_id", leaveTypeID.String()),
			zap.Int("year", year),
			zap.Int64("entitlements", affected),
		)
	}
	// A deficit means pending days were funded by the expired carry-forward;
	// remaining stays clamped at zero until the pending requests resolve.
	if deficits > 0 {
		s.logger.Warn("carry forward expiry left clamped deficits",
			zap.String("leave_type_id", leaveTypeID.String()),
			zap.Int("year", year),
			zap.Int64("entitlements", deficits),
		)
	}
	return affected, nil
}

// ============================================================
// CRUD and accrual
// ============================================================

func (s *service) Create(ctx context.Context, req CreateEntitlementRequest) (EntitlementResponse, error) {
	s.logger.Debug("create entitlement requested",
		zap.String("employee_id", req.EmployeeID),
		zap.String("leave_type_id", req.LeaveTypeID),
		zap.Int("year", req.Year),
	)

	employeeID, err := uuid.Parse(req.EmployeeID)
	if err != nil {
		return EntitlementResponse{}, entitlementerrors.ErrInvalidEmployeeID
	}
	leaveTypeID, err := uuid.Parse(req.LeaveTypeID)
	if err != nil {
		return EntitlementResponse{}, entitlementerrors.ErrInvalidLeaveTypeID
	}

	ent := &Entitlement{
		ID:                uuid.New(),
		EmployeeID:        employeeID,
		LeaveTypeID:       leaveTypeID,
		Year:              req.Year,
		YearlyEntitlement: req.TotalDays,
		CarryForward:      req.CarriedOverDays,
		Taken:             0,
		Pending:           0,
		Remaining:         req.TotalDays + req.CarriedOverDays,
	}

	err = s.transact(ctx, func(repo Repository) error {
		exists, err := repo.Exists(ctx, employeeID, leaveTypeID, req.Year)
		if err != nil {
			return err
		}
		if exists {
			return entitlementerrors.ErrEntitlementExists
		}
		return repo.Create(ctx, ent)
	})
	if err != nil {
		return EntitlementResponse{}, err
	}

	s.logger.Info("create entitlement success",
		zap.String("entitlement_id", ent.ID.String()),
		zap.String("employee_id", req.EmployeeID),
	)
	return mapToResponse(*ent), nil
}

func (s *service) GetAll(ctx context.Context) ([]EntitlementResponse, error) {
	ents, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	return mapToListResponse(ents), nil
}

func (s *service) GetByEmployee(ctx context.Context, employeeID string) ([]EntitlementResponse, error) {
	id, err := uuid.Parse(employeeID)
	if err != nil {
		return nil, entitlementerrors.ErrInvalidEmployeeID
	}
	ents, err := s.repo.FindByEmployee(ctx, id)
	if err != nil {
		return nil, err
	}
	return mapToListResponse(ents), nil
}

func (s *service) Update(ctx context.Context, employeeID string, req UpdateEntitlementRequest) (EntitlementResponse, error) {
	empID, err := uuid.Parse(employeeID)
	if err != nil {
		return EntitlementResponse{}, entitlementerrors.ErrInvalidEmployeeID
	}
	typeID, err := uuid.Parse(req.LeaveTypeID)
	if err != nil {
		return EntitlementResponse{}, entitlementerrors.ErrInvalidLeaveTypeID
	}

	var updated Entitlement
	err = s.transact(ctx, func(repo Repository) error {
		ent, err := s.lockedEntitlement(ctx, repo, empID, typeID)
		if err != nil {
			return err
		}

		if req.TotalDays != nil {
			ent.YearlyEntitlement = *req.TotalDays
		}
		if req.UsedDays != nil {
			ent.Taken = *req.UsedDays
		}
		if req.PendingDays != nil {
			ent.Pending = *req.PendingDays
		}
		ent.recomputeRemaining()
		if ent.Remaining < 0 {
			return entitlementerrors.ErrInsufficientBalance
		}

		if err := repo.Save(ctx, ent); err != nil {
			return err
		}
		updated = *ent
		return nil
	})
	if err != nil {
		return EntitlementResponse{}, err
	}

	s.logger.Info("update entitlement success",
		zap.String("entitlement_id", updated.ID.String()),
		zap.Int("remaining", updated.Remaining),
	)
	return mapToResponse(updated), nil
}

// RemoveByEmployee is administrative cleanup; no balance check applies.
func (s *service) RemoveByEmployee(ctx context.Context, employeeID string) error {
	id, err := uuid.Parse(employeeID)
	if err != nil {
		return entitlementerrors.ErrInvalidEmployeeID
	}
	return s.transact(ctx, func(repo Repository) error {
		return repo.DeleteByEmployee(ctx, id)
	})
}

// Accrue adds days to the yearly entitlement of one employee or, when no
// employee is given, of every employee holding the leave type.
func (s *service) Accrue(ctx context.Context, req AccrueRequest) (int, error) {
	typeID, err := uuid.Parse(req.LeaveTypeID)
	if err != nil {
		return 0, entitlementerrors.ErrInvalidLeaveTypeID
	}
	if req.Days <= 0 {
		return 0, entitlementerrors.ErrInvalidDays
	}

	applied := 0
	err = s.transact(ctx, func(repo Repository) error {
		var ents []Entitlement
		if req.EmployeeID != "" {
			empID, err := uuid.Parse(req.EmployeeID)
			if err != nil {
				return entitlementerrors.ErrInvalidEmployeeID
			}
			ent, err := s.lockedEntitlement(ctx, repo, empID, typeID)
			if err != nil {
				return err
			}
			ents = []Entitlement{*ent}
		} else {
			all, err := repo.FindAll(ctx)
			if err != nil {
				return err
			}
			for _, ent := range all {
				if ent.LeaveTypeID == typeID {
					ents = append(ents, ent)
				}
			}
		}

		for i := range ents {
			ent := ents[i]
			ent.YearlyEntitlement += req.Days
			ent.recomputeRemaining()
			if err := repo.Save(ctx, &ent); err != nil {
				return err
			}
			applied++
		}
		return nil
	})
	if err != nil {
		return 0, err
	}

	s.logger.Info("accrual applied",
		zap.String("leave_type_id", req.LeaveTypeID),
		zap.Int("days", req.Days),
		zap.Int("applied", applied),
	)
	return applied, nil
}

func mapToResponse(e Entitlement) EntitlementResponse {
	return EntitlementResponse{
		ID:                e.ID.String(),
		EmployeeID:        e.EmployeeID.String(),
		LeaveTypeID:       e.LeaveTypeID.String(),
		Year:              e.Year,
		YearlyEntitlement: e.YearlyEntitlement,
		CarryForward:      e.CarryForward,
		Taken:             e.Taken,
		Pending:           e.Pending,
		Remaining:         e.Remaining,
	}
}

func mapToListResponse(ents []Entitlement) []EntitlementResponse {
	resp := make([]EntitlementResponse, len(ents))
	for i, e := range ents {
		resp[i] = mapToResponse(e)
	}
	return resp
}
