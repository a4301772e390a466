package adjustment_test

import (
	"context"
	"testing"

	"go-leave/internal/adjustment"
	adjustmenterrors "go-leave/internal/adjustment/errors"
	"go-leave/internal/entitlement"
	"go-leave/internal/shared/apperror"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

type fakeAdjustmentRepository struct {
	createFn            func(ctx context.Context, adj *adjustment.Adjustment) error
	findByIDFn          func(ctx context.Context, id string) (*adjustment.Adjustment, error)
	findByIDForUpdateFn func(ctx context.Context, id string) (*adjustment.Adjustment, error)
	findByEmployeeFn    func(ctx context.Context, employeeID uuid.UUID) ([]adjustment.Adjustment, error)
	findAllFn           func(ctx context.Context) ([]adjustment.Adjustment, error)
	updateFn            func(ctx context.Context, adj *adjustment.Adjustment) error
}

func (f *fakeAdjustmentRepository) WithTx(tx *gorm.DB) adjustment.Repository { return f }

func (f *fakeAdjustmentRepository) Create(ctx context.Context, adj *adjustment.Adjustment) error {
	if f.createFn != nil {
		return f.createFn(ctx, adj)
	}
	return nil
}

func (f *fakeAdjustmentRepository) FindByID(ctx context.Context, id string) (*adjustment.Adjustment, error) {
	if f.findByIDFn != nil {
		return f.findByIDFn(ctx, id)
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeAdjustmentRepository) FindByIDForUpdate(ctx context.Context, id string) (*adjustment.Adjustment, error) {
	if f.findByIDForUpdateFn != nil {
		return f.findByIDForUpdateFn(ctx, id)
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeAdjustmentRepository) FindByEmployee(ctx context.Context, employeeID uuid.UUID) ([]adjustment.Adjustment, error) {
	if f.findByEmployeeFn != nil {
		return f.findByEmployeeFn(ctx, employeeID)
	}
	return nil, nil
}

func (f *fakeAdjustmentRepository) FindAll(ctx context.Context) ([]adjustment.Adjustment, error) {
	if f.findAllFn != nil {
		return f.findAllFn(ctx)
	}
	return nil, nil
}

func (f *fakeAdjustmentRepository) Update(ctx context.Context, adj *adjustment.Adjustment) error {
	if f.updateFn != nil {
		return f.updateFn(ctx, adj)
	}
	return nil
}

type fakeLedger struct {
	adjustBalanceFn func(ctx context.Context, employeeID, leaveTypeID uuid.UUID, deltaDays int) error
}

func (f *fakeLedger) WithTx(tx *gorm.DB) entitlement.Service { return f }

func (f *fakeLedger) Create(ctx context.Context, req entitlement.CreateEntitlementRequest) (entitlement.EntitlementResponse, error) {
	return entitlement.EntitlementResponse{}, nil
}

func (f *fakeLedger) GetAll(ctx context.Context) ([]entitlement.EntitlementResponse, error) {
	return nil, nil
}

func (f *fakeLedger) GetByEmployee(ctx context.Context, employeeID string) ([]entitlement.EntitlementResponse, error) {
	return nil, nil
}

func (f *fakeLedger) Update(ctx context.Context, employeeID string, req entitlement.UpdateEntitlementRequest) (entitlement.EntitlementResponse, error) {
	return entitlement.EntitlementResponse{}, nil
}

func (f *fakeLedger) RemoveByEmployee(ctx context.Context, employeeID string) error { return nil }

func (f *fakeLedger) Accrue(ctx context.Context, req entitlement.AccrueRequest) (int, error) {
	return 0, nil
}

func (f *fakeLedger) ExpireCarryForward(ctx context.Context, leaveTypeID uuid.UUID, year int) (int64, error) {
	return 0, nil
}

func (f *fakeLedger) ReservePending(ctx context.Context, employeeID, leaveTypeID uuid.UUID, days int) error {
	return nil
}

func (f *fakeLedger) ReleasePending(ctx context.Context, employeeID, leaveTypeID uuid.UUID, days int) error {
	return nil
}

func (f *fakeLedger) ConsumePendingToTaken(ctx context.Context, employeeID, leaveTypeID uuid.UUID, days int) error {
	return nil
}

func (f *fakeLedger) RevertTaken(ctx context.Context, employeeID, leaveTypeID uuid.UUID, days int) error {
	return nil
}

func (f *fakeLedger) AdjustBalance(ctx context.Context, employeeID, leaveTypeID uuid.UUID, deltaDays int) error {
	if f.adjustBalanceFn != nil {
		return f.adjustBalanceFn(ctx, employeeID, leaveTypeID, deltaDays)
	}
	return nil
}

type adjustmentServiceDeps struct {
	sqlMock sqlmock.Sqlmock
	service adjustment.Service
	repo    *fakeAdjustmentRepository
	ledger  *fakeLedger
}

func setupAdjustmentServiceTest(t *testing.T) *adjustmentServiceDeps {
	t.Helper()

	sqlDB, sqlMock, err := sqlmock.New()
	assert.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	gormDB, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{})
	assert.NoError(t, err)

	repo := &fakeAdjustmentRepository{}
	ledger := &fakeLedger{}
	svc := adjustment.NewService(gormDB, repo, ledger)

	return &adjustmentServiceDeps{
		sqlMock: sqlMock,
		service: svc,
		repo:    repo,
		ledger:  ledger,
	}
}

func expectTx(t *testing.T, mock sqlmock.Sqlmock, commit bool) {
	t.Helper()
	mock.ExpectBegin()
	if commit {
		mock.ExpectCommit()
	} else {
		mock.ExpectRollback()
	}
}

func createdAdjustment(adjType string, days int) *adjustment.Adjustment {
	return &adjustment.Adjustment{
		ID:          uuid.New(),
		EmployeeID:  uuid.New(),
		LeaveTypeID: uuid.New(),
		Type:        adjType,
		DaysCount:   days,
		Reason:      "annual review",
		Status:      adjustment.StatusCreated,
	}
}

func TestAdjustmentService_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("success does not touch the ledger", func(t *testing.T) {
		deps := setupAdjustmentServiceTest(t)

		ledgerCalled := false
		deps.ledger.adjustBalanceFn = func(ctx context.Context, eid, ltid uuid.UUID, delta int) error {
			ledgerCalled = true
			return nil
		}

		resp, err := deps.service.Create(ctx, adjustment.CreateAdjustmentRequest{
			EmployeeID:  uuid.New().String(),
			LeaveTypeID: uuid.New().String(),
			Type:        adjustment.TypeAdd,
			DaysCount:   3,
			Reason:      "overtime compensation",
		})

		assert.NoError(t, err)
		assert.Equal(t, adjustment.StatusCreated, resp.Status)
		assert.Nil(t, resp.ApprovedBy)
		assert.False(t, ledgerCalled)
	})

	t.Run("negative zero days", func(t *testing.T) {
		deps := setupAdjustmentServiceTest(t)

		_, err := deps.service.Create(ctx, adjustment.CreateAdjustmentRequest{
			EmployeeID:  uuid.New().String(),
			LeaveTypeID: uuid.New().String(),
			Type:        adjustment.TypeAdd,
			DaysCount:   0,
		})

		assert.ErrorIs(t, err, adjustmenterrors.ErrInvalidDays)
	})

	t.Run("negative invalid employee id", func(t *testing.T) {
		deps := setupAdjustmentServiceTest(t)

		_, err := deps.service.Create(ctx, adjustment.CreateAdjustmentRequest{
			EmployeeID:  "not-a-uuid",
			LeaveTypeID: uuid.New().String(),
			Type:        adjustment.TypeAdd,
			DaysCount:   2,
		})

		assert.ErrorIs(t, err, adjustmenterrors.ErrInvalidEmployeeID)
	})
}

func TestAdjustmentService_Approve(t *testing.T) {
	ctx := context.Background()
	approverID := uuid.New().String()

	t.Run("success addition debits the balance", func(t *testing.T) {
		deps := setupAdjustmentServiceTest(t)
		expectTx(t, deps.sqlMock, true)

		adj := createdAdjustment(adjustment.TypeAdd, 3)
		applied := 0
		deps.repo.findByIDForUpdateFn = func(ctx context.Context, id string) (*adjustment.Adjustment, error) {
			return adj, nil
		}
		deps.ledger.adjustBalanceFn = func(ctx context.Context, eid, ltid uuid.UUID, delta int) error {
			applied = delta
			return nil
		}

		resp, err := deps.service.Approve(ctx, adj.ID.String(), approverID)

		assert.NoError(t, err)
		assert.Equal(t, 3, applied)
		assert.Equal(t, adjustment.StatusApproved, resp.Status)
		assert.NotNil(t, resp.ApprovedBy)
		assert.Equal(t, approverID, *resp.ApprovedBy)
		assert.NotNil(t, resp.ApprovedAt)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("success subtraction restores days", func(t *testing.T) {
		deps := setupAdjustmentServiceTest(t)
		expectTx(t, deps.sqlMock, true)

		adj := createdAdjustment(adjustment.TypeSubtract, 4)
		applied := 0
		deps.repo.findByIDForUpdateFn = func(ctx context.Context, id string) (*adjustment.Adjustment, error) {
			return adj, nil
		}
		deps.ledger.adjustBalanceFn = func(ctx context.Context, eid, ltid uuid.UUID, delta int) error {
			applied = delta
			return nil
		}

		_, err := deps.service.Approve(ctx, adj.ID.String(), approverID)

		assert.NoError(t, err)
		assert.Equal(t, -4, applied)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("negative second approve is rejected", func(t *testing.T) {
		deps := setupAdjustmentServiceTest(t)
		expectTx(t, deps.sqlMock, false)

		adj := createdAdjustment(adjustment.TypeAdd, 3)
		adj.Status = adjustment.StatusApproved
		ledgerCalled := false
		deps.repo.findByIDForUpdateFn = func(ctx context.Context, id string) (*adjustment.Adjustment, error) {
			return adj, nil
		}
		deps.ledger.adjustBalanceFn = func(ctx context.Context, eid, ltid uuid.UUID, delta int) error {
			ledgerCalled = true
			return nil
		}

		_, err := deps.service.Approve(ctx, adj.ID.String(), approverID)

		assert.ErrorIs(t, err, adjustmenterrors.ErrAdjustmentNotCreated)
		assert.False(t, ledgerCalled)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("negative insufficient balance rolls back", func(t *testing.T) {
		deps := setupAdjustmentServiceTest(t)
		expectTx(t, deps.sqlMock, false)

		adj := createdAdjustment(adjustment.TypeAdd, 10)
		updated := false
		deps.repo.findByIDForUpdateFn = func(ctx context.Context, id string) (*adjustment.Adjustment, error) {
			return adj, nil
		}
		deps.ledger.adjustBalanceFn = func(ctx context.Context, eid, ltid uuid.UUID, delta int) error {
			return apperror.New(apperror.CodeInsufficientBalance, "insufficient balance", 400)
		}
		deps.repo.updateFn = func(ctx context.Context, adj *adjustment.Adjustment) error {
			updated = true
			return nil
		}

		_, err := deps.service.Approve(ctx, adj.ID.String(), approverID)

		assert.Error(t, err)
		var appErr *apperror.AppError
		assert.ErrorAs(t, err, &appErr)
		assert.Equal(t, apperror.CodeInsufficientBalance, appErr.Code)
		assert.False(t, updated)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("negative not found", func(t *testing.T) {
		deps := setupAdjustmentServiceTest(t)
		expectTx(t, deps.sqlMock, false)

		_, err := deps.service.Approve(ctx, uuid.New().String(), approverID)

		assert.ErrorIs(t, err, adjustmenterrors.ErrAdjustmentNotFound)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("negative invalid approver", func(t *testing.T) {
		deps := setupAdjustmentServiceTest(t)

		_, err := deps.service.Approve(ctx, uuid.New().String(), "not-a-uuid")

		assert.ErrorIs(t, err, adjustmenterrors.ErrInvalidApproverID)
	})
}
