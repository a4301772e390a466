package leaverequest_test

import (
	"context"
	"testing"
	"time"

	"go-leave/internal/entitlement"
	"go-leave/internal/leaverequest"
	leaverequesterrors "go-leave/internal/leaverequest/errors"
	"go-leave/internal/messaging/kafka"
	"go-leave/internal/shared/apperror"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

type fakeRequestRepository struct {
	createFn               func(ctx context.Context, lr *leaverequest.LeaveRequest) error
	findByIDFn             func(ctx context.Context, id string) (*leaverequest.LeaveRequest, error)
	findByIDForUpdateFn    func(ctx context.Context, id string) (*leaverequest.LeaveRequest, error)
	findAllFn              func(ctx context.Context) ([]leaverequest.LeaveRequest, error)
	findByEmployeeFn       func(ctx context.Context, employeeID uuid.UUID) ([]leaverequest.LeaveRequest, error)
	findApprovedUpcomingFn func(ctx context.Context, employeeID uuid.UUID, from time.Time) ([]leaverequest.LeaveRequest, error)
	filterFn               func(ctx context.Context, q leaverequest.FilterQuery) ([]leaverequest.LeaveRequest, error)
	updateFn               func(ctx context.Context, lr *leaverequest.LeaveRequest) error
}

func (f *fakeRequestRepository) WithTx(tx *gorm.DB) leaverequest.Repository { return f }

func (f *fakeRequestRepository) Create(ctx context.Context, lr *leaverequest.LeaveRequest) error {
	if f.createFn != nil {
		return f.createFn(ctx, lr)
	}
	return nil
}

func (f *fakeRequestRepository) FindByID(ctx context.Context, id string) (*leaverequest.LeaveRequest, error) {
	if f.findByIDFn != nil {
		return f.findByIDFn(ctx, id)
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeRequestRepository) FindByIDForUpdate(ctx context.Context, id string) (*leaverequest.LeaveRequest, error) {
	if f.findByIDForUpdateFn != nil {
		return f.findByIDForUpdateFn(ctx, id)
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeRequestRepository) FindAll(ctx context.Context) ([]leaverequest.LeaveRequest, error) {
	if f.findAllFn != nil {
		return f.findAllFn(ctx)
	}
	return nil, nil
}

func (f *fakeRequestRepository) FindByEmployee(ctx context.Context, employeeID uuid.UUID) ([]leaverequest.LeaveRequest, error) {
	if f.findByEmployeeFn != nil {
		return f.findByEmployeeFn(ctx, employeeID)
	}
	return nil, nil
}

func (f *fakeRequestRepository) FindApprovedUpcoming(ctx context.Context, employeeID uuid.UUID, from time.Time) ([]leaverequest.LeaveRequest, error) {
	if f.findApprovedUpcomingFn != nil {
		return f.findApprovedUpcomingFn(ctx, employeeID, from)
	}
	return nil, nil
}

func (f *fakeRequestRepository) Filter(ctx context.Context, q leaverequest.FilterQuery) ([]leaverequest.LeaveRequest, error) {
	if f.filterFn != nil {
		return f.filterFn(ctx, q)
	}
	return nil, nil
}

func (f *fakeRequestRepository) Update(ctx context.Context, lr *leaverequest.LeaveRequest) error {
	if f.updateFn != nil {
		return f.updateFn(ctx, lr)
	}
	return nil
}

type fakeLedger struct {
	reservePendingFn        func(ctx context.Context, employeeID, leaveTypeID uuid.UUID, days int) error
	releasePendingFn        func(ctx context.Context, employeeID, leaveTypeID uuid.UUID, days int) error
	consumePendingToTakenFn func(ctx context.Context, employeeID, leaveTypeID uuid.UUID, days int) error
	revertTakenFn           func(ctx context.Context, employeeID, leaveTypeID uuid.UUID, days int) error
	adjustBalanceFn         func(ctx context.Context, employeeID, leaveTypeID uuid.UUID, deltaDays int) error
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
	if f.reservePendingFn != nil {
		return f.reservePendingFn(ctx, employeeID, leaveTypeID, days)
	}
	return nil
}

func (f *fakeLedger) ReleasePending(ctx context.Context, employeeID, leaveTypeID uuid.UUID, days int) error {
	if f.releasePendingFn != nil {
		return f.releasePendingFn(ctx, employeeID, leaveTypeID, days)
	}
	return nil
}

func (f *fakeLedger) ConsumePendingToTaken(ctx context.Context, employeeID, leaveTypeID uuid.UUID, days int) error {
	if f.consumePendingToTakenFn != nil {
		return f.consumePendingToTakenFn(ctx, employeeID, leaveTypeID, days)
	}
	return nil
}

func (f *fakeLedger) RevertTaken(ctx context.Context, employeeID, leaveTypeID uuid.UUID, days int) error {
	if f.revertTakenFn != nil {
		return f.revertTakenFn(ctx, employeeID, leaveTypeID, days)
	}
	return nil
}

func (f *fakeLedger) AdjustBalance(ctx context.Context, employeeID, leaveTypeID uuid.UUID, deltaDays int) error {
	if f.adjustBalanceFn != nil {
		return f.adjustBalanceFn(ctx, employeeID, leaveTypeID, deltaDays)
	}
	return nil
}

type fakeCounterRepository struct {
	next int64
}

func (f *fakeCounterRepository) GetNextValue(ctx context.Context, counterType string) (int64, error) {
	f.next++
	return f.next, nil
}

type fakeOutboxRepository struct {
	created []kafka.OutboxEvent
}

func (f *fakeOutboxRepository) WithTx(tx *gorm.DB) kafka.OutboxRepository { return f }

func (f *fakeOutboxRepository) Create(ctx context.Context, event kafka.OutboxEvent) error {
	f.created = append(f.created, event)
	return nil
}

func (f *fakeOutboxRepository) ListPending(ctx context.Context, limit int) ([]kafka.OutboxEvent, error) {
	return nil, nil
}

func (f *fakeOutboxRepository) MarkSent(ctx context.Context, id string) error { return nil }

func (f *fakeOutboxRepository) MarkFailed(ctx context.Context, id string, reason string) error {
	return nil
}

type requestServiceDeps struct {
	sqlMock sqlmock.Sqlmock
	service leaverequest.Service
	repo    *fakeRequestRepository
	ledger  *fakeLedger
	outbox  *fakeOutboxRepository
}

func setupRequestServiceTest(t *testing.T) *requestServiceDeps {
	t.Helper()

	sqlDB, sqlMock, err := sqlmock.New()
	assert.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	gormDB, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{})
	assert.NoError(t, err)

	repo := &fakeRequestRepository{}
	ledger := &fakeLedger{}
	outbox := &fakeOutboxRepository{}
	svc := leaverequest.NewService(gormDB, repo, ledger, &fakeCounterRepository{}, outbox)

	return &requestServiceDeps{
		sqlMock: sqlMock,
		service: svc,
		repo:    repo,
		ledger:  ledger,
		outbox:  outbox,
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

func pendingRequest(employeeID, leaveTypeID uuid.UUID, days int) *leaverequest.LeaveRequest {
	start := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)
	return &leaverequest.LeaveRequest{
		ID:            uuid.New(),
		RequestNumber: "LR-000042",
		EmployeeID:    employeeID,
		LeaveTypeID:   leaveTypeID,
		StartDate:     start,
		EndDate:       start.AddDate(0, 0, days-1),
		DurationDays:  days,
		Status:        leaverequest.StatusPending,
	}
}

func TestLeaveRequestService_Create(t *testing.T) {
	ctx := context.Background()
	employeeID := uuid.New().String()
	leaveTypeID := uuid.New().String()

	t.Run("success reserves duration", func(t *testing.T) {
		deps := setupRequestServiceTest(t)
		expectTx(t, deps.sqlMock, true)

		reserved := 0
		deps.ledger.reservePendingFn = func(ctx context.Context, eid, ltid uuid.UUID, days int) error {
			assert.Equal(t, employeeID, eid.String())
			assert.Equal(t, leaveTypeID, ltid.String())
			reserved = days
			return nil
		}
		deps.repo.createFn = func(ctx context.Context, lr *leaverequest.LeaveRequest) error {
			assert.Equal(t, leaverequest.StatusPending, lr.Status)
			assert.Equal(t, 5, lr.DurationDays)
			assert.NotEmpty(t, lr.RequestNumber)
			return nil
		}

		resp, err := deps.service.Create(ctx, leaverequest.CreateLeaveRequestRequest{
			EmployeeID:  employeeID,
			LeaveTypeID: leaveTypeID,
			StartDate:   "2026-06-01",
			EndDate:     "2026-06-05",
		})

		assert.NoError(t, err)
		assert.Equal(t, 5, reserved)
		assert.Equal(t, leaverequest.StatusPending, resp.Status)
		assert.Equal(t, "LR-000001", resp.RequestNumber)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("negative insufficient balance leaves no request behind", func(t *testing.T) {
		deps := setupRequestServiceTest(t)
		expectTx(t, deps.sqlMock, false)

		created := false
		deps.ledger.reservePendingFn = func(ctx context.Context, eid, ltid uuid.UUID, days int) error {
			assert.Equal(t, 25, days)
			return apperror.New(apperror.CodeInsufficientBalance, "insufficient balance", 400)
		}
		deps.repo.createFn = func(ctx context.Context, lr *leaverequest.LeaveRequest) error {
			created = true
			return nil
		}

		_, err := deps.service.Create(ctx, leaverequest.CreateLeaveRequestRequest{
			EmployeeID:  employeeID,
			LeaveTypeID: leaveTypeID,
			StartDate:   "2026-06-01",
			EndDate:     "2026-06-25",
		})

		assert.Error(t, err)
		var appErr *apperror.AppError
		assert.ErrorAs(t, err, &appErr)
		assert.Equal(t, apperror.CodeInsufficientBalance, appErr.Code)
		assert.False(t, created)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("negative end before start", func(t *testing.T) {
		deps := setupRequestServiceTest(t)

		_, err := deps.service.Create(ctx, leaverequest.CreateLeaveRequestRequest{
			EmployeeID:  employeeID,
			LeaveTypeID: leaveTypeID,
			StartDate:   "2026-06-10",
			EndDate:     "2026-06-01",
		})

		assert.ErrorIs(t, err, leaverequesterrors.ErrInvalidDateRange)
	})

	t.Run("negative malformed date", func(t *testing.T) {
		deps := setupRequestServiceTest(t)

		_, err := deps.service.Create(ctx, leaverequest.CreateLeaveRequestRequest{
			EmployeeID:  employeeID,
			LeaveTypeID: leaveTypeID,
			StartDate:   "01-06-2026",
			EndDate:     "2026-06-05",
		})

		assert.ErrorIs(t, err, leaverequesterrors.ErrInvalidDateFormat)
	})
}

func TestLeaveRequestService_ManagerApprove(t *testing.T) {
	ctx := context.Background()
	employeeID := uuid.New()
	leaveTypeID := uuid.New()
	approverID := uuid.New().String()

	t.Run("success moves pending to taken", func(t *testing.T) {
		deps := setupRequestServiceTest(t)
		expectTx(t, deps.sqlMock, true)

		lr := pendingRequest(employeeID, leaveTypeID, 5)
		consumed := 0
		deps.repo.findByIDForUpdateFn = func(ctx context.Context, id string) (*leaverequest.LeaveRequest, error) {
			return lr, nil
		}
		deps.ledger.consumePendingToTakenFn = func(ctx context.Context, eid, ltid uuid.UUID, days int) error {
			consumed = days
			return nil
		}

		resp, err := deps.service.ManagerApprove(ctx, lr.ID.String(), approverID)

		assert.NoError(t, err)
		assert.Equal(t, 5, consumed)
		assert.Equal(t, leaverequest.StatusApproved, resp.Status)
		assert.Len(t, resp.ApprovalFlow, 1)
		assert.Equal(t, leaverequest.RoleManager, resp.ApprovalFlow[0].Role)
		assert.Equal(t, approverID, resp.ApprovalFlow[0].DecidedBy)
		assert.Len(t, deps.outbox.created, 1)
		assert.Equal(t, "leave.approved", deps.outbox.created[0].EventType)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("negative not pending", func(t *testing.T) {
		deps := setupRequestServiceTest(t)
		expectTx(t, deps.sqlMock, false)

		lr := pendingRequest(employeeID, leaveTypeID, 5)
		lr.Status = leaverequest.StatusApproved
		deps.repo.findByIDForUpdateFn = func(ctx context.Context, id string) (*leaverequest.LeaveRequest, error) {
			return lr, nil
		}

		_, err := deps.service.ManagerApprove(ctx, lr.ID.String(), approverID)

		assert.ErrorIs(t, err, leaverequesterrors.ErrRequestNotPending)
		assert.Empty(t, deps.outbox.created)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("negative not found", func(t *testing.T) {
		deps := setupRequestServiceTest(t)
		expectTx(t, deps.sqlMock, false)

		deps.repo.findByIDForUpdateFn = func(ctx context.Context, id string) (*leaverequest.LeaveRequest, error) {
			return nil, gorm.ErrRecordNotFound
		}

		_, err := deps.service.ManagerApprove(ctx, uuid.New().String(), approverID)

		assert.ErrorIs(t, err, leaverequesterrors.ErrRequestNotFound)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})
}

func TestLeaveRequestService_ManagerReject(t *testing.T) {
	ctx := context.Background()
	employeeID := uuid.New()
	leaveTypeID := uuid.New()
	approverID := uuid.New().String()

	t.Run("success releases reservation", func(t *testing.T) {
		deps := setupRequestServiceTest(t)
		expectTx(t, deps.sqlMock, true)

		lr := pendingRequest(employeeID, leaveTypeID, 4)
		released := 0
		deps.repo.findByIDForUpdateFn = func(ctx context.Context, id string) (*leaverequest.LeaveRequest, error) {
			return lr, nil
		}
		deps.ledger.releasePendingFn = func(ctx context.Context, eid, ltid uuid.UUID, days int) error {
			released = days
			return nil
		}

		resp, err := deps.service.ManagerReject(ctx, lr.ID.String(), approverID, "coverage gap")

		assert.NoError(t, err)
		assert.Equal(t, 4, released)
		assert.Equal(t, leaverequest.StatusRejected, resp.Status)
		assert.Len(t, resp.ApprovalFlow, 1)
		assert.Equal(t, "coverage gap", resp.ApprovalFlow[0].Comment)
		assert.Len(t, deps.outbox.created, 1)
		assert.Equal(t, "leave.rejected", deps.outbox.created[0].EventType)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("success default reason", func(t *testing.T) {
		deps := setupRequestServiceTest(t)
		expectTx(t, deps.sqlMock, true)

		lr := pendingRequest(employeeID, leaveTypeID, 4)
		deps.repo.findByIDForUpdateFn = func(ctx context.Context, id string) (*leaverequest.LeaveRequest, error) {
			return lr, nil
		}

		resp, err := deps.service.ManagerReject(ctx, lr.ID.String(), approverID, "")

		assert.NoError(t, err)
		assert.Equal(t, "rejected", resp.ApprovalFlow[0].Comment)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("negative not pending", func(t *testing.T) {
		deps := setupRequestServiceTest(t)
		expectTx(t, deps.sqlMock, false)

		lr := pendingRequest(employeeID, leaveTypeID, 4)
		lr.Status = leaverequest.StatusCanceled
		deps.repo.findByIDForUpdateFn = func(ctx context.Context, id string) (*leaverequest.LeaveRequest, error) {
			return lr, nil
		}

		_, err := deps.service.ManagerReject(ctx, lr.ID.String(), approverID, "")

		assert.ErrorIs(t, err, leaverequesterrors.ErrRequestNotPending)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})
}

func TestLeaveRequestService_Update(t *testing.T) {
	ctx := context.Background()
	employeeID := uuid.New()
	leaveTypeID := uuid.New()

	t.Run("success longer period reserves delta", func(t *testing.T) {
		deps := setupRequestServiceTest(t)
		expectTx(t, deps.sqlMock, true)

		lr := pendingRequest(employeeID, leaveTypeID, 5)
		reserved := 0
		deps.repo.findByIDForUpdateFn = func(ctx context.Context, id string) (*leaverequest.LeaveRequest, error) {
			return lr, nil
		}
		deps.ledger.reservePendingFn = func(ctx context.Context, eid, ltid uuid.UUID, days int) error {
			reserved = days
			return nil
		}

		resp, err := deps.service.Update(ctx, lr.ID.String(), leaverequest.UpdateLeaveRequestRequest{
			EndDate: "2026-06-08",
		})

		assert.NoError(t, err)
		assert.Equal(t, 3, reserved)
		assert.Equal(t, 8, resp.DurationDays)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("success shorter period releases delta", func(t *testing.T) {
		deps := setupRequestServiceTest(t)
		expectTx(t, deps.sqlMock, true)

		lr := pendingRequest(employeeID, leaveTypeID, 5)
		released := 0
		deps.repo.findByIDForUpdateFn = func(ctx context.Context, id string) (*leaverequest.LeaveRequest, error) {
			return lr, nil
		}
		deps.ledger.releasePendingFn = func(ctx context.Context, eid, ltid uuid.UUID, days int) error {
			released = days
			return nil
		}

		resp, err := deps.service.Update(ctx, lr.ID.String(), leaverequest.UpdateLeaveRequestRequest{
			EndDate: "2026-06-02",
		})

		assert.NoError(t, err)
		assert.Equal(t, 3, released)
		assert.Equal(t, 2, resp.DurationDays)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("negative delta reservation fails and rolls back", func(t *testing.T) {
		deps := setupRequestServiceTest(t)
		expectTx(t, deps.sqlMock, false)

		lr := pendingRequest(employeeID, leaveTypeID, 5)
		updated := false
		deps.repo.findByIDForUpdateFn = func(ctx context.Context, id string) (*leaverequest.LeaveRequest, error) {
			return lr, nil
		}
		deps.ledger.reservePendingFn = func(ctx context.Context, eid, ltid uuid.UUID, days int) error {
			return apperror.New(apperror.CodeInsufficientBalance, "insufficient balance", 400)
		}
		deps.repo.updateFn = func(ctx context.Context, lr *leaverequest.LeaveRequest) error {
			updated = true
			return nil
		}

		_, err := deps.service.Update(ctx, lr.ID.String(), leaverequest.UpdateLeaveRequestRequest{
			EndDate: "2026-06-20",
		})

		assert.Error(t, err)
		assert.False(t, updated)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("negative not pending", func(t *testing.T) {
		deps := setupRequestServiceTest(t)
		expectTx(t, deps.sqlMock, false)

		lr := pendingRequest(employeeID, leaveTypeID, 5)
		lr.Status = leaverequest.StatusApproved
		deps.repo.findByIDForUpdateFn = func(ctx context.Context, id string) (*leaverequest.LeaveRequest, error) {
			return lr, nil
		}

		_, err := deps.service.Update(ctx, lr.ID.String(), leaverequest.UpdateLeaveRequestRequest{
			EndDate: "2026-06-08",
		})

		assert.ErrorIs(t, err, leaverequesterrors.ErrRequestNotPending)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})
}

func TestLeaveRequestService_Cancel(t *testing.T) {
	ctx := context.Background()
	employeeID := uuid.New()
	leaveTypeID := uuid.New()
	actorID := uuid.New().String()

	t.Run("success pending releases reservation", func(t *testing.T) {
		deps := setupRequestServiceTest(t)
		expectTx(t, deps.sqlMock, true)

		lr := pendingRequest(employeeID, leaveTypeID, 5)
		released := 0
		deps.repo.findByIDForUpdateFn = func(ctx context.Context, id string) (*leaverequest.LeaveRequest, error) {
			return lr, nil
		}
		deps.ledger.releasePendingFn = func(ctx context.Context, eid, ltid uuid.UUID, days int) error {
			released = days
			return nil
		}

		resp, err := deps.service.Cancel(ctx, lr.ID.String(), actorID)

		assert.NoError(t, err)
		assert.Equal(t, 5, released)
		assert.Equal(t, leaverequest.StatusCanceled, resp.Status)
		assert.Equal(t, leaverequest.RoleSystem, resp.ApprovalFlow[0].Role)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("success approved reverts taken", func(t *testing.T) {
		deps := setupRequestServiceTest(t)
		expectTx(t, deps.sqlMock, true)

		lr := pendingRequest(employeeID, leaveTypeID, 5)
		lr.Status = leaverequest.StatusApproved
		reverted := 0
		deps.repo.findByIDForUpdateFn = func(ctx context.Context, id string) (*leaverequest.LeaveRequest, error) {
			return lr, nil
		}
		deps.ledger.revertTakenFn = func(ctx context.Context, eid, ltid uuid.UUID, days int) error {
			reverted = days
			return nil
		}

		resp, err := deps.service.Cancel(ctx, lr.ID.String(), actorID)

		assert.NoError(t, err)
		assert.Equal(t, 5, reverted)
		assert.Equal(t, leaverequest.StatusCanceled, resp.Status)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("negative already final", func(t *testing.T) {
		deps := setupRequestServiceTest(t)
		expectTx(t, deps.sqlMock, false)

		lr := pendingRequest(employeeID, leaveTypeID, 5)
		lr.Status = leaverequest.StatusRejected
		deps.repo.findByIDForUpdateFn = func(ctx context.Context, id string) (*leaverequest.LeaveRequest, error) {
			return lr, nil
		}

		_, err := deps.service.Cancel(ctx, lr.ID.String(), actorID)

		assert.ErrorIs(t, err, leaverequesterrors.ErrRequestAlreadyFinal)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})
}

func TestLeaveRequestService_BulkProcess(t *testing.T) {
	ctx := context.Background()
	employeeID := uuid.New()
	leaveTypeID := uuid.New()
	approverID := uuid.New().String()

	t.Run("best effort continues past failures", func(t *testing.T) {
		deps := setupRequestServiceTest(t)

		first := pendingRequest(employeeID, leaveTypeID, 3)
		second := pendingRequest(employeeID, leaveTypeID, 3)
		second.Status = leaverequest.StatusApproved
		third := pendingRequest(employeeID, leaveTypeID, 2)

		byID := map[string]*leaverequest.LeaveRequest{
			first.ID.String():  first,
			second.ID.String(): second,
			third.ID.String():  third,
		}
		deps.repo.findByIDForUpdateFn = func(ctx context.Context, id string) (*leaverequest.LeaveRequest, error) {
			if lr, ok := byID[id]; ok {
				return lr, nil
			}
			return nil, gorm.ErrRecordNotFound
		}

		// One transaction per item: commit, rollback, commit.
		expectTx(t, deps.sqlMock, true)
		expectTx(t, deps.sqlMock, false)
		expectTx(t, deps.sqlMock, true)

		result, err := deps.service.BulkProcess(ctx, approverID, []leaverequest.BulkDecisionItem{
			{ID: first.ID.String(), Decision: leaverequest.StatusApproved},
			{ID: second.ID.String(), Decision: leaverequest.StatusApproved},
			{ID: third.ID.String(), Decision: leaverequest.StatusRejected, Reason: "staffing"},
		})

		assert.NoError(t, err)
		assert.Len(t, result.Succeeded, 2)
		assert.Len(t, result.Failed, 1)
		assert.Equal(t, second.ID.String(), result.Failed[0].ID)
		assert.Equal(t, apperror.CodeInvalidState, result.Failed[0].Code)
		assert.Equal(t, leaverequest.StatusApproved, result.Succeeded[0].Status)
		assert.Equal(t, leaverequest.StatusRejected, result.Succeeded[1].Status)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("negative unknown decision recorded as failure", func(t *testing.T) {
		deps := setupRequestServiceTest(t)

		result, err := deps.service.BulkProcess(ctx, approverID, []leaverequest.BulkDecisionItem{
			{ID: uuid.New().String(), Decision: "MAYBE"},
		})

		assert.NoError(t, err)
		assert.Empty(t, result.Succeeded)
		assert.Len(t, result.Failed, 1)
	})

	t.Run("negative invalid approver", func(t *testing.T) {
		deps := setupRequestServiceTest(t)

		_, err := deps.service.BulkProcess(ctx, "not-a-uuid", nil)

		assert.ErrorIs(t, err, leaverequesterrors.ErrInvalidApproverID)
	})
}

func TestLeaveRequestService_Filter(t *testing.T) {
	ctx := context.Background()
	employeeID := uuid.New()

	t.Run("success builds conjunctive query", func(t *testing.T) {
		deps := setupRequestServiceTest(t)

		deps.repo.filterFn = func(ctx context.Context, q leaverequest.FilterQuery) ([]leaverequest.LeaveRequest, error) {
			assert.NotNil(t, q.EmployeeID)
			assert.Equal(t, employeeID, *q.EmployeeID)
			assert.Equal(t, leaverequest.StatusApproved, q.Status)
			assert.NotNil(t, q.StartDate)
			assert.Nil(t, q.EndDate)
			return []leaverequest.LeaveRequest{*pendingRequest(employeeID, uuid.New(), 2)}, nil
		}

		resp, err := deps.service.Filter(ctx, leaverequest.FilterLeaveRequestsRequest{
			EmployeeID: employeeID.String(),
			Status:     leaverequest.StatusApproved,
			StartDate:  "2026-01-01",
		})

		assert.NoError(t, err)
		assert.Len(t, resp, 1)
	})

	t.Run("negative bad date", func(t *testing.T) {
		deps := setupRequestServiceTest(t)

		_, err := deps.service.Filter(ctx, leaverequest.FilterLeaveRequestsRequest{
			StartDate: "yesterday",
		})

		assert.ErrorIs(t, err, leaverequesterrors.ErrInvalidDateFormat)
	})
}

func TestLeaveRequestService_CreateThenCancelRoundTrip(t *testing.T) {
	ctx := context.Background()
	employeeID := uuid.New().String()
	leaveTypeID := uuid.New().String()

	deps := setupRequestServiceTest(t)
	expectTx(t, deps.sqlMock, true)
	expectTx(t, deps.sqlMock, true)

	var stored *leaverequest.LeaveRequest
	reserved, released := 0, 0
	deps.ledger.reservePendingFn = func(ctx context.Context, eid, ltid uuid.UUID, days int) error {
		reserved += days
		return nil
	}
	deps.ledger.releasePendingFn = func(ctx context.Context, eid, ltid uuid.UUID, days int) error {
		released += days
		return nil
	}
	deps.repo.createFn = func(ctx context.Context, lr *leaverequest.LeaveRequest) error {
		stored = lr
		return nil
	}
	deps.repo.findByIDForUpdateFn = func(ctx context.Context, id string) (*leaverequest.LeaveRequest, error) {
		return stored, nil
	}

	created, err := deps.service.Create(ctx, leaverequest.CreateLeaveRequestRequest{
		EmployeeID:  employeeID,
		LeaveTypeID: leaveTypeID,
		StartDate:   "2026-07-01",
		EndDate:     "2026-07-03",
	})
	assert.NoError(t, err)

	cancelled, err := deps.service.Cancel(ctx, created.ID, employeeID)
	assert.NoError(t, err)

	assert.Equal(t, leaverequest.StatusCanceled, cancelled.Status)
	assert.Equal(t, reserved, released)
	assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
}
