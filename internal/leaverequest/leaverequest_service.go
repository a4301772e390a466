package leaverequest

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"go-leave/internal/entitlement"
	leaverequesterrors "go-leave/internal/leaverequest/errors"
	"go-leave/internal/events"
	"go-leave/internal/messaging/kafka"
	"go-leave/internal/shared/apperror"
	"go-leave/internal/shared/contextutil"
	"go-leave/internal/shared/counter"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const (
	StatusPending  = "PENDING"
	StatusApproved = "APPROVED"
	StatusRejected = "REJECTED"
	StatusCanceled = "CANCELLED"
)

const (
	RoleManager = "manager"
	RoleSystem  = "system"
)

// Service drives the request lifecycle. Every balance-affecting transition
// runs the ledger write and the request write in one transaction, so a failed
// reservation never leaves an orphan request and vice versa.
//
//go:generate mockgen -source=leaverequest_service.go -destination=mock/leaverequest_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, req CreateLeaveRequestRequest) (LeaveRequestResponse, error)
	GetAll(ctx context.Context) ([]LeaveRequestResponse, error)
	GetByID(ctx context.Context, id string) (LeaveRequestResponse, error)
	GetByEmployee(ctx context.Context, employeeID string) ([]LeaveRequestResponse, error)
	Update(ctx context.Context, id string, req UpdateLeaveRequestRequest) (LeaveRequestResponse, error)
	ManagerApprove(ctx context.Context, id, approverID string) (LeaveRequestResponse, error)
	ManagerReject(ctx context.Context, id, approverID, reason string) (LeaveRequestResponse, error)
	Cancel(ctx context.Context, id, actorID string) (LeaveRequestResponse, error)
	BulkProcess(ctx context.Context, approverID string, items []BulkDecisionItem) (BulkResult, error)
	Filter(ctx context.Context, params FilterLeaveRequestsRequest) ([]LeaveRequestResponse, error)
	GetApprovedUpcoming(ctx context.Context, employeeID uuid.UUID, from time.Time) ([]LeaveRequestResponse, error)
}

type service struct {
	db       *gorm.DB
	repo     Repository
	ledger   entitlement.Service
	counters counter.Repository
	outbox   kafka.OutboxRepository
	logger   *zap.Logger
}

func NewService(
	db *gorm.DB,
	repo Repository,
	ledger entitlement.Service,
	counters counter.Repository,
	outbox kafka.OutboxRepository,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("leaverequest.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("leaverequest.service")
	}
	return &service{
		db:       db,
		repo:     repo,
		ledger:   ledger,
		counters: counters,
		outbox:   outbox,
		logger:   l,
	}
}

func (s *service) Create(ctx context.Context, req CreateLeaveRequestRequest) (LeaveRequestResponse, error) {
	s.logger.Debug("create leave request requested",
		zap.String("employee_id", req.EmployeeID),
		zap.String("start_date", req.StartDate),
		zap.String("end_date", req.EndDate),
	)

	employeeID, err := uuid.Parse(req.EmployeeID)
	if err != nil {
		return LeaveRequestResponse{}, leaverequesterrors.ErrInvalidEmployeeID
	}
	leaveTypeID, err := uuid.Parse(req.LeaveTypeID)
	if err != nil {
		return LeaveRequestResponse{}, leaverequesterrors.ErrInvalidLeaveTypeID
	}
	startDate, err := parseDate(req.StartDate)
	if err != nil {
		return LeaveRequestResponse{}, err
	}
	endDate, err := parseDate(req.EndDate)
	if err != nil {
		return LeaveRequestResponse{}, err
	}
	if startDate.After(endDate) {
		return LeaveRequestResponse{}, leaverequesterrors.ErrInvalidDateRange
	}

	var attachmentID *uuid.UUID
	if req.AttachmentID != "" {
		parsed, err := uuid.Parse(req.AttachmentID)
		if err != nil {
			return LeaveRequestResponse{}, leaverequesterrors.ErrInvalidAttachmentID
		}
		attachmentID = &parsed
	}

	seq, err := s.counters.GetNextValue(ctx, counter.TypeLeaveRequest)
	if err != nil {
		s.logger.Error("create leave request sequence failed", zap.Error(err))
		return LeaveRequestResponse{}, err
	}

	durationDays := int(endDate.Sub(startDate).Hours()/24) + 1
	lr := &LeaveRequest{
		ID:            uuid.New(),
		RequestNumber: fmt.Sprintf("LR-%06d", seq),
		EmployeeID:    employeeID,
		LeaveTypeID:   leaveTypeID,
		StartDate:     startDate,
		EndDate:       endDate,
		DurationDays:  durationDays,
		Justification: req.Justification,
		AttachmentID:  attachmentID,
		Status:        StatusPending,
		ApprovalFlow:  datatypes.NewJSONSlice([]DecisionRecord{}),
	}

	// Reservation and request persist commit together; if the reservation
	// fails no request exists, if the insert fails the reservation rolls back.
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.ledger.WithTx(tx).ReservePending(ctx, employeeID, leaveTypeID, durationDays); err != nil {
			return err
		}
		return s.repo.WithTx(tx).Create(ctx, lr)
	})
	if err != nil {
		s.logger.Warn("create leave request failed",
			zap.String("employee_id", req.EmployeeID),
			zap.Int("duration_days", durationDays),
			zap.Error(err),
		)
		return LeaveRequestResponse{}, err
	}

	s.logger.Info("create leave request success",
		zap.String("request_id", lr.ID.String()),
		zap.String("request_number", lr.RequestNumber),
		zap.Int("duration_days", durationDays),
	)
	return mapToResponse(*lr), nil
}

func (s *service) GetAll(ctx context.Context) ([]LeaveRequestResponse, error) {
	lrs, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	return mapToListResponse(lrs), nil
}

func (s *service) GetByID(ctx context.Context, id string) (LeaveRequestResponse, error) {
	lr, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return LeaveRequestResponse{}, leaverequesterrors.ErrRequestNotFound
		}
		return LeaveRequestResponse{}, err
	}
	return mapToResponse(*lr), nil
}

func (s *service) GetByEmployee(ctx context.Context, employeeID string) ([]LeaveRequestResponse, error) {
	id, err := uuid.Parse(employeeID)
	if err != nil {
		return nil, leaverequesterrors.ErrInvalidEmployeeID
	}
	lrs, err := s.repo.FindByEmployee(ctx, id)
	if err != nil {
		return nil, err
	}
	return mapToListResponse(lrs), nil
}

// Update is allowed only while the request is PENDING. A longer duration
// reserves the extra days, a shorter one releases them; either ledger write
// commits atomically with the new dates.
func (s *service) Update(ctx context.Context, id string, req UpdateLeaveRequestRequest) (LeaveRequestResponse, error) {
	var updated LeaveRequest

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		qtx := s.repo.WithTx(tx)

		lr, err := qtx.FindByIDForUpdate(ctx, id)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return leaverequesterrors.ErrRequestNotFound
			}
			return err
		}
		if lr.Status != StatusPending {
			return leaverequesterrors.ErrRequestNotPending
		}

		newStart := lr.StartDate
		newEnd := lr.EndDate
		if req.StartDate != "" {
			if newStart, err = parseDate(req.StartDate); err != nil {
				return err
			}
		}
		if req.EndDate != "" {
			if newEnd, err = parseDate(req.EndDate); err != nil {
				return err
			}
		}
		if newStart.After(newEnd) {
			return leaverequesterrors.ErrInvalidDateRange
		}

		newDuration := int(newEnd.Sub(newStart).Hours()/24) + 1
		delta := newDuration - lr.DurationDays

		ledger := s.ledger.WithTx(tx)
		if delta > 0 {
			if err := ledger.ReservePending(ctx, lr.EmployeeID, lr.LeaveTypeID, delta); err != nil {
				return err
			}
		} else if delta < 0 {
			if err := ledger.ReleasePending(ctx, lr.EmployeeID, lr.LeaveTypeID, -delta); err != nil {
				return err
			}
		}

		lr.StartDate = newStart
		lr.EndDate = newEnd
		lr.DurationDays = newDuration
		if req.Justification != "" {
			lr.Justification = req.Justification
		}
		if req.AttachmentID != "" {
			attID, err := uuid.Parse(req.AttachmentID)
			if err != nil {
				return leaverequesterrors.ErrInvalidAttachmentID
			}
			lr.AttachmentID = &attID
		}

		if err := qtx.Update(ctx, lr); err != nil {
			return err
		}
		updated = *lr
		return nil
	})
	if err != nil {
		s.logger.Warn("update leave request failed",
			zap.String("request_id", id),
			zap.Error(err),
		)
		return LeaveRequestResponse{}, err
	}

	s.logger.Info("update leave request success",
		zap.String("request_id", id),
		zap.Int("duration_days", updated.DurationDays),
	)
	return mapToResponse(updated), nil
}

func (s *service) ManagerApprove(ctx context.Context, id, approverID string) (LeaveRequestResponse, error) {
	if _, err := uuid.Parse(approverID); err != nil {
		return LeaveRequestResponse{}, leaverequesterrors.ErrInvalidApproverID
	}

	var updated LeaveRequest
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		qtx := s.repo.WithTx(tx)

		lr, err := qtx.FindByIDForUpdate(ctx, id)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return leaverequesterrors.ErrRequestNotFound
			}
			return err
		}
		if lr.Status != StatusPending {
			return leaverequesterrors.ErrRequestNotPending
		}

		if err := s.ledger.WithTx(tx).ConsumePendingToTaken(ctx, lr.EmployeeID, lr.LeaveTypeID, lr.DurationDays); err != nil {
			return err
		}

		lr.Status = StatusApproved
		lr.ApprovalFlow = append(lr.ApprovalFlow, DecisionRecord{
			Role:      RoleManager,
			Status:    "approved",
			DecidedBy: approverID,
			DecidedAt: time.Now().UTC(),
		})

		if err := qtx.Update(ctx, lr); err != nil {
			return err
		}
		if err := s.enqueueDecisionEvent(ctx, tx, lr, events.EventTypeLeaveApproved, approverID); err != nil {
			return err
		}
		updated = *lr
		return nil
	})
	if err != nil {
		s.logger.Warn("manager approve failed",
			zap.String("request_id", id),
			zap.String("approver_id", approverID),
			zap.Error(err),
		)
		return LeaveRequestResponse{}, err
	}

	s.logger.Info("manager approve success",
		zap.String("request_id", id),
		zap.String("approver_id", approverID),
	)
	return mapToResponse(updated), nil
}

func (s *service) ManagerReject(ctx context.Context, id, approverID, reason string) (LeaveRequestResponse, error) {
	if _, err := uuid.Parse(approverID); err != nil {
		return LeaveRequestResponse{}, leaverequesterrors.ErrInvalidApproverID
	}
	if reason == "" {
		reason = "rejected"
	}

	var updated LeaveRequest
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		qtx := s.repo.WithTx(tx)

		lr, err := qtx.FindByIDForUpdate(ctx, id)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return leaverequesterrors.ErrRequestNotFound
			}
			return err
		}
		if lr.Status != StatusPending {
			return leaverequesterrors.ErrRequestNotPending
		}

		if err := s.ledger.WithTx(tx).ReleasePending(ctx, lr.EmployeeID, lr.LeaveTypeID, lr.DurationDays); err != nil {
			return err
		}

		lr.Status = StatusRejected
		lr.ApprovalFlow = append(lr.ApprovalFlow, DecisionRecord{
			Role:      RoleManager,
			Status:    "rejected",
			DecidedBy: approverID,
			DecidedAt: time.Now().UTC(),
			Comment:   reason,
		})

		if err := qtx.Update(ctx, lr); err != nil {
			return err
		}
		if err := s.enqueueDecisionEvent(ctx, tx, lr, events.EventTypeLeaveRejected, approverID); err != nil {
			return err
		}
		updated = *lr
		return nil
	})
	if err != nil {
		s.logger.Warn("manager reject failed",
			zap.String("request_id", id),
			zap.String("approver_id", approverID),
			zap.Error(err),
		)
		return LeaveRequestResponse{}, err
	}

	s.logger.Info("manager reject success",
		zap.String("request_id", id),
		zap.String("approver_id", approverID),
	)
	return mapToResponse(updated), nil
}

// Cancel releases the reservation of a pending request, or reverts the taken
// days of an approved one. Requests already rejected or cancelled stay as
// they are; cancelling them is a rejected transition.
func (s *service) Cancel(ctx context.Context, id, actorID string) (LeaveRequestResponse, error) {
	var updated LeaveRequest

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		qtx := s.repo.WithTx(tx)

		lr, err := qtx.FindByIDForUpdate(ctx, id)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return leaverequesterrors.ErrRequestNotFound
			}
			return err
		}

		ledger := s.ledger.WithTx(tx)
		switch lr.Status {
		case StatusPending:
			if err := ledger.ReleasePending(ctx, lr.EmployeeID, lr.LeaveTypeID, lr.DurationDays); err != nil {
				return err
			}
		case StatusApproved:
			if err := ledger.RevertTaken(ctx, lr.EmployeeID, lr.LeaveTypeID, lr.DurationDays); err != nil {
				return err
			}
		default:
			return leaverequesterrors.ErrRequestAlreadyFinal
		}

		record := DecisionRecord{
			Role:      RoleSystem,
			Status:    "cancelled",
			DecidedAt: time.Now().UTC(),
		}
		if _, err := uuid.Parse(actorID); err == nil {
			record.DecidedBy = actorID
		}

		lr.Status = StatusCanceled
		lr.ApprovalFlow = append(lr.ApprovalFlow, record)

		if err := qtx.Update(ctx, lr); err != nil {
			return err
		}
		updated = *lr
		return nil
	})
	if err != nil {
		s.logger.Warn("cancel leave request failed",
			zap.String("request_id", id),
			zap.Error(err),
		)
		return LeaveRequestResponse{}, err
	}

	s.logger.Info("cancel leave request success", zap.String("request_id", id))
	return mapToResponse(updated), nil
}

// BulkProcess applies each decision independently and collects per-item
// outcomes; one failing item does not abort the rest of the batch.
func (s *service) BulkProcess(ctx context.Context, approverID string, items []BulkDecisionItem) (BulkResult, error) {
	if _, err := uuid.Parse(approverID); err != nil {
		return BulkResult{}, leaverequesterrors.ErrInvalidApproverID
	}

	result := BulkResult{
		Succeeded: []LeaveRequestResponse{},
		Failed:    []BulkFailure{},
	}

	for _, item := range items {
		var (
			resp LeaveRequestResponse
			err  error
		)

		switch item.Decision {
		case StatusApproved:
			resp, err = s.ManagerApprove(ctx, item.ID, approverID)
		case StatusRejected:
			resp, err = s.ManagerReject(ctx, item.ID, approverID, item.Reason)
		default:
			err = leaverequesterrors.ErrInvalidDecision
		}

		if err != nil {
			failure := BulkFailure{ID: item.ID, Code: apperror.CodeInternalError, Message: err.Error()}
			var appErr *apperror.AppError
			if errors.As(err, &appErr) {
				failure.Code = appErr.Code
				failure.Message = appErr.Message
			}
			result.Failed = append(result.Failed, failure)
			continue
		}
		result.Succeeded = append(result.Succeeded, resp)
	}

	s.logger.Info("bulk process finished",
		zap.String("approver_id", approverID),
		zap.Int("succeeded", len(result.Succeeded)),
		zap.Int("failed", len(result.Failed)),
	)
	return result, nil
}

func (s *service) Filter(ctx context.Context, params FilterLeaveRequestsRequest) ([]LeaveRequestResponse, error) {
	var q FilterQuery

	if params.EmployeeID != "" {
		id, err := uuid.Parse(params.EmployeeID)
		if err != nil {
			return nil, leaverequesterrors.ErrInvalidEmployeeID
		}
		q.EmployeeID = &id
	}
	if params.LeaveTypeID != "" {
		id, err := uuid.Parse(params.LeaveTypeID)
		if err != nil {
			return nil, leaverequesterrors.ErrInvalidLeaveTypeID
		}
		q.LeaveTypeID = &id
	}
	q.Status = params.Status
	if params.StartDate != "" {
		t, err := parseDate(params.StartDate)
		if err != nil {
			return nil, err
		}
		q.StartDate = &t
	}
	if params.EndDate != "" {
		t, err := parseDate(params.EndDate)
		if err != nil {
			return nil, err
		}
		q.EndDate = &t
	}

	lrs, err := s.repo.Filter(ctx, q)
	if err != nil {
		return nil, err
	}
	return mapToListResponse(lrs), nil
}

func (s *service) GetApprovedUpcoming(ctx context.Context, employeeID uuid.UUID, from time.Time) ([]LeaveRequestResponse, error) {
	lrs, err := s.repo.FindApprovedUpcoming(ctx, employeeID, from)
	if err != nil {
		return nil, err
	}
	return mapToListResponse(lrs), nil
}

func (s *service) enqueueDecisionEvent(ctx context.Context, tx *gorm.DB, lr *LeaveRequest, eventType, decidedBy string) error {
	payload, err := json.Marshal(events.LeaveDecidedEvent{
		EventType:    eventType,
		RequestID:    lr.ID.String(),
		EmployeeID:   lr.EmployeeID.String(),
		LeaveTypeID:  lr.LeaveTypeID.String(),
		Status:       lr.Status,
		DurationDays: lr.DurationDays,
		DecidedBy:    decidedBy,
		OccurredAt:   time.Now().UTC(),
	})
	if err != nil {
		return err
	}

	return s.outbox.WithTx(tx).Create(ctx, kafka.OutboxEvent{
		ID:            uuid.New().String(),
		RequestID:     contextutil.GetRequestID(ctx),
		AggregateType: "leave_request",
		AggregateID:   lr.ID.String(),
		EventType:     eventType,
		Topic:         events.LeaveDecisionTopic,
		Payload:       payload,
		Status:        kafka.OutboxStatusPending,
	})
}

func parseDate(v string) (time.Time, error) {
	t, err := time.Parse("2006-01-02", v)
	if err != nil {
		return time.Time{}, leaverequesterrors.ErrInvalidDateFormat
	}
	return t, nil
}

func mapToResponse(lr LeaveRequest) LeaveRequestResponse {
	resp := LeaveRequestResponse{
		ID:            lr.ID.String(),
		RequestNumber: lr.RequestNumber,
		EmployeeID:    lr.EmployeeID.String(),
		LeaveTypeID:   lr.LeaveTypeID.String(),
		StartDate:     lr.StartDate.Format("2006-01-02"),
		EndDate:       lr.EndDate.Format("2006-01-02"),
		DurationDays:  lr.DurationDays,
		Justification: lr.Justification,
		Status:        lr.Status,
		ApprovalFlow:  []DecisionRecord(lr.ApprovalFlow),
		CreatedAt:     lr.CreatedAt.Format(time.RFC3339),
	}
	if lr.AttachmentID != nil {
		v := lr.AttachmentID.String()
		resp.AttachmentID = &v
	}
	return resp
}

func mapToListResponse(lrs []LeaveRequest) []LeaveRequestResponse {
	resp := make([]LeaveRequestResponse, len(lrs))
	for i, lr := range lrs {
		resp[i] = mapToResponse(lr)
	}
	return resp
}
