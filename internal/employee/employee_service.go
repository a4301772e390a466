package employee

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	employeeerrors "go-leave/internal/employee/errors"
	"go-leave/internal/events"
	"go-leave/internal/messaging/kafka"
	"go-leave/internal/shared/contextutil"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

//go:generate mockgen -source=employee_service.go -destination=mock/employee_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, req CreateEmployeeRequest) (EmployeeResponse, error)
	GetAll(ctx context.Context) ([]EmployeeResponse, error)
	GetByID(ctx context.Context, id string) (EmployeeResponse, error)
	Update(ctx context.Context, id string, req UpdateEmployeeRequest) (EmployeeResponse, error)
	Remove(ctx context.Context, id string) error
}

type service struct {
	db     *gorm.DB
	repo   Repository
	outbox kafka.OutboxRepository
	logger *zap.Logger
}

func NewService(db *gorm.DB, repo Repository, outbox kafka.OutboxRepository, logger ...*zap.Logger) Service {
	l := zap.L().Named("employee.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("employee.service")
	}
	return &service{db: db, repo: repo, outbox: outbox, logger: l}
}

// Create persists the employee and an employee.created outbox event in one
// transaction; the consumer seeds the default entitlement from that event.
func (s *service) Create(ctx context.Context, req CreateEmployeeRequest) (EmployeeResponse, error) {
	emp := &Employee{
		ID:        uuid.New(),
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Status:    StatusActive,
	}

	if req.PrimaryPositionID != "" {
		id, err := uuid.Parse(req.PrimaryPositionID)
		if err != nil {
			return EmployeeResponse{}, employeeerrors.ErrInvalidPositionID
		}
		emp.PrimaryPositionID = &id
	}
	if req.SupervisorPositionID != "" {
		id, err := uuid.Parse(req.SupervisorPositionID)
		if err != nil {
			return EmployeeResponse{}, employeeerrors.ErrInvalidPositionID
		}
		emp.SupervisorPositionID = &id
	}
	if req.HireDate != "" {
		hireDate, err := time.Parse("2006-01-02", req.HireDate)
		if err == nil {
			emp.HireDate = &hireDate
		}
	}

	if existing, err := s.repo.FindByEmail(ctx, req.Email); err == nil && existing != nil {
		return EmployeeResponse{}, employeeerrors.ErrEmailTaken
	} else if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return EmployeeResponse{}, err
	}

	payload, err := json.Marshal(events.EmployeeCreatedEvent{
		EventType:  events.EventTypeEmployeeCreated,
		EmployeeID: emp.ID.String(),
		OccurredAt: time.Now().UTC(),
	})
	if err != nil {
		return EmployeeResponse{}, err
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.repo.WithTx(tx).Create(ctx, emp); err != nil {
			return err
		}
		return s.outbox.WithTx(tx).Create(ctx, kafka.OutboxEvent{
			ID:            uuid.New().String(),
			RequestID:     contextutil.GetRequestID(ctx),
			AggregateType: "employee",
			AggregateID:   emp.ID.String(),
			EventType:     events.EventTypeEmployeeCreated,
			Topic:         events.EmployeeLifecycleTopic,
			Payload:       payload,
			Status:        kafka.OutboxStatusPending,
		})
	})
	if err != nil {
		s.logger.Error("create employee failed",
			zap.String("email", req.Email),
			zap.Error(err),
		)
		return EmployeeResponse{}, err
	}

	s.logger.Info("create employee success", zap.String("employee_id", emp.ID.String()))
	return mapToResponse(*emp), nil
}

func (s *service) GetAll(ctx context.Context) ([]EmployeeResponse, error) {
	emps, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	resp := make([]EmployeeResponse, len(emps))
	for i, emp := range emps {
		resp[i] = mapToResponse(emp)
	}
	return resp, nil
}

func (s *service) GetByID(ctx context.Context, id string) (EmployeeResponse, error) {
	empID, err := uuid.Parse(id)
	if err != nil {
		return EmployeeResponse{}, employeeerrors.ErrInvalidEmployeeID
	}
	emp, err := s.repo.FindByID(ctx, empID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return EmployeeResponse{}, employeeerrors.ErrEmployeeNotFound
		}
		return EmployeeResponse{}, err
	}
	return mapToResponse(*emp), nil
}

func (s *service) Update(ctx context.Context, id string, req UpdateEmployeeRequest) (EmployeeResponse, error) {
	empID, err := uuid.Parse(id)
	if err != nil {
		return EmployeeResponse{}, employeeerrors.ErrInvalidEmployeeID
	}

	emp, err := s.repo.FindByID(ctx, empID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return EmployeeResponse{}, employeeerrors.ErrEmployeeNotFound
		}
		return EmployeeResponse{}, err
	}

	if req.FirstName != "" {
		emp.FirstName = req.FirstName
	}
	if req.LastName != "" {
		emp.LastName = req.LastName
	}
	if req.PrimaryPositionID != "" {
		posID, err := uuid.Parse(req.PrimaryPositionID)
		if err != nil {
			return EmployeeResponse{}, employeeerrors.ErrInvalidPositionID
		}
		emp.PrimaryPositionID = &posID
	}
	if req.SupervisorPositionID != "" {
		posID, err := uuid.Parse(req.SupervisorPositionID)
		if err != nil {
			return EmployeeResponse{}, employeeerrors.ErrInvalidPositionID
		}
		emp.SupervisorPositionID = &posID
	}
	if req.Status != "" {
		emp.Status = req.Status
	}

	if err := s.repo.Update(ctx, emp); err != nil {
		s.logger.Error("update employee failed",
			zap.String("employee_id", id),
			zap.Error(err),
		)
		return EmployeeResponse{}, err
	}

	s.logger.Info("update employee success", zap.String("employee_id", id))
	return mapToResponse(*emp), nil
}

func (s *service) Remove(ctx context.Context, id string) error {
	empID, err := uuid.Parse(id)
	if err != nil {
		return employeeerrors.ErrInvalidEmployeeID
	}
	if _, err := s.repo.FindByID(ctx, empID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return employeeerrors.ErrEmployeeNotFound
		}
		return err
	}
	if err := s.repo.Delete(ctx, empID); err != nil {
		return err
	}
	s.logger.Info("remove employee success", zap.String("employee_id", id))
	return nil
}

func mapToResponse(emp Employee) EmployeeResponse {
	resp := EmployeeResponse{
		ID:        emp.ID.String(),
		FirstName: emp.FirstName,
		LastName:  emp.LastName,
		Email:     emp.Email,
		Status:    emp.Status,
		CreatedAt: emp.CreatedAt.Format(time.RFC3339),
	}
	if emp.PrimaryPositionID != nil {
		v := emp.PrimaryPositionID.String()
		resp.PrimaryPositionID = &v
	}
	if emp.SupervisorPositionID != nil {
		v := emp.SupervisorPositionID.String()
		resp.SupervisorPositionID = &v
	}
	if emp.HireDate != nil {
		v := emp.HireDate.Format("2006-01-02")
		resp.HireDate = &v
	}
	return resp
}
