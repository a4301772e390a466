package leavetype

import (
	"context"
	"errors"
	"time"

	leavetypeerrors "go-leave/internal/leavetype/errors"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

//go:generate mockgen -source=leavetype_service.go -destination=mock/leavetype_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, req CreateLeaveTypeRequest) (LeaveTypeResponse, error)
	GetAll(ctx context.Context) ([]LeaveTypeResponse, error)
	GetByID(ctx context.Context, id string) (LeaveTypeResponse, error)
	Update(ctx context.Context, id string, req UpdateLeaveTypeRequest) (LeaveTypeResponse, error)
	Remove(ctx context.Context, id string) error
}

type service struct {
	repo   Repository
	logger *zap.Logger
}

func NewService(repo Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("leavetype.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("leavetype.service")
	}
	return &service{repo: repo, logger: l}
}

func (s *service) Create(ctx context.Context, req CreateLeaveTypeRequest) (LeaveTypeResponse, error) {
	if existing, err := s.repo.FindByCode(ctx, req.Code); err == nil && existing != nil {
		return LeaveTypeResponse{}, leavetypeerrors.ErrLeaveTypeCodeTaken
	} else if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return LeaveTypeResponse{}, err
	}

	category := req.Category
	if category == "" {
		category = CategoryPaid
	}

	lt := &LeaveType{
		ID:               uuid.New(),
		Code:             req.Code,
		Name:             req.Name,
		Category:         category,
		RequiresDocument: req.RequiresDocument,
	}
	if err := s.repo.Create(ctx, lt); err != nil {
		s.logger.Error("create leave type failed", zap.String("code", req.Code), zap.Error(err))
		return LeaveTypeResponse{}, err
	}

	s.logger.Info("create leave type success", zap.String("leave_type_id", lt.ID.String()))
	return mapToResponse(*lt), nil
}

func (s *service) GetAll(ctx context.Context) ([]LeaveTypeResponse, error) {
	lts, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	resp := make([]LeaveTypeResponse, len(lts))
	for i, lt := range lts {
		resp[i] = mapToResponse(lt)
	}
	return resp, nil
}

func (s *service) GetByID(ctx context.Context, id string) (LeaveTypeResponse, error) {
	ltID, err := uuid.Parse(id)
	if err != nil {
		return LeaveTypeResponse{}, leavetypeerrors.ErrInvalidLeaveTypeID
	}
	lt, err := s.repo.FindByID(ctx, ltID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return LeaveTypeResponse{}, leavetypeerrors.ErrLeaveTypeNotFound
		}
		return LeaveTypeResponse{}, err
	}
	return mapToResponse(*lt), nil
}

func (s *service) Update(ctx context.Context, id string, req UpdateLeaveTypeRequest) (LeaveTypeResponse, error) {
	ltID, err := uuid.Parse(id)
	if err != nil {
		return LeaveTypeResponse{}, leavetypeerrors.ErrInvalidLeaveTypeID
	}
	lt, err := s.repo.FindByID(ctx, ltID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return LeaveTypeResponse{}, leavetypeerrors.ErrLeaveTypeNotFound
		}
		return LeaveTypeResponse{}, err
	}

	if req.Name != "" {
		lt.Name = req.Name
	}
	if req.Category != "" {
		lt.Category = req.Category
	}
	if req.RequiresDocument != nil {
		lt.RequiresDocument = *req.RequiresDocument
	}

	if err := s.repo.Update(ctx, lt); err != nil {
		return LeaveTypeResponse{}, err
	}

	s.logger.Info("update leave type success", zap.String("leave_type_id", id))
	return mapToResponse(*lt), nil
}

func (s *service) Remove(ctx context.Context, id string) error {
	ltID, err := uuid.Parse(id)
	if err != nil {
		return leavetypeerrors.ErrInvalidLeaveTypeID
	}
	if _, err := s.repo.FindByID(ctx, ltID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return leavetypeerrors.ErrLeaveTypeNotFound
		}
		return err
	}
	return s.repo.Delete(ctx, ltID)
}

func mapToResponse(lt LeaveType) LeaveTypeResponse {
	return LeaveTypeResponse{
		ID:               lt.ID.String(),
		Code:             lt.Code,
		Name:             lt.Name,
		Category:         lt.Category,
		RequiresDocument: lt.RequiresDocument,
		CreatedAt:        lt.CreatedAt.Format(time.RFC3339),
	}
}
