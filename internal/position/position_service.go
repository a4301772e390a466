package position

import (
	"context"
	"errors"
	"time"

	positionerrors "go-leave/internal/position/errors"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

//go:generate mockgen -source=position_service.go -destination=mock/position_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, req CreatePositionRequest) (PositionResponse, error)
	GetAll(ctx context.Context) ([]PositionResponse, error)
	GetByID(ctx context.Context, id string) (PositionResponse, error)
	Update(ctx context.Context, id string, req UpdatePositionRequest) (PositionResponse, error)
	Remove(ctx context.Context, id string) error
}

type service struct {
	repo   Repository
	logger *zap.Logger
}

func NewService(repo Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("position.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("position.service")
	}
	return &service{repo: repo, logger: l}
}

func (s *service) Create(ctx context.Context, req CreatePositionRequest) (PositionResponse, error) {
	if existing, err := s.repo.FindByCode(ctx, req.Code); err == nil && existing != nil {
		return PositionResponse{}, positionerrors.ErrPositionCodeTaken
	} else if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return PositionResponse{}, err
	}

	pos := &Position{
		ID:    uuid.New(),
		Code:  req.Code,
		Title: req.Title,
	}
	if err := s.repo.Create(ctx, pos); err != nil {
		s.logger.Error("create position failed", zap.String("code", req.Code), zap.Error(err))
		return PositionResponse{}, err
	}

	s.logger.Info("create position success", zap.String("position_id", pos.ID.String()))
	return mapToResponse(*pos), nil
}

func (s *service) GetAll(ctx context.Context) ([]PositionResponse, error) {
	positions, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	resp := make([]PositionResponse, len(positions))
	for i, pos := range positions {
		resp[i] = mapToResponse(pos)
	}
	return resp, nil
}

func (s *service) GetByID(ctx context.Context, id string) (PositionResponse, error) {
	posID, err := uuid.Parse(id)
	if err != nil {
		return PositionResponse{}, positionerrors.ErrInvalidPositionID
	}
	pos, err := s.repo.FindByID(ctx, posID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return PositionResponse{}, positionerrors.ErrPositionNotFound
		}
		return PositionResponse{}, err
	}
	return mapToResponse(*pos), nil
}

func (s *service) Update(ctx context.Context, id string, req UpdatePositionRequest) (PositionResponse, error) {
	posID, err := uuid.Parse(id)
	if err != nil {
		return PositionResponse{}, positionerrors.ErrInvalidPositionID
	}
	pos, err := s.repo.FindByID(ctx, posID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return PositionResponse{}, positionerrors.ErrPositionNotFound
		}
		return PositionResponse{}, err
	}

	pos.Title = req.Title
	if err := s.repo.Update(ctx, pos); err != nil {
		return PositionResponse{}, err
	}

	s.logger.Info("update position success", zap.String("position_id", id))
	return mapToResponse(*pos), nil
}

func (s *service) Remove(ctx context.Context, id string) error {
	posID, err := uuid.Parse(id)
	if err != nil {
		return positionerrors.ErrInvalidPositionID
	}
	if _, err := s.repo.FindByID(ctx, posID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return positionerrors.ErrPositionNotFound
		}
		return err
	}
	return s.repo.Delete(ctx, posID)
}

func mapToResponse(pos Position) PositionResponse {
	return PositionResponse{
		ID:        pos.ID.String(),
		Code:      pos.Code,
		Title:     pos.Title,
		CreatedAt: pos.CreatedAt.Format(time.RFC3339),
		UpdatedAt: pos.UpdatedAt.Format(time.RFC3339),
	}
}
