package calendar

import (
	"context"
	"errors"
	"time"

	calendarerrors "go-leave/internal/calendar/errors"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

//go:generate mockgen -source=calendar_service.go -destination=mock/calendar_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, req CreateCalendarRequest) (CalendarResponse, error)
	GetAll(ctx context.Context) ([]CalendarResponse, error)
	GetByYear(ctx context.Context, year int) (CalendarResponse, error)
	Update(ctx context.Context, id string, req UpdateCalendarRequest) (CalendarResponse, error)
	Remove(ctx context.Context, id string) error
	AddBlockedPeriod(ctx context.Context, id string, req AddBlockedPeriodRequest) (CalendarResponse, error)
	RemoveBlockedPeriod(ctx context.Context, id string, index int) (CalendarResponse, error)
}

type service struct {
	repo   Repository
	logger *zap.Logger
}

func NewService(repo Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("calendar.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("calendar.service")
	}
	return &service{repo: repo, logger: l}
}

func validatePeriods(periods []BlockedPeriod) error {
	for _, p := range periods {
		start, err := time.Parse("2006-01-02", p.StartDate)
		if err != nil {
			return calendarerrors.ErrInvalidPeriod
		}
		end, err := time.Parse("2006-01-02", p.EndDate)
		if err != nil {
			return calendarerrors.ErrInvalidPeriod
		}
		if start.After(end) {
			return calendarerrors.ErrInvalidPeriod
		}
	}
	return nil
}

func (s *service) Create(ctx context.Context, req CreateCalendarRequest) (CalendarResponse, error) {
	if err := validatePeriods(req.BlockedPeriods); err != nil {
		return CalendarResponse{}, err
	}

	if existing, err := s.repo.FindByYear(ctx, req.Year); err == nil && existing != nil {
		return CalendarResponse{}, calendarerrors.ErrCalendarYearExists
	} else if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return CalendarResponse{}, err
	}

	periods := req.BlockedPeriods
	if periods == nil {
		periods = []BlockedPeriod{}
	}

	cal := &Calendar{
		ID:             uuid.New(),
		Year:           req.Year,
		BlockedPeriods: datatypes.NewJSONSlice(periods),
	}
	if err := s.repo.Create(ctx, cal); err != nil {
		s.logger.Error("create calendar failed", zap.Int("year", req.Year), zap.Error(err))
		return CalendarResponse{}, err
	}

	s.logger.Info("create calendar success",
		zap.String("calendar_id", cal.ID.String()),
		zap.Int("year", cal.Year),
	)
	return mapToResponse(*cal), nil
}

func (s *service) GetAll(ctx context.Context) ([]CalendarResponse, error) {
	cals, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	resp := make([]CalendarResponse, len(cals))
	for i, cal := range cals {
		resp[i] = mapToResponse(cal)
	}
	return resp, nil
}

func (s *service) GetByYear(ctx context.Context, year int) (CalendarResponse, error) {
	cal, err := s.repo.FindByYear(ctx, year)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return CalendarResponse{}, calendarerrors.ErrCalendarNotFound
		}
		return CalendarResponse{}, err
	}
	return mapToResponse(*cal), nil
}

func (s *service) Update(ctx context.Context, id string, req UpdateCalendarRequest) (CalendarResponse, error) {
	calID, err := uuid.Parse(id)
	if err != nil {
		return CalendarResponse{}, calendarerrors.ErrInvalidCalendarID
	}
	if err := validatePeriods(req.BlockedPeriods); err != nil {
		return CalendarResponse{}, err
	}

	cal, err := s.repo.FindByID(ctx, calID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return CalendarResponse{}, calendarerrors.ErrCalendarNotFound
		}
		return CalendarResponse{}, err
	}

	cal.BlockedPeriods = datatypes.NewJSONSlice(req.BlockedPeriods)
	if err := s.repo.Update(ctx, cal); err != nil {
		return CalendarResponse{}, err
	}

	s.logger.Info("update calendar success", zap.String("calendar_id", id))
	return mapToResponse(*cal), nil
}

func (s *service) Remove(ctx context.Context, id string) error {
	calID, err := uuid.Parse(id)
	if err != nil {
		return calendarerrors.ErrInvalidCalendarID
	}
	if _, err := s.repo.FindByID(ctx, calID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return calendarerrors.ErrCalendarNotFound
		}
		return err
	}
	return s.repo.Delete(ctx, calID)
}

func (s *service) AddBlockedPeriod(ctx context.Context, id string, req AddBlockedPeriodRequest) (CalendarResponse, error) {
	calID, err := uuid.Parse(id)
	if err != nil {
		return CalendarResponse{}, calendarerrors.ErrInvalidCalendarID
	}

	period := BlockedPeriod{Name: req.Name, StartDate: req.StartDate, EndDate: req.EndDate}
	if err := validatePeriods([]BlockedPeriod{period}); err != nil {
		return CalendarResponse{}, err
	}

	cal, err := s.repo.FindByID(ctx, calID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return CalendarResponse{}, calendarerrors.ErrCalendarNotFound
		}
		return CalendarResponse{}, err
	}

	cal.BlockedPeriods = append(cal.BlockedPeriods, period)
	if err := s.repo.Update(ctx, cal); err != nil {
		return CalendarResponse{}, err
	}

	s.logger.Info("add blocked period success",
		zap.String("calendar_id", id),
		zap.String("name", req.Name),
	)
	return mapToResponse(*cal), nil
}

func (s *service) RemoveBlockedPeriod(ctx context.Context, id string, index int) (CalendarResponse, error) {
	calID, err := uuid.Parse(id)
	if err != nil {
		return CalendarResponse{}, calendarerrors.ErrInvalidCalendarID
	}

	cal, err := s.repo.FindByID(ctx, calID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return CalendarResponse{}, calendarerrors.ErrCalendarNotFound
		}
		return CalendarResponse{}, err
	}

	periods := []BlockedPeriod(cal.BlockedPeriods)
	if index < 0 || index >= len(periods) {
		return CalendarResponse{}, calendarerrors.ErrInvalidPeriodIndex
	}

	periods = append(periods[:index], periods[index+1:]...)
	cal.BlockedPeriods = datatypes.NewJSONSlice(periods)
	if err := s.repo.Update(ctx, cal); err != nil {
		return CalendarResponse{}, err
	}

	s.logger.Info("remove blocked period success",
		zap.String("calendar_id", id),
		zap.Int("index", index),
	)
	return mapToResponse(*cal), nil
}

func mapToResponse(cal Calendar) CalendarResponse {
	return CalendarResponse{
		ID:             cal.ID.String(),
		Year:           cal.Year,
		BlockedPeriods: []BlockedPeriod(cal.BlockedPeriods),
		CreatedAt:      cal.CreatedAt.Format(time.RFC3339),
	}
}
