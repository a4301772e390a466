package calendar_test

import (
	"context"
	"testing"

	"go-leave/internal/calendar"
	calendarerrors "go-leave/internal/calendar/errors"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type fakeCalendarRepository struct {
	createFn     func(ctx context.Context, cal *calendar.Calendar) error
	findByIDFn   func(ctx context.Context, id uuid.UUID) (*calendar.Calendar, error)
	findByYearFn func(ctx context.Context, year int) (*calendar.Calendar, error)
	findAllFn    func(ctx context.Context) ([]calendar.Calendar, error)
	updateFn     func(ctx context.Context, cal *calendar.Calendar) error
	deleteFn     func(ctx context.Context, id uuid.UUID) error
}

func (f *fakeCalendarRepository) WithTx(tx *gorm.DB) calendar.Repository { return f }

func (f *fakeCalendarRepository) Create(ctx context.Context, cal *calendar.Calendar) error {
	if f.createFn != nil {
		return f.createFn(ctx, cal)
	}
	return nil
}

func (f *fakeCalendarRepository) FindByID(ctx context.Context, id uuid.UUID) (*calendar.Calendar, error) {
	if f.findByIDFn != nil {
		return f.findByIDFn(ctx, id)
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeCalendarRepository) FindByYear(ctx context.Context, year int) (*calendar.Calendar, error) {
	if f.findByYearFn != nil {
		return f.findByYearFn(ctx, year)
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeCalendarRepository) FindAll(ctx context.Context) ([]calendar.Calendar, error) {
	if f.findAllFn != nil {
		return f.findAllFn(ctx)
	}
	return nil, nil
}

func (f *fakeCalendarRepository) Update(ctx context.Context, cal *calendar.Calendar) error {
	if f.updateFn != nil {
		return f.updateFn(ctx, cal)
	}
	return nil
}

func (f *fakeCalendarRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if f.deleteFn != nil {
		return f.deleteFn(ctx, id)
	}
	return nil
}

func TestCalendarService_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		repo := &fakeCalendarRepository{}
		svc := calendar.NewService(repo)

		resp, err := svc.Create(ctx, calendar.CreateCalendarRequest{
			Year: 2026,
			BlockedPeriods: []calendar.BlockedPeriod{
				{Name: "year-end freeze", StartDate: "2026-12-20", EndDate: "2026-12-31"},
			},
		})

		assert.NoError(t, err)
		assert.Equal(t, 2026, resp.Year)
		assert.Len(t, resp.BlockedPeriods, 1)
	})

	t.Run("success no periods stores empty list", func(t *testing.T) {
		repo := &fakeCalendarRepository{
			createFn: func(ctx context.Context, cal *calendar.Calendar) error {
				assert.NotNil(t, []calendar.BlockedPeriod(cal.BlockedPeriods))
				return nil
			},
		}
		svc := calendar.NewService(repo)

		resp, err := svc.Create(ctx, calendar.CreateCalendarRequest{Year: 2027})

		assert.NoError(t, err)
		assert.Empty(t, resp.BlockedPeriods)
	})

	t.Run("negative duplicate year", func(t *testing.T) {
		repo := &fakeCalendarRepository{
			findByYearFn: func(ctx context.Context, year int) (*calendar.Calendar, error) {
				return &calendar.Calendar{ID: uuid.New(), Year: year}, nil
			},
		}
		svc := calendar.NewService(repo)

		_, err := svc.Create(ctx, calendar.CreateCalendarRequest{Year: 2026})

		assert.ErrorIs(t, err, calendarerrors.ErrCalendarYearExists)
	})

	t.Run("negative period end before start", func(t *testing.T) {
		svc := calendar.NewService(&fakeCalendarRepository{})

		_, err := svc.Create(ctx, calendar.CreateCalendarRequest{
			Year: 2026,
			BlockedPeriods: []calendar.BlockedPeriod{
				{Name: "upside down", StartDate: "2026-05-10", EndDate: "2026-05-01"},
			},
		})

		assert.ErrorIs(t, err, calendarerrors.ErrInvalidPeriod)
	})

	t.Run("negative malformed period date", func(t *testing.T) {
		svc := calendar.NewService(&fakeCalendarRepository{})

		_, err := svc.Create(ctx, calendar.CreateCalendarRequest{
			Year: 2026,
			BlockedPeriods: []calendar.BlockedPeriod{
				{Name: "bad", StartDate: "May 1", EndDate: "2026-05-02"},
			},
		})

		assert.ErrorIs(t, err, calendarerrors.ErrInvalidPeriod)
	})
}

func TestCalendarService_GetByYear(t *testing.T) {
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		repo := &fakeCalendarRepository{
			findByYearFn: func(ctx context.Context, year int) (*calendar.Calendar, error) {
				return &calendar.Calendar{
					ID:   uuid.New(),
					Year: year,
					BlockedPeriods: datatypes.NewJSONSlice([]calendar.BlockedPeriod{
						{Name: "audit week", StartDate: "2026-02-02", EndDate: "2026-02-06"},
					}),
				}, nil
			},
		}
		svc := calendar.NewService(repo)

		resp, err := svc.GetByYear(ctx, 2026)

		assert.NoError(t, err)
		assert.Equal(t, 2026, resp.Year)
		assert.Equal(t, "audit week", resp.BlockedPeriods[0].Name)
	})

	t.Run("negative not found", func(t *testing.T) {
		svc := calendar.NewService(&fakeCalendarRepository{})

		_, err := svc.GetByYear(ctx, 1999)

		assert.ErrorIs(t, err, calendarerrors.ErrCalendarNotFound)
	})
}

func TestCalendarService_Update(t *testing.T) {
	ctx := context.Background()

	t.Run("success replaces periods", func(t *testing.T) {
		cal := &calendar.Calendar{ID: uuid.New(), Year: 2026}
		repo := &fakeCalendarRepository{
			findByIDFn: func(ctx context.Context, id uuid.UUID) (*calendar.Calendar, error) {
				return cal, nil
			},
		}
		svc := calendar.NewService(repo)

		resp, err := svc.Update(ctx, cal.ID.String(), calendar.UpdateCalendarRequest{
			BlockedPeriods: []calendar.BlockedPeriod{
				{Name: "inventory", StartDate: "2026-07-01", EndDate: "2026-07-03"},
			},
		})

		assert.NoError(t, err)
		assert.Len(t, resp.BlockedPeriods, 1)
	})

	t.Run("negative invalid id", func(t *testing.T) {
		svc := calendar.NewService(&fakeCalendarRepository{})

		_, err := svc.Update(ctx, "not-a-uuid", calendar.UpdateCalendarRequest{})

		assert.ErrorIs(t, err, calendarerrors.ErrInvalidCalendarID)
	})
}

func TestCalendarService_AddBlockedPeriod(t *testing.T) {
	ctx := context.Background()

	t.Run("success appends to existing periods", func(t *testing.T) {
		cal := &calendar.Calendar{
			ID:   uuid.New(),
			Year: 2026,
			BlockedPeriods: datatypes.NewJSONSlice([]calendar.BlockedPeriod{
				{Name: "audit week", StartDate: "2026-02-02", EndDate: "2026-02-06"},
			}),
		}
		repo := &fakeCalendarRepository{
			findByIDFn: func(ctx context.Context, id uuid.UUID) (*calendar.Calendar, error) {
				return cal, nil
			},
		}
		svc := calendar.NewService(repo)

		resp, err := svc.AddBlockedPeriod(ctx, cal.ID.String(), calendar.AddBlockedPeriodRequest{
			Name:      "year-end freeze",
			StartDate: "2026-12-20",
			EndDate:   "2026-12-31",
		})

		assert.NoError(t, err)
		assert.Len(t, resp.BlockedPeriods, 2)
		assert.Equal(t, "year-end freeze", resp.BlockedPeriods[1].Name)
	})

	t.Run("negative end before start", func(t *testing.T) {
		svc := calendar.NewService(&fakeCalendarRepository{})

		_, err := svc.AddBlockedPeriod(ctx, uuid.New().String(), calendar.AddBlockedPeriodRequest{
			Name:      "upside down",
			StartDate: "2026-05-10",
			EndDate:   "2026-05-01",
		})

		assert.ErrorIs(t, err, calendarerrors.ErrInvalidPeriod)
	})

	t.Run("negative calendar not found", func(t *testing.T) {
		svc := calendar.NewService(&fakeCalendarRepository{})

		_, err := svc.AddBlockedPeriod(ctx, uuid.New().String(), calendar.AddBlockedPeriodRequest{
			Name:      "inventory",
			StartDate: "2026-07-01",
			EndDate:   "2026-07-03",
		})

		assert.ErrorIs(t, err, calendarerrors.ErrCalendarNotFound)
	})
}

func TestCalendarService_RemoveBlockedPeriod(t *testing.T) {
	ctx := context.Background()

	periods := func() []calendar.BlockedPeriod {
		return []calendar.BlockedPeriod{
			{Name: "audit week", StartDate: "2026-02-02", EndDate: "2026-02-06"},
			{Name: "inventory", StartDate: "2026-07-01", EndDate: "2026-07-03"},
		}
	}

	t.Run("success removes by index", func(t *testing.T) {
		cal := &calendar.Calendar{
			ID:             uuid.New(),
			Year:           2026,
			BlockedPeriods: datatypes.NewJSONSlice(periods()),
		}
		repo := &fakeCalendarRepository{
			findByIDFn: func(ctx context.Context, id uuid.UUID) (*calendar.Calendar, error) {
				return cal, nil
			},
		}
		svc := calendar.NewService(repo)

		resp, err := svc.RemoveBlockedPeriod(ctx, cal.ID.String(), 0)

		assert.NoError(t, err)
		assert.Len(t, resp.BlockedPeriods, 1)
		assert.Equal(t, "inventory", resp.BlockedPeriods[0].Name)
	})

	t.Run("negative index out of range", func(t *testing.T) {
		cal := &calendar.Calendar{
			ID:             uuid.New(),
			Year:           2026,
			BlockedPeriods: datatypes.NewJSONSlice(periods()),
		}
		repo := &fakeCalendarRepository{
			findByIDFn: func(ctx context.Context, id uuid.UUID) (*calendar.Calendar, error) {
				return cal, nil
			},
		}
		svc := calendar.NewService(repo)

		_, err := svc.RemoveBlockedPeriod(ctx, cal.ID.String(), 2)

		assert.ErrorIs(t, err, calendarerrors.ErrInvalidPeriodIndex)

		_, err = svc.RemoveBlockedPeriod(ctx, cal.ID.String(), -1)

		assert.ErrorIs(t, err, calendarerrors.ErrInvalidPeriodIndex)
	})
}
