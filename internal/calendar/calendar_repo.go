package calendar

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

//go:generate mockgen -source=calendar_repo.go -destination=mock/calendar_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, cal *Calendar) error
	FindByID(ctx context.Context, id uuid.UUID) (*Calendar, error)
	FindByYear(ctx context.Context, year int) (*Calendar, error)
	FindAll(ctx context.Context) ([]Calendar, error)
	Update(ctx context.Context, cal *Calendar) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

func (r *repository) Create(ctx context.Context, cal *Calendar) error {
	return r.db.WithContext(ctx).Create(cal).Error
}

func (r *repository) FindByID(ctx context.Context, id uuid.UUID) (*Calendar, error) {
	var cal Calendar
	err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&cal).Error
	if err != nil {
		return nil, err
	}
	return &cal, nil
}

func (r *repository) FindByYear(ctx context.Context, year int) (*Calendar, error) {
	var cal Calendar
	err := r.db.WithContext(ctx).
		Where("year = ?", year).
		First(&cal).Error
	if err != nil {
		return nil, err
	}
	return &cal, nil
}

func (r *repository) FindAll(ctx context.Context) ([]Calendar, error) {
	var cals []Calendar
	err := r.db.WithContext(ctx).
		Order("year DESC").
		Find(&cals).Error
	return cals, err
}

func (r *repository) Update(ctx context.Context, cal *Calendar) error {
	return r.db.WithContext(ctx).Save(cal).Error
}

func (r *repository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("id = ?", id).
		Delete(&Calendar{}).Error
}
