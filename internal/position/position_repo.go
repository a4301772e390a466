package position

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

//go:generate mockgen -source=position_repo.go -destination=mock/position_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, pos *Position) error
	FindByID(ctx context.Context, id uuid.UUID) (*Position, error)
	FindByCode(ctx context.Context, code string) (*Position, error)
	FindAll(ctx context.Context) ([]Position, error)
	Update(ctx context.Context, pos *Position) error
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

func (r *repository) Create(ctx context.Context, pos *Position) error {
	return r.db.WithContext(ctx).Create(pos).Error
}

func (r *repository) FindByID(ctx context.Context, id uuid.UUID) (*Position, error) {
	var pos Position
	err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&pos).Error
	if err != nil {
		return nil, err
	}
	return &pos, nil
}

func (r *repository) FindByCode(ctx context.Context, code string) (*Position, error) {
	var pos Position
	err := r.db.WithContext(ctx).
		Where("code = ?", code).
		First(&pos).Error
	if err != nil {
		return nil, err
	}
	return &pos, nil
}

func (r *repository) FindAll(ctx context.Context) ([]Position, error) {
	var positions []Position
	err := r.db.WithContext(ctx).
		Order("code ASC").
		Find(&positions).Error
	return positions, err
}

func (r *repository) Update(ctx context.Context, pos *Position) error {
	return r.db.WithContext(ctx).Save(pos).Error
}

func (r *repository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("id = ?", id).
		Delete(&Position{}).Error
}
