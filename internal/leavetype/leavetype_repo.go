package leavetype

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

//go:generate mockgen -source=leavetype_repo.go -destination=mock/leavetype_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, lt *LeaveType) error
	FindByID(ctx context.Context, id uuid.UUID) (*LeaveType, error)
	FindByCode(ctx context.Context, code string) (*LeaveType, error)
	FindAll(ctx context.Context) ([]LeaveType, error)
	Update(ctx context.Context, lt *LeaveType) error
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

func (r *repository) Create(ctx context.Context, lt *LeaveType) error {
	return r.db.WithContext(ctx).Create(lt).Error
}

func (r *repository) FindByID(ctx context.Context, id uuid.UUID) (*LeaveType, error) {
	var lt LeaveType
	err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&lt).Error
	if err != nil {
		return nil, err
	}
	return &lt, nil
}

func (r *repository) FindByCode(ctx context.Context, code string) (*LeaveType, error) {
	var lt LeaveType
	err := r.db.WithContext(ctx).
		Where("code = ?", code).
		First(&lt).Error
	if err != nil {
		return nil, err
	}
	return &lt, nil
}

func (r *repository) FindAll(ctx context.Context) ([]LeaveType, error) {
	var lts []LeaveType
	err := r.db.WithContext(ctx).
		Order("code ASC").
		Find(&lts).Error
	return lts, err
}

func (r *repository) Update(ctx context.Context, lt *LeaveType) error {
	return r.db.WithContext(ctx).Save(lt).Error
}

func (r *repository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("id = ?", id).
		Delete(&LeaveType{}).Error
}
