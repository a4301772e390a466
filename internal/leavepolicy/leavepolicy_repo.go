package leavepolicy

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

//go:generate mockgen -source=leavepolicy_repo.go -destination=mock/leavepolicy_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, p *LeavePolicy) error
	Exists(ctx context.Context, leaveTypeID uuid.UUID, year int) (bool, error)
	FindByID(ctx context.Context, id uuid.UUID) (*LeavePolicy, error)
	FindAll(ctx context.Context) ([]LeavePolicy, error)
	// FindDueForUpdate locks the unexpired policies whose expiry has passed
	// so two worker instances cannot sweep the same policy twice.
	FindDueForUpdate(ctx context.Context, now time.Time) ([]LeavePolicy, error)
	Update(ctx context.Context, p *LeavePolicy) error
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

func (r *repository) Create(ctx context.Context, p *LeavePolicy) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *repository) Exists(ctx context.Context, leaveTypeID uuid.UUID, year int) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&LeavePolicy{}).
		Where("leave_type_id = ?", leaveTypeID).
		Where("year = ?", year).
		Count(&count).Error
	return count > 0, err
}

func (r *repository) FindByID(ctx context.Context, id uuid.UUID) (*LeavePolicy, error) {
	var p LeavePolicy
	err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&p).Error
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *repository) FindAll(ctx context.Context) ([]LeavePolicy, error) {
	var policies []LeavePolicy
	err := r.db.WithContext(ctx).
		Order("year DESC, leave_type_id").
		Find(&policies).Error
	return policies, err
}

func (r *repository) FindDueForUpdate(ctx context.Context, now time.Time) ([]LeavePolicy, error) {
	var policies []LeavePolicy
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE", Options: "SKIP LOCKED"}).
		Where("carry_forward_expiry <= ?", now).
		Where("expired_at IS NULL").
		Find(&policies).Error
	return policies, err
}

func (r *repository) Update(ctx context.Context, p *LeavePolicy) error {
	return r.db.WithContext(ctx).Save(p).Error
}

func (r *repository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("id = ?", id).
		Delete(&LeavePolicy{}).Error
}
