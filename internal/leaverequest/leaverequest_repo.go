package leaverequest

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// FilterQuery carries the parsed, conjunctive history filter.
type FilterQuery struct {
	EmployeeID  *uuid.UUID
	Status      string
	LeaveTypeID *uuid.UUID
	StartDate   *time.Time
	EndDate     *time.Time
}

//go:generate mockgen -source=leaverequest_repo.go -destination=mock/leaverequest_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, lr *LeaveRequest) error
	FindByID(ctx context.Context, id string) (*LeaveRequest, error)
	FindByIDForUpdate(ctx context.Context, id string) (*LeaveRequest, error)
	FindAll(ctx context.Context) ([]LeaveRequest, error)
	FindByEmployee(ctx context.Context, employeeID uuid.UUID) ([]LeaveRequest, error)
	FindApprovedUpcoming(ctx context.Context, employeeID uuid.UUID, from time.Time) ([]LeaveRequest, error)
	Filter(ctx context.Context, q FilterQuery) ([]LeaveRequest, error)
	Update(ctx context.Context, lr *LeaveRequest) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	return &repository{db: tx}
}

func (r *repository) Create(ctx context.Context, lr *LeaveRequest) error {
	return r.db.WithContext(ctx).Create(lr).Error
}

func (r *repository) FindByID(ctx context.Context, id string) (*LeaveRequest, error) {
	var lr LeaveRequest
	err := r.db.WithContext(ctx).First(&lr, "id = ?", id).Error
	return &lr, err
}

func (r *repository) FindByIDForUpdate(ctx context.Context, id string) (*LeaveRequest, error) {
	var lr LeaveRequest
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&lr, "id = ?", id).Error
	return &lr, err
}

func (r *repository) FindAll(ctx context.Context) ([]LeaveRequest, error) {
	var lrs []LeaveRequest
	err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Find(&lrs).Error
	return lrs, err
}

func (r *repository) FindByEmployee(ctx context.Context, employeeID uuid.UUID) ([]LeaveRequest, error) {
	var lrs []LeaveRequest
	err := r.db.WithContext(ctx).
		Where("employee_id = ?", employeeID).
		Order("created_at DESC").
		Find(&lrs).Error
	return lrs, err
}

func (r *repository) FindApprovedUpcoming(ctx context.Context, employeeID uuid.UUID, from time.Time) ([]LeaveRequest, error) {
	var lrs []LeaveRequest
	err := r.db.WithContext(ctx).
		Where("employee_id = ?", employeeID).
		Where("status = ?", StatusApproved).
		Where("end_date >= ?", from).
		Order("start_date ASC").
		Find(&lrs).Error
	return lrs, err
}

func (r *repository) Filter(ctx context.Context, q FilterQuery) ([]LeaveRequest, error) {
	db := r.db.WithContext(ctx).Model(&LeaveRequest{})

	if q.EmployeeID != nil {
		db = db.Where("employee_id = ?", *q.EmployeeID)
	}
	if q.Status != "" {
		db = db.Where("status = ?", q.Status)
	}
	if q.LeaveTypeID != nil {
		db = db.Where("leave_type_id = ?", *q.LeaveTypeID)
	}
	if q.StartDate != nil {
		db = db.Where("start_date >= ?", *q.StartDate)
	}
	if q.EndDate != nil {
		db = db.Where("end_date <= ?", *q.EndDate)
	}

	var lrs []LeaveRequest
	err := db.Order("created_at DESC").Find(&lrs).Error
	return lrs, err
}

func (r *repository) Update(ctx context.Context, lr *LeaveRequest) error {
	return r.db.WithContext(ctx).Save(lr).Error
}
