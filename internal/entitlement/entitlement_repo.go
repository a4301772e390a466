package entitlement

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

//go:generate mockgen -source=entitlement_repo.go -destination=mock/entitlement_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, ent *Entitlement) error
	Exists(ctx context.Context, employeeID, leaveTypeID uuid.UUID, year int) (bool, error)
	FindByEmployeeAndType(ctx context.Context, employeeID, leaveTypeID uuid.UUID) (*Entitlement, error)
	// FindByEmployeeAndTypeForUpdate locks the row so concurrent ledger
	// operations on the same entitlement are serialized.
	FindByEmployeeAndTypeForUpdate(ctx context.Context, employeeID, leaveTypeID uuid.UUID) (*Entitlement, error)
	FindByEmployee(ctx context.Context, employeeID uuid.UUID) ([]Entitlement, error)
	FindAll(ctx context.Context) ([]Entitlement, error)
	Save(ctx context.Context, ent *Entitlement) error
	DeleteByEmployee(ctx context.Context, employeeID uuid.UUID) error
	// ExpireCarryForward zeroes the carried-over days for a leave type and
	// year in one statement, recomputing remaining without going below zero.
	ExpireCarryForward(ctx context.Context, leaveTypeID uuid.UUID, year int) (int64, error)
	// CountClampedDeficits counts rows whose remaining was clamped to zero
	// while the uncapped balance is negative, e.g. pending days that were
	// funded by expired carry-forward.
	CountClampedDeficits(ctx context.Context, leaveTypeID uuid.UUID, year int) (int64, error)
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

func (r *repository) Create(ctx context.Context, ent *Entitlement) error {
	return r.db.WithContext(ctx).Create(ent).Error
}

func (r *repository) Exists(ctx context.Context, employeeID, leaveTypeID uuid.UUID, year int) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&Entitlement{}).
		Where("employee_id = ?", employeeID).
		Where("leave_type_id = ?", leaveTypeID).
		Where("year = ?", year).
		Count(&count).Error
	return count > 0, err
}

// Ledger lookups ignore the year and operate on the most recent period.
func (r *repository) FindByEmployeeAndType(ctx context.Context, employeeID, leaveTypeID uuid.UUID) (*Entitlement, error) {
	var ent Entitlement
	err := r.db.WithContext(ctx).
		Where("employee_id = ?", employeeID).
		Where("leave_type_id = ?", leaveTypeID).
		Order("year DESC").
		First(&ent).Error
	return &ent, err
}

func (r *repository) FindByEmployeeAndTypeForUpdate(ctx context.Context, employeeID, leaveTypeID uuid.UUID) (*Entitlement, error) {
	var ent Entitlement
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("employee_id = ?", employeeID).
		Where("leave_type_id = ?", leaveTypeID).
		Order("year DESC").
		First(&ent).Error
	return &ent, err
}

func (r *repository) FindByEmployee(ctx context.Context, employeeID uuid.UUID) ([]Entitlement, error) {
	var ents []Entitlement
	err := r.db.WithContext(ctx).
		Where("employee_id = ?", employeeID).
		Order("year DESC").
		Find(&ents).Error
	return ents, err
}

func (r *repository) FindAll(ctx context.Context) ([]Entitlement, error) {
	var ents []Entitlement
	err := r.db.WithContext(ctx).
		Order("employee_id, year DESC").
		Find(&ents).Error
	return ents, err
}

func (r *repository) Save(ctx context.Context, ent *Entitlement) error {
	return r.db.WithContext(ctx).Save(ent).Error
}

func (r *repository) DeleteByEmployee(ctx context.Context, employeeID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("employee_id = ?", employeeID).
		Delete(&Entitlement{}).Error
}

func (r *repository) ExpireCarryForward(ctx context.Context, leaveTypeID uuid.UUID, year int) (int64, error) {
	res := r.db.WithContext(ctx).Exec(`
UPDATE entitlements
SET carry_forward = 0,
    remaining = GREATEST(yearly_entitlement - taken - pending, 0),
    updated_at = NOW()
WHERE leave_type_id = ?
  AND year = ?
  AND carry_forward > 0
`, leaveTypeID, year)
	return res.RowsAffected, res.Error
}

func (r *repository) CountClampedDeficits(ctx context.Context, leaveTypeID uuid.UUID, year int) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&Entitlement{}).
		Where("leave_type_id = ? AND year = ?", leaveTypeID, year).
		Where("yearly_entitlement + carry_forward - taken - pending < 0").
		Count(&count).Error
	return count, err
}
