package adjustment

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

//go:generate mockgen -source=adjustment_repo.go -destination=mock/adjustment_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, adj *Adjustment) error
	FindByID(ctx context.Context, id string) (*Adjustment, error)
	FindByIDForUpdate(ctx context.Context, id string) (*Adjustment, error)
	FindByEmployee(ctx context.Context, employeeID uuid.UUID) ([]Adjustment, error)
	FindAll(ctx context.Context) ([]Adjustment, error)
	Update(ctx context.Context, adj *Adjustment) error
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

func (r *repository) Create(ctx context.Context, adj *Adjustment) error {
	return r.db.WithContext(ctx).Create(adj).Error
}

func (r *repository) FindByID(ctx context.Context, id string) (*Adjustment, error) {
	var adj Adjustment
	err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&adj).Error
	if err != nil {
		return nil, err
	}
	return &adj, nil
}

// FindByIDForUpdate locks the row so a concurrent approve observes the
// terminal status instead of applying the ledger delta twice.
func (r *repository) FindByIDForUpdate(ctx context.Context, id string) (*Adjustment, error) {
	var adj Adjustment
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ?", id).
		First(&adj).Error
	if err != nil {
		return nil, err
	}
	return &adj, nil
}

func (r *repository) FindByEmployee(ctx context.Context, employeeID uuid.UUID) ([]Adjustment, error) {
	var adjs []Adjustment
	err := r.db.WithContext(ctx).
		Where("employee_id = ?", employeeID).
		Order("created_at DESC").
		Find(&adjs).Error
	return adjs, err
}

func (r *repository) FindAll(ctx context.Context) ([]Adjustment, error) {
	var adjs []Adjustment
	err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Find(&adjs).Error
	return adjs, err
}

func (r *repository) Update(ctx context.Context, adj *Adjustment) error {
	return r.db.WithContext(ctx).Save(adj).Error
}
