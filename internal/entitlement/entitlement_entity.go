package entitlement

import (
	"time"

	"github.com/google/uuid"
)

// Entitlement is the per-employee, per-leave-type balance record. Remaining is
// cached and recomputed on every write; it must never be negative after a
// committed mutation.
type Entitlement struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	EmployeeID  uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_entitlements_employee_type_year"`
	LeaveTypeID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_entitlements_employee_type_year"`
	Year        int       `gorm:"type:int;not null;uniqueIndex:idx_entitlements_employee_type_year"`

	YearlyEntitlement int `gorm:"type:int;not null;default:0"`
	CarryForward      int `gorm:"type:int;not null;default:0"`
	Taken             int `gorm:"type:int;not null;default:0"`
	Pending           int `gorm:"type:int;not null;default:0"`
	Remaining         int `gorm:"type:int;not null;default:0"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (e *Entitlement) recomputeRemaining() {
	e.Remaining = e.YearlyEntitlement + e.CarryForward - e.Taken - e.Pending
}
