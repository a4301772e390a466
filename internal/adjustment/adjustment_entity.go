package adjustment

import (
	"time"

	"github.com/google/uuid"
)

const (
	TypeAdd      = "ADD"
	TypeSubtract = "SUBTRACT"
)

const (
	StatusCreated  = "CREATED"
	StatusApproved = "APPROVED"
)

// Adjustment is a manual balance correction. Creating one records intent
// only; the ledger moves when the adjustment is approved, exactly once.
type Adjustment struct {
	ID          uuid.UUID  `gorm:"type:uuid;primaryKey"`
	EmployeeID  uuid.UUID  `gorm:"type:uuid;not null;index"`
	LeaveTypeID uuid.UUID  `gorm:"type:uuid;not null"`
	Type        string     `gorm:"type:varchar(16);not null"`
	DaysCount   int        `gorm:"not null"`
	Reason      string     `gorm:"type:text"`
	Status      string     `gorm:"type:varchar(16);not null;default:CREATED"`
	ApprovedBy  *uuid.UUID `gorm:"type:uuid"`
	ApprovedAt  *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (Adjustment) TableName() string {
	return "adjustments"
}
