package employee

import (
	"time"

	"github.com/google/uuid"
)

const (
	StatusActive   = "ACTIVE"
	StatusInactive = "INACTIVE"
)

// Employee carries the position links the team view walks: reports are the
// employees whose SupervisorPositionID equals the manager's
// PrimaryPositionID.
type Employee struct {
	ID                   uuid.UUID  `gorm:"type:uuid;primaryKey"`
	FirstName            string     `gorm:"type:varchar(100);not null"`
	LastName             string     `gorm:"type:varchar(100);not null"`
	Email                string     `gorm:"type:varchar(255);uniqueIndex;not null"`
	PrimaryPositionID    *uuid.UUID `gorm:"type:uuid"`
	SupervisorPositionID *uuid.UUID `gorm:"type:uuid;index"`
	Status               string     `gorm:"type:varchar(16);not null;default:ACTIVE"`
	HireDate             *time.Time
	CreatedAt            time.Time
	UpdatedAt            time.Time
}

func (Employee) TableName() string {
	return "employees"
}
