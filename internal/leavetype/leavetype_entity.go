package leavetype

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	CategoryPaid   = "PAID"
	CategoryUnpaid = "UNPAID"
)

type LeaveType struct {
	ID               uuid.UUID      `gorm:"type:uuid;primaryKey"`
	Code             string         `gorm:"type:varchar(64);uniqueIndex;not null"`
	Name             string         `gorm:"type:varchar(255);not null"`
	Category         string         `gorm:"type:varchar(16);not null;default:PAID"`
	RequiresDocument bool           `gorm:"not null;default:false"`
	CreatedAt        time.Time      `gorm:"autoCreateTime"`
	UpdatedAt        time.Time      `gorm:"autoUpdateTime"`
	DeletedAt        gorm.DeletedAt `gorm:"index"`
}

func (LeaveType) TableName() string {
	return "leave_types"
}
