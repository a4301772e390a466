package leavepolicy

import (
	"time"

	"github.com/google/uuid"
)

// LeavePolicy sets the carry-forward rules for one leave type and year. The
// worker sweeps policies whose expiry has passed and zeroes the carried-over
// days on the matching entitlements.
type LeavePolicy struct {
	ID                  uuid.UUID  `gorm:"type:uuid;primaryKey"`
	LeaveTypeID         uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex:idx_leave_policies_type_year"`
	Year                int        `gorm:"not null;uniqueIndex:idx_leave_policies_type_year"`
	MaxCarryForwardDays int        `gorm:"not null;default:0"`
	CarryForwardExpiry  time.Time  `gorm:"not null"`
	ExpiredAt           *time.Time `gorm:"index"`
	CreatedAt           time.Time
	UpdatedAt           time.Time
}

func (LeavePolicy) TableName() string {
	return "leave_policies"
}
