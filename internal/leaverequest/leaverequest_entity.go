package leaverequest

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// DecisionRecord is one entry of the append-only approval flow. Records are
// never rewritten, only appended.
type DecisionRecord struct {
	Role      string    `json:"role"`
	Status    string    `json:"status"`
	DecidedBy string    `json:"decided_by,omitempty"`
	DecidedAt time.Time `json:"decided_at"`
	Comment   string    `json:"comment,omitempty"`
}

type LeaveRequest struct {
	ID            uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	RequestNumber string     `gorm:"type:varchar(20);uniqueIndex"`
	EmployeeID    uuid.UUID  `gorm:"type:uuid;not null;index:idx_leave_requests_employee_dates"`
	LeaveTypeID   uuid.UUID  `gorm:"type:uuid;not null"`
	StartDate     time.Time  `gorm:"type:date;not null;index:idx_leave_requests_employee_dates"`
	EndDate       time.Time  `gorm:"type:date;not null;index:idx_leave_requests_employee_dates"`
	DurationDays  int        `gorm:"type:int;not null;default:1"`
	Justification string     `gorm:"type:text"`
	AttachmentID  *uuid.UUID `gorm:"type:uuid"`

	Status       string                               `gorm:"type:varchar(20);not null;default:'PENDING';index"`
	ApprovalFlow datatypes.JSONSlice[DecisionRecord]  `gorm:"type:jsonb"`

	CreatedAt time.Time
	UpdatedAt time.Time
}
