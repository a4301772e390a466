package calendar

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type BlockedPeriod struct {
	Name      string `json:"name"`
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
}

// Calendar holds one year's company-wide blocked periods. Blocked periods
// are informational for planning views; they do not reject requests.
type Calendar struct {
	ID             uuid.UUID                          `gorm:"type:uuid;primaryKey"`
	Year           int                                `gorm:"uniqueIndex;not null"`
	BlockedPeriods datatypes.JSONSlice[BlockedPeriod] `gorm:"type:jsonb"`
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

func (Calendar) TableName() string {
	return "calendars"
}
