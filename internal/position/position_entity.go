package position

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Position anchors the reporting chain: an employee's supervisor is whoever
// holds the position their SupervisorPositionID points at.
type Position struct {
	ID        uuid.UUID      `gorm:"type:uuid;primaryKey"`
	Code      string         `gorm:"type:varchar(64);uniqueIndex;not null"`
	Title     string         `gorm:"type:varchar(255);not null"`
	CreatedAt time.Time      `gorm:"autoCreateTime"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime"`
	DeletedAt gorm.DeletedAt `gorm:"index"`
}

func (Position) TableName() string {
	return "positions"
}
