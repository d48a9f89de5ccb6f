package entity

import (
	"time"

	"github.com/google/uuid"
)

type Schedule struct {
	Id            uuid.UUID `gorm:"type:uuid;primaryKey"`
	Title         string
	Description   string
	StartDate     string // "YYYY-MM-DD"
	EndDate       string // "YYYY-MM-DD"
	RepeatPattern string
	UserId        uuid.UUID `gorm:"type:uuid;index"`
	CreatedAt     time.Time
	UpdatedAt     *time.Time
}
