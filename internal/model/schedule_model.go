package model

import (
	"time"

	"github.com/google/uuid"
)

type Schedule struct {
	Id            uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Title         string    `gorm:"type:varchar(255);not null"`
	Description   string    `gorm:"type:text"`
	StartDate     string    `gorm:"type:varchar(10);not null"`
	EndDate       string    `gorm:"type:varchar(10);not null"`
	RepeatPattern string    `gorm:"type:varchar(32);not null"`
	UserId        uuid.UUID `gorm:"type:uuid;not null;index"`
	CreatedAt     time.Time `gorm:"autoCreateTime"`
	UpdatedAt     time.Time `gorm:"autoUpdateTime"`
}

func (Schedule) TableName() string {
	return "schedules"
}
