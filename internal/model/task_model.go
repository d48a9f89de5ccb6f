package model

import (
	"time"

	"github.com/google/uuid"
)

type Task struct {
	Id              uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	ScheduleId      uuid.UUID `gorm:"type:uuid;not null;index"`
	UserId          uuid.UUID `gorm:"type:uuid;not null;index:idx_tasks_user_day,priority:1"`
	Title           string    `gorm:"type:varchar(255);not null"`
	Subject         string    `gorm:"type:varchar(255)"`
	Day             string    `gorm:"type:varchar(10);not null;index:idx_tasks_user_day,priority:2"`
	StartTime       string    `gorm:"type:varchar(5);not null"`
	DurationMinutes int       `gorm:"not null"`
	Status          string    `gorm:"type:varchar(16);not null;default:pending"`
	CreatedAt       time.Time `gorm:"autoCreateTime"`
	UpdatedAt       time.Time `gorm:"autoUpdateTime"`
}

func (Task) TableName() string {
	return "tasks"
}
