package entity

import (
	"time"

	"github.com/google/uuid"
)

// Task is a committed study session on the calendar.
type Task struct {
	Id              uuid.UUID `gorm:"type:uuid;primaryKey"`
	ScheduleId      uuid.UUID `gorm:"type:uuid;index"`
	UserId          uuid.UUID `gorm:"type:uuid;index"`
	Title           string
	Subject         string
	Day             string // "YYYY-MM-DD"
	StartTime       string // "HH:MM"
	DurationMinutes int
	Status          string // planner.StatusPending / StatusMissed / StatusCompleted
	CreatedAt       time.Time
	UpdatedAt       *time.Time
}
