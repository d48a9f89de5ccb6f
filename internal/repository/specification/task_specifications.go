package specification

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ByDay struct {
	Day string // "YYYY-MM-DD"
}

func (s ByDay) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("day = ?", s.Day)
}

type BySchedule struct {
	ScheduleID uuid.UUID
}

func (s BySchedule) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("schedule_id = ?", s.ScheduleID)
}

type ByStatus struct {
	Status string
}

func (s ByStatus) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("status = ?", s.Status)
}

// ChronologicalOrder sorts tasks by day then start time. Zero-padded ISO
// dates and 24h clocks make the string sort chronological.
type ChronologicalOrder struct{}

func (s ChronologicalOrder) Apply(db *gorm.DB) *gorm.DB {
	return db.Order("day ASC, start_time ASC")
}
