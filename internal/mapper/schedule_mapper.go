package mapper

import (
	"time"

	"ai-studyplanner-be/internal/entity"
	"ai-studyplanner-be/internal/model"
)

type ScheduleMapper struct{}

func NewScheduleMapper() *ScheduleMapper {
	return &ScheduleMapper{}
}

func (m *ScheduleMapper) ToEntity(s *model.Schedule) *entity.Schedule {
	if s == nil {
		return nil
	}

	var updatedAt *time.Time
	if !s.UpdatedAt.IsZero() {
		t := s.UpdatedAt
		updatedAt = &t
	}

	return &entity.Schedule{
		Id:            s.Id,
		Title:         s.Title,
		Description:   s.Description,
		StartDate:     s.StartDate,
		EndDate:       s.EndDate,
		RepeatPattern: s.RepeatPattern,
		UserId:        s.UserId,
		CreatedAt:     s.CreatedAt,
		UpdatedAt:     updatedAt,
	}
}

func (m *ScheduleMapper) ToModel(s *entity.Schedule) *model.Schedule {
	if s == nil {
		return nil
	}

	var updatedAt time.Time
	if s.UpdatedAt != nil {
		updatedAt = *s.UpdatedAt
	}

	return &model.Schedule{
		Id:            s.Id,
		Title:         s.Title,
		Description:   s.Description,
		StartDate:     s.StartDate,
		EndDate:       s.EndDate,
		RepeatPattern: s.RepeatPattern,
		UserId:        s.UserId,
		CreatedAt:     s.CreatedAt,
		UpdatedAt:     updatedAt,
	}
}

func (m *ScheduleMapper) ToEntities(schedules []*model.Schedule) []*entity.Schedule {
	entities := make([]*entity.Schedule, len(schedules))
	for i, s := range schedules {
		entities[i] = m.ToEntity(s)
	}
	return entities
}
