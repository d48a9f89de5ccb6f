package mapper

import (
	"time"

	"ai-studyplanner-be/internal/entity"
	"ai-studyplanner-be/internal/model"
)

type TaskMapper struct{}

func NewTaskMapper() *TaskMapper {
	return &TaskMapper{}
}

func (m *TaskMapper) ToEntity(t *model.Task) *entity.Task {
	if t == nil {
		return nil
	}

	var updatedAt *time.Time
	if !t.UpdatedAt.IsZero() {
		u := t.UpdatedAt
		updatedAt = &u
	}

	return &entity.Task{
		Id:              t.Id,
		ScheduleId:      t.ScheduleId,
		UserId:          t.UserId,
		Title:           t.Title,
		Subject:         t.Subject,
		Day:             t.Day,
		StartTime:       t.StartTime,
		DurationMinutes: t.DurationMinutes,
		Status:          t.Status,
		CreatedAt:       t.CreatedAt,
		UpdatedAt:       updatedAt,
	}
}

func (m *TaskMapper) ToModel(t *entity.Task) *model.Task {
	if t == nil {
		return nil
	}

	var updatedAt time.Time
	if t.UpdatedAt != nil {
		updatedAt = *t.UpdatedAt
	}

	return &model.Task{
		Id:              t.Id,
		ScheduleId:      t.ScheduleId,
		UserId:          t.UserId,
		Title:           t.Title,
		Subject:         t.Subject,
		Day:             t.Day,
		StartTime:       t.StartTime,
		DurationMinutes: t.DurationMinutes,
		Status:          t.Status,
		CreatedAt:       t.CreatedAt,
		UpdatedAt:       updatedAt,
	}
}

func (m *TaskMapper) ToEntities(tasks []*model.Task) []*entity.Task {
	entities := make([]*entity.Task, len(tasks))
	for i, t := range tasks {
		entities[i] = m.ToEntity(t)
	}
	return entities
}

func (m *TaskMapper) ToModels(tasks []*entity.Task) []*model.Task {
	models := make([]*model.Task, len(tasks))
	for i, t := range tasks {
		models[i] = m.ToModel(t)
	}
	return models
}
