package contract

import (
	"context"

	"ai-studyplanner-be/internal/entity"
	"ai-studyplanner-be/internal/repository/specification"

	"github.com/google/uuid"
)

type ScheduleRepository interface {
	Create(ctx context.Context, schedule *entity.Schedule) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Schedule, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Schedule, error)
}
