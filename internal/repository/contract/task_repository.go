package contract

import (
	"context"

	"ai-studyplanner-be/internal/entity"
	"ai-studyplanner-be/internal/repository/specification"

	"github.com/google/uuid"
)

type TaskRepository interface {
	Create(ctx context.Context, task *entity.Task) error
	CreateBatch(ctx context.Context, tasks []*entity.Task) error
	Update(ctx context.Context, task *entity.Task) error
	UpdateBatch(ctx context.Context, tasks []*entity.Task) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Task, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Task, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
}
