package unitofwork

import (
	"context"

	"ai-studyplanner-be/internal/repository/contract"
)

type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit() error
	Rollback() error

	ScheduleRepository() contract.ScheduleRepository
	TaskRepository() contract.TaskRepository
	ConversationRepository() contract.ConversationRepository
}
