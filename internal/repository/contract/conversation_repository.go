package contract

import (
	"context"

	"ai-studyplanner-be/internal/entity"

	"github.com/google/uuid"
)

type ConversationRepository interface {
	// FindByUser returns nil without error when the user has no
	// conversation yet.
	FindByUser(ctx context.Context, userId uuid.UUID) (*entity.Conversation, error)
	Create(ctx context.Context, conversation *entity.Conversation) error
	Update(ctx context.Context, conversation *entity.Conversation) error
}
