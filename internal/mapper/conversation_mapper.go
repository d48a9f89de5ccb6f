package mapper

import (
	"encoding/json"
	"time"

	"ai-studyplanner-be/internal/entity"
	"ai-studyplanner-be/internal/model"
	"ai-studyplanner-be/pkg/extraction"

	"gorm.io/datatypes"
)

type ConversationMapper struct{}

func NewConversationMapper() *ConversationMapper {
	return &ConversationMapper{}
}

func (m *ConversationMapper) ToEntity(c *model.Conversation) *entity.Conversation {
	if c == nil {
		return nil
	}

	var ctx extraction.Context
	if len(c.Context) > 0 {
		// A context that no longer unmarshals is treated as empty; the
		// conversation then re-asks instead of crashing the turn.
		_ = json.Unmarshal(c.Context, &ctx)
	}
	var missing []string
	if len(c.MissingFields) > 0 {
		_ = json.Unmarshal(c.MissingFields, &missing)
	}

	var updatedAt *time.Time
	if !c.UpdatedAt.IsZero() {
		t := c.UpdatedAt
		updatedAt = &t
	}

	return &entity.Conversation{
		Id:            c.Id,
		UserId:        c.UserId,
		State:         c.State,
		Context:       ctx,
		MissingFields: missing,
		CreatedAt:     c.CreatedAt,
		UpdatedAt:     updatedAt,
	}
}

func (m *ConversationMapper) ToModel(c *entity.Conversation) *model.Conversation {
	if c == nil {
		return nil
	}

	ctxJSON, _ := json.Marshal(c.Context)
	missingJSON, _ := json.Marshal(c.MissingFields)

	var updatedAt time.Time
	if c.UpdatedAt != nil {
		updatedAt = *c.UpdatedAt
	}

	return &model.Conversation{
		Id:            c.Id,
		UserId:        c.UserId,
		State:         c.State,
		Context:       datatypes.JSON(ctxJSON),
		MissingFields: datatypes.JSON(missingJSON),
		CreatedAt:     c.CreatedAt,
		UpdatedAt:     updatedAt,
	}
}
