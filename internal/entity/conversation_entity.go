package entity

import (
	"time"

	"ai-studyplanner-be/pkg/extraction"

	"github.com/google/uuid"
)

// Conversation states. A conversation is always in exactly one of these.
const (
	ConversationIdle            = "idle"
	ConversationAwaitingDetails = "awaiting_details"
	ConversationGenerating      = "generating"
	ConversationAwaitingChoice  = "awaiting_reschedule_choice"
)

// Conversation is the per-owner planning conversation. One row per user,
// created lazily on first interaction, never deleted, only reset to idle.
type Conversation struct {
	Id            uuid.UUID `gorm:"type:uuid;primaryKey"`
	UserId        uuid.UUID `gorm:"type:uuid;uniqueIndex"`
	State         string
	Context       extraction.Context
	MissingFields []string
	CreatedAt     time.Time
	UpdatedAt     *time.Time
}

// Reset returns the conversation to idle with an empty context. Context is
// cleared only through this path, never partially.
func (c *Conversation) Reset() {
	c.State = ConversationIdle
	c.Context = extraction.Context{}
	c.MissingFields = nil
}
