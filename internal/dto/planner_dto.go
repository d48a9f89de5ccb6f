package dto

import (
	"time"

	"github.com/google/uuid"
)

// Chat turn outcomes, mirrored in ChatResponse.Status
const (
	ChatStatusFollowUp = "follow_up" // more fields needed, Message is a question
	ChatStatusConflict = "conflict"  // proposed plan collides with an existing task
	ChatStatusCreated  = "created"   // schedule committed
)

type ChatRequest struct {
	Prompt string `json:"prompt" validate:"required"`
}

type ChatResponse struct {
	Status            string            `json:"status"`
	Message           string            `json:"message"`
	ConversationState string            `json:"conversation_state"`
	MissingFields     []string          `json:"missing_fields,omitempty"`
	SuggestedSlots    []string          `json:"suggested_slots,omitempty"`
	Schedule          *ScheduleResponse `json:"schedule,omitempty"`
}

type ScheduleResponse struct {
	Id            uuid.UUID      `json:"id"`
	Title         string         `json:"title"`
	Description   string         `json:"description,omitempty"`
	StartDate     string         `json:"start_date"`
	EndDate       string         `json:"end_date"`
	RepeatPattern string         `json:"repeat_pattern"`
	CreatedAt     time.Time      `json:"created_at"`
	Tasks         []TaskResponse `json:"tasks,omitempty"`
}

type TaskResponse struct {
	Id              uuid.UUID `json:"id"`
	ScheduleId      uuid.UUID `json:"schedule_id"`
	Title           string    `json:"title"`
	Subject         string    `json:"subject,omitempty"`
	Day             string    `json:"day"`
	StartTime       string    `json:"start_time"`
	DurationMinutes int       `json:"duration_minutes"`
	Status          string    `json:"status"`
}

// PlanRequest invokes the packer directly, without a conversation.
type PlanRequest struct {
	Subjects     []PlanSubject `json:"subjects" validate:"required,min=1,dive"`
	StartDate    string        `json:"start_date" validate:"required"`
	Deadline     string        `json:"deadline" validate:"required"`
	DailyStart   string        `json:"daily_start" validate:"required"`
	DailyEnd     string        `json:"daily_end" validate:"required"`
	BreakMinutes *int          `json:"break_minutes,omitempty"` // default 15
}

type PlanSubject struct {
	Name           string `json:"name" validate:"required"`
	PortionCount   int    `json:"portion_count" validate:"required,min=1"`
	PortionMinutes int    `json:"portion_minutes" validate:"required,min=1"`
}

type PlanResponse struct {
	Summary  string        `json:"summary"`
	Planned  int           `json:"planned"`
	Total    int           `json:"total"`
	Sessions []PlanSession `json:"sessions"`
}

type PlanSession struct {
	Title           string `json:"title"`
	Subject         string `json:"subject"`
	Day             string `json:"day"`
	Start           string `json:"start"`
	DurationMinutes int    `json:"duration_minutes"`
	Status          string `json:"status"`
}

// ReallocateRequest re-places a schedule's missed tasks from FromDate on.
type ReallocateRequest struct {
	ScheduleId uuid.UUID `json:"schedule_id" validate:"required"`
	FromDate   string    `json:"from_date" validate:"required"`
}

type ReallocateResponse struct {
	Moved int            `json:"moved"`
	Tasks []TaskResponse `json:"tasks"`
}

type UpdateTaskStatusRequest struct {
	Id     uuid.UUID `json:"-"`
	Status string    `json:"status" validate:"required,oneof=pending missed completed"`
}

type ResetConversationResponse struct {
	ConversationState string `json:"conversation_state"`
}
