package events

import "time"

// Event defines the contract for all system events.
type Event interface {
	// EventType returns the unique code for this event (e.g., "SCHEDULE_CREATED").
	EventType() string

	// Payload returns the data associated with the event.
	Payload() map[string]interface{}

	// Timestamp returns when the event occurred.
	Timestamp() time.Time
}

// BaseEvent is the generic implementation used by publishers.
type BaseEvent struct {
	Type       string
	Data       map[string]interface{}
	OccurredAt time.Time
}

func (e BaseEvent) EventType() string {
	return e.Type
}

func (e BaseEvent) Payload() map[string]interface{} {
	return e.Data
}

func (e BaseEvent) Timestamp() time.Time {
	return e.OccurredAt
}

const TypeScheduleCreated = "SCHEDULE_CREATED"

// NewScheduleCreated is emitted after a plan commits with its full task set.
func NewScheduleCreated(scheduleId, userId, title string, taskCount int) Event {
	return BaseEvent{
		Type: TypeScheduleCreated,
		Data: map[string]interface{}{
			"schedule_id": scheduleId,
			"user_id":     userId,
			"title":       title,
			"task_count":  taskCount,
		},
		OccurredAt: time.Now(),
	}
}
