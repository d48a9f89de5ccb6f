package planner

import "errors"

// Task/session statuses. Stored as plain strings so they survive the DB
// round-trip without a mapping layer.
const (
	StatusPending   = "pending"
	StatusMissed    = "missed"
	StatusCompleted = "completed"
)

const DefaultBreakMinutes = 15

var (
	// ErrInvalidWindow means dailyEnd is not after dailyStart.
	ErrInvalidWindow = errors.New("daily window must end after it starts")

	// ErrPortionTooLarge means a single portion can never fit inside the
	// daily window, so it would silently never be scheduled.
	ErrPortionTooLarge = errors.New("portion duration exceeds the daily window")

	// ErrBadTimeFormat covers malformed "HH:MM" / "YYYY-MM-DD" inputs.
	ErrBadTimeFormat = errors.New("invalid time or date format")
)

// Subject is one study subject split into equally sized portions.
type Subject struct {
	Name           string `json:"name"`
	PortionCount   int    `json:"portion_count"`
	PortionMinutes int    `json:"portion_minutes"`
}

// Window is the daily time range available for sessions, plus the mandatory
// break inserted between consecutive sessions on the same day.
type Window struct {
	DailyStart   string `json:"daily_start"` // "HH:MM"
	DailyEnd     string `json:"daily_end"`   // "HH:MM"
	BreakMinutes int    `json:"break_minutes"`
}

// ScheduleRequest is the immutable input of a Pack call.
type ScheduleRequest struct {
	Subjects  []Subject `json:"subjects"`
	StartDate string    `json:"start_date"` // "YYYY-MM-DD"
	Deadline  string    `json:"deadline"`   // "YYYY-MM-DD", inclusive
	Window    Window    `json:"window"`
}

// WorkItem is one unplaced portion of study work. Ref is an opaque caller
// tag (e.g. a task id) carried into the emitted session.
type WorkItem struct {
	Ref             string
	Title           string
	Subject         string
	DurationMinutes int
}

// Session is a WorkItem assigned a calendar day and start time.
type Session struct {
	Ref             string `json:"-"`
	Title           string `json:"title"`
	Subject         string `json:"subject"`
	Day             string `json:"day"`   // "YYYY-MM-DD"
	Start           string `json:"start"` // "HH:MM"
	DurationMinutes int    `json:"duration_minutes"`
	Status          string `json:"status"`
}

// PlanResult is the output of the packer.
type PlanResult struct {
	Summary  string    `json:"summary"`
	Sessions []Session `json:"sessions"`
	Planned  int       `json:"planned"`
	Total    int       `json:"total"`
}

// Busy is an existing commitment occupying part of a day. Existing persisted
// tasks are projected into this shape before conflict checking.
type Busy struct {
	ID              string
	Title           string
	Start           string // "HH:MM"
	DurationMinutes int
}

// Conflict pairs a proposed session with the existing commitment it overlaps.
type Conflict struct {
	Proposed Session
	Existing Busy
}
