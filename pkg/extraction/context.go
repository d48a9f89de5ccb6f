package extraction

// Field names as collected from the user's chat turns. FieldOrder is the
// fixed priority in which missing fields are asked about.
const (
	FieldScheduleTitle = "schedule_title"
	FieldStartingDate  = "starting_date"
	FieldRepeatPattern = "repeat_pattern"
	FieldDuration      = "duration"
	FieldDurationUnit  = "duration_unit"
	FieldTaskTime      = "task_time"
	FieldTaskDuration  = "task_duration"
)

var FieldOrder = []string{
	FieldScheduleTitle,
	FieldStartingDate,
	FieldRepeatPattern,
	FieldDuration,
	FieldDurationUnit,
	FieldTaskTime,
	FieldTaskDuration,
}

// Context is the accumulated structured state of one planning conversation.
// Fields stay empty until an extraction call fills them; presence is only
// checked at the MissingFields boundary. Description is scratch space the
// extraction model uses to flag clarifications (e.g. AM_PM_REQUIRED_FOR_7).
type Context struct {
	ScheduleTitle string `json:"schedule_title,omitempty"`
	StartingDate  string `json:"starting_date,omitempty"`  // "YYYY-MM-DD"
	RepeatPattern string `json:"repeat_pattern,omitempty"` // "daily" | "weekly" | "weekdays"
	Duration      string `json:"duration,omitempty"`       // count of duration units
	DurationUnit  string `json:"duration_unit,omitempty"`  // "days" | "weeks"
	TaskTime      string `json:"task_time,omitempty"`      // "HH:MM"
	TaskDuration  string `json:"task_duration,omitempty"`  // minutes per session
	Description   string `json:"description,omitempty"`
}

func (c Context) Get(field string) string {
	switch field {
	case FieldScheduleTitle:
		return c.ScheduleTitle
	case FieldStartingDate:
		return c.StartingDate
	case FieldRepeatPattern:
		return c.RepeatPattern
	case FieldDuration:
		return c.Duration
	case FieldDurationUnit:
		return c.DurationUnit
	case FieldTaskTime:
		return c.TaskTime
	case FieldTaskDuration:
		return c.TaskDuration
	}
	return ""
}

func (c *Context) Set(field, value string) {
	switch field {
	case FieldScheduleTitle:
		c.ScheduleTitle = value
	case FieldStartingDate:
		c.StartingDate = value
	case FieldRepeatPattern:
		c.RepeatPattern = value
	case FieldDuration:
		c.Duration = value
	case FieldDurationUnit:
		c.DurationUnit = value
	case FieldTaskTime:
		c.TaskTime = value
	case FieldTaskDuration:
		c.TaskDuration = value
	}
}

// MissingFields returns the required fields not yet present, in priority
// order.
func (c Context) MissingFields() []string {
	var missing []string
	for _, f := range FieldOrder {
		if c.Get(f) == "" {
			missing = append(missing, f)
		}
	}
	return missing
}

func (c Context) Complete() bool {
	return len(c.MissingFields()) == 0
}
