package extraction

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"ai-studyplanner-be/pkg/planner"
)

// Descriptor is the schedule-level record a completed context synthesizes
// into.
type Descriptor struct {
	Title         string
	Description   string
	StartDate     string // "YYYY-MM-DD"
	EndDate       string // "YYYY-MM-DD"
	RepeatPattern string
}

// SynthesisResult carries the descriptor plus the proposed sessions to
// persist as tasks.
type SynthesisResult struct {
	Descriptor Descriptor
	Sessions   []planner.Session
}

const dateLayout = "2006-01-02"

// SynthesizePlan expands a complete context into a full day-by-day plan.
// Daily schedules go through the session packer; weekly and weekday patterns
// select their occurrence days first and place one session per day at the
// requested time.
func (e *Extractor) SynthesizePlan(ctx context.Context, c Context) (*SynthesisResult, error) {
	if missing := c.MissingFields(); len(missing) > 0 {
		return nil, fmt.Errorf("%w: context incomplete, missing %v", ErrExternalService, missing)
	}

	count, err := strconv.Atoi(c.Duration)
	if err != nil || count <= 0 {
		return nil, fmt.Errorf("%w: bad duration %q", ErrExternalService, c.Duration)
	}
	taskMinutes, err := strconv.Atoi(c.TaskDuration)
	if err != nil || taskMinutes <= 0 {
		return nil, fmt.Errorf("%w: bad task duration %q", ErrExternalService, c.TaskDuration)
	}
	start, err := time.Parse(dateLayout, c.StartingDate)
	if err != nil {
		return nil, fmt.Errorf("%w: bad starting date %q", ErrExternalService, c.StartingDate)
	}

	totalDays := count
	if c.DurationUnit == "weeks" {
		totalDays = count * 7
	}
	endDate := start.AddDate(0, 0, totalDays-1).Format(dateLayout)

	days, err := occurrenceDays(start, totalDays, c.RepeatPattern)
	if err != nil {
		return nil, err
	}

	sessions, err := e.placeSessions(c, days, taskMinutes, endDate)
	if err != nil {
		return nil, err
	}

	e.logger.Printf("[SYNTH] %q: %d sessions %s..%s (%s)", c.ScheduleTitle, len(sessions), c.StartingDate, endDate, c.RepeatPattern)
	return &SynthesisResult{
		Descriptor: Descriptor{
			Title:         c.ScheduleTitle,
			Description:   fmt.Sprintf("%s study plan, %s at %s", c.RepeatPattern, c.ScheduleTitle, c.TaskTime),
			StartDate:     c.StartingDate,
			EndDate:       endDate,
			RepeatPattern: c.RepeatPattern,
		},
		Sessions: sessions,
	}, nil
}

func (e *Extractor) placeSessions(c Context, days []string, taskMinutes int, endDate string) ([]planner.Session, error) {
	if c.RepeatPattern == "daily" {
		// One portion per calendar day: the window admits exactly one
		// session, so the packer lays them out day by day.
		endMinutes, err := addMinutes(c.TaskTime, taskMinutes)
		if err != nil {
			return nil, fmt.Errorf("%w: bad task time %q", ErrExternalService, c.TaskTime)
		}
		result, err := planner.Pack(planner.ScheduleRequest{
			Subjects:  []planner.Subject{{Name: c.ScheduleTitle, PortionCount: len(days), PortionMinutes: taskMinutes}},
			StartDate: days[0],
			Deadline:  endDate,
			Window:    planner.Window{DailyStart: c.TaskTime, DailyEnd: endMinutes},
		})
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrExternalService, err)
		}
		return result.Sessions, nil
	}

	sessions := make([]planner.Session, 0, len(days))
	for i, day := range days {
		sessions = append(sessions, planner.Session{
			Title:           fmt.Sprintf("%s (part %d/%d)", c.ScheduleTitle, i+1, len(days)),
			Subject:         c.ScheduleTitle,
			Day:             day,
			Start:           c.TaskTime,
			DurationMinutes: taskMinutes,
			Status:          planner.StatusPending,
		})
	}
	return sessions, nil
}

func occurrenceDays(start time.Time, totalDays int, pattern string) ([]string, error) {
	var days []string
	switch pattern {
	case "daily":
		for i := 0; i < totalDays; i++ {
			days = append(days, start.AddDate(0, 0, i).Format(dateLayout))
		}
	case "weekly":
		for i := 0; i < totalDays; i += 7 {
			days = append(days, start.AddDate(0, 0, i).Format(dateLayout))
		}
	case "weekdays":
		for i := 0; i < totalDays; i++ {
			d := start.AddDate(0, 0, i)
			if wd := d.Weekday(); wd != time.Saturday && wd != time.Sunday {
				days = append(days, d.Format(dateLayout))
			}
		}
	default:
		return nil, fmt.Errorf("%w: unknown repeat pattern %q", ErrExternalService, pattern)
	}
	if len(days) == 0 {
		return nil, fmt.Errorf("%w: schedule has no occurrence days", ErrExternalService)
	}
	return days, nil
}

func addMinutes(clock string, minutes int) (string, error) {
	t, err := time.Parse("15:04", clock)
	if err != nil {
		return "", err
	}
	end := t.Add(time.Duration(minutes) * time.Minute)
	// Sessions must end the same day; past-midnight task times are rejected.
	if end.Day() != t.Day() {
		return "", fmt.Errorf("session crosses midnight")
	}
	return end.Format("15:04"), nil
}
