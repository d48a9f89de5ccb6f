package planner

import (
	"fmt"
	"sort"
)

// Reallocate re-places every session flagged missed, starting on the anchor
// day (the later of fromDate and the last day holding a non-missed session).
// Non-missed sessions pass through untouched. On the anchor day the cursor
// starts after the last fixed session already on it, so re-placed sessions
// never overlap fixed ones.
func Reallocate(sessions []Session, fromDate string, window Window) ([]Session, error) {
	dayStart, err := parseClock(window.DailyStart)
	if err != nil {
		return nil, err
	}
	dayEnd, err := parseClock(window.DailyEnd)
	if err != nil {
		return nil, err
	}
	if dayEnd <= dayStart {
		return nil, fmt.Errorf("%w: %s..%s", ErrInvalidWindow, window.DailyStart, window.DailyEnd)
	}
	if _, err := parseDay(fromDate); err != nil {
		return nil, err
	}

	var fixed, missed []Session
	for _, s := range sessions {
		if s.Status == StatusMissed {
			missed = append(missed, s)
		} else {
			fixed = append(fixed, s)
		}
	}
	if len(missed) == 0 {
		return sessions, nil
	}

	budget := dayEnd - dayStart
	queue := make([]WorkItem, 0, len(missed))
	for _, s := range missed {
		if s.DurationMinutes > budget {
			return nil, fmt.Errorf("%w: %q needs %d minutes, window has %d",
				ErrPortionTooLarge, s.Title, s.DurationMinutes, budget)
		}
		queue = append(queue, WorkItem{Ref: s.Ref, Title: s.Title, Subject: s.Subject, DurationMinutes: s.DurationMinutes})
	}

	anchor := fromDate
	for _, f := range fixed {
		if f.Day > anchor {
			anchor = f.Day
		}
	}

	// The anchor day may already be partially consumed by fixed sessions.
	cursor, occupied := dayStart, false
	for _, f := range fixed {
		if f.Day != anchor {
			continue
		}
		end, err := sessionEnd(f.Start, f.DurationMinutes)
		if err != nil {
			return nil, err
		}
		if end > cursor {
			cursor = end
		}
		occupied = true
	}

	out := append([]Session{}, fixed...)
	day := anchor
	out = append(out, fillDay(&queue, day, cursor, dayEnd, window.BreakMinutes, occupied)...)
	for len(queue) > 0 {
		day = nextDay(day)
		out = append(out, fillDay(&queue, day, dayStart, dayEnd, window.BreakMinutes, false)...)
	}

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Day != out[j].Day {
			return out[i].Day < out[j].Day
		}
		return out[i].Start < out[j].Start
	})
	return out, nil
}
