package planner

import "fmt"

// Flatten expands subjects into a FIFO queue of work items, one per portion.
// All portions of a subject precede the next subject; swap this function for
// a round-robin variant if even distribution across subjects is wanted.
func Flatten(subjects []Subject) []WorkItem {
	var items []WorkItem
	for _, s := range subjects {
		for i := 0; i < s.PortionCount; i++ {
			items = append(items, WorkItem{
				Title:           fmt.Sprintf("%s (part %d/%d)", s.Name, i+1, s.PortionCount),
				Subject:         s.Name,
				DurationMinutes: s.PortionMinutes,
			})
		}
	}
	return items
}

// Pack converts a flat list of subjects into day-by-day sessions inside the
// daily window, inserting a break between consecutive sessions. Days advance
// from StartDate up to and including Deadline; whatever is still queued when
// the deadline passes is dropped and reflected in the summary counts.
func Pack(req ScheduleRequest) (*PlanResult, error) {
	dayStart, err := parseClock(req.Window.DailyStart)
	if err != nil {
		return nil, err
	}
	dayEnd, err := parseClock(req.Window.DailyEnd)
	if err != nil {
		return nil, err
	}
	if dayEnd <= dayStart {
		return nil, fmt.Errorf("%w: %s..%s", ErrInvalidWindow, req.Window.DailyStart, req.Window.DailyEnd)
	}
	if _, err := parseDay(req.StartDate); err != nil {
		return nil, err
	}
	if _, err := parseDay(req.Deadline); err != nil {
		return nil, err
	}

	budget := dayEnd - dayStart
	queue := Flatten(req.Subjects)
	total := len(queue)
	for _, item := range queue {
		if item.DurationMinutes > budget {
			return nil, fmt.Errorf("%w: %q needs %d minutes, window has %d",
				ErrPortionTooLarge, item.Title, item.DurationMinutes, budget)
		}
	}

	var sessions []Session
	// Zero-padded ISO dates compare lexicographically in calendar order.
	for day := req.StartDate; day <= req.Deadline && len(queue) > 0; day = nextDay(day) {
		placed := fillDay(&queue, day, dayStart, dayEnd, req.Window.BreakMinutes, false)
		sessions = append(sessions, placed...)
	}

	return &PlanResult{
		Summary:  fmt.Sprintf("Planned %d/%d sessions from %s to %s.", len(sessions), total, req.StartDate, req.Deadline),
		Sessions: sessions,
		Planned:  len(sessions),
		Total:    total,
	}, nil
}

// fillDay pops items off the queue while they fit between cursor and dayEnd,
// charging breakMinutes before every item except the first of the day.
// hasPrior marks time already consumed on this day (reallocation onto a day
// that holds fixed sessions), in which case cursor points past that block and
// the first placed item is charged a break too.
func fillDay(queue *[]WorkItem, day string, cursor, dayEnd, breakMinutes int, hasPrior bool) []Session {
	var placed []Session
	for len(*queue) > 0 {
		item := (*queue)[0]
		gap := 0
		if hasPrior || len(placed) > 0 {
			gap = breakMinutes
		}
		if cursor+gap+item.DurationMinutes > dayEnd {
			break
		}
		cursor += gap
		placed = append(placed, Session{
			Ref:             item.Ref,
			Title:           item.Title,
			Subject:         item.Subject,
			Day:             day,
			Start:           formatClock(cursor),
			DurationMinutes: item.DurationMinutes,
			Status:          StatusPending,
		})
		cursor += item.DurationMinutes
		*queue = (*queue)[1:]
	}
	return placed
}
