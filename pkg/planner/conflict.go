package planner

import "sort"

// MaxSuggestedSlots caps how many alternative start times a conflict reply
// carries.
const MaxSuggestedSlots = 3

// FindConflict scans proposed sessions in order against the existing
// commitments of their day and returns the first overlap. Only one conflict
// is surfaced per attempt; scanning stops at the first hit.
func FindConflict(proposed []Session, existingByDay map[string][]Busy) (*Conflict, error) {
	for _, p := range proposed {
		pStart, err := parseClock(p.Start)
		if err != nil {
			return nil, err
		}
		for _, b := range existingByDay[p.Day] {
			bStart, err := parseClock(b.Start)
			if err != nil {
				return nil, err
			}
			if pStart < bStart+b.DurationMinutes && bStart < pStart+p.DurationMinutes {
				c := Conflict{Proposed: p, Existing: b}
				return &c, nil
			}
		}
	}
	return nil, nil
}

// SuggestSlots walks the day's commitments sorted by start time and collects
// the gaps between window start, consecutive commitments, and window end that
// can hold durationMinutes. Returns at most max "HH:MM" start times.
func SuggestSlots(dayTasks []Busy, window Window, durationMinutes, max int) ([]string, error) {
	winStart, err := parseClock(window.DailyStart)
	if err != nil {
		return nil, err
	}
	winEnd, err := parseClock(window.DailyEnd)
	if err != nil {
		return nil, err
	}

	type span struct{ start, end int }
	spans := make([]span, 0, len(dayTasks))
	for _, b := range dayTasks {
		s, err := parseClock(b.Start)
		if err != nil {
			return nil, err
		}
		spans = append(spans, span{start: s, end: s + b.DurationMinutes})
	}
	sort.Slice(spans, func(i, j int) bool { return spans[i].start < spans[j].start })

	var slots []string
	cursor := winStart
	for _, sp := range spans {
		if sp.start-cursor >= durationMinutes {
			slots = append(slots, formatClock(cursor))
			if len(slots) == max {
				return slots, nil
			}
		}
		if sp.end > cursor {
			cursor = sp.end
		}
	}
	if winEnd-cursor >= durationMinutes && len(slots) < max {
		slots = append(slots, formatClock(cursor))
	}
	return slots, nil
}
