package planner

import (
	"fmt"
	"time"
)

const dateLayout = "2006-01-02"

// parseClock converts "HH:MM" to minutes since midnight.
func parseClock(s string) (int, error) {
	var h, m int
	if _, err := fmt.Sscanf(s, "%d:%d", &h, &m); err != nil {
		return 0, fmt.Errorf("%w: clock %q", ErrBadTimeFormat, s)
	}
	if h < 0 || h > 23 || m < 0 || m > 59 {
		return 0, fmt.Errorf("%w: clock %q out of range", ErrBadTimeFormat, s)
	}
	return h*60 + m, nil
}

// formatClock renders minutes since midnight as zero-padded "HH:MM", so the
// string ordering of starts matches their chronological ordering.
func formatClock(minutes int) string {
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}

func parseDay(s string) (time.Time, error) {
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: date %q", ErrBadTimeFormat, s)
	}
	return t, nil
}

// nextDay assumes day was validated by parseDay already.
func nextDay(day string) string {
	t, _ := time.Parse(dateLayout, day)
	return t.AddDate(0, 0, 1).Format(dateLayout)
}

// sessionEnd returns the minute-of-day at which a session or busy block ends.
func sessionEnd(start string, durationMinutes int) (int, error) {
	s, err := parseClock(start)
	if err != nil {
		return 0, err
	}
	return s + durationMinutes, nil
}
