package planner

import "testing"

func TestFindConflict(t *testing.T) {
	existing := map[string][]Busy{
		"2025-08-13": {
			{ID: "t1", Title: "Gym", Start: "10:00", DurationMinutes: 60},
		},
	}

	tests := []struct {
		name     string
		proposed []Session
		wantID   string
	}{
		{
			name: "overlapping start",
			proposed: []Session{
				{Title: "Chem", Day: "2025-08-13", Start: "10:30", DurationMinutes: 60},
			},
			wantID: "t1",
		},
		{
			name: "proposed swallows existing",
			proposed: []Session{
				{Title: "Chem", Day: "2025-08-13", Start: "09:30", DurationMinutes: 120},
			},
			wantID: "t1",
		},
		{
			name: "adjacent after is free",
			proposed: []Session{
				{Title: "Chem", Day: "2025-08-13", Start: "11:00", DurationMinutes: 60},
			},
			wantID: "",
		},
		{
			name: "adjacent before is free",
			proposed: []Session{
				{Title: "Chem", Day: "2025-08-13", Start: "09:00", DurationMinutes: 60},
			},
			wantID: "",
		},
		{
			name: "different day is free",
			proposed: []Session{
				{Title: "Chem", Day: "2025-08-14", Start: "10:00", DurationMinutes: 60},
			},
			wantID: "",
		},
		{
			name: "first conflict wins",
			proposed: []Session{
				{Title: "Chem", Day: "2025-08-14", Start: "10:00", DurationMinutes: 60},
				{Title: "Math", Day: "2025-08-13", Start: "10:45", DurationMinutes: 30},
				{Title: "Bio", Day: "2025-08-13", Start: "10:15", DurationMinutes: 30},
			},
			wantID: "t1",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			conflict, err := FindConflict(tt.proposed, existing)
			if err != nil {
				t.Fatalf("FindConflict() error = %v", err)
			}
			if tt.wantID == "" {
				if conflict != nil {
					t.Errorf("conflict = %+v, want none", conflict)
				}
				return
			}
			if conflict == nil {
				t.Fatalf("conflict = nil, want existing %s", tt.wantID)
			}
			if conflict.Existing.ID != tt.wantID {
				t.Errorf("Existing.ID = %s, want %s", conflict.Existing.ID, tt.wantID)
			}
		})
	}
}

func TestFindConflictReportsOnlyFirstProposed(t *testing.T) {
	existing := map[string][]Busy{
		"2025-08-13": {{ID: "t1", Start: "10:00", DurationMinutes: 60}},
		"2025-08-14": {{ID: "t2", Start: "10:00", DurationMinutes: 60}},
	}
	proposed := []Session{
		{Title: "first", Day: "2025-08-13", Start: "10:00", DurationMinutes: 30},
		{Title: "second", Day: "2025-08-14", Start: "10:00", DurationMinutes: 30},
	}

	conflict, err := FindConflict(proposed, existing)
	if err != nil {
		t.Fatalf("FindConflict() error = %v", err)
	}
	if conflict == nil || conflict.Proposed.Title != "first" || conflict.Existing.ID != "t1" {
		t.Errorf("conflict = %+v, want first proposed against t1", conflict)
	}
}

func TestSuggestSlots(t *testing.T) {
	window := Window{DailyStart: "08:00", DailyEnd: "22:00"}

	tests := []struct {
		name     string
		busy     []Busy
		duration int
		want     []string
	}{
		{
			name:     "gaps around one commitment",
			busy:     []Busy{{Start: "10:00", DurationMinutes: 60}},
			duration: 60,
			want:     []string{"08:00", "11:00"},
		},
		{
			name:     "empty day",
			busy:     nil,
			duration: 90,
			want:     []string{"08:00"},
		},
		{
			name: "capped at three",
			busy: []Busy{
				{Start: "09:00", DurationMinutes: 30},
				{Start: "11:00", DurationMinutes: 30},
				{Start: "13:00", DurationMinutes: 30},
				{Start: "15:00", DurationMinutes: 30},
			},
			duration: 60,
			want:     []string{"08:00", "09:30", "11:30"},
		},
		{
			name: "small gaps skipped",
			busy: []Busy{
				{Start: "08:30", DurationMinutes: 60},
				{Start: "10:00", DurationMinutes: 690}, // until 21:30
			},
			duration: 60,
			want:     nil,
		},
		{
			name: "unsorted input",
			busy: []Busy{
				{Start: "18:00", DurationMinutes: 180},
				{Start: "08:00", DurationMinutes: 540},
			},
			duration: 60,
			want:     []string{"17:00", "21:00"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := SuggestSlots(tt.busy, window, tt.duration, MaxSuggestedSlots)
			if err != nil {
				t.Fatalf("SuggestSlots() error = %v", err)
			}
			if len(got) != len(tt.want) {
				t.Fatalf("slots = %v, want %v", got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("slots = %v, want %v", got, tt.want)
				}
			}
		})
	}
}

func TestSuggestSlotsNeverInsideBusyBlock(t *testing.T) {
	window := Window{DailyStart: "08:00", DailyEnd: "22:00"}
	busy := []Busy{{Start: "10:00", DurationMinutes: 60}}

	slots, err := SuggestSlots(busy, window, 60, MaxSuggestedSlots)
	if err != nil {
		t.Fatalf("SuggestSlots() error = %v", err)
	}
	for _, s := range slots {
		m, _ := parseClock(s)
		if m >= 10*60 && m < 11*60 {
			t.Errorf("slot %s falls inside the busy block", s)
		}
	}
}
