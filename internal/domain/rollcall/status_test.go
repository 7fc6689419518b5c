package rollcall

import (
	"testing"
	"time"
)

func timePtr(t time.Time) *time.Time { return &t }

func TestDeriveStatus(t *testing.T) {
	now := time.Date(2024, 3, 10, 10, 0, 0, 0, time.UTC)
	present := timePtr(now)
	absent := timePtr(now.Add(2 * time.Hour))
	open := &BreakLog{BreakStart: now.Add(time.Hour)}

	cases := []struct {
		name      string
		rc        *Rollcall
		openBreak *BreakLog
		want      Status
	}{
		{"no rollcall", nil, nil, StatusNotMarked},
		{"empty rollcall", &Rollcall{}, nil, StatusNotMarked},
		{"present", &Rollcall{PresentAt: present}, nil, StatusPresent},
		{"on break", &Rollcall{PresentAt: present}, open, StatusOnBreak},
		{"absent wins over break", &Rollcall{PresentAt: present, AbsentAt: absent}, open, StatusAbsent},
		{"absent without presence", &Rollcall{AbsentAt: absent}, nil, StatusAbsent},
	}
	for _, c := range cases {
		got := DeriveStatus(c.rc, c.openBreak)
		if got != c.want {
			t.Errorf("%s: DeriveStatus = %q, want %q", c.name, got, c.want)
		}
	}
}

func TestBreakLog_Duration(t *testing.T) {
	start := time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC)
	now := start.Add(45 * time.Minute)

	closed := BreakLog{BreakStart: start, BreakEnd: timePtr(start.Add(30 * time.Minute))}
	if got := closed.Duration(now); got != 30*time.Minute {
		t.Errorf("closed Duration = %v, want 30m", got)
	}

	open := BreakLog{BreakStart: start}
	if got := open.Duration(now); got != 45*time.Minute {
		t.Errorf("open Duration = %v, want 45m", got)
	}

	// A start after now clamps to zero instead of going negative.
	future := BreakLog{BreakStart: now.Add(time.Minute)}
	if got := future.Duration(now); got != 0 {
		t.Errorf("future Duration = %v, want 0", got)
	}
}

func TestTotalBreak(t *testing.T) {
	start := time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC)
	now := start.Add(2 * time.Hour)

	logs := []BreakLog{
		{BreakStart: start, BreakEnd: timePtr(start.Add(20 * time.Minute))},
		{BreakStart: start.Add(time.Hour), BreakEnd: timePtr(start.Add(time.Hour + 10*time.Minute))},
		{BreakStart: start.Add(90 * time.Minute)}, // still open, counts to now
	}

	want := 20*time.Minute + 10*time.Minute + 30*time.Minute
	if got := TotalBreak(logs, now); got != want {
		t.Errorf("TotalBreak = %v, want %v", got, want)
	}

	if got := TotalBreak(nil, now); got != 0 {
		t.Errorf("TotalBreak(nil) = %v, want 0", got)
	}
}

func TestOpenBreak(t *testing.T) {
	start := time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC)
	logs := []BreakLog{
		{ID: "a", BreakStart: start, BreakEnd: timePtr(start.Add(10 * time.Minute))},
		{ID: "b", BreakStart: start.Add(time.Hour)},
	}

	got := OpenBreak(logs)
	if got == nil || got.ID != "b" {
		t.Errorf("OpenBreak = %v, want break b", got)
	}

	if OpenBreak(logs[:1]) != nil {
		t.Error("OpenBreak with only closed logs should be nil")
	}
	if OpenBreak(nil) != nil {
		t.Error("OpenBreak(nil) should be nil")
	}
}
