package utils

import (
	"testing"
	"time"
)

func TestWindowFromMillis(t *testing.T) {
	start := time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC)
	end := start.Add(24*time.Hour - time.Millisecond)

	w := WindowFromMillis(start.UnixMilli(), end.UnixMilli())
	if !w.Start.Equal(start) {
		t.Errorf("Start = %v, want %v", w.Start, start)
	}
	if !w.End.Equal(end) {
		t.Errorf("End = %v, want %v", w.End, end)
	}
}

func TestDayWindowAt_UTC(t *testing.T) {
	now := time.Date(2024, 3, 10, 15, 30, 0, 0, time.UTC)
	w := DayWindowAt(now, 0)

	wantStart := time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC)
	wantEnd := wantStart.Add(24*time.Hour - time.Millisecond)
	if !w.Start.Equal(wantStart) {
		t.Errorf("Start = %v, want %v", w.Start, wantStart)
	}
	if !w.End.Equal(wantEnd) {
		t.Errorf("End = %v, want %v", w.End, wantEnd)
	}
	if !w.Contains(now) {
		t.Errorf("Contains(%v) = false, want true", now)
	}
}

func TestDayWindowAt_BehindUTC(t *testing.T) {
	// Offset 300 means five hours behind UTC. 02:00 UTC on March 10 is still
	// March 9 for this client, so the window covers March 9 local.
	now := time.Date(2024, 3, 10, 2, 0, 0, 0, time.UTC)
	w := DayWindowAt(now, 300)

	wantStart := time.Date(2024, 3, 9, 5, 0, 0, 0, time.UTC)
	if !w.Start.Equal(wantStart) {
		t.Errorf("Start = %v, want %v", w.Start, wantStart)
	}
	if !w.Contains(now) {
		t.Errorf("Contains(%v) = false, want true", now)
	}
	if w.Contains(now.Add(4 * time.Hour)) {
		t.Errorf("window should end before %v", now.Add(4*time.Hour))
	}
}

func TestDayWindowAt_AheadOfUTC(t *testing.T) {
	// Offset -330 is five and a half hours ahead of UTC. 20:00 UTC on March 10
	// is already March 11 for this client.
	now := time.Date(2024, 3, 10, 20, 0, 0, 0, time.UTC)
	w := DayWindowAt(now, -330)

	wantStart := time.Date(2024, 3, 10, 18, 30, 0, 0, time.UTC)
	if !w.Start.Equal(wantStart) {
		t.Errorf("Start = %v, want %v", w.Start, wantStart)
	}
	if !w.Contains(now) {
		t.Errorf("Contains(%v) = false, want true", now)
	}
}

func TestLocalDate(t *testing.T) {
	cases := []struct {
		t      time.Time
		offset int
		want   string
	}{
		{time.Date(2024, 3, 10, 15, 0, 0, 0, time.UTC), 0, "2024-03-10"},
		{time.Date(2024, 3, 10, 2, 0, 0, 0, time.UTC), 300, "2024-03-09"},
		{time.Date(2024, 3, 10, 20, 0, 0, 0, time.UTC), -330, "2024-03-11"},
	}
	for _, c := range cases {
		got := LocalDate(c.t, c.offset)
		if got != c.want {
			t.Errorf("LocalDate(%v, %d) = %q, want %q", c.t, c.offset, got, c.want)
		}
	}
}

func TestShiftEndOn(t *testing.T) {
	// Shift ends 17:00 local. Arrival 09:30 UTC with zero offset ends the same
	// day at 17:00 UTC.
	arrival := time.Date(2024, 3, 10, 9, 30, 0, 0, time.UTC)
	got := ShiftEndOn(arrival, 17*60, 0)
	want := time.Date(2024, 3, 10, 17, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Errorf("ShiftEndOn = %v, want %v", got, want)
	}

	// Five hours behind UTC: 17:00 local is 22:00 UTC.
	got = ShiftEndOn(time.Date(2024, 3, 10, 14, 30, 0, 0, time.UTC), 17*60, 300)
	want = time.Date(2024, 3, 10, 22, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Errorf("ShiftEndOn behind UTC = %v, want %v", got, want)
	}
}
