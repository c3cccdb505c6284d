package dates_test

import (
	"testing"
	"time"

	"github.com/warp/presence-engine/dates"
)

func TestInclusiveDays(t *testing.T) {
	start := dates.NewDay(2025, time.June, 16)
	cases := []struct {
		name string
		end  time.Time
		want int
	}{
		{"same day", start, 1},
		{"four days", start.AddDate(0, 0, 3), 4},
		{"end before start", start.AddDate(0, 0, -1), 0},
		{"across month boundary", dates.NewDay(2025, time.July, 2), 17},
	}
	for _, tc := range cases {
		if got := dates.InclusiveDays(start, tc.end); got != tc.want {
			t.Errorf("%s: InclusiveDays = %d, want %d", tc.name, got, tc.want)
		}
	}
}

func TestCovers(t *testing.T) {
	start := dates.NewDay(2025, time.June, 16)
	end := start.AddDate(0, 0, 2)

	if !dates.Covers(start, end, start) || !dates.Covers(start, end, end) {
		t.Error("range endpoints are covered")
	}
	// An instant late on the end day still falls inside.
	if !dates.Covers(start, end, dates.At(end, 23, 59)) {
		t.Error("civil-day comparison should ignore clock time")
	}
	if dates.Covers(start, end, end.AddDate(0, 0, 1)) {
		t.Error("day after the range is not covered")
	}
}

func TestMinuteOfDay(t *testing.T) {
	day := dates.NewDay(2025, time.June, 16)
	if got := dates.MinuteOfDay(dates.At(day, 8, 45)); got != 8*60+45 {
		t.Errorf("MinuteOfDay = %d, want 525", got)
	}
}

func TestSequence(t *testing.T) {
	from := dates.NewDay(2025, time.June, 16)
	days := dates.Sequence(from, from.AddDate(0, 0, 2))
	if len(days) != 3 {
		t.Fatalf("Sequence returned %d days, want 3", len(days))
	}
	for i := 1; i < len(days); i++ {
		if !days[i].After(days[i-1]) {
			t.Error("sequence not strictly increasing")
		}
	}
	if got := dates.Sequence(from, from.AddDate(0, 0, -1)); got != nil {
		t.Errorf("inverted range should be empty, got %v", got)
	}
}
