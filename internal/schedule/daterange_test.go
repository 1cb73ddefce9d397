package schedule

import (
	"errors"
	"testing"
	"time"
)

func TestNewDateRangeValidation(t *testing.T) {
	start := utcDate(2026, time.January, 27)

	if _, err := NewDateRange(start, start.AddDate(0, 0, -1)); !errors.Is(err, ErrInvalidRange) {
		t.Errorf("end before start: got err = %v, want ErrInvalidRange", err)
	}
	if _, err := NewDateRange(start, start.AddDate(0, 0, MaxRangeDays)); !errors.Is(err, ErrInvalidRange) {
		t.Errorf("range exceeding the cap: got err = %v, want ErrInvalidRange", err)
	}
	if _, err := NewDateRange(start, start); err != nil {
		t.Errorf("single-day range: unexpected error %v", err)
	}
}

func TestDateRangeDaysAndEach(t *testing.T) {
	r, err := NewDateRange(utcDate(2026, time.January, 27), utcDate(2026, time.February, 2))
	if err != nil {
		t.Fatal(err)
	}

	if got := r.Days(); got != 7 {
		t.Errorf("Days() = %d, want 7", got)
	}

	var seen []time.Time
	r.Each(func(d time.Time) { seen = append(seen, d) })
	if len(seen) != 7 {
		t.Fatalf("Each visited %d days, want 7", len(seen))
	}
	if !seen[0].Equal(utcDate(2026, time.January, 27)) || !seen[6].Equal(utcDate(2026, time.February, 2)) {
		t.Errorf("Each bounds wrong: first %v last %v", seen[0], seen[6])
	}

	// The generator is restartable: a second pass sees the same days.
	count := 0
	r.Each(func(time.Time) { count++ })
	if count != 7 {
		t.Errorf("second Each pass visited %d days, want 7", count)
	}
}

func TestNewDateRangeNormalizesToUTCMidnight(t *testing.T) {
	loc := time.FixedZone("IST", 5*3600+1800)
	start := time.Date(2026, time.January, 27, 23, 45, 0, 0, loc)
	r, err := NewDateRange(start, start)
	if err != nil {
		t.Fatal(err)
	}
	if got := r.Start(); got != utcDate(2026, time.January, 27) {
		t.Errorf("Start() = %v, want UTC midnight of Jan 27", got)
	}
}

func TestDBWeekday(t *testing.T) {
	cases := []struct {
		date time.Time
		want int
	}{
		{utcDate(2026, time.February, 2), 1}, // Monday
		{utcDate(2026, time.February, 7), 6}, // Saturday
		{utcDate(2026, time.February, 1), 7}, // Sunday maps to 7
	}
	for _, tc := range cases {
		if got := DBWeekday(tc.date); got != tc.want {
			t.Errorf("DBWeekday(%v) = %d, want %d", tc.date, got, tc.want)
		}
	}
}
