package schedule

import (
	"testing"
	"time"

	"github.com/ketan-2905/classbunk/models"
)

func utcDate(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestResolveHolidays(t *testing.T) {
	doc := &models.CalendarDocument{}
	doc.AcademicCalendar.Months = []models.CalendarMonth{
		{
			Month: "February",
			Year:  2026,
			Events: []models.CalendarEvent{
				{Date: 14, Type: "Holiday"},
				{Date: 16, Day: "Monday", Type: "Event"},
			},
		},
		{
			Month: "March",
			Year:  2026,
			Events: []models.CalendarEvent{
				{Date: 1, Day: "Sunday", Type: "Event"},
			},
		},
		{
			// Not a real month; must be skipped without panicking.
			Month: "Febtober",
			Year:  2026,
			Events: []models.CalendarEvent{
				{Date: 5, Type: "Holiday"},
			},
		},
	}

	holidays := ResolveHolidays(doc)

	if !holidays.Contains(utcDate(2026, time.February, 14)) {
		t.Errorf("expected Feb 14 to be a holiday")
	}
	if holidays.Contains(utcDate(2026, time.February, 16)) {
		t.Errorf("ordinary Monday event should not be a holiday")
	}
	if !holidays.Contains(utcDate(2026, time.March, 1)) {
		t.Errorf("expected Sunday-tagged event to be a holiday")
	}
	if holidays.Contains(utcDate(2026, time.February, 5)) {
		t.Errorf("event under an unknown month must not emit a date")
	}
}

func TestResolveHolidaysNilDocument(t *testing.T) {
	holidays := ResolveHolidays(nil)
	if len(holidays) != 0 {
		t.Fatalf("nil document should resolve to an empty set, got %d entries", len(holidays))
	}
}

func TestHolidaySetSundaysAlwaysHolidays(t *testing.T) {
	holidays := make(HolidaySet)

	// Feb 1 2026 is a Sunday.
	if !holidays.Contains(utcDate(2026, time.February, 1)) {
		t.Errorf("Sundays must be holidays even when not listed as events")
	}
	// Feb 2 2026 is a Monday.
	if holidays.Contains(utcDate(2026, time.February, 2)) {
		t.Errorf("ordinary Monday must not be a holiday")
	}
}
