package schedule

import (
	"log/slog"
	"time"

	"github.com/ketan-2905/classbunk/models"
)

// HolidaySet holds the non-instructional dates of an academic year, keyed by
// "YYYY-MM-DD" in UTC. Sundays are holidays whether or not the calendar
// document lists them.
type HolidaySet map[string]struct{}

// DateKey formats a date as the canonical "YYYY-MM-DD" UTC key.
func DateKey(t time.Time) string {
	return t.UTC().Format("2006-01-02")
}

// Contains reports whether d is a holiday.
func (h HolidaySet) Contains(d time.Time) bool {
	if d.UTC().Weekday() == time.Sunday {
		return true
	}
	_, ok := h[DateKey(d)]
	return ok
}

var monthIndex = map[string]time.Month{
	"January": time.January, "February": time.February, "March": time.March,
	"April": time.April, "May": time.May, "June": time.June,
	"July": time.July, "August": time.August, "September": time.September,
	"October": time.October, "November": time.November, "December": time.December,
}

// ResolveHolidays turns a calendar document into a HolidaySet. An event
// contributes a date when its type is "Holiday" or it falls on a Sunday.
// Months the parser does not recognize are skipped with a warning rather than
// aborting the whole resolution.
func ResolveHolidays(doc *models.CalendarDocument) HolidaySet {
	holidays := make(HolidaySet)
	if doc == nil {
		return holidays
	}

	for _, m := range doc.AcademicCalendar.Months {
		month, ok := monthIndex[m.Month]
		if !ok {
			slog.Warn("Unknown month name in academic calendar, skipping", "month", m.Month, "year", m.Year)
			continue
		}
		for _, e := range m.Events {
			if e.Type != "Holiday" && e.Day != "Sunday" {
				continue
			}
			d := time.Date(m.Year, month, e.Date, 0, 0, 0, 0, time.UTC)
			holidays[DateKey(d)] = struct{}{}
		}
	}

	return holidays
}
