package schedule

import (
	"sort"
	"time"

	"github.com/ketan-2905/classbunk/models"
)

// Occurrence is one projected (template, date) pair.
type Occurrence struct {
	Template models.LectureTemplate
	Date     time.Time
}

// Key returns the occurrence's (subject, kind) key.
func (o Occurrence) Key() SubjectKey {
	return SubjectKey{Subject: o.Template.Subject, Type: o.Template.LectureType}
}

// Project expands resolved templates across a date range into an ordered
// sequence of occurrences: one per (template, non-holiday date) where the
// date's weekday equals the template's weekday. Occurrences on the same day
// are ordered by start time.
func Project(templates []models.LectureTemplate, r DateRange, holidays HolidaySet) []Occurrence {
	var out []Occurrence
	r.Each(func(d time.Time) {
		if holidays.Contains(d) {
			return
		}
		weekday := DBWeekday(d)

		var daily []models.LectureTemplate
		for _, t := range templates {
			if t.Weekday == weekday {
				daily = append(daily, t)
			}
		}
		sort.SliceStable(daily, func(i, j int) bool {
			return daily[i].StartTime < daily[j].StartTime
		})

		for _, t := range daily {
			out = append(out, Occurrence{Template: t, Date: d})
		}
	})
	return out
}

// ProjectedTotals counts template occurrences per (subject, kind) across the
// range. The result depends only on the templates, the holiday set and the
// range, never on recorded attendance.
func ProjectedTotals(templates []models.LectureTemplate, r DateRange, holidays HolidaySet) map[SubjectKey]int {
	totals := make(map[SubjectKey]int)
	r.Each(func(d time.Time) {
		if holidays.Contains(d) {
			return
		}
		weekday := DBWeekday(d)
		for _, t := range templates {
			if t.Weekday == weekday {
				totals[SubjectKey{Subject: t.Subject, Type: t.LectureType}]++
			}
		}
	})
	return totals
}
