package schedule

import (
	"testing"
	"time"

	"gorm.io/gorm"

	"github.com/ketan-2905/classbunk/models"
)

func weekdayTmpl(id uint, subject string, kind models.LectureType, weekday int, start string) models.LectureTemplate {
	return models.LectureTemplate{
		Model:       gorm.Model{ID: id},
		Subject:     subject,
		LectureType: kind,
		Weekday:     weekday,
		StartTime:   start,
	}
}

func TestProjectSkipsHolidaysAndSundays(t *testing.T) {
	// Mon Feb 2 .. Sun Feb 8 2026.
	r, err := NewDateRange(utcDate(2026, time.February, 2), utcDate(2026, time.February, 8))
	if err != nil {
		t.Fatal(err)
	}

	templates := []models.LectureTemplate{
		weekdayTmpl(1, "Maths", models.LectureTheory, 1, "09:00"), // Monday
		weekdayTmpl(2, "Maths", models.LectureTheory, 3, "09:00"), // Wednesday
		weekdayTmpl(3, "CV", models.LecturePractical, 7, "09:00"), // Sunday, never projected
	}
	holidays := HolidaySet{"2026-02-04": {}} // the Wednesday

	occ := Project(templates, r, holidays)
	if len(occ) != 1 {
		t.Fatalf("got %d occurrences, want 1 (Monday only)", len(occ))
	}
	if occ[0].Template.ID != 1 || !occ[0].Date.Equal(utcDate(2026, time.February, 2)) {
		t.Errorf("unexpected occurrence %+v", occ[0])
	}
}

func TestProjectOrdersSameDayByStartTime(t *testing.T) {
	r, err := NewDateRange(utcDate(2026, time.February, 2), utcDate(2026, time.February, 2))
	if err != nil {
		t.Fatal(err)
	}

	templates := []models.LectureTemplate{
		weekdayTmpl(1, "CV", models.LecturePractical, 1, "11:00"),
		weekdayTmpl(2, "Maths", models.LectureTheory, 1, "09:00"),
	}

	occ := Project(templates, r, HolidaySet{})
	if len(occ) != 2 {
		t.Fatalf("got %d occurrences, want 2", len(occ))
	}
	if occ[0].Template.ID != 2 || occ[1].Template.ID != 1 {
		t.Errorf("occurrences not ordered by start time: %d before %d", occ[0].Template.ID, occ[1].Template.ID)
	}
}

func TestProjectedTotals(t *testing.T) {
	// Four full weeks: Mon Feb 2 .. Sun Mar 1 2026.
	r, err := NewDateRange(utcDate(2026, time.February, 2), utcDate(2026, time.March, 1))
	if err != nil {
		t.Fatal(err)
	}

	templates := []models.LectureTemplate{
		weekdayTmpl(1, "Maths", models.LectureTheory, 1, "09:00"),
		weekdayTmpl(2, "Maths", models.LectureTheory, 2, "09:00"),
		weekdayTmpl(3, "CV", models.LecturePractical, 1, "11:00"),
	}
	holidays := HolidaySet{"2026-02-09": {}} // one Monday off

	totals := ProjectedTotals(templates, r, holidays)

	if got := totals[SubjectKey{"Maths", models.LectureTheory}]; got != 7 {
		t.Errorf("Maths THEORY total = %d, want 7 (4 Mon + 4 Tue - 1 holiday Mon)", got)
	}
	if got := totals[SubjectKey{"CV", models.LecturePractical}]; got != 3 {
		t.Errorf("CV PRACTICAL total = %d, want 3", got)
	}
}

func TestProjectAgreesWithProjectedTotals(t *testing.T) {
	r, err := NewDateRange(utcDate(2026, time.February, 2), utcDate(2026, time.February, 28))
	if err != nil {
		t.Fatal(err)
	}
	templates := []models.LectureTemplate{
		weekdayTmpl(1, "Maths", models.LectureTheory, 1, "09:00"),
		weekdayTmpl(2, "CV", models.LecturePractical, 4, "14:00"),
	}
	holidays := HolidaySet{"2026-02-05": {}}

	fromOccurrences := make(map[SubjectKey]int)
	for _, o := range Project(templates, r, holidays) {
		fromOccurrences[o.Key()]++
	}

	totals := ProjectedTotals(templates, r, holidays)
	if len(fromOccurrences) != len(totals) {
		t.Fatalf("key sets differ: %v vs %v", fromOccurrences, totals)
	}
	for key, n := range totals {
		if fromOccurrences[key] != n {
			t.Errorf("key %v: Project gives %d, ProjectedTotals gives %d", key, fromOccurrences[key], n)
		}
	}
}
