package stats

import (
	"testing"
	"time"

	"gorm.io/gorm"

	"github.com/ketan-2905/classbunk/internal/schedule"
	"github.com/ketan-2905/classbunk/models"
)

func occ(day int, subject string, kind models.LectureType) schedule.Occurrence {
	return schedule.Occurrence{
		Template: models.LectureTemplate{
			Model:       gorm.Model{ID: 1},
			Subject:     subject,
			LectureType: kind,
			StartTime:   "09:00",
		},
		Date: time.Date(2026, time.March, day, 0, 0, 0, 0, time.UTC),
	}
}

// bruteForceLongest checks every contiguous window; the reference for the
// sliding-window implementation.
func bruteForceLongest(seq []schedule.Occurrence, budgets map[schedule.SubjectKey]int) int {
	best := 0
	for i := 0; i < len(seq); i++ {
		for j := i; j < len(seq); j++ {
			usage := make(map[schedule.SubjectKey]int)
			valid := true
			for _, o := range seq[i : j+1] {
				usage[o.Key()]++
				if usage[o.Key()] > budgets[o.Key()] {
					valid = false
					break
				}
			}
			if valid && j-i+1 > best {
				best = j - i + 1
			}
		}
	}
	return best
}

func TestLongestBunkWindowRespectsBudgets(t *testing.T) {
	maths := schedule.SubjectKey{Subject: "Maths", Type: models.LectureTheory}
	cv := schedule.SubjectKey{Subject: "CV", Type: models.LecturePractical}

	seq := []schedule.Occurrence{
		occ(2, "Maths", models.LectureTheory),
		occ(2, "CV", models.LecturePractical),
		occ(3, "Maths", models.LectureTheory),
		occ(4, "Maths", models.LectureTheory),
		occ(4, "CV", models.LecturePractical),
		occ(5, "Maths", models.LectureTheory),
	}
	budgets := map[schedule.SubjectKey]int{maths: 2, cv: 1}

	w := LongestBunkWindow(seq, budgets)

	usage := make(map[schedule.SubjectKey]int)
	for _, l := range w.StreakDetails {
		usage[schedule.SubjectKey{Subject: l.Subject, Type: l.Type}]++
	}
	for key, used := range usage {
		if used > budgets[key] {
			t.Errorf("window uses %d of %v, budget is %d", used, key, budgets[key])
		}
	}

	if want := bruteForceLongest(seq, budgets); w.Lectures != want {
		t.Errorf("window length = %d, brute force says %d", w.Lectures, want)
	}
	if w.Lectures != len(w.StreakDetails) {
		t.Errorf("lectures=%d but %d details", w.Lectures, len(w.StreakDetails))
	}
	if w.StartDate == nil || w.EndDate == nil {
		t.Fatalf("non-empty window must carry bounds")
	}
}

func TestLongestBunkWindowMatchesBruteForce(t *testing.T) {
	subjects := []struct {
		name string
		kind models.LectureType
	}{
		{"Maths", models.LectureTheory},
		{"CV", models.LecturePractical},
		{"DBMS-E", models.LectureTheory},
	}

	// Deterministic pseudo-random sequence.
	seed := uint32(1)
	next := func(n int) int {
		seed = seed*1664525 + 1013904223
		return int(seed>>16) % n
	}

	for trial := 0; trial < 50; trial++ {
		var seq []schedule.Occurrence
		length := next(12) + 1
		for i := 0; i < length; i++ {
			s := subjects[next(len(subjects))]
			seq = append(seq, occ(i+1, s.name, s.kind))
		}

		budgets := make(map[schedule.SubjectKey]int)
		for _, s := range subjects {
			budgets[schedule.SubjectKey{Subject: s.name, Type: s.kind}] = next(3)
		}

		got := LongestBunkWindow(seq, budgets).Lectures
		want := bruteForceLongest(seq, budgets)
		if got != want {
			t.Fatalf("trial %d: window length %d, brute force %d (seq len %d, budgets %v)",
				trial, got, want, len(seq), budgets)
		}
	}
}

func TestLongestBunkWindowEmptyCases(t *testing.T) {
	w := LongestBunkWindow(nil, map[schedule.SubjectKey]int{})
	if w.Lectures != 0 || w.StartDate != nil || w.EndDate != nil {
		t.Errorf("empty sequence must produce a zero window, got %+v", w)
	}

	seq := []schedule.Occurrence{occ(2, "Maths", models.LectureTheory)}
	w = LongestBunkWindow(seq, map[schedule.SubjectKey]int{})
	if w.Lectures != 0 || w.StartDate != nil {
		t.Errorf("all-zero budgets must produce a zero window, got %+v", w)
	}
}

func TestLongestBunkWindowFirstTieWins(t *testing.T) {
	maths := schedule.SubjectKey{Subject: "Maths", Type: models.LectureTheory}
	cv := schedule.SubjectKey{Subject: "CV", Type: models.LecturePractical}

	// Two valid windows of length 2 ([0,1] and [2,3]); the first one
	// encountered must be reported.
	seq := []schedule.Occurrence{
		occ(2, "Maths", models.LectureTheory),
		occ(3, "CV", models.LecturePractical),
		occ(3, "CV", models.LecturePractical),
		occ(4, "Maths", models.LectureTheory),
	}
	budgets := map[schedule.SubjectKey]int{maths: 1, cv: 1}

	w := LongestBunkWindow(seq, budgets)
	if w.Lectures != 2 || w.StartDate == nil {
		t.Fatalf("expected a window of 2 lectures, got %+v", w)
	}
	if *w.StartDate != "2026-03-02" {
		t.Errorf("first maximal window should start Mar 2, got %s", *w.StartDate)
	}
}
