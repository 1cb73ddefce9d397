package stats

import (
	"github.com/ketan-2905/classbunk/internal/schedule"
	"github.com/ketan-2905/classbunk/models"
)

// BunkLecture is one occurrence inside the returned bunk window.
type BunkLecture struct {
	Subject string             `json:"subject"`
	Type    models.LectureType `json:"type"`
	Date    string             `json:"date"`
	Time    string             `json:"time"`
}

// BunkWindow is the longest contiguous run of future lectures that can all be
// skipped without any subject exceeding its safe-bunk budget. StartDate and
// EndDate are nil when no non-empty window exists.
type BunkWindow struct {
	MaxStreak     int           `json:"maxStreak"`
	Lectures      int           `json:"lectures"`
	StartDate     *string       `json:"startDate"`
	EndDate       *string       `json:"endDate"`
	StreakDetails []BunkLecture `json:"streakDetails,omitempty"`
}

// LongestBunkWindow runs a two-pointer sliding window over the ordered future
// occurrence sequence. The window is valid while every subject's usage stays
// within its budget; among windows of equal maximal length the first one
// encountered wins.
func LongestBunkWindow(seq []schedule.Occurrence, budgets map[schedule.SubjectKey]int) BunkWindow {
	var best BunkWindow

	usage := make(map[schedule.SubjectKey]int)
	left := 0
	for right := 0; right < len(seq); right++ {
		key := seq[right].Key()
		usage[key]++

		for usage[key] > budgets[key] {
			usage[seq[left].Key()]--
			left++
		}

		if size := right - left + 1; size > best.Lectures {
			best.Lectures = size
			best.MaxStreak = size
			start := schedule.DateKey(seq[left].Date)
			end := schedule.DateKey(seq[right].Date)
			best.StartDate = &start
			best.EndDate = &end

			details := make([]BunkLecture, 0, size)
			for _, o := range seq[left : right+1] {
				details = append(details, BunkLecture{
					Subject: o.Template.Subject,
					Type:    o.Template.LectureType,
					Date:    schedule.DateKey(o.Date),
					Time:    o.Template.StartTime,
				})
			}
			best.StreakDetails = details
		}
	}

	return best
}
