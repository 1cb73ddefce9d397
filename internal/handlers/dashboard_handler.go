package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"sort"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/ketan-2905/classbunk/internal/schedule"
	"github.com/ketan-2905/classbunk/internal/stats"
	"github.com/ketan-2905/classbunk/models"
)

type lectureView struct {
	AttendanceID uint               `json:"attendanceId"`
	InstanceID   uint               `json:"id"`
	Subject      string             `json:"subject"`
	Type         models.LectureType `json:"type"`
	Time         string             `json:"time"`
	Room         string             `json:"room"`
	Faculty      string             `json:"faculty,omitempty"`
	Attended     bool               `json:"attended"`
}

type historyDay struct {
	Date     string        `json:"date"`
	Lectures []lectureView `json:"lectures"`
}

// DashboardHandler computes the student's attendance projection for every
// configured range: the aggregate stats, the per-subject stats and, for
// future ranges, the longest safe bunk window; plus today's schedule and the
// full attendance history.
func (h *Handler) DashboardHandler(c *gin.Context) {
	studentID := currentStudentID(c)

	asOf, ok := parseAsOf(c)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid date format. Use YYYY-MM-DD"})
		return
	}

	var student models.Student
	if err := h.db.First(&student, studentID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Student not found"})
			return
		}
		slog.Error("Database error loading student", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	rows, err := h.attendanceRows(studentID)
	if err != nil {
		slog.Error("Failed to load attendance history", "error", err, "student_id", studentID)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load attendance history"})
		return
	}

	holidays, err := h.schedule.Holidays()
	if err != nil {
		slog.Error("Failed to resolve holidays", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to resolve the academic calendar"})
		return
	}

	resolved, err := h.schedule.StudentTemplates(&student)
	if err != nil {
		slog.Error("Failed to resolve templates", "error", err, "student_id", studentID)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to resolve the timetable"})
		return
	}

	currentRange, err := schedule.NewDateRange(h.cfg.SemesterStart, asOf)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Date is outside the semester"})
		return
	}
	currentTotals := schedule.ProjectedTotals(resolved, currentRange, holidays)

	type rangeDef struct {
		key string
		end time.Time
	}
	rangeDefs := []rangeDef{{key: "current", end: asOf}}
	for _, cutoff := range h.cfg.RangeCutoffs {
		rangeDefs = append(rangeDefs, rangeDef{key: cutoff.Key, end: cutoff.End})
	}

	results := make(map[string]stats.RangeResult, len(rangeDefs))
	for _, rd := range rangeDefs {
		future := rd.end.After(asOf)

		totals := currentTotals
		if !rd.end.Equal(asOf) {
			r, err := schedule.NewDateRange(h.cfg.SemesterStart, rd.end)
			if err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Misconfigured range cutoff: " + rd.key})
				return
			}
			totals = schedule.ProjectedTotals(resolved, r, holidays)
		}

		result := stats.ComputeRange(rows, totals, currentTotals, rd.end, asOf, future)

		if future {
			tomorrow := asOf.AddDate(0, 0, 1)
			if !tomorrow.After(rd.end) {
				fr, err := schedule.NewDateRange(tomorrow, rd.end)
				if err == nil {
					window := stats.LongestBunkWindow(
						schedule.Project(resolved, fr, holidays),
						stats.Budgets(result.Subjects),
					)
					result.BunkWindow = &window
				}
			}
		}
		if result.BunkWindow == nil {
			result.BunkWindow = &stats.BunkWindow{}
		}

		results[rd.key] = result
	}

	current := results["current"]
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data": gin.H{
			"stats":        current.Stats,
			"subjectStats": current.Subjects,
			"ranges":       results,
			"schedule":     todaysLectures(rows, asOf),
			"history":      buildHistory(rows),
		},
	})
}

// todaysLectures filters the attendance rows down to the as-of day, ordered
// by start time.
func todaysLectures(rows []stats.AttendanceRow, asOf time.Time) []lectureView {
	key := schedule.DateKey(asOf)
	todays := make([]lectureView, 0)
	for _, r := range rows {
		if schedule.DateKey(r.Date) == key {
			todays = append(todays, toLectureView(r))
		}
	}
	sort.Slice(todays, func(i, j int) bool { return todays[i].Time < todays[j].Time })
	return todays
}

// buildHistory groups the attendance rows by date, newest day first, each
// day's lectures ordered by start time.
func buildHistory(rows []stats.AttendanceRow) []historyDay {
	byDate := make(map[string][]lectureView)
	for _, r := range rows {
		key := schedule.DateKey(r.Date)
		byDate[key] = append(byDate[key], toLectureView(r))
	}

	dates := make([]string, 0, len(byDate))
	for d := range byDate {
		dates = append(dates, d)
	}
	sort.Sort(sort.Reverse(sort.StringSlice(dates)))

	history := make([]historyDay, 0, len(dates))
	for _, d := range dates {
		lectures := byDate[d]
		sort.Slice(lectures, func(i, j int) bool { return lectures[i].Time < lectures[j].Time })
		history = append(history, historyDay{Date: d, Lectures: lectures})
	}
	return history
}

func toLectureView(r stats.AttendanceRow) lectureView {
	return lectureView{
		AttendanceID: r.AttendanceID,
		InstanceID:   r.InstanceID,
		Subject:      r.Subject,
		Type:         r.Type,
		Time:         r.StartTime + " - " + r.EndTime,
		Room:         r.Room,
		Faculty:      r.Faculty,
		Attended:     r.Attended,
	}
}
