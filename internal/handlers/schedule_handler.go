package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/ketan-2905/classbunk/internal/schedule"
	"github.com/ketan-2905/classbunk/models"
)

// SyncScheduleHandler projects the student's resolved timetable from semester
// start to today + lookahead and backfills instances and attendance rows.
// Safe to call any number of times.
func (h *Handler) SyncScheduleHandler(c *gin.Context) {
	asOf, ok := parseAsOf(c)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid date format. Use YYYY-MM-DD"})
		return
	}

	err := h.schedule.Sync(currentStudentID(c), asOf)
	switch {
	case err == nil:
		c.JSON(http.StatusOK, gin.H{"success": true, "message": "Schedule synced"})
	case errors.Is(err, gorm.ErrRecordNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Student not found"})
	case errors.Is(err, schedule.ErrInvalidRange):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Sync range is invalid"})
	default:
		slog.Error("Schedule sync failed", "error", err, "student_id", currentStudentID(c))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal Server Error"})
	}
}

type manageInput struct {
	Action            string `json:"action" binding:"required,oneof=add remove"`
	Date              string `json:"date" binding:"required"`
	LectureTemplateID uint   `json:"lectureTemplateId"`
	LectureInstanceID uint   `json:"lectureInstanceId"`
}

// ManageScheduleHandler applies a schedule exception for the student: "add"
// records an extra lecture (e.g. attending another batch's session), "remove"
// marks a scheduled lecture ignored. The two flags are kept mutually
// exclusive by both write paths.
func (h *Handler) ManageScheduleHandler(c *gin.Context) {
	var in manageInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing required fields"})
		return
	}
	date, err := time.ParseInLocation("2006-01-02", in.Date, time.UTC)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid date format. Use YYYY-MM-DD"})
		return
	}

	studentID := currentStudentID(c)

	switch in.Action {
	case "add":
		if in.LectureTemplateID == 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Template ID required for 'add'"})
			return
		}

		instance, err := h.findOrCreateInstance(in.LectureTemplateID, date)
		if err != nil {
			slog.Error("Failed to resolve lecture instance", "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not resolve lecture instance"})
			return
		}

		err = h.upsertAttendance(models.Attendance{
			StudentID:         studentID,
			LectureInstanceID: instance.ID,
			Attended:          true,
			IsIgnored:         false,
			IsExtra:           true,
		}, []string{"attended", "is_ignored", "is_extra"})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not record extra lecture"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "message": "Lecture added successfully"})

	case "remove":
		instanceID := in.LectureInstanceID
		if instanceID == 0 && in.LectureTemplateID != 0 {
			var instance models.LectureInstance
			err := h.db.
				Where("lecture_template_id = ? AND date = ?", in.LectureTemplateID, date).
				First(&instance).Error
			if err == nil {
				instanceID = instance.ID
			}
		}
		if instanceID == 0 {
			// An instance that was never scheduled cannot be ignored.
			c.JSON(http.StatusNotFound, gin.H{"error": "Lecture instance not found"})
			return
		}

		err = h.upsertAttendance(models.Attendance{
			StudentID:         studentID,
			LectureInstanceID: instanceID,
			Attended:          false,
			IsIgnored:         true,
			IsExtra:           false,
		}, []string{"is_ignored", "is_extra"})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not remove lecture"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "message": "Lecture removed successfully"})
	}
}

func (h *Handler) findOrCreateInstance(templateID uint, date time.Time) (*models.LectureInstance, error) {
	var instance models.LectureInstance
	err := h.db.
		Where("lecture_template_id = ? AND date = ?", templateID, date).
		First(&instance).Error
	if err == nil {
		return &instance, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	// An instance created here was not part of the projected schedule, so it
	// carries EXTRA status rather than SCHEDULED.
	instance = models.LectureInstance{
		LectureTemplateID: templateID,
		Date:              date,
		Status:            models.LectureExtra,
	}
	if err := h.db.Create(&instance).Error; err != nil {
		return nil, err
	}
	return &instance, nil
}

// upsertAttendance creates the row or, when the (student, instance) pair
// already exists, updates only the listed columns. A keyed upsert keeps
// concurrent writers last-write-wins with no merge logic.
func (h *Handler) upsertAttendance(row models.Attendance, updateColumns []string) error {
	return h.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "student_id"}, {Name: "lecture_instance_id"}},
		DoUpdates: clause.AssignmentColumns(updateColumns),
	}).Create(&row).Error
}

// AvailableLecturesHandler lists every active template on a date's weekday
// for the student's branch and semester, marking which ones belong to their
// own batch. Used when picking an extra lecture to add.
func (h *Handler) AvailableLecturesHandler(c *gin.Context) {
	dateStr := c.Query("date")
	if dateStr == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Date required"})
		return
	}
	date, err := time.ParseInLocation("2006-01-02", dateStr, time.UTC)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid date format. Use YYYY-MM-DD"})
		return
	}

	var student models.Student
	if err := h.db.First(&student, currentStudentID(c)).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Student not found"})
		return
	}

	var templates []models.LectureTemplate
	err = h.db.
		Where("branch_id = ? AND semester = ? AND is_active = ? AND weekday = ?",
			student.BranchID, student.Semester, true, schedule.DBWeekday(date)).
		Find(&templates).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not fetch templates"})
		return
	}

	out := make([]gin.H, 0, len(templates))
	for _, t := range templates {
		out = append(out, gin.H{
			"id":        t.ID,
			"subject":   t.Subject,
			"type":      t.LectureType,
			"startTime": t.StartTime,
			"endTime":   t.EndTime,
			"faculty":   t.Faculty,
			"room":      t.Room,
			"batch":     t.Batch,
			"isMyBatch": schedule.BatchMatches(t.Batch, student.SubDivisionID),
		})
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "templates": out})
}
