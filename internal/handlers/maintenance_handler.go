package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ketan-2905/classbunk/models"
)

// FixDuplicatesHandler cleans up elective instances the session student can
// never attend, left behind by syncs that ran before batch resolution
// existed. Re-running it is a no-op once clean.
func (h *Handler) FixDuplicatesHandler(c *gin.Context) {
	var student models.Student
	if err := h.db.First(&student, currentStudentID(c)).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Student not found"})
		return
	}

	removedAttendances, removedInstances, err := h.schedule.PruneDuplicateElectives(&student)
	if err != nil {
		slog.Error("Duplicate elective cleanup failed", "error", err, "student_id", student.ID)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Cleanup failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":            true,
		"removedAttendances": removedAttendances,
		"removedInstances":   removedInstances,
	})
}
