package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ketan-2905/classbunk/models"
)

type toggleInput struct {
	AttendanceID uint  `json:"attendanceId" binding:"required"`
	Status       *bool `json:"status" binding:"required"`
}

// ToggleAttendanceHandler sets the attended flag on one of the student's own
// attendance rows. Concurrent toggles on the same row are last-write-wins.
func (h *Handler) ToggleAttendanceHandler(c *gin.Context) {
	var in toggleInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing attendance id or status"})
		return
	}

	res := h.db.Model(&models.Attendance{}).
		Where("id = ? AND student_id = ?", in.AttendanceID, currentStudentID(c)).
		Update("attended", *in.Status)
	if res.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not update attendance"})
		return
	}
	if res.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Attendance record not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}
