package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/ketan-2905/classbunk/models"
)

// ElectiveOptionsHandler lists the elective subjects offered for a branch and
// semester, split by slot. Public data used by the signup form.
func (h *Handler) ElectiveOptionsHandler(c *gin.Context) {
	branchID, err := strconv.ParseUint(c.Query("branchId"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid branch ID"})
		return
	}
	semester, err := strconv.Atoi(c.Query("semester"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid semester"})
		return
	}

	var electives []models.Elective
	err = h.db.
		Where("branch_id = ? AND semester = ?", branchID, semester).
		Order("id").
		Find(&electives).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not fetch electives"})
		return
	}

	slot1 := make([]string, 0, len(electives))
	slot2 := make([]string, 0, len(electives))
	seen1 := make(map[string]bool)
	seen2 := make(map[string]bool)
	for _, e := range electives {
		if e.FirstElectiveName != "" && !seen1[e.FirstElectiveName] {
			seen1[e.FirstElectiveName] = true
			slot1 = append(slot1, e.FirstElectiveName)
		}
		if e.SecondElectiveName != "" && !seen2[e.SecondElectiveName] {
			seen2[e.SecondElectiveName] = true
			slot2 = append(slot2, e.SecondElectiveName)
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"success":         true,
		"firstElectives":  slot1,
		"secondElectives": slot2,
	})
}
