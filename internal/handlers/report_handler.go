package handlers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/xuri/excelize/v2"

	"github.com/ketan-2905/classbunk/internal/schedule"
	"github.com/ketan-2905/classbunk/internal/stats"
	"github.com/ketan-2905/classbunk/models"
)

// AttendanceReportHandler exports the current-range per-subject stats as an
// xlsx attachment.
func (h *Handler) AttendanceReportHandler(c *gin.Context) {
	asOf, ok := parseAsOf(c)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid date format. Use YYYY-MM-DD"})
		return
	}

	var student models.Student
	if err := h.db.First(&student, currentStudentID(c)).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Student not found"})
		return
	}

	rows, err := h.attendanceRows(student.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not load attendance"})
		return
	}
	holidays, err := h.schedule.Holidays()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not load academic calendar"})
		return
	}
	templates, err := h.schedule.StudentTemplates(&student)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not resolve timetable"})
		return
	}

	currentRange, err := schedule.NewDateRange(h.cfg.SemesterStart, asOf)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Date is before the semester start"})
		return
	}
	totals := schedule.ProjectedTotals(templates, currentRange, holidays)
	result := stats.ComputeRange(rows, totals, totals, currentRange.End(), asOf, false)

	f := excelize.NewFile()
	sheetName := "Attendance"
	index, _ := f.NewSheet(sheetName)
	f.SetActiveSheet(index)
	f.DeleteSheet("Sheet1")

	headers := []string{"Subject", "Type", "Conducted", "Present", "Percentage", "Safe Bunks", "Must Attend"}
	for i, header := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheetName, cell, header)
	}

	for i, s := range result.Subjects {
		row := i + 2
		f.SetCellValue(sheetName, fmt.Sprintf("A%d", row), s.Title)
		f.SetCellValue(sheetName, fmt.Sprintf("B%d", row), string(s.Type))
		f.SetCellValue(sheetName, fmt.Sprintf("C%d", row), s.Total)
		f.SetCellValue(sheetName, fmt.Sprintf("D%d", row), s.Present)
		f.SetCellValue(sheetName, fmt.Sprintf("E%d", row), fmt.Sprintf("%.1f%%", s.Percentage))
		f.SetCellValue(sheetName, fmt.Sprintf("F%d", row), s.SafeBunks)
		f.SetCellValue(sheetName, fmt.Sprintf("G%d", row), s.MustAttend)
	}

	summaryRow := len(result.Subjects) + 3
	f.SetCellValue(sheetName, fmt.Sprintf("A%d", summaryRow), "Overall")
	f.SetCellValue(sheetName, fmt.Sprintf("C%d", summaryRow), result.Stats.TotalConducted)
	f.SetCellValue(sheetName, fmt.Sprintf("D%d", summaryRow), result.Stats.TotalConducted-result.Stats.TotalMissed)
	f.SetCellValue(sheetName, fmt.Sprintf("E%d", summaryRow), result.Stats.Attendance+"%")
	f.SetCellValue(sheetName, fmt.Sprintf("F%d", summaryRow), result.Stats.SafeBunks)
	f.SetCellValue(sheetName, fmt.Sprintf("G%d", summaryRow), result.Stats.ToAttend)

	fileName := fmt.Sprintf("attendance_%s.xlsx", time.Now().Format("20060102_150405"))
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", "attachment; filename="+fileName)
	if err := f.Write(c.Writer); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to write Excel file"})
	}
}
