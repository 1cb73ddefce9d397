package models

import (
	"time"

	"gorm.io/gorm"
)

// LectureType distinguishes theory lectures from practicals.
type LectureType string

const (
	LectureTheory    LectureType = "THEORY"
	LecturePractical LectureType = "PRACTICAL"
)

// LectureStatus is the state of a dated lecture occurrence.
type LectureStatus string

const (
	LectureScheduled LectureStatus = "SCHEDULED"
	LectureExtra     LectureStatus = "EXTRA"
	LectureCancelled LectureStatus = "CANCELLED"
)

// LectureTemplate is a recurring weekly slot in the timetable. Templates are
// immutable once published; a changed slot is a new template with the old one
// deactivated.
type LectureTemplate struct {
	gorm.Model
	BranchID   uint `json:"branchId" gorm:"not null;index"`
	DivisionID uint `json:"divisionId" gorm:"not null;index"`
	Semester   int  `json:"semester" gorm:"not null;index"`

	Subject     string      `json:"subject" gorm:"not null"`
	LectureType LectureType `json:"lectureType" gorm:"not null"`
	// Weekday uses 1=Monday .. 7=Sunday.
	Weekday   int    `json:"weekday" gorm:"not null"`
	StartTime string `json:"startTime" gorm:"not null"` // "HH:MM"
	EndTime   string `json:"endTime" gorm:"not null"`
	Room      string `json:"room"`
	Faculty   string `json:"faculty"`

	// Batch is a sub-division label like "D11". Empty means the whole
	// class attends.
	Batch    string `json:"batch"`
	IsActive *bool  `json:"isActive" gorm:"default:true"`
}

// LectureInstance is one dated occurrence of a template, created lazily by
// the schedule sync. Unique per (template, date).
type LectureInstance struct {
	gorm.Model
	LectureTemplateID uint          `json:"lectureTemplateId" gorm:"not null;uniqueIndex:idx_template_date"`
	Date              time.Time     `json:"date" gorm:"type:date;not null;uniqueIndex:idx_template_date"`
	Status            LectureStatus `json:"status" gorm:"not null;default:SCHEDULED"`

	LectureTemplate *LectureTemplate `json:"lectureTemplate,omitempty" gorm:"foreignKey:LectureTemplateID"`
}

// Attendance is a student's record against one lecture instance. Unique per
// (student, instance). IsIgnored excludes the occurrence from totals; IsExtra
// counts it on top of the projected template total. The write paths keep the
// two flags mutually exclusive.
type Attendance struct {
	gorm.Model
	StudentID         uint `json:"studentId" gorm:"not null;uniqueIndex:idx_student_instance"`
	LectureInstanceID uint `json:"lectureInstanceId" gorm:"not null;uniqueIndex:idx_student_instance"`
	Attended          bool `json:"attended" gorm:"default:true"`
	IsIgnored         bool `json:"isIgnored" gorm:"default:false"`
	IsExtra           bool `json:"isExtra" gorm:"default:false"`

	LectureInstance *LectureInstance `json:"lectureInstance,omitempty" gorm:"foreignKey:LectureInstanceID"`
}
