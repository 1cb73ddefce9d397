package models

import "gorm.io/gorm"

// Elective maps a (branch, semester) to a pair of elective subject options.
// A template whose subject appears in either slot is an elective offering, so
// it only applies to students who picked that subject.
type Elective struct {
	gorm.Model
	BranchID           uint   `json:"branchId" gorm:"not null;index"`
	Semester           int    `json:"semester" gorm:"not null;index"`
	FirstElectiveName  string `json:"firstElectiveName"`
	SecondElectiveName string `json:"secondElectiveName"`
}
