package models

import "gorm.io/gorm"

// Student represents an enrolled student account. The enrollment attributes
// (branch, division, semester, sub-division, elective choices) decide which
// lecture templates resolve to this student.
type Student struct {
	gorm.Model
	Name     string `json:"name" gorm:"not null"`
	Email    string `json:"email" gorm:"unique;not null"`
	Password string `json:"-" gorm:"not null"`
	SapID    string `json:"sapId" gorm:"unique;not null"`
	RollNo   string `json:"rollNo" gorm:"unique;not null"`

	BranchID   uint `json:"branchId" gorm:"not null"`
	DivisionID uint `json:"divisionId" gorm:"not null"`
	Semester   int  `json:"semester" gorm:"not null"`

	// SubDivisionID is the trailing digit(s) of the batch label, e.g. "1"
	// for batch "D11". Templates match by suffix.
	SubDivisionID   string `json:"subDivisionId"`
	ElectiveChoice1 string `json:"electiveChoice1"`
	ElectiveChoice2 string `json:"electiveChoice2"`

	Branch   *Branch   `json:"branch,omitempty" gorm:"foreignKey:BranchID"`
	Division *Division `json:"division,omitempty" gorm:"foreignKey:DivisionID"`

	Attendances []Attendance `json:"attendances,omitempty" gorm:"foreignKey:StudentID"`
}
