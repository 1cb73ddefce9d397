package models

import "gorm.io/gorm"

// Branch is an engineering branch (e.g. "Computer Science and Engineering
// (Data Science)").
type Branch struct {
	gorm.Model
	Name     string `json:"name" gorm:"unique;not null"`
	Capacity int    `json:"capacity"`
}

// Division is a class division within a branch (e.g. "D1").
type Division struct {
	gorm.Model
	Name     string `json:"name" gorm:"not null"`
	BranchID uint   `json:"branchId" gorm:"not null"`
}
