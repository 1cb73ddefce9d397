package models

import (
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// AcademicCalendar stores the institute's published calendar for one academic
// year as the raw JSON document it is circulated in.
type AcademicCalendar struct {
	gorm.Model
	Year string         `json:"year" gorm:"unique;not null"` // e.g. "2025-2026"
	Data datatypes.JSON `json:"data" gorm:"type:jsonb"`
}

// CalendarDocument mirrors the JSON layout of the published calendar.
type CalendarDocument struct {
	AcademicCalendar struct {
		Months []CalendarMonth `json:"months"`
	} `json:"academicCalendar"`
}

// CalendarMonth is one month's worth of calendar events.
type CalendarMonth struct {
	Month  string          `json:"month"` // English month name
	Year   int             `json:"year"`
	Events []CalendarEvent `json:"events"`
}

// CalendarEvent is a single dated entry. Type is "Holiday" for days off;
// ordinary entries carry the weekday name in Day instead.
type CalendarEvent struct {
	Date int    `json:"date"` // day of month
	Day  string `json:"day"`  // weekday name, e.g. "Sunday"
	Type string `json:"type"`
}
