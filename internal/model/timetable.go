package model

import (
	"time"

	"github.com/google/uuid"
)

// DayOfWeek is a lower-case weekday name.
type DayOfWeek string

const (
	Monday    DayOfWeek = "monday"
	Tuesday   DayOfWeek = "tuesday"
	Wednesday DayOfWeek = "wednesday"
	Thursday  DayOfWeek = "thursday"
	Friday    DayOfWeek = "friday"
	Saturday  DayOfWeek = "saturday"
	Sunday    DayOfWeek = "sunday"
)

// TimetableEntry is one scheduled lesson. Entries may overlap.
type TimetableEntry struct {
	ID        uuid.UUID `json:"id"`
	ClassID   uuid.UUID `json:"classId"`
	TeacherID uuid.UUID `json:"teacherId"`
	DayOfWeek DayOfWeek `json:"dayOfWeek"`
	StartTime string    `json:"startTime"`
	EndTime   string    `json:"endTime"`
	Subject   string    `json:"subject"`
	CreatedAt time.Time `json:"createdAt"`
}

// CreateTimetableEntryRequest is the payload for scheduling a lesson.
type CreateTimetableEntryRequest struct {
	ClassID   uuid.UUID `json:"classId" binding:"required"`
	TeacherID uuid.UUID `json:"teacherId" binding:"required"`
	DayOfWeek DayOfWeek `json:"dayOfWeek" binding:"required,oneof=monday tuesday wednesday thursday friday saturday sunday"`
	StartTime string    `json:"startTime" binding:"required,hhmm"`
	EndTime   string    `json:"endTime" binding:"required,hhmm"`
	Subject   string    `json:"subject" binding:"required,min=1,max=100"`
}
