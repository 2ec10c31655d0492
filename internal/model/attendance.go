package model

import (
	"time"

	"github.com/google/uuid"
)

// AttendanceStatus is the roll-call outcome for one student on one day.
type AttendanceStatus string

const (
	AttendancePresent AttendanceStatus = "present"
	AttendanceAbsent  AttendanceStatus = "absent"
	AttendanceLate    AttendanceStatus = "late"
)

// Attendance is unique per (StudentID, Date).
type Attendance struct {
	ID        uuid.UUID        `json:"id"`
	StudentID uuid.UUID        `json:"studentId"`
	TeacherID uuid.UUID        `json:"teacherId"`
	Date      Date             `json:"date"`
	Status    AttendanceStatus `json:"status"`
	CreatedAt time.Time        `json:"createdAt"`
	UpdatedAt time.Time        `json:"updatedAt"`
}

// AttendanceRecord is one line of a roll call.
type AttendanceRecord struct {
	StudentID uuid.UUID        `json:"studentId" binding:"required"`
	Status    AttendanceStatus `json:"status" binding:"required,oneof=present absent late"`
}

// RollCallRequest submits statuses for many students on one date.
type RollCallRequest struct {
	Date    string             `json:"date" binding:"required,isodate"`
	Records []AttendanceRecord `json:"records" binding:"required,min=1,dive"`
}
