package model

import (
	"time"

	"github.com/google/uuid"
)

// Class is a homeroom: a named group of students for one academic year.
type Class struct {
	ID           uuid.UUID `json:"id" db:"id"`
	Name         string    `json:"name" db:"name"`
	AcademicYear string    `json:"academicYear" db:"academic_year"`
	StudentCount int       `json:"studentCount" db:"student_count"`
	CreatedAt    time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt    time.Time `json:"updatedAt" db:"updated_at"`
}

// CreateClassRequest is the payload for creating a class.
type CreateClassRequest struct {
	Name         string `json:"name" binding:"required,min=1,max=100"`
	AcademicYear string `json:"academicYear" binding:"omitempty,max=20"`
}

// AssignClassRequest places a user in a class.
type AssignClassRequest struct {
	UserID uuid.UUID `json:"userId" binding:"required"`
}
