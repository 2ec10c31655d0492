package model

import (
	"time"

	"github.com/google/uuid"
)

// Grade is one assessment result recorded by a teacher.
type Grade struct {
	ID         uuid.UUID `json:"id"`
	StudentID  uuid.UUID `json:"studentId"`
	TeacherID  uuid.UUID `json:"teacherId"`
	Subject    string    `json:"subject"`
	Assessment string    `json:"assessment"`
	Score      string    `json:"score"`
	RecordedAt time.Time `json:"recordedAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

// CreateGradeRequest records a new grade.
type CreateGradeRequest struct {
	StudentID  uuid.UUID `json:"studentId" binding:"required"`
	Subject    string    `json:"subject" binding:"required,min=1,max=100"`
	Assessment string    `json:"assessment" binding:"required,min=1,max=100"`
	Score      string    `json:"score" binding:"required,min=1,max=20"`
}

// UpdateGradeRequest patches a grade; absent fields stay unchanged.
type UpdateGradeRequest struct {
	Subject    *string `json:"subject" binding:"omitempty,min=1,max=100"`
	Assessment *string `json:"assessment" binding:"omitempty,min=1,max=100"`
	Score      *string `json:"score" binding:"omitempty,min=1,max=20"`
}
