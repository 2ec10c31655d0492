package model

import (
	"time"

	"github.com/google/uuid"
)

// HealthRecord holds a student's medical and emergency-contact details.
type HealthRecord struct {
	ID                    uuid.UUID `json:"id"`
	StudentID             uuid.UUID `json:"studentId"`
	BloodGroup            string    `json:"bloodGroup"`
	Allergies             string    `json:"allergies"`
	MedicalConditions     string    `json:"medicalConditions"`
	Medications           string    `json:"medications"`
	EmergencyContactName  string    `json:"emergencyContactName"`
	EmergencyContactPhone string    `json:"emergencyContactPhone"`
	Notes                 string    `json:"notes"`
	UpdatedAt             time.Time `json:"updatedAt"`
}

// UpsertHealthRecordRequest replaces a student's health record.
type UpsertHealthRecordRequest struct {
	BloodGroup            string `json:"bloodGroup" binding:"omitempty,max=5"`
	Allergies             string `json:"allergies" binding:"omitempty,max=2000"`
	MedicalConditions     string `json:"medicalConditions" binding:"omitempty,max=2000"`
	Medications           string `json:"medications" binding:"omitempty,max=2000"`
	EmergencyContactName  string `json:"emergencyContactName" binding:"required,min=1,max=150"`
	EmergencyContactPhone string `json:"emergencyContactPhone" binding:"required,min=3,max=32"`
	Notes                 string `json:"notes" binding:"omitempty,max=4000"`
}
