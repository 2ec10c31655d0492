package model

import (
	"strconv"
	"time"
)

// Setting keys read by the application.
const (
	SettingSchoolName          = "school_name"
	SettingCurrentAcademicYear = "current_academic_year"
)

// UpdateSettingsRequest replaces the given keys.
type UpdateSettingsRequest struct {
	Settings map[string]string `json:"settings" binding:"required,min=1"`
}

// AppSetting is one stored key/value pair.
type AppSetting struct {
	Key       string    `json:"key" db:"key"`
	Value     string    `json:"value" db:"value"`
	UpdatedAt time.Time `json:"updatedAt" db:"updated_at"`
}

// ValidAcademicYear reports whether s looks like "2025/2026": two
// consecutive four-digit years.
func ValidAcademicYear(s string) bool {
	if len(s) != 9 || s[4] != '/' {
		return false
	}
	from, err := strconv.Atoi(s[:4])
	if err != nil {
		return false
	}
	to, err := strconv.Atoi(s[5:])
	if err != nil {
		return false
	}
	return to == from+1
}
