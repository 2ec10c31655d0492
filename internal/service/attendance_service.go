package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/educonnect/educonnect-backend/internal/model"
)

// AttendanceService handles roll calls.
type AttendanceService struct {
	records AttendanceStore
	users   UserStore
}

// NewAttendanceService creates a new AttendanceService.
func NewAttendanceService(records AttendanceStore, users UserStore) *AttendanceService {
	return &AttendanceService{records: records, users: users}
}

// RecordRollCall upserts one row per record for the given date, in order.
// A failure stops the batch; rows already written stay written.
func (s *AttendanceService) RecordRollCall(ctx context.Context, p model.Principal, req model.RollCallRequest) ([]model.Attendance, error) {
	date, err := model.ParseDate(req.Date)
	if err != nil {
		return nil, err
	}

	saved := make([]model.Attendance, 0, len(req.Records))
	for _, rec := range req.Records {
		if _, err := requireUserRole(ctx, s.users, rec.StudentID, model.RoleStudent); err != nil {
			return saved, err
		}

		row := &model.Attendance{
			StudentID: rec.StudentID,
			TeacherID: p.UserID,
			Date:      date,
			Status:    rec.Status,
		}
		if err := s.records.Upsert(ctx, row); err != nil {
			return saved, fmt.Errorf("upsert attendance for %s: %w", rec.StudentID, err)
		}
		saved = append(saved, *row)
	}
	return saved, nil
}

// ByDate returns every row for a date, across all classes.
func (s *AttendanceService) ByDate(ctx context.Context, date model.Date) ([]model.Attendance, error) {
	return s.records.ListByDate(ctx, date)
}

// ByStudent returns a student's history.
func (s *AttendanceService) ByStudent(ctx context.Context, studentID uuid.UUID) ([]model.Attendance, error) {
	return s.records.ListByStudent(ctx, studentID)
}

// Mine returns the calling student's history.
func (s *AttendanceService) Mine(ctx context.Context, p model.Principal) ([]model.Attendance, error) {
	return s.records.ListByStudent(ctx, p.UserID)
}
