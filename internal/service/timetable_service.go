package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/educonnect/educonnect-backend/internal/model"
)

// TimetableService handles the weekly lesson schedule.
type TimetableService struct {
	entries TimetableStore
	classes ClassStore
	users   UserStore
}

// NewTimetableService creates a new TimetableService.
func NewTimetableService(entries TimetableStore, classes ClassStore, users UserStore) *TimetableService {
	return &TimetableService{entries: entries, classes: classes, users: users}
}

// Create schedules a lesson. Overlaps with existing entries are not checked.
func (s *TimetableService) Create(ctx context.Context, req model.CreateTimetableEntryRequest) (*model.TimetableEntry, error) {
	if req.StartTime >= req.EndTime {
		return nil, ErrInvalidTimeRange
	}
	if _, err := s.classes.GetByID(ctx, req.ClassID); err != nil {
		return nil, fmt.Errorf("get class: %w", err)
	}
	if _, err := requireUserRole(ctx, s.users, req.TeacherID, model.RoleTeacher); err != nil {
		return nil, err
	}

	entry := &model.TimetableEntry{
		ClassID:   req.ClassID,
		TeacherID: req.TeacherID,
		DayOfWeek: req.DayOfWeek,
		StartTime: req.StartTime,
		EndTime:   req.EndTime,
		Subject:   req.Subject,
	}
	if err := s.entries.Create(ctx, entry); err != nil {
		return nil, fmt.Errorf("create timetable entry: %w", err)
	}
	return entry, nil
}

// ListByClass returns a class's schedule.
func (s *TimetableService) ListByClass(ctx context.Context, classID uuid.UUID) ([]model.TimetableEntry, error) {
	if _, err := s.classes.GetByID(ctx, classID); err != nil {
		return nil, fmt.Errorf("get class: %w", err)
	}
	return s.entries.ListByClass(ctx, classID)
}

// Mine returns the lessons a teacher gives, or a student's class schedule.
func (s *TimetableService) Mine(ctx context.Context, p model.Principal) ([]model.TimetableEntry, error) {
	if p.Role == model.RoleTeacher {
		return s.entries.ListByTeacher(ctx, p.UserID)
	}

	classID, err := callerClassID(ctx, s.users, p)
	if err != nil {
		return nil, err
	}
	if classID == nil {
		return []model.TimetableEntry{}, nil
	}
	return s.entries.ListByClass(ctx, *classID)
}
