package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/educonnect/educonnect-backend/internal/model"
	"github.com/educonnect/educonnect-backend/internal/repository"
)

// ClassService handles classes and class membership.
type ClassService struct {
	classes  ClassStore
	users    UserStore
	settings SettingStore
}

// NewClassService creates a new ClassService.
func NewClassService(classes ClassStore, users UserStore, settings SettingStore) *ClassService {
	return &ClassService{classes: classes, users: users, settings: settings}
}

// Create adds a class. The academic year defaults to the current_academic_year setting.
func (s *ClassService) Create(ctx context.Context, req model.CreateClassRequest) (*model.Class, error) {
	year := strings.TrimSpace(req.AcademicYear)
	if year == "" {
		var err error
		if year, err = s.currentAcademicYear(ctx); err != nil {
			return nil, err
		}
	}

	class := &model.Class{Name: strings.TrimSpace(req.Name), AcademicYear: year}
	if err := s.classes.Create(ctx, class); err != nil {
		return nil, fmt.Errorf("create class: %w", err)
	}
	return class, nil
}

func (s *ClassService) currentAcademicYear(ctx context.Context) (string, error) {
	setting, err := s.settings.GetByKey(ctx, model.SettingCurrentAcademicYear)
	if err == nil && setting.Value != "" {
		return setting.Value, nil
	}
	if err != nil && !errors.Is(err, repository.ErrNotFound) {
		return "", fmt.Errorf("get academic year setting: %w", err)
	}
	return DefaultAcademicYear(time.Now()), nil
}

// DefaultAcademicYear derives "YYYY/YYYY" from a date, rolling over in August.
func DefaultAcademicYear(now time.Time) string {
	start := now.Year()
	if now.Month() < time.August {
		start--
	}
	return fmt.Sprintf("%d/%d", start, start+1)
}

// GetByID retrieves a class by its ID.
func (s *ClassService) GetByID(ctx context.Context, id uuid.UUID) (*model.Class, error) {
	return s.classes.GetByID(ctx, id)
}

// List retrieves all classes.
func (s *ClassService) List(ctx context.Context) ([]model.Class, error) {
	return s.classes.List(ctx)
}

// Assign overwrites the user's class reference. No history is kept.
func (s *ClassService) Assign(ctx context.Context, classID, userID uuid.UUID) (*model.User, error) {
	if _, err := s.classes.GetByID(ctx, classID); err != nil {
		return nil, fmt.Errorf("get class: %w", err)
	}
	if err := s.users.SetClass(ctx, userID, classID); err != nil {
		return nil, fmt.Errorf("assign class: %w", err)
	}
	return s.users.GetByID(ctx, userID)
}

// Roster lists the students of a class.
func (s *ClassService) Roster(ctx context.Context, classID uuid.UUID) ([]model.User, error) {
	if _, err := s.classes.GetByID(ctx, classID); err != nil {
		return nil, fmt.Errorf("get class: %w", err)
	}
	return s.users.ListByClass(ctx, classID, model.RoleStudent)
}

// MyClass returns the caller's class, or nil when none is assigned.
func (s *ClassService) MyClass(ctx context.Context, p model.Principal) (*model.Class, error) {
	classID, err := callerClassID(ctx, s.users, p)
	if err != nil || classID == nil {
		return nil, err
	}
	class, err := s.classes.GetByID(ctx, *classID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, nil
	}
	return class, err
}

// MyRoster lists the students of the caller's class; empty when unassigned.
func (s *ClassService) MyRoster(ctx context.Context, p model.Principal) ([]model.User, error) {
	classID, err := callerClassID(ctx, s.users, p)
	if err != nil {
		return nil, err
	}
	if classID == nil {
		return []model.User{}, nil
	}
	return s.users.ListByClass(ctx, *classID, model.RoleStudent)
}

// callerClassID reads the principal's current class reference.
func callerClassID(ctx context.Context, users UserStore, p model.Principal) (*uuid.UUID, error) {
	me, err := users.GetByID(ctx, p.UserID)
	if err != nil {
		return nil, fmt.Errorf("get caller: %w", err)
	}
	return me.ClassID, nil
}
