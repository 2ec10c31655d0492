package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/educonnect/educonnect-backend/internal/model"
)

// GradeService handles the gradebook. Teachers may only change grades they
// recorded; admins may change any.
type GradeService struct {
	grades GradeStore
	users  UserStore
}

// NewGradeService creates a new GradeService.
func NewGradeService(grades GradeStore, users UserStore) *GradeService {
	return &GradeService{grades: grades, users: users}
}

// Create records a grade authored by the caller.
func (s *GradeService) Create(ctx context.Context, p model.Principal, req model.CreateGradeRequest) (*model.Grade, error) {
	if _, err := requireUserRole(ctx, s.users, req.StudentID, model.RoleStudent); err != nil {
		return nil, err
	}

	grade := &model.Grade{
		StudentID:  req.StudentID,
		TeacherID:  p.UserID,
		Subject:    strings.TrimSpace(req.Subject),
		Assessment: strings.TrimSpace(req.Assessment),
		Score:      strings.TrimSpace(req.Score),
	}
	if err := s.grades.Create(ctx, grade); err != nil {
		return nil, fmt.Errorf("create grade: %w", err)
	}
	return grade, nil
}

// ByStudent returns a student's grades.
func (s *GradeService) ByStudent(ctx context.Context, studentID uuid.UUID) ([]model.Grade, error) {
	return s.grades.ListByStudent(ctx, studentID)
}

// Mine returns the calling student's grades.
func (s *GradeService) Mine(ctx context.Context, p model.Principal) ([]model.Grade, error) {
	return s.grades.ListByStudent(ctx, p.UserID)
}

// Update patches a grade owned by the caller.
func (s *GradeService) Update(ctx context.Context, p model.Principal, id uuid.UUID, req model.UpdateGradeRequest) (*model.Grade, error) {
	grade, err := s.owned(ctx, p, id)
	if err != nil {
		return nil, err
	}

	if req.Subject != nil {
		grade.Subject = strings.TrimSpace(*req.Subject)
	}
	if req.Assessment != nil {
		grade.Assessment = strings.TrimSpace(*req.Assessment)
	}
	if req.Score != nil {
		grade.Score = strings.TrimSpace(*req.Score)
	}

	if err := s.grades.Update(ctx, grade); err != nil {
		return nil, fmt.Errorf("update grade: %w", err)
	}
	return grade, nil
}

// Delete removes a grade owned by the caller.
func (s *GradeService) Delete(ctx context.Context, p model.Principal, id uuid.UUID) error {
	if _, err := s.owned(ctx, p, id); err != nil {
		return err
	}
	return s.grades.Delete(ctx, id)
}

func (s *GradeService) owned(ctx context.Context, p model.Principal, id uuid.UUID) (*model.Grade, error) {
	grade, err := s.grades.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p.Role != model.RoleAdmin && grade.TeacherID != p.UserID {
		return nil, ErrNotGradeOwner
	}
	return grade, nil
}
