package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/educonnect/educonnect-backend/internal/model"
)

// HealthService handles student health records.
type HealthService struct {
	records HealthRecordStore
	users   UserStore
	links   ParentLinkStore
}

// NewHealthService creates a new HealthService.
func NewHealthService(records HealthRecordStore, users UserStore, links ParentLinkStore) *HealthService {
	return &HealthService{records: records, users: users, links: links}
}

// Upsert replaces a student's health record.
func (s *HealthService) Upsert(ctx context.Context, studentID uuid.UUID, req model.UpsertHealthRecordRequest) (*model.HealthRecord, error) {
	if _, err := requireUserRole(ctx, s.users, studentID, model.RoleStudent); err != nil {
		return nil, err
	}

	rec := &model.HealthRecord{
		StudentID:             studentID,
		BloodGroup:            strings.ToUpper(strings.TrimSpace(req.BloodGroup)),
		Allergies:             strings.TrimSpace(req.Allergies),
		MedicalConditions:     strings.TrimSpace(req.MedicalConditions),
		Medications:           strings.TrimSpace(req.Medications),
		EmergencyContactName:  strings.TrimSpace(req.EmergencyContactName),
		EmergencyContactPhone: strings.TrimSpace(req.EmergencyContactPhone),
		Notes:                 strings.TrimSpace(req.Notes),
	}
	if err := s.records.Upsert(ctx, rec); err != nil {
		return nil, fmt.Errorf("upsert health record: %w", err)
	}
	return rec, nil
}

// Get returns a student's record. Parents may only read their linked children.
func (s *HealthService) Get(ctx context.Context, p model.Principal, studentID uuid.UUID) (*model.HealthRecord, error) {
	if p.Role == model.RoleParent {
		linked, err := s.links.IsLinked(ctx, p.UserID, studentID)
		if err != nil {
			return nil, fmt.Errorf("check link: %w", err)
		}
		if !linked {
			return nil, ErrNotLinked
		}
	}
	return s.records.GetByStudent(ctx, studentID)
}

// Mine returns the calling student's record.
func (s *HealthService) Mine(ctx context.Context, p model.Principal) (*model.HealthRecord, error) {
	return s.records.GetByStudent(ctx, p.UserID)
}
