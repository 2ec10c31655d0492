package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/educonnect/educonnect-backend/internal/model"
)

// HealthRecordRepository handles student health record data access.
type HealthRecordRepository struct {
	pool *pgxpool.Pool
}

// NewHealthRecordRepository creates a new HealthRecordRepository.
func NewHealthRecordRepository(pool *pgxpool.Pool) *HealthRecordRepository {
	return &HealthRecordRepository{pool: pool}
}

// Upsert creates or replaces the record of h.StudentID.
func (r *HealthRecordRepository) Upsert(ctx context.Context, h *model.HealthRecord) error {
	err := r.pool.QueryRow(ctx,
		`INSERT INTO health_records (student_id, blood_group, allergies, medical_conditions, medications,
		        emergency_contact_name, emergency_contact_phone, notes)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		 ON CONFLICT (student_id) DO UPDATE SET
		     blood_group = EXCLUDED.blood_group,
		     allergies = EXCLUDED.allergies,
		     medical_conditions = EXCLUDED.medical_conditions,
		     medications = EXCLUDED.medications,
		     emergency_contact_name = EXCLUDED.emergency_contact_name,
		     emergency_contact_phone = EXCLUDED.emergency_contact_phone,
		     notes = EXCLUDED.notes,
		     updated_at = NOW()
		 RETURNING id, updated_at`,
		h.StudentID, h.BloodGroup, h.Allergies, h.MedicalConditions, h.Medications,
		h.EmergencyContactName, h.EmergencyContactPhone, h.Notes,
	).Scan(&h.ID, &h.UpdatedAt)
	return mapError(err)
}

// GetByStudent retrieves a student's health record.
func (r *HealthRecordRepository) GetByStudent(ctx context.Context, studentID uuid.UUID) (*model.HealthRecord, error) {
	h := &model.HealthRecord{}
	err := r.pool.QueryRow(ctx,
		`SELECT id, student_id, blood_group, allergies, medical_conditions, medications,
		        emergency_contact_name, emergency_contact_phone, notes, updated_at
		 FROM health_records WHERE student_id = $1`, studentID,
	).Scan(&h.ID, &h.StudentID, &h.BloodGroup, &h.Allergies, &h.MedicalConditions, &h.Medications,
		&h.EmergencyContactName, &h.EmergencyContactPhone, &h.Notes, &h.UpdatedAt)
	if err != nil {
		return nil, mapError(err)
	}
	return h, nil
}
