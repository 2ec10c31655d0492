package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/educonnect/educonnect-backend/internal/model"
)

const announcementSelect = `SELECT a.id, a.title, a.content, a.status, a.author_id, a.approver_id,
		COALESCE((SELECT array_agg(ac.class_id) FROM announcement_classes ac WHERE ac.announcement_id = a.id), '{}'),
		a.created_at, a.updated_at
	FROM announcements a`

// AnnouncementRepository handles announcement data access.
type AnnouncementRepository struct {
	pool *pgxpool.Pool
}

// NewAnnouncementRepository creates a new AnnouncementRepository.
func NewAnnouncementRepository(pool *pgxpool.Pool) *AnnouncementRepository {
	return &AnnouncementRepository{pool: pool}
}

func scanAnnouncement(row rowScanner) (*model.Announcement, error) {
	a := &model.Announcement{}
	err := row.Scan(&a.ID, &a.Title, &a.Content, &a.Status, &a.AuthorID, &a.ApproverID,
		&a.ClassIDs, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		return nil, mapError(err)
	}
	return a, nil
}

// Create inserts the announcement, then its target classes in one batch.
func (r *AnnouncementRepository) Create(ctx context.Context, a *model.Announcement) error {
	err := r.pool.QueryRow(ctx,
		`INSERT INTO announcements (title, content, status, author_id)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id, created_at, updated_at`,
		a.Title, a.Content, a.Status, a.AuthorID,
	).Scan(&a.ID, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		return mapError(err)
	}

	batch := &pgx.Batch{}
	for _, classID := range a.ClassIDs {
		batch.Queue(
			`INSERT INTO announcement_classes (announcement_id, class_id) VALUES ($1, $2)
			 ON CONFLICT DO NOTHING`, a.ID, classID)
	}
	return mapError(r.pool.SendBatch(ctx, batch).Close())
}

// GetByID retrieves an announcement with its target classes.
func (r *AnnouncementRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Announcement, error) {
	return scanAnnouncement(r.pool.QueryRow(ctx, announcementSelect+` WHERE a.id = $1`, id))
}

// ListApproved returns approved announcements, newest first, optionally only those targeting classID.
func (r *AnnouncementRepository) ListApproved(ctx context.Context, classID *uuid.UUID) ([]model.Announcement, error) {
	return r.list(ctx, announcementSelect+`
		WHERE a.status = $1
		  AND ($2::uuid IS NULL OR EXISTS (
		      SELECT 1 FROM announcement_classes ac WHERE ac.announcement_id = a.id AND ac.class_id = $2))
		ORDER BY a.created_at DESC`,
		model.AnnouncementApproved, classID)
}

// ListPending returns announcements awaiting review, oldest first.
func (r *AnnouncementRepository) ListPending(ctx context.Context) ([]model.Announcement, error) {
	return r.list(ctx, announcementSelect+` WHERE a.status = $1 ORDER BY a.created_at`, model.AnnouncementPending)
}

// UpdateStatus sets status and approver.
func (r *AnnouncementRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status model.AnnouncementStatus, approverID *uuid.UUID) error {
	return requireAffected(r.pool.Exec(ctx,
		`UPDATE announcements SET status = $1, approver_id = $2, updated_at = NOW() WHERE id = $3`,
		status, approverID, id))
}

func (r *AnnouncementRepository) list(ctx context.Context, sql string, args ...any) ([]model.Announcement, error) {
	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	list := make([]model.Announcement, 0)
	for rows.Next() {
		a, err := scanAnnouncement(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, *a)
	}
	return list, rows.Err()
}
