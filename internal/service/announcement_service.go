package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/educonnect/educonnect-backend/internal/model"
)

// AnnouncementService handles the announcement approval workflow:
// pending → approved | rejected, admin only, one way.
type AnnouncementService struct {
	announcements AnnouncementStore
	classes       ClassStore
	users         UserStore
	notify        Enqueuer
	log           zerolog.Logger
}

// NewAnnouncementService creates a new AnnouncementService.
func NewAnnouncementService(announcements AnnouncementStore, classes ClassStore, users UserStore, notify Enqueuer, log zerolog.Logger) *AnnouncementService {
	return &AnnouncementService{
		announcements: announcements,
		classes:       classes,
		users:         users,
		notify:        notify,
		log:           log.With().Str("component", "announcement_service").Logger(),
	}
}

// Create submits an announcement for approval. Every target class must exist.
func (s *AnnouncementService) Create(ctx context.Context, p model.Principal, req model.CreateAnnouncementRequest) (*model.Announcement, error) {
	classIDs := uniqueIDs(req.ClassIDs...)
	for _, id := range classIDs {
		if _, err := s.classes.GetByID(ctx, id); err != nil {
			return nil, fmt.Errorf("class %s: %w", id, err)
		}
	}

	a := &model.Announcement{
		Title:    strings.TrimSpace(req.Title),
		Content:  req.Content,
		Status:   model.AnnouncementPending,
		AuthorID: p.UserID,
		ClassIDs: classIDs,
	}
	if err := s.announcements.Create(ctx, a); err != nil {
		return nil, fmt.Errorf("create announcement: %w", err)
	}
	return a, nil
}

// Visible lists approved announcements. Students and teachers with a class
// only see those targeting it; everyone else sees all approved ones.
func (s *AnnouncementService) Visible(ctx context.Context, p model.Principal) ([]model.Announcement, error) {
	var classID *uuid.UUID
	if p.Is(model.RoleStudent, model.RoleTeacher) {
		id, err := callerClassID(ctx, s.users, p)
		if err != nil {
			return nil, err
		}
		classID = id
	}
	return s.announcements.ListApproved(ctx, classID)
}

// Pending lists announcements awaiting review.
func (s *AnnouncementService) Pending(ctx context.Context) ([]model.Announcement, error) {
	return s.announcements.ListPending(ctx)
}

// Review approves or rejects a pending announcement. Approval stamps the
// reviewer as approver; rejection leaves it empty.
func (s *AnnouncementService) Review(ctx context.Context, p model.Principal, id uuid.UUID, status model.AnnouncementStatus) (*model.Announcement, error) {
	if status != model.AnnouncementApproved && status != model.AnnouncementRejected {
		return nil, ErrInvalidTransition
	}

	a, err := s.announcements.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if a.Status != model.AnnouncementPending {
		return nil, fmt.Errorf("%s → %s: %w", a.Status, status, ErrInvalidTransition)
	}

	var approver *uuid.UUID
	if status == model.AnnouncementApproved {
		approver = &p.UserID
	}
	if err := s.announcements.UpdateStatus(ctx, id, status, approver); err != nil {
		return nil, fmt.Errorf("update announcement status: %w", err)
	}

	a.Status = status
	a.ApproverID = approver

	if status == model.AnnouncementApproved {
		n := model.Notification{
			Kind:     model.NotificationAnnouncement,
			Subject:  a.Title,
			Body:     a.Content,
			ClassIDs: a.ClassIDs,
		}
		if err := s.notify.Enqueue(ctx, n); err != nil {
			s.log.Error().Err(err).Str("announcement_id", id.String()).Msg("enqueue announcement notification")
		}
	}
	return a, nil
}
