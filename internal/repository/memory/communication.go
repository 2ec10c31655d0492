package memory

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/educonnect/educonnect-backend/internal/model"
	"github.com/educonnect/educonnect-backend/internal/repository"
)

// AnnouncementRepository is the in-memory announcement store.
type AnnouncementRepository struct {
	db *db
}

func cloneAnnouncement(a *model.Announcement) model.Announcement {
	out := *a
	out.ClassIDs = append([]uuid.UUID{}, a.ClassIDs...)
	if a.ApproverID != nil {
		id := *a.ApproverID
		out.ApproverID = &id
	}
	return out
}

func (r *AnnouncementRepository) Create(_ context.Context, a *model.Announcement) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	for _, classID := range a.ClassIDs {
		if _, ok := r.db.classes[classID]; !ok {
			return repository.ErrForeignKey
		}
	}
	a.ID = uuid.New()
	a.CreatedAt = r.db.tick()
	a.UpdatedAt = a.CreatedAt
	stored := cloneAnnouncement(a)
	r.db.announcements[a.ID] = &stored
	return nil
}

func (r *AnnouncementRepository) GetByID(_ context.Context, id uuid.UUID) (*model.Announcement, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	a, ok := r.db.announcements[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	out := cloneAnnouncement(a)
	return &out, nil
}

func (r *AnnouncementRepository) ListApproved(_ context.Context, classID *uuid.UUID) ([]model.Announcement, error) {
	out := r.filter(func(a *model.Announcement) bool {
		if a.Status != model.AnnouncementApproved {
			return false
		}
		if classID == nil {
			return true
		}
		for _, id := range a.ClassIDs {
			if id == *classID {
				return true
			}
		}
		return false
	})
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r *AnnouncementRepository) ListPending(_ context.Context) ([]model.Announcement, error) {
	out := r.filter(func(a *model.Announcement) bool { return a.Status == model.AnnouncementPending })
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (r *AnnouncementRepository) UpdateStatus(_ context.Context, id uuid.UUID, status model.AnnouncementStatus, approverID *uuid.UUID) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	a, ok := r.db.announcements[id]
	if !ok {
		return repository.ErrNotFound
	}
	a.Status = status
	a.ApproverID = nil
	if approverID != nil {
		v := *approverID
		a.ApproverID = &v
	}
	a.UpdatedAt = r.db.tick()
	return nil
}

func (r *AnnouncementRepository) filter(keep func(*model.Announcement) bool) []model.Announcement {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	out := make([]model.Announcement, 0)
	for _, a := range r.db.announcements {
		if keep(a) {
			out = append(out, cloneAnnouncement(a))
		}
	}
	return out
}

// ConversationRepository is the in-memory conversation store.
type ConversationRepository struct {
	db *db
}

// view renders a conversation with participants and messages newest first.
// Callers hold the lock.
func (r *ConversationRepository) view(c *conversation) model.Conversation {
	out := model.Conversation{
		ID:           c.id,
		CreatedAt:    c.createdAt,
		Participants: make([]model.Participant, 0, len(c.participants)),
		Messages:     make([]model.Message, 0, len(c.messages)),
	}
	for _, id := range c.participants {
		if u, ok := r.db.users[id]; ok {
			out.Participants = append(out.Participants, model.Participant{
				ID: u.ID, FirstName: u.FirstName, LastName: u.LastName, Role: u.Role,
			})
		}
	}
	for i := len(c.messages) - 1; i >= 0; i-- {
		out.Messages = append(out.Messages, c.messages[i])
	}
	return out
}

func (r *ConversationRepository) Create(_ context.Context, participantIDs []uuid.UUID) (*model.Conversation, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	members := make([]uuid.UUID, 0, len(participantIDs))
	seen := make(map[uuid.UUID]bool)
	for _, id := range participantIDs {
		if _, ok := r.db.users[id]; !ok {
			return nil, repository.ErrForeignKey
		}
		if !seen[id] {
			seen[id] = true
			members = append(members, id)
		}
	}

	c := &conversation{id: uuid.New(), createdAt: r.db.tick(), participants: members}
	r.db.conversations[c.id] = c
	out := r.view(c)
	return &out, nil
}

func (r *ConversationRepository) ParticipantIDs(_ context.Context, conversationID uuid.UUID) ([]uuid.UUID, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	c, ok := r.db.conversations[conversationID]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return append([]uuid.UUID{}, c.participants...), nil
}

func (r *ConversationRepository) AddMessage(_ context.Context, m *model.Message) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	c, ok := r.db.conversations[m.ConversationID]
	if !ok {
		return repository.ErrForeignKey
	}
	m.ID = uuid.New()
	m.CreatedAt = r.db.tick()
	c.messages = append(c.messages, *m)
	return nil
}

func (r *ConversationRepository) ListForUser(_ context.Context, userID uuid.UUID) ([]model.Conversation, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	out := make([]model.Conversation, 0)
	for _, c := range r.db.conversations {
		for _, id := range c.participants {
			if id == userID {
				out = append(out, r.view(c))
				break
			}
		}
	}
	sort.Slice(out, func(i, j int) bool { return lastActivity(out[i]).After(lastActivity(out[j])) })
	return out, nil
}

func lastActivity(c model.Conversation) time.Time {
	if len(c.Messages) > 0 {
		return c.Messages[0].CreatedAt
	}
	return c.CreatedAt
}
