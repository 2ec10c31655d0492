package service

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/educonnect/educonnect-backend/internal/config"
	"github.com/educonnect/educonnect-backend/internal/model"
	"github.com/educonnect/educonnect-backend/internal/repository"
	"github.com/educonnect/educonnect-backend/internal/repository/memory"
	ws "github.com/educonnect/educonnect-backend/internal/websocket"
)

func newAnnouncementService(stores *memory.Stores, notify Enqueuer) *AnnouncementService {
	return NewAnnouncementService(stores.Announcements, stores.Classes, stores.Users, notify, nopLog)
}

func TestAnnouncement_ApproveStampsApproverAndNotifies(t *testing.T) {
	stores := memory.New()
	notify := &fakeEnqueuer{}
	svc := newAnnouncementService(stores, notify)
	ctx := context.Background()

	class := seedClass(t, stores, "JSS1")
	teacher := seedUser(t, stores, model.RoleTeacher, "tom")
	admin := seedUser(t, stores, model.RoleAdmin, "ann")

	a, err := svc.Create(ctx, principalOf(teacher), model.CreateAnnouncementRequest{
		Title: "Sports day", Content: "Friday", ClassIDs: []uuid.UUID{class.ID, class.ID},
	})
	require.NoError(t, err)
	assert.Equal(t, model.AnnouncementPending, a.Status)
	assert.Equal(t, []uuid.UUID{class.ID}, a.ClassIDs)

	pending, err := svc.Pending(ctx)
	require.NoError(t, err)
	assert.Len(t, pending, 1)

	reviewed, err := svc.Review(ctx, principalOf(admin), a.ID, model.AnnouncementApproved)
	require.NoError(t, err)
	assert.Equal(t, model.AnnouncementApproved, reviewed.Status)
	require.NotNil(t, reviewed.ApproverID)
	assert.Equal(t, admin.ID, *reviewed.ApproverID)

	require.Len(t, notify.sent, 1)
	assert.Equal(t, model.NotificationAnnouncement, notify.sent[0].Kind)
	assert.Equal(t, []uuid.UUID{class.ID}, notify.sent[0].ClassIDs)

	_, err = svc.Review(ctx, principalOf(admin), a.ID, model.AnnouncementRejected)
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestAnnouncement_RejectLeavesApproverEmpty(t *testing.T) {
	stores := memory.New()
	notify := &fakeEnqueuer{}
	svc := newAnnouncementService(stores, notify)
	ctx := context.Background()

	class := seedClass(t, stores, "JSS1")
	admin := seedUser(t, stores, model.RoleAdmin, "ann")

	a, err := svc.Create(ctx, principalOf(admin), model.CreateAnnouncementRequest{
		Title: "Trip", Content: "Zoo", ClassIDs: []uuid.UUID{class.ID},
	})
	require.NoError(t, err)

	reviewed, err := svc.Review(ctx, principalOf(admin), a.ID, model.AnnouncementRejected)
	require.NoError(t, err)
	assert.Equal(t, model.AnnouncementRejected, reviewed.Status)
	assert.Nil(t, reviewed.ApproverID)
	assert.Empty(t, notify.sent)

	visible, err := svc.Visible(ctx, principalOf(admin))
	require.NoError(t, err)
	assert.Empty(t, visible)
}

func TestAnnouncement_EnqueueFailureDoesNotFailReview(t *testing.T) {
	stores := memory.New()
	svc := newAnnouncementService(stores, &fakeEnqueuer{err: errors.New("redis down")})
	ctx := context.Background()

	class := seedClass(t, stores, "JSS1")
	admin := seedUser(t, stores, model.RoleAdmin, "ann")
	a, err := svc.Create(ctx, principalOf(admin), model.CreateAnnouncementRequest{
		Title: "Trip", Content: "Zoo", ClassIDs: []uuid.UUID{class.ID},
	})
	require.NoError(t, err)

	_, err = svc.Review(ctx, principalOf(admin), a.ID, model.AnnouncementApproved)
	assert.NoError(t, err)
}

func TestAnnouncement_UnknownClass(t *testing.T) {
	stores := memory.New()
	svc := newAnnouncementService(stores, &fakeEnqueuer{})
	admin := seedUser(t, stores, model.RoleAdmin, "ann")

	_, err := svc.Create(context.Background(), principalOf(admin), model.CreateAnnouncementRequest{
		Title: "Trip", Content: "Zoo", ClassIDs: []uuid.UUID{uuid.New()},
	})
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestAnnouncement_VisibleScopedToStudentClass(t *testing.T) {
	stores := memory.New()
	svc := newAnnouncementService(stores, &fakeEnqueuer{})
	ctx := context.Background()

	mine := seedClass(t, stores, "JSS1")
	other := seedClass(t, stores, "JSS2")
	admin := seedUser(t, stores, model.RoleAdmin, "ann")
	student := seedUser(t, stores, model.RoleStudent, "sam")
	require.NoError(t, stores.Users.SetClass(ctx, student.ID, mine.ID))

	for _, c := range []*model.Class{mine, other} {
		a, err := svc.Create(ctx, principalOf(admin), model.CreateAnnouncementRequest{
			Title: "For " + c.Name, Content: "x", ClassIDs: []uuid.UUID{c.ID},
		})
		require.NoError(t, err)
		_, err = svc.Review(ctx, principalOf(admin), a.ID, model.AnnouncementApproved)
		require.NoError(t, err)
	}

	visible, err := svc.Visible(ctx, principalOf(student))
	require.NoError(t, err)
	require.Len(t, visible, 1)
	assert.Equal(t, "For JSS1", visible[0].Title)

	all, err := svc.Visible(ctx, principalOf(admin))
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestMessaging_CreateConversationFansOut(t *testing.T) {
	stores := memory.New()
	pub := &fakePublisher{}
	svc := NewMessagingService(stores.Conversations, stores.Users, pub, nopLog)
	ctx := context.Background()

	teacher := seedUser(t, stores, model.RoleTeacher, "tom")
	parent := seedUser(t, stores, model.RoleParent, "pat")

	conv, err := svc.CreateConversation(ctx, principalOf(teacher), model.CreateConversationRequest{
		ParticipantIDs: []uuid.UUID{parent.ID, teacher.ID},
		Content:        "Hello",
	})
	require.NoError(t, err)
	require.Len(t, conv.Messages, 1)
	assert.Equal(t, teacher.ID, conv.Messages[0].SenderID)

	assert.ElementsMatch(t, []string{
		config.CacheKey.UserInboxChannel(teacher.ID),
		config.CacheKey.UserInboxChannel(parent.ID),
	}, pub.channels())

	var evt ws.MessageEvent
	require.NoError(t, json.Unmarshal(pub.sent[0].payload, &evt))
	assert.Equal(t, ws.EventMessage, evt.Event)
	assert.Equal(t, "Hello", evt.Message.Content)

	listed, err := svc.List(ctx, principalOf(parent))
	require.NoError(t, err)
	require.Len(t, listed, 1)
	assert.Len(t, listed[0].Participants, 2)
}

func TestMessaging_UnknownParticipant(t *testing.T) {
	stores := memory.New()
	pub := &fakePublisher{}
	svc := NewMessagingService(stores.Conversations, stores.Users, pub, nopLog)
	teacher := seedUser(t, stores, model.RoleTeacher, "tom")

	_, err := svc.CreateConversation(context.Background(), principalOf(teacher), model.CreateConversationRequest{
		ParticipantIDs: []uuid.UUID{uuid.New()},
		Content:        "Hello",
	})
	assert.ErrorIs(t, err, repository.ErrNotFound)
	assert.Empty(t, pub.sent)
}

func TestMessaging_SendRequiresParticipation(t *testing.T) {
	stores := memory.New()
	pub := &fakePublisher{}
	svc := NewMessagingService(stores.Conversations, stores.Users, pub, nopLog)
	ctx := context.Background()

	teacher := seedUser(t, stores, model.RoleTeacher, "tom")
	parent := seedUser(t, stores, model.RoleParent, "pat")
	outsider := seedUser(t, stores, model.RoleParent, "olga")

	conv, err := svc.CreateConversation(ctx, principalOf(teacher), model.CreateConversationRequest{
		ParticipantIDs: []uuid.UUID{parent.ID}, Content: "Hello",
	})
	require.NoError(t, err)

	_, err = svc.Send(ctx, principalOf(outsider), conv.ID, model.SendMessageRequest{Content: "hi"})
	assert.ErrorIs(t, err, ErrNotParticipant)

	before := len(pub.sent)
	msg, err := svc.Send(ctx, principalOf(parent), conv.ID, model.SendMessageRequest{Content: "Thanks"})
	require.NoError(t, err)
	assert.Equal(t, parent.ID, msg.SenderID)
	assert.Len(t, pub.sent, before+2)

	_, err = svc.Send(ctx, principalOf(parent), uuid.New(), model.SendMessageRequest{Content: "lost"})
	assert.ErrorIs(t, err, repository.ErrNotFound)
}
