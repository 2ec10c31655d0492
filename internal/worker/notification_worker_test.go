package worker

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/educonnect/educonnect-backend/internal/model"
	"github.com/educonnect/educonnect-backend/internal/notification"
	"github.com/educonnect/educonnect-backend/internal/repository/memory"
)

type recordingMailer struct {
	mu     sync.Mutex
	sent   []notification.Mail
	failTo string
}

func (m *recordingMailer) Send(_ context.Context, msg notification.Mail) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if msg.To.Email == m.failTo {
		return errors.New("mailbox unavailable")
	}
	m.sent = append(m.sent, msg)
	return nil
}

func (m *recordingMailer) recipients() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]string, 0, len(m.sent))
	for _, msg := range m.sent {
		out = append(out, msg.To.Email)
	}
	return out
}

type school struct {
	stores  *memory.Stores
	class   *model.Class
	teacher *model.User
	student *model.User
	parent  *model.User
	other   *model.User
}

func newSchool(t *testing.T) *school {
	t.Helper()
	ctx := context.Background()
	s := &school{stores: memory.New()}

	s.class = &model.Class{Name: "JSS1", AcademicYear: "2025/2026"}
	require.NoError(t, s.stores.Classes.Create(ctx, s.class))

	mk := func(email string, role model.Role, inClass bool) *model.User {
		u := &model.User{Email: email, Role: role, FirstName: email[:3], LastName: "Test"}
		if inClass {
			u.ClassID = &s.class.ID
		}
		require.NoError(t, s.stores.Users.Create(ctx, u))
		return u
	}
	s.teacher = mk("tom@school.test", model.RoleTeacher, true)
	s.student = mk("sam@school.test", model.RoleStudent, true)
	s.parent = mk("pat@school.test", model.RoleParent, false)
	s.other = mk("oli@school.test", model.RoleStudent, false)
	require.NoError(t, s.stores.ParentLinks.Link(ctx, s.parent.ID, s.student.ID))
	return s
}

func (s *school) worker(mailer notification.Mailer) *NotificationWorker {
	return NewNotificationWorker(nil, s.stores.Users, s.stores.ParentLinks, mailer, zerolog.Nop())
}

func emails(users []model.User) []string {
	out := make([]string, 0, len(users))
	for _, u := range users {
		out = append(out, u.Email)
	}
	return out
}

func TestRecipients_ClassMembersAndLinkedParents(t *testing.T) {
	s := newSchool(t)
	w := s.worker(&recordingMailer{})

	got, err := w.Recipients(context.Background(), model.Notification{
		Kind:     model.NotificationAnnouncement,
		ClassIDs: []uuid.UUID{s.class.ID},
	})
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"tom@school.test", "sam@school.test", "pat@school.test"}, emails(got))
}

func TestRecipients_DeduplicatesUsers(t *testing.T) {
	s := newSchool(t)
	w := s.worker(&recordingMailer{})

	got, err := w.Recipients(context.Background(), model.Notification{
		Kind:     model.NotificationPaymentReceived,
		UserIDs:  []uuid.UUID{s.student.ID, s.parent.ID},
		ClassIDs: []uuid.UUID{s.class.ID},
	})
	require.NoError(t, err)
	assert.Len(t, got, 3)
}

func TestDeliver_RendersAndContinuesAfterFailure(t *testing.T) {
	s := newSchool(t)
	mailer := &recordingMailer{failTo: "tom@school.test"}
	w := s.worker(mailer)

	w.Deliver(context.Background(), []model.Notification{
		{
			Kind:     model.NotificationAnnouncement,
			Subject:  "Sports day",
			Body:     "Friday at noon.",
			ClassIDs: []uuid.UUID{s.class.ID},
		},
		{
			Kind:    model.NotificationPaymentReceived,
			Subject: "Payment received",
			Body:    "Thanks.",
			UserIDs: []uuid.UUID{s.other.ID},
		},
	})

	assert.ElementsMatch(t, []string{"sam@school.test", "pat@school.test", "oli@school.test"}, mailer.recipients())

	var toSam notification.Mail
	for _, m := range mailer.sent {
		if m.To.Email == "sam@school.test" {
			toSam = m
		}
	}
	assert.Equal(t, "Sports day", toSam.Subject)
	assert.Equal(t, "Hello sam,\n\nFriday at noon.\n", toSam.Text)
	assert.Equal(t, "sam Test", toSam.To.Name)
}
