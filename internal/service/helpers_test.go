package service

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/educonnect/educonnect-backend/internal/model"
	"github.com/educonnect/educonnect-backend/internal/repository/memory"
)

var nopLog = zerolog.Nop()

type fakeEnqueuer struct {
	mu   sync.Mutex
	sent []model.Notification
	err  error
}

func (f *fakeEnqueuer) Enqueue(_ context.Context, n model.Notification) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, n)
	return nil
}

type published struct {
	channel string
	payload []byte
}

type fakePublisher struct {
	mu   sync.Mutex
	sent []published
}

func (f *fakePublisher) Publish(_ context.Context, channel string, payload []byte) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sent = append(f.sent, published{channel: channel, payload: payload})
	return nil
}

func (f *fakePublisher) channels() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]string, 0, len(f.sent))
	for _, p := range f.sent {
		out = append(out, p.channel)
	}
	return out
}

var userSeq int

func seedUser(t *testing.T, stores *memory.Stores, role model.Role, first string) *model.User {
	t.Helper()
	userSeq++
	u := &model.User{
		Email:        fmt.Sprintf("%s.%d@school.test", first, userSeq),
		PasswordHash: "x",
		Role:         role,
		FirstName:    first,
		LastName:     "Test",
	}
	require.NoError(t, stores.Users.Create(context.Background(), u))
	return u
}

func seedClass(t *testing.T, stores *memory.Stores, name string) *model.Class {
	t.Helper()
	c := &model.Class{Name: name, AcademicYear: "2025/2026"}
	require.NoError(t, stores.Classes.Create(context.Background(), c))
	return c
}

func principalOf(u *model.User) model.Principal {
	return model.Principal{UserID: u.ID, Email: u.Email, Role: u.Role, Name: u.FullName()}
}

func ids(us ...*model.User) []uuid.UUID {
	out := make([]uuid.UUID, 0, len(us))
	for _, u := range us {
		out = append(out, u.ID)
	}
	return out
}
