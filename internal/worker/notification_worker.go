package worker

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/educonnect/educonnect-backend/internal/config"
	"github.com/educonnect/educonnect-backend/internal/model"
	"github.com/educonnect/educonnect-backend/internal/notification"
	"github.com/educonnect/educonnect-backend/internal/service"
)

const (
	BatchSize    = 25
	BatchTimeout = 2 * time.Second
	PollTimeout  = 1 * time.Second // Must be >= 1s to satisfy Redis
)

// NotificationWorker drains the notification queue, resolves recipients and
// hands rendered mails to the Mailer. Failed sends are logged, not retried.
type NotificationWorker struct {
	rdb    *redis.Client
	users  service.UserStore
	links  service.ParentLinkStore
	mailer notification.Mailer
	log    zerolog.Logger
}

func NewNotificationWorker(rdb *redis.Client, users service.UserStore, links service.ParentLinkStore, mailer notification.Mailer, log zerolog.Logger) *NotificationWorker {
	return &NotificationWorker{
		rdb:    rdb,
		users:  users,
		links:  links,
		mailer: mailer,
		log:    log.With().Str("component", "notification_worker").Logger(),
	}
}

func (w *NotificationWorker) Start(ctx context.Context) {
	w.log.Info().Msg("NotificationWorker started")

	buffer := make([]model.Notification, 0, BatchSize)
	lastFlushTime := time.Now()

	for {
		// 1. Flush on size or age
		if len(buffer) > 0 {
			if len(buffer) >= BatchSize || time.Since(lastFlushTime) >= BatchTimeout {
				w.Deliver(ctx, buffer)
				buffer = buffer[:0]
				lastFlushTime = time.Now()
			}
		}

		// 2. Graceful shutdown
		select {
		case <-ctx.Done():
			w.shutdown(buffer)
			return
		default:
		}

		// 3. BLPop blocks for PollTimeout, returns immediately if data exists.
		result, err := w.rdb.BLPop(ctx, PollTimeout, config.WorkerKey.NotificationsQueue).Result()
		if err != nil {
			if err == redis.Nil {
				continue
			}
			if ctx.Err() != nil {
				w.shutdown(buffer)
				return
			}
			w.log.Error().Err(err).Msg("Redis connection error, sleeping 3s")
			time.Sleep(3 * time.Second)
			continue
		}

		if len(result) < 2 {
			continue
		}

		var n model.Notification
		if err := json.Unmarshal([]byte(result[1]), &n); err != nil {
			w.log.Error().Err(err).Str("data", result[1]).Msg("Discarding malformed notification")
			continue
		}
		buffer = append(buffer, n)
	}
}

// Deliver sends every notification in batch to its resolved recipients.
func (w *NotificationWorker) Deliver(ctx context.Context, batch []model.Notification) {
	sent, failed := 0, 0
	for _, n := range batch {
		recipients, err := w.Recipients(ctx, n)
		if err != nil {
			w.log.Error().Err(err).Str("kind", string(n.Kind)).Msg("Resolve recipients failed, dropping notification")
			failed++
			continue
		}
		for _, u := range recipients {
			if err := w.mailer.Send(ctx, render(n, u)); err != nil {
				w.log.Error().Err(err).Str("to", u.Email).Str("kind", string(n.Kind)).Msg("Send failed")
				failed++
				continue
			}
			sent++
		}
	}
	w.log.Debug().Int("notifications", len(batch)).Int("sent", sent).Int("failed", failed).Msg("Batch delivered")
}

// Recipients resolves the users a notification goes to: the listed users and
// every member of the listed classes, plus the linked parents of any student
// among them. Each user appears once.
func (w *NotificationWorker) Recipients(ctx context.Context, n model.Notification) ([]model.User, error) {
	seen := make(map[uuid.UUID]bool)
	var out []model.User

	add := func(users []model.User) {
		for _, u := range users {
			if !seen[u.ID] {
				seen[u.ID] = true
				out = append(out, u)
			}
		}
	}

	if len(n.UserIDs) > 0 {
		users, err := w.users.ListByIDs(ctx, n.UserIDs)
		if err != nil {
			return nil, fmt.Errorf("list users: %w", err)
		}
		add(users)
	}
	for _, classID := range n.ClassIDs {
		members, err := w.users.ListByClass(ctx, classID, "")
		if err != nil {
			return nil, fmt.Errorf("list class %s: %w", classID, err)
		}
		add(members)
	}

	var parentIDs []uuid.UUID
	for _, u := range out {
		if u.Role != model.RoleStudent {
			continue
		}
		ids, err := w.links.ParentIDs(ctx, u.ID)
		if err != nil {
			return nil, fmt.Errorf("list parents of %s: %w", u.ID, err)
		}
		for _, id := range ids {
			if !seen[id] {
				parentIDs = append(parentIDs, id)
			}
		}
	}
	if len(parentIDs) > 0 {
		parents, err := w.users.ListByIDs(ctx, parentIDs)
		if err != nil {
			return nil, fmt.Errorf("list parents: %w", err)
		}
		add(parents)
	}
	return out, nil
}

func render(n model.Notification, to model.User) notification.Mail {
	var b strings.Builder
	fmt.Fprintf(&b, "Hello %s,\n\n", to.FirstName)
	b.WriteString(n.Body)
	b.WriteString("\n")
	return notification.Mail{
		To:      notification.Recipient{Name: to.FullName(), Email: to.Email},
		Subject: n.Subject,
		Text:    b.String(),
	}
}

func (w *NotificationWorker) shutdown(buffer []model.Notification) {
	w.log.Info().Msg("Worker stopping, flushing remaining buffer...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if len(buffer) > 0 {
		w.Deliver(shutdownCtx, buffer)
	}
}
