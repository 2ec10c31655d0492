package memory

import (
	"context"
	"sort"

	"github.com/google/uuid"

	"github.com/educonnect/educonnect-backend/internal/model"
	"github.com/educonnect/educonnect-backend/internal/repository"
)

// CalendarRepository is the in-memory calendar store.
type CalendarRepository struct {
	db *db
}

func (r *CalendarRepository) Create(_ context.Context, e *model.CalendarEvent) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	e.ID = uuid.New()
	e.CreatedAt = r.db.tick()
	stored := *e
	r.db.events = append(r.db.events, &stored)
	return nil
}

func (r *CalendarRepository) ListRange(_ context.Context, from, to *model.Date) ([]model.CalendarEvent, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	out := make([]model.CalendarEvent, 0)
	for _, e := range r.db.events {
		if from != nil && e.EndDate.Before(*from) {
			continue
		}
		if to != nil && e.StartDate.After(*to) {
			continue
		}
		out = append(out, *e)
	}
	sort.SliceStable(out, func(i, j int) bool {
		if !out[i].StartDate.Equal(out[j].StartDate) {
			return out[i].StartDate.Before(out[j].StartDate)
		}
		return out[i].Title < out[j].Title
	})
	return out, nil
}

// HealthRecordRepository is the in-memory health record store.
type HealthRecordRepository struct {
	db *db
}

func (r *HealthRecordRepository) Upsert(_ context.Context, h *model.HealthRecord) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	if _, ok := r.db.users[h.StudentID]; !ok {
		return repository.ErrForeignKey
	}
	if existing, ok := r.db.health[h.StudentID]; ok {
		h.ID = existing.ID
	} else {
		h.ID = uuid.New()
	}
	h.UpdatedAt = r.db.tick()
	stored := *h
	r.db.health[h.StudentID] = &stored
	return nil
}

func (r *HealthRecordRepository) GetByStudent(_ context.Context, studentID uuid.UUID) (*model.HealthRecord, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	h, ok := r.db.health[studentID]
	if !ok {
		return nil, repository.ErrNotFound
	}
	out := *h
	return &out, nil
}

// SettingRepository is the in-memory settings store.
type SettingRepository struct {
	db *db
}

func (r *SettingRepository) GetAll(_ context.Context) ([]model.AppSetting, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	out := make([]model.AppSetting, 0, len(r.db.settings))
	for _, s := range r.db.settings {
		out = append(out, *s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Key < out[j].Key })
	return out, nil
}

func (r *SettingRepository) GetByKey(_ context.Context, key string) (*model.AppSetting, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	s, ok := r.db.settings[key]
	if !ok {
		return nil, repository.ErrNotFound
	}
	out := *s
	return &out, nil
}

func (r *SettingRepository) Upsert(_ context.Context, key, value string) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	r.db.settings[key] = &model.AppSetting{Key: key, Value: value, UpdatedAt: r.db.tick()}
	return nil
}

// DashboardRepository computes dashboard counters over the in-memory tables.
type DashboardRepository struct {
	db *db
}

func (r *DashboardRepository) Stats(_ context.Context) (*model.DashboardStats, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	stats := &model.DashboardStats{
		UsersByRole:  make(map[model.Role]int),
		TotalClasses: len(r.db.classes),
	}
	for _, role := range model.AllRoles {
		stats.UsersByRole[role] = 0
	}
	for _, u := range r.db.users {
		stats.UsersByRole[u.Role]++
	}
	for _, inv := range r.db.invoices {
		switch inv.Status {
		case model.InvoiceUnpaid:
			stats.UnpaidInvoices++
		case model.InvoiceOverdue:
			stats.OverdueInvoices++
		}
	}
	for _, a := range r.db.announcements {
		if a.Status == model.AnnouncementPending {
			stats.PendingAnnouncements++
		}
	}
	for _, t := range r.db.transactions {
		if t.Status == model.TransactionSuccessful {
			stats.SuccessfulPaymentsSum += t.Amount
		}
	}
	return stats, nil
}
