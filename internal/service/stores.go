package service

import (
	"context"

	"github.com/google/uuid"

	"github.com/educonnect/educonnect-backend/internal/model"
	"github.com/educonnect/educonnect-backend/internal/repository"
)

// Store interfaces consumed by the services. PostgreSQL implementations live
// in internal/repository and in-memory ones in internal/repository/memory.
// Lookups of missing rows return repository.ErrNotFound.

// UserStore persists user accounts.
type UserStore interface {
	Create(ctx context.Context, u *model.User) error
	GetByID(ctx context.Context, id uuid.UUID) (*model.User, error)
	GetByEmail(ctx context.Context, email string) (*model.User, error)
	ListByIDs(ctx context.Context, ids []uuid.UUID) ([]model.User, error)
	List(ctx context.Context, filter model.UserFilter) ([]model.User, int, error)
	Search(ctx context.Context, role model.Role, q string, limit int) ([]model.User, error)
	ListByClass(ctx context.Context, classID uuid.UUID, role model.Role) ([]model.User, error)
	Update(ctx context.Context, u *model.User) error
	SetClass(ctx context.Context, userID, classID uuid.UUID) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// ParentLinkStore persists the parent→child edge list.
type ParentLinkStore interface {
	Link(ctx context.Context, parentID, childID uuid.UUID) error
	IsLinked(ctx context.Context, parentID, childID uuid.UUID) (bool, error)
	ChildIDs(ctx context.Context, parentID uuid.UUID) ([]uuid.UUID, error)
	ParentIDs(ctx context.Context, childID uuid.UUID) ([]uuid.UUID, error)
}

// ClassStore persists classes.
type ClassStore interface {
	Create(ctx context.Context, c *model.Class) error
	GetByID(ctx context.Context, id uuid.UUID) (*model.Class, error)
	List(ctx context.Context) ([]model.Class, error)
}

// TimetableStore persists timetable entries.
type TimetableStore interface {
	Create(ctx context.Context, e *model.TimetableEntry) error
	ListByClass(ctx context.Context, classID uuid.UUID) ([]model.TimetableEntry, error)
	ListByTeacher(ctx context.Context, teacherID uuid.UUID) ([]model.TimetableEntry, error)
}

// AttendanceStore persists roll-call results.
type AttendanceStore interface {
	// Upsert inserts or overwrites the row for (StudentID, Date).
	Upsert(ctx context.Context, a *model.Attendance) error
	ListByDate(ctx context.Context, date model.Date) ([]model.Attendance, error)
	ListByStudent(ctx context.Context, studentID uuid.UUID) ([]model.Attendance, error)
}

// GradeStore persists grades.
type GradeStore interface {
	Create(ctx context.Context, g *model.Grade) error
	GetByID(ctx context.Context, id uuid.UUID) (*model.Grade, error)
	ListByStudent(ctx context.Context, studentID uuid.UUID) ([]model.Grade, error)
	Update(ctx context.Context, g *model.Grade) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// FeeStructureStore persists fee structures.
type FeeStructureStore interface {
	Create(ctx context.Context, f *model.FeeStructure) error
	GetByID(ctx context.Context, id uuid.UUID) (*model.FeeStructure, error)
	List(ctx context.Context) ([]model.FeeStructure, error)
}

// InvoiceStore persists invoices. Reads join the fee structure for name and amount.
type InvoiceStore interface {
	Create(ctx context.Context, inv *model.Invoice) error
	GetByID(ctx context.Context, id uuid.UUID) (*model.Invoice, error)
	List(ctx context.Context, filter model.InvoiceFilter) ([]model.Invoice, error)
	MarkPaid(ctx context.Context, id uuid.UUID, paidAt model.Date) error
	// MarkOverdue flips unpaid invoices due before today and returns how many changed.
	MarkOverdue(ctx context.Context, today model.Date) (int64, error)
}

// TransactionStore persists payment attempts.
type TransactionStore interface {
	Create(ctx context.Context, t *model.Transaction) error
	GetByReference(ctx context.Context, reference string) (*model.Transaction, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status model.TransactionStatus) error
	List(ctx context.Context) ([]model.Transaction, error)
}

// AnnouncementStore persists announcements and their target classes.
type AnnouncementStore interface {
	Create(ctx context.Context, a *model.Announcement) error
	GetByID(ctx context.Context, id uuid.UUID) (*model.Announcement, error)
	// ListApproved returns approved announcements, restricted to classID when non-nil.
	ListApproved(ctx context.Context, classID *uuid.UUID) ([]model.Announcement, error)
	ListPending(ctx context.Context) ([]model.Announcement, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status model.AnnouncementStatus, approverID *uuid.UUID) error
}

// CalendarStore persists calendar events.
type CalendarStore interface {
	Create(ctx context.Context, e *model.CalendarEvent) error
	// ListRange returns events overlapping [from, to]; nil bounds are open.
	ListRange(ctx context.Context, from, to *model.Date) ([]model.CalendarEvent, error)
}

// ConversationStore persists conversations and messages.
type ConversationStore interface {
	Create(ctx context.Context, participantIDs []uuid.UUID) (*model.Conversation, error)
	ParticipantIDs(ctx context.Context, conversationID uuid.UUID) ([]uuid.UUID, error)
	AddMessage(ctx context.Context, m *model.Message) error
	ListForUser(ctx context.Context, userID uuid.UUID) ([]model.Conversation, error)
}

// HealthRecordStore persists one health record per student.
type HealthRecordStore interface {
	Upsert(ctx context.Context, h *model.HealthRecord) error
	GetByStudent(ctx context.Context, studentID uuid.UUID) (*model.HealthRecord, error)
}

// SettingStore persists the school key/value settings.
type SettingStore interface {
	GetAll(ctx context.Context) ([]model.AppSetting, error)
	GetByKey(ctx context.Context, key string) (*model.AppSetting, error)
	Upsert(ctx context.Context, key, value string) error
}

// DashboardStore computes the admin dashboard counters.
type DashboardStore interface {
	Stats(ctx context.Context) (*model.DashboardStats, error)
}

// Publisher fans out realtime events to subscribers of a channel.
type Publisher interface {
	Publish(ctx context.Context, channel string, payload []byte) error
}

// Enqueuer hands a notification to the background worker.
type Enqueuer interface {
	Enqueue(ctx context.Context, n model.Notification) error
}

var (
	_ UserStore         = (*repository.UserRepository)(nil)
	_ ParentLinkStore   = (*repository.ParentLinkRepository)(nil)
	_ ClassStore        = (*repository.ClassRepository)(nil)
	_ TimetableStore    = (*repository.TimetableRepository)(nil)
	_ AttendanceStore   = (*repository.AttendanceRepository)(nil)
	_ GradeStore        = (*repository.GradeRepository)(nil)
	_ FeeStructureStore = (*repository.FeeStructureRepository)(nil)
	_ InvoiceStore      = (*repository.InvoiceRepository)(nil)
	_ TransactionStore  = (*repository.TransactionRepository)(nil)
	_ AnnouncementStore = (*repository.AnnouncementRepository)(nil)
	_ CalendarStore     = (*repository.CalendarRepository)(nil)
	_ ConversationStore = (*repository.ConversationRepository)(nil)
	_ HealthRecordStore = (*repository.HealthRecordRepository)(nil)
	_ SettingStore      = (*repository.SettingRepository)(nil)
	_ DashboardStore    = (*repository.DashboardRepository)(nil)
)
