// Package memory provides in-memory implementations of the service stores.
// They mirror the PostgreSQL constraints (unique keys, foreign keys, upserts)
// closely enough to exercise the services without a database.
package memory

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/educonnect/educonnect-backend/internal/model"
)

type edge struct {
	parentID, childID uuid.UUID
}

type attendanceKey struct {
	studentID uuid.UUID
	date      string
}

// db holds every table behind one lock.
type db struct {
	mu sync.RWMutex

	users         map[uuid.UUID]*model.User
	links         []edge
	classes       map[uuid.UUID]*model.Class
	timetable     []*model.TimetableEntry
	attendance    map[attendanceKey]*model.Attendance
	grades        map[uuid.UUID]*model.Grade
	fees          map[uuid.UUID]*model.FeeStructure
	invoices      map[uuid.UUID]*model.Invoice
	transactions  map[uuid.UUID]*model.Transaction
	announcements map[uuid.UUID]*model.Announcement
	events        []*model.CalendarEvent
	conversations map[uuid.UUID]*conversation
	health        map[uuid.UUID]*model.HealthRecord
	settings      map[string]*model.AppSetting

	now func() time.Time
	seq int64
}

type conversation struct {
	id           uuid.UUID
	createdAt    time.Time
	participants []uuid.UUID
	messages     []model.Message
}

// Stores bundles one in-memory implementation per service store.
type Stores struct {
	Users         *UserRepository
	ParentLinks   *ParentLinkRepository
	Classes       *ClassRepository
	Timetables    *TimetableRepository
	Attendance    *AttendanceRepository
	Grades        *GradeRepository
	FeeStructures *FeeStructureRepository
	Invoices      *InvoiceRepository
	Transactions  *TransactionRepository
	Announcements *AnnouncementRepository
	Calendar      *CalendarRepository
	Conversations *ConversationRepository
	HealthRecords *HealthRecordRepository
	Settings      *SettingRepository
	Dashboard     *DashboardRepository
}

// New creates an empty set of stores sharing one dataset.
func New() *Stores {
	d := &db{
		users:         make(map[uuid.UUID]*model.User),
		classes:       make(map[uuid.UUID]*model.Class),
		attendance:    make(map[attendanceKey]*model.Attendance),
		grades:        make(map[uuid.UUID]*model.Grade),
		fees:          make(map[uuid.UUID]*model.FeeStructure),
		invoices:      make(map[uuid.UUID]*model.Invoice),
		transactions:  make(map[uuid.UUID]*model.Transaction),
		announcements: make(map[uuid.UUID]*model.Announcement),
		conversations: make(map[uuid.UUID]*conversation),
		health:        make(map[uuid.UUID]*model.HealthRecord),
		settings:      make(map[string]*model.AppSetting),
		now:           time.Now,
	}
	return &Stores{
		Users:         &UserRepository{d},
		ParentLinks:   &ParentLinkRepository{d},
		Classes:       &ClassRepository{d},
		Timetables:    &TimetableRepository{d},
		Attendance:    &AttendanceRepository{d},
		Grades:        &GradeRepository{d},
		FeeStructures: &FeeStructureRepository{d},
		Invoices:      &InvoiceRepository{d},
		Transactions:  &TransactionRepository{d},
		Announcements: &AnnouncementRepository{d},
		Calendar:      &CalendarRepository{d},
		Conversations: &ConversationRepository{d},
		HealthRecords: &HealthRecordRepository{d},
		Settings:      &SettingRepository{d},
		Dashboard:     &DashboardRepository{d},
	}
}

// tick returns a strictly increasing timestamp so ordering by time is stable.
// Callers must hold the write lock.
func (d *db) tick() time.Time {
	d.seq++
	return d.now().UTC().Add(time.Duration(d.seq) * time.Microsecond)
}
