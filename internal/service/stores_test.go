package service_test

import (
	"github.com/educonnect/educonnect-backend/internal/repository"
	"github.com/educonnect/educonnect-backend/internal/repository/memory"
	"github.com/educonnect/educonnect-backend/internal/service"
)

// Both store families satisfy the interfaces the services consume.
var (
	_ service.UserStore         = (*repository.UserRepository)(nil)
	_ service.ParentLinkStore   = (*repository.ParentLinkRepository)(nil)
	_ service.ClassStore        = (*repository.ClassRepository)(nil)
	_ service.TimetableStore    = (*repository.TimetableRepository)(nil)
	_ service.AttendanceStore   = (*repository.AttendanceRepository)(nil)
	_ service.GradeStore        = (*repository.GradeRepository)(nil)
	_ service.FeeStructureStore = (*repository.FeeStructureRepository)(nil)
	_ service.InvoiceStore      = (*repository.InvoiceRepository)(nil)
	_ service.TransactionStore  = (*repository.TransactionRepository)(nil)
	_ service.AnnouncementStore = (*repository.AnnouncementRepository)(nil)
	_ service.CalendarStore     = (*repository.CalendarRepository)(nil)
	_ service.ConversationStore = (*repository.ConversationRepository)(nil)
	_ service.HealthRecordStore = (*repository.HealthRecordRepository)(nil)
	_ service.SettingStore      = (*repository.SettingRepository)(nil)
	_ service.DashboardStore    = (*repository.DashboardRepository)(nil)
)

var (
	_ service.UserStore         = (*memory.UserRepository)(nil)
	_ service.ParentLinkStore   = (*memory.ParentLinkRepository)(nil)
	_ service.ClassStore        = (*memory.ClassRepository)(nil)
	_ service.TimetableStore    = (*memory.TimetableRepository)(nil)
	_ service.AttendanceStore   = (*memory.AttendanceRepository)(nil)
	_ service.GradeStore        = (*memory.GradeRepository)(nil)
	_ service.FeeStructureStore = (*memory.FeeStructureRepository)(nil)
	_ service.InvoiceStore      = (*memory.InvoiceRepository)(nil)
	_ service.TransactionStore  = (*memory.TransactionRepository)(nil)
	_ service.AnnouncementStore = (*memory.AnnouncementRepository)(nil)
	_ service.CalendarStore     = (*memory.CalendarRepository)(nil)
	_ service.ConversationStore = (*memory.ConversationRepository)(nil)
	_ service.HealthRecordStore = (*memory.HealthRecordRepository)(nil)
	_ service.SettingStore      = (*memory.SettingRepository)(nil)
	_ service.DashboardStore    = (*memory.DashboardRepository)(nil)
)
