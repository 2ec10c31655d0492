package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/educonnect/educonnect-backend/internal/model"
	"github.com/educonnect/educonnect-backend/internal/repository"
	"github.com/educonnect/educonnect-backend/internal/repository/memory"
)

func TestHealth_ParentAccess(t *testing.T) {
	stores := memory.New()
	svc := NewHealthService(stores.HealthRecords, stores.Users, stores.ParentLinks)
	ctx := context.Background()

	parent := seedUser(t, stores, model.RoleParent, "pat")
	child := seedUser(t, stores, model.RoleStudent, "sam")
	other := seedUser(t, stores, model.RoleStudent, "zed")
	require.NoError(t, stores.ParentLinks.Link(ctx, parent.ID, child.ID))

	for _, st := range []*model.User{child, other} {
		_, err := svc.Upsert(ctx, st.ID, model.UpsertHealthRecordRequest{
			BloodGroup: "o+", EmergencyContactName: "Pat", EmergencyContactPhone: "555-0100",
		})
		require.NoError(t, err)
	}

	rec, err := svc.Get(ctx, principalOf(parent), child.ID)
	require.NoError(t, err)
	assert.Equal(t, "O+", rec.BloodGroup)

	_, err = svc.Get(ctx, principalOf(parent), other.ID)
	assert.ErrorIs(t, err, ErrNotLinked)

	mine, err := svc.Mine(ctx, principalOf(other))
	require.NoError(t, err)
	assert.Equal(t, other.ID, mine.StudentID)
}

func TestHealth_UpsertReplaces(t *testing.T) {
	stores := memory.New()
	svc := NewHealthService(stores.HealthRecords, stores.Users, stores.ParentLinks)
	ctx := context.Background()
	student := seedUser(t, stores, model.RoleStudent, "sam")

	_, err := svc.Upsert(ctx, student.ID, model.UpsertHealthRecordRequest{
		Allergies: "peanuts", EmergencyContactName: "Pat", EmergencyContactPhone: "555",
	})
	require.NoError(t, err)
	_, err = svc.Upsert(ctx, student.ID, model.UpsertHealthRecordRequest{
		EmergencyContactName: "Kim", EmergencyContactPhone: "556",
	})
	require.NoError(t, err)

	rec, err := svc.Mine(ctx, principalOf(student))
	require.NoError(t, err)
	assert.Empty(t, rec.Allergies)
	assert.Equal(t, "Kim", rec.EmergencyContactName)

	_, err = svc.Upsert(ctx, uuid.New(), model.UpsertHealthRecordRequest{EmergencyContactName: "x", EmergencyContactPhone: "123"})
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestCalendar_Ranges(t *testing.T) {
	stores := memory.New()
	svc := NewCalendarService(stores.Calendar)
	ctx := context.Background()
	admin := seedUser(t, stores, model.RoleAdmin, "ann")
	p := principalOf(admin)

	_, err := svc.Create(ctx, p, model.CreateCalendarEventRequest{
		Title: "Bad", StartDate: "2025-10-10", EndDate: "2025-10-09", Type: model.EventOther,
	})
	assert.ErrorIs(t, err, ErrInvalidTimeRange)

	_, err = svc.Create(ctx, p, model.CreateCalendarEventRequest{
		Title: "Midterm break", StartDate: "2025-10-20", EndDate: "2025-10-24", Type: model.EventHoliday,
	})
	require.NoError(t, err)
	_, err = svc.Create(ctx, p, model.CreateCalendarEventRequest{
		Title: "PTA", StartDate: "2025-11-05", EndDate: "2025-11-05", Type: model.EventMeeting,
	})
	require.NoError(t, err)

	all, err := svc.List(ctx, model.CalendarRangeQuery{})
	require.NoError(t, err)
	assert.Len(t, all, 2)

	overlap, err := svc.List(ctx, model.CalendarRangeQuery{From: "2025-10-22", To: "2025-10-31"})
	require.NoError(t, err)
	require.Len(t, overlap, 1)
	assert.Equal(t, "Midterm break", overlap[0].Title)

	later, err := svc.List(ctx, model.CalendarRangeQuery{From: "2025-11-01"})
	require.NoError(t, err)
	require.Len(t, later, 1)
	assert.Equal(t, "PTA", later[0].Title)

	_, err = svc.List(ctx, model.CalendarRangeQuery{From: "2025-11-01", To: "2025-10-01"})
	assert.ErrorIs(t, err, ErrInvalidTimeRange)
}

func TestSettings_PublicSubset(t *testing.T) {
	stores := memory.New()
	svc := NewSettingService(stores.Settings, nopLog)
	ctx := context.Background()

	all, err := svc.UpdateSettings(ctx, map[string]string{
		"school_name":           " Hillside ",
		"current_academic_year": "2025/2026",
		"paystack_mode":         "test",
	})
	require.NoError(t, err)
	assert.Len(t, all, 3)
	assert.Equal(t, "Hillside", all["school_name"])

	public, err := svc.PublicSettings(ctx)
	require.NoError(t, err)
	assert.Equal(t, map[string]string{
		"school_name":           "Hillside",
		"current_academic_year": "2025/2026",
	}, public)

	v, err := svc.GetSettingByKey(ctx, "paystack_mode")
	require.NoError(t, err)
	assert.Equal(t, "test", v)
}

func TestSettings_RejectsMalformedAcademicYear(t *testing.T) {
	stores := memory.New()
	svc := NewSettingService(stores.Settings, nopLog)
	ctx := context.Background()

	for _, year := range []string{"2025", "2025-2026", "2025/2027", "abcd/efgh"} {
		_, err := svc.UpdateSettings(ctx, map[string]string{
			"school_name":           "Hillside",
			"current_academic_year": year,
		})
		assert.ErrorIs(t, err, ErrInvalidSetting, year)
	}

	all, err := svc.GetAllSettings(ctx)
	require.NoError(t, err)
	assert.Empty(t, all, "nothing is written when a value is rejected")
}
