package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/educonnect/educonnect-backend/internal/model"
	"github.com/educonnect/educonnect-backend/internal/repository"
	"github.com/educonnect/educonnect-backend/internal/repository/memory"
)

func TestRecordRollCall_UpsertsPerStudentAndDate(t *testing.T) {
	stores := memory.New()
	svc := NewAttendanceService(stores.Attendance, stores.Users)
	ctx := context.Background()

	teacher := seedUser(t, stores, model.RoleTeacher, "tom")
	student := seedUser(t, stores, model.RoleStudent, "sam")
	p := principalOf(teacher)

	_, err := svc.RecordRollCall(ctx, p, model.RollCallRequest{
		Date:    "2025-09-01",
		Records: []model.AttendanceRecord{{StudentID: student.ID, Status: model.AttendancePresent}},
	})
	require.NoError(t, err)

	saved, err := svc.RecordRollCall(ctx, p, model.RollCallRequest{
		Date:    "2025-09-01",
		Records: []model.AttendanceRecord{{StudentID: student.ID, Status: model.AttendanceAbsent}},
	})
	require.NoError(t, err)
	require.Len(t, saved, 1)

	rows, err := svc.ByDate(ctx, model.MustParseDate("2025-09-01"))
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, model.AttendanceAbsent, rows[0].Status)
	assert.Equal(t, saved[0].ID, rows[0].ID)

	_, err = svc.RecordRollCall(ctx, p, model.RollCallRequest{
		Date:    "2025-09-02",
		Records: []model.AttendanceRecord{{StudentID: student.ID, Status: model.AttendanceLate}},
	})
	require.NoError(t, err)

	history, err := svc.Mine(ctx, principalOf(student))
	require.NoError(t, err)
	assert.Len(t, history, 2)
}

func TestRecordRollCall_StopsAtFirstFailure(t *testing.T) {
	stores := memory.New()
	svc := NewAttendanceService(stores.Attendance, stores.Users)
	ctx := context.Background()

	teacher := seedUser(t, stores, model.RoleTeacher, "tom")
	first := seedUser(t, stores, model.RoleStudent, "sam")
	last := seedUser(t, stores, model.RoleStudent, "sue")

	saved, err := svc.RecordRollCall(ctx, principalOf(teacher), model.RollCallRequest{
		Date: "2025-09-01",
		Records: []model.AttendanceRecord{
			{StudentID: first.ID, Status: model.AttendancePresent},
			{StudentID: teacher.ID, Status: model.AttendancePresent},
			{StudentID: last.ID, Status: model.AttendancePresent},
		},
	})
	assert.ErrorIs(t, err, ErrRoleMismatch)
	assert.Len(t, saved, 1)

	rows, err := svc.ByDate(ctx, model.MustParseDate("2025-09-01"))
	require.NoError(t, err)
	assert.Len(t, rows, 1, "rows written before the failure stay written")
}

func TestGrades_Ownership(t *testing.T) {
	stores := memory.New()
	svc := NewGradeService(stores.Grades, stores.Users)
	ctx := context.Background()

	author := seedUser(t, stores, model.RoleTeacher, "tom")
	other := seedUser(t, stores, model.RoleTeacher, "tina")
	admin := seedUser(t, stores, model.RoleAdmin, "ann")
	student := seedUser(t, stores, model.RoleStudent, "sam")

	g, err := svc.Create(ctx, principalOf(author), model.CreateGradeRequest{
		StudentID: student.ID, Subject: " Maths ", Assessment: "Midterm", Score: "A",
	})
	require.NoError(t, err)
	assert.Equal(t, "Maths", g.Subject)
	assert.Equal(t, author.ID, g.TeacherID)

	score := "B"
	_, err = svc.Update(ctx, principalOf(other), g.ID, model.UpdateGradeRequest{Score: &score})
	assert.ErrorIs(t, err, ErrNotGradeOwner)
	assert.ErrorIs(t, svc.Delete(ctx, principalOf(other), g.ID), ErrNotGradeOwner)

	updated, err := svc.Update(ctx, principalOf(author), g.ID, model.UpdateGradeRequest{Score: &score})
	require.NoError(t, err)
	assert.Equal(t, "B", updated.Score)
	assert.Equal(t, "Maths", updated.Subject)

	require.NoError(t, svc.Delete(ctx, principalOf(admin), g.ID))

	_, err = svc.Update(ctx, principalOf(author), g.ID, model.UpdateGradeRequest{Score: &score})
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestGrades_StudentMustExist(t *testing.T) {
	stores := memory.New()
	svc := NewGradeService(stores.Grades, stores.Users)
	teacher := seedUser(t, stores, model.RoleTeacher, "tom")

	_, err := svc.Create(context.Background(), principalOf(teacher), model.CreateGradeRequest{
		StudentID: teacher.ID, Subject: "Maths", Assessment: "Quiz", Score: "9",
	})
	assert.ErrorIs(t, err, ErrRoleMismatch)
}

func TestTimetable_CreateAndMine(t *testing.T) {
	stores := memory.New()
	svc := NewTimetableService(stores.Timetables, stores.Classes, stores.Users)
	ctx := context.Background()

	class := seedClass(t, stores, "JSS 2B")
	teacher := seedUser(t, stores, model.RoleTeacher, "tom")
	student := seedUser(t, stores, model.RoleStudent, "sam")
	require.NoError(t, stores.Users.SetClass(ctx, student.ID, class.ID))

	req := func(day model.DayOfWeek, start, end string) model.CreateTimetableEntryRequest {
		return model.CreateTimetableEntryRequest{
			ClassID: class.ID, TeacherID: teacher.ID, DayOfWeek: day,
			StartTime: start, EndTime: end, Subject: "Maths",
		}
	}

	_, err := svc.Create(ctx, req(model.Wednesday, "10:00", "11:00"))
	require.NoError(t, err)
	// overlapping entries are accepted
	_, err = svc.Create(ctx, req(model.Monday, "09:00", "10:00"))
	require.NoError(t, err)
	_, err = svc.Create(ctx, req(model.Monday, "09:30", "10:30"))
	require.NoError(t, err)

	_, err = svc.Create(ctx, req(model.Monday, "11:00", "11:00"))
	assert.ErrorIs(t, err, ErrInvalidTimeRange)

	bad := req(model.Friday, "08:00", "09:00")
	bad.TeacherID = student.ID
	_, err = svc.Create(ctx, bad)
	assert.ErrorIs(t, err, ErrRoleMismatch)

	mine, err := svc.Mine(ctx, principalOf(student))
	require.NoError(t, err)
	require.Len(t, mine, 3)
	assert.Equal(t, model.Monday, mine[0].DayOfWeek)
	assert.Equal(t, "09:00", mine[0].StartTime)
	assert.Equal(t, model.Wednesday, mine[2].DayOfWeek)

	taught, err := svc.Mine(ctx, principalOf(teacher))
	require.NoError(t, err)
	assert.Len(t, taught, 3)

	loner := seedUser(t, stores, model.RoleStudent, "lee")
	none, err := svc.Mine(ctx, principalOf(loner))
	require.NoError(t, err)
	assert.Empty(t, none)
}
