package memory

import (
	"context"
	"sort"

	"github.com/google/uuid"

	"github.com/educonnect/educonnect-backend/internal/model"
	"github.com/educonnect/educonnect-backend/internal/repository"
)

// ClassRepository is the in-memory class store.
type ClassRepository struct {
	db *db
}

func (r *ClassRepository) Create(_ context.Context, c *model.Class) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	for _, existing := range r.db.classes {
		if existing.Name == c.Name {
			return repository.ErrDuplicate
		}
	}
	c.ID = uuid.New()
	c.CreatedAt = r.db.tick()
	c.UpdatedAt = c.CreatedAt
	stored := *c
	r.db.classes[c.ID] = &stored
	return nil
}

func (r *ClassRepository) GetByID(_ context.Context, id uuid.UUID) (*model.Class, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	c, ok := r.db.classes[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	out := *c
	out.StudentCount = r.db.rosterSize(id)
	return &out, nil
}

func (r *ClassRepository) List(_ context.Context) ([]model.Class, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	out := make([]model.Class, 0, len(r.db.classes))
	for _, c := range r.db.classes {
		cp := *c
		cp.StudentCount = r.db.rosterSize(c.ID)
		out = append(out, cp)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].AcademicYear != out[j].AcademicYear {
			return out[i].AcademicYear > out[j].AcademicYear
		}
		return out[i].Name < out[j].Name
	})
	return out, nil
}

// rosterSize counts students assigned to the class. Callers hold mu.
func (d *db) rosterSize(classID uuid.UUID) int {
	n := 0
	for _, u := range d.users {
		if u.Role == model.RoleStudent && u.ClassID != nil && *u.ClassID == classID {
			n++
		}
	}
	return n
}

// TimetableRepository is the in-memory timetable store.
type TimetableRepository struct {
	db *db
}

var weekdayIndex = map[model.DayOfWeek]int{
	model.Monday: 0, model.Tuesday: 1, model.Wednesday: 2, model.Thursday: 3,
	model.Friday: 4, model.Saturday: 5, model.Sunday: 6,
}

func (r *TimetableRepository) Create(_ context.Context, e *model.TimetableEntry) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	if _, ok := r.db.classes[e.ClassID]; !ok {
		return repository.ErrForeignKey
	}
	if _, ok := r.db.users[e.TeacherID]; !ok {
		return repository.ErrForeignKey
	}
	e.ID = uuid.New()
	e.CreatedAt = r.db.tick()
	stored := *e
	r.db.timetable = append(r.db.timetable, &stored)
	return nil
}

func (r *TimetableRepository) ListByClass(_ context.Context, classID uuid.UUID) ([]model.TimetableEntry, error) {
	return r.filter(func(e *model.TimetableEntry) bool { return e.ClassID == classID }), nil
}

func (r *TimetableRepository) ListByTeacher(_ context.Context, teacherID uuid.UUID) ([]model.TimetableEntry, error) {
	return r.filter(func(e *model.TimetableEntry) bool { return e.TeacherID == teacherID }), nil
}

func (r *TimetableRepository) filter(keep func(*model.TimetableEntry) bool) []model.TimetableEntry {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	out := make([]model.TimetableEntry, 0)
	for _, e := range r.db.timetable {
		if keep(e) {
			out = append(out, *e)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		di, dj := weekdayIndex[out[i].DayOfWeek], weekdayIndex[out[j].DayOfWeek]
		if di != dj {
			return di < dj
		}
		return out[i].StartTime < out[j].StartTime
	})
	return out
}

// AttendanceRepository is the in-memory attendance store keyed by (student, date).
type AttendanceRepository struct {
	db *db
}

func (r *AttendanceRepository) Upsert(_ context.Context, a *model.Attendance) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	if _, ok := r.db.users[a.StudentID]; !ok {
		return repository.ErrForeignKey
	}

	key := attendanceKey{studentID: a.StudentID, date: a.Date.String()}
	now := r.db.tick()
	if existing, ok := r.db.attendance[key]; ok {
		existing.Status = a.Status
		existing.TeacherID = a.TeacherID
		existing.UpdatedAt = now
		*a = *existing
		return nil
	}

	a.ID = uuid.New()
	a.CreatedAt = now
	a.UpdatedAt = now
	stored := *a
	r.db.attendance[key] = &stored
	return nil
}

func (r *AttendanceRepository) ListByDate(_ context.Context, date model.Date) ([]model.Attendance, error) {
	out := r.filter(func(a *model.Attendance) bool { return a.Date.Equal(date) })
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (r *AttendanceRepository) ListByStudent(_ context.Context, studentID uuid.UUID) ([]model.Attendance, error) {
	out := r.filter(func(a *model.Attendance) bool { return a.StudentID == studentID })
	sort.Slice(out, func(i, j int) bool { return out[i].Date.After(out[j].Date) })
	return out, nil
}

func (r *AttendanceRepository) filter(keep func(*model.Attendance) bool) []model.Attendance {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	out := make([]model.Attendance, 0)
	for _, a := range r.db.attendance {
		if keep(a) {
			out = append(out, *a)
		}
	}
	return out
}

// GradeRepository is the in-memory grade store.
type GradeRepository struct {
	db *db
}

func (r *GradeRepository) Create(_ context.Context, g *model.Grade) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	if _, ok := r.db.users[g.StudentID]; !ok {
		return repository.ErrForeignKey
	}
	g.ID = uuid.New()
	g.RecordedAt = r.db.tick()
	g.UpdatedAt = g.RecordedAt
	stored := *g
	r.db.grades[g.ID] = &stored
	return nil
}

func (r *GradeRepository) GetByID(_ context.Context, id uuid.UUID) (*model.Grade, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	g, ok := r.db.grades[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	out := *g
	return &out, nil
}

func (r *GradeRepository) ListByStudent(_ context.Context, studentID uuid.UUID) ([]model.Grade, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	out := make([]model.Grade, 0)
	for _, g := range r.db.grades {
		if g.StudentID == studentID {
			out = append(out, *g)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].RecordedAt.After(out[j].RecordedAt) })
	return out, nil
}

func (r *GradeRepository) Update(_ context.Context, g *model.Grade) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	existing, ok := r.db.grades[g.ID]
	if !ok {
		return repository.ErrNotFound
	}
	existing.Subject = g.Subject
	existing.Assessment = g.Assessment
	existing.Score = g.Score
	existing.UpdatedAt = r.db.tick()
	g.UpdatedAt = existing.UpdatedAt
	return nil
}

func (r *GradeRepository) Delete(_ context.Context, id uuid.UUID) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	if _, ok := r.db.grades[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.db.grades, id)
	return nil
}
