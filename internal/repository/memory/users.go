package memory

import (
	"context"
	"sort"
	"strings"

	"github.com/google/uuid"

	"github.com/educonnect/educonnect-backend/internal/model"
	"github.com/educonnect/educonnect-backend/internal/repository"
)

// UserRepository is the in-memory user store.
type UserRepository struct {
	db *db
}

func cloneUser(u *model.User) model.User {
	c := *u
	if u.ClassID != nil {
		id := *u.ClassID
		c.ClassID = &id
	}
	return c
}

func sortUsers(users []model.User) {
	sort.Slice(users, func(i, j int) bool {
		if users[i].LastName != users[j].LastName {
			return users[i].LastName < users[j].LastName
		}
		if users[i].FirstName != users[j].FirstName {
			return users[i].FirstName < users[j].FirstName
		}
		return users[i].CreatedAt.Before(users[j].CreatedAt)
	})
}

func (r *UserRepository) emailTaken(email string, except uuid.UUID) bool {
	for _, u := range r.db.users {
		if u.ID != except && u.Email == email {
			return true
		}
	}
	return false
}

func (r *UserRepository) Create(_ context.Context, u *model.User) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	if r.emailTaken(u.Email, uuid.Nil) {
		return repository.ErrDuplicate
	}
	if u.ClassID != nil {
		if _, ok := r.db.classes[*u.ClassID]; !ok {
			return repository.ErrForeignKey
		}
	}

	u.ID = uuid.New()
	u.CreatedAt = r.db.tick()
	u.UpdatedAt = u.CreatedAt
	stored := cloneUser(u)
	r.db.users[u.ID] = &stored
	return nil
}

func (r *UserRepository) GetByID(_ context.Context, id uuid.UUID) (*model.User, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	u, ok := r.db.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	c := cloneUser(u)
	return &c, nil
}

func (r *UserRepository) GetByEmail(_ context.Context, email string) (*model.User, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	for _, u := range r.db.users {
		if u.Email == email {
			c := cloneUser(u)
			return &c, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *UserRepository) ListByIDs(_ context.Context, ids []uuid.UUID) ([]model.User, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	out := make([]model.User, 0, len(ids))
	seen := make(map[uuid.UUID]bool, len(ids))
	for _, id := range ids {
		if u, ok := r.db.users[id]; ok && !seen[id] {
			seen[id] = true
			out = append(out, cloneUser(u))
		}
	}
	return out, nil
}

func (r *UserRepository) List(_ context.Context, filter model.UserFilter) ([]model.User, int, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	all := make([]model.User, 0, len(r.db.users))
	for _, u := range r.db.users {
		if filter.Role == "" || u.Role == filter.Role {
			all = append(all, cloneUser(u))
		}
	}
	sortUsers(all)

	total := len(all)
	start := filter.Offset
	if start > total {
		start = total
	}
	end := total
	if filter.Limit > 0 && start+filter.Limit < total {
		end = start + filter.Limit
	}
	return all[start:end], total, nil
}

func (r *UserRepository) Search(_ context.Context, role model.Role, q string, limit int) ([]model.User, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	needle := strings.ToLower(q)
	matches := make([]model.User, 0)
	for _, u := range r.db.users {
		if u.Role != role {
			continue
		}
		for _, field := range []string{u.Email, u.FirstName, u.MiddleName, u.LastName} {
			if strings.Contains(strings.ToLower(field), needle) {
				matches = append(matches, cloneUser(u))
				break
			}
		}
	}
	sortUsers(matches)
	if limit > 0 && len(matches) > limit {
		matches = matches[:limit]
	}
	return matches, nil
}

func (r *UserRepository) ListByClass(_ context.Context, classID uuid.UUID, role model.Role) ([]model.User, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	out := make([]model.User, 0)
	for _, u := range r.db.users {
		if u.ClassID != nil && *u.ClassID == classID && (role == "" || u.Role == role) {
			out = append(out, cloneUser(u))
		}
	}
	sortUsers(out)
	return out, nil
}

func (r *UserRepository) Update(_ context.Context, u *model.User) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	existing, ok := r.db.users[u.ID]
	if !ok {
		return repository.ErrNotFound
	}
	if r.emailTaken(u.Email, u.ID) {
		return repository.ErrDuplicate
	}
	if u.ClassID != nil {
		if _, ok := r.db.classes[*u.ClassID]; !ok {
			return repository.ErrForeignKey
		}
	}

	u.CreatedAt = existing.CreatedAt
	u.UpdatedAt = r.db.tick()
	stored := cloneUser(u)
	r.db.users[u.ID] = &stored
	return nil
}

func (r *UserRepository) SetClass(_ context.Context, userID, classID uuid.UUID) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	u, ok := r.db.users[userID]
	if !ok {
		return repository.ErrNotFound
	}
	if _, ok := r.db.classes[classID]; !ok {
		return repository.ErrForeignKey
	}
	id := classID
	u.ClassID = &id
	u.UpdatedAt = r.db.tick()
	return nil
}

// Delete removes the user and cascades to links and conversation membership.
func (r *UserRepository) Delete(_ context.Context, id uuid.UUID) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	if _, ok := r.db.users[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.db.users, id)

	kept := r.db.links[:0]
	for _, e := range r.db.links {
		if e.parentID != id && e.childID != id {
			kept = append(kept, e)
		}
	}
	r.db.links = kept

	for _, c := range r.db.conversations {
		c.participants = removeID(c.participants, id)
	}
	return nil
}

func removeID(ids []uuid.UUID, id uuid.UUID) []uuid.UUID {
	out := ids[:0]
	for _, v := range ids {
		if v != id {
			out = append(out, v)
		}
	}
	return out
}

// ParentLinkRepository is the in-memory parent→child edge list.
type ParentLinkRepository struct {
	db *db
}

func (r *ParentLinkRepository) Link(_ context.Context, parentID, childID uuid.UUID) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	if _, ok := r.db.users[parentID]; !ok {
		return repository.ErrForeignKey
	}
	if _, ok := r.db.users[childID]; !ok {
		return repository.ErrForeignKey
	}
	for _, e := range r.db.links {
		if e.parentID == parentID && e.childID == childID {
			return nil
		}
	}
	r.db.links = append(r.db.links, edge{parentID: parentID, childID: childID})
	return nil
}

func (r *ParentLinkRepository) IsLinked(_ context.Context, parentID, childID uuid.UUID) (bool, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	for _, e := range r.db.links {
		if e.parentID == parentID && e.childID == childID {
			return true, nil
		}
	}
	return false, nil
}

func (r *ParentLinkRepository) ChildIDs(_ context.Context, parentID uuid.UUID) ([]uuid.UUID, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	ids := make([]uuid.UUID, 0)
	for _, e := range r.db.links {
		if e.parentID == parentID {
			ids = append(ids, e.childID)
		}
	}
	return ids, nil
}

func (r *ParentLinkRepository) ParentIDs(_ context.Context, childID uuid.UUID) ([]uuid.UUID, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	ids := make([]uuid.UUID, 0)
	for _, e := range r.db.links {
		if e.childID == childID {
			ids = append(ids, e.parentID)
		}
	}
	return ids, nil
}
