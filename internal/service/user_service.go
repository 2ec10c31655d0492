package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/educonnect/educonnect-backend/internal/model"
	"github.com/educonnect/educonnect-backend/internal/repository"
)

// SearchLimit caps directory search results.
const SearchLimit = 10

// UserService handles the user directory: accounts, parent links and promotion.
type UserService struct {
	users   UserStore
	links   ParentLinkStore
	classes ClassStore
	auth    *AuthService
	log     zerolog.Logger
}

// NewUserService creates a new UserService.
func NewUserService(users UserStore, links ParentLinkStore, classes ClassStore, auth *AuthService, log zerolog.Logger) *UserService {
	return &UserService{
		users:   users,
		links:   links,
		classes: classes,
		auth:    auth,
		log:     log.With().Str("component", "user_service").Logger(),
	}
}

// NormalizeEmail lower-cases and trims an email address.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Create registers a new account. Duplicate emails yield repository.ErrDuplicate.
func (s *UserService) Create(ctx context.Context, req model.CreateUserRequest) (*model.User, error) {
	if req.ClassID != nil {
		if _, err := s.classes.GetByID(ctx, *req.ClassID); err != nil {
			return nil, fmt.Errorf("get class: %w", err)
		}
	}

	hash, err := s.auth.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &model.User{
		Email:        NormalizeEmail(req.Email),
		PasswordHash: hash,
		Role:         req.Role,
		FirstName:    strings.TrimSpace(req.FirstName),
		MiddleName:   strings.TrimSpace(req.MiddleName),
		LastName:     strings.TrimSpace(req.LastName),
		Phone:        strings.TrimSpace(req.Phone),
		ClassID:      req.ClassID,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}

	s.log.Info().Str("user_id", user.ID.String()).Str("role", string(user.Role)).Msg("user created")
	return user, nil
}

// GetByID retrieves a user.
func (s *UserService) GetByID(ctx context.Context, id uuid.UUID) (*model.User, error) {
	return s.users.GetByID(ctx, id)
}

// List returns one page of users and the total count.
func (s *UserService) List(ctx context.Context, role model.Role, page, perPage int) ([]model.User, int, error) {
	return s.users.List(ctx, model.UserFilter{
		Role:   role,
		Limit:  perPage,
		Offset: (page - 1) * perPage,
	})
}

// Search matches q against email and names among users of one role, at most SearchLimit results.
func (s *UserService) Search(ctx context.Context, role model.Role, q string) ([]model.User, error) {
	q = strings.TrimSpace(q)
	if q == "" {
		return []model.User{}, nil
	}
	return s.users.Search(ctx, role, q, SearchLimit)
}

// Update applies a partial patch; the password is re-hashed when present.
func (s *UserService) Update(ctx context.Context, id uuid.UUID, req model.UpdateUserRequest) (*model.User, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	patch := model.UserPatch{
		Role:       req.Role,
		FirstName:  req.FirstName,
		MiddleName: req.MiddleName,
		LastName:   req.LastName,
		Phone:      req.Phone,
	}
	if req.Email != nil {
		email := NormalizeEmail(*req.Email)
		patch.Email = &email
	}
	if req.Password != nil {
		hash, err := s.auth.HashPassword(*req.Password)
		if err != nil {
			return nil, fmt.Errorf("hash password: %w", err)
		}
		patch.PasswordHash = &hash
	}
	if req.ClassID.Set {
		if req.ClassID.ID == nil {
			patch.ClearClass = true
		} else {
			if _, err := s.classes.GetByID(ctx, *req.ClassID.ID); err != nil {
				return nil, fmt.Errorf("get class: %w", err)
			}
			patch.ClassID = req.ClassID.ID
		}
	}

	patch.Apply(user)
	if err := s.users.Update(ctx, user); err != nil {
		return nil, fmt.Errorf("update user: %w", err)
	}
	return user, nil
}

// Delete removes a user unconditionally. Foreign keys decide what cascades.
func (s *UserService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.users.Delete(ctx, id); err != nil {
		return err
	}
	s.log.Info().Str("user_id", id.String()).Msg("user deleted")
	return nil
}

// LinkParent links a parent to a student. Linking twice is a no-op.
func (s *UserService) LinkParent(ctx context.Context, req model.LinkParentRequest) (*model.ParentWithChildren, error) {
	parent, err := s.requireRole(ctx, req.ParentID, model.RoleParent)
	if err != nil {
		return nil, err
	}
	if _, err := s.requireRole(ctx, req.ChildID, model.RoleStudent); err != nil {
		return nil, err
	}

	if err := s.links.Link(ctx, req.ParentID, req.ChildID); err != nil {
		return nil, fmt.Errorf("link parent: %w", err)
	}

	childIDs, err := s.links.ChildIDs(ctx, parent.ID)
	if err != nil {
		return nil, fmt.Errorf("list children: %w", err)
	}
	return &model.ParentWithChildren{User: parent, ChildIDs: childIDs}, nil
}

// Children returns the students linked to the calling parent.
func (s *UserService) Children(ctx context.Context, p model.Principal) ([]model.User, error) {
	ids, err := s.links.ChildIDs(ctx, p.UserID)
	if err != nil {
		return nil, fmt.Errorf("list children: %w", err)
	}
	if len(ids) == 0 {
		return []model.User{}, nil
	}
	return s.users.ListByIDs(ctx, ids)
}

// EnsureLinked fails with ErrNotLinked unless the parent principal is linked to childID.
// Other roles pass through.
func (s *UserService) EnsureLinked(ctx context.Context, p model.Principal, childID uuid.UUID) error {
	if p.Role != model.RoleParent {
		return nil
	}
	linked, err := s.links.IsLinked(ctx, p.UserID, childID)
	if err != nil {
		return fmt.Errorf("check link: %w", err)
	}
	if !linked {
		return ErrNotLinked
	}
	return nil
}

// Promote moves every student of one class to another, one at a time.
// There is no rollback: failures are reported and the rest still move.
func (s *UserService) Promote(ctx context.Context, req model.PromoteRequest) (*model.PromotionResult, error) {
	if _, err := s.classes.GetByID(ctx, req.FromClassID); err != nil {
		return nil, fmt.Errorf("get source class: %w", err)
	}
	if _, err := s.classes.GetByID(ctx, req.ToClassID); err != nil {
		return nil, fmt.Errorf("get target class: %w", err)
	}

	students, err := s.users.ListByClass(ctx, req.FromClassID, model.RoleStudent)
	if err != nil {
		return nil, fmt.Errorf("list roster: %w", err)
	}

	result := &model.PromotionResult{Failed: []uuid.UUID{}}
	for _, st := range students {
		if err := s.users.SetClass(ctx, st.ID, req.ToClassID); err != nil {
			s.log.Warn().Err(err).Str("student_id", st.ID.String()).Msg("promotion failed for student")
			result.Failed = append(result.Failed, st.ID)
			continue
		}
		result.Promoted++
	}

	s.log.Info().
		Str("from", req.FromClassID.String()).
		Str("to", req.ToClassID.String()).
		Int("promoted", result.Promoted).
		Int("failed", len(result.Failed)).
		Msg("class promoted")
	return result, nil
}

// requireRole loads a user and checks its role.
func (s *UserService) requireRole(ctx context.Context, id uuid.UUID, role model.Role) (*model.User, error) {
	return requireUserRole(ctx, s.users, id, role)
}

func requireUserRole(ctx context.Context, users UserStore, id uuid.UUID, role model.Role) (*model.User, error) {
	u, err := users.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("user %s: %w", id, err)
		}
		return nil, err
	}
	if u.Role != role {
		return nil, fmt.Errorf("user %s is %s, want %s: %w", id, u.Role, role, ErrRoleMismatch)
	}
	return u, nil
}
