package model

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/google/uuid"
)

// User is any account: staff, parent or student.
type User struct {
	ID           uuid.UUID  `json:"id"`
	Email        string     `json:"email"`
	PasswordHash string     `json:"-"`
	Role         Role       `json:"role"`
	FirstName    string     `json:"firstName"`
	MiddleName   string     `json:"middleName,omitempty"`
	LastName     string     `json:"lastName"`
	Phone        string     `json:"phone,omitempty"`
	ClassID      *uuid.UUID `json:"classId"`
	CreatedAt    time.Time  `json:"createdAt"`
	UpdatedAt    time.Time  `json:"updatedAt"`
}

// FullName joins the non-empty name parts.
func (u *User) FullName() string {
	parts := make([]string, 0, 3)
	for _, p := range []string{u.FirstName, u.MiddleName, u.LastName} {
		if p != "" {
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, " ")
}

// Principal is the authenticated caller, passed explicitly into service calls.
type Principal struct {
	UserID uuid.UUID
	Email  string
	Role   Role
	Name   string
}

// Is reports whether the principal holds one of the given roles.
func (p Principal) Is(roles ...Role) bool {
	return p.Role.In(roles...)
}

// UserFilter narrows user listings.
type UserFilter struct {
	Role   Role
	Limit  int
	Offset int
}

// UserPatch carries the fields of a partial update; nil means unchanged.
type UserPatch struct {
	Email        *string
	PasswordHash *string
	Role         *Role
	FirstName    *string
	MiddleName   *string
	LastName     *string
	Phone        *string
	ClassID      *uuid.UUID
	// ClearClass unassigns the user's class and wins over ClassID.
	ClearClass   bool
}

// Apply copies the set fields of p onto u.
func (p UserPatch) Apply(u *User) {
	if p.Email != nil {
		u.Email = *p.Email
	}
	if p.PasswordHash != nil {
		u.PasswordHash = *p.PasswordHash
	}
	if p.Role != nil {
		u.Role = *p.Role
	}
	if p.FirstName != nil {
		u.FirstName = *p.FirstName
	}
	if p.MiddleName != nil {
		u.MiddleName = *p.MiddleName
	}
	if p.LastName != nil {
		u.LastName = *p.LastName
	}
	if p.Phone != nil {
		u.Phone = *p.Phone
	}
	switch {
	case p.ClearClass:
		u.ClassID = nil
	case p.ClassID != nil:
		id := *p.ClassID
		u.ClassID = &id
	}
}

// OptionalUUID tells an absent JSON field apart from an explicit null.
// Set is false when the field was absent; ID is nil for null.
type OptionalUUID struct {
	Set bool
	ID  *uuid.UUID
}

func (o *OptionalUUID) UnmarshalJSON(b []byte) error {
	o.Set = true
	if string(b) == "null" {
		o.ID = nil
		return nil
	}
	var id uuid.UUID
	if err := json.Unmarshal(b, &id); err != nil {
		return err
	}
	o.ID = &id
	return nil
}

// LoginRequest is the payload for authentication.
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email,max=255"`
	Password string `json:"password" binding:"required,min=6,max=128"`
}

// CreateUserRequest is the payload for creating a user account.
type CreateUserRequest struct {
	Email      string     `json:"email" binding:"required,email,max=255"`
	Password   string     `json:"password" binding:"required,min=6,max=128"`
	Role       Role       `json:"role" binding:"required,oneof=admin teacher parent accountant student"`
	FirstName  string     `json:"firstName" binding:"required,min=1,max=100"`
	MiddleName string     `json:"middleName" binding:"omitempty,max=100"`
	LastName   string     `json:"lastName" binding:"required,min=1,max=100"`
	Phone      string     `json:"phone" binding:"omitempty,max=32"`
	ClassID    *uuid.UUID `json:"classId"`
}

// UpdateUserRequest is a partial patch; absent fields stay unchanged.
// "classId": null unassigns the user's class.
type UpdateUserRequest struct {
	Email      *string      `json:"email" binding:"omitempty,email,max=255"`
	Password   *string      `json:"password" binding:"omitempty,min=6,max=128"`
	Role       *Role        `json:"role" binding:"omitempty,oneof=admin teacher parent accountant student"`
	FirstName  *string      `json:"firstName" binding:"omitempty,min=1,max=100"`
	MiddleName *string      `json:"middleName" binding:"omitempty,max=100"`
	LastName   *string      `json:"lastName" binding:"omitempty,min=1,max=100"`
	Phone      *string      `json:"phone" binding:"omitempty,max=32"`
	ClassID    OptionalUUID `json:"classId"`
}

// SearchUsersQuery is the query string of the directory search.
type SearchUsersQuery struct {
	Role Role   `form:"role" json:"role" binding:"required,oneof=admin teacher parent accountant student"`
	Q    string `form:"q" json:"q" binding:"required,min=1,max=100"`
}

// LinkParentRequest links a parent account to a student account.
type LinkParentRequest struct {
	ParentID uuid.UUID `json:"parentId" binding:"required"`
	ChildID  uuid.UUID `json:"childId" binding:"required"`
}

// PromoteRequest moves a whole roster from one class to another.
type PromoteRequest struct {
	FromClassID uuid.UUID `json:"fromClassId" binding:"required"`
	ToClassID   uuid.UUID `json:"toClassId" binding:"required"`
}

// PromotionResult reports how many students moved and which ones did not.
type PromotionResult struct {
	Promoted int         `json:"promoted"`
	Failed   []uuid.UUID `json:"failed"`
}

// ParentWithChildren is a sanitized parent and their linked children ids.
type ParentWithChildren struct {
	*User
	ChildIDs []uuid.UUID `json:"childIds"`
}
