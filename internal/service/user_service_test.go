package service

import (
	"context"
	"encoding/json"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/educonnect/educonnect-backend/internal/config"
	"github.com/educonnect/educonnect-backend/internal/model"
	"github.com/educonnect/educonnect-backend/internal/repository"
	"github.com/educonnect/educonnect-backend/internal/repository/memory"
)

func testConfig() *config.Config {
	return &config.Config{
		JWTSecret:  "test-secret",
		JWTExpiry:  time.Hour,
		BcryptCost: bcrypt.MinCost,
	}
}

func newUserService(stores *memory.Stores) (*UserService, *AuthService) {
	auth := NewAuthService(testConfig(), stores.Users)
	return NewUserService(stores.Users, stores.ParentLinks, stores.Classes, auth, nopLog), auth
}

func TestUserCreate_NormalizesAndHashes(t *testing.T) {
	stores := memory.New()
	svc, auth := newUserService(stores)
	ctx := context.Background()

	u, err := svc.Create(ctx, model.CreateUserRequest{
		Email: "  Ada@School.Test ", Password: "secret123", Role: model.RoleTeacher,
		FirstName: " Ada ", LastName: "Lovelace",
	})
	require.NoError(t, err)
	assert.Equal(t, "ada@school.test", u.Email)
	assert.Equal(t, "Ada", u.FirstName)
	assert.NotEqual(t, "secret123", u.PasswordHash)

	got, err := auth.ValidateCredentials(ctx, "ADA@school.test", "secret123")
	require.NoError(t, err)
	assert.Equal(t, u.ID, got.ID)

	_, err = auth.ValidateCredentials(ctx, "ada@school.test", "wrong-pass")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	_, err = auth.ValidateCredentials(ctx, "nobody@school.test", "secret123")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.Create(ctx, model.CreateUserRequest{
		Email: "ada@school.test", Password: "secret123", Role: model.RoleParent,
		FirstName: "Other", LastName: "Ada",
	})
	assert.ErrorIs(t, err, repository.ErrDuplicate)
}

func TestAuth_TokenRoundTrip(t *testing.T) {
	stores := memory.New()
	_, auth := newUserService(stores)
	u := seedUser(t, stores, model.RoleAccountant, "acc")

	token, err := auth.Login(u)
	require.NoError(t, err)

	claims, err := auth.ValidateToken(token)
	require.NoError(t, err)
	p := claims.Principal()
	assert.Equal(t, u.ID, p.UserID)
	assert.Equal(t, model.RoleAccountant, p.Role)

	other := NewAuthService(&config.Config{JWTSecret: "another", JWTExpiry: time.Hour}, stores.Users)
	_, err = other.ValidateToken(token)
	assert.Error(t, err)
}

func TestAuth_ExpiredToken(t *testing.T) {
	stores := memory.New()
	cfg := testConfig()
	cfg.JWTExpiry = -time.Minute
	auth := NewAuthService(cfg, stores.Users)
	u := seedUser(t, stores, model.RoleAdmin, "ann")

	token, err := auth.Login(u)
	require.NoError(t, err)

	_, err = auth.ValidateToken(token)
	assert.Error(t, err)
}

func TestUserSearch_CapsResults(t *testing.T) {
	stores := memory.New()
	svc, _ := newUserService(stores)
	ctx := context.Background()

	for i := 0; i < 15; i++ {
		u := &model.User{
			Email: fmt.Sprintf("pupil%02d@school.test", i), Role: model.RoleStudent,
			FirstName: "Pupil", LastName: fmt.Sprintf("N%02d", i),
		}
		require.NoError(t, stores.Users.Create(ctx, u))
	}
	seedUser(t, stores, model.RoleTeacher, "pupil")

	found, err := svc.Search(ctx, model.RoleStudent, "PUPIL")
	require.NoError(t, err)
	assert.Len(t, found, SearchLimit)
	for _, u := range found {
		assert.Equal(t, model.RoleStudent, u.Role)
	}

	none, err := svc.Search(ctx, model.RoleStudent, "   ")
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestUserList_Paginates(t *testing.T) {
	stores := memory.New()
	svc, _ := newUserService(stores)
	for i := 0; i < 5; i++ {
		seedUser(t, stores, model.RoleStudent, "s")
	}
	seedUser(t, stores, model.RoleTeacher, "t")

	page, total, err := svc.List(context.Background(), model.RoleStudent, 2, 2)
	require.NoError(t, err)
	assert.Equal(t, 5, total)
	assert.Len(t, page, 2)

	all, total, err := svc.List(context.Background(), "", 1, 20)
	require.NoError(t, err)
	assert.Equal(t, 6, total)
	assert.Len(t, all, 6)
}

func TestLinkParent(t *testing.T) {
	stores := memory.New()
	svc, _ := newUserService(stores)
	ctx := context.Background()

	parent := seedUser(t, stores, model.RoleParent, "pat")
	child := seedUser(t, stores, model.RoleStudent, "sam")
	stranger := seedUser(t, stores, model.RoleStudent, "zed")

	for i := 0; i < 2; i++ {
		linked, err := svc.LinkParent(ctx, model.LinkParentRequest{ParentID: parent.ID, ChildID: child.ID})
		require.NoError(t, err)
		assert.Equal(t, []uuid.UUID{child.ID}, linked.ChildIDs)
	}

	_, err := svc.LinkParent(ctx, model.LinkParentRequest{ParentID: child.ID, ChildID: parent.ID})
	assert.ErrorIs(t, err, ErrRoleMismatch)

	children, err := svc.Children(ctx, principalOf(parent))
	require.NoError(t, err)
	require.Len(t, children, 1)
	assert.Equal(t, child.ID, children[0].ID)

	assert.NoError(t, svc.EnsureLinked(ctx, principalOf(parent), child.ID))
	assert.ErrorIs(t, svc.EnsureLinked(ctx, principalOf(parent), stranger.ID), ErrNotLinked)
	assert.NoError(t, svc.EnsureLinked(ctx, principalOf(child), stranger.ID))
}

func TestPromote_MovesOnlyStudents(t *testing.T) {
	stores := memory.New()
	svc, _ := newUserService(stores)
	ctx := context.Background()

	from := seedClass(t, stores, "JSS1")
	to := seedClass(t, stores, "JSS2")
	teacher := seedUser(t, stores, model.RoleTeacher, "tom")
	require.NoError(t, stores.Users.SetClass(ctx, teacher.ID, from.ID))
	for i := 0; i < 3; i++ {
		st := seedUser(t, stores, model.RoleStudent, "s")
		require.NoError(t, stores.Users.SetClass(ctx, st.ID, from.ID))
	}

	res, err := svc.Promote(ctx, model.PromoteRequest{FromClassID: from.ID, ToClassID: to.ID})
	require.NoError(t, err)
	assert.Equal(t, 3, res.Promoted)
	assert.Empty(t, res.Failed)

	moved, err := stores.Users.ListByClass(ctx, to.ID, model.RoleStudent)
	require.NoError(t, err)
	assert.Len(t, moved, 3)

	stayed, err := stores.Users.ListByClass(ctx, from.ID, "")
	require.NoError(t, err)
	require.Len(t, stayed, 1)
	assert.Equal(t, teacher.ID, stayed[0].ID)

	_, err = svc.Promote(ctx, model.PromoteRequest{FromClassID: from.ID, ToClassID: uuid.New()})
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestDeleteUser_RemovesParentLinks(t *testing.T) {
	stores := memory.New()
	svc, _ := newUserService(stores)
	ctx := context.Background()

	parent := seedUser(t, stores, model.RoleParent, "pat")
	child := seedUser(t, stores, model.RoleStudent, "sam")
	_, err := svc.LinkParent(ctx, model.LinkParentRequest{ParentID: parent.ID, ChildID: child.ID})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, child.ID))

	_, err = svc.GetByID(ctx, child.ID)
	assert.ErrorIs(t, err, repository.ErrNotFound)
	children, err := svc.Children(ctx, principalOf(parent))
	require.NoError(t, err)
	assert.Empty(t, children)

	assert.ErrorIs(t, svc.Delete(ctx, child.ID), repository.ErrNotFound)
}

func TestUserUpdate_ClassAssignment(t *testing.T) {
	stores := memory.New()
	svc, _ := newUserService(stores)
	ctx := context.Background()

	class := seedClass(t, stores, "SS 1")
	student := seedUser(t, stores, model.RoleStudent, "sam")

	var req model.UpdateUserRequest
	require.NoError(t, json.Unmarshal([]byte(`{"classId":"`+class.ID.String()+`"}`), &req))
	u, err := svc.Update(ctx, student.ID, req)
	require.NoError(t, err)
	require.NotNil(t, u.ClassID)
	assert.Equal(t, class.ID, *u.ClassID)

	// absent classId leaves the class alone
	req = model.UpdateUserRequest{}
	require.NoError(t, json.Unmarshal([]byte(`{"phone":"0800"}`), &req))
	u, err = svc.Update(ctx, student.ID, req)
	require.NoError(t, err)
	require.NotNil(t, u.ClassID)
	assert.Equal(t, "0800", u.Phone)

	req = model.UpdateUserRequest{}
	require.NoError(t, json.Unmarshal([]byte(`{"classId":null}`), &req))
	u, err = svc.Update(ctx, student.ID, req)
	require.NoError(t, err)
	assert.Nil(t, u.ClassID)

	stored, err := stores.Users.GetByID(ctx, student.ID)
	require.NoError(t, err)
	assert.Nil(t, stored.ClassID)

	missing := uuid.New()
	_, err = svc.Update(ctx, student.ID, model.UpdateUserRequest{ClassID: model.OptionalUUID{Set: true, ID: &missing}})
	assert.ErrorIs(t, err, repository.ErrNotFound)
}
