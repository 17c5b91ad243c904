package service

import (
	"testing"

	"tobacco/internal/model"
	"tobacco/internal/repository"
	"tobacco/pkg/apperror"
	"tobacco/pkg/pagination"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserService_Create(t *testing.T) {
	db := newTestDB(t)
	svc := NewUserService(repository.NewUserRepository(db))

	t.Run("creates user with authorities and no password in response", func(t *testing.T) {
		resp, err := svc.Create(testCtx, CreateUserRequest{
			Username:    "alice",
			DisplayName: "Alice",
			Authorities: []string{string(model.AuthoritySalesman), string(model.AuthoritySaleManager)},
		})
		require.NoError(t, err)
		assert.Equal(t, "alice", resp.Username)
		assert.ElementsMatch(t, []string{"USER_SALESMAN", "USER_SALE_MANAGER"}, resp.Authorities)
		assert.False(t, resp.Deleted)

		// The generated password is stored only as a bcrypt hash.
		var stored model.User
		require.NoError(t, db.First(&stored, "username = ?", "alice").Error)
		assert.NotEmpty(t, stored.Password)
		assert.NotRegexp(t, `^\d{9}$`, stored.Password)
	})

	t.Run("duplicate username conflicts", func(t *testing.T) {
		_, err := svc.Create(testCtx, CreateUserRequest{Username: "alice", DisplayName: "Alice Again"})
		require.Error(t, err)
		assert.Equal(t, apperror.KindConflict, apperror.KindOf(err))
	})

	t.Run("unknown authority is rejected", func(t *testing.T) {
		_, err := svc.Create(testCtx, CreateUserRequest{
			Username:    "bob",
			DisplayName: "Bob",
			Authorities: []string{"USER_JANITOR"},
		})
		require.Error(t, err)
		assert.Equal(t, apperror.KindValidation, apperror.KindOf(err))
	})

	t.Run("blank display name is rejected", func(t *testing.T) {
		_, err := svc.Create(testCtx, CreateUserRequest{Username: "carol", DisplayName: "  "})
		require.Error(t, err)
		assert.Equal(t, apperror.KindValidation, apperror.KindOf(err))
	})
}

func TestUserService_Login(t *testing.T) {
	db := newTestDB(t)
	svc := NewUserService(repository.NewUserRepository(db))
	seedUser(t, db, "alice", "secret123", model.AuthoritySalesman)

	t.Run("valid credentials yield a token", func(t *testing.T) {
		resp, err := svc.Login(testCtx, LoginRequest{Username: "alice", Password: "secret123"})
		require.NoError(t, err)
		assert.NotEmpty(t, resp.Token)
	})

	t.Run("wrong password is unauthorized", func(t *testing.T) {
		_, err := svc.Login(testCtx, LoginRequest{Username: "alice", Password: "nope"})
		require.Error(t, err)
		assert.Equal(t, apperror.KindUnauthorized, apperror.KindOf(err))
	})

	t.Run("unknown user is unauthorized", func(t *testing.T) {
		_, err := svc.Login(testCtx, LoginRequest{Username: "mallory", Password: "secret123"})
		require.Error(t, err)
		assert.Equal(t, apperror.KindUnauthorized, apperror.KindOf(err))
	})

	t.Run("deleted user cannot log in", func(t *testing.T) {
		deleted := seedUser(t, db, "ghost", "secret123", model.AuthoritySalesman)
		deleted.Deleted = true
		require.NoError(t, db.Save(deleted).Error)

		_, err := svc.Login(testCtx, LoginRequest{Username: "ghost", Password: "secret123"})
		require.Error(t, err)
		assert.Equal(t, apperror.KindUnauthorized, apperror.KindOf(err))
	})
}

func TestUserService_Update(t *testing.T) {
	db := newTestDB(t)
	svc := NewUserService(repository.NewUserRepository(db))
	user := seedUser(t, db, "alice", "secret", model.AuthoritySalesman)

	t.Run("replaces the authority set", func(t *testing.T) {
		authorities := []string{string(model.AuthorityAccountant)}
		resp, err := svc.Update(testCtx, user.ID, UpdateUserRequest{Authorities: &authorities})
		require.NoError(t, err)
		assert.Equal(t, []string{"USER_ACCOUNTANT"}, resp.Authorities)
	})

	t.Run("restores a soft-deleted user", func(t *testing.T) {
		require.NoError(t, svc.Delete(testCtx, user.ID))

		restored := false
		resp, err := svc.Update(testCtx, user.ID, UpdateUserRequest{Deleted: &restored})
		require.NoError(t, err)
		assert.False(t, resp.Deleted)
	})

	t.Run("missing user yields not found", func(t *testing.T) {
		name := "nobody"
		_, err := svc.Update(testCtx, 99999, UpdateUserRequest{DisplayName: &name})
		require.Error(t, err)
		assert.Equal(t, apperror.KindNotFound, apperror.KindOf(err))
	})
}

func TestUserService_DeleteStaysReadable(t *testing.T) {
	db := newTestDB(t)
	svc := NewUserService(repository.NewUserRepository(db))
	user := seedUser(t, db, "alice", "secret", model.AuthoritySalesman)

	require.NoError(t, svc.Delete(testCtx, user.ID))

	// Still resolvable by id after the soft delete.
	resp, err := svc.GetByID(testCtx, user.ID)
	require.NoError(t, err)
	assert.True(t, resp.Deleted)

	// Hidden from the default listing, visible when asked for explicitly.
	page, err := svc.List(testCtx, repository.UserListFilter{}, pagination.Normalize(0, 20))
	require.NoError(t, err)
	assert.Empty(t, page.Elements)

	deleted := true
	page, err = svc.List(testCtx, repository.UserListFilter{Deleted: &deleted}, pagination.Normalize(0, 20))
	require.NoError(t, err)
	assert.Len(t, page.Elements, 1)
}

func TestGenerateNumericPassword(t *testing.T) {
	for i := 0; i < 50; i++ {
		password, err := generateNumericPassword()
		require.NoError(t, err)
		assert.Regexp(t, `^\d{9}$`, password)
	}
}
