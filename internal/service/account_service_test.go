package service

import (
	"testing"

	"tobacco/internal/model"
	"tobacco/internal/repository"
	"tobacco/pkg/apperror"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestAccountService_ChangePassword(t *testing.T) {
	db := newTestDB(t)
	svc := NewAccountService(repository.NewUserRepository(db))
	actor := seedUser(t, db, "alice", "oldpass", model.AuthoritySalesman)

	t.Run("wrong current password is rejected", func(t *testing.T) {
		err := svc.ChangePassword(testCtx, actor, ChangePasswordRequest{
			CurrentPassword: "wrong",
			NewPassword:     "newpass",
		})
		require.Error(t, err)
		assert.Equal(t, apperror.KindUnauthorized, apperror.KindOf(err))
	})

	t.Run("correct current password rotates the hash", func(t *testing.T) {
		err := svc.ChangePassword(testCtx, actor, ChangePasswordRequest{
			CurrentPassword: "oldpass",
			NewPassword:     "newpass",
		})
		require.NoError(t, err)

		stored := reloadUser(t, db, actor.ID)
		assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.Password), []byte("newpass")))
		assert.Error(t, bcrypt.CompareHashAndPassword([]byte(stored.Password), []byte("oldpass")))
	})
}

func TestAccountService_Delete(t *testing.T) {
	db := newTestDB(t)
	svc := NewAccountService(repository.NewUserRepository(db))
	actor := seedUser(t, db, "alice", "secret", model.AuthoritySalesman)

	t.Run("requires password confirmation", func(t *testing.T) {
		err := svc.Delete(testCtx, actor, ConfirmPasswordRequest{Password: "wrong"})
		require.Error(t, err)
		assert.Equal(t, apperror.KindUnauthorized, apperror.KindOf(err))
		assert.False(t, reloadUser(t, db, actor.ID).Deleted)
	})

	t.Run("disables the account", func(t *testing.T) {
		err := svc.Delete(testCtx, actor, ConfirmPasswordRequest{Password: "secret"})
		require.NoError(t, err)
		assert.True(t, reloadUser(t, db, actor.ID).Deleted)
	})
}

func TestAccountService_Update(t *testing.T) {
	db := newTestDB(t)
	svc := NewAccountService(repository.NewUserRepository(db))
	actor := seedUser(t, db, "alice", "secret", model.AuthoritySalesman)

	name := "Alice L."
	resp, err := svc.Update(testCtx, actor, UpdateAccountRequest{DisplayName: &name})
	require.NoError(t, err)
	assert.Equal(t, "Alice L.", resp.DisplayName)

	blank := "  "
	_, err = svc.Update(testCtx, actor, UpdateAccountRequest{DisplayName: &blank})
	require.Error(t, err)
	assert.Equal(t, apperror.KindValidation, apperror.KindOf(err))
}
