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

func TestGroupService_Membership(t *testing.T) {
	db := newTestDB(t)
	svc := NewGroupService(repository.NewGroupRepository(db), repository.NewUserRepository(db))

	alice := seedUser(t, db, "alice", "secret", model.AuthoritySalesman)
	bob := seedUser(t, db, "bob", "secret", model.AuthoritySaleManager)

	created, err := svc.Create(testCtx, CreateGroupRequest{DisplayName: "north"})
	require.NoError(t, err)

	t.Run("membership replacement is wholesale", func(t *testing.T) {
		members := []int64{alice.ID, bob.ID}
		resp, err := svc.Update(testCtx, created.ID, UpdateGroupRequest{UserIDs: &members})
		require.NoError(t, err)
		require.Len(t, resp.Users, 2)

		members = []int64{bob.ID}
		resp, err = svc.Update(testCtx, created.ID, UpdateGroupRequest{UserIDs: &members})
		require.NoError(t, err)
		require.Len(t, resp.Users, 1)
		assert.Equal(t, "bob", resp.Users[0].Username)
	})

	t.Run("unknown member id fails the whole update", func(t *testing.T) {
		members := []int64{alice.ID, 99999}
		_, err := svc.Update(testCtx, created.ID, UpdateGroupRequest{UserIDs: &members})
		require.Error(t, err)
		assert.Equal(t, apperror.KindNotFound, apperror.KindOf(err))
	})

	t.Run("detail view includes members, listing stays flat", func(t *testing.T) {
		detail, err := svc.Get(testCtx, created.ID)
		require.NoError(t, err)
		assert.NotEmpty(t, detail.Users)

		page, err := svc.List(testCtx, repository.GroupListFilter{}, pagination.Normalize(0, 20))
		require.NoError(t, err)
		require.Len(t, page.Elements, 1)
		assert.Empty(t, page.Elements[0].Users)
	})

	t.Run("filter by member", func(t *testing.T) {
		page, err := svc.List(testCtx, repository.GroupListFilter{UserID: &bob.ID}, pagination.Normalize(0, 20))
		require.NoError(t, err)
		assert.Len(t, page.Elements, 1)

		page, err = svc.List(testCtx, repository.GroupListFilter{UserID: &alice.ID}, pagination.Normalize(0, 20))
		require.NoError(t, err)
		assert.Empty(t, page.Elements)
	})
}

func TestGroupService_Delete(t *testing.T) {
	db := newTestDB(t)
	svc := NewGroupService(repository.NewGroupRepository(db), repository.NewUserRepository(db))

	created, err := svc.Create(testCtx, CreateGroupRequest{DisplayName: "south"})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(testCtx, created.ID))

	page, err := svc.List(testCtx, repository.GroupListFilter{}, pagination.Normalize(0, 20))
	require.NoError(t, err)
	assert.Empty(t, page.Elements)

	resp, err := svc.Get(testCtx, created.ID)
	require.NoError(t, err)
	assert.True(t, resp.Deleted)
}
