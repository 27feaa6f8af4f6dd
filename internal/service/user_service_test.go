package service

import (
	"context"
	"testing"

	"hacklab_backend/internal/model"
	"hacklab_backend/internal/repository"
	"hacklab_backend/internal/util"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// kickingSessionStore 支持按用户清会话的替身。
type kickingSessionStore struct {
	*fakeSessionStore
	kicked []uint
}

func (k *kickingSessionStore) DeleteAllForUser(_ context.Context, userID uint) error {
	k.kicked = append(k.kicked, userID)
	return nil
}

func newUserService(db *gorm.DB, sessions SessionStore) *UserService {
	return NewUserService(repository.NewUserRepository(db), sessions)
}

func TestUpdateRole(t *testing.T) {
	db := newTestDB(t)
	store := &kickingSessionStore{fakeSessionStore: newFakeSessionStore()}
	svc := newUserService(db, store)

	user := createTestUser(t, db, "alice", 0)

	require.NoError(t, svc.UpdateRole(context.Background(), user.ID, model.RoleAdmin))

	reloaded, err := svc.Get(user.ID)
	require.NoError(t, err)
	assert.Equal(t, model.RoleAdmin, reloaded.Role)

	// 改角色后旧会话全部作废
	assert.Equal(t, []uint{user.ID}, store.kicked)
}

func TestUpdateRole_UserNotFound(t *testing.T) {
	db := newTestDB(t)
	svc := newUserService(db, newFakeSessionStore())

	err := svc.UpdateRole(context.Background(), 9999, model.RoleAdmin)
	assert.ErrorIs(t, err, util.ErrUserNotFound)
}

func TestGrantCubes(t *testing.T) {
	db := newTestDB(t)
	svc := newUserService(db, newFakeSessionStore())

	user := createTestUser(t, db, "alice", 50)

	granted, err := svc.GrantCubes(user.ID, 200)
	require.NoError(t, err)
	assert.Equal(t, 250, granted.Cubes)
	assert.Equal(t, 250, userCubes(t, db, user.ID))
}

func TestGrantCubes_UserNotFound(t *testing.T) {
	db := newTestDB(t)
	svc := newUserService(db, newFakeSessionStore())

	_, err := svc.GrantCubes(9999, 100)
	assert.ErrorIs(t, err, util.ErrUserNotFound)
}

func TestUserList(t *testing.T) {
	db := newTestDB(t)
	svc := newUserService(db, newFakeSessionStore())

	createTestUser(t, db, "alice", 0)
	createTestUser(t, db, "bob", 0)

	users, err := svc.List()
	require.NoError(t, err)
	assert.Len(t, users, 2)
}
