package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"hacklab_backend/internal/config"
	"hacklab_backend/internal/model"
	"hacklab_backend/internal/repository"
	"hacklab_backend/internal/util"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// fakeSessionStore 内存会话表，代替 Redis。
type fakeSessionStore struct {
	mu       sync.Mutex
	sessions map[string]uint
}

func newFakeSessionStore() *fakeSessionStore {
	return &fakeSessionStore{sessions: make(map[string]uint)}
}

func (f *fakeSessionStore) Create(_ context.Context, sessionID string, userID uint, _ time.Duration) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sessions[sessionID] = userID
	return nil
}

func (f *fakeSessionStore) Exists(_ context.Context, sessionID string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	_, ok := f.sessions[sessionID]
	return ok, nil
}

func (f *fakeSessionStore) Delete(_ context.Context, sessionID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.sessions, sessionID)
	return nil
}

func newAuthService(db *gorm.DB, sessions SessionStore, inviteCode string) *AuthService {
	cfg := &config.Config{}
	cfg.JWT.Secret = "test-secret-for-auth-service-tests"
	cfg.JWT.ExpireTime = time.Hour
	cfg.Auth.AdminInviteCode = inviteCode
	return NewAuthService(repository.NewUserRepository(db), sessions, cfg)
}

func TestRegister_FirstUserBecomesAdmin(t *testing.T) {
	db := newTestDB(t)
	svc := newAuthService(db, newFakeSessionStore(), "")

	user, token, err := svc.Register("alice", "alice@test.local", "password123", "")
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.Equal(t, model.RoleAdmin, user.Role)

	// 之后的注册者是普通用户
	second, _, err := svc.Register("bob", "bob@test.local", "password123", "")
	require.NoError(t, err)
	assert.Equal(t, model.RoleUser, second.Role)
}

func TestRegister_InviteCodeGrantsAdmin(t *testing.T) {
	db := newTestDB(t)
	svc := newAuthService(db, newFakeSessionStore(), "secret-invite")

	_, _, err := svc.Register("first", "first@test.local", "password123", "")
	require.NoError(t, err)

	withCode, _, err := svc.Register("admin2", "admin2@test.local", "password123", "secret-invite")
	require.NoError(t, err)
	assert.Equal(t, model.RoleAdmin, withCode.Role)

	wrongCode, _, err := svc.Register("pleb", "pleb@test.local", "password123", "wrong-code")
	require.NoError(t, err)
	assert.Equal(t, model.RoleUser, wrongCode.Role)
}

func TestRegister_AdminUsernameDoesNotElevate(t *testing.T) {
	db := newTestDB(t)
	svc := newAuthService(db, newFakeSessionStore(), "")

	_, _, err := svc.Register("first", "first@test.local", "password123", "")
	require.NoError(t, err)

	// 用户名里带 admin 不是提权通道
	user, _, err := svc.Register("administrator", "a@test.local", "password123", "")
	require.NoError(t, err)
	assert.Equal(t, model.RoleUser, user.Role)
}

func TestRegister_DuplicateUsername(t *testing.T) {
	db := newTestDB(t)
	svc := newAuthService(db, newFakeSessionStore(), "")

	_, _, err := svc.Register("alice", "alice@test.local", "password123", "")
	require.NoError(t, err)

	_, _, err = svc.Register("alice", "other@test.local", "password123", "")
	assert.ErrorIs(t, err, util.ErrUsernameTaken)
}

func TestRegister_StoresHashedPassword(t *testing.T) {
	db := newTestDB(t)
	svc := newAuthService(db, newFakeSessionStore(), "")

	user, _, err := svc.Register("alice", "alice@test.local", "password123", "")
	require.NoError(t, err)

	var stored model.User
	require.NoError(t, db.First(&stored, user.ID).Error)
	assert.NotEqual(t, "password123", stored.Password)
	assert.True(t, util.VerifySecret("password123", stored.Password))
}

func TestLogin(t *testing.T) {
	db := newTestDB(t)
	svc := newAuthService(db, newFakeSessionStore(), "")

	_, _, err := svc.Register("alice", "alice@test.local", "password123", "")
	require.NoError(t, err)

	user, token, err := svc.Login("alice", "password123")
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.Equal(t, "alice", user.Username)

	// 口令不对和用户不存在给同一个错误
	_, _, err = svc.Login("alice", "wrong-password")
	assert.ErrorIs(t, err, util.ErrInvalidCreds)
	_, _, err = svc.Login("nobody", "password123")
	assert.ErrorIs(t, err, util.ErrInvalidCreds)
}

func TestLogin_UpdatesLastLogin(t *testing.T) {
	db := newTestDB(t)
	svc := newAuthService(db, newFakeSessionStore(), "")

	registered, _, err := svc.Register("alice", "alice@test.local", "password123", "")
	require.NoError(t, err)

	// 让登录时间和注册时间拉开距离
	time.Sleep(20 * time.Millisecond)
	before := time.Now()

	_, _, err = svc.Login("alice", "password123")
	require.NoError(t, err)

	var stored model.User
	require.NoError(t, db.First(&stored, registered.ID).Error)
	assert.False(t, stored.LastLogin.Before(before))
}

func TestLogout_KillsSession(t *testing.T) {
	db := newTestDB(t)
	sessions := newFakeSessionStore()
	svc := newAuthService(db, sessions, "")

	_, token, err := svc.Register("alice", "alice@test.local", "password123", "")
	require.NoError(t, err)

	claims, err := util.ParseJWT(token, svc.Cfg.JWT.Secret)
	require.NoError(t, err)

	alive, err := sessions.Exists(context.Background(), claims.ID)
	require.NoError(t, err)
	assert.True(t, alive)

	require.NoError(t, svc.Logout(context.Background(), claims.ID))

	alive, err = sessions.Exists(context.Background(), claims.ID)
	require.NoError(t, err)
	assert.False(t, alive)
}
