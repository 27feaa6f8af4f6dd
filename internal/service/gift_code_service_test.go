package service

import (
	"sync"
	"testing"
	"time"

	"hacklab_backend/internal/model"
	"hacklab_backend/internal/repository"
	"hacklab_backend/internal/util"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newGiftCodeService(db *gorm.DB) *GiftCodeService {
	return NewGiftCodeService(repository.NewGiftCodeRepository(db), db)
}

func TestRedeem_CreditsOnce(t *testing.T) {
	db := newTestDB(t)
	svc := newGiftCodeService(db)

	user := createTestUser(t, db, "alice", 0)
	_, err := svc.Create("WELCOME100", 100, true)
	require.NoError(t, err)

	value, err := svc.Redeem(user.ID, "WELCOME100")
	require.NoError(t, err)
	assert.Equal(t, 100, value)
	assert.Equal(t, 100, userCubes(t, db, user.ID))

	// 同一个码第二次兑换失败，余额不变
	_, err = svc.Redeem(user.ID, "WELCOME100")
	assert.ErrorIs(t, err, util.ErrGiftCodeUsed)
	assert.Equal(t, 100, userCubes(t, db, user.ID))
}

func TestRedeem_CaseInsensitive(t *testing.T) {
	db := newTestDB(t)
	svc := newGiftCodeService(db)

	user := createTestUser(t, db, "alice", 0)
	_, err := svc.Create("hacker2024", 500, true)
	require.NoError(t, err)

	value, err := svc.Redeem(user.ID, "HaCkEr2024")
	require.NoError(t, err)
	assert.Equal(t, 500, value)
}

func TestRedeem_OtherUserBlocked(t *testing.T) {
	db := newTestDB(t)
	svc := newGiftCodeService(db)

	alice := createTestUser(t, db, "alice", 0)
	bob := createTestUser(t, db, "bob", 0)
	_, err := svc.Create("SHARED", 50, true)
	require.NoError(t, err)

	_, err = svc.Redeem(alice.ID, "SHARED")
	require.NoError(t, err)

	_, err = svc.Redeem(bob.ID, "SHARED")
	assert.ErrorIs(t, err, util.ErrGiftCodeUsed)
	assert.Equal(t, 0, userCubes(t, db, bob.ID))
}

func TestRedeem_NotFound(t *testing.T) {
	db := newTestDB(t)
	svc := newGiftCodeService(db)

	user := createTestUser(t, db, "alice", 0)

	_, err := svc.Redeem(user.ID, "NOSUCHCODE")
	assert.ErrorIs(t, err, util.ErrGiftCodeNotFound)
}

func TestRedeem_Inactive(t *testing.T) {
	db := newTestDB(t)
	svc := newGiftCodeService(db)

	user := createTestUser(t, db, "alice", 0)
	_, err := svc.Create("DISABLED", 100, false)
	require.NoError(t, err)

	_, err = svc.Redeem(user.ID, "DISABLED")
	assert.ErrorIs(t, err, util.ErrGiftCodeUsed)
}

func TestRedeem_ConcurrentSingleWinner(t *testing.T) {
	db := newTestDB(t)
	svc := newGiftCodeService(db)

	_, err := svc.Create("RACE500", 500, true)
	require.NoError(t, err)

	const workers = 8
	users := make([]*model.User, workers)
	for i := range users {
		users[i] = createTestUser(t, db, "user"+string(rune('a'+i)), 0)
	}

	var wg sync.WaitGroup
	results := make([]error, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()
			_, err := svc.Redeem(users[idx].ID, "RACE500")
			results[idx] = err
		}(i)
	}
	wg.Wait()

	succeeded := 0
	total := 0
	for i, err := range results {
		if err == nil {
			succeeded++
		} else {
			assert.ErrorIs(t, err, util.ErrGiftCodeUsed)
		}
		total += userCubes(t, db, users[i].ID)
	}
	assert.Equal(t, 1, succeeded)
	// 码值总共只入账一次
	assert.Equal(t, 500, total)
}

func TestDisableExpired(t *testing.T) {
	db := newTestDB(t)
	svc := newGiftCodeService(db)

	old := &model.GiftCode{Code: "OLDCODE", Value: 100, Active: true}
	require.NoError(t, db.Create(old).Error)
	// 建成 40 天前的码
	require.NoError(t, db.Model(old).Update("created_at", time.Now().AddDate(0, 0, -40)).Error)

	fresh, err := svc.Create("FRESHCODE", 100, true)
	require.NoError(t, err)

	require.NoError(t, svc.DisableExpired(30))

	var reloaded model.GiftCode
	require.NoError(t, db.First(&reloaded, old.ID).Error)
	assert.False(t, reloaded.Active)

	require.NoError(t, db.First(&reloaded, fresh.ID).Error)
	assert.True(t, reloaded.Active)

	// expireDays<=0 什么都不做
	require.NoError(t, svc.DisableExpired(0))
	require.NoError(t, db.First(&reloaded, fresh.ID).Error)
	assert.True(t, reloaded.Active)
}
