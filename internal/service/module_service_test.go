package service

import (
	"sync"
	"testing"

	"hacklab_backend/internal/model"
	"hacklab_backend/internal/repository"
	"hacklab_backend/internal/util"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newModuleService(db *gorm.DB) *ModuleService {
	return NewModuleService(repository.NewModuleRepository(db), db)
}

func createPaidModule(t *testing.T, db *gorm.DB, cost int) *model.Module {
	t.Helper()
	module := &model.Module{Title: "Paid Module", Type: model.ModulePaid, CubeCost: cost}
	require.NoError(t, db.Create(module).Error)
	return module
}

func TestUnlock_DebitsExactCost(t *testing.T) {
	db := newTestDB(t)
	svc := newModuleService(db)

	user := createTestUser(t, db, "alice", 150)
	module := createPaidModule(t, db, 100)

	first, err := svc.Unlock(user.ID, module.ID)
	require.NoError(t, err)
	assert.True(t, first)
	assert.Equal(t, 50, userCubes(t, db, user.ID))
}

func TestUnlock_InsufficientCubes(t *testing.T) {
	db := newTestDB(t)
	svc := newModuleService(db)

	user := createTestUser(t, db, "alice", 50)
	module := createPaidModule(t, db, 500)

	_, err := svc.Unlock(user.ID, module.ID)
	assert.ErrorIs(t, err, util.ErrInsufficientCubes)
	// 失败时余额和解锁记录都不动
	assert.Equal(t, 50, userCubes(t, db, user.ID))

	var count int64
	db.Model(&model.ModuleUnlock{}).Where("user_id = ?", user.ID).Count(&count)
	assert.Equal(t, int64(0), count)
}

func TestUnlock_Idempotent(t *testing.T) {
	db := newTestDB(t)
	svc := newModuleService(db)

	user := createTestUser(t, db, "alice", 300)
	module := createPaidModule(t, db, 100)

	first, err := svc.Unlock(user.ID, module.ID)
	require.NoError(t, err)
	assert.True(t, first)

	// 重复解锁按幂等成功处理，且不再扣费
	again, err := svc.Unlock(user.ID, module.ID)
	require.NoError(t, err)
	assert.False(t, again)
	assert.Equal(t, 200, userCubes(t, db, user.ID))
}

func TestUnlock_FreeModule(t *testing.T) {
	db := newTestDB(t)
	svc := newModuleService(db)

	user := createTestUser(t, db, "alice", 0)
	module := &model.Module{Title: "Free Module", Type: model.ModuleFree, CubeCost: 0}
	require.NoError(t, db.Create(module).Error)

	first, err := svc.Unlock(user.ID, module.ID)
	require.NoError(t, err)
	assert.True(t, first)
	assert.Equal(t, 0, userCubes(t, db, user.ID))
}

func TestUnlock_ModuleNotFound(t *testing.T) {
	db := newTestDB(t)
	svc := newModuleService(db)

	user := createTestUser(t, db, "alice", 0)

	_, err := svc.Unlock(user.ID, 9999)
	assert.ErrorIs(t, err, util.ErrModuleNotFound)
}

func TestUnlock_ConcurrentDebitsOnce(t *testing.T) {
	db := newTestDB(t)
	svc := newModuleService(db)

	user := createTestUser(t, db, "alice", 100)
	module := createPaidModule(t, db, 100)

	const workers = 8
	var wg sync.WaitGroup
	errs := make([]error, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()
			_, errs[idx] = svc.Unlock(user.ID, module.ID)
		}(i)
	}
	wg.Wait()

	for _, err := range errs {
		assert.NoError(t, err)
	}
	// 只扣一次费，只留一条解锁记录
	assert.Equal(t, 0, userCubes(t, db, user.ID))

	var count int64
	db.Model(&model.ModuleUnlock{}).
		Where("user_id = ? AND module_id = ?", user.ID, module.ID).
		Count(&count)
	assert.Equal(t, int64(1), count)
}

func TestListForUser_UnlockedFlags(t *testing.T) {
	db := newTestDB(t)
	svc := newModuleService(db)

	user := createTestUser(t, db, "alice", 200)

	free := &model.Module{Title: "Free", Type: model.ModuleFree}
	require.NoError(t, db.Create(free).Error)
	paid := createPaidModule(t, db, 100)
	locked := createPaidModule(t, db, 500)

	_, err := svc.Unlock(user.ID, paid.ID)
	require.NoError(t, err)

	list, err := svc.ListForUser(user.ID)
	require.NoError(t, err)
	require.Len(t, list, 3)

	state := make(map[uint]bool, len(list))
	for _, m := range list {
		state[m.ID] = m.Unlocked
	}
	assert.True(t, state[free.ID])
	assert.True(t, state[paid.ID])
	assert.False(t, state[locked.ID])
}

func TestListForUser_Anonymous(t *testing.T) {
	db := newTestDB(t)
	svc := newModuleService(db)

	free := &model.Module{Title: "Free", Type: model.ModuleFree}
	require.NoError(t, db.Create(free).Error)
	paid := createPaidModule(t, db, 100)

	// 匿名访客（userID=0）也能浏览目录，付费模块一律锁住
	list, err := svc.ListForUser(0)
	require.NoError(t, err)
	require.Len(t, list, 2)

	state := make(map[uint]bool, len(list))
	for _, m := range list {
		state[m.ID] = m.Unlocked
	}
	assert.True(t, state[free.ID])
	assert.False(t, state[paid.ID])
}

func TestModuleCreate_FreeForcesZeroCost(t *testing.T) {
	db := newTestDB(t)
	svc := newModuleService(db)

	module := &model.Module{Title: "Free", Type: model.ModuleFree, CubeCost: 100}
	require.NoError(t, svc.Create(1, module))
	assert.Equal(t, 0, module.CubeCost)
	assert.Equal(t, uint(1), module.CreatedByAdminID)
}

func TestModuleUpdate_FreeKeepsZeroCost(t *testing.T) {
	db := newTestDB(t)
	svc := newModuleService(db)

	module := &model.Module{Title: "Free", Type: model.ModuleFree}
	require.NoError(t, db.Create(module).Error)

	// 只改费用、不带 type 字段，免费模块的费用也不能被抬起来
	require.NoError(t, svc.Update(module.ID, map[string]interface{}{"cube_cost": 100}))

	var got model.Module
	require.NoError(t, db.First(&got, module.ID).Error)
	assert.Equal(t, 0, got.CubeCost)
	assert.Equal(t, model.ModuleFree, got.Type)
}

func TestModuleUpdate_PaidToFreeZeroesCost(t *testing.T) {
	db := newTestDB(t)
	svc := newModuleService(db)

	module := createPaidModule(t, db, 300)

	require.NoError(t, svc.Update(module.ID, map[string]interface{}{"type": "free"}))

	var got model.Module
	require.NoError(t, db.First(&got, module.ID).Error)
	assert.Equal(t, model.ModuleFree, got.Type)
	assert.Equal(t, 0, got.CubeCost)
}

func TestModuleUpdate_NotFound(t *testing.T) {
	db := newTestDB(t)
	svc := newModuleService(db)

	err := svc.Update(9999, map[string]interface{}{"title": "ghost"})
	assert.ErrorIs(t, err, util.ErrModuleNotFound)
}
