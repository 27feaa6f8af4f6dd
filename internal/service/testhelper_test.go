package service

import (
	"fmt"
	"path/filepath"
	"testing"

	"hacklab_backend/internal/model"
	"hacklab_backend/internal/util"
	"hacklab_backend/pkg/logger"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func init() {
	logger.Log = zap.NewNop()
}

// newTestDB 基于临时文件的 sqlite 库。并发测试需要多个连接
// 访问同一文件，内存库做不到。TranslateError 保证唯一索引冲突
// 在 sqlite 下同样翻译成 gorm.ErrDuplicatedKey。
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?_busy_timeout=10000&_journal_mode=WAL",
		filepath.Join(t.TempDir(), "test.db"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&model.User{},
		&model.Module{},
		&model.ModuleUnlock{},
		&model.Page{},
		&model.Question{},
		&model.SolveRecord{},
		&model.GiftCode{},
		&model.ProgressRecord{},
	))

	return db
}

func createTestUser(t *testing.T, db *gorm.DB, username string, cubes int) *model.User {
	t.Helper()

	hashed, err := util.HashSecret("test-password")
	require.NoError(t, err)

	user := &model.User{
		Username: username,
		Email:    username + "@test.local",
		Password: hashed,
		Role:     model.RoleUser,
		Cubes:    cubes,
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

// createTestQuestion 连同所属模块和页面一起建，外键才完整。
func createTestQuestion(t *testing.T, db *gorm.DB, answer string, reward int) *model.Question {
	t.Helper()

	module := &model.Module{Title: "Test Module", Type: model.ModuleFree}
	require.NoError(t, db.Create(module).Error)

	page := &model.Page{ModuleID: module.ID, Title: "Test Page", Type: model.PageText, Order: 1}
	require.NoError(t, db.Create(page).Error)

	hash, err := util.HashSecret(answer)
	require.NoError(t, err)

	question := &model.Question{
		PageID:     page.ID,
		Text:       "test question",
		AnswerHash: hash,
		CubeReward: reward,
		Order:      1,
	}
	require.NoError(t, db.Create(question).Error)
	return question
}

func userCubes(t *testing.T, db *gorm.DB, userID uint) int {
	t.Helper()

	var user model.User
	require.NoError(t, db.First(&user, userID).Error)
	return user.Cubes
}
