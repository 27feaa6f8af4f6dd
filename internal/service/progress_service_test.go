package service

import (
	"testing"

	"hacklab_backend/internal/model"
	"hacklab_backend/internal/repository"
	"hacklab_backend/internal/util"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newProgressService(db *gorm.DB) *ProgressService {
	return NewProgressService(
		repository.NewProgressRepository(db),
		repository.NewPageRepository(db),
		repository.NewSolveRepository(db),
	)
}

func TestMarkPageComplete_Idempotent(t *testing.T) {
	db := newTestDB(t)
	svc := newProgressService(db)

	user := createTestUser(t, db, "alice", 0)
	page := createTestPage(t, db)

	require.NoError(t, svc.MarkPageComplete(user.ID, page.ID))
	// 重复打标不报错、不产生第二条记录
	require.NoError(t, svc.MarkPageComplete(user.ID, page.ID))

	var count int64
	db.Model(&model.ProgressRecord{}).
		Where("user_id = ? AND page_id = ?", user.ID, page.ID).
		Count(&count)
	assert.Equal(t, int64(1), count)
}

func TestMarkPageComplete_PageNotFound(t *testing.T) {
	db := newTestDB(t)
	svc := newProgressService(db)

	user := createTestUser(t, db, "alice", 0)
	assert.ErrorIs(t, svc.MarkPageComplete(user.ID, 9999), util.ErrPageNotFound)
}

func TestProgressOverview(t *testing.T) {
	db := newTestDB(t)
	svc := newProgressService(db)
	challenge := newChallengeService(db)

	user := createTestUser(t, db, "alice", 0)
	page := createTestPage(t, db)
	question := createTestQuestion(t, db, "flag{done}", 5)

	require.NoError(t, svc.MarkPageComplete(user.ID, page.ID))
	_, err := challenge.SubmitAnswer(user.ID, question.ID, "flag{done}")
	require.NoError(t, err)

	overview, err := svc.Overview(user.ID)
	require.NoError(t, err)
	assert.Len(t, overview.CompletedPages, 1)
	assert.Len(t, overview.SolvedQuestions, 1)
}

func TestProgressOverview_Empty(t *testing.T) {
	db := newTestDB(t)
	svc := newProgressService(db)

	user := createTestUser(t, db, "alice", 0)

	overview, err := svc.Overview(user.ID)
	require.NoError(t, err)
	assert.Empty(t, overview.CompletedPages)
	assert.Empty(t, overview.SolvedQuestions)
}
