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

func newPageService(db *gorm.DB) *PageService {
	return NewPageService(
		repository.NewPageRepository(db),
		repository.NewModuleRepository(db),
	)
}

func TestPageListByModule_Ordered(t *testing.T) {
	db := newTestDB(t)
	svc := newPageService(db)

	module := &model.Module{Title: "M", Type: model.ModuleFree}
	require.NoError(t, db.Create(module).Error)

	require.NoError(t, svc.Create(&model.Page{ModuleID: module.ID, Title: "third", Type: model.PageText, Order: 3}))
	require.NoError(t, svc.Create(&model.Page{ModuleID: module.ID, Title: "first", Type: model.PageText, Order: 1}))
	require.NoError(t, svc.Create(&model.Page{ModuleID: module.ID, Title: "second", Type: model.PageCode, Order: 2}))

	pages, err := svc.ListByModule(module.ID)
	require.NoError(t, err)
	require.Len(t, pages, 3)
	assert.Equal(t, "first", pages[0].Title)
	assert.Equal(t, "second", pages[1].Title)
	assert.Equal(t, "third", pages[2].Title)
}

func TestPageCreate_ModuleNotFound(t *testing.T) {
	db := newTestDB(t)
	svc := newPageService(db)

	err := svc.Create(&model.Page{ModuleID: 9999, Title: "orphan", Type: model.PageText})
	assert.ErrorIs(t, err, util.ErrModuleNotFound)
}

func TestPageGet_NotFound(t *testing.T) {
	db := newTestDB(t)
	svc := newPageService(db)

	_, err := svc.Get(9999)
	assert.ErrorIs(t, err, util.ErrPageNotFound)
}

func TestPageDelete_CascadesQuestions(t *testing.T) {
	db := newTestDB(t)
	svc := newPageService(db)

	question := createTestQuestion(t, db, "answer", 5)

	require.NoError(t, svc.Delete(question.PageID))

	var count int64
	db.Model(&model.Question{}).Where("page_id = ?", question.PageID).Count(&count)
	assert.Equal(t, int64(0), count)
}
