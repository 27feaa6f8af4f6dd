package repository

import (
	"errors"

	"hacklab_backend/internal/model"

	"gorm.io/gorm"
)

type ProgressRepository struct {
	DB *gorm.DB
}

func NewProgressRepository(db *gorm.DB) *ProgressRepository {
	return &ProgressRepository{DB: db}
}

// MarkCompleted 幂等打标：重复完成同一页面不报错也不产生第二条记录。
func (r *ProgressRepository) MarkCompleted(userID, pageID uint) error {
	record := &model.ProgressRecord{UserID: userID, PageID: pageID}
	err := r.DB.Create(record).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return nil
	}
	return err
}

func (r *ProgressRepository) FindByUser(userID uint) ([]model.ProgressRecord, error) {
	var records []model.ProgressRecord
	err := r.DB.Where("user_id = ?", userID).Order("completed_at ASC").Find(&records).Error
	return records, err
}

func (r *ProgressRepository) IsCompleted(userID, pageID uint) (bool, error) {
	var count int64
	err := r.DB.Model(&model.ProgressRecord{}).
		Where("user_id = ? AND page_id = ?", userID, pageID).
		Count(&count).Error
	return count > 0, err
}
