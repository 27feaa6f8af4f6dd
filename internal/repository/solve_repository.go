package repository

import (
	"hacklab_backend/internal/model"

	"gorm.io/gorm"
)

type SolveRepository struct {
	DB *gorm.DB
}

func NewSolveRepository(db *gorm.DB) *SolveRepository {
	return &SolveRepository{DB: db}
}

func (r *SolveRepository) Exists(userID, questionID uint) (bool, error) {
	var count int64
	err := r.DB.Model(&model.SolveRecord{}).
		Where("user_id = ? AND question_id = ?", userID, questionID).
		Count(&count).Error
	return count > 0, err
}

func (r *SolveRepository) FindByUser(userID uint) ([]model.SolveRecord, error) {
	var records []model.SolveRecord
	err := r.DB.Where("user_id = ?", userID).Order("solved_at ASC").Find(&records).Error
	return records, err
}
