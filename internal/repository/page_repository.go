package repository

import (
	"hacklab_backend/internal/model"

	"gorm.io/gorm"
)

type PageRepository struct {
	DB *gorm.DB
}

func NewPageRepository(db *gorm.DB) *PageRepository {
	return &PageRepository{DB: db}
}

func (r *PageRepository) Create(page *model.Page) error {
	return r.DB.Create(page).Error
}

func (r *PageRepository) FindByID(id uint) (*model.Page, error) {
	var page model.Page
	err := r.DB.First(&page, id).Error
	return &page, err
}

func (r *PageRepository) FindByModuleID(moduleID uint) ([]model.Page, error) {
	var pages []model.Page
	err := r.DB.Where("module_id = ?", moduleID).Order("page_order ASC").Find(&pages).Error
	return pages, err
}

func (r *PageRepository) Updates(id uint, values map[string]interface{}) error {
	res := r.DB.Model(&model.Page{}).Where("id = ?", id).Updates(values)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *PageRepository) Delete(id uint) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("page_id = ?", id).Delete(&model.Question{}).Error; err != nil {
			return err
		}
		return tx.Delete(&model.Page{}, id).Error
	})
}
