package repository

import (
	"hacklab_backend/internal/model"

	"gorm.io/gorm"
)

type ModuleRepository struct {
	DB *gorm.DB
}

func NewModuleRepository(db *gorm.DB) *ModuleRepository {
	return &ModuleRepository{DB: db}
}

func (r *ModuleRepository) Create(module *model.Module) error {
	return r.DB.Create(module).Error
}

func (r *ModuleRepository) FindByID(id uint) (*model.Module, error) {
	var module model.Module
	err := r.DB.First(&module, id).Error
	return &module, err
}

func (r *ModuleRepository) FindAll() ([]model.Module, error) {
	var modules []model.Module
	err := r.DB.Order("id ASC").Find(&modules).Error
	return modules, err
}

func (r *ModuleRepository) Updates(id uint, values map[string]interface{}) error {
	res := r.DB.Model(&model.Module{}).Where("id = ?", id).Updates(values)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *ModuleRepository) Delete(id uint) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		var pageIDs []uint
		if err := tx.Model(&model.Page{}).Where("module_id = ?", id).Pluck("id", &pageIDs).Error; err != nil {
			return err
		}
		if len(pageIDs) > 0 {
			if err := tx.Where("page_id IN ?", pageIDs).Delete(&model.Question{}).Error; err != nil {
				return err
			}
			if err := tx.Where("module_id = ?", id).Delete(&model.Page{}).Error; err != nil {
				return err
			}
		}
		return tx.Delete(&model.Module{}, id).Error
	})
}

func (r *ModuleRepository) IsUnlocked(userID, moduleID uint) (bool, error) {
	var count int64
	err := r.DB.Model(&model.ModuleUnlock{}).
		Where("user_id = ? AND module_id = ?", userID, moduleID).
		Count(&count).Error
	return count > 0, err
}

func (r *ModuleRepository) FindUnlocksByUser(userID uint) ([]model.ModuleUnlock, error) {
	var unlocks []model.ModuleUnlock
	err := r.DB.Where("user_id = ?", userID).Find(&unlocks).Error
	return unlocks, err
}
