package repository

import (
	"strings"
	"time"

	"hacklab_backend/internal/model"

	"gorm.io/gorm"
)

type GiftCodeRepository struct {
	DB *gorm.DB
}

func NewGiftCodeRepository(db *gorm.DB) *GiftCodeRepository {
	return &GiftCodeRepository{DB: db}
}

func (r *GiftCodeRepository) Create(code *model.GiftCode) error {
	code.Code = strings.ToUpper(code.Code)
	return r.DB.Create(code).Error
}

func (r *GiftCodeRepository) FindByID(id uint) (*model.GiftCode, error) {
	var code model.GiftCode
	err := r.DB.First(&code, id).Error
	return &code, err
}

// FindByCode 大小写不敏感查找：码值入库时统一大写，查找前同样归一化。
func (r *GiftCodeRepository) FindByCode(code string) (*model.GiftCode, error) {
	var gc model.GiftCode
	err := r.DB.Where("code = ?", strings.ToUpper(code)).First(&gc).Error
	return &gc, err
}

func (r *GiftCodeRepository) FindAll() ([]model.GiftCode, error) {
	var codes []model.GiftCode
	err := r.DB.Order("active DESC, id ASC").Find(&codes).Error
	return codes, err
}

func (r *GiftCodeRepository) Updates(id uint, values map[string]interface{}) error {
	if raw, ok := values["code"].(string); ok {
		values["code"] = strings.ToUpper(raw)
	}
	res := r.DB.Model(&model.GiftCode{}).Where("id = ?", id).Updates(values)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *GiftCodeRepository) Delete(id uint) error {
	return r.DB.Delete(&model.GiftCode{}, id).Error
}

// DisableExpired 批量停用超过有效期的未兑换礼品码。
func (r *GiftCodeRepository) DisableExpired(cutoff time.Time) (int64, error) {
	res := r.DB.Model(&model.GiftCode{}).
		Where("active = ? AND used_by_user_id IS NULL AND created_at < ?", true, cutoff).
		Update("active", false)
	return res.RowsAffected, res.Error
}
