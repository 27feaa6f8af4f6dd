package service

import (
	"errors"
	"time"

	"hacklab_backend/internal/model"
	"hacklab_backend/internal/repository"
	"hacklab_backend/internal/util"
	"hacklab_backend/pkg/logger"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// GiftCodeService 礼品码兑换引擎，和奖励引擎共用同一套
// "一次性领取 + 原子入账"的事务纪律。
type GiftCodeService struct {
	GiftCodeRepo *repository.GiftCodeRepository
	DB           *gorm.DB
}

func NewGiftCodeService(giftCodeRepo *repository.GiftCodeRepository, db *gorm.DB) *GiftCodeService {
	return &GiftCodeService{
		GiftCodeRepo: giftCodeRepo,
		DB:           db,
	}
}

// Redeem 兑换礼品码。停用标记、兑换人、兑换时间由一条条件更新
// 同时写入：WHERE active 且未被使用，RowsAffected=0 即判定为
// 并发竞争的失败方，返回 ErrGiftCodeUsed。码值入账和状态翻转
// 在同一事务内，不存在"已停用但没加过钱"的中间态。
func (s *GiftCodeService) Redeem(userID uint, code string) (int, error) {
	gc, err := s.GiftCodeRepo.FindByCode(code)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, util.ErrGiftCodeNotFound
	}
	if err != nil {
		return 0, err
	}

	if !gc.Active || gc.UsedByUserID != nil {
		return 0, util.ErrGiftCodeUsed
	}

	value := gc.Value
	err = s.DB.Transaction(func(tx *gorm.DB) error {
		now := time.Now()
		res := tx.Model(&model.GiftCode{}).
			Where("id = ? AND active = ? AND used_by_user_id IS NULL", gc.ID, true).
			Updates(map[string]interface{}{
				"active":          false,
				"used_by_user_id": userID,
				"used_at":         now,
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return util.ErrGiftCodeUsed
		}

		return tx.Model(&model.User{}).
			Where("id = ?", userID).
			Update("cubes", gorm.Expr("cubes + ?", value)).
			Error
	})
	if err != nil {
		return 0, err
	}

	return value, nil
}

func (s *GiftCodeService) Create(code string, value int, active bool) (*model.GiftCode, error) {
	gc := &model.GiftCode{
		Code:   code,
		Value:  value,
		Active: active,
	}
	if err := s.GiftCodeRepo.Create(gc); err != nil {
		return nil, err
	}
	return gc, nil
}

func (s *GiftCodeService) List() ([]model.GiftCode, error) {
	return s.GiftCodeRepo.FindAll()
}

func (s *GiftCodeService) Update(id uint, values map[string]interface{}) error {
	err := s.GiftCodeRepo.Updates(id, values)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return util.ErrGiftCodeNotFound
	}
	return err
}

func (s *GiftCodeService) Delete(id uint) error {
	return s.GiftCodeRepo.Delete(id)
}

// DisableExpired 停用超期未兑换的礼品码，由后台定时任务驱动。
func (s *GiftCodeService) DisableExpired(expireDays int) error {
	if expireDays <= 0 {
		return nil
	}
	cutoff := time.Now().AddDate(0, 0, -expireDays)
	n, err := s.GiftCodeRepo.DisableExpired(cutoff)
	if err != nil {
		return err
	}
	if n > 0 {
		logger.Log.Info("expired gift codes disabled", zap.Int64("count", n))
	}
	return nil
}
