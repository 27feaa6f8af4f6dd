package service

import (
	"errors"

	"hacklab_backend/internal/model"
	"hacklab_backend/internal/repository"
	"hacklab_backend/internal/util"

	"gorm.io/gorm"
)

type ModuleService struct {
	ModuleRepo *repository.ModuleRepository
	DB         *gorm.DB
}

func NewModuleService(moduleRepo *repository.ModuleRepository, db *gorm.DB) *ModuleService {
	return &ModuleService{
		ModuleRepo: moduleRepo,
		DB:         db,
	}
}

// ModuleWithState 模块目录条目，附带当前用户的解锁状态。
type ModuleWithState struct {
	model.Module
	Unlocked bool `json:"unlocked"`
}

func (s *ModuleService) ListForUser(userID uint) ([]ModuleWithState, error) {
	modules, err := s.ModuleRepo.FindAll()
	if err != nil {
		return nil, err
	}

	unlocks, err := s.ModuleRepo.FindUnlocksByUser(userID)
	if err != nil {
		return nil, err
	}
	unlocked := make(map[uint]bool, len(unlocks))
	for _, u := range unlocks {
		unlocked[u.ModuleID] = true
	}

	result := make([]ModuleWithState, 0, len(modules))
	for _, m := range modules {
		result = append(result, ModuleWithState{
			Module:   m,
			Unlocked: m.Type == model.ModuleFree || m.CubeCost == 0 || unlocked[m.ID],
		})
	}
	return result, nil
}

func (s *ModuleService) Get(id uint) (*model.Module, error) {
	module, err := s.ModuleRepo.FindByID(id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrModuleNotFound
	}
	return module, err
}

// Unlock 解锁门禁。解锁记录和扣费在同一事务内：
// 扣费是条件更新（余额足够才会命中行），不命中则整个事务回滚，
// 解锁记录不会留下；并发重复解锁被唯一索引挡下，按幂等成功处理。
// 返回值为 false 表示此前已解锁过（本次未扣费）。
func (s *ModuleService) Unlock(userID, moduleID uint) (bool, error) {
	module, err := s.ModuleRepo.FindByID(moduleID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return false, util.ErrModuleNotFound
	}
	if err != nil {
		return false, err
	}

	// 快路径：已解锁直接返回，不开事务。正确性仍由唯一索引兜底。
	unlocked, err := s.ModuleRepo.IsUnlocked(userID, moduleID)
	if err != nil {
		return false, err
	}
	if unlocked {
		return false, nil
	}

	err = s.DB.Transaction(func(tx *gorm.DB) error {
		unlock := &model.ModuleUnlock{
			UserID:     userID,
			ModuleID:   moduleID,
			CubesSpent: module.CubeCost,
		}
		if err := tx.Create(unlock).Error; err != nil {
			return err
		}

		// 免费模块 (cost=0) 不扣费，总是成功
		if module.CubeCost > 0 {
			res := tx.Model(&model.User{}).
				Where("id = ? AND cubes >= ?", userID, module.CubeCost).
				Update("cubes", gorm.Expr("cubes - ?", module.CubeCost))
			if res.Error != nil {
				return res.Error
			}
			if res.RowsAffected == 0 {
				return util.ErrInsufficientCubes
			}
		}
		return nil
	})
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return false, nil
	}
	if err != nil {
		return false, err
	}

	return true, nil
}

func (s *ModuleService) Create(adminID uint, module *model.Module) error {
	module.CreatedByAdminID = adminID
	if module.Type == model.ModuleFree {
		module.CubeCost = 0
	}
	return s.ModuleRepo.Create(module)
}

// Update 维持"free 模块费用恒为 0"：按更新后的有效类型判断，
// 对 free 模块单独改 cubeCost 也会被归零。
func (s *ModuleService) Update(id uint, values map[string]interface{}) error {
	module, err := s.ModuleRepo.FindByID(id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return util.ErrModuleNotFound
	}
	if err != nil {
		return err
	}

	effectiveType := module.Type
	if t, ok := values["type"].(string); ok {
		effectiveType = model.ModuleType(t)
	}
	if effectiveType == model.ModuleFree {
		values["cube_cost"] = 0
	}

	err = s.ModuleRepo.Updates(id, values)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return util.ErrModuleNotFound
	}
	return err
}

func (s *ModuleService) Delete(id uint) error {
	return s.ModuleRepo.Delete(id)
}
