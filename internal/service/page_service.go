package service

import (
	"errors"

	"hacklab_backend/internal/model"
	"hacklab_backend/internal/repository"
	"hacklab_backend/internal/util"

	"gorm.io/gorm"
)

type PageService struct {
	PageRepo   *repository.PageRepository
	ModuleRepo *repository.ModuleRepository
}

func NewPageService(pageRepo *repository.PageRepository, moduleRepo *repository.ModuleRepository) *PageService {
	return &PageService{
		PageRepo:   pageRepo,
		ModuleRepo: moduleRepo,
	}
}

func (s *PageService) Get(id uint) (*model.Page, error) {
	page, err := s.PageRepo.FindByID(id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrPageNotFound
	}
	return page, err
}

// ListByModule 按显式序号升序返回模块下的页面。
func (s *PageService) ListByModule(moduleID uint) ([]model.Page, error) {
	if _, err := s.ModuleRepo.FindByID(moduleID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrModuleNotFound
		}
		return nil, err
	}
	return s.PageRepo.FindByModuleID(moduleID)
}

func (s *PageService) Create(page *model.Page) error {
	if _, err := s.ModuleRepo.FindByID(page.ModuleID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return util.ErrModuleNotFound
		}
		return err
	}
	return s.PageRepo.Create(page)
}

func (s *PageService) Update(id uint, values map[string]interface{}) error {
	err := s.PageRepo.Updates(id, values)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return util.ErrPageNotFound
	}
	return err
}

func (s *PageService) Delete(id uint) error {
	return s.PageRepo.Delete(id)
}
