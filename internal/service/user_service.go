package service

import (
	"context"
	"errors"

	"hacklab_backend/internal/model"
	"hacklab_backend/internal/repository"
	"hacklab_backend/internal/util"

	"gorm.io/gorm"
)

type UserService struct {
	UserRepo *repository.UserRepository
	Sessions SessionStore
}

func NewUserService(userRepo *repository.UserRepository, sessions SessionStore) *UserService {
	return &UserService{
		UserRepo: userRepo,
		Sessions: sessions,
	}
}

func (s *UserService) List() ([]model.User, error) {
	return s.UserRepo.FindAll()
}

func (s *UserService) Get(id uint) (*model.User, error) {
	user, err := s.UserRepo.FindByID(id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrUserNotFound
	}
	return user, err
}

// GrantCubes 管理员手工发放方块（活动补偿、赛事奖励等），
// 走原子加余额，返回发放后的用户。
func (s *UserService) GrantCubes(userID uint, amount int) (*model.User, error) {
	if _, err := s.UserRepo.FindByID(userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrUserNotFound
		}
		return nil, err
	}

	if err := s.UserRepo.CreditCubes(userID, amount); err != nil {
		return nil, err
	}
	return s.UserRepo.FindByID(userID)
}

// UpdateRole 管理员显式授予/回收角色。改角色后踢掉该用户的所有会话，
// 旧令牌里的角色声明立即作废。
func (s *UserService) UpdateRole(ctx context.Context, userID uint, role model.UserRole) error {
	err := s.UserRepo.UpdateRole(userID, role)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return util.ErrUserNotFound
	}
	if err != nil {
		return err
	}

	if kicker, ok := s.Sessions.(interface {
		DeleteAllForUser(ctx context.Context, userID uint) error
	}); ok {
		return kicker.DeleteAllForUser(ctx, userID)
	}
	return nil
}
