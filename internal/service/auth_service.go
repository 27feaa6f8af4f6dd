package service

import (
	"context"
	"errors"
	"time"

	"hacklab_backend/internal/config"
	"hacklab_backend/internal/model"
	"hacklab_backend/internal/repository"
	"hacklab_backend/internal/util"
	"hacklab_backend/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// SessionStore 服务端会话表。Redis 实现见 repository.SessionRepository，
// 测试里用内存表替身。
type SessionStore interface {
	Create(ctx context.Context, sessionID string, userID uint, ttl time.Duration) error
	Exists(ctx context.Context, sessionID string) (bool, error)
	Delete(ctx context.Context, sessionID string) error
}

type AuthService struct {
	UserRepo *repository.UserRepository
	Sessions SessionStore
	Cfg      *config.Config
}

func NewAuthService(userRepo *repository.UserRepository, sessions SessionStore, cfg *config.Config) *AuthService {
	return &AuthService{
		UserRepo: userRepo,
		Sessions: sessions,
		Cfg:      cfg,
	}
}

// Register 注册新用户并自动登录。角色分配规则：
//  1. 系统里还没有任何用户时，第一个注册者自举为管理员；
//  2. 提供了正确的管理员邀请码（配置项 auth.admin_invite_code）时授予管理员；
//  3. 其余一律普通用户。
//
// 原型里"用户名包含 admin 即提权"的行为是任何人都能自我提权的漏洞，
// 这里不再保留。
func (s *AuthService) Register(username, email, password, inviteCode string) (*model.User, string, error) {
	_, err := s.UserRepo.FindByUsername(username)
	if err == nil {
		return nil, "", util.ErrUsernameTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, "", err
	}

	role := model.RoleUser
	count, err := s.UserRepo.Count()
	if err != nil {
		return nil, "", err
	}
	if count == 0 {
		role = model.RoleAdmin
	} else if s.Cfg.Auth.AdminInviteCode != "" && inviteCode == s.Cfg.Auth.AdminInviteCode {
		role = model.RoleAdmin
	}

	hashed, err := util.HashSecret(password)
	if err != nil {
		return nil, "", err
	}

	user := &model.User{
		Username: username,
		Email:    email,
		Password: hashed,
		Role:     role,
	}
	if err := s.UserRepo.Create(user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, "", util.ErrUsernameTaken
		}
		return nil, "", err
	}

	token, err := s.issueToken(user)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

// Login 口令校验与答案校验走同一个 VerifySecret 能力。
// 用户不存在和口令不对返回同一个错误，不给枚举用户名留口子。
func (s *AuthService) Login(username, password string) (*model.User, string, error) {
	user, err := s.UserRepo.FindByUsername(username)
	if err != nil {
		return nil, "", util.ErrInvalidCreds
	}

	if !util.VerifySecret(password, user.Password) {
		return nil, "", util.ErrInvalidCreds
	}

	// 登录时间写失败不阻断登录，只记日志
	if err := s.UserRepo.UpdateLastLogin(user.ID); err != nil {
		logger.Log.Warn("failed to update last login", zap.Error(err))
	}

	token, err := s.issueToken(user)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

func (s *AuthService) issueToken(user *model.User) (string, error) {
	token, sessionID, err := util.GenerateJWT(user, s.Cfg.JWT.Secret, s.Cfg.JWT.ExpireTime)
	if err != nil {
		return "", err
	}
	if err := s.Sessions.Create(context.Background(), sessionID, user.ID, s.Cfg.JWT.ExpireTime); err != nil {
		return "", err
	}
	return token, nil
}

// Logout 删除服务端会话，令牌即刻失效，无需等待 JWT 过期。
func (s *AuthService) Logout(ctx context.Context, sessionID string) error {
	return s.Sessions.Delete(ctx, sessionID)
}

func (s *AuthService) GetCurrentUser(c *gin.Context) *model.User {
	claims := util.GetUserFromContext(c)
	if claims == nil {
		return nil
	}

	user, _ := s.UserRepo.FindByID(claims.UserID)
	return user
}
