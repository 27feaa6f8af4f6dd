package middleware

import (
	"context"
	"strings"

	"hacklab_backend/internal/config"
	"hacklab_backend/internal/model"
	"hacklab_backend/internal/util"
	"hacklab_backend/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// SessionChecker 只关心"这个会话还活着吗"，由 Redis 会话表实现。
type SessionChecker interface {
	Exists(ctx context.Context, sessionID string) (bool, error)
}

func extractToken(c *gin.Context) string {
	authHeader := c.GetHeader("Authorization")
	if authHeader != "" {
		return strings.TrimPrefix(authHeader, "Bearer ")
	}
	return c.Query("token")
}

// AuthMiddleware 校验 JWT 签名之外还要求对应的服务端会话仍然存在，
// 登出后的令牌即使没到期也会被拒。
func AuthMiddleware(cfg *config.Config, sessions SessionChecker) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := extractToken(c)
		if tokenString == "" {
			util.Unauthorized(c)
			c.Abort()
			return
		}

		claims, err := util.ParseJWT(tokenString, cfg.JWT.Secret)
		if err != nil {
			util.Unauthorized(c)
			c.Abort()
			return
		}

		alive, err := sessions.Exists(c.Request.Context(), claims.ID)
		if err != nil {
			logger.Log.Error("session lookup failed", zap.Error(err))
			util.InternalServerError(c)
			c.Abort()
			return
		}
		if !alive {
			util.Unauthorized(c)
			c.Abort()
			return
		}

		c.Set("user", claims)
		c.Next()
	}
}

// TryAuthMiddleware 尽力而为的认证：带合法令牌则注入身份，匿名照样放行。
func TryAuthMiddleware(cfg *config.Config, sessions SessionChecker) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := extractToken(c)
		if tokenString != "" {
			if claims, err := util.ParseJWT(tokenString, cfg.JWT.Secret); err == nil {
				if alive, err := sessions.Exists(c.Request.Context(), claims.ID); err == nil && alive {
					c.Set("user", claims)
				}
			}
		}
		c.Next()
	}
}

func RoleMiddleware(roles ...model.UserRole) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := util.GetUserFromContext(c)
		if user == nil {
			util.Unauthorized(c)
			c.Abort()
			return
		}

		hasRole := false
		for _, role := range roles {
			// 管理员拥有全部权限，直接放行
			if user.Role == model.RoleAdmin {
				hasRole = true
				break
			}
			if user.Role == role {
				hasRole = true
				break
			}
		}

		if !hasRole {
			util.Forbidden(c)
			c.Abort()
			return
		}
		c.Next()
	}
}

type UserActivityRepo interface {
	UpdateLastSeen(userID uint) error
}

func ActivityMiddleware(repo UserActivityRepo) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims := util.GetUserFromContext(c)
		if claims != nil {
			// 异步更新，不阻塞主流程
			go repo.UpdateLastSeen(claims.UserID)
		}
		c.Next()
	}
}
