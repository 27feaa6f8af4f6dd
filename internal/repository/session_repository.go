package repository

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/go-redis/redis/v8"
)

const sessionKeyPrefix = "session:"

// SessionRepository 服务端会话表，落在 Redis 里。
// JWT 的 jti 作为会话键，登出即删除，令牌随之失效。
type SessionRepository struct {
	Redis *redis.Client
}

func NewSessionRepository(rdb *redis.Client) *SessionRepository {
	return &SessionRepository{Redis: rdb}
}

func (r *SessionRepository) Create(ctx context.Context, sessionID string, userID uint, ttl time.Duration) error {
	return r.Redis.Set(ctx, sessionKeyPrefix+sessionID, strconv.FormatUint(uint64(userID), 10), ttl).Err()
}

func (r *SessionRepository) Exists(ctx context.Context, sessionID string) (bool, error) {
	n, err := r.Redis.Exists(ctx, sessionKeyPrefix+sessionID).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (r *SessionRepository) Delete(ctx context.Context, sessionID string) error {
	return r.Redis.Del(ctx, sessionKeyPrefix+sessionID).Err()
}

// DeleteAllForUser 清掉某个用户的全部会话（改角色、封号时用）。
func (r *SessionRepository) DeleteAllForUser(ctx context.Context, userID uint) error {
	want := fmt.Sprintf("%d", userID)
	iter := r.Redis.Scan(ctx, 0, sessionKeyPrefix+"*", 100).Iterator()
	for iter.Next(ctx) {
		key := iter.Val()
		val, err := r.Redis.Get(ctx, key).Result()
		if err == redis.Nil {
			continue
		}
		if err != nil {
			return err
		}
		if val == want {
			if err := r.Redis.Del(ctx, key).Err(); err != nil {
				return err
			}
		}
	}
	return iter.Err()
}
