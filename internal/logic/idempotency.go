package logic

import (
	"context"
	"time"

	"github.com/Anamiiikka/fundhive/internal/apperr"
	"github.com/Anamiiikka/fundhive/internal/logger"
	"github.com/redis/go-redis/v9"
)

const idemKeyPrefix = "fundhive:idem:"

// Idempotency 基于 redis 的出资重复提交检查。
// 同一幂等键在TTL内只允许注册一次，重复提交在任何账本写入前被拒绝。
type Idempotency struct {
	client *redis.Client
	ttl    time.Duration
}

// NewIdempotency 创建幂等检查器
func NewIdempotency(client *redis.Client, ttl time.Duration) *Idempotency {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &Idempotency{client: client, ttl: ttl}
}

// Register 注册幂等键，键已存在时返回状态冲突
func (i *Idempotency) Register(ctx context.Context, key string) error {
	ok, err := i.client.SetNX(ctx, idemKeyPrefix+key, 1, i.ttl).Result()
	if err != nil {
		return apperr.Unavailable("Idempotency store unavailable", err)
	}
	if !ok {
		return apperr.Conflict("Duplicate contribution submission")
	}
	return nil
}

// Release 释放幂等键。出资被拒绝时调用，
// 同一键的修正重试不应被当作重复提交。
func (i *Idempotency) Release(ctx context.Context, key string) {
	if err := i.client.Del(ctx, idemKeyPrefix+key).Err(); err != nil {
		logger.Warn("Failed to release idempotency key %s: %v", key, err)
	}
}
