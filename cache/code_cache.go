package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// CodeCache 验证码缓存。
// 键直接使用用户名或邮箱，与发送验证码的一方保持一致。
type CodeCache struct {
	client redis.Cmdable
	ttl    time.Duration
}

// NewCodeCache 创建验证码缓存
func NewCodeCache(client redis.Cmdable, ttl time.Duration) *CodeCache {
	return &CodeCache{client: client, ttl: ttl}
}

// GetCode 读取标识对应的验证码，不存在时 ok 为 false
func (c *CodeCache) GetCode(ctx context.Context, identifier string) (string, bool, error) {
	code, err := c.client.Get(ctx, identifier).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("failed to get code for %s: %w", identifier, err)
	}
	return code, true, nil
}

// SetCode 写入验证码并设置过期时间
func (c *CodeCache) SetCode(ctx context.Context, identifier, code string) error {
	if err := c.client.Set(ctx, identifier, code, c.ttl).Err(); err != nil {
		return fmt.Errorf("failed to set code for %s: %w", identifier, err)
	}
	return nil
}
