package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"airportbot/internal/domain/models"
	"airportbot/internal/utils"
)

type RedisCache struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewRedis(rdb *redis.Client, ttl time.Duration) *RedisCache {
	return &RedisCache{rdb: rdb, ttl: ttl}
}

func (c *RedisCache) Get(ctx context.Context, key string) ([]models.ChatMessage, bool) {
	bs, err := c.rdb.Get(ctx, key).Bytes()
	if err != nil {
		if err != redis.Nil {
			utils.Logger().Warn("reply cache get failed", zap.Error(err))
		}
		return nil, false
	}
	var msgs []models.ChatMessage
	if err := json.Unmarshal(bs, &msgs); err != nil || len(msgs) == 0 {
		return nil, false
	}
	return msgs, true
}

func (c *RedisCache) Set(ctx context.Context, key string, msgs []models.ChatMessage) {
	bs, err := json.Marshal(msgs)
	if err != nil {
		return
	}
	if err := c.rdb.SetEx(ctx, key, bs, c.ttl).Err(); err != nil {
		utils.Logger().Warn("reply cache set failed", zap.Error(err))
	}
}
