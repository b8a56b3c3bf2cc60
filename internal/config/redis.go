package config

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"airportbot/internal/utils"
)

// NewRedisClient returns nil when REDIS_ADDR is empty or the server does not
// answer a ping; callers fall back to the in-process cache.
func NewRedisClient(env Env) *redis.Client {
	if env.RedisAddr == "" {
		return nil
	}
	rdb := redis.NewClient(&redis.Options{
		Addr:     env.RedisAddr,
		Password: env.RedisPassword,
		DB:       env.RedisDB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		utils.Logger().Warn("redis unavailable, using in-memory cache", zap.String("addr", env.RedisAddr), zap.Error(err))
		_ = rdb.Close()
		return nil
	}
	return rdb
}
