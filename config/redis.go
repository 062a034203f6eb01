package config

import (
	"context"
	"os"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

var (
	// RedisClient backs the rate limiter. Nil when Redis is unreachable.
	RedisClient *redis.Client
	Ctx         = context.Background()
)

func ConnectRedis() {
	redisURL := os.Getenv("REDIS_URL")
	if redisURL == "" {
		redisURL = "redis://localhost:6379"
		zap.L().Warn("⚠️  REDIS_URL not set, using local Redis", zap.String("url", redisURL))
	}

	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		zap.L().Error("❌ invalid REDIS_URL, rate limiting disabled", zap.Error(err))
		return
	}

	client := redis.NewClient(opt)
	res, err := client.Ping(Ctx).Result()
	if err != nil {
		zap.L().Warn("⚠️  Redis unreachable, rate limiting disabled", zap.Error(err))
		_ = client.Close()
		return
	}

	RedisClient = client
	zap.L().Info("✅ Connected to Redis", zap.String("ping", res))
}

func CloseRedis() {
	if RedisClient != nil {
		_ = RedisClient.Close()
	}
}
