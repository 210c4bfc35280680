package config

import (
	"context"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

// RedisClient متغیر برای دسترسی به Redis
var RedisClient *redis.Client

// InitRedis اتصال به Redis را راه‌اندازی می‌کند
func InitRedis(ctx context.Context, cfg *Config) {
	RedisClient = redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})

	// بررسی اتصال به Redis
	s, err := RedisClient.Ping(ctx).Result()
	if err != nil {
		Logger.Fatal("Error connecting to Redis", zap.String("addr", cfg.RedisAddr), zap.Error(err))
	}
	Logger.Info("Connected to Redis", zap.String("ping", s))
}
