package config

import (
	"context"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

// OpenRedis اتصال به Redis؛ اگر آدرس خالی باشد nil برمی‌گرداند و برنامه بدون کش کار می‌کند
func OpenRedis(ctx context.Context, addr, password string, db int) (*redis.Client, error) {
	if addr == "" {
		Logger.Warn("REDIS_ADDR is not set, running without cache")
		return nil, nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	// بررسی اتصال به Redis
	pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	s, err := client.Ping(pingCtx).Result()
	if err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("connect redis %s: %w", addr, err)
	}
	Logger.Info("Connected to Redis", zap.String("addr", addr), zap.String("ping", s))
	return client, nil
}
