package redis

import (
	"context"
	"strings"

	"celebnetwork/internal/config"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

const viewKeyPrefix = "celebrity:views:"

// ViewCounterRedis بازدیدها را در Redis جمع می‌کند تا worker به صورت دسته‌ای در دیتابیس بنویسد
type ViewCounterRedis struct {
	Client *redis.Client
}

func NewViewCounterRedis(client *redis.Client) *ViewCounterRedis {
	return &ViewCounterRedis{
		Client: client,
	}
}

func (r *ViewCounterRedis) Record(ctx context.Context, celebrityID string) error {
	return r.Client.Incr(ctx, viewKeyPrefix+celebrityID).Err()
}

func (r *ViewCounterRedis) Pending(ctx context.Context, celebrityID string) (int64, error) {
	n, err := r.Client.Get(ctx, viewKeyPrefix+celebrityID).Int64()
	if err == redis.Nil {
		return 0, nil
	}
	return n, err
}

func (r *ViewCounterRedis) Restore(ctx context.Context, celebrityID string, n int64) error {
	if n <= 0 {
		return nil
	}
	return r.Client.IncrBy(ctx, viewKeyPrefix+celebrityID, n).Err()
}

// Drain همه‌ی شمارنده‌ها را با GETDEL برمی‌دارد؛ بازدیدی که بین SCAN و GETDEL برسد در کلید تازه می‌ماند
func (r *ViewCounterRedis) Drain(ctx context.Context) (map[string]int64, error) {
	out := make(map[string]int64)

	iter := r.Client.Scan(ctx, 0, viewKeyPrefix+"*", 100).Iterator()
	for iter.Next(ctx) {
		key := iter.Val()
		n, err := r.Client.GetDel(ctx, key).Int64()
		if err == redis.Nil {
			continue
		}
		if err != nil {
			config.Logger.Warn("Failed to drain view counter", zap.String("key", key), zap.Error(err))
			continue
		}
		if n > 0 {
			out[strings.TrimPrefix(key, viewKeyPrefix)] += n
		}
	}
	if err := iter.Err(); err != nil {
		return out, err
	}
	return out, nil
}
