package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"celebnetwork/internal/config"
	celebrityPort "celebnetwork/internal/ports/celebrity"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

const featuredKey = "celebrities:featured"

// FeaturedCacheRedis هر ترکیب (verifiedOnly, limit) یک فیلد در هش featured است
// تا Invalidate با یک DEL همه را پاک کند
type FeaturedCacheRedis struct {
	Client *redis.Client
	TTL    time.Duration
}

func NewFeaturedCacheRedis(client *redis.Client, ttl time.Duration) *FeaturedCacheRedis {
	return &FeaturedCacheRedis{
		Client: client,
		TTL:    ttl,
	}
}

func featuredField(limit int, verifiedOnly bool) string {
	return fmt.Sprintf("%t:%d", verifiedOnly, limit)
}

func (r *FeaturedCacheRedis) Get(ctx context.Context, limit int, verifiedOnly bool) ([]*celebrityPort.CelebrityDTO, bool) {
	raw, err := r.Client.HGet(ctx, featuredKey, featuredField(limit, verifiedOnly)).Bytes()
	if err != nil {
		if err != redis.Nil {
			config.Logger.Warn("Featured cache read failed", zap.Error(err))
		}
		return nil, false
	}

	var list []*celebrityPort.CelebrityDTO
	if err := json.Unmarshal(raw, &list); err != nil {
		config.Logger.Warn("Featured cache entry is corrupt", zap.Error(err))
		return nil, false
	}
	return list, true
}

func (r *FeaturedCacheRedis) Set(ctx context.Context, limit int, verifiedOnly bool, list []*celebrityPort.CelebrityDTO) error {
	raw, err := json.Marshal(list)
	if err != nil {
		return err
	}

	pipe := r.Client.TxPipeline()
	pipe.HSet(ctx, featuredKey, featuredField(limit, verifiedOnly), raw)
	if r.TTL > 0 {
		pipe.Expire(ctx, featuredKey, r.TTL)
	}
	_, err = pipe.Exec(ctx)
	return err
}

func (r *FeaturedCacheRedis) Invalidate(ctx context.Context) error {
	return r.Client.Del(ctx, featuredKey).Err()
}
