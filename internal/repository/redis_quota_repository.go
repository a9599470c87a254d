package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"FestivalMarket-App/internal/domain/repository"
	"FestivalMarket-App/internal/infrastructure/cache"
)

// usageKeyTTL 月が変わった後もしばらくは参照できるように残す
const usageKeyTTL = 62 * 24 * time.Hour

// RedisQuotaRepository Redisのカウンタ (api_usage:{month}:{api}) でAPI利用回数を管理する
type RedisQuotaRepository struct {
	client *cache.RedisClient
}

// NewRedisQuotaRepository 新しいRedisQuotaRepositoryを作成
func NewRedisQuotaRepository(client *cache.RedisClient) repository.QuotaRepository {
	return &RedisQuotaRepository{client: client}
}

func usageKey(month, apiType string) string {
	return fmt.Sprintf("api_usage:%s:%s", month, apiType)
}

func (r *RedisQuotaRepository) GetUsage(ctx context.Context, month, apiType string) (int, error) {
	count, err := r.client.GetClient().Get(ctx, usageKey(month, apiType)).Int()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("API利用回数の取得に失敗: %w", err)
	}
	return count, nil
}

func (r *RedisQuotaRepository) Increment(ctx context.Context, month, apiType string, n int) (int, error) {
	key := usageKey(month, apiType)

	pipe := r.client.GetClient().TxPipeline()
	incr := pipe.IncrBy(ctx, key, int64(n))
	pipe.Expire(ctx, key, usageKeyTTL)
	if _, err := pipe.Exec(ctx); err != nil {
		return 0, fmt.Errorf("API利用回数の加算に失敗: %w", err)
	}
	return int(incr.Val()), nil
}
