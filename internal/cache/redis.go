package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/GhNoticeBoard/noticeboard-backend/internal/config"
	"github.com/GhNoticeBoard/noticeboard-backend/internal/models"
	"github.com/redis/go-redis/v9"
)

// ErrCacheMiss 键不存在或已过期
var ErrCacheMiss = errors.New("cache miss")

const trendingFeedKey = "feed:trending"

type RedisCache struct {
	client *redis.Client
}

func NewRedisCache(cfg config.RedisConfig) (*RedisCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Address,
		Password: cfg.Password,
		DB:       cfg.Database,
	})

	if err := client.Ping(context.Background()).Err(); err != nil {
		return nil, err
	}

	return &RedisCache{
		client: client,
	}, nil
}

// NewRedisCacheWithClient 用已有客户端构造，测试时配合 miniredis 使用
func NewRedisCacheWithClient(client *redis.Client) *RedisCache {
	return &RedisCache{client: client}
}

func (c *RedisCache) Close() error {
	return c.client.Close()
}

// SetTrendingFeed 写入热门流快照，JSON序列化后带TTL存储
func (c *RedisCache) SetTrendingFeed(ctx context.Context, items []models.FeedItem, ttl time.Duration) error {
	data, err := json.Marshal(items)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, trendingFeedKey, data, ttl).Err()
}

// GetTrendingFeed 读取热门流快照，未命中返回 ErrCacheMiss
func (c *RedisCache) GetTrendingFeed(ctx context.Context) ([]models.FeedItem, error) {
	data, err := c.client.Get(ctx, trendingFeedKey).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrCacheMiss
	}
	if err != nil {
		return nil, err
	}

	var items []models.FeedItem
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, err
	}
	return items, nil
}

// InvalidateTrendingFeed 使热门流快照失效，内容发布后调用
func (c *RedisCache) InvalidateTrendingFeed(ctx context.Context) error {
	return c.client.Del(ctx, trendingFeedKey).Err()
}
