// Package redis Redis 缓存实现
package redis

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"entity-admin/internal/shared/cache"
	"entity-admin/internal/shared/model"
	"entity-admin/internal/shared/storage/kvcodec"

	"github.com/redis/go-redis/v9"
)

// Store Redis 实体缓存
type Store[E model.Entity] struct {
	client *redis.Client
	kind   string
	ttl    time.Duration
}

var _ cache.EntityCache[model.Client] = (*Store[model.Client])(nil)

// NewStoreFromURL 从 URL 创建 Redis 缓存实例
func NewStoreFromURL[E model.Entity](redisURL, kind string, ttl time.Duration) (*Store[E], error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse Redis URL: %w", err)
	}

	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	log.Printf("[Redis/Cache] Connected to %s", opts.Addr)
	return NewStoreFromClient[E](client, kind, ttl), nil
}

// NewStoreFromClient 从现有 Redis 客户端创建缓存实例
func NewStoreFromClient[E model.Entity](client *redis.Client, kind string, ttl time.Duration) *Store[E] {
	if ttl <= 0 {
		ttl = cache.TTLEntity
	}
	return &Store[E]{client: client, kind: kind, ttl: ttl}
}

func (s *Store[E]) key(id int64) string {
	return kvcodec.Key(cache.KeyEntity, s.kind, id)
}

func (s *Store[E]) Get(ctx context.Context, id int64) (E, bool, error) {
	var zero E
	data, err := s.client.Get(ctx, s.key(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return zero, false, nil
	}
	if err != nil {
		return zero, false, err
	}
	entity, err := kvcodec.Decode[E](data)
	if err != nil {
		return zero, false, err
	}
	return entity, true, nil
}

func (s *Store[E]) Set(ctx context.Context, entity E) error {
	data, err := kvcodec.Encode(entity)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, s.key(entity.EntityID()), data, s.ttl).Err()
}

func (s *Store[E]) Invalidate(ctx context.Context, id int64) error {
	return s.client.Del(ctx, s.key(id)).Err()
}

// Close 关闭 Redis 连接
func (s *Store[E]) Close() error {
	return s.client.Close()
}
