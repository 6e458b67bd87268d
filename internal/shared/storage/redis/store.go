// Package redis Redis 存储实现
//
// 实体以 JSON 文档存放在 {prefix}/{kind}/{id} 键下，
// Create 使用 SETNX、Update 使用 SET XX，冲突判断由 Redis 单命令原子完成。
package redis

import (
	"context"
	"fmt"
	"log"
	"time"

	"entity-admin/internal/shared/model"

	"github.com/redis/go-redis/v9"
)

// DefaultPrefix 默认键前缀
const DefaultPrefix = "entity-admin"

// Store Redis 存储层
type Store struct {
	client *redis.Client
	prefix string
}

// NewStore 创建 Redis 存储实例
func NewStore(addr, password string, db int) (*Store, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	if err := ping(client); err != nil {
		client.Close()
		return nil, err
	}

	log.Printf("[Redis] Connected to %s", addr)
	return NewStoreFromClient(client, DefaultPrefix), nil
}

// NewStoreFromURL 从 URL 创建 Redis 存储实例
func NewStoreFromURL(redisURL string) (*Store, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse Redis URL: %w", err)
	}

	client := redis.NewClient(opts)
	if err := ping(client); err != nil {
		client.Close()
		return nil, err
	}

	log.Printf("[Redis] Connected to %s", opts.Addr)
	return NewStoreFromClient(client, DefaultPrefix), nil
}

// NewStoreFromClient 使用已有客户端创建存储实例
func NewStoreFromClient(client *redis.Client, prefix string) *Store {
	if prefix == "" {
		prefix = DefaultPrefix
	}
	return &Store{client: client, prefix: prefix}
}

func ping(client *redis.Client) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("failed to connect to Redis: %w", err)
	}
	return nil
}

// Close 关闭 Redis 连接
func (s *Store) Close() error {
	return s.client.Close()
}

// Client 返回底层 Redis 客户端
func (s *Store) Client() *redis.Client {
	return s.client
}

// Clients 返回 Client 实体仓库
func (s *Store) Clients() *Repository[model.Client] {
	return NewRepository[model.Client](s, "clients")
}
