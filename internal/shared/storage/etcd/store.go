// Package etcd etcd 存储实现
//
// Create/Update 通过事务比较 key 的 CreateRevision 完成“检查-写入”，
// 在 etcd 集群范围内保证原子性。
package etcd

import (
	"context"
	"fmt"
	"log"
	"time"

	"entity-admin/internal/shared/model"

	clientv3 "go.etcd.io/etcd/client/v3"
)

// Store etcd 存储客户端
type Store struct {
	client *clientv3.Client
	prefix string
}

// Config etcd 配置
type Config struct {
	Endpoints   []string
	DialTimeout time.Duration
	Prefix      string
}

// NewStore 创建 etcd 存储客户端
func NewStore(cfg Config) (*Store, error) {
	if len(cfg.Endpoints) == 0 {
		return nil, fmt.Errorf("etcd endpoints are required")
	}
	if cfg.DialTimeout == 0 {
		cfg.DialTimeout = 5 * time.Second
	}
	if cfg.Prefix == "" {
		cfg.Prefix = "/entity-admin"
	}

	client, err := clientv3.New(clientv3.Config{
		Endpoints:   cfg.Endpoints,
		DialTimeout: cfg.DialTimeout,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to etcd: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	_, err = client.Status(ctx, cfg.Endpoints[0])
	if err != nil {
		client.Close()
		return nil, fmt.Errorf("etcd health check failed: %w", err)
	}

	log.Printf("[etcd] Connected to %v", cfg.Endpoints)
	return &Store{
		client: client,
		prefix: cfg.Prefix,
	}, nil
}

// Close 关闭连接
func (s *Store) Close() error {
	return s.client.Close()
}

// Clients 返回 Client 实体仓库
func (s *Store) Clients() *Repository[model.Client] {
	return NewRepository[model.Client](s, "clients")
}
