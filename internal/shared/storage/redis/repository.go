package redis

import (
	"context"
	"errors"
	"fmt"

	"entity-admin/internal/shared/model"
	"entity-admin/internal/shared/storage"
	"entity-admin/internal/shared/storage/kvcodec"

	"github.com/redis/go-redis/v9"
)

// Repository 单一实体类型的 Redis 仓库
type Repository[E model.Entity] struct {
	store *Store
	kind  string
}

var _ storage.ClientRepository = (*Repository[model.Client])(nil)

// NewRepository 创建实体仓库，kind 作为键的中间段
func NewRepository[E model.Entity](store *Store, kind string) *Repository[E] {
	return &Repository[E]{store: store, kind: kind}
}

func (r *Repository[E]) key(id int64) string {
	return kvcodec.Key(r.store.prefix, r.kind, id)
}

// Create 仅当键不存在时写入
func (r *Repository[E]) Create(ctx context.Context, entity E) error {
	id := entity.EntityID()
	data, err := kvcodec.Encode(entity)
	if err != nil {
		return err
	}

	ok, err := r.store.client.SetNX(ctx, r.key(id), data, 0).Result()
	if err != nil {
		return fmt.Errorf("redis: create %s/%d: %w", r.kind, id, err)
	}
	if !ok {
		return storage.AlreadyExists(id)
	}
	return nil
}

// Update 仅当键已存在时覆盖
func (r *Repository[E]) Update(ctx context.Context, entity E) error {
	id := entity.EntityID()
	data, err := kvcodec.Encode(entity)
	if err != nil {
		return err
	}

	ok, err := r.store.client.SetXX(ctx, r.key(id), data, 0).Result()
	if err != nil {
		return fmt.Errorf("redis: update %s/%d: %w", r.kind, id, err)
	}
	if !ok {
		return storage.NotFound(id)
	}
	return nil
}

// Delete 删除键，不存在时为空操作
func (r *Repository[E]) Delete(ctx context.Context, id int64) error {
	if err := r.store.client.Del(ctx, r.key(id)).Err(); err != nil {
		return fmt.Errorf("redis: delete %s/%d: %w", r.kind, id, err)
	}
	return nil
}

// GetByID 读取实体
func (r *Repository[E]) GetByID(ctx context.Context, id int64) (E, error) {
	var zero E
	data, err := r.store.client.Get(ctx, r.key(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return zero, storage.NotFound(id)
	}
	if err != nil {
		return zero, fmt.Errorf("redis: get %s/%d: %w", r.kind, id, err)
	}
	return kvcodec.Decode[E](data)
}
