package etcd

import (
	"context"
	"fmt"

	"entity-admin/internal/shared/model"
	"entity-admin/internal/shared/storage"
	"entity-admin/internal/shared/storage/kvcodec"

	clientv3 "go.etcd.io/etcd/client/v3"
)

// Repository 单一实体类型的 etcd 仓库
type Repository[E model.Entity] struct {
	store *Store
	kind  string
}

var _ storage.ClientRepository = (*Repository[model.Client])(nil)

// NewRepository 创建实体仓库
func NewRepository[E model.Entity](store *Store, kind string) *Repository[E] {
	return &Repository[E]{store: store, kind: kind}
}

func (r *Repository[E]) key(id int64) string {
	return kvcodec.Key(r.store.prefix, r.kind, id)
}

// Create key 不存在（CreateRevision == 0）时写入
func (r *Repository[E]) Create(ctx context.Context, entity E) error {
	id := entity.EntityID()
	ok, err := r.putIf(ctx, entity, "=")
	if err != nil {
		return fmt.Errorf("etcd: create %s/%d: %w", r.kind, id, err)
	}
	if !ok {
		return storage.AlreadyExists(id)
	}
	return nil
}

// Update key 已存在（CreateRevision > 0）时覆盖
func (r *Repository[E]) Update(ctx context.Context, entity E) error {
	id := entity.EntityID()
	ok, err := r.putIf(ctx, entity, ">")
	if err != nil {
		return fmt.Errorf("etcd: update %s/%d: %w", r.kind, id, err)
	}
	if !ok {
		return storage.NotFound(id)
	}
	return nil
}

// putIf 在 CreateRevision(key) <op> 0 成立时写入，返回事务是否成功
func (r *Repository[E]) putIf(ctx context.Context, entity E, op string) (bool, error) {
	data, err := kvcodec.Encode(entity)
	if err != nil {
		return false, err
	}
	key := r.key(entity.EntityID())

	resp, err := r.store.client.Txn(ctx).
		If(clientv3.Compare(clientv3.CreateRevision(key), op, 0)).
		Then(clientv3.OpPut(key, string(data))).
		Commit()
	if err != nil {
		return false, err
	}
	return resp.Succeeded, nil
}

// Delete 删除 key，不存在时为空操作
func (r *Repository[E]) Delete(ctx context.Context, id int64) error {
	if _, err := r.store.client.Delete(ctx, r.key(id)); err != nil {
		return fmt.Errorf("etcd: delete %s/%d: %w", r.kind, id, err)
	}
	return nil
}

// GetByID 读取实体
func (r *Repository[E]) GetByID(ctx context.Context, id int64) (E, error) {
	var zero E
	resp, err := r.store.client.Get(ctx, r.key(id))
	if err != nil {
		return zero, fmt.Errorf("etcd: get %s/%d: %w", r.kind, id, err)
	}
	if len(resp.Kvs) == 0 {
		return zero, storage.NotFound(id)
	}
	return kvcodec.Decode[E](resp.Kvs[0].Value)
}
