package objstore

import (
	"context"
	"errors"
	"strings"

	"entity-admin/internal/shared/model"
	"entity-admin/internal/shared/storage"
	"entity-admin/internal/shared/storage/keylock"
	"entity-admin/internal/shared/storage/kvcodec"
)

// Repository 以 {kind}/{id}.json 对象保存实体
//
// 对象存储没有条件写入，Create/Update 的“检查-写入”由进程内 keylock 串行化，
// 因此同一 bucket 只应由一个 API Server 实例写入。
type Repository[E model.Entity] struct {
	client *Client
	kind   string
	locks  *keylock.Locker[int64]
}

var _ storage.ClientRepository = (*Repository[model.Client])(nil)

// NewRepository 创建实体仓库
func NewRepository[E model.Entity](client *Client, kind string) *Repository[E] {
	return &Repository[E]{client: client, kind: kind, locks: keylock.New[int64]()}
}

// Clients 返回 Client 实体仓库
func (c *Client) Clients() *Repository[model.Client] {
	return NewRepository[model.Client](c, "clients")
}

func (r *Repository[E]) key(id int64) string {
	return strings.TrimPrefix(kvcodec.Key("", r.kind, id), "/") + ".json"
}

func (r *Repository[E]) Create(ctx context.Context, entity E) error {
	id := entity.EntityID()
	unlock := r.locks.Lock(id)
	defer unlock()

	exists, err := r.client.Exists(ctx, r.key(id))
	if err != nil {
		return err
	}
	if exists {
		return storage.AlreadyExists(id)
	}
	return r.put(ctx, entity)
}

func (r *Repository[E]) Update(ctx context.Context, entity E) error {
	id := entity.EntityID()
	unlock := r.locks.Lock(id)
	defer unlock()

	exists, err := r.client.Exists(ctx, r.key(id))
	if err != nil {
		return err
	}
	if !exists {
		return storage.NotFound(id)
	}
	return r.put(ctx, entity)
}

func (r *Repository[E]) put(ctx context.Context, entity E) error {
	data, err := kvcodec.Encode(entity)
	if err != nil {
		return err
	}
	return r.client.Upload(ctx, r.key(entity.EntityID()), data, "application/json")
}

func (r *Repository[E]) Delete(ctx context.Context, id int64) error {
	unlock := r.locks.Lock(id)
	defer unlock()
	return r.client.Delete(ctx, r.key(id))
}

func (r *Repository[E]) GetByID(ctx context.Context, id int64) (E, error) {
	var zero E
	data, err := r.client.Download(ctx, r.key(id))
	if errors.Is(err, errNoSuchKey) {
		return zero, storage.NotFound(id)
	}
	if err != nil {
		return zero, err
	}
	return kvcodec.Decode[E](data)
}
