package cache

import (
	"context"
	"log"

	"entity-admin/internal/shared/model"
	"entity-admin/internal/shared/storage"
	"entity-admin/internal/shared/storage/keylock"
)

// Repository 带读缓存的 Repository
//
// 同一 ID 上的“回源+回填”与“写入+失效”持有同一把 key 锁，
// 回填不会把写入之前读到的旧值写回缓存。锁只在进程内有效。
type Repository[E model.Entity] struct {
	next  storage.EntityRepository[E]
	cache EntityCache[E]
	locks *keylock.Locker[int64]
}

// NewRepository 包装 next
func NewRepository[E model.Entity](next storage.EntityRepository[E], cache EntityCache[E]) *Repository[E] {
	return &Repository[E]{next: next, cache: cache, locks: keylock.New[int64]()}
}

func (r *Repository[E]) Create(ctx context.Context, entity E) error {
	return r.next.Create(ctx, entity)
}

func (r *Repository[E]) Update(ctx context.Context, entity E) error {
	id := entity.EntityID()
	unlock := r.locks.Lock(id)
	defer unlock()

	if err := r.next.Update(ctx, entity); err != nil {
		return err
	}
	r.invalidate(ctx, id)
	return nil
}

func (r *Repository[E]) Delete(ctx context.Context, id int64) error {
	unlock := r.locks.Lock(id)
	defer unlock()

	if err := r.next.Delete(ctx, id); err != nil {
		return err
	}
	r.invalidate(ctx, id)
	return nil
}

func (r *Repository[E]) GetByID(ctx context.Context, id int64) (E, error) {
	if entity, ok := r.lookup(ctx, id); ok {
		return entity, nil
	}

	unlock := r.locks.Lock(id)
	defer unlock()

	// 等锁期间可能已有其他读请求完成回填
	if entity, ok := r.lookup(ctx, id); ok {
		return entity, nil
	}

	entity, err := r.next.GetByID(ctx, id)
	if err != nil {
		return entity, err
	}
	if err := r.cache.Set(ctx, entity); err != nil {
		log.Printf("[Cache] Set %d failed: %v", id, err)
	}
	return entity, nil
}

func (r *Repository[E]) lookup(ctx context.Context, id int64) (E, bool) {
	entity, ok, err := r.cache.Get(ctx, id)
	if err != nil {
		log.Printf("[Cache] Get %d failed: %v", id, err)
		return entity, false
	}
	return entity, ok
}

func (r *Repository[E]) invalidate(ctx context.Context, id int64) {
	if err := r.cache.Invalidate(ctx, id); err != nil {
		log.Printf("[Cache] Invalidate %d failed: %v", id, err)
	}
}
