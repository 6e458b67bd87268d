// Package memstore 进程内存储实现
//
// 数据只保存在当前进程内存中，重启后丢失，适用于开发和测试。
// 整个 Store 由一把读写锁保护，Create/Update 的“检查-写入”在同一临界区内完成。
package memstore

import (
	"context"
	"sync"

	"entity-admin/internal/shared/model"
	"entity-admin/internal/shared/storage"
)

// Store 基于 map 的实体存储
type Store[E model.Entity] struct {
	mu       sync.RWMutex
	entities map[int64]E
}

var _ storage.EntityRepository[model.Client] = (*Store[model.Client])(nil)

// NewStore 创建空的内存存储
func NewStore[E model.Entity]() *Store[E] {
	return &Store[E]{entities: make(map[int64]E)}
}

// Create 存入新实体
func (s *Store[E]) Create(ctx context.Context, entity E) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	id := entity.EntityID()

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.entities[id]; ok {
		return storage.AlreadyExists(id)
	}
	s.entities[id] = entity
	return nil
}

// Update 替换已存在的实体
func (s *Store[E]) Update(ctx context.Context, entity E) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	id := entity.EntityID()

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.entities[id]; !ok {
		return storage.NotFound(id)
	}
	s.entities[id] = entity
	return nil
}

// Delete 删除实体，不存在时为空操作
func (s *Store[E]) Delete(ctx context.Context, id int64) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.entities, id)
	return nil
}

// GetByID 获取实体
func (s *Store[E]) GetByID(ctx context.Context, id int64) (E, error) {
	var zero E
	if err := ctx.Err(); err != nil {
		return zero, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	entity, ok := s.entities[id]
	if !ok {
		return zero, storage.NotFound(id)
	}
	return entity, nil
}

// Len 返回当前实体数量
func (s *Store[E]) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entities)
}
