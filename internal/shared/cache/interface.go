// Package cache 实体读缓存
//
// 以 cache-aside 方式包装 Repository：GetByID 先查缓存，未命中时回源并回填；
// Update/Delete 成功后失效对应条目。缓存故障不影响请求结果，只降级为直接读存储。
package cache

import (
	"context"

	"entity-admin/internal/shared/model"
)

// EntityCache 实体缓存接口，当前由 Redis 实现
type EntityCache[E model.Entity] interface {
	// Get 命中时返回 (entity, true, nil)
	Get(ctx context.Context, id int64) (E, bool, error)
	Set(ctx context.Context, entity E) error
	Invalidate(ctx context.Context, id int64) error
	Close() error
}
