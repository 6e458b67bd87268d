// Package storage 定义持久化存储层抽象接口
//
// 设计原则：依赖倒置 (DIP)
//   - 调用方只依赖接口，不知道具体实现
//   - 具体实现在子包中：memstore/, repository/, mongostore/, redis/, etcd/, objstore/
//   - 初始化时通过依赖注入传入实现
package storage

import (
	"context"

	"entity-admin/internal/shared/model"
)

// EntityRepository 实体存储契约
//
// 语义约定：
//   - Create: ID 已存在时返回 AlreadyExists
//   - Update: ID 不存在时返回 NotFound
//   - Delete: 无条件成功，删除不存在的 ID 不报错
//   - GetByID: 不存在时返回 NotFound
//
// 实现必须保证 Create/Update 的“检查-写入”是原子的，
// 同一 ID 上的并发调用不能出现重复创建或丢失更新。
// 基础设施错误（网络、驱动）原样包装返回，不得伪装成 EntityError。
type EntityRepository[E model.Entity] interface {
	Create(ctx context.Context, entity E) error
	Update(ctx context.Context, entity E) error
	Delete(ctx context.Context, id int64) error
	GetByID(ctx context.Context, id int64) (E, error)
}

// ClientRepository Client 实体存储
type ClientRepository = EntityRepository[model.Client]
