package mongostore

import (
	"context"
	"fmt"

	"entity-admin/internal/shared/model"
	"entity-admin/internal/shared/storage"

	"go.mongodb.org/mongo-driver/v2/mongo"
)

// Repository 以单个 Collection 承载一种实体，实体 ID 即文档 _id
type Repository[E model.Entity] struct {
	col *mongo.Collection
}

var _ storage.ClientRepository = (*Repository[model.Client])(nil)

// NewRepository 创建实体仓库
func NewRepository[E model.Entity](col *mongo.Collection) *Repository[E] {
	return &Repository[E]{col: col}
}

func (r *Repository[E]) Create(ctx context.Context, entity E) error {
	if err := insertOne(ctx, r.col, entity.EntityID(), entity); err != nil {
		return r.wrap("insert", entity.EntityID(), err)
	}
	return nil
}

func (r *Repository[E]) Update(ctx context.Context, entity E) error {
	if err := replaceOne(ctx, r.col, entity.EntityID(), entity); err != nil {
		return r.wrap("replace", entity.EntityID(), err)
	}
	return nil
}

func (r *Repository[E]) Delete(ctx context.Context, id int64) error {
	if err := deleteByID(ctx, r.col, id); err != nil {
		return r.wrap("delete", id, err)
	}
	return nil
}

func (r *Repository[E]) GetByID(ctx context.Context, id int64) (E, error) {
	entity, err := findOne[E](ctx, r.col, id)
	if err != nil {
		var zero E
		return zero, r.wrap("find", id, err)
	}
	return entity, nil
}

// wrap 为基础设施错误附加上下文，领域错误原样返回
func (r *Repository[E]) wrap(op string, id int64, err error) error {
	if _, ok := storage.AsEntityError(err); ok {
		return err
	}
	return fmt.Errorf("mongostore: %s %s/%d: %w", op, r.col.Name(), id, err)
}
