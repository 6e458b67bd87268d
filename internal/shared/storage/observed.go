package storage

import (
	"context"
	"time"

	"entity-admin/internal/shared/model"
	"entity-admin/pkg/logging"
)

// QueryObserver 接收每次存储调用的耗时与结果
type QueryObserver func(operation string, duration time.Duration, err error)

// Observed 为 Repository 增加查询日志与观测回调
//
// 领域错误（AlreadyExists/NotFound）属于正常结果，只记录 debug 日志。
type Observed[E model.Entity] struct {
	next     EntityRepository[E]
	table    string
	logger   *logging.Logger
	observer QueryObserver
}

// Observe 包装 Repository，observer 可为 nil
func Observe[E model.Entity](next EntityRepository[E], table string, logger *logging.Logger, observer QueryObserver) *Observed[E] {
	return &Observed[E]{next: next, table: table, logger: logger, observer: observer}
}

func (o *Observed[E]) Create(ctx context.Context, entity E) error {
	start := time.Now()
	err := o.next.Create(ctx, entity)
	o.record(ctx, "create", entity.EntityID(), start, err)
	return err
}

func (o *Observed[E]) Update(ctx context.Context, entity E) error {
	start := time.Now()
	err := o.next.Update(ctx, entity)
	o.record(ctx, "update", entity.EntityID(), start, err)
	return err
}

func (o *Observed[E]) Delete(ctx context.Context, id int64) error {
	start := time.Now()
	err := o.next.Delete(ctx, id)
	o.record(ctx, "delete", id, start, err)
	return err
}

func (o *Observed[E]) GetByID(ctx context.Context, id int64) (E, error) {
	start := time.Now()
	entity, err := o.next.GetByID(ctx, id)
	o.record(ctx, "get", id, start, err)
	return entity, err
}

func (o *Observed[E]) record(ctx context.Context, operation string, id int64, start time.Time, err error) {
	duration := time.Since(start)
	if o.observer != nil {
		o.observer(operation, duration, err)
	}

	logErr := err
	if _, ok := AsEntityError(err); ok {
		logErr = nil
	}
	o.logger.WithContext(ctx).WithEntityID(id).DBQueryLog(operation, o.table, duration, logErr)
}
