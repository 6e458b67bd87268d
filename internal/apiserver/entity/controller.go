package entity

import (
	"fmt"
	"net/http"

	"entity-admin/internal/shared/model"
	"entity-admin/internal/shared/storage"
)

// Controller 泛型实体控制器
//
// 无状态，可被并发调用。状态码约定：
//
//	get    200 + body  | NotFound      → 404
//	create 201         | AlreadyExists → 409 + Mapper 错误体
//	update 201         | NotFound      → 404
//	delete 204
//
// Mapper 错误与未分类的存储错误原样返回给传输层。
type Controller[E model.Entity] struct {
	mapper Mapper[E]
	repo   storage.EntityRepository[E]
}

// NewController 创建控制器
func NewController[E model.Entity](mapper Mapper[E], repo storage.EntityRepository[E]) *Controller[E] {
	return &Controller[E]{mapper: mapper, repo: repo}
}

// Get 按 ID 读取实体
func (c *Controller[E]) Get(req Request, resp Response) error {
	id, err := c.mapper.MapRequestToEntityID(req)
	if err != nil {
		return err
	}

	entity, err := c.repo.GetByID(req.Context(), id)
	if err != nil {
		return c.handleEntityError(err, resp)
	}

	resp.SetStatus(http.StatusOK)
	return resp.SendBody(c.mapper.MapEntityToResponseBody(entity))
}

// Create 创建实体
func (c *Controller[E]) Create(req Request, resp Response) error {
	entity, err := c.mapper.MapRequestToEntity(req)
	if err != nil {
		return err
	}

	if err := c.repo.Create(req.Context(), entity); err != nil {
		return c.handleEntityError(err, resp)
	}

	resp.SendStatus(http.StatusCreated)
	return nil
}

// Update 整体替换实体
func (c *Controller[E]) Update(req Request, resp Response) error {
	entity, err := c.mapper.MapRequestToEntity(req)
	if err != nil {
		return err
	}

	if err := c.repo.Update(req.Context(), entity); err != nil {
		return c.handleEntityError(err, resp)
	}

	// 与创建保持一致返回 201
	resp.SendStatus(http.StatusCreated)
	return nil
}

// Delete 删除实体，ID 不存在也返回 204
func (c *Controller[E]) Delete(req Request, resp Response) error {
	id, err := c.mapper.MapRequestToEntityID(req)
	if err != nil {
		return err
	}

	if err := c.repo.Delete(req.Context(), id); err != nil {
		return fmt.Errorf("delete entity %d: %w", id, err)
	}

	resp.SendStatus(http.StatusNoContent)
	return nil
}

// handleEntityError 将 EntityError 转换为响应，其余错误原样返回
func (c *Controller[E]) handleEntityError(err error, resp Response) error {
	entityErr, ok := storage.AsEntityError(err)
	if !ok {
		return err
	}

	switch entityErr.Kind {
	case storage.KindAlreadyExists:
		resp.SetStatus(http.StatusConflict)
		if sendErr := resp.SendBody(c.mapper.MapEntityErrorToResponseBody(entityErr)); sendErr != nil {
			return sendErr
		}
		resp.End()
		return nil
	case storage.KindNotFound:
		resp.SendStatus(http.StatusNotFound)
		return nil
	default:
		return err
	}
}
