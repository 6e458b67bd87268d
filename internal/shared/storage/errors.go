// Package storage 定义存储层领域错误
//
// 这些错误用于隔离业务层与底层存储引擎的错误类型，
// 各驱动实现（repository/mongostore/redis/etcd/objstore/memstore）负责将底层错误转换为这些领域错误。
package storage

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound 实体不存在
	// 替代 sql.ErrNoRows / mongo.ErrNoDocuments / redis.Nil
	ErrNotFound = errors.New("entity not found")

	// ErrDuplicate 唯一键冲突（INSERT 重复 ID）
	ErrDuplicate = errors.New("duplicate: entity already exists")
)

// ErrorKind Repository 错误类别
//
// 类别集合是封闭的：Controller 只对这里列出的类别做分支。
type ErrorKind int

const (
	KindAlreadyExists ErrorKind = iota + 1
	KindNotFound
)

// String 返回类别名称
func (k ErrorKind) String() string {
	switch k {
	case KindAlreadyExists:
		return "already_exists"
	case KindNotFound:
		return "not_found"
	default:
		return fmt.Sprintf("ErrorKind(%d)", int(k))
	}
}

// EntityError Repository 层的类型化错误
//
// 只携带类别和出错的实体 ID，不携带实体内容。
type EntityError struct {
	Kind ErrorKind
	ID   int64
}

func (e *EntityError) Error() string {
	switch e.Kind {
	case KindAlreadyExists:
		return fmt.Sprintf("entity %d already exists", e.ID)
	case KindNotFound:
		return fmt.Sprintf("entity %d not found", e.ID)
	default:
		return fmt.Sprintf("entity %d: %s", e.ID, e.Kind)
	}
}

// Is 使 errors.Is(err, ErrNotFound) / errors.Is(err, ErrDuplicate) 对类型化错误同样成立
func (e *EntityError) Is(target error) bool {
	switch target {
	case ErrDuplicate:
		return e.Kind == KindAlreadyExists
	case ErrNotFound:
		return e.Kind == KindNotFound
	}
	return false
}

// AlreadyExists 创建时 ID 已存在
func AlreadyExists(id int64) error {
	return &EntityError{Kind: KindAlreadyExists, ID: id}
}

// NotFound ID 对应的实体不存在
func NotFound(id int64) error {
	return &EntityError{Kind: KindNotFound, ID: id}
}

// AsEntityError 从错误链中提取 EntityError
func AsEntityError(err error) (*EntityError, bool) {
	var entityErr *EntityError
	if errors.As(err, &entityErr) {
		return entityErr, true
	}
	return nil, false
}
