package entity

import (
	"fmt"

	"entity-admin/internal/shared/model"
	"entity-admin/internal/shared/storage"
)

// Mapper 负责边界请求与实体之间的转换
type Mapper[E model.Entity] interface {
	// MapRequestToEntity 从请求体（以及路径参数）构造实体
	MapRequestToEntity(req Request) (E, error)
	// MapRequestToEntityID 从路径参数 id 解析实体 ID
	MapRequestToEntityID(req Request) (int64, error)
	// MapEntityToResponseBody 实体 → 响应体
	MapEntityToResponseBody(entity E) any
	// MapEntityErrorToResponseBody 存储错误 → 响应体
	MapEntityErrorToResponseBody(err *storage.EntityError) any
}

// Mapper 错误码
const (
	CodeMalformedBody = "malformed_body"
	CodeMissingField  = "missing_field"
	CodeTypeMismatch  = "type_mismatch"
	CodeInvalidValue  = "invalid_value"
	CodeInvalidID     = "invalid_id"
	CodeIDMismatch    = "id_mismatch"
)

// MapperError 请求无法转换为实体
//
// Controller 不处理该错误，由传输层统一渲染为 400。
type MapperError struct {
	Code  string
	Field string
	Err   error
}

func (e *MapperError) Error() string {
	msg := e.Code
	if e.Field != "" {
		msg = fmt.Sprintf("%s: %s", e.Code, e.Field)
	}
	if e.Err != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Err)
	}
	return msg
}

func (e *MapperError) Unwrap() error {
	return e.Err
}

// NewMapperError 创建 MapperError
func NewMapperError(code, field string, err error) *MapperError {
	return &MapperError{Code: code, Field: field, Err: err}
}
