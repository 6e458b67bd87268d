// Package entity 实体 CRUD 中介层
//
// Controller 负责编排：Mapper 解码请求 → Repository 持久化 → 按结果选择状态码，
// 响应体始终由 Mapper 生成。Controller 本身不感知 HTTP，只依赖本文件定义的边界接口。
//
// 文件组织：
//   - boundary.go: 请求/响应边界接口
//   - mapper.go: Mapper 契约与 MapperError
//   - controller.go: 泛型 Controller
package entity

import (
	"context"
	"io"
)

// Request 边界请求
type Request interface {
	Context() context.Context
	// PathParam 返回路径参数，不存在时返回空串
	PathParam(name string) string
	Body() io.Reader
}

// Response 边界响应
//
// SetStatus 只记录状态码；SendStatus 写出状态码并结束响应；
// SendBody 按已设置的状态码写出响应体；End 结束响应。
type Response interface {
	SetStatus(code int)
	SendStatus(code int)
	SendBody(body any) error
	End()
}
