// Package model 定义核心数据模型
package model

// Entity 可持久化的领域实体
//
// 中介层只通过 EntityID 识别实体，其余字段的含义全部交给 Mapper。
// 实体 ID 在创建后不可变，并在同一个 Repository 内唯一。
type Entity interface {
	EntityID() int64
}
