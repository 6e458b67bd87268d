// Package repository 数据库无关的实体存储层
//
// 通过 dbutil.Dialect 接口屏蔽不同数据库的 SQL 差异，
// 所有 SQL 以 PostgreSQL 风格编写，运行时由 Dialect.Rebind() 转换。
package repository

import (
	"database/sql"
	"fmt"

	"entity-admin/internal/shared/storage/dbutil"
)

// Store 通用 SQL 存储
type Store struct {
	db      *sql.DB
	dialect dbutil.Dialect
}

// NewStore 创建通用存储
func NewStore(db *sql.DB, dialect dbutil.Dialect) *Store {
	return &Store{db: db, dialect: dialect}
}

// Close 关闭数据库连接
func (s *Store) Close() error {
	return s.db.Close()
}

// Migrate 按当前方言建表
func (s *Store) Migrate() error {
	if err := s.dialect.AutoMigrate(s.db); err != nil {
		return fmt.Errorf("auto migrate %s: %w", s.dialect.DriverType(), err)
	}
	return nil
}

// Clients 返回 Client 实体仓库
func (s *Store) Clients() *ClientRepository {
	return &ClientRepository{store: s}
}

// rebind 快捷方法：将 PG 风格 SQL 转换为当前方言
func (s *Store) rebind(query string) string {
	return s.dialect.Rebind(query)
}

// now 返回当前时间戳 SQL 表达式
func (s *Store) now() string {
	return s.dialect.CurrentTimestamp()
}
