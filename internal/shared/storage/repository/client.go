// Package repository Client 相关的存储操作
package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"entity-admin/internal/shared/model"
	"entity-admin/internal/shared/storage"
)

// ClientRepository 基于 SQL 的 Client 存储
//
// 原子性依赖数据库本身：INSERT ... ON CONFLICT DO NOTHING 与 UPDATE ... WHERE id
// 通过受影响行数判断冲突/缺失，不做先查后写。
type ClientRepository struct {
	store *Store
}

var _ storage.ClientRepository = (*ClientRepository)(nil)

// Create 创建 Client
func (r *ClientRepository) Create(ctx context.Context, client model.Client) error {
	s := r.store
	query := s.rebind(`
		INSERT INTO clients (id, client_id, secret, redirect_url, created_at, updated_at)
		VALUES ($1, $2, $3, $4, ` + s.now() + `, ` + s.now() + `)
		ON CONFLICT (id) DO NOTHING
	`)
	res, err := s.db.ExecContext(ctx, query,
		client.ID, client.ClientID, client.Secret, client.RedirectURL)
	if err != nil {
		return fmt.Errorf("insert client %d: %w", client.ID, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("insert client %d: %w", client.ID, err)
	}
	if n == 0 {
		return storage.AlreadyExists(client.ID)
	}
	return nil
}

// Update 更新 Client
func (r *ClientRepository) Update(ctx context.Context, client model.Client) error {
	s := r.store
	query := s.rebind(`UPDATE clients SET client_id = $1, secret = $2, redirect_url = $3, updated_at = ` +
		s.now() + ` WHERE id = $4`)
	res, err := s.db.ExecContext(ctx, query,
		client.ClientID, client.Secret, client.RedirectURL, client.ID)
	if err != nil {
		return fmt.Errorf("update client %d: %w", client.ID, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update client %d: %w", client.ID, err)
	}
	if n == 0 {
		return storage.NotFound(client.ID)
	}
	return nil
}

// Delete 删除 Client
func (r *ClientRepository) Delete(ctx context.Context, id int64) error {
	s := r.store
	if _, err := s.db.ExecContext(ctx, s.rebind(`DELETE FROM clients WHERE id = $1`), id); err != nil {
		return fmt.Errorf("delete client %d: %w", id, err)
	}
	return nil
}

// GetByID 获取 Client
func (r *ClientRepository) GetByID(ctx context.Context, id int64) (model.Client, error) {
	s := r.store
	query := s.rebind(`SELECT id, client_id, secret, redirect_url FROM clients WHERE id = $1`)
	var client model.Client
	err := s.db.QueryRowContext(ctx, query, id).Scan(
		&client.ID, &client.ClientID, &client.Secret, &client.RedirectURL)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Client{}, storage.NotFound(id)
	}
	if err != nil {
		return model.Client{}, fmt.Errorf("get client %d: %w", id, err)
	}
	return client, nil
}
