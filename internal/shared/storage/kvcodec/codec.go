// Package kvcodec 键值类存储（Redis/etcd/对象存储）共用的实体编解码
//
// 实体以 JSON 文档存放，key 统一为 {prefix}/{kind}/{id}。
package kvcodec

import (
	"fmt"
	"strconv"
	"strings"

	json "github.com/goccy/go-json"
)

// Encode 将实体编码为 JSON 文档
func Encode[E any](entity E) ([]byte, error) {
	data, err := json.Marshal(entity)
	if err != nil {
		return nil, fmt.Errorf("kvcodec: encode: %w", err)
	}
	return data, nil
}

// Decode 将 JSON 文档解码为实体
func Decode[E any](data []byte) (E, error) {
	var entity E
	if err := json.Unmarshal(data, &entity); err != nil {
		return entity, fmt.Errorf("kvcodec: decode: %w", err)
	}
	return entity, nil
}

// Key 生成实体 key，如 "/entities/clients/42"
func Key(prefix, kind string, id int64) string {
	return strings.TrimRight(prefix, "/") + "/" + kind + "/" + strconv.FormatInt(id, 10)
}
