package cache

import "time"

const (
	// KeyEntity 缓存 key 前缀，完整 key 为 {KeyEntity}/{kind}/{id}
	KeyEntity = "entity_cache"

	// TTLEntity 默认缓存时间
	TTLEntity = 5 * time.Minute
)
