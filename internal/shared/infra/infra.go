// Package infra 基础设施聚合层
//
// 根据配置选择存储后端并完成初始化，返回统一的实体存储接口：
//   - memory：进程内存储
//   - sql：SQLite / PostgreSQL
//   - mongodb：MongoDB
//   - redis：Redis
//   - etcd：etcd
//   - minio：MinIO 对象存储
//
// storage.cache 开启时，在持久化后端外再包一层 Redis 读缓存。
package infra

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"log"

	"entity-admin/internal/config"
	"entity-admin/internal/shared/cache"
	cacheredis "entity-admin/internal/shared/cache/redis"
	"entity-admin/internal/shared/model"
	"entity-admin/internal/shared/storage"
	"entity-admin/internal/shared/storage/dbutil"
	pgdriver "entity-admin/internal/shared/storage/driver/postgres"
	sqlitedriver "entity-admin/internal/shared/storage/driver/sqlite"
	"entity-admin/internal/shared/storage/etcd"
	"entity-admin/internal/shared/storage/memstore"
	"entity-admin/internal/shared/storage/mongostore"
	"entity-admin/internal/shared/storage/objstore"
	redisstore "entity-admin/internal/shared/storage/redis"
	"entity-admin/internal/shared/storage/repository"
	"entity-admin/pkg/logging"
)

// Infrastructure 基础设施聚合结构
type Infrastructure struct {
	// Backend 实际使用的存储后端
	Backend string

	// Clients Client 实体存储（已附加查询日志）
	Clients storage.ClientRepository

	closers []io.Closer
}

// New 按 cfg.StorageBackend 初始化存储
//
// observer 可为 nil，非空时每次存储调用都会回调（用于指标）。
func New(ctx context.Context, cfg *config.Config, logger *logging.Logger, observer storage.QueryObserver) (*Infrastructure, error) {
	if logger == nil {
		logger = logging.Default("storage")
	}

	infra := &Infrastructure{Backend: cfg.StorageBackend}
	clients, err := infra.openClients(ctx, cfg)
	if err != nil {
		infra.Close()
		return nil, err
	}

	if cfg.CacheEnabled {
		entityCache, err := cacheredis.NewStoreFromURL[model.Client](cfg.RedisURL, "clients", cfg.CacheTTL)
		if err != nil {
			infra.Close()
			return nil, err
		}
		infra.closers = append(infra.closers, entityCache)
		clients = cache.NewRepository[model.Client](clients, entityCache)
		log.Printf("[Storage] Redis read cache enabled (ttl=%s)", cfg.CacheTTL)
	}

	infra.Clients = storage.Observe[model.Client](clients, "clients", logger, observer)
	return infra, nil
}

func (i *Infrastructure) openClients(ctx context.Context, cfg *config.Config) (storage.ClientRepository, error) {
	switch cfg.StorageBackend {
	case config.BackendMemory:
		log.Printf("[Storage] Using in-memory storage (data is lost on restart)")
		return memstore.NewStore[model.Client](), nil

	case config.BackendSQL:
		store, err := openSQL(cfg.DatabaseDriver, cfg.DatabaseURL)
		if err != nil {
			return nil, err
		}
		i.closers = append(i.closers, store)
		log.Printf("[Storage] Using %s", cfg.DatabaseDriver)
		return store.Clients(), nil

	case config.BackendMongoDB:
		store, err := mongostore.NewStore(cfg.DatabaseURL, cfg.DatabaseDBName)
		if err != nil {
			return nil, err
		}
		i.closers = append(i.closers, store)
		return store.Clients(), nil

	case config.BackendRedis:
		store, err := redisstore.NewStoreFromURL(cfg.RedisURL)
		if err != nil {
			return nil, err
		}
		if cfg.RedisPrefix != "" {
			store = redisstore.NewStoreFromClient(store.Client(), cfg.RedisPrefix)
		}
		i.closers = append(i.closers, store)
		return store.Clients(), nil

	case config.BackendEtcd:
		store, err := etcd.NewStore(etcd.Config{
			Endpoints: cfg.Etcd.Endpoints,
			Prefix:    cfg.Etcd.Prefix,
		})
		if err != nil {
			return nil, err
		}
		i.closers = append(i.closers, store)
		return store.Clients(), nil

	case config.BackendMinIO:
		client, err := objstore.NewClient(cfg.MinIO)
		if err != nil {
			return nil, err
		}
		if err := client.EnsureBucket(ctx); err != nil {
			return nil, err
		}
		return client.Clients(), nil

	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.StorageBackend)
	}
}

// openSQL 打开 SQL 数据库并完成建表
func openSQL(driver, dsn string) (*repository.Store, error) {
	var open func(string) (*sql.DB, error)
	var dialect dbutil.Dialect
	switch driver {
	case "sqlite":
		open, dialect = sqlitedriver.Open, sqlitedriver.NewDialect()
	case "postgres":
		open, dialect = pgdriver.Open, pgdriver.NewDialect()
	default:
		return nil, fmt.Errorf("unsupported sql driver %q", driver)
	}

	db, err := open(dsn)
	if err != nil {
		return nil, err
	}
	store := repository.NewStore(db, dialect)
	if err := store.Migrate(); err != nil {
		store.Close()
		return nil, err
	}
	return store, nil
}

// Close 关闭所有基础设施连接
func (i *Infrastructure) Close() error {
	var lastErr error
	for j := len(i.closers) - 1; j >= 0; j-- {
		if err := i.closers[j].Close(); err != nil {
			lastErr = err
		}
	}
	i.closers = nil
	return lastErr
}
