package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Load 加载配置
//  1. 加载 .env.{env}（敏感信息）
//  2. 加载 {env}.yaml
//  3. 环境变量覆盖
//  4. 构建最终配置
func Load() *Config {
	env := parseEnv(getEnv("APP_ENV", "dev"))
	loadEnvFiles(env)

	yamlCfg := loadYAMLConfig(env)
	applyEnvOverrides(&yamlCfg.YAMLConfig)

	// DATABASE_URL 优先于 YAML 拼接的连接串
	databaseURL := os.Getenv("DATABASE_URL")
	driver := detectDatabaseDriver(yamlCfg.Database.Driver, databaseURL)
	yamlCfg.Database.Driver = driver
	if databaseURL == "" {
		databaseURL = buildDatabaseURL(yamlCfg.Database, yamlCfg.Database.Password)
	}

	return &Config{
		Env:            env,
		StorageBackend: resolveBackend(yamlCfg.Storage.Backend, driver),
		DatabaseDriver: driver,
		DatabaseURL:    databaseURL,
		DatabaseDBName: yamlCfg.Database.Name,
		RedisURL:       buildRedisURL(yamlCfg.Redis),
		RedisPrefix:    yamlCfg.Redis.Prefix,
		CacheEnabled:   yamlCfg.Storage.Cache,
		CacheTTL:       yamlCfg.Redis.CacheTTL,
		Etcd:           yamlCfg.Etcd,
		MinIO:          yamlCfg.MinIO,
		Log:            yamlCfg.Log,
		APIPort:        yamlCfg.APIServer.Port,
		ConfigFilePath: yamlCfg.loadedFrom,
	}
}

// defaultYAMLConfig 硬编码默认值
func defaultYAMLConfig() YAMLConfig {
	return YAMLConfig{
		APIServer: APIServerConfig{Port: "8080"},
		Database: DatabaseConfig{
			Host:    "localhost",
			Port:    5432,
			User:    "entity_admin",
			Name:    "entity_admin",
			SSLMode: "disable",
		},
		Redis: RedisConfig{Host: "localhost", Port: 6379, DB: 0, Prefix: "entity-admin", CacheTTL: 5 * time.Minute},
		Etcd:  EtcdConfig{Endpoints: []string{"localhost:2379"}, Prefix: "/entity-admin"},
		MinIO: MinIOConfig{Endpoint: "localhost:9000", Bucket: "entity-admin"},
		Log:   LogConfig{Level: "info", Format: "text", Output: "stdout"},
	}
}

// loadYAMLConfig 加载 YAML 配置文件
// 加载顺序：默认值 → {env}.yaml
func loadYAMLConfig(env Environment) *yamlConfigInternal {
	cfg := &yamlConfigInternal{YAMLConfig: defaultYAMLConfig()}

	path := findConfigFile(env)
	if path == "" {
		return cfg
	}
	data, err := os.ReadFile(path)
	if err != nil {
		log.Printf("[config] Failed to read %s: %v", path, err)
		return cfg
	}
	if err := yaml.Unmarshal(data, &cfg.YAMLConfig); err != nil {
		log.Printf("[config] Failed to parse %s: %v", path, err)
		return cfg
	}
	cfg.loadedFrom = path
	return cfg
}

// applyEnvOverrides 环境变量覆盖 YAML 配置，凭据只从这里读取
func applyEnvOverrides(cfg *YAMLConfig) {
	if v := firstEnv("API_PORT", "PORT"); v != "" {
		cfg.APIServer.Port = v
	}
	if v := os.Getenv("STORAGE_BACKEND"); v != "" {
		cfg.Storage.Backend = v
	}
	if v := os.Getenv("STORAGE_CACHE"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.Storage.Cache = b
		}
	}

	if v := os.Getenv("DB_DRIVER"); v != "" {
		cfg.Database.Driver = v
	}
	if v := os.Getenv("DB_PATH"); v != "" {
		cfg.Database.Path = v
	}
	if v := os.Getenv("DB_HOST"); v != "" {
		cfg.Database.Host = v
	}
	if v := os.Getenv("DB_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			cfg.Database.Port = port
		}
	}
	if v := os.Getenv("DB_NAME"); v != "" {
		cfg.Database.Name = v
	}
	if v := os.Getenv("MONGO_URI"); v != "" {
		cfg.Database.URI = v
	}
	cfg.Database.Password = firstEnv("DB_PASSWORD", "MONGO_ROOT_PASSWORD")

	if v := os.Getenv("REDIS_URL"); v != "" {
		cfg.Redis.URL = v
	}
	cfg.Redis.Password = os.Getenv("REDIS_PASSWORD")
	if v := os.Getenv("REDIS_CACHE_TTL"); v != "" {
		if ttl, err := time.ParseDuration(v); err == nil {
			cfg.Redis.CacheTTL = ttl
		}
	}

	if v := os.Getenv("ETCD_ENDPOINTS"); v != "" {
		cfg.Etcd.Endpoints = splitList(v)
	}

	if v := os.Getenv("MINIO_ENDPOINT"); v != "" {
		cfg.MinIO.Endpoint = v
	}
	cfg.MinIO.AccessKey = os.Getenv("MINIO_ROOT_USER")
	cfg.MinIO.SecretKey = os.Getenv("MINIO_ROOT_PASSWORD")

	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}
	if v := os.Getenv("LOG_FORMAT"); v != "" {
		cfg.Log.Format = v
	}
}

// resolveBackend 确定存储后端
// 优先级：storage.backend > database.driver 推断
func resolveBackend(backend, driver string) string {
	if backend != "" {
		return strings.ToLower(backend)
	}
	switch driver {
	case "sqlite", "postgres":
		return BackendSQL
	case "mongodb":
		return BackendMongoDB
	default:
		return BackendMemory
	}
}

// Validate 校验配置
func (c *Config) Validate() error {
	switch c.StorageBackend {
	case BackendMemory:
	case BackendMongoDB:
		if c.DatabaseDriver != "mongodb" {
			return fmt.Errorf("storage backend mongodb requires database driver mongodb, got %q", c.DatabaseDriver)
		}
		if !strings.HasPrefix(c.DatabaseURL, "mongodb://") && !strings.HasPrefix(c.DatabaseURL, "mongodb+srv://") {
			return fmt.Errorf("storage backend mongodb requires a mongodb:// or mongodb+srv:// url, got %q", maskPassword(c.DatabaseURL))
		}
	case BackendSQL:
		if c.DatabaseDriver != "sqlite" && c.DatabaseDriver != "postgres" {
			return fmt.Errorf("storage backend sql requires database driver sqlite or postgres, got %q", c.DatabaseDriver)
		}
	case BackendRedis:
		if c.RedisURL == "" {
			return fmt.Errorf("storage backend redis requires redis url")
		}
	case BackendEtcd:
		if len(c.Etcd.Endpoints) == 0 {
			return fmt.Errorf("storage backend etcd requires etcd endpoints")
		}
	case BackendMinIO:
		if c.MinIO.Endpoint == "" {
			return fmt.Errorf("storage backend minio requires minio endpoint")
		}
	default:
		return fmt.Errorf("unknown storage backend %q", c.StorageBackend)
	}
	if c.CacheEnabled {
		if c.StorageBackend == BackendRedis || c.StorageBackend == BackendMemory {
			return fmt.Errorf("storage cache is not supported with backend %q", c.StorageBackend)
		}
		if c.RedisURL == "" {
			return fmt.Errorf("storage cache requires redis url")
		}
	}
	if c.APIPort == "" {
		return fmt.Errorf("api_server.port is required")
	}
	return nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
