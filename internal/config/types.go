// Package config 统一配置管理
//
// 配置加载优先级（高→低）：
//  1. 环境变量（通过 .env 文件或 shell/systemd 注入）
//  2. YAML 配置文件（{env}.yaml，如 dev.yaml、test.yaml、prod.yaml）
//  3. 代码硬编码默认值
//
// 凭据单一数据源：
//
//	密码/密钥只存在环境变量或 .env 文件中（YAML 中不存储任何密码）。
//
// 配置路径确定策略：
//  1. --config 命令行参数（显式路径）
//  2. CONFIG_DIR 环境变量
//  3. 按 APP_ENV 选择默认路径：
//     - prod → /etc/entity-admin/
//     - dev/test → ./configs/
//
// 环境：
//   - 开发: APP_ENV=dev → configs/dev.yaml + .env.dev
//   - 测试: APP_ENV=test → configs/test.yaml + .env.test
//   - 生产: APP_ENV=prod → /etc/entity-admin/prod.yaml
package config

import "time"

// Environment 环境类型
type Environment string

const (
	EnvProduction  Environment = "prod"
	EnvTest        Environment = "test"
	EnvDevelopment Environment = "dev"
)

// 存储后端
const (
	BackendMemory  = "memory"
	BackendSQL     = "sql"
	BackendMongoDB = "mongodb"
	BackendRedis   = "redis"
	BackendEtcd    = "etcd"
	BackendMinIO   = "minio"
)

// YAMLConfig YAML 配置文件结构
type YAMLConfig struct {
	APIServer APIServerConfig `yaml:"api_server"`
	Database  DatabaseConfig  `yaml:"database"`
	Redis     RedisConfig     `yaml:"redis"`
	Etcd      EtcdConfig      `yaml:"etcd"`
	MinIO     MinIOConfig     `yaml:"minio"`
	Storage   StorageConfig   `yaml:"storage"`
	Log       LogConfig       `yaml:"log"`
}

// APIServerConfig API Server 配置
type APIServerConfig struct {
	Port string `yaml:"port"` // 监听端口
}

// StorageConfig 存储后端选择
type StorageConfig struct {
	// Backend memory / sql / mongodb / redis / etcd / minio
	// 为空时根据 database.driver 推断
	Backend string `yaml:"backend"`

	// Cache 为非 Redis 后端启用 Redis 读缓存
	Cache bool `yaml:"cache"`
}

type DatabaseConfig struct {
	Driver   string `yaml:"driver"` // "memory", "sqlite", "postgres", or "mongodb"
	Path     string `yaml:"path"`   // SQLite 文件路径
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"-"` // 只从环境变量读取（DB_PASSWORD / MONGO_ROOT_PASSWORD）
	Name     string `yaml:"name"`
	SSLMode  string `yaml:"sslmode"`
	URI      string `yaml:"uri"` // MongoDB 连接 URI（优先于 host/port）
}

type RedisConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	DB       int    `yaml:"db"`
	Password string `yaml:"-"`   // 只从 REDIS_PASSWORD 环境变量读取
	URL      string `yaml:"url"` // 直接指定 URL（优先于 host/port/db）
	Prefix   string `yaml:"prefix"`

	CacheTTL time.Duration `yaml:"cache_ttl"` // 读缓存过期时间，例如 5m
}

type EtcdConfig struct {
	Endpoints []string `yaml:"endpoints"`
	Prefix    string   `yaml:"prefix"`
}

// MinIOConfig MinIO 对象存储配置
type MinIOConfig struct {
	Endpoint  string `yaml:"endpoint"` // 例如 localhost:9000
	AccessKey string `yaml:"-"`        // 只从 MINIO_ROOT_USER 环境变量读取
	SecretKey string `yaml:"-"`        // 只从 MINIO_ROOT_PASSWORD 环境变量读取
	UseSSL    bool   `yaml:"use_ssl"`  // 是否使用 HTTPS
	Bucket    string `yaml:"bucket"`   // 默认 bucket 名称
}

// LogConfig 日志配置
type LogConfig struct {
	Level  string `yaml:"level"`  // debug / info / warn / error
	Format string `yaml:"format"` // json / text
	Output string `yaml:"output"` // stdout / stderr / 文件路径
}

// Config 应用配置（最终使用的配置）
type Config struct {
	Env            Environment
	StorageBackend string
	DatabaseDriver string // "memory", "sqlite", "postgres", or "mongodb"
	DatabaseURL    string
	DatabaseDBName string // MongoDB 数据库名称
	RedisURL       string
	RedisPrefix    string
	CacheEnabled   bool
	CacheTTL       time.Duration
	Etcd           EtcdConfig
	MinIO          MinIOConfig
	Log            LogConfig
	APIPort        string
	ConfigFilePath string // 实际加载的配置文件路径
}

// yamlConfigInternal 内部包装，记录配置文件来源（不参与 YAML 序列化）
type yamlConfigInternal struct {
	YAMLConfig `yaml:",inline"`
	loadedFrom string
}
