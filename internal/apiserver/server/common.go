// Package server HTTP 传输层
//
// 将 net/http 请求适配到 entity 边界接口，并提供路由、兜底错误处理、
// 请求日志与 Prometheus 指标。
//
// 文件组织：
//   - common.go: Handler 定义与通用工具函数
//   - adapter.go: http.Request / http.ResponseWriter → entity.Request / entity.Response
//   - handler.go: 路由配置
//   - middleware.go: 请求 ID、访问日志、指标
//   - metrics.go: Prometheus 指标
package server

import (
	"encoding/json"
	"net/http"

	"entity-admin/internal/shared/storage"
	"entity-admin/pkg/logging"
)

// Handler API 处理器
//
// Handler 是所有 HTTP API 的入口，负责：
//   - 路由请求到实体控制器
//   - 兜底处理控制器返回的错误
//   - 记录访问日志与指标
type Handler struct {
	clients storage.ClientRepository // Client 实体存储

	metrics *Metrics        // Prometheus 指标
	logger  *logging.Logger // 访问日志与错误日志
}

// NewHandler 创建 Handler 实例
//
// 参数：
//   - clients: Client 实体存储
//   - metrics: 指标实例，为 nil 时使用独立的 Registry
//   - logger: 日志器，为 nil 时使用 logging.Default("api-server")
func NewHandler(clients storage.ClientRepository, metrics *Metrics, logger *logging.Logger) *Handler {
	if metrics == nil {
		metrics = NewMetrics("", nil)
	}
	if logger == nil {
		logger = logging.Default("api-server")
	}
	return &Handler{
		clients: clients,
		metrics: metrics,
		logger:  logger,
	}
}

// writeJSON 将数据以 JSON 格式写入 HTTP 响应
//
// 参数：
//   - w: HTTP 响应写入器
//   - status: HTTP 状态码
//   - data: 要序列化为 JSON 的数据
func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// Health 健康检查接口
//
// 路由: GET /health
//
// 用于负载均衡器和监控系统检查服务状态。
// 返回 {"status": "ok"} 表示服务正常运行。
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
