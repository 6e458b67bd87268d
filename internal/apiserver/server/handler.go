package server

import (
	"net/http"

	"entity-admin/internal/apiserver/client"
	"entity-admin/internal/apiserver/entity"
	"entity-admin/internal/shared/model"
)

// Router 返回配置好的 HTTP 路由
//
// 路由规则：
//
// 健康检查:
//   - GET /health - 服务健康检查
//   - GET /metrics - Prometheus 指标
//
// 客户端管理 (Client):
//   - GET    /client/{id} - 获取客户端
//   - POST   /client      - 创建客户端
//   - PUT    /client/{id} - 替换客户端
//   - DELETE /client/{id} - 删除客户端
func (h *Handler) Router() http.Handler {
	mux := http.NewServeMux()

	// 健康检查
	mux.HandleFunc("GET /health", h.Health)

	// Prometheus 指标端点
	mux.Handle("GET /metrics", h.metrics.MetricsHandler())

	clientController := entity.NewController[model.Client](client.NewMapper(), h.clients)
	registerEntityRoutes(h, mux, "/client", clientController)

	// 指标在内层，能拿到 ServeMux 写入的路由模式
	return requestLogMiddleware(h.logger, h.metrics.MetricsMiddleware(mux))
}

// registerEntityRoutes 为实体控制器注册 CRUD 路由
func registerEntityRoutes[E model.Entity](h *Handler, mux *http.ServeMux, prefix string, ctrl *entity.Controller[E]) {
	mux.HandleFunc("GET "+prefix+"/{id}", h.handle(ctrl.Get))
	mux.HandleFunc("POST "+prefix, h.handle(ctrl.Create))
	mux.HandleFunc("PUT "+prefix+"/{id}", h.handle(ctrl.Update))
	mux.HandleFunc("DELETE "+prefix+"/{id}", h.handle(ctrl.Delete))
}
