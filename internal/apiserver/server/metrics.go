package server

import (
	"net/http"
	"strconv"
	"time"

	"entity-admin/internal/shared/storage"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics 包含所有 API Server 指标
type Metrics struct {
	registry *prometheus.Registry

	// HTTP 请求指标
	HTTPRequestsTotal    *prometheus.CounterVec
	HTTPRequestDuration  *prometheus.HistogramVec
	HTTPRequestsInFlight prometheus.Gauge

	// 存储指标
	EntityErrorsTotal *prometheus.CounterVec
	DBQueryTotal      *prometheus.CounterVec
	DBQueryDuration   *prometheus.HistogramVec
}

// NewMetrics 创建指标实例
//
// 指标注册到 reg，reg 为 nil 时创建独立的 Registry，避免测试间重复注册。
func NewMetrics(namespace string, reg *prometheus.Registry) *Metrics {
	if reg == nil {
		reg = prometheus.NewRegistry()
	}
	factory := promauto.With(reg)

	return &Metrics{
		registry: reg,
		HTTPRequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "http_requests_total",
				Help:      "Total HTTP requests",
			},
			[]string{"method", "route", "status"},
		),
		HTTPRequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "http_request_duration_seconds",
				Help:      "HTTP request duration in seconds",
				Buckets:   []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
			},
			[]string{"method", "route"},
		),
		HTTPRequestsInFlight: factory.NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "http_requests_in_flight",
				Help:      "Current number of HTTP requests being processed",
			},
		),
		EntityErrorsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "entity_errors_total",
				Help:      "Repository errors by kind",
			},
			[]string{"kind"},
		),
		DBQueryTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "db_queries_total",
				Help:      "Total repository operations",
			},
			[]string{"operation"},
		),
		DBQueryDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "db_query_duration_seconds",
				Help:      "Repository operation duration in seconds",
				Buckets:   []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
			},
			[]string{"operation"},
		),
	}
}

// Registry 返回指标所在的 Registry
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// MetricsMiddleware 创建 HTTP 指标中间件
func (m *Metrics) MetricsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		m.HTTPRequestsInFlight.Inc()
		defer m.HTTPRequestsInFlight.Dec()

		// 包装 ResponseWriter 以捕获状态码
		wrapped := wrapResponseWriter(w)

		next.ServeHTTP(wrapped, r)

		duration := time.Since(start).Seconds()
		route := routeLabel(r)
		status := strconv.Itoa(wrapped.statusCode)

		m.HTTPRequestsTotal.WithLabelValues(r.Method, route, status).Inc()
		m.HTTPRequestDuration.WithLabelValues(r.Method, route).Observe(duration)
	})
}

// routeLabel 使用 ServeMux 匹配到的路由模式作为标签，避免 ID 造成高基数
func routeLabel(r *http.Request) string {
	if r.Pattern == "" {
		return "unmatched"
	}
	return r.Pattern
}

// MetricsHandler 返回 Prometheus HTTP Handler
func (m *Metrics) MetricsHandler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// RecordDBQuery 记录存储调用指标
//
// 签名与 storage.QueryObserver 一致，可直接作为观测回调。
func (m *Metrics) RecordDBQuery(operation string, duration time.Duration, err error) {
	m.DBQueryTotal.WithLabelValues(operation).Inc()
	m.DBQueryDuration.WithLabelValues(operation).Observe(duration.Seconds())
	if err == nil {
		return
	}
	if entityErr, ok := storage.AsEntityError(err); ok {
		m.RecordEntityError(entityErr.Kind.String())
	} else {
		m.RecordEntityError("internal")
	}
}

// RecordEntityError 记录存储错误
func (m *Metrics) RecordEntityError(kind string) {
	m.EntityErrorsTotal.WithLabelValues(kind).Inc()
}
