// Package metrics 基于Prometheus的指标收集
//
// 指标类型：
//   - Counter：只增不减（请求数、销售笔数、失败次数），名称以_total结尾
//   - Gauge：可增可减的瞬时值（并发请求数、熔断器状态）
//   - Histogram：观测值分布（请求耗时、单笔销售金额）
//
// 使用示例：
//
//	// 1. 启动时初始化（重复调用无副作用）
//	metrics.InitMetrics()
//
//	// 2. gin路由暴露/metrics端点
//	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
//
//	// 3. 在用例中记录业务指标
//	metrics.IncCounter(metrics.SalesTotal)
//	metrics.ObserveHistogram(metrics.SaleAmount, total)
//
// 注意：标签只用有限取值（method、路由模板、status、错误类别），
// 不要用商品ID或原始URL作为标签。
package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	initOnce sync.Once

	// HTTP请求相关指标

	// HTTPRequestsTotal HTTP请求总数
	// 标签：method、path（路由模板，如/api/productos/:id）、status
	HTTPRequestsTotal *prometheus.CounterVec

	// HTTPRequestDuration HTTP请求耗时
	HTTPRequestDuration *prometheus.HistogramVec

	// HTTPRequestsInProgress 正在处理的HTTP请求数
	HTTPRequestsInProgress prometheus.Gauge

	// 库存业务指标

	// ProductsCreatedTotal 新建商品数
	ProductsCreatedTotal prometheus.Counter

	// RestocksTotal 补货次数
	RestocksTotal prometheus.Counter

	// UnitsRestockedTotal 补货总件数
	UnitsRestockedTotal prometheus.Counter

	// SalesTotal 成功销售笔数
	SalesTotal prometheus.Counter

	// SalesFailedTotal 销售失败次数
	// 标签：kind（validation/not_found/insufficient_stock/store）
	SalesFailedTotal *prometheus.CounterVec

	// SaleAmount 单笔销售金额分布
	SaleAmount prometheus.Histogram

	// StockLogFailuresTotal 库存日志写入失败次数（对应的变更已回滚）
	StockLogFailuresTotal prometheus.Counter

	// IdempotentReplaysTotal 幂等键命中、直接重放响应的次数
	IdempotentReplaysTotal prometheus.Counter

	// 熔断器指标

	// CircuitBreakerState 熔断器状态（0=CLOSED, 1=HALF_OPEN, 2=OPEN）
	CircuitBreakerState *prometheus.GaugeVec

	// CircuitBreakerRequests 熔断器请求总数
	// 标签：name、result（success/failure/rejected）
	CircuitBreakerRequests *prometheus.CounterVec

	// 消息队列指标

	// MessagesPublishedTotal 事件发布次数
	// 标签：routing_key、result（success/failure）
	MessagesPublishedTotal *prometheus.CounterVec
)

// InitMetrics 注册所有指标到默认Registry
// 使用sync.Once保证只注册一次，测试与多个组件可以放心重复调用
func InitMetrics() {
	initOnce.Do(register)
}

func register() {
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "HTTP请求总数",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP请求耗时（秒）",
			Buckets: []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 5},
		},
		[]string{"method", "path"},
	)

	HTTPRequestsInProgress = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "http_requests_in_progress",
			Help: "正在处理的HTTP请求数",
		},
	)

	ProductsCreatedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "tienda_products_created_total",
			Help: "新建商品数",
		},
	)

	RestocksTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "tienda_restocks_total",
			Help: "补货次数",
		},
	)

	UnitsRestockedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "tienda_units_restocked_total",
			Help: "补货总件数",
		},
	)

	SalesTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "tienda_sales_recorded_total",
			Help: "成功销售笔数",
		},
	)

	SalesFailedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tienda_sales_failed_total",
			Help: "销售失败次数",
		},
		[]string{"kind"},
	)

	SaleAmount = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "tienda_sale_amount",
			Help:    "单笔销售金额",
			Buckets: []float64{1, 10, 50, 100, 500, 1000, 5000},
		},
	)

	StockLogFailuresTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "tienda_stock_log_failures_total",
			Help: "库存日志写入失败次数",
		},
	)

	IdempotentReplaysTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "tienda_idempotent_replays_total",
			Help: "幂等重放次数",
		},
	)

	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "circuit_breaker_state",
			Help: "熔断器状态（0=CLOSED, 1=HALF_OPEN, 2=OPEN）",
		},
		[]string{"name"},
	)

	CircuitBreakerRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "circuit_breaker_requests_total",
			Help: "熔断器请求总数",
		},
		[]string{"name", "result"},
	)

	MessagesPublishedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "messages_published_total",
			Help: "事件发布次数",
		},
		[]string{"routing_key", "result"},
	)
}

// IncCounter 递增Counter（便捷函数）
func IncCounter(counter prometheus.Counter) {
	counter.Inc()
}

// AddCounter Counter增加指定值
func AddCounter(counter prometheus.Counter, value float64) {
	counter.Add(value)
}

// IncCounterVec 递增CounterVec（带标签）
func IncCounterVec(counter *prometheus.CounterVec, labels map[string]string) {
	counter.With(labels).Inc()
}

// IncGauge 递增Gauge
func IncGauge(gauge prometheus.Gauge) {
	gauge.Inc()
}

// DecGauge 递减Gauge
func DecGauge(gauge prometheus.Gauge) {
	gauge.Dec()
}

// SetGaugeVec 设置GaugeVec值（带标签）
func SetGaugeVec(gauge *prometheus.GaugeVec, labels map[string]string, value float64) {
	gauge.With(labels).Set(value)
}

// ObserveHistogram 记录Histogram观测值
func ObserveHistogram(histogram prometheus.Histogram, value float64) {
	histogram.Observe(value)
}

// ObserveHistogramVec 记录HistogramVec观测值（带标签）
func ObserveHistogramVec(histogram *prometheus.HistogramVec, labels map[string]string, value float64) {
	histogram.With(labels).Observe(value)
}
