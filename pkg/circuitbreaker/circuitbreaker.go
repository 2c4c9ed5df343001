// Package circuitbreaker 熔断器（基于sony/gobreaker）
//
// 熔断器核心思想：
// 1. 监控下游调用（这里是消息队列）的失败率
// 2. 失败率超过阈值时快速失败（OPEN），不再等待超时
// 3. Timeout之后进入HALF_OPEN，放行少量请求探测下游是否恢复
//
// 三种状态：CLOSED（正常）→ OPEN（熔断）→ HALF_OPEN（探测）→ CLOSED
package circuitbreaker

import (
	"errors"
	"time"

	"github.com/sony/gobreaker"
	"go.uber.org/zap"

	"github.com/xiebiao/tienda/pkg/logger"
	"github.com/xiebiao/tienda/pkg/metrics"
)

// ErrOpenState 熔断器打开时的快速失败错误
var ErrOpenState = gobreaker.ErrOpenState

// ErrTooManyRequests 半开状态下探测请求已满
var ErrTooManyRequests = gobreaker.ErrTooManyRequests

// Config 熔断器配置
type Config struct {
	// MaxRequests 半开状态下允许的最大请求数
	MaxRequests uint32

	// Interval CLOSED状态下清零统计的周期，0表示不清零
	Interval time.Duration

	// Timeout OPEN状态持续时间，过了这个时间转为HALF_OPEN
	Timeout time.Duration

	// MinRequests 触发熔断所需的最少请求数
	MinRequests uint32

	// FailureRatio 失败率阈值（0~1）
	FailureRatio float64
}

// DefaultConfig 默认配置：至少5次请求且失败率≥60%时熔断，10秒后探测
func DefaultConfig() Config {
	return Config{
		MaxRequests:  3,
		Interval:     5 * time.Second,
		Timeout:      10 * time.Second,
		MinRequests:  5,
		FailureRatio: 0.6,
	}
}

// CircuitBreaker 熔断器
type CircuitBreaker struct {
	cb *gobreaker.CircuitBreaker
}

// New 创建熔断器，状态变化写日志并更新circuit_breaker_state指标
func New(name string, cfg Config) *CircuitBreaker {
	metrics.InitMetrics()

	settings := gobreaker.Settings{
		Name:        name,
		MaxRequests: cfg.MaxRequests,
		Interval:    cfg.Interval,
		Timeout:     cfg.Timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			if counts.Requests < cfg.MinRequests {
				return false
			}
			failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
			return failureRatio >= cfg.FailureRatio
		},
		OnStateChange: func(name string, from gobreaker.State, to gobreaker.State) {
			logger.L().Warn("熔断器状态变化",
				zap.String("name", name),
				zap.String("from", from.String()),
				zap.String("to", to.String()),
			)
			metrics.SetGaugeVec(metrics.CircuitBreakerState, map[string]string{"name": name}, float64(to))
		},
	}

	metrics.SetGaugeVec(metrics.CircuitBreakerState, map[string]string{"name": name}, float64(gobreaker.StateClosed))
	return &CircuitBreaker{cb: gobreaker.NewCircuitBreaker(settings)}
}

// Execute 通过熔断器执行req
// 熔断打开时直接返回ErrOpenState，不调用req
func (c *CircuitBreaker) Execute(req func() error) error {
	_, err := c.cb.Execute(func() (interface{}, error) {
		return nil, req()
	})

	result := "success"
	switch {
	case errors.Is(err, gobreaker.ErrOpenState), errors.Is(err, gobreaker.ErrTooManyRequests):
		result = "rejected"
	case err != nil:
		result = "failure"
	}
	metrics.IncCounterVec(metrics.CircuitBreakerRequests, map[string]string{
		"name":   c.cb.Name(),
		"result": result,
	})

	return err
}

// State 当前状态（CLOSED / OPEN / HALF_OPEN）
func (c *CircuitBreaker) State() gobreaker.State {
	return c.cb.State()
}

// Counts 当前统计数据
func (c *CircuitBreaker) Counts() gobreaker.Counts {
	return c.cb.Counts()
}

// Name 熔断器名称
func (c *CircuitBreaker) Name() string {
	return c.cb.Name()
}
