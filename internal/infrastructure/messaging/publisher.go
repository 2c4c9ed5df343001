// Package messaging 把库存事件发布到RabbitMQ
// 发布经过熔断器：Broker故障时快速失败，不拖慢下单请求
package messaging

import (
	"context"

	"go.uber.org/zap"

	"github.com/xiebiao/tienda/internal/application/inventory"
	"github.com/xiebiao/tienda/internal/infrastructure/config"
	"github.com/xiebiao/tienda/pkg/circuitbreaker"
	"github.com/xiebiao/tienda/pkg/logger"
	"github.com/xiebiao/tienda/pkg/metrics"
	"github.com/xiebiao/tienda/pkg/mq"
)

// rawPublisher 底层发布者（*mq.Publisher实现了它）
type rawPublisher interface {
	Publish(ctx context.Context, routingKey string, message interface{}) error
}

// BreakerPublisher 带熔断的事件发布者
type BreakerPublisher struct {
	pub rawPublisher
	cb  *circuitbreaker.CircuitBreaker
}

// NewBreakerPublisher 创建带熔断的发布者
func NewBreakerPublisher(pub rawPublisher, cb *circuitbreaker.CircuitBreaker) *BreakerPublisher {
	metrics.InitMetrics()
	return &BreakerPublisher{pub: pub, cb: cb}
}

// Publish 通过熔断器发布事件
func (p *BreakerPublisher) Publish(ctx context.Context, routingKey string, event interface{}) error {
	err := p.cb.Execute(func() error {
		return p.pub.Publish(ctx, routingKey, event)
	})

	result := "success"
	if err != nil {
		result = "failure"
	}
	metrics.IncCounterVec(metrics.MessagesPublishedTotal, map[string]string{
		"routing_key": routingKey,
		"result":      result,
	})
	return err
}

// NoopPublisher 未启用消息队列时使用
type NoopPublisher struct{}

// Publish 丢弃事件
func (NoopPublisher) Publish(context.Context, string, interface{}) error {
	return nil
}

// NewEventPublisher 按配置创建发布者
// mq.enabled=false或连接失败时退化为NoopPublisher，返回的cleanup总是可调用
func NewEventPublisher(cfg *config.Config) (inventory.EventPublisher, func()) {
	if !cfg.MQ.Enabled {
		return NoopPublisher{}, func() {}
	}

	pub, err := mq.NewPublisher(cfg.MQ.URL, cfg.MQ.Exchange, cfg.MQ.ExchangeType)
	if err != nil {
		logger.L().Warn("RabbitMQ不可用，事件发布已关闭", zap.Error(err))
		return NoopPublisher{}, func() {}
	}

	cb := circuitbreaker.New("rabbitmq-events", circuitbreaker.DefaultConfig())
	return NewBreakerPublisher(pub, cb), func() {
		_ = pub.Close()
	}
}
