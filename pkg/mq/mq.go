// Package mq RabbitMQ事件发布
//
// 核心概念：
//   - Exchange：消息路由中心，这里使用topic类型，按routing key（如sale.recorded）分发
//   - Routing Key：事件类型，消费者用通配符订阅（如sale.*）
//   - 消息持久化：Exchange durable + DeliveryMode=Persistent，Broker重启不丢消息
//
// 使用示例：
//
//	pub, err := mq.NewPublisher(url, "tienda.events", "topic")
//	defer pub.Close()
//	err = pub.Publish(ctx, "sale.recorded", event)
package mq

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"

	"github.com/xiebiao/tienda/pkg/logger"
	"github.com/xiebiao/tienda/pkg/tracing"
)

// channel Publisher依赖的最小Channel接口（*amqp.Channel实现了它）
type channel interface {
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
	Close() error
}

// Publisher 消息发布者
type Publisher struct {
	conn     *amqp.Connection
	channel  channel
	exchange string
}

// NewPublisher 连接RabbitMQ并声明Exchange
func NewPublisher(url, exchange, exchangeType string) (*Publisher, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("连接RabbitMQ失败: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("创建Channel失败: %w", err)
	}

	err = ch.ExchangeDeclare(
		exchange,     // Exchange名称
		exchangeType, // Exchange类型
		true,         // Durable
		false,        // AutoDelete
		false,        // Internal
		false,        // NoWait
		nil,          // Arguments
	)
	if err != nil {
		ch.Close()
		conn.Close()
		return nil, fmt.Errorf("声明Exchange失败: %w", err)
	}

	logger.L().Info("消息发布者已创建",
		zap.String("exchange", exchange),
		zap.String("type", exchangeType),
	)

	return &Publisher{conn: conn, channel: ch, exchange: exchange}, nil
}

// Publish 发布JSON消息
func (p *Publisher) Publish(ctx context.Context, routingKey string, message interface{}) error {
	msg, err := newPublishing(ctx, message)
	if err != nil {
		return err
	}

	if err := p.channel.PublishWithContext(ctx, p.exchange, routingKey, false, false, msg); err != nil {
		return fmt.Errorf("发布消息失败: %w", err)
	}

	logger.FromContext(ctx).Debug("消息已发布",
		zap.String("exchange", p.exchange),
		zap.String("routing_key", routingKey),
		zap.Int("bytes", len(msg.Body)),
	)
	return nil
}

// newPublishing 序列化消息，trace_id放在消息头里便于消费端串联调用链
func newPublishing(ctx context.Context, message interface{}) (amqp.Publishing, error) {
	body, err := json.Marshal(message)
	if err != nil {
		return amqp.Publishing{}, fmt.Errorf("消息序列化失败: %w", err)
	}

	msg := amqp.Publishing{
		ContentType:  "application/json",
		Body:         body,
		DeliveryMode: amqp.Persistent,
		Timestamp:    time.Now().UTC(),
	}
	if traceID := tracing.ExtractTraceID(ctx); traceID != "" {
		msg.Headers = amqp.Table{"trace_id": traceID}
	}
	return msg, nil
}

// Close 关闭Channel和连接
func (p *Publisher) Close() error {
	if p.channel != nil {
		p.channel.Close()
	}
	if p.conn != nil {
		p.conn.Close()
	}
	return nil
}
