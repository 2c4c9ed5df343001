package inventory

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/xiebiao/tienda/pkg/logger"
)

// 事件路由键
const (
	RoutingKeySaleRecorded = "sale.recorded"
	RoutingKeyStockAdded   = "stock.added"
)

// EventPublisher 领域事件发布接口
// 事件在事务提交后发布，发布失败只记录日志，不影响已提交的业务结果
type EventPublisher interface {
	Publish(ctx context.Context, routingKey string, event interface{}) error
}

// SaleRecordedEvent 销售完成事件
type SaleRecordedEvent struct {
	SaleID            uint      `json:"saleId"`
	ProductID         uint      `json:"productId"`
	Quantity          int       `json:"quantity"`
	UnitPrice         float64   `json:"unitPrice"`
	TotalCharged      float64   `json:"totalCharged"`
	RemainingQuantity int       `json:"remainingQuantity"`
	OccurredAt        time.Time `json:"occurredAt"`
}

// StockAddedEvent 入库事件（新建商品或补货）
type StockAddedEvent struct {
	ProductID  uint      `json:"productId"`
	Quantity   int       `json:"quantity"`
	Action     string    `json:"action"`
	OccurredAt time.Time `json:"occurredAt"`
}

// publishAfterCommit 发布事件，失败只告警
func publishAfterCommit(ctx context.Context, publisher EventPublisher, routingKey string, event interface{}) {
	if publisher == nil {
		return
	}
	if err := publisher.Publish(ctx, routingKey, event); err != nil {
		logger.FromContext(ctx).Warn("事件发布失败",
			zap.String("routing_key", routingKey),
			zap.Error(err),
		)
	}
}
