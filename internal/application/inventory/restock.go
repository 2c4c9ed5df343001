package inventory

import (
	"context"
	"errors"
	"time"

	"github.com/xiebiao/tienda/internal/domain/product"
	"github.com/xiebiao/tienda/internal/infrastructure/persistence/store"
	"github.com/xiebiao/tienda/pkg/metrics"
	"github.com/xiebiao/tienda/pkg/tracing"
)

// RestockUseCase 补货用例
// 教学要点:
// 1. 相对更新 cantidad = cantidad + n,并发补货不会丢失更新
// 2. 商品不存在(影响0行)直接返回404,不写日志
// 3. 补货与"cantidad agregada"日志在同一事务中
type RestockUseCase struct {
	productRepo product.Repository
	logRepo     product.LogRepository
	txManager   *store.TxManager
	publisher   EventPublisher
}

// NewRestockUseCase 创建补货用例
func NewRestockUseCase(
	productRepo product.Repository,
	logRepo product.LogRepository,
	txManager *store.TxManager,
	publisher EventPublisher,
) *RestockUseCase {
	metrics.InitMetrics()
	return &RestockUseCase{
		productRepo: productRepo,
		logRepo:     logRepo,
		txManager:   txManager,
		publisher:   publisher,
	}
}

// RestockRequest 补货请求
type RestockRequest struct {
	ProductID uint
	Quantity  int
}

// RestockResponse 补货响应
type RestockResponse struct {
	ID uint
}

// Execute 执行补货用例
func (uc *RestockUseCase) Execute(ctx context.Context, req RestockRequest) (resp *RestockResponse, err error) {
	ctx, span := tracing.StartSpan(ctx, "inventory", "Restock")
	defer func() {
		tracing.RecordError(span, err)
		span.End()
	}()

	if err := product.ValidateQuantity(req.Quantity); err != nil {
		return nil, err
	}

	err = uc.txManager.Transaction(ctx, func(txCtx context.Context) error {
		if err := uc.productRepo.IncreaseStock(txCtx, req.ProductID, req.Quantity); err != nil {
			if errors.Is(err, product.ErrProductNotFound) || errors.Is(err, product.ErrStockLimitExceeded) {
				return err
			}
			return product.ErrRestockFailed.WithCause(err)
		}

		entry := product.NewStockLogEntry(req.ProductID, req.Quantity, product.ActionQuantityAdded)
		if err := uc.logRepo.Append(txCtx, entry); err != nil {
			metrics.IncCounter(metrics.StockLogFailuresTotal)
			return product.ErrLogFailed.WithCause(err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	metrics.IncCounter(metrics.RestocksTotal)
	metrics.AddCounter(metrics.UnitsRestockedTotal, float64(req.Quantity))

	publishAfterCommit(ctx, uc.publisher, RoutingKeyStockAdded, StockAddedEvent{
		ProductID:  req.ProductID,
		Quantity:   req.Quantity,
		Action:     string(product.ActionQuantityAdded),
		OccurredAt: time.Now().UTC(),
	})

	return &RestockResponse{ID: req.ProductID}, nil
}
