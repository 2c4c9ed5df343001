package inventory

import (
	"context"

	"github.com/xiebiao/tienda/internal/domain/product"
	"github.com/xiebiao/tienda/internal/domain/sale"
	"github.com/xiebiao/tienda/internal/infrastructure/persistence/store"
	apperrors "github.com/xiebiao/tienda/pkg/errors"
	"github.com/xiebiao/tienda/pkg/metrics"
	"github.com/xiebiao/tienda/pkg/tracing"
)

// SellUseCase 销售用例
// 教学要点:这是整个项目最核心的用例
//
// 核心问题:库存超卖
// 错误实现(先读后写):
//  1. 查询库存 → 5
//  2. 判断够不够 → 够
//  3. UPDATE productos SET cantidad = 5 - 3
//     两个请求同时读到5,各卖3件,结果库存2(实际卖出6件)
//
// 正确实现:事务 + 条件相对更新
//  1. 读取商品(价格快照、友好的错误提示)
//  2. 写入销售记录
//  3. UPDATE ... SET cantidad = cantidad - n WHERE id = ? AND cantidad >= n
//     影响0行说明被并发请求抢先,整个事务回滚
//  4. 事务内再读一次剩余库存
type SellUseCase struct {
	productRepo product.Repository
	saleRepo    sale.Repository
	txManager   *store.TxManager
	publisher   EventPublisher
}

// NewSellUseCase 创建销售用例
func NewSellUseCase(
	productRepo product.Repository,
	saleRepo sale.Repository,
	txManager *store.TxManager,
	publisher EventPublisher,
) *SellUseCase {
	metrics.InitMetrics()
	return &SellUseCase{
		productRepo: productRepo,
		saleRepo:    saleRepo,
		txManager:   txManager,
		publisher:   publisher,
	}
}

// SellRequest 销售请求
type SellRequest struct {
	ProductID uint
	Quantity  int
}

// SellResponse 销售响应
type SellResponse struct {
	SaleID            uint
	TotalCharged      float64
	RemainingQuantity int
}

// Execute 执行销售用例
// 注意:销售不写库存日志,只写销售记录
func (uc *SellUseCase) Execute(ctx context.Context, req SellRequest) (resp *SellResponse, err error) {
	ctx, span := tracing.StartSpan(ctx, "inventory", "Sell")
	defer func() {
		tracing.RecordError(span, err)
		span.End()
		if err != nil {
			metrics.IncCounterVec(metrics.SalesFailedTotal, map[string]string{"kind": string(apperrors.KindOf(err))})
		}
	}()

	if err := product.ValidateQuantity(req.Quantity); err != nil {
		return nil, err
	}

	var record *sale.Sale
	var remaining int
	err = uc.txManager.Transaction(ctx, func(txCtx context.Context) error {
		// 1. 读取商品
		p, err := uc.productRepo.FindByID(txCtx, req.ProductID)
		if err != nil {
			return err
		}

		// 2. 库存检查(不满足时不做任何写入)
		if !p.CanSell(req.Quantity) {
			return product.ErrInsufficientStock
		}

		// 3. 价格快照 + 金额计算
		record = sale.NewSale(p.ID, req.Quantity, p.Price)

		// 4. 写入销售记录
		if err := uc.saleRepo.Create(txCtx, record); err != nil {
			return err
		}

		// 5. 条件扣减,失败则销售记录随事务回滚
		if err := uc.productRepo.DecreaseStock(txCtx, p.ID, req.Quantity); err != nil {
			return err
		}

		// 6. 读取扣减后的库存
		updated, err := uc.productRepo.FindByID(txCtx, p.ID)
		if err != nil {
			return err
		}
		remaining = updated.Quantity
		return nil
	})
	if err != nil {
		return nil, err
	}

	metrics.IncCounter(metrics.SalesTotal)
	metrics.ObserveHistogram(metrics.SaleAmount, record.Total)

	publishAfterCommit(ctx, uc.publisher, RoutingKeySaleRecorded, SaleRecordedEvent{
		SaleID:            record.ID,
		ProductID:         record.ProductID,
		Quantity:          record.Quantity,
		UnitPrice:         record.Price,
		TotalCharged:      record.Total,
		RemainingQuantity: remaining,
		OccurredAt:        record.CreatedAt,
	})

	return &SellResponse{
		SaleID:            record.ID,
		TotalCharged:      record.Total,
		RemainingQuantity: remaining,
	}, nil
}
