package report

import (
	"context"

	"github.com/xiebiao/tienda/internal/domain/product"
	"github.com/xiebiao/tienda/pkg/tracing"
)

// StockHistoryUseCase 商品库存变动历史
type StockHistoryUseCase struct {
	productRepo product.Repository
	logRepo     product.LogRepository
}

// NewStockHistoryUseCase 创建库存历史用例
func NewStockHistoryUseCase(productRepo product.Repository, logRepo product.LogRepository) *StockHistoryUseCase {
	return &StockHistoryUseCase{productRepo: productRepo, logRepo: logRepo}
}

// Execute 查询商品的库存日志(最新的在前),商品不存在返回ErrProductNotFound
func (uc *StockHistoryUseCase) Execute(ctx context.Context, productID uint) (entries []*product.StockLogEntry, err error) {
	ctx, span := tracing.StartSpan(ctx, "report", "StockHistory")
	defer func() {
		tracing.RecordError(span, err)
		span.End()
	}()

	if _, err := uc.productRepo.FindByID(ctx, productID); err != nil {
		return nil, err
	}
	return uc.logRepo.ListByProductID(ctx, productID)
}
