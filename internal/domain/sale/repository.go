package sale

import (
	"context"
)

// Repository 销售记录仓储接口
type Repository interface {
	// Create 写入销售记录,回填ID与CreatedAt
	Create(ctx context.Context, s *Sale) error

	// SumTotal 统计区间内的销售额,没有记录时返回0
	SumTotal(ctx context.Context, p Period) (float64, error)

	// ListOrders 区间内的订单视图(关联商品当前名称,最新的在前)
	ListOrders(ctx context.Context, p Period) ([]*OrderView, error)

	// ListByPeriod 区间内的原始销售记录(按写入顺序)
	ListByPeriod(ctx context.Context, p Period) ([]*Sale, error)
}
