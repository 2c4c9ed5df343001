package report

import (
	"context"

	"github.com/xiebiao/tienda/internal/domain/sale"
	"github.com/xiebiao/tienda/pkg/tracing"
)

// RevenueUseCase 销售额统计用例
// 没有销售记录的区间返回0,不是错误
type RevenueUseCase struct {
	saleRepo sale.Repository
}

// NewRevenueUseCase 创建销售额统计用例
func NewRevenueUseCase(saleRepo sale.Repository) *RevenueUseCase {
	return &RevenueUseCase{saleRepo: saleRepo}
}

// RevenueResponse 销售额统计结果
type RevenueResponse struct {
	Period       sale.Period
	TotalRevenue float64
}

// Monthly 按月统计(YYYY-MM)
func (uc *RevenueUseCase) Monthly(ctx context.Context, month string) (*RevenueResponse, error) {
	p, err := sale.ParseMonth(month)
	if err != nil {
		return nil, err
	}
	return uc.sum(ctx, "MonthlyRevenue", p)
}

// Daily 按日统计(YYYY-MM-DD)
func (uc *RevenueUseCase) Daily(ctx context.Context, day string) (*RevenueResponse, error) {
	p, err := sale.ParseDay(day)
	if err != nil {
		return nil, err
	}
	return uc.sum(ctx, "DailyRevenue", p)
}

func (uc *RevenueUseCase) sum(ctx context.Context, spanName string, p sale.Period) (*RevenueResponse, error) {
	ctx, span := tracing.StartSpan(ctx, "report", spanName)
	defer span.End()

	total, err := uc.saleRepo.SumTotal(ctx, p)
	if err != nil {
		tracing.RecordError(span, err)
		return nil, err
	}
	return &RevenueResponse{Period: p, TotalRevenue: total}, nil
}
