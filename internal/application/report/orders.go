package report

import (
	"context"

	"github.com/xiebiao/tienda/internal/domain/sale"
	"github.com/xiebiao/tienda/pkg/tracing"
)

// NoOrdersWarning 当天没有订单时的提示(成功响应,不是错误)
const NoOrdersWarning = "No se encontraron órdenes para la fecha seleccionada."

// OrdersUseCase 订单查询用例
type OrdersUseCase struct {
	saleRepo sale.Repository
}

// NewOrdersUseCase 创建订单查询用例
func NewOrdersUseCase(saleRepo sale.Repository) *OrdersUseCase {
	return &OrdersUseCase{saleRepo: saleRepo}
}

// ForMonth 月度订单:关联商品当前名称,最新的在前
func (uc *OrdersUseCase) ForMonth(ctx context.Context, month string) (views []*sale.OrderView, err error) {
	ctx, span := tracing.StartSpan(ctx, "report", "MonthlyOrders")
	defer func() {
		tracing.RecordError(span, err)
		span.End()
	}()

	p, err := sale.ParseMonth(month)
	if err != nil {
		return nil, err
	}
	return uc.saleRepo.ListOrders(ctx, p)
}

// DayOrdersResponse 当日订单
type DayOrdersResponse struct {
	Orders  []*sale.Sale
	Warning string // 没有订单时非空
}

// ForDay 当日原始销售记录(按写入顺序,不关联商品)
func (uc *OrdersUseCase) ForDay(ctx context.Context, day string) (resp *DayOrdersResponse, err error) {
	ctx, span := tracing.StartSpan(ctx, "report", "DailyOrders")
	defer func() {
		tracing.RecordError(span, err)
		span.End()
	}()

	p, err := sale.ParseDay(day)
	if err != nil {
		return nil, err
	}

	sales, err := uc.saleRepo.ListByPeriod(ctx, p)
	if err != nil {
		return nil, err
	}

	resp = &DayOrdersResponse{Orders: sales}
	if len(sales) == 0 {
		resp.Orders = []*sale.Sale{}
		resp.Warning = NoOrdersWarning
	}
	return resp, nil
}
