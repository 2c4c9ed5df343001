package dto

import (
	"github.com/xiebiao/tienda/internal/domain/sale"
)

// MonthQuery 月份查询参数
// 同时接受month和mes(旧前端使用的参数名)
type MonthQuery struct {
	Month string `form:"month" example:"2024-03"`
	Mes   string `form:"mes"`
}

// Value 优先使用month
func (q MonthQuery) Value() string {
	if q.Month != "" {
		return q.Month
	}
	return q.Mes
}

// DayQuery 日期查询参数(day或dia)
type DayQuery struct {
	Day string `form:"day" example:"2024-03-15"`
	Dia string `form:"dia"`
}

// Value 优先使用day
func (q DayQuery) Value() string {
	if q.Day != "" {
		return q.Day
	}
	return q.Dia
}

// RevenueResponse 销售额
type RevenueResponse struct {
	TotalRevenue float64 `json:"totalRevenue" example:"15"`
}

// OrderViewResponse 月度订单(带商品当前名称)
type OrderViewResponse struct {
	OrderID      uint    `json:"orderId" example:"1"`
	Date         string  `json:"date" example:"2024-03-15T12:00:00Z"`
	Quantity     int     `json:"quantity" example:"3"`
	TotalCharged float64 `json:"totalCharged" example:"7.5"`
	ProductName  string  `json:"productName" example:"Widget"`
}

// MonthOrdersResponse 月度订单列表
type MonthOrdersResponse struct {
	Orders []OrderViewResponse `json:"orders"`
}

// ToMonthOrdersResponse 领域对象 → HTTP响应
func ToMonthOrdersResponse(views []*sale.OrderView) MonthOrdersResponse {
	items := make([]OrderViewResponse, 0, len(views))
	for _, v := range views {
		items = append(items, OrderViewResponse{
			OrderID:      v.OrderID,
			Date:         formatTime(v.Date),
			Quantity:     v.Quantity,
			TotalCharged: v.Total,
			ProductName:  v.ProductName,
		})
	}
	return MonthOrdersResponse{Orders: items}
}

// SaleResponse 原始销售记录
type SaleResponse struct {
	ID           uint    `json:"id" example:"1"`
	ProductID    uint    `json:"productId" example:"1"`
	Quantity     int     `json:"quantity" example:"3"`
	Date         string  `json:"date" example:"2024-03-15T12:00:00Z"`
	Price        float64 `json:"price" example:"2.5"`
	TotalCharged float64 `json:"totalCharged" example:"7.5"`
}

// DayOrdersResponse 当日订单
// 没有订单时Warning非空,Orders为空数组
type DayOrdersResponse struct {
	Warning string         `json:"warning,omitempty" example:"No se encontraron órdenes para la fecha seleccionada."`
	Orders  []SaleResponse `json:"orders"`
}

// ToDayOrdersResponse 领域对象 → HTTP响应
func ToDayOrdersResponse(sales []*sale.Sale, warning string) DayOrdersResponse {
	items := make([]SaleResponse, 0, len(sales))
	for _, s := range sales {
		items = append(items, SaleResponse{
			ID:           s.ID,
			ProductID:    s.ProductID,
			Quantity:     s.Quantity,
			Date:         formatTime(s.CreatedAt),
			Price:        s.Price,
			TotalCharged: s.Total,
		})
	}
	return DayOrdersResponse{Warning: warning, Orders: items}
}
