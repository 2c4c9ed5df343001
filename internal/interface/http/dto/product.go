package dto

import (
	"time"

	"github.com/xiebiao/tienda/internal/domain/product"
)

// TimeLayout 响应中的时间格式(UTC, RFC3339)
const TimeLayout = time.RFC3339

// CreateProductRequest HTTP新建商品请求
// 字段使用指针:区分"没传"和"传了0"
// - price/quantity为0是合法值(赠品、预登记商品)
// - 没传则视为缺少必填字段
type CreateProductRequest struct {
	Name     *string  `json:"name" example:"Widget"`
	Price    *float64 `json:"price" example:"2.5"`
	Quantity *int     `json:"quantity" example:"10"`
	Category string   `json:"category" example:"tools"`
	Image    string   `json:"image" example:"https://example.com/widget.png"`
}

// QuantityRequest 补货/销售请求
type QuantityRequest struct {
	Quantity *int `json:"quantity" example:"3"`
}

// MessageResponse 写操作成功响应
type MessageResponse struct {
	Message string `json:"message" example:"Producto agregado y registrado correctamente"`
	ID      uint   `json:"id" example:"1"`
}

// SellResponse 销售成功响应
type SellResponse struct {
	Message           string  `json:"message" example:"Venta registrada correctamente"`
	TotalCharged      float64 `json:"totalCharged" example:"7.5"`
	RemainingQuantity int     `json:"remainingQuantity" example:"7"`
}

// ProductResponse 商品
type ProductResponse struct {
	ID        uint    `json:"id" example:"1"`
	Name      string  `json:"name" example:"Widget"`
	Price     float64 `json:"price" example:"2.5"`
	Quantity  int     `json:"quantity" example:"10"`
	Category  string  `json:"category" example:"tools"`
	Image     string  `json:"image" example:"https://example.com/widget.png"`
	CreatedAt string  `json:"createdAt" example:"2024-03-15T10:30:00Z"`
}

// ToProductResponse 领域对象 → HTTP响应
func ToProductResponse(p *product.Product) ProductResponse {
	return ProductResponse{
		ID:        p.ID,
		Name:      p.Name,
		Price:     p.Price,
		Quantity:  p.Quantity,
		Category:  p.Category,
		Image:     p.Image,
		CreatedAt: formatTime(p.CreatedAt),
	}
}

// ToProductList 列表始终返回数组(没有商品时是[]而不是null)
func ToProductList(products []*product.Product) []ProductResponse {
	items := make([]ProductResponse, 0, len(products))
	for _, p := range products {
		items = append(items, ToProductResponse(p))
	}
	return items
}

// StockLogEntryResponse 库存变动记录
type StockLogEntryResponse struct {
	ID        uint   `json:"id" example:"2"`
	ProductID uint   `json:"productId" example:"1"`
	Quantity  int    `json:"quantity" example:"5"`
	Action    string `json:"action" example:"cantidad agregada"`
	Date      string `json:"date" example:"2024-03-15T11:00:00Z"`
}

// StockHistoryResponse 某商品的库存变动历史(最新的在前)
type StockHistoryResponse struct {
	Entries []StockLogEntryResponse `json:"entries"`
}

// ToStockHistoryResponse 领域对象 → HTTP响应
func ToStockHistoryResponse(entries []*product.StockLogEntry) StockHistoryResponse {
	items := make([]StockLogEntryResponse, 0, len(entries))
	for _, e := range entries {
		items = append(items, StockLogEntryResponse{
			ID:        e.ID,
			ProductID: e.ProductID,
			Quantity:  e.Quantity,
			Action:    string(e.Action),
			Date:      formatTime(e.CreatedAt),
		})
	}
	return StockHistoryResponse{Entries: items}
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(TimeLayout)
}
