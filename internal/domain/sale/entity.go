package sale

import (
	"time"
)

// Sale 销售记录实体
// 设计说明:
// 1. Price是下单时的单价快照,商品后续改价不影响历史记录
// 2. Total = Price × Quantity,创建时计算一次后冻结
// 3. ProductID只是引用,不保证商品的名称、价格与销售时一致
type Sale struct {
	ID        uint
	ProductID uint
	Quantity  int
	Price     float64 // 销售时单价
	Total     float64 // 实收金额
	CreatedAt time.Time
}

// NewSale 创建销售记录(工厂方法)
// 调用方需保证quantity>0且库存充足
func NewSale(productID uint, quantity int, unitPrice float64) *Sale {
	return &Sale{
		ProductID: productID,
		Quantity:  quantity,
		Price:     unitPrice,
		Total:     unitPrice * float64(quantity),
	}
}

// OrderView 订单视图(销售记录 + 商品当前名称)
type OrderView struct {
	OrderID     uint
	Date        time.Time
	Quantity    int
	Total       float64
	ProductName string
}
