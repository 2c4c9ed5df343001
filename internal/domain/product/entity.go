package product

import (
	"strings"
	"time"
)

// MaxQuantity 单个商品的库存上限
// 保证cantidad在所有驱动的整数列中都不会溢出(SQLite溢出后会变成REAL)
const MaxQuantity = 1_000_000_000

// Product 商品实体(聚合根)
// DDD设计说明:
// 1. ID由存储层自增分配,创建后不可变
// 2. Quantity是当前库存,任何时刻都不能为负数
// 3. 商品没有删除操作,只有补货(+)和销售(-)两种库存变化
type Product struct {
	ID        uint
	Name      string  // 商品名称(必填)
	Price     float64 // 单价(非负)
	Quantity  int     // 当前库存
	Category  string  // 分类(可选)
	Image     string  // 图片地址(可选)
	CreatedAt time.Time
}

// NewProduct 创建新商品(工厂方法)
// 业务规则:
// - 名称去掉首尾空白后不能为空
// - 价格、初始库存不能为负数
// - 初始库存不能超过MaxQuantity
func NewProduct(name string, price float64, quantity int, category, image string) (*Product, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrNameRequired
	}
	if price < 0 {
		return nil, ErrInvalidPrice
	}
	if quantity < 0 {
		return nil, ErrInvalidInitialQuantity
	}
	if quantity > MaxQuantity {
		return nil, ErrStockLimitExceeded
	}

	return &Product{
		Name:     name,
		Price:    price,
		Quantity: quantity,
		Category: strings.TrimSpace(category),
		Image:    strings.TrimSpace(image),
	}, nil
}

// CanSell 库存是否足够卖出quantity件
func (p *Product) CanSell(quantity int) bool {
	return quantity > 0 && p.Quantity >= quantity
}

// ValidateQuantity 校验补货/销售数量(必须为正整数,且不超过MaxQuantity)
func ValidateQuantity(quantity int) error {
	if quantity <= 0 {
		return ErrInvalidQuantity
	}
	if quantity > MaxQuantity {
		return ErrStockLimitExceeded
	}
	return nil
}
