package product

import "time"

// StockAction 库存变动类型
// 存储的字符串与历史数据保持一致,不要修改
type StockAction string

const (
	ActionNewProduct    StockAction = "nuevo producto"    // 新建商品(初始库存)
	ActionQuantityAdded StockAction = "cantidad agregada" // 补货
)

// StockLogEntry 库存变动日志(只追加,不修改、不删除)
// 注意:销售不写入此日志,销售记录见sale.Sale
type StockLogEntry struct {
	ID        uint
	ProductID uint
	Quantity  int
	Action    StockAction
	CreatedAt time.Time
}

// NewStockLogEntry 创建日志条目
func NewStockLogEntry(productID uint, quantity int, action StockAction) *StockLogEntry {
	return &StockLogEntry{
		ProductID: productID,
		Quantity:  quantity,
		Action:    action,
	}
}
