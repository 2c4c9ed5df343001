package product

import (
	"context"
)

// Repository 商品仓储接口(依赖倒置原则)
// 设计说明:
// 1. 由domain层定义接口,infrastructure层实现
// 2. 所有方法都从ctx中获取事务(如果有),保证同一用例内的操作原子性
type Repository interface {
	// Create 创建商品,回填ID与CreatedAt
	Create(ctx context.Context, p *Product) error

	// FindByID 根据ID查找商品,不存在返回ErrProductNotFound
	FindByID(ctx context.Context, id uint) (*Product, error)

	// List 查询全部商品(按ID升序,不分页)
	List(ctx context.Context) ([]*Product, error)

	// IncreaseStock 相对增加库存
	// UPDATE productos SET cantidad = cantidad + ? WHERE id = ?
	// 影响0行时返回ErrProductNotFound
	IncreaseStock(ctx context.Context, id uint, quantity int) error

	// DecreaseStock 条件扣减库存(原子操作)
	// UPDATE productos SET cantidad = cantidad - ? WHERE id = ? AND cantidad >= ?
	// 影响0行时再查一次,区分ErrProductNotFound与ErrInsufficientStock
	DecreaseStock(ctx context.Context, id uint, quantity int) error
}

// LogRepository 库存日志仓储接口
type LogRepository interface {
	// Append 追加一条日志
	Append(ctx context.Context, entry *StockLogEntry) error

	// ListByProductID 查询商品的库存变动历史(最新的在前)
	ListByProductID(ctx context.Context, productID uint) ([]*StockLogEntry, error)
}
