package store

import (
	"context"

	"gorm.io/gorm"

	"github.com/xiebiao/tienda/internal/domain/product"
	apperrors "github.com/xiebiao/tienda/pkg/errors"
)

// stockLogRepository 库存日志仓储实现(只追加)
type stockLogRepository struct {
	db *gorm.DB
}

// NewStockLogRepository 创建库存日志仓储
func NewStockLogRepository(db *gorm.DB) product.LogRepository {
	return &stockLogRepository{db: db}
}

// Append 追加日志
func (r *stockLogRepository) Append(ctx context.Context, entry *product.StockLogEntry) error {
	model := &StockLogModel{
		ProductID: entry.ProductID,
		Quantity:  entry.Quantity,
		Action:    string(entry.Action),
	}
	if err := getDB(ctx, r.db).Create(model).Error; err != nil {
		return apperrors.Wrap(err, "写入库存日志失败")
	}

	entry.ID = model.ID
	entry.CreatedAt = model.CreatedAt
	return nil
}

// ListByProductID 商品库存历史(最新的在前)
func (r *stockLogRepository) ListByProductID(ctx context.Context, productID uint) ([]*product.StockLogEntry, error) {
	var models []StockLogModel
	err := getDB(ctx, r.db).
		Where("producto_id = ?", productID).
		Order("fecha DESC, id DESC").
		Find(&models).Error
	if err != nil {
		return nil, apperrors.Wrap(err, "查询库存日志失败")
	}

	entries := make([]*product.StockLogEntry, len(models))
	for i, m := range models {
		entries[i] = &product.StockLogEntry{
			ID:        m.ID,
			ProductID: m.ProductID,
			Quantity:  m.Quantity,
			Action:    product.StockAction(m.Action),
			CreatedAt: m.CreatedAt,
		}
	}
	return entries, nil
}
