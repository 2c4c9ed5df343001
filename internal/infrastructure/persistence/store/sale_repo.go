package store

import (
	"context"
	"database/sql"
	"time"

	"gorm.io/gorm"

	"github.com/xiebiao/tienda/internal/domain/sale"
	apperrors "github.com/xiebiao/tienda/pkg/errors"
)

// saleRepository 销售记录仓储实现
// 教学要点:按月/按日统计统一使用 fecha >= start AND fecha < end,
// 不依赖各数据库的日期函数(strftime/DATE_FORMAT/to_char)
type saleRepository struct {
	db *gorm.DB
}

// NewSaleRepository 创建销售记录仓储
func NewSaleRepository(db *gorm.DB) sale.Repository {
	return &saleRepository{db: db}
}

// Create 写入销售记录
func (r *saleRepository) Create(ctx context.Context, s *sale.Sale) error {
	model := &SaleModel{
		ProductID: s.ProductID,
		Quantity:  s.Quantity,
		Price:     s.Price,
		Total:     s.Total,
	}
	if err := getDB(ctx, r.db).Create(model).Error; err != nil {
		return apperrors.Wrap(err, "写入销售记录失败")
	}

	s.ID = model.ID
	s.CreatedAt = model.CreatedAt
	return nil
}

// SumTotal 区间销售额
func (r *saleRepository) SumTotal(ctx context.Context, p sale.Period) (float64, error) {
	// 没有记录时SUM返回NULL
	var total sql.NullFloat64
	err := getDB(ctx, r.db).Model(&SaleModel{}).
		Select("SUM(costo_total)").
		Where("fecha >= ? AND fecha < ?", p.Start, p.End).
		Row().Scan(&total)
	if err != nil {
		return 0, apperrors.Wrap(err, "统计销售额失败")
	}
	return total.Float64, nil
}

// orderRow 订单视图查询结果
type orderRow struct {
	OrderID     uint
	Date        time.Time
	Quantity    int
	Total       float64
	ProductName sql.NullString
}

// ListOrders 区间订单(关联商品当前名称,最新的在前)
func (r *saleRepository) ListOrders(ctx context.Context, p sale.Period) ([]*sale.OrderView, error) {
	var rows []orderRow
	err := getDB(ctx, r.db).Table("productos_vendidos AS pv").
		Select("pv.id AS order_id, pv.fecha AS date, pv.cantidad AS quantity, pv.costo_total AS total, p.nombre AS product_name").
		Joins("LEFT JOIN productos AS p ON p.id = pv.producto_id").
		Where("pv.fecha >= ? AND pv.fecha < ?", p.Start, p.End).
		Order("pv.fecha DESC, pv.id DESC").
		Scan(&rows).Error
	if err != nil {
		return nil, apperrors.Wrap(err, "查询订单失败")
	}

	views := make([]*sale.OrderView, len(rows))
	for i, row := range rows {
		views[i] = &sale.OrderView{
			OrderID:     row.OrderID,
			Date:        row.Date,
			Quantity:    row.Quantity,
			Total:       row.Total,
			ProductName: row.ProductName.String,
		}
	}
	return views, nil
}

// ListByPeriod 区间原始销售记录(按写入顺序)
func (r *saleRepository) ListByPeriod(ctx context.Context, p sale.Period) ([]*sale.Sale, error) {
	var models []SaleModel
	err := getDB(ctx, r.db).
		Where("fecha >= ? AND fecha < ?", p.Start, p.End).
		Order("id ASC").
		Find(&models).Error
	if err != nil {
		return nil, apperrors.Wrap(err, "查询销售记录失败")
	}

	sales := make([]*sale.Sale, len(models))
	for i, m := range models {
		sales[i] = &sale.Sale{
			ID:        m.ID,
			ProductID: m.ProductID,
			Quantity:  m.Quantity,
			Price:     m.Price,
			Total:     m.Total,
			CreatedAt: m.CreatedAt,
		}
	}
	return sales, nil
}
