package store

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/xiebiao/tienda/internal/domain/product"
	apperrors "github.com/xiebiao/tienda/pkg/errors"
)

// productRepository 商品仓储实现
// 设计说明:
// 1. 实现domain/product/repository.go定义的接口
// 2. 负责领域实体与GORM模型之间的转换
// 3. 库存变更一律使用相对更新,不做"先读后写"
type productRepository struct {
	db *gorm.DB
}

// NewProductRepository 创建商品仓储
func NewProductRepository(db *gorm.DB) product.Repository {
	return &productRepository{db: db}
}

// Create 创建商品
func (r *productRepository) Create(ctx context.Context, p *product.Product) error {
	model := &ProductModel{
		Name:     p.Name,
		Price:    p.Price,
		Quantity: p.Quantity,
		Image:    p.Image,
		Category: p.Category,
	}

	if err := getDB(ctx, r.db).Create(model).Error; err != nil {
		return apperrors.Wrap(err, "创建商品失败")
	}

	// 回填自增ID
	p.ID = model.ID
	p.CreatedAt = model.CreatedAt
	return nil
}

// FindByID 根据ID查找商品
func (r *productRepository) FindByID(ctx context.Context, id uint) (*product.Product, error) {
	var model ProductModel
	err := getDB(ctx, r.db).First(&model, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, product.ErrProductNotFound
		}
		return nil, apperrors.Wrapf(err, "查询商品%d失败", id)
	}
	return toProductEntity(&model), nil
}

// List 查询全部商品
func (r *productRepository) List(ctx context.Context) ([]*product.Product, error) {
	var models []ProductModel
	if err := getDB(ctx, r.db).Order("id ASC").Find(&models).Error; err != nil {
		return nil, apperrors.Wrap(err, "查询商品列表失败")
	}

	products := make([]*product.Product, len(models))
	for i := range models {
		products[i] = toProductEntity(&models[i])
	}
	return products, nil
}

// IncreaseStock 补货(相对增加)
// UPDATE productos SET cantidad = cantidad + ? WHERE id = ? AND cantidad <= MaxQuantity - ?
// 加上之后超过上限的补货不会执行,库存保持不变
func (r *productRepository) IncreaseStock(ctx context.Context, id uint, quantity int) error {
	if quantity > product.MaxQuantity {
		return product.ErrStockLimitExceeded
	}

	db := getDB(ctx, r.db)
	result := db.Model(&ProductModel{}).
		Where("id = ?", id).
		Where("cantidad <= ?", product.MaxQuantity-quantity).
		Update("cantidad", gorm.Expr("cantidad + ?", quantity))

	if result.Error != nil {
		return apperrors.Wrapf(result.Error, "商品%d补货失败", id)
	}
	if result.RowsAffected == 0 {
		return r.missingOr(db, id, product.ErrStockLimitExceeded)
	}
	return nil
}

// DecreaseStock 扣减库存(原子操作)
func (r *productRepository) DecreaseStock(ctx context.Context, id uint, quantity int) error {
	// UPDATE productos SET cantidad = cantidad - ? WHERE id = ? AND cantidad >= ?
	// 教学要点:条件写在WHERE里,并发扣减也不会出现负库存
	db := getDB(ctx, r.db)
	result := db.Model(&ProductModel{}).
		Where("id = ?", id).
		Where("cantidad >= ?", quantity).
		Update("cantidad", gorm.Expr("cantidad - ?", quantity))

	if result.Error != nil {
		return apperrors.Wrapf(result.Error, "商品%d扣减库存失败", id)
	}

	if result.RowsAffected == 0 {
		// 可能是商品不存在,或者库存不足
		return r.missingOr(db, id, product.ErrInsufficientStock)
	}

	return nil
}

// missingOr 条件更新影响0行时再查一次:商品不存在返回ErrProductNotFound,否则返回cause
func (r *productRepository) missingOr(db *gorm.DB, id uint, cause error) error {
	var model ProductModel
	if err := db.Select("id").First(&model, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return product.ErrProductNotFound
		}
		return apperrors.Wrapf(err, "查询商品%d失败", id)
	}
	return cause
}

// toProductEntity GORM模型 → 领域实体
func toProductEntity(model *ProductModel) *product.Product {
	return &product.Product{
		ID:        model.ID,
		Name:      model.Name,
		Price:     model.Price,
		Quantity:  model.Quantity,
		Category:  model.Category,
		Image:     model.Image,
		CreatedAt: model.CreatedAt,
	}
}
