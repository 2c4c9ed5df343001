package inventory

import (
	"context"

	"github.com/xiebiao/tienda/internal/domain/product"
	"github.com/xiebiao/tienda/pkg/tracing"
)

// ListProductsUseCase 商品列表用例(不分页)
type ListProductsUseCase struct {
	productRepo product.Repository
}

// NewListProductsUseCase 创建商品列表用例
func NewListProductsUseCase(productRepo product.Repository) *ListProductsUseCase {
	return &ListProductsUseCase{productRepo: productRepo}
}

// Execute 查询全部商品
func (uc *ListProductsUseCase) Execute(ctx context.Context) ([]*product.Product, error) {
	ctx, span := tracing.StartSpan(ctx, "inventory", "ListProducts")
	defer span.End()

	products, err := uc.productRepo.List(ctx)
	if err != nil {
		tracing.RecordError(span, err)
		return nil, err
	}
	return products, nil
}
