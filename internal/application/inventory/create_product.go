package inventory

import (
	"context"
	"time"

	"github.com/xiebiao/tienda/internal/domain/product"
	"github.com/xiebiao/tienda/internal/infrastructure/persistence/store"
	apperrors "github.com/xiebiao/tienda/pkg/errors"
	"github.com/xiebiao/tienda/pkg/metrics"
	"github.com/xiebiao/tienda/pkg/tracing"
)

// CreateProductUseCase 新建商品用例
// 设计说明:
// 1. 写入商品与写入"nuevo producto"日志在同一事务中
// 2. 日志写入失败时商品也回滚,不会出现没有日志的商品
type CreateProductUseCase struct {
	productRepo product.Repository
	logRepo     product.LogRepository
	txManager   *store.TxManager
	publisher   EventPublisher
}

// NewCreateProductUseCase 创建新建商品用例
func NewCreateProductUseCase(
	productRepo product.Repository,
	logRepo product.LogRepository,
	txManager *store.TxManager,
	publisher EventPublisher,
) *CreateProductUseCase {
	metrics.InitMetrics()
	return &CreateProductUseCase{
		productRepo: productRepo,
		logRepo:     logRepo,
		txManager:   txManager,
		publisher:   publisher,
	}
}

// CreateProductRequest 新建商品请求
type CreateProductRequest struct {
	Name     string
	Price    float64
	Quantity int
	Category string
	Image    string
}

// CreateProductResponse 新建商品响应
type CreateProductResponse struct {
	ID uint
}

// Execute 执行新建商品用例
func (uc *CreateProductUseCase) Execute(ctx context.Context, req CreateProductRequest) (resp *CreateProductResponse, err error) {
	ctx, span := tracing.StartSpan(ctx, "inventory", "CreateProduct")
	defer func() {
		tracing.RecordError(span, err)
		span.End()
	}()

	// 1. 领域校验(名称、价格、初始库存)
	p, err := product.NewProduct(req.Name, req.Price, req.Quantity, req.Category, req.Image)
	if err != nil {
		return nil, err
	}

	// 2. 商品 + 日志,同一事务
	err = uc.txManager.Transaction(ctx, func(txCtx context.Context) error {
		if err := uc.productRepo.Create(txCtx, p); err != nil {
			return product.ErrCreateFailed.WithCause(err)
		}

		entry := product.NewStockLogEntry(p.ID, p.Quantity, product.ActionNewProduct)
		if err := uc.logRepo.Append(txCtx, entry); err != nil {
			metrics.IncCounter(metrics.StockLogFailuresTotal)
			return product.ErrLogFailed.WithCause(err)
		}
		return nil
	})
	if err != nil {
		// 提交失败等非业务错误
		if !apperrors.IsAppError(err) {
			err = product.ErrCreateFailed.WithCause(err)
		}
		return nil, err
	}

	metrics.IncCounter(metrics.ProductsCreatedTotal)

	// 3. 事务提交后发布事件
	publishAfterCommit(ctx, uc.publisher, RoutingKeyStockAdded, StockAddedEvent{
		ProductID:  p.ID,
		Quantity:   p.Quantity,
		Action:     string(product.ActionNewProduct),
		OccurredAt: time.Now().UTC(),
	})

	return &CreateProductResponse{ID: p.ID}, nil
}
