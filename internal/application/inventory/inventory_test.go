package inventory

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	"github.com/xiebiao/tienda/internal/domain/product"
	"github.com/xiebiao/tienda/internal/domain/sale"
	"github.com/xiebiao/tienda/internal/infrastructure/persistence/store"
	"github.com/xiebiao/tienda/internal/infrastructure/persistence/store/storetest"
	apperrors "github.com/xiebiao/tienda/pkg/errors"
)

// recordingPublisher 记录发布的事件
type recordingPublisher struct {
	mu     sync.Mutex
	keys   []string
	events []interface{}
	err    error
}

func (p *recordingPublisher) Publish(_ context.Context, routingKey string, event interface{}) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.keys = append(p.keys, routingKey)
	p.events = append(p.events, event)
	return p.err
}

// failingLogRepo 模拟日志写入失败
type failingLogRepo struct{}

func (failingLogRepo) Append(context.Context, *product.StockLogEntry) error {
	return apperrors.Wrap(errors.New("disk full"), "写入库存日志失败")
}

func (failingLogRepo) ListByProductID(context.Context, uint) ([]*product.StockLogEntry, error) {
	return nil, nil
}

type fixture struct {
	products product.Repository
	logs     product.LogRepository
	sales    sale.Repository
	tx       *store.TxManager
	pub      *recordingPublisher

	create  *CreateProductUseCase
	restock *RestockUseCase
	sell    *SellUseCase
	list    *ListProductsUseCase
}

func newFixture(t *testing.T) *fixture {
	db := storetest.NewDB(t)
	f := &fixture{
		products: store.NewProductRepository(db),
		logs:     store.NewStockLogRepository(db),
		sales:    store.NewSaleRepository(db),
		tx:       store.NewTxManager(db),
		pub:      &recordingPublisher{},
	}
	f.create = NewCreateProductUseCase(f.products, f.logs, f.tx, f.pub)
	f.restock = NewRestockUseCase(f.products, f.logs, f.tx, f.pub)
	f.sell = NewSellUseCase(f.products, f.sales, f.tx, f.pub)
	f.list = NewListProductsUseCase(f.products)
	return f
}

func (f *fixture) stock(t *testing.T, id uint) int {
	p, err := f.products.FindByID(context.Background(), id)
	require.NoError(t, err)
	return p.Quantity
}

func TestScenario_Widget(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	created, err := f.create.Execute(ctx, CreateProductRequest{Name: "Widget", Price: 10.0, Quantity: 5})
	require.NoError(t, err)
	assert.Equal(t, uint(1), created.ID)
	assert.Equal(t, 5, f.stock(t, 1))

	sold, err := f.sell.Execute(ctx, SellRequest{ProductID: 1, Quantity: 3})
	require.NoError(t, err)
	assert.Equal(t, 30.0, sold.TotalCharged)
	assert.Equal(t, 2, sold.RemainingQuantity)

	_, err = f.sell.Execute(ctx, SellRequest{ProductID: 1, Quantity: 5})
	assert.ErrorIs(t, err, product.ErrInsufficientStock)
	assert.Equal(t, apperrors.KindInsufficientStock, apperrors.KindOf(err))
	assert.Equal(t, 2, f.stock(t, 1))

	_, err = f.restock.Execute(ctx, RestockRequest{ProductID: 1, Quantity: 10})
	require.NoError(t, err)
	assert.Equal(t, 12, f.stock(t, 1))

	month, err := sale.ParseMonth(time.Now().UTC().Format("2006-01"))
	require.NoError(t, err)
	total, err := f.sales.SumTotal(ctx, month)
	require.NoError(t, err)
	assert.Equal(t, 30.0, total)

	// 日志:新建 + 补货,销售不记日志
	entries, err := f.logs.ListByProductID(ctx, 1)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, product.ActionQuantityAdded, entries[0].Action)
	assert.Equal(t, 10, entries[0].Quantity)
	assert.Equal(t, product.ActionNewProduct, entries[1].Action)
	assert.Equal(t, 5, entries[1].Quantity)

	// 事件:stock.added, sale.recorded, stock.added
	assert.Equal(t, []string{RoutingKeyStockAdded, RoutingKeySaleRecorded, RoutingKeyStockAdded}, f.pub.keys)
	ev, ok := f.pub.events[1].(SaleRecordedEvent)
	require.True(t, ok)
	assert.Equal(t, 30.0, ev.TotalCharged)
	assert.Equal(t, 2, ev.RemainingQuantity)
}

func TestCreateProduct_Validation(t *testing.T) {
	f := newFixture(t)

	_, err := f.create.Execute(context.Background(), CreateProductRequest{Name: " ", Price: 1, Quantity: 1})
	assert.ErrorIs(t, err, product.ErrNameRequired)

	_, err = f.create.Execute(context.Background(), CreateProductRequest{Name: "A", Price: -1, Quantity: 1})
	assert.ErrorIs(t, err, product.ErrInvalidPrice)

	list, err := f.list.Execute(context.Background())
	require.NoError(t, err)
	assert.Empty(t, list)
	assert.Empty(t, f.pub.keys)
}

func TestCreateProduct_LogFailureRollsBack(t *testing.T) {
	f := newFixture(t)
	uc := NewCreateProductUseCase(f.products, failingLogRepo{}, f.tx, f.pub)

	_, err := uc.Execute(context.Background(), CreateProductRequest{Name: "Widget", Price: 1, Quantity: 1})
	require.Error(t, err)
	assert.ErrorIs(t, err, product.ErrLogFailed)
	assert.Equal(t, apperrors.KindLogging, apperrors.KindOf(err))

	list, err := f.list.Execute(context.Background())
	require.NoError(t, err)
	assert.Empty(t, list, "日志失败时商品必须回滚")
	assert.Empty(t, f.pub.keys)
}

func TestCreateProduct_IDsIncrease(t *testing.T) {
	f := newFixture(t)

	var last uint
	for i := 0; i < 3; i++ {
		resp, err := f.create.Execute(context.Background(), CreateProductRequest{Name: "P", Price: 1, Quantity: i})
		require.NoError(t, err)
		assert.Greater(t, resp.ID, last)
		last = resp.ID
	}
}

func TestRestock_InvalidQuantity(t *testing.T) {
	f := newFixture(t)
	created, err := f.create.Execute(context.Background(), CreateProductRequest{Name: "A", Price: 1, Quantity: 3})
	require.NoError(t, err)

	for _, q := range []int{0, -2} {
		_, err := f.restock.Execute(context.Background(), RestockRequest{ProductID: created.ID, Quantity: q})
		assert.ErrorIs(t, err, product.ErrInvalidQuantity)
	}
	assert.Equal(t, 3, f.stock(t, created.ID))

	entries, err := f.logs.ListByProductID(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestRestock_StockLimit(t *testing.T) {
	f := newFixture(t)
	created, err := f.create.Execute(context.Background(), CreateProductRequest{Name: "A", Price: 1, Quantity: 10})
	require.NoError(t, err)

	_, err = f.restock.Execute(context.Background(), RestockRequest{ProductID: created.ID, Quantity: product.MaxQuantity})
	assert.ErrorIs(t, err, product.ErrStockLimitExceeded)
	assert.Equal(t, 10, f.stock(t, created.ID))

	entries, err := f.logs.ListByProductID(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Len(t, entries, 1, "被拒绝的补货不写日志")

	_, err = f.create.Execute(context.Background(), CreateProductRequest{Name: "B", Price: 1, Quantity: product.MaxQuantity + 1})
	assert.ErrorIs(t, err, product.ErrStockLimitExceeded)
}

func TestRestock_UnknownProduct(t *testing.T) {
	f := newFixture(t)

	_, err := f.restock.Execute(context.Background(), RestockRequest{ProductID: 42, Quantity: 1})
	assert.ErrorIs(t, err, product.ErrProductNotFound)

	entries, err := f.logs.ListByProductID(context.Background(), 42)
	require.NoError(t, err)
	assert.Empty(t, entries, "不存在的商品不写日志")
}

func TestRestock_LogFailureRollsBack(t *testing.T) {
	f := newFixture(t)
	created, err := f.create.Execute(context.Background(), CreateProductRequest{Name: "A", Price: 1, Quantity: 3})
	require.NoError(t, err)

	uc := NewRestockUseCase(f.products, failingLogRepo{}, f.tx, f.pub)
	_, err = uc.Execute(context.Background(), RestockRequest{ProductID: created.ID, Quantity: 5})
	assert.ErrorIs(t, err, product.ErrLogFailed)
	assert.Equal(t, 3, f.stock(t, created.ID))
}

func TestSell_Validation(t *testing.T) {
	f := newFixture(t)

	_, err := f.sell.Execute(context.Background(), SellRequest{ProductID: 1, Quantity: 0})
	assert.ErrorIs(t, err, product.ErrInvalidQuantity)

	_, err = f.sell.Execute(context.Background(), SellRequest{ProductID: 99, Quantity: 1})
	assert.ErrorIs(t, err, product.ErrProductNotFound)
	assert.Equal(t, apperrors.KindNotFound, apperrors.KindOf(err))
}

func TestSell_InsufficientStockWritesNothing(t *testing.T) {
	f := newFixture(t)
	created, err := f.create.Execute(context.Background(), CreateProductRequest{Name: "A", Price: 2, Quantity: 1})
	require.NoError(t, err)

	_, err = f.sell.Execute(context.Background(), SellRequest{ProductID: created.ID, Quantity: 2})
	assert.ErrorIs(t, err, product.ErrInsufficientStock)

	day, err := sale.ParseDay(time.Now().UTC().Format("2006-01-02"))
	require.NoError(t, err)
	sales, err := f.sales.ListByPeriod(context.Background(), day)
	require.NoError(t, err)
	assert.Empty(t, sales)
}

func TestSell_PriceSnapshot(t *testing.T) {
	f := newFixture(t)
	created, err := f.create.Execute(context.Background(), CreateProductRequest{Name: "A", Price: 2.5, Quantity: 10})
	require.NoError(t, err)

	resp, err := f.sell.Execute(context.Background(), SellRequest{ProductID: created.ID, Quantity: 4})
	require.NoError(t, err)
	assert.Equal(t, 10.0, resp.TotalCharged)
	assert.NotZero(t, resp.SaleID)

	day, err := sale.ParseDay(time.Now().UTC().Format("2006-01-02"))
	require.NoError(t, err)
	sales, err := f.sales.ListByPeriod(context.Background(), day)
	require.NoError(t, err)
	require.Len(t, sales, 1)
	assert.Equal(t, 2.5, sales[0].Price)
	assert.Equal(t, 10.0, sales[0].Total)
}

func TestSell_ConcurrentNeverNegative(t *testing.T) {
	f := newFixture(t)
	created, err := f.create.Execute(context.Background(), CreateProductRequest{Name: "A", Price: 1, Quantity: 10})
	require.NoError(t, err)

	var wg sync.WaitGroup
	var mu sync.Mutex
	okCount, insufficient := 0, 0
	for i := 0; i < 15; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := f.sell.Execute(context.Background(), SellRequest{ProductID: created.ID, Quantity: 1})
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				okCount++
			case errors.Is(err, product.ErrInsufficientStock):
				insufficient++
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 10, okCount)
	assert.Equal(t, 5, insufficient)
	assert.Equal(t, 0, f.stock(t, created.ID))
}

func TestPublishFailureDoesNotFailSale(t *testing.T) {
	f := newFixture(t)
	f.pub.err = errors.New("broker down")

	created, err := f.create.Execute(context.Background(), CreateProductRequest{Name: "A", Price: 1, Quantity: 2})
	require.NoError(t, err)

	resp, err := f.sell.Execute(context.Background(), SellRequest{ProductID: created.ID, Quantity: 1})
	require.NoError(t, err)
	assert.Equal(t, 1, resp.RemainingQuantity)
}

func TestListProducts_Traced(t *testing.T) {
	f := newFixture(t)

	exporter := tracetest.NewInMemoryExporter()
	prev := otel.GetTracerProvider()
	otel.SetTracerProvider(sdktrace.NewTracerProvider(sdktrace.WithSyncer(exporter)))
	t.Cleanup(func() { otel.SetTracerProvider(prev) })

	products, err := f.list.Execute(context.Background())
	require.NoError(t, err)
	assert.Empty(t, products)

	spans := exporter.GetSpans()
	require.Len(t, spans, 1)
	assert.Equal(t, "ListProducts", spans[0].Name)
	assert.Equal(t, "inventory", spans[0].InstrumentationLibrary.Name)
}
