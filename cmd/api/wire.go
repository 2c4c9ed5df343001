//go:build wireinject
// +build wireinject

// Wire依赖注入配置文件
//
// Wire工作流程：
// Step 1: 编写wire.go（本文件），定义Providers和Injector
// Step 2: 运行 `wire gen ./cmd/api`
// Step 3: Wire生成wire_gen.go，包含完整的依赖创建代码
// Step 4: main.go调用wire_gen.go中的InitializeApp()

package main

import (
	"net/http"

	"github.com/google/wire"

	"github.com/xiebiao/tienda/internal/application/inventory"
	"github.com/xiebiao/tienda/internal/application/report"
	"github.com/xiebiao/tienda/internal/infrastructure/config"
	"github.com/xiebiao/tienda/internal/infrastructure/messaging"
	"github.com/xiebiao/tienda/internal/infrastructure/persistence/store"
	"github.com/xiebiao/tienda/internal/interface/http/handler"
	"github.com/xiebiao/tienda/internal/interface/http/router"
)

// infrastructureSet 基础设施层依赖
// 包含：数据库连接、事件发布、幂等存储
var infrastructureSet = wire.NewSet(
	provideDB,
	store.NewTxManager,
	messaging.NewEventPublisher,
	provideIdempotencyStore,
)

// repositorySet 仓储层依赖
var repositorySet = wire.NewSet(
	store.NewProductRepository,
	store.NewStockLogRepository,
	store.NewSaleRepository,
)

// applicationSet 应用层依赖
var applicationSet = wire.NewSet(
	inventory.NewCreateProductUseCase,
	inventory.NewRestockUseCase,
	inventory.NewSellUseCase,
	inventory.NewListProductsUseCase,
	report.NewRevenueUseCase,
	report.NewOrdersUseCase,
	report.NewStockHistoryUseCase,
)

// handlerSet HTTP处理器依赖
var handlerSet = wire.NewSet(
	handler.NewProductHandler,
	handler.NewReportHandler,
	router.New,
	provideHTTPServer,
)

// InitializeApp 初始化整个应用
// 配置和日志由main先初始化(其它组件创建时就需要写日志)
// 返回的cleanup按创建的逆序释放资源
func InitializeApp(cfg *config.Config) (*http.Server, func(), error) {
	wire.Build(
		infrastructureSet,
		repositorySet,
		applicationSet,
		handlerSet,
	)
	return nil, nil, nil
}
