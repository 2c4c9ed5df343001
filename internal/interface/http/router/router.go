package router

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/xiebiao/tienda/docs" // 注册swagger文档
	"github.com/xiebiao/tienda/internal/infrastructure/config"
	"github.com/xiebiao/tienda/internal/interface/http/handler"
	"github.com/xiebiao/tienda/internal/interface/http/middleware"
	"github.com/xiebiao/tienda/pkg/logger"
	"github.com/xiebiao/tienda/pkg/response"
)

// New 创建并配置Gin引擎
//
// 中间件顺序:
// Recovery → Tracing → Logger → Metrics → CORS
// - Tracing在Logger之前,访问日志才能带上trace_id
// - CORS预检请求在最后一层直接返回,但仍会被记录和统计
//
// idempotency为nil时(未启用Redis)幂等中间件直接放行
func New(
	cfg *config.Config,
	productHandler *handler.ProductHandler,
	reportHandler *handler.ReportHandler,
	idempotency middleware.IdempotencyStore,
) *gin.Engine {
	switch cfg.Server.Mode {
	case gin.ReleaseMode:
		gin.SetMode(gin.ReleaseMode)
	case gin.TestMode:
		gin.SetMode(gin.TestMode)
	}

	r := gin.New()
	r.Use(
		middleware.Recovery(),
		middleware.Tracing(cfg.Tracing.ServiceName),
		middleware.Logger(logger.L()),
		middleware.Metrics(),
		middleware.CORS(cfg.CORS),
	)

	// 健康检查
	r.GET("/ping", func(c *gin.Context) {
		response.Success(c, gin.H{
			"message": "pong",
			"status":  "healthy",
		})
	})

	// Prometheus指标
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Swagger文档只在debug模式开放
	// 访问 http://localhost:4000/swagger/index.html
	if cfg.Server.Mode == gin.DebugMode {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	api := r.Group("/api")
	{
		productos := api.Group("/productos")
		{
			productos.POST("", productHandler.CreateProduct)
			productos.GET("", productHandler.ListProducts)
			productos.PUT("/:id", productHandler.Restock)
			productos.POST("/:id/vender", middleware.Idempotency(idempotency), productHandler.Sell)
			productos.GET("/:id/registro", productHandler.StockHistory)
		}

		api.GET("/ganancias", reportHandler.MonthlyRevenue)
		api.GET("/ganancias/dia", reportHandler.DailyRevenue)
		api.GET("/ordenes", reportHandler.MonthlyOrders)
		api.GET("/ordenes/dia", reportHandler.DailyOrders)
	}

	return r
}
