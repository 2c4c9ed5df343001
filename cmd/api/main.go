package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/xiebiao/tienda/internal/infrastructure/config"
	"github.com/xiebiao/tienda/pkg/logger"
	"github.com/xiebiao/tienda/pkg/tracing"
)

// @title           Tienda API
// @version         1.0
// @description     小商店库存与收银后端:商品、补货、销售、销售额与订单报表
// @host            localhost:4000
// @BasePath        /

// main 主程序入口
// 启动顺序:配置 → 日志 → 追踪 → Wire组装(数据库、仓储、用例、路由) → HTTP服务
func main() {
	// 1. 加载配置
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("加载配置失败: %v", err)
	}

	// 2. 初始化日志
	zlog, err := logger.New(logger.Config{Level: cfg.Log.Level, Format: cfg.Log.Format})
	if err != nil {
		log.Fatalf("初始化日志失败: %v", err)
	}
	defer func() { _ = zlog.Sync() }()

	zlog.Info("配置加载成功",
		zap.Int("port", cfg.Server.Port),
		zap.String("mode", cfg.Server.Mode),
		zap.String("db_driver", cfg.Database.Driver),
		zap.Bool("redis", cfg.Redis.Enabled),
		zap.Bool("mq", cfg.MQ.Enabled),
		zap.Bool("tracing", cfg.Tracing.Enabled),
	)

	// 3. 初始化追踪(可选)
	if cfg.Tracing.Enabled {
		shutdown, err := tracing.InitTracer(tracing.Config{
			ServiceName: cfg.Tracing.ServiceName,
			Endpoint:    cfg.Tracing.Endpoint,
			SampleRatio: cfg.Tracing.SampleRatio,
		})
		if err != nil {
			zlog.Warn("初始化追踪失败,继续运行", zap.Error(err))
		} else {
			defer func() {
				if err := shutdown(context.Background()); err != nil {
					zlog.Warn("关闭追踪失败", zap.Error(err))
				}
			}()
		}
	}

	// 4. 依赖注入(wire_gen.go)
	srv, cleanup, err := InitializeApp(cfg)
	if err != nil {
		zlog.Fatal("初始化应用失败", zap.Error(err))
	}
	defer cleanup()

	// 5. 启动服务,收到SIGINT/SIGTERM后优雅关闭
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		zlog.Info("服务启动成功",
			zap.String("addr", "http://localhost"+cfg.Server.Addr()),
			zap.String("health", "/ping"),
			zap.String("metrics", "/metrics"),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			zlog.Error("服务异常退出", zap.Error(err))
			return
		}
	case <-ctx.Done():
		zlog.Info("收到退出信号,开始优雅关闭")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		zlog.Error("优雅关闭超时", zap.Error(err))
		return
	}
	zlog.Info("服务已停止")
}
