package main

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/xiebiao/tienda/internal/infrastructure/config"
	"github.com/xiebiao/tienda/internal/infrastructure/persistence/redis"
	"github.com/xiebiao/tienda/internal/infrastructure/persistence/store"
	"github.com/xiebiao/tienda/internal/interface/http/middleware"
	"github.com/xiebiao/tienda/pkg/logger"
)

// ========================================
// Custom Providers (自定义Provider)
// ========================================
// 有些依赖不能直接用构造函数表达:
// - 需要cleanup(数据库、Redis连接)
// - 依赖开关配置(redis.enabled)

// provideDB 创建数据库连接,cleanup时关闭
func provideDB(cfg *config.Config) (*gorm.DB, func(), error) {
	db, err := store.NewDB(cfg)
	if err != nil {
		return nil, nil, err
	}
	return db, func() {
		if err := store.Close(db); err != nil {
			logger.L().Warn("关闭数据库失败", zap.Error(err))
		}
	}, nil
}

// provideIdempotencyStore 幂等存储
// redis.enabled=false或Redis不可用时返回nil,幂等中间件直接放行
//
// 注意:必须返回无类型的nil接口,
// 返回(*redis.IdempotencyStore)(nil)会得到一个"非nil"的接口值
func provideIdempotencyStore(cfg *config.Config) (middleware.IdempotencyStore, func()) {
	if !cfg.Redis.Enabled {
		return nil, func() {}
	}

	client, err := redis.NewClient(cfg)
	if err != nil {
		logger.L().Warn("Redis不可用,幂等下单已关闭", zap.Error(err))
		return nil, func() {}
	}

	return redis.NewIdempotencyStore(client, cfg.Redis.IdempotencyTTL), func() {
		_ = client.Close()
	}
}

// provideHTTPServer 创建HTTP服务器(读写超时来自配置)
func provideHTTPServer(cfg *config.Config, engine *gin.Engine) *http.Server {
	return &http.Server{
		Addr:         cfg.Server.Addr(),
		Handler:      engine,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}
}
