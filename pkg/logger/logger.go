// Package logger 基于zap的结构化日志
//
// 教学要点：
// 1. 开发环境使用console格式（彩色、易读），生产环境使用json格式（便于ELK/Loki检索）
// 2. 每个请求携带独立的logger（附带request_id、trace_id），通过context传递
// 3. 未初始化时返回zap.NewNop()，保证测试和工具代码不会panic
package logger

import (
	"context"
	"strings"
	"sync"

	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config 日志配置
type Config struct {
	Level  string // debug | info | warn | error
	Format string // console | json
}

type contextKey struct{}

var (
	mu     sync.RWMutex
	global = zap.NewNop()
)

// New 创建logger并替换全局logger
func New(cfg Config) (*zap.Logger, error) {
	level, err := zapcore.ParseLevel(strings.ToLower(cfg.Level))
	if err != nil {
		level = zapcore.InfoLevel
	}

	var zapCfg zap.Config
	if cfg.Format == "json" {
		zapCfg = zap.NewProductionConfig()
		zapCfg.EncoderConfig.TimeKey = "timestamp"
		zapCfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	} else {
		zapCfg = zap.NewDevelopmentConfig()
		zapCfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}
	zapCfg.Level = zap.NewAtomicLevelAt(level)

	log, err := zapCfg.Build(zap.Fields(zap.String("service", "tienda")))
	if err != nil {
		return nil, err
	}

	SetGlobal(log)
	return log, nil
}

// SetGlobal 替换全局logger
func SetGlobal(log *zap.Logger) {
	mu.Lock()
	defer mu.Unlock()
	global = log
	zap.ReplaceGlobals(log)
}

// L 返回全局logger
func L() *zap.Logger {
	mu.RLock()
	defer mu.RUnlock()
	return global
}

// WithContext 将logger放入context
func WithContext(ctx context.Context, log *zap.Logger) context.Context {
	return context.WithValue(ctx, contextKey{}, log)
}

// FromContext 取出请求级logger，自动附加trace_id/span_id
func FromContext(ctx context.Context) *zap.Logger {
	log, ok := ctx.Value(contextKey{}).(*zap.Logger)
	if !ok {
		log = L()
	}

	spanCtx := trace.SpanFromContext(ctx).SpanContext()
	if spanCtx.IsValid() {
		log = log.With(
			zap.String("trace_id", spanCtx.TraceID().String()),
			zap.String("span_id", spanCtx.SpanID().String()),
		)
	}
	return log
}
