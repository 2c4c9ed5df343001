package middleware

import (
	"bytes"
	"context"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/xiebiao/tienda/internal/infrastructure/persistence/redis"
	"github.com/xiebiao/tienda/pkg/logger"
	"github.com/xiebiao/tienda/pkg/metrics"
	"github.com/xiebiao/tienda/pkg/response"
)

const (
	// IdempotencyKeyHeader 客户端生成的幂等键
	IdempotencyKeyHeader = "Idempotency-Key"

	// ReplayedHeader 重放的响应带上此头
	ReplayedHeader = "Idempotent-Replayed"
)

// IdempotencyStore 幂等键存储（*redis.IdempotencyStore实现了它）
type IdempotencyStore interface {
	Begin(ctx context.Context, key string) (*redis.StoredResponse, error)
	Complete(ctx context.Context, key string, status int, body []byte) error
	Release(ctx context.Context, key string) error
}

// bodyWriter 同时写给客户端和缓冲区
type bodyWriter struct {
	gin.ResponseWriter
	buf bytes.Buffer
}

func (w *bodyWriter) Write(b []byte) (int, error) {
	w.buf.Write(b)
	return w.ResponseWriter.Write(b)
}

// Idempotency 幂等中间件
//
// 教学要点：
// 1. 客户端网络超时后重试下单，可能导致同一笔销售记录两次
// 2. 客户端为每次"逻辑请求"生成Idempotency-Key，重试时复用
// 3. 服务端第一次处理成功后保存响应，之后同一个键直接重放，不再执行业务
// 4. 没有Idempotency-Key的请求照常处理；store为nil时中间件不生效
func Idempotency(store IdempotencyStore) gin.HandlerFunc {
	metrics.InitMetrics()

	return func(c *gin.Context) {
		key := c.GetHeader(IdempotencyKeyHeader)
		if store == nil || key == "" {
			c.Next()
			return
		}

		// 同一个键只在同一个接口、同一个商品上有效
		scoped := c.Request.Method + ":" + c.Request.URL.Path + ":" + key
		ctx := c.Request.Context()

		stored, err := store.Begin(ctx, scoped)
		if err != nil {
			response.Error(c, err)
			c.Abort()
			return
		}
		if stored != nil {
			metrics.IncCounter(metrics.IdempotentReplaysTotal)
			c.Header(ReplayedHeader, "true")
			c.Data(stored.Status, "application/json; charset=utf-8", stored.Body)
			c.Abort()
			return
		}

		w := &bodyWriter{ResponseWriter: c.Writer}
		c.Writer = w
		c.Next()

		// 客户端断开后请求ctx已取消，但业务可能已经提交，收尾必须照常写入
		bg := context.WithoutCancel(ctx)

		// 只缓存成功响应；失败时释放，允许客户端用同一个键重试
		if status := w.Status(); status >= 200 && status < 300 {
			if err := store.Complete(bg, scoped, status, w.buf.Bytes()); err != nil {
				logger.FromContext(ctx).Warn("保存幂等响应失败", zap.String("key", key), zap.Error(err))
			}
			return
		}
		if err := store.Release(bg, scoped); err != nil {
			logger.FromContext(ctx).Warn("释放幂等键失败", zap.String("key", key), zap.Error(err))
		}
	}
}
