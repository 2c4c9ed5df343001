package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/xiebiao/tienda/internal/infrastructure/config"
	"github.com/xiebiao/tienda/internal/infrastructure/persistence/redis"
	apperrors "github.com/xiebiao/tienda/pkg/errors"
	"github.com/xiebiao/tienda/pkg/logger"
	"github.com/xiebiao/tienda/pkg/metrics"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// memoryStore 内存版幂等存储
type memoryStore struct {
	mu        sync.Mutex
	pending   map[string]bool
	done      map[string]*redis.StoredResponse
	released  []string
	beginErr  error
	completes int
}

func newMemoryStore() *memoryStore {
	return &memoryStore{pending: map[string]bool{}, done: map[string]*redis.StoredResponse{}}
}

func (m *memoryStore) Begin(_ context.Context, key string) (*redis.StoredResponse, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.beginErr != nil {
		return nil, m.beginErr
	}
	if resp, ok := m.done[key]; ok {
		return resp, nil
	}
	if m.pending[key] {
		return nil, apperrors.ErrRequestInProgress
	}
	m.pending[key] = true
	return nil, nil
}

// Complete和Release像真实的Redis客户端一样，ctx取消后直接失败
func (m *memoryStore) Complete(ctx context.Context, key string, status int, body []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.pending, key)
	m.done[key] = &redis.StoredResponse{Status: status, Body: append([]byte(nil), body...)}
	m.completes++
	return nil
}

func (m *memoryStore) Release(ctx context.Context, key string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.pending, key)
	m.released = append(m.released, key)
	return nil
}

func serve(r http.Handler, method, path string, headers map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(`{}`))
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestIdempotency_ClientDisconnectStillSettlesKey(t *testing.T) {
	store := newMemoryStore()
	calls := 0

	// 处理过程中客户端断开：业务已经执行，请求ctx随后被取消
	var cancel context.CancelFunc
	r := gin.New()
	r.POST("/sell", Idempotency(store), func(c *gin.Context) {
		calls++
		cancel()
		c.JSON(http.StatusOK, gin.H{"call": calls})
	})
	r.POST("/fail", Idempotency(store), func(c *gin.Context) {
		cancel()
		c.JSON(http.StatusBadRequest, gin.H{"error": "cantidad"})
	})

	send := func(path string) *httptest.ResponseRecorder {
		var ctx context.Context
		ctx, cancel = context.WithCancel(context.Background())
		defer cancel()
		req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(`{}`)).WithContext(ctx)
		req.Header.Set(IdempotencyKeyHeader, "abc")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		return w
	}

	send("/sell")
	retry := send("/sell")
	assert.Equal(t, 1, calls)
	assert.Equal(t, http.StatusOK, retry.Code)
	assert.Equal(t, "true", retry.Header().Get(ReplayedHeader))
	assert.Equal(t, 1, store.completes)

	send("/fail")
	assert.Equal(t, []string{"POST:/fail:abc"}, store.released)
	retry = send("/fail")
	assert.Equal(t, http.StatusBadRequest, retry.Code)
	assert.Empty(t, retry.Header().Get(ReplayedHeader))
}

func TestIdempotency_ReplaysSuccessfulResponse(t *testing.T) {
	store := newMemoryStore()
	calls := 0

	r := gin.New()
	r.POST("/sell", Idempotency(store), func(c *gin.Context) {
		calls++
		c.JSON(http.StatusOK, gin.H{"call": calls})
	})

	before := testutil.ToFloat64(metrics.IdempotentReplaysTotal)
	h := map[string]string{IdempotencyKeyHeader: "abc"}

	first := serve(r, http.MethodPost, "/sell", h)
	second := serve(r, http.MethodPost, "/sell", h)

	assert.Equal(t, 1, calls)
	assert.Equal(t, http.StatusOK, second.Code)
	assert.JSONEq(t, first.Body.String(), second.Body.String())
	assert.Equal(t, "true", second.Header().Get(ReplayedHeader))
	assert.Equal(t, 1, store.completes)
	assert.Equal(t, before+1, testutil.ToFloat64(metrics.IdempotentReplaysTotal))
}

func TestIdempotency_WithoutKeyAlwaysRuns(t *testing.T) {
	store := newMemoryStore()
	calls := 0

	r := gin.New()
	r.POST("/sell", Idempotency(store), func(c *gin.Context) {
		calls++
		c.Status(http.StatusOK)
	})

	serve(r, http.MethodPost, "/sell", nil)
	serve(r, http.MethodPost, "/sell", nil)
	assert.Equal(t, 2, calls)
	assert.Zero(t, store.completes)
}

func TestIdempotency_NilStorePassesThrough(t *testing.T) {
	r := gin.New()
	r.POST("/sell", Idempotency(nil), func(c *gin.Context) { c.Status(http.StatusOK) })

	w := serve(r, http.MethodPost, "/sell", map[string]string{IdempotencyKeyHeader: "k"})
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestIdempotency_FailureReleasesKey(t *testing.T) {
	store := newMemoryStore()
	r := gin.New()
	r.POST("/sell", Idempotency(store), func(c *gin.Context) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "no"})
	})

	w := serve(r, http.MethodPost, "/sell", map[string]string{IdempotencyKeyHeader: "k"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	require.Len(t, store.released, 1)
	assert.Contains(t, store.released[0], "k")
	assert.Empty(t, store.done)
}

func TestIdempotency_InProgressConflict(t *testing.T) {
	store := newMemoryStore()
	r := gin.New()
	r.POST("/sell", Idempotency(store), func(c *gin.Context) { c.Status(http.StatusOK) })

	// 模拟第一个请求还在处理中
	_, err := store.Begin(context.Background(), "POST:/sell:k")
	require.NoError(t, err)

	w := serve(r, http.MethodPost, "/sell", map[string]string{IdempotencyKeyHeader: "k"})
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Contains(t, w.Body.String(), `"code":40910`)
}

func TestIdempotency_KeyScopedByPath(t *testing.T) {
	store := newMemoryStore()
	calls := 0
	r := gin.New()
	r.POST("/sell/:id", Idempotency(store), func(c *gin.Context) {
		calls++
		c.Status(http.StatusOK)
	})

	h := map[string]string{IdempotencyKeyHeader: "same"}
	serve(r, http.MethodPost, "/sell/1", h)
	serve(r, http.MethodPost, "/sell/2", h)
	assert.Equal(t, 2, calls)
}

func TestLogger_RequestIDAndContextLogger(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	base := zap.New(core)

	var fromCtx *zap.Logger
	r := gin.New()
	r.Use(Logger(base))
	r.GET("/x/:id", func(c *gin.Context) {
		fromCtx = logger.FromContext(c.Request.Context())
		fromCtx.Info("inside handler")
		c.Status(http.StatusOK)
	})

	w := serve(r, http.MethodGet, "/x/1", map[string]string{RequestIDHeader: "rid-1"})
	assert.Equal(t, "rid-1", w.Header().Get(RequestIDHeader))
	require.NotNil(t, fromCtx)

	entries := logs.All()
	require.Len(t, entries, 2)
	assert.Equal(t, "inside handler", entries[0].Message)
	assert.Equal(t, "rid-1", entries[0].ContextMap()["request_id"])

	access := entries[1].ContextMap()
	assert.Equal(t, "request", entries[1].Message)
	assert.Equal(t, "/x/:id", access["route"])
	assert.EqualValues(t, http.StatusOK, access["status"])
}

func TestLogger_TraceFields(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)

	traceID, _ := trace.TraceIDFromHex("4bf92f3577b34da6a3ce929d0e0e4736")
	spanID, _ := trace.SpanIDFromHex("00f067aa0ba902b7")
	sc := trace.NewSpanContext(trace.SpanContextConfig{TraceID: traceID, SpanID: spanID, TraceFlags: trace.FlagsSampled})

	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Request = c.Request.WithContext(trace.ContextWithSpanContext(c.Request.Context(), sc))
		c.Next()
	})
	r.Use(Logger(zap.New(core)))
	r.GET("/x", func(c *gin.Context) { c.Status(http.StatusOK) })

	serve(r, http.MethodGet, "/x", nil)

	require.Equal(t, 1, logs.Len())
	fields := logs.All()[0].ContextMap()
	assert.Equal(t, "4bf92f3577b34da6a3ce929d0e0e4736", fields["trace_id"])
	assert.Equal(t, "00f067aa0ba902b7", fields["span_id"])
}

func TestLogger_ServerErrorLoggedAsError(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	r := gin.New()
	r.Use(Logger(zap.New(core)))
	r.GET("/boom", func(c *gin.Context) { c.Status(http.StatusInternalServerError) })

	serve(r, http.MethodGet, "/boom", nil)
	require.Equal(t, 1, logs.Len())
	assert.Equal(t, zap.ErrorLevel, logs.All()[0].Level)
}

func TestRecovery(t *testing.T) {
	r := gin.New()
	r.Use(Recovery())
	r.GET("/panic", func(c *gin.Context) { panic("boom") })

	w := serve(r, http.MethodGet, "/panic", nil)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), `"kind":"store"`)
}

func TestCORS(t *testing.T) {
	r := gin.New()
	r.Use(CORS(config.CORSConfig{
		AllowOrigins: []string{"*"},
		AllowMethods: []string{"GET", "PUT"},
		AllowHeaders: []string{"Content-Type"},
	}))
	r.GET("/x", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := serve(r, http.MethodGet, "/x", map[string]string{"Origin": "http://a.example"})
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "GET, PUT", w.Header().Get("Access-Control-Allow-Methods"))
	assert.Empty(t, w.Header().Get("Access-Control-Max-Age"))

	// 非浏览器请求不加CORS头
	w = serve(r, http.MethodGet, "/x", nil)
	assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
}

func TestMetrics_UsesRouteTemplate(t *testing.T) {
	r := gin.New()
	r.Use(Metrics())
	r.GET("/items/:id", func(c *gin.Context) { c.Status(http.StatusOK) })

	labels := []string{http.MethodGet, "/items/:id", "200"}
	before := testutil.ToFloat64(metrics.HTTPRequestsTotal.WithLabelValues(labels...))

	serve(r, http.MethodGet, "/items/1", nil)
	serve(r, http.MethodGet, "/items/2", nil)

	assert.Equal(t, before+2, testutil.ToFloat64(metrics.HTTPRequestsTotal.WithLabelValues(labels...)))
	assert.Zero(t, testutil.ToFloat64(metrics.HTTPRequestsInProgress))
}
