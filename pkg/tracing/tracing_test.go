package tracing

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

func setup(t *testing.T) *tracetest.InMemoryExporter {
	t.Helper()

	exporter := tracetest.NewInMemoryExporter()
	shutdown, err := InitWithExporter(Config{ServiceName: "tienda-test", SampleRatio: 1}, exporter)
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = shutdown(context.Background())
	})
	return exporter
}

func TestInitTracer_LazyConnection(t *testing.T) {
	// Collector不存在也能初始化成功
	shutdown, err := InitTracer(Config{ServiceName: "tienda-test", Endpoint: "127.0.0.1:1", SampleRatio: 1})
	require.NoError(t, err)
	require.NotNil(t, shutdown)
	_ = shutdown(context.Background())
}

func TestStartSpan_ParentChild(t *testing.T) {
	setup(t)

	ctx, parent := StartSpan(context.Background(), "test", "Parent")
	_, child := StartSpan(ctx, "test", "Child")

	assert.True(t, parent.SpanContext().IsValid())
	assert.Equal(t, parent.SpanContext().TraceID(), child.SpanContext().TraceID())
	assert.NotEqual(t, parent.SpanContext().SpanID(), child.SpanContext().SpanID())

	child.End()
	parent.End()
}

func TestExtractIDs(t *testing.T) {
	assert.Empty(t, ExtractTraceID(context.Background()))
	assert.Empty(t, ExtractSpanID(context.Background()))

	setup(t)
	ctx, span := StartSpan(context.Background(), "test", "Op")
	defer span.End()

	assert.Equal(t, span.SpanContext().TraceID().String(), ExtractTraceID(ctx))
	assert.Equal(t, span.SpanContext().SpanID().String(), ExtractSpanID(ctx))
	assert.Len(t, ExtractTraceID(ctx), 32)
}

func TestRecordError(t *testing.T) {
	setup(t)

	_, span := StartSpan(context.Background(), "test", "Failing")
	RecordError(span, nil)
	RecordError(span, errors.New("insufficient stock"))
	span.End()

	ro, ok := span.(sdktrace.ReadOnlySpan)
	require.True(t, ok)
	assert.Equal(t, codes.Error, ro.Status().Code)
	assert.Equal(t, "insufficient stock", ro.Status().Description)
	require.Len(t, ro.Events(), 1)
	assert.Equal(t, "exception", ro.Events()[0].Name)
}
