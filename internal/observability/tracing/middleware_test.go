package tracing

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/propagation"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

// recordSpans routes spans into an in-memory exporter for the duration of the test.
func recordSpans(t *testing.T) *tracetest.InMemoryExporter {
	t.Helper()
	exporter := tracetest.NewInMemoryExporter()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSyncer(exporter))
	prevTracer := tracer
	otel.SetTracerProvider(tp)
	otel.SetTextMapPropagator(propagation.TraceContext{})
	tracer = tp.Tracer(instrumentationName)
	t.Cleanup(func() {
		_ = tp.Shutdown(context.Background())
		tracer = prevTracer
		otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator())
	})
	return exporter
}

func attrs(kv []attribute.KeyValue) map[attribute.Key]attribute.Value {
	m := make(map[attribute.Key]attribute.Value, len(kv))
	for _, a := range kv {
		m[a.Key] = a.Value
	}
	return m
}

func TestMiddleware_CreatesSpanWithRoute(t *testing.T) {
	exporter := recordSpans(t)

	h := Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodDelete, "/api/recipes/42/shopping_cart/", nil))

	spans := exporter.GetSpans()
	require.Len(t, spans, 1)
	assert.Equal(t, "DELETE /api/recipes/:id/shopping_cart/", spans[0].Name)

	got := attrs(spans[0].Attributes)
	assert.Equal(t, "DELETE", got["http.method"].AsString())
	assert.Equal(t, "/api/recipes/:id/shopping_cart/", got["http.route"].AsString())
	assert.Equal(t, "/api/recipes/42/shopping_cart/", got["http.path"].AsString())
	assert.EqualValues(t, http.StatusNoContent, got["http.status_code"].AsInt64())
	assert.Equal(t, codes.Unset, spans[0].Status.Code)
}

func TestMiddleware_TraceIDHeader(t *testing.T) {
	recordSpans(t)

	var ctxTraceID string
	h := Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctxTraceID = TraceID(r.Context())
	}))
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/recipes/download_shopping_cart/", nil))

	header := rr.Header().Get("X-Trace-Id")
	assert.Len(t, header, 32)
	assert.Equal(t, header, ctxTraceID)
}

func TestMiddleware_ContinuesIncomingTrace(t *testing.T) {
	exporter := recordSpans(t)

	const parent = "4bf92f3577b34da6a3ce929d0e0e4736"
	req := httptest.NewRequest(http.MethodGet, "/api/tags/", nil)
	req.Header.Set("traceparent", "00-"+parent+"-00f067aa0ba902b7-01")

	rr := httptest.NewRecorder()
	Middleware(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {})).ServeHTTP(rr, req)

	assert.Equal(t, parent, rr.Header().Get("X-Trace-Id"))
	spans := exporter.GetSpans()
	require.Len(t, spans, 1)
	assert.Equal(t, parent, spans[0].SpanContext.TraceID().String())
	assert.True(t, spans[0].Parent.IsRemote())
}

func TestMiddleware_5xxMarksError(t *testing.T) {
	exporter := recordSpans(t)

	h := Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/recipes/download_shopping_cart/", nil))

	spans := exporter.GetSpans()
	require.Len(t, spans, 1)
	assert.Equal(t, codes.Error, spans[0].Status.Code)
}

func TestMiddleware_4xxIsNotError(t *testing.T) {
	exporter := recordSpans(t)

	h := Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/users/me/", nil))

	spans := exporter.GetSpans()
	require.Len(t, spans, 1)
	assert.Equal(t, codes.Unset, spans[0].Status.Code)
}

func TestInit_SetsProviderAndPropagator(t *testing.T) {
	prev := tracer
	shutdown := Init("foodgram-test", "v0.0.0", 1.0)
	t.Cleanup(func() {
		_ = shutdown(context.Background())
		tracer = prev
	})

	ctx, span := GetTracer().Start(context.Background(), "op")
	defer span.End()
	assert.Len(t, TraceID(ctx), 32)
	assert.Contains(t, otel.GetTextMapPropagator().Fields(), "traceparent")
}

func TestTraceID_Empty(t *testing.T) {
	assert.Equal(t, "", TraceID(context.Background()))
}
