package telemetry

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/propagation"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
	oteltrace "go.opentelemetry.io/otel/trace"
)

func TestNew_DisabledStillPropagates(t *testing.T) {
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator())

	p, err := New(context.Background(), &Config{Enabled: false, ServiceName: "quotebook"})

	require.NoError(t, err)
	assert.False(t, p.Enabled())
	assert.ElementsMatch(t, []string{"traceparent", "tracestate", "baggage"}, otel.GetTextMapPropagator().Fields())
	require.NoError(t, p.Shutdown(context.Background()))
}

func TestSampler(t *testing.T) {
	var low, high oteltrace.TraceID
	for i := 8; i < 16; i++ {
		high[i] = 0xff
	}

	low[0], high[0] = 1, 1

	tests := []struct {
		name     string
		rate     float64
		traceID  oteltrace.TraceID
		expected sdktrace.SamplingDecision
	}{
		{"full rate", 1, high, sdktrace.RecordAndSample},
		{"above one", 2.5, high, sdktrace.RecordAndSample},
		{"zero rate", 0, low, sdktrace.Drop},
		{"negative rate", -1, low, sdktrace.Drop},
		{"ratio keeps low ids", 0.25, low, sdktrace.RecordAndSample},
		{"ratio drops high ids", 0.25, high, sdktrace.Drop},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := sampler(tt.rate).ShouldSample(sdktrace.SamplingParameters{
				ParentContext: context.Background(),
				TraceID:       tt.traceID,
				Name:          "GET /api/v1/quotes",
			})

			assert.Equal(t, tt.expected, res.Decision)
		})
	}
}

func TestSampler_FollowsSampledParent(t *testing.T) {
	parent := oteltrace.NewSpanContext(oteltrace.SpanContextConfig{
		TraceID:    oteltrace.TraceID{1},
		SpanID:     oteltrace.SpanID{1},
		TraceFlags: oteltrace.FlagsSampled,
		Remote:     true,
	})

	res := sampler(0).ShouldSample(sdktrace.SamplingParameters{
		ParentContext: oteltrace.ContextWithRemoteSpanContext(context.Background(), parent),
		TraceID:       parent.TraceID(),
		Name:          "DELETE /api/v1/users/:userId",
	})

	assert.Equal(t, sdktrace.RecordAndSample, res.Decision)
}

func TestMiddleware_TracesRequest(t *testing.T) {
	gin.SetMode(gin.TestMode)

	recorder := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))

	engine := gin.New()
	engine.Use(Middleware("quotebook", otelgin.WithTracerProvider(tp))...)
	engine.GET("/api/v1/quotes", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/quotes", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, w.Header().Get(HeaderTraceID), 32)

	spans := recorder.Ended()
	require.Len(t, spans, 1)
	assert.Equal(t, spans[0].SpanContext().TraceID().String(), w.Header().Get(HeaderTraceID))
}
