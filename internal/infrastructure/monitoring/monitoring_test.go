package monitoring

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/alchemorsel/catalog/internal/domain/chart"
	"github.com/alchemorsel/catalog/internal/ports/outbound"
	"github.com/alchemorsel/catalog/test/testutils"
)

func TestInstrumentRenderer(t *testing.T) {
	reg := prometheus.NewRegistry()
	metrics := NewChartMetrics(reg)
	next := testutils.NewMockChartRenderer()
	renderer := InstrumentRenderer(next, metrics)

	pie := outbound.ChartSpec{Kind: chart.KindTimeDistribution}
	bar := outbound.ChartSpec{Kind: chart.KindDifficultyDistribution}
	next.On("Render", mock.Anything, pie).Return([]byte("png-bytes"), nil).Once()
	next.On("Render", mock.Anything, bar).Return(nil, errors.New("font missing")).Once()

	image, err := renderer.Render(context.Background(), pie)
	require.NoError(t, err)
	assert.Equal(t, []byte("png-bytes"), image)

	_, err = renderer.Render(context.Background(), bar)
	assert.EqualError(t, err, "font missing")

	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.rendersTotal.WithLabelValues("time-distribution", "ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.rendersTotal.WithLabelValues("difficulty-distribution", "error")))
	assert.Equal(t, 2, testutil.CollectAndCount(metrics.renderDuration))
	next.AssertExpectations(t)
}

func TestTracingProvider_Disabled(t *testing.T) {
	tp, err := NewTracingProvider(context.Background(), TracingConfig{ServiceName: "catalog"}, zap.NewNop())
	require.NoError(t, err)

	assert.False(t, tp.Enabled())
	_, span := tp.TracerProvider().Tracer("test").Start(context.Background(), "noop")
	assert.False(t, span.SpanContext().IsValid())
	span.End()
	assert.NoError(t, tp.Shutdown(context.Background()))
}

func TestTracingProvider_Enabled(t *testing.T) {
	tp, err := NewTracingProvider(context.Background(), TracingConfig{
		ServiceName:  "catalog",
		Enabled:      true,
		OTLPEndpoint: "127.0.0.1:4318",
		Insecure:     true,
		SamplingRate: 1,
	}, zap.NewNop())
	require.NoError(t, err)

	assert.True(t, tp.Enabled())
	ctx, span := tp.TracerProvider().Tracer("test").Start(context.Background(), "sampled")
	assert.True(t, span.SpanContext().IsSampled())
	assert.Equal(t, span.SpanContext().TraceID().String(), TraceIDFromContext(ctx))
	span.End()

	assert.Empty(t, TraceIDFromContext(trace.ContextWithSpanContext(context.Background(), trace.SpanContext{})))

	// nothing listens on the endpoint, so only the flush attempt is bounded here
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()
	_ = tp.Shutdown(shutdownCtx)
}
