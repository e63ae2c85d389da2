package monitoring

import (
	"context"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/alchemorsel/catalog/internal/ports/outbound"
)

// ChartMetrics counts and times chart renders per kind
type ChartMetrics struct {
	rendersTotal   *prometheus.CounterVec
	renderDuration *prometheus.HistogramVec
	imageBytes     *prometheus.HistogramVec
}

// NewChartMetrics registers the chart metrics with reg
func NewChartMetrics(reg prometheus.Registerer) *ChartMetrics {
	m := &ChartMetrics{
		rendersTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "catalog",
				Name:      "chart_renders_total",
				Help:      "Total number of chart renders by kind and result",
			},
			[]string{"kind", "result"},
		),
		renderDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: "catalog",
				Name:      "chart_render_duration_seconds",
				Help:      "Chart render duration in seconds",
				Buckets:   []float64{.005, .01, .025, .05, .1, .25, .5, 1},
			},
			[]string{"kind"},
		),
		imageBytes: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: "catalog",
				Name:      "chart_image_bytes",
				Help:      "Size of rendered chart images",
				Buckets:   prometheus.ExponentialBuckets(1024, 2, 8),
			},
			[]string{"kind"},
		),
	}
	reg.MustRegister(m.rendersTotal, m.renderDuration, m.imageBytes)
	return m
}

type instrumentedRenderer struct {
	next    outbound.ChartRenderer
	metrics *ChartMetrics
}

// InstrumentRenderer wraps next so every render is recorded in metrics
func InstrumentRenderer(next outbound.ChartRenderer, metrics *ChartMetrics) outbound.ChartRenderer {
	return &instrumentedRenderer{next: next, metrics: metrics}
}

func (r *instrumentedRenderer) Render(ctx context.Context, spec outbound.ChartSpec) ([]byte, error) {
	kind := string(spec.Kind)
	start := time.Now()

	image, err := r.next.Render(ctx, spec)

	r.metrics.renderDuration.WithLabelValues(kind).Observe(time.Since(start).Seconds())
	if err != nil {
		r.metrics.rendersTotal.WithLabelValues(kind, "error").Inc()
		return nil, err
	}
	r.metrics.rendersTotal.WithLabelValues(kind, "ok").Inc()
	r.metrics.imageBytes.WithLabelValues(kind).Observe(float64(len(image)))
	return image, nil
}
