// Package chart orchestrates bucketing and rendering of the summary charts
// shown beside search results
package chart

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/alchemorsel/catalog/internal/domain/chart"
	"github.com/alchemorsel/catalog/internal/domain/recipe"
	"github.com/alchemorsel/catalog/internal/ports/outbound"
)

// Options tunes the summarizer
type Options struct {
	// IsolateFailures keeps rendering the remaining charts when one fails.
	// When false the first failure aborts Summarize.
	IsolateFailures bool
}

// Summarizer computes and renders every chart kind for a result set
type Summarizer struct {
	renderer outbound.ChartRenderer
	opts     Options
	tracer   trace.Tracer
	logger   *zap.Logger
}

// NewSummarizer creates a summarizer backed by renderer
func NewSummarizer(renderer outbound.ChartRenderer, opts Options, logger *zap.Logger) *Summarizer {
	return &Summarizer{
		renderer: renderer,
		opts:     opts,
		tracer:   otel.Tracer("github.com/alchemorsel/catalog/internal/application/chart"),
		logger:   logger.Named("chart-summarizer"),
	}
}

// Summarize buckets recipes once per chart kind and renders each one.
// No renders happen for an empty collection.
func (s *Summarizer) Summarize(ctx context.Context, recipes []*recipe.Recipe) (map[chart.Kind]chart.Summary, error) {
	summaries := make(map[chart.Kind]chart.Summary, len(chart.Kinds()))
	if len(recipes) == 0 {
		return summaries, nil
	}

	ctx, span := s.tracer.Start(ctx, "Summarizer.Summarize",
		trace.WithAttributes(attribute.Int("recipes", len(recipes))))
	defer span.End()

	for _, kind := range chart.Kinds() {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		summary, err := s.summarize(ctx, kind, recipes)
		if err != nil {
			if !s.opts.IsolateFailures {
				return nil, fmt.Errorf("render %s chart: %w", kind, err)
			}
			s.logger.Warn("Chart render failed",
				zap.String("chart", string(kind)),
				zap.Error(err),
			)
			summary.Err = err
		}
		summaries[kind] = summary
	}

	return summaries, nil
}

// summarize buckets and renders one kind. Bucketing failures are treated
// like render failures.
func (s *Summarizer) summarize(ctx context.Context, kind chart.Kind, recipes []*recipe.Recipe) (chart.Summary, error) {
	summary := chart.Summary{Kind: kind}

	series, err := chart.Bucket(kind, recipes)
	if err != nil {
		return summary, err
	}
	summary.Series = series

	image, err := s.render(ctx, kind, series)
	if err != nil {
		return summary, err
	}
	summary.Image = image
	return summary, nil
}

func (s *Summarizer) render(ctx context.Context, kind chart.Kind, series chart.Series) ([]byte, error) {
	style := chart.StyleFor(kind)
	return s.renderer.Render(ctx, outbound.ChartSpec{
		Kind:   kind,
		Title:  style.Title,
		Labels: series.Labels,
		Values: series.Values,
		Style:  style,
	})
}
