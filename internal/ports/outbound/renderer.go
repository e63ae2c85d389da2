package outbound

import (
	"context"

	"github.com/alchemorsel/catalog/internal/domain/chart"
)

// ChartSpec is everything a renderer needs to draw one chart
type ChartSpec struct {
	Kind   chart.Kind
	Title  string
	Labels []string
	Values []int
	Style  chart.Style
}

// ChartRenderer turns a chart spec into encoded PNG bytes. Implementations
// must not share drawing state between calls.
type ChartRenderer interface {
	Render(ctx context.Context, spec ChartSpec) ([]byte, error)
}
