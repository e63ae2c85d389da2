// Package gochart renders summary charts to PNG with go-chart
package gochart

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	gochart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/alchemorsel/catalog/internal/domain/chart"
	"github.com/alchemorsel/catalog/internal/ports/outbound"
)

const (
	defaultWidth  = 640
	defaultHeight = 400
)

// Renderer draws each chart into its own buffer. It holds no drawing state
// between calls and is safe for concurrent use.
type Renderer struct {
	width  int
	height int
}

var _ outbound.ChartRenderer = (*Renderer)(nil)

// New creates a renderer producing images of the given size
func New(width, height int) *Renderer {
	if width <= 0 {
		width = defaultWidth
	}
	if height <= 0 {
		height = defaultHeight
	}
	return &Renderer{width: width, height: height}
}

// Render draws spec as a PNG
func (r *Renderer) Render(ctx context.Context, spec outbound.ChartSpec) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if len(spec.Labels) != len(spec.Values) {
		return nil, fmt.Errorf("chart %s: %d labels for %d values", spec.Kind, len(spec.Labels), len(spec.Values))
	}
	if len(spec.Values) == 0 {
		return nil, fmt.Errorf("chart %s: no data", spec.Kind)
	}

	var buf bytes.Buffer
	var err error
	switch spec.Style.Shape {
	case chart.ShapePie:
		err = r.pie(spec).Render(gochart.PNG, &buf)
	case chart.ShapeBar:
		err = r.bar(spec).Render(gochart.PNG, &buf)
	case chart.ShapeLine:
		err = r.line(spec).Render(gochart.PNG, &buf)
	default:
		return nil, fmt.Errorf("chart %s: unsupported shape %q", spec.Kind, spec.Style.Shape)
	}
	if err != nil {
		return nil, fmt.Errorf("chart %s: %w", spec.Kind, err)
	}
	return buf.Bytes(), nil
}

func (r *Renderer) pie(spec outbound.ChartSpec) gochart.PieChart {
	values := make([]gochart.Value, len(spec.Values))
	for i, v := range spec.Values {
		values[i] = gochart.Value{
			Label: fmt.Sprintf("%s (%d)", spec.Labels[i], v),
			Value: float64(v),
			Style: gochart.Style{FillColor: colorAt(spec.Style.Colors, i)},
		}
	}
	return gochart.PieChart{
		Title:  spec.Title,
		Width:  r.width,
		Height: r.height,
		Values: values,
	}
}

func (r *Renderer) bar(spec outbound.ChartSpec) gochart.BarChart {
	bars := make([]gochart.Value, len(spec.Values))
	for i, v := range spec.Values {
		bars[i] = gochart.Value{
			Label: spec.Labels[i],
			Value: float64(v),
			Style: gochart.Style{
				FillColor:   colorAt(spec.Style.Colors, i),
				StrokeColor: colorAt(spec.Style.Colors, i),
			},
		}
	}
	return gochart.BarChart{
		Title:    spec.Title,
		Width:    r.width,
		Height:   r.height,
		BarWidth: r.width / (2*len(bars) + 1),
		Background: gochart.Style{
			Padding: gochart.Box{Top: 40},
		},
		YAxis: gochart.YAxis{
			Name:  spec.Style.YLabel,
			Range: &gochart.ContinuousRange{Min: 0, Max: float64(maxOf(spec.Values) + 1)},
		},
		Bars: bars,
	}
}

// line plots one point per bucket at the bucket's lower bound
func (r *Renderer) line(spec outbound.ChartSpec) gochart.Chart {
	xs := make([]float64, len(spec.Values))
	ys := make([]float64, len(spec.Values))
	ticks := make([]gochart.Tick, len(spec.Values))
	for i, v := range spec.Values {
		xs[i] = float64(i * chart.HistogramBucketWidth)
		ys[i] = float64(v)
		ticks[i] = gochart.Tick{Value: xs[i], Label: spec.Labels[i]}
	}

	return gochart.Chart{
		Title:  spec.Title,
		Width:  r.width,
		Height: r.height,
		Background: gochart.Style{
			Padding: gochart.Box{Top: 40, Left: 20, Right: 20},
		},
		XAxis: gochart.XAxis{
			Name:  spec.Style.XLabel,
			Range: &gochart.ContinuousRange{Min: 0, Max: float64(len(spec.Values) * chart.HistogramBucketWidth)},
			Ticks: ticks,
		},
		YAxis: gochart.YAxis{
			Name:  spec.Style.YLabel,
			Range: &gochart.ContinuousRange{Min: 0, Max: float64(maxOf(spec.Values) + 1)},
		},
		Series: []gochart.Series{
			gochart.ContinuousSeries{
				Name:    spec.Title,
				XValues: xs,
				YValues: ys,
				Style: gochart.Style{
					StrokeColor: colorAt(spec.Style.Colors, 0),
					StrokeWidth: 2,
					DotColor:    colorAt(spec.Style.Colors, 0),
					DotWidth:    3,
				},
			},
		},
	}
}

// colorAt cycles through the style palette, falling back to go-chart's defaults
func colorAt(colors []string, i int) drawing.Color {
	if len(colors) == 0 {
		return gochart.GetDefaultColor(i)
	}
	return drawing.ColorFromHex(strings.TrimPrefix(colors[i%len(colors)], "#"))
}

func maxOf(values []int) int {
	m := 0
	for _, v := range values {
		if v > m {
			m = v
		}
	}
	return m
}
