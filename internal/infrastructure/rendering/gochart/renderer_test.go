package gochart

import (
	"bytes"
	"context"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alchemorsel/catalog/internal/domain/chart"
	"github.com/alchemorsel/catalog/internal/ports/outbound"
)

func specFor(kind chart.Kind, labels []string, values []int) outbound.ChartSpec {
	style := chart.StyleFor(kind)
	return outbound.ChartSpec{
		Kind:   kind,
		Title:  style.Title,
		Labels: labels,
		Values: values,
		Style:  style,
	}
}

func TestRenderer_RendersEveryShape(t *testing.T) {
	renderer := New(320, 200)

	specs := []outbound.ChartSpec{
		specFor(chart.KindTimeDistribution, []string{chart.BandQuick, chart.BandLong}, []int{2, 1}),
		specFor(chart.KindDifficultyDistribution, []string{"Easy", "Hard"}, []int{3, 1}),
		specFor(chart.KindTimeHistogram, []string{"0-9", "10-19", "20-29"}, []int{1, 0, 2}),
	}

	for _, spec := range specs {
		t.Run(string(spec.Kind), func(t *testing.T) {
			image, err := renderer.Render(context.Background(), spec)
			require.NoError(t, err)

			cfg, err := png.DecodeConfig(bytes.NewReader(image))
			require.NoError(t, err)
			assert.Equal(t, 320, cfg.Width)
			assert.Equal(t, 200, cfg.Height)
		})
	}
}

func TestRenderer_SingleBucketHistogram(t *testing.T) {
	image, err := New(0, 0).Render(context.Background(),
		specFor(chart.KindTimeHistogram, []string{"0-9"}, []int{4}))

	require.NoError(t, err)
	assert.NotEmpty(t, image)
}

func TestRenderer_FreshImagePerCall(t *testing.T) {
	renderer := New(200, 200)
	spec := specFor(chart.KindDifficultyDistribution, []string{"Easy"}, []int{1})

	first, err := renderer.Render(context.Background(), spec)
	require.NoError(t, err)
	second, err := renderer.Render(context.Background(), spec)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestRenderer_Errors(t *testing.T) {
	renderer := New(200, 200)

	_, err := renderer.Render(context.Background(), specFor(chart.KindTimeDistribution, nil, nil))
	assert.Error(t, err)

	_, err = renderer.Render(context.Background(), specFor(chart.KindTimeDistribution, []string{"a"}, []int{1, 2}))
	assert.Error(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = renderer.Render(ctx, specFor(chart.KindTimeDistribution, []string{"a"}, []int{1}))
	assert.ErrorIs(t, err, context.Canceled)
}
