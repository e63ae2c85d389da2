package rendering

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/alchemorsel/catalog/internal/infrastructure/config"
	"github.com/alchemorsel/catalog/internal/infrastructure/rendering/gochart"
	"github.com/alchemorsel/catalog/internal/ports/outbound"
)

func TestNew(t *testing.T) {
	r, err := New(config.ChartsConfig{Backend: config.ChartBackendGoChart, Width: 100, Height: 100}, zap.NewNop())
	require.NoError(t, err)
	assert.IsType(t, &gochart.Renderer{}, r)

	r, err = New(config.ChartsConfig{Backend: config.ChartBackendNoop}, zap.NewNop())
	require.NoError(t, err)
	image, err := r.Render(context.Background(), outbound.ChartSpec{})
	assert.NoError(t, err)
	assert.Empty(t, image)

	_, err = New(config.ChartsConfig{Backend: "matplotlib"}, zap.NewNop())
	assert.Error(t, err)
}
