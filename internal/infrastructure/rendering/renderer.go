// Package rendering selects the chart renderer backend at startup
package rendering

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/alchemorsel/catalog/internal/infrastructure/config"
	"github.com/alchemorsel/catalog/internal/infrastructure/rendering/gochart"
	"github.com/alchemorsel/catalog/internal/ports/outbound"
)

// New returns the renderer named by cfg.Backend
func New(cfg config.ChartsConfig, logger *zap.Logger) (outbound.ChartRenderer, error) {
	switch cfg.Backend {
	case config.ChartBackendGoChart, "":
		logger.Info("Chart renderer selected",
			zap.String("backend", config.ChartBackendGoChart),
			zap.Int("width", cfg.Width),
			zap.Int("height", cfg.Height),
		)
		return gochart.New(cfg.Width, cfg.Height), nil
	case config.ChartBackendNoop:
		logger.Info("Chart renderer selected", zap.String("backend", config.ChartBackendNoop))
		return Noop{}, nil
	default:
		return nil, fmt.Errorf("unknown chart backend %q", cfg.Backend)
	}
}

// Noop renders nothing. Charts still carry their labels and counts.
type Noop struct{}

// Render returns an empty image
func (Noop) Render(ctx context.Context, _ outbound.ChartSpec) ([]byte, error) {
	return nil, ctx.Err()
}
