package estimate

import (
	"go.uber.org/zap"

	"github.com/cwbudde/algo-pcl/master"
)

// InitField wraps a mask and a map into an engine field.
func InitField(mask, m []float64, opts ...Option) (*master.Field, error) {
	cfg := ApplyOptions(opts...)
	cfg.Logger.Info("initializing field", zap.Int("npix", len(m)))
	return master.NewField(mask, m)
}
