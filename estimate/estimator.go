package estimate

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/cwbudde/algo-pcl/master"
)

// Spectrum holds decoupled bandpowers at their effective multipoles.
type Spectrum struct {
	Ell []float64
	Cl  []float64
}

// Len returns the number of bandpowers.
func (s Spectrum) Len() int { return len(s.Cl) }

// Estimator computes decoupled spectra with a fixed method and cache policy.
type Estimator struct {
	method Method
	cache  WorkspaceCache
	cfg    Config
	opts   []Option
}

// NewEstimator validates method and returns an estimator.
func NewEstimator(method Method, cache WorkspaceCache, opts ...Option) (*Estimator, error) {
	if !method.valid() {
		return nil, fmt.Errorf("%w: %v", ErrUnknownMethod, method)
	}
	return &Estimator{
		method: method,
		cache:  cache,
		cfg:    ApplyOptions(opts...),
		opts:   opts,
	}, nil
}

// Method returns the configured decoupling method.
func (e *Estimator) Method() Method { return e.method }

// Estimate resolves the workspace and returns the decoupled spectrum of
// f1 x f2 in the bandpowers of b.
func (e *Estimator) Estimate(f1, f2 *master.Field, b *master.Bins) (Spectrum, CacheState, error) {
	if !e.method.valid() {
		return Spectrum{}, CacheMiss, fmt.Errorf("%w: %v", ErrUnknownMethod, e.method)
	}
	log := e.cfg.Logger

	ws, state, err := e.cache.Resolve(f1, f2, b, e.opts...)
	if err != nil {
		return Spectrum{}, state, err
	}

	var cl []float64
	switch e.method {
	case MethodFull:
		log.Info("computing full master", zap.Int("bins", b.Count()), zap.Int("lmax", b.LMax()))
		cl, err = master.ComputeFullMaster(f1, f2, b, ws)
	case MethodStep:
		log.Info("computing coupled cl", zap.Int("lmax", b.LMax()))
		var coupled []float64
		coupled, err = master.CoupledCell(f1, f2)
		if err != nil {
			break
		}
		log.Info("decoupling cl", zap.Int("bins", b.Count()), zap.Stringer("cache", state))
		cl, err = ws.DecoupleCell(coupled)
	}
	if err != nil {
		return Spectrum{}, state, fmt.Errorf("estimate: %s: %w", e.method, err)
	}

	return Spectrum{Ell: b.EffectiveElls(), Cl: cl}, state, nil
}
