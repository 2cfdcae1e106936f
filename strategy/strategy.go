// SPDX-License-Identifier: MIT

package strategy

import (
	"context"
	"fmt"
	"runtime"
	"slices"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/katalvlaran/attrimpute/core"
	"github.com/katalvlaran/attrimpute/matrix"
)

// Strategy fills in missing node attributes of the graph it is bound to.
//
// A Strategy is not safe for concurrent use; distinct Strategy values may run
// concurrently on one graph.
type Strategy interface {
	// Name is the registry name ("knn", "topo2vec", "deepwalk").
	Name() string
	// Configure merges opts into the current configuration, all or nothing.
	// A successful call drops the Results of earlier runs.
	Configure(opts Options) error
	// Parameters returns the effective configuration.
	Parameters() Options
	// Run computes a fresh Results, replacing any previous one. A failed Run
	// leaves no Results behind.
	Run() error
	// ExtractResults returns a copy of the last Results.
	ExtractResults() (*Results, error)
	// SaveFeatures writes Results.Features to path in g's feature layout.
	SaveFeatures(g *core.Graph, path string) error
	// Reset restores the default configuration and drops any Results.
	Reset()
}

// Results is the outcome of one Run. Features always holds one fully
// populated row per node; Embedding is nil for strategies without one.
type Results struct {
	Strategy  string
	Features  *matrix.Dense
	Embedding *matrix.Dense
	// Fallbacks lists every recoverable condition, in the order met, that
	// made the strategy substitute a documented default value.
	Fallbacks []error
}

// Clone returns a deep copy of r.
func (r *Results) Clone() *Results {
	out := &Results{Strategy: r.Strategy, Fallbacks: slices.Clone(r.Fallbacks)}
	if r.Features != nil {
		out.Features = r.Features.Clone()
	}
	if r.Embedding != nil {
		out.Embedding = r.Embedding.Clone()
	}

	return out
}

// Extract is the shared ExtractResults body: ErrNotRun for nil, else a copy.
func Extract(r *Results) (*Results, error) {
	if r == nil {
		return nil, ErrNotRun
	}

	return r.Clone(), nil
}

// Save is the shared SaveFeatures body.
func Save(r *Results, g *core.Graph, path string) error {
	if r == nil {
		return ErrNotRun
	}
	if err := core.WriteFeaturesFile(path, g, r.Features); err != nil {
		return fmt.Errorf("strategy: %s: save features: %w", r.Strategy, err)
	}

	return nil
}

// Option customises the Env of a strategy at construction.
type Option func(*Env)

// Env is the read-only environment a strategy runs in.
type Env struct {
	Graph   *core.Graph
	Logger  *zap.Logger
	Workers int // 0 means GOMAXPROCS
	Ctx     context.Context
}

// NewEnv binds g and applies opts over the defaults (no-op logger,
// GOMAXPROCS workers, background context). Panics on a nil graph.
func NewEnv(g *core.Graph, opts ...Option) Env {
	if g == nil {
		panic("strategy: nil graph")
	}
	env := Env{Graph: g, Logger: zap.NewNop(), Ctx: context.Background()}
	for _, opt := range opts {
		opt(&env)
	}

	return env
}

// WithLogger sets the logger. Panics on nil.
func WithLogger(l *zap.Logger) Option {
	if l == nil {
		panic("strategy: WithLogger(nil)")
	}

	return func(e *Env) { e.Logger = l }
}

// WithWorkers bounds the parallel stages. Panics if n < 0.
func WithWorkers(n int) Option {
	if n < 0 {
		panic(fmt.Sprintf("strategy: WithWorkers(%d)", n))
	}

	return func(e *Env) { e.Workers = n }
}

// WithContext sets the context observed between parallel work items. Panics on nil.
func WithContext(ctx context.Context) Option {
	if ctx == nil {
		panic("strategy: WithContext(nil)")
	}

	return func(e *Env) { e.Ctx = ctx }
}

// ResolveWorkers picks the worker count: a positive override, then
// Env.Workers, then GOMAXPROCS.
func (e Env) ResolveWorkers(override int) int {
	switch {
	case override > 0:
		return override
	case e.Workers > 0:
		return e.Workers
	}

	return runtime.GOMAXPROCS(0)
}

// Parallel calls fn(i) for i in [0, n) split into contiguous chunks over at
// most workers goroutines. fn must write only state owned by index i.
//
// Errors: the first error returned by fn, or e.Ctx.Err() on cancellation.
func (e Env) Parallel(n, workers int, fn func(i int) error) error {
	if n == 0 {
		return nil
	}
	workers = max(1, min(workers, n))
	eg, ctx := errgroup.WithContext(e.Ctx)
	chunk := (n + workers - 1) / workers
	for lo := 0; lo < n; lo += chunk {
		hi := min(lo+chunk, n)
		eg.Go(func() error {
			for i := lo; i < hi; i++ {
				if err := ctx.Err(); err != nil {
					return err
				}
				if err := fn(i); err != nil {
					return err
				}
			}

			return nil
		})
	}

	return eg.Wait()
}

// ReportFallbacks logs a summary of r.Fallbacks at Warn level.
func (e Env) ReportFallbacks(r *Results) {
	if len(r.Fallbacks) == 0 {
		return
	}
	e.Logger.Warn("fallback values used",
		zap.String("strategy", r.Strategy),
		zap.Int("count", len(r.Fallbacks)),
		zap.Error(r.Fallbacks[0]),
	)
}
