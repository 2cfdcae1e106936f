// SPDX-License-Identifier: MIT

package knn

import (
	"fmt"
	"math"
	"time"

	"go.uber.org/zap"
	"gonum.org/v1/gonum/stat"

	"github.com/katalvlaran/attrimpute/core"
	"github.com/katalvlaran/attrimpute/similarity"
	"github.com/katalvlaran/attrimpute/strategy"
)

// Name is the registry name of the strategy.
const Name = "knn"

// Default parameters.
const (
	DefaultK = 15

	minDistance = 1e-9
)

// Config holds the tunable parameters.
type Config struct {
	K             int     `opt:"k" validate:"gte=1"`
	HopCutoff     int     `opt:"hopCutoff" validate:"gte=1"`
	GraphWeight   float64 `opt:"graphWeight" validate:"gte=0"`
	FeatureWeight float64 `opt:"featureWeight" validate:"gte=0"`
	Candidates    int     `opt:"candidates" validate:"gte=0"`
	Workers       int     `opt:"workers" validate:"gte=0"`
}

// DefaultConfig returns the documented defaults.
func DefaultConfig() Config {
	return Config{
		K:             DefaultK,
		HopCutoff:     similarity.DefaultHopCutoff,
		GraphWeight:   similarity.DefaultGraphWeight,
		FeatureWeight: similarity.DefaultFeatureWeight,
	}
}

// Imputer is the KNN strategy.
type Imputer struct {
	env     strategy.Env
	cfg     Config
	results *strategy.Results
}

var _ strategy.Strategy = (*Imputer)(nil)

// New binds an Imputer to g with the default configuration.
func New(g *core.Graph, opts ...strategy.Option) *Imputer {
	return &Imputer{env: strategy.NewEnv(g, opts...), cfg: DefaultConfig()}
}

// Name implements strategy.Strategy.
func (s *Imputer) Name() string { return Name }

// Configure implements strategy.Strategy.
func (s *Imputer) Configure(opts strategy.Options) error {
	cfg := s.cfg
	if err := strategy.Decode(Name, opts, &cfg); err != nil {
		return err
	}
	if cfg.GraphWeight == 0 && cfg.FeatureWeight == 0 {
		return &strategy.ConfigurationError{
			Strategy: Name, Key: "graphWeight", Value: 0,
			Reason: "graphWeight and featureWeight cannot both be 0",
		}
	}
	s.cfg = cfg
	s.results = nil

	return nil
}

// Parameters implements strategy.Strategy.
func (s *Imputer) Parameters() strategy.Options { return strategy.Encode(s.cfg) }

// Config returns the current configuration.
func (s *Imputer) Config() Config { return s.cfg }

// Run builds the similarity index and fills every missing value.
func (s *Imputer) Run() error {
	start := time.Now()
	s.results = nil
	g := s.env.Graph
	workers := s.env.ResolveWorkers(s.cfg.Workers)
	ix, err := similarity.Build(s.env.Ctx, g, similarity.Config{
		HopCutoff:     s.cfg.HopCutoff,
		GraphWeight:   s.cfg.GraphWeight,
		FeatureWeight: s.cfg.FeatureWeight,
		Workers:       workers,
		MaxNeighbors:  s.cfg.Candidates,
	})
	if err != nil {
		return fmt.Errorf("knn: run: %w", err)
	}
	s.env.Logger.Debug("similarity index built",
		zap.Int("nodes", g.NodeCount()),
		zap.Duration("elapsed", time.Since(start)))

	features := g.Features()
	columns := g.ColumnStats()
	perNode := make([][]error, g.NodeCount())
	err = s.env.Parallel(g.NodeCount(), workers, func(i int) error {
		row := features.RowView(i)
		for d := range row {
			if !g.IsMissing(i, d) {
				continue
			}
			v, ok := s.impute(ix, i, d)
			if !ok {
				v = 0
				if columns[d].Count > 0 {
					v = columns[d].Mean
				}
				perNode[i] = append(perNode[i], &strategy.InsufficientNeighborsError{
					Node: i, Dim: d, Found: 0, Wanted: s.cfg.K, Fallback: v,
				})
			}
			row[d] = v
		}

		return nil
	})
	if err != nil {
		return fmt.Errorf("knn: run: %w", err)
	}

	res := &strategy.Results{Strategy: Name, Features: features}
	for _, errs := range perNode {
		res.Fallbacks = append(res.Fallbacks, errs...)
	}
	s.results = res
	s.env.ReportFallbacks(res)
	s.env.Logger.Info("strategy finished",
		zap.String("strategy", Name),
		zap.Int("imputed", g.MissingCount()),
		zap.Int("fallbacks", len(res.Fallbacks)),
		zap.Duration("elapsed", time.Since(start)))

	return nil
}

// impute returns the weighted mean over node's nearest neighbors knowing dim.
func (s *Imputer) impute(ix *similarity.Index, node, dim int) (float64, bool) {
	nearest := ix.Nearest(node, dim, s.cfg.K)
	if len(nearest) == 0 {
		return 0, false
	}
	vals := make([]float64, len(nearest))
	weights := make([]float64, len(nearest))
	for i, nb := range nearest {
		vals[i], _ = s.env.Graph.Value(nb.ID, dim)
		weights[i] = 1 / math.Max(nb.Distance, minDistance)
	}

	return stat.Mean(vals, weights), true
}

// ExtractResults implements strategy.Strategy.
func (s *Imputer) ExtractResults() (*strategy.Results, error) { return strategy.Extract(s.results) }

// SaveFeatures implements strategy.Strategy.
func (s *Imputer) SaveFeatures(g *core.Graph, path string) error {
	return strategy.Save(s.results, g, path)
}

// Reset implements strategy.Strategy.
func (s *Imputer) Reset() {
	s.cfg = DefaultConfig()
	s.results = nil
}
