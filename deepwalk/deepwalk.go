// SPDX-License-Identifier: MIT

package deepwalk

import (
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/katalvlaran/attrimpute/core"
	"github.com/katalvlaran/attrimpute/strategy"
	"github.com/katalvlaran/attrimpute/walk"
)

// Name is the registry name of the strategy.
const Name = "deepwalk"

// Default parameters.
const (
	DefaultFusion       = 1.0
	DefaultCoverDepth   = 2
	DefaultRidge        = 0.1
	DefaultSimilarNodes = 5
)

// Config holds the tunable parameters.
type Config struct {
	strategy.EmbedConfig
	Fusion       float64 `opt:"fusion" validate:"gte=0,lte=1"`
	CoverDepth   int     `opt:"coverDepth" validate:"gte=1"`
	Ridge        float64 `opt:"ridge" validate:"gt=0"`
	SimilarNodes int     `opt:"similarNodes" validate:"gte=1"`
}

// DefaultConfig returns the documented defaults.
func DefaultConfig() Config {
	return Config{
		EmbedConfig:  strategy.DefaultEmbedConfig(),
		Fusion:       DefaultFusion,
		CoverDepth:   DefaultCoverDepth,
		Ridge:        DefaultRidge,
		SimilarNodes: DefaultSimilarNodes,
	}
}

// Imputer is the attributed DeepWalk strategy.
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
	s.cfg = cfg
	s.results = nil

	return nil
}

// Parameters implements strategy.Strategy.
func (s *Imputer) Parameters() strategy.Options { return strategy.Encode(s.cfg) }

// Config returns the current configuration.
func (s *Imputer) Config() Config { return s.cfg }

// Run embeds the graph with biased walks and reconstructs the missing values.
func (s *Imputer) Run() error {
	start := time.Now()
	s.results = nil
	g := s.env.Graph
	weight := FusionWeight(g, s.cfg.Fusion, s.cfg.CoverDepth)
	emb, fallback, err := strategy.Embed(s.env, s.cfg.EmbedConfig, walk.Biased, weight)
	if err != nil {
		return fmt.Errorf("deepwalk: run: %w", err)
	}
	res := &strategy.Results{Strategy: Name, Embedding: emb}
	if fallback != nil {
		res.Fallbacks = append(res.Fallbacks, fallback)
	}

	rec := newReconstructor(g, emb, s.cfg.Ridge, s.cfg.SimilarNodes)
	fills := make([]columnFill, g.FeatureDimension())
	workers := s.env.ResolveWorkers(s.cfg.Workers)
	err = s.env.Parallel(len(fills), workers, func(d int) error {
		fills[d] = rec.dimension(d)
		return nil
	})
	if err != nil {
		return fmt.Errorf("deepwalk: run: %w", err)
	}

	features := g.Features()
	for d, fill := range fills {
		for idx, i := range fill.missing {
			if err := features.Set(i, d, fill.values[idx]); err != nil {
				return fmt.Errorf("deepwalk: run: %w", err)
			}
		}
		res.Fallbacks = append(res.Fallbacks, fill.fallbacks...)
	}
	res.Features = features
	s.results = res
	s.env.ReportFallbacks(res)
	s.env.Logger.Info("strategy finished",
		zap.String("strategy", Name),
		zap.Float64("fusion", s.cfg.Fusion),
		zap.Int("imputed", g.MissingCount()),
		zap.Int("fallbacks", len(res.Fallbacks)),
		zap.Duration("elapsed", time.Since(start)))

	return nil
}

// ExtractResults implements strategy.Strategy.
func (s *Imputer) ExtractResults() (*strategy.Results, error) { return strategy.Extract(s.results) }

// SaveFeatures implements strategy.Strategy; the reconstructed attributes are written.
func (s *Imputer) SaveFeatures(g *core.Graph, path string) error {
	return strategy.Save(s.results, g, path)
}

// Reset implements strategy.Strategy.
func (s *Imputer) Reset() {
	s.cfg = DefaultConfig()
	s.results = nil
}
