// SPDX-License-Identifier: MIT

package topo2vec

import (
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/katalvlaran/attrimpute/core"
	"github.com/katalvlaran/attrimpute/strategy"
	"github.com/katalvlaran/attrimpute/walk"
)

// Name is the registry name of the strategy.
const Name = "topo2vec"

// Config holds the tunable parameters.
type Config struct {
	strategy.EmbedConfig
}

// DefaultConfig returns the documented defaults.
func DefaultConfig() Config {
	return Config{EmbedConfig: strategy.DefaultEmbedConfig()}
}

// Embedder is the Topo2Vec strategy.
type Embedder struct {
	env     strategy.Env
	cfg     Config
	results *strategy.Results
}

var _ strategy.Strategy = (*Embedder)(nil)

// New binds an Embedder to g with the default configuration.
func New(g *core.Graph, opts ...strategy.Option) *Embedder {
	return &Embedder{env: strategy.NewEnv(g, opts...), cfg: DefaultConfig()}
}

// Name implements strategy.Strategy.
func (s *Embedder) Name() string { return Name }

// Configure implements strategy.Strategy.
func (s *Embedder) Configure(opts strategy.Options) error {
	cfg := s.cfg
	if err := strategy.Decode(Name, opts, &cfg); err != nil {
		return err
	}
	s.cfg = cfg
	s.results = nil

	return nil
}

// Parameters implements strategy.Strategy.
func (s *Embedder) Parameters() strategy.Options { return strategy.Encode(s.cfg) }

// Config returns the current configuration.
func (s *Embedder) Config() Config { return s.cfg }

// Run samples uniform walks and trains the embedding.
func (s *Embedder) Run() error {
	start := time.Now()
	s.results = nil
	emb, fallback, err := strategy.Embed(s.env, s.cfg.EmbedConfig, walk.Uniform, nil)
	if err != nil {
		return fmt.Errorf("topo2vec: run: %w", err)
	}
	res := &strategy.Results{Strategy: Name, Features: emb, Embedding: emb.Clone()}
	if fallback != nil {
		res.Fallbacks = append(res.Fallbacks, fallback)
	}
	s.results = res
	s.env.ReportFallbacks(res)
	s.env.Logger.Info("strategy finished",
		zap.String("strategy", Name),
		zap.Int("nodes", emb.Rows()),
		zap.Int("dimensions", emb.Cols()),
		zap.Duration("elapsed", time.Since(start)))

	return nil
}

// ExtractResults implements strategy.Strategy. Features and Embedding hold the
// same values.
func (s *Embedder) ExtractResults() (*strategy.Results, error) { return strategy.Extract(s.results) }

// SaveFeatures implements strategy.Strategy; rows are embedding vectors.
func (s *Embedder) SaveFeatures(g *core.Graph, path string) error {
	return strategy.Save(s.results, g, path)
}

// Reset implements strategy.Strategy.
func (s *Embedder) Reset() {
	s.cfg = DefaultConfig()
	s.results = nil
}
