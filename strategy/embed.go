// SPDX-License-Identifier: MIT
// Package: attrimpute/strategy
//
// embed.go - the walk -> corpus -> skip-gram pipeline shared by the embedding
// strategies.

package strategy

import (
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/katalvlaran/attrimpute/embedding"
	"github.com/katalvlaran/attrimpute/matrix"
	"github.com/katalvlaran/attrimpute/walk"
)

// EmbedConfig holds the walk and training parameters common to the embedding
// strategies. Embed it in a strategy config to inherit its option keys.
type EmbedConfig struct {
	WalksPerNode    int     `opt:"walksPerNode" validate:"gte=1"`
	WalkLength      int     `opt:"walkLength" validate:"gte=1"`
	EmbeddingDim    int     `opt:"embeddingDim" validate:"gte=1"`
	WindowSize      int     `opt:"windowSize" validate:"gte=1"`
	TrainingPasses  int     `opt:"trainingPasses" validate:"gte=1"`
	NegativeSamples int     `opt:"negativeSamples" validate:"gte=0"`
	RandomSeed      uint64  `opt:"randomSeed"`
	LearningRate    float64 `opt:"learningRate" validate:"gt=0"`
	Workers         int     `opt:"workers" validate:"gte=0"`
}

// DefaultEmbedConfig returns the walk and trainer defaults.
func DefaultEmbedConfig() EmbedConfig {
	return EmbedConfig{
		WalksPerNode:    walk.DefaultWalksPerNode,
		WalkLength:      walk.DefaultWalkLength,
		EmbeddingDim:    embedding.DefaultDimensions,
		WindowSize:      embedding.DefaultWindow,
		TrainingPasses:  embedding.DefaultEpochs,
		NegativeSamples: embedding.DefaultNegative,
		LearningRate:    embedding.DefaultLearningRate,
	}
}

// Embed samples a walk corpus over env.Graph and trains an embedding on it.
// weight is only consulted in walk.Biased mode.
//
// A corpus without co-occurring nodes is not fatal: Embed then returns an
// all-zero embedding together with the *embedding.EmptyCorpusError as
// fallback. err reports everything else.
func Embed(env Env, cfg EmbedConfig, mode walk.Mode, weight walk.WeightFunc) (emb *matrix.Dense, fallback, err error) {
	start := time.Now()
	sampler, err := walk.NewSampler(env.Ctx, env.Graph, walk.Config{
		WalksPerNode: cfg.WalksPerNode,
		WalkLength:   cfg.WalkLength,
		Seed:         cfg.RandomSeed,
		Workers:      env.ResolveWorkers(cfg.Workers),
		Mode:         mode,
		Weight:       weight,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("sampler: %w", err)
	}
	corpus, err := sampler.Corpus(env.Ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("corpus: %w", err)
	}
	env.Logger.Info("walk corpus sampled",
		zap.Stringer("mode", mode),
		zap.Int("walks", corpus.Len()),
		zap.Int("tokens", corpus.Tokens()),
		zap.Duration("elapsed", time.Since(start)))

	trainer, err := embedding.NewTrainer(embedding.Config{
		Dimensions:   cfg.EmbeddingDim,
		Window:       cfg.WindowSize,
		Epochs:       cfg.TrainingPasses,
		Negative:     cfg.NegativeSamples,
		LearningRate: cfg.LearningRate,
		Seed:         cfg.RandomSeed,
		OnEpoch: func(epoch int, lr float64) {
			env.Logger.Debug("training epoch done", zap.Int("epoch", epoch), zap.Float64("lr", lr))
		},
	})
	if err != nil {
		return nil, nil, fmt.Errorf("trainer: %w", err)
	}

	start = time.Now()
	emb, err = trainer.Train(env.Ctx, corpus)
	var empty *embedding.EmptyCorpusError
	switch {
	case errors.As(err, &empty):
		zero, zerr := matrix.NewDense(env.Graph.NodeCount(), cfg.EmbeddingDim)
		if zerr != nil {
			return nil, nil, fmt.Errorf("zero embedding: %w", zerr)
		}

		return zero, empty, nil
	case err != nil:
		return nil, nil, fmt.Errorf("train: %w", err)
	}
	env.Logger.Info("embedding trained",
		zap.Int("dimensions", cfg.EmbeddingDim),
		zap.Duration("elapsed", time.Since(start)))

	return emb, nil, nil
}
