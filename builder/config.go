// SPDX-License-Identifier: MIT
// Package: attrimpute/builder
//
// config.go - internal configuration and deterministic defaults.
//
// Deterministic defaults:
//   • rng         = PCG(defaultSeed)
//   • dim         = 2
//   • featureFn   = IndexFeatures
//   • smoothing   = 0
//   • missingRate = 0
//   • labelFn     = nil (no label column)

package builder

import (
	"math/rand/v2"
)

// builderConfig aggregates all knobs used by constructors and the finishing
// stages. It is passed by VALUE to constructors.
type builderConfig struct {
	rng         *rand.Rand
	dim         int
	featureFn   FeatureFn
	smoothing   int
	missingRate float64
	labelFn     func(int) string
}

const (
	defaultSeed = uint64(1)
	defaultDim  = 2
	pcgStream   = uint64(0x9e3779b97f4a7c15)
)

// newBuilderConfig applies options in order over the defaults.
func newBuilderConfig(opts ...BuilderOption) builderConfig {
	cfg := builderConfig{
		rng:       rand.New(rand.NewPCG(defaultSeed, defaultSeed^pcgStream)),
		dim:       defaultDim,
		featureFn: IndexFeatures,
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	return cfg
}
