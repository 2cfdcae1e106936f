// SPDX-License-Identifier: MIT
// Package: attrimpute/builder
//
// options.go - functional options for the builder package.
//
// Contract:
//   • Options are functional (type BuilderOption func(*builderConfig)).
//   • Option constructors VALIDATE and PANIC on meaningless inputs.
//     Constructors themselves never panic.
//   • Determinism is explicit: seeding is done via WithSeed or WithRand.

package builder

import (
	"fmt"
	"math/rand/v2"
)

// BuilderOption customizes a build by mutating builderConfig before any
// constructor runs.
type BuilderOption func(*builderConfig)

// WithSeed creates a PCG-backed *rand.Rand with the given seed.
func WithSeed(seed uint64) BuilderOption {
	return func(c *builderConfig) {
		c.rng = rand.New(rand.NewPCG(seed, seed^pcgStream))
	}
}

// WithRand provides an explicit RNG. Panics on nil.
func WithRand(r *rand.Rand) BuilderOption {
	if r == nil {
		panic("builder: WithRand(nil)")
	}

	return func(c *builderConfig) { c.rng = r }
}

// WithDimension sets the feature vector length. Panics if d < 1.
func WithDimension(d int) BuilderOption {
	if d < 1 {
		panic(fmt.Sprintf("builder: WithDimension(%d)", d))
	}

	return func(c *builderConfig) { c.dim = d }
}

// WithFeatureFn overrides the per-position feature generator. Panics on nil.
func WithFeatureFn(fn FeatureFn) BuilderOption {
	if fn == nil {
		panic("builder: WithFeatureFn(nil)")
	}

	return func(c *builderConfig) { c.featureFn = fn }
}

// WithSmoothing averages every node with its neighbors r times after the
// features are drawn. Panics if r < 0.
func WithSmoothing(r int) BuilderOption {
	if r < 0 {
		panic(fmt.Sprintf("builder: WithSmoothing(%d)", r))
	}

	return func(c *builderConfig) { c.smoothing = r }
}

// WithMissingRate hides each (node, dimension) independently with probability
// p. Panics unless 0 <= p < 1.
func WithMissingRate(p float64) BuilderOption {
	if p < 0 || p >= 1 {
		panic(fmt.Sprintf("builder: WithMissingRate(%g) outside [0,1)", p))
	}

	return func(c *builderConfig) { c.missingRate = p }
}

// WithLabels attaches a label to every node, making the tabbed layout carry a
// label column. Panics on nil.
func WithLabels(fn func(idx int) string) BuilderOption {
	if fn == nil {
		panic("builder: WithLabels(nil)")
	}

	return func(c *builderConfig) { c.labelFn = fn }
}
