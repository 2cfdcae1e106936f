// SPDX-License-Identifier: MIT
// Package: attrimpute/builder
//
// features.go - feature generators, neighborhood smoothing and MCAR corruption.
//
// Determinism:
//   - Features are drawn in (node asc, dimension asc) order from cfg.rng.
//   - The missing mask is drawn afterwards in the same order.

package builder

import (
	"fmt"
	"math/rand/v2"
)

// FeatureFn yields the value of dimension dim on node idx. It may draw from rng
// and must be deterministic for a given rng state.
type FeatureFn func(idx, dim int, rng *rand.Rand) float64

// IndexFeatures is the deterministic ramp idx*(dim+1).
func IndexFeatures(idx, dim int, _ *rand.Rand) float64 {
	return float64(idx * (dim + 1))
}

// UniformFeatures draws from U[lo,hi). Panics if hi <= lo.
func UniformFeatures(lo, hi float64) FeatureFn {
	if hi <= lo {
		panic(fmt.Sprintf("builder: UniformFeatures(%g, %g)", lo, hi))
	}

	return func(_, _ int, rng *rand.Rand) float64 {
		return lo + (hi-lo)*rng.Float64()
	}
}

// NormalFeatures draws from N(mean, stddev). Panics if stddev < 0.
func NormalFeatures(mean, stddev float64) FeatureFn {
	if stddev < 0 {
		panic(fmt.Sprintf("builder: NormalFeatures(stddev=%g)", stddev))
	}

	return func(_, _ int, rng *rand.Rand) float64 {
		return mean + stddev*rng.NormFloat64()
	}
}

// drawFeatures fills an n*dim row-major slice.
func drawFeatures(d *Draft, cfg builderConfig) []float64 {
	out := make([]float64, d.n*cfg.dim)
	for i := 0; i < d.n; i++ {
		for k := 0; k < cfg.dim; k++ {
			out[i*cfg.dim+k] = cfg.featureFn(i, k, cfg.rng)
		}
	}

	return out
}

// smooth replaces every row with the mean of itself and its neighbors,
// cfg.smoothing times (Jacobi style: each round reads the previous one).
func smooth(d *Draft, x []float64, cfg builderConfig) {
	if cfg.smoothing == 0 || len(d.edges) == 0 {
		return
	}
	adj := make([][]int, d.n)
	for _, e := range d.edges {
		if e.From == e.To {
			continue
		}
		adj[e.From] = append(adj[e.From], e.To)
		adj[e.To] = append(adj[e.To], e.From)
	}
	dim := cfg.dim
	next := make([]float64, len(x))
	for r := 0; r < cfg.smoothing; r++ {
		for i := 0; i < d.n; i++ {
			row := next[i*dim : (i+1)*dim]
			copy(row, x[i*dim:(i+1)*dim])
			for _, j := range adj[i] {
				for k := range row {
					row[k] += x[j*dim+k]
				}
			}
			cnt := float64(1 + len(adj[i]))
			for k := range row {
				row[k] /= cnt
			}
		}
		copy(x, next)
	}
}

// corrupt draws the MCAR mask.
func corrupt(size int, cfg builderConfig) []bool {
	mask := make([]bool, size)
	if cfg.missingRate == 0 {
		return mask
	}
	for i := range mask {
		mask[i] = cfg.rng.Float64() < cfg.missingRate
	}

	return mask
}
