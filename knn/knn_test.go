package knn_test

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/katalvlaran/attrimpute/builder"
	"github.com/katalvlaran/attrimpute/core"
	"github.com/katalvlaran/attrimpute/knn"
	"github.com/katalvlaran/attrimpute/strategy"
)

func parse(t *testing.T, features, edges string) *core.Graph {
	t.Helper()
	g, err := core.Parse(strings.NewReader(features), strings.NewReader(edges))
	require.NoError(t, err)

	return g
}

// pathScenario is the 4-node path 0-1-2-3 with node 2 missing dimension 0.
func pathScenario(t *testing.T) *core.Graph {
	return parse(t, "0 1 10\n1 2 20\n2 # 21\n3 5 40\n", "0 1\n1 2\n2 3\n")
}

func at(t *testing.T, r *strategy.Results, i, j int) float64 {
	t.Helper()
	v, err := r.Features.At(i, j)
	require.NoError(t, err)

	return v
}

// TestRun_PathScenarioSingleNeighbor imputes from the single nearest node.
func TestRun_PathScenarioSingleNeighbor(t *testing.T) {
	s := knn.New(pathScenario(t), strategy.WithLogger(zaptest.NewLogger(t)))
	require.NoError(t, s.Configure(strategy.Options{"k": 1}))
	require.NoError(t, s.Run())

	res, err := s.ExtractResults()
	require.NoError(t, err)
	assert.Equal(t, knn.Name, res.Strategy)
	assert.Nil(t, res.Embedding)
	assert.Empty(t, res.Fallbacks)
	assert.Equal(t, 2.0, at(t, res, 2, 0), "node 1 is nearest")
	assert.Equal(t, 21.0, at(t, res, 2, 1), "known values are kept")
	assert.Equal(t, 5.0, at(t, res, 3, 0))
}

// TestRun_PathScenarioWeightedMean checks inverse-distance weighting.
func TestRun_PathScenarioWeightedMean(t *testing.T) {
	s := knn.New(pathScenario(t))
	require.NoError(t, s.Configure(strategy.Options{"k": 2}))
	require.NoError(t, s.Run())
	res, err := s.ExtractResults()
	require.NoError(t, err)

	d1 := 0.5*0.25 + 0.5*(1.0/30)
	d0 := 0.5*0.5 + 0.5*(11.0/30)
	want := (2/d1 + 1/d0) / (1/d1 + 1/d0)
	assert.InDelta(t, want, at(t, res, 2, 0), 1e-12)
}

// TestRun_DeterministicAcrossWorkers compares two runs with different parallelism.
func TestRun_DeterministicAcrossWorkers(t *testing.T) {
	ds, err := builder.BuildDataset(
		[]builder.BuilderOption{builder.WithSeed(7), builder.WithDimension(3),
			builder.WithFeatureFn(builder.UniformFeatures(0, 10)), builder.WithSmoothing(2),
			builder.WithMissingRate(0.3)},
		builder.Grid(5, 6), builder.RandomSparse(20, 0.1),
	)
	require.NoError(t, err)

	run := func(workers int) *strategy.Results {
		s := knn.New(ds.Graph, strategy.WithWorkers(workers))
		require.NoError(t, s.Configure(strategy.Options{"k": 4}))
		require.NoError(t, s.Run())
		res, err := s.ExtractResults()
		require.NoError(t, err)
		return res
	}
	a, b := run(1), run(4)
	assert.True(t, a.Features.Equal(b.Features))
	assert.False(t, a.Features.HasNaNInf())
	for i := 0; i < ds.Graph.NodeCount(); i++ {
		for d := 0; d < 3; d++ {
			if v, ok := ds.Graph.Value(i, d); ok {
				assert.Equal(t, v, at(t, a, i, d))
			}
		}
	}
}

// TestRun_Fallbacks covers the column-mean and zero fallbacks.
func TestRun_Fallbacks(t *testing.T) {
	t.Run("column mean", func(t *testing.T) {
		s := knn.New(parse(t, "0 # 5\n1 # 6\n2 4 7\n", "0 1\n1 2\n"))
		require.NoError(t, s.Configure(strategy.Options{"k": 2, "candidates": 1}))
		require.NoError(t, s.Run())
		res, err := s.ExtractResults()
		require.NoError(t, err)

		assert.Equal(t, 4.0, at(t, res, 0, 0))
		assert.Equal(t, 4.0, at(t, res, 1, 0))
		require.Len(t, res.Fallbacks, 2)
		var ine *strategy.InsufficientNeighborsError
		require.ErrorAs(t, res.Fallbacks[0], &ine)
		assert.Equal(t, strategy.InsufficientNeighborsError{Node: 0, Dim: 0, Found: 0, Wanted: 2, Fallback: 4}, *ine)
		require.ErrorAs(t, res.Fallbacks[1], &ine)
		assert.Equal(t, 1, ine.Node)
	})
	t.Run("zero", func(t *testing.T) {
		s := knn.New(parse(t, "0 # 1\n1 # 2\n", "0 1\n"))
		require.NoError(t, s.Run())
		res, err := s.ExtractResults()
		require.NoError(t, err)

		assert.Equal(t, 0.0, at(t, res, 0, 0))
		assert.Equal(t, 0.0, at(t, res, 1, 0))
		assert.Len(t, res.Fallbacks, 2)
	})
}

// TestConfigure covers validation and the all-or-nothing contract.
func TestConfigure(t *testing.T) {
	s := knn.New(pathScenario(t))
	assert.Equal(t, knn.DefaultConfig(), s.Config())
	assert.Equal(t, strategy.Options{
		"k": 15, "hopCutoff": 3, "graphWeight": 0.5, "featureWeight": 0.5, "candidates": 0, "workers": 0,
	}, s.Parameters())

	for _, opts := range []strategy.Options{
		{"k": 0},
		{"hopCutoff": 0},
		{"graphWeight": -1},
		{"graphWeight": 0, "featureWeight": 0},
		{"k": 3, "distanceWeights": 1},
	} {
		err := s.Configure(opts)
		assert.ErrorIs(t, err, strategy.ErrConfiguration, "%v", opts)
		assert.Equal(t, knn.DefaultConfig(), s.Config(), "rejected options leave the config untouched")
	}

	require.NoError(t, s.Configure(strategy.Options{"k": 3}))
	require.NoError(t, s.Configure(strategy.Options{"graphWeight": 1}))
	assert.Equal(t, 3, s.Config().K, "configure merges")
	assert.Equal(t, 1.0, s.Config().GraphWeight)
}

// TestLifecycle checks NotRun before Run and after Reset, and SaveFeatures.
func TestLifecycle(t *testing.T) {
	g := pathScenario(t)
	s := knn.New(g)
	assert.Equal(t, "knn", s.Name())
	_, err := s.ExtractResults()
	assert.ErrorIs(t, err, strategy.ErrNotRun)
	path := filepath.Join(t.TempDir(), "out.txt")
	assert.ErrorIs(t, s.SaveFeatures(g, path), strategy.ErrNotRun)

	require.NoError(t, s.Configure(strategy.Options{"k": 1}))
	require.NoError(t, s.Run())
	require.NoError(t, s.SaveFeatures(g, path))
	b, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "0 1 10\n1 2 20\n2 2 21\n3 5 40\n", string(b))

	s.Reset()
	assert.Equal(t, knn.DefaultConfig(), s.Config())
	_, err = s.ExtractResults()
	assert.ErrorIs(t, err, strategy.ErrNotRun)
}

// TestRun_FailureDropsResults checks that neither a failed Run nor a new
// configuration leaves an earlier Results reachable.
func TestRun_FailureDropsResults(t *testing.T) {
	g := pathScenario(t)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	s := knn.New(g, strategy.WithContext(ctx))
	require.NoError(t, s.Configure(strategy.Options{"k": 2}))
	require.NoError(t, s.Run())
	_, err := s.ExtractResults()
	require.NoError(t, err)

	require.NoError(t, s.Configure(strategy.Options{"k": 1}))
	_, err = s.ExtractResults()
	assert.ErrorIs(t, err, strategy.ErrNotRun)

	require.NoError(t, s.Run())
	cancel()
	assert.ErrorIs(t, s.Run(), context.Canceled)
	_, err = s.ExtractResults()
	assert.ErrorIs(t, err, strategy.ErrNotRun)
	assert.ErrorIs(t, s.SaveFeatures(g, filepath.Join(t.TempDir(), "out.txt")), strategy.ErrNotRun)
}
