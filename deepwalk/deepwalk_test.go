package deepwalk_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/katalvlaran/attrimpute/builder"
	"github.com/katalvlaran/attrimpute/core"
	"github.com/katalvlaran/attrimpute/deepwalk"
	"github.com/katalvlaran/attrimpute/embedding"
	"github.com/katalvlaran/attrimpute/strategy"
)

var small = strategy.Options{
	"walksPerNode": 4, "walkLength": 10, "embeddingDim": 4, "trainingPasses": 2, "randomSeed": 5,
}

func run(t *testing.T, g *core.Graph, extra strategy.Options, opts ...strategy.Option) *strategy.Results {
	t.Helper()
	s := deepwalk.New(g, opts...)
	require.NoError(t, s.Configure(small))
	require.NoError(t, s.Configure(extra))
	require.NoError(t, s.Run())
	res, err := s.ExtractResults()
	require.NoError(t, err)

	return res
}

func at(t *testing.T, r *strategy.Results, i, j int) float64 {
	t.Helper()
	v, err := r.Features.At(i, j)
	require.NoError(t, err)

	return v
}

func dataset(t *testing.T) *builder.Dataset {
	t.Helper()
	ds, err := builder.BuildDataset(
		[]builder.BuilderOption{builder.WithSeed(3), builder.WithDimension(3),
			builder.WithFeatureFn(builder.NormalFeatures(5, 2)), builder.WithSmoothing(2),
			builder.WithMissingRate(0.25)},
		builder.Grid(4, 5), builder.Star(6),
	)
	require.NoError(t, err)

	return ds
}

// TestRun_KeepsKnownFillsMissing checks the reconstruction contract.
func TestRun_KeepsKnownFillsMissing(t *testing.T) {
	ds := dataset(t)
	g := ds.Graph
	require.Positive(t, g.MissingCount())
	res := run(t, g, strategy.Options{"fusion": 0.5}, strategy.WithLogger(zaptest.NewLogger(t)))

	assert.Equal(t, deepwalk.Name, res.Strategy)
	require.NotNil(t, res.Embedding)
	assert.Equal(t, g.NodeCount(), res.Embedding.Rows())
	assert.Equal(t, 4, res.Embedding.Cols())
	assert.Equal(t, g.NodeCount(), res.Features.Rows())
	assert.Equal(t, g.FeatureDimension(), res.Features.Cols())
	assert.False(t, res.Features.HasNaNInf())
	for i := 0; i < g.NodeCount(); i++ {
		for d := 0; d < g.FeatureDimension(); d++ {
			if v, ok := g.Value(i, d); ok {
				assert.Equal(t, v, at(t, res, i, d), "node %d dim %d", i, d)
			}
		}
	}
}

// TestRun_Deterministic compares worker counts for equal seeds.
func TestRun_Deterministic(t *testing.T) {
	g := dataset(t).Graph
	a := run(t, g, nil, strategy.WithWorkers(1))
	b := run(t, g, nil, strategy.WithWorkers(3))
	assert.True(t, a.Embedding.Equal(b.Embedding))
	assert.True(t, a.Features.Equal(b.Features))
}

// TestRun_ZeroEdgesFallsBackToColumnMean uses the zero embedding fallback,
// under which no node has a similar neighbor and every missing value takes
// its column mean.
func TestRun_ZeroEdgesFallsBackToColumnMean(t *testing.T) {
	g := parse(t, "0 1 10\n1 3 #\n2 # 30\n3 5 40\n", "")
	res := run(t, g, nil)

	require.Len(t, res.Fallbacks, 3)
	var empty *embedding.EmptyCorpusError
	assert.ErrorAs(t, res.Fallbacks[0], &empty)
	for _, fb := range res.Fallbacks[1:] {
		var ine *strategy.InsufficientNeighborsError
		require.ErrorAs(t, fb, &ine)
		assert.Zero(t, ine.Found)
	}
	assert.InDelta(t, 3.0, at(t, res, 2, 0), 1e-9)
	assert.InDelta(t, 80.0/3, at(t, res, 1, 1), 1e-9)
	assert.Equal(t, 1.0, at(t, res, 0, 0))
}

// TestRun_SimilarNodesShapeUnderdeterminedDimension fills a dimension known on
// fewer nodes than embedding columns from the most similar embeddings, so the
// number of nodes averaged changes the result.
func TestRun_SimilarNodesShapeUnderdeterminedDimension(t *testing.T) {
	g := parse(t,
		"0 1 10\n1 2 #\n2 3 #\n3 4 20\n4 5 #\n5 6 #\n6 7 #\n7 8 90\n",
		"0 1\n1 2\n2 3\n3 4\n4 5\n5 6\n6 7\n")
	missing := []int{1, 2, 4, 5, 6}

	one := run(t, g, strategy.Options{"similarNodes": 1})
	three := run(t, g, strategy.Options{"similarNodes": 3})
	assert.Empty(t, one.Fallbacks)
	assert.Empty(t, three.Fallbacks)
	for _, i := range missing {
		v1, v3 := at(t, one, i, 1), at(t, three, i, 1)
		assert.Contains(t, []float64{10, 20, 90}, v1, "node %d copies one known value", i)
		assert.Greater(t, v3, 10.0, "node %d", i)
		assert.Less(t, v3, 90.0, "node %d", i)
		assert.NotEqual(t, v1, v3, "node %d", i)
	}

	five := run(t, g, strategy.Options{"similarNodes": 5})
	require.Len(t, five.Fallbacks, len(missing))
	for k, fb := range five.Fallbacks {
		var ine *strategy.InsufficientNeighborsError
		require.ErrorAs(t, fb, &ine)
		assert.Equal(t, missing[k], ine.Node)
		assert.Equal(t, 3, ine.Found)
		assert.Equal(t, 5, ine.Wanted)
	}
}

// TestRun_SparseDimensionFallbacks covers the similar-node and column-mean paths.
func TestRun_SparseDimensionFallbacks(t *testing.T) {
	t.Run("similar nodes", func(t *testing.T) {
		g := parse(t, "0 1 #\n1 2 #\n2 3 #\n3 4 #\n4 5 7\n", "0 1\n1 2\n2 3\n3 4\n")
		res := run(t, g, nil)

		require.Len(t, res.Fallbacks, 4)
		for i := 0; i < 4; i++ {
			assert.InDelta(t, 7.0, at(t, res, i, 1), 1e-12)
			var ine *strategy.InsufficientNeighborsError
			require.ErrorAs(t, res.Fallbacks[i], &ine)
			assert.Equal(t, i, ine.Node)
			assert.Equal(t, 1, ine.Dim)
			assert.Equal(t, 1, ine.Found)
			assert.Equal(t, deepwalk.DefaultSimilarNodes, ine.Wanted)
		}
	})
	t.Run("column mean", func(t *testing.T) {
		g := parse(t, "0 1 #\n1 2 #\n2 3 7\n", "")
		res := run(t, g, nil)

		require.Len(t, res.Fallbacks, 3, "empty corpus plus two nodes")
		for i := 0; i < 2; i++ {
			assert.Equal(t, 7.0, at(t, res, i, 1))
			var ine *strategy.InsufficientNeighborsError
			require.ErrorAs(t, res.Fallbacks[1+i], &ine)
			assert.Equal(t, 0, ine.Found)
		}
	})
}

// TestConfigure covers the strategy-specific keys.
func TestConfigure(t *testing.T) {
	s := deepwalk.New(dataset(t).Graph)
	params := s.Parameters()
	assert.Len(t, params, 13)
	assert.Equal(t, 1.0, params["fusion"])
	assert.Equal(t, 2.0, params["coverDepth"])
	assert.Equal(t, 0.1, params["ridge"])
	assert.Equal(t, 5.0, params["similarNodes"])

	for key, opts := range map[string]strategy.Options{
		"fusion":       {"fusion": 1.5},
		"coverDepth":   {"coverDepth": 0},
		"ridge":        {"ridge": 0},
		"similarNodes": {"similarNodes": 0},
		"windowSize":   {"windowSize": -2},
	} {
		var ce *strategy.ConfigurationError
		require.ErrorAs(t, s.Configure(opts), &ce, key)
		assert.Equal(t, key, ce.Key)
	}
	assert.Equal(t, deepwalk.DefaultConfig(), s.Config())
}

// TestLifecycle checks NotRun, SaveFeatures and Reset.
func TestLifecycle(t *testing.T) {
	g := parse(t, "0 1 10\n1 3 #\n2 # 30\n3 5 40\n", "0 1\n1 2\n2 3\n")
	s := deepwalk.New(g)
	_, err := s.ExtractResults()
	assert.ErrorIs(t, err, strategy.ErrNotRun)

	require.NoError(t, s.Configure(small))
	require.NoError(t, s.Run())
	path := filepath.Join(t.TempDir(), "adw", "features.txt")
	require.NoError(t, s.SaveFeatures(g, path))
	reloaded, err := core.Load(path, writeEdges(t, g))
	require.NoError(t, err)
	assert.Zero(t, reloaded.MissingCount())
	assert.Equal(t, g.NodeCount(), reloaded.NodeCount())

	s.Reset()
	assert.Equal(t, deepwalk.DefaultConfig(), s.Config())
	_, err = s.ExtractResults()
	assert.ErrorIs(t, err, strategy.ErrNotRun)
}

func writeEdges(t *testing.T, g *core.Graph) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "edges.txt")
	f, err := os.Create(path)
	require.NoError(t, err)
	require.NoError(t, core.WriteEdges(f, g))
	require.NoError(t, f.Close())

	return path
}

// TestRun_FailureDropsResults checks that neither a failed Run nor a new
// configuration leaves an earlier Results reachable.
func TestRun_FailureDropsResults(t *testing.T) {
	g := dataset(t).Graph
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	s := deepwalk.New(g, strategy.WithContext(ctx))
	require.NoError(t, s.Configure(small))
	require.NoError(t, s.Run())
	_, err := s.ExtractResults()
	require.NoError(t, err)

	require.NoError(t, s.Configure(strategy.Options{"fusion": 0.5}))
	_, err = s.ExtractResults()
	assert.ErrorIs(t, err, strategy.ErrNotRun)

	require.NoError(t, s.Run())
	cancel()
	assert.ErrorIs(t, s.Run(), context.Canceled)
	_, err = s.ExtractResults()
	assert.ErrorIs(t, err, strategy.ErrNotRun)
	assert.ErrorIs(t, s.SaveFeatures(g, filepath.Join(t.TempDir(), "out.txt")), strategy.ErrNotRun)
}
