package topo2vec_test

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
	"github.com/katalvlaran/attrimpute/embedding"
	"github.com/katalvlaran/attrimpute/strategy"
	"github.com/katalvlaran/attrimpute/topo2vec"
)

var small = strategy.Options{
	"walksPerNode": 4, "walkLength": 12, "embeddingDim": 8, "trainingPasses": 2, "randomSeed": 11,
}

func twoCycles(t *testing.T) *core.Graph {
	t.Helper()
	g, err := builder.BuildGraph([]builder.BuilderOption{builder.WithMissingRate(0.2)},
		builder.Cycle(6), builder.Cycle(5))
	require.NoError(t, err)

	return g
}

func run(t *testing.T, g *core.Graph, opts ...strategy.Option) *strategy.Results {
	t.Helper()
	s := topo2vec.New(g, opts...)
	require.NoError(t, s.Configure(small))
	require.NoError(t, s.Run())
	res, err := s.ExtractResults()
	require.NoError(t, err)

	return res
}

// TestRun_EmbeddingReplacesFeatures checks shape and the Features/Embedding pairing.
func TestRun_EmbeddingReplacesFeatures(t *testing.T) {
	g := twoCycles(t)
	res := run(t, g, strategy.WithLogger(zaptest.NewLogger(t)))

	assert.Equal(t, topo2vec.Name, res.Strategy)
	assert.Empty(t, res.Fallbacks)
	require.NotNil(t, res.Embedding)
	assert.Equal(t, g.NodeCount(), res.Features.Rows())
	assert.Equal(t, 8, res.Features.Cols())
	assert.True(t, res.Features.Equal(res.Embedding))
	assert.False(t, res.Features.HasNaNInf())
}

// TestRun_Deterministic compares runs with equal seeds and different worker counts.
func TestRun_Deterministic(t *testing.T) {
	g := twoCycles(t)
	a := run(t, g, strategy.WithWorkers(1))
	b := run(t, g, strategy.WithWorkers(4))
	assert.True(t, a.Embedding.Equal(b.Embedding))
}

// TestRun_ZeroEdgesFallsBackToZeros covers the empty corpus path.
func TestRun_ZeroEdgesFallsBackToZeros(t *testing.T) {
	g, err := core.Parse(strings.NewReader("0 1\n1 #\n2 3\n"), strings.NewReader(""))
	require.NoError(t, err)
	res := run(t, g)

	require.Len(t, res.Fallbacks, 1)
	var empty *embedding.EmptyCorpusError
	require.ErrorAs(t, res.Fallbacks[0], &empty)
	assert.Equal(t, 3*4, empty.Tokens)
	require.Equal(t, 3, res.Features.Rows())
	for i := 0; i < 3; i++ {
		assert.Equal(t, make([]float64, 8), res.Features.Row(i))
	}
}

// TestConfigure covers the shared embedding option keys.
func TestConfigure(t *testing.T) {
	s := topo2vec.New(twoCycles(t))
	assert.Equal(t, strategy.Keys(topo2vec.DefaultConfig()), []string{
		"embeddingDim", "learningRate", "negativeSamples", "randomSeed", "trainingPasses",
		"walkLength", "walksPerNode", "windowSize", "workers",
	})
	assert.Equal(t, 128.0, s.Parameters()["embeddingDim"])

	cases := map[string]strategy.Options{
		"embeddingDim": {"embeddingDim": 0},
		"walkLength":   {"walkLength": 0},
		"learningRate": {"learningRate": 0},
		"k":            {"k": 3},
		"randomSeed":   {"randomSeed": 1.5},
	}
	for key, opts := range cases {
		err := s.Configure(opts)
		var ce *strategy.ConfigurationError
		require.ErrorAs(t, err, &ce, key)
		assert.Equal(t, key, ce.Key)
		assert.Equal(t, topo2vec.Name, ce.Strategy)
	}
	assert.Equal(t, topo2vec.DefaultConfig(), s.Config())

	require.NoError(t, s.Configure(strategy.Options{"randomSeed": 99, "negativeSamples": 0}))
	assert.Equal(t, uint64(99), s.Config().RandomSeed)
	assert.Equal(t, 0, s.Config().NegativeSamples)
}

// TestLifecycle checks NotRun handling, SaveFeatures and Reset.
func TestLifecycle(t *testing.T) {
	g := twoCycles(t)
	s := topo2vec.New(g)
	_, err := s.ExtractResults()
	assert.ErrorIs(t, err, strategy.ErrNotRun)

	require.NoError(t, s.Configure(small))
	require.NoError(t, s.Run())
	path := filepath.Join(t.TempDir(), "emb.txt")
	require.NoError(t, s.SaveFeatures(g, path))
	b, err := os.ReadFile(path)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(b)), "\n")
	require.Len(t, lines, g.NodeCount())
	parts := strings.Split(lines[0], "\t")
	require.Len(t, parts, 2, "builder graphs use the tabbed layout")
	assert.Len(t, strings.Split(parts[1], ","), 8)

	s.Reset()
	assert.Equal(t, topo2vec.DefaultConfig(), s.Config())
	assert.ErrorIs(t, s.SaveFeatures(g, path), strategy.ErrNotRun)
}

// TestRun_FailureDropsResults checks that neither a failed Run nor a new
// configuration leaves an earlier Results reachable.
func TestRun_FailureDropsResults(t *testing.T) {
	g := twoCycles(t)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	s := topo2vec.New(g, strategy.WithContext(ctx))
	require.NoError(t, s.Configure(small))
	require.NoError(t, s.Run())
	_, err := s.ExtractResults()
	require.NoError(t, err)

	require.NoError(t, s.Configure(strategy.Options{"randomSeed": 3}))
	_, err = s.ExtractResults()
	assert.ErrorIs(t, err, strategy.ErrNotRun)

	require.NoError(t, s.Run())
	cancel()
	assert.ErrorIs(t, s.Run(), context.Canceled)
	_, err = s.ExtractResults()
	assert.ErrorIs(t, err, strategy.ErrNotRun)
	assert.ErrorIs(t, s.SaveFeatures(g, filepath.Join(t.TempDir(), "out.txt")), strategy.ErrNotRun)
}
