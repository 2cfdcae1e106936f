package walk_test

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/attrimpute/builder"
	"github.com/katalvlaran/attrimpute/core"
	"github.com/katalvlaran/attrimpute/walk"
)

func fixture(t *testing.T) *core.Graph {
	t.Helper()
	ds, err := builder.BuildDataset([]builder.BuilderOption{
		builder.WithSeed(11), builder.WithDimension(3),
		builder.WithFeatureFn(builder.UniformFeatures(-1, 1)), builder.WithMissingRate(0.3),
	}, builder.RandomSparse(50, 0.08), builder.Isolated(2))
	require.NoError(t, err)

	return ds.Graph
}

// TestCorpus_ShapeAndEdges verifies corpus ordering and that every step follows an edge.
func TestCorpus_ShapeAndEdges(t *testing.T) {
	g := fixture(t)
	for _, mode := range []walk.Mode{walk.Uniform, walk.Biased} {
		t.Run(mode.String(), func(t *testing.T) {
			cfg := walk.Config{WalksPerNode: 3, WalkLength: 12, Seed: 7, Mode: mode, Weight: walk.AttributeSimilarity(g)}
			s, err := walk.NewSampler(context.Background(), g, cfg)
			require.NoError(t, err)
			c, err := s.Corpus(context.Background())
			require.NoError(t, err)

			n := g.NodeCount()
			require.Equal(t, 3*n, c.Len())
			for k := 0; k < c.Len(); k++ {
				w := c.Walk(k)
				require.Equal(t, k%n, w[0], "round-major order")
				if g.Degree(w[0]) == 0 {
					assert.Len(t, w, 1)

					continue
				}
				assert.Len(t, w, 12)
				for i := 1; i < len(w); i++ {
					assert.True(t, g.HasEdge(w[i-1], w[i]))
				}
			}
		})
	}
}

// TestCorpus_WorkerIndependent checks identical corpora for any worker count.
func TestCorpus_WorkerIndependent(t *testing.T) {
	g := fixture(t)
	build := func(workers int) *walk.Corpus {
		cfg := walk.Config{WalksPerNode: 4, WalkLength: 20, Seed: 99, Workers: workers, Mode: walk.Biased, Weight: walk.AttributeSimilarity(g)}
		s, err := walk.NewSampler(context.Background(), g, cfg)
		require.NoError(t, err)
		c, err := s.Corpus(context.Background())
		require.NoError(t, err)

		return c
	}
	a, b := build(1), build(6)
	require.Equal(t, a.Len(), b.Len())
	for i := 0; i < a.Len(); i++ {
		assert.Equal(t, a.Walk(i), b.Walk(i))
	}
	assert.Equal(t, a.Tokens(), b.Tokens())
}

// TestSampler_SeedChangesWalks guards against a constant stream.
func TestSampler_SeedChangesWalks(t *testing.T) {
	g := fixture(t)
	s1, _ := walk.NewSampler(context.Background(), g, walk.Config{WalksPerNode: 1, WalkLength: 40, Seed: 1})
	s2, _ := walk.NewSampler(context.Background(), g, walk.Config{WalksPerNode: 1, WalkLength: 40, Seed: 2})
	differ := false
	for v := 0; v < 50 && !differ; v++ {
		if g.Degree(v) > 1 {
			differ = !assert.ObjectsAreEqual(s1.Walk(v, 0), s2.Walk(v, 0))
		}
	}
	assert.True(t, differ)
	assert.Equal(t, s1.Walk(3, 5), s1.Walk(3, 5))
}

// TestSampler_BiasedPrefersHeavyEdge uses a star whose hub strongly prefers one leaf.
func TestSampler_BiasedPrefersHeavyEdge(t *testing.T) {
	g, err := builder.BuildGraph(nil, builder.Star(4))
	require.NoError(t, err)
	weight := func(from, to int) (float64, bool) {
		if from == 0 && to == 3 {
			return 98, true
		}

		return 1, true
	}
	s, err := walk.NewSampler(context.Background(), g, walk.Config{WalksPerNode: 400, WalkLength: 2, Seed: 3, Mode: walk.Biased, Weight: weight})
	require.NoError(t, err)
	c, err := s.Corpus(context.Background())
	require.NoError(t, err)

	hits, total := 0, 0
	for i := 0; i < c.Len(); i++ {
		w := c.Walk(i)
		if w[0] == 0 {
			total++
			if w[1] == 3 {
				hits++
			}
		}
	}
	assert.Equal(t, 400, total)
	assert.Greater(t, hits, 360)
}

// TestNewSampler_InvalidConfig rejects bad parameters.
func TestNewSampler_InvalidConfig(t *testing.T) {
	g := fixture(t)
	for _, cfg := range []walk.Config{
		{WalksPerNode: 0, WalkLength: 5},
		{WalksPerNode: 1, WalkLength: 0},
		{WalksPerNode: 1, WalkLength: 5, Mode: walk.Biased},
		{WalksPerNode: 1, WalkLength: 5, Mode: walk.Mode(9)},
	} {
		_, err := walk.NewSampler(context.Background(), g, cfg)
		assert.ErrorIs(t, err, walk.ErrInvalidConfig)
	}
}

// TestCorpus_ZeroEdges yields only length-1 walks.
func TestCorpus_ZeroEdges(t *testing.T) {
	g, err := core.Parse(strings.NewReader("1 1\n2 2\n3 3\n"), strings.NewReader(""))
	require.NoError(t, err)
	s, err := walk.NewSampler(context.Background(), g, walk.DefaultConfig())
	require.NoError(t, err)
	c, err := s.Corpus(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 30, c.Len())
	assert.Equal(t, 30, c.Tokens())
	assert.Equal(t, []int{10, 10, 10}, c.Counts())
}

// TestAttributeSimilarity maps cosine into [MinWeight, 1] and reports undefined pairs.
func TestAttributeSimilarity(t *testing.T) {
	g, err := core.Parse(strings.NewReader("0 1 0\n1 2 0\n2 -1 0\n3 # 5\n4 0 0\n"), strings.NewReader("0 1\n"))
	require.NoError(t, err)
	w := walk.AttributeSimilarity(g)

	v, ok := w(0, 1)
	assert.True(t, ok)
	assert.InDelta(t, 1, v, 1e-12)
	v, ok = w(0, 2)
	assert.True(t, ok)
	assert.Equal(t, walk.MinWeight, v)
	v, ok = w(0, 3) // shared dim 1 only, node 0 has 0 there
	assert.False(t, ok)
	assert.Zero(t, v)
	_, ok = w(0, 4)
	assert.False(t, ok)
}
