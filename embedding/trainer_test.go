package embedding_test

import (
	"context"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/attrimpute/builder"
	"github.com/katalvlaran/attrimpute/embedding"
	"github.com/katalvlaran/attrimpute/walk"
)

func twoCliqueCorpus(t *testing.T) *walk.Corpus {
	t.Helper()
	g, err := builder.BuildGraph(nil, builder.Complete(6), builder.Complete(6))
	require.NoError(t, err)
	s, err := walk.NewSampler(context.Background(), g, walk.Config{WalksPerNode: 10, WalkLength: 20, Seed: 4})
	require.NoError(t, err)
	c, err := s.Corpus(context.Background())
	require.NoError(t, err)

	return c
}

func smallConfig(seed uint64) embedding.Config {
	cfg := embedding.DefaultConfig()
	cfg.Dimensions = 16
	cfg.Epochs = 3
	cfg.Seed = seed

	return cfg
}

func cosine(a, b []float64) float64 {
	var dot, na, nb float64
	for i := range a {
		dot += a[i] * b[i]
		na += a[i] * a[i]
		nb += b[i] * b[i]
	}

	return dot / math.Sqrt(na*nb)
}

// TestTrain_Deterministic verifies bit-identical output for equal inputs.
func TestTrain_Deterministic(t *testing.T) {
	c := twoCliqueCorpus(t)
	tr, err := embedding.NewTrainer(smallConfig(1))
	require.NoError(t, err)

	a, err := tr.Train(context.Background(), c)
	require.NoError(t, err)
	b, err := tr.Train(context.Background(), c)
	require.NoError(t, err)
	assert.True(t, a.Equal(b))
	assert.Equal(t, 12, a.Rows())
	assert.Equal(t, 16, a.Cols())
	assert.False(t, a.HasNaNInf())

	other, err := embedding.NewTrainer(smallConfig(2))
	require.NoError(t, err)
	d, err := other.Train(context.Background(), c)
	require.NoError(t, err)
	assert.False(t, a.Equal(d))
}

// TestTrain_SeparatesComponents checks that co-occurring nodes end up closer.
func TestTrain_SeparatesComponents(t *testing.T) {
	c := twoCliqueCorpus(t)
	tr, err := embedding.NewTrainer(smallConfig(3))
	require.NoError(t, err)
	emb, err := tr.Train(context.Background(), c)
	require.NoError(t, err)

	var intra, inter float64
	var ni, nx int
	for i := 0; i < 12; i++ {
		for j := i + 1; j < 12; j++ {
			cs := cosine(emb.Row(i), emb.Row(j))
			if i/6 == j/6 {
				intra += cs
				ni++
			} else {
				inter += cs
				nx++
			}
		}
	}
	assert.Greater(t, intra/float64(ni), inter/float64(nx))
}

// TestTrain_EmptyCorpus reports the typed error for walks without pairs.
func TestTrain_EmptyCorpus(t *testing.T) {
	c := walk.NewCorpus(3, [][]int{{0}, {1}, {2}})
	tr, err := embedding.NewTrainer(smallConfig(1))
	require.NoError(t, err)
	_, err = tr.Train(context.Background(), c)

	var empty *embedding.EmptyCorpusError
	require.ErrorAs(t, err, &empty)
	assert.Equal(t, 3, empty.Walks)
	assert.Equal(t, 3, empty.Tokens)
}

// TestTrain_OnEpochAndDecay verifies the progress hook and the learning-rate floor.
func TestTrain_OnEpochAndDecay(t *testing.T) {
	c := walk.NewCorpus(2, [][]int{{0, 1}, {1, 0}})
	cfg := smallConfig(1)
	var epochs []int
	var rates []float64
	cfg.OnEpoch = func(e int, lr float64) {
		epochs = append(epochs, e)
		rates = append(rates, lr)
	}
	tr, err := embedding.NewTrainer(cfg)
	require.NoError(t, err)
	_, err = tr.Train(context.Background(), c)
	require.NoError(t, err)

	assert.Equal(t, []int{1, 2, 3}, epochs)
	for i := 1; i < len(rates); i++ {
		assert.Less(t, rates[i], rates[i-1])
	}
	assert.GreaterOrEqual(t, rates[2], cfg.LearningRate*1e-4)
}

// TestTrain_Cancelled stops between walks.
func TestTrain_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	tr, _ := embedding.NewTrainer(smallConfig(1))
	_, err := tr.Train(ctx, twoCliqueCorpus(t))
	assert.ErrorIs(t, err, context.Canceled)
}

// TestNewTrainer_InvalidConfig rejects bad parameters.
func TestNewTrainer_InvalidConfig(t *testing.T) {
	mutate := []func(*embedding.Config){
		func(c *embedding.Config) { c.Dimensions = 0 },
		func(c *embedding.Config) { c.Window = 0 },
		func(c *embedding.Config) { c.Epochs = 0 },
		func(c *embedding.Config) { c.Negative = -1 },
		func(c *embedding.Config) { c.LearningRate = 0 },
		func(c *embedding.Config) { c.LearningRate = math.NaN() },
	}
	for _, m := range mutate {
		cfg := embedding.DefaultConfig()
		m(&cfg)
		_, err := embedding.NewTrainer(cfg)
		assert.ErrorIs(t, err, embedding.ErrInvalidConfig)
	}
}

