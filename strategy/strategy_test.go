package strategy_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/katalvlaran/attrimpute/core"
	"github.com/katalvlaran/attrimpute/matrix"
	"github.com/katalvlaran/attrimpute/strategy"
)

func smallGraph(t *testing.T) *core.Graph {
	t.Helper()
	g, err := core.Parse(strings.NewReader("0 1 #\n1 3 4\n"), strings.NewReader("0 1\n"))
	require.NoError(t, err)

	return g
}

// TestExtract_NotRun checks the nil-results guard on both helpers.
func TestExtract_NotRun(t *testing.T) {
	_, err := strategy.Extract(nil)
	assert.ErrorIs(t, err, strategy.ErrNotRun)
	assert.ErrorIs(t, strategy.Save(nil, smallGraph(t), filepath.Join(t.TempDir(), "x.txt")), strategy.ErrNotRun)
}

// TestResults_CloneIsDeep verifies that extracted results are independent copies.
func TestResults_CloneIsDeep(t *testing.T) {
	feat, err := matrix.NewDenseFrom(2, 2, []float64{1, 2, 3, 4})
	require.NoError(t, err)
	orig := &strategy.Results{
		Strategy:  "knn",
		Features:  feat,
		Fallbacks: []error{&strategy.InsufficientNeighborsError{Node: 0, Dim: 1, Wanted: 3, Fallback: 4}},
	}
	cp, err := strategy.Extract(orig)
	require.NoError(t, err)
	require.NoError(t, cp.Features.Set(0, 0, 99))
	cp.Fallbacks[0] = nil

	v, _ := orig.Features.At(0, 0)
	assert.Equal(t, 1.0, v)
	assert.NotNil(t, orig.Fallbacks[0])
	assert.Nil(t, cp.Embedding)
}

// TestSave_WritesLayout checks SaveFeatures output against the graph layout.
func TestSave_WritesLayout(t *testing.T) {
	g := smallGraph(t)
	feat, err := matrix.NewDenseFrom(2, 2, []float64{1, 4, 3, 4})
	require.NoError(t, err)
	path := filepath.Join(t.TempDir(), "out", "res.txt")

	require.NoError(t, strategy.Save(&strategy.Results{Strategy: "knn", Features: feat}, g, path))
	b, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "0 1 4\n1 3 4\n", string(b))

	bad, err := matrix.NewDense(3, 2)
	require.NoError(t, err)
	err = strategy.Save(&strategy.Results{Strategy: "knn", Features: bad}, g, path)
	assert.ErrorIs(t, err, core.ErrDimensionMismatch)
}

// TestNewEnv_Options checks defaults and option panics.
func TestNewEnv_Options(t *testing.T) {
	g := smallGraph(t)
	env := strategy.NewEnv(g)
	assert.NotNil(t, env.Logger)
	assert.Equal(t, 0, env.Workers)
	assert.Positive(t, env.ResolveWorkers(0))
	assert.Equal(t, 3, env.ResolveWorkers(3))

	env = strategy.NewEnv(g, strategy.WithWorkers(2), strategy.WithLogger(zaptest.NewLogger(t)))
	assert.Equal(t, 2, env.ResolveWorkers(0))
	assert.Equal(t, 5, env.ResolveWorkers(5))

	assert.Panics(t, func() { strategy.NewEnv(nil) })
	assert.Panics(t, func() { strategy.WithWorkers(-1) })
	assert.Panics(t, func() { strategy.WithLogger(nil) })
	assert.Panics(t, func() { strategy.WithContext(nil) }) //nolint:staticcheck
}

// TestEnv_Parallel verifies slot ownership, error propagation and cancellation.
func TestEnv_Parallel(t *testing.T) {
	env := strategy.NewEnv(smallGraph(t))
	out := make([]int, 37)
	require.NoError(t, env.Parallel(len(out), 4, func(i int) error {
		out[i] = i * i
		return nil
	}))
	for i, v := range out {
		assert.Equal(t, i*i, v)
	}

	boom := errors.New("boom")
	err := env.Parallel(10, 3, func(i int) error {
		if i == 7 {
			return boom
		}
		return nil
	})
	assert.ErrorIs(t, err, boom)
	assert.NoError(t, env.Parallel(0, 3, nil))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	env = strategy.NewEnv(smallGraph(t), strategy.WithContext(ctx))
	assert.ErrorIs(t, env.Parallel(5, 1, func(int) error { return nil }), context.Canceled)
}
