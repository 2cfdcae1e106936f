// SPDX-License-Identifier: MIT
// Package: attrimpute/deepwalk
//
// reconstruct.go - embedding -> attribute regression.
//
// Per dimension d:
//   - fit y = [E | 1] w on the nodes knowing d, minimising
//     |Xw - y|^2 + ridge*|w without bias|^2 (normal equations, Cholesky);
//   - predict every missing entry of d;
//   - when d has no more known nodes than embedding columns the fit is
//     underdetermined, so (as for a singular system) each missing entry takes
//     the mean of its most similar known nodes instead, then the column mean,
//     then 0.

package deepwalk

import (
	"errors"
	"math"

	"github.com/emirpasic/gods/queues/priorityqueue"
	"github.com/viterin/vek"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"

	"github.com/katalvlaran/attrimpute/core"
	"github.com/katalvlaran/attrimpute/matrix"
	"github.com/katalvlaran/attrimpute/strategy"
)

const minDistance = 1e-9

var errSingular = errors.New("deepwalk: singular normal equations")

// reconstructor is read-only once built and shared by the per-dimension workers.
type reconstructor struct {
	g       *core.Graph
	emb     *matrix.Dense
	norms   []float64
	columns []matrix.ColumnStats
	ridge   float64
	similar int
}

func newReconstructor(g *core.Graph, emb *matrix.Dense, ridge float64, similar int) *reconstructor {
	norms := make([]float64, emb.Rows())
	for i := range norms {
		row := emb.RowView(i)
		norms[i] = math.Sqrt(vek.Dot(row, row))
	}

	return &reconstructor{g: g, emb: emb, norms: norms, columns: g.ColumnStats(), ridge: ridge, similar: similar}
}

// columnFill holds the values chosen for the missing entries of one dimension.
type columnFill struct {
	missing   []int
	values    []float64
	fallbacks []error
}

func (r *reconstructor) dimension(d int) columnFill {
	var known []int
	var fill columnFill
	for i := 0; i < r.g.NodeCount(); i++ {
		if r.g.IsMissing(i, d) {
			fill.missing = append(fill.missing, i)
		} else {
			known = append(known, i)
		}
	}
	if len(fill.missing) == 0 {
		return fill
	}
	fill.values = make([]float64, len(fill.missing))

	k := r.emb.Cols()
	if len(known) > k {
		if w, err := r.fit(d, known); err == nil {
			for idx, i := range fill.missing {
				fill.values[idx] = vek.Dot(r.emb.RowView(i), w[:k]) + w[k]
			}

			return fill
		}
	}

	for idx, i := range fill.missing {
		v, found := r.similarMean(i, d, known)
		if found == 0 {
			v = 0
			if r.columns[d].Count > 0 {
				v = r.columns[d].Mean
			}
		}
		fill.values[idx] = v
		if found < r.similar {
			fill.fallbacks = append(fill.fallbacks, &strategy.InsufficientNeighborsError{
				Node: i, Dim: d, Found: found, Wanted: r.similar, Fallback: v,
			})
		}
	}

	return fill
}

// fit solves the ridge normal equations for dimension d over the known rows.
// The returned slice holds the embedding weights followed by the bias.
func (r *reconstructor) fit(d int, known []int) ([]float64, error) {
	k := r.emb.Cols()
	src := r.emb.Gonum()
	x := mat.NewDense(len(known), k+1, nil)
	y := mat.NewVecDense(len(known), nil)
	for row, i := range known {
		copy(x.RawRowView(row), src.RawRowView(i))
		x.Set(row, k, 1)
		v, _ := r.g.Value(i, d)
		y.SetVec(row, v)
	}

	var a mat.SymDense
	a.SymOuterK(1, x.T())
	for c := 0; c < k; c++ {
		a.SetSym(c, c, a.At(c, c)+r.ridge)
	}
	var b mat.VecDense
	b.MulVec(x.T(), y)

	var chol mat.Cholesky
	if ok := chol.Factorize(&a); !ok {
		return nil, errSingular
	}
	var w mat.VecDense
	if err := chol.SolveVecTo(&w, &b); err != nil {
		return nil, err
	}

	return w.RawVector().Data, nil
}

type scored struct {
	id  int
	cos float64
}

// compareScored orders by descending similarity, then ascending id.
func compareScored(a, b scored) int {
	switch {
	case a.cos > b.cos:
		return -1
	case a.cos < b.cos:
		return 1
	}

	return a.id - b.id
}

// similarMean averages dimension d over the r.similar known nodes whose
// embeddings are most cosine-similar to node's, weighting each by
// 1/max(1-cos, minDistance). It returns the number of nodes used.
func (r *reconstructor) similarMean(node, d int, known []int) (float64, int) {
	if r.norms[node] == 0 {
		return 0, 0
	}
	base := r.emb.RowView(node)
	worstFirst := priorityqueue.NewWith(func(a, b interface{}) int {
		return compareScored(b.(scored), a.(scored))
	})
	for _, j := range known {
		if j == node || r.norms[j] == 0 {
			continue
		}
		cand := scored{id: j, cos: vek.Dot(base, r.emb.RowView(j)) / (r.norms[node] * r.norms[j])}
		if worstFirst.Size() < r.similar {
			worstFirst.Enqueue(cand)

			continue
		}
		top, _ := worstFirst.Peek()
		if compareScored(cand, top.(scored)) < 0 {
			worstFirst.Dequeue()
			worstFirst.Enqueue(cand)
		}
	}
	found := worstFirst.Size()
	if found == 0 {
		return 0, 0
	}
	vals := make([]float64, 0, found)
	weights := make([]float64, 0, found)
	for !worstFirst.Empty() {
		top, _ := worstFirst.Dequeue()
		s := top.(scored)
		v, _ := r.g.Value(s.id, d)
		vals = append(vals, v)
		weights = append(weights, 1/math.Max(1-s.cos, minDistance))
	}

	return stat.Mean(vals, weights), found
}
