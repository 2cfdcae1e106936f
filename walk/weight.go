package walk

import (
	"math"

	"github.com/viterin/vek"

	"github.com/katalvlaran/attrimpute/core"
)

// MinWeight is the floor applied by AttributeSimilarity so that every edge
// stays traversable.
const MinWeight = 1e-6

const maxFinite = math.MaxFloat64

// WeightFunc scores the transition from -> to. ok=false means the score is
// undefined (for example no overlapping known dimensions).
type WeightFunc func(from, to int) (w float64, ok bool)

// AttributeSimilarity returns a WeightFunc mapping the cosine similarity of the
// two nodes' shared known dimensions to [MinWeight, 1] via (1+cos)/2. Zero
// shared dimensions, or a zero vector on either side, report ok=false.
func AttributeSimilarity(g *core.Graph) WeightFunc {
	return func(from, to int) (float64, bool) {
		cos, ok := SharedCosine(g, from, to)
		if !ok {
			return 0, false
		}

		return math.Max((1+cos)/2, MinWeight), true
	}
}

// SharedCosine is the cosine similarity of nodes a and b restricted to the
// dimensions known on both.
func SharedCosine(g *core.Graph, a, b int) (float64, bool) {
	dim := g.FeatureDimension()
	xa := make([]float64, 0, dim)
	xb := make([]float64, 0, dim)
	for d := 0; d < dim; d++ {
		va, okA := g.Value(a, d)
		vb, okB := g.Value(b, d)
		if okA && okB {
			xa = append(xa, va)
			xb = append(xb, vb)
		}
	}
	if len(xa) == 0 {
		return 0, false
	}
	na := math.Sqrt(vek.Dot(xa, xa))
	nb := math.Sqrt(vek.Dot(xb, xb))
	if na == 0 || nb == 0 {
		return 0, false
	}
	cos := vek.Dot(xa, xb) / (na * nb)

	return math.Max(-1, math.Min(1, cos)), true
}

// resolveWeights evaluates fn on every neighbor of u and applies the
// ok=false policy. Negative or NaN scores count as 0.
func resolveWeights(fn WeightFunc, u int, nbrs []int) []float64 {
	w := make([]float64, len(nbrs))
	known := make([]bool, len(nbrs))
	var sum float64
	cnt := 0
	for i, v := range nbrs {
		x, ok := fn(u, v)
		if !ok {
			continue
		}
		if !(x > 0) || math.IsInf(x, 0) {
			x = 0
		}
		w[i], known[i] = x, true
		sum += x
		cnt++
	}
	if cnt == 0 {
		for i := range w {
			w[i] = 1
		}

		return w
	}
	mean := sum / float64(cnt)
	for i := range w {
		if !known[i] {
			w[i] = mean
		}
	}

	return w
}
