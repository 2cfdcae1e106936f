// SPDX-License-Identifier: MIT

package deepwalk

import (
	"math"

	"github.com/katalvlaran/attrimpute/bfs"
	"github.com/katalvlaran/attrimpute/core"
	"github.com/katalvlaran/attrimpute/walk"
)

// FusionWeight returns the transition weight a*attr + (1-a)*overlap over g.
//
// With a == 1 it is walk.AttributeSimilarity and keeps its ok=false report
// for pairs without shared known dimensions. With a < 1 such pairs fall back
// to the structural term alone, so every weight is defined.
func FusionWeight(g *core.Graph, a float64, coverDepth int) walk.WeightFunc {
	attr := walk.AttributeSimilarity(g)
	if a >= 1 {
		return attr
	}
	covers := Covers(g, coverDepth)

	return func(from, to int) (float64, bool) {
		ov := Overlap(covers[from], covers[to])
		w, ok := attr(from, to)
		if !ok {
			return math.Max(ov, walk.MinWeight), true
		}

		return math.Max(a*w+(1-a)*ov, walk.MinWeight), true
	}
}

// Covers returns the sorted depth-hop cover of every node.
// Complexity: O(n * cover size).
func Covers(g *core.Graph, depth int) [][]int {
	s := bfs.NewSearcher(g)
	out := make([][]int, g.NodeCount())
	for i := range out {
		out[i] = s.Cover(i, depth)
	}

	return out
}

// Overlap is the overlap coefficient of two sorted sets, 0 when either is empty.
func Overlap(a, b []int) float64 {
	if len(a) == 0 || len(b) == 0 {
		return 0
	}
	common := 0
	for i, j := 0, 0; i < len(a) && j < len(b); {
		switch {
		case a[i] < b[j]:
			i++
		case a[i] > b[j]:
			j++
		default:
			common++
			i++
			j++
		}
	}

	return float64(common) / float64(min(len(a), len(b)))
}
