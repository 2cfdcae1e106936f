// SPDX-License-Identifier: MIT

package bfs

import (
	"slices"

	"github.com/katalvlaran/attrimpute/core"
)

// Components returns the connected components of g. Each component lists its
// nodes ascending; components are ordered by their smallest node, so an
// isolated node forms a singleton in its index position.
//
// Time:   O(n + m).
// Memory: O(n) for seen flags and the shared queue.
func Components(g *core.Graph) [][]int {
	n := g.NodeCount()
	seen := make([]bool, n)
	queue := make([]int, 0, n)
	var comps [][]int
	for start := 0; start < n; start++ {
		if seen[start] {
			continue
		}
		seen[start] = true
		queue = append(queue[:0], start)
		for qi := 0; qi < len(queue); qi++ {
			for _, v := range g.Neighbors(queue[qi]) {
				if !seen[v] {
					seen[v] = true
					queue = append(queue, v)
				}
			}
		}
		comp := slices.Clone(queue)
		slices.Sort(comp)
		comps = append(comps, comp)
	}

	return comps
}
