// SPDX-License-Identifier: MIT

package core

import (
	"slices"

	"github.com/katalvlaran/attrimpute/matrix"
)

// NodeCount returns the number of nodes.
func (g *Graph) NodeCount() int { return len(g.keys) }

// EdgeCount returns the number of distinct undirected edges.
func (g *Graph) EdgeCount() int { return len(g.edges) }

// FeatureDimension returns the length of every node's feature vector.
func (g *Graph) FeatureDimension() int { return g.dim }

func (g *Graph) valid(id int) bool { return id >= 0 && id < len(g.keys) }

// Neighbors returns the sorted neighbor indices of id as a read-only view into
// the adjacency index, or nil when id is out of range.
// Complexity: O(1).
func (g *Graph) Neighbors(id int) []int {
	if !g.valid(id) {
		return nil
	}
	lo, hi := g.offsets[id], g.offsets[id+1]

	return g.targets[lo:hi:hi]
}

// Degree returns the number of neighbors of id, or 0 when out of range.
func (g *Graph) Degree(id int) int {
	if !g.valid(id) {
		return 0
	}

	return g.offsets[id+1] - g.offsets[id]
}

// HasEdge reports whether u and v are adjacent.
// Complexity: O(log deg(u)).
func (g *Graph) HasEdge(u, v int) bool {
	_, found := slices.BinarySearch(g.Neighbors(u), v)

	return found
}

// Value returns the feature at (id, dim) and whether it is known.
func (g *Graph) Value(id, dim int) (float64, bool) {
	if !g.valid(id) || dim < 0 || dim >= g.dim {
		return 0, false
	}
	k := id*g.dim + dim
	if g.missing[k] {
		return 0, false
	}

	return g.values[k], true
}

// IsMissing reports whether (id, dim) is unknown. Out-of-range positions are
// reported as missing.
func (g *Graph) IsMissing(id, dim int) bool {
	_, ok := g.Value(id, dim)

	return !ok
}

// FeatureVector returns a copy of id's features; missing positions hold 0.
// Returns nil when id is out of range.
func (g *Graph) FeatureVector(id int) []float64 {
	if !g.valid(id) {
		return nil
	}

	return slices.Clone(g.values[id*g.dim : (id+1)*g.dim])
}

// KnownMask returns a copy of id's mask, true where the value is known.
func (g *Graph) KnownMask(id int) []bool {
	if !g.valid(id) {
		return nil
	}
	out := make([]bool, g.dim)
	for d := range out {
		out[d] = !g.missing[id*g.dim+d]
	}

	return out
}

// Features returns a fresh n×d matrix of the stored values (missing = 0).
// Complexity: O(n*d).
func (g *Graph) Features() *matrix.Dense {
	m, _ := matrix.NewDenseFrom(len(g.keys), g.dim, g.values)

	return m
}

// ColumnStats returns statistics over the known values of each dimension.
func (g *Graph) ColumnStats() []matrix.ColumnStats { return slices.Clone(g.columns) }

// Node returns a snapshot of node id.
func (g *Graph) Node(id int) (Node, bool) {
	if !g.valid(id) {
		return Node{}, false
	}

	return Node{
		ID:       id,
		Key:      g.keys[id],
		Label:    g.labels[id],
		Features: g.FeatureVector(id),
		Known:    g.KnownMask(id),
	}, true
}

// Key returns the original id token of node id, or "" when out of range.
func (g *Graph) Key(id int) string {
	if !g.valid(id) {
		return ""
	}

	return g.keys[id]
}

// Label returns the label token of node id, or "".
func (g *Graph) Label(id int) string {
	if !g.valid(id) {
		return ""
	}

	return g.labels[id]
}

// Lookup maps an original id token to its dense index.
func (g *Graph) Lookup(key string) (int, bool) {
	id, ok := g.byKey[key]

	return id, ok
}

// Edges returns a copy of the edge list sorted by (U, V).
func (g *Graph) Edges() []Edge { return slices.Clone(g.edges) }

// Stats returns construction statistics.
func (g *Graph) Stats() Stats { return g.stats }

// Layout returns the feature file layout detected at load.
func (g *Graph) Layout() Layout { return g.layout }

// MissingCount returns the number of unknown (node, dimension) positions.
func (g *Graph) MissingCount() int { return g.stats.MissingValues }
