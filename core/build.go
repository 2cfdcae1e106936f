// SPDX-License-Identifier: MIT
// Package: attrimpute/core
//
// build.go - shared assembly of a Graph from parsed rows and edge pairs.
//
// Stages:
//   1. Normalise edges to U < V, drop (or reject) self-loops and duplicates.
//   2. Sort edges and lay out the CSR adjacency index.
//   3. Freeze feature storage and compute masked column statistics.

package core

import (
	"math"
	"slices"
	"strconv"

	"github.com/katalvlaran/attrimpute/matrix"
)

// nodeRow is one parsed or supplied node before index assignment.
type nodeRow struct {
	key   string
	label string
	vals  []float64
	miss  []bool
	line  int
}

// edgePair is one edge by node index, with its source line for diagnostics.
type edgePair struct {
	a, b int
	line int
}

// assemble freezes rows and pairs into a Graph. rows must already be in final
// index order and share one dimension.
// Complexity: O(n*d + m log m).
func assemble(rows []nodeRow, pairs []edgePair, edgePath string, layout Layout, cfg *loadConfig) (*Graph, error) {
	n := len(rows)
	dim := len(rows[0].vals)

	g := &Graph{
		keys:    make([]string, n),
		labels:  make([]string, n),
		byKey:   make(map[string]int, n),
		dim:     dim,
		values:  make([]float64, n*dim),
		missing: make([]bool, n*dim),
		layout:  layout,
	}

	// Stage 1: nodes and features.
	for i, r := range rows {
		g.keys[i] = r.key
		g.labels[i] = r.label
		g.byKey[r.key] = i
		for d := 0; d < dim; d++ {
			if r.miss[d] {
				g.missing[i*dim+d] = true
				g.stats.MissingValues++

				continue
			}
			g.values[i*dim+d] = r.vals[d]
		}
	}

	// Stage 2: normalise and deduplicate edges.
	seen := make(map[Edge]struct{}, len(pairs))
	edges := make([]Edge, 0, len(pairs))
	for _, p := range pairs {
		if p.a == p.b {
			if cfg.strict {
				return nil, loadErrorf(edgePath, p.line, ErrInvalidEdge, "self-loop on %s", g.keys[p.a])
			}
			g.stats.SelfLoops++

			continue
		}
		e := Edge{U: min(p.a, p.b), V: max(p.a, p.b)}
		if _, dup := seen[e]; dup {
			if cfg.strict {
				return nil, loadErrorf(edgePath, p.line, ErrInvalidEdge, "duplicate edge %s-%s", g.keys[e.U], g.keys[e.V])
			}
			g.stats.DuplicateEdges++

			continue
		}
		seen[e] = struct{}{}
		edges = append(edges, e)
	}
	slices.SortFunc(edges, func(x, y Edge) int {
		if x.U != y.U {
			return x.U - y.U
		}

		return x.V - y.V
	})
	g.edges = edges

	// Stage 3: CSR adjacency.
	g.offsets = make([]int, n+1)
	for _, e := range edges {
		g.offsets[e.U+1]++
		g.offsets[e.V+1]++
	}
	for i := 0; i < n; i++ {
		g.offsets[i+1] += g.offsets[i]
	}
	g.targets = make([]int, 2*len(edges))
	fill := make([]int, n)
	copy(fill, g.offsets[:n])
	for _, e := range edges {
		g.targets[fill[e.U]] = e.V
		fill[e.U]++
		g.targets[fill[e.V]] = e.U
		fill[e.V]++
	}
	for i := 0; i < n; i++ {
		slices.Sort(g.targets[g.offsets[i]:g.offsets[i+1]])
	}

	// Stage 4: statistics.
	values, err := matrix.NewDenseFrom(n, dim, g.values)
	if err != nil {
		return nil, &LoadError{Err: err}
	}
	g.columns = matrix.MaskedColumnStats(values, func(row, col int) bool { return !g.missing[row*dim+col] })
	g.stats.Nodes = n
	g.stats.Edges = len(edges)
	g.stats.Dimension = dim

	return g, nil
}

// New builds a Graph from in-memory node and edge descriptions. Node indices
// follow slice order. A NaN feature without an explicit mask is treated as
// missing; ±Inf is rejected with ErrNonNumeric.
//
// The resulting layout is tabbed, with a label column when any node has a label.
// Complexity: O(n*d + m log m).
func New(nodes []NodeSpec, edges []EdgeSpec, opts ...LoadOption) (*Graph, error) {
	cfg := defaultLoadConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	if len(nodes) == 0 {
		return nil, &LoadError{Err: ErrEmptyInput}
	}
	dim := len(nodes[0].Features)
	if dim == 0 {
		return nil, loadErrorf("", 0, ErrDimensionMismatch, "node 0 has no features")
	}

	rows := make([]nodeRow, len(nodes))
	seen := make(map[string]struct{}, len(nodes))
	layout := Layout{Tabbed: true}
	for i, spec := range nodes {
		if len(spec.Features) != dim {
			return nil, loadErrorf("", 0, ErrDimensionMismatch, "node %d has %d features, want %d", i, len(spec.Features), dim)
		}
		if spec.Missing != nil && len(spec.Missing) != dim {
			return nil, loadErrorf("", 0, ErrDimensionMismatch, "node %d mask has %d entries, want %d", i, len(spec.Missing), dim)
		}
		key := spec.Key
		if key == "" {
			key = strconv.Itoa(i)
		}
		if _, dup := seen[key]; dup {
			return nil, loadErrorf("", 0, ErrDuplicateNode, "key %q", key)
		}
		seen[key] = struct{}{}

		r := nodeRow{key: key, label: spec.Label, vals: make([]float64, dim), miss: make([]bool, dim)}
		for d, v := range spec.Features {
			switch {
			case spec.Missing != nil && spec.Missing[d], math.IsNaN(v):
				r.miss[d] = true
			case math.IsInf(v, 0):
				return nil, loadErrorf("", 0, ErrNonNumeric, "node %d dimension %d is infinite", i, d)
			default:
				r.vals[d] = v
			}
		}
		if spec.Label != "" {
			layout.Labels = true
		}
		rows[i] = r
	}

	pairs := make([]edgePair, len(edges))
	for i, e := range edges {
		if e.From < 0 || e.From >= len(nodes) || e.To < 0 || e.To >= len(nodes) {
			return nil, loadErrorf("", 0, ErrUnknownNode, "edge %d (%d, %d)", i, e.From, e.To)
		}
		pairs[i] = edgePair{a: e.From, b: e.To}
	}

	return assemble(rows, pairs, "", layout, &cfg)
}
