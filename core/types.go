// SPDX-License-Identifier: MIT

package core

import (
	"github.com/katalvlaran/attrimpute/matrix"
)

// Edge is an undirected connection between two node indices, normalised so U < V.
type Edge struct {
	U, V int
}

// EdgeSpec names an edge for New by slice position of its endpoints in the
// accompanying []NodeSpec. Order of the pair does not matter.
type EdgeSpec struct {
	From, To int
}

// NodeSpec describes one node for in-memory construction with New.
//
// Features must have the same length on every node. Missing, when non-nil,
// must have the same length as Features; true marks the position as unknown
// and the stored value is discarded.
type NodeSpec struct {
	// Key is the external id written back on save. Empty means the decimal
	// slice index.
	Key string
	// Label is an optional trailing token reproduced in the tabbed layout.
	Label string
	// Features holds the attribute vector.
	Features []float64
	// Missing is the optional unknown-position mask.
	Missing []bool
}

// Node is a read-only snapshot of one node returned by Graph.Node.
type Node struct {
	ID       int
	Key      string
	Label    string
	Features []float64
	Known    []bool
}

// Stats summarises what construction kept and discarded.
type Stats struct {
	Nodes          int
	Edges          int
	Dimension      int
	MissingValues  int
	SelfLoops      int // dropped self-loop lines
	DuplicateEdges int // dropped duplicate or reversed-duplicate lines
}

// Layout records the textual shape of the feature file so WriteFeatures can
// reproduce it.
type Layout struct {
	// Tabbed is true for "<id>\t<v1>,<v2>,...[\t<label>]" rows; false for
	// whitespace-separated "<id> <v1> <v2> ...".
	Tabbed bool
	// Header is the verbatim first line when the source carried one.
	Header string
	// Labels is true when rows carry a trailing label column.
	Labels bool
}

// Graph is an immutable attributed graph over dense node indices 0..n-1.
//
// Adjacency is stored in CSR form: the neighbors of node i are
// targets[offsets[i]:offsets[i+1]], sorted ascending. Every undirected edge
// appears in both endpoint lists.
type Graph struct {
	keys   []string
	labels []string
	byKey  map[string]int

	dim     int
	values  []float64 // n*dim row-major, missing positions hold 0
	missing []bool    // n*dim row-major

	offsets []int
	targets []int
	edges   []Edge

	columns []matrix.ColumnStats
	stats   Stats
	layout  Layout
}
