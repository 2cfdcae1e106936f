// SPDX-License-Identifier: MIT

// Package core defines the immutable attributed Graph shared by every imputation
// and embedding strategy, together with the text loaders and writers for the node
// feature file and the edge list.
//
// What is a Graph here?
//
//	Nodes carry a fixed-length float64 feature vector plus a per-dimension missing
//	mask. Edges are undirected, deduplicated, and stored once with U < V. The
//	adjacency index is a CSR layout (offsets + sorted targets) built once at
//	construction time.
//
// Node identity:
//
//	Source ids are arbitrary integers. They are remapped to dense, zero-based
//	indices in ascending id order; every query takes and returns indices. Key(id)
//	recovers the original token.
//
// Concurrency:
//
//	A Graph is never mutated after Load/Parse/New returns, so any number of
//	goroutines and strategies may read it concurrently without locking.
//
// File layouts (auto-detected, reproduced by WriteFeatures):
//
//	Tabbed:  <id>\t<v1>,<v2>,...,<vd>[\t<label>]   optional "node_id\tfeature\tlabel" header
//	Plain:   <id> <v1> <v2> ... <vd>
//
// Missing values are written as "#" (or "'#'", "nan") in the source file.
package core
