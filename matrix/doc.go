// SPDX-License-Identifier: MIT

// Package matrix provides the dense, row-major float64 container shared by every
// strategy in attrimpute: feature matrices (one row per node, one column per attribute)
// and embeddings (one row per node, one column per latent dimension).
//
// What is here:
//
//	Dense              row-major r×c matrix over a flat []float64
//	ColumnStats        masked per-column count/mean/min/max
//	Dense.Gonum()      zero-copy bridge to gonum.org/v1/gonum/mat
//
// Contracts:
//   - Public indexers (At/Set/SetRow) never panic; they return ErrOutOfRange.
//   - Row views returned by RowView share storage with the matrix. Callers that
//     partition work by row may write through them concurrently, one row per worker.
//   - Equal compares bit patterns, so it is the right tool for determinism checks.
package matrix
