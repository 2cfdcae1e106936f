// SPDX-License-Identifier: MIT
// Package: attrimpute/builder
//
// impl_grid.go - Grid(rows, cols) constructor with 4-neighborhood.
//
// Contract:
//   - rows ≥ 1, cols ≥ 1, rows*cols ≥ 2.
//   - Node (r, c) has relative index r*cols + c (row-major).
//   - For each cell in row-major order: right edge, then down edge.
//
// Complexity: O(R*C) nodes + O(2*R*C) edges.

package builder

import (
	"fmt"
)

const (
	methodGrid = "Grid"
	minGridDim = 1
)

// Grid returns a Constructor that appends a rows×cols lattice.
func Grid(rows, cols int) Constructor {
	return func(d *Draft, _ builderConfig) error {
		if rows < minGridDim || cols < minGridDim || rows*cols < 2 {
			return fmt.Errorf("%s: %dx%d: %w", methodGrid, rows, cols, ErrTooFewVertices)
		}
		base := d.AddNodes(rows * cols)
		for r := 0; r < rows; r++ {
			for c := 0; c < cols; c++ {
				id := base + r*cols + c
				if c+1 < cols {
					d.AddEdge(id, id+1)
				}
				if r+1 < rows {
					d.AddEdge(id, id+cols)
				}
			}
		}

		return nil
	}
}
