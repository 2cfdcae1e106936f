// SPDX-License-Identifier: MIT
// Package: attrimpute/builder
//
// impl_path.go - Path(n) and Cycle(n) constructors.
//
// Contract:
//   - Path: n ≥ 2; edges (i-1)-i for i=1..n-1 in increasing order.
//   - Cycle: n ≥ 3; Path edges plus the closing edge (n-1)-0.
//   - Indices are relative to the draft length at call time, so several
//     constructors compose into disjoint components.
//
// Complexity: O(n) nodes + O(n) edges.

package builder

import (
	"fmt"
)

const (
	methodPath    = "Path"
	methodCycle   = "Cycle"
	minPathNodes  = 2
	minCycleNodes = 3
)

// Path returns a Constructor that appends a simple path P_n.
func Path(n int) Constructor {
	return func(d *Draft, _ builderConfig) error {
		if n < minPathNodes {
			return fmt.Errorf("%s: n=%d < min=%d: %w", methodPath, n, minPathNodes, ErrTooFewVertices)
		}
		base := d.AddNodes(n)
		for i := 1; i < n; i++ {
			d.AddEdge(base+i-1, base+i)
		}

		return nil
	}
}

// Cycle returns a Constructor that appends a simple cycle C_n.
func Cycle(n int) Constructor {
	return func(d *Draft, _ builderConfig) error {
		if n < minCycleNodes {
			return fmt.Errorf("%s: n=%d < min=%d: %w", methodCycle, n, minCycleNodes, ErrTooFewVertices)
		}
		base := d.AddNodes(n)
		for i := 1; i < n; i++ {
			d.AddEdge(base+i-1, base+i)
		}
		d.AddEdge(base+n-1, base)

		return nil
	}
}
