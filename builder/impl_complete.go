// SPDX-License-Identifier: MIT
// Package: attrimpute/builder
//
// impl_complete.go - Complete(n) constructor: K_n over unordered pairs i<j.

package builder

import (
	"fmt"
)

const (
	methodComplete   = "Complete"
	minCompleteNodes = 1
)

// Complete returns a Constructor that appends the complete graph K_n.
// Complexity: O(n^2) edges.
func Complete(n int) Constructor {
	return func(d *Draft, _ builderConfig) error {
		if n < minCompleteNodes {
			return fmt.Errorf("%s: n=%d < min=%d: %w", methodComplete, n, minCompleteNodes, ErrTooFewVertices)
		}
		base := d.AddNodes(n)
		for i := 0; i < n; i++ {
			for j := i + 1; j < n; j++ {
				d.AddEdge(base+i, base+j)
			}
		}

		return nil
	}
}

// Isolated returns a Constructor that appends n nodes without edges.
func Isolated(n int) Constructor {
	return func(d *Draft, _ builderConfig) error {
		if n < 1 {
			return fmt.Errorf("Isolated: n=%d < min=1: %w", n, ErrTooFewVertices)
		}
		d.AddNodes(n)

		return nil
	}
}
