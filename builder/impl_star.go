// SPDX-License-Identifier: MIT
// Package: attrimpute/builder
//
// impl_star.go - Star(n) constructor: hub at the first index, n-1 leaves.
//
// Contract:
//   - n ≥ 2 (else ErrTooFewVertices).
//   - Spokes emitted by increasing leaf index.

package builder

import (
	"fmt"
)

const (
	methodStar   = "Star"
	minStarNodes = 2
)

// Star returns a Constructor that appends a star on n nodes.
func Star(n int) Constructor {
	return func(d *Draft, _ builderConfig) error {
		if n < minStarNodes {
			return fmt.Errorf("%s: n=%d < min=%d: %w", methodStar, n, minStarNodes, ErrTooFewVertices)
		}
		hub := d.AddNodes(n)
		for i := 1; i < n; i++ {
			d.AddEdge(hub, hub+i)
		}

		return nil
	}
}
