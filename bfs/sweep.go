// SPDX-License-Identifier: MIT

package bfs

import (
	"context"
	"fmt"

	"github.com/katalvlaran/attrimpute/core"
)

// Span is the longest shortest path found by DoubleSweep.
type Span struct {
	From, To int
	Hops     int
	Path     []int
}

// DoubleSweep runs a BFS from start to its farthest node a, then a BFS from a
// to its farthest node b, and returns the a..b shortest path. Hops is a lower
// bound on the diameter of start's component and exact on trees. Ties between
// equally far nodes go to the first one visited.
//
// Errors: ErrGraphNil, ErrStartNotFound, or the context error on cancellation.
// Complexity: O(V + E) over the component, twice.
func DoubleSweep(ctx context.Context, g *core.Graph, start int) (Span, error) {
	a, _, err := farthest(ctx, g, start)
	if err != nil {
		return Span{}, err
	}
	b, res, err := farthest(ctx, g, a)
	if err != nil {
		return Span{}, err
	}
	path, err := res.PathTo(b)
	if err != nil {
		return Span{}, fmt.Errorf("bfs: double sweep: %w", err)
	}

	return Span{From: a, To: b, Hops: res.Depth[b], Path: path}, nil
}

// farthest returns the first visited node at maximum depth from start.
func farthest(ctx context.Context, g *core.Graph, start int) (int, *Result, error) {
	best, bestDepth := start, 0
	res, err := BFS(g, start, WithContext(ctx), WithOnVisit(func(id, depth int) error {
		if depth > bestDepth {
			best, bestDepth = id, depth
		}

		return nil
	}))
	if err != nil {
		return 0, nil, err
	}

	return best, res, nil
}
