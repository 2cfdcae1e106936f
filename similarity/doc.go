// Package similarity builds a composite graph-plus-feature distance index over a
// core.Graph and answers k-nearest-neighbor queries against it.
//
// Distance between distinct nodes i and j:
//
//	d(i,j) = wG*g(i,j) + wF*f(i,j)
//	g(i,j) = min(hop(i,j), C+1) / (C+1)          C = HopCutoff, unreachable counts as C+1
//	f(i,j) = sqrt(mean over shared dims of ((x_id - x_jd) / range_d)^2)
//
// Shared dims are those known on both nodes; range_d is max-min over the known
// values of dimension d (a zero range contributes a zero term). No shared
// dimension gives f = 1. Both terms lie in [0,1].
//
// Every node gets a list of all other nodes (or the MaxNeighbors closest)
// ordered by ascending distance, ties broken by lower index. Rows are computed
// in parallel, one output slot per node, so the index is identical for any
// worker count.
//
// Complexity: O(n^2 * d) time. Full lists hold n*(n-1) Neighbor values of 16
// bytes, about 0.8 GB at 7000 nodes; MaxNeighbors = m cuts that to n*m.
package similarity
