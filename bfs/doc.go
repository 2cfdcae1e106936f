// Package bfs provides breadth-first hop search over a core.Graph, returning
// unweighted hop distances, parent links and visit order.
//
// What
//
//   - Explore nodes in non-decreasing hop distance from a start index.
//   - BFS returns a Result with Order, Depth (-1 = unreached) and Parent (-1 = root
//     or unreached), all indexed by node.
//   - OnVisit observes each node in order and may abort with an error;
//     WithMaxDepth bounds the search.
//   - DoubleSweep chains two searches into a longest-shortest-path estimate.
//   - Hops and Cover are allocation-light fast paths used by the similarity index
//     and the structural term of attribute-biased walks.
//   - Components groups nodes into connected components for dataset inspection.
//
// Determinism
//
//	core.Graph stores neighbors sorted ascending and BFS enqueues them in that
//	order, so the visit sequence is fully reproducible.
//
// Complexity (V = nodes, E = edges)
//
//   - Time:   O(V + E), bounded by the depth-limited ball when MaxDepth > 0
//   - Memory: O(V)
package bfs
