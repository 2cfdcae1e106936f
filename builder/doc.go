// Package builder produces deterministic synthetic attributed graphs for tests,
// benchmarks, examples and the `attrimpute generate` command.
//
// The package offers the following key components:
//
//   - Composition:
//     – Constructor:   a function that appends nodes and edges to a Draft.
//     – BuildGraph:    resolves options, runs constructors in order, freezes a core.Graph.
//     – BuildDataset:  same, and also returns the ground-truth feature matrix.
//   - Topologies (each appends a disjoint component):
//     – Path, Cycle, Star, Grid, Complete, RandomSparse.
//   - Features (FeatureFn implementations, selected with WithFeatureFn):
//     – IndexFeatures:   deterministic i*(d+1) ramp.
//     – UniformFeatures: ~U[lo,hi).
//     – NormalFeatures:  ~N(mean,stddev).
//     WithSmoothing(r) averages each node with its neighbors r times, producing
//     the homophily that graph-based imputation relies on.
//   - Corruption:
//     – WithMissingRate(p): MCAR, each (node, dimension) hidden independently with
//       probability p.
//   - Persistence:
//     – WriteDataset: "<name>_features.txt" and "<name>_edges.txt" in a directory,
//       the pair the archive pipeline expects inside "<name>.zip".
//
// Guarantees:
//
//   - Determinism: equal options, seed and constructor order yield identical graphs.
//   - Fast-fail on invalid option parameters via panics in option constructors.
//   - Constructors return sentinel errors wrapped with the method name; they never panic.
package builder
