// Package strategy defines the contract shared by the imputation strategies
// (knn, topo2vec, deepwalk) and the pieces they have in common.
//
// The package offers the following key components:
//
//   - Strategy:  Name, Configure, Run, ExtractResults, SaveFeatures, Reset.
//   - Options:   the string -> float64 parameter map accepted by Configure,
//     decoded into typed config structs with Decode ("opt" tags for keys,
//     "validate" tags for ranges).
//   - Results:   the feature matrix, the optional embedding and every
//     recoverable condition that forced a fallback value.
//   - Env:       the immutable run environment (graph, logger, workers,
//     context) built from functional options, with a chunked errgroup helper.
//   - Embed:     the walk -> corpus -> skip-gram pipeline and its EmbedConfig
//     option keys, shared by topo2vec and deepwalk.
//   - Errors:    ErrNotRun, ErrConfiguration, *ConfigurationError and
//     *InsufficientNeighborsError.
//
// Each strategy owns its configuration, its intermediate buffers and its last
// Results; nothing mutable is shared between strategy values, so several
// strategies may run concurrently over one *core.Graph.
package strategy
