// Package knn imputes each missing value as the inverse-distance weighted
// mean of the k nearest nodes that know it, under the composite hop and
// feature distance of package similarity.
//
// Options (strategy.Options keys):
//
//	k              neighbors averaged per value           default 15, >= 1
//	hopCutoff      hop distance still told apart          default 3,  >= 1
//	graphWeight    weight of the hop term                 default 0.5
//	featureWeight  weight of the feature term             default 0.5
//	candidates     neighbors kept per node, 0 keeps all   default 0
//	workers        parallel index rows, 0 inherits        default 0
//
// When no candidate knows a value the column mean of its dimension is used,
// and 0 when the column has no known value at all; both are recorded as
// *strategy.InsufficientNeighborsError. KNN draws no random numbers.
//
// Memory: with candidates 0 the index keeps n*(n-1) neighbor entries of 16
// bytes each, about 0.8 GB for 7000 nodes. Set candidates on large graphs; a
// value of a few times k usually still leaves k known donors per dimension,
// and values left short fall back to the column mean as above.
package knn
