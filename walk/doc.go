// Package walk generates seeded random walks over a core.Graph, either uniform
// or biased by a per-edge weight function through Vose alias tables.
//
// Every node starts exactly WalksPerNode walks. The corpus is laid out round
// by round, node index ascending within a round. Each walk owns a PCG stream
// derived from (Seed, round, start), so the corpus does not depend on the
// number of workers or on scheduling.
//
// In Biased mode the transition probability from u to neighbor v is
// proportional to Weight(u, v). Neighbors for which Weight reports ok=false
// receive the mean weight of u's ok neighbors, or a uniform weight when none
// are ok. AttributeSimilarity is the default attribute-driven Weight.
package walk
