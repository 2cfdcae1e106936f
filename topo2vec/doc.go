// Package topo2vec learns structural node embeddings from uniform random walks
// and returns them in place of the attribute table.
//
// The embedding replaces every feature row, known values included, so the
// output has embeddingDim columns. A graph without edges produces no
// training pairs; every node then gets the zero vector and the
// *embedding.EmptyCorpusError is recorded in Results.Fallbacks.
//
// Options are the strategy.EmbedConfig keys: walksPerNode, walkLength,
// embeddingDim, windowSize, trainingPasses, negativeSamples, randomSeed,
// learningRate, workers.
package topo2vec
