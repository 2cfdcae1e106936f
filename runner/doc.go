// Package runner drives strategies end to end over zipped datasets.
//
// A dataset archive "<name>.zip" holds "<name>_features.txt" and
// "<name>_edges.txt". RunArchive unpacks one archive into a private temporary
// directory, runs one strategy and writes
// "<output>/<name>_<strategy>/<name>_features.txt", optionally zipped in place
// as "<name>.zip". Evaluate runs every registered strategy concurrently on
// every archive of a directory and writes "<output>/<name>_<strategy>.txt".
//
// Strategies are looked up by name in a fixed registry (knn, topo2vec,
// deepwalk). Matching is case-insensitive, and AttributedDeepwalk (or adw)
// is accepted for deepwalk.
package runner
