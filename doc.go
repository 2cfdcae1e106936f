// Package attrimpute fills in missing node attributes on attributed graphs
// and learns node embeddings from their structure.
//
// What is attrimpute?
//
//	A library and a command that bring together:
//		• Immutable attributed graphs: CSR adjacency + per-value missing mask
//		• Text loaders/writers that reproduce the input layout
//		• Hop search with cutoffs and covers
//		• Composite hop + feature similarity with k-nearest queries
//		• Uniform and attribute-biased (alias table) random walks
//		• Skip-gram with negative sampling over walk corpora
//		• Three interchangeable strategies: KNN, Topo2Vec, attributed DeepWalk
//		• Seeded synthetic datasets with MCAR corruption
//		• A zip-archive pipeline and a multi-strategy evaluation driver
//
// Packages, leaves first:
//
//	matrix/     - row-major Dense, masked column statistics, gonum bridge
//	core/       - Graph, loaders (tabbed and plain layouts), writers, errors
//	bfs/        - hop distances, depth cutoff, covers, hookable BFS
//	similarity/ - composite distance index and k-nearest queries
//	walk/       - seeded walk sampler, alias tables, attribute weights
//	embedding/  - skip-gram trainer
//	strategy/   - Strategy interface, Options decoding, Results, error taxonomy
//	knn/, topo2vec/, deepwalk/ - the strategies
//	builder/    - synthetic topologies, features, smoothing, corruption
//	runner/     - strategy registry, archive pipeline, evaluation
//	config/     - YAML + .env + environment run configuration
//	cmd/attrimpute - the command line
//
// Quick example:
//
//	g, err := core.Load("cora_features.txt", "cora_edges.txt")
//	s := knn.New(g, strategy.WithLogger(logger))
//	err = s.Configure(strategy.Options{"k": 10})
//	err = s.Run()
//	err = s.SaveFeatures(g, "out/cora_features.txt")
//
// Every strategy is deterministic for a given graph, configuration and seed,
// regardless of the number of workers.
package attrimpute
