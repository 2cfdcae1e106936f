// Package config loads the run configuration of the attrimpute command: a
// YAML file, then a ".env" file found by walking up from the working
// directory, then ATTRIMPUTE_* environment variables, later sources winning.
//
//	input: data/input          # directory holding <name>.zip archives
//	output: data/output
//	zip: true                  # zip RunArchive output
//	workers: 4                 # per-strategy parallelism, 0 = GOMAXPROCS
//	parallel: 3                # strategies evaluated at once, 0 = all
//	strategies:
//	  knn: {k: 10, hopCutoff: 2}
//	  deepwalk: {fusion: 0.5, embeddingDim: 64}
//
// Environment overrides: ATTRIMPUTE_INPUT, ATTRIMPUTE_OUTPUT,
// ATTRIMPUTE_WORKERS, ATTRIMPUTE_ZIP.
package config
