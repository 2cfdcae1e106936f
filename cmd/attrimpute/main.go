// Command attrimpute imputes missing node attributes of graph datasets.
//
//	attrimpute run <dataset> <strategy> [--set key=value]...
//	attrimpute eval
//	attrimpute inspect <features> <edges>
//	attrimpute generate <dataset> [--topology grid --rows 10 --cols 10 ...]
//
// Datasets are "<name>.zip" archives in the input directory. Settings come
// from --config (YAML), a ".env" file, ATTRIMPUTE_* variables and flags, in
// increasing precedence.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
